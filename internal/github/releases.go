package github

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/go-github/v57/github"
)

// Release is a published GitHub release, as listed by the API.
type Release struct {
	ID         int64
	TagName    string
	Title      string
	URL        string
	Prerelease bool
	CreatedAt  time.Time
}

// CreateReleaseParams describe the release to publish. Drafts are never
// created.
type CreateReleaseParams struct {
	TagName         string
	TargetCommitish string
	Title           string
	Body            string
	Prerelease      bool
}

// CreateRelease publishes a release and returns its HTML URL.
func (c *Client) CreateRelease(ctx context.Context, params CreateReleaseParams) (string, error) {
	release := &github.RepositoryRelease{
		TagName:    github.String(params.TagName),
		Name:       github.String(params.Title),
		Body:       github.String(params.Body),
		Prerelease: github.Bool(params.Prerelease),
		Draft:      github.Bool(false),
	}
	if params.TargetCommitish != "" {
		release.TargetCommitish = github.String(params.TargetCommitish)
	}

	created, _, err := c.client.Repositories.CreateRelease(ctx, c.project.Organisation, c.project.Repository, release)
	if err != nil {
		return "", fmt.Errorf("failed to create release for tag %s: %w", params.TagName, err)
	}

	slog.Debug("Created release", "tag", params.TagName, "url", created.GetHTMLURL())
	return created.GetHTMLURL(), nil
}

// ListReleases pages through every release of the repository.
func (c *Client) ListReleases(ctx context.Context) ([]Release, error) {
	raw, err := paginatedList(func(page int) ([]*github.RepositoryRelease, *github.Response, error) {
		opts := &github.ListOptions{
			PerPage: perPage,
			Page:    page,
		}
		slog.Debug("GitHub API: listing releases", "page", page)
		return c.client.Repositories.ListReleases(ctx, c.project.Organisation, c.project.Repository, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}

	releases := make([]Release, 0, len(raw))
	for _, release := range raw {
		releases = append(releases, Release{
			ID:         release.GetID(),
			TagName:    release.GetTagName(),
			Title:      release.GetName(),
			URL:        release.GetHTMLURL(),
			Prerelease: release.GetPrerelease(),
			CreatedAt:  release.GetCreatedAt().Time,
		})
	}
	return releases, nil
}

// DeleteRelease removes a release by id.
func (c *Client) DeleteRelease(ctx context.Context, id int64) error {
	if _, err := c.client.Repositories.DeleteRelease(ctx, c.project.Organisation, c.project.Repository, id); err != nil {
		return fmt.Errorf("failed to delete release %d: %w", id, err)
	}
	return nil
}

// DeleteTag removes the git ref backing a tag.
func (c *Client) DeleteTag(ctx context.Context, tag string) error {
	if _, err := c.client.Git.DeleteRef(ctx, c.project.Organisation, c.project.Repository, "tags/"+tag); err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", tag, err)
	}
	return nil
}
