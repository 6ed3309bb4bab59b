// Package release publishes GitHub releases and cleans up old ones.
package release

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alan/release-train/internal/changelog"
	"github.com/alan/release-train/internal/git"
	"github.com/alan/release-train/internal/github"
	"golang.org/x/sync/errgroup"
)

// ErrAmbiguousTagDate means the release tag does not exist yet and no target
// commitish was given to date it from.
var ErrAmbiguousTagDate = errors.New("tag does not exist and no target commitish was given to determine its date")

// Gateway is the GitHub surface the producer needs: changelog generation
// plus release creation and commenting.
type Gateway interface {
	changelog.Gateway
	CreateRelease(ctx context.Context, params github.CreateReleaseParams) (string, error)
	CreateComment(ctx context.Context, number int, body string) (string, error)
}

// Release is the published result.
type Release struct {
	Title     string `json:"title"`
	TagName   string `json:"tag_name"`
	URL       string `json:"url"`
	Changelog string `json:"changelog"`
}

// Options configure a release run. Zero values fall back to repository
// state: the latest tag, the tag preceding it, and the master base branch.
type Options struct {
	ChangelogPath   string
	SkipComments    bool
	Prerelease      bool
	TargetCommitish string
	TagName         string
	ReleaseTitle    string
	LastReleaseTag  string
	BaseBranch      string
	Sectioned       bool
	TagOffset       time.Duration
}

// Producer creates a GitHub release for a tag, prepends the changelog to a
// file and notifies the issues and pull requests included in the release.
type Producer struct {
	gateway Gateway
	repo    *git.Repository
	opts    Options
}

// NewProducer returns a producer for the given gateway and repository.
func NewProducer(gateway Gateway, repo *git.Repository, opts Options) *Producer {
	if opts.BaseBranch == "" {
		opts.BaseBranch = "master"
	}
	if opts.TagOffset == 0 {
		opts.TagOffset = changelog.DefaultTagOffset
	}
	return &Producer{gateway: gateway, repo: repo, opts: opts}
}

// Run builds the changelog for the release window, updates the changelog
// file when configured, publishes the release and posts comments on the
// included pull requests and issues.
func (p *Producer) Run(ctx context.Context) (Release, error) {
	releasedTag, err := p.releasedTag()
	if err != nil {
		return Release{}, err
	}

	// The window closes just after the released tag so that the tagged
	// commit's own pull request is part of its release.
	to := releasedTag.Created.Add(p.opts.TagOffset)

	since, err := p.since(to)
	if err != nil {
		return Release{}, err
	}
	from, to, err := changelog.Window(since, to, p.repo, p.opts.TagOffset)
	if err != nil {
		return Release{}, err
	}

	var log changelog.Changelog
	if p.opts.Sectioned {
		log, err = changelog.GenerateSectioned(ctx, p.gateway, p.opts.BaseBranch, from, to)
	} else {
		log, err = changelog.Generate(ctx, p.gateway, p.opts.BaseBranch, from, to)
	}
	if err != nil {
		return Release{}, err
	}

	title := p.opts.ReleaseTitle
	if title == "" {
		title = releasedTag.Name
	}

	if p.opts.ChangelogPath != "" {
		if err := prependChangelog(p.opts.ChangelogPath, title, log.Description); err != nil {
			return Release{}, err
		}
	}

	slog.Debug("Creating release", "tag", releasedTag.Name, "title", title)
	url, err := p.gateway.CreateRelease(ctx, github.CreateReleaseParams{
		TagName:         releasedTag.Name,
		TargetCommitish: p.opts.TargetCommitish,
		Title:           title,
		Body:            log.Description,
		Prerelease:      p.opts.Prerelease,
	})
	if err != nil {
		return Release{}, err
	}

	release := Release{
		Title:     title,
		TagName:   releasedTag.Name,
		URL:       url,
		Changelog: log.Description,
	}

	if !p.opts.SkipComments {
		p.postComments(ctx, log, release)
	}

	return release, nil
}

// releasedTag resolves the tag being released. A named tag that already
// exists is dated from git; a not-yet-created tag is dated from the target
// commitish; with no name at all the latest tag is used.
func (p *Producer) releasedTag() (git.Tag, error) {
	if p.opts.TagName == "" {
		return p.repo.LatestTag()
	}

	if created, err := p.repo.TagDate(p.opts.TagName); err == nil {
		return git.Tag{Name: p.opts.TagName, Created: created}, nil
	}

	if p.opts.TargetCommitish == "" {
		return git.Tag{}, fmt.Errorf("%w: %s", ErrAmbiguousTagDate, p.opts.TagName)
	}
	created, err := p.repo.CommitDate(p.opts.TargetCommitish)
	if err != nil {
		return git.Tag{}, err
	}
	return git.Tag{Name: p.opts.TagName, Created: created}, nil
}

// since picks the start of the changelog window: the explicit last release
// tag when given, otherwise the tag preceding the latest one. When no
// previous tag exists the start degenerates to the window end, which makes
// the window resolution fall back to the last 30 days.
func (p *Producer) since(to time.Time) (changelog.Since, error) {
	if p.opts.LastReleaseTag != "" {
		return changelog.SinceTag(p.opts.LastReleaseTag), nil
	}

	previous, err := p.repo.PreviousTagName()
	if err != nil {
		return changelog.Since{}, err
	}
	if previous == "" {
		slog.Warn("No previous tag found, the changelog will cover the last 30 days")
		return changelog.SinceDate(to), nil
	}
	slog.Debug("Using previous tag as changelog base", "tag", previous)
	return changelog.SinceTag(previous), nil
}

// prependChangelog splices a new tag section above the existing changelog
// file content.
func prependChangelog(path, title, body string) error {
	current, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read changelog file: %w", err)
	}

	section := fmt.Sprintf("### %s\n%s\n\n", title, body)
	if err := os.WriteFile(path, append([]byte(section), current...), 0644); err != nil {
		return fmt.Errorf("failed to write changelog file: %w", err)
	}
	return nil
}

// postComments notifies every pull request in the release, and every issue
// those pull requests closed. Comments are posted concurrently and joined
// before returning; individual failures are logged and skipped.
func (p *Producer) postComments(ctx context.Context, log changelog.Changelog, release Release) {
	g, ctx := errgroup.WithContext(ctx)

	for number, issues := range log.ItemIDs {
		number := number
		g.Go(func() error {
			p.postComment(ctx, number, releasedPullRequestComment(release))
			return nil
		})
		for _, issue := range issues {
			issue := issue
			g.Go(func() error {
				p.postComment(ctx, issue, releasedIssueComment(release, number))
				return nil
			})
		}
	}
	// Workers never return an error; the group is only a join barrier.
	_ = g.Wait()
}

func (p *Producer) postComment(ctx context.Context, number int, body string) {
	if _, err := p.gateway.CreateComment(ctx, number, body); err != nil {
		slog.Warn("Posting release comment failed", "number", number, "error", err)
		return
	}
	slog.Debug("Posted release comment", "number", number)
}
