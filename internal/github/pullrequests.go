package github

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alan/release-train/internal/changelog"
	"github.com/google/go-github/v57/github"
)

// MergedPullRequestsBetween lists the closed pull requests against the base
// branch, newest updated first, and keeps those merged strictly inside the
// window. Pull requests closed without merging are dropped.
func (c *Client) MergedPullRequestsBetween(ctx context.Context, base string, from, to time.Time) ([]changelog.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:     "closed",
		Base:      base,
		Sort:      "updated",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	var all []changelog.PullRequest

	for {
		slog.Debug("GitHub API: listing pull requests", "base", base, "page", opts.Page)
		pullRequests, resp, err := c.client.PullRequests.List(ctx, c.project.Organisation, c.project.Repository, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests: %w", err)
		}

		for _, pr := range pullRequests {
			all = append(all, convertPullRequest(pr))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return mergedBetween(all, from, to), nil
}

func convertPullRequest(pr *github.PullRequest) changelog.PullRequest {
	converted := changelog.PullRequest{
		Number:   pr.GetNumber(),
		Title:    pr.GetTitle(),
		Body:     pr.GetBody(),
		HTMLURL:  pr.GetHTMLURL(),
		Author:   pr.GetUser().GetLogin(),
		Assignee: pr.GetAssignee().GetLogin(),
	}
	if pr.MergedAt != nil {
		merged := pr.MergedAt.Time
		converted.MergedAt = &merged
	}
	return converted
}

// mergedBetween keeps pull requests merged strictly inside the window; both
// bounds are exclusive. Order is preserved.
func mergedBetween(pullRequests []changelog.PullRequest, from, to time.Time) []changelog.PullRequest {
	var kept []changelog.PullRequest
	for _, pr := range pullRequests {
		if pr.MergedAt == nil {
			continue
		}
		if pr.MergedAt.After(from) && pr.MergedAt.Before(to) {
			kept = append(kept, pr)
		}
	}
	return kept
}
