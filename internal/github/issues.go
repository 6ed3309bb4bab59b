package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/alan/release-train/internal/changelog"
	"github.com/avast/retry-go"
	"github.com/google/go-github/v57/github"
)

// ClosedIssuesBetween lists the repository's closed issues and keeps those
// closed strictly inside the window. The issues endpoint conflates issues
// and pull requests; entries whose URL does not denote an issue are dropped.
func (c *Client) ClosedIssuesBetween(ctx context.Context, from, to time.Time) ([]changelog.Issue, error) {
	raw, err := paginatedList(func(page int) ([]*github.Issue, *github.Response, error) {
		opts := &github.IssueListByRepoOptions{
			State: "closed",
			ListOptions: github.ListOptions{
				PerPage: perPage,
				Page:    page,
			},
		}
		slog.Debug("GitHub API: listing closed issues", "page", page)
		return c.client.Issues.ListByRepo(ctx, c.project.Organisation, c.project.Repository, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list closed issues: %w", err)
	}

	var all []changelog.Issue
	for _, issue := range raw {
		if !isIssueURL(issue.GetHTMLURL()) {
			continue
		}
		all = append(all, convertIssue(issue))
	}

	return closedBetween(all, from, to), nil
}

// Issue fetches a single issue by number, retrying transient failures.
func (c *Client) Issue(ctx context.Context, number int) (changelog.Issue, error) {
	var issue *github.Issue
	err := retry.Do(
		func() error {
			fetched, _, err := c.client.Issues.Get(ctx, c.project.Organisation, c.project.Repository, number)
			if err != nil {
				return err
			}
			issue = fetched
			return nil
		},
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return changelog.Issue{}, fmt.Errorf("failed to fetch issue #%d: %w", number, err)
	}
	return convertIssue(issue), nil
}

func convertIssue(issue *github.Issue) changelog.Issue {
	converted := changelog.Issue{
		Number:   issue.GetNumber(),
		Title:    issue.GetTitle(),
		Body:     issue.GetBody(),
		HTMLURL:  issue.GetHTMLURL(),
		Assignee: issue.GetAssignee().GetLogin(),
	}
	if issue.ClosedAt != nil {
		closed := issue.ClosedAt.Time
		converted.ClosedAt = &closed
	}
	return converted
}

// isIssueURL reports whether the HTML URL path denotes an issue rather than
// a pull request.
func isIssueURL(htmlURL string) bool {
	parsed, err := url.Parse(htmlURL)
	if err != nil {
		return false
	}
	return slices.Contains(strings.Split(parsed.Path, "/"), "issues")
}

// closedBetween keeps issues closed strictly inside the window; both bounds
// are exclusive. Order is preserved.
func closedBetween(issues []changelog.Issue, from, to time.Time) []changelog.Issue {
	var kept []changelog.Issue
	for _, issue := range issues {
		if issue.ClosedAt == nil {
			continue
		}
		if issue.ClosedAt.After(from) && issue.ClosedAt.Before(to) {
			kept = append(kept, issue)
		}
	}
	return kept
}
