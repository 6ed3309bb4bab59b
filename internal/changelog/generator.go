package changelog

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Changelog is the rendered Markdown plus an index of pull request numbers to
// the issue numbers each pull request closes. The index drives release
// commenting and always covers every pull request in the window, including
// ones the "#trivial" filter kept out of the Markdown.
type Changelog struct {
	Description string
	ItemIDs     map[int][]int
}

// Generate builds the single-section changelog for the window: one line per
// resolved issue, or per pull request when it closes no issues.
func Generate(ctx context.Context, gateway Gateway, base string, from, to time.Time) (Changelog, error) {
	pullRequests, err := gateway.MergedPullRequestsBetween(ctx, base, from, to)
	if err != nil {
		return Changelog{}, fmt.Errorf("failed to list merged pull requests: %w", err)
	}
	logPullRequests(pullRequests)

	var items []Item
	ids := make(map[int][]int, len(pullRequests))

	for _, pr := range pullRequests {
		issues := ResolveIssues(ctx, gateway, pr)
		if len(issues) == 0 {
			items = append(items, Item{Input: pr.Entry(), ClosedBy: pr.Entry()})
			ids[pr.Number] = []int{}
			continue
		}

		numbers := make([]int, 0, len(issues))
		for _, issue := range issues {
			items = append(items, Item{Input: issue.Entry(), ClosedBy: pr.Entry()})
			numbers = append(numbers, issue.Number)
		}
		ids[pr.Number] = numbers
	}

	return Changelog{Description: Build(items), ItemIDs: ids}, nil
}

// GenerateSectioned builds the two-section changelog: closed issues first,
// without attribution, then merged pull requests with attribution. The two
// sections are independent; an issue also referenced by a listed pull request
// appears in both. The index is derived from the pull request bodies alone.
func GenerateSectioned(ctx context.Context, gateway Gateway, base string, from, to time.Time) (Changelog, error) {
	pullRequests, err := gateway.MergedPullRequestsBetween(ctx, base, from, to)
	if err != nil {
		return Changelog{}, fmt.Errorf("failed to list merged pull requests: %w", err)
	}
	logPullRequests(pullRequests)

	issues, err := gateway.ClosedIssuesBetween(ctx, from, to)
	if err != nil {
		return Changelog{}, fmt.Errorf("failed to list closed issues: %w", err)
	}
	for _, issue := range issues {
		slog.Debug("Changelog input issue", "number", issue.Number, "title", issue.Title)
	}

	var issueItems []Item
	for _, issue := range issues {
		issueItems = append(issueItems, Item{Input: issue.Entry(), ClosedBy: issue.Entry()})
	}
	var prItems []Item
	ids := make(map[int][]int, len(pullRequests))
	for _, pr := range pullRequests {
		prItems = append(prItems, Item{Input: pr.Entry(), ClosedBy: pr.Entry()})
		numbers := ReferencedIssues(pr.Body)
		if numbers == nil {
			numbers = []int{}
		}
		ids[pr.Number] = numbers
	}

	description := fmt.Sprintf(
		"**Closed issues:**\n\n%s\n\n**Merged pull requests:**\n\n%s",
		Build(issueItems), Build(prItems),
	)

	return Changelog{Description: description, ItemIDs: ids}, nil
}

func logPullRequests(pullRequests []PullRequest) {
	for _, pr := range pullRequests {
		if pr.MergedAt == nil {
			continue
		}
		slog.Debug("Changelog input pull request", "number", pr.Number, "title", pr.Title, "merged_at", *pr.MergedAt)
	}
}
