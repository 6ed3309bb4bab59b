package changelog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Gateway is the slice of the GitHub API the changelog generators depend on.
type Gateway interface {
	// MergedPullRequestsBetween lists pull requests against base merged
	// strictly inside the window, newest updated first.
	MergedPullRequestsBetween(ctx context.Context, base string, from, to time.Time) ([]PullRequest, error)
	// ClosedIssuesBetween lists issues closed strictly inside the window.
	ClosedIssuesBetween(ctx context.Context, from, to time.Time) ([]Issue, error)
	// Issue fetches a single issue by number.
	Issue(ctx context.Context, number int) (Issue, error)
}

// ResolveIssues materializes the issues a pull request body claims to close.
// The referenced issues are fetched concurrently and reassembled in the order
// their numbers appear in the body. An issue that fails to fetch is logged
// and dropped. Returns nil when the body references nothing, or when every
// referenced issue was dropped; callers then treat the pull request itself as
// the changelog entry.
func ResolveIssues(ctx context.Context, gateway Gateway, pr PullRequest) []Issue {
	numbers := ReferencedIssues(pr.Body)
	if len(numbers) == 0 {
		return nil
	}

	var mu sync.Mutex
	found := make(map[int]Issue, len(numbers))

	g, ctx := errgroup.WithContext(ctx)
	for _, number := range numbers {
		number := number
		g.Go(func() error {
			issue, err := gateway.Issue(ctx, number)
			if err != nil {
				slog.Warn("Skipping unresolvable issue reference", "pull_request", pr.Number, "issue", number, "error", err)
				return nil
			}
			mu.Lock()
			found[number] = issue
			mu.Unlock()
			return nil
		})
	}
	// Workers never return an error; the group is only a join barrier.
	_ = g.Wait()

	var issues []Issue
	for _, number := range numbers {
		if issue, ok := found[number]; ok {
			issues = append(issues, issue)
		}
	}
	return issues
}
