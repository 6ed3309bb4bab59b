package github

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/go-github/v57/github"
)

// Watermark is appended to every comment the tool posts, so automated
// comments can be recognised and filtered later.
const Watermark = "<sub>Posted by release-train</sub>"

// CreateComment posts a watermarked comment on the issue or pull request
// with the given number and returns the comment URL. Transient failures are
// retried.
func (c *Client) CreateComment(ctx context.Context, number int, body string) (string, error) {
	comment := &github.IssueComment{Body: github.String(watermarked(body))}

	var created *github.IssueComment
	err := retry.Do(
		func() error {
			posted, _, err := c.client.Issues.CreateComment(ctx, c.project.Organisation, c.project.Repository, number, comment)
			if err != nil {
				return err
			}
			created = posted
			return nil
		},
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", fmt.Errorf("failed to comment on #%d: %w", number, err)
	}

	slog.Debug("Posted comment", "number", number, "url", created.GetHTMLURL())
	return created.GetHTMLURL(), nil
}

func watermarked(body string) string {
	return body + "\n\n" + Watermark
}
