package github

import (
	"testing"
	"time"

	"github.com/alan/release-train/internal/changelog"
	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
)

func TestMergedBetween(t *testing.T) {
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)
	inside := from.Add(12 * time.Hour)

	pr := func(number int, merged *time.Time) changelog.PullRequest {
		return changelog.PullRequest{Number: number, MergedAt: merged}
	}

	tests := []struct {
		name     string
		input    []changelog.PullRequest
		expected []int
	}{
		{
			name:     "merged inside the window",
			input:    []changelog.PullRequest{pr(1, &inside)},
			expected: []int{1},
		},
		{
			name:     "closed without merging",
			input:    []changelog.PullRequest{pr(1, nil)},
			expected: nil,
		},
		{
			name:     "merged exactly at the start is excluded",
			input:    []changelog.PullRequest{pr(1, &from)},
			expected: nil,
		},
		{
			name:     "merged exactly at the end is excluded",
			input:    []changelog.PullRequest{pr(1, &to)},
			expected: nil,
		},
		{
			name: "order is preserved",
			input: []changelog.PullRequest{
				pr(3, &inside), pr(1, &inside), pr(2, nil),
			},
			expected: []int{3, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var numbers []int
			for _, kept := range mergedBetween(tt.input, from, to) {
				numbers = append(numbers, kept.Number)
			}
			assert.Equal(t, tt.expected, numbers)
		})
	}
}

func TestConvertPullRequest(t *testing.T) {
	merged := time.Date(2020, 1, 5, 18, 0, 0, 0, time.UTC)
	raw := &github.PullRequest{
		Number:   github.Int(41),
		Title:    github.String("Add dark mode"),
		Body:     github.String("Fixes #39"),
		HTMLURL:  github.String("https://example.com/pull/41"),
		User:     &github.User{Login: github.String("janedoe")},
		Assignee: &github.User{Login: github.String("someone")},
		MergedAt: &github.Timestamp{Time: merged},
	}

	converted := convertPullRequest(raw)

	assert.Equal(t, 41, converted.Number)
	assert.Equal(t, "Add dark mode", converted.Title)
	assert.Equal(t, "Fixes #39", converted.Body)
	assert.Equal(t, "janedoe", converted.Author)
	assert.Equal(t, "someone", converted.Assignee)
	assert.True(t, converted.MergedAt.Equal(merged))
}

func TestConvertPullRequestUnmerged(t *testing.T) {
	converted := convertPullRequest(&github.PullRequest{Number: github.Int(1)})
	assert.Nil(t, converted.MergedAt)
}
