package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	closedBy := Entry{Kind: KindPullRequest, Number: 41, Username: "janedoe"}

	tests := []struct {
		name     string
		items    []Item
		expected string
	}{
		{
			name:     "no items",
			items:    nil,
			expected: "",
		},
		{
			name: "multiple items on separate lines",
			items: []Item{
				{Input: Entry{Kind: KindIssue, Number: 1, Title: "first", HTMLURL: "https://example.com/issues/1"}, ClosedBy: closedBy},
				{Input: Entry{Kind: KindIssue, Number: 2, Title: "second", HTMLURL: "https://example.com/issues/2"}, ClosedBy: closedBy},
			},
			expected: "- First ([#1](https://example.com/issues/1)) via [@janedoe](https://github.com/janedoe)\n" +
				"- Second ([#2](https://example.com/issues/2)) via [@janedoe](https://github.com/janedoe)",
		},
		{
			name: "trivial items are filtered in any case",
			items: []Item{
				{Input: Entry{Kind: KindIssue, Number: 1, Title: "kept", HTMLURL: "https://example.com/issues/1"}, ClosedBy: closedBy},
				{Input: Entry{Kind: KindIssue, Number: 2, Title: "bump deps #trivial", HTMLURL: "https://example.com/issues/2"}, ClosedBy: closedBy},
				{Input: Entry{Kind: KindIssue, Number: 3, Title: "typo #TRIVIAL", HTMLURL: "https://example.com/issues/3"}, ClosedBy: closedBy},
			},
			expected: "- Kept ([#1](https://example.com/issues/1)) via [@janedoe](https://github.com/janedoe)",
		},
		{
			name: "untitled items are dropped",
			items: []Item{
				{Input: Entry{Kind: KindIssue, Number: 1}, ClosedBy: closedBy},
			},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Build(tt.items))
		})
	}
}
