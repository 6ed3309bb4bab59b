package changelog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveIssues(t *testing.T) {
	gateway := &fakeGateway{
		issuesByNum: map[int]Issue{
			39: {Number: 39, Title: "first"},
			40: {Number: 40, Title: "second"},
		},
	}
	pr := PullRequest{Number: 41, Body: "Fixes #40 and closes #39"}

	issues := ResolveIssues(context.Background(), gateway, pr)

	assert.Equal(t, []Issue{
		{Number: 40, Title: "second"},
		{Number: 39, Title: "first"},
	}, issues, "issues come back in body order")
}

func TestResolveIssuesDropsFailures(t *testing.T) {
	gateway := &fakeGateway{
		issuesByNum: map[int]Issue{40: {Number: 40, Title: "second"}},
		failIssues:  map[int]bool{39: true},
	}
	pr := PullRequest{Number: 41, Body: "Fixes #39 and closes #40"}

	issues := ResolveIssues(context.Background(), gateway, pr)

	assert.Equal(t, []Issue{{Number: 40, Title: "second"}}, issues)
}

func TestResolveIssuesNoReferences(t *testing.T) {
	gateway := &fakeGateway{}
	pr := PullRequest{Number: 41, Body: "no references here"}

	assert.Nil(t, ResolveIssues(context.Background(), gateway, pr))
}

func TestResolveIssuesAllFailuresYieldNil(t *testing.T) {
	gateway := &fakeGateway{failIssues: map[int]bool{39: true}}
	pr := PullRequest{Number: 41, Body: "Fixes #39"}

	assert.Nil(t, ResolveIssues(context.Background(), gateway, pr))
}
