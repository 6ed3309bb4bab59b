package changelog

import "time"

// Kind discriminates the two changelog entry variants.
type Kind int

const (
	// KindPullRequest marks an entry backed by a pull request.
	KindPullRequest Kind = iota
	// KindIssue marks an entry backed by an issue.
	KindIssue
)

// Entry is the common projection of a pull request or issue that the
// changelog rendering works with.
type Entry struct {
	Kind     Kind
	Number   int
	Title    string
	Body     string
	HTMLURL  string
	Username string
}

// PullRequest is a pull request as fetched from the API. A nil MergedAt means
// the pull request was closed without merging.
type PullRequest struct {
	Number   int
	Title    string
	Body     string
	HTMLURL  string
	Author   string
	Assignee string
	MergedAt *time.Time
}

// Entry projects the pull request into a changelog entry. The username is the
// author login, falling back to the assignee when the author is unknown.
func (pr PullRequest) Entry() Entry {
	username := pr.Author
	if username == "" {
		username = pr.Assignee
	}
	return Entry{
		Kind:     KindPullRequest,
		Number:   pr.Number,
		Title:    pr.Title,
		Body:     pr.Body,
		HTMLURL:  pr.HTMLURL,
		Username: username,
	}
}

// Issue is an issue as fetched from the API. A nil ClosedAt means the issue
// is still open.
type Issue struct {
	Number   int
	Title    string
	Body     string
	HTMLURL  string
	Assignee string
	ClosedAt *time.Time
}

// Entry projects the issue into a changelog entry.
func (is Issue) Entry() Entry {
	return Entry{
		Kind:     KindIssue,
		Number:   is.Number,
		Title:    is.Title,
		Body:     is.Body,
		HTMLURL:  is.HTMLURL,
		Username: is.Assignee,
	}
}
