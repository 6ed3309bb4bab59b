package release

import "fmt"

// releasedPullRequestComment congratulates a merged pull request on being
// part of the release.
func releasedPullRequestComment(release Release) string {
	return fmt.Sprintf(
		"Congratulations! :tada: This was released as part of [Release %s](%s) :rocket:",
		release.Title, release.URL,
	)
}

// releasedIssueComment tells an issue that the pull request closing it has
// shipped.
func releasedIssueComment(release Release, pullRequestNumber int) string {
	return fmt.Sprintf(
		"The pull request #%d that closed this issue was merged and released as part of [Release %s](%s) :rocket:\n"+
			"Please let us know if the functionality works as expected as a reply here. If it does not, please open a new issue. Thanks!",
		pullRequestNumber, release.Title, release.URL,
	)
}
