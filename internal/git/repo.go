package git

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"
)

// dateFormat is the `git log --format=%ai` output format, e.g.
// "2020-01-05 18:00:47 +0100".
const dateFormat = "2006-01-02 15:04:05 -0700"

var (
	// ErrNoTags means the repository has no tags to resolve.
	ErrNoTags = errors.New("no tags found in the repository")
	// ErrMissingTagDate means a tag exists but its creation date could not
	// be read or parsed.
	ErrMissingTagDate = errors.New("could not determine the tag creation date")
	// ErrUnparsableRemote means the origin remote URL does not look like a
	// GitHub project URL.
	ErrUnparsableRemote = errors.New("could not parse the origin remote URL")
)

// Tag is a git tag and the timestamp of the commit it points at.
type Tag struct {
	Name    string
	Created time.Time
}

// Project identifies the GitHub project the working directory pushes to,
// e.g. organisation "acme", repository "widgets".
type Project struct {
	Organisation string
	Repository   string
}

// Repository exposes the local git operations the tool depends on.
type Repository struct {
	runner Runner
}

// NewRepository returns a Repository backed by the given runner.
func NewRepository(runner Runner) *Repository {
	return &Repository{runner: runner}
}

// FetchTags updates the local tag list from the origin remote.
func (r *Repository) FetchTags() error {
	_, err := r.runner.Run("fetch", "--tags", "origin", "--no-recurse-submodules", "-q")
	return err
}

// LatestTagName resolves the name of the most recently created tag.
func (r *Repository) LatestTagName() (string, error) {
	return r.tagNameSkipping(0)
}

// PreviousTagName resolves the name of the tag created right before the most
// recent one. Returns an empty name when there is no previous tag.
func (r *Repository) PreviousTagName() (string, error) {
	name, err := r.tagNameSkipping(1)
	if errors.Is(err, ErrNoTags) {
		return "", nil
	}
	return name, err
}

func (r *Repository) tagNameSkipping(skip int) (string, error) {
	sha, err := r.runner.Run("rev-list", "--tags", fmt.Sprintf("--skip=%d", skip), "--max-count=1", "--no-walk")
	if err != nil {
		return "", fmt.Errorf("failed to list tagged commits: %w", err)
	}
	if sha == "" {
		return "", ErrNoTags
	}
	name, err := r.runner.Run("describe", "--abbrev=0", "--tags", sha)
	if err != nil {
		return "", fmt.Errorf("failed to describe commit %s: %w", sha, err)
	}
	return name, nil
}

// TagDate resolves the creation timestamp of the named tag.
func (r *Repository) TagDate(name string) (time.Time, error) {
	out, err := r.runner.Run("log", "-1", "--format=%ai", name)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMissingTagDate, err)
	}
	created, err := time.Parse(dateFormat, out)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMissingTagDate, out)
	}
	slog.Debug("Resolved tag creation date", "tag", name, "created", created)
	return created, nil
}

// CommitDate resolves the timestamp of a commit or other commitish.
func (r *Repository) CommitDate(commitish string) (time.Time, error) {
	out, err := r.runner.Run("show", "-s", "--format=%ai", commitish)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read the date of %q: %w", commitish, err)
	}
	created, err := time.Parse(dateFormat, out)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparsable date %q for %q", out, commitish)
	}
	return created, nil
}

// Tag resolves a named tag together with its creation date.
func (r *Repository) Tag(name string) (Tag, error) {
	created, err := r.TagDate(name)
	if err != nil {
		return Tag{}, err
	}
	return Tag{Name: name, Created: created}, nil
}

// LatestTag fetches remote tags and resolves the most recently created one.
func (r *Repository) LatestTag() (Tag, error) {
	if err := r.FetchTags(); err != nil {
		slog.Warn("Fetching remote tags failed, falling back to local tags", "error", err)
	}
	name, err := r.LatestTagName()
	if err != nil {
		return Tag{}, err
	}
	return r.Tag(name)
}

// LatestTagDate resolves the creation date of the most recent tag.
func (r *Repository) LatestTagDate() (time.Time, error) {
	tag, err := r.LatestTag()
	if err != nil {
		return time.Time{}, err
	}
	return tag.Created, nil
}

// remotePattern matches the trailing "org/repo" of SSH and HTTPS remote
// URLs, with or without a .git suffix.
var remotePattern = regexp.MustCompile(`[:/]([^/:]+)/([^/]+?)(?:\.git)?$`)

// CurrentProject parses the origin remote URL into its organisation and
// repository parts.
func (r *Repository) CurrentProject() (Project, error) {
	url, err := r.runner.Run("remote", "get-url", "origin")
	if err != nil {
		return Project{}, fmt.Errorf("failed to read the origin remote: %w", err)
	}
	match := remotePattern.FindStringSubmatch(url)
	if match == nil {
		return Project{}, fmt.Errorf("%w: %q", ErrUnparsableRemote, url)
	}
	return Project{Organisation: match[1], Repository: match[2]}, nil
}
