package release

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/alan/release-train/internal/git"
	"github.com/alan/release-train/internal/github"
	"github.com/hashicorp/go-multierror"
)

// Store is the GitHub surface the deleter needs.
type Store interface {
	ListReleases(ctx context.Context) ([]github.Release, error)
	DeleteRelease(ctx context.Context, id int64) error
	DeleteTag(ctx context.Context, tag string) error
}

// DeleteOptions configure a deletion batch.
type DeleteOptions struct {
	// UpUntilTag bounds the batch: only releases created before this tag's
	// date are candidates. Empty means the latest tag.
	UpUntilTag string
	// Limit caps the number of releases deleted in one batch.
	Limit int
	// PrereleaseOnly restricts the batch to prereleases.
	PrereleaseOnly bool
	// DryRun logs what would be deleted without deleting anything.
	DryRun bool
}

// Deleter removes batches of old releases together with their tags.
type Deleter struct {
	store Store
	repo  *git.Repository
	opts  DeleteOptions
}

// NewDeleter returns a deleter for the given store and repository.
func NewDeleter(store Store, repo *git.Repository, opts DeleteOptions) *Deleter {
	return &Deleter{store: store, repo: repo, opts: opts}
}

// Run deletes the selected releases and their tags, returning the tag names
// that were deleted. Every candidate is attempted even when one fails; the
// collected failures are returned after the batch completes.
func (d *Deleter) Run(ctx context.Context) ([]string, error) {
	boundary, err := d.boundaryTag()
	if err != nil {
		return nil, err
	}
	slog.Debug("Deleting releases", "up_until", boundary.Name, "limit", d.opts.Limit, "dry_run", d.opts.DryRun)

	releases, err := d.store.ListReleases(ctx)
	if err != nil {
		return nil, err
	}

	candidates := selectReleases(releases, boundary.Created, d.opts.PrereleaseOnly, d.opts.Limit)
	if len(candidates) == 0 {
		return nil, nil
	}

	if d.opts.DryRun {
		var names []string
		for _, release := range candidates {
			slog.Info("Would delete release", "tag", release.TagName, "id", release.ID)
			names = append(names, release.TagName)
		}
		return names, nil
	}

	var errs *multierror.Error
	var deleted []string
	for _, release := range candidates {
		if err := d.store.DeleteRelease(ctx, release.ID); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if err := d.store.DeleteTag(ctx, release.TagName); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		slog.Debug("Deleted release and tag", "tag", release.TagName)
		deleted = append(deleted, release.TagName)
	}

	return deleted, errs.ErrorOrNil()
}

func (d *Deleter) boundaryTag() (git.Tag, error) {
	if d.opts.UpUntilTag != "" {
		return d.repo.Tag(d.opts.UpUntilTag)
	}
	return d.repo.LatestTag()
}

// selectReleases keeps releases created before the boundary, optionally only
// prereleases, orders them oldest version first and truncates to limit.
func selectReleases(releases []github.Release, upUntil time.Time, prereleaseOnly bool, limit int) []github.Release {
	var kept []github.Release
	for _, release := range releases {
		if prereleaseOnly && !release.Prerelease {
			continue
		}
		if !release.CreatedAt.Before(upUntil) {
			continue
		}
		kept = append(kept, release)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return versionLess(kept[i], kept[j])
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// versionLess orders releases by semantic version of their tags. Tags that
// do not parse as semver sort after those that do, among themselves by
// creation date.
func versionLess(a, b github.Release) bool {
	av, aerr := semver.NewVersion(a.TagName)
	bv, berr := semver.NewVersion(b.TagName)

	switch {
	case aerr == nil && berr == nil:
		return av.LessThan(bv)
	case aerr == nil:
		return true
	case berr == nil:
		return false
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}
