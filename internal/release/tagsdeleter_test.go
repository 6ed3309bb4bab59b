package release

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alan/release-train/internal/git"
	"github.com/alan/release-train/internal/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records deletions and can fail on demand.
type fakeStore struct {
	releases        []github.Release
	listErr         error
	releaseFailures map[int64]error
	tagFailures     map[string]error
	deletedReleases []int64
	deletedTags     []string
}

func (f *fakeStore) ListReleases(_ context.Context) ([]github.Release, error) {
	return f.releases, f.listErr
}

func (f *fakeStore) DeleteRelease(_ context.Context, id int64) error {
	if err := f.releaseFailures[id]; err != nil {
		return err
	}
	f.deletedReleases = append(f.deletedReleases, id)
	return nil
}

func (f *fakeStore) DeleteTag(_ context.Context, tag string) error {
	if err := f.tagFailures[tag]; err != nil {
		return err
	}
	f.deletedTags = append(f.deletedTags, tag)
	return nil
}

func deleterRepo() *git.Repository {
	return git.NewRepository(&fakeRunner{responses: map[string]string{
		"log -1 --format=%ai 3.0.0": "2020-03-01 12:00:00 +0000",
	}})
}

func olderReleases() []github.Release {
	created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return []github.Release{
		{ID: 2, TagName: "2.0.0", CreatedAt: created.AddDate(0, 1, 0)},
		{ID: 1, TagName: "1.0.0", CreatedAt: created},
	}
}

func TestDeleterRun(t *testing.T) {
	store := &fakeStore{releases: olderReleases()}
	deleter := NewDeleter(store, deleterRepo(), DeleteOptions{UpUntilTag: "3.0.0"})

	deleted, err := deleter.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"1.0.0", "2.0.0"}, deleted, "oldest version first")
	assert.Equal(t, []int64{1, 2}, store.deletedReleases)
	assert.Equal(t, []string{"1.0.0", "2.0.0"}, store.deletedTags)
}

func TestDeleterRunDryRun(t *testing.T) {
	store := &fakeStore{releases: olderReleases()}
	deleter := NewDeleter(store, deleterRepo(), DeleteOptions{UpUntilTag: "3.0.0", DryRun: true})

	deleted, err := deleter.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"1.0.0", "2.0.0"}, deleted)
	assert.Empty(t, store.deletedReleases, "dry run deletes nothing")
	assert.Empty(t, store.deletedTags)
}

func TestDeleterRunContinuesPastFailures(t *testing.T) {
	store := &fakeStore{
		releases:        olderReleases(),
		releaseFailures: map[int64]error{1: errors.New("forbidden")},
	}
	deleter := NewDeleter(store, deleterRepo(), DeleteOptions{UpUntilTag: "3.0.0"})

	deleted, err := deleter.Run(context.Background())

	assert.ErrorContains(t, err, "forbidden")
	assert.Equal(t, []string{"2.0.0"}, deleted, "the batch continues after a failure")
	assert.Equal(t, []string{"2.0.0"}, store.deletedTags)
}

func TestDeleterRunTagFailureIsRemembered(t *testing.T) {
	store := &fakeStore{
		releases:    olderReleases(),
		tagFailures: map[string]error{"1.0.0": errors.New("protected")},
	}
	deleter := NewDeleter(store, deleterRepo(), DeleteOptions{UpUntilTag: "3.0.0"})

	deleted, err := deleter.Run(context.Background())

	assert.ErrorContains(t, err, "protected")
	assert.Equal(t, []string{"2.0.0"}, deleted)
	assert.Equal(t, []int64{1, 2}, store.deletedReleases, "the release itself was removed before the tag failed")
}

func TestDeleterRunNoCandidates(t *testing.T) {
	store := &fakeStore{}
	deleter := NewDeleter(store, deleterRepo(), DeleteOptions{UpUntilTag: "3.0.0"})

	deleted, err := deleter.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, deleted)
}

func TestSelectReleases(t *testing.T) {
	boundary := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	releases := []github.Release{
		{ID: 3, TagName: "0.10.0", CreatedAt: boundary.AddDate(0, -1, 0)},
		{ID: 1, TagName: "0.2.0", CreatedAt: boundary.AddDate(0, -3, 0), Prerelease: true},
		{ID: 2, TagName: "0.9.0", CreatedAt: boundary.AddDate(0, -2, 0)},
		{ID: 4, TagName: "4.0.0", CreatedAt: boundary.AddDate(0, 1, 0)},
	}

	t.Run("orders by semantic version", func(t *testing.T) {
		selected := selectReleases(releases, boundary, false, 0)
		var tags []string
		for _, release := range selected {
			tags = append(tags, release.TagName)
		}
		assert.Equal(t, []string{"0.2.0", "0.9.0", "0.10.0"}, tags, "0.10.0 sorts after 0.9.0")
	})

	t.Run("newer than the boundary is excluded", func(t *testing.T) {
		for _, release := range selectReleases(releases, boundary, false, 0) {
			assert.NotEqual(t, "4.0.0", release.TagName)
		}
	})

	t.Run("prereleases only", func(t *testing.T) {
		selected := selectReleases(releases, boundary, true, 0)
		require.Len(t, selected, 1)
		assert.Equal(t, "0.2.0", selected[0].TagName)
	})

	t.Run("limit truncates the oldest end", func(t *testing.T) {
		selected := selectReleases(releases, boundary, false, 2)
		require.Len(t, selected, 2)
		assert.Equal(t, "0.2.0", selected[0].TagName)
		assert.Equal(t, "0.9.0", selected[1].TagName)
	})
}

func TestVersionLess(t *testing.T) {
	older := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		a, b     github.Release
		expected bool
	}{
		{
			name:     "both semver",
			a:        github.Release{TagName: "1.2.0"},
			b:        github.Release{TagName: "1.10.0"},
			expected: true,
		},
		{
			name:     "semver sorts before non-semver",
			a:        github.Release{TagName: "1.0.0"},
			b:        github.Release{TagName: "nightly"},
			expected: true,
		},
		{
			name:     "neither semver falls back to creation date",
			a:        github.Release{TagName: "alpha", CreatedAt: older},
			b:        github.Release{TagName: "beta", CreatedAt: older.AddDate(0, 0, 1)},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, versionLess(tt.a, tt.b))
		})
	}
}
