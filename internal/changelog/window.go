package changelog

import (
	"log/slog"
	"time"
)

// DefaultTagOffset is added to a tag's creation date when the tag anchors a
// window start. Tag creation time equals the time of the tagged commit, so
// without the margin that commit would show up in the next changelog again.
const DefaultTagOffset = 60 * time.Second

// TagSource resolves tag creation dates from the local repository.
type TagSource interface {
	// TagDate returns the creation timestamp of the named tag.
	TagDate(name string) (time.Time, error)
	// LatestTagDate returns the creation timestamp of the most recently
	// created tag.
	LatestTagDate() (time.Time, error)
}

// Since selects how the start of the changelog window is determined. The
// zero value means "since the latest tag".
type Since struct {
	date    time.Time
	tag     string
	hasDate bool
}

// SinceDate uses an explicit timestamp as the window start.
func SinceDate(date time.Time) Since { return Since{date: date, hasDate: true} }

// SinceTag uses the creation date of a named tag as the window start.
func SinceTag(name string) Since { return Since{tag: name} }

// SinceLatestTag uses the creation date of the most recent tag.
func SinceLatestTag() Since { return Since{} }

// Resolve turns the variant into the window start timestamp. Tag-based
// variants add offset to the tag creation date; explicit dates pass through
// untouched. Tag lookup failures are returned as-is and are fatal to the run.
func (s Since) Resolve(tags TagSource, offset time.Duration) (time.Time, error) {
	switch {
	case s.hasDate:
		return s.date, nil
	case s.tag != "":
		created, err := tags.TagDate(s.tag)
		if err != nil {
			return time.Time{}, err
		}
		return created.Add(offset), nil
	default:
		created, err := tags.LatestTagDate()
		if err != nil {
			return time.Time{}, err
		}
		return created.Add(offset), nil
	}
}

// Window resolves the changelog window [from, to]. A window whose ends are
// equal means the start could not really be determined, so it falls back to
// the 30 days leading up to the end.
func Window(since Since, to time.Time, tags TagSource, offset time.Duration) (time.Time, time.Time, error) {
	from, err := since.Resolve(tags, offset)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.Equal(to) {
		slog.Warn("Changelog window start equals its end, using the last 30 days instead")
		from = to.AddDate(0, 0, -30)
	}
	slog.Debug("Resolved changelog window", "from", from, "to", to)
	return from, to, nil
}
