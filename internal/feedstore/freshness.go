package feedstore

import (
	"os"
	"time"
)

// Freshness classifies a cached artifact by its last-modified calendar
// date. Consumers must treat Stale and Absent identically: rebuild
// before serving.
type Freshness int

const (
	// Absent means no file on disk.
	Absent Freshness = iota
	// Stale means the file was last written on a prior calendar date.
	Stale
	// Fresh means the file was last written today.
	Fresh
)

func (f Freshness) String() string {
	switch f {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "absent"
	}
}

// Usable reports whether the artifact can be served as-is.
func (f Freshness) Usable() bool {
	return f == Fresh
}

// Freshness classifies the named artifact relative to now.
func (s *Store) Freshness(name string, now time.Time) Freshness {
	return FreshnessOf(s.Path(name), now)
}

// FreshnessOf classifies any path relative to now.
func FreshnessOf(path string, now time.Time) Freshness {
	info, err := os.Stat(path)
	if err != nil {
		return Absent
	}

	if sameDay(info.ModTime(), now) {
		return Fresh
	}
	return Stale
}

// ModifiedToday reports whether the path was last written on the
// calendar date of now.
func ModifiedToday(path string, now time.Time) bool {
	return FreshnessOf(path, now) == Fresh
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
