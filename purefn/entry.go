package purefn

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// Entry is a snapshot of one cached result.
type Entry[O any] struct {
	Value   O
	Stored  time.Time
	Expires time.Time
	// NeverExpires is set when no ttl applies. Expires is then unset.
	NeverExpires bool
}

// Fresh reports whether the entry may still be served at now.
func (e Entry[O]) Fresh(now time.Time) bool {
	return e.NeverExpires || now.Before(e.Expires)
}

// Window returns the span during which the entry is served. It reports false
// for entries that never expire.
func (e Entry[O]) Window() (timespan.TimeSpan, bool) {
	if e.NeverExpires {
		return timespan.TimeSpan{}, false
	}
	return timespan.BetweenTimes(e.Stored, e.Expires), true
}
