package requests

import "time"

// IsPending reports whether a request still needs attention. Movies qualify
// when unavailable and already released; shows qualify when any requested
// episode is unavailable.
func IsPending(r Request, now time.Time) bool {
	switch r.Kind {
	case KindMovie:
		if r.Available || r.ReleaseDate == nil || r.ReleaseDate.Time.IsZero() {
			return false
		}
		return !r.ReleaseDate.Time.After(now)
	case KindTV:
		return r.TV.HasUnavailableEpisode()
	default:
		return false
	}
}

// FilterPending returns the pending subset, preserving order.
func FilterPending(all []Request, now time.Time) []Request {
	out := make([]Request, 0, len(all))
	for _, r := range all {
		if IsPending(r, now) {
			out = append(out, r)
		}
	}
	return out
}
