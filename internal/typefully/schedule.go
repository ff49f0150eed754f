package typefully

import "time"

// Schedule is the publish-time directive: either immediate or a concrete
// timestamp. Exactly one variant holds; a directive is computed once and
// submitted once.
type Schedule struct {
	immediate bool
	at        time.Time
}

// Immediate returns the "publish now" directive.
func Immediate() Schedule {
	return Schedule{immediate: true}
}

// DelayedBy returns a directive for from + hours in the given location.
func DelayedBy(from time.Time, hours int, loc *time.Location) Schedule {
	if loc == nil {
		loc = time.UTC
	}
	return Schedule{at: from.In(loc).Add(time.Duration(hours) * time.Hour)}
}

// PublishAt renders the directive as the API expects it: the literal "now"
// or an ISO-8601 timestamp with zone offset.
func (s Schedule) PublishAt() string {
	if s.immediate {
		return "now"
	}
	return s.at.Format("2006-01-02T15:04:05-07:00")
}

// IsImmediate reports whether the directive publishes immediately.
func (s Schedule) IsImmediate() bool {
	return s.immediate
}
