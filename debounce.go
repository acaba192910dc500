package hyperspace

import "time"

// Debouncer coalesces a burst of triggers into one action that becomes ready
// delay after the last trigger. It is polled from the update loop rather than
// running a timer goroutine.
type Debouncer struct {
	delay   time.Duration
	due     time.Time
	pending bool
}

// NewDebouncer returns a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger (re)starts the quiet period at now.
func (d *Debouncer) Trigger(now time.Time) {
	d.pending = true
	d.due = now.Add(d.delay)
}

// Ready reports true once per burst, on the first poll at or after the end
// of the quiet period.
func (d *Debouncer) Ready(now time.Time) bool {
	if !d.pending || now.Before(d.due) {
		return false
	}
	d.pending = false
	return true
}

// Pending reports whether a trigger is waiting for its quiet period.
func (d *Debouncer) Pending() bool {
	return d.pending
}
