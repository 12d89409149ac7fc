package events

import "fmt"

// Event is implemented by every event kind.
type Event interface {
	// EventName returns a short name for logs and metrics.
	EventName() string
}

// Cancelable is the capability of events that a handler can veto.
type Cancelable interface {
	Event
	Cancel(reason string)
	Uncancel()
	CancellationReason() string
	IsCanceled() bool
}

// Cancellation implements Cancelable for the event kinds that embed it.
// The zero value is not canceled.
type Cancellation struct {
	reason   string
	canceled bool
}

// Cancel marks the event canceled. An empty reason still cancels.
func (c *Cancellation) Cancel(reason string) {
	c.reason = reason
	c.canceled = true
}

// Uncancel clears a previous cancellation.
func (c *Cancellation) Uncancel() {
	c.reason = ""
	c.canceled = false
}

// CancellationReason returns the reason given to Cancel, or "" when the
// event is not canceled.
func (c *Cancellation) CancellationReason() string {
	return c.reason
}

// IsCanceled reports whether Cancel was called since the last Uncancel.
func (c *Cancellation) IsCanceled() bool {
	return c.canceled
}

// Priority orders handlers for one event type. Constants are declared in
// run order, so a lower value runs earlier.
type Priority int

const (
	Highest Priority = iota
	High
	Normal
	Low
	Lowest
	// Monitor handlers run last and should only observe the outcome.
	Monitor
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case Highest:
		return "highest"
	case High:
		return "high"
	case Normal:
		return "normal"
	case Low:
		return "low"
	case Lowest:
		return "lowest"
	case Monitor:
		return "monitor"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// Valid reports whether p is one of the declared priorities.
func (p Priority) Valid() bool {
	return p >= Highest && p <= Monitor
}
