// Package events implements the event model and the dispatch kernel that
// routes decoded protocol events to handlers registered by extensions.
//
// # Events
//
// Every event kind is a concrete Go type implementing Event. Dispatch keys on
// the dynamic type of the value passed to Raise, so each distinct occurrence
// ("packet received", "chat sent") is its own type. Kinds that can be
// vetoed embed Cancellation, which gives them the Cancelable capability;
// kinds that report facts do not.
//
// # Dispatch
//
// Handlers are registered with an owner tag and a Priority. Raise invokes
// every handler registered for the event's type in run order: Highest, High,
// Normal, Low, Lowest, then Monitor. Handlers of equal priority run in
// registration order. Cancellation does not stop dispatch: every handler
// sees the event, and whoever called Raise decides what a cancellation means:
//
//	k := events.NewKernel()
//	events.On(k, "antispam", events.High, func(e *events.ChatEvent) error {
//	    if isSpam(e.Module.Text) {
//	        e.Cancel("spam")
//	    }
//	    return nil
//	})
//
//	ev := &events.ChatEvent{Session: 3, Module: chat}
//	k.Raise(ev)
//	if ev.IsCanceled() {
//	    // drop the message
//	}
//
// A handler that returns an error or panics is logged and counted; the
// remaining handlers still run and Raise itself never fails.
//
// # Concurrency
//
// The registration table is copy-on-write. Register, Remove and Deregister
// serialize on a mutex and publish a new table; Raise loads the current
// table without locking and iterates that snapshot. Handlers may therefore
// register, deregister or raise other events from inside a handler, and a
// slow handler never blocks registration or unrelated dispatch.
package events
