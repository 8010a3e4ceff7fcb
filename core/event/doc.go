// Package event provides stoppable events with a parameter payload and a
// synchronous dispatcher.
//
// # Events
//
// An Event has a name, a generated ID, a creation time, a payload store and a
// stop flag. The payload accessors behave like the ones of params.Store.
//
//	evt := event.New("order.placed", map[string]any{"order_id": 17, "total": 42.5})
//	evt.Get("order_id", params.Null()).String() // "17"
//	evt.Set("currency", params.String("EUR"))
//
// # Dispatching
//
// A Dispatcher runs listeners one after another in registration order.
// Listeners registered under Wildcard run after the named ones. Any listener
// can end propagation by calling Stop:
//
//	d := event.NewDispatcher(event.WithLogger(log))
//
//	d.ListenFunc("order.placed", func(ctx context.Context, evt *event.Event) error {
//		if evt.Get("total", params.Int(0)).String() == "0" {
//			evt.Stop()
//		}
//		return nil
//	})
//	d.ListenFunc(event.Wildcard, audit)
//
//	if err := d.Dispatch(ctx, evt); err != nil {
//		// errors from every failing listener, joined
//	}
//
// Listener errors do not stop propagation. Panics are recovered into
// ErrListenerPanic. Listeners can read the event metadata from the context
// with MetaFromContext, or EventID, EventName and EventTime.
package event
