// Package debounce provides a cancel-and-restart scheduled callback.
//
// A Timer collects rapid triggers and runs only the callback armed by the
// most recent one, after things settle:
//
//	t := debounce.New()
//	for _, v := range burst {
//	    t.Schedule(300*time.Millisecond, func() { check(v) })
//	}
//	// check runs once, with the last v, 300ms after the burst ends.
//
// Each Schedule stops the previously armed callback. A callback whose
// underlying timer already fired but lost the race with a newer Schedule or
// a Stop is recognised by its generation and does nothing. A callback that
// has already started running is not interrupted.
package debounce
