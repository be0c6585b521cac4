// Package field implements a reactive state container for a single form field.
//
// A Controller owns one field: its value, its validation error and three
// flags (autovalidate, read-only, edited manually). Every mutation publishes a
// new immutable State snapshot through a state.Observable, so widgets only
// ever render complete snapshots.
//
// # Validation
//
// A synchronous Validator runs on every SetValue while autovalidate is on,
// and on demand through Validate. With autovalidate off, SetValue keeps the
// previous error, stale or not; call Validate explicitly.
//
// An AsyncValidator is debounced. Each SetValue cancels the pending check and
// arms a new one for the value just set; only the last one in a burst runs.
// Its result is written as the error of whatever state is current when it
// resolves, even if the value has changed in the meantime. A check that has
// already started is never cancelled by newer input.
//
//	username := field.New[string, string]("",
//	    field.WithValidator[string, string](func(v string) *string {
//	        if v == "" {
//	            return field.Invalid("required")
//	        }
//	        return nil
//	    }),
//	    field.WithAsyncValidator[string, string](func(ctx context.Context, v string) *string {
//	        if taken(ctx, v) {
//	            return field.Invalid("already taken")
//	        }
//	        return nil
//	    }),
//	)
//	defer username.Close()
//
//	username.SetAutovalidate(true)
//	username.SetValue("ada")
//
// # Read-only fields
//
// SetValue on a read-only field is silently ignored; ForceSetValue bypasses
// the flag. ValueSetter returns nil for a read-only field, which widgets use
// to render a disabled control.
package field
