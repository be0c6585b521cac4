package field

import "encoding/json"

// State is an immutable snapshot of a field.
//
// The error is kept as a value plus a presence flag so that "no error" is
// distinct from any E, including E's zero value.
type State[T, E any] struct {
	value          T
	err            E
	hasErr         bool
	autovalidate   bool
	readOnly       bool
	editedManually bool
}

// NewState returns the initial snapshot for value: no error and every flag off.
func NewState[T, E any](value T) State[T, E] {
	return State[T, E]{value: value}
}

// Value returns the field value.
func (s State[T, E]) Value() T { return s.value }

// Error returns the validation error and whether there is one.
func (s State[T, E]) Error() (E, bool) { return s.err, s.hasErr }

// Err returns a copy of the validation error, or nil when the field is valid.
func (s State[T, E]) Err() *E {
	if !s.hasErr {
		return nil
	}
	e := s.err
	return &e
}

// IsValid reports whether the field has no error.
func (s State[T, E]) IsValid() bool { return !s.hasErr }

// Autovalidate reports whether value changes are validated immediately.
func (s State[T, E]) Autovalidate() bool { return s.autovalidate }

// ReadOnly reports whether value changes are blocked.
func (s State[T, E]) ReadOnly() bool { return s.readOnly }

// EditedManually reports the caller-managed manual edit flag.
func (s State[T, E]) EditedManually() bool { return s.editedManually }

func (s State[T, E]) withValue(value T) State[T, E] {
	s.value = value
	return s
}

// withError sets the error to *err, or clears it when err is nil.
func (s State[T, E]) withError(err *E) State[T, E] {
	if err == nil {
		var zero E
		s.err, s.hasErr = zero, false
		return s
	}
	s.err, s.hasErr = *err, true
	return s
}

func (s State[T, E]) withAutovalidate(on bool) State[T, E] {
	s.autovalidate = on
	return s
}

func (s State[T, E]) withReadOnly(on bool) State[T, E] {
	s.readOnly = on
	return s
}

func (s State[T, E]) withEditedManually(on bool) State[T, E] {
	s.editedManually = on
	return s
}

type stateJSON[T, E any] struct {
	Value          T    `json:"value"`
	Error          *E   `json:"error"`
	Autovalidate   bool `json:"autovalidate"`
	ReadOnly       bool `json:"read_only"`
	EditedManually bool `json:"edited_manually"`
}

// MarshalJSON implements json.Marshaler. A valid field has "error": null.
func (s State[T, E]) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON[T, E]{
		Value:          s.value,
		Error:          s.Err(),
		Autovalidate:   s.autovalidate,
		ReadOnly:       s.readOnly,
		EditedManually: s.editedManually,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *State[T, E]) UnmarshalJSON(data []byte) error {
	var raw stateJSON[T, E]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = State[T, E]{
		value:          raw.Value,
		autovalidate:   raw.Autovalidate,
		readOnly:       raw.ReadOnly,
		editedManually: raw.EditedManually,
	}.withError(raw.Error)
	return nil
}
