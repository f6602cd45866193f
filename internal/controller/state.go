package controller

// State is the display state of a screen. Exactly one variant is held at a
// time; the set of variants is closed.
type State interface {
	state()
}

// Idle is the state before the first load.
type Idle struct{}

// Loading means a fetch is in flight.
type Loading struct{}

// Loaded carries the fetched value: []users.User for the list screen and
// users.User for the detail screen.
type Loaded[T any] struct {
	Value T
}

// Failed is the list screen's error state. It is left only by an explicit
// retry.
type Failed struct {
	Message string
}

// NotFound is the detail screen's terminal state when the record could not
// be fetched or the response held no usable record.
type NotFound struct {
	Message string
}

func (Idle) state()      {}
func (Loading) state()   {}
func (Loaded[T]) state() {}
func (Failed) state()    {}
func (NotFound) state()  {}

// IsLoading reports whether s is Loading.
func IsLoading(s State) bool {
	_, ok := s.(Loading)
	return ok
}

// Value returns the payload of a Loaded[T] state.
func Value[T any](s State) (T, bool) {
	l, ok := s.(Loaded[T])
	return l.Value, ok
}

// StateName is used in logs.
func StateName(s State) string {
	switch s.(type) {
	case nil, Idle:
		return "idle"
	case Loading:
		return "loading"
	case Failed:
		return "failed"
	case NotFound:
		return "not_found"
	default:
		return "loaded"
	}
}
