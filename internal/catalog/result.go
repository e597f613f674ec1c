package catalog

// State is the lifecycle of a single fetch.
type State int

const (
	// StatePending means the fetch has not completed yet.
	StatePending State = iota
	// StateSucceeded means the fetch completed with a value.
	StateSucceeded
	// StateFailed means the fetch completed with an error.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "Loading"
	case StateSucceeded:
		return "Loaded"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Result is the outcome of a fetch: pending, succeeded with a value, or
// failed with an error. The zero value is pending.
type Result[T any] struct {
	state State
	value T
	err   error
}

// Pending returns a result for a fetch still in flight.
func Pending[T any]() Result[T] {
	return Result[T]{state: StatePending}
}

// Succeeded returns a completed result holding v.
func Succeeded[T any](v T) Result[T] {
	return Result[T]{state: StateSucceeded, value: v}
}

// Failed returns a completed result holding err.
func Failed[T any](err error) Result[T] {
	return Result[T]{state: StateFailed, err: err}
}

// State reports the lifecycle state.
func (r Result[T]) State() State { return r.state }

// Value returns the value and true if the fetch succeeded.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.state == StateSucceeded
}

// Err returns the failure, or nil unless the state is StateFailed.
func (r Result[T]) Err() error { return r.err }
