package wistia

// Result is the outcome of an asynchronous call: either a value or an error.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the call succeeded
func (r Result[T]) Ok() bool {
	return r.Err == nil
}

// Unwrap returns the value and error as a regular Go pair
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

// async runs fn on its own goroutine and delivers exactly one Result on the
// returned channel, which is then closed.
func async[T any](fn func() (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		v, err := fn()
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}
