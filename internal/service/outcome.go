package service

import "fmt"

// Outcome is the result slot of one independent analysis step: either Data or
// an Error descriptor, never a propagated failure.
type Outcome[T any] struct {
	Data  T      `json:"data"`
	Error string `json:"error,omitempty"`
}

func (o Outcome[T]) OK() bool {
	return o.Error == ""
}

// capture runs fn and converts both returned errors and panics into an Outcome.
func capture[T any](fn func() (T, error)) (out Outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			out = Outcome[T]{Data: zero, Error: fmt.Sprintf("panic: %v", r)}
		}
	}()
	data, err := fn()
	if err != nil {
		var zero T
		return Outcome[T]{Data: zero, Error: err.Error()}
	}
	return Outcome[T]{Data: data}
}
