package stack

import (
	"errors"
)

var (
	Underflow = errors.New("stack underflow error")
)

// Stack is a LIFO of T backed by a slice. The zero value is an empty stack.
type Stack[T any] struct {
	data []T
}

// New returns an empty stack with room for size elements before it grows
func New[T any](size int) Stack[T] {
	return Stack[T]{data: make([]T, 0, size)}
}

// Push pushes an object onto the stack
func (s *Stack[T]) Push(obj T) {
	s.data = append(s.data, obj)
}

// Pop pops the top element from the stack or returns an Underflow error if there is None
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	top := len(s.data) - 1
	if top < 0 {
		return zero, Underflow
	}
	ret := s.data[top]
	// don't keep popped elements reachable through the backing array
	s.data[top] = zero
	s.data = s.data[:top]
	return ret, nil
}

// Top returns the top element of the stack (without popping) or returns
// an Underflow error if there is none.
func (s *Stack[T]) Top() (T, error) {
	if len(s.data) == 0 {
		var zero T
		return zero, Underflow
	}
	return s.data[len(s.data)-1], nil
}

// Len returns the number of elements in the stack
func (s *Stack[T]) Len() int {
	return len(s.data)
}
