package blit

// Stack is a LIFO of render state with a default value reported when the
// stack is empty.
type Stack[T any] struct {
	name   string
	def    T
	values []T
}

// NewStack returns an empty stack whose Peek yields def. The name is only
// used in log output.
func NewStack[T any](name string, def T) *Stack[T] {
	return &Stack[T]{name: name, def: def}
}

// Push adds v on top.
func (s *Stack[T]) Push(v T) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top value. Popping an empty stack is a
// logic error: it is logged and the default is returned.
func (s *Stack[T]) Pop() T {
	if len(s.values) == 0 {
		logLogic("stack: pop on empty stack", "stack", s.name)
		return s.def
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v
}

// Peek returns the top value, or the default if empty.
func (s *Stack[T]) Peek() T {
	if len(s.values) == 0 {
		return s.def
	}
	return s.values[len(s.values)-1]
}

// Len returns the number of pushed values.
func (s *Stack[T]) Len() int { return len(s.values) }

// Default returns the value reported when the stack is empty.
func (s *Stack[T]) Default() T { return s.def }

// Clear drops all values, keeping the storage.
func (s *Stack[T]) Clear() {
	clear(s.values)
	s.values = s.values[:0]
}
