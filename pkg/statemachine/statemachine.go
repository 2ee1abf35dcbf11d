// Package statemachine implements Rob Pike's functional state machine
// pattern: a state is a function that does its work and returns the next
// state, with nil as the terminal state.
package statemachine

import (
	"fmt"
	"sync"
)

// StateFn is a single state. It may inspect and mutate the entity it runs
// against and must return the state the machine should occupy next.
type StateFn[T any] func(*T) StateFn[T]

// Machine drives an entity through StateFn transitions.
type Machine[T any] struct {
	mu     sync.RWMutex
	entity *T
	state  StateFn[T]
}

// New creates a machine for entity starting in the initial state. The
// initial state function is not executed until Step is called.
func New[T any](entity *T, initial StateFn[T]) *Machine[T] {
	return &Machine[T]{entity: entity, state: initial}
}

// Step executes the current state function once and adopts whatever state
// it returns. Stepping a terminated machine is a no-op.
func (m *Machine[T]) Step() {
	m.mu.Lock()
	state := m.state
	m.mu.Unlock()

	if state == nil {
		return
	}
	next := state(m.entity)

	m.mu.Lock()
	m.state = next
	m.mu.Unlock()
}

// Set forces the machine into the given state without executing it.
func (m *Machine[T]) Set(state StateFn[T]) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}

// Current returns the state the machine currently occupies.
func (m *Machine[T]) Current() StateFn[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Is reports whether the machine currently occupies the given state.
// Function values are not comparable in Go, so this compares code
// pointers the way the %p verb formats them.
func (m *Machine[T]) Is(state StateFn[T]) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fmt.Sprintf("%p", m.state) == fmt.Sprintf("%p", state)
}
