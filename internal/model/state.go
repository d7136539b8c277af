package model

import (
	kanerr "github.com/amterp/cards/internal/errors"
)

// State is the workflow progress of a card.
type State string

const (
	StateTodo   State = "todo"
	StateInProg State = "in prog"
	StateDone   State = "done"
)

// DefaultState is assigned to cards created without an explicit state.
const DefaultState = StateTodo

// States returns the valid states in workflow order.
func States() []State {
	return []State{StateTodo, StateInProg, StateDone}
}

// Valid reports whether s is one of the fixed states.
func (s State) Valid() bool {
	switch s {
	case StateTodo, StateInProg, StateDone:
		return true
	}
	return false
}

func (s State) String() string {
	return string(s)
}

// ParseState converts user input into a State.
func ParseState(value string) (State, error) {
	s := State(value)
	if !s.Valid() {
		return "", kanerr.InvalidState(value)
	}
	return s, nil
}
