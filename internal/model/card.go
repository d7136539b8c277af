package model

import (
	"strconv"

	kanerr "github.com/amterp/cards/internal/errors"
)

// Card is a single task record.
// ID is zero until a repository assigns it; it never changes afterwards.
// Schema changes require a version bump in internal/version/version.go.
type Card struct {
	ID      int    `json:"id"`
	Summary string `json:"summary,omitempty"`
	Owner   string `json:"owner,omitempty"`
	State   State  `json:"state"`
}

// NewCard builds an unsaved card. An empty state becomes DefaultState.
func NewCard(summary, owner string, state State) *Card {
	if state == "" {
		state = DefaultState
	}
	return &Card{
		Summary: summary,
		Owner:   owner,
		State:   state,
	}
}

// Equal reports whether all four fields match.
func (c *Card) Equal(other *Card) bool {
	if c == nil || other == nil {
		return c == other
	}
	return *c == *other
}

// Validate checks that the card's state is one of the fixed states.
func (c *Card) Validate() error {
	if !c.State.Valid() {
		return kanerr.InvalidState(string(c.State))
	}
	return nil
}

// Clone returns a copy that can be modified without touching the original.
func (c *Card) Clone() *Card {
	clone := *c
	return &clone
}

// Fields returns the display form: id, summary, owner, state.
func (c *Card) Fields() [4]string {
	return [4]string{strconv.Itoa(c.ID), c.Summary, c.Owner, string(c.State)}
}

// CardUpdate carries the fields to overwrite on a stored card.
// Pointer fields indicate "set this field"; nil means "don't change".
type CardUpdate struct {
	Summary *string
	Owner   *string
	State   *State
}

// IsEmpty reports whether the update would change nothing.
func (u CardUpdate) IsEmpty() bool {
	return u.Summary == nil && u.Owner == nil && u.State == nil
}

// Validate rejects updates that would assign an invalid state.
func (u CardUpdate) Validate() error {
	if u.State != nil && !u.State.Valid() {
		return kanerr.InvalidState(string(*u.State))
	}
	return nil
}

// Apply overwrites the non-nil fields of u onto card.
func (u CardUpdate) Apply(card *Card) {
	if u.Summary != nil {
		card.Summary = *u.Summary
	}
	if u.Owner != nil {
		card.Owner = *u.Owner
	}
	if u.State != nil {
		card.State = *u.State
	}
}

// ListFilter narrows a card listing.
// nil fields don't filter; any non-nil value, including "", must match exactly.
type ListFilter struct {
	Owner *string
	State *State
}

// Matches reports whether card passes every set filter.
func (f ListFilter) Matches(card *Card) bool {
	if f.Owner != nil && card.Owner != *f.Owner {
		return false
	}
	if f.State != nil && card.State != *f.State {
		return false
	}
	return true
}

// StateUpdate is shorthand for an update that only changes state.
func StateUpdate(s State) CardUpdate {
	return CardUpdate{State: &s}
}
