// Package owner works out who "me" is for the --mine flags.
package owner

import (
	"errors"
)

// ErrUnknown is returned when no identity source yields a name.
var ErrUnknown = errors.New("cannot determine current user: set $CARDS_USER, configure 'git config user.name', or set $USER")

// NameSource supplies a user name, typically from git.
type NameSource interface {
	UserName() (string, error)
}

// Current returns the owner name for the current user using fallback chain:
// 1. $CARDS_USER
// 2. git config user.name (skipped if git is unavailable)
// 3. $USER
func Current(cardsUser, systemUser string, git NameSource) (string, error) {
	if cardsUser != "" {
		return cardsUser, nil
	}

	if git != nil {
		if name, err := git.UserName(); err == nil && name != "" {
			return name, nil
		}
	}

	if systemUser != "" {
		return systemUser, nil
	}

	return "", ErrUnknown
}
