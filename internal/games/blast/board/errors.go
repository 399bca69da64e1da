package board

import (
	"errors"
	"fmt"
)

// ErrEmptySeed is reported when a flood fill starts on a cell without a tile.
var ErrEmptySeed = errors.New("flood fill seed has no tile")

// ErrNoPlayableBoard is wrapped by New when no generated board ever held a
// minimum run.
var ErrNoPlayableBoard = errors.New("no playable board after repeated recreation")

// ConfigError describes a rejected board configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("board: invalid %s: %s", e.Field, e.Message)
}

// InvariantError signals a broken internal invariant: a bug in the caller's
// phase sequencing, or a board that never reaches a playable state.
type InvariantError struct {
	Op  string
	Err error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("board: invariant violated in %s: %v", e.Op, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
