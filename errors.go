package memarena

import (
	"errors"
	"fmt"

	"github.com/hupe1980/memarena/internal/arena"
)

var (
	// ErrArenaFull is returned when an allocation does not fit into the
	// remaining capacity. The arena state is unchanged; callers may retry
	// with a smaller request, Reset, or give up.
	ErrArenaFull = errors.New("not enough capacity")
	// ErrInvalidCount is returned for degenerate slice counts: zero,
	// negative, or large enough that the byte size would overflow.
	ErrInvalidCount = errors.New("invalid element count")
	// ErrClosed is returned when allocating from a closed arena.
	ErrClosed = errors.New("arena is closed")
	// ErrInvalidCapacity is returned by NewArena for a negative capacity.
	ErrInvalidCapacity = errors.New("invalid capacity")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, arena.ErrArenaFull):
		return fmt.Errorf("%w: %w", ErrArenaFull, err)
	case errors.Is(err, arena.ErrInvalidCount):
		return fmt.Errorf("%w: %w", ErrInvalidCount, err)
	case errors.Is(err, arena.ErrClosed):
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}

	return err
}
