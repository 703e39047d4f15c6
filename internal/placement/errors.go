package placement

import "fmt"

// ErrNoSelection indicates Confirm was called while no slot is selected.
type ErrNoSelection struct{}

func (e *ErrNoSelection) Error() string {
	return "no slot selected"
}

// ErrUnknownSlot indicates a tier or index outside the grid.
type ErrUnknownSlot struct {
	Tier  Tier
	Index int
}

func (e *ErrUnknownSlot) Error() string {
	return fmt.Sprintf("unknown slot: tier %q index %d", e.Tier, e.Index)
}
