package placement

// Selector implements the slot selection protocol over a computed grid:
// exactly one free slot may be selected at a time, selecting an occupied
// slot is a no-op, and confirming with no selection is refused.
//
// A Selector is scoped to one assignment attempt for one posting. It is not
// safe for concurrent use; build one per request from fresh occupancy.
type Selector struct {
	grid     Grid
	selected *Slot
}

// NewSelector creates a selector over the given occupancy grid.
func NewSelector(grid Grid) *Selector {
	return &Selector{grid: grid}
}

// Select attempts to select the slot at (tier, index).
//
// Selecting an occupied slot leaves the current selection untouched and
// returns false. Selecting a free slot while another is selected replaces
// the selection. Unknown tiers or out-of-range indexes return an error.
func (s *Selector) Select(tier Tier, index int) (bool, error) {
	slot, ok := s.grid.SlotAt(tier, index)
	if !ok {
		return false, &ErrUnknownSlot{Tier: tier, Index: index}
	}
	if slot.Occupied {
		return false, nil
	}
	s.selected = &slot
	return true, nil
}

// Selected returns the currently selected slot, if any.
func (s *Selector) Selected() (Slot, bool) {
	if s.selected == nil {
		return Slot{}, false
	}
	return *s.selected, true
}

// Confirm finalizes the selection and returns the assignment the caller
// should persist: the selected tier and a 1-based priority equal to the
// slot index plus one. The selection is cleared on success.
func (s *Selector) Confirm() (Assignment, error) {
	if s.selected == nil {
		return Assignment{}, &ErrNoSelection{}
	}
	a := Assignment{
		Position: s.selected.Tier,
		Priority: s.selected.Index + 1,
	}
	s.selected = nil
	return a, nil
}

// Cancel discards the current selection without emitting an assignment.
func (s *Selector) Cancel() {
	s.selected = nil
}
