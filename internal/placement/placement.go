// Package placement manages the fixed-capacity display grids used to position
// sponsored job postings on the board. Each of the three tiers (top, middle,
// bottom) is a grid of slots addressed by a 1-based priority; the package
// computes slot occupancy from the current postings and drives the
// select-then-confirm protocol an operator uses to place a posting.
package placement

import (
	"github.com/google/uuid"
)

// Tier identifies one of the three display regions on the board.
type Tier string

// Display tiers, ordered top to bottom on the page.
const (
	TierTop    Tier = "top"
	TierMiddle Tier = "middle"
	TierBottom Tier = "bottom"
)

// Tiers lists all tiers in display order.
func Tiers() []Tier {
	return []Tier{TierTop, TierMiddle, TierBottom}
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierTop, TierMiddle, TierBottom:
		return true
	}
	return false
}

// Posting is the subset of a job posting the grid cares about.
// Position is empty and Priority zero for postings that are not placed.
type Posting struct {
	ID          uuid.UUID
	Title       string
	CompanyName string
	Position    Tier
	Priority    int
}

// Placed reports whether the posting currently occupies a slot.
func (p Posting) Placed() bool {
	return p.Position != "" && p.Priority >= 1
}

// Occupant records which posting holds a slot, for display and for
// disabling the slot in the picker.
type Occupant struct {
	JobID       uuid.UUID `json:"job_id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"company_name"`
	Priority    int       `json:"priority"`
}

// Slot is one addressable position within a tier grid.
type Slot struct {
	Tier     Tier      `json:"tier"`
	Index    int       `json:"index"` // 0-based, row-major
	Row      int       `json:"row"`
	Col      int       `json:"col"`
	Priority int       `json:"priority"` // Index + 1
	Occupied bool      `json:"occupied"`
	By       *Occupant `json:"by,omitempty"`
}

// Assignment is the result of a confirmed slot selection. The caller is
// responsible for persisting it and re-deriving occupancy afterwards.
type Assignment struct {
	Position Tier `json:"position"`
	Priority int  `json:"priority"`
}
