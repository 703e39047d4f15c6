package placement

// TierGrid holds the computed slots of a single tier.
type TierGrid struct {
	Tier   Tier   `json:"tier"`
	Layout Layout `json:"layout"`
	Slots  []Slot `json:"slots"`
}

// OccupiedCount returns the number of occupied slots in the tier.
func (g TierGrid) OccupiedCount() int {
	n := 0
	for _, s := range g.Slots {
		if s.Occupied {
			n++
		}
	}
	return n
}

// FreeCount returns the number of selectable slots in the tier.
func (g TierGrid) FreeCount() int {
	return len(g.Slots) - g.OccupiedCount()
}

// Grid is the occupancy state of all tiers, derived from the current
// postings. It must be recomputed whenever the posting list changes; the
// engine holds no persistent state of its own.
type Grid struct {
	Tiers map[Tier]TierGrid `json:"tiers"`
}

// ComputeOccupancy derives slot occupancy for every tier from postings.
// A slot is occupied iff some posting holds its (position, priority) pair.
// If two postings claim the same pair (a data inconsistency) the slot is
// attributed to the first match in postings order and stays blocked.
// Postings whose priority falls outside the tier capacity are ignored.
func ComputeOccupancy(postings []Posting, layouts Layouts) Grid {
	occupants := make(map[Tier]map[int]Occupant)
	for _, tier := range Tiers() {
		occupants[tier] = make(map[int]Occupant)
	}

	for _, p := range postings {
		if !p.Placed() || !p.Position.Valid() {
			continue
		}
		layout, ok := layouts[p.Position]
		if !ok || p.Priority > layout.Capacity() {
			continue
		}
		if _, taken := occupants[p.Position][p.Priority]; taken {
			continue // first match wins
		}
		occupants[p.Position][p.Priority] = Occupant{
			JobID:       p.ID,
			Title:       p.Title,
			CompanyName: p.CompanyName,
			Priority:    p.Priority,
		}
	}

	grid := Grid{Tiers: make(map[Tier]TierGrid, len(layouts))}
	for _, tier := range Tiers() {
		layout := layouts[tier]
		slots := make([]Slot, layout.Capacity())
		for i := range slots {
			priority := i + 1
			slot := Slot{
				Tier:     tier,
				Index:    i,
				Row:      i / layout.Columns,
				Col:      i % layout.Columns,
				Priority: priority,
			}
			if by, ok := occupants[tier][priority]; ok {
				slot.Occupied = true
				occ := by
				slot.By = &occ
			}
			slots[i] = slot
		}
		grid.Tiers[tier] = TierGrid{Tier: tier, Layout: layout, Slots: slots}
	}
	return grid
}

// SlotAt returns the slot at the given 0-based index of a tier.
// ok is false when the tier is unknown or the index is out of range.
func (g Grid) SlotAt(tier Tier, index int) (Slot, bool) {
	tg, ok := g.Tiers[tier]
	if !ok || index < 0 || index >= len(tg.Slots) {
		return Slot{}, false
	}
	return tg.Slots[index], true
}
