// Package roster holds the five-slot team roster and the pure checks that
// decide whether a player or role may be placed into it.
//
// A Roster is a plain state container. It never rejects a mutation for
// uniqueness reasons; callers consult the validator functions first.
package roster

import (
	"fmt"
	"iter"

	"squad-builder/internal/domain"
)

// Size is the fixed number of slots in every roster.
const Size = 5

type Occupant struct {
	Nickname string
	Role     domain.Role
	Stats    domain.Stats
}

type Slot struct {
	ID       int
	Occupant *Occupant // nil when the slot is empty
}

func (s Slot) Occupied() bool {
	return s.Occupant != nil
}

// Roster is an ordered set of exactly Size slots. Slot ids are assigned once
// in New and never change.
type Roster struct {
	slots [Size]Slot
}

func New() *Roster {
	r := &Roster{}
	for i := range r.slots {
		r.slots[i] = Slot{ID: i}
	}
	return r
}

func validSlot(id int) error {
	if id < 0 || id >= Size {
		return fmt.Errorf("%w: %d", domain.ErrInvalidSlot, id)
	}
	return nil
}

// Occupy replaces whatever is in the slot with a new occupant.
func (r *Roster) Occupy(slotID int, nickname string, role domain.Role, stats domain.Stats) error {
	if err := validSlot(slotID); err != nil {
		return err
	}
	r.slots[slotID].Occupant = &Occupant{
		Nickname: nickname,
		Role:     role,
		Stats:    stats,
	}
	return nil
}

// SetRole changes the role of an occupied slot.
func (r *Roster) SetRole(slotID int, role domain.Role) error {
	if err := validSlot(slotID); err != nil {
		return err
	}
	occ := r.slots[slotID].Occupant
	if occ == nil {
		return fmt.Errorf("%w: %d", domain.ErrSlotEmpty, slotID)
	}
	updated := *occ
	updated.Role = role
	r.slots[slotID].Occupant = &updated
	return nil
}

// Vacate empties the slot. Vacating an empty slot is a no-op.
func (r *Roster) Vacate(slotID int) error {
	if err := validSlot(slotID); err != nil {
		return err
	}
	r.slots[slotID].Occupant = nil
	return nil
}

func (r *Roster) Slot(slotID int) (Slot, error) {
	if err := validSlot(slotID); err != nil {
		return Slot{}, err
	}
	return copySlot(r.slots[slotID]), nil
}

// Slots returns a copy of all slots in id order.
func (r *Roster) Slots() []Slot {
	out := make([]Slot, 0, Size)
	for _, s := range r.slots {
		out = append(out, copySlot(s))
	}
	return out
}

// ActiveSlots yields the occupied slots in ascending id order. The sequence
// reads the roster on every iteration, so ranging over it again after a
// mutation reflects the new state.
func (r *Roster) ActiveSlots() iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		for _, s := range r.slots {
			if !s.Occupied() {
				continue
			}
			if !yield(copySlot(s)) {
				return
			}
		}
	}
}

func (r *Roster) ActiveCount() int {
	n := 0
	for range r.ActiveSlots() {
		n++
	}
	return n
}

// Members collects the occupants of the active slots.
func (r *Roster) Members() []Occupant {
	var out []Occupant
	for s := range r.ActiveSlots() {
		out = append(out, *s.Occupant)
	}
	return out
}

func (r *Roster) Clone() *Roster {
	c := &Roster{}
	for i, s := range r.slots {
		c.slots[i] = copySlot(s)
	}
	return c
}

// Equal reports whether both rosters hold the same occupants slot by slot.
func (r *Roster) Equal(other *Roster) bool {
	for i := range r.slots {
		a, b := r.slots[i].Occupant, other.slots[i].Occupant
		if (a == nil) != (b == nil) {
			return false
		}
		if a != nil && *a != *b {
			return false
		}
	}
	return true
}

func copySlot(s Slot) Slot {
	if s.Occupant == nil {
		return s
	}
	occ := *s.Occupant
	return Slot{ID: s.ID, Occupant: &occ}
}
