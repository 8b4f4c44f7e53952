package roster

import (
	"strings"

	"squad-builder/internal/domain"
)

// MinTeamSize is the smallest roster that may be saved as a team.
const MinTeamSize = 2

// CanAssignPlayer reports whether nickname is free, i.e. not bound to any
// occupied slot.
func CanAssignPlayer(r *Roster, nickname string) bool {
	for s := range r.ActiveSlots() {
		if s.Occupant.Nickname == nickname {
			return false
		}
	}
	return true
}

// CanAssignRole reports whether no slot other than excludingSlotID holds role.
// A slot can therefore always keep the role it already has.
func CanAssignRole(r *Roster, role domain.Role, excludingSlotID int) bool {
	if role == domain.RoleNone {
		return true
	}
	for s := range r.ActiveSlots() {
		if s.ID == excludingSlotID {
			continue
		}
		if s.Occupant.Role == role {
			return false
		}
	}
	return true
}

func CanSave(r *Roster, teamName string) bool {
	return strings.TrimSpace(teamName) != "" && r.ActiveCount() >= MinTeamSize
}

type RoleOption struct {
	Role       domain.Role
	Selectable bool
	Current    bool
}

// AvailableRoles lists every role for a slot's role picker. Roles held by
// other slots are not selectable; the slot's own role stays selectable.
func AvailableRoles(r *Roster, slotID int) []RoleOption {
	var current domain.Role
	if s, err := r.Slot(slotID); err == nil && s.Occupied() {
		current = s.Occupant.Role
	}

	options := make([]RoleOption, 0, len(domain.Roles))
	for _, role := range domain.Roles {
		options = append(options, RoleOption{
			Role:       role,
			Selectable: CanAssignRole(r, role, slotID),
			Current:    role == current,
		})
	}
	return options
}

// AvailablePlayers filters pool down to the players not yet on the roster,
// keeping pool order.
func AvailablePlayers(r *Roster, pool []domain.Player) []domain.Player {
	out := make([]domain.Player, 0, len(pool))
	for _, p := range pool {
		if CanAssignPlayer(r, p.Nickname) {
			out = append(out, p)
		}
	}
	return out
}
