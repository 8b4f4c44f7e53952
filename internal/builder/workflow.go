// Package builder drives one team-building session: it applies player and
// role selections to a roster, checking every change against the roster
// validator first, and packages the final roster into a team record.
package builder

import (
	"context"
	"fmt"
	"strings"

	"squad-builder/internal/domain"
	"squad-builder/internal/roster"
	"squad-builder/internal/scoring"
)

// TeamStore persists finished teams. Create assigns the id and creation time.
type TeamStore interface {
	Create(ctx context.Context, team domain.TeamRecord) (*domain.TeamRecord, error)
}

// Workflow is not safe for concurrent use; one editing session owns it.
type Workflow struct {
	roster *roster.Roster
	store  TeamStore
}

func New(store TeamStore) *Workflow {
	return &Workflow{
		roster: roster.New(),
		store:  store,
	}
}

// Roster returns a copy of the current roster.
func (w *Workflow) Roster() *roster.Roster {
	return w.roster.Clone()
}

// SelectPlayer puts p into the slot with a snapshot of its stats. The
// player's preferred role is assigned only if no other slot holds it.
// Selecting a player that sits in a different slot fails with
// ErrDuplicatePlayer.
func (w *Workflow) SelectPlayer(slotID int, p domain.Player) error {
	if _, err := w.roster.Slot(slotID); err != nil {
		return err
	}
	if !roster.CanAssignPlayer(w.roster, p.Nickname) {
		for s := range w.roster.ActiveSlots() {
			if s.Occupant.Nickname == p.Nickname && s.ID != slotID {
				return fmt.Errorf("%w: %s is in slot %d", domain.ErrDuplicatePlayer, p.Nickname, s.ID)
			}
		}
	}

	role := domain.RoleNone
	if roster.CanAssignRole(w.roster, p.PreferredRole, slotID) {
		role = p.PreferredRole
	}
	return w.roster.Occupy(slotID, p.Nickname, role, p.Stats())
}

// AssignRole sets the role of an occupied slot. RoleNone clears it.
func (w *Workflow) AssignRole(slotID int, role domain.Role) error {
	slot, err := w.roster.Slot(slotID)
	if err != nil {
		return err
	}
	if role != domain.RoleNone && !role.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}
	if !slot.Occupied() {
		return fmt.Errorf("%w: %d", domain.ErrSlotEmpty, slotID)
	}
	if !roster.CanAssignRole(w.roster, role, slotID) {
		return fmt.Errorf("%w: %s", domain.ErrRoleUnavailable, role)
	}
	return w.roster.SetRole(slotID, role)
}

func (w *Workflow) RemoveMember(slotID int) error {
	return w.roster.Vacate(slotID)
}

// Reset discards every binding.
func (w *Workflow) Reset() {
	w.roster = roster.New()
}

func (w *Workflow) Summary() scoring.Summary {
	return scoring.Summarize(w.roster.Members())
}

func (w *Workflow) CanSave(name string) bool {
	return roster.CanSave(w.roster, name)
}

// SaveTeam hands the current roster to the team store. Synergy is derived
// from the roster at this moment. The roster is left as is, whether or not
// the store accepts the team.
func (w *Workflow) SaveTeam(ctx context.Context, name string) (*domain.TeamRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidTeamName
	}
	members := w.roster.Members()
	if len(members) < roster.MinTeamSize {
		return nil, fmt.Errorf("%w: have %d", domain.ErrInsufficientMembers, len(members))
	}

	record := domain.TeamRecord{
		Name:         name,
		SynergyScore: scoring.TeamSynergy(members),
		Members:      make([]domain.TeamMember, 0, len(members)),
	}
	for _, m := range members {
		record.Members = append(record.Members, domain.TeamMember{
			Nickname: m.Nickname,
			Role:     m.Role,
			Stats:    m.Stats,
		})
	}

	saved, err := w.store.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to save team: %w", err)
	}
	return saved, nil
}
