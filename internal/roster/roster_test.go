package roster

import (
	"testing"

	"squad-builder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nikoStats = domain.Stats{Rating: 3150, KD: 1.25, HeadshotPercentage: 55, WinRate: 58}

func activeIDs(r *Roster) []int {
	var ids []int
	for s := range r.ActiveSlots() {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestNew(t *testing.T) {
	r := New()

	slots := r.Slots()
	require.Len(t, slots, Size)
	for i, s := range slots {
		assert.Equal(t, i, s.ID)
		assert.False(t, s.Occupied())
	}
	assert.Equal(t, 0, r.ActiveCount())
	assert.Empty(t, activeIDs(r))
}

func TestOccupy(t *testing.T) {
	t.Run("replaces occupant", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Occupy(2, "NiKo", domain.RoleEntry, nikoStats))
		require.NoError(t, r.Occupy(2, "ropz", domain.RoleLurker, domain.Stats{Rating: 2900}))

		s, err := r.Slot(2)
		require.NoError(t, err)
		require.True(t, s.Occupied())
		assert.Equal(t, "ropz", s.Occupant.Nickname)
		assert.Equal(t, domain.RoleLurker, s.Occupant.Role)
		assert.Equal(t, 2900, s.Occupant.Stats.Rating)
	})

	t.Run("does not check uniqueness", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Occupy(0, "NiKo", domain.RoleEntry, nikoStats))
		require.NoError(t, r.Occupy(1, "NiKo", domain.RoleEntry, nikoStats))
		assert.Equal(t, 2, r.ActiveCount())
	})

	t.Run("invalid slot", func(t *testing.T) {
		r := New()
		for _, id := range []int{-1, Size, 42} {
			err := r.Occupy(id, "NiKo", domain.RoleEntry, nikoStats)
			assert.ErrorIs(t, err, domain.ErrInvalidSlot)
		}
		assert.Equal(t, 0, r.ActiveCount())
	})
}

func TestVacate(t *testing.T) {
	r := New()
	require.NoError(t, r.Occupy(1, "NiKo", domain.RoleEntry, nikoStats))

	require.NoError(t, r.Vacate(1))
	assert.Equal(t, 0, r.ActiveCount())

	// already empty
	require.NoError(t, r.Vacate(1))
	require.NoError(t, r.Vacate(4))

	assert.ErrorIs(t, r.Vacate(5), domain.ErrInvalidSlot)
}

func TestSetRole(t *testing.T) {
	r := New()
	assert.ErrorIs(t, r.SetRole(0, domain.RoleIGL), domain.ErrSlotEmpty)
	assert.ErrorIs(t, r.SetRole(9, domain.RoleIGL), domain.ErrInvalidSlot)

	require.NoError(t, r.Occupy(0, "karrigan", domain.RoleNone, domain.Stats{Rating: 2500}))
	require.NoError(t, r.SetRole(0, domain.RoleIGL))

	s, err := r.Slot(0)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleIGL, s.Occupant.Role)
}

func TestActiveSlots(t *testing.T) {
	t.Run("ascending order", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Occupy(3, "c", domain.RoleNone, domain.Stats{}))
		require.NoError(t, r.Occupy(0, "a", domain.RoleNone, domain.Stats{}))
		require.NoError(t, r.Occupy(1, "b", domain.RoleNone, domain.Stats{}))

		assert.Equal(t, []int{0, 1, 3}, activeIDs(r))
	})

	t.Run("restartable and live", func(t *testing.T) {
		r := New()
		seq := r.ActiveSlots()
		require.NoError(t, r.Occupy(4, "a", domain.RoleNone, domain.Stats{}))

		count := func() int {
			n := 0
			for range seq {
				n++
			}
			return n
		}
		assert.Equal(t, 1, count())
		assert.Equal(t, 1, count())

		require.NoError(t, r.Occupy(2, "b", domain.RoleNone, domain.Stats{}))
		assert.Equal(t, 2, count())
	})

	t.Run("early stop", func(t *testing.T) {
		r := New()
		for i := range Size {
			require.NoError(t, r.Occupy(i, string(rune('a'+i)), domain.RoleNone, domain.Stats{}))
		}
		var seen []int
		for s := range r.ActiveSlots() {
			seen = append(seen, s.ID)
			if len(seen) == 2 {
				break
			}
		}
		assert.Equal(t, []int{0, 1}, seen)
	})

	t.Run("yields copies", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Occupy(0, "NiKo", domain.RoleEntry, nikoStats))
		for s := range r.ActiveSlots() {
			s.Occupant.Nickname = "changed"
		}
		s, err := r.Slot(0)
		require.NoError(t, err)
		assert.Equal(t, "NiKo", s.Occupant.Nickname)
	})
}

func TestCloneAndEqual(t *testing.T) {
	r := New()
	require.NoError(t, r.Occupy(0, "NiKo", domain.RoleEntry, nikoStats))

	c := r.Clone()
	assert.True(t, r.Equal(c))

	require.NoError(t, c.SetRole(0, domain.RoleAWP))
	assert.False(t, r.Equal(c))

	s, err := r.Slot(0)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEntry, s.Occupant.Role)

	require.NoError(t, c.Vacate(0))
	assert.False(t, r.Equal(c))
	assert.True(t, New().Equal(c))
}
