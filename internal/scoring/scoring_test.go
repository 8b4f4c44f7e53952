package scoring

import (
	"testing"

	"squad-builder/internal/domain"
	"squad-builder/internal/roster"

	"github.com/stretchr/testify/assert"
)

func members(ratings ...int) []roster.Occupant {
	out := make([]roster.Occupant, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, roster.Occupant{Stats: domain.Stats{Rating: r}})
	}
	return out
}

func TestTeamSynergy(t *testing.T) {
	prev := -1
	for n := 0; n <= roster.Size; n++ {
		got := TeamSynergy(members(make([]int, n)...))
		assert.Equal(t, 20*n, got, "members=%d", n)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}

	t.Run("full roster hits the cap exactly", func(t *testing.T) {
		assert.Equal(t, 100, TeamSynergy(members(1, 2, 3, 4, 5)))
	})

	t.Run("capped above five", func(t *testing.T) {
		assert.Equal(t, 100, TeamSynergy(members(1, 2, 3, 4, 5, 6)))
	})
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    int
	}{
		{"empty", nil, 0},
		{"single", []int{3150}, 3150},
		{"exact mean", []int{3200, 3000}, 3100},
		{"rounds half up", []int{2500, 2501}, 2501},
		{"rounds down", []int{1000, 1000, 1001}, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageRating(members(tt.ratings...)))
		})
	}
}

func TestPerformanceScore(t *testing.T) {
	tests := []struct {
		name  string
		stats domain.Stats
		want  int
	}{
		{
			name:  "capped rating",
			stats: domain.Stats{Rating: 3200, KD: 1.45, HeadshotPercentage: 42, WinRate: 65},
			want:  79,
		},
		{
			name:  "capped kd",
			stats: domain.Stats{Rating: 1500, KD: 3.5, HeadshotPercentage: 50, WinRate: 50},
			want:  65,
		},
		{
			name:  "zero",
			stats: domain.Stats{},
			want:  0,
		},
		{
			name:  "maximum",
			stats: domain.Stats{Rating: 5000, KD: 5, HeadshotPercentage: 100, WinRate: 100},
			want:  100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PerformanceScore(tt.stats))
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(members(3200, 2500))
	assert.Equal(t, Summary{Synergy: 40, AverageRating: 2850, ActiveCount: 2}, s)

	assert.Equal(t, Summary{}, Summarize(nil))
}
