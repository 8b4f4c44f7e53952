// Package scoring computes team and player scores from roster snapshots.
package scoring

import (
	"math"

	"squad-builder/internal/domain"
	"squad-builder/internal/roster"
)

const (
	synergyPerMember = 20
	maxSynergy       = 100

	ratingCap = 3000.0
	kdCap     = 2.0

	ratingWeight   = 0.4
	kdWeight       = 0.3
	headshotWeight = 0.1
	winRateWeight  = 0.2
)

// TeamSynergy is a completeness proxy: every active member adds 20 points,
// capped at 100.
func TeamSynergy(members []roster.Occupant) int {
	return min(len(members)*synergyPerMember, maxSynergy)
}

// AverageRating is the rounded mean rating of members, or 0 for no members.
func AverageRating(members []roster.Occupant) int {
	if len(members) == 0 {
		return 0
	}
	total := 0
	for _, m := range members {
		total += m.Stats.Rating
	}
	return int(math.Round(float64(total) / float64(len(members))))
}

// PerformanceScore rates a single player. Rating above 3000 and K/D above 2.0
// are capped before weighting.
func PerformanceScore(stats domain.Stats) int {
	ratingScore := math.Min(float64(stats.Rating)/ratingCap, 1) * 100
	kdScore := math.Min(stats.KD/kdCap, 1) * 100

	score := ratingScore*ratingWeight +
		kdScore*kdWeight +
		float64(stats.HeadshotPercentage)*headshotWeight +
		float64(stats.WinRate)*winRateWeight
	return int(math.Round(score))
}

type Summary struct {
	Synergy       int
	AverageRating int
	ActiveCount   int
}

func Summarize(members []roster.Occupant) Summary {
	return Summary{
		Synergy:       TeamSynergy(members),
		AverageRating: AverageRating(members),
		ActiveCount:   len(members),
	}
}
