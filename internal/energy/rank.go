// Package energy implements the daily energy (XP) engine: the additive score
// model, reward mode, trailing history and the rank lookup.
package energy

// Rank is a display tier for an energy value.
type Rank struct {
	Title     string
	Tier      int
	MinXP     int
	ColorHint string
}

// rankTable lists tiers highest first; lookup walks it top-down and returns
// the first threshold the value meets.
var rankTable = []Rank{
	{Title: "Laser Focused", Tier: 4, MinXP: 90, ColorHint: "#66bb6a"},
	{Title: "In the Zone", Tier: 3, MinXP: 70, ColorHint: "#9ccc65"},
	{Title: "Steady", Tier: 2, MinXP: 50, ColorHint: "#fff59d"},
	{Title: "Wandering", Tier: 1, MinXP: 30, ColorHint: "#ffb74d"},
	{Title: "Scattered", Tier: 0, MinXP: 0, ColorHint: "#ef5350"},
}

// clampXP bounds a value to the valid energy range.
func clampXP(xp int) int {
	if xp < 0 {
		return 0
	}
	if xp > 100 {
		return 100
	}
	return xp
}

// RankOf returns the rank tier for an energy value. Out-of-range input is
// clamped, so the function is total.
func RankOf(xp int) Rank {
	xp = clampXP(xp)
	for _, r := range rankTable {
		if xp >= r.MinXP {
			return r
		}
	}
	return rankTable[len(rankTable)-1]
}

// LevelOf returns the coarse 0-10 level for an energy value.
func LevelOf(xp int) int {
	return clampXP(xp) / 10
}

// NextRank returns the next-higher rank and the exact XP needed to reach it.
// At the top tier it returns the current rank and zero.
func NextRank(xp int) (Rank, int) {
	xp = clampXP(xp)
	current := RankOf(xp)
	if current.Tier == rankTable[0].Tier {
		return current, 0
	}
	for i := len(rankTable) - 1; i >= 0; i-- {
		if rankTable[i].Tier == current.Tier+1 {
			return rankTable[i], rankTable[i].MinXP - xp
		}
	}
	return current, 0
}
