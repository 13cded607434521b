package energy

import "testing"

func TestRankOf(t *testing.T) {
	tests := []struct {
		xp        int
		wantTitle string
		wantTier  int
	}{
		{100, "Laser Focused", 4},
		{90, "Laser Focused", 4},
		{89, "In the Zone", 3},
		{70, "In the Zone", 3},
		{69, "Steady", 2},
		{50, "Steady", 2},
		{49, "Wandering", 1},
		{30, "Wandering", 1},
		{29, "Scattered", 0},
		{0, "Scattered", 0},
		{-5, "Scattered", 0},
		{300, "Laser Focused", 4},
	}

	for _, tc := range tests {
		r := RankOf(tc.xp)
		if r.Title != tc.wantTitle || r.Tier != tc.wantTier {
			t.Errorf("RankOf(%d) = %q tier %d, want %q tier %d", tc.xp, r.Title, r.Tier, tc.wantTitle, tc.wantTier)
		}
	}
}

func TestRankOf_TierMonotonic(t *testing.T) {
	prev := RankOf(0).Tier
	for xp := 1; xp <= 100; xp++ {
		tier := RankOf(xp).Tier
		if tier < prev {
			t.Fatalf("tier decreased at xp=%d: %d -> %d", xp, prev, tier)
		}
		prev = tier
	}
}

func TestLevelOf(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{55, 5},
		{100, 10},
		{-1, 0},
		{150, 10},
	}

	for _, tc := range tests {
		if got := LevelOf(tc.xp); got != tc.want {
			t.Errorf("LevelOf(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}

func TestNextRank(t *testing.T) {
	next, delta := NextRank(45)
	if next.Title != "Steady" || delta != 5 {
		t.Errorf("NextRank(45) = %q delta %d, want Steady delta 5", next.Title, delta)
	}

	next, delta = NextRank(89)
	if next.Title != "Laser Focused" || delta != 1 {
		t.Errorf("NextRank(89) = %q delta %d, want Laser Focused delta 1", next.Title, delta)
	}

	// Max tier has nothing above it.
	next, delta = NextRank(95)
	if next.Title != "Laser Focused" || delta != 0 {
		t.Errorf("NextRank(95) = %q delta %d, want Laser Focused delta 0", next.Title, delta)
	}
}
