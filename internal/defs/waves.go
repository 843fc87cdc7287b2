// internal/defs/waves.go
package defs

// WeightedEntry is one row of a weighted draw table.
type WeightedEntry struct {
	Type   EnemyType `json:"type"`
	Weight int       `json:"weight"`
}

// WaveTier is a weight table that applies from FromWave onwards.
type WaveTier struct {
	FromWave int
	Entries  []WeightedEntry
}

// WaveTiers shift the filler roster toward stronger types as waves climb.
// Ordered by FromWave ascending.
var WaveTiers = []WaveTier{
	{FromWave: 1, Entries: []WeightedEntry{
		{Type: EnemyGrunt, Weight: 70},
		{Type: EnemyScout, Weight: 30},
	}},
	{FromWave: 5, Entries: []WeightedEntry{
		{Type: EnemyGrunt, Weight: 45},
		{Type: EnemyScout, Weight: 25},
		{Type: EnemyHeavy, Weight: 20},
		{Type: EnemySniper, Weight: 10},
	}},
	{FromWave: 10, Entries: []WeightedEntry{
		{Type: EnemyGrunt, Weight: 30},
		{Type: EnemyScout, Weight: 25},
		{Type: EnemyHeavy, Weight: 25},
		{Type: EnemySniper, Weight: 20},
	}},
}

// WeightsForWave returns the weight table in force for the given wave.
func WeightsForWave(wave int) []WeightedEntry {
	entries := WaveTiers[0].Entries
	for _, tier := range WaveTiers {
		if wave >= tier.FromWave {
			entries = tier.Entries
		}
	}
	return entries
}

// EliteForWave names the forced elite token for a wave, if any:
// a boss on every tenth wave, a commander on other multiples of five
// and on every wave from the tenth on.
func EliteForWave(wave int) (EnemyType, bool) {
	if wave%5 != 0 && wave < 10 {
		return "", false
	}
	if wave%10 == 0 {
		return EnemyBoss, true
	}
	return EnemyCommander, true
}
