// internal/component/wave.go
package component

// WavePhase is the wave lifecycle state.
type WavePhase int

const (
	WaveWaiting WavePhase = iota
	WaveActive
	WaveComplete
)

func (p WavePhase) String() string {
	switch p {
	case WaveWaiting:
		return "WAITING"
	case WaveActive:
		return "ACTIVE"
	case WaveComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// ScoreRecord is the wave controller's private, mutable score state.
type ScoreRecord struct {
	Current       float64
	Total         float64
	Multiplier    float64
	ShotsFired    int
	ShotsHit      int
	TimeBonus     float64
	AccuracyBonus float64
}

// WaveSnapshot is the read-only view of a wave handed to the UI.
type WaveSnapshot struct {
	Wave          int
	State         WavePhase
	Kills         int
	Required      int
	Score         int
	TotalScore    int
	Multiplier    float64
	Accuracy      float64 // percent, 100 when no shots were fired
	AccuracyBonus float64
	TimeBonus     float64
	ShotsFired    int
	ShotsHit      int
}
