// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	"shooterx/internal/component"
	"shooterx/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// StateIndicator is a circle whose color follows the wave phase. It pulses
// briefly whenever the phase changes.
type StateIndicator struct {
	X, Y       float32
	Radius     float32
	lastPhase  component.WavePhase
	lastChange time.Time
}

func NewStateIndicator(x, y, radius float32) *StateIndicator {
	return &StateIndicator{X: x, Y: y, Radius: radius}
}

func phaseColor(p component.WavePhase) color.RGBA {
	switch p {
	case component.WaveActive:
		return config.HealthLowColor
	case component.WaveComplete:
		return config.PlayerColor
	default:
		return config.WaveColor
	}
}

func (i *StateIndicator) Draw(screen *ebiten.Image, phase component.WavePhase) {
	if phase != i.lastPhase {
		i.lastPhase = phase
		i.lastChange = time.Now()
	}
	elapsed := time.Since(i.lastChange).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	r := i.Radius * float32(scale)

	vector.DrawFilledCircle(screen, i.X, i.Y, r, phaseColor(phase), true)
	vector.StrokeCircle(screen, i.X, i.Y, r, 1, color.White, true)
}
