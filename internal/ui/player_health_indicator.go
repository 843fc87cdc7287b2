// internal/ui/player_health_indicator.go
package ui

import (
	"fmt"

	"shooterx/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// PlayerHealthIndicator draws the player's health as a bar with a label.
type PlayerHealthIndicator struct {
	X, Y          float32
	Width, Height float32
	face          font.Face
}

func NewPlayerHealthIndicator(x, y float32, face font.Face) *PlayerHealthIndicator {
	return &PlayerHealthIndicator{
		X:      x,
		Y:      y,
		Width:  config.HealthBarWidth,
		Height: config.HealthBarHeight,
		face:   face,
	}
}

// Draw fills the bar blue above half health and red at or below it.
func (i *PlayerHealthIndicator) Draw(screen *ebiten.Image, health, maxHealth float64) {
	frac := float32(0)
	if maxHealth > 0 {
		frac = float32(max(0, min(1, health/maxHealth)))
	}
	fill := config.HealthFullColor
	if frac <= 0.5 {
		fill = config.HealthLowColor
	}

	vector.DrawFilledRect(screen, i.X, i.Y, i.Width, i.Height, config.HealthEmptyColor, false)
	vector.DrawFilledRect(screen, i.X, i.Y, i.Width*frac, i.Height, fill, false)
	vector.StrokeRect(screen, i.X, i.Y, i.Width, i.Height, 1, config.TextLightColor, false)

	label := fmt.Sprintf("%.0f/%.0f", max(0, health), maxHealth)
	text.Draw(screen, label, i.face, int(i.X), int(i.Y)-4, config.TextLightColor)
}

// GetHeight returns the total height including the label.
func (i *PlayerHealthIndicator) GetHeight() float32 {
	return i.Height + 16
}
