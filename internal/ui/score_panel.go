// internal/ui/score_panel.go
package ui

import (
	"fmt"

	"shooterx/internal/component"
	"shooterx/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

const scoreLineHeight = 16

// ScorePanel lists the wave snapshot in the top-left corner.
type ScorePanel struct {
	X, Y int
	face font.Face
}

func NewScorePanel(x, y int, face font.Face) *ScorePanel {
	return &ScorePanel{X: x, Y: y, face: face}
}

func (p *ScorePanel) lines(s component.WaveSnapshot) []string {
	return []string{
		fmt.Sprintf("WAVE %d  %s", s.Wave, s.State),
		fmt.Sprintf("KILLS %d/%d", s.Kills, s.Required),
		fmt.Sprintf("SCORE %d", s.Score),
		fmt.Sprintf("TOTAL %d", s.TotalScore),
		fmt.Sprintf("x%.2f  (acc %.2f, time %.2f)", s.Multiplier, s.AccuracyBonus, s.TimeBonus),
		fmt.Sprintf("ACCURACY %.0f%%  %d/%d", s.Accuracy, s.ShotsHit, s.ShotsFired),
	}
}

func (p *ScorePanel) Draw(screen *ebiten.Image, s component.WaveSnapshot) {
	for i, line := range p.lines(s) {
		text.Draw(screen, line, p.face, p.X, p.Y+i*scoreLineHeight, config.TextLightColor)
	}
}
