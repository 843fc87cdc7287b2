// internal/state/pause_state.go
package state

import (
	"shooterx/internal/config"
	"shooterx/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var _ State = (*PauseState)(nil)

// PauseState freezes the game underneath it. The game keeps drawing but
// receives no updates, so its clock does not move.
type PauseState struct {
	sm       *StateMachine
	previous *GameState
}

func NewPauseState(sm *StateMachine, previous *GameState) *PauseState {
	return &PauseState{sm: sm, previous: previous}
}

func (s *PauseState) Enter() {
	s.previous.pauseButton.SetPaused(true)
}

func (s *PauseState) Update(deltaTime float64) {
	unpause := inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && s.previous.pauseButton.Contains(ebiten.CursorPosition()) {
		unpause = true
	}
	if unpause {
		s.previous.pauseButton.SetPaused(false)
		s.sm.SetState(s.previous)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previous.Draw(screen)
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, config.OverlayColor, false)
	ui.DrawCentered(screen, "PAUSED", ui.DefaultFace, config.ScreenWidth/2, config.ScreenHeight/2, config.TextLightColor)
}

func (s *PauseState) Exit() {}
