// internal/state/menu_state.go
package state

import (
	"image"

	"shooterx/internal/app"
	"shooterx/internal/config"
	"shooterx/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MenuState is the title screen. Space or the start button begins a run.
type MenuState struct {
	sm      *StateMachine
	newGame func() *app.Game
	start   *ui.MenuButton
}

func NewMenuState(sm *StateMachine, newGame func() *app.Game) *MenuState {
	cx, cy := config.ScreenWidth/2, config.ScreenHeight/2
	return &MenuState{
		sm:      sm,
		newGame: newGame,
		start:   ui.NewMenuButton(image.Rect(cx-100, cy, cx+100, cy+50), "START", ui.DefaultFace),
	}
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(deltaTime float64) {
	clicked := false
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		clicked = m.start.Contains(ebiten.CursorPosition())
	}
	if clicked || inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		m.sm.SetState(NewGameState(m.sm, m.newGame()))
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	ui.DrawCentered(screen, "SHOOTER X", ui.DefaultFace, config.ScreenWidth/2, config.ScreenHeight/2-60, config.TextLightColor)
	ui.DrawCentered(screen, "WASD move  mouse aim  click fire  F9 pause", ui.DefaultFace, config.ScreenWidth/2, config.ScreenHeight/2-30, config.TextLightColor)
	m.start.Draw(screen)
}

func (m *MenuState) Exit() {}
