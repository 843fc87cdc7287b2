// internal/state/game_state.go
package state

import (
	"fmt"
	"image"

	"shooterx/internal/app"
	"shooterx/internal/component"
	"shooterx/internal/config"
	"shooterx/internal/defs"
	"shooterx/internal/render"
	"shooterx/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// debugSpawnKeys maps the number row to enemy types for the spawn command.
var debugSpawnKeys = []struct {
	key ebiten.Key
	typ defs.EnemyType
}{
	{ebiten.Key1, defs.EnemyGrunt},
	{ebiten.Key2, defs.EnemyScout},
	{ebiten.Key3, defs.EnemyHeavy},
	{ebiten.Key4, defs.EnemySniper},
	{ebiten.Key5, defs.EnemyCommander},
	{ebiten.Key6, defs.EnemyBoss},
}

// GameState is the playing screen.
type GameState struct {
	sm              *StateMachine
	game            *app.Game
	renderer        *render.ArenaRenderer
	waveIndicator   *ui.WaveIndicator
	healthIndicator *ui.PlayerHealthIndicator
	scorePanel      *ui.ScorePanel
	stateIndicator  *ui.StateIndicator
	pauseButton     *ui.PauseButton
	infoPanel       *ui.InfoPanel
	restartButton   *ui.MenuButton
	showDebug       bool
}

func NewGameState(sm *StateMachine, g *app.Game) *GameState {
	m := config.HUDMargin
	cx, cy := config.ScreenWidth/2, config.ScreenHeight/2
	return &GameState{
		sm:              sm,
		game:            g,
		renderer:        render.NewArenaRenderer(g.Arena, render.DefaultArenaColors()),
		waveIndicator:   ui.NewWaveIndicator(cx, m+12, ui.DefaultFace),
		healthIndicator: ui.NewPlayerHealthIndicator(float32(m), float32(config.ScreenHeight-m-config.HealthBarHeight), ui.DefaultFace),
		scorePanel:      ui.NewScorePanel(m, m+12, ui.DefaultFace),
		stateIndicator:  ui.NewStateIndicator(float32(config.ScreenWidth-m-40), float32(m+12), 10),
		pauseButton:     ui.NewPauseButton(float32(config.ScreenWidth-m-10), float32(m+12), 8, config.TextLightColor, config.PlayerColor),
		infoPanel:       ui.NewInfoPanel(ui.DefaultFace),
		restartButton:   ui.NewMenuButton(image.Rect(cx-100, cy+30, cx+100, cy+80), "RESTART", ui.DefaultFace),
	}
}

func (s *GameState) Enter() {}

func (s *GameState) Update(deltaTime float64) {
	s.infoPanel.Update()

	if inpututil.IsKeyJustPressed(ebiten.KeyF9) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.sm.SetState(NewPauseState(s.sm, s))
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && s.pauseButton.Contains(ebiten.CursorPosition()) {
		s.sm.SetState(NewPauseState(s.sm, s))
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		s.showDebug = !s.showDebug
	}

	if s.game.IsGameOver() {
		restart := inpututil.IsKeyJustPressed(ebiten.KeyR)
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && s.restartButton.Contains(ebiten.CursorPosition()) {
			restart = true
		}
		if restart {
			s.game.Restart()
		}
		s.game.Update(deltaTime)
		return
	}

	s.handleDebugKeys()
	s.handleMovement(deltaTime)

	mx, my := ebiten.CursorPosition()
	s.game.AimAt(render.ToWorld(mx, my))
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		s.game.Fire()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		s.inspectAt(mx, my)
	}

	s.game.Update(deltaTime)
}

func (s *GameState) handleMovement(deltaTime float64) {
	var dx, dz float64
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		dz--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		dz++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		dx++
	}
	if dx != 0 || dz != 0 {
		s.game.MovePlayer(dx, dz, deltaTime)
	}
}

func (s *GameState) handleDebugKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		s.game.KillAll()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.game.ForceMaxWave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.game.Restart()
	}
	for _, k := range debugSpawnKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			s.game.SpawnEnemy(k.typ)
		}
	}
}

// inspectAt opens the info panel on the enemy under the cursor, or hides
// it when there is none.
func (s *GameState) inspectAt(x, y int) {
	p := render.ToWorld(x, y)
	for _, e := range s.game.EnemyManager.Enemies() {
		if e.Position.DistanceXZ(p) <= max(e.Def.HitboxRadius, 1) {
			s.infoPanel.SetTarget(e)
			return
		}
	}
	s.infoPanel.Hide()
}

func (s *GameState) Draw(screen *ebiten.Image) {
	s.renderer.Draw(screen, s.game)

	snap := s.game.Snapshot()
	s.scorePanel.Draw(screen, snap)
	s.waveIndicator.Draw(screen, snap.Wave)
	s.stateIndicator.Draw(screen, snap.State)
	s.pauseButton.Draw(screen)
	s.healthIndicator.Draw(screen, s.game.Player.Health, s.game.Player.MaxHealth)
	s.infoPanel.Draw(screen, s.game.EnemyManager.Groups())

	if s.showDebug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"TPS %.0f  enemies %d  pending %d  groups %d  faults %d  cooldown %s",
			ebiten.ActualTPS(),
			s.game.EnemyManager.LiveCount(),
			s.game.EnemyManager.PendingCount(),
			s.game.EnemyManager.Groups().Count(),
			s.game.EnemyManager.Faults(),
			s.game.EnemyManager.SpawnCooldown(),
		), config.HUDMargin, config.ScreenHeight-60)
	}

	if s.game.IsGameOver() {
		s.drawGameOver(screen, snap)
	}
}

func (s *GameState) drawGameOver(screen *ebiten.Image, snap component.WaveSnapshot) {
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, config.OverlayColor, false)
	cx, cy := config.ScreenWidth/2, config.ScreenHeight/2
	ui.DrawCentered(screen, "GAME OVER", ui.DefaultFace, cx, cy-40, config.BossWaveColor)
	ui.DrawCentered(screen, fmt.Sprintf("reached wave %d  total %d", snap.Wave, snap.TotalScore), ui.DefaultFace, cx, cy-15, config.TextLightColor)
	s.restartButton.Draw(screen)
}

func (s *GameState) Exit() {}
