// internal/render/arena_renderer.go
package render

import (
	"image/color"
	"math"

	"shooterx/internal/app"
	"shooterx/internal/component"
	"shooterx/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ToScreen projects a world position onto the top-down view.
func ToScreen(p component.Vec3) (float32, float32) {
	x := float64(config.ScreenWidth)/2 + p.X*config.PixelsPerUnit
	y := float64(config.ScreenHeight)/2 + p.Z*config.PixelsPerUnit
	return float32(x), float32(y)
}

// ToWorld is the inverse of ToScreen on the ground plane.
func ToWorld(x, y int) component.Vec3 {
	return component.Vec3{
		X: (float64(x) - float64(config.ScreenWidth)/2) / config.PixelsPerUnit,
		Z: (float64(y) - float64(config.ScreenHeight)/2) / config.PixelsPerUnit,
	}
}

// ArenaRenderer draws the arena, its enemies and the player.
type ArenaRenderer struct {
	colors     ArenaColors
	arenaImage *ebiten.Image // pre-rendered floor and walls
}

func NewArenaRenderer(arena *app.Arena, colors ArenaColors) *ArenaRenderer {
	r := &ArenaRenderer{colors: colors}
	r.renderArenaImage(arena)
	return r
}

// renderArenaImage draws the static geometry once.
func (r *ArenaRenderer) renderArenaImage(arena *app.Arena) {
	img := ebiten.NewImage(config.ScreenWidth, config.ScreenHeight)
	img.Fill(r.colors.BackgroundColor)

	x0, y0 := ToScreen(component.Vec3{X: -arena.HalfSize, Z: -arena.HalfSize})
	size := float32(2 * arena.HalfSize * config.PixelsPerUnit)
	vector.DrawFilledRect(img, x0, y0, size, size, r.colors.FloorColor, false)
	vector.StrokeRect(img, x0, y0, size, size, r.colors.StrokeWidth, r.colors.WallColor, false)

	for _, p := range arena.Pillars {
		px, py := ToScreen(component.Vec3{X: p.MinX, Z: p.MinZ})
		w := float32((p.MaxX - p.MinX) * config.PixelsPerUnit)
		h := float32((p.MaxZ - p.MinZ) * config.PixelsPerUnit)
		vector.DrawFilledRect(img, px, py, w, h, r.colors.WallColor, false)
	}
	r.arenaImage = img
}

func (r *ArenaRenderer) Draw(screen *ebiten.Image, g *app.Game) {
	screen.DrawImage(r.arenaImage, nil)

	now := g.Clock.Now()
	for _, sp := range g.EnemyManager.SpawnPoints().Points() {
		x, y := ToScreen(sp.Position)
		c := config.SpawnPointColor
		if sp.Used && now-sp.LastUsed < g.Tuning.Spawn.PointCooldown.Duration {
			c = DarkenColor(c)
		}
		vector.StrokeCircle(screen, x, y, 4, 1, c, true)
	}

	for _, grp := range g.EnemyManager.Groups().Groups() {
		if grp.Leader == nil {
			continue
		}
		lx, ly := ToScreen(grp.Leader.Position)
		for _, m := range grp.Members {
			if m == grp.Leader || !m.Alive {
				continue
			}
			mx, my := ToScreen(m.Position)
			vector.StrokeLine(screen, lx, ly, mx, my, 1, config.GroupLinkColor, true)
		}
	}

	for _, e := range g.EnemyManager.Enemies() {
		r.drawEnemy(screen, e)
	}

	for _, t := range g.Tracers() {
		fx, fy := ToScreen(t.From)
		tx, ty := ToScreen(t.To)
		vector.StrokeLine(screen, fx, fy, tx, ty, 2, config.ShotColor, true)
	}

	r.drawPlayer(screen, g.Player)
}

func (r *ArenaRenderer) drawEnemy(screen *ebiten.Image, e *component.Enemy) {
	x, y := ToScreen(e.Position)
	radius := float32(max(e.Def.HitboxRadius, 0.4) * config.PixelsPerUnit)
	body := EnemyColor(e.Type)
	if e.State == component.Attacking {
		vector.DrawFilledCircle(screen, x, y, radius+2, config.HealthLowColor, true)
	}
	vector.DrawFilledCircle(screen, x, y, radius, body, true)

	hx := x + float32(math.Cos(e.Rotation))*radius*1.4
	hy := y + float32(math.Sin(e.Rotation))*radius*1.4
	vector.StrokeLine(screen, x, y, hx, hy, 2, DarkenColor(body), true)

	if e.Health < e.MaxHealth {
		w := radius * 2
		frac := float32(e.Health / e.MaxHealth)
		vector.DrawFilledRect(screen, x-radius, y-radius-6, w, 3, config.HealthEmptyColor, false)
		vector.DrawFilledRect(screen, x-radius, y-radius-6, w*frac, 3, config.HealthLowColor, false)
	}
}

func (r *ArenaRenderer) drawPlayer(screen *ebiten.Image, p *component.Player) {
	x, y := ToScreen(p.Position)
	c := config.PlayerColor
	if !p.Alive {
		c = DarkenColor(c)
	}
	const radius = 6
	vector.DrawFilledCircle(screen, x, y, radius, c, true)
	ax := x + float32(math.Cos(p.Aim))*radius*2
	ay := y + float32(math.Sin(p.Aim))*radius*2
	vector.StrokeLine(screen, x, y, ax, ay, 2, color.White, true)
}
