// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"math"

	"shooterx/internal/component"
	"shooterx/internal/config"
	"shooterx/internal/system"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	panelHeight    = 110
	panelMargin    = 10
	animationSpeed = 10.0
	lineHeight     = 18
)

// InfoPanel slides up from the bottom edge and describes one enemy.
type InfoPanel struct {
	IsVisible bool
	Target    *component.Enemy
	face      font.Face
	currentY  float64
	targetY   float64
}

func NewInfoPanel(face font.Face) *InfoPanel {
	return &InfoPanel{
		face:     face,
		currentY: config.ScreenHeight,
		targetY:  config.ScreenHeight,
	}
}

func (p *InfoPanel) SetTarget(e *component.Enemy) {
	p.Target = e
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Update animates the panel and hides it once its enemy is gone.
func (p *InfoPanel) Update() {
	if p.Target != nil && !p.Target.Alive {
		p.Hide()
	}
	if p.currentY == p.targetY {
		return
	}
	diff := p.targetY - p.currentY
	switch {
	case math.Abs(diff) < animationSpeed:
		p.currentY = p.targetY
	case diff > 0:
		p.currentY += animationSpeed
	default:
		p.currentY -= animationSpeed
	}
	if p.currentY >= config.ScreenHeight {
		p.IsVisible = false
		p.Target = nil
	}
}

func (p *InfoPanel) Draw(screen *ebiten.Image, groups *system.GroupCoordinator) {
	if !p.IsVisible || p.Target == nil {
		return
	}
	y := float32(p.currentY)
	vector.DrawFilledRect(screen, 0, y, config.ScreenWidth, panelHeight, config.OverlayColor, false)
	vector.StrokeLine(screen, 0, y, config.ScreenWidth, y, 1, config.TextLightColor, false)

	e := p.Target
	group := "none"
	if g, ok := groups.GroupOf(e.ID); ok {
		role := "member"
		if g.Leader == e {
			role = "leader"
		}
		group = fmt.Sprintf("#%d %s of %d", g.ID, role, len(g.Members))
	}
	lines := []string{
		fmt.Sprintf("%s #%d (%s)", e.Def.Name, e.ID, e.Type),
		fmt.Sprintf("HP %.0f/%.0f   state %s", e.Health, e.MaxHealth, e.State),
		fmt.Sprintf("pos %.1f, %.1f   heading %.0f deg", e.Position.X, e.Position.Z, e.Rotation*180/math.Pi),
		fmt.Sprintf("group %s   worth %d", group, e.Def.Points),
	}
	for i, line := range lines {
		text.Draw(screen, line, p.face, panelMargin, int(y)+panelMargin+lineHeight*(i+1), config.TextLightColor)
	}
}
