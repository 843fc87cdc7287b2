// internal/ui/menu_button.go
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// MenuButton is a plain rectangular button for menus and overlays.
type MenuButton struct {
	Rect       image.Rectangle
	Text       string
	bgColor    color.RGBA
	hoverColor color.RGBA
	fgColor    color.Color
	face       font.Face
}

func NewMenuButton(rect image.Rectangle, label string, face font.Face) *MenuButton {
	return &MenuButton{
		Rect:       rect,
		Text:       label,
		bgColor:    color.RGBA{80, 80, 90, 255},
		hoverColor: color.RGBA{110, 110, 125, 255},
		fgColor:    color.White,
		face:       face,
	}
}

func (b *MenuButton) Draw(screen *ebiten.Image) {
	x, y := ebiten.CursorPosition()
	bg := b.bgColor
	if b.Contains(x, y) {
		bg = b.hoverColor
	}
	rx, ry := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	rw, rh := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, rx, ry, rw, rh, bg, false)
	vector.StrokeRect(screen, rx, ry, rw, rh, 2, color.RGBA{200, 200, 200, 255}, false)

	cx := b.Rect.Min.X + b.Rect.Dx()/2
	cy := b.Rect.Min.Y + b.Rect.Dy()/2 + b.face.Metrics().Ascent.Ceil()/2
	DrawCentered(screen, b.Text, b.face, cx, cy, b.fgColor)
}

// Contains reports whether a screen point lies on the button.
func (b *MenuButton) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}
