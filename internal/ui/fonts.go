// internal/ui/fonts.go
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DefaultFace is the bitmap face every HUD element falls back to.
var DefaultFace font.Face = basicfont.Face7x13

// textWidth returns the advance of s in pixels.
func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// DrawCentered draws s centred horizontally on x with its baseline at y.
func DrawCentered(screen *ebiten.Image, s string, face font.Face, x, y int, clr color.Color) {
	text.Draw(screen, s, face, x-textWidth(face, s)/2, y, clr)
}

// drawOutlined draws s with a one-colour outline of the given thickness.
func drawOutlined(screen *ebiten.Image, s string, face font.Face, x, y, thickness int, fill, outline color.Color) {
	for dy := -thickness; dy <= thickness; dy++ {
		for dx := -thickness; dx <= thickness; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			text.Draw(screen, s, face, x+dx, y+dy, outline)
		}
	}
	text.Draw(screen, s, face, x, y, fill)
}
