// internal/ui/pause_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PauseButton toggles between a pause glyph and a play glyph.
type PauseButton struct {
	X, Y           float32
	Size           float32
	LastToggleTime time.Time
	IsPaused       bool
	PauseColor     color.Color
	PlayColor      color.Color
}

func NewPauseButton(x, y, size float32, pauseColor, playColor color.Color) *PauseButton {
	return &PauseButton{
		X:          x,
		Y:          y,
		Size:       size,
		PauseColor: pauseColor,
		PlayColor:  playColor,
	}
}

func (b *PauseButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastToggleTime).Seconds()
	s := b.Size * float32(1.0+0.3*math.Exp(-elapsed*8))

	if b.IsPaused {
		var path vector.Path
		path.MoveTo(b.X-s, b.Y-s*1.2)
		path.LineTo(b.X-s, b.Y+s*1.2)
		path.LineTo(b.X+s, b.Y)
		path.Close()
		vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
		r, g, bl, a := b.PlayColor.RGBA()
		for i := range vs {
			vs[i].ColorR = float32(r) / 0xffff
			vs[i].ColorG = float32(g) / 0xffff
			vs[i].ColorB = float32(bl) / 0xffff
			vs[i].ColorA = float32(a) / 0xffff
		}
		screen.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
		return
	}

	w := s * 0.6
	h := s * 2.0
	gap := s * 0.4
	vector.DrawFilledRect(screen, b.X-w-gap/2, b.Y-h/2, w, h, b.PauseColor, false)
	vector.DrawFilledRect(screen, b.X+gap/2, b.Y-h/2, w, h, b.PauseColor, false)
}

// Contains reports whether a screen point lies on the button.
func (b *PauseButton) Contains(x, y int) bool {
	dx := float32(x) - b.X
	dy := float32(y) - b.Y
	return dx*dx+dy*dy <= b.Size*b.Size*4
}

func (b *PauseButton) SetPaused(paused bool) {
	if b.IsPaused != paused {
		b.LastToggleTime = time.Now()
	}
	b.IsPaused = paused
}

var pixel *ebiten.Image

// whitePixel is the 1×1 source image for triangle fills.
func whitePixel() *ebiten.Image {
	if pixel == nil {
		pixel = ebiten.NewImage(1, 1)
		pixel.Fill(color.White)
	}
	return pixel
}
