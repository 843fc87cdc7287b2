// internal/render/colors.go
package render

import (
	"image/color"

	"shooterx/internal/config"
	"shooterx/internal/defs"
)

// ArenaColors holds the colors for the static arena background.
type ArenaColors struct {
	BackgroundColor color.RGBA
	FloorColor      color.RGBA
	WallColor       color.RGBA
	StrokeWidth     float32
}

func DefaultArenaColors() ArenaColors {
	return ArenaColors{
		BackgroundColor: config.BackgroundColor,
		FloorColor:      config.FloorColor,
		WallColor:       config.WallColor,
		StrokeWidth:     2,
	}
}

// EnemyColor looks up the body color for an enemy type. Unknown types
// draw white.
func EnemyColor(t defs.EnemyType) color.RGBA {
	if c, ok := config.EnemyColors[string(t)]; ok {
		return c
	}
	return color.RGBA{255, 255, 255, 255}
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}
