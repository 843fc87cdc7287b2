// internal/ui/wave_indicator.go
package ui

import (
	"image/color"
	"strings"

	"shooterx/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
)

// WaveIndicator shows the current wave number in roman numerals.
type WaveIndicator struct {
	X, Y             int
	Color            color.RGBA
	BossColor        color.RGBA
	OutlineColor     color.Color
	OutlineThickness int
	face             font.Face
}

func NewWaveIndicator(x, y int, face font.Face) *WaveIndicator {
	return &WaveIndicator{
		X:                x,
		Y:                y,
		Color:            config.WaveColor,
		BossColor:        config.BossWaveColor,
		OutlineColor:     color.White,
		OutlineThickness: 1,
		face:             face,
	}
}

// toRoman converts a positive integer to roman numerals.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// Draw renders the indicator centred on X. Boss waves draw in red.
func (i *WaveIndicator) Draw(screen *ebiten.Image, waveNumber int) {
	if waveNumber <= 0 {
		return
	}
	s := toRoman(waveNumber)
	fill := i.Color
	if waveNumber%10 == 0 {
		fill = i.BossColor
	}
	x := i.X - textWidth(i.face, s)/2
	drawOutlined(screen, s, i.face, x, i.Y, i.OutlineThickness, fill, i.OutlineColor)
}
