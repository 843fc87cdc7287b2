// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	MaxDeltaTime = 0.06

	// PixelsPerUnit maps world units onto the top-down view.
	PixelsPerUnit = 6.5

	HUDMargin       = 16
	HealthBarWidth  = 220
	HealthBarHeight = 14
)

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	FloorColor       = color.RGBA{38, 44, 58, 255}
	WallColor        = color.RGBA{150, 70, 70, 220}
	SpawnPointColor  = color.RGBA{70, 100, 120, 160}
	PlayerColor      = color.RGBA{50, 205, 50, 255}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	BossWaveColor    = color.RGBA{220, 60, 60, 255}
	WaveColor        = color.RGBA{70, 130, 180, 255}
	ShotColor        = color.RGBA{255, 255, 0, 160}
	GroupLinkColor   = color.RGBA{255, 255, 255, 60}
	HealthFullColor  = color.RGBA{50, 100, 255, 255}
	HealthLowColor   = color.RGBA{220, 60, 60, 255}
	HealthEmptyColor = color.RGBA{0, 0, 0, 200}
	OverlayColor     = color.RGBA{0, 0, 0, 128}

	EnemyColors = map[string]color.RGBA{
		"GRUNT":     {200, 200, 200, 255},
		"SCOUT":     {255, 215, 0, 255},
		"HEAVY":     {180, 50, 230, 255},
		"SNIPER":    {50, 255, 200, 255},
		"COMMANDER": {255, 140, 0, 255},
		"BOSS":      {255, 50, 50, 255},
	}
)
