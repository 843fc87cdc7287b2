// internal/config/tuning.go
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

var ErrInvalidTuning = errors.New("invalid tuning")

// Duration is a time.Duration that reads from TOML strings such as "2s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func Dur(d time.Duration) Duration { return Duration{d} }

// SpawnRing is one ring of candidate spawn points around the origin.
type SpawnRing struct {
	Radius float64 `toml:"radius"`
	Points int     `toml:"points"`
}

type SpawnTuning struct {
	MaxEnemies      int         `toml:"max_enemies"`
	CooldownBase    Duration    `toml:"cooldown_base"`
	CooldownFloor   Duration    `toml:"cooldown_floor"`
	CooldownDecay   Duration    `toml:"cooldown_decay_per_wave"`
	Rings           []SpawnRing `toml:"rings"`
	PointCooldown   Duration    `toml:"point_cooldown"`
	RequiredKillCap int         `toml:"required_kill_cap"`
}

type GroupTuning struct {
	JoinRadius         float64 `toml:"join_radius"`
	JoinExistingChance float64 `toml:"join_existing_chance"`
	Jitter             float64 `toml:"jitter"`
}

type BehaviorTuning struct {
	ChaseSpeedFactor   float64  `toml:"chase_speed_factor"`
	RotationSpeed      float64  `toml:"rotation_speed"`
	StuckCheckInterval Duration `toml:"stuck_check_interval"`
	StuckThreshold     float64  `toml:"stuck_threshold"`
	ArrivalDistance    float64  `toml:"arrival_distance"`
	BoundaryDistance   float64  `toml:"boundary_distance"`
}

type WaveTuning struct {
	RestartDelay Duration `toml:"restart_delay"`
}

type PlayerTuning struct {
	MaxHealth    float64  `toml:"max_health"`
	Speed        float64  `toml:"speed"`
	ShotDamage   float64  `toml:"shot_damage"`
	ShotRange    float64  `toml:"shot_range"`
	FireCooldown Duration `toml:"fire_cooldown"`
}

// Tuning holds every gameplay knob. Zero values are never meaningful;
// start from DefaultTuning.
type Tuning struct {
	Seed          int64          `toml:"seed"`
	ArenaHalfSize float64        `toml:"arena_half_size"`
	Spawn         SpawnTuning    `toml:"spawn"`
	Group         GroupTuning    `toml:"group"`
	Behavior      BehaviorTuning `toml:"behavior"`
	Wave          WaveTuning     `toml:"wave"`
	Player        PlayerTuning   `toml:"player"`
}

func DefaultTuning() Tuning {
	return Tuning{
		ArenaHalfSize: 60,
		Spawn: SpawnTuning{
			MaxEnemies:    30,
			CooldownBase:  Dur(2000 * time.Millisecond),
			CooldownFloor: Dur(500 * time.Millisecond),
			CooldownDecay: Dur(100 * time.Millisecond),
			Rings: []SpawnRing{
				{Radius: 30, Points: 12},
				{Radius: 40, Points: 16},
				{Radius: 50, Points: 20},
			},
			PointCooldown:   Dur(5 * time.Second),
			RequiredKillCap: 50,
		},
		Group: GroupTuning{
			JoinRadius:         20,
			JoinExistingChance: 0.7,
			Jitter:             1.5,
		},
		Behavior: BehaviorTuning{
			ChaseSpeedFactor:   0.8,
			RotationSpeed:      5,
			StuckCheckInterval: Dur(2 * time.Second),
			StuckThreshold:     0.5,
			ArrivalDistance:    1,
			BoundaryDistance:   45,
		},
		Wave: WaveTuning{
			RestartDelay: Dur(3 * time.Second),
		},
		Player: PlayerTuning{
			MaxHealth:    100,
			Speed:        10,
			ShotDamage:   35,
			ShotRange:    80,
			FireCooldown: Dur(150 * time.Millisecond),
		},
	}
}

// Validate reports tuning values the core cannot run with.
func (t Tuning) Validate() error {
	switch {
	case t.ArenaHalfSize <= 0:
		return fmt.Errorf("%w: arena_half_size must be positive", ErrInvalidTuning)
	case t.Spawn.MaxEnemies <= 0:
		return fmt.Errorf("%w: spawn.max_enemies must be positive", ErrInvalidTuning)
	case t.Spawn.CooldownFloor.Duration < 0 || t.Spawn.CooldownBase.Duration < t.Spawn.CooldownFloor.Duration:
		return fmt.Errorf("%w: need 0 <= spawn.cooldown_floor <= spawn.cooldown_base", ErrInvalidTuning)
	case t.Spawn.CooldownDecay.Duration < 0:
		return fmt.Errorf("%w: negative spawn.cooldown_decay_per_wave", ErrInvalidTuning)
	case len(t.Spawn.Rings) == 0:
		return fmt.Errorf("%w: spawn.rings is empty", ErrInvalidTuning)
	case t.Spawn.RequiredKillCap < 1:
		return fmt.Errorf("%w: spawn.required_kill_cap must be at least 1", ErrInvalidTuning)
	case t.Group.JoinExistingChance < 0 || t.Group.JoinExistingChance > 1:
		return fmt.Errorf("%w: group.join_existing_chance outside [0,1]", ErrInvalidTuning)
	case t.Group.JoinRadius < 0 || t.Group.Jitter < 0:
		return fmt.Errorf("%w: negative group radius or jitter", ErrInvalidTuning)
	case t.Behavior.ChaseSpeedFactor <= 0 || t.Behavior.StuckCheckInterval.Duration <= 0:
		return fmt.Errorf("%w: behavior chase factor and stuck interval must be positive", ErrInvalidTuning)
	case t.Wave.RestartDelay.Duration < 0:
		return fmt.Errorf("%w: negative wave.restart_delay", ErrInvalidTuning)
	case t.Player.MaxHealth <= 0:
		return fmt.Errorf("%w: player.max_health must be positive", ErrInvalidTuning)
	}
	for i, ring := range t.Spawn.Rings {
		if ring.Radius <= 0 || ring.Points <= 0 {
			return fmt.Errorf("%w: spawn ring %d needs positive radius and points", ErrInvalidTuning, i)
		}
	}
	return nil
}

// Load reads a TOML tuning file over DefaultTuning. Keys absent from the
// file keep their defaults.
func Load(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	meta, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to decode tuning file: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Tuning{}, fmt.Errorf("%w: unknown key %q", ErrInvalidTuning, undecoded[0].String())
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}
