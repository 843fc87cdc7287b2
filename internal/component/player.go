// internal/component/player.go
package component

// Player is the target every enemy hunts.
type Player struct {
	Position  Vec3
	Aim       float64
	Health    float64
	MaxHealth float64
	Alive     bool
	Damaged   float64 // total damage taken this run
}

func NewPlayer(maxHealth float64) *Player {
	return &Player{Health: maxHealth, MaxHealth: maxHealth, Alive: true}
}

// Pos returns the current position.
func (p *Player) Pos() Vec3 { return p.Position }

// TakeDamage lowers health and reports whether this call killed the player.
func (p *Player) TakeDamage(amount float64) bool {
	if !p.Alive || amount <= 0 {
		return false
	}
	p.Health -= amount
	p.Damaged += amount
	if p.Health > 0 {
		return false
	}
	p.Health = 0
	p.Alive = false
	return true
}

func (p *Player) Heal(amount float64) {
	if !p.Alive || amount <= 0 {
		return
	}
	p.Health = min(p.MaxHealth, p.Health+amount)
}

// Reset restores a fresh player at the origin.
func (p *Player) Reset() {
	*p = Player{Health: p.MaxHealth, MaxHealth: p.MaxHealth, Alive: true}
}
