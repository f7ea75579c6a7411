package entity

// Life tracks the hit points of heroes and enemies.
type Life struct {
	Max     int
	Current int
	// Invincible counts the remaining ticks during which hurts are ignored.
	Invincible int

	OnHurt  func(l *Life, damage int)
	OnDeath func(l *Life)
}

// NewLife creates a full Life of max points.
func NewLife(max int) Life {
	if max <= 0 {
		max = 1
	}
	return Life{Max: max, Current: max}
}

func (l *Life) IsAlive() bool {
	return l != nil && l.Current > 0
}

// Hurt removes damage points unless invincible. It returns true if the hurt
// was applied and starts invincibility for the given number of ticks.
func (l *Life) Hurt(damage, invincibility int) bool {
	if l == nil || !l.IsAlive() || l.Invincible > 0 || damage <= 0 {
		return false
	}
	l.Current = max(0, l.Current-damage)
	l.Invincible = invincibility
	if l.OnHurt != nil {
		l.OnHurt(l, damage)
	}
	if l.Current == 0 && l.OnDeath != nil {
		l.OnDeath(l)
	}
	return true
}

// Heal restores points up to Max.
func (l *Life) Heal(points int) {
	if l == nil || !l.IsAlive() || points <= 0 {
		return
	}
	l.Current = min(l.Max, l.Current+points)
}

// Tick advances the invincibility timer by one tick.
func (l *Life) Tick() {
	if l != nil && l.Invincible > 0 {
		l.Invincible--
	}
}
