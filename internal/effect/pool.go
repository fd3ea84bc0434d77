package effect

import "github.com/vovakirdan/tui-hamster/internal/core"

// Pool owns an ordered set of effects. Insertion order is render order, so
// newer effects draw over older ones.
type Pool struct {
	effects []Effect

	// OnRelease, if set, is called once for each effect as it is removed.
	OnRelease func(Effect)
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{effects: make([]Effect, 0, 16)}
}

// Add appends an effect.
func (p *Pool) Add(e Effect) {
	p.effects = append(p.effects, e)
}

// Tick advances every effect and then drops the dead ones, keeping the
// relative order of the survivors.
func (p *Pool) Tick(dt float64) {
	for i := range p.effects {
		p.effects[i].Tick(dt)
	}

	n := 0
	for _, e := range p.effects {
		if e.Alive() {
			p.effects[n] = e
			n++
			continue
		}
		if p.OnRelease != nil {
			p.OnRelease(e)
		}
	}
	// Zero the tail so released effects are not kept reachable
	for i := n; i < len(p.effects); i++ {
		p.effects[i] = Effect{}
	}
	p.effects = p.effects[:n]
}

// Render draws all effects in insertion order.
func (p *Pool) Render(s *core.Screen) {
	for _, e := range p.effects {
		e.Render(s)
	}
}

// Len returns the number of effects held.
func (p *Pool) Len() int {
	return len(p.effects)
}

// Effects returns a copy of the held effects in render order.
func (p *Pool) Effects() []Effect {
	out := make([]Effect, len(p.effects))
	copy(out, p.effects)
	return out
}

// Clear releases every effect.
func (p *Pool) Clear() {
	if p.OnRelease != nil {
		for _, e := range p.effects {
			p.OnRelease(e)
		}
	}
	p.effects = p.effects[:0]
}
