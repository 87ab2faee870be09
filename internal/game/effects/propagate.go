package effects

// Propagate recomputes anthem bonuses across the battlefield. Every
// accumulator is cleared before any anthem is applied, so the pass is
// idempotent and never leaves a card with a partial bonus.
func Propagate(battlefield []Permanent) {
	for _, p := range battlefield {
		p.ResetAnthemBonus()
	}

	effects := make([]*AnthemEffect, 0, len(battlefield))
	for _, p := range battlefield {
		if e := NewAnthemEffect(p); e != nil {
			effects = append(effects, e)
		}
	}

	for _, e := range effects {
		for _, target := range battlefield {
			if e.AppliesTo(target) {
				e.Apply(target)
			}
		}
	}
}
