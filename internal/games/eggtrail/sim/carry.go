package sim

// carried holds deep copies of the gadgets that survive into the next level.
// Bounce pads do not carry.
type carried struct {
	pipes   []*Pipe
	blocks  []*Block
	turbos  []*TurboZone
	portals []*Portal
	storms  []*StormEmitter
}

func (w *World) captureCarry() carried {
	var c carried
	for _, p := range w.pipes {
		cp := *p
		c.pipes = append(c.pipes, &cp)
	}
	for _, b := range w.blocks {
		cb := *b
		c.blocks = append(c.blocks, &cb)
	}
	for _, z := range w.turbos {
		cz := *z
		c.turbos = append(c.turbos, &cz)
	}
	for _, p := range w.portals {
		cp := *p
		c.portals = append(c.portals, &cp)
	}
	for _, s := range w.storms {
		cs := *s
		cs.Phase = StormCounting
		cs.Tally = 0
		cs.Reward = 0
		c.storms = append(c.storms, &cs)
	}
	return c
}

// restoreCarry installs carried gadgets with fresh timers. An empty value
// clears every collection.
func (w *World) restoreCarry(c carried) {
	now := w.now()
	for _, b := range c.blocks {
		b.Active = true
		b.PhaseStarted = now
	}
	for _, s := range c.storms {
		s.PlacedAt = now
	}
	w.pipes = c.pipes
	w.blocks = c.blocks
	w.turbos = c.turbos
	w.portals = c.portals
	w.storms = c.storms
}
