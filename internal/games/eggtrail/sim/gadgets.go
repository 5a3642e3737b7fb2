package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/eggtrail/internal/config"
)

// applyTurbo bumps the ball by the strongest zone its step overlaps and
// multiplies its values once per zone entered from behind.
func (w *World) applyTurbo(b *Ball, dt, mult float64) {
	from, to := b.LastDistance, b.Distance
	best := 1.0
	for _, z := range w.turbos {
		start := w.distanceOf(z.StartProgress)
		end := w.distanceOf(z.EndProgress)
		if !(from < end && to > start) {
			continue
		}
		best = max(best, z.Multiplier)

		if from <= start && !b.TurboHits.Has(z.ID) {
			b.TurboHits.Add(z.ID)
			before := b.ScoreValue
			b.ScoreValue = int(math.Round(float64(b.ScoreValue) * z.Multiplier))
			b.CoinValue = int(math.Round(float64(b.CoinValue) * z.Multiplier))
			if delta := b.ScoreValue - before; delta > 0 {
				w.popup(fmt.Sprintf("+%d", delta), w.track.PointAtDistance(to), ToneBonus)
			}
		}
	}
	b.Distance += (best - 1) * b.Speed * mult * dt
}

func (w *World) applyBlocks(b *Ball) {
	for _, bl := range w.blocks {
		if !bl.Active || b.BlockHits.Has(bl.ID) {
			continue
		}
		if !crossed(b.LastDistance, w.distanceOf(bl.Progress), b.Distance) {
			continue
		}
		b.BlockHits.Add(bl.ID)
		b.Speed = math.Max(0, b.Speed*w.cfg.Block.SlowFactor)
		b.BonusScore += w.cfg.Block.Bonus
	}
}

// portalPair returns the entry and exit gates ordered by progress.
func (w *World) portalPair() (entry, exit *Portal, ok bool) {
	if len(w.portals) < 2 {
		return nil, nil, false
	}
	a, b := w.portals[0], w.portals[1]
	if b.Progress < a.Progress {
		a, b = b, a
	}
	if b.Progress <= a.Progress {
		return nil, nil, false
	}
	return a, b, true
}

func (w *World) applyPortals(b *Ball) {
	if w.portalState != PortalActive {
		return
	}
	entry, exit, ok := w.portalPair()
	if !ok || b.PortalHits.Has(entry.ID) {
		return
	}
	if !crossed(b.LastDistance, w.distanceOf(entry.Progress), b.Distance) {
		return
	}
	b.PortalHits.Add(entry.ID)
	b.Distance = math.Max(b.Distance, w.distanceOf(exit.Progress)+w.cfg.Portal.TeleportOffset)
	b.LastDistance = b.Distance
	b.Speed = math.Max(b.Speed, w.cfg.Portal.SpeedFloor)
	w.emit(Event{Type: EventTeleported, Kind: KindPortal, ID: entry.ID})
}

func (w *World) collectPowerups(b *Ball) {
	kept := w.powerups[:0]
	for _, p := range w.powerups {
		if crossed(b.LastDistance, w.distanceOf(p.Progress), b.Distance) {
			w.charges[p.Kind]++
			w.popup("+"+p.Kind.String(), w.track.PointAt(p.Progress), TonePickup)
			w.emit(Event{Type: EventPowerupCollected, Charge: p.Kind, ID: p.ID})
			continue
		}
		kept = append(kept, p)
	}
	w.powerups = kept
}

func (w *World) countStorms(b *Ball) {
	for _, s := range w.storms {
		if s.Phase != StormCounting {
			continue
		}
		if crossed(b.LastDistance, w.distanceOf(s.Progress), b.Distance) {
			s.Tally++
		}
	}
}

func (w *World) updateBlocks() {
	now := w.now()
	for _, bl := range w.blocks {
		elapsed := now.Sub(bl.PhaseStarted)
		switch {
		case bl.Active && elapsed >= bl.ActiveDuration:
			bl.PhaseStarted = now
			bl.Active = bl.CooldownDuration <= 0
		case !bl.Active && elapsed >= bl.CooldownDuration:
			bl.PhaseStarted = now
			bl.Active = true
		}
	}
}

// upgradeBlock applies the next step of the diminishing-returns schedule.
func (w *World) upgradeBlock(bl *Block) {
	steps := w.cfg.Block.Upgrades
	if len(steps) > 0 {
		step := steps[min(bl.Upgrades, len(steps)-1)]
		bl.ActiveDuration += config.Seconds(step.ActiveBonus)
		bl.CooldownDuration = max(0, bl.CooldownDuration-config.Seconds(step.CooldownCut))
	}
	bl.Upgrades++
}

func (w *World) resolvePads() {
	kept := w.pads[:0]
	for _, pad := range w.pads {
		if !pad.Ready {
			kept = append(kept, pad)
			continue
		}
		w.scatter(pad)
	}
	w.pads = kept
}

func (w *World) scatter(pad *BouncePad) {
	cfg := w.cfg.Pad
	n := cfg.DropMin
	if cfg.DropMax > cfg.DropMin {
		n += w.rng.IntN(cfg.DropMax - cfg.DropMin + 1)
	}
	expires := w.now().Add(config.Seconds(w.cfg.Powerups.Lifetime))
	for range n {
		offset := (w.rng.Float64()*2 - 1) * cfg.Spread
		w.addPowerup(Charge(w.rng.IntN(int(chargeCount))), clamp01(pad.Progress+offset), expires)
	}
	w.popup("supply!", pad.Pos, TonePickup)
	w.emit(Event{Type: EventPadScattered, Kind: KindPad, ID: pad.ID, Value: n})
}

func (w *World) addPowerup(kind Charge, progress float64, expires time.Time) {
	w.nextPowerupID++
	w.powerups = append(w.powerups, &Powerup{
		ID:        w.nextPowerupID,
		Kind:      kind,
		Progress:  progress,
		ExpiresAt: expires,
	})
}

func (w *World) updatePowerups() {
	now := w.now()
	kept := w.powerups[:0]
	for _, p := range w.powerups {
		if now.Before(p.ExpiresAt) {
			kept = append(kept, p)
		}
	}
	w.powerups = kept

	if !w.roundActive || !w.advancedUnlocked() {
		return
	}
	cfg := w.cfg.Powerups
	if w.nextPowerupAt.IsZero() {
		w.schedulePowerup(now)
		return
	}
	if now.Before(w.nextPowerupAt) {
		return
	}
	if len(w.powerups) < cfg.MaxActive {
		progress := cfg.MinProgress + w.rng.Float64()*(cfg.MaxProgress-cfg.MinProgress)
		w.addPowerup(Charge(w.rng.IntN(int(chargeCount))), progress, now.Add(config.Seconds(cfg.Lifetime)))
	}
	w.schedulePowerup(now)
}

func (w *World) schedulePowerup(now time.Time) {
	cfg := w.cfg.Powerups
	delay := cfg.DelayMin + w.rng.Float64()*(cfg.DelayMax-cfg.DelayMin)
	w.nextPowerupAt = now.Add(config.Seconds(delay))
}

func (w *World) updateStorms() {
	now := w.now()
	cfg := w.cfg.Storm
	kept := w.storms[:0]
	for _, s := range w.storms {
		switch s.Phase {
		case StormCounting:
			if now.Sub(s.PlacedAt) >= config.Seconds(cfg.Window) {
				w.rewardStorm(s)
			}
		case StormRewarding:
			if now.Sub(s.RewardAt) >= config.Seconds(cfg.DisplayDuration) {
				w.emit(Event{Type: EventGadgetExpired, Kind: KindStorm, ID: s.ID})
				continue
			}
		}
		kept = append(kept, s)
	}
	w.storms = kept
}

func (w *World) rewardStorm(s *StormEmitter) {
	cfg := w.cfg.Storm
	ratio := 1.0
	if cfg.Target > 0 {
		ratio = math.Min(1, float64(s.Tally)/float64(cfg.Target))
	}
	span := int(float64(cfg.RewardMax-cfg.RewardMin) * ratio)
	reward := cfg.RewardMin
	if span > 0 {
		reward += w.rng.IntN(span + 1)
	}

	s.Phase = StormRewarding
	s.Reward = reward
	s.RewardAt = w.now()
	if w.roundActive {
		w.score += reward
		w.coins += reward
	}
	w.popup(fmt.Sprintf("+%d", reward), s.Pos, ToneCoins)
	w.emit(Event{Type: EventStormReward, Kind: KindStorm, ID: s.ID, Value: reward})
	w.checkVictory()
}

func (w *World) updatePortals() {
	if len(w.portals) < 2 {
		w.portalState = PortalInactive
		return
	}
	now := w.now()
	cfg := w.cfg.Portal
	switch w.portalState {
	case PortalInactive:
		w.setPortalState(PortalActive, now.Add(config.Seconds(cfg.ActiveDuration)))
	case PortalActive:
		if !now.Before(w.portalPhaseEnds) {
			w.setPortalState(PortalCooldown, now.Add(config.Seconds(cfg.CooldownDuration)))
		}
	case PortalCooldown:
		if !now.Before(w.portalPhaseEnds) {
			w.setPortalState(PortalActive, now.Add(config.Seconds(cfg.ActiveDuration)))
		}
	}
}

func (w *World) setPortalState(s PortalState, ends time.Time) {
	w.portalState = s
	w.portalPhaseEnds = ends
	w.emit(Event{Type: EventPortalState, Kind: KindPortal, Value: int(s)})
}

// PortalPhaseRemaining returns the time left in the current portal phase.
func (w *World) PortalPhaseRemaining() time.Duration {
	if w.portalState == PortalInactive {
		return 0
	}
	return max(0, w.portalPhaseEnds.Sub(w.now()))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
