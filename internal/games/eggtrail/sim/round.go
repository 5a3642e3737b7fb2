package sim

import (
	"math"
	"time"
)

// RemainingTime returns the seconds left on the round clock. The first call
// that observes zero ends the round; the result becomes fail unless the
// target was already reached.
func (w *World) RemainingTime() float64 {
	remaining := w.remaining()
	if remaining == 0 && w.roundActive {
		w.roundActive = false
		if w.result != ResultSuccess {
			w.result = ResultFail
		}
		w.pending = nil
		w.boostActive = false
		w.status = ""
		w.emit(Event{Type: EventRoundEnded, Level: w.level, Result: w.result, Value: w.score})
	}
	return remaining
}

func (w *World) remaining() float64 {
	if !w.started {
		return w.cfg.Round.Time
	}
	return math.Max(0, w.cfg.Round.Time-w.now().Sub(w.roundStart).Seconds())
}

func (w *World) checkVictory() {
	if !w.roundActive || w.result == ResultSuccess {
		return
	}
	if w.score >= w.target {
		w.result = ResultSuccess
		w.emit(Event{Type: EventRoundWon, Level: w.level, Value: w.score})
	}
}

// ResetRound starts level afresh. With carry, placed gadgets survive with
// their ids and geometry; timers restart.
func (w *World) ResetRound(level int, carry bool) {
	level = max(level, 1)

	var kept carried
	if carry {
		kept = w.captureCarry()
	} else {
		w.purchases = [kindCount]int{}
		w.charges = [chargeCount]int{}
	}

	w.level = level
	w.target = w.cfg.Level(level).Target
	w.score = 0
	w.coins = w.cfg.Economy.StartingCoins
	w.result = ResultNone
	w.started = false
	w.roundActive = false
	w.roundStart = time.Time{}

	w.skills = [skillCount]bool{}
	w.spawnTimer = 0
	w.spawnCount = 0
	w.coinRainAcc = 0
	w.rapidFireAcc = 0

	w.balls = nil
	w.popups = nil
	w.powerups = nil
	w.pending = nil
	w.pads = nil
	w.nextPowerupAt = time.Time{}

	w.boostActive = false
	w.boostEndsAt = time.Time{}
	w.boostReadyAt = time.Time{}

	w.restoreCarry(kept)
	w.portalState = PortalInactive
	w.portalPhaseEnds = time.Time{}

	if w.advancedUnlocked() {
		w.charges[ChargeSpeedBoost] = max(w.charges[ChargeSpeedBoost], 1)
	}

	w.emit(Event{Type: EventRoundReset, Level: level})
	w.status = ""
	if !w.advancedUnlocked() {
		w.start()
	}
}

// AwaitingSkills reports whether the round waits for a skill selection.
func (w *World) AwaitingSkills() bool {
	return !w.started && w.advancedUnlocked()
}

// SkillAvailable reports whether s can be chosen on the current level.
func (w *World) SkillAvailable(s Skill) bool {
	switch s {
	case SkillSuperEgg, SkillCoinRain:
		return true
	case SkillRapidFire:
		return w.level >= w.cfg.Unlocks.RapidFire
	default:
		return false
	}
}

// SkillActive reports whether s is selected.
func (w *World) SkillActive(s Skill) bool {
	if s < 0 || s >= skillCount {
		return false
	}
	return w.skills[s]
}

// ToggleSkill flips s while the round waits for a selection.
func (w *World) ToggleSkill(s Skill) {
	if !w.AwaitingSkills() || !w.SkillAvailable(s) {
		return
	}
	w.skills[s] = !w.skills[s]
}

// ConfirmSkills starts the round when at least one skill is selected.
func (w *World) ConfirmSkills() bool {
	if !w.AwaitingSkills() {
		return false
	}
	for _, on := range w.skills {
		if on {
			w.start()
			return true
		}
	}
	w.status = "Pick at least one skill"
	return false
}

func (w *World) start() {
	now := w.now()
	w.started = true
	w.roundActive = true
	w.roundStart = now
	for _, bl := range w.blocks {
		bl.Active = true
		bl.PhaseStarted = now
	}
	for _, s := range w.storms {
		s.Phase = StormCounting
		s.PlacedAt = now
		s.Tally = 0
	}
	w.updatePortals()
	w.emit(Event{Type: EventRoundStarted, Level: w.level, Value: w.target})
}

// AdvanceLevel moves to the next level after a won round. Past the last
// level play wraps to level 1. Gadgets carry only when the level goes up.
func (w *World) AdvanceLevel() bool {
	if w.result != ResultSuccess {
		return false
	}
	next := w.level + 1
	if next > w.cfg.MaxLevel() {
		next = 1
	}
	w.ResetRound(next, next > w.level)
	return true
}

// Retry replays the current level from scratch.
func (w *World) Retry() {
	w.ResetRound(w.level, false)
}

// Restart returns to level 1 from scratch.
func (w *World) Restart() {
	w.ResetRound(1, false)
}
