package sim

import (
	"math"
)

// Tick advances the world by dt seconds. It does nothing until the round
// has started.
func (w *World) Tick(dt float64) {
	if !w.started {
		return
	}
	w.RemainingTime()

	if w.roundActive {
		w.spawnTimer += dt
		for w.spawnTimer >= w.cfg.Physics.SpawnInterval {
			w.spawnBall()
			w.spawnTimer -= w.cfg.Physics.SpawnInterval
		}
	}

	w.updateBalls(dt)
	w.updateBlocks()
	w.resolvePads()
	w.updatePowerups()
	w.updateStorms()
	w.expirePopups()
	w.applySkillIncome(dt)
	w.applyRapidFire(dt)
	w.updatePortals()
	w.updateBoost()
}

func (w *World) spawnBall() {
	w.spawnCount++
	every := w.cfg.Skills.SpecialEvery
	special := w.skills[SkillSuperEgg] && every > 0 && w.spawnCount%every == 0
	value := 1
	if special {
		value = w.cfg.Skills.SpecialEggValue
	}
	colors := max(w.cfg.Physics.Colors, 1)
	b := newBall(len(w.balls)%colors, value, special)
	w.balls = append(w.balls, b)
	w.emit(Event{Type: EventBallSpawned, Value: value})
}

func (w *World) updateBalls(dt float64) {
	mult := w.multiplier()
	total := w.track.Total()

	kept := w.balls[:0]
	var completed []*Ball
	for _, b := range w.balls {
		w.advanceBall(b, dt, mult)
		if b.Distance >= total {
			completed = append(completed, b)
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(w.balls); i++ {
		w.balls[i] = nil
	}
	w.balls = kept

	for _, b := range completed {
		gain := b.ScoreValue + b.BonusScore
		coins := b.CoinValue + b.BonusScore
		if w.roundActive {
			w.score += gain
			w.coins += coins
		}
		w.emit(Event{Type: EventBallCompleted, Value: gain})
	}
	if len(completed) > 0 {
		w.checkVictory()
	}
}

func (w *World) advanceBall(b *Ball, dt, mult float64) {
	b.LastDistance = b.Distance

	if b.InPipe {
		pipe := w.findPipe(b.PipeID)
		if pipe == nil {
			b.InPipe = false
			b.PipeID = 0
		} else {
			b.PipeY += w.cfg.Pipe.Speed * mult * dt
			if b.PipeY >= pipe.ExitY {
				b.InPipe = false
				b.PipeID = 0
				b.Distance = math.Max(b.Distance, w.distanceOf(pipe.ExitProgress))
				b.LastDistance = b.Distance
			}
			return
		}
	}

	b.Speed = math.Min(b.Speed+w.cfg.Physics.Accel*mult*dt, w.cfg.Physics.MaxSpeed)
	b.Distance += b.Speed * mult * dt

	w.applyTurbo(b, dt, mult)
	w.applyBlocks(b)
	w.applyPortals(b)
	w.collectPowerups(b)
	w.countStorms(b)

	w.enterPipe(b)
}

func (w *World) enterPipe(b *Ball) {
	for _, p := range w.pipes {
		if b.UsedPipes.Has(p.ID) {
			continue
		}
		if !crossed(b.LastDistance, w.distanceOf(p.EntryProgress), b.Distance) {
			continue
		}
		b.InPipe = true
		b.PipeID = p.ID
		b.UsedPipes.Add(p.ID)
		b.Speed = 0
		b.PipeX = p.X
		b.PipeY = p.EntryY
		return
	}
}

func (w *World) expirePopups() {
	now := w.now()
	kept := w.popups[:0]
	for _, p := range w.popups {
		if now.Before(p.ExpiresAt) {
			kept = append(kept, p)
		}
	}
	w.popups = kept
}

func (w *World) applySkillIncome(dt float64) {
	if !w.roundActive || !w.skills[SkillCoinRain] {
		return
	}
	w.coinRainAcc += w.cfg.Skills.CoinRainRate * dt
	if whole := int(w.coinRainAcc); whole > 0 {
		w.coins += whole
		w.coinRainAcc -= float64(whole)
	}
}

func (w *World) applyRapidFire(dt float64) {
	interval := w.cfg.Skills.RapidFireInterval
	if !w.roundActive || !w.skills[SkillRapidFire] || interval <= 0 {
		return
	}
	w.rapidFireAcc += dt
	for w.rapidFireAcc >= interval {
		w.spawnBall()
		w.rapidFireAcc -= interval
	}
}

func (w *World) updateBoost() {
	if w.boostActive && !w.now().Before(w.boostEndsAt) {
		w.boostActive = false
		w.emit(Event{Type: EventBoostEnded})
	}
}
