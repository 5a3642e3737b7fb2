package sim

import (
	"fmt"

	"github.com/vovakirdan/eggtrail/internal/config"
)

type itemInfo struct {
	title       string
	description string
}

var shopInfo = [kindCount]itemInfo{
	KindPipe:   {"Vertical Pipe", "Drops eggs straight down to the next stretch of track."},
	KindBlock:  {"Slow Block", "Slows eggs and adds bonus score while active."},
	KindTurbo:  {"Turbo Pipe", "Pushes eggs forward and doubles their value once."},
	KindPad:    {"Bounce Pad", "Remove other gadgets nearby to make it scatter power-ups."},
	KindPortal: {"Portal Pair", "Two gates; eggs entering the first leave from the second."},
	KindStorm:  {"Storm Emitter", "Counts passing eggs for a while, then pays coins."},
}

var skillInfo = [skillCount]itemInfo{
	SkillSuperEgg:  {"Lucky Egg", "Every fifth egg is a golden egg worth 10."},
	SkillCoinRain:  {"Coin Rain", "Earn 10 coins every second."},
	SkillRapidFire: {"Rapid Nest", "An extra egg hatches every half second."},
}

// Title returns the display name of the kind.
func (k Kind) Title() string {
	if k < 0 || k >= kindCount {
		return "Unknown"
	}
	return shopInfo[k].title
}

// Title returns the display name of the skill.
func (s Skill) Title() string {
	if s < 0 || s >= skillCount {
		return "Unknown"
	}
	return skillInfo[s].title
}

// scheduleCost returns the price at index count, clamped to the last entry.
func scheduleCost(costs []int, count int) int {
	if len(costs) == 0 {
		return 0
	}
	return costs[min(max(count, 0), len(costs)-1)]
}

// Cost returns the coin price of the next purchase of k.
// Storm emitters cost nothing but can only come from charges.
func (w *World) Cost(k Kind) int {
	switch k {
	case KindPipe:
		return scheduleCost(w.cfg.Pipe.Costs, w.purchases[k])
	case KindBlock:
		return scheduleCost(w.cfg.Block.Costs, w.purchases[k])
	case KindTurbo:
		return scheduleCost(w.cfg.Turbo.Costs, w.purchases[k])
	case KindPad:
		return w.cfg.Pad.Cost
	case KindPortal:
		return w.cfg.Portal.Cost
	default:
		return 0
	}
}

// Unlocked reports whether k can be bought on the current level.
func (w *World) Unlocked(k Kind) bool {
	switch k {
	case KindPipe, KindPortal:
		return true
	case KindBlock:
		return w.cfg.Level(w.level).Blocks
	case KindTurbo:
		return w.level >= w.cfg.Unlocks.Turbo
	case KindPad:
		return w.level >= w.cfg.Unlocks.Pad
	default:
		return false
	}
}

func (w *World) running() bool {
	return w.started && w.roundActive
}

// Purchase pays for k and makes it the pending placement. It reports
// whether the purchase went through.
func (w *World) Purchase(k Kind) bool {
	if !w.running() || !w.Unlocked(k) || w.pending != nil {
		return false
	}
	cost := w.Cost(k)
	if w.coins < cost {
		w.status = fmt.Sprintf("Not enough coins for %s (%d)", k.Title(), cost)
		return false
	}
	w.coins -= cost
	w.purchases[k]++
	w.pending = &Pending{Kind: k, ID: w.nextGadgetID(k), Cost: cost}
	w.status = ""
	w.emit(Event{Type: EventPurchased, Kind: k, ID: w.pending.ID, Value: cost})
	return true
}

// ActivateConsumable spends one charge of c. A speed boost starts at once;
// storm and pad charges become a free pending placement.
func (w *World) ActivateConsumable(c Charge) bool {
	if !w.running() || c < 0 || c >= chargeCount || w.charges[c] <= 0 {
		return false
	}
	switch c {
	case ChargeSpeedBoost:
		return w.startBoost()
	case ChargeStorm:
		return w.pendingFromCharge(c, KindStorm)
	case ChargePad:
		return w.pendingFromCharge(c, KindPad)
	}
	return false
}

func (w *World) startBoost() bool {
	now := w.now()
	if !w.advancedUnlocked() || w.boostActive || now.Before(w.boostReadyAt) {
		return false
	}
	w.charges[ChargeSpeedBoost]--
	w.boostActive = true
	w.boostEndsAt = now.Add(config.Seconds(w.cfg.Boost.Duration))
	w.boostReadyAt = w.boostEndsAt.Add(config.Seconds(w.cfg.Boost.Cooldown))
	w.emit(Event{Type: EventBoostStarted, Charge: ChargeSpeedBoost})
	return true
}

func (w *World) pendingFromCharge(c Charge, k Kind) bool {
	if w.pending != nil {
		return false
	}
	w.charges[c]--
	w.pending = &Pending{Kind: k, ID: w.nextGadgetID(k), FromCharge: true}
	return true
}

// BoostReady reports whether a speed boost could start now.
func (w *World) BoostReady() bool {
	return w.running() && w.advancedUnlocked() && !w.boostActive &&
		w.charges[ChargeSpeedBoost] > 0 && !w.now().Before(w.boostReadyAt)
}

// CancelPending drops the pending placement and gives back what it cost.
func (w *World) CancelPending() {
	if w.pending == nil {
		return
	}
	p := w.pending
	w.pending = nil
	if p.FromCharge {
		switch p.Kind {
		case KindStorm:
			w.charges[ChargeStorm]++
		case KindPad:
			w.charges[ChargePad]++
		}
		return
	}
	w.coins += p.Cost
	w.purchases[p.Kind] = max(0, w.purchases[p.Kind]-1)
}
