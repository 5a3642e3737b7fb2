package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/eggtrail/internal/config"
	"github.com/vovakirdan/eggtrail/internal/core"
	"github.com/vovakirdan/eggtrail/internal/games/eggtrail/track"
)

const overlapTolerance = 1e-6

// InPlayArea reports whether p lies between the shop and utility panels.
func (w *World) InPlayArea(p track.Point) bool {
	t := w.cfg.Track
	return p.X > t.ShopWidth+20 && p.X < t.Width-t.UtilityWidth-20 &&
		p.Y >= 0 && p.Y <= t.Height
}

// HandlePrimaryClick finalizes the pending placement at p. Without a
// pending placement a click on a cooling portal infuses it.
func (w *World) HandlePrimaryClick(p track.Point) {
	if !w.started {
		return
	}
	if w.pending == nil {
		w.infusePortal(p)
		return
	}
	if !w.InPlayArea(p) {
		return
	}

	var placed bool
	switch w.pending.Kind {
	case KindPipe:
		placed = w.placePipe(p)
	case KindTurbo:
		placed = w.placeTurbo(p)
	default:
		placed = w.placePoint(p)
	}
	if !placed {
		w.status = "That spot is taken"
		return
	}
	w.pending = nil
	w.status = ""
}

func (w *World) placePipe(p track.Point) bool {
	t := w.cfg.Track
	x := core.ClampF(p.X, t.ShopWidth+80, t.Width-t.UtilityWidth-80)

	var entryProgress, exitProgress, entryY, exitY float64
	if top, bottom, ok := track.PickPair(w.track.IntersectionsAtX(x), p.Y); ok {
		entryProgress, entryY = top.Progress, top.Y
		exitProgress, exitY = bottom.Progress, bottom.Y
	} else {
		entryY = p.Y - w.cfg.Pipe.Height/2
		exitY = entryY + w.cfg.Pipe.Height
		entryProgress = w.track.ProgressFromY(entryY + 10)
		exitProgress = w.track.ProgressFromY(exitY - 10)
	}
	if exitProgress <= entryProgress || exitY <= entryY {
		return false
	}

	width := w.cfg.Pipe.Width
	pipe := &Pipe{
		ID:            w.pending.ID,
		EntryProgress: entryProgress,
		ExitProgress:  exitProgress,
		EntryY:        entryY,
		ExitY:         exitY,
		X:             x,
		Rect:          Rect{X: x - width/2, Y: entryY, W: width, H: exitY - entryY},
		Cost:          w.pending.Cost,
	}
	w.pipes = append(w.pipes, pipe)
	w.emit(Event{Type: EventGadgetPlaced, Kind: KindPipe, ID: pipe.ID, Value: pipe.Cost})
	return true
}

func (w *World) placeTurbo(p track.Point) bool {
	_, progress := w.track.Nearest(p)
	center := w.track.SnapProgress(progress)
	length := min(w.cfg.Turbo.Length, 1)
	start := center - length/2
	if start < 0 {
		start = 0
	}
	if start+length > 1 {
		start = 1 - length
	}
	end := start + length
	if end <= start {
		return false
	}
	if w.pointGadgetWithin(start, end) {
		return false
	}
	for _, z := range w.turbos {
		if start <= z.EndProgress+overlapTolerance && z.StartProgress <= end+overlapTolerance {
			return false
		}
	}

	zone := &TurboZone{
		ID:            w.pending.ID,
		StartProgress: start,
		EndProgress:   end,
		Multiplier:    w.cfg.Turbo.Multiplier,
		Cost:          w.pending.Cost,
	}
	w.turbos = append(w.turbos, zone)
	w.emit(Event{Type: EventGadgetPlaced, Kind: KindTurbo, ID: zone.ID, Value: zone.Cost})
	return true
}

func (w *World) placePoint(p track.Point) bool {
	_, raw := w.track.Nearest(p)
	progress := w.track.SnapProgress(raw)
	pos := w.track.PointAt(progress)
	pending := *w.pending

	if pending.Kind == KindBlock {
		if bl := w.blockAt(progress); bl != nil {
			w.upgradeBlock(bl)
			w.popup(fmt.Sprintf("lvl %d", bl.Upgrades+1), bl.Pos, ToneBonus)
			w.emit(Event{Type: EventGadgetUpgraded, Kind: KindBlock, ID: bl.ID, Value: bl.Upgrades})
			return true
		}
	}
	if w.occupied(progress) {
		return false
	}

	now := w.now()
	switch pending.Kind {
	case KindBlock:
		w.blocks = append(w.blocks, &Block{
			ID:               pending.ID,
			Progress:         progress,
			Pos:              pos,
			Active:           true,
			PhaseStarted:     now,
			ActiveDuration:   config.Seconds(w.cfg.Block.ActiveDuration),
			CooldownDuration: config.Seconds(w.cfg.Block.CooldownDuration),
			Cost:             pending.Cost,
		})
	case KindPad:
		w.pads = append(w.pads, &BouncePad{
			ID:                pending.ID,
			Progress:          progress,
			Pos:               pos,
			RemovalsRemaining: w.cfg.Pad.Removals,
			Ready:             w.cfg.Pad.Removals <= 0,
			Cost:              pending.Cost,
		})
	case KindStorm:
		w.storms = append(w.storms, &StormEmitter{
			ID:       pending.ID,
			Progress: progress,
			Pos:      pos,
			Phase:    StormCounting,
			PlacedAt: now,
		})
	case KindPortal:
		w.portals = append(w.portals, &Portal{
			ID:       pending.ID,
			Progress: progress,
			Pos:      pos,
			Cost:     pending.Cost,
		})
		if n := len(w.portals); n > 2 {
			w.portals = append([]*Portal(nil), w.portals[n-2:]...)
		}
		w.portalState = PortalInactive
		w.updatePortals()
	default:
		return false
	}
	w.emit(Event{Type: EventGadgetPlaced, Kind: pending.Kind, ID: pending.ID, Value: pending.Cost})
	return true
}

func (w *World) blockAt(progress float64) *Block {
	for _, bl := range w.blocks {
		if math.Abs(bl.Progress-progress) <= overlapTolerance {
			return bl
		}
	}
	return nil
}

// occupied reports whether a point gadget or a turbo span already covers
// progress.
func (w *World) occupied(progress float64) bool {
	if w.occupiedPoint(progress) {
		return true
	}
	for _, z := range w.turbos {
		if progress >= z.StartProgress-overlapTolerance && progress <= z.EndProgress+overlapTolerance {
			return true
		}
	}
	return false
}

func (w *World) occupiedPoint(progress float64) bool {
	return w.pointGadgetWithin(progress, progress)
}

// pointGadgetWithin reports whether a block, pad, storm or portal sits on
// [start, end].
func (w *World) pointGadgetWithin(start, end float64) bool {
	same := func(p float64) bool { return p >= start-overlapTolerance && p <= end+overlapTolerance }
	for _, bl := range w.blocks {
		if same(bl.Progress) {
			return true
		}
	}
	for _, pad := range w.pads {
		if same(pad.Progress) {
			return true
		}
	}
	for _, s := range w.storms {
		if same(s.Progress) {
			return true
		}
	}
	for _, p := range w.portals {
		if same(p.Progress) {
			return true
		}
	}
	return false
}

func (w *World) infusePortal(p track.Point) {
	if w.portalState != PortalCooldown {
		return
	}
	for _, portal := range w.portals {
		if portal.Pos.Dist(p) > w.cfg.Portal.Radius {
			continue
		}
		w.portalPhaseEnds = w.portalPhaseEnds.Add(-config.Seconds(w.cfg.Portal.InfusionSeconds))
		w.popup(fmt.Sprintf("-%gs", w.cfg.Portal.InfusionSeconds), portal.Pos, ToneBonus)
		w.emit(Event{Type: EventPortalInfused, Kind: KindPortal, ID: portal.ID})
		w.updatePortals()
		return
	}
}
