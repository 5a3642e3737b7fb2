package sim

import (
	"math"
	"strconv"

	"github.com/vovakirdan/eggtrail/internal/games/eggtrail/track"
)

// HandleSecondaryClick removes the gadget under p, if any. Kinds are tried
// in a fixed priority order, newest first within a kind. A removal refunds a
// flat amount and, unless a pad was removed, credits the nearest pad.
func (w *World) HandleSecondaryClick(p track.Point) {
	if !w.started {
		return
	}
	kind, id, progress, ok := w.removeAt(p)
	if !ok {
		return
	}
	w.coins += w.cfg.Economy.RemovalRefund
	if kind != KindPad {
		w.creditNearestPad(progress)
	}
	w.popup("+"+strconv.Itoa(w.cfg.Economy.RemovalRefund), p, ToneCoins)
	w.emit(Event{Type: EventGadgetRemoved, Kind: kind, ID: id, Value: w.cfg.Economy.RemovalRefund})
}

func (w *World) removeAt(p track.Point) (Kind, int, float64, bool) {
	cfg := w.cfg

	for i := len(w.portals) - 1; i >= 0; i-- {
		portal := w.portals[i]
		if portal.Pos.Dist(p) <= cfg.Portal.Radius {
			w.portals = remove(w.portals, i)
			w.portalState = PortalInactive
			w.portalPhaseEnds = w.now()
			return KindPortal, portal.ID, portal.Progress, true
		}
	}
	for i := len(w.pads) - 1; i >= 0; i-- {
		pad := w.pads[i]
		if pad.Pos.Dist(p) <= cfg.Pad.Radius {
			w.pads = remove(w.pads, i)
			return KindPad, pad.ID, pad.Progress, true
		}
	}
	for i := len(w.storms) - 1; i >= 0; i-- {
		s := w.storms[i]
		if s.Pos.Dist(p) <= cfg.Storm.Radius {
			w.storms = remove(w.storms, i)
			return KindStorm, s.ID, s.Progress, true
		}
	}
	for i := len(w.blocks) - 1; i >= 0; i-- {
		bl := w.blocks[i]
		if bl.Pos.Dist(p) <= cfg.Removal.BlockRadius {
			w.blocks = remove(w.blocks, i)
			return KindBlock, bl.ID, bl.Progress, true
		}
	}
	for i := len(w.turbos) - 1; i >= 0; i-- {
		z := w.turbos[i]
		if w.nearTurbo(z, p) {
			w.turbos = remove(w.turbos, i)
			return KindTurbo, z.ID, z.Center(), true
		}
	}
	for i := len(w.pipes) - 1; i >= 0; i-- {
		pipe := w.pipes[i]
		if pipe.Rect.Contains(p, cfg.Removal.PipeMargin) {
			w.pipes = remove(w.pipes, i)
			return KindPipe, pipe.ID, pipe.EntryProgress, true
		}
	}
	return 0, 0, 0, false
}

const turboSamples = 8

func (w *World) nearTurbo(z *TurboZone, p track.Point) bool {
	for i := 0; i <= turboSamples; i++ {
		progress := z.StartProgress + (z.EndProgress-z.StartProgress)*float64(i)/turboSamples
		if w.track.PointAt(progress).Dist(p) <= w.cfg.Removal.TurboRadius {
			return true
		}
	}
	return false
}

func (w *World) creditNearestPad(progress float64) {
	var nearest *BouncePad
	best := math.Inf(1)
	for _, pad := range w.pads {
		if pad.Ready {
			continue
		}
		if d := math.Abs(pad.Progress - progress); d < best {
			best = d
			nearest = pad
		}
	}
	if nearest == nil {
		return
	}
	nearest.RemovalsRemaining--
	if nearest.RemovalsRemaining <= 0 {
		nearest.RemovalsRemaining = 0
		nearest.Ready = true
	}
}

func remove[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}
