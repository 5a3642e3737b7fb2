package sim

import (
	"testing"
	"time"

	"github.com/vovakirdan/eggtrail/internal/config"
	"github.com/vovakirdan/eggtrail/internal/games/eggtrail/track"
)

func TestPlacePointSnapsToNode(t *testing.T) {
	w, _ := startedWorld(t, 2)
	w.coins = 100

	if !w.Purchase(KindBlock) {
		t.Fatal("Purchase(block) failed")
	}
	w.HandlePrimaryClick(track.Point{X: 307, Y: 12})

	if len(w.blocks) != 1 {
		t.Fatalf("len(blocks) = %d, expected 1", len(w.blocks))
	}
	bl := w.blocks[0]
	if !near(bl.Progress, 0.3) || !near(bl.Pos.X, 300) {
		t.Errorf("block at progress %v pos %v, expected snapped to 0.3 / x=300", bl.Progress, bl.Pos)
	}
	if !bl.Active || bl.Cost != 16 {
		t.Errorf("block = %+v, expected an active block costing 16", bl)
	}
	if _, ok := w.PendingPlacement(); ok {
		t.Error("pending placement should clear after placing")
	}
	if countEvents(w.DrainEvents(), EventGadgetPlaced) != 1 {
		t.Error("expected one gadget_placed event")
	}
}

func TestPlacementOutsidePlayArea(t *testing.T) {
	w, _ := startedWorld(t, 1)
	w.coins = 100
	w.Purchase(KindPortal)

	for _, p := range []track.Point{{X: 100, Y: 0}, {X: 700, Y: 0}, {X: 300, Y: -5}} {
		w.HandlePrimaryClick(p)
	}
	if len(w.portals) != 0 {
		t.Error("clicks outside the play area must not place")
	}
	if _, ok := w.PendingPlacement(); !ok {
		t.Error("pending placement should survive stray clicks")
	}
}

func TestOverlapRejectKeepsPending(t *testing.T) {
	w, _ := startedWorld(t, 1)
	w.coins = 100

	w.Purchase(KindPortal)
	w.HandlePrimaryClick(px(0.3))
	w.Purchase(KindPortal)
	w.HandlePrimaryClick(track.Point{X: 305, Y: 0}) // snaps onto the first portal

	if len(w.portals) != 1 {
		t.Fatalf("len(portals) = %d, expected the overlapping portal rejected", len(w.portals))
	}
	if _, ok := w.PendingPlacement(); !ok {
		t.Fatal("rejected placement should stay pending")
	}
	if w.Coins() != 80 {
		t.Errorf("Coins() = %d, expected 80 with no refund", w.Coins())
	}

	w.HandlePrimaryClick(px(0.5))
	if len(w.portals) != 2 {
		t.Errorf("len(portals) = %d, expected 2 after a free spot", len(w.portals))
	}
	if w.PortalState() != PortalActive {
		t.Errorf("PortalState() = %v, expected active once paired", w.PortalState())
	}
}

func TestOverlapAcrossKinds(t *testing.T) {
	w, _ := startedWorld(t, 3)
	w.coins = 1000
	w.turbos = append(w.turbos, &TurboZone{ID: 1, StartProgress: 0.475, EndProgress: 0.525, Multiplier: 2})
	addStorm(w, 1, 0.2)

	tests := []struct {
		name  string
		kind  Kind
		point track.Point
	}{
		{"pad inside turbo span", KindPad, px(0.5)},
		{"block on storm", KindBlock, px(0.2)},
		{"portal on turbo edge", KindPortal, px(0.475)},
		{"turbo over turbo", KindTurbo, px(0.55)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w.pending = nil
			if !w.Purchase(tt.kind) {
				t.Fatalf("Purchase(%v) failed", tt.kind)
			}
			w.HandlePrimaryClick(tt.point)
			if _, ok := w.PendingPlacement(); !ok {
				t.Errorf("%v at %v should have been rejected", tt.kind, tt.point)
			}
		})
	}
}

func TestBlockUpgradeOnExistingBlock(t *testing.T) {
	w, _ := startedWorld(t, 2)
	w.coins = 1000

	for range 3 {
		w.Purchase(KindBlock)
		w.HandlePrimaryClick(px(0.4))
	}

	if len(w.blocks) != 1 {
		t.Fatalf("len(blocks) = %d, expected upgrades instead of new blocks", len(w.blocks))
	}
	bl := w.blocks[0]
	if bl.Upgrades != 2 {
		t.Errorf("Upgrades = %d, expected 2", bl.Upgrades)
	}
	if bl.ActiveDuration != config.Seconds(7.5) {
		t.Errorf("ActiveDuration = %v, expected 7.5s", bl.ActiveDuration)
	}
	if bl.CooldownDuration != config.Seconds(2.25) {
		t.Errorf("CooldownDuration = %v, expected 2.25s", bl.CooldownDuration)
	}
}

func TestBlockUpgradeScheduleClamps(t *testing.T) {
	w, _ := startedWorld(t, 2)
	bl := addBlock(w, 1, 0.4)
	for range 6 {
		w.upgradeBlock(bl)
	}
	// 5 + 1.5 + 1 + 0.75 + 0.5 + 0.5 + 0.5
	if bl.ActiveDuration != config.Seconds(9.75) {
		t.Errorf("ActiveDuration = %v, expected 9.75s", bl.ActiveDuration)
	}
	// 4 - 1 - 0.75 - 0.5 - 0.25 - 0.25 - 0.25
	if bl.CooldownDuration != config.Seconds(1) {
		t.Errorf("CooldownDuration = %v, expected 1s", bl.CooldownDuration)
	}
}

func TestPortalKeepsTwoMostRecent(t *testing.T) {
	w, _ := startedWorld(t, 1)
	w.coins = 100

	for _, p := range []float64{0.3, 0.4, 0.5} {
		w.Purchase(KindPortal)
		w.HandlePrimaryClick(px(p))
	}
	if len(w.portals) != 2 {
		t.Fatalf("len(portals) = %d, expected 2", len(w.portals))
	}
	if w.portals[0].ID != 2 || w.portals[1].ID != 3 {
		t.Errorf("portal ids = %d, %d, expected 2, 3", w.portals[0].ID, w.portals[1].ID)
	}
	if w.PortalState() != PortalActive {
		t.Errorf("PortalState() = %v, expected active", w.PortalState())
	}
}

func TestTurboPlacement(t *testing.T) {
	w, _ := startedWorld(t, 3)
	w.coins = 100

	w.Purchase(KindTurbo)
	w.HandlePrimaryClick(px(0.5))
	if len(w.turbos) != 1 {
		t.Fatalf("len(turbos) = %d, expected 1", len(w.turbos))
	}
	z := w.turbos[0]
	if !near(z.StartProgress, 0.475) || !near(z.EndProgress, 0.525) {
		t.Errorf("turbo span = %v..%v, expected 0.475..0.525", z.StartProgress, z.EndProgress)
	}
	if z.Multiplier != 2 || z.Cost != 25 {
		t.Errorf("turbo = %+v, expected multiplier 2 cost 25", z)
	}
}

// wideArea opens the whole straight track to clicks.
func wideArea(c *config.EggTrailConfig) {
	c.Track.ShopWidth = -40
	c.Track.UtilityWidth = 0
	c.Track.Width = 1100
}

func TestTurboKeepsLengthAtTrackEnds(t *testing.T) {
	tests := []struct {
		name       string
		point      track.Point
		start, end float64
	}{
		{"track start", px(0), 0, 0.05},
		{"near start", px(0.025), 0, 0.05},
		{"near end", px(0.975), 0.95, 1},
		{"track end", px(1), 0.95, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := startedWorld(t, 3, wideArea)
			w.coins = 100
			w.Purchase(KindTurbo)
			w.HandlePrimaryClick(tt.point)
			if len(w.turbos) != 1 {
				t.Fatalf("len(turbos) = %d, expected 1", len(w.turbos))
			}
			z := w.turbos[0]
			if !near(z.EndProgress-z.StartProgress, w.cfg.Turbo.Length) {
				t.Errorf("turbo length = %v, expected %v", z.EndProgress-z.StartProgress, w.cfg.Turbo.Length)
			}
			if !near(z.StartProgress, tt.start) || !near(z.EndProgress, tt.end) {
				t.Errorf("turbo span = %v..%v, expected %v..%v", z.StartProgress, z.EndProgress, tt.start, tt.end)
			}
		})
	}
}

func TestTurboRejectsGadgetInsideSpan(t *testing.T) {
	tests := []struct {
		name string
		add  func(w *World)
	}{
		{"block", func(w *World) { addBlock(w, 1, 0.5) }},
		{"pad", func(w *World) { addPad(w, 1, 0.5) }},
		{"storm", func(w *World) { addStorm(w, 1, 0.5) }},
		{"portal", func(w *World) { addPortal(w, 1, 0.5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := startedWorld(t, 3)
			w.coins = 100
			tt.add(w)
			w.Purchase(KindTurbo)
			// Centered on 0.525 the lane covers 0.5..0.55.
			w.HandlePrimaryClick(px(0.525))
			if len(w.turbos) != 0 {
				t.Errorf("len(turbos) = %d, expected 0 with a %s inside the lane", len(w.turbos), tt.name)
			}
			if _, ok := w.PendingPlacement(); !ok {
				t.Error("pending turbo should survive a rejected click")
			}
		})
	}
}

func TestPipePlacementOnZTrack(t *testing.T) {
	clock := NewManualClock(t0)
	w := New(config.DefaultEggTrailConfig(), 1, WithClock(clock), WithSeed(1))
	w.coins = 100

	crossings := w.Track().IntersectionsAtX(400)
	if len(crossings) < 2 {
		t.Fatalf("need two crossings at x=400, got %d", len(crossings))
	}
	click := track.Point{X: 400, Y: (crossings[0].Y + crossings[1].Y) / 2}

	w.Purchase(KindPipe)
	w.HandlePrimaryClick(click)

	if len(w.pipes) != 1 {
		t.Fatalf("len(pipes) = %d, expected 1", len(w.pipes))
	}
	p := w.pipes[0]
	if p.EntryProgress != crossings[0].Progress || p.ExitProgress != crossings[1].Progress {
		t.Errorf("pipe spans %v..%v, expected %v..%v", p.EntryProgress, p.ExitProgress, crossings[0].Progress, crossings[1].Progress)
	}
	if p.X != 400 || p.EntryY != crossings[0].Y || p.ExitY != crossings[1].Y {
		t.Errorf("pipe geometry = %+v", p)
	}
	if !p.Rect.Contains(click, 0) {
		t.Errorf("pipe rect %+v does not contain the click %v", p.Rect, click)
	}
}

func TestPipeClampsColumn(t *testing.T) {
	clock := NewManualClock(t0)
	cfg := config.DefaultEggTrailConfig()
	w := New(cfg, 1, WithClock(clock), WithSeed(1))
	w.coins = 100

	w.Purchase(KindPipe)
	w.HandlePrimaryClick(track.Point{X: 170, Y: 200})
	if len(w.pipes) != 1 {
		t.Fatalf("len(pipes) = %d, expected 1", len(w.pipes))
	}
	if minX := cfg.Track.ShopWidth + 80; w.pipes[0].X != minX {
		t.Errorf("pipe X = %v, expected clamped to %v", w.pipes[0].X, minX)
	}
}

func TestPipeRejectedWithoutSpan(t *testing.T) {
	w, _ := startedWorld(t, 1)
	w.coins = 100
	w.Purchase(KindPipe)

	w.HandlePrimaryClick(px(0.4))
	if len(w.pipes) != 0 {
		t.Error("a pipe on a flat track has no exit and must be rejected")
	}
	if _, ok := w.PendingPlacement(); !ok {
		t.Error("rejected pipe should stay pending")
	}
}

func TestPortalInfusion(t *testing.T) {
	w, clock := startedWorld(t, 1)
	addPortal(w, 1, 0.3)
	addPortal(w, 2, 0.6)
	w.updatePortals()

	clock.AdvanceSeconds(10)
	w.Tick(0.01)
	if w.PortalState() != PortalCooldown {
		t.Fatalf("PortalState() = %v, expected cooldown", w.PortalState())
	}
	if got := w.PortalPhaseRemaining(); got != 30*time.Second {
		t.Errorf("PortalPhaseRemaining() = %v, expected 30s", got)
	}

	w.HandlePrimaryClick(track.Point{X: 310, Y: 5})
	if got := w.PortalPhaseRemaining(); got != 27*time.Second {
		t.Errorf("PortalPhaseRemaining() after infusion = %v, expected 27s", got)
	}

	w.HandlePrimaryClick(track.Point{X: 450, Y: 0})
	if got := w.PortalPhaseRemaining(); got != 27*time.Second {
		t.Errorf("click away from portals changed the cooldown to %v", got)
	}

	for range 9 {
		w.HandlePrimaryClick(px(0.6))
	}
	if w.PortalState() != PortalActive {
		t.Errorf("PortalState() = %v, expected active once the cooldown is used up", w.PortalState())
	}
}

func TestClicksBeforeStartIgnored(t *testing.T) {
	w, _ := newTestWorld(t, 2)
	addBlock(w, 1, 0.3)
	w.HandleSecondaryClick(px(0.3))
	if len(w.blocks) != 1 {
		t.Error("removal before the round starts should be ignored")
	}
}
