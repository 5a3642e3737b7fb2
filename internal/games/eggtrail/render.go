package eggtrail

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/eggtrail/internal/core"
	"github.com/vovakirdan/eggtrail/internal/games/eggtrail/sim"
	"github.com/vovakirdan/eggtrail/internal/games/eggtrail/track"
)

// Glyphs
const (
	TrackGlyph      = '·'
	EggGlyph        = '●'
	GoldenEggGlyph  = '◆'
	PipeGlyph       = '║'
	TurboGlyph      = '»'
	BlockGlyph      = '■'
	BlockIdleGlyph  = '□'
	PadGlyph        = '◎'
	PortalGlyph     = '◉'
	PortalIdleGlyph = 'o'
	StormGlyph      = '≈'
	PowerupGlyph    = '♦'
	CursorGlyph     = '+'
)

var eggColors = []core.Color{
	core.ColorBrightRed, core.ColorBrightYellow, core.ColorBrightGreen,
	core.ColorBrightCyan, core.ColorBrightMagenta, core.ColorBrightBlue,
}

var chargeColors = [...]core.Color{
	sim.ChargeSpeedBoost: core.ColorBrightYellow,
	sim.ChargeStorm:      core.ColorBrightBlue,
	sim.ChargePad:        core.ColorBrightGreen,
}

var toneColors = [...]core.Color{
	sim.ToneScore:  core.ColorBrightWhite,
	sim.ToneCoins:  core.ColorYellow,
	sim.ToneBonus:  core.ColorOrange,
	sim.TonePickup: core.ColorBrightCyan,
}

var shopKeys = [...]string{
	sim.KindPipe:   "1",
	sim.KindBlock:  "2",
	sim.KindTurbo:  "3",
	sim.KindPad:    "4",
	sim.KindPortal: "5",
	sim.KindStorm:  "S",
}

var chargeKeys = [...]string{
	sim.ChargeSpeedBoost: "B",
	sim.ChargeStorm:      "S",
	sim.ChargePad:        "D",
}

var skillKeys = []string{"Z", "C", "V"}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.resize(dst.Width(), dst.Height())

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg, core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, hint, core.ColorGray)
		return
	}

	snap := g.world.Snapshot()

	g.renderTrack(dst)
	g.renderGadgets(dst, snap)
	g.renderBalls(dst, snap)
	g.renderPopups(dst, snap)
	g.renderCursor(dst, snap)

	g.renderHUD(dst, snap)
	g.renderShop(dst, snap)
	g.renderUtility(dst, snap)
	g.renderStatus(dst, snap)
	g.renderOverlay(dst, snap)
}

// renderTrack rasterizes the path by walking its arc length.
func (g *Game) renderTrack(dst *core.Screen) {
	t := g.world.Track()
	step := g.layout.pixelStep()
	for d := 0.0; d <= t.Total(); d += step {
		x, y := g.layout.toCell(t.PointAtDistance(d))
		dst.SetWithColor(x, y, TrackGlyph, core.ColorGray)
	}
}

func (g *Game) renderGadgets(dst *core.Screen, snap sim.Snapshot) {
	t := g.world.Track()

	for _, z := range snap.Turbos {
		from, to := t.DistanceOf(z.StartProgress), t.DistanceOf(z.EndProgress)
		for d := from; d <= to; d += g.layout.pixelStep() {
			x, y := g.layout.toCell(t.PointAtDistance(d))
			dst.SetWithColor(x, y, TurboGlyph, core.ColorYellow)
		}
	}

	for _, p := range snap.Pipes {
		x, top := g.layout.toCell(track.Point{X: p.X, Y: p.Rect.Y})
		_, bottom := g.layout.toCell(track.Point{X: p.X, Y: p.Rect.Y + p.Rect.H})
		dst.DrawVLine(x, top, bottom-top+1, PipeGlyph, core.ColorCyan)
	}

	for _, bl := range snap.Blocks {
		x, y := g.layout.toCell(bl.Pos)
		if bl.Active {
			dst.SetWithColor(x, y, BlockGlyph, core.ColorRed)
		} else {
			dst.SetWithColor(x, y, BlockIdleGlyph, core.ColorGray)
		}
	}

	for _, pad := range snap.Pads {
		x, y := g.layout.toCell(pad.Pos)
		c := core.ColorGreen
		if pad.Ready {
			c = core.ColorBrightGreen
		}
		dst.SetWithColor(x, y, PadGlyph, c)
	}

	for _, p := range snap.Portals {
		x, y := g.layout.toCell(p.Pos)
		if snap.PortalState == sim.PortalActive {
			dst.SetWithColor(x, y, PortalGlyph, core.ColorBrightMagenta)
		} else {
			dst.SetWithColor(x, y, PortalIdleGlyph, core.ColorMagenta)
		}
	}

	for _, s := range snap.Storms {
		x, y := g.layout.toCell(s.Pos)
		dst.SetWithColor(x, y, StormGlyph, core.ColorBrightBlue)
		if s.Phase == sim.StormRewarding {
			dst.DrawTextWithColor(x+1, y, fmt.Sprintf("+%d", s.Reward), core.ColorYellow)
		} else if s.Tally > 0 {
			dst.DrawTextWithColor(x+1, y, fmt.Sprint(s.Tally), core.ColorBlue)
		}
	}

	for _, p := range snap.Powerups {
		x, y := g.layout.toCell(t.PointAt(p.Progress))
		dst.SetWithColor(x, y, PowerupGlyph, colorOf(chargeColors[:], int(p.Kind)))
	}
}

func (g *Game) renderBalls(dst *core.Screen, snap sim.Snapshot) {
	for _, b := range snap.Balls {
		x, y := g.layout.toCell(b.Pos)
		if b.Special {
			dst.SetWithColor(x, y, GoldenEggGlyph, core.ColorBrightYellow)
			continue
		}
		dst.SetWithColor(x, y, EggGlyph, colorOf(eggColors, b.Color))
	}
}

func (g *Game) renderPopups(dst *core.Screen, snap sim.Snapshot) {
	for _, p := range snap.Popups {
		x, y := g.layout.toCell(p.Pos)
		dst.DrawTextWithColor(x, y-1, p.Text, colorOf(toneColors[:], int(p.Tone)))
	}
}

func (g *Game) renderCursor(dst *core.Screen, snap sim.Snapshot) {
	if !snap.RoundActive {
		return
	}
	c := core.ColorWhite
	if snap.HasPending {
		c = core.ColorBrightWhite
	}
	if dst.Get(g.cursorX, g.cursorY) == ' ' || snap.HasPending {
		dst.SetWithColor(g.cursorX, g.cursorY, CursorGlyph, c)
	}
}

// renderHUD draws level, score, coins and the countdown.
func (g *Game) renderHUD(dst *core.Screen, snap sim.Snapshot) {
	left := fmt.Sprintf("Level %d  Score %d/%d  Coins %d", snap.Level, snap.Score, snap.Target, snap.Coins)
	dst.DrawTextWithColor(1, 0, left, core.ColorBrightWhite)

	timeColor := core.ColorBrightWhite
	if snap.Remaining <= 10 {
		timeColor = core.ColorBrightRed
	}
	right := fmt.Sprintf("Time %ds", int(math.Ceil(snap.Remaining)))
	dst.DrawTextWithColor(dst.Width()-utf8.RuneCountInString(right)-1, 0, right, timeColor)
}

func (g *Game) renderShop(dst *core.Screen, snap sim.Snapshot) {
	top := g.layout.fieldTop
	width := g.layout.shopCols
	drawClipped(dst, 0, top+shopHeaderRow, width, "SHOP", core.ColorBrightWhite)

	for i, e := range snap.Shop {
		c := core.ColorDefault
		switch {
		case e.Locked:
			c = core.ColorGray
		case snap.HasPending && snap.Pending.Kind == e.Kind:
			c = core.ColorBrightCyan
		case !e.ChargeOnly && e.Cost > snap.Coins:
			c = core.ColorRed
		}

		var line string
		switch {
		case e.ChargeOnly:
			line = fmt.Sprintf("%s %s x%d", keyOf(shopKeys[:], int(e.Kind)), e.Title, snap.ChargeCount(sim.ChargeStorm))
		case e.Locked:
			line = fmt.Sprintf("%s %s --", keyOf(shopKeys[:], int(e.Kind)), e.Title)
		default:
			line = fmt.Sprintf("%s %s %d", keyOf(shopKeys[:], int(e.Kind)), e.Title, e.Cost)
		}
		drawClipped(dst, 0, top+shopRow(i), width, line, c)
	}
}

func (g *Game) renderUtility(dst *core.Screen, snap sim.Snapshot) {
	top := g.layout.fieldTop
	x := g.layout.utilX
	width := dst.Width() - x

	drawClipped(dst, x, top+chargeHeaderRow, width, "CHARGES", core.ColorBrightWhite)
	for i, c := range []sim.Charge{sim.ChargeSpeedBoost, sim.ChargeStorm, sim.ChargePad} {
		line := fmt.Sprintf("%s %s x%d", keyOf(chargeKeys[:], int(c)), c, snap.ChargeCount(c))
		color := colorOf(chargeColors[:], int(c))
		if c == sim.ChargeSpeedBoost {
			switch {
			case snap.BoostActive:
				line += " ON"
			case !snap.BoostReady:
				color = core.ColorGray
			}
		}
		drawClipped(dst, x, top+chargeRow(i), width, line, color)
	}

	drawClipped(dst, x, top+skillHeaderRow, width, "SKILLS", core.ColorBrightWhite)
	for i, s := range snap.Skills {
		mark := "[ ]"
		if s.Active {
			mark = "[x]"
		}
		c := core.ColorDefault
		if !s.Available {
			c = core.ColorGray
		}
		line := fmt.Sprintf("%s%s %s", skillKeys[i%len(skillKeys)], mark, s.Title)
		drawClipped(dst, x, top+skillRow(i), width, line, c)
	}

	portal := fmt.Sprintf("Portal %s", snap.PortalState)
	if snap.PortalState != sim.PortalInactive {
		portal += fmt.Sprintf(" %ds", int(math.Ceil(snap.PortalRemaining.Seconds())))
	}
	drawClipped(dst, x, top+portalRow, width, portal, core.ColorMagenta)
}

func (g *Game) renderStatus(dst *core.Screen, snap sim.Snapshot) {
	line := snap.Status
	if line == "" {
		line = "1-5 buy  Enter place  X remove  B boost  P pause  Q quit"
	}
	drawClipped(dst, 1, dst.Height()-1, dst.Width()-2, line, core.ColorGray)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen, snap sim.Snapshot) {
	switch {
	case g.paused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case snap.AwaitingSkills:
		drawCenteredBox(dst, fmt.Sprintf("LEVEL %d", snap.Level), "Pick skills with Z C V, Enter to start")
	case snap.Started && !snap.RoundActive && snap.Result == sim.ResultSuccess:
		drawCenteredBox(dst, "LEVEL CLEARED", fmt.Sprintf("Score: %d  |  Enter next level  |  Space retry", snap.Score))
	case snap.Started && !snap.RoundActive:
		drawCenteredBox(dst, "OUT OF TIME", fmt.Sprintf("Score: %d/%d  |  Space retry  |  R restart", snap.Score, snap.Target))
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.SetWithColor(x, y, ' ', core.ColorDefault)
		}
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)

	dst.DrawTextWithColor(boxX+(boxW-utf8.RuneCountInString(title))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawTextWithColor(boxX+(boxW-utf8.RuneCountInString(subtitle))/2, boxY+3, subtitle, core.ColorDefault)
}

// drawClipped writes at most width runes of text.
func drawClipped(dst *core.Screen, x, y, width int, text string, c core.Color) {
	if width <= 0 {
		return
	}
	if utf8.RuneCountInString(text) > width {
		text = string([]rune(text)[:width])
	}
	dst.DrawTextWithColor(x, y, text, c)
}

func colorOf(palette []core.Color, i int) core.Color {
	if len(palette) == 0 {
		return core.ColorDefault
	}
	return palette[((i%len(palette))+len(palette))%len(palette)]
}

func keyOf(keys []string, i int) string {
	if i < 0 || i >= len(keys) {
		return " "
	}
	return keys[i]
}
