package eggtrail

import (
	"github.com/vovakirdan/eggtrail/internal/config"
	"github.com/vovakirdan/eggtrail/internal/core"
	"github.com/vovakirdan/eggtrail/internal/games/eggtrail/track"
)

// Panel rows, relative to the top of the playfield.
const (
	shopHeaderRow   = 0
	chargeHeaderRow = 0
	skillHeaderRow  = 5
	portalRow       = 10
)

func shopRow(i int) int   { return shopHeaderRow + 1 + i }
func chargeRow(i int) int { return chargeHeaderRow + 1 + i }
func skillRow(i int) int  { return skillHeaderRow + 1 + i }

// hotspot is a clickable panel line.
type hotspot struct {
	rect   core.Rect
	action core.Action
}

// layout maps between screen cells and playfield pixels. Row 0 holds the
// HUD, the last row the status line, everything between is playfield.
type layout struct {
	cols, rows int
	fieldTop   int
	fieldRows  int
	width      float64
	height     float64
	shopCols   int
	utilX      int
	spots      []hotspot
}

func newLayout(cols, rows int, cfg config.TrackConfig) layout {
	l := layout{
		cols:      max(cols, 1),
		rows:      max(rows, 1),
		fieldTop:  1,
		fieldRows: max(rows-2, 1),
		width:     cfg.Width,
		height:    cfg.Height,
	}
	l.shopCols = int(cfg.ShopWidth / cfg.Width * float64(l.cols))
	l.utilX = l.cols - int(cfg.UtilityWidth/cfg.Width*float64(l.cols))

	shop := []core.Action{
		core.ActionBuyPipe, core.ActionBuyBlock, core.ActionBuyTurbo,
		core.ActionBuyPad, core.ActionBuyPortal, core.ActionStorm,
	}
	for i, a := range shop {
		l.add(core.NewRect(0, l.fieldTop+shopRow(i), l.shopCols, 1), a)
	}
	charges := []core.Action{core.ActionSpeedBoost, core.ActionStorm, core.ActionPadCharge}
	for i, a := range charges {
		l.add(core.NewRect(l.utilX, l.fieldTop+chargeRow(i), l.cols-l.utilX, 1), a)
	}
	skills := []core.Action{core.ActionSkill1, core.ActionSkill2, core.ActionSkill3}
	for i, a := range skills {
		l.add(core.NewRect(l.utilX, l.fieldTop+skillRow(i), l.cols-l.utilX, 1), a)
	}
	return l
}

func (l *layout) add(r core.Rect, a core.Action) {
	if r.Empty() {
		return
	}
	l.spots = append(l.spots, hotspot{rect: r, action: a})
}

func (l layout) fieldBottom() int {
	return l.fieldTop + l.fieldRows
}

// hotspot returns the panel action under a cell.
func (l layout) hotspot(x, y int) (core.Action, bool) {
	for _, s := range l.spots {
		if s.rect.Contains(x, y) {
			return s.action, true
		}
	}
	return core.ActionNone, false
}

// toPixel returns the playfield pixel at the center of a cell.
func (l layout) toPixel(x, y int) (track.Point, bool) {
	if x < 0 || x >= l.cols || y < l.fieldTop || y >= l.fieldBottom() {
		return track.Point{}, false
	}
	return track.Point{
		X: (float64(x) + 0.5) * l.width / float64(l.cols),
		Y: (float64(y-l.fieldTop) + 0.5) * l.height / float64(l.fieldRows),
	}, true
}

// toCell returns the cell containing a playfield pixel, clamped to the field.
func (l layout) toCell(p track.Point) (x, y int) {
	x = core.Clamp(int(p.X/l.width*float64(l.cols)), 0, l.cols-1)
	y = l.fieldTop + core.Clamp(int(p.Y/l.height*float64(l.fieldRows)), 0, l.fieldRows-1)
	return x, y
}

// pixelStep is the arc length that covers roughly half a cell.
func (l layout) pixelStep() float64 {
	return min(l.width/float64(l.cols), l.height/float64(l.fieldRows)) / 2
}
