// Package track builds the Z-shaped egg path and maps between progress,
// arc-length distance and 2D positions.
//
// A Track is immutable after construction and safe to share between worlds.
package track

import (
	"math"
	"sort"
)

// Point is a position in playfield pixels.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Layout holds the values that shape the path inside the playfield.
type Layout struct {
	ShopWidth       float64 // left panel width, the path stays to its right
	UtilityWidth    float64 // right panel width
	StepsPerSegment int     // subdivisions between consecutive anchors
	Nodes           int     // snapping grid size
}

// Intersection is a crossing of the path with a vertical line.
type Intersection struct {
	Y        float64
	Progress float64
}

// Track is a polyline with its cumulative arc length.
type Track struct {
	points  []Point
	lengths []float64
	total   float64
	nodes   []float64
}

// Anchors returns the fixed Z anchor sequence for a playfield.
func Anchors(width, height float64, layout Layout) []Point {
	left := layout.ShopWidth + 40
	right := width - layout.UtilityWidth - 40
	top := 80.0
	mid := math.Floor(height/2) - 20
	bottom := height - 70
	center := math.Floor(width / 2)

	return []Point{
		{center, top},
		{right, top + 20},
		{left, mid},
		{right, mid + 60},
		{left, bottom},
		{right, bottom + 30},
		{center, height - 30},
	}
}

// Build constructs the Z track for a playfield. It is a pure function of
// its arguments.
func Build(width, height float64, layout Layout) *Track {
	anchors := Anchors(width, height, layout)
	steps := max(layout.StepsPerSegment, 1)

	points := make([]Point, 0, (len(anchors)-1)*steps+1)
	points = append(points, anchors[0])
	for i := 0; i+1 < len(anchors); i++ {
		start, end := anchors[i], anchors[i+1]
		for step := 1; step < steps; step++ {
			ratio := float64(step) / float64(steps)
			points = append(points, Point{
				X: start.X + (end.X-start.X)*ratio,
				Y: start.Y + (end.Y-start.Y)*ratio,
			})
		}
		points = append(points, end)
	}

	return FromPoints(points, layout.Nodes)
}

// FromPoints builds a track from an explicit polyline.
// At least two points are required; a single point is duplicated.
func FromPoints(points []Point, nodes int) *Track {
	pts := append([]Point(nil), points...)
	switch len(pts) {
	case 0:
		pts = []Point{{}, {}}
	case 1:
		pts = append(pts, pts[0])
	}

	t := &Track{
		points:  pts,
		lengths: CumulativeLengths(pts),
	}
	t.total = t.lengths[len(t.lengths)-1]
	t.nodes = nodeGrid(nodes)
	return t
}

// CumulativeLengths returns the running arc length of a polyline.
// lengths[0] is 0 and the last entry is the total length.
func CumulativeLengths(points []Point) []float64 {
	lengths := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		lengths[i] = lengths[i-1] + points[i-1].Dist(points[i])
	}
	return lengths
}

func nodeGrid(n int) []float64 {
	n = max(n, 2)
	nodes := make([]float64, n)
	for i := range nodes {
		nodes[i] = float64(i) / float64(n-1)
	}
	return nodes
}

// Points returns a copy of the polyline.
func (t *Track) Points() []Point {
	return append([]Point(nil), t.points...)
}

// Lengths returns a copy of the cumulative arc-length array.
func (t *Track) Lengths() []float64 {
	return append([]float64(nil), t.lengths...)
}

// Total returns the total arc length.
func (t *Track) Total() float64 {
	return t.total
}

// DistanceOf converts progress to absolute distance.
func (t *Track) DistanceOf(progress float64) float64 {
	return progress * t.total
}

// ProgressOf converts absolute distance to progress.
func (t *Track) ProgressOf(distance float64) float64 {
	if t.total <= 0 {
		return 0
	}
	return distance / t.total
}

// PointAt maps progress to a position. Progress is clamped to [0, 1].
func (t *Track) PointAt(progress float64) Point {
	if progress <= 0 {
		return t.points[0]
	}
	if progress >= 1 {
		return t.points[len(t.points)-1]
	}

	target := progress * t.total
	idx := sort.SearchFloat64s(t.lengths, target)
	idx = min(max(idx, 1), len(t.points)-1)

	a, b := t.points[idx-1], t.points[idx]
	segStart, segEnd := t.lengths[idx-1], t.lengths[idx]
	ratio := (target - segStart) / math.Max(segEnd-segStart, 1e-6)
	return Point{
		X: a.X + (b.X-a.X)*ratio,
		Y: a.Y + (b.Y-a.Y)*ratio,
	}
}

// PointAtDistance maps an absolute distance to a position.
func (t *Track) PointAtDistance(distance float64) Point {
	return t.PointAt(t.ProgressOf(distance))
}

// Nearest projects p onto every segment and returns the closest projection
// and its progress.
func (t *Track) Nearest(p Point) (Point, float64) {
	best := t.points[0]
	bestProgress := 0.0
	bestDist := math.Inf(1)

	for i := 0; i+1 < len(t.points); i++ {
		a, b := t.points[i], t.points[i+1]
		dx, dy := b.X-a.X, b.Y-a.Y
		lenSq := dx*dx + dy*dy
		if lenSq < 1e-6 {
			continue
		}
		u := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
		u = math.Max(0, math.Min(1, u))
		proj := Point{X: a.X + dx*u, Y: a.Y + dy*u}
		if d := proj.Dist(p); d < bestDist {
			bestDist = d
			best = proj
			bestProgress = t.ProgressOf(t.lengths[i] + math.Sqrt(lenSq)*u)
		}
	}
	return best, bestProgress
}

// SnapProgress quantizes progress to the nearest track node.
// Ties resolve to the lower node.
func (t *Track) SnapProgress(progress float64) float64 {
	progress = math.Max(0, math.Min(1, progress))
	idx := sort.SearchFloat64s(t.nodes, progress)
	if idx <= 0 {
		return t.nodes[0]
	}
	if idx >= len(t.nodes) {
		return t.nodes[len(t.nodes)-1]
	}
	lo, hi := t.nodes[idx-1], t.nodes[idx]
	if progress-lo <= hi-progress {
		return lo
	}
	return hi
}

// Nodes returns a copy of the snapping grid.
func (t *Track) Nodes() []float64 {
	return append([]float64(nil), t.nodes...)
}

// NodeSpacing returns the progress distance between adjacent nodes.
func (t *Track) NodeSpacing() float64 {
	return t.nodes[1] - t.nodes[0]
}

// IntersectionsAtX returns every crossing of the path with the vertical
// line at x, sorted top to bottom.
func (t *Track) IntersectionsAtX(x float64) []Intersection {
	var out []Intersection
	for i := 0; i+1 < len(t.points); i++ {
		a, b := t.points[i], t.points[i+1]
		dx := b.X - a.X
		if math.Abs(dx) < 1e-5 {
			continue
		}
		if x < math.Min(a.X, b.X) || x > math.Max(a.X, b.X) {
			continue
		}
		u := (x - a.X) / dx
		if u < 0 || u > 1 {
			continue
		}
		y := a.Y + (b.Y-a.Y)*u
		segLen := math.Hypot(dx, b.Y-a.Y)
		out = append(out, Intersection{
			Y:        y,
			Progress: t.ProgressOf(t.lengths[i] + segLen*u),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Y < out[j].Y })
	return dedupe(out)
}

// dedupe drops crossings that land on a shared vertex twice.
func dedupe(in []Intersection) []Intersection {
	if len(in) < 2 {
		return in
	}
	out := in[:1]
	for _, it := range in[1:] {
		last := out[len(out)-1]
		if math.Abs(it.Y-last.Y) < 1e-6 && math.Abs(it.Progress-last.Progress) < 1e-9 {
			continue
		}
		out = append(out, it)
	}
	return out
}

// PickPair chooses the pair of adjacent crossings that brackets y.
// When none brackets it, the pair whose midpoint is closest wins.
// ok is false when fewer than two crossings exist.
func PickPair(crossings []Intersection, y float64) (top, bottom Intersection, ok bool) {
	if len(crossings) < 2 {
		return Intersection{}, Intersection{}, false
	}
	for i := 0; i+1 < len(crossings); i++ {
		if crossings[i].Y <= y && y <= crossings[i+1].Y {
			return crossings[i], crossings[i+1], true
		}
	}

	best := 0
	bestDist := math.Inf(1)
	for i := 0; i+1 < len(crossings); i++ {
		mid := 0.5 * (crossings[i].Y + crossings[i+1].Y)
		if d := math.Abs(mid - y); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return crossings[best], crossings[best+1], true
}

// ProgressFromY returns the progress of the vertex whose y is closest to y.
func (t *Track) ProgressFromY(y float64) float64 {
	bestIdx := 0
	bestDist := math.Inf(1)
	for i, p := range t.points {
		if d := math.Abs(p.Y - y); d < bestDist {
			bestIdx = i
			bestDist = d
		}
	}
	return t.ProgressOf(t.lengths[bestIdx])
}
