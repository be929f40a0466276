package surface

import "math"

// Point is a surface coordinate.
type Point struct{ X, Y float64 }

type segKind int

const (
	segMove segKind = iota
	segLine
	segArc
	segClose
)

// segment is one recorded path command. For arcs (X, Y) is the centre and the
// arc runs from Start through Start+Sweep; its start point has already been
// joined to the path by a preceding move or line.
type segment struct {
	kind         segKind
	X, Y         float64
	R            float64
	Start, Sweep float64
}

// arcStep is the largest angle covered by one flattened arc chord.
const arcStep = math.Pi / 32

// boundaryEps is the distance within which a point counts as on the outline.
const boundaryEps = 1e-7

// Path records canvas-style path commands and answers containment queries
// against their flattened outline.
type Path struct {
	segs     []segment
	cur      Point
	subStart Point
	hasCur   bool
}

// Reset discards all subpaths.
func (p *Path) Reset() {
	p.segs = p.segs[:0]
	p.hasCur = false
}

// Empty reports whether the path has no commands.
func (p *Path) Empty() bool { return len(p.segs) == 0 }

func (p *Path) MoveTo(x, y float64) {
	p.segs = append(p.segs, segment{kind: segMove, X: x, Y: y})
	p.cur = Point{x, y}
	p.subStart = p.cur
	p.hasCur = true
}

// LineTo without a current point behaves as MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.hasCur {
		p.MoveTo(x, y)
		return
	}
	p.segs = append(p.segs, segment{kind: segLine, X: x, Y: y})
	p.cur = Point{x, y}
}

// Arc joins the current point to the arc start with a line (or starts a new
// subpath there) and then follows the arc. Negative radii are treated as 0.
func (p *Path) Arc(x, y, r, start, end float64, ccw bool) {
	if r < 0 {
		r = 0
	}
	sweep := arcSweep(start, end, ccw)
	sx, sy := x+r*math.Cos(start), y+r*math.Sin(start)
	if p.hasCur {
		p.LineTo(sx, sy)
	} else {
		p.MoveTo(sx, sy)
	}
	p.segs = append(p.segs, segment{kind: segArc, X: x, Y: y, R: r, Start: start, Sweep: sweep})
	p.cur = Point{x + r*math.Cos(start+sweep), y + r*math.Sin(start+sweep)}
}

// Close joins the current point back to the subpath start.
func (p *Path) Close() {
	if !p.hasCur {
		return
	}
	p.segs = append(p.segs, segment{kind: segClose})
	p.cur = p.subStart
}

// arcSweep turns canvas start/end angles into a signed sweep, positive being
// clockwise on screen. The rules follow the browsers: a request covering a
// full turn in the drawing direction is exactly one turn, otherwise the end
// angle is brought within one turn of the start.
func arcSweep(start, end float64, ccw bool) float64 {
	const tau = 2 * math.Pi
	switch {
	case !ccw && end-start >= tau:
		return tau
	case ccw && start-end >= tau:
		return -tau
	case !ccw && start > end:
		return tau - math.Mod(start-end, tau)
	case ccw && start < end:
		return -(tau - math.Mod(end-start, tau))
	}
	return end - start
}

// arcParts is the number of equal parts of at most maxStep that cover sweep.
func arcParts(sweep, maxStep float64) int {
	n := int(math.Ceil(math.Abs(sweep) / maxStep))
	if n < 1 {
		n = 1
	}
	return n
}

// Subpaths returns the flattened outline, one polyline per subpath.
func (p *Path) Subpaths() [][]Point {
	var out [][]Point
	var cur []Point
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, s := range p.segs {
		switch s.kind {
		case segMove:
			flush()
			cur = []Point{{s.X, s.Y}}
		case segLine:
			cur = append(cur, Point{s.X, s.Y})
		case segArc:
			n := arcParts(s.Sweep, arcStep)
			for i := 1; i <= n; i++ {
				a := s.Start + s.Sweep*float64(i)/float64(n)
				cur = append(cur, Point{s.X + s.R*math.Cos(a), s.Y + s.R*math.Sin(a)})
			}
		case segClose:
			if len(cur) > 0 {
				start := cur[0]
				flush()
				cur = []Point{start}
			}
		}
	}
	flush()
	return out
}

// Contains applies the non-zero winding rule to the flattened path with every
// subpath implicitly closed. Points on an edge are inside.
func (p *Path) Contains(x, y float64) bool {
	pt := Point{x, y}
	polys := p.Subpaths()
	for _, poly := range polys {
		n := len(poly)
		if n == 1 {
			continue
		}
		for i := 0; i < n; i++ {
			if onSegment(poly[i], poly[(i+1)%n], pt) {
				return true
			}
		}
	}
	winding := 0
	for _, poly := range polys {
		n := len(poly)
		if n < 3 {
			continue
		}
		for i := 0; i < n; i++ {
			a, b := poly[i], poly[(i+1)%n]
			if a.Y <= y {
				if b.Y > y && isLeft(a, b, pt) > 0 {
					winding++
				}
			} else if b.Y <= y && isLeft(a, b, pt) < 0 {
				winding--
			}
		}
	}
	return winding != 0
}

// isLeft is positive when p lies left of the directed line a->b.
func isLeft(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

func onSegment(a, b, p Point) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y) <= boundaryEps
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy)) <= boundaryEps
}
