package drag

import "math"

// Point is a terminal cell position
type Point struct {
	X, Y int
}

// Rect is an axis-aligned box in terminal cells. Max is exclusive.
type Rect struct {
	Min, Max Point
}

// NewRect builds a rect from origin and size
func NewRect(x, y, w, h int) Rect {
	return Rect{Min: Point{X: x, Y: y}, Max: Point{X: x + w, Y: y + h}}
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Translate returns r shifted by dx, dy
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{
		Min: Point{X: r.Min.X + dx, Y: r.Min.Y + dy},
		Max: Point{X: r.Max.X + dx, Y: r.Max.Y + dy},
	}
}

// Empty reports whether r has no area
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

func (r Rect) corners() [4]Point {
	return [4]Point{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Min.X, Y: r.Max.Y},
		{X: r.Max.X, Y: r.Max.Y},
	}
}

// Droppable is a candidate drop target and where it is on screen
type Droppable struct {
	ID   ID
	Rect Rect
}

// ClosestCorners picks the candidate whose corners are nearest to the
// dragged box's corners, summing the distance between each pair of
// corresponding corners. Unlike plain overlap it works the same for the
// horizontal run of columns and the vertical stack of cards. Ties go to the
// earliest candidate.
func ClosestCorners(active Rect, candidates []Droppable) (ID, bool) {
	if len(candidates) == 0 {
		return "", false
	}

	activeCorners := active.corners()
	best := -1
	bestDistance := math.Inf(1)
	for i, c := range candidates {
		if c.Rect.Empty() {
			continue
		}
		var d float64
		for j, corner := range c.Rect.corners() {
			d += distance(activeCorners[j], corner)
		}
		if d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	if best < 0 {
		return "", false
	}
	return candidates[best].ID, true
}

func distance(a, b Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
