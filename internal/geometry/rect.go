package geometry

import "math"

// Rect is an axis-aligned rectangle in screen coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Right() float64  { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Translate returns the rectangle moved by d.
func (r Rect) Translate(d Point) Rect {
	r.Left += d.X
	r.Top += d.Y
	return r
}

// Contains reports whether p lies inside r (edges included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// Area 面积，宽高为负时按 0 处理
func (r Rect) Area() float64 {
	return math.Max(r.Width, 0) * math.Max(r.Height, 0)
}

// IntersectionArea 两矩形重叠部分的面积
func (r Rect) IntersectionArea(o Rect) float64 {
	w := math.Min(r.Right(), o.Right()) - math.Max(r.Left, o.Left)
	h := math.Min(r.Bottom(), o.Bottom()) - math.Max(r.Top, o.Top)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// IntersectionRatio 重叠面积 / 并集面积，无重叠为 0
func (r Rect) IntersectionRatio(o Rect) float64 {
	inter := r.IntersectionArea(o)
	if inter == 0 {
		return 0
	}
	union := r.Area() + o.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// Distance is the euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
