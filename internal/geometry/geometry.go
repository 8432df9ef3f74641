package geometry

import "math"

// Point 画布像素坐标
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size 宽高（像素）
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Defined 坐标是否可用（NaN/Inf 视为未定义）
func (p Point) Defined() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// SnapToGrid 向下取整到网格：floor(value / gridSize) * gridSize
// gridSize <= 0 时原样返回
func SnapToGrid(value, gridSize float64) float64 {
	if gridSize <= 0 {
		return value
	}
	return math.Floor(value/gridSize) * gridSize
}

// SnapPoint snaps each axis independently.
func SnapPoint(p Point, gridSize float64) Point {
	return Point{X: SnapToGrid(p.X, gridSize), Y: SnapToGrid(p.Y, gridSize)}
}

// BoxesOverlap 两个同尺寸矩形（左上角 a、b）是否相交
// 边贴边不算相交
func BoxesOverlap(a, b Point, width, height float64) bool {
	minX := math.Max(a.X, b.X)
	minY := math.Max(a.Y, b.Y)
	maxX := math.Min(a.X+width, b.X+width)
	maxY := math.Min(a.Y+height, b.Y+height)

	return minX < maxX && minY < maxY
}

// MaxOffset 可放置区域的最大左上角坐标：floor((bounds - item) / grid) * grid
// 区域容纳不下一个物体（或 grid 非法）时 ok=false
func MaxOffset(bounds, item, gridSize float64) (float64, bool) {
	span := bounds - item
	if gridSize <= 0 || span < 0 {
		return 0, false
	}
	return math.Floor(span/gridSize) * gridSize, true
}

// WithinBoundary 物体左上角 p 是否完全落在 bounds 内（边界先按网格向下取整）
func WithinBoundary(p Point, bounds, item Size, gridSize float64) bool {
	if !p.Defined() || p.X < 0 || p.Y < 0 {
		return false
	}
	if p.X >= bounds.Width || p.Y >= bounds.Height {
		return false
	}

	maxX, ok := MaxOffset(bounds.Width, item.Width, gridSize)
	if !ok {
		return false
	}
	maxY, ok := MaxOffset(bounds.Height, item.Height, gridSize)
	if !ok {
		return false
	}

	return p.X <= maxX && p.Y <= maxY
}

// DeviationRepair 画布宽度不是网格整数倍时的 x 偏移修正
// 从 0 向上找最小的 d，使 (canvasWidth + margin + d) % gridSize == 0
// 搜索最多 gridSize 步，gridSize 非法时返回 0
func DeviationRepair(canvasWidth, margin, gridSize float64) float64 {
	grid := int(math.Round(gridSize))
	if grid <= 0 {
		return 0
	}
	base := int(math.Round(canvasWidth)) + int(math.Round(margin))
	for d := 0; d < grid; d++ {
		if (base+d)%grid == 0 {
			return float64(d)
		}
	}
	return 0
}
