package editor

import "wisefido-floorplan/internal/geometry"

// Settings 画布几何参数
type Settings struct {
	GridSize        float64 // 网格边长（像素）
	ItemCols        int     // 卡片宽度（网格数）
	ItemRows        int     // 卡片高度（网格数）
	PaletteGutter   float64 // 组件面板与画布之间的固定间距
	BottomMargin    float64 // 画布底部不可放置的高度
	DeviationMargin float64 // 网格对齐修正时计入的左侧固定边距
}

// DefaultSettings 与前端常量保持一致：GRID_SIZE=20，卡片 6x3 格
func DefaultSettings() Settings {
	return Settings{
		GridSize:        20,
		ItemCols:        6,
		ItemRows:        3,
		PaletteGutter:   30,
		BottomMargin:    30,
		DeviationMargin: 30,
	}
}

// ItemSize 卡片像素尺寸
func (s Settings) ItemSize() geometry.Size {
	return geometry.Size{
		Width:  s.GridSize * float64(s.ItemCols),
		Height: s.GridSize * float64(s.ItemRows),
	}
}

// Layout 宿主在拖拽结束时测得的各容器可视区域尺寸
type Layout struct {
	PendingWidth float64 `json:"pending_width"`
	PaletteWidth float64 `json:"palette_width"`
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
}

// Offset 被拖拽元素在拖拽开始前相对所在容器的偏移（offsetLeft/offsetTop）
type Offset struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}
