package editor

import (
	"wisefido-floorplan/internal/domain"
	"wisefido-floorplan/internal/geometry"
)

// translate 把拖拽位移 + 拖拽前偏移换算成画布内坐标
// 三个容器各自处于不同的坐标系，换算方式取决于条目拖拽前所在的容器
func translate(original domain.ContainerID, delta geometry.Point, offset Offset, layout Layout, s Settings) geometry.Point {
	switch original {
	case domain.Pending:
		return geometry.Point{
			X: delta.X - (layout.PendingWidth + 1 - offset.Left),
			Y: offset.Top + delta.Y,
		}
	case domain.Canvas:
		return geometry.Point{
			X: offset.Left + delta.X,
			Y: offset.Top + delta.Y,
		}
	default:
		return geometry.Point{
			X: layout.PaletteWidth + delta.X + offset.Left + s.PaletteGutter,
			Y: offset.Top + delta.Y,
		}
	}
}

// canvasPosition 换算 -> 网格吸附 -> （面板来源时）宽度对齐修正
func (e *Editor) canvasPosition(original domain.ContainerID, delta geometry.Point, layout Layout) geometry.Point {
	p := geometry.SnapPoint(translate(original, delta, e.session.offset, layout, e.settings), e.settings.GridSize)
	if e.session.deviationRepair {
		p.X += geometry.DeviationRepair(layout.CanvasWidth, e.settings.DeviationMargin, e.settings.GridSize)
	}
	return p
}
