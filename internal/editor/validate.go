package editor

import (
	"wisefido-floorplan/internal/domain"
	"wisefido-floorplan/internal/geometry"
)

// dropAllowed 放置合法性：按条目拖拽前所在容器 vs 候选目标容器判断
// 面板不接收任何条目；面板模板不能直接进入 Pending
func dropAllowed(original, target domain.ContainerID) bool {
	if target == domain.Palette {
		return false
	}
	if original == domain.Palette && target == domain.Pending {
		return false
	}
	return true
}

// validPlacement 边界 + 与画布上其他条目不重叠（被拖拽条目自身除外）
func (e *Editor) validPlacement(p geometry.Point, layout Layout) bool {
	item := e.settings.ItemSize()
	bounds := geometry.Size{
		Width:  layout.CanvasWidth,
		Height: layout.CanvasHeight - e.settings.BottomMargin,
	}
	if !geometry.WithinBoundary(p, bounds, item, e.settings.GridSize) {
		return false
	}

	for _, id := range e.session.snapshot.Items(domain.Canvas) {
		if id == e.session.activeID || id == e.session.originID {
			continue
		}
		rec, ok := e.ledger.Placement(id)
		if !ok || rec.Position == nil {
			continue
		}
		if geometry.BoxesOverlap(p, *rec.Position, item.Width, item.Height) {
			return false
		}
	}
	return true
}
