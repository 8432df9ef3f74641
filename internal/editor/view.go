package editor

import (
	"wisefido-floorplan/internal/domain"
)

// View 渲染所需的全部只读状态
type View struct {
	State          string                          `json:"state"`
	Containers     map[domain.ContainerID][]string `json:"containers"`
	Placements     map[string]domain.Placement     `json:"placements"`
	ActiveID       string                          `json:"active_id,omitempty"`
	OverID         string                          `json:"over_id,omitempty"`
	Overlay        *Overlay                        `json:"overlay,omitempty"`
	HiddenOriginID string                          `json:"hidden_origin_id,omitempty"`
	MenuOpen       bool                            `json:"menu_open"`
	Palette        []domain.PaletteTemplate        `json:"palette"`
}

// Overlay 拖拽浮层：始终按拖拽开始前的条目身份渲染
type Overlay struct {
	ItemID      string             `json:"item_id"`
	From        domain.ContainerID `json:"from"`
	IsComponent bool               `json:"is_component"`
	Title       string             `json:"title"`
	NoBeds      bool               `json:"noBeds"`
}

// View 当前状态快照
func (e *Editor) View() View {
	v := View{
		State:      e.session.state.String(),
		Containers: e.ledger.Containers().Map(),
		Placements: e.ledger.Placements(),
		MenuOpen:   e.menuOpen,
		Palette:    domain.Templates(),
	}
	if e.session.state != Dragging {
		return v
	}

	s := &e.session
	v.ActiveID = s.activeID
	v.OverID = s.overID
	from, _ := s.originalContainer()
	overlay := &Overlay{
		ItemID:      s.originID,
		From:        from,
		IsComponent: from == domain.Palette,
	}
	if rec, ok := e.ledger.Placement(s.originID); ok {
		overlay.Title = rec.Title
		overlay.NoBeds = rec.NoBeds
	} else if t, ok := domain.TemplateForKind(domain.Kind(s.originID)); ok {
		overlay.Title = t.Title
		overlay.NoBeds = t.NoBeds
	} else {
		overlay.Title = domain.Kind(s.originID)
	}
	v.Overlay = overlay
	// 从画布外拖入、临时落在画布里的条目由浮层代替显示
	if current, ok := e.ledger.Containers().Find(s.activeID); ok && from != domain.Canvas && current == domain.Canvas {
		v.HiddenOriginID = s.activeID
	}
	return v
}
