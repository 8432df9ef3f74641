package replay

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wisefido-floorplan/internal/editor"
	"wisefido-floorplan/internal/geometry"
	"wisefido-floorplan/internal/resolver"
)

// 支持的步骤
const (
	ActionStart  = "start"
	ActionOver   = "over"
	ActionEnd    = "end"
	ActionCancel = "cancel"
	ActionRender = "render"
	ActionMenu   = "menu"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Script 一段可回放的拖拽操作序列
type Script struct {
	BaseURL  string     `yaml:"base_url"`
	TenantID string     `yaml:"tenant_id"`
	UnitID   string     `yaml:"unit_id"`
	Layout   LayoutSpec `yaml:"layout"` // end 步骤未指定 layout 时使用
	Steps    []Step     `yaml:"steps"`
	Keep     bool       `yaml:"keep"` // 回放结束后保留编辑器
}

type LayoutSpec struct {
	PendingWidth float64 `yaml:"pending_width"`
	PaletteWidth float64 `yaml:"palette_width"`
	CanvasWidth  float64 `yaml:"canvas_width"`
	CanvasHeight float64 `yaml:"canvas_height"`
}

func (l LayoutSpec) layout() editor.Layout {
	return editor.Layout{
		PendingWidth: l.PendingWidth,
		PaletteWidth: l.PaletteWidth,
		CanvasWidth:  l.CanvasWidth,
		CanvasHeight: l.CanvasHeight,
	}
}

// DroppableSpec rect: [left, top, width, height]
type DroppableSpec struct {
	ID   string     `yaml:"id"`
	Rect [4]float64 `yaml:"rect"`
}

type Step struct {
	Action       string          `yaml:"action"`
	ItemID       string          `yaml:"item_id"`
	OverID       string          `yaml:"over_id"`
	Offset       [2]float64      `yaml:"offset"`
	Delta        [2]float64      `yaml:"delta"`
	Pointer      []float64       `yaml:"pointer"`
	ActiveRect   [4]float64      `yaml:"active_rect"`
	Droppables   []DroppableSpec `yaml:"droppables"`
	Layout       *LayoutSpec     `yaml:"layout"`
	Open         bool            `yaml:"open"`
	Title        string          `yaml:"title"`
	RoomTypeCode string          `yaml:"room_type_code"`
	Expect       *Expect         `yaml:"expect"`
}

// Expect 可选断言；不写则不检查
type Expect struct {
	Accepted  *bool  `yaml:"accepted"`
	Committed *bool  `yaml:"committed"`
	Reason    string `yaml:"reason"`
}

// LoadScript 读取 YAML 脚本
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) validate() error {
	if s.TenantID == "" || s.UnitID == "" {
		return fmt.Errorf("script: tenant_id and unit_id are required")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case ActionStart, ActionEdit, ActionDelete:
			if st.ItemID == "" {
				return fmt.Errorf("script: step %d (%s) needs item_id", i, st.Action)
			}
		case ActionOver, ActionEnd, ActionCancel, ActionRender, ActionMenu:
		default:
			return fmt.Errorf("script: step %d has unknown action %q", i, st.Action)
		}
		if len(st.Pointer) != 0 && len(st.Pointer) != 2 {
			return fmt.Errorf("script: step %d pointer must be [x, y]", i)
		}
	}
	return nil
}

func (st Step) offset() editor.Offset {
	return editor.Offset{Left: st.Offset[0], Top: st.Offset[1]}
}

func (st Step) overEvent() editor.OverEvent {
	ev := editor.OverEvent{
		ItemID:     st.ItemID,
		ActiveRect: rect(st.ActiveRect),
		Delta:      geometry.Point{X: st.Delta[0], Y: st.Delta[1]},
	}
	if len(st.Pointer) == 2 {
		ev.Pointer = &geometry.Point{X: st.Pointer[0], Y: st.Pointer[1]}
	}
	for _, d := range st.Droppables {
		ev.Droppables = append(ev.Droppables, resolver.Droppable{ID: d.ID, Rect: rect(d.Rect)})
	}
	return ev
}

func (st Step) endEvent(def LayoutSpec) editor.EndEvent {
	l := def
	if st.Layout != nil {
		l = *st.Layout
	}
	return editor.EndEvent{
		ItemID: st.ItemID,
		OverID: st.OverID,
		Delta:  geometry.Point{X: st.Delta[0], Y: st.Delta[1]},
		Layout: l.layout(),
	}
}

func (st Step) edit() editor.Edit {
	e := editor.Edit{Title: st.Title}
	if st.RoomTypeCode != "" {
		code := st.RoomTypeCode
		e.RoomTypeCode = &code
	}
	return e
}

func rect(r [4]float64) geometry.Rect {
	return geometry.Rect{Left: r[0], Top: r[1], Width: r[2], Height: r[3]}
}
