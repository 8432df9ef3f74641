package domain

import "wisefido-floorplan/internal/geometry"

// Bed 床位
type Bed struct {
	BedNo int `json:"bedNo"`
}

// Placement 条目的放置记录（位置 + 房间元数据）
// Position 仅在条目位于 Canvas 且 Pending=false 时存在
type Placement struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	RoomTypeCode *string         `json:"roomTypeCode"`
	Pending      bool            `json:"pending"`
	Position     *geometry.Point `json:"position,omitempty"`
	NoBeds       bool            `json:"noBeds"`
	Beds         []Bed           `json:"beds"`
}

// Clone 深拷贝（指针字段与 beds 不共享）
func (p Placement) Clone() Placement {
	out := p
	if p.RoomTypeCode != nil {
		code := *p.RoomTypeCode
		out.RoomTypeCode = &code
	}
	if p.Position != nil {
		pos := *p.Position
		out.Position = &pos
	}
	if p.Beds != nil {
		out.Beds = append([]Bed(nil), p.Beds...)
	}
	return out
}

// RoomTypeCodeOrEmpty 便于日志/比较
func (p Placement) RoomTypeCodeOrEmpty() string {
	if p.RoomTypeCode == nil {
		return ""
	}
	return *p.RoomTypeCode
}

// StringPtr helper for nullable codes.
func StringPtr(s string) *string { return &s }
