package domain

// UnitRoom 单元下已存在的房间（来自 rooms/beds 表，只读装载到 Pending 列表）
type UnitRoom struct {
	RoomID   string `db:"room_id"`
	RoomName string `db:"room_name"`
	BedCount int    `db:"bed_count"`
}
