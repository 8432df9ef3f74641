package repository

import (
	"context"

	"wisefido-floorplan/internal/domain"
)

// RoomsRepository 单元已有房间（装入 Pending 列表的数据源）
type RoomsRepository interface {
	ListUnitRooms(ctx context.Context, tenantID, unitID string) ([]domain.UnitRoom, error)
}
