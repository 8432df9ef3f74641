package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"wisefido-floorplan/internal/domain"
)

// MemoryRoomsRepo DB 未就绪时的联调数据源
// - 按 tenant_id + unit_id 隔离
// - room_id 使用 uuid
type MemoryRoomsRepo struct {
	mu    sync.RWMutex
	rooms map[string][]domain.UnitRoom // tenantID/unitID -> rooms
}

func NewMemoryRoomsRepo() *MemoryRoomsRepo {
	return &MemoryRoomsRepo{rooms: map[string][]domain.UnitRoom{}}
}

func unitKey(tenantID, unitID string) string {
	return tenantID + "/" + unitID
}

// AddRoom 写入一个房间，返回分配的 room_id
func (r *MemoryRoomsRepo) AddRoom(tenantID, unitID, roomName string, bedCount int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := domain.UnitRoom{RoomID: uuid.NewString(), RoomName: roomName, BedCount: bedCount}
	key := unitKey(tenantID, unitID)
	r.rooms[key] = append(r.rooms[key], room)
	return room.RoomID
}

func (r *MemoryRoomsRepo) ListUnitRooms(_ context.Context, tenantID, unitID string) ([]domain.UnitRoom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if tenantID == "" || unitID == "" {
		return []domain.UnitRoom{}, nil
	}
	out := append([]domain.UnitRoom{}, r.rooms[unitKey(tenantID, unitID)]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].RoomName < out[j].RoomName })
	return out, nil
}
