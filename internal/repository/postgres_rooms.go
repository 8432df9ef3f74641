package repository

import (
	"context"
	"database/sql"
	"fmt"

	"wisefido-floorplan/internal/domain"
)

// PostgresRoomsRepo 读取 rooms/beds 表（只读）
type PostgresRoomsRepo struct {
	db *sql.DB
}

func NewPostgresRoomsRepo(db *sql.DB) *PostgresRoomsRepo {
	return &PostgresRoomsRepo{db: db}
}

// ListUnitRooms 按房间名排序，附带床位数
func (r *PostgresRoomsRepo) ListUnitRooms(ctx context.Context, tenantID, unitID string) ([]domain.UnitRoom, error) {
	if tenantID == "" || unitID == "" {
		return []domain.UnitRoom{}, nil
	}

	q := `
		SELECT
			r.room_id::text,
			r.room_name,
			COUNT(b.bed_id) AS bed_count
		FROM rooms r
		LEFT JOIN beds b ON b.room_id = r.room_id AND b.tenant_id = r.tenant_id
		WHERE r.tenant_id = $1 AND r.unit_id = $2
		GROUP BY r.room_id, r.room_name
		ORDER BY r.room_name
	`
	rows, err := r.db.QueryContext(ctx, q, tenantID, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unit rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]domain.UnitRoom, 0)
	for rows.Next() {
		var room domain.UnitRoom
		if err := rows.Scan(&room.RoomID, &room.RoomName, &room.BedCount); err != nil {
			return nil, fmt.Errorf("failed to scan unit room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}
