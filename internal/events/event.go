package events

import (
	"context"
	"time"

	"wisefido-floorplan/internal/domain"
)

// Type 事件类型
type Type string

const (
	PlacementCommitted Type = "placement.committed" // 条目落在画布上
	PlacementPending   Type = "placement.pending"   // 条目回到（或重排于）待放置列表
	DragCancelled      Type = "drag.cancelled"
	ItemEdited         Type = "item.edited"
	ItemDeleted        Type = "item.deleted"
)

// Event 编辑器提交的变更
type Event struct {
	Type      Type              `json:"type"`
	EditorID  string            `json:"editor_id"`
	TenantID  string            `json:"tenant_id"`
	UnitID    string            `json:"unit_id"`
	ItemID    string            `json:"item_id"`
	Reason    string            `json:"reason,omitempty"`
	Placement *domain.Placement `json:"placement,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// New stamps the event with the current unix time.
func New(t Type, editorID, tenantID, unitID, itemID string) Event {
	return Event{
		Type:      t,
		EditorID:  editorID,
		TenantID:  tenantID,
		UnitID:    unitID,
		ItemID:    itemID,
		Timestamp: time.Now().Unix(),
	}
}

// Publisher 事件发布；发布失败不影响编辑器状态
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// NopPublisher 未配置 Redis/MQTT 时使用
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
