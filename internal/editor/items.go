package editor

import (
	"strings"

	"go.uber.org/zap"

	"wisefido-floorplan/internal/domain"
	"wisefido-floorplan/internal/ledger"
)

// Edit 编辑弹窗保存的内容
type Edit struct {
	Title        string  `json:"title"`
	RoomTypeCode *string `json:"roomTypeCode"`
}

// SetMenuOpen 右键菜单或编辑弹窗打开期间不允许开始拖拽
func (e *Editor) SetMenuOpen(open bool) {
	e.menuOpen = open
}

func (e *Editor) MenuOpen() bool { return e.menuOpen }

// EditSave 更新条目标题/房型；房型变化时重建床位列表，坐标保持不变
func (e *Editor) EditSave(id string, edit Edit) bool {
	containers := e.ledger.Containers()
	container, ok := containers.Find(id)
	if !ok || domain.IsContainerID(id) || container == domain.Palette {
		return false
	}
	if e.session.state != Idle {
		return false
	}

	title := strings.TrimSpace(edit.Title)
	if title == "" {
		return false
	}

	rec, ok := e.ledger.Placement(id)
	if !ok {
		rec = placementDefaults(e.ledger, id)
		rec.Pending = container != domain.Canvas
	}
	if domain.EditLocked(rec) {
		e.logger.Debug("edit rejected, item locked", zap.String("item_id", id))
		return false
	}

	rec.Title = title
	if rec.NoBeds {
		rec.RoomTypeCode = nil
		rec.Beds = nil
	} else {
		if edit.RoomTypeCode == nil {
			return false
		}
		rt, ok := domain.LookupRoomType(*edit.RoomTypeCode)
		if !ok {
			e.logger.Debug("edit rejected, unknown room type",
				zap.String("item_id", id),
				zap.String("room_type", *edit.RoomTypeCode),
			)
			return false
		}
		if rec.RoomTypeCodeOrEmpty() != rt.Code || len(rec.Beds) != rt.Quantity {
			rec.Beds = domain.GenerateBeds(rt.Quantity)
		}
		rec.RoomTypeCode = domain.StringPtr(rt.Code)
	}

	e.ledger = e.ledger.SetPlacement(id, rec)
	return true
}

// Delete 删除画布或待放置列表中的条目；面板模板不可删除，拖拽进行中不可删除
func (e *Editor) Delete(id string) bool {
	if e.session.state != Idle {
		return false
	}
	container, ok := e.ledger.Containers().Find(id)
	if !ok || domain.IsContainerID(id) || container == domain.Palette {
		return false
	}
	e.ledger = e.ledger.DeleteItem(id)
	return true
}

// LoadPending 把外部房间数据装入 Pending 列表；返回分配的条目 id
// 拖拽进行中不装载
func (e *Editor) LoadPending(rooms []domain.UnitRoom) []string {
	if e.session.state != Idle {
		return nil
	}
	ids := make([]string, 0, len(rooms))
	for _, room := range rooms {
		containers := e.ledger.Containers()
		id := ledger.NextAvailable(containers, domain.FormatID(domain.KindRoom, 1))
		e.ledger = e.ledger.WithContainers(containers.Insert(domain.Pending, id, containers.Len(domain.Pending)))

		rec := domain.Placement{
			ID:      id,
			Title:   strings.TrimSpace(room.RoomName),
			Pending: true,
		}
		if rec.Title == "" {
			rec.Title = domain.KindRoom
		}
		if rt, ok := domain.RoomTypeForBedCount(room.BedCount); ok {
			rec.RoomTypeCode = domain.StringPtr(rt.Code)
		}
		rec.Beds = domain.GenerateBeds(room.BedCount)
		e.ledger = e.ledger.SetPlacement(id, rec)
		ids = append(ids, id)
	}
	return ids
}
