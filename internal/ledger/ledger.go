package ledger

import (
	"wisefido-floorplan/internal/domain"
)

// Ledger 容器序列 + 放置记录表（以条目 id 为键）
// 所有操作都是全函数：不存在的 id 直接返回原值，不报错
type Ledger struct {
	containers Containers
	placements map[string]domain.Placement
}

// New creates a ledger with no placement records.
func New(c Containers) Ledger {
	return Ledger{containers: c, placements: map[string]domain.Placement{}}
}

// Containers 当前容器快照（值拷贝，可直接保存）
func (l Ledger) Containers() Containers { return l.containers }

// Placement 返回记录副本
func (l Ledger) Placement(id string) (domain.Placement, bool) {
	p, ok := l.placements[id]
	if !ok {
		return domain.Placement{}, false
	}
	return p.Clone(), true
}

// Placements 返回全部记录副本
func (l Ledger) Placements() map[string]domain.Placement {
	out := make(map[string]domain.Placement, len(l.placements))
	for id, p := range l.placements {
		out[id] = p.Clone()
	}
	return out
}

// WithContainers 整体替换容器（拖拽取消时回滚到快照）
func (l Ledger) WithContainers(c Containers) Ledger {
	l.containers = c
	return l
}

// MoveItem 跨容器移动；移出 Canvas 去掉坐标并标记 pending，移入 Canvas 取消 pending
func (l Ledger) MoveItem(id string, from, to domain.ContainerID, at int) Ledger {
	if l.containers.IndexOf(from, id) < 0 {
		return l
	}
	next := l.WithContainers(l.containers.Move(id, from, to, at))

	p, ok := next.placements[id]
	if !ok || from == to {
		return next
	}
	p = p.Clone()
	if from == domain.Canvas {
		p.Position = nil
		p.Pending = true
	}
	if to == domain.Canvas {
		p.Pending = false
	}
	return next.withPlacement(id, p)
}

// Reorder 容器内重排
func (l Ledger) Reorder(container domain.ContainerID, from, to int) Ledger {
	return l.WithContainers(l.containers.Reorder(container, from, to))
}

// SetPlacement 写入记录（仅限仍存在于某个容器的条目）
func (l Ledger) SetPlacement(id string, rec domain.Placement) Ledger {
	if !l.containers.Contains(id) {
		return l
	}
	rec = rec.Clone()
	rec.ID = id
	return l.withPlacement(id, rec)
}

// ClearPlacement 去掉坐标并标记 pending，其余元数据保留
func (l Ledger) ClearPlacement(id string) Ledger {
	p, ok := l.placements[id]
	if !ok {
		return l
	}
	p = p.Clone()
	p.Position = nil
	p.Pending = true
	return l.withPlacement(id, p)
}

// DeleteItem 从容器移除条目并删除其记录
func (l Ledger) DeleteItem(id string) Ledger {
	if !l.containers.Contains(id) {
		return l
	}
	next := l.WithContainers(l.containers.Remove(id))
	placements := make(map[string]domain.Placement, len(l.placements))
	for k, v := range l.placements {
		if k != id {
			placements[k] = v
		}
	}
	next.placements = placements
	return next
}

func (l Ledger) withPlacement(id string, p domain.Placement) Ledger {
	placements := make(map[string]domain.Placement, len(l.placements)+1)
	for k, v := range l.placements {
		placements[k] = v
	}
	placements[id] = p
	l.placements = placements
	return l
}
