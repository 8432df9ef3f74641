package ledger

import (
	"encoding/json"

	"wisefido-floorplan/internal/domain"
)

// Containers 三个容器的有序 id 序列
// 值语义：所有变更都返回新的 Containers，原值不变（快照可以直接保存）
type Containers struct {
	pending []string
	canvas  []string
	palette []string
}

// NewContainers copies the given sequences.
func NewContainers(pending, canvas, palette []string) Containers {
	return Containers{
		pending: cloneIDs(pending),
		canvas:  cloneIDs(canvas),
		palette: cloneIDs(palette),
	}
}

func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func (c Containers) list(id domain.ContainerID) []string {
	switch id {
	case domain.Pending:
		return c.pending
	case domain.Canvas:
		return c.canvas
	case domain.Palette:
		return c.palette
	}
	return nil
}

// with 返回替换了某个容器序列的新值（ids 由调用方新建，不与旧值共享）
func (c Containers) with(id domain.ContainerID, ids []string) Containers {
	switch id {
	case domain.Pending:
		c.pending = ids
	case domain.Canvas:
		c.canvas = ids
	case domain.Palette:
		c.palette = ids
	}
	return c
}

// Items 返回容器内 id 的副本
func (c Containers) Items(id domain.ContainerID) []string {
	return cloneIDs(c.list(id))
}

// Len returns the number of items in a container.
func (c Containers) Len(id domain.ContainerID) int {
	return len(c.list(id))
}

// IndexOf 条目在容器中的下标，不存在返回 -1
func (c Containers) IndexOf(container domain.ContainerID, itemID string) int {
	for i, id := range c.list(container) {
		if id == itemID {
			return i
		}
	}
	return -1
}

// Find 查找 id 所在的容器；id 本身是容器 id 时返回它自己
func (c Containers) Find(id string) (domain.ContainerID, bool) {
	if domain.IsContainerID(id) {
		return domain.ContainerID(id), true
	}
	for _, cid := range domain.AllContainers {
		if c.IndexOf(cid, id) >= 0 {
			return cid, true
		}
	}
	return "", false
}

// Contains 条目是否存在于任意容器
func (c Containers) Contains(itemID string) bool {
	if domain.IsContainerID(itemID) {
		return false
	}
	_, ok := c.Find(itemID)
	return ok
}

// All 按容器顺序列出所有条目
func (c Containers) All() []string {
	out := make([]string, 0, len(c.pending)+len(c.canvas)+len(c.palette))
	for _, cid := range domain.AllContainers {
		out = append(out, c.list(cid)...)
	}
	return out
}

// Insert 在 at 处插入条目（at 越界时夹到 [0, len]）；条目已存在时不变
func (c Containers) Insert(container domain.ContainerID, itemID string, at int) Containers {
	if c.Contains(itemID) || !domain.IsContainerID(string(container)) {
		return c
	}
	return c.with(container, insertAt(c.list(container), itemID, at))
}

// Remove 从所在容器移除条目
func (c Containers) Remove(itemID string) Containers {
	from, ok := c.Find(itemID)
	if !ok || domain.IsContainerID(itemID) {
		return c
	}
	return c.with(from, removeID(c.list(from), itemID))
}

// Move 把条目从 from 移到 to 的 at 位置；条目不在 from 中时不变
func (c Containers) Move(itemID string, from, to domain.ContainerID, at int) Containers {
	if c.IndexOf(from, itemID) < 0 || !domain.IsContainerID(string(to)) {
		return c
	}
	next := c.with(from, removeID(c.list(from), itemID))
	return next.with(to, insertAt(next.list(to), itemID, at))
}

// Replace 原位替换条目 id（面板模板被拖出时用新序号顶替）
func (c Containers) Replace(container domain.ContainerID, oldID, newID string) Containers {
	i := c.IndexOf(container, oldID)
	if i < 0 || c.Contains(newID) {
		return c
	}
	ids := cloneIDs(c.list(container))
	ids[i] = newID
	return c.with(container, ids)
}

// Reorder 容器内移动：把 from 处的条目挪到 to（arrayMove 语义）
func (c Containers) Reorder(container domain.ContainerID, from, to int) Containers {
	ids := c.list(container)
	if from < 0 || from >= len(ids) || to < 0 || to >= len(ids) || from == to {
		return c
	}
	item := ids[from]
	rest := removeAt(ids, from)
	return c.with(container, insertAt(rest, item, to))
}

// Equal reports whether both values hold the same sequences.
func (c Containers) Equal(o Containers) bool {
	for _, cid := range domain.AllContainers {
		a, b := c.list(cid), o.list(cid)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// Map 导出为 container -> ids（供渲染/JSON）
func (c Containers) Map() map[domain.ContainerID][]string {
	out := make(map[domain.ContainerID][]string, len(domain.AllContainers))
	for _, cid := range domain.AllContainers {
		out[cid] = c.Items(cid)
	}
	return out
}

func (c Containers) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Map())
}

func insertAt(ids []string, id string, at int) []string {
	if at < 0 {
		at = 0
	}
	if at > len(ids) {
		at = len(ids)
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:at]...)
	out = append(out, id)
	out = append(out, ids[at:]...)
	return out
}

func removeAt(ids []string, i int) []string {
	out := make([]string, 0, len(ids))
	out = append(out, ids[:i]...)
	return append(out, ids[i+1:]...)
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
