package editor

import (
	"go.uber.org/zap"

	"wisefido-floorplan/internal/domain"
	"wisefido-floorplan/internal/geometry"
	"wisefido-floorplan/internal/ledger"
	"wisefido-floorplan/internal/resolver"
)

// Editor 楼层平面拖拽引擎
// 单线程、同步：调用方保证同一编辑器不会并发调用
type Editor struct {
	settings Settings
	ledger   ledger.Ledger
	session  session
	menuOpen bool
	logger   *zap.Logger
}

// OverEvent 拖拽经过（每帧一次）
type OverEvent struct {
	ItemID     string               `json:"item_id"`
	Pointer    *geometry.Point      `json:"pointer,omitempty"`
	ActiveRect geometry.Rect        `json:"active_rect"` // 拖拽开始时条目的矩形，加上 Delta 得到当前矩形
	Delta      geometry.Point       `json:"delta"`
	Droppables []resolver.Droppable `json:"droppables"`
}

// EndEvent 拖拽结束
type EndEvent struct {
	ItemID string         `json:"item_id"`
	OverID string         `json:"over_id"`
	Delta  geometry.Point `json:"delta"`
	Layout Layout         `json:"layout"`
}

// Outcome 拖拽结束的结果
type Outcome struct {
	Committed bool               `json:"committed"`
	ItemID    string             `json:"item_id"`
	Container domain.ContainerID `json:"container,omitempty"`
	Placement *domain.Placement  `json:"placement,omitempty"`
	Reason    string             `json:"reason,omitempty"`
}

// New 创建编辑器，面板预置四种组件模板
func New(settings Settings, logger *zap.Logger) *Editor {
	return NewWithLedger(settings, ledger.New(ledger.NewContainers(nil, nil, domain.PaletteIDs())), logger)
}

// NewWithLedger creates an editor over an existing ledger.
func NewWithLedger(settings Settings, l ledger.Ledger, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{
		settings: settings,
		ledger:   l,
		session:  newSession(),
		logger:   logger,
	}
}

func (e *Editor) Ledger() ledger.Ledger { return e.ledger }
func (e *Editor) State() State          { return e.session.state }
func (e *Editor) Settings() Settings    { return e.settings }

// ActiveID 当前拖拽中的条目 id（未拖拽时为空）
func (e *Editor) ActiveID() string { return e.session.activeID }

// OverID 最近一帧解析出的放置目标（未拖拽或尚无命中时为空）
func (e *Editor) OverID() string { return e.session.overID }

// Start Idle -> Dragging：记录容器快照与拖拽前偏移
// 菜单/编辑弹窗打开时、已有拖拽时、条目不存在时拒绝
func (e *Editor) Start(itemID string, offset Offset) bool {
	if e.menuOpen {
		e.logger.Debug("drag start suppressed, menu open", zap.String("item_id", itemID))
		return false
	}
	if e.session.state != Idle {
		e.logger.Debug("drag start ignored, session active",
			zap.String("item_id", itemID),
			zap.String("active_id", e.session.activeID),
		)
		return false
	}
	if !e.ledger.Containers().Contains(itemID) {
		return false
	}

	e.session.begin(itemID, e.ledger.Containers(), offset)
	return true
}

// Over 拖拽经过：解析目标，必要时把条目临时移到目标容器
// 返回容器是否发生变化
func (e *Editor) Over(ev OverEvent) bool {
	s := &e.session
	if s.state != Dragging || !s.owns(ev.ItemID) {
		return false
	}

	containers := e.ledger.Containers()
	activeRect := ev.ActiveRect.Translate(ev.Delta)
	overID, ok := s.resolver.Resolve(resolver.Frame{
		ActiveID:   s.activeID,
		ActiveRect: activeRect,
		Pointer:    ev.Pointer,
		Droppables: ev.Droppables,
	}, containers, s.recentlyMoved)
	if !ok {
		return false
	}
	s.overID = overID
	if domain.IsContainerID(s.activeID) {
		return false
	}

	overContainer, ok := containers.Find(overID)
	if !ok {
		return false
	}
	activeContainer, ok := containers.Find(s.activeID)
	if !ok {
		return false
	}
	original, _ := s.originalContainer()
	s.deviationRepair = original == domain.Palette

	if activeContainer == overContainer {
		return false
	}
	if !dropAllowed(original, overContainer) {
		e.logger.Debug("interim move rejected",
			zap.String("item_id", s.activeID),
			zap.String("from", original.String()),
			zap.String("to", overContainer.String()),
		)
		return false
	}

	probe := ev.Pointer
	if probe == nil {
		center := activeRect.Center()
		probe = &center
	}
	index := insertionIndex(containers, overContainer, overID, probe, ev.Droppables)
	e.relocate(activeContainer, overContainer, index)
	return true
}

// End Dragging -> Committing|Cancelling -> Idle
func (e *Editor) End(ev EndEvent) Outcome {
	s := &e.session
	if s.state != Dragging || !s.owns(ev.ItemID) {
		return Outcome{ItemID: ev.ItemID, Reason: ReasonNotDragging}
	}
	s.state = Committing

	containers := e.ledger.Containers()
	activeContainer, ok := containers.Find(s.activeID)
	if !ok {
		return e.cancel(ReasonActiveNotFound)
	}
	overID := s.dropTarget(ev.OverID)
	if overID == "" {
		return e.cancel(ReasonNoTarget)
	}
	overContainer, ok := containers.Find(overID)
	if !ok {
		return e.cancel(ReasonTargetNotFound)
	}

	// 用拖拽前的容器判断，而不是过程中临时所在的容器
	original, _ := s.originalContainer()
	if !dropAllowed(original, overContainer) {
		return e.cancel(ReasonDropNotAllowed)
	}
	s.deviationRepair = original == domain.Palette

	// 提交从拖拽前的快照重新计算，失败时 e.ledger 的放置记录保持原样
	next := e.ledger.WithContainers(s.snapshot)
	if original != overContainer {
		at := insertionIndex(s.snapshot, overContainer, overID, nil, nil)
		if activeContainer == overContainer {
			// Over 阶段已经选好的槽位
			at = containers.IndexOf(overContainer, s.activeID)
		}
		next = e.commitMove(next, original, overContainer, at)
	}
	activeID := s.activeID

	switch overContainer {
	case domain.Canvas:
		p := e.canvasPosition(original, ev.Delta, ev.Layout)
		if !e.validPlacement(p, ev.Layout) {
			e.logger.Debug("placement rejected",
				zap.String("item_id", activeID),
				zap.Float64("x", p.X),
				zap.Float64("y", p.Y),
			)
			return e.cancel(ReasonInvalidPlacement)
		}
		rec := placementDefaults(next, activeID)
		rec.Position = &p
		rec.Pending = false
		next = next.SetPlacement(activeID, rec)
	case domain.Pending:
		if _, ok := next.Placement(activeID); ok {
			next = next.ClearPlacement(activeID)
		} else {
			// 待放置区只去坐标，不补房型默认值
			next = next.SetPlacement(activeID, domain.Placement{ID: activeID, Title: domain.Kind(activeID), Pending: true})
		}
	}

	// 落在同容器的其他条目上：按目标下标重排
	if !domain.IsContainerID(overID) && overID != activeID {
		current := next.Containers()
		from := current.IndexOf(overContainer, activeID)
		to := current.IndexOf(overContainer, overID)
		if from >= 0 && to >= 0 && from != to {
			next = next.Reorder(overContainer, from, to)
		}
	}
	e.ledger = next

	out := Outcome{Committed: true, ItemID: activeID, Container: overContainer}
	if rec, ok := e.ledger.Placement(activeID); ok {
		out.Placement = &rec
	}
	s.reset()
	return out
}

// Cancel 任意时刻回滚到拖拽开始时的容器快照；放置记录不受影响
func (e *Editor) Cancel() bool {
	if e.session.state == Idle {
		return false
	}
	e.cancel(ReasonUserCancelled)
	return true
}

// RenderComplete 宿主完成一次渲染后调用，清除"刚跨容器移动"标记
func (e *Editor) RenderComplete() {
	e.session.recentlyMoved = false
}

func (e *Editor) cancel(reason string) Outcome {
	s := &e.session
	s.state = Cancelling
	out := Outcome{ItemID: s.activeID, Reason: reason}

	e.ledger = e.ledger.WithContainers(s.snapshot)
	e.logger.Debug("drag cancelled",
		zap.String("item_id", s.originID),
		zap.String("reason", reason),
	)
	s.reset()
	return out
}

// relocate Over 阶段的临时移动：只改容器序列，不碰放置记录，取消时回滚快照即可
// 放置记录的副作用（去坐标、pending）在 End 提交时经 commitMove 统一写入
// 从面板拖出时模板留在面板，插入的是新分配的克隆 id
func (e *Editor) relocate(from, to domain.ContainerID, index int) {
	s := &e.session
	containers := e.ledger.Containers()
	if from == domain.Palette {
		clone := ledger.NextAvailable(containers, s.activeID)
		containers = containers.Insert(to, clone, index)
		s.activeID = clone
	} else {
		containers = containers.Move(s.activeID, from, to, index)
	}
	e.ledger = e.ledger.WithContainers(containers)
	s.recentlyMoved = true
}

// commitMove 在快照账本上执行跨容器移动；面板模板复用 Over 阶段分配的克隆 id
func (e *Editor) commitMove(l ledger.Ledger, from, to domain.ContainerID, index int) ledger.Ledger {
	s := &e.session
	if from != domain.Palette {
		return l.MoveItem(s.originID, from, to, index)
	}
	clone := s.activeID
	if clone == s.originID {
		clone = ledger.NextAvailable(l.Containers(), s.originID)
		s.activeID = clone
	}
	return l.WithContainers(l.Containers().Insert(to, clone, index))
}

// insertionIndex 目标槽位下标；指针位于目标垂直中线以下时 +1；目标是容器本身时追加到末尾
func insertionIndex(c ledger.Containers, container domain.ContainerID, overID string, probe *geometry.Point, droppables []resolver.Droppable) int {
	if domain.IsContainerID(overID) {
		return c.Len(container)
	}
	index := c.IndexOf(container, overID)
	if index < 0 {
		return c.Len(container)
	}
	if probe == nil {
		return index
	}
	for _, d := range droppables {
		if d.ID == overID {
			if probe.Y > d.Rect.Center().Y {
				index++
			}
			break
		}
	}
	return index
}

// placementDefaults 已有字段原样保留；缺房型、床位且未标记无床位时按 id 前缀补默认值
// 前缀为 "Room" 的默认 6 床（B6），其他类型无床位
func placementDefaults(l ledger.Ledger, id string) domain.Placement {
	kind := domain.Kind(id)
	rec, ok := l.Placement(id)
	if !ok {
		rec = domain.Placement{ID: id}
	}
	if rec.Title == "" {
		rec.Title = kind
	}
	if rec.NoBeds || rec.RoomTypeCode != nil || len(rec.Beds) > 0 {
		return rec
	}
	if kind == domain.KindRoom {
		rt, _ := domain.LookupRoomType(domain.DefaultRoomTypeCode)
		rec.RoomTypeCode = domain.StringPtr(rt.Code)
		rec.Beds = domain.GenerateBeds(rt.Quantity)
	} else {
		rec.NoBeds = true
	}
	return rec
}
