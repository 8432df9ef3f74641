package editor

import (
	"wisefido-floorplan/internal/domain"
	"wisefido-floorplan/internal/ledger"
	"wisefido-floorplan/internal/resolver"
)

// State 拖拽会话状态
type State int

const (
	Idle State = iota
	Dragging
	Committing
	Cancelling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Committing:
		return "committing"
	case Cancelling:
		return "cancelling"
	}
	return "unknown"
}

// 放置被拒绝的原因（全部收敛到 Cancel）
const (
	ReasonNotDragging      = "not_dragging"
	ReasonActiveNotFound   = "active_not_found"
	ReasonNoTarget         = "no_target"
	ReasonTargetNotFound   = "target_not_found"
	ReasonDropNotAllowed   = "drop_not_allowed"
	ReasonInvalidPlacement = "invalid_placement"
	ReasonUserCancelled    = "cancelled"
)

// session 单个活动拖拽的全部可变状态；一个编辑器同一时刻只有一个
type session struct {
	state State

	// originID 宿主拖拽的 id（面板拖出时是模板 id）；activeID 当前在容器中的 id（面板拖出后为克隆 id）
	originID string
	activeID string

	snapshot ledger.Containers
	offset   Offset

	deviationRepair bool
	// recentlyMoved 跨容器移动后置位，下一次渲染完成（RenderComplete）后清除
	recentlyMoved bool
	// overID 最近一帧解析出的目标
	overID string

	resolver *resolver.Resolver
}

func newSession() session {
	return session{resolver: resolver.New()}
}

func (s *session) begin(itemID string, snapshot ledger.Containers, offset Offset) {
	s.state = Dragging
	s.originID = itemID
	s.activeID = itemID
	s.snapshot = snapshot
	s.offset = offset
	s.deviationRepair = false
	s.recentlyMoved = false
	s.overID = ""
	s.resolver.Reset()
}

func (s *session) reset() {
	s.state = Idle
	s.originID = ""
	s.activeID = ""
	s.snapshot = ledger.Containers{}
	s.offset = Offset{}
	s.deviationRepair = false
	s.recentlyMoved = false
	s.overID = ""
	s.resolver.Reset()
}

// dropTarget 宿主未给出目标时（松手那一帧没有命中）使用解析器缓存的目标
func (s *session) dropTarget(hostOverID string) string {
	if hostOverID != "" {
		return hostOverID
	}
	return s.resolver.LastOverID()
}

// owns 宿主传来的 id 可能是模板 id，也可能是克隆后的 id
func (s *session) owns(itemID string) bool {
	return itemID == "" || itemID == s.originID || itemID == s.activeID
}

// originalContainer 条目拖拽前所在容器（从快照中查）
func (s *session) originalContainer() (domain.ContainerID, bool) {
	return s.snapshot.Find(s.originID)
}
