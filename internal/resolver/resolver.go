package resolver

import (
	"sort"

	"wisefido-floorplan/internal/domain"
	"wisefido-floorplan/internal/geometry"
	"wisefido-floorplan/internal/ledger"
)

// Droppable 可放置目标（容器或容器内的条目槽位）及其当前屏幕矩形
type Droppable struct {
	ID   string        `json:"id"`
	Rect geometry.Rect `json:"rect"`
}

// Frame 一帧拖拽输入：宿主环境提供的指针位置与各目标矩形
type Frame struct {
	ActiveID   string
	ActiveRect geometry.Rect   // 被拖拽条目当前（已平移）的矩形
	Pointer    *geometry.Point // 指针位置，键盘拖拽等场景可为空
	Droppables []Droppable
}

type input struct {
	frame         Frame
	containers    ledger.Containers
	recentlyMoved bool
}

// strategy 返回 (id, true) 表示已得出结论（id 为空代表"无目标"），false 则交给下一个策略
type strategy func(in *input) (string, bool)

// Resolver 每帧选出唯一的放置目标
// 按顺序尝试：整列拖拽 -> 几何命中 -> 刚跨容器移动 -> 上一次命中
type Resolver struct {
	lastOverID string
	strategies []strategy
}

// New creates a resolver with the default strategy order.
func New() *Resolver {
	r := &Resolver{}
	r.strategies = []strategy{
		r.containerDrag,
		r.geometricHit,
		r.recentlyMovedFallback,
		r.lastKnownGood,
	}
	return r
}

// Resolve 解析本帧目标；ok=false 表示无目标
func (r *Resolver) Resolve(frame Frame, containers ledger.Containers, recentlyMoved bool) (string, bool) {
	in := &input{frame: frame, containers: containers, recentlyMoved: recentlyMoved}
	for _, s := range r.strategies {
		if id, done := s(in); done {
			return id, id != ""
		}
	}
	return "", false
}

// LastOverID 最近一次缓存的目标
func (r *Resolver) LastOverID() string { return r.lastOverID }

// Reset 清空缓存（每次拖拽结束时调用）
func (r *Resolver) Reset() { r.lastOverID = "" }

// containerDrag 拖拽的是整个容器：只在容器目标之间取中心最近者
func (r *Resolver) containerDrag(in *input) (string, bool) {
	if !domain.IsContainerID(in.frame.ActiveID) {
		return "", false
	}
	var candidates []Droppable
	for _, d := range in.frame.Droppables {
		if domain.IsContainerID(d.ID) {
			candidates = append(candidates, d)
		}
	}
	id, _ := closestCenter(in.frame.ActiveRect, candidates)
	return id, true
}

// geometricHit 先看指针命中，没有再看矩形相交；命中非空容器时细化到容器内中心最近的条目
func (r *Resolver) geometricHit(in *input) (string, bool) {
	hits := pointerWithin(in.frame.Pointer, in.frame.Droppables)
	if len(hits) == 0 {
		hits = rectIntersection(in.frame.ActiveRect, in.frame.Droppables)
	}
	if len(hits) == 0 {
		return "", false
	}

	overID := hits[0].ID
	if domain.IsContainerID(overID) {
		container := domain.ContainerID(overID)
		if in.containers.Len(container) > 0 {
			var candidates []Droppable
			for _, d := range in.frame.Droppables {
				if d.ID != overID && in.containers.IndexOf(container, d.ID) >= 0 {
					candidates = append(candidates, d)
				}
			}
			if id, ok := closestCenter(in.frame.ActiveRect, candidates); ok {
				overID = id
			}
		}
	}

	r.lastOverID = overID
	return overID, true
}

// recentlyMovedFallback 刚移动到新容器时布局会重排，本帧可能没有任何命中；
// 此时用被拖拽条目自身作为目标，避免回落到旧目标导致条目来回跳动
func (r *Resolver) recentlyMovedFallback(in *input) (string, bool) {
	if !in.recentlyMoved || in.frame.ActiveID == "" {
		return "", false
	}
	r.lastOverID = in.frame.ActiveID
	return r.lastOverID, true
}

func (r *Resolver) lastKnownGood(_ *input) (string, bool) {
	if r.lastOverID == "" {
		return "", false
	}
	return r.lastOverID, true
}

// pointerWithin 包含指针的目标，按指针到目标中心的距离升序
func pointerWithin(pointer *geometry.Point, droppables []Droppable) []Droppable {
	if pointer == nil {
		return nil
	}
	var hits []Droppable
	for _, d := range droppables {
		if d.Rect.Contains(*pointer) {
			hits = append(hits, d)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return geometry.Distance(*pointer, hits[i].Rect.Center()) < geometry.Distance(*pointer, hits[j].Rect.Center())
	})
	return hits
}

// rectIntersection 与拖拽矩形相交的目标，按交并比降序
func rectIntersection(active geometry.Rect, droppables []Droppable) []Droppable {
	type scored struct {
		d     Droppable
		ratio float64
	}
	var hits []scored
	for _, d := range droppables {
		if ratio := active.IntersectionRatio(d.Rect); ratio > 0 {
			hits = append(hits, scored{d: d, ratio: ratio})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].ratio > hits[j].ratio })

	out := make([]Droppable, len(hits))
	for i, h := range hits {
		out[i] = h.d
	}
	return out
}

// closestCenter 中心距离最近的目标
func closestCenter(active geometry.Rect, candidates []Droppable) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	center := active.Center()
	best := candidates[0]
	bestDist := geometry.Distance(center, best.Rect.Center())
	for _, d := range candidates[1:] {
		if dist := geometry.Distance(center, d.Rect.Center()); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best.ID, true
}
