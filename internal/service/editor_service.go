package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wisefido-floorplan/internal/domain"
	"wisefido-floorplan/internal/editor"
	"wisefido-floorplan/internal/events"
	"wisefido-floorplan/internal/repository"
)

var (
	ErrEditorNotFound = errors.New("editor not found")
	ErrInvalidScope   = errors.New("tenant_id and unit_id are required")
)

// EditorView 带编辑器身份的视图
type EditorView struct {
	EditorID string `json:"editor_id"`
	TenantID string `json:"tenant_id"`
	UnitID   string `json:"unit_id"`
	editor.View
}

// ActionResult 一次操作是否被编辑器接受，以及操作后的视图
type ActionResult struct {
	Accepted bool       `json:"accepted"`
	View     EditorView `json:"view"`
}

// EndResult 拖拽结束的结果
type EndResult struct {
	Outcome editor.Outcome `json:"outcome"`
	View    EditorView     `json:"view"`
}

// EditorService 管理多个编辑器；每个编辑器由自己的互斥锁串行化
type EditorService struct {
	mu      sync.RWMutex
	editors map[string]*entry

	settings  editor.Settings
	rooms     repository.RoomsRepository
	publisher events.Publisher
	logger    *zap.Logger
}

type entry struct {
	mu       sync.Mutex
	id       string
	tenantID string
	unitID   string
	editor   *editor.Editor

	subs    map[int]chan EditorView
	nextSub int
}

func NewEditorService(settings editor.Settings, rooms repository.RoomsRepository, publisher events.Publisher, logger *zap.Logger) *EditorService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditorService{
		editors:   map[string]*entry{},
		settings:  settings,
		rooms:     rooms,
		publisher: publisher,
		logger:    logger,
	}
}

// Create 新建编辑器：面板预置模板，待放置列表装入单元已有房间
func (s *EditorService) Create(ctx context.Context, tenantID, unitID string) (EditorView, error) {
	if tenantID == "" || unitID == "" {
		return EditorView{}, ErrInvalidScope
	}

	var rooms []domain.UnitRoom
	if s.rooms != nil {
		var err error
		rooms, err = s.rooms.ListUnitRooms(ctx, tenantID, unitID)
		if err != nil {
			return EditorView{}, fmt.Errorf("failed to load unit rooms: %w", err)
		}
	}

	id := uuid.NewString()
	e := &entry{
		id:       id,
		tenantID: tenantID,
		unitID:   unitID,
		editor:   editor.New(s.settings, s.logger.With(zap.String("editor_id", id))),
		subs:     map[int]chan EditorView{},
	}
	loaded := e.editor.LoadPending(rooms)

	s.mu.Lock()
	s.editors[id] = e
	s.mu.Unlock()

	s.logger.Info("editor created",
		zap.String("editor_id", id),
		zap.String("tenant_id", tenantID),
		zap.String("unit_id", unitID),
		zap.Int("pending_rooms", len(loaded)),
	)
	return e.view(), nil
}

// View 当前视图
func (s *EditorService) View(id string) (EditorView, error) {
	e, err := s.get(id)
	if err != nil {
		return EditorView{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view(), nil
}

// Close 移除编辑器并关闭所有订阅
func (s *EditorService) Close(id string) error {
	s.mu.Lock()
	e, ok := s.editors[id]
	delete(s.editors, id)
	s.mu.Unlock()
	if !ok {
		return ErrEditorNotFound
	}

	e.closeSubs()
	s.logger.Info("editor closed", zap.String("editor_id", id))
	return nil
}

// CloseAll 关闭全部编辑器；watch 连接已被劫持，http.Server.Shutdown 不会等它们，
// 关闭订阅后各连接的写循环发出 close 帧退出
func (s *EditorService) CloseAll() int {
	s.mu.Lock()
	closing := s.editors
	s.editors = map[string]*entry{}
	s.mu.Unlock()

	for _, e := range closing {
		e.closeSubs()
	}
	if len(closing) > 0 {
		s.logger.Info("editors closed", zap.Int("count", len(closing)))
	}
	return len(closing)
}

// Len 当前编辑器数量
func (s *EditorService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.editors)
}

// Subscribe 每次变更后推送最新视图；订阅者处理不过来时只保留最新一帧
func (s *EditorService) Subscribe(id string) (<-chan EditorView, func(), error) {
	e, err := s.get(id)
	if err != nil {
		return nil, nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	key := e.nextSub
	e.nextSub++
	ch := make(chan EditorView, 1)
	e.subs[key] = ch
	ch <- e.view()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			if c, ok := e.subs[key]; ok {
				close(c)
				delete(e.subs, key)
			}
		})
	}
	return ch, cancel, nil
}

func (s *EditorService) DragStart(ctx context.Context, id, itemID string, offset editor.Offset) (ActionResult, error) {
	return s.act(ctx, id, func(e *entry) (bool, []events.Event) {
		return e.editor.Start(itemID, offset), nil
	})
}

func (s *EditorService) DragOver(ctx context.Context, id string, ev editor.OverEvent) (ActionResult, error) {
	return s.act(ctx, id, func(e *entry) (bool, []events.Event) {
		return e.editor.Over(ev), nil
	})
}

func (s *EditorService) DragEnd(ctx context.Context, id string, ev editor.EndEvent) (EndResult, error) {
	var out editor.Outcome
	res, err := s.act(ctx, id, func(e *entry) (bool, []events.Event) {
		out = e.editor.End(ev)
		if out.Reason == editor.ReasonNotDragging {
			return false, nil
		}
		return out.Committed, []events.Event{e.outcomeEvent(out)}
	})
	if err != nil {
		return EndResult{}, err
	}
	return EndResult{Outcome: out, View: res.View}, nil
}

func (s *EditorService) DragCancel(ctx context.Context, id string) (ActionResult, error) {
	return s.act(ctx, id, func(e *entry) (bool, []events.Event) {
		itemID := e.editor.ActiveID()
		if !e.editor.Cancel() {
			return false, nil
		}
		ev := e.event(events.DragCancelled, itemID)
		ev.Reason = editor.ReasonUserCancelled
		return true, []events.Event{ev}
	})
}

func (s *EditorService) RenderComplete(ctx context.Context, id string) (ActionResult, error) {
	return s.act(ctx, id, func(e *entry) (bool, []events.Event) {
		e.editor.RenderComplete()
		return true, nil
	})
}

func (s *EditorService) SetMenuOpen(ctx context.Context, id string, open bool) (ActionResult, error) {
	return s.act(ctx, id, func(e *entry) (bool, []events.Event) {
		e.editor.SetMenuOpen(open)
		return true, nil
	})
}

func (s *EditorService) EditItem(ctx context.Context, id, itemID string, edit editor.Edit) (ActionResult, error) {
	return s.act(ctx, id, func(e *entry) (bool, []events.Event) {
		if !e.editor.EditSave(itemID, edit) {
			return false, nil
		}
		ev := e.event(events.ItemEdited, itemID)
		if rec, ok := e.editor.Ledger().Placement(itemID); ok {
			ev.Placement = &rec
		}
		return true, []events.Event{ev}
	})
}

func (s *EditorService) DeleteItem(ctx context.Context, id, itemID string) (ActionResult, error) {
	return s.act(ctx, id, func(e *entry) (bool, []events.Event) {
		if !e.editor.Delete(itemID) {
			return false, nil
		}
		return true, []events.Event{e.event(events.ItemDeleted, itemID)}
	})
}

// act 在编辑器锁内执行操作并推送视图，锁外发布事件
func (s *EditorService) act(ctx context.Context, id string, fn func(e *entry) (bool, []events.Event)) (ActionResult, error) {
	e, err := s.get(id)
	if err != nil {
		return ActionResult{}, err
	}

	e.mu.Lock()
	accepted, evs := fn(e)
	view := e.view()
	if accepted || len(evs) > 0 {
		e.broadcast(view)
	}
	e.mu.Unlock()

	for _, ev := range evs {
		if err := s.publisher.Publish(ctx, ev); err != nil {
			s.logger.Warn("failed to publish editor event",
				zap.String("editor_id", id),
				zap.String("type", string(ev.Type)),
				zap.Error(err),
			)
		}
	}
	return ActionResult{Accepted: accepted, View: view}, nil
}

func (s *EditorService) get(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.editors[id]
	if !ok {
		return nil, ErrEditorNotFound
	}
	return e, nil
}

func (e *entry) view() EditorView {
	return EditorView{
		EditorID: e.id,
		TenantID: e.tenantID,
		UnitID:   e.unitID,
		View:     e.editor.View(),
	}
}

func (e *entry) closeSubs() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for key, ch := range e.subs {
		close(ch)
		delete(e.subs, key)
	}
}

// broadcast 调用方持有 e.mu
func (e *entry) broadcast(v EditorView) {
	for _, ch := range e.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

func (e *entry) event(t events.Type, itemID string) events.Event {
	return events.New(t, e.id, e.tenantID, e.unitID, itemID)
}

func (e *entry) outcomeEvent(out editor.Outcome) events.Event {
	if !out.Committed {
		ev := e.event(events.DragCancelled, out.ItemID)
		ev.Reason = out.Reason
		return ev
	}
	t := events.PlacementPending
	if out.Container == domain.Canvas {
		t = events.PlacementCommitted
	}
	ev := e.event(t, out.ItemID)
	ev.Placement = out.Placement
	return ev
}
