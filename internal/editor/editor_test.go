package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisefido-floorplan/internal/domain"
	"wisefido-floorplan/internal/geometry"
	"wisefido-floorplan/internal/ledger"
	"wisefido-floorplan/internal/resolver"
)

var testLayout = Layout{
	PendingWidth: 299,
	PaletteWidth: 0,
	CanvasWidth:  970,
	CanvasHeight: 600,
}

func testSettings() Settings {
	s := DefaultSettings()
	s.PaletteGutter = 0
	return s
}

// 画布上 Room-2 (0,0)、Room-3 (100,0)；待放置 Room-5、Room-6
func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	c := ledger.NewContainers(
		[]string{"Room-5", "Room-6"},
		[]string{"Room-2", "Room-3"},
		domain.PaletteIDs(),
	)
	l := ledger.New(c)
	for id, pos := range map[string]geometry.Point{"Room-2": {X: 0, Y: 0}, "Room-3": {X: 100, Y: 0}} {
		p := pos
		l = l.SetPlacement(id, domain.Placement{
			Title:        id,
			RoomTypeCode: domain.StringPtr("B6"),
			Position:     &p,
			Beds:         domain.GenerateBeds(6),
		})
	}
	return NewWithLedger(testSettings(), l, nil)
}

func canvasDroppable() resolver.Droppable {
	return resolver.Droppable{ID: "canvas", Rect: geometry.Rect{Left: 300, Top: 0, Width: 970, Height: 600}}
}

func pendingDroppable() resolver.Droppable {
	return resolver.Droppable{ID: "pending", Rect: geometry.Rect{Left: 0, Top: 0, Width: 299, Height: 600}}
}

func assertPartition(t *testing.T, c ledger.Containers) {
	t.Helper()
	seen := map[string]bool{}
	for _, id := range c.All() {
		require.False(t, seen[id], "duplicate item %s", id)
		seen[id] = true
	}
}

func TestEditor_PaletteDropCreatesClone(t *testing.T) {
	e := New(testSettings(), nil)

	require.True(t, e.Start("Room-1", Offset{}))
	assert.Equal(t, Dragging, e.State())

	pointer := geometry.Point{X: 350, Y: 50}
	changed := e.Over(OverEvent{
		ItemID:     "Room-1",
		Pointer:    &pointer,
		ActiveRect: geometry.Rect{Left: 1300, Top: 0, Width: 120, Height: 60},
		Delta:      geometry.Point{X: 50, Y: 50},
		Droppables: []resolver.Droppable{canvasDroppable()},
	})
	require.True(t, changed)
	assert.Equal(t, "Room-2", e.ActiveID())
	assert.Equal(t, []string{"Room-2"}, e.Ledger().Containers().Items(domain.Canvas))

	out := e.End(EndEvent{
		ItemID: "Room-1",
		OverID: "canvas",
		Delta:  geometry.Point{X: 50, Y: 50},
		Layout: testLayout,
	})
	require.True(t, out.Committed, out.Reason)
	assert.Equal(t, "Room-2", out.ItemID)
	assert.Equal(t, domain.Canvas, out.Container)

	rec, ok := e.Ledger().Placement("Room-2")
	require.True(t, ok)
	require.NotNil(t, rec.Position)
	assert.Equal(t, geometry.Point{X: 40, Y: 40}, *rec.Position)
	assert.Equal(t, "B6", rec.RoomTypeCodeOrEmpty())
	assert.Len(t, rec.Beds, 6)
	assert.False(t, rec.Pending)

	c := e.Ledger().Containers()
	assert.Equal(t, domain.PaletteIDs(), c.Items(domain.Palette), "template stays in palette")
	assert.Equal(t, []string{"Room-2"}, c.Items(domain.Canvas))
	assert.Equal(t, Idle, e.State())
	assertPartition(t, c)
}

func TestEditor_PaletteDropWithoutOver(t *testing.T) {
	e := New(testSettings(), nil)
	require.True(t, e.Start("Nurse Station-1", Offset{}))

	out := e.End(EndEvent{ItemID: "Nurse Station-1", OverID: "canvas", Delta: geometry.Point{X: 130, Y: 10}, Layout: testLayout})
	require.True(t, out.Committed, out.Reason)
	assert.Equal(t, "Nurse Station-2", out.ItemID)

	rec, ok := e.Ledger().Placement("Nurse Station-2")
	require.True(t, ok)
	assert.True(t, rec.NoBeds)
	assert.Nil(t, rec.RoomTypeCode)
	assert.Equal(t, "Nurse Station", rec.Title)
	assert.Equal(t, geometry.Point{X: 120, Y: 0}, *rec.Position)
}

func TestEditor_OverlappingDropRejected(t *testing.T) {
	e := newTestEditor(t)
	before := e.Ledger().Containers()

	require.True(t, e.Start("Room-5", Offset{}))
	out := e.End(EndEvent{
		ItemID: "Room-5",
		OverID: "canvas",
		Delta:  geometry.Point{X: 360, Y: 0}, // -> (60, 0)
		Layout: testLayout,
	})

	assert.False(t, out.Committed)
	assert.Equal(t, ReasonInvalidPlacement, out.Reason)
	assert.True(t, before.Equal(e.Ledger().Containers()), "containers rolled back")
	_, ok := e.Ledger().Placement("Room-5")
	assert.False(t, ok)
	assert.Equal(t, Idle, e.State())
}

func TestEditor_OutOfBoundsDropRejected(t *testing.T) {
	e := newTestEditor(t)
	require.True(t, e.Start("Room-5", Offset{}))

	out := e.End(EndEvent{ItemID: "Room-5", OverID: "canvas", Delta: geometry.Point{X: 1250, Y: 0}, Layout: testLayout})
	assert.False(t, out.Committed)
	assert.Equal(t, ReasonInvalidPlacement, out.Reason)
	assert.Equal(t, []string{"Room-5", "Room-6"}, e.Ledger().Containers().Items(domain.Pending))
}

func TestEditor_PendingToCanvas(t *testing.T) {
	e := newTestEditor(t)
	require.True(t, e.Start("Room-6", Offset{Left: 0, Top: 60}))

	pointer := geometry.Point{X: 700, Y: 300}
	require.True(t, e.Over(OverEvent{
		ItemID:     "Room-6",
		Pointer:    &pointer,
		Droppables: []resolver.Droppable{canvasDroppable()},
	}))
	assert.Equal(t, []string{"Room-2", "Room-3", "Room-6"}, e.Ledger().Containers().Items(domain.Canvas))

	out := e.End(EndEvent{ItemID: "Room-6", OverID: "canvas", Delta: geometry.Point{X: 700, Y: 240}, Layout: testLayout})
	require.True(t, out.Committed, out.Reason)

	rec, ok := e.Ledger().Placement("Room-6")
	require.True(t, ok)
	// x = 700 - (299 + 1 - 0) = 400, y = 60 + 240 = 300
	assert.Equal(t, geometry.Point{X: 400, Y: 300}, *rec.Position)
	assert.False(t, rec.Pending)
	assertPartition(t, e.Ledger().Containers())
}

func TestEditor_EndFallsBackToResolvedTarget(t *testing.T) {
	e := newTestEditor(t)
	require.True(t, e.Start("Room-6", Offset{Left: 0, Top: 60}))

	pointer := geometry.Point{X: 700, Y: 300}
	require.True(t, e.Over(OverEvent{ItemID: "Room-6", Pointer: &pointer, Droppables: []resolver.Droppable{canvasDroppable()}}))
	assert.Equal(t, "canvas", e.OverID())
	assert.Equal(t, "canvas", e.View().OverID)

	// 松手那一帧宿主没有算出目标
	out := e.End(EndEvent{ItemID: "Room-6", Delta: geometry.Point{X: 700, Y: 240}, Layout: testLayout})
	require.True(t, out.Committed, out.Reason)
	assert.Equal(t, domain.Canvas, out.Container)
	assert.Equal(t, []string{"Room-2", "Room-3", "Room-6"}, e.Ledger().Containers().Items(domain.Canvas))
	assert.Empty(t, e.OverID())
}

func TestEditor_EndAfterFramesWithoutHits(t *testing.T) {
	e := newTestEditor(t)
	require.True(t, e.Start("Room-6", Offset{Left: 0, Top: 60}))

	pointer := geometry.Point{X: 700, Y: 300}
	require.True(t, e.Over(OverEvent{ItemID: "Room-6", Pointer: &pointer, Droppables: []resolver.Droppable{canvasDroppable()}}))

	// 跨容器后的下一帧布局还没稳定，没有任何命中：目标是条目自身
	assert.False(t, e.Over(OverEvent{ItemID: "Room-6"}))
	assert.Equal(t, "Room-6", e.OverID())

	e.RenderComplete()
	assert.False(t, e.Over(OverEvent{ItemID: "Room-6"}))
	assert.Equal(t, "Room-6", e.OverID(), "last known good")

	out := e.End(EndEvent{ItemID: "Room-6", Delta: geometry.Point{X: 700, Y: 240}, Layout: testLayout})
	require.True(t, out.Committed, out.Reason)
	rec, ok := e.Ledger().Placement("Room-6")
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 400, Y: 300}, *rec.Position)
}

func TestEditor_InterimMoveKeepsRecords(t *testing.T) {
	e := newTestEditor(t)
	before := e.Ledger().Placements()
	require.True(t, e.Start("Room-3", Offset{Left: 100}))

	pointer := geometry.Point{X: 100, Y: 300}
	require.True(t, e.Over(OverEvent{ItemID: "Room-3", Pointer: &pointer, Droppables: []resolver.Droppable{pendingDroppable()}}))
	assert.Equal(t, []string{"Room-5", "Room-6", "Room-3"}, e.Ledger().Containers().Items(domain.Pending))
	assert.Equal(t, before, e.Ledger().Placements(), "records untouched until commit")

	// 又拖回画布但落点与 Room-2 重叠
	out := e.End(EndEvent{ItemID: "Room-3", OverID: "canvas", Delta: geometry.Point{X: -60, Y: 0}, Layout: testLayout})
	assert.False(t, out.Committed)
	assert.Equal(t, ReasonInvalidPlacement, out.Reason)
	assert.Equal(t, before, e.Ledger().Placements())
	assert.Equal(t, []string{"Room-2", "Room-3"}, e.Ledger().Containers().Items(domain.Canvas))
}

func TestEditor_CanvasReposition(t *testing.T) {
	e := newTestEditor(t)
	require.True(t, e.Start("Room-3", Offset{Left: 100, Top: 0}))

	out := e.End(EndEvent{ItemID: "Room-3", OverID: "canvas", Delta: geometry.Point{X: 205, Y: 110}, Layout: testLayout})
	require.True(t, out.Committed, out.Reason)

	rec, _ := e.Ledger().Placement("Room-3")
	assert.Equal(t, geometry.Point{X: 300, Y: 100}, *rec.Position)
	assert.Equal(t, "B6", rec.RoomTypeCodeOrEmpty(), "metadata preserved")
	assert.Equal(t, "Room-3", rec.Title)
}

func TestEditor_CanvasToPaletteRejected(t *testing.T) {
	e := newTestEditor(t)
	before := e.Ledger()

	require.True(t, e.Start("Room-2", Offset{}))
	out := e.End(EndEvent{ItemID: "Room-2", OverID: "palette", Delta: geometry.Point{X: 1000, Y: 0}, Layout: testLayout})

	assert.False(t, out.Committed)
	assert.Equal(t, ReasonDropNotAllowed, out.Reason)
	assert.True(t, before.Containers().Equal(e.Ledger().Containers()))
	rec, _ := e.Ledger().Placement("Room-2")
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, *rec.Position)

	// 落在面板模板上同样拒绝
	require.True(t, e.Start("Room-2", Offset{}))
	out = e.End(EndEvent{ItemID: "Room-2", OverID: "Customized-1", Layout: testLayout})
	assert.Equal(t, ReasonDropNotAllowed, out.Reason)
}

func TestEditor_PaletteToPendingRejected(t *testing.T) {
	e := newTestEditor(t)
	require.True(t, e.Start("Room-1", Offset{}))

	pointer := geometry.Point{X: 100, Y: 100}
	assert.False(t, e.Over(OverEvent{
		ItemID:     "Room-1",
		Pointer:    &pointer,
		Droppables: []resolver.Droppable{pendingDroppable()},
	}))
	assert.Equal(t, []string{"Room-5", "Room-6"}, e.Ledger().Containers().Items(domain.Pending))

	out := e.End(EndEvent{ItemID: "Room-1", OverID: "pending", Layout: testLayout})
	assert.Equal(t, ReasonDropNotAllowed, out.Reason)
	assert.Equal(t, []string{"Room-5", "Room-6"}, e.Ledger().Containers().Items(domain.Pending))
}

func TestEditor_CanvasToPendingClearsPosition(t *testing.T) {
	e := newTestEditor(t)
	require.True(t, e.Start("Room-3", Offset{Left: 100}))

	out := e.End(EndEvent{ItemID: "Room-3", OverID: "Room-5", Layout: testLayout})
	require.True(t, out.Committed, out.Reason)
	assert.Equal(t, domain.Pending, out.Container)

	rec, ok := e.Ledger().Placement("Room-3")
	require.True(t, ok)
	assert.Nil(t, rec.Position)
	assert.True(t, rec.Pending)
	assert.Equal(t, "B6", rec.RoomTypeCodeOrEmpty())
	assert.Equal(t, []string{"Room-2"}, e.Ledger().Containers().Items(domain.Canvas))
	assertPartition(t, e.Ledger().Containers())
}

func TestEditor_ReorderWithinPending(t *testing.T) {
	e := newTestEditor(t)
	require.True(t, e.Start("Room-5", Offset{}))

	out := e.End(EndEvent{ItemID: "Room-5", OverID: "Room-6", Layout: testLayout})
	require.True(t, out.Committed, out.Reason)
	assert.Equal(t, []string{"Room-6", "Room-5"}, e.Ledger().Containers().Items(domain.Pending))

	// 待放置区不补房型默认值
	rec, ok := e.Ledger().Placement("Room-5")
	require.True(t, ok)
	assert.True(t, rec.Pending)
	assert.Nil(t, rec.Position)
	assert.Equal(t, "Room", rec.Title)
	assert.Nil(t, rec.RoomTypeCode)
	assert.Empty(t, rec.Beds)
	assert.False(t, rec.NoBeds)

	// 之后放到画布上再补默认值
	require.True(t, e.Start("Room-5", Offset{Left: 0, Top: 60}))
	out = e.End(EndEvent{ItemID: "Room-5", OverID: "canvas", Delta: geometry.Point{X: 700, Y: 240}, Layout: testLayout})
	require.True(t, out.Committed, out.Reason)
	rec, _ = e.Ledger().Placement("Room-5")
	assert.Equal(t, "B6", rec.RoomTypeCodeOrEmpty())
	assert.Len(t, rec.Beds, 6)
	assert.False(t, rec.Pending)
}

func TestEditor_InsertBelowMidpoint(t *testing.T) {
	e := newTestEditor(t)
	require.True(t, e.Start("Room-5", Offset{}))

	pointer := geometry.Point{X: 360, Y: 50}
	require.True(t, e.Over(OverEvent{
		ItemID:  "Room-5",
		Pointer: &pointer,
		Droppables: []resolver.Droppable{
			canvasDroppable(),
			{ID: "Room-2", Rect: geometry.Rect{Left: 300, Top: 0, Width: 120, Height: 60}},
			{ID: "Room-3", Rect: geometry.Rect{Left: 400, Top: 0, Width: 120, Height: 60}},
		},
	}))
	assert.Equal(t, []string{"Room-2", "Room-5", "Room-3"}, e.Ledger().Containers().Items(domain.Canvas))
}

func TestEditor_CancelRestoresSnapshot(t *testing.T) {
	e := newTestEditor(t)
	before := e.Ledger()

	require.True(t, e.Start("Room-1", Offset{}))
	pointer := geometry.Point{X: 700, Y: 300}
	require.True(t, e.Over(OverEvent{ItemID: "Room-1", Pointer: &pointer, Droppables: []resolver.Droppable{canvasDroppable()}}))
	require.True(t, e.Ledger().Containers().Contains("Room-4"))

	assert.True(t, e.Cancel())
	assert.True(t, before.Containers().Equal(e.Ledger().Containers()))
	assert.Equal(t, before.Placements(), e.Ledger().Placements())
	assert.Equal(t, Idle, e.State())
	assert.False(t, e.Cancel(), "nothing to cancel")
}

func TestEditor_EndWithoutTargetCancels(t *testing.T) {
	e := newTestEditor(t)
	require.True(t, e.Start("Room-5", Offset{}))

	out := e.End(EndEvent{ItemID: "Room-5", Layout: testLayout})
	assert.Equal(t, ReasonNoTarget, out.Reason)

	require.True(t, e.Start("Room-5", Offset{}))
	out = e.End(EndEvent{ItemID: "Room-5", OverID: "Room-404", Layout: testLayout})
	assert.Equal(t, ReasonTargetNotFound, out.Reason)
}

func TestEditor_StartGuards(t *testing.T) {
	e := newTestEditor(t)

	e.SetMenuOpen(true)
	assert.False(t, e.Start("Room-2", Offset{}))
	e.SetMenuOpen(false)

	assert.False(t, e.Start("Room-404", Offset{}))
	assert.False(t, e.Start("canvas", Offset{}))

	require.True(t, e.Start("Room-2", Offset{}))
	assert.False(t, e.Start("Room-3", Offset{}), "one session at a time")

	out := e.End(EndEvent{ItemID: "Room-3", OverID: "canvas", Layout: testLayout})
	assert.Equal(t, ReasonNotDragging, out.Reason, "end for a different item is ignored")
	assert.Equal(t, Dragging, e.State())
}

func TestEditor_RecentlyMovedHoldsTarget(t *testing.T) {
	e := newTestEditor(t)
	require.True(t, e.Start("Room-5", Offset{}))

	pointer := geometry.Point{X: 700, Y: 300}
	require.True(t, e.Over(OverEvent{ItemID: "Room-5", Pointer: &pointer, Droppables: []resolver.Droppable{canvasDroppable()}}))

	// 布局重排后本帧无命中：保持在新容器
	assert.False(t, e.Over(OverEvent{ItemID: "Room-5"}))
	assert.Equal(t, domain.Canvas, mustFind(t, e, "Room-5"))

	e.RenderComplete()
	assert.False(t, e.Over(OverEvent{ItemID: "Room-5"}))
	assert.Equal(t, domain.Canvas, mustFind(t, e, "Room-5"))
}

func mustFind(t *testing.T, e *Editor, id string) domain.ContainerID {
	t.Helper()
	cid, ok := e.Ledger().Containers().Find(id)
	require.True(t, ok)
	return cid
}

func TestEditor_EditSaveRegeneratesBeds(t *testing.T) {
	e := newTestEditor(t)

	ok := e.EditSave("Room-2", Edit{Title: "201", RoomTypeCode: domain.StringPtr("B2")})
	require.True(t, ok)

	rec, _ := e.Ledger().Placement("Room-2")
	assert.Equal(t, "201", rec.Title)
	assert.Equal(t, "B2", rec.RoomTypeCodeOrEmpty())
	assert.Equal(t, []domain.Bed{{BedNo: 1}, {BedNo: 2}}, rec.Beds)
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, *rec.Position)
}

func TestEditor_EditSaveRejections(t *testing.T) {
	e := New(testSettings(), nil)
	require.True(t, e.Start("Nurse Station-1", Offset{}))
	require.True(t, e.End(EndEvent{ItemID: "Nurse Station-1", OverID: "canvas", Layout: testLayout}).Committed)
	require.True(t, e.Start("Room-1", Offset{}))
	require.True(t, e.End(EndEvent{ItemID: "Room-1", OverID: "canvas", Delta: geometry.Point{X: 300}, Layout: testLayout}).Committed)

	cases := []struct {
		name string
		id   string
		edit Edit
	}{
		{"palette template", "Room-1", Edit{Title: "x", RoomTypeCode: domain.StringPtr("B1")}},
		{"locked nurse station", "Nurse Station-2", Edit{Title: "NS"}},
		{"empty title", "Room-2", Edit{Title: "  ", RoomTypeCode: domain.StringPtr("B1")}},
		{"unknown room type", "Room-2", Edit{Title: "x", RoomTypeCode: domain.StringPtr("B9")}},
		{"missing room type", "Room-2", Edit{Title: "x"}},
		{"unknown item", "Room-404", Edit{Title: "x", RoomTypeCode: domain.StringPtr("B1")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := e.Ledger().Placements()
			assert.False(t, e.EditSave(tc.id, tc.edit))
			assert.Equal(t, before, e.Ledger().Placements())
		})
	}
}

func TestEditor_Delete(t *testing.T) {
	e := newTestEditor(t)

	require.True(t, e.Delete("Room-2"))
	assert.False(t, e.Ledger().Containers().Contains("Room-2"))
	_, ok := e.Ledger().Placement("Room-2")
	assert.False(t, ok)
	assert.False(t, e.Delete("Room-2"))

	assert.False(t, e.Delete("Room-1"), "palette templates are permanent")

	require.True(t, e.Start("Room-3", Offset{}))
	assert.False(t, e.Delete("Room-5"), "no deletes while dragging")
	e.Cancel()
	assert.True(t, e.Delete("Room-5"))
}

func TestEditor_LoadPending(t *testing.T) {
	e := New(testSettings(), nil)
	ids := e.LoadPending([]domain.UnitRoom{
		{RoomID: "r1", RoomName: "101", BedCount: 2},
		{RoomID: "r2", RoomName: "", BedCount: 0},
		{RoomID: "r3", RoomName: "VIP", BedCount: 8},
	})
	assert.Equal(t, []string{"Room-2", "Room-3", "Room-4"}, ids)
	assert.Equal(t, ids, e.Ledger().Containers().Items(domain.Pending))

	rec, _ := e.Ledger().Placement("Room-2")
	assert.Equal(t, "101", rec.Title)
	assert.Equal(t, "B2", rec.RoomTypeCodeOrEmpty())
	assert.True(t, rec.Pending)
	assert.Len(t, rec.Beds, 2)

	rec, _ = e.Ledger().Placement("Room-3")
	assert.Equal(t, domain.KindRoom, rec.Title)
	assert.Nil(t, rec.Beds)

	rec, _ = e.Ledger().Placement("Room-4")
	assert.Nil(t, rec.RoomTypeCode)
	assert.Len(t, rec.Beds, 8)
}

func TestEditor_ViewDuringDrag(t *testing.T) {
	e := newTestEditor(t)

	v := e.View()
	assert.Equal(t, "idle", v.State)
	assert.Nil(t, v.Overlay)

	require.True(t, e.Start("Room-2", Offset{}))
	v = e.View()
	assert.Equal(t, "dragging", v.State)
	require.NotNil(t, v.Overlay)
	assert.Equal(t, "Room-2", v.Overlay.ItemID)
	assert.Equal(t, domain.Canvas, v.Overlay.From)
	assert.Empty(t, v.HiddenOriginID)
	e.Cancel()

	require.True(t, e.Start("Room-5", Offset{}))
	pointer := geometry.Point{X: 700, Y: 300}
	require.True(t, e.Over(OverEvent{ItemID: "Room-5", Pointer: &pointer, Droppables: []resolver.Droppable{canvasDroppable()}}))
	v = e.View()
	assert.Equal(t, domain.Pending, v.Overlay.From)
	assert.Equal(t, "Room-5", v.HiddenOriginID)
	e.Cancel()

	require.True(t, e.Start("Treatment Room-1", Offset{}))
	v = e.View()
	assert.True(t, v.Overlay.IsComponent)
	assert.Equal(t, "Treatment Room", v.Overlay.Title)
	assert.True(t, v.Overlay.NoBeds)
	assert.Empty(t, v.HiddenOriginID)
}
