package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisefido-floorplan/internal/domain"
	"wisefido-floorplan/internal/geometry"
)

func sampleContainers() Containers {
	return NewContainers(
		[]string{"Room-5", "Room-6"},
		[]string{"Room-2", "Nurse Station-2"},
		domain.PaletteIDs(),
	)
}

// assertPartition 每个条目恰好属于一个容器
func assertPartition(t *testing.T, c Containers) {
	t.Helper()
	seen := map[string]int{}
	for _, id := range c.All() {
		seen[id]++
	}
	for id, n := range seen {
		require.Equal(t, 1, n, "item %s appears %d times", id, n)
	}
}

func TestContainers_Find(t *testing.T) {
	c := sampleContainers()

	cid, ok := c.Find("Room-6")
	require.True(t, ok)
	assert.Equal(t, domain.Pending, cid)

	cid, ok = c.Find("canvas")
	require.True(t, ok)
	assert.Equal(t, domain.Canvas, cid)

	_, ok = c.Find("Room-99")
	assert.False(t, ok)
	assert.False(t, c.Contains("palette"))
}

func TestContainers_MoveIsPure(t *testing.T) {
	c := sampleContainers()
	moved := c.Move("Room-5", domain.Pending, domain.Canvas, 1)

	assert.Equal(t, []string{"Room-5", "Room-6"}, c.Items(domain.Pending), "original untouched")
	assert.Equal(t, []string{"Room-6"}, moved.Items(domain.Pending))
	assert.Equal(t, []string{"Room-2", "Room-5", "Nurse Station-2"}, moved.Items(domain.Canvas))
	assertPartition(t, moved)

	// 越界下标夹到末尾
	moved = c.Move("Room-6", domain.Pending, domain.Canvas, 99)
	assert.Equal(t, []string{"Room-2", "Nurse Station-2", "Room-6"}, moved.Items(domain.Canvas))

	// 不在 from 中：不变
	same := c.Move("Room-2", domain.Pending, domain.Canvas, 0)
	assert.True(t, same.Equal(c))
}

func TestContainers_ReorderAndReplace(t *testing.T) {
	c := NewContainers([]string{"A-1", "A-2", "A-3"}, nil, nil)

	r := c.Reorder(domain.Pending, 0, 2)
	assert.Equal(t, []string{"A-2", "A-3", "A-1"}, r.Items(domain.Pending))
	assert.True(t, c.Reorder(domain.Pending, 0, 3).Equal(c))

	rep := c.Replace(domain.Pending, "A-2", "A-9")
	assert.Equal(t, []string{"A-1", "A-9", "A-3"}, rep.Items(domain.Pending))
	assert.True(t, c.Replace(domain.Pending, "A-2", "A-3").Equal(c), "replacement id already live")
}

func TestLedger_MoveItemPlacementSideEffects(t *testing.T) {
	l := New(sampleContainers())
	l = l.SetPlacement("Room-2", domain.Placement{Title: "Room", Position: &geometry.Point{X: 40, Y: 20}})

	out := l.MoveItem("Room-2", domain.Canvas, domain.Pending, 0)
	p, ok := out.Placement("Room-2")
	require.True(t, ok)
	assert.Nil(t, p.Position)
	assert.True(t, p.Pending)
	assert.Equal(t, "Room", p.Title)
	assert.Equal(t, []string{"Room-2", "Room-5", "Room-6"}, out.Containers().Items(domain.Pending))

	back := out.MoveItem("Room-2", domain.Pending, domain.Canvas, 0)
	p, _ = back.Placement("Room-2")
	assert.False(t, p.Pending)

	// 原 ledger 不受影响
	orig, _ := l.Placement("Room-2")
	require.NotNil(t, orig.Position)
	assert.Equal(t, 40.0, orig.Position.X)
}

func TestLedger_UnknownIDsAreNoops(t *testing.T) {
	l := New(sampleContainers())

	assert.True(t, l.MoveItem("Ghost-1", domain.Pending, domain.Canvas, 0).Containers().Equal(l.Containers()))
	l2 := l.SetPlacement("Ghost-1", domain.Placement{Title: "x"})
	_, ok := l2.Placement("Ghost-1")
	assert.False(t, ok)
	assert.True(t, l.DeleteItem("Ghost-1").Containers().Equal(l.Containers()))
	_, ok = l.ClearPlacement("Ghost-1").Placement("Ghost-1")
	assert.False(t, ok)
}

func TestLedger_ClearPlacementKeepsMetadata(t *testing.T) {
	l := New(sampleContainers()).SetPlacement("Room-2", domain.Placement{
		Title:        "E203",
		RoomTypeCode: domain.StringPtr("B2"),
		Position:     &geometry.Point{X: 0, Y: 0},
		Beds:         domain.GenerateBeds(2),
	})

	p, _ := l.ClearPlacement("Room-2").Placement("Room-2")
	assert.Nil(t, p.Position)
	assert.True(t, p.Pending)
	assert.Equal(t, "E203", p.Title)
	assert.Equal(t, "B2", p.RoomTypeCodeOrEmpty())
	assert.Len(t, p.Beds, 2)
}

func TestLedger_DeleteItem(t *testing.T) {
	l := New(sampleContainers()).SetPlacement("Room-2", domain.Placement{Title: "Room"})
	out := l.DeleteItem("Room-2")

	_, found := out.Containers().Find("Room-2")
	assert.False(t, found)
	_, ok := out.Placement("Room-2")
	assert.False(t, ok)
	_, ok = l.Placement("Room-2")
	assert.True(t, ok, "previous ledger keeps its record")
}

func TestNextAvailable(t *testing.T) {
	c := sampleContainers()

	assert.Equal(t, "Room-3", NextAvailable(c, "Room-2"))
	assert.Equal(t, "Room-3", NextAvailable(c, "Room-1"))
	assert.Equal(t, "Nurse Station-3", NextAvailable(c, "Nurse Station-1"))
	assert.Equal(t, "Customized-2", NextAvailable(c, "Customized-1"))
	assert.Equal(t, "Room-9", NextAvailable(c, "Room-9"))
	assert.Equal(t, "Lobby", NextAvailable(c, "Lobby"))

	c = c.Insert(domain.Pending, "Lobby", 0)
	assert.Equal(t, "Lobby-1", NextAvailable(c, "Lobby"))
}
