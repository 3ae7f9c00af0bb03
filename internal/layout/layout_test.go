package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tavrika-widget/internal/floorplan"
)

const delta = 1e-9

func num(v float64) *float64 { return &v }

func table(id string, number int, x, y, w, h float64) floorplan.Table {
	return floorplan.Table{ID: id, Number: number, X: num(x), Y: num(y), Width: num(w), Height: num(h)}
}

func byNumber(t *testing.T, res Result, number int) Placement {
	t.Helper()
	for _, p := range res.Placements() {
		if p.Table.Number == number {
			return p
		}
	}
	t.Fatalf("table %d not placed", number)
	return Placement{}
}

func allIDs(sections []floorplan.Section) floorplan.IDSet {
	return floorplan.NewIDSet(floorplan.IDs(floorplan.Plan{Sections: sections}.Tables())...)
}

func TestBounds(t *testing.T) {
	ext := Bounds(floorplan.Plan{Sections: floorplan.Default()}.Tables())
	assert.Equal(t, Extent{MaxX: 590, MaxY: 750}, ext)

	assert.Equal(t, Extent{MaxX: FallbackExtent, MaxY: FallbackExtent}, Bounds(nil))

	partial := table("p", 1, 5000, 5000, 10, 10)
	partial.Height = nil
	assert.Equal(t, Extent{MaxX: FallbackExtent, MaxY: FallbackExtent}, Bounds([]floorplan.Table{partial}),
		"incomplete tables do not stretch the plan")
}

func TestCanvasFor(t *testing.T) {
	c := CanvasFor(Extent{MaxX: 590, MaxY: 750})
	assert.InDelta(t, 324.5, c.Width, delta)
	assert.Equal(t, 400.0, c.Height)
	assert.Equal(t, Canvas{Width: 450, Height: 400}, CanvasFor(Extent{MaxX: FallbackExtent, MaxY: FallbackExtent}))
}

func TestLayout_GenericTransform(t *testing.T) {
	sections := floorplan.Default()
	res := NewEngine(nil).Layout(sections, allIDs(sections))

	// Table 9 has no correction: x=120 y=130 w=70 h=50 on a 590x750 plan.
	p := byNumber(t, res, 9)
	assert.InDelta(t, 130.0/750*100, p.Left, delta)
	assert.InDelta(t, (590.0-190)/590*100, p.Bottom, delta)
	assert.InDelta(t, 50.0/750*100*1.7, p.Width, delta)
	assert.InDelta(t, 70.0/590*100*0.5, p.Height, delta)
	assert.Equal(t, 0.0, p.CornerRadius, "an explicit zero radius is kept")
	assert.True(t, p.Available)
}

func TestLayout_Corrections(t *testing.T) {
	sections := floorplan.Default()
	res := NewEngine(nil).Layout(sections, allIDs(sections))

	two := byNumber(t, res, 2)
	assert.InDelta(t, (650.0-75)/750*100, two.Left, delta)
	assert.InDelta(t, (590.0-510-50)/590*100, two.Bottom, delta)
	assert.Equal(t, 20.6, two.Width)
	assert.Equal(t, 16.47, two.Height)
	assert.Equal(t, 33.0, two.CornerRadius)

	five := byNumber(t, res, 5)
	assert.InDelta(t, 370.0/750*100, five.Left, delta)
	assert.InDelta(t, (590.0-300+50)/590*100, five.Bottom, delta)
	assert.InDelta(t, 60.0/750*100*1.7, five.Width, delta)
	assert.Equal(t, 8.0, five.Height)

	six := byNumber(t, res, 6)
	assert.InDelta(t, (640.0-190)/750*100, six.Left, delta)
	assert.Equal(t, 19.0, six.Width)

	twelve := byNumber(t, res, 12)
	assert.InDelta(t, (590.0-430-50)/590*100, twelve.Bottom, delta)
}

func TestLayout_WithoutCorrections(t *testing.T) {
	sections := floorplan.Default()
	res := NewEngine(Corrections{}).Layout(sections, nil)

	two := byNumber(t, res, 2)
	assert.InDelta(t, 650.0/750*100, two.Left, delta)
	assert.InDelta(t, 100.0/750*100*1.7, two.Width, delta)
	assert.Equal(t, 0.0, two.CornerRadius)
}

func TestDefaultCorrections(t *testing.T) {
	c := DefaultCorrections()
	assert.Len(t, c, 9)
	for _, n := range []int{3, 4, 5} {
		require.NotNil(t, c[n].Height)
		assert.Equal(t, 8.0, *c[n].Height)
		assert.Equal(t, 50.0, c[n].ShiftBottom)
	}
	assert.Equal(t, 52.0, c[7].ShiftLeft)
	assert.Equal(t, 25.6, *c[8].Width)
	assert.Equal(t, 23.6, *c[1].Width)
	assert.Equal(t, 10.0, c[1].ShiftBottom)
	_, ok := c[9]
	assert.False(t, ok)
}

func TestLayout_Partition(t *testing.T) {
	sections := floorplan.Default()
	tables := floorplan.Plan{Sections: sections}.Tables()
	available := floorplan.NewIDSet(tables[2].ID, tables[4].ID)

	res := NewEngine(nil).Layout(sections, available)
	assert.Len(t, res.Available, 2)
	assert.Len(t, res.Unavailable, 11)
	for _, p := range res.Available {
		assert.True(t, p.Available)
	}
	for _, p := range res.Unavailable {
		assert.False(t, p.Available)
	}

	all := res.Placements()
	require.Len(t, all, 13)
	assert.False(t, all[0].Available, "unavailable tables come first")
	assert.True(t, all[12].Available)
}

func TestLayout_Exclusions(t *testing.T) {
	noX := table("no-x", 3, 0, 0, 10, 10)
	noX.X = nil
	service := table("service", 100, 0, 0, 2000, 10)
	ok := table("ok", 4, 0, 0, 100, 100)

	sections := []floorplan.Section{{ID: "s", Tables: []floorplan.Table{noX, service, ok}}}
	res := NewEngine(Corrections{}).Layout(sections, floorplan.NewIDSet("no-x", "service", "ok"))

	placed := res.Placements()
	require.Len(t, placed, 1)
	assert.Equal(t, "ok", placed[0].Table.ID)
	assert.Equal(t, 2000.0, res.Extent.MaxX, "service spots still size the plan")
	assert.Equal(t, DefaultCornerRadius, placed[0].CornerRadius)
}

func TestLayout_EmptyPlan(t *testing.T) {
	res := NewEngine(nil).Layout(nil, nil)
	assert.Equal(t, Extent{MaxX: FallbackExtent, MaxY: FallbackExtent}, res.Extent)
	assert.NotNil(t, res.Available)
	assert.NotNil(t, res.Unavailable)
	assert.Empty(t, res.Placements())
}

func TestLayout_Deterministic(t *testing.T) {
	sections := floorplan.Default()
	available := allIDs(sections)
	engine := NewEngine(nil)

	assert.Equal(t, engine.Layout(sections, available), engine.Layout(sections, available))
}
