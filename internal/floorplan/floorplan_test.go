package floorplan

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefault(t *testing.T) {
	plan := Plan{Sections: Default()}
	tables := plan.Tables()

	require.Len(t, plan.Sections, 1)
	require.Len(t, tables, 13)

	seen := map[string]bool{}
	for i, tbl := range tables {
		assert.Equal(t, i+1, tbl.Number)
		assert.True(t, tbl.HasGeometry(), "table %d", tbl.Number)
		assert.False(t, seen[tbl.ID], "duplicate id %s", tbl.ID)
		seen[tbl.ID] = true
	}

	// Each call hands out a fresh copy.
	a := Default()
	a[0].Tables[0].Number = 99
	assert.Equal(t, 1, Default()[0].Tables[0].Number)
}

func TestEligible(t *testing.T) {
	x := rect("x", 3, 0, 0, 10, 10)
	y := rect("y", 5, 20, 0, 10, 10)
	bar := rect("bar", 100, 40, 0, 10, 10)

	got := Eligible([]Table{x, y, bar}, NewIDSet("x"))
	assert.Equal(t, []string{"y"}, IDs(got))

	got = Eligible([]Table{x, y, bar}, nil)
	assert.Equal(t, []string{"x", "y"}, IDs(got), "an empty occupied set offers every real table")
}

func TestSelectable_SkipsIncompleteGeometry(t *testing.T) {
	noX := rect("no-x", 4, 0, 0, 10, 10)
	noX.X = nil
	y := rect("y", 5, 20, 0, 10, 10)

	tables := []Table{noX, y}
	assert.Equal(t, []string{"no-x", "y"}, IDs(Eligible(tables, nil)))
	assert.Equal(t, []string{"y"}, IDs(Selectable(tables, nil)))
	assert.Empty(t, Selectable(tables, NewIDSet("y")))
}

func TestIDSet(t *testing.T) {
	var empty IDSet
	assert.False(t, empty.Has("a"))

	set := NewIDSet("b", "a")
	tables := []Table{{ID: "a"}, {ID: "c"}, {ID: "b"}}
	assert.Equal(t, []string{"a", "b"}, set.Slice(tables))
}

func TestPlan_Table(t *testing.T) {
	plan := Plan{Sections: Default()}

	tbl, ok := plan.Table("aa17f2fe-e890-4286-9e48-1827a7f81b0d")
	require.True(t, ok)
	assert.Equal(t, 9, tbl.Number)

	_, ok = plan.Table("missing")
	assert.False(t, ok)
}

const sampleParam = `[{"id":"s1","name":"Terrace","tables":[` +
	`{"id":"t1","number":1,"name":"","x":10,"y":20,"width":30,"height":40,"borderRadius":null},` +
	`{"id":"t2","number":2,"name":"Sofa+","x":null,"y":5,"width":5,"height":5,"borderRadius":12}]}]`

func TestDecode(t *testing.T) {
	sections, err := Decode(url.QueryEscape(sampleParam))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Terrace", sections[0].Name)

	t1 := sections[0].Tables[0]
	assert.True(t, t1.HasGeometry())
	assert.Nil(t, t1.BorderRadius)
	assert.Equal(t, 40.0, *t1.Height)

	t2 := sections[0].Tables[1]
	assert.False(t, t2.HasGeometry())
	assert.Equal(t, "Sofa+", t2.Name)
	assert.Equal(t, 12.0, *t2.BorderRadius)
}

func TestDecode_Plain(t *testing.T) {
	sections, err := Decode(sampleParam)
	require.NoError(t, err)
	assert.Equal(t, "Sofa+", sections[0].Tables[1].Name, "a '+' is not a space")
}

func TestDecode_Errors(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		err  error
	}{
		{name: "Empty", raw: "", err: ErrNoParam},
		{name: "Not JSON", raw: "tables%20please"},
		{name: "Object instead of array", raw: `{"id":"s1"}`},
		{name: "Empty array", raw: `[]`, err: ErrEmptyPlan},
		{name: "Bad escape", raw: `%ZZ`},
		{name: "Duplicate ids", raw: `[{"id":"s","tables":[{"id":"a","number":1},{"id":"a","number":2}]}]`, err: ErrDuplicateID},
		{name: "Missing id", raw: `[{"id":"s","tables":[{"number":1}]}]`, err: ErrMissingID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.raw)
			require.Error(t, err)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	logger := zap.NewNop()

	plan := Resolve(url.QueryEscape(sampleParam), logger)
	assert.Equal(t, SourceParam, plan.Source)
	assert.Len(t, plan.Tables(), 2)

	plan = Resolve("", logger)
	assert.Equal(t, SourceDefault, plan.Source)
	assert.Len(t, plan.Tables(), 13)

	plan = Resolve("not-json", logger)
	assert.Equal(t, SourceDefault, plan.Source)
}
