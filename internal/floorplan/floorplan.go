// Package floorplan holds the seating plan: sections, their tables, and the
// rules that decide which tables can be offered.
package floorplan

// ExcludedNumber is the first table number kept off the plan. Numbers at or
// above it mark service spots, not real tables.
const ExcludedNumber = 100

// Table is one seat group on the plan. Geometry is in the abstract units of
// the plan editor; nil means unknown.
type Table struct {
	ID           string   `json:"id"`
	Number       int      `json:"number"`
	Name         string   `json:"name"`
	X            *float64 `json:"x"`
	Y            *float64 `json:"y"`
	Width        *float64 `json:"width"`
	Height       *float64 `json:"height"`
	BorderRadius *float64 `json:"borderRadius"`
}

// HasGeometry reports whether all four rectangle values are known.
func (t Table) HasGeometry() bool {
	return t.X != nil && t.Y != nil && t.Width != nil && t.Height != nil
}

// InPlan reports whether the table number is a real table.
func (t Table) InPlan() bool {
	return t.Number < ExcludedNumber
}

// Section is a named hall with its tables in display order.
type Section struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Tables []Table `json:"tables"`
}

// Source tells where a plan came from.
type Source string

const (
	SourceParam   Source = "param"
	SourceDefault Source = "default"
)

// Plan is the resolved floor plan of a session.
type Plan struct {
	Sections []Section `json:"sections"`
	Source   Source    `json:"source"`
}

// Tables flattens the plan in section order.
func (p Plan) Tables() []Table {
	var tables []Table
	for _, s := range p.Sections {
		tables = append(tables, s.Tables...)
	}
	return tables
}

// Table looks a table up by id.
func (p Plan) Table(id string) (Table, bool) {
	for _, s := range p.Sections {
		for _, t := range s.Tables {
			if t.ID == id {
				return t, true
			}
		}
	}
	return Table{}, false
}

// IDSet is a set of table ids.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports membership. A nil set is empty.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Slice returns the ids in the order of tables, skipping unknown ones.
func (s IDSet) Slice(tables []Table) []string {
	ids := make([]string, 0, len(s))
	for _, t := range tables {
		if s.Has(t.ID) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// Eligible keeps the tables that can be offered for the current slot: real
// table numbers that are not occupied.
func Eligible(tables []Table, occupied IDSet) []Table {
	eligible := make([]Table, 0, len(tables))
	for _, t := range tables {
		if t.InPlan() && !occupied.Has(t.ID) {
			eligible = append(eligible, t)
		}
	}
	return eligible
}

// Selectable narrows eligible tables to those that can be drawn and tapped.
func Selectable(tables []Table, occupied IDSet) []Table {
	var selectable []Table
	for _, t := range Eligible(tables, occupied) {
		if t.HasGeometry() {
			selectable = append(selectable, t)
		}
	}
	return selectable
}

// IDs lists the ids of tables.
func IDs(tables []Table) []string {
	ids := make([]string, len(tables))
	for i, t := range tables {
		ids[i] = t.ID
	}
	return ids
}
