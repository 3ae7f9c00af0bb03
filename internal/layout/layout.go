// Package layout turns absolute table rectangles into percentage placements
// on a fixed-aspect canvas.
//
// The plan editor draws with the origin top-left and y growing down; the
// canvas is rotated a quarter turn so the hall's long side runs across the
// phone screen, with the origin bottom-left. Everything here is pure.
package layout

import (
	"math"

	"tavrika-widget/internal/floorplan"
)

const (
	// FallbackExtent stands in for a missing plan extent.
	FallbackExtent = 1000.0
	// DefaultCornerRadius applies when a table has no radius of its own.
	DefaultCornerRadius = 6.0

	// Aspect factors of the rotated canvas.
	widthFactor  = 1.7
	heightFactor = 0.5

	canvasScale     = 0.55
	maxCanvasWidth  = 450.0
	maxCanvasHeight = 400.0
)

// Extent is the bounding box of the plan, in plan units.
type Extent struct {
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// Canvas is the pixel size the front end should give the hall container.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Placement is one table's position in percent of the canvas.
type Placement struct {
	Table        floorplan.Table `json:"table"`
	Left         float64         `json:"left"`
	Bottom       float64         `json:"bottom"`
	Width        float64         `json:"width"`
	Height       float64         `json:"height"`
	CornerRadius float64         `json:"cornerRadius"`
	Available    bool            `json:"isAvailable"`
}

// Result is a rendered plan. Unavailable tables are drawn first, underneath
// the interactive available ones.
type Result struct {
	Extent      Extent      `json:"extent"`
	Canvas      Canvas      `json:"canvas"`
	Unavailable []Placement `json:"unavailable"`
	Available   []Placement `json:"available"`
}

// Placements returns every placement in drawing order.
func (r Result) Placements() []Placement {
	all := make([]Placement, 0, len(r.Unavailable)+len(r.Available))
	all = append(all, r.Unavailable...)
	return append(all, r.Available...)
}

type geometry struct {
	renderX, renderY float64
	width, height    float64
	radius           float64
}

// Engine lays out floor plans with a fixed correction table.
type Engine struct {
	corrections Corrections
}

// NewEngine builds an engine. A nil table means DefaultCorrections; pass an
// empty non-nil table to disable corrections.
func NewEngine(corrections Corrections) *Engine {
	if corrections == nil {
		corrections = DefaultCorrections()
	}
	return &Engine{corrections: corrections}
}

// Corrections exposes the engine's correction table.
func (e *Engine) Corrections() Corrections {
	return e.corrections
}

// Bounds measures the plan over tables with complete geometry.
func Bounds(tables []floorplan.Table) Extent {
	var ext Extent
	for _, t := range tables {
		if !t.HasGeometry() {
			continue
		}
		ext.MaxX = math.Max(ext.MaxX, *t.X+*t.Width)
		ext.MaxY = math.Max(ext.MaxY, *t.Y+*t.Height)
	}
	if ext.MaxX == 0 {
		ext.MaxX = FallbackExtent
	}
	if ext.MaxY == 0 {
		ext.MaxY = FallbackExtent
	}
	return ext
}

// CanvasFor sizes the hall container for an extent.
func CanvasFor(ext Extent) Canvas {
	return Canvas{
		Width:  math.Min(ext.MaxX*canvasScale, maxCanvasWidth),
		Height: math.Min(ext.MaxY*canvasScale, maxCanvasHeight),
	}
}

// Layout places every drawable table of sections. available holds the ids
// the guest may pick.
func (e *Engine) Layout(sections []floorplan.Section, available floorplan.IDSet) Result {
	var tables []floorplan.Table
	for _, s := range sections {
		tables = append(tables, s.Tables...)
	}

	ext := Bounds(tables)
	res := Result{
		Extent:      ext,
		Canvas:      CanvasFor(ext),
		Unavailable: make([]Placement, 0),
		Available:   make([]Placement, 0),
	}

	for _, t := range tables {
		if !t.InPlan() || !t.HasGeometry() {
			continue
		}

		g := transform(t, ext)
		if c, ok := e.corrections[t.Number]; ok {
			c.apply(&g)
		}

		p := Placement{
			Table:        t,
			Left:         g.renderX / ext.MaxY * 100,
			Bottom:       g.renderY / ext.MaxX * 100,
			Width:        g.width,
			Height:       g.height,
			CornerRadius: g.radius,
			Available:    available.Has(t.ID),
		}
		if p.Available {
			res.Available = append(res.Available, p)
		} else {
			res.Unavailable = append(res.Unavailable, p)
		}
	}
	return res
}

// transform rotates a table into canvas axes. Width and height swap: the
// table's plan height becomes its on-screen width.
func transform(t floorplan.Table, ext Extent) geometry {
	g := geometry{
		renderX: *t.Y,
		renderY: ext.MaxX - (*t.X + *t.Width),
		width:   *t.Height / ext.MaxY * 100 * widthFactor,
		height:  *t.Width / ext.MaxX * 100 * heightFactor,
		radius:  DefaultCornerRadius,
	}
	if t.BorderRadius != nil {
		g.radius = *t.BorderRadius
	}
	return g
}
