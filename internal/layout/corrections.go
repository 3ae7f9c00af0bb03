package layout

// Correction is a hand-tuned nudge for one table. The generic transform does
// not match the physical hall for a few irregular tables; these values put
// them back where the staff expect them.
//
// Shifts are in plan units along the render axes and are applied before the
// percentage conversion. Overrides replace the computed percentages.
type Correction struct {
	ShiftLeft    float64  `yaml:"shift_left" json:"shiftLeft"`
	ShiftBottom  float64  `yaml:"shift_bottom" json:"shiftBottom"`
	Width        *float64 `yaml:"width" json:"width,omitempty"`
	Height       *float64 `yaml:"height" json:"height,omitempty"`
	CornerRadius *float64 `yaml:"corner_radius" json:"cornerRadius,omitempty"`
}

// Corrections maps a table number to its correction.
type Corrections map[int]Correction

func pct(v float64) *float64 { return &v }

// DefaultCorrections is the correction set of the built-in hall.
func DefaultCorrections() Corrections {
	return Corrections{
		1:  {ShiftBottom: 10, Width: pct(23.6)},
		2:  {ShiftLeft: -75, ShiftBottom: -50, Width: pct(20.6), Height: pct(16.47), CornerRadius: pct(33)},
		3:  {ShiftBottom: 50, Height: pct(8)},
		4:  {ShiftBottom: 50, Height: pct(8)},
		5:  {ShiftBottom: 50, Height: pct(8)},
		6:  {ShiftLeft: -190, ShiftBottom: 50, Width: pct(19)},
		7:  {ShiftLeft: 52, ShiftBottom: 50, Width: pct(19)},
		8:  {ShiftBottom: 50, Width: pct(25.6)},
		12: {ShiftBottom: -50},
	}
}

func (c Correction) apply(g *geometry) {
	g.renderX += c.ShiftLeft
	g.renderY += c.ShiftBottom
	if c.Width != nil {
		g.width = *c.Width
	}
	if c.Height != nil {
		g.height = *c.Height
	}
	if c.CornerRadius != nil {
		g.radius = *c.CornerRadius
	}
}
