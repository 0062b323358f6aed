// Package estimate approximates rendered pixel dimensions from structural
// metrics without invoking a real layout engine.
//
// Every formula has the shape count × (label width + spacing) + overhead,
// where the count depends on the dialect's layout class: sequential layouts
// grow with node count in the flow direction, hierarchical layouts grow
// with branch width and depth, and radial layouts approximate a square
// grid. Estimates are approximations; expect them within roughly 20-30% of
// the true rendered size depending on dialect.
package estimate

import (
	"math"

	"github.com/matzehuels/diaglens/pkg/diagram"
	"github.com/matzehuels/diaglens/pkg/metrics"
)

// Calibration holds the pixel constants the formulas are tuned with.
// The defaults approximate the stock renderer theme at default font size.
type Calibration struct {
	CharWidth    float64 `json:"char_width" toml:"char_width"`       // pixels per label character
	NodeSpacingX float64 `json:"node_spacing_x" toml:"node_spacing_x"` // horizontal gap incl. padding
	NodeSpacingY float64 `json:"node_spacing_y" toml:"node_spacing_y"` // vertical gap incl. padding
	NodeHeight   float64 `json:"node_height" toml:"node_height"`
	MessageGap   float64 `json:"message_gap" toml:"message_gap"`     // vertical extent per message
	HeaderHeight float64 `json:"header_height" toml:"header_height"` // participant header row
}

// DefaultCalibration returns the stock constants.
func DefaultCalibration() Calibration {
	return Calibration{
		CharWidth:    8,
		NodeSpacingX: 50,
		NodeSpacingY: 40,
		NodeHeight:   40,
		MessageGap:   50,
		HeaderHeight: 80,
	}
}

// Dimensions estimates rendered width and height in pixels. The bool is
// false for dialects without a parser and hence no structural counts to
// feed a formula (mindmap, gantt, pie, unknown), in which case both
// dimensions are zero.
func (c Calibration) Dimensions(typ diagram.Type, m metrics.Metrics) (width, height float64, ok bool) {
	labelW := m.AverageLabelLength * c.CharWidth
	cellW := labelW + c.NodeSpacingX
	cellH := c.NodeHeight + c.NodeSpacingY

	switch typ {
	case diagram.TypeFlowchart, diagram.TypeState:
		if m.Direction.Horizontal() {
			// Sequential: the chain runs across, branches stack vertically.
			width = float64(m.NodeCount) * cellW
			height = float64(max(m.MaxBranchWidth, 1)) * cellH
		} else {
			// Hierarchical: the widest level sets width, depth sets height.
			width = float64(max(m.MaxBranchWidth, 1)) * cellW
			height = float64(max(m.MaxDepth, 1)) * cellH
		}
		return width, height, true

	case diagram.TypeSequence:
		width = float64(m.ParticipantCount) * cellW
		height = c.HeaderHeight + float64(m.MessageCount)*c.MessageGap
		return width, height, true

	case diagram.TypeClass, diagram.TypeER:
		// Radial: layout is not direction-controlled, approximate a square
		// grid with sqrt(n) cells per side.
		n := m.NodeCount
		if typ == diagram.TypeClass {
			n = m.ClassCount
		} else if typ == diagram.TypeER {
			n = m.EntityCount
		}
		if n == 0 {
			n = m.NodeCount
		}
		side := math.Ceil(math.Sqrt(float64(n)))
		return side * cellW, side * cellH, true
	}
	return 0, 0, false
}
