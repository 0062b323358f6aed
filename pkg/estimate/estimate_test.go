package estimate

import (
	"testing"

	"github.com/matzehuels/diaglens/pkg/diagram"
	"github.com/matzehuels/diaglens/pkg/dialect"
	"github.com/matzehuels/diaglens/pkg/metrics"
)

func TestHorizontalFlowchartWidth(t *testing.T) {
	// Ten nodes with 15-char labels laid out left to right:
	// 10 x (15*8 + 50) = 1700px wide.
	m := metrics.Metrics{
		NodeCount:          10,
		AverageLabelLength: 15,
		MaxBranchWidth:     1,
		Direction:          dialect.DirectionLR,
	}
	w, h, ok := DefaultCalibration().Dimensions(diagram.TypeFlowchart, m)

	if !ok {
		t.Fatal("flowchart should have an estimate")
	}
	if w != 1700 {
		t.Errorf("width = %v, want 1700", w)
	}
	if h != 80 {
		t.Errorf("height = %v, want 80 (one branch row)", h)
	}
}

func TestVerticalFlowchart(t *testing.T) {
	m := metrics.Metrics{
		NodeCount:          6,
		AverageLabelLength: 10,
		MaxBranchWidth:     3,
		MaxDepth:           4,
		Direction:          dialect.DirectionTD,
	}
	w, h, ok := DefaultCalibration().Dimensions(diagram.TypeFlowchart, m)

	if !ok {
		t.Fatal("flowchart should have an estimate")
	}
	// Width follows branch width: 3 x (10*8 + 50) = 390.
	if w != 390 {
		t.Errorf("width = %v, want 390", w)
	}
	// Height follows depth: 4 x (40 + 40) = 320.
	if h != 320 {
		t.Errorf("height = %v, want 320", h)
	}
}

func TestVerticalMinimumOneCell(t *testing.T) {
	// A graph with no sources (all-cycle) has depth 0; the estimate still
	// occupies at least one cell in each dimension.
	m := metrics.Metrics{
		NodeCount:          2,
		AverageLabelLength: 5,
		MaxBranchWidth:     0,
		MaxDepth:           0,
		Direction:          dialect.DirectionTD,
	}
	w, h, ok := DefaultCalibration().Dimensions(diagram.TypeState, m)

	if !ok {
		t.Fatal("state should have an estimate")
	}
	if w == 0 || h == 0 {
		t.Errorf("dimensions = %v x %v, want non-zero", w, h)
	}
}

func TestSequenceDimensions(t *testing.T) {
	m := metrics.Metrics{
		ParticipantCount:   4,
		MessageCount:       10,
		AverageLabelLength: 6,
		Direction:          dialect.DirectionLR,
	}
	w, h, ok := DefaultCalibration().Dimensions(diagram.TypeSequence, m)

	if !ok {
		t.Fatal("sequence should have an estimate")
	}
	// 4 x (6*8 + 50) = 392 wide.
	if w != 392 {
		t.Errorf("width = %v, want 392", w)
	}
	// Header plus messages: 80 + 10*50 = 580.
	if h != 580 {
		t.Errorf("height = %v, want 580", h)
	}
}

func TestRadialGrid(t *testing.T) {
	// 9 classes approximate a 3x3 grid.
	m := metrics.Metrics{
		ClassCount:         9,
		NodeCount:          9,
		AverageLabelLength: 10,
	}
	w, h, ok := DefaultCalibration().Dimensions(diagram.TypeClass, m)

	if !ok {
		t.Fatal("class should have an estimate")
	}
	if w != 3*(10*8+50) {
		t.Errorf("width = %v, want %v", w, 3*(10*8+50))
	}
	if h != 3*80 {
		t.Errorf("height = %v, want %v", h, 3*80)
	}
}

func TestNoEstimateForUnknown(t *testing.T) {
	for _, typ := range []diagram.Type{diagram.TypeUnknown, diagram.TypePie, diagram.TypeGantt, diagram.TypeMindmap} {
		w, h, ok := DefaultCalibration().Dimensions(typ, metrics.Metrics{NodeCount: 5})
		if ok {
			t.Errorf("%s should have no estimate", typ)
		}
		if w != 0 || h != 0 {
			t.Errorf("%s dimensions = %v x %v, want 0 x 0", typ, w, h)
		}
	}
}

func TestWidthMonotonicInNodeCount(t *testing.T) {
	cal := DefaultCalibration()
	prev := 0.0
	for n := 1; n <= 20; n++ {
		m := metrics.Metrics{
			NodeCount:          n,
			AverageLabelLength: 8,
			MaxBranchWidth:     1,
			Direction:          dialect.DirectionLR,
		}
		w, _, _ := cal.Dimensions(diagram.TypeFlowchart, m)
		if w <= prev {
			t.Fatalf("width should grow with node count: n=%d w=%v prev=%v", n, w, prev)
		}
		prev = w
	}
}
