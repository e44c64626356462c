package models

import (
	"math"

	"github.com/arthur-debert/simreg/pkg/classes"
	"github.com/arthur-debert/simreg/pkg/functions"
	"github.com/arthur-debert/simreg/pkg/simreg"
	"github.com/arthur-debert/simreg/pkg/simtypes"
)

// DelayChannel delays every message by a fixed amount
type DelayChannel struct {
	Delay float64
}

func (*DelayChannel) ClassName() string { return "DelayChannel" }

// Tandem is a source feeding a queue feeding a sink
type Tandem struct{}

func (*Tandem) ClassName() string { return "Tandem" }

// Submodules lists the module types Tandem instantiates
func (*Tandem) Submodules() []string {
	return []string{"Source", "Queue", "Sink"}
}

// Histogram collects observations into equal-width bins
type Histogram struct {
	Bins  []int
	Min   float64
	Width float64
}

func (*Histogram) ClassName() string { return "Histogram" }

// Collect adds one observation; values outside the range, infinities
// included, are clamped and NaN is dropped
func (h *Histogram) Collect(v float64) {
	if len(h.Bins) == 0 || h.Width <= 0 || math.IsNaN(v) {
		return
	}
	last := len(h.Bins) - 1
	// clamp before converting, int(±Inf) is undefined
	pos := math.Floor((v - h.Min) / h.Width)
	switch {
	case pos < 0:
		h.Bins[0]++
	case pos >= float64(last):
		h.Bins[last]++
	default:
		h.Bins[int(pos)]++
	}
}

// midpoint backs the uniform2 expression function
func midpoint(a, b float64) float64 {
	return a + (b-a)/2
}

func init() {
	simreg.DefineChannel("DelayChannel", func() simtypes.Channel { return &DelayChannel{Delay: 0.01} })
	simreg.DefineNetwork("Tandem", func() simtypes.Network { return &Tandem{} })
	simreg.RegisterClass("Histogram", func() classes.Object {
		return &Histogram{Bins: make([]int, 10), Width: 1}
	})
	simreg.DefineFunction2("uniform2", functions.Func2(midpoint), 2)
}
