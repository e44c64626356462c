// Package mathlib declares the standard numeric functions available to
// expressions. Importing it for side effects queues the declarations; they
// land in the default registries when the startup queue runs.
package mathlib

import (
	"math"

	"github.com/arthur-debert/simreg/pkg/functions"
	"github.com/arthur-debert/simreg/pkg/simreg"
	"github.com/arthur-debert/simreg/pkg/startup"
)

// Unary lists the one-argument functions by expression name
var Unary = map[string]func(float64) float64{
	"acos":  math.Acos,
	"asin":  math.Asin,
	"atan":  math.Atan,
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"ceil":  math.Ceil,
	"floor": math.Floor,
	"exp":   math.Exp,
	"sqrt":  math.Sqrt,
	"fabs":  math.Abs,
	"log":   math.Log,
	"log10": math.Log10,
}

// Binary lists the two-argument functions by expression name
var Binary = map[string]func(float64, float64) float64{
	"atan2": math.Atan2,
	"pow":   math.Pow,
	"fmod":  math.Mod,
	"hypot": math.Hypot,
	"min":   math.Min,
	"max":   math.Max,
}

// unaryOrder and binaryOrder keep registration deterministic
var (
	unaryOrder  = []string{"acos", "asin", "atan", "sin", "cos", "tan", "ceil", "floor", "exp", "sqrt", "fabs", "log", "log10"}
	binaryOrder = []string{"atan2", "pow", "fmod", "hypot", "min", "max"}
)

// Declare queues every function on d
func Declare(d *simreg.Declarer) {
	for _, name := range unaryOrder {
		d.DefineFunction(name, functions.Func1(Unary[name]), 1)
	}
	for _, name := range binaryOrder {
		d.DefineFunction(name, functions.Func2(Binary[name]), 2)
	}
}

func init() {
	Declare(simreg.NewDeclarer(startup.Default(), simreg.Default()))
}
