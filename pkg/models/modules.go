package models

import (
	"github.com/arthur-debert/simreg/pkg/iface"
	"github.com/arthur-debert/simreg/pkg/simreg"
	"github.com/arthur-debert/simreg/pkg/simtypes"
)

// Source emits jobs at a configured interval
type Source struct{}

func (*Source) ClassName() string { return "Source" }

func (*Source) Gates() map[string]iface.Direction {
	return map[string]iface.Direction{"out": iface.Output}
}

func (*Source) ParamDefaults() map[string]iface.Value {
	return map[string]iface.Value{
		"interval": iface.ExprValue("exponential(1)"),
		"label":    iface.StringValue("source"),
	}
}

// Sink absorbs jobs
type Sink struct{}

func (*Sink) ClassName() string { return "Sink" }

func (*Sink) Gates() map[string]iface.Direction {
	return map[string]iface.Direction{"in": iface.Input}
}

// Queue is a bounded FIFO server
type Queue struct {
	priority bool
}

func (q *Queue) ClassName() string {
	if q.priority {
		return "PriorityQueue"
	}
	return "Queue"
}

func (*Queue) Gates() map[string]iface.Direction {
	return map[string]iface.Direction{"in": iface.Input, "out": iface.Output}
}

func (*Queue) ParamDefaults() map[string]iface.Value {
	return map[string]iface.Value{
		"capacity":    iface.LongValue(100),
		"serviceTime": iface.DoubleValue(0.5),
	}
}

// Priority reports whether the queue serves by priority
func (q *Queue) Priority() bool { return q.priority }

func init() {
	simreg.DefineModule("Source", func() simtypes.Module { return &Source{} })
	simreg.RegisterModuleInterface("Source",
		iface.Gate("out", iface.Output),
		iface.Param("interval", iface.Numeric),
		iface.Param("label", iface.String),
		iface.End(),
	)

	simreg.DefineModule("Sink", func() simtypes.Module { return &Sink{} })
	simreg.RegisterModuleInterface("Sink",
		iface.Gate("in", iface.Input),
		iface.End(),
	)

	simreg.DefineModule("Queue", func() simtypes.Module { return &Queue{} })
	simreg.DefineModuleLike("PriorityQueue", "Queue", func() simtypes.Module { return &Queue{priority: true} })
	simreg.RegisterModuleInterface("Queue",
		iface.Gate("in", iface.Input),
		iface.Gate("out", iface.Output),
		iface.Param("capacity", iface.Const+iface.Numeric),
		iface.Param("serviceTime", iface.Numeric),
		iface.Param("routing", iface.XML),
		iface.End(),
	)
}
