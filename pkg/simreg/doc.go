// Package simreg ties the individual registries together.
//
// Registries is the context object holding one registry per entity kind.
// Default returns the process-wide instance that the Define*/Register*
// declarations populate. A declaration does not touch the registry
// directly: it queues one action on the startup queue, and the bootstrap
// in package core runs the queue before anything looks a name up.
//
//	func init() {
//		simreg.DefineModule("Queue", func() simtypes.Module { return &Queue{} })
//		simreg.RegisterModuleInterface("Queue",
//			iface.Gate("in", iface.Input),
//			iface.Gate("out", iface.Output),
//			iface.Param("capacity", iface.Numeric),
//			iface.End(),
//		)
//	}
package simreg
