// Package iface describes the external interface of a module type: its
// gates (directional ports) and its parameters (named values restricted
// to a set of allowed types).
//
// A Descriptor is an ordered list of gate and parameter declarations with a
// known length. Generated code may still hand over the classic
// sentinel-terminated form, which FromItems consumes up to the first End:
//
//	iface.FromItems("Queue", []iface.Item{
//		iface.Gate("in", iface.Input),
//		iface.Gate("out", iface.Output),
//		iface.Param("capacity", iface.Numeric),
//		iface.End(),
//	})
//
// Type masks use single-character codes and may combine them:
//
//	#        value must be constant
//	*        any type
//	LDCXFTB  numeric or bool
//	S        string
//	M        XML
package iface
