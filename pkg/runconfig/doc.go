// Package runconfig reads run files: TOML documents naming the network to
// simulate and the parameter values to apply, organised in named
// configurations that inherit from each other.
//
//	[General]
//	network = "Tandem"
//
//	[General.params]
//	"*.capacity" = 100
//
//	[Config.Fast]
//	description = "shorter service times"
//	params = { "Queue.serviceTime" = 0.1 }
//
//	[Config.FastPriority]
//	extends = "Fast"
//	network = "PriorityTandem"
//
// A lookup walks the section chain of a configuration: the configuration
// itself, then the configurations it extends, then General. The order is the
// C3 linearisation of the extends graph, so a shared base comes after every
// configuration that extends it and listed order is kept. The first section
// that sets a key wins.
package runconfig
