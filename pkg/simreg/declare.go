package simreg

import (
	"fmt"
	"runtime"

	"github.com/arthur-debert/simreg/pkg/classes"
	"github.com/arthur-debert/simreg/pkg/functions"
	"github.com/arthur-debert/simreg/pkg/iface"
	"github.com/arthur-debert/simreg/pkg/simtypes"
	"github.com/arthur-debert/simreg/pkg/startup"
)

// Declarer queues registration actions against one set of registries.
//
// The queue id of a declaration is the entity key plus the source line it
// was declared on. Running the same declaration twice (a loop, generated
// code included twice) queues one action; two declarations of the same
// name on different lines both reach the registry, whose duplicate policy
// decides between them.
type Declarer struct {
	Queue *startup.Queue
	Reg   *Registries
}

// NewDeclarer binds a queue to a set of registries
func NewDeclarer(q *startup.Queue, reg *Registries) *Declarer {
	return &Declarer{Queue: q, Reg: reg}
}

func defaultDeclarer() *Declarer {
	return &Declarer{Queue: startup.Default(), Reg: Default()}
}

// declSite returns file:line of the caller of the function calling it
func declSite() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// DeclarationID builds the queue id of a declaration
func DeclarationID(key, site string) string {
	return key + "@" + site
}

// DefineModule couples a module class with the interface of the same name
func (d *Declarer) DefineModule(name string, create func() simtypes.Module) {
	d.defineModule(declSite(), name, name, create)
}

// DefineModuleLike couples a module class with a differently named interface
func (d *Declarer) DefineModuleLike(name, interfaceName string, create func() simtypes.Module) {
	d.defineModule(declSite(), name, interfaceName, create)
}

func (d *Declarer) defineModule(site, name, interfaceName string, create func() simtypes.Module) {
	d.Queue.Register(DeclarationID(name+"__mod", site), func() error {
		return d.Reg.Modules.Register(simtypes.ModuleType{Name: name, InterfaceName: interfaceName, Create: create})
	})
}

// DefineChannel registers a channel type
func (d *Declarer) DefineChannel(name string, create func() simtypes.Channel) {
	d.defineChannel(declSite(), name, create)
}

func (d *Declarer) defineChannel(site, name string, create func() simtypes.Channel) {
	d.Queue.Register(DeclarationID(name+"__channelt", site), func() error {
		return d.Reg.Channels.Register(simtypes.ChannelType{Name: name, Create: create})
	})
}

// DefineNetwork registers a network type
func (d *Declarer) DefineNetwork(name string, create func() simtypes.Network) {
	d.defineNetwork(declSite(), name, create)
}

func (d *Declarer) defineNetwork(site, name string, create func() simtypes.Network) {
	d.Queue.Register(DeclarationID(name+"__net", site), func() error {
		return d.Reg.Networks.Register(simtypes.NetworkType{Name: name, Create: create})
	})
}

// DefineFunction registers a function callable from expressions
func (d *Declarer) DefineFunction(name string, fn functions.MathFunc, arity int) {
	d.defineFunction(declSite(), name, fn, arity)
}

func (d *Declarer) defineFunction(site, name string, fn functions.MathFunc, arity int) {
	d.Queue.Register(DeclarationID(fmt.Sprintf("%s__%d__func", name, arity), site), func() error {
		return d.Reg.Functions.Register(name, fn, arity)
	})
}

// RegisterClass registers a class for CreateOne
func (d *Declarer) RegisterClass(name string, create classes.Factory) {
	d.registerClass(declSite(), name, create)
}

func (d *Declarer) registerClass(site, name string, create classes.Factory) {
	d.Queue.Register(DeclarationID(name+"__class", site), func() error {
		return d.Reg.Classes.Register(name, create)
	})
}

// RegisterModuleInterface registers the interface of a class from a
// sentinel-terminated declaration list
func (d *Declarer) RegisterModuleInterface(name string, items ...iface.Item) {
	d.registerModuleInterface(declSite(), name, items)
}

func (d *Declarer) registerModuleInterface(site, name string, items []iface.Item) {
	d.Queue.Register(DeclarationID(name+"__if", site), func() error {
		desc, err := iface.FromItems(name, items)
		if err != nil {
			return err
		}
		return d.Reg.Interfaces.Register(desc)
	})
}

// DefineModule declares a module type on the default registries
func DefineModule(name string, create func() simtypes.Module) {
	defaultDeclarer().defineModule(declSite(), name, name, create)
}

// DefineModuleLike declares a module type implementing interfaceName
func DefineModuleLike(name, interfaceName string, create func() simtypes.Module) {
	defaultDeclarer().defineModule(declSite(), name, interfaceName, create)
}

// DefineChannel declares a channel type on the default registries
func DefineChannel(name string, create func() simtypes.Channel) {
	defaultDeclarer().defineChannel(declSite(), name, create)
}

// DefineNetwork declares a network type on the default registries
func DefineNetwork(name string, create func() simtypes.Network) {
	defaultDeclarer().defineNetwork(declSite(), name, create)
}

// DefineFunction declares a function on the default registries
func DefineFunction(name string, fn functions.MathFunc, arity int) {
	defaultDeclarer().defineFunction(declSite(), name, fn, arity)
}

// DefineFunction2 is DefineFunction under the kernel's name for declaring a
// function whose expression name differs from its implementation. Go
// declarations always pass both, so the two are interchangeable.
func DefineFunction2(name string, impl functions.MathFunc, arity int) {
	defaultDeclarer().defineFunction(declSite(), name, impl, arity)
}

// RegisterClass declares a class on the default registries
func RegisterClass(name string, create classes.Factory) {
	defaultDeclarer().registerClass(declSite(), name, create)
}

// RegisterModuleInterface declares a module interface on the default registries
func RegisterModuleInterface(name string, items ...iface.Item) {
	defaultDeclarer().registerModuleInterface(declSite(), name, items)
}
