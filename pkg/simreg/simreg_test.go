package simreg

import (
	"math"
	"strings"
	"testing"

	"github.com/arthur-debert/simreg/pkg/classes"
	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/functions"
	"github.com/arthur-debert/simreg/pkg/iface"
	"github.com/arthur-debert/simreg/pkg/registry"
	"github.com/arthur-debert/simreg/pkg/simtypes"
	"github.com/arthur-debert/simreg/pkg/startup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type named string

func (n named) ClassName() string { return string(n) }

type net struct{ named }

func (net) Submodules() []string { return []string{"Gen"} }

func newDeclarer() *Declarer {
	return NewDeclarer(startup.NewQueue(), NewRegistries(registry.Overwrite))
}

func TestScenarioClasses(t *testing.T) {
	d := newDeclarer()
	d.RegisterClass("A", func() classes.Object { return named("A") })
	d.RegisterClass("B", func() classes.Object { return named("B") })
	d.RegisterClass("C", func() classes.Object { return named("C") })

	assert.Equal(t, 0, d.Reg.Classes.Len(), "nothing is registered before the queue runs")
	require.NoError(t, d.Queue.Run())

	for _, name := range []string{"A", "B", "C"} {
		obj, err := d.Reg.CreateOne(name)
		require.NoError(t, err)
		assert.Equal(t, name, obj.ClassName())
	}

	obj, err := d.Reg.CreateOne("D")
	assert.Nil(t, obj)
	assert.True(t, errors.IsUnknownName(err))
}

func TestScenarioInterface(t *testing.T) {
	d := newDeclarer()
	d.RegisterModuleInterface("X",
		iface.Gate("in", iface.Input),
		iface.Gate("out", iface.Output),
		iface.Param("rate", iface.Numeric),
		iface.End(),
	)
	require.NoError(t, d.Queue.Run())

	desc, err := d.Reg.Interfaces.Lookup("X")
	require.NoError(t, err)
	assert.Equal(t, []iface.Item{
		iface.Gate("in", iface.Input),
		iface.Gate("out", iface.Output),
		iface.Param("rate", iface.Numeric),
		iface.End(),
	}, desc.Items())
}

func TestScenarioFunctions(t *testing.T) {
	d := newDeclarer()
	d.DefineFunction("pow", functions.Func2(math.Pow), 2)
	require.NoError(t, d.Queue.Run())

	f, err := d.Reg.LookupFunction("pow", 2)
	require.NoError(t, err)
	got, err := f.Call(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 9.0, got)

	_, err = d.Reg.LookupFunction("pow", 1)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownFunction))
}

func TestInvalidArityAbortsStartup(t *testing.T) {
	d := newDeclarer()
	d.DefineFunction("bad", functions.Func0(func() float64 { return 0 }), 5)

	err := d.Queue.Run()
	assert.True(t, errors.IsErrorCode(err, errors.ErrStartupFailed))

	var cause *errors.SimregError
	require.ErrorAs(t, err, &cause)
	assert.True(t, strings.HasPrefix(cause.Details["id"].(string), "bad__5__func@"), "id %v", cause.Details["id"])
}

func TestMalformedInterfaceAbortsStartup(t *testing.T) {
	d := newDeclarer()
	d.RegisterModuleInterface("Broken", iface.Gate("in", iface.Input))

	err := d.Queue.Run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStartupFailed))
	assert.Contains(t, err.Error(), "MALFORMED_INTERFACE")
}

func TestModuleChannelNetworkDeclarations(t *testing.T) {
	d := newDeclarer()
	d.DefineModule("Gen", func() simtypes.Module { return named("Gen") })
	d.DefineModuleLike("FastGen", "Gen", func() simtypes.Module { return named("FastGen") })
	d.DefineChannel("Link", func() simtypes.Channel { return named("Link") })
	d.DefineNetwork("Net", func() simtypes.Network { return net{named("Net")} })
	require.NoError(t, d.Queue.Run())

	m, ifName, err := d.Reg.CreateModule("FastGen")
	require.NoError(t, err)
	assert.Equal(t, "FastGen", m.ClassName())
	assert.Equal(t, "Gen", ifName)

	c, ifName, err := d.Reg.CreateChannel("Link")
	require.NoError(t, err)
	assert.Equal(t, "Link", c.ClassName())
	assert.Equal(t, "Link", ifName)

	n, _, err := d.Reg.CreateNetwork("Net")
	require.NoError(t, err)
	assert.Equal(t, []string{"Gen"}, n.Submodules())

	_, _, err = d.Reg.CreateNetwork("Other")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownNetwork))
	_, _, err = d.Reg.CreateChannel("Other")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownChannel))
	_, _, err = d.Reg.CreateModule("Other")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownModule))
}

func TestRedundantDeclarationRunsOnce(t *testing.T) {
	d := newDeclarer()
	for i := 0; i < 3; i++ {
		d.DefineModule("Gen", func() simtypes.Module { return named("Gen") })
	}
	assert.Equal(t, 1, d.Queue.Len())
	require.NoError(t, d.Queue.Run())
	assert.Equal(t, 1, d.Reg.Modules.Len())
}

func TestDuplicatePolicyAcrossDeclarations(t *testing.T) {
	declareTwice := func(d *Declarer) {
		d.DefineModule("Gen", func() simtypes.Module { return named("first") })
		d.DefineModuleLike("Gen", "Other", func() simtypes.Module { return named("second") })
	}

	t.Run("overwrite", func(t *testing.T) {
		d := NewDeclarer(startup.NewQueue(), NewRegistries(registry.Overwrite))
		declareTwice(d)
		assert.Equal(t, 2, d.Queue.Len(), "distinct declarations are both queued")
		require.NoError(t, d.Queue.Run())

		m, ifName, err := d.Reg.CreateModule("Gen")
		require.NoError(t, err)
		assert.Equal(t, "second", m.ClassName(), "the later declaration wins")
		assert.Equal(t, "Other", ifName)
		assert.Equal(t, 1, d.Reg.Modules.Len())
	})

	t.Run("reject", func(t *testing.T) {
		d := NewDeclarer(startup.NewQueue(), NewRegistries(registry.Reject))
		declareTwice(d)

		err := d.Queue.Run()
		assert.True(t, errors.IsErrorCode(err, errors.ErrStartupFailed))
		assert.Contains(t, err.Error(), "DUPLICATE_NAME")
	})

	t.Run("reject classes", func(t *testing.T) {
		d := NewDeclarer(startup.NewQueue(), NewRegistries(registry.Reject))
		d.RegisterClass("K", func() classes.Object { return named("K") })
		d.RegisterClass("K", func() classes.Object { return named("K2") })

		err := d.Queue.Run()
		assert.True(t, errors.IsErrorCode(err, errors.ErrStartupFailed))
		assert.Contains(t, err.Error(), "DUPLICATE_NAME")
	})
}

func TestDeclarationIDCarriesSite(t *testing.T) {
	d := newDeclarer()
	d.RegisterClass("A", func() classes.Object { return named("A") })

	pending := d.Queue.Pending()
	require.Len(t, pending, 1)
	assert.True(t, strings.HasPrefix(pending[0], "A__class@"))
	assert.Contains(t, pending[0], "simreg_test.go:")
}

func TestSealAndSetPolicy(t *testing.T) {
	reg := NewRegistries(registry.Overwrite)
	reg.SetPolicy(registry.Reject)
	assert.Equal(t, registry.Reject, reg.Modules.Table().Policy())

	reg.Seal()
	err := reg.Functions.Register("late", functions.Func0(func() float64 { return 1 }), 0)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRegistrySealed))

	reg.Reset()
	assert.False(t, reg.Interfaces.Table().Sealed())
}

func TestCheckConformance(t *testing.T) {
	d := newDeclarer()
	d.DefineModule("Gen", func() simtypes.Module { return named("Gen") })
	d.DefineModuleLike("Orphan", "Missing", func() simtypes.Module { return named("Orphan") })
	d.RegisterModuleInterface("Gen",
		iface.Gate("out", iface.Output),
		iface.Param("interval", iface.Numeric),
		iface.End(),
	)
	require.NoError(t, d.Queue.Run())

	good := iface.Implementation{
		Gates:  map[string]iface.Direction{"out": iface.Output},
		Params: map[string]iface.Value{"interval": iface.DoubleValue(0.1)},
	}
	assert.NoError(t, d.Reg.CheckConformance("Gen", good))

	bad := iface.Implementation{Params: map[string]iface.Value{"interval": iface.StringValue("x")}}
	err := d.Reg.CheckConformance("Gen", bad)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNonconforming))

	err = d.Reg.CheckConformance("Orphan", good)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNonconforming))

	err = d.Reg.CheckConformance("Nobody", good)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownModule))
}

func TestSummary(t *testing.T) {
	d := newDeclarer()
	d.RegisterClass("A", func() classes.Object { return named("A") })
	d.DefineFunction("sin", functions.Func1(math.Sin), 1)
	d.DefineFunction("max", functions.Func2(math.Max), 2)
	require.NoError(t, d.Queue.Run())

	assert.Equal(t, Summary{Classes: 1, Functions: 2}, d.Reg.Summary())
}

func TestDefaultIsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
