package core

import (
	"testing"

	"github.com/arthur-debert/simreg/pkg/classes"
	"github.com/arthur-debert/simreg/pkg/config"
	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/registry"
	"github.com/arthur-debert/simreg/pkg/simreg"
	"github.com/arthur-debert/simreg/pkg/startup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type thing string

func (t thing) ClassName() string { return string(t) }

func TestBootstrapRunsQueueAndSeals(t *testing.T) {
	q := startup.NewQueue()
	reg := simreg.NewRegistries(registry.Overwrite)
	d := simreg.NewDeclarer(q, reg)
	d.RegisterClass("A", func() classes.Object { return thing("A") })

	require.NoError(t, Bootstrap(q, reg, config.Default()))

	obj, err := reg.CreateOne("A")
	require.NoError(t, err)
	assert.Equal(t, "A", obj.ClassName())
	assert.True(t, reg.Classes.Table().Sealed())

	err = reg.Classes.Register("B", func() classes.Object { return thing("B") })
	assert.True(t, errors.IsErrorCode(err, errors.ErrRegistrySealed))

	// a second bootstrap has nothing left to run
	require.NoError(t, Bootstrap(q, reg, config.Default()))
	assert.Equal(t, 1, reg.Classes.Len())
}

func TestBootstrapAppliesRejectPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Registry.Duplicates = "reject"

	q := startup.NewQueue()
	reg := simreg.NewRegistries(registry.Overwrite)
	d := simreg.NewDeclarer(q, reg)
	d.RegisterClass("A", func() classes.Object { return thing("A") })
	d.RegisterClass("A", func() classes.Object { return thing("A2") })

	err := Bootstrap(q, reg, cfg)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStartupFailed))
	assert.Contains(t, err.Error(), "DUPLICATE_NAME")
	assert.False(t, reg.Classes.Table().Sealed())
}

func TestBootstrapOverwritePolicyKeepsLastDeclaration(t *testing.T) {
	q := startup.NewQueue()
	reg := simreg.NewRegistries(registry.Reject)
	d := simreg.NewDeclarer(q, reg)
	d.RegisterClass("A", func() classes.Object { return thing("A") })
	d.RegisterClass("A", func() classes.Object { return thing("A2") })

	require.NoError(t, Bootstrap(q, reg, config.Default()))
	obj, err := reg.CreateOne("A")
	require.NoError(t, err)
	assert.Equal(t, "A2", obj.ClassName())
}

func TestBootstrapRejectsInvalidPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Registry.Duplicates = "sometimes"

	err := Bootstrap(startup.NewQueue(), simreg.NewRegistries(registry.Overwrite), cfg)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStartupFailed))
}

func TestInitializeRegistersBuiltins(t *testing.T) {
	reg, err := Initialize(config.Default())
	require.NoError(t, err)

	_, err = reg.LookupFunction("pow", 2)
	assert.NoError(t, err)

	m, ifName, err := reg.CreateModule("PriorityQueue")
	require.NoError(t, err)
	assert.Equal(t, "PriorityQueue", m.ClassName())
	assert.Equal(t, "Queue", ifName)

	n, _, err := reg.CreateNetwork("Tandem")
	require.NoError(t, err)
	assert.Equal(t, []string{"Source", "Queue", "Sink"}, n.Submodules())
}
