package simtypes

import (
	"testing"

	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fifo struct{}
type lifo struct{}
type wire struct{}
type tandem struct{}

func (fifo) ClassName() string   { return "FIFO" }
func (lifo) ClassName() string   { return "LIFO" }
func (wire) ClassName() string   { return "Wire" }
func (tandem) ClassName() string { return "Tandem" }
func (tandem) Submodules() []string {
	return []string{"FIFO", "LIFO"}
}

func TestModuleRegistry(t *testing.T) {
	r := NewModuleRegistry()
	require.NoError(t, r.Register(ModuleType{Name: "FIFO", Create: func() Module { return fifo{} }}))
	require.NoError(t, r.Register(ModuleType{Name: "LIFO", InterfaceName: "FIFO", Create: func() Module { return lifo{} }}))

	t.Run("interface defaults to registered name", func(t *testing.T) {
		e, err := r.Lookup("FIFO")
		require.NoError(t, err)
		assert.Equal(t, "FIFO", e.InterfaceName)
	})

	t.Run("create exposes interface name", func(t *testing.T) {
		m, e, err := r.Create("LIFO")
		require.NoError(t, err)
		assert.Equal(t, "LIFO", m.ClassName())
		assert.Equal(t, "FIFO", e.InterfaceName)
	})

	t.Run("one interface many implementers", func(t *testing.T) {
		assert.Equal(t, []string{"FIFO", "LIFO"}, r.Implementers("FIFO"))
		assert.Empty(t, r.Implementers("Nothing"))
	})

	t.Run("unknown module", func(t *testing.T) {
		m, e, err := r.Create("Router")
		assert.Nil(t, m)
		assert.Nil(t, e)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownModule))
		assert.Equal(t, "Router", errors.GetErrorDetails(err)["name"])
	})
}

func TestChannelAndNetworkRegistries(t *testing.T) {
	channels := NewChannelRegistry()
	require.NoError(t, channels.Register(ChannelType{Name: "Wire", Create: func() Channel { return wire{} }}))

	c, _, err := channels.Create("Wire")
	require.NoError(t, err)
	assert.Equal(t, "Wire", c.ClassName())

	_, _, err = channels.Create("Fiber")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownChannel))

	networks := NewNetworkRegistry()
	require.NoError(t, networks.Register(NetworkType{Name: "Tandem", Create: func() Network { return tandem{} }}))

	n, e, err := networks.Create("Tandem")
	require.NoError(t, err)
	assert.Equal(t, []string{"FIFO", "LIFO"}, n.Submodules())
	assert.Equal(t, "Tandem", e.InterfaceName)

	_, _, err = networks.Create("Mesh")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownNetwork))
}

func TestRegisterValidation(t *testing.T) {
	r := NewModuleRegistry()
	err := r.Register(ModuleType{Name: "NoFactory"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = r.Register(ModuleType{Create: func() Module { return fifo{} }})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestFactoryReturningNil(t *testing.T) {
	r := NewModuleRegistry()
	require.NoError(t, r.Register(ModuleType{Name: "Ghost", Create: func() Module { return nil }}))

	_, _, err := r.Create("Ghost")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}

func TestRejectPolicy(t *testing.T) {
	r := NewModuleRegistry(registry.WithPolicy(registry.Reject))
	require.NoError(t, r.Register(ModuleType{Name: "FIFO", Create: func() Module { return fifo{} }}))

	err := r.Register(ModuleType{Name: "FIFO", Create: func() Module { return lifo{} }})
	assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateName))

	entries := r.Entries()
	require.Len(t, entries, 1)
	m := entries[0].Create()
	assert.Equal(t, "FIFO", m.ClassName())
}
