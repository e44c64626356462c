package mathlib

import (
	"strings"
	"testing"

	"github.com/arthur-debert/simreg/pkg/registry"
	"github.com/arthur-debert/simreg/pkg/simreg"
	"github.com/arthur-debert/simreg/pkg/startup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclare(t *testing.T) {
	d := simreg.NewDeclarer(startup.NewQueue(), simreg.NewRegistries(registry.Reject))
	Declare(d)
	require.NoError(t, d.Queue.Run())

	assert.Equal(t, len(Unary)+len(Binary), d.Reg.Functions.Len())

	tests := []struct {
		name string
		args []float64
		want float64
	}{
		{"sqrt", []float64{16}, 4},
		{"fabs", []float64{-2}, 2},
		{"pow", []float64{2, 5}, 32},
		{"max", []float64{3, 9}, 9},
		{"fmod", []float64{7, 4}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := d.Reg.LookupFunction(tt.name, len(tt.args))
			require.NoError(t, err)
			got, err := f.Call(tt.args...)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestOrderListsCoverMaps(t *testing.T) {
	assert.Len(t, unaryOrder, len(Unary))
	assert.Len(t, binaryOrder, len(Binary))
	for _, n := range unaryOrder {
		assert.Contains(t, Unary, n)
	}
	for _, n := range binaryOrder {
		assert.Contains(t, Binary, n)
	}
}

func TestInitQueuedOnDefaultQueue(t *testing.T) {
	var sin, pow []string
	for _, id := range startup.Default().Pending() {
		switch {
		case strings.HasPrefix(id, "sin__1__func@"):
			sin = append(sin, id)
		case strings.HasPrefix(id, "pow__2__func@"):
			pow = append(pow, id)
		}
	}
	require.Len(t, sin, 1)
	require.Len(t, pow, 1)
	assert.Contains(t, sin[0], "mathlib.go:", "id names the declaring line")
	assert.Equal(t, 0, simreg.Default().Functions.Len(), "declarations wait for the bootstrap")
}
