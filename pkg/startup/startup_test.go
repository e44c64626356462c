package startup

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExecutesInRegistrationOrder(t *testing.T) {
	q := NewQueue()
	var order []string
	for _, id := range []string{"c", "a", "b"} {
		id := id
		q.Register(id, func() error {
			order = append(order, id)
			return nil
		})
	}

	require.NoError(t, q.Run())
	assert.Equal(t, []string{"c", "a", "b"}, order)
	assert.True(t, q.Ran())
	assert.Equal(t, 0, q.Len())
}

func TestRunIsIdempotent(t *testing.T) {
	q := NewQueue()
	calls := 0
	q.Register("once", func() error {
		calls++
		return nil
	})

	require.NoError(t, q.Run())
	require.NoError(t, q.Run())

	assert.Equal(t, 1, calls)
	assert.True(t, q.Executed("once"))
}

func TestRegisterSameIDTwice(t *testing.T) {
	q := NewQueue()
	var got []int
	q.Register("dup", func() error { got = append(got, 1); return nil })
	q.Register("dup", func() error { got = append(got, 2); return nil })

	assert.Equal(t, []string{"dup"}, q.Pending())
	require.NoError(t, q.Run())
	assert.Equal(t, []int{1}, got)

	t.Run("after run", func(t *testing.T) {
		q.Register("dup", func() error { got = append(got, 3); return nil })
		require.NoError(t, q.Run())
		assert.Equal(t, []int{1}, got)
	})
}

func TestLateRegistrationRunsOnNextRun(t *testing.T) {
	q := NewQueue()
	require.NoError(t, q.Run())

	ran := false
	q.Register("late", func() error { ran = true; return nil })
	assert.Equal(t, 1, q.Len())

	require.NoError(t, q.Run())
	assert.True(t, ran)
}

func TestActionRegisteringAnotherAction(t *testing.T) {
	q := NewQueue()
	var order []string
	q.Register("outer", func() error {
		order = append(order, "outer")
		q.Register("inner", func() error {
			order = append(order, "inner")
			return nil
		})
		return nil
	})

	require.NoError(t, q.Run())
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestFailingActionAbortsRun(t *testing.T) {
	q := NewQueue()
	var order []string
	q.Register("ok", func() error { order = append(order, "ok"); return nil })
	q.Register("boom", func() error { return stderrors.New("conflict") })
	q.Register("never", func() error { order = append(order, "never"); return nil })

	err := q.Run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStartupFailed))
	assert.Equal(t, "boom", errors.GetErrorDetails(err)["id"])
	assert.Equal(t, []string{"ok"}, order)
	assert.True(t, q.Executed("ok"))
	assert.Equal(t, []string{"never"}, q.Pending())
}

func TestPanickingActionBecomesError(t *testing.T) {
	q := NewQueue()
	q.Register("panics", func() error { panic("bad registration") })

	err := q.Run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStartupFailed))
	assert.Contains(t, err.Error(), "bad registration")
}

func TestNilActionIsSkipped(t *testing.T) {
	q := NewQueue()
	q.Register("nil", nil)

	require.NoError(t, q.Run())
	assert.True(t, q.Executed("nil"))
}
