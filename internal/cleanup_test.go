package internal_test

import (
	"errors"
	"testing"

	"github.com/ryanmoran/idfdock/internal"
	"github.com/stretchr/testify/require"
)

func TestCleanupManager(t *testing.T) {
	t.Run("runs steps in LIFO order", func(t *testing.T) {
		w, _, _ := newBufferWriter()
		m := internal.NewCleanupManager(w)

		var order []string
		for _, name := range []string{"first", "second", "third"} {
			m.Add(name, func() error {
				order = append(order, name)
				return nil
			})
		}

		m.Execute()
		require.Equal(t, []string{"third", "second", "first"}, order)
	})

	t.Run("continues past failures and reports them", func(t *testing.T) {
		w, _, errOut := newBufferWriter()
		m := internal.NewCleanupManager(w)

		var executed []string
		m.Add("docker-client", func() error {
			executed = append(executed, "docker-client")
			return nil
		})
		m.Add("broken", func() error {
			executed = append(executed, "broken")
			return errors.New("connection reset")
		})

		m.Execute()
		require.Equal(t, []string{"broken", "docker-client"}, executed)
		require.Equal(t, "Warning: cleanup failed for broken: connection reset\n", errOut.String())
	})

	t.Run("runs each step only once", func(t *testing.T) {
		w, _, _ := newBufferWriter()
		m := internal.NewCleanupManager(w)

		calls := 0
		m.Add("once", func() error {
			calls++
			return nil
		})

		m.Execute()
		m.Execute()
		require.Equal(t, 1, calls)
	})

	t.Run("does nothing when empty", func(t *testing.T) {
		w, _, errOut := newBufferWriter()
		internal.NewCleanupManager(w).Execute()
		require.Empty(t, errOut.String())
	})
}
