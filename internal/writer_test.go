package internal_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardWriter(t *testing.T) {
	t.Run("exposes the out stream", func(t *testing.T) {
		w, out, _ := newBufferWriter()
		require.Equal(t, out, w.GetWriter())
	})

	t.Run("writes warnings and errors to the error stream", func(t *testing.T) {
		w, out, errOut := newBufferWriter()

		w.Warning("careful")
		w.Warningf("--%s expects a value", "image")
		w.Errorf("%s is not installed", "Docker")

		require.Empty(t, out.String())
		require.Equal(t, "Warning: careful\nWarning: --image expects a value\nError: Docker is not installed\n", errOut.String())
	})

	t.Run("debug traces are silent until enabled", func(t *testing.T) {
		w, _, errOut := newBufferWriter()

		w.Debugf("exec %s", "docker run")
		require.Empty(t, errOut.String())

		w.EnableDebug("idfdock")
		w.Debugf("exec %s", "docker run")
		require.Contains(t, errOut.String(), "exec docker run")
		require.Contains(t, errOut.String(), "idfdock")
	})
}
