package internal_test

import (
	"testing"

	"github.com/ryanmoran/idfdock/internal"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	route := func(args ...string) internal.Invocation {
		return internal.Route(internal.WrapperOptions, args)
	}

	t.Run("forwards unknown tokens in order", func(t *testing.T) {
		invocation := route("-p", "/dev/ttyUSB0", "-b", "921600", "flash", "monitor")

		require.Equal(t, []string{"-p", "/dev/ttyUSB0", "-b", "921600", "flash", "monitor"}, invocation.Passthrough)
		require.Equal(t, internal.Options{}, invocation.Options)
		require.Empty(t, invocation.Raw)
	})

	t.Run("consumes wrapper flags wherever they appear", func(t *testing.T) {
		invocation := route("--image", "my/idf:5.3", "build", "--pull", "--no-devices", "-v", "--no-user-map", "--ccache", "--project", "~/proj", "size")

		require.Equal(t, internal.Options{
			Image:     "my/idf:5.3",
			Project:   "~/proj",
			Pull:      true,
			NoDevices: true,
			NoUserMap: true,
			Ccache:    true,
		}, invocation.Options)
		require.Equal(t, []string{"build", "-v", "size"}, invocation.Passthrough)
	})

	t.Run("the last value wins for repeated flags", func(t *testing.T) {
		invocation := route("--image", "a", "--image", "b")
		require.Equal(t, "b", invocation.Options.Image)
		require.Empty(t, invocation.Passthrough)
	})

	t.Run("a value that looks like a flag is still consumed", func(t *testing.T) {
		invocation := route("--project", "--pull", "build")
		require.Equal(t, "--pull", invocation.Options.Project)
		require.False(t, invocation.Options.Pull)
		require.Equal(t, []string{"build"}, invocation.Passthrough)
	})

	t.Run("the separator stops wrapper parsing", func(t *testing.T) {
		invocation := route("--pull", "build", "--", "cmake", "--image", "x", "--", "--version")

		require.True(t, invocation.Options.Pull)
		require.Empty(t, invocation.Options.Image)
		require.Equal(t, []string{"build"}, invocation.Passthrough)
		require.Equal(t, []string{"cmake", "--image", "x", "--", "--version"}, invocation.Raw)
	})

	t.Run("a separator with nothing after it leaves no raw command", func(t *testing.T) {
		invocation := route("build", "--")
		require.Equal(t, []string{"build"}, invocation.Passthrough)
		require.Empty(t, invocation.Raw)
	})

	t.Run("drops a value flag with no value and reports it", func(t *testing.T) {
		invocation := route("build", "--image")
		require.Equal(t, []string{"build"}, invocation.Passthrough)
		require.Equal(t, []string{"--image"}, invocation.Dangling)
		require.Empty(t, invocation.Options.Image)

		invocation = route("--project", "--", "ls")
		require.Equal(t, []string{"--project"}, invocation.Dangling)
		require.Empty(t, invocation.Options.Project)
		require.Equal(t, []string{"ls"}, invocation.Raw)
	})

	t.Run("partitions the input without losing or duplicating tokens", func(t *testing.T) {
		args := []string{"--ccache", "-p", "/dev/ttyUSB1", "--image", "img", "flash", "--", "a", "b"}
		invocation := route(args...)

		consumed := 1 + 2 // --ccache, --image img
		separator := 1
		require.Equal(t, len(args), consumed+len(invocation.Passthrough)+separator+len(invocation.Raw))
	})

	t.Run("accepts a custom option table", func(t *testing.T) {
		table := []internal.Option{{
			Name:  "--verbose",
			Apply: func(o *internal.Options, _ string) { o.Pull = true },
		}}

		invocation := internal.Route(table, []string{"--verbose", "--pull"})
		require.True(t, invocation.Options.Pull)
		require.Equal(t, []string{"--pull"}, invocation.Passthrough)
	})
}

func TestInvocationInner(t *testing.T) {
	t.Run("prefixes the entry point to the passthrough tokens", func(t *testing.T) {
		invocation := internal.Route(internal.WrapperOptions, []string{"--pull", "build"})
		require.Equal(t, internal.Command{"idf.py", "build"}, invocation.Inner("idf.py"))
	})

	t.Run("the raw command replaces the entry point and passthrough", func(t *testing.T) {
		invocation := internal.Route(internal.WrapperOptions, []string{"build", "--", "cmake", "--version"})
		require.Equal(t, internal.Command{"cmake", "--version"}, invocation.Inner("idf.py"))
	})
}
