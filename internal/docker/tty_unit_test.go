package docker_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/ryanmoran/idfdock/internal/docker"
	"github.com/stretchr/testify/assert"
)

func TestTTY(t *testing.T) {
	t.Run("pipes are not terminals", func(t *testing.T) {
		tty := docker.NewTTY(io.NopCloser(strings.NewReader("")), &bytes.Buffer{})

		assert.False(t, tty.StdinIsTerminal())

		height, width := tty.Size()
		assert.Zero(t, height)
		assert.Zero(t, width)
	})
}
