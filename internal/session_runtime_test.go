package internal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ryanmoran/idfdock/internal"
	"github.com/stretchr/testify/require"
)

func TestRuntimeSessions(t *testing.T) {
	const (
		listAll     = "podman ps -a --format {{.Names}}"
		listRunning = "podman ps --format {{.Names}}"
	)
	ctx := context.Background()

	t.Run("Query", func(t *testing.T) {
		t.Run("reports a stopped session", func(t *testing.T) {
			runner := &fakeRunner{outputs: map[string]string{
				listAll:     "other\nesp-idf\n",
				listRunning: "other\n",
			}}

			state := internal.NewRuntimeSessions("podman", runner).Query(ctx, "esp-idf")
			require.Equal(t, internal.SessionStopped, state)
			require.Equal(t, []internal.Command{
				{"podman", "ps", "-a", "--format", "{{.Names}}"},
				{"podman", "ps", "--format", "{{.Names}}"},
			}, runner.captured)
		})

		t.Run("reports a running session", func(t *testing.T) {
			runner := &fakeRunner{outputs: map[string]string{
				listAll:     "esp-idf\n",
				listRunning: "web,esp-idf\n",
			}}

			state := internal.NewRuntimeSessions("podman", runner).Query(ctx, "esp-idf")
			require.Equal(t, internal.SessionRunning, state)
		})

		t.Run("reports an absent session without listing running containers", func(t *testing.T) {
			runner := &fakeRunner{outputs: map[string]string{listAll: "esp-idf-old\n"}}

			state := internal.NewRuntimeSessions("podman", runner).Query(ctx, "esp-idf")
			require.Equal(t, internal.SessionAbsent, state)
			require.Len(t, runner.captured, 1)
		})

		t.Run("reports unknown when a listing fails", func(t *testing.T) {
			runner := &fakeRunner{outputErr: map[string]error{listAll: errors.New("cannot connect")}}
			require.Equal(t, internal.SessionUnknown, internal.NewRuntimeSessions("podman", runner).Query(ctx, "esp-idf"))

			runner = &fakeRunner{
				outputs:   map[string]string{listAll: "esp-idf\n"},
				outputErr: map[string]error{listRunning: errors.New("cannot connect")},
			}
			require.Equal(t, internal.SessionUnknown, internal.NewRuntimeSessions("podman", runner).Query(ctx, "esp-idf"))
		})
	})

	t.Run("Start", func(t *testing.T) {
		t.Run("runs the runtime's start command", func(t *testing.T) {
			runner := &fakeRunner{}

			require.NoError(t, internal.NewRuntimeSessions("podman", runner).Start(ctx, "esp-idf"))
			require.Equal(t, []internal.Command{{"podman", "start", "esp-idf"}}, runner.captured)
		})

		t.Run("fails when the runtime refuses", func(t *testing.T) {
			runner := &fakeRunner{outputErr: map[string]error{"podman start esp-idf": errors.New("no such container")}}

			err := internal.NewRuntimeSessions("podman", runner).Start(ctx, "esp-idf")
			require.EqualError(t, err, `failed to start container "esp-idf": no such container`)
		})
	})
}
