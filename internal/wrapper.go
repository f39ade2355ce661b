package internal

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Wrapper runs one profile for one invocation: route the arguments, locate
// devices, resolve the session, compose the runtime command and execute it.
type Wrapper struct {
	Config   Config
	Profile  Profile
	Runner   Runner
	Sessions Sessions
	Terminal Terminal
	FS       fs.FS
	Writer   Writer
}

// Run executes the invocation and returns the exit code the wrapper should
// exit with. A non-nil error is fatal and the exit code is then 1.
func (w Wrapper) Run(ctx context.Context, args []string) (int, error) {
	if w.Profile.Mode == ModeDelegate {
		return w.delegate(ctx, args)
	}

	if _, err := w.Runner.LookPath(w.Config.Runtime); err != nil {
		return 1, fmt.Errorf("%s is not installed or not in PATH", displayRuntime(w.Config.Runtime))
	}

	invocation := Route(WrapperOptions, args)
	for _, flag := range invocation.Dangling {
		w.Writer.Warningf("%s expects a value; ignoring it", flag)
	}

	config := w.Config.WithOptions(invocation.Options)
	composer := NewComposer(config, w.Terminal)
	w.Writer.Debugf("profile=%s image=%s project=%s session=%s", w.Profile.Name, config.Image, config.ProjectDir, config.Session)

	if config.Pull {
		code, err := w.run(ctx, composer.Pull())
		if err != nil || code != 0 {
			return code, err
		}
	}

	// tokens are the arguments the inner tool receives, before path mapping.
	tokens := invocation.Passthrough
	if len(invocation.Raw) > 0 {
		tokens = invocation.Raw
	}

	passthrough := invocation.Passthrough
	if w.Profile.MapPaths {
		passthrough = MapHostPaths(passthrough, config.ProjectDir, w.Profile.Workdir)
	}
	inner := w.Profile.Inner(config, invocation, passthrough)

	if w.Profile.FlashNote && config.Host.OS == "darwin" && NeedsSerial(tokens) {
		w.Writer.Warning(macOSSerialNote)
	}

	if w.Profile.Mode == ModeSession {
		state := w.Sessions.Query(ctx, config.Session)
		action := Decide(state)
		w.Writer.Debugf("session %s is %s: %s", config.Session, state, action)

		switch action {
		case ActionAttach:
			return w.run(ctx, composer.Exec(w.Profile, inner))
		case ActionStartThenAttach:
			if err := w.Sessions.Start(ctx, config.Session); err != nil {
				return 1, err
			}
			return w.run(ctx, composer.Exec(w.Profile, inner))
		}
	}

	if config.Ccache && config.CcacheDir != "" {
		if err := os.MkdirAll(config.CcacheDir, 0o755); err != nil {
			return 1, fmt.Errorf("failed to create ccache directory %q: %w", config.CcacheDir, err)
		}
	}

	devices := w.devices(config, tokens)
	locator := NewLocator(w.FS, config)
	gids := locator.GroupIDs(devices)

	return w.run(ctx, composer.Run(w.Profile, devices, gids, inner))
}

func (w Wrapper) devices(config Config, args []string) []string {
	if !config.Devices {
		return nil
	}

	locator := NewLocator(w.FS, config)
	switch w.Profile.Devices {
	case DevicesLocate:
		if port, ok := locator.Locate(args); ok {
			return []string{port}
		}
	case DevicesScanAll:
		if config.Host.OS == "linux" {
			return locator.ScanAll()
		}
	}
	return nil
}

func (w Wrapper) delegate(ctx context.Context, args []string) (int, error) {
	inner := w.Profile.Entry(w.Config, args)

	wrapper := w.Config.IDFWrapper
	if wrapper != "" {
		if _, err := fs.Stat(w.FS, relative(wrapper)); err == nil {
			return w.run(ctx, append(Command{wrapper, Separator}, inner...))
		}
	}

	if w.Config.Getenv("IDFDOCK_IDF_WRAPPER") == "" && w.Config.Host.Executable != "" {
		return w.run(ctx, append(Command{w.Config.Host.Executable, IDFProfile().Name, Separator}, inner...))
	}

	return 1, fmt.Errorf("idf wrapper not found at %s", wrapper)
}

func (w Wrapper) run(ctx context.Context, command Command) (int, error) {
	w.Writer.Debugf("exec %s", strings.Join(command, " "))
	code, err := w.Runner.Run(ctx, command)
	if err != nil {
		return 1, err
	}
	return code, nil
}

func displayRuntime(runtime string) string {
	if runtime == DefaultRuntime {
		return "Docker"
	}
	return runtime
}

const macOSSerialNote = `Docker on macOS cannot pass USB serial devices to Linux containers.
      You can still build in Docker, but for flashing/monitor either:
        - use native esptool.py on macOS, or
        - use a Linux/WSL machine for flashing.`
