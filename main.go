package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ryanmoran/idfdock/internal"
	"github.com/ryanmoran/idfdock/internal/docker"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic occurred: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := run(os.Args, os.Environ()); err != nil {
		var exitErr internal.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		internal.NewStandardWriter().Errorf("%v", err)
		os.Exit(1)
	}
}

func run(args, env []string) error {
	w := internal.NewStandardWriter()
	cleanupMgr := internal.NewCleanupManager(w)
	defer cleanupMgr.Execute()

	a := &app{
		env:      env,
		host:     internal.CurrentHost(),
		writer:   w,
		runner:   internal.NewProcessRunner(),
		terminal: docker.StdTTY(),
		fsys:     os.DirFS("/"),
		engine:   engineSessions(w, cleanupMgr),
	}

	root := a.rootCommand()
	root.SetArgs(commandArgs(args))
	return root.ExecuteContext(context.Background())
}

// engineSessions returns a factory for the Engine API session backend,
// connected to the daemon of the docker CLI's active context.
func engineSessions(w internal.Writer, cleanupMgr *internal.CleanupManager) func(internal.Config) internal.Sessions {
	return func(config internal.Config) internal.Sessions {
		host, err := docker.ContextHost(config.Getenv)
		if err != nil {
			w.Debugf("%v; using DOCKER_HOST", err)
		}

		client, err := docker.NewDefaultClient(host)
		if err != nil {
			// An unusable client reports every session as unknown.
			w.Debugf("%v", err)
			return docker.NewClient(nil)
		}
		cleanupMgr.Add("docker-client", client.Close)
		return client
	}
}

type app struct {
	env      []string
	host     internal.Host
	writer   *internal.StandardWriter
	runner   internal.Runner
	terminal internal.Terminal
	fsys     fs.FS
	engine   func(config internal.Config) internal.Sessions
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "idfdock",
		Short: "Run the ESP-IDF toolchain from a container",
		Long: "idfdock runs idf.py, idf_tools.py, esptool and idf_monitor.py inside the\n" +
			"ESP-IDF container image. Install it under a profile name (idf, esptool, ...)\n" +
			"or call the profile as a subcommand.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	root.SetOut(a.writer.GetWriter())
	for _, profile := range internal.Profiles() {
		root.AddCommand(a.profileCommand(profile))
	}
	return root
}

func (a *app) profileCommand(profile internal.Profile) *cobra.Command {
	return &cobra.Command{
		Use:                profile.Name + " [wrapper flags] [args...] [-- command...]",
		Aliases:            profile.Aliases,
		Short:              profile.Short,
		Long:               profile.Short + "\n\n" + wrapperUsage(),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProfile(cmd.Context(), profile, args)
		},
	}
}

func (a *app) runProfile(ctx context.Context, profile internal.Profile, args []string) error {
	lookup := internal.ParseEnvironment(a.env)
	file, path, err := internal.LoadFileConfig(internal.ConfigFilePaths(lookup, a.host))
	if err != nil {
		return err
	}

	config := internal.ResolveConfig(a.env, a.host, file)
	if config.Debug {
		a.writer.EnableDebug("idfdock")
	}
	if path != "" {
		a.writer.Debugf("loaded config file %s", path)
	}

	var sessions internal.Sessions
	if profile.Mode == internal.ModeSession {
		sessions = a.sessions(config)
	}

	wrapper := internal.Wrapper{
		Config:   config,
		Profile:  profile,
		Runner:   a.runner,
		Sessions: sessions,
		Terminal: a.terminal,
		FS:       a.fsys,
		Writer:   a.writer,
	}

	code, err := wrapper.Run(ctx, args)
	if err != nil {
		return err
	}
	if code != 0 {
		return internal.ExitError{Code: code}
	}
	return nil
}

// sessions picks the session backend for the configured runtime. Only the
// docker CLI shares its daemon with the Engine API client; any other runtime
// is asked through its own CLI.
func (a *app) sessions(config internal.Config) internal.Sessions {
	runtime := strings.TrimSuffix(filepath.Base(config.Runtime), ".exe")
	if runtime != internal.DefaultRuntime {
		return internal.NewRuntimeSessions(config.Runtime, a.runner)
	}
	return a.engine(config)
}

// commandArgs maps a multi-call invocation such as `idf build` (argv[0]
// being a profile name or alias) to `idf build` for the root command.
func commandArgs(args []string) []string {
	if len(args) == 0 {
		return nil
	}

	name := strings.TrimSuffix(filepath.Base(args[0]), ".exe")
	if profile, ok := internal.FindProfile(name); ok {
		return append([]string{profile.Name}, args[1:]...)
	}
	return args[1:]
}

func wrapperUsage() string {
	var b strings.Builder
	b.WriteString("Wrapper flags (consumed before the tool sees the arguments):\n")
	for _, option := range internal.WrapperOptions {
		name := option.Name
		if option.TakesValue {
			name += " <value>"
		}
		fmt.Fprintf(&b, "  %-20s %s\n", name, option.Usage)
	}
	fmt.Fprintf(&b, "  %-20s %s\n", internal.Separator, "run the remaining arguments as a raw command")
	return b.String()
}
