package internal

import (
	"path"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Mode selects how a profile reaches the toolchain.
type Mode int

const (
	// ModeOneShot always runs an ephemeral container.
	ModeOneShot Mode = iota
	// ModeSession reuses the persistent session container when it exists.
	ModeSession
	// ModeDelegate re-invokes the idf wrapper with a raw command.
	ModeDelegate
)

// DeviceMode selects which serial devices are mapped into one-shot containers.
type DeviceMode int

const (
	// DevicesScanAll maps every device matching the scan patterns, on Linux only.
	DevicesScanAll DeviceMode = iota
	// DevicesLocate maps the single located port.
	DevicesLocate
)

const (
	// WorkspaceDir is where one-shot profiles mount the project.
	WorkspaceDir = "/workspace"
	// HostDir is where session profiles mount the project.
	HostDir = "/host"
)

var (
	toolEnv     = []string{"IDF_GITHUB_ASSETS", "ESPPORT", "ESPBAUD", "IDF_IMAGE"}
	terminalEnv = []string{"TERM", "COLUMNS", "LINES"}

	// flashCommands cannot work from Docker Desktop on macOS.
	flashCommands = []string{"flash", "app-flash", "erase-flash", "monitor", "dfu", "dfu-flash"}
)

// Profile describes one entry point: how it routes, which container it
// targets and what it runs inside.
type Profile struct {
	Name    string
	Aliases []string
	Short   string
	Mode    Mode
	Devices DeviceMode
	TTY     TTYMode
	Workdir string
	PassEnv []string

	// TerminalSize fills COLUMNS and LINES from the terminal when unset.
	TerminalSize bool
	// MapPaths rewrites arguments naming files in the project to Workdir.
	MapPaths bool
	// FlashNote warns on macOS when the command needs a serial device.
	FlashNote bool

	// Entry builds the default inner command from the passthrough tokens.
	Entry func(config Config, args []string) Command
}

// Inner returns the command to run inside the container for invocation.
func (p Profile) Inner(config Config, invocation Invocation, args []string) Command {
	if len(invocation.Raw) > 0 {
		return invocation.Inner()
	}
	return p.Entry(config, args)
}

// Profiles lists every entry point in the order they are registered.
func Profiles() []Profile {
	return []Profile{
		IDFProfile(),
		IDFToolsProfile(),
		EsptoolProfile(),
		MonitorProfile(),
		IDFEsptoolProfile(),
	}
}

// FindProfile returns the profile whose name or alias matches name.
func FindProfile(name string) (Profile, bool) {
	for _, profile := range Profiles() {
		if profile.Name == name {
			return profile, true
		}
		for _, alias := range profile.Aliases {
			if alias == name {
				return profile, true
			}
		}
	}
	return Profile{}, false
}

// IDFProfile runs idf.py in an ephemeral container.
func IDFProfile() Profile {
	return Profile{
		Name:      "idf",
		Aliases:   []string{"idf.py"},
		Short:     "Run idf.py inside the ESP-IDF image",
		Mode:      ModeOneShot,
		Devices:   DevicesScanAll,
		TTY:       TTYAlways,
		Workdir:   WorkspaceDir,
		PassEnv:   toolEnv,
		FlashNote: true,
		Entry: func(_ Config, args []string) Command {
			return append(Command{"idf.py"}, args...)
		},
	}
}

// IDFToolsProfile runs idf_tools.py in an ephemeral container.
func IDFToolsProfile() Profile {
	return Profile{
		Name:    "idf-tools",
		Aliases: []string{"idf_tools.py"},
		Short:   "Run idf_tools.py inside the ESP-IDF image",
		Mode:    ModeOneShot,
		Devices: DevicesScanAll,
		TTY:     TTYAlways,
		Workdir: WorkspaceDir,
		PassEnv: toolEnv,
		Entry: func(config Config, args []string) Command {
			return append(Command{path.Join(config.IDFPath, "tools", "idf_tools.py")}, args...)
		},
	}
}

// EsptoolProfile runs esptool from the IDF python environment, reusing the
// session container when there is one.
func EsptoolProfile() Profile {
	return Profile{
		Name:    "esptool",
		Aliases: []string{"esptool.py"},
		Short:   "Run esptool in the session container or a one-shot container",
		Mode:    ModeSession,
		Devices: DevicesLocate,
		TTY:     TTYAuto,
		Workdir: HostDir,
		Entry: func(config Config, args []string) Command {
			script := shellquote.Join(append([]string{config.Python, "-m", "esptool"}, args...)...)
			return Command{"bash", "-lc", script}
		},
	}
}

// MonitorProfile runs idf_monitor.py, reusing the session container when
// there is one.
func MonitorProfile() Profile {
	return Profile{
		Name:         "monitor",
		Aliases:      []string{"idf_monitor.py", "idf-monitor"},
		Short:        "Run idf_monitor.py in the session container or a one-shot container",
		Mode:         ModeSession,
		Devices:      DevicesLocate,
		TTY:          TTYAlways,
		Workdir:      HostDir,
		PassEnv:      terminalEnv,
		TerminalSize: true,
		MapPaths:     true,
		Entry: func(config Config, args []string) Command {
			monitor := path.Join(config.IDFPath, "tools", "idf_monitor.py")
			script := strings.Join([]string{
				"export IDF_PATH=" + shellquote.Join(config.IDFPath),
				"export PYTHONUNBUFFERED=1",
				shellquote.Join(append([]string{config.Python, monitor}, args...)...),
			}, "; ")
			return Command{"bash", "-lc", script}
		},
	}
}

// IDFEsptoolProfile forwards to the idf wrapper as `idf -- esptool.py ...`.
func IDFEsptoolProfile() Profile {
	return Profile{
		Name:  "idf-esptool",
		Short: "Run esptool.py through the idf wrapper",
		Mode:  ModeDelegate,
		Entry: func(_ Config, args []string) Command {
			return append(Command{"esptool.py"}, args...)
		},
	}
}

// NeedsSerial reports whether tokens include a command that talks to a
// serial device.
func NeedsSerial(tokens []string) bool {
	for _, token := range tokens {
		for _, command := range flashCommands {
			if token == command {
				return true
			}
		}
	}
	return false
}
