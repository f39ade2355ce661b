package internal

import (
	"fmt"
	"strconv"
)

// Terminal reports on the terminal the wrapper was started from.
type Terminal interface {
	StdinIsTerminal() bool
	Size() (height, width uint)
}

// TTYMode controls whether -t is passed to the container runtime.
type TTYMode int

const (
	// TTYAlways always allocates a pseudo-TTY.
	TTYAlways TTYMode = iota
	// TTYAuto allocates a pseudo-TTY only when stdin is a terminal.
	TTYAuto
)

// Composer assembles container runtime command lines from the resolved
// configuration. It has no side effects.
type Composer struct {
	config   Config
	terminal Terminal
}

// NewComposer creates a Composer for the given configuration.
func NewComposer(config Config, terminal Terminal) Composer {
	return Composer{
		config:   config,
		terminal: terminal,
	}
}

// Pull returns the command that refreshes the configured image.
func (c Composer) Pull() Command {
	return Command{c.config.Runtime, "pull", string(c.config.Image)}
}

// Exec returns the command that runs inner inside the running session container.
func (c Composer) Exec(profile Profile, inner Command) Command {
	command := Command{c.config.Runtime, "exec"}
	command = append(command, c.interactiveFlags(profile)...)
	command = append(command, c.envFlags(profile)...)
	command = append(command, string(c.config.Session))
	return append(command, inner...)
}

// Run returns the command that creates an ephemeral container, runs inner in
// it and removes it on exit. Each device is mapped to the same path inside
// the container and each gid is added as a supplementary group.
func (c Composer) Run(profile Profile, devices []string, gids []int, inner Command) Command {
	command := Command{c.config.Runtime, "run", "--rm"}
	command = append(command, c.interactiveFlags(profile)...)

	if user, ok := c.userMapping(); ok {
		command = append(command, "--user", user)
	}
	if c.config.Privileged {
		command = append(command, "--privileged")
	}

	command = append(command, c.envFlags(profile)...)

	for _, mount := range c.Mounts(profile) {
		command = append(command, "-v", mount.String())
	}
	command = append(command, "-w", profile.Workdir)

	for _, device := range devices {
		command = append(command, "--device", device)
	}
	for _, gid := range gids {
		command = append(command, "--group-add", strconv.Itoa(gid))
	}

	command = append(command, string(c.config.Image))
	return append(command, inner...)
}

// Mounts returns the project mount followed by the optional ccache mount.
func (c Composer) Mounts(profile Profile) []Mount {
	mounts := []Mount{{HostPath: c.config.ProjectDir, ContainerPath: profile.Workdir}}
	if c.config.Ccache && c.config.CcacheDir != "" {
		mounts = append(mounts, Mount{HostPath: c.config.CcacheDir, ContainerPath: ContainerCcacheDir})
	}
	return mounts
}

func (c Composer) interactiveFlags(profile Profile) []string {
	if profile.TTY == TTYAlways || c.terminal.StdinIsTerminal() {
		return []string{"-i", "-t"}
	}
	return []string{"-i"}
}

func (c Composer) userMapping() (string, bool) {
	if !c.config.UserMap {
		return "", false
	}

	host := c.config.Host
	if host.OS != "linux" && host.OS != "darwin" {
		return "", false
	}
	if host.UID < 0 || host.GID < 0 {
		return "", false
	}

	return fmt.Sprintf("%d:%d", host.UID, host.GID), true
}

func (c Composer) envFlags(profile Profile) []string {
	var flags []string
	for _, key := range profile.PassEnv {
		value := c.config.Getenv(key)
		if value == "" {
			value = c.terminalDefault(profile, key)
		}
		if value != "" {
			flags = append(flags, "-e", key+"="+value)
		}
	}
	return flags
}

func (c Composer) terminalDefault(profile Profile, key string) string {
	if !profile.TerminalSize {
		return ""
	}

	height, width := c.terminal.Size()
	switch {
	case key == "COLUMNS" && width > 0:
		return strconv.FormatUint(uint64(width), 10)
	case key == "LINES" && height > 0:
		return strconv.FormatUint(uint64(height), 10)
	}
	return ""
}
