package internal

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	// DefaultRuntime is the container runtime binary invoked for every command.
	DefaultRuntime = "docker"

	// DefaultImage is the ESP-IDF toolchain image used when nothing overrides it.
	DefaultImage = ImageName("espressif/idf:release-v5.5")

	// DefaultSession is the name of the persistent container that session
	// profiles attach to when it exists.
	DefaultSession = SessionName("esp-idf")

	// DefaultPython is the interpreter of the IDF-managed virtualenv inside the image.
	DefaultPython = "/opt/esp/python_env/idf5.5_py3.12_env/bin/python3"

	// DefaultIDFPath is where the official images install ESP-IDF.
	DefaultIDFPath = "/opt/esp/idf"

	// ContainerCcacheDir is where the host ccache directory is mounted.
	ContainerCcacheDir = "/home/esp/.ccache"
)

var (
	// DefaultPortPatterns are searched in order when no port is given explicitly.
	DefaultPortPatterns = []string{
		"/dev/ttyUSB*",
		"/dev/ttyACM*",
		"/dev/cu.SLAB_USBtoUART",
		"/dev/cu.usbserial*",
	}

	// DefaultScanPatterns are mapped wholesale by the one-shot profiles on Linux.
	DefaultScanPatterns = []string{
		"/dev/ttyUSB*",
		"/dev/ttyACM*",
	}

	// PortHintVariables are consulted in order for a serial port.
	PortHintVariables = []string{"IDF_PORT", "ESPPORT", "ESPTOOL_PORT"}
)

// Host holds the facts about the calling process that the wrapper depends on.
// It is captured once so nothing downstream reads ambient process state.
type Host struct {
	OS         string
	UID        int
	GID        int
	WorkingDir string
	HomeDir    string
	Executable string
}

// CurrentHost captures the running process's host facts. Lookups that fail
// leave the corresponding field empty, or -1 for uid and gid.
func CurrentHost() Host {
	wd, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	exe, _ := os.Executable()

	return Host{
		OS:         runtime.GOOS,
		UID:        os.Getuid(),
		GID:        os.Getgid(),
		WorkingDir: wd,
		HomeDir:    home,
		Executable: exe,
	}
}

// Config is the immutable result of resolving defaults, the config file, the
// environment and the wrapper flags for a single invocation.
type Config struct {
	Runtime      string
	Image        ImageName
	Session      SessionName
	Python       string
	IDFPath      string
	ProjectDir   string
	CcacheDir    string
	IDFWrapper   string
	Privileged   bool
	Debug        bool
	PortPatterns []string
	ScanPatterns []string
	Host         Host

	// Pull, Devices, UserMap and Ccache come from the wrapper flags.
	Pull    bool
	Devices bool
	UserMap bool
	Ccache  bool

	env map[string]string
}

// ParseEnvironment converts KEY=VALUE pairs into a lookup table. Entries
// without an equals sign are ignored.
func ParseEnvironment(environment []string) map[string]string {
	lookup := make(map[string]string, len(environment))
	for _, variable := range environment {
		key, value, ok := strings.Cut(variable, "=")
		if ok {
			lookup[key] = value
		}
	}
	return lookup
}

// ResolveConfig builds the configuration from the process environment, the
// host facts and an already loaded config file. Environment variables take
// precedence over the file, which takes precedence over the defaults.
func ResolveConfig(environment []string, host Host, file FileConfig) Config {
	lookup := ParseEnvironment(environment)

	config := Config{
		Runtime:      DefaultRuntime,
		Image:        DefaultImage,
		Session:      DefaultSession,
		Python:       DefaultPython,
		IDFPath:      DefaultIDFPath,
		ProjectDir:   host.WorkingDir,
		PortPatterns: DefaultPortPatterns,
		ScanPatterns: DefaultScanPatterns,
		Host:         host,
		Devices:      true,
		UserMap:      true,
		env:          lookup,
	}
	if host.HomeDir != "" {
		config.CcacheDir = filepath.Join(host.HomeDir, ".ccache")
	}

	if file.Runtime != "" {
		config.Runtime = file.Runtime
	}
	if file.Image != "" {
		config.Image = ImageName(file.Image)
	}
	if file.Container != "" {
		config.Session = SessionName(file.Container)
	}
	if file.Python != "" {
		config.Python = file.Python
	}
	if file.IDFPath != "" {
		config.IDFPath = file.IDFPath
	}
	if file.CcacheDir != "" {
		config.CcacheDir = ExpandPath(file.CcacheDir, host)
	}
	if len(file.PortPatterns) > 0 {
		config.PortPatterns = file.PortPatterns
	}
	config.Privileged = file.Privileged

	if value := lookup["IDFDOCK_RUNTIME"]; value != "" {
		config.Runtime = value
	}
	if value := lookup["ESP_IDF_DOCKER_IMAGE"]; value != "" {
		config.Image = ImageName(value)
	}
	if value := lookup["IDF_IMAGE"]; value != "" {
		config.Image = ImageName(value)
	}
	if value := lookup["ESP_IDF_DOCKER_CONTAINER"]; value != "" {
		config.Session = SessionName(value)
	}
	if value, ok := lookup["ESP_DOCKER_PRIVILEGED"]; ok {
		config.Privileged = value == "1"
	}
	config.Debug = lookup["IDFDOCK_DEBUG"] == "1"

	config.IDFWrapper = ExpandPath(lookup["IDFDOCK_IDF_WRAPPER"], host)
	if config.IDFWrapper == "" && host.Executable != "" {
		config.IDFWrapper = filepath.Join(filepath.Dir(host.Executable), "idf")
	}

	return config
}

// Getenv returns the value the variable had when the configuration was resolved.
func (c Config) Getenv(key string) string {
	return c.env[key]
}

// PortHint returns the first non-empty port hint variable, if any.
func (c Config) PortHint() (string, bool) {
	for _, key := range PortHintVariables {
		if value := c.env[key]; value != "" {
			return value, true
		}
	}
	return "", false
}

// WithOptions returns a copy of the configuration with the wrapper flags applied.
func (c Config) WithOptions(options Options) Config {
	if options.Image != "" {
		c.Image = ImageName(options.Image)
	}
	if options.Project != "" {
		c.ProjectDir = ExpandPath(options.Project, c.Host)
	}
	c.Pull = options.Pull
	c.Devices = !options.NoDevices
	c.UserMap = !options.NoUserMap
	c.Ccache = options.Ccache
	return c
}

// ExpandPath expands a leading ~ to the home directory and makes the path
// absolute against the working directory.
func ExpandPath(path string, host Host) string {
	if path == "" {
		return path
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		path = filepath.Join(host.HomeDir, path[1:])
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(host.WorkingDir, path)
	}
	return filepath.Clean(path)
}
