package internal

import (
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Locator finds serial devices to expose to the container. The filesystem
// is rooted at "/" so patterns such as /dev/ttyUSB* resolve against it.
type Locator struct {
	fsys   fs.FS
	config Config
}

// NewLocator creates a Locator that searches fsys using the configured patterns.
func NewLocator(fsys fs.FS, config Config) Locator {
	return Locator{
		fsys:   fsys,
		config: config,
	}
}

// Locate resolves a single serial port. An explicit --port/-p in args wins,
// then the port hint variables, then the first pattern with any match. The
// second return value is false when nothing was found, which means no device
// should be mapped.
func (l Locator) Locate(args []string) (string, bool) {
	if port, ok := ExplicitPort(args); ok {
		return port, true
	}

	if port, ok := l.config.PortHint(); ok {
		return port, true
	}

	for _, pattern := range l.config.PortPatterns {
		if matches := l.glob(pattern); len(matches) > 0 {
			return matches[0], true
		}
	}

	return "", false
}

// ScanAll returns every match of the scan patterns, pattern by pattern,
// each group sorted.
func (l Locator) ScanAll() []string {
	var devices []string
	seen := make(map[string]struct{})
	for _, pattern := range l.config.ScanPatterns {
		for _, match := range l.glob(pattern) {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			devices = append(devices, match)
		}
	}
	return devices
}

// GroupIDs returns the distinct owning groups of the given device paths in
// ascending order. Paths that cannot be stat'ed are skipped.
func (l Locator) GroupIDs(devices []string) []int {
	seen := make(map[int]struct{})
	var gids []int
	for _, device := range devices {
		info, err := fs.Stat(l.fsys, relative(device))
		if err != nil {
			continue
		}

		gid, ok := fileGroupID(info)
		if !ok {
			continue
		}

		if _, ok := seen[gid]; !ok {
			seen[gid] = struct{}{}
			gids = append(gids, gid)
		}
	}
	sort.Ints(gids)
	return gids
}

func (l Locator) glob(pattern string) []string {
	matches, err := fs.Glob(l.fsys, relative(pattern))
	if err != nil {
		return nil
	}

	for i, match := range matches {
		matches[i] = "/" + match
	}
	sort.Strings(matches)
	return matches
}

func relative(p string) string {
	return strings.TrimPrefix(path.Clean(p), "/")
}

// ExplicitPort scans args for --port X, -p X, --port=X or -pX and returns
// the first non-empty value. A flag without a following value is skipped.
func ExplicitPort(args []string) (string, bool) {
	for i, arg := range args {
		switch {
		case arg == "--port" || arg == "-p":
			if i+1 < len(args) && args[i+1] != "" {
				return args[i+1], true
			}
		case strings.HasPrefix(arg, "--port="):
			if value := strings.TrimPrefix(arg, "--port="); value != "" {
				return value, true
			}
		case strings.HasPrefix(arg, "-p") && len(arg) > 2:
			return arg[2:], true
		}
	}
	return "", false
}
