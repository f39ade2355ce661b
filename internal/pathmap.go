package internal

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// MapHostPaths rewrites arguments that name files inside hostDir so they
// resolve under containerDir. Absolute paths inside hostDir are rewritten
// whether or not they exist; relative paths only when the file exists.
// Everything else is returned unchanged.
func MapHostPaths(args []string, hostDir, containerDir string) []string {
	root := resolve(hostDir)

	mapped := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "" {
			mapped = append(mapped, arg)
			continue
		}

		if filepath.IsAbs(arg) {
			rel, err := filepath.Rel(root, resolve(arg))
			if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				mapped = append(mapped, path.Join(containerDir, filepath.ToSlash(rel)))
				continue
			}
			mapped = append(mapped, arg)
			continue
		}

		if _, err := os.Stat(filepath.Join(root, arg)); err == nil {
			mapped = append(mapped, path.Join(containerDir, filepath.ToSlash(arg)))
			continue
		}
		mapped = append(mapped, arg)
	}
	return mapped
}

func resolve(p string) string {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	return filepath.Clean(p)
}
