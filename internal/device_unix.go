//go:build unix

package internal

import (
	"io/fs"
	"syscall"
)

func fileGroupID(info fs.FileInfo) (int, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return int(stat.Gid), true
}
