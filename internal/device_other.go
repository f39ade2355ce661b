//go:build !unix

package internal

import "io/fs"

func fileGroupID(fs.FileInfo) (int, bool) {
	return 0, false
}
