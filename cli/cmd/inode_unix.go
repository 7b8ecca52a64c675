//go:build unix

package cmd

import (
	"io/fs"
	"syscall"
)

func inode(info fs.FileInfo) (dev, ino uint64, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, false
	}

	return uint64(stat.Dev), uint64(stat.Ino), true //nolint:unconvert
}
