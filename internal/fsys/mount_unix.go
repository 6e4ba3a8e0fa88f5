//go:build unix

package fsys

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// DeviceMountDetector treats a directory as a mountpoint when it lives on a
// different device than the directory containing it, or when it is its own
// parent (the root). The parent is taken from the path, so only search
// permission on the parent is needed; the directory itself may be
// unsearchable.
func DeviceMountDetector(path string, followLinks bool) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}

	stat := unix.Lstat
	if followLinks {
		stat = unix.Stat
	}

	var self unix.Stat_t
	if err := stat(abs, &self); err != nil {
		return false, err
	}

	var parent unix.Stat_t
	if err := unix.Stat(filepath.Dir(abs), &parent); err != nil {
		return false, err
	}

	if self.Dev != parent.Dev {
		return true, nil
	}
	return self.Ino == parent.Ino, nil
}
