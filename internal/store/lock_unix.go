//go:build unix

package store

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// fileLock is an advisory flock(2) lock shared by every process using the
// same storage directory.
type fileLock struct {
	f *os.File
}

func openLock(path string) (*fileLock, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	return &fileLock{f: f}, nil
}

// Lock blocks until the lock is held and returns the function releasing it.
func (l *fileLock) Lock(exclusive bool) (func(), error) {
	how := unix.LOCK_SH
	if exclusive {
		how = unix.LOCK_EX
	}

	fd := int(l.f.Fd())
	for {
		err := unix.Flock(fd, how)
		if err == nil {
			break
		}
		if err != unix.EINTR {
			return nil, fmt.Errorf("failed to lock %s: %w", l.f.Name(), err)
		}
	}

	return func() {
		_ = unix.Flock(fd, unix.LOCK_UN)
	}, nil
}

func (l *fileLock) Close() error {
	return l.f.Close()
}
