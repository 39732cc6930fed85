//go:build unix

package platform

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Processes is the ax.ProcessTable of the local machine.
type Processes struct{}

// Running reports whether pid exists. A permission error still means the
// process is alive.
func (Processes) Running(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
