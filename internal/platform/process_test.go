//go:build unix

package platform

import (
	"os"
	"testing"
)

func TestProcesses_Running(t *testing.T) {
	var p Processes
	if !p.Running(os.Getpid()) {
		t.Error("current process should be running")
	}
	if p.Running(0) || p.Running(-5) {
		t.Error("non-positive pids are never running")
	}
}
