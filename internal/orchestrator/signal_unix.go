//go:build !windows

package orchestrator

import "syscall"

// stopSignal asks a timed-out child to write its empty artifact and exit.
var stopSignal = syscall.SIGTERM
