//go:build windows

package orchestrator

import "os"

// Windows cannot deliver SIGTERM to a child; it is killed outright.
var stopSignal = os.Kill
