package crash

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/oukeidos/quickpaths/internal/logger"
)

const (
	// MaxRestarts caps consecutive self-restarts.
	MaxRestarts = 5
	// RestartDelay lets the previous instance release its guard.
	RestartDelay = 2 * time.Second
	// RestartFlag carries the attempt number to the relaunched process.
	RestartFlag = "restart-count"
)

// ShouldRestart reports whether a process that exited with code after
// restartCount previous restarts should relaunch.
func ShouldRestart(code, restartCount int) bool {
	return code != ExitClean && restartCount < MaxRestarts
}

// StartupDelay is how long a relaunched process waits before starting.
func StartupDelay(restartCount int) time.Duration {
	if restartCount > 0 {
		return RestartDelay
	}
	return 0
}

// RestartArgs replaces any restart flag in args with one carrying next.
func RestartArgs(args []string, next int) []string {
	out := make([]string, 0, len(args)+1)
	skipValue := false
	for _, a := range args {
		if skipValue {
			skipValue = false
			continue
		}
		if a == "--"+RestartFlag {
			skipValue = true
			continue
		}
		if strings.HasPrefix(a, "--"+RestartFlag+"=") {
			continue
		}
		out = append(out, a)
	}
	return append(out, fmt.Sprintf("--%s=%d", RestartFlag, next))
}

// Relaunch starts exe again when the exit code calls for it. It reports
// whether a new process was started.
func Relaunch(exe string, args []string, code, restartCount int) bool {
	if !ShouldRestart(code, restartCount) {
		if code != ExitClean {
			logger.Error("Restart limit reached", "exit_code", code, "restart_count", restartCount)
		}
		return false
	}
	next := restartCount + 1
	logger.Info("Scheduling restart", "attempt", next, "max", MaxRestarts, "exit_code", code)
	cmd := exec.Command(exe, RestartArgs(args, next)...)
	if err := cmd.Start(); err != nil {
		logger.Error("Restart failed", "error", err)
		return false
	}
	_ = cmd.Process.Release()
	return true
}
