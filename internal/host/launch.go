package host

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/oukeidos/quickpaths/internal/apperrors"
	"github.com/oukeidos/quickpaths/internal/logger"
)

// DefaultTool is the command alternate mode runs in the chosen folder.
const DefaultTool = "claude"

// Launcher opens a terminal running Tool in a folder.
type Launcher struct {
	Tool  string
	GOOS  string
	start func(cmd *exec.Cmd) error
}

// NewLauncher returns a launcher for the running platform.
func NewLauncher() *Launcher {
	return &Launcher{Tool: DefaultTool, GOOS: runtime.GOOS, start: startDetached}
}

func (l *Launcher) Launch(dir string) error {
	cmd := l.Command(dir)
	if err := l.start(cmd); err != nil {
		return apperrors.External(fmt.Errorf("start %s: %w", cmd.Path, err))
	}
	logger.Info("Launched tool", "tool", l.Tool, "dir", dir)
	return nil
}

// Command builds the terminal invocation for dir.
func (l *Launcher) Command(dir string) *exec.Cmd {
	var cmd *exec.Cmd
	switch l.GOOS {
	case "windows":
		script := fmt.Sprintf("cd '%s'; %s", quotePowerShell(dir), l.Tool)
		cmd = exec.Command("powershell.exe", "-NoExit", "-Command", script)
	case "darwin":
		cmd = exec.Command("open", "-a", "Terminal", dir)
	default:
		cmd = exec.Command("x-terminal-emulator", "-e", l.Tool)
	}
	cmd.Dir = dir
	return cmd
}

// quotePowerShell escapes s for use inside a single-quoted string.
func quotePowerShell(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func startDetached(cmd *exec.Cmd) error {
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
