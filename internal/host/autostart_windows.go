//go:build windows

package host

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/oukeidos/quickpaths/internal/logger"
)

const (
	runKey           = `SOFTWARE\Microsoft\Windows\CurrentVersion\Run`
	keepAliveTask    = "QuickPaths_KeepAlive"
	legacyWatchdog   = "QuickPaths_Watchdog"
	legacyStartupVBS = "QuickPaths.vbs"
	helperTimeout    = 5 * time.Second
)

const autostartDescription = "registry + keepalive task"

// runHidden runs a helper without a console window, waiting at most
// helperTimeout.
func runHidden(name string, args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), helperTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true, CreationFlags: windows.CREATE_NO_WINDOW}
	out, err := cmd.CombinedOutput()
	if err != nil {
		logger.Debug("Helper failed", "cmd", name, "args", args, "output", string(out), "error", err)
	}
	return err
}

func installAutostart(exe string) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open run key: %w", err)
	}
	defer k.Close()
	if err := k.SetStringValue(AppName, `"`+exe+`"`); err != nil {
		return fmt.Errorf("set run value: %w", err)
	}

	if err := runHidden("schtasks", "/Create", "/TN", keepAliveTask,
		"/SC", "MINUTE", "/MO", "5", "/TR", `"`+exe+`"`, "/F"); err != nil {
		logger.Warn("Failed to create keepalive task", "task", keepAliveTask, "error", err)
	}
	return nil
}

func uninstallAutostart() error {
	var errs []error
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err == nil {
		if err := k.DeleteValue(AppName); err != nil && !errors.Is(err, registry.ErrNotExist) {
			errs = append(errs, fmt.Errorf("delete run value: %w", err))
		}
		k.Close()
	}
	_ = runHidden("schtasks", "/Delete", "/TN", keepAliveTask, "/F")
	return errors.Join(errs...)
}

func removeLegacyTasks() {
	_ = runHidden("schtasks", "/Delete", "/TN", legacyWatchdog, "/F")
	removeIfExists(filepath.Join(startupFolder(), legacyStartupVBS))
}

// stopOtherInstances kills every other process running the same image.
func stopOtherInstances(exe string) {
	image := filepath.Base(exe)
	filter := "PID ne " + strconv.Itoa(os.Getpid())
	_ = runHidden("taskkill", "/F", "/IM", image, "/FI", filter)
	time.Sleep(500 * time.Millisecond)
}
