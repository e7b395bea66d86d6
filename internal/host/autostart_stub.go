//go:build !windows && !linux

package host

const autostartDescription = "unsupported"

func installAutostart(string) error { return ErrUnsupported }

func uninstallAutostart() error { return nil }

func removeLegacyTasks() {}

func stopOtherInstances(string) {}
