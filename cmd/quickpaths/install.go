package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oukeidos/quickpaths/internal/apperrors"
	"github.com/oukeidos/quickpaths/internal/host"
	"github.com/oukeidos/quickpaths/internal/prompt"
	"github.com/oukeidos/quickpaths/internal/store"
)

const (
	installTitle   = "QuickPaths Install"
	uninstallTitle = "QuickPaths Uninstall"
)

type autostarter interface {
	Install() error
	Uninstall() error
	Start() error
	Dir() string
	Description() string
}

// Replaced in tests.
var (
	newAutostart = func() (autostarter, error) { return host.NewAutostart() }
	newConfirmer = func(cmd *cobra.Command) prompt.Confirmer {
		c := prompt.DefaultConfirmer()
		c.In = cmd.InOrStdin()
		c.Out = cmd.OutOrStdout()
		return c
	}
	showInfo  = host.ShowInfo
	showError = host.ShowError
	askYesNo  = host.AskYesNo
)

func installApp(cmd *cobra.Command, opts *rootOptions) error {
	confirm := newConfirmer(cmd)
	a, err := newAutostart()
	if err == nil {
		err = a.Install()
	}
	if err != nil {
		notifyError(confirm, cmd.ErrOrStderr(), installTitle, "Install failed: "+apperrors.PublicMessage(err))
		return err
	}
	if err := a.Start(); err != nil {
		notifyError(confirm, cmd.ErrOrStderr(), installTitle, "Installed, but the widget could not be started: "+apperrors.PublicMessage(err))
		return err
	}
	notify(confirm, installTitle, fmt.Sprintf(
		"QuickPaths installed successfully!\n\n  Auto-start: Enabled (%s)\n  Location: %s\n\nThe floating dot should appear on your desktop.",
		a.Description(), a.Dir()))
	return nil
}

func uninstallApp(cmd *cobra.Command, opts *rootOptions) error {
	confirm := newConfirmer(cmd)
	a, err := newAutostart()
	if err == nil {
		err = a.Uninstall()
	}
	if err != nil {
		notifyError(confirm, cmd.ErrOrStderr(), uninstallTitle, "Uninstall failed: "+apperrors.PublicMessage(err))
		return err
	}

	dir, err := resolveDataDir(opts.dataDir)
	if err != nil {
		return err
	}
	st := store.New(dir)
	purge, err := confirm.ConfirmPurge(st.DataFiles(), opts.purge)
	if errors.Is(err, prompt.ErrNonInteractive) {
		purge, err = askYesNo(uninstallTitle, "Delete user data (saved paths and window position)?"), nil
	}
	if err != nil {
		return err
	}

	var lines []string
	lines = append(lines, "QuickPaths uninstalled.", "", "  Auto-start: Removed")
	if purge {
		if err := st.Purge(); err != nil {
			notifyError(confirm, cmd.ErrOrStderr(), uninstallTitle, "Could not delete user data: "+apperrors.PublicMessage(err))
			return err
		}
		lines = append(lines, "  User data: Deleted")
	} else {
		lines = append(lines, "  User data: Kept in "+dir)
	}
	notify(confirm, uninstallTitle, strings.Join(lines, "\n"))
	return nil
}

// notify prints to the terminal when there is one and shows a native message
// box otherwise, since the installer is usually started from a shortcut.
func notify(c prompt.Confirmer, title, message string) {
	if c.Interactive() && c.Out != nil {
		fmt.Fprintln(c.Out, message)
		return
	}
	showInfo(title, message)
}

func notifyError(c prompt.Confirmer, errOut io.Writer, title, message string) {
	if c.Interactive() {
		fmt.Fprintln(errOut, message)
		return
	}
	showError(title, message)
}
