package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNonInteractive is returned when a question needs an answer but stdin is
// not a terminal.
var ErrNonInteractive = errors.New("non-interactive stdin")

type Confirmer struct {
	In            io.Reader
	Out           io.Writer
	IsInteractive func() bool
}

func DefaultConfirmer() Confirmer {
	return Confirmer{
		In:  os.Stdin,
		Out: os.Stdout,
		IsInteractive: func() bool {
			info, err := os.Stdin.Stat()
			if err != nil {
				return false
			}
			return (info.Mode() & os.ModeCharDevice) != 0
		},
	}
}

// Interactive reports whether questions can be asked on this confirmer.
func (c Confirmer) Interactive() bool {
	return c.IsInteractive != nil && c.IsInteractive()
}

// Confirm asks a yes/no question. Only "y" or "yes" count as consent.
func (c Confirmer) Confirm(question string) (bool, error) {
	if !c.Interactive() {
		return false, ErrNonInteractive
	}
	if c.Out != nil {
		fmt.Fprintf(c.Out, "%s (y/n): ", question)
	}
	reader := bufio.NewReader(c.In)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}

// ConfirmPurge asks whether the saved favorites and window position should be
// deleted. force skips the question.
func (c Confirmer) ConfirmPurge(files []string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if !c.Interactive() {
		return false, fmt.Errorf("%w: use --purge to delete user data", ErrNonInteractive)
	}
	if c.Out != nil {
		fmt.Fprintln(c.Out, "Delete user data (saved paths and window position)?")
		for _, f := range files {
			fmt.Fprintf(c.Out, "  %s\n", f)
		}
	}
	return c.Confirm("Delete")
}
