package host

import (
	"errors"
	"fmt"

	"github.com/sqweek/dialog"

	"github.com/oukeidos/quickpaths/internal/apperrors"
	"github.com/oukeidos/quickpaths/internal/logger"
)

// DefaultPickerTitle is shown on the folder dialog.
const DefaultPickerTitle = "Choose a folder"

var errPickerAborted = errors.New("folder picker aborted")

// Runner schedules fn under a scope name used for panic reporting.
type Runner func(scope string, fn func())

// Picker shows the native folder dialog on a background goroutine and hands
// the result back through Do.
type Picker struct {
	Title string

	// Go runs the blocking dialog; Do delivers the result on the UI goroutine.
	Go Runner
	Do Runner

	browse func(title string) (string, error)
}

// NewPicker returns a picker backed by the native dialog.
func NewPicker(goFn, doFn Runner) *Picker {
	return &Picker{
		Title:  DefaultPickerTitle,
		Go:     goFn,
		Do:     doFn,
		browse: browseDirectory,
	}
}

func browseDirectory(title string) (string, error) {
	return dialog.Directory().Title(title).Browse()
}

// PickFolders opens the dialog and calls done exactly once, even when the
// dialog goroutine panics.
func (p *Picker) PickFolders(done func([]string, error)) {
	p.Go("picker.browse", func() {
		var picked []string
		err := errPickerAborted
		defer func() {
			p.Do("picker.done", func() { done(picked, err) })
		}()
		picked, err = p.pick()
	})
}

func (p *Picker) pick() ([]string, error) {
	dir, err := p.browse(p.Title)
	if errors.Is(err, dialog.ErrCancelled) {
		logger.Debug("Folder picker cancelled")
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.External(fmt.Errorf("browse folders: %w", err))
	}
	if dir == "" {
		return nil, nil
	}
	return []string{dir}, nil
}

// ShowInfo displays a native information box.
func ShowInfo(title, message string) {
	dialog.Message("%s", message).Title(title).Info()
}

// ShowError displays a native error box.
func ShowError(title, message string) {
	dialog.Message("%s", message).Title(title).Error()
}

// AskYesNo displays a native yes/no question.
func AskYesNo(title, message string) bool {
	return dialog.Message("%s", message).Title(title).YesNo()
}
