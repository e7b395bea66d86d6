// Package crash logs failures with enough context to diagnose them later and
// decides whether the process should relaunch itself.
package crash

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oukeidos/quickpaths/internal/apperrors"
	"github.com/oukeidos/quickpaths/internal/display"
	"github.com/oukeidos/quickpaths/internal/logger"
)

// Process exit codes.
const (
	ExitClean        = 0
	ExitRunFailure   = 1
	ExitFatalUI      = 2
	ExitProcessPanic = 3
)

// maxCauses bounds how much of an error chain is logged.
const maxCauses = 5

// Classify reports whether a recovered panic value is fatal. Memory faults
// and errors tagged fatal are; everything else is logged and survived.
func Classify(r any) bool {
	switch v := r.(type) {
	case runtime.Error:
		msg := v.Error()
		return strings.Contains(msg, "invalid memory address") || strings.Contains(msg, "out of memory")
	case error:
		return apperrors.IsFatal(v)
	default:
		return false
	}
}

// State is the widget state captured in a crash report.
type State struct {
	Expanded   bool
	DialogOpen bool
	Left, Top  int
	Virtual    display.Rect
}

// Session identifies one process run in the log.
type Session struct {
	ID           string
	Started      time.Time
	RestartCount int

	state func() State
	now   func() time.Time
}

// NewSession starts a session with a fresh random id.
func NewSession(restartCount int) *Session {
	return &Session{
		ID:           uuid.NewString(),
		Started:      time.Now(),
		RestartCount: restartCount,
		now:          time.Now,
	}
}

// SetState registers the callback that reports widget state. It must be safe
// to call from the goroutine that reports the crash.
func (s *Session) SetState(fn func() State) {
	s.state = fn
}

// Uptime is the time since the session started.
func (s *Session) Uptime() time.Duration {
	return s.now().Sub(s.Started)
}

// Report logs a recovered panic: its type and message, up to five nested
// causes, the stack and a snapshot of the process.
func (s *Session) Report(scope string, r any, stack []byte) {
	logger.Error("Recovered panic",
		"scope", scope,
		"type", fmt.Sprintf("%T", r),
		"message", fmt.Sprint(r),
		"fatal", Classify(r),
	)
	if err, ok := r.(error); ok {
		logCauses(err)
	}
	if len(stack) > 0 {
		logger.Error("Stack trace", "stack", string(stack))
	}
	s.logContext()
}

// ReportError logs a failure that ended the UI loop without a panic.
func (s *Session) ReportError(scope string, err error) {
	logger.Error("Run failed", "scope", scope, "type", fmt.Sprintf("%T", err), "error", err)
	logCauses(err)
	s.logContext()
}

func logCauses(err error) {
	cause := errors.Unwrap(err)
	for depth := 0; cause != nil && depth < maxCauses; depth++ {
		logger.Error("Cause", "depth", depth, "type", fmt.Sprintf("%T", cause), "message", cause.Error())
		cause = errors.Unwrap(cause)
	}
}

func (s *Session) logContext() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	args := []any{
		"pid", os.Getpid(),
		"session", s.ID,
		"restart_count", s.RestartCount,
		"uptime", s.Uptime().Round(time.Millisecond).String(),
		"heap_mb", fmt.Sprintf("%.1f", float64(mem.HeapAlloc)/(1<<20)),
		"goroutines", runtime.NumGoroutine(),
	}
	if s.state != nil {
		st := s.snapshot()
		args = append(args,
			"expanded", st.Expanded,
			"dialog_open", st.DialogOpen,
			"window", fmt.Sprintf("(%d,%d)", st.Left, st.Top),
			"virtual", st.Virtual.String(),
		)
	}
	logger.Error("Crash context", args...)
}

// snapshot calls the state callback, which may itself be broken.
func (s *Session) snapshot() (st State) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("State snapshot failed", "panic", fmt.Sprint(r))
		}
	}()
	return s.state()
}
