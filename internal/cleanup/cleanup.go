package cleanup

import (
	"errors"
	"fmt"
	"sync"
)

// Stack runs release hooks in LIFO order. The zero value is ready to use.
type Stack struct {
	mu    sync.Mutex
	hooks []hook
}

type hook struct {
	name string
	fn   func() error
}

// Register adds a named cleanup hook.
func (s *Stack) Register(name string, fn func() error) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.hooks = append(s.hooks, hook{name: name, fn: fn})
	s.mu.Unlock()
}

// Len reports how many hooks are pending.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hooks)
}

// RunAll executes all registered hooks and returns a combined error if any fail.
// Hooks run at most once; a second call is a no-op. A panicking hook is
// reported as an error and the remaining hooks still run.
func (s *Stack) RunAll() error {
	s.mu.Lock()
	local := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	var errs []error
	for i := len(local) - 1; i >= 0; i-- {
		if err := runHook(local[i]); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("cleanup failed: %w", errors.Join(errs...))
}

func runHook(h hook) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", h.name, r)
		}
	}()
	if err := h.fn(); err != nil {
		return fmt.Errorf("%s: %w", h.name, err)
	}
	return nil
}
