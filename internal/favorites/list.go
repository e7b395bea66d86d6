// Package favorites holds the ordered list of saved folders shown in the
// expanded panel.
package favorites

import "strings"

// Entry is a saved folder. Path is the identity; Name is the display label.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// SamePath compares two folder paths the way the host filesystem does for
// favorites: case-insensitively.
func SamePath(a, b string) bool {
	return strings.EqualFold(a, b)
}

// NameFor derives a display label from the final path segment. Roots such as
// "C:\" or "/" have no segment and keep the whole path.
func NameFor(path string) string {
	trimmed := strings.TrimRight(path, `/\`)
	if trimmed == "" {
		return path
	}
	if i := strings.LastIndexAny(trimmed, `/\`); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	if trimmed == "" || strings.HasSuffix(trimmed, ":") {
		return path
	}
	return trimmed
}

// List is the ordered favorites collection. Order is significant: index 0
// is shown first and the home path, when present, is pinned there.
//
// List is not safe for concurrent use; it is owned by the UI goroutine.
type List struct {
	home    string
	entries []Entry

	// OnChange is called with a copy of the entries after every mutation that
	// changes order or membership.
	OnChange func([]Entry)
}

// New returns a list seeded with entries. Duplicate paths after the first
// occurrence are dropped. home may be empty when no pinned folder exists.
func New(home string, entries []Entry) *List {
	l := &List{home: home}
	l.entries = dedup(entries)
	return l
}

func dedup(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Path) == "" {
			continue
		}
		if indexOf(out, e.Path) >= 0 {
			continue
		}
		out = append(out, e)
	}
	return out
}

func indexOf(entries []Entry, path string) int {
	for i, e := range entries {
		if SamePath(e.Path, path) {
			return i
		}
	}
	return -1
}

// Home returns the pinned path.
func (l *List) Home() string { return l.home }

// Len returns the number of entries.
func (l *List) Len() int { return len(l.entries) }

// Entries returns a copy of the entries in display order.
func (l *List) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Index returns the position of path, or -1.
func (l *List) Index(path string) int {
	return indexOf(l.entries, path)
}

func (l *List) isHome(path string) bool {
	return l.home != "" && SamePath(path, l.home)
}

func (l *List) changed() {
	if l.OnChange != nil {
		l.OnChange(l.Entries())
	}
}

// Add inserts path at the front. It returns false and leaves the list
// untouched when the path is already present.
func (l *List) Add(path string) bool {
	if strings.TrimSpace(path) == "" || l.Index(path) >= 0 {
		return false
	}
	l.entries = append([]Entry{{Name: NameFor(path), Path: path}}, l.entries...)
	l.changed()
	return true
}

// AddAll adds every path not already present, each at the front, and fires
// OnChange once. It returns the number added.
func (l *List) AddAll(paths []string) int {
	hook := l.OnChange
	l.OnChange = nil
	added := 0
	for _, p := range paths {
		if l.Add(p) {
			added++
		}
	}
	l.OnChange = hook
	if added > 0 {
		l.changed()
	}
	return added
}

// Remove deletes the entry for path. Absent paths are ignored.
func (l *List) Remove(path string) {
	i := l.Index(path)
	if i < 0 {
		return
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	l.changed()
}

// MoveUp swaps the entry with its predecessor.
func (l *List) MoveUp(path string) {
	i := l.Index(path)
	if i <= 0 {
		return
	}
	l.entries[i-1], l.entries[i] = l.entries[i], l.entries[i-1]
	l.changed()
}

// PromoteRecent moves a just-used entry to the front, or to index 1 when the
// home path holds index 0. The home entry itself is never promoted; it keeps
// its pinned slot.
func (l *List) PromoteRecent(path string) {
	if l.isHome(path) {
		return
	}
	i := l.Index(path)
	if i < 0 {
		return
	}
	target := 0
	if len(l.entries) > 0 && l.isHome(l.entries[0].Path) {
		target = 1
	}
	if i == target {
		return
	}
	e := l.entries[i]
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	if target > len(l.entries) {
		target = len(l.entries)
	}
	l.entries = append(l.entries[:target], append([]Entry{e}, l.entries[target:]...)...)
	l.changed()
}

// PruneMissing removes entries whose folder no longer exists and returns how
// many were removed. OnChange fires only when something was removed.
func (l *List) PruneMissing(exists func(string) bool) int {
	kept := l.entries[:0]
	removed := 0
	for _, e := range l.entries {
		if exists(e.Path) {
			kept = append(kept, e)
			continue
		}
		removed++
	}
	l.entries = kept
	if removed > 0 {
		l.changed()
	}
	return removed
}

// EnsureHomeFirst relocates the home entry to index 0. It reports whether the
// list changed.
func (l *List) EnsureHomeFirst() bool {
	if !l.ensureHomeFirst() {
		return false
	}
	l.changed()
	return true
}

func (l *List) ensureHomeFirst() bool {
	if l.home == "" {
		return false
	}
	i := l.Index(l.home)
	if i <= 0 {
		return false
	}
	e := l.entries[i]
	copy(l.entries[1:i+1], l.entries[:i])
	l.entries[0] = e
	return true
}

// Replace swaps in a freshly loaded list (for example after the favorites
// file was edited outside the app). It reports whether the visible order
// differs from before. OnChange fires only when normalising the new entries
// (dedup, home first) altered them, so an unmodified file is not rewritten.
func (l *List) Replace(entries []Entry) bool {
	next := dedup(entries)
	normalised := len(next) != len(entries)
	old := l.entries
	l.entries = next
	if l.ensureHomeFirst() {
		normalised = true
	}
	if normalised {
		l.changed()
	}
	return !Equal(old, l.entries)
}

// Equal reports whether two entry slices hold the same paths and names in the
// same order.
func Equal(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
