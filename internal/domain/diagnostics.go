package domain

import (
	"fmt"
	"sync"
)

// Diagnostics accumulates non-fatal warnings (timestamp fallbacks, translation
// failures) raised while a document is produced. Safe for concurrent use:
// translation fragments report from worker goroutines. A nil receiver is a
// no-op sink.
type Diagnostics struct {
	mu       sync.Mutex
	warnings []string
}

func (d *Diagnostics) Warnf(format string, args ...any) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}

func (d *Diagnostics) Warnings() []string {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.warnings))
	copy(out, d.warnings)
	return out
}

func (d *Diagnostics) Count() int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.warnings)
}
