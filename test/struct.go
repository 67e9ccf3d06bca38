package test

import (
	"errors"
	"fmt"
	"sync"

	"github.com/loopcontext/rcscript"
)

// ErrWriteFailed is returned by FailingWriter once its budget is spent.
var ErrWriteFailed = errors.New("write failed")

// RecordingObserver keeps every diagnostic as "lang|kind|id".
type RecordingObserver struct {
	mu      sync.Mutex
	Ignored []string
	Skipped []string
}

func eventKey(lang rcscript.Lang, kind rcscript.Kind, id rcscript.IDOrName) string {
	return fmt.Sprintf("%s|%s|%s", lang, kind, id)
}

func (o *RecordingObserver) OnIgnoredIdentifier(lang rcscript.Lang, kind rcscript.Kind, id rcscript.IDOrName) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Ignored = append(o.Ignored, eventKey(lang, kind, id))
}

func (o *RecordingObserver) OnResourceSkipped(lang rcscript.Lang, kind rcscript.Kind, id rcscript.IDOrName) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Skipped = append(o.Skipped, eventKey(lang, kind, id))
}

// IgnoredCount returns the number of ignored-identifier events.
func (o *RecordingObserver) IgnoredCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.Ignored)
}

// PanickingObserver panics on every event.
type PanickingObserver struct{}

func (PanickingObserver) OnIgnoredIdentifier(rcscript.Lang, rcscript.Kind, rcscript.IDOrName) {
	panic("observer failure")
}

func (PanickingObserver) OnResourceSkipped(rcscript.Lang, rcscript.Kind, rcscript.IDOrName) {
	panic("observer failure")
}

// FailingWriter accepts Budget bytes, then fails every write.
type FailingWriter struct {
	Budget  int
	Written []byte
}

func (w *FailingWriter) Write(p []byte) (int, error) {
	if len(w.Written)+len(p) > w.Budget {
		return 0, ErrWriteFailed
	}
	w.Written = append(w.Written, p...)
	return len(p), nil
}
