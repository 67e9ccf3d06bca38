package rcscript

import "go.uber.org/zap"

// Observer receives non-fatal events while a script is generated. Calls are made
// synchronously from the rendering goroutine, so with Config.Parallel set they
// may arrive concurrently. A panicking observer is ignored.
type Observer interface {
	// OnIgnoredIdentifier is called when a resource whose identifier the script
	// drops was declared with a meaningful one.
	OnIgnoredIdentifier(lang Lang, kind Kind, id IDOrName)
	// OnResourceSkipped is called when a resource has nothing declared for lang.
	OnResourceSkipped(lang Lang, kind Kind, id IDOrName)
}

func safeObserverCall(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

type diagnostics struct {
	observer Observer
	log      *zap.Logger
	stats    *buildStats
}

func (d diagnostics) resourceWritten(lang Lang) {
	if d.stats != nil {
		d.stats.incrementWritten(lang)
	}
}

func (d diagnostics) ignoredIdentifier(lang Lang, kind Kind, id IDOrName) {
	d.log.Warn("expected ignorable id or name, ignored",
		zap.Stringer("lang", lang),
		zap.Stringer("kind", kind),
		zap.Stringer("id", id),
	)
	if d.stats != nil {
		d.stats.incrementIgnored(lang, kind, id)
	}
	if d.observer != nil {
		safeObserverCall(func() {
			d.observer.OnIgnoredIdentifier(lang, kind, id)
		})
	}
}

func (d diagnostics) resourceSkipped(lang Lang, kind Kind, id IDOrName) {
	d.log.Debug("nothing declared for language, resource skipped",
		zap.Stringer("lang", lang),
		zap.Stringer("kind", kind),
		zap.Stringer("id", id),
	)
	if d.stats != nil {
		d.stats.incrementSkipped(lang, kind, id)
	}
	if d.observer != nil {
		safeObserverCall(func() {
			d.observer.OnResourceSkipped(lang, kind, id)
		})
	}
}
