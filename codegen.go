package rcscript

import (
	"fmt"
	"unicode/utf8"

	"github.com/loopcontext/rcscript/internal/rcstr"
)

const scriptHeader = "// Resource script automatically generated by rcscript.\n" +
	"// Do not edit this file manually.\n" +
	"\n" +
	"#pragma code_page(65001)\n"

// scriptWriter accumulates the script text of one language.
type scriptWriter struct {
	buf         []byte
	diag        diagnostics
	resolvePath func(string) (string, error)
}

func (w *scriptWriter) str(s string)      { w.buf = append(w.buf, s...) }
func (w *scriptWriter) narrow(s string)   { w.buf = rcstr.AppendNarrow(w.buf, s) }
func (w *scriptWriter) wide(s string)     { w.buf = rcstr.AppendWide(w.buf, s) }
func (w *scriptWriter) dword(v uint32)    { w.str(rcstr.Long(v)) }
func (w *scriptWriter) cInt(v int32)      { w.str(rcstr.LongInt(v)) }
func (w *scriptWriter) word(v uint16)     { w.str(rcstr.Word(v)) }
func (w *scriptWriter) short(v int16)     { w.str(rcstr.Short(v)) }
func (w *scriptWriter) byteValue(v uint8) { w.str(rcstr.Byte(v)) }

func (w *scriptWriter) indent(depth int) {
	for range depth {
		w.buf = append(w.buf, '\t')
	}
}

func (w *scriptWriter) idOrName(x IDOrName) {
	if name, ok := x.NameValue(); ok {
		w.narrow(name)
		return
	}
	id, _ := x.ID()
	w.str(id.String())
}

// typeName writes a user-defined resource type. Names that are plain
// identifiers are written bare, anything else as a narrow literal.
func (w *scriptWriter) typeName(x IDOrName) {
	name, ok := x.NameValue()
	if !ok || !isIdentifier(name) {
		w.idOrName(x)
		return
	}
	w.str(name)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func (w *scriptWriter) path(p string) error {
	abs, err := w.resolvePath(p)
	if err != nil {
		return fmt.Errorf("resolve path %q: %w", p, err)
	}
	if !utf8.ValidString(abs) {
		return fmt.Errorf("path %q: %w", abs, ErrInvalidPath)
	}
	w.buf = rcstr.AppendPreferNarrow(w.buf, abs)
	return nil
}

func (w *scriptWriter) rect(r Rect) {
	w.short(r.X)
	w.str(", ")
	w.short(r.Y)
	w.str(", ")
	w.short(r.Width)
	w.str(", ")
	w.short(r.Height)
}

func (w *scriptWriter) extraInfo(ei *ExtraInfo) {
	if ei == nil {
		return
	}
	if ei.Characteristics != nil {
		w.str(" ")
		w.dword(*ei.Characteristics)
	}
	if ei.Version != nil {
		w.str(" ")
		w.dword(*ei.Version)
	}
}

func (w *scriptWriter) styleStatement(style, exStyle *uint32) {
	if style != nil {
		w.str("STYLE ")
		w.dword(*style)
	}
	if style != nil && exStyle != nil {
		w.str(" ")
	}
	if exStyle != nil {
		w.str("EXSTYLE ")
		w.dword(*exStyle)
	}
}

func (w *scriptWriter) resourceHeader(lang Lang, id IDOrName, r Resource) {
	w.str("LANGUAGE ")
	w.str(lang.String())
	w.str("\n")
	switch r.kind {
	case KindStringTable:
		if !id.ignorable() {
			w.diag.ignoredIdentifier(lang, r.kind, id)
		}
	case KindVersionInfo:
		if id.Compare(Num(1)) != 0 && !id.ignorable() {
			w.diag.ignoredIdentifier(lang, r.kind, id)
		}
		w.str("1 ")
	default:
		w.idOrName(id)
		w.str(" ")
	}
	if r.kind == KindUserDefined {
		w.typeName(r.userType)
	} else {
		w.str(r.kind.String())
	}
	w.str(" ")
}

func mustGet[T any](ls *LangSpecific[T], lang Lang) T {
	v, ok := ls.Get(lang)
	if !ok {
		panic("unreachable: no data for language " + lang.String())
	}
	return v
}

// resourceData is implemented by the builder-generated resource kinds.
type resourceData interface {
	missingFor(lang Lang) bool
	writeHeaderExtras(w *scriptWriter, lang Lang)
	writeBody(w *scriptWriter, lang Lang)
}

func (d *menuData) writeHeaderExtras(*scriptWriter, Lang) {}

// data returns nil for path-referenced resources. A builder kind without data
// comes from a builder whose Build was already called.
func (r Resource) data() resourceData {
	var (
		d  resourceData
		ok bool
	)
	switch r.kind {
	case KindStringTable:
		d, ok = r.strings, r.strings != nil
	case KindAccelerators:
		d, ok = r.accelerators, r.accelerators != nil
	case KindMenu:
		d, ok = r.menu, r.menu != nil
	case KindDialog:
		d, ok = r.dialog, r.dialog != nil
	case KindVersionInfo:
		d, ok = r.versionInfo, r.versionInfo != nil
	case KindRCData:
		d, ok = r.inline, r.inline != nil
	case KindUserDefined:
		if r.inline == nil {
			return nil
		}
		d, ok = r.inline, true
	default:
		return nil
	}
	if !ok {
		panic("rcscript: " + r.kind.String() + " resource has no data; was Build called twice?")
	}
	return d
}

// writeResource renders r for lang. The only error is a failed path resolution.
func (w *scriptWriter) writeResource(lang Lang, id IDOrName, r Resource) error {
	d := r.data()
	if d == nil {
		w.resourceHeader(lang, id, r)
		w.str(" ")
		if err := w.path(r.path); err != nil {
			return err
		}
		w.str("\n")
		w.diag.resourceWritten(lang)
		return nil
	}
	if d.missingFor(lang) {
		w.diag.resourceSkipped(lang, r.kind, id)
		return nil
	}
	w.resourceHeader(lang, id, r)
	d.writeHeaderExtras(w, lang)
	w.str("\n")
	d.writeBody(w, lang)
	w.diag.resourceWritten(lang)
	return nil
}
