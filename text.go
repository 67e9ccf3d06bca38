package rcscript

// Text is display text with an optional universal value and per-language
// overrides.
type Text struct {
	values LangSpecific[string]
}

// T returns text shown in every language without its own override.
func T(s string) Text {
	var t Text
	t.values.SetUniversal(s)
	return t
}

// NoText returns text with no universal value. Items using it appear only in the
// languages given through Lang.
func NoText() Text {
	return Text{}
}

// Lang returns a copy of t with an override for lang.
func (t Text) Lang(lang Lang, s string) Text {
	out := t.clone()
	out.values.Set(lang, s)
	return out
}

// Get resolves the text for lang.
func (t Text) Get(lang Lang) (string, bool) {
	return t.values.Get(lang)
}

func (t Text) clone() Text {
	var out Text
	if t.values.universal != nil {
		out.values.SetUniversal(*t.values.universal)
	}
	for l, v := range t.values.langs {
		out.values.Set(l, *v)
	}
	return out
}
