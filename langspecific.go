package rcscript

import "iter"

// LangSpecific holds one value per language plus an optional universal value.
// Lookups for a language without its own entry fall back to the universal one.
type LangSpecific[T any] struct {
	universal *T
	langs     map[Lang]*T
}

// SetUniversal stores the value used by every language without its own entry.
func (ls *LangSpecific[T]) SetUniversal(v T) {
	ls.universal = &v
}

// Set stores the value for lang, replacing any earlier one.
func (ls *LangSpecific[T]) Set(lang Lang, v T) {
	if ls.langs == nil {
		ls.langs = make(map[Lang]*T)
	}
	ls.langs[lang] = &v
}

// Get returns the entry for lang, else the universal entry.
func (ls *LangSpecific[T]) Get(lang Lang) (T, bool) {
	if v, ok := ls.langs[lang]; ok {
		return *v, true
	}
	if ls.universal != nil {
		return *ls.universal, true
	}
	var zero T
	return zero, false
}

// Has reports whether Get(lang) would find a value.
func (ls *LangSpecific[T]) Has(lang Lang) bool {
	_, ok := ls.Get(lang)
	return ok
}

// IsEmpty reports whether nothing was ever stored.
func (ls *LangSpecific[T]) IsEmpty() bool {
	return ls.universal == nil && len(ls.langs) == 0
}

func (ls *LangSpecific[T]) universalRef() *T {
	if ls.universal == nil {
		ls.universal = new(T)
	}
	return ls.universal
}

func (ls *LangSpecific[T]) langRef(lang Lang) *T {
	if ls.langs == nil {
		ls.langs = make(map[Lang]*T)
	}
	v, ok := ls.langs[lang]
	if !ok {
		v = new(T)
		ls.langs[lang] = v
	}
	return v
}

type langEntry[T any] struct {
	lang      Lang
	universal bool
	value     T
}

// LangList is an append-only list whose entries are either universal or bound to
// one language. A lookup yields universal entries merged with the entries of the
// requested language, in insertion order.
type LangList[T any] struct {
	entries []langEntry[T]
}

// AppendUniversal adds v for every language.
func (ll *LangList[T]) AppendUniversal(v T) {
	ll.entries = append(ll.entries, langEntry[T]{universal: true, value: v})
}

// Append adds v for lang only.
func (ll *LangList[T]) Append(lang Lang, v T) {
	ll.entries = append(ll.entries, langEntry[T]{lang: lang, value: v})
}

// Iter yields the values visible to lang.
func (ll *LangList[T]) Iter(lang Lang) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range ll.entries {
			if !e.universal && e.lang != lang {
				continue
			}
			if !yield(e.value) {
				return
			}
		}
	}
}

// Values collects Iter(lang).
func (ll *LangList[T]) Values(lang Lang) []T {
	var out []T
	for v := range ll.Iter(lang) {
		out = append(out, v)
	}
	return out
}

// Has reports whether any value is visible to lang.
func (ll *LangList[T]) Has(lang Lang) bool {
	for range ll.Iter(lang) {
		return true
	}
	return false
}

// Len returns the number of entries across all languages.
func (ll *LangList[T]) Len() int {
	return len(ll.entries)
}
