package rcscript

type stringEntry struct {
	id   ID
	text string
}

type stringTableItems struct {
	extraInfo *ExtraInfo
	strings   []stringEntry
}

type stringTableData struct {
	items LangSpecific[stringTableItems]
}

// StringTableBuilder collects the strings of a STRINGTABLE resource. Strings
// declared for a language replace the universal set for that language.
type StringTableBuilder struct {
	data *stringTableData
}

// NewStringTable starts a string table.
func NewStringTable() *StringTableBuilder {
	return &StringTableBuilder{data: &stringTableData{}}
}

// String adds a universal string.
func (b *StringTableBuilder) String(id ID, s string) *StringTableBuilder {
	items := b.data.items.universalRef()
	items.strings = append(items.strings, stringEntry{id: id, text: s})
	return b
}

// LangString adds a string for lang only.
func (b *StringTableBuilder) LangString(lang Lang, id ID, s string) *StringTableBuilder {
	items := b.data.items.langRef(lang)
	items.strings = append(items.strings, stringEntry{id: id, text: s})
	return b
}

// ExtraInfo sets the universal CHARACTERISTICS and VERSION values.
func (b *StringTableBuilder) ExtraInfo(ei ExtraInfo) *StringTableBuilder {
	b.data.items.universalRef().extraInfo = &ei
	return b
}

// LangExtraInfo sets CHARACTERISTICS and VERSION for lang only.
func (b *StringTableBuilder) LangExtraInfo(lang Lang, ei ExtraInfo) *StringTableBuilder {
	b.data.items.langRef(lang).extraInfo = &ei
	return b
}

// Build returns the resource. The builder must not be used afterwards.
func (b *StringTableBuilder) Build() Resource {
	r := Resource{kind: KindStringTable, strings: b.data}
	b.data = nil
	return r
}

func (d *stringTableData) missingFor(lang Lang) bool {
	return !d.items.Has(lang)
}

func (d *stringTableData) writeHeaderExtras(w *scriptWriter, lang Lang) {
	items := mustGet(&d.items, lang)
	w.extraInfo(items.extraInfo)
}

func (d *stringTableData) writeBody(w *scriptWriter, lang Lang) {
	items := mustGet(&d.items, lang)
	w.str("{\n")
	for _, s := range items.strings {
		w.str("\t")
		w.str(s.id.String())
		w.str(", ")
		w.narrow(s.text)
		w.str("\n")
	}
	w.str("}\n")
}
