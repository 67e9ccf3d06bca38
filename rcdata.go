package rcscript

type rcItemKind uint8

const (
	rcItemWord rcItemKind = iota
	rcItemDword
	rcItemString
	rcItemWideString
)

// RCItem is one literal of an RCDATA or user-defined block.
type RCItem struct {
	kind  rcItemKind
	value uint32
	text  string
}

// RCWord is a 16-bit literal.
func RCWord(v uint16) RCItem { return RCItem{kind: rcItemWord, value: uint32(v)} }

// RCDword is a 32-bit literal.
func RCDword(v uint32) RCItem { return RCItem{kind: rcItemDword, value: v} }

// RCString is a narrow string literal. Its bytes are written as given.
func RCString(s string) RCItem { return RCItem{kind: rcItemString, text: s} }

// RCWideString is a wide string literal. Invalid UTF-8 is written as U+FFFD.
func RCWideString(s string) RCItem { return RCItem{kind: rcItemWideString, text: s} }

type rcInlineData struct {
	extraInfo LangSpecific[ExtraInfo]
	items     LangSpecific[[]RCItem]
}

// RCDataBuilder collects an inline RCDATA or user-defined block. Items declared
// for a language replace the universal items for that language.
type RCDataBuilder struct {
	kind     Kind
	userType IDOrName
	data     *rcInlineData
}

// NewRCData starts an RCDATA block.
func NewRCData() *RCDataBuilder {
	return &RCDataBuilder{kind: KindRCData, data: &rcInlineData{}}
}

// NewUserDefined starts an inline block of a custom resource type.
func NewUserDefined(typ IDOrName) *RCDataBuilder {
	return &RCDataBuilder{kind: KindUserDefined, userType: typ, data: &rcInlineData{}}
}

// Item appends universal items.
func (b *RCDataBuilder) Item(items ...RCItem) *RCDataBuilder {
	ref := b.data.items.universalRef()
	*ref = append(*ref, items...)
	return b
}

// LangItem appends items for lang only.
func (b *RCDataBuilder) LangItem(lang Lang, items ...RCItem) *RCDataBuilder {
	ref := b.data.items.langRef(lang)
	*ref = append(*ref, items...)
	return b
}

// ExtraInfo sets the universal CHARACTERISTICS and VERSION values.
func (b *RCDataBuilder) ExtraInfo(ei ExtraInfo) *RCDataBuilder {
	b.data.extraInfo.SetUniversal(ei)
	return b
}

// LangExtraInfo sets CHARACTERISTICS and VERSION for lang.
func (b *RCDataBuilder) LangExtraInfo(lang Lang, ei ExtraInfo) *RCDataBuilder {
	b.data.extraInfo.Set(lang, ei)
	return b
}

// Build returns the resource. The builder must not be used afterwards.
func (b *RCDataBuilder) Build() Resource {
	r := Resource{kind: b.kind, userType: b.userType, inline: b.data}
	b.data = nil
	return r
}

func (d *rcInlineData) missingFor(lang Lang) bool {
	return !d.items.Has(lang)
}

func (d *rcInlineData) writeHeaderExtras(w *scriptWriter, lang Lang) {
	if ei, ok := d.extraInfo.Get(lang); ok {
		w.extraInfo(&ei)
	}
}

func (d *rcInlineData) writeBody(w *scriptWriter, lang Lang) {
	items := mustGet(&d.items, lang)
	w.str("{\n")
	for i, it := range items {
		w.str("\t")
		switch it.kind {
		case rcItemWord:
			w.word(uint16(it.value))
		case rcItemDword:
			w.dword(it.value)
		case rcItemString:
			w.narrow(it.text)
		case rcItemWideString:
			w.wide(it.text)
		}
		if i < len(items)-1 {
			w.str(",")
		}
		w.str("\n")
	}
	w.str("}\n")
}
