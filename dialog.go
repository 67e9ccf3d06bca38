package rcscript

// Rect is a position and size in dialog units.
type Rect struct {
	X, Y, Width, Height int16
}

// FontWeight is a FW_* weight.
type FontWeight uint16

const (
	FontWeightDontCare   FontWeight = 0
	FontWeightThin       FontWeight = 100
	FontWeightExtraLight FontWeight = 200
	FontWeightLight      FontWeight = 300
	FontWeightNormal     FontWeight = 400
	FontWeightMedium     FontWeight = 500
	FontWeightSemiBold   FontWeight = 600
	FontWeightBold       FontWeight = 700
	FontWeightExtraBold  FontWeight = 800
	FontWeightHeavy      FontWeight = 900
)

// FontCharset is a *_CHARSET value.
type FontCharset uint8

const (
	CharsetANSI        FontCharset = 0
	CharsetDefault     FontCharset = 1
	CharsetSymbol      FontCharset = 2
	CharsetMac         FontCharset = 77
	CharsetShiftJIS    FontCharset = 128
	CharsetHangul      FontCharset = 129
	CharsetJohab       FontCharset = 130
	CharsetGB2312      FontCharset = 134
	CharsetChineseBig5 FontCharset = 136
	CharsetGreek       FontCharset = 161
	CharsetTurkish     FontCharset = 162
	CharsetVietnamese  FontCharset = 163
	CharsetHebrew      FontCharset = 177
	CharsetArabic      FontCharset = 178
	CharsetBaltic      FontCharset = 186
	CharsetRussian     FontCharset = 204
	CharsetThai        FontCharset = 222
	CharsetEastEurope  FontCharset = 238
	CharsetOEM         FontCharset = 255
)

// Font is the FONT statement of a dialog.
type Font struct {
	PointSize uint16
	Typeface  string
	Weight    FontWeight
	Italic    bool
	Charset   FontCharset
}

// NewFont returns a regular font with the default charset.
func NewFont(pointSize uint16, typeface string) Font {
	return Font{PointSize: pointSize, Typeface: typeface, Charset: CharsetDefault}
}

// ControlTemplate describes a dialog control statement.
type ControlTemplate struct {
	// Keyword starts the statement.
	Keyword string
	// UsesText is set when the statement takes a text argument.
	UsesText bool
	// UsesSize is unset when width and height may be omitted.
	UsesSize bool
	// Class is the window class the keyword implies; empty for the generic
	// CONTROL statement, which takes the class explicitly.
	Class string
}

func (t ControlTemplate) generic() bool { return t.Class == "" }

var (
	TemplateControl         = ControlTemplate{Keyword: "CONTROL", UsesText: true, UsesSize: true}
	TemplateAuto3State      = ControlTemplate{Keyword: "AUTO3STATE", UsesText: true, UsesSize: true, Class: "BUTTON"}
	TemplateAutoCheckBox    = ControlTemplate{Keyword: "AUTOCHECKBOX", UsesText: true, UsesSize: true, Class: "BUTTON"}
	TemplateAutoRadioButton = ControlTemplate{Keyword: "AUTORADIOBUTTON", UsesText: true, UsesSize: true, Class: "BUTTON"}
	TemplateCheckBox        = ControlTemplate{Keyword: "CHECKBOX", UsesText: true, UsesSize: true, Class: "BUTTON"}
	TemplateComboBox        = ControlTemplate{Keyword: "COMBOBOX", UsesSize: true, Class: "COMBOBOX"}
	TemplateCText           = ControlTemplate{Keyword: "CTEXT", UsesText: true, UsesSize: true, Class: "STATIC"}
	TemplateDefPushButton   = ControlTemplate{Keyword: "DEFPUSHBUTTON", UsesText: true, UsesSize: true, Class: "BUTTON"}
	TemplateEditText        = ControlTemplate{Keyword: "EDITTEXT", UsesSize: true, Class: "EDIT"}
	TemplateGroupBox        = ControlTemplate{Keyword: "GROUPBOX", UsesText: true, UsesSize: true, Class: "BUTTON"}
	TemplateIcon            = ControlTemplate{Keyword: "ICON", UsesText: true, Class: "STATIC"}
	TemplateListBox         = ControlTemplate{Keyword: "LISTBOX", UsesSize: true, Class: "LISTBOX"}
	TemplateLText           = ControlTemplate{Keyword: "LTEXT", UsesText: true, UsesSize: true, Class: "STATIC"}
	TemplatePushBox         = ControlTemplate{Keyword: "PUSHBOX", UsesText: true, UsesSize: true, Class: "BUTTON"}
	TemplatePushButton      = ControlTemplate{Keyword: "PUSHBUTTON", UsesText: true, UsesSize: true, Class: "BUTTON"}
	TemplateRadioButton     = ControlTemplate{Keyword: "RADIOBUTTON", UsesText: true, UsesSize: true, Class: "BUTTON"}
	TemplateRText           = ControlTemplate{Keyword: "RTEXT", UsesText: true, UsesSize: true, Class: "STATIC"}
	TemplateScrollBar       = ControlTemplate{Keyword: "SCROLLBAR", UsesSize: true, Class: "SCROLLBAR"}
	TemplateState3          = ControlTemplate{Keyword: "STATE3", UsesText: true, UsesSize: true, Class: "BUTTON"}
)

// Control is one dialog control.
type Control struct {
	Template ControlTemplate
	ID       ID
	// Text is the control text. A language without text renders "".
	Text Text
	// Image references a resource instead of Text, for ICON and image statics.
	Image *IDOrName
	// Rect defaults to an all-zero rectangle.
	Rect *Rect
	// Class is the window class of a generic CONTROL statement.
	Class   string
	Style   *uint32
	ExStyle *uint32
}

type dialogData struct {
	rect      LangSpecific[Rect]
	helpID    LangSpecific[int32]
	extraInfo LangSpecific[ExtraInfo]
	caption   Text
	font      LangSpecific[Font]
	class     *IDOrName
	menu      *IDOrName
	style     *uint32
	exStyle   *uint32
	controls  LangList[Control]
}

// DialogBuilder collects a DIALOGEX resource. Single-valued properties declared
// for a language override the universal value; controls declared for a
// language are shown together with the universal ones.
type DialogBuilder struct {
	data *dialogData
}

// NewDialog starts a dialog.
func NewDialog() *DialogBuilder {
	return &DialogBuilder{data: &dialogData{}}
}

// Rect sets the universal position and size.
func (b *DialogBuilder) Rect(r Rect) *DialogBuilder {
	b.data.rect.SetUniversal(r)
	return b
}

// LangRect sets the position and size for lang.
func (b *DialogBuilder) LangRect(lang Lang, r Rect) *DialogBuilder {
	b.data.rect.Set(lang, r)
	return b
}

// HelpID sets the universal help context identifier.
func (b *DialogBuilder) HelpID(id int32) *DialogBuilder {
	b.data.helpID.SetUniversal(id)
	return b
}

// LangHelpID sets the help context identifier for lang.
func (b *DialogBuilder) LangHelpID(lang Lang, id int32) *DialogBuilder {
	b.data.helpID.Set(lang, id)
	return b
}

// ExtraInfo sets the universal CHARACTERISTICS and VERSION values.
func (b *DialogBuilder) ExtraInfo(ei ExtraInfo) *DialogBuilder {
	b.data.extraInfo.SetUniversal(ei)
	return b
}

// LangExtraInfo sets CHARACTERISTICS and VERSION for lang.
func (b *DialogBuilder) LangExtraInfo(lang Lang, ei ExtraInfo) *DialogBuilder {
	b.data.extraInfo.Set(lang, ei)
	return b
}

// Caption sets the title bar text, replacing any earlier caption.
func (b *DialogBuilder) Caption(t Text) *DialogBuilder {
	b.data.caption = t.clone()
	return b
}

// LangCaption sets the title bar text for lang.
func (b *DialogBuilder) LangCaption(lang Lang, s string) *DialogBuilder {
	b.data.caption.values.Set(lang, s)
	return b
}

// Font sets the universal font.
func (b *DialogBuilder) Font(f Font) *DialogBuilder {
	b.data.font.SetUniversal(f)
	return b
}

// LangFont sets the font for lang.
func (b *DialogBuilder) LangFont(lang Lang, f Font) *DialogBuilder {
	b.data.font.Set(lang, f)
	return b
}

// Class sets the dialog window class.
func (b *DialogBuilder) Class(c IDOrName) *DialogBuilder {
	b.data.class = &c
	return b
}

// Menu sets the menu shown by the dialog.
func (b *DialogBuilder) Menu(m IDOrName) *DialogBuilder {
	b.data.menu = &m
	return b
}

// Style sets the window style.
func (b *DialogBuilder) Style(style uint32) *DialogBuilder {
	b.data.style = &style
	return b
}

// ExStyle sets the extended window style.
func (b *DialogBuilder) ExStyle(style uint32) *DialogBuilder {
	b.data.exStyle = &style
	return b
}

// Control adds a control shown in every language.
func (b *DialogBuilder) Control(c Control) *DialogBuilder {
	b.data.controls.AppendUniversal(c)
	return b
}

// LangControl adds a control shown in lang only.
func (b *DialogBuilder) LangControl(lang Lang, c Control) *DialogBuilder {
	b.data.controls.Append(lang, c)
	return b
}

// Build returns the resource. The builder must not be used afterwards.
func (b *DialogBuilder) Build() Resource {
	r := Resource{kind: KindDialog, dialog: b.data}
	b.data = nil
	return r
}

// A dialog exists for a language when its rectangle, caption or a control
// resolves for it.
func (d *dialogData) missingFor(lang Lang) bool {
	return !d.rect.Has(lang) && !d.caption.values.Has(lang) && !d.controls.Has(lang)
}

func (d *dialogData) writeHeaderExtras(w *scriptWriter, lang Lang) {
	if r, ok := d.rect.Get(lang); ok {
		w.rect(r)
	} else {
		w.rect(Rect{})
	}
	if id, ok := d.helpID.Get(lang); ok {
		w.str(", ")
		w.cInt(id)
	}
	if ei, ok := d.extraInfo.Get(lang); ok {
		w.extraInfo(&ei)
	}
	if c, ok := d.caption.Get(lang); ok {
		w.str("\nCAPTION ")
		w.narrow(c)
	}
	if d.class != nil {
		w.str("\nCLASS ")
		w.idOrName(*d.class)
	}
	if f, ok := d.font.Get(lang); ok {
		w.str("\nFONT ")
		w.word(f.PointSize)
		w.str(", ")
		w.narrow(f.Typeface)
		w.str(", ")
		w.word(uint16(f.Weight))
		w.str(", ")
		if f.Italic {
			w.str("1")
		} else {
			w.str("0")
		}
		w.str(", ")
		w.byteValue(uint8(f.Charset))
	}
	if d.menu != nil {
		w.str("\nMENU ")
		w.idOrName(*d.menu)
	}
	if d.style != nil || d.exStyle != nil {
		w.str("\n")
		w.styleStatement(d.style, d.exStyle)
	}
}

func (d *dialogData) writeBody(w *scriptWriter, lang Lang) {
	w.str("{\n")
	for c := range d.controls.Iter(lang) {
		writeControl(w, lang, &c)
	}
	w.str("}\n")
}

func writeControl(w *scriptWriter, lang Lang, c *Control) {
	t := c.Template
	w.str("\t")
	w.str(t.Keyword)
	w.str(" ")
	if t.UsesText {
		switch {
		case c.Image != nil:
			w.idOrName(*c.Image)
		default:
			text, _ := c.Text.Get(lang)
			w.narrow(text)
		}
		w.str(", ")
	}
	w.str(c.ID.String())
	if t.generic() {
		w.str(", ")
		w.narrow(c.Class)
		w.str(", ")
		w.dword(valueOr(c.Style, 0))
	}

	var r Rect
	if c.Rect != nil {
		r = *c.Rect
	}
	w.str(", ")
	hasStyle := !t.generic() && (c.Style != nil || c.ExStyle != nil)
	if t.UsesSize || hasStyle {
		w.rect(r)
	} else {
		w.short(r.X)
		w.str(", ")
		w.short(r.Y)
	}

	if hasStyle {
		w.str(", ")
		w.dword(valueOr(c.Style, 0))
	}
	if c.ExStyle != nil {
		w.str(", ")
		w.dword(*c.ExStyle)
	}
	w.str("\n")
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
