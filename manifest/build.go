package manifest

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"go.uber.org/multierr"

	"github.com/loopcontext/rcscript"
)

// ErrNoLanguages is returned for a manifest without languages.
var ErrNoLanguages = errors.New("manifest declares no languages")

// converter turns manifest values into builders and collects every problem
// it finds instead of stopping at the first.
type converter struct {
	langs    map[string]rcscript.Lang
	declared []rcscript.Lang
	messages *messageCatalog
	errs     error
}

func (c *converter) fail(where string, err error) {
	c.errs = multierr.Append(c.errs, fmt.Errorf("%s: %w", where, err))
}

func (c *converter) lang(where, tag string) (rcscript.Lang, bool) {
	if l, ok := c.langs[tag]; ok {
		return l, true
	}
	l, err := rcscript.ParseLang(tag)
	if err != nil {
		c.fail(where, err)
		return rcscript.Lang{}, false
	}
	for _, d := range c.declared {
		if d == l {
			c.langs[tag] = l
			return l, true
		}
	}
	c.fail(where, fmt.Errorf("language %q is not declared", tag))
	return rcscript.Lang{}, false
}

func (c *converter) text(where string, t Text) rcscript.Text {
	if t.Message != "" {
		if c.messages == nil {
			c.fail(where, fmt.Errorf("message %q used but no message files are listed", t.Message))
			return rcscript.NoText()
		}
		out, err := c.messages.text(t.Message)
		if err != nil {
			c.fail(where, err)
		}
		return out
	}
	out := rcscript.NoText()
	if t.Universal != nil {
		out = rcscript.T(*t.Universal)
	}
	for _, tag := range sortedKeys(t.Langs) {
		if l, ok := c.lang(where, tag); ok {
			out = out.Lang(l, t.Langs[tag])
		}
	}
	return out
}

func (c *converter) id(where string, v int) rcscript.ID {
	id, err := rcscript.IDFromInt(v)
	if err != nil {
		c.fail(where, err)
	}
	return id
}

func (c *converter) ident(where string, x Ident) rcscript.IDOrName {
	v, err := x.Value()
	if err != nil {
		c.fail(where, err)
	}
	return v
}

func (c *converter) rect(where string, v []int) rcscript.Rect {
	if len(v) != 4 {
		c.fail(where, fmt.Errorf("rect needs 4 values, got %d", len(v)))
		return rcscript.Rect{}
	}
	var out [4]int16
	for i, n := range v {
		if n < math.MinInt16 || n > math.MaxInt16 {
			c.fail(where, fmt.Errorf("rect value %d out of range", n))
			return rcscript.Rect{}
		}
		out[i] = int16(n)
	}
	return rcscript.Rect{X: out[0], Y: out[1], Width: out[2], Height: out[3]}
}

func (c *converter) version(where string, v []uint16) rcscript.Version {
	var out rcscript.Version
	if len(v) > len(out) {
		c.fail(where, fmt.Errorf("version has %d parts, at most %d allowed", len(v), len(out)))
		return out
	}
	copy(out[:], v)
	return out
}

// Build converts the manifest into a document. All problems are returned
// together, combined with multierr.
func (m *Manifest) Build() (*rcscript.Build, error) {
	if len(m.Languages) == 0 {
		return nil, ErrNoLanguages
	}
	c := &converter{langs: make(map[string]rcscript.Lang, len(m.Languages))}
	for i, tag := range m.Languages {
		l, err := rcscript.ParseLang(tag)
		if err != nil {
			c.fail(fmt.Sprintf("languages[%d]", i), err)
			continue
		}
		c.langs[tag] = l
		if !slices.Contains(c.declared, l) {
			c.declared = append(c.declared, l)
		}
	}
	if c.errs != nil {
		return nil, c.errs
	}
	if len(m.Messages) > 0 {
		cat, err := loadMessages(c.declared, m.Messages, m.ResolvePath)
		if err != nil {
			return nil, err
		}
		c.messages = cat
	}

	b := rcscript.New(c.declared...)
	for i := range m.Resources {
		r := &m.Resources[i]
		where := fmt.Sprintf("resources[%d] (id %s)", i, r.ID)
		if !r.ID.IsSet() {
			c.fail(where, errors.New("id is required"))
			continue
		}
		res, ok := c.resource(where, r)
		if !ok {
			continue
		}
		id := c.ident(where, r.ID)
		if r.Lang == "" {
			b.Resource(id, res)
			continue
		}
		if l, ok := c.lang(where, r.Lang); ok {
			b.LangResource(l, id, res)
		}
	}
	if c.errs != nil {
		return nil, c.errs
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}

func (c *converter) extraInfo(r *Resource) (rcscript.ExtraInfo, bool) {
	ei := rcscript.ExtraInfo{Characteristics: r.Characteristics, Version: r.Version}
	return ei, ei.Characteristics != nil || ei.Version != nil
}

func (c *converter) resource(where string, r *Resource) (rcscript.Resource, bool) {
	var (
		out        rcscript.Resource
		kinds      int
		takesExtra bool
	)
	set := func(res rcscript.Resource, extra bool) {
		kinds++
		out, takesExtra = res, extra
	}
	for _, p := range []struct {
		path string
		make func(string) rcscript.Resource
	}{
		{r.Bitmap, rcscript.BitmapFile},
		{r.Cursor, rcscript.CursorFile},
		{r.Font, rcscript.FontFile},
		{r.HTML, rcscript.HTMLFile},
		{r.Icon, rcscript.IconFile},
		{r.MessageTable, rcscript.MessageTableFile},
	} {
		if p.path != "" {
			set(p.make(p.path), false)
		}
	}
	if r.StringTable != nil {
		set(c.stringTable(where, r), true)
	}
	if len(r.Accelerators) > 0 {
		set(c.accelerators(where, r), true)
	}
	if len(r.Menu) > 0 {
		set(c.menu(where, r.Menu), false)
	}
	if r.Dialog != nil {
		set(c.dialog(where, r), true)
	}
	if r.VersionInfo != nil {
		set(c.versionInfo(where, r.VersionInfo), false)
	}
	if len(r.RCData) > 0 {
		b := rcscript.NewRCData().Item(c.dataItems(where, r.RCData)...)
		if ei, ok := c.extraInfo(r); ok {
			b.ExtraInfo(ei)
		}
		set(b.Build(), true)
	}
	if r.User != nil {
		set(c.user(where, r), r.User.File == "")
	}

	switch kinds {
	case 0:
		c.fail(where, errors.New("no resource kind given"))
		return out, false
	case 1:
	default:
		c.fail(where, fmt.Errorf("%d resource kinds given, want exactly one", kinds))
		return out, false
	}
	if _, ok := c.extraInfo(r); ok && !takesExtra {
		c.fail(where, fmt.Errorf("%s resources take no characteristics or version", out.Kind()))
	}
	return out, true
}

type stringRow struct {
	id   rcscript.ID
	text string
}

// stringTable writes a single universal table when every string is plain
// text. Otherwise each declared language gets its own complete table, since a
// language table replaces the universal one.
func (c *converter) stringTable(where string, r *Resource) rcscript.Resource {
	st := r.StringTable
	b := rcscript.NewStringTable()
	ei, hasEI := c.extraInfo(r)

	type entry struct {
		id    rcscript.ID
		text  rcscript.Text
		plain *string
	}
	entries := make([]entry, 0, len(st.Strings))
	perLang := len(st.Lang) > 0
	for i, e := range st.Strings {
		w := fmt.Sprintf("%s strings[%d]", where, i)
		if e.Text.IsZero() {
			c.fail(w, errors.New("text is required"))
			continue
		}
		perLang = perLang || e.Text.Message != "" || len(e.Text.Langs) > 0
		entries = append(entries, entry{id: c.id(w, e.ID), text: c.text(w, e.Text), plain: e.Text.Universal})
	}

	if !perLang {
		if hasEI {
			b.ExtraInfo(ei)
		}
		for _, e := range entries {
			b.String(e.id, *e.plain)
		}
		return b.Build()
	}

	overrides := make(map[rcscript.Lang][]stringRow, len(st.Lang))
	for _, tag := range sortedKeys(st.Lang) {
		l, ok := c.lang(where, tag)
		if !ok {
			continue
		}
		for i, e := range st.Lang[tag] {
			w := fmt.Sprintf("%s lang[%s][%d]", where, tag, i)
			id := c.id(w, e.ID)
			if s, ok := c.text(w, e.Text).Get(l); ok {
				overrides[l] = append(overrides[l], stringRow{id: id, text: s})
			}
		}
	}

	for _, l := range c.declared {
		rows := make([]stringRow, 0, len(entries))
		for _, e := range entries {
			if s, ok := e.text.Get(l); ok {
				rows = append(rows, stringRow{id: e.id, text: s})
			}
		}
		rows = mergeRows(rows, overrides[l])
		if len(rows) == 0 {
			continue
		}
		for _, row := range rows {
			b.LangString(l, row.id, row.text)
		}
		if hasEI {
			b.LangExtraInfo(l, ei)
		}
	}
	return b.Build()
}

// mergeRows replaces rows with the same id and appends the rest.
func mergeRows(rows, extra []stringRow) []stringRow {
	for _, x := range extra {
		replaced := false
		for i := range rows {
			if rows[i].id == x.id {
				rows[i].text = x.text
				replaced = true
				break
			}
		}
		if !replaced {
			rows = append(rows, x)
		}
	}
	return rows
}

// accelerators follows the string table rule: once any event is tied to a
// language, every declared language gets a complete table of the universal
// events plus its own, in declaration order.
func (c *converter) accelerators(where string, r *Resource) rcscript.Resource {
	type row struct {
		id   rcscript.ID
		ev   rcscript.Event
		lang *rcscript.Lang
	}
	rows := make([]row, 0, len(r.Accelerators))
	perLang := false
	for i, a := range r.Accelerators {
		w := fmt.Sprintf("%s accelerators[%d]", where, i)
		ev, ok := c.event(w, a)
		if !ok {
			continue
		}
		x := row{id: c.id(w, a.ID), ev: ev}
		if a.Lang != "" {
			l, ok := c.lang(w, a.Lang)
			if !ok {
				continue
			}
			x.lang = &l
			perLang = true
		}
		rows = append(rows, x)
	}

	b := rcscript.NewAccelerators()
	ei, hasEI := c.extraInfo(r)
	if !perLang {
		if hasEI {
			b.ExtraInfo(ei)
		}
		for _, x := range rows {
			b.Event(x.id, x.ev)
		}
		return b.Build()
	}
	for _, l := range c.declared {
		n := 0
		for _, x := range rows {
			if x.lang == nil || *x.lang == l {
				b.LangEvent(l, x.id, x.ev)
				n++
			}
		}
		if n > 0 && hasEI {
			b.LangExtraInfo(l, ei)
		}
	}
	return b.Build()
}

func (c *converter) event(where string, a Accelerator) (rcscript.Event, bool) {
	mods, err := parseMods(a.Mods)
	if err != nil {
		c.fail(where, err)
		return rcscript.Event{}, false
	}
	switch {
	case a.Key != "" && a.VK.IsSet():
		c.fail(where, errors.New("key and vk are mutually exclusive"))
	case a.Key != "":
		if len(a.Key) != 1 {
			c.fail(where, fmt.Errorf("key %q must be a single character", a.Key))
			return rcscript.Event{}, false
		}
		key, err := rcscript.NewASCIIKey(a.Key[0])
		if err != nil {
			c.fail(where, err)
			return rcscript.Event{}, false
		}
		mod, err := mods.ascii()
		if err != nil {
			c.fail(where, err)
			return rcscript.Event{}, false
		}
		return rcscript.ASCIIKeyEvent(key, mod), true
	case a.VK.IsSet():
		vk, err := parseVirtKey(a.VK)
		if err != nil {
			c.fail(where, err)
			return rcscript.Event{}, false
		}
		return rcscript.VirtKeyEvent(vk, mods.virt()), true
	default:
		c.fail(where, errors.New("key or vk is required"))
	}
	return rcscript.Event{}, false
}

// menuAdder is implemented by both menu and popup builders.
type menuAdder interface {
	addItem(id rcscript.ID, t rcscript.Text)
	addPopup(t rcscript.Text, fn func(*rcscript.PopupBuilder))
	addSeparator()
	addComplexItem(it rcscript.MenuItem)
	addComplexPopup(it rcscript.MenuItem, fn func(*rcscript.PopupBuilder))
}

type menuRoot struct{ b *rcscript.MenuBuilder }

func (m menuRoot) addItem(id rcscript.ID, t rcscript.Text) {
	m.b.Item(id, t)
}

func (m menuRoot) addPopup(t rcscript.Text, fn func(*rcscript.PopupBuilder)) {
	m.b.Popup(t, fn)
}

func (m menuRoot) addSeparator() {
	m.b.Separator()
}

func (m menuRoot) addComplexItem(it rcscript.MenuItem) {
	m.b.ComplexItem(it)
}

func (m menuRoot) addComplexPopup(it rcscript.MenuItem, fn func(*rcscript.PopupBuilder)) {
	m.b.ComplexPopup(it, fn)
}

type menuPopup struct{ b *rcscript.PopupBuilder }

func (m menuPopup) addItem(id rcscript.ID, t rcscript.Text) {
	m.b.Item(id, t)
}

func (m menuPopup) addPopup(t rcscript.Text, fn func(*rcscript.PopupBuilder)) {
	m.b.Popup(t, fn)
}

func (m menuPopup) addSeparator() {
	m.b.Separator()
}

func (m menuPopup) addComplexItem(it rcscript.MenuItem) {
	m.b.ComplexItem(it)
}

func (m menuPopup) addComplexPopup(it rcscript.MenuItem, fn func(*rcscript.PopupBuilder)) {
	m.b.ComplexPopup(it, fn)
}

func (c *converter) menu(where string, items []MenuItem) rcscript.Resource {
	b := rcscript.NewMenu()
	c.menuItems(where+" menu", menuRoot{b}, items)
	return b.Build()
}

func (c *converter) menuItems(where string, dst menuAdder, items []MenuItem) {
	for i := range items {
		it := &items[i]
		w := fmt.Sprintf("%s[%d]", where, i)
		if it.Separator {
			if it.ID != nil || !it.Text.IsZero() || len(it.Popup) > 0 {
				c.fail(w, errors.New("separator takes no id, text or popup"))
			}
			dst.addSeparator()
			continue
		}
		typ, err := parseMenuFlags(it.Type, menuTypes, "type")
		if err != nil {
			c.fail(w, err)
		}
		state, err := parseMenuFlags(it.State, menuStates, "state")
		if err != nil {
			c.fail(w, err)
		}
		text := c.text(w, it.Text)
		complexItem := typ != 0 || state != 0 || (len(it.Popup) > 0 && it.ID != nil)

		if len(it.Popup) > 0 {
			fill := func(p *rcscript.PopupBuilder) {
				if it.HelpID != nil {
					p.HelpID(*it.HelpID)
				}
				c.menuItems(w+" popup", menuPopup{p}, it.Popup)
			}
			if complexItem || it.HelpID != nil {
				mi := rcscript.MenuItem{Text: text, Type: typ, State: state}
				if it.ID != nil {
					mi.ID = rcscript.Ptr(c.id(w, *it.ID))
				}
				dst.addComplexPopup(mi, fill)
			} else {
				dst.addPopup(text, fill)
			}
			continue
		}

		if it.HelpID != nil {
			c.fail(w, errors.New("help_id is only valid on popups"))
		}
		if it.ID == nil {
			c.fail(w, errors.New("id is required for menu items"))
			continue
		}
		id := c.id(w, *it.ID)
		if complexItem {
			dst.addComplexItem(rcscript.MenuItem{ID: rcscript.Ptr(id), Text: text, Type: typ, State: state})
		} else {
			dst.addItem(id, text)
		}
	}
}

func (c *converter) font(f FontSpec) rcscript.Font {
	out := rcscript.NewFont(f.Size, f.Face)
	out.Weight = rcscript.FontWeight(f.Weight)
	out.Italic = f.Italic
	if f.Charset != nil {
		out.Charset = rcscript.FontCharset(*f.Charset)
	}
	return out
}

func (c *converter) dialog(where string, r *Resource) rcscript.Resource {
	d := r.Dialog
	where += " dialog"
	b := rcscript.NewDialog()
	if ei, ok := c.extraInfo(r); ok {
		b.ExtraInfo(ei)
	}
	if d.Rect != nil {
		b.Rect(c.rect(where+" rect", d.Rect))
	}
	for _, tag := range sortedKeys(d.LangRect) {
		if l, ok := c.lang(where, tag); ok {
			b.LangRect(l, c.rect(where+" lang_rect", d.LangRect[tag]))
		}
	}
	if d.HelpID != nil {
		b.HelpID(*d.HelpID)
	}
	if !d.Caption.IsZero() {
		b.Caption(c.text(where+" caption", d.Caption))
	}
	if d.Font != nil {
		b.Font(c.font(*d.Font))
	}
	for _, tag := range sortedKeys(d.LangFont) {
		if l, ok := c.lang(where, tag); ok {
			b.LangFont(l, c.font(d.LangFont[tag]))
		}
	}
	if d.Class.IsSet() {
		b.Class(c.ident(where+" class", d.Class))
	}
	if d.Menu.IsSet() {
		b.Menu(c.ident(where+" menu", d.Menu))
	}
	if d.Style != nil {
		b.Style(*d.Style)
	}
	if d.ExStyle != nil {
		b.ExStyle(*d.ExStyle)
	}

	for i, ctl := range d.Controls {
		w := fmt.Sprintf("%s controls[%d]", where, i)
		t, err := parseControlTemplate(ctl.Type)
		if err != nil {
			c.fail(w, err)
			continue
		}
		out := rcscript.Control{
			Template: t,
			ID:       c.id(w, ctl.ID),
			Text:     c.text(w, ctl.Text),
			Class:    ctl.Class,
			Style:    ctl.Style,
			ExStyle:  ctl.ExStyle,
		}
		if ctl.Image.IsSet() {
			out.Image = rcscript.Ptr(c.ident(w+" image", ctl.Image))
		}
		if ctl.Rect != nil {
			out.Rect = rcscript.Ptr(c.rect(w+" rect", ctl.Rect))
		}
		if t.Keyword == rcscript.TemplateControl.Keyword && ctl.Class == "" {
			c.fail(w, errors.New("control needs a class"))
		}
		if ctl.Lang == "" {
			b.Control(out)
			continue
		}
		if l, ok := c.lang(w, ctl.Lang); ok {
			b.LangControl(l, out)
		}
	}
	return b.Build()
}

func (c *converter) versionInfo(where string, v *VersionInfo) rcscript.Resource {
	where += " versioninfo"
	b := rcscript.NewVersionInfo()
	if v.FileVersion != nil {
		b.FileVersion(c.version(where+" file_version", v.FileVersion))
	}
	if v.ProductVersion != nil {
		b.ProductVersion(c.version(where+" product_version", v.ProductVersion))
	}
	if v.FileFlagsMask != nil {
		b.FileFlagsMask(*v.FileFlagsMask)
	}
	if v.FileFlags != nil {
		b.FileFlags(*v.FileFlags)
	}
	if v.FileOS != nil {
		b.FileOS(*v.FileOS)
	}
	if v.FileType != nil {
		b.FileType(*v.FileType)
	}
	if v.FileSubtype != nil {
		b.FileSubtype(*v.FileSubtype)
	}
	for _, name := range sortedKeys(v.Strings) {
		f, err := rcscript.ParseVersionField(name)
		if err != nil {
			c.fail(where, err)
			continue
		}
		b.Field(f, c.text(where+" "+name, v.Strings[name]))
	}
	return b.Build()
}

func (c *converter) dataItems(where string, items []DataItem) []rcscript.RCItem {
	out := make([]rcscript.RCItem, 0, len(items))
	for i, it := range items {
		var (
			n    int
			item rcscript.RCItem
		)
		if it.U16 != nil {
			n, item = n+1, rcscript.RCWord(*it.U16)
		}
		if it.U32 != nil {
			n, item = n+1, rcscript.RCDword(*it.U32)
		}
		if it.Str != nil {
			n, item = n+1, rcscript.RCString(*it.Str)
		}
		if it.WStr != nil {
			n, item = n+1, rcscript.RCWideString(*it.WStr)
		}
		if n != 1 {
			c.fail(fmt.Sprintf("%s data[%d]", where, i), fmt.Errorf("%d values given, want exactly one", n))
			continue
		}
		out = append(out, item)
	}
	return out
}

func (c *converter) user(where string, r *Resource) rcscript.Resource {
	u := r.User
	where += " user"
	if !u.Type.IsSet() {
		c.fail(where, errors.New("type is required"))
	}
	typ := c.ident(where+" type", u.Type)
	switch {
	case u.File != "" && len(u.Data) > 0:
		c.fail(where, errors.New("file and data are mutually exclusive"))
	case u.File != "":
		return rcscript.UserDefinedFile(typ, u.File)
	}
	b := rcscript.NewUserDefined(typ).Item(c.dataItems(where, u.Data)...)
	if ei, ok := c.extraInfo(r); ok {
		b.ExtraInfo(ei)
	}
	return b.Build()
}
