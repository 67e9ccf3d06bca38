package rcscript

// MenuType holds MFT_* flags. Flags combine with |.
type MenuType uint32

const (
	MenuTypeBitmap       MenuType = 0x4
	MenuTypeMenuBarBreak MenuType = 0x20
	MenuTypeMenuBreak    MenuType = 0x40
	MenuTypeOwnerDraw    MenuType = 0x100
	MenuTypeRadioCheck   MenuType = 0x200
	MenuTypeSeparator    MenuType = 0x800
	MenuTypeRightOrder   MenuType = 0x2000
	MenuTypeRightJustify MenuType = 0x4000
)

// MenuState holds MFS_* flags. Flags combine with |.
type MenuState uint32

const (
	MenuStateDisabled    MenuState = 0x3
	MenuStateChecked     MenuState = 0x8
	MenuStateHighlighted MenuState = 0x80
	MenuStateDefault     MenuState = 0x1000
)

// MenuItem describes an item added with ComplexItem or ComplexPopup.
type MenuItem struct {
	ID    *ID
	Text  Text
	Type  MenuType
	State MenuState
}

type popupData struct {
	helpID *int32
	items  []menuItem
}

type menuItem struct {
	id    *ID
	text  Text
	typ   MenuType
	state MenuState
	popup *popupData
}

type menuData struct {
	items []menuItem
}

// MenuBuilder collects the items of a MENUEX resource.
type MenuBuilder struct {
	data *menuData
}

// PopupBuilder collects the items of a popup.
type PopupBuilder struct {
	data *popupData
}

// NewMenu starts a menu.
func NewMenu() *MenuBuilder {
	return &MenuBuilder{data: &menuData{}}
}

func buildPopup(fn func(*PopupBuilder)) *popupData {
	p := &PopupBuilder{data: &popupData{}}
	if fn != nil {
		fn(p)
	}
	return p.data
}

func separatorItem() menuItem {
	return menuItem{text: T(""), typ: MenuTypeSeparator}
}

func complexItem(it MenuItem, popup *popupData) menuItem {
	return menuItem{id: it.ID, text: it.Text, typ: it.Type, state: it.State, popup: popup}
}

// Item adds a command item.
func (b *MenuBuilder) Item(id ID, text Text) *MenuBuilder {
	b.data.items = append(b.data.items, menuItem{id: &id, text: text})
	return b
}

// Popup adds a submenu filled by fn.
func (b *MenuBuilder) Popup(text Text, fn func(*PopupBuilder)) *MenuBuilder {
	b.data.items = append(b.data.items, menuItem{text: text, popup: buildPopup(fn)})
	return b
}

// Separator adds a separator line, shown in every language.
func (b *MenuBuilder) Separator() *MenuBuilder {
	b.data.items = append(b.data.items, separatorItem())
	return b
}

// ComplexItem adds an item with explicit flags.
func (b *MenuBuilder) ComplexItem(it MenuItem) *MenuBuilder {
	b.data.items = append(b.data.items, complexItem(it, nil))
	return b
}

// ComplexPopup adds a submenu with explicit flags.
func (b *MenuBuilder) ComplexPopup(it MenuItem, fn func(*PopupBuilder)) *MenuBuilder {
	b.data.items = append(b.data.items, complexItem(it, buildPopup(fn)))
	return b
}

// Build returns the resource. The builder must not be used afterwards.
func (b *MenuBuilder) Build() Resource {
	r := Resource{kind: KindMenu, menu: b.data}
	b.data = nil
	return r
}

// HelpID sets the popup's help context identifier.
func (b *PopupBuilder) HelpID(id int32) *PopupBuilder {
	b.data.helpID = &id
	return b
}

// Item adds a command item.
func (b *PopupBuilder) Item(id ID, text Text) *PopupBuilder {
	b.data.items = append(b.data.items, menuItem{id: &id, text: text})
	return b
}

// Popup adds a nested submenu filled by fn.
func (b *PopupBuilder) Popup(text Text, fn func(*PopupBuilder)) *PopupBuilder {
	b.data.items = append(b.data.items, menuItem{text: text, popup: buildPopup(fn)})
	return b
}

// Separator adds a separator line, shown in every language.
func (b *PopupBuilder) Separator() *PopupBuilder {
	b.data.items = append(b.data.items, separatorItem())
	return b
}

// ComplexItem adds an item with explicit flags.
func (b *PopupBuilder) ComplexItem(it MenuItem) *PopupBuilder {
	b.data.items = append(b.data.items, complexItem(it, nil))
	return b
}

// ComplexPopup adds a nested submenu with explicit flags.
func (b *PopupBuilder) ComplexPopup(it MenuItem, fn func(*PopupBuilder)) *PopupBuilder {
	b.data.items = append(b.data.items, complexItem(it, buildPopup(fn)))
	return b
}

// A menu exists for a language when at least one top-level item has text in it.
func (d *menuData) missingFor(lang Lang) bool {
	for _, it := range d.items {
		if _, ok := it.text.Get(lang); ok {
			return false
		}
	}
	return true
}

func (d *menuData) writeBody(w *scriptWriter, lang Lang) {
	w.str("{\n")
	for i := range d.items {
		writeMenuItem(w, lang, &d.items[i], 1)
	}
	w.str("}\n")
}

func writeMenuItem(w *scriptWriter, lang Lang, it *menuItem, depth int) {
	text, ok := it.text.Get(lang)
	if !ok {
		return
	}
	w.indent(depth)
	if it.popup != nil {
		w.str("POPUP ")
	} else {
		w.str("MENUITEM ")
	}
	w.narrow(text)

	hasID := it.id != nil
	hasType := it.typ != 0
	hasState := it.state != 0
	hasHelpID := it.popup != nil && it.popup.helpID != nil
	if hasID || hasType || hasState || hasHelpID {
		w.str(", ")
	}
	if hasID {
		w.str(it.id.String())
	}
	if hasType || hasState || hasHelpID {
		w.str(", ")
	}
	if hasType {
		w.dword(uint32(it.typ))
	}
	if hasState || hasHelpID {
		w.str(", ")
	}
	if hasState {
		w.dword(uint32(it.state))
	}
	if hasHelpID {
		w.str(", ")
		w.cInt(*it.popup.helpID)
	}
	w.str("\n")

	if it.popup == nil {
		return
	}
	w.indent(depth)
	w.str("{\n")
	for i := range it.popup.items {
		writeMenuItem(w, lang, &it.popup.items[i], depth+1)
	}
	w.indent(depth)
	w.str("}\n")
}
