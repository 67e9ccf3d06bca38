package rcscript

import (
	"fmt"
	"strconv"
)

// ASCIIKey is a printable character (32 to 126) used as an accelerator key.
type ASCIIKey uint8

// NewASCIIKey validates b as an accelerator character.
func NewASCIIKey(b byte) (ASCIIKey, error) {
	if b < 32 || b > 126 {
		return 0, fmt.Errorf("provided value %d is not a printable ascii key", b)
	}
	return ASCIIKey(b), nil
}

// MustASCIIKey is like NewASCIIKey but panics on invalid input.
func MustASCIIKey(b byte) ASCIIKey {
	k, err := NewASCIIKey(b)
	if err != nil {
		panic(err)
	}
	return k
}

// VirtKey is a virtual-key code. The constants below are a small subset; any
// platform VK_* value can be converted directly.
type VirtKey int32

const (
	VKBack     VirtKey = 0x08
	VKTab      VirtKey = 0x09
	VKReturn   VirtKey = 0x0D
	VKEscape   VirtKey = 0x1B
	VKSpace    VirtKey = 0x20
	VKPrior    VirtKey = 0x21
	VKNext     VirtKey = 0x22
	VKEnd      VirtKey = 0x23
	VKHome     VirtKey = 0x24
	VKLeft     VirtKey = 0x25
	VKUp       VirtKey = 0x26
	VKRight    VirtKey = 0x27
	VKDown     VirtKey = 0x28
	VKInsert   VirtKey = 0x2D
	VKDelete   VirtKey = 0x2E
	VKNum0     VirtKey = 0x30
	VKLetterA  VirtKey = 0x41
	VKF1       VirtKey = 0x70
	VKEreof    VirtKey = 0xF9
	VKPlay     VirtKey = 0xFA
	VKZoom     VirtKey = 0xFB
	VKNoName   VirtKey = 0xFC
	VKPA1      VirtKey = 0xFD
	VKOEMClear VirtKey = 0xFE
)

// VKDigit returns the key for digit d (0-9).
func VKDigit(d int) VirtKey { return VKNum0 + VirtKey(d) }

// VKLetter returns the key for the upper-case letter c.
func VKLetter(c byte) VirtKey { return VKLetterA + VirtKey(c-'A') }

// VKFunction returns the key for function key Fn (1-24).
func VKFunction(n int) VirtKey { return VKF1 + VirtKey(n-1) }

// Modifier is a modifier combination for virtual-key events.
type Modifier uint8

const (
	ModNone Modifier = iota
	ModCtrl
	ModAlt
	ModShift
	ModCtrlAlt
	ModCtrlShift
	ModAltShift
	ModCtrlAltShift
)

var modifierTokens = [...]string{
	ModNone:         "",
	ModCtrl:         ", CONTROL",
	ModAlt:          ", ALT",
	ModShift:        ", SHIFT",
	ModCtrlAlt:      ", CONTROL, ALT",
	ModCtrlShift:    ", CONTROL, SHIFT",
	ModAltShift:     ", ALT, SHIFT",
	ModCtrlAltShift: ", CONTROL, ALT, SHIFT",
}

func (m Modifier) tokens() string {
	if int(m) < len(modifierTokens) {
		return modifierTokens[m]
	}
	return ""
}

// ASCIIModifier is a modifier combination for character events. Shift is
// expressed by the character itself.
type ASCIIModifier uint8

const (
	ASCIIModNone ASCIIModifier = iota
	ASCIIModCtrl
	ASCIIModAlt
	ASCIIModCtrlAlt
)

func (m ASCIIModifier) tokens() string {
	switch m {
	case ASCIIModCtrl:
		return ModCtrl.tokens()
	case ASCIIModAlt:
		return ModAlt.tokens()
	case ASCIIModCtrlAlt:
		return ModCtrlAlt.tokens()
	}
	return ""
}

// Event is an accelerator key press.
type Event struct {
	ascii    bool
	char     ASCIIKey
	charMod  ASCIIModifier
	virtKey  VirtKey
	virtMod  Modifier
	noInvert bool
}

// VirtKeyEvent returns an event for a virtual-key press.
func VirtKeyEvent(vk VirtKey, mod Modifier) Event {
	return Event{virtKey: vk, virtMod: mod}
}

// ASCIIKeyEvent returns an event for a character press.
func ASCIIKeyEvent(key ASCIIKey, mod ASCIIModifier) Event {
	return Event{ascii: true, char: key, charMod: mod}
}

// NoInvert returns e with the NOINVERT flag set.
//
// Deprecated: NOINVERT is ignored by current menus and is kept only for scripts
// that expect the token.
func (e Event) NoInvert() Event {
	e.noInvert = true
	return e
}

type acceleratorEntry struct {
	id    ID
	event Event
}

type acceleratorItems struct {
	extraInfo *ExtraInfo
	events    []acceleratorEntry
}

type acceleratorsData struct {
	items LangSpecific[acceleratorItems]
}

// AcceleratorsBuilder collects the events of an ACCELERATORS resource. Events
// declared for a language replace the universal set for that language.
type AcceleratorsBuilder struct {
	data *acceleratorsData
}

// NewAccelerators starts an accelerator table.
func NewAccelerators() *AcceleratorsBuilder {
	return &AcceleratorsBuilder{data: &acceleratorsData{}}
}

// Event adds a universal event.
func (b *AcceleratorsBuilder) Event(id ID, ev Event) *AcceleratorsBuilder {
	items := b.data.items.universalRef()
	items.events = append(items.events, acceleratorEntry{id: id, event: ev})
	return b
}

// LangEvent adds an event for lang only.
func (b *AcceleratorsBuilder) LangEvent(lang Lang, id ID, ev Event) *AcceleratorsBuilder {
	items := b.data.items.langRef(lang)
	items.events = append(items.events, acceleratorEntry{id: id, event: ev})
	return b
}

// ExtraInfo sets the universal CHARACTERISTICS and VERSION values.
func (b *AcceleratorsBuilder) ExtraInfo(ei ExtraInfo) *AcceleratorsBuilder {
	b.data.items.universalRef().extraInfo = &ei
	return b
}

// LangExtraInfo sets CHARACTERISTICS and VERSION for lang only.
func (b *AcceleratorsBuilder) LangExtraInfo(lang Lang, ei ExtraInfo) *AcceleratorsBuilder {
	b.data.items.langRef(lang).extraInfo = &ei
	return b
}

// Build returns the resource. The builder must not be used afterwards.
func (b *AcceleratorsBuilder) Build() Resource {
	r := Resource{kind: KindAccelerators, accelerators: b.data}
	b.data = nil
	return r
}

func (d *acceleratorsData) missingFor(lang Lang) bool {
	return !d.items.Has(lang)
}

func (d *acceleratorsData) writeHeaderExtras(w *scriptWriter, lang Lang) {
	w.extraInfo(mustGet(&d.items, lang).extraInfo)
}

func (d *acceleratorsData) writeBody(w *scriptWriter, lang Lang) {
	items := mustGet(&d.items, lang)
	w.str("{\n")
	for _, e := range items.events {
		ev := e.event
		w.str("\t")
		if ev.ascii {
			w.str(strconv.Itoa(int(ev.char)))
		} else {
			w.str(strconv.Itoa(int(ev.virtKey)))
		}
		w.str(", ")
		w.str(e.id.String())
		if ev.ascii {
			w.str(", ASCII")
			w.str(ev.charMod.tokens())
		} else {
			w.str(", VIRTKEY")
			w.str(ev.virtMod.tokens())
		}
		if ev.noInvert {
			w.str(", NOINVERT")
		}
		w.str("\n")
	}
	w.str("}\n")
}
