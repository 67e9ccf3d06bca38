package manifest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loopcontext/rcscript"
)

var namedVirtKeys = map[string]rcscript.VirtKey{
	"BACK":     rcscript.VKBack,
	"TAB":      rcscript.VKTab,
	"RETURN":   rcscript.VKReturn,
	"ENTER":    rcscript.VKReturn,
	"ESCAPE":   rcscript.VKEscape,
	"SPACE":    rcscript.VKSpace,
	"PRIOR":    rcscript.VKPrior,
	"PAGEUP":   rcscript.VKPrior,
	"NEXT":     rcscript.VKNext,
	"PAGEDOWN": rcscript.VKNext,
	"END":      rcscript.VKEnd,
	"HOME":     rcscript.VKHome,
	"LEFT":     rcscript.VKLeft,
	"UP":       rcscript.VKUp,
	"RIGHT":    rcscript.VKRight,
	"DOWN":     rcscript.VKDown,
	"INSERT":   rcscript.VKInsert,
	"DELETE":   rcscript.VKDelete,
}

// parseVirtKey accepts a key name (F5, RETURN, A, 7) or a VK_* number.
func parseVirtKey(x Ident) (rcscript.VirtKey, error) {
	if !x.named {
		if x.num < 0 || x.num > 0xFF {
			return 0, fmt.Errorf("virtual key %d out of range", x.num)
		}
		return rcscript.VirtKey(x.num), nil
	}
	name := strings.TrimPrefix(strings.ToUpper(x.name), "VK_")
	if vk, ok := namedVirtKeys[name]; ok {
		return vk, nil
	}
	if len(name) == 1 {
		switch c := name[0]; {
		case c >= 'A' && c <= 'Z':
			return rcscript.VKLetter(c), nil
		case c >= '0' && c <= '9':
			return rcscript.VKDigit(int(c - '0')), nil
		}
	}
	if rest, ok := strings.CutPrefix(name, "F"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 && n <= 24 {
			return rcscript.VKFunction(n), nil
		}
	}
	return 0, fmt.Errorf("unknown virtual key %q", x.name)
}

type modSet struct {
	ctrl, alt, shift bool
}

func parseMods(mods []string) (modSet, error) {
	var s modSet
	for _, m := range mods {
		switch strings.ToLower(m) {
		case "ctrl", "control":
			s.ctrl = true
		case "alt":
			s.alt = true
		case "shift":
			s.shift = true
		default:
			return s, fmt.Errorf("unknown modifier %q", m)
		}
	}
	return s, nil
}

func (s modSet) virt() rcscript.Modifier {
	switch {
	case s.ctrl && s.alt && s.shift:
		return rcscript.ModCtrlAltShift
	case s.ctrl && s.alt:
		return rcscript.ModCtrlAlt
	case s.ctrl && s.shift:
		return rcscript.ModCtrlShift
	case s.alt && s.shift:
		return rcscript.ModAltShift
	case s.ctrl:
		return rcscript.ModCtrl
	case s.alt:
		return rcscript.ModAlt
	case s.shift:
		return rcscript.ModShift
	}
	return rcscript.ModNone
}

func (s modSet) ascii() (rcscript.ASCIIModifier, error) {
	if s.shift {
		return 0, fmt.Errorf("shift cannot be combined with a character key")
	}
	switch {
	case s.ctrl && s.alt:
		return rcscript.ASCIIModCtrlAlt, nil
	case s.ctrl:
		return rcscript.ASCIIModCtrl, nil
	case s.alt:
		return rcscript.ASCIIModAlt, nil
	}
	return rcscript.ASCIIModNone, nil
}

var controlTemplates = map[string]rcscript.ControlTemplate{}

func init() {
	for _, t := range []rcscript.ControlTemplate{
		rcscript.TemplateControl,
		rcscript.TemplateAuto3State,
		rcscript.TemplateAutoCheckBox,
		rcscript.TemplateAutoRadioButton,
		rcscript.TemplateCheckBox,
		rcscript.TemplateComboBox,
		rcscript.TemplateCText,
		rcscript.TemplateDefPushButton,
		rcscript.TemplateEditText,
		rcscript.TemplateGroupBox,
		rcscript.TemplateIcon,
		rcscript.TemplateListBox,
		rcscript.TemplateLText,
		rcscript.TemplatePushBox,
		rcscript.TemplatePushButton,
		rcscript.TemplateRadioButton,
		rcscript.TemplateRText,
		rcscript.TemplateScrollBar,
		rcscript.TemplateState3,
	} {
		controlTemplates[strings.ToLower(t.Keyword)] = t
	}
}

func parseControlTemplate(name string) (rcscript.ControlTemplate, error) {
	t, ok := controlTemplates[strings.ToLower(name)]
	if !ok {
		return rcscript.ControlTemplate{}, fmt.Errorf("unknown control type %q", name)
	}
	return t, nil
}

var menuTypes = map[string]rcscript.MenuType{
	"bitmap":       rcscript.MenuTypeBitmap,
	"menubarbreak": rcscript.MenuTypeMenuBarBreak,
	"menubreak":    rcscript.MenuTypeMenuBreak,
	"ownerdraw":    rcscript.MenuTypeOwnerDraw,
	"radiocheck":   rcscript.MenuTypeRadioCheck,
	"rightorder":   rcscript.MenuTypeRightOrder,
	"rightjustify": rcscript.MenuTypeRightJustify,
}

var menuStates = map[string]rcscript.MenuState{
	"disabled":    rcscript.MenuStateDisabled,
	"grayed":      rcscript.MenuStateDisabled,
	"checked":     rcscript.MenuStateChecked,
	"highlighted": rcscript.MenuStateHighlighted,
	"default":     rcscript.MenuStateDefault,
}

func parseMenuFlags[T ~uint32](names []string, table map[string]T, what string) (T, error) {
	var v T
	for _, n := range names {
		f, ok := table[strings.ToLower(n)]
		if !ok {
			return 0, fmt.Errorf("unknown menu %s %q", what, n)
		}
		v |= f
	}
	return v, nil
}
