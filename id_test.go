package rcscript_test

import (
	"errors"
	"testing"

	"github.com/loopcontext/rcscript"
)

func TestIDFromIntRange(t *testing.T) {
	for _, v := range []int{-1, 0, 1, 100, 0x7FFF, 0xFFFE, 0xFFFF} {
		id, err := rcscript.IDFromInt(v)
		if err != nil {
			t.Fatalf("IDFromInt(%d) failed: %v", v, err)
		}
		if int(int16(id)) != v && int(id) != v {
			t.Fatalf("IDFromInt(%d) = %d does not round-trip", v, id)
		}
	}
	if id, _ := rcscript.IDFromInt(-1); id != rcscript.NotUsefulID {
		t.Fatalf("IDFromInt(-1) = %d, want NotUsefulID", id)
	}

	for _, v := range []int{-2, -65535, 0x10000, 1 << 40} {
		_, err := rcscript.IDFromInt(v)
		if !errors.Is(err, rcscript.ErrIDOutOfRange) {
			t.Fatalf("IDFromInt(%d) error = %v, want ErrIDOutOfRange", v, err)
		}
		var rangeErr *rcscript.IDRangeError
		if !errors.As(err, &rangeErr) || rangeErr.Value != v {
			t.Fatalf("IDFromInt(%d) error = %#v", v, err)
		}
	}
}

func TestMustIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	rcscript.MustID(70000)
}

func TestIDOrNameOrdering(t *testing.T) {
	tests := []struct {
		a, b rcscript.IDOrName
		want int
	}{
		{rcscript.Num(1), rcscript.Num(2), -1},
		{rcscript.Num(2), rcscript.Num(2), 0},
		{rcscript.Num(0xFFFF), rcscript.Name(""), -1},
		{rcscript.Name("A"), rcscript.Num(0), 1},
		{rcscript.Name("A"), rcscript.Name("B"), -1},
		{rcscript.Name("B"), rcscript.Name("B"), 0},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Fatalf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIDOrNameAccessors(t *testing.T) {
	n := rcscript.Name("MAIN")
	if !n.IsName() {
		t.Fatalf("expected name")
	}
	if _, ok := n.ID(); ok {
		t.Fatalf("name reported numeric id")
	}
	if v, ok := n.NameValue(); !ok || v != "MAIN" {
		t.Fatalf("NameValue() = %q, %v", v, ok)
	}
	if n.String() != `"MAIN"` {
		t.Fatalf("String() = %s", n.String())
	}

	id := rcscript.Num(42)
	if v, ok := id.ID(); !ok || v != 42 {
		t.Fatalf("ID() = %d, %v", v, ok)
	}
	if id.String() != "42" {
		t.Fatalf("String() = %s", id.String())
	}
}

func TestParseLang(t *testing.T) {
	tests := []struct {
		in   string
		want rcscript.Lang
	}{
		{"en-US", rcscript.LangENU},
		{"de-DE", rcscript.LangDEU},
		{"pt-BR", rcscript.LangPTB},
		{"ja-JP", rcscript.LangJPN},
		{" ru-RU ", rcscript.LangRUS},
	}
	for _, tt := range tests {
		got, err := rcscript.ParseLang(tt.in)
		if err != nil {
			t.Fatalf("ParseLang(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLang(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := rcscript.ParseLang("not a tag!"); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := rcscript.ParseLang("sw-KE"); err == nil {
		t.Fatalf("expected unregistered language error")
	}
}

func TestLangFormatting(t *testing.T) {
	if got := rcscript.LangENU.String(); got != "0x9, 0x1" {
		t.Fatalf("String() = %q", got)
	}
	if got := rcscript.LangENU.LangID(); got != 0x409 {
		t.Fatalf("LangID() = %#x", got)
	}
	if got := rcscript.LangDEU.Tag().String(); got != "de-DE" {
		t.Fatalf("Tag() = %q", got)
	}
	if rcscript.LangDEU.Compare(rcscript.LangENU) >= 0 {
		t.Fatalf("DEU should sort before ENU")
	}
	if rcscript.LangCHT.Compare(rcscript.LangCHS) >= 0 {
		t.Fatalf("CHT should sort before CHS")
	}
}
