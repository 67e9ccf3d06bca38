package manifest

import (
	"fmt"

	"github.com/loopcontext/rcscript"
)

// Ident is a resource identifier. YAML and TOML accept an int (id: 1) or a
// string (id: MAIN).
type Ident struct {
	num   int
	name  string
	named bool
	set   bool
}

// IdentInt returns a numeric Ident.
func IdentInt(i int) Ident {
	return Ident{num: i, set: true}
}

// IdentName returns a named Ident.
func IdentName(s string) Ident {
	return Ident{name: s, named: true, set: true}
}

// IsSet reports whether the identifier was given.
func (x Ident) IsSet() bool { return x.set }

// IsZero reports whether the identifier was left out.
func (x Ident) IsZero() bool { return !x.set }

// Value converts x to a resource identifier.
func (x Ident) Value() (rcscript.IDOrName, error) {
	if x.named {
		return rcscript.Name(x.name), nil
	}
	id, err := rcscript.IDFromInt(x.num)
	if err != nil {
		return rcscript.IDOrName{}, err
	}
	return rcscript.Num(id), nil
}

func (x Ident) String() string {
	if x.named {
		return x.name
	}
	return fmt.Sprint(x.num)
}

func (x *Ident) decode(v interface{}) error {
	switch t := v.(type) {
	case nil:
		*x = Ident{}
	case string:
		*x = IdentName(t)
	case int:
		*x = IdentInt(t)
	case int64:
		*x = IdentInt(int(t))
	default:
		return fmt.Errorf("id must be string or int, got %T", v)
	}
	return nil
}

// UnmarshalYAML allows id to be given as int or string in YAML.
func (x *Ident) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	if err := unmarshal(&v); err != nil {
		return err
	}
	return x.decode(v)
}

// UnmarshalTOML allows id to be given as int or string in TOML.
func (x *Ident) UnmarshalTOML(v interface{}) error {
	return x.decode(v)
}

// MarshalYAML emits int when the value is numeric, otherwise string.
func (x Ident) MarshalYAML() (interface{}, error) {
	if !x.set {
		return nil, nil
	}
	if x.named {
		return x.name, nil
	}
	return x.num, nil
}

// universalKey marks the universal value in a per-language text map.
const universalKey = "*"

// Text is display text. It is written as a plain string (shown in every
// language), as a map from "*" or a language tag to string, or as
// {message: ID} to look the text up in the message files.
type Text struct {
	Universal *string
	Langs     map[string]string
	Message   string
}

// PlainText returns text shown in every language.
func PlainText(s string) Text {
	return Text{Universal: &s}
}

// IsZero reports whether no text was given.
func (t Text) IsZero() bool {
	return t.Universal == nil && len(t.Langs) == 0 && t.Message == ""
}

func (t *Text) decode(v interface{}) error {
	*t = Text{}
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		t.Universal = &val
		return nil
	case map[string]interface{}:
		return t.decodeMap(val)
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, e := range val {
			ks, ok := k.(string)
			if !ok {
				return fmt.Errorf("text key must be a string, got %T", k)
			}
			m[ks] = e
		}
		return t.decodeMap(m)
	default:
		return fmt.Errorf("text must be string or map, got %T", v)
	}
}

func (t *Text) decodeMap(m map[string]interface{}) error {
	if id, ok := m["message"]; ok {
		if len(m) != 1 {
			return fmt.Errorf("message text cannot be combined with other keys")
		}
		s, ok := id.(string)
		if !ok || s == "" {
			return fmt.Errorf("message id must be a non-empty string, got %v", id)
		}
		t.Message = s
		return nil
	}
	for k, e := range m {
		s, ok := e.(string)
		if !ok {
			return fmt.Errorf("text for %q must be a string, got %T", k, e)
		}
		if k == universalKey {
			t.Universal = &s
			continue
		}
		if t.Langs == nil {
			t.Langs = make(map[string]string, len(m))
		}
		t.Langs[k] = s
	}
	return nil
}

// UnmarshalYAML decodes any of the accepted text forms.
func (t *Text) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	if err := unmarshal(&v); err != nil {
		return err
	}
	return t.decode(v)
}

// UnmarshalTOML decodes any of the accepted text forms.
func (t *Text) UnmarshalTOML(v interface{}) error {
	return t.decode(v)
}

// MarshalYAML emits a plain string when only the universal value is set.
func (t Text) MarshalYAML() (interface{}, error) {
	switch {
	case t.Message != "":
		return map[string]string{"message": t.Message}, nil
	case len(t.Langs) == 0 && t.Universal != nil:
		return *t.Universal, nil
	case t.IsZero():
		return nil, nil
	}
	m := make(map[string]string, len(t.Langs)+1)
	for k, v := range t.Langs {
		m[k] = v
	}
	if t.Universal != nil {
		m[universalKey] = *t.Universal
	}
	return m, nil
}
