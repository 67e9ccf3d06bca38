package manifest

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"gopkg.in/yaml.v2"

	"github.com/loopcontext/rcscript"
)

// messageCatalog resolves {message: ID} texts. The first declared language
// is the bundle default and supplies the universal value; other languages
// contribute an override only when their own file has the message.
type messageCatalog struct {
	bundle *i18n.Bundle
	langs  []rcscript.Lang
}

func loadMessages(langs []rcscript.Lang, files []string, resolve func(string) (string, error)) (*messageCatalog, error) {
	bundle := i18n.NewBundle(langs[0].Tag())
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yml", yaml.Unmarshal)
	for _, f := range files {
		path, err := resolve(f)
		if err != nil {
			return nil, fmt.Errorf("resolve message file %s: %w", f, err)
		}
		if _, err := bundle.LoadMessageFile(path); err != nil {
			return nil, fmt.Errorf("load message file %s: %w", f, err)
		}
	}
	return &messageCatalog{bundle: bundle, langs: langs}, nil
}

func (c *messageCatalog) text(id string) (rcscript.Text, error) {
	t := rcscript.NoText()
	found := false
	for i, lang := range c.langs {
		want := lang.Tag().String()
		loc := i18n.NewLocalizer(c.bundle, want)
		s, tag, err := loc.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: id})
		if err != nil || tag.String() != want {
			continue
		}
		if i == 0 {
			t = rcscript.T(s)
		} else {
			t = t.Lang(lang, s)
		}
		found = true
	}
	if !found {
		return t, fmt.Errorf("message %q not found in any message file", id)
	}
	return t, nil
}
