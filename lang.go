package rcscript

import (
	"cmp"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Lang is a Windows language key: primary language and sub-language.
type Lang struct {
	Primary uint16
	Sub     uint16
}

// Compare orders languages by primary language, then sub-language.
func (l Lang) Compare(o Lang) int {
	if c := cmp.Compare(l.Primary, o.Primary); c != 0 {
		return c
	}
	return cmp.Compare(l.Sub, o.Sub)
}

// LangID returns the packed LANGID value (sub-language in the upper six bits).
func (l Lang) LangID() uint16 {
	return l.Sub<<10 | l.Primary
}

func (l Lang) String() string {
	return fmt.Sprintf("0x%x, 0x%x", l.Primary, l.Sub)
}

// Tag returns the BCP 47 tag registered for l, or language.Und.
func (l Lang) Tag() language.Tag {
	for _, entry := range langTags {
		if entry.lang == l {
			return entry.tag
		}
	}
	return language.Und
}

const (
	langChinese    = 0x04
	langCzech      = 0x05
	langGerman     = 0x07
	langEnglish    = 0x09
	langSpanish    = 0x0a
	langFrench     = 0x0c
	langItalian    = 0x10
	langJapanese   = 0x11
	langKorean     = 0x12
	langPolish     = 0x15
	langPortuguese = 0x16
	langRussian    = 0x19
	langTurkish    = 0x1f
)

var (
	LangENU = Lang{langEnglish, 0x01}
	LangCHS = Lang{langChinese, 0x02}
	LangCHT = Lang{langChinese, 0x01}
	LangDEU = Lang{langGerman, 0x01}
	LangESN = Lang{langSpanish, 0x01}
	LangFRA = Lang{langFrench, 0x01}
	LangITA = Lang{langItalian, 0x01}
	LangJPN = Lang{langJapanese, 0x01}
	LangKOR = Lang{langKorean, 0x01}
	LangRUS = Lang{langRussian, 0x01}
	LangCSY = Lang{langCzech, 0x01}
	LangPLK = Lang{langPolish, 0x01}
	LangPTB = Lang{langPortuguese, 0x01}
	LangTRK = Lang{langTurkish, 0x01}
)

var (
	PresetLang1  = []Lang{LangENU}
	PresetLang9  = []Lang{LangENU, LangCHS, LangCHT, LangDEU, LangESN, LangFRA, LangITA, LangJPN, LangKOR}
	PresetLang10 = []Lang{LangENU, LangCHS, LangCHT, LangDEU, LangESN, LangFRA, LangITA, LangJPN, LangKOR, LangRUS}
	PresetLang14 = []Lang{
		LangENU, LangCHS, LangCHT, LangCSY, LangDEU, LangESN, LangFRA, LangITA, LangJPN,
		LangKOR, LangPLK, LangPTB, LangRUS, LangTRK,
	}
)

type langTag struct {
	tag  language.Tag
	lang Lang
}

var langTags = []langTag{
	{language.AmericanEnglish, LangENU},
	{language.SimplifiedChinese, LangCHS},
	{language.TraditionalChinese, LangCHT},
	{language.MustParse("cs-CZ"), LangCSY},
	{language.MustParse("de-DE"), LangDEU},
	{language.MustParse("es-ES"), LangESN},
	{language.MustParse("fr-FR"), LangFRA},
	{language.MustParse("it-IT"), LangITA},
	{language.MustParse("ja-JP"), LangJPN},
	{language.MustParse("ko-KR"), LangKOR},
	{language.MustParse("pl-PL"), LangPLK},
	{language.BrazilianPortuguese, LangPTB},
	{language.MustParse("ru-RU"), LangRUS},
	{language.MustParse("tr-TR"), LangTRK},
}

var langMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(langTags))
	for i, entry := range langTags {
		tags[i] = entry.tag
	}
	return language.NewMatcher(tags)
}()

// ParseLang maps a BCP 47 tag ("en", "de-DE", "zh-TW") to the closest registered
// language key.
func ParseLang(s string) (Lang, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return Lang{}, fmt.Errorf("parse language %q: %w", s, err)
	}
	_, idx, confidence := langMatcher.Match(tag)
	if confidence < language.High {
		return Lang{}, fmt.Errorf("language %q has no registered language key", s)
	}
	return langTags[idx].lang, nil
}
