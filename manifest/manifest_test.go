package manifest_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"

	"github.com/loopcontext/rcscript"
	"github.com/loopcontext/rcscript/manifest"
)

func render(t *testing.T, m *manifest.Manifest) string {
	t.Helper()
	b, err := m.Build()
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, b.Generate(&out, rcscript.Config{ResolvePath: m.ResolvePath}))
	return out.String()
}

func TestYAMLAndTOMLProduceIdenticalScripts(t *testing.T) {
	fromYAML, err := manifest.Load(filepath.Join("testdata", "demo.yaml"))
	require.NoError(t, err)
	fromTOML, err := manifest.Load(filepath.Join("testdata", "demo.toml"))
	require.NoError(t, err)

	assert.Equal(t, render(t, fromYAML), render(t, fromTOML))
}

func TestDemoManifestScript(t *testing.T) {
	m, err := manifest.Load(filepath.Join("testdata", "demo.yaml"))
	require.NoError(t, err)
	script := render(t, m)

	assert.Contains(t, script, "LANGUAGE 0x7, 0x1\nSTRINGTABLE \n{\n"+
		"\t1, \"OK\"\n\t2, \"Abbrechen\"\n\t3, \"Nur Deutsch\"\n}\n")
	assert.Contains(t, script, "LANGUAGE 0x9, 0x1\nSTRINGTABLE \n{\n"+
		"\t1, \"OK\"\n\t2, \"Cancel\"\n}\n")

	assert.Contains(t, script, "LANGUAGE 0x7, 0x1\n200 MENUEX \n{\n"+
		"\tPOPUP \"&Datei\"\n\t{\n"+
		"\t\tMENUITEM \"Ö&ffnen\", 100\n"+
		"\t\tMENUITEM \"\", , 2048L\n"+
		"\t\tMENUITEM \"E&xit\", 101, , 4096L\n"+
		"\t}\n}\n")
	assert.Contains(t, script, "\tPOPUP \"&File\"\n\t{\n\t\tMENUITEM \"&Open\", 100\n")

	assert.Contains(t, script, "300 ACCELERATORS \n{\n\t79, 100, ASCII, CONTROL\n\t116, 101, VIRTKEY\n}\n")

	assert.Contains(t, script, "400 DIALOGEX 0, 0, 200, 100\nCAPTION \"Info\"\n")
	assert.Contains(t, script, "400 DIALOGEX 0, 0, 200, 100\nCAPTION \"About\"\n")
	assert.Equal(t, 1, strings.Count(script, "LTEXT \"Hallo\""))

	assert.Contains(t, script, "VALUE \"FileDescription\", \"Demoanwendung\"")
	assert.Contains(t, script, "VALUE \"FileDescription\", \"Demo application\"")
	assert.Contains(t, script, "600 MYTYPE  ")
}

func TestIdentAcceptsIntOrString(t *testing.T) {
	var doc struct {
		A manifest.Ident `yaml:"a"`
		B manifest.Ident `yaml:"b"`
		C manifest.Ident `yaml:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 12\nb: MAIN\n"), &doc))

	a, err := doc.A.Value()
	require.NoError(t, err)
	assert.Equal(t, rcscript.Num(12), a)

	b, err := doc.B.Value()
	require.NoError(t, err)
	assert.Equal(t, rcscript.Name("MAIN"), b)

	assert.False(t, doc.C.IsSet())

	err = yaml.Unmarshal([]byte("a: [1]\n"), &doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id must be string or int")
}

func TestIdentMarshalsBack(t *testing.T) {
	out, err := yaml.Marshal(map[string]manifest.Ident{
		"num":  manifest.IdentInt(7),
		"name": manifest.IdentName("MAIN"),
	})
	require.NoError(t, err)
	assert.Equal(t, "name: MAIN\nnum: 7\n", string(out))
}

func TestTextForms(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    manifest.Text
		wantErr string
	}{
		{name: "plain", in: "t: Hello", want: manifest.PlainText("Hello")},
		{name: "message", in: "t: {message: Open}", want: manifest.Text{Message: "Open"}},
		{
			name: "per language",
			in:   "t: {\"*\": Hello, de-DE: Hallo}",
			want: manifest.Text{Universal: manifest.PlainText("Hello").Universal, Langs: map[string]string{"de-DE": "Hallo"}},
		},
		{name: "language only", in: "t: {de-DE: Hallo}", want: manifest.Text{Langs: map[string]string{"de-DE": "Hallo"}}},
		{name: "message with extra keys", in: "t: {message: Open, de-DE: x}", wantErr: "cannot be combined"},
		{name: "number", in: "t: 5", wantErr: "text must be string or map"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				T manifest.Text `yaml:"t"`
			}
			err := yaml.Unmarshal([]byte(tt.in), &doc)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.T)
		})
	}
}

func TestValidationErrorsAreAggregated(t *testing.T) {
	src := `
languages: [en-US]
resources:
  - id: 1
  - id: 70000
    icon: a.ico
  - id: 2
    icon: a.ico
    bitmap: b.bmp
  - id: 3
    accelerators:
      - {id: 1, vk: NOPE}
  - id: 4
    lang: fr-FR
    icon: a.ico
  - id: 5
    dialog:
      controls:
        - {type: slider, id: 1}
`
	m, err := manifest.Decode(strings.NewReader(src), manifest.FormatYAML)
	require.NoError(t, err)

	_, err = m.Build()
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 6)
	assert.Contains(t, errs[0].Error(), "no resource kind given")
	assert.ErrorIs(t, errs[1], rcscript.ErrIDOutOfRange)
	assert.Contains(t, errs[2].Error(), "2 resource kinds given")
	assert.Contains(t, errs[3].Error(), "unknown virtual key")
	assert.Contains(t, errs[4].Error(), "not declared")
	assert.Contains(t, errs[5].Error(), "unknown control type")
}

func TestBuildRequiresLanguages(t *testing.T) {
	m := &manifest.Manifest{}
	_, err := m.Build()
	assert.ErrorIs(t, err, manifest.ErrNoLanguages)
}

func TestMissingMessageIsReported(t *testing.T) {
	src := `
languages: [en-US, de-DE]
messages: [locales/active.en-US.toml]
resources:
  - id: 0
    stringtable:
      strings: [{id: 1, text: {message: Missing}}]
`
	m, err := manifest.Decode(strings.NewReader(src), manifest.FormatYAML)
	require.NoError(t, err)
	m.Dir = "testdata"

	_, err = m.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `message "Missing" not found`)
}

func TestMessageOnlyInOneLanguage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "active.de-DE.toml"), []byte("Print = \"Drucken\"\n"), 0o600))
	m := &manifest.Manifest{
		Languages: []string{"en-US", "de-DE"},
		Messages:  []string{"active.de-DE.toml"},
		Dir:       dir,
		Resources: []manifest.Resource{{
			ID: manifest.IdentInt(9),
			Menu: []manifest.MenuItem{
				{ID: rcscript.Ptr(1), Text: manifest.Text{Message: "Print"}},
			},
		}},
	}
	obs := &skipRecorder{}
	b, err := m.Build()
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, b.Generate(&out, rcscript.Config{ResolvePath: m.ResolvePath, Observer: obs}))

	assert.Contains(t, out.String(), "MENUITEM \"Drucken\", 1")
	assert.Equal(t, []rcscript.Lang{rcscript.LangENU}, obs.skipped)
}

type skipRecorder struct {
	skipped []rcscript.Lang
}

func (r *skipRecorder) OnIgnoredIdentifier(rcscript.Lang, rcscript.Kind, rcscript.IDOrName) {}

func (r *skipRecorder) OnResourceSkipped(lang rcscript.Lang, _ rcscript.Kind, _ rcscript.IDOrName) {
	r.skipped = append(r.skipped, lang)
}

func TestAcceleratorKeys(t *testing.T) {
	src := `
languages: [en-US]
resources:
  - id: 1
    accelerators:
      - {id: 1, vk: RETURN, mods: [alt]}
      - {id: 2, vk: 0x2E, mods: [ctrl, shift]}
      - {id: 3, vk: VK_F12}
      - {id: 4, vk: "7", mods: [control, alt, shift]}
      - {id: 5, key: a, mods: [ctrl, alt]}
`
	m, err := manifest.Decode(strings.NewReader(src), manifest.FormatYAML)
	require.NoError(t, err)
	script := render(t, m)
	assert.Contains(t, script, "{\n"+
		"\t13, 1, VIRTKEY, ALT\n"+
		"\t46, 2, VIRTKEY, CONTROL, SHIFT\n"+
		"\t123, 3, VIRTKEY\n"+
		"\t55, 4, VIRTKEY, CONTROL, ALT, SHIFT\n"+
		"\t97, 5, ASCII, CONTROL, ALT\n"+
		"}\n")
}

func TestLanguageAcceleratorsKeepUniversalEvents(t *testing.T) {
	src := `
languages: [en-US, de-DE, fr-FR]
resources:
  - id: 7
    version: 2
    accelerators:
      - {id: 100, key: O, mods: [ctrl]}
      - {id: 101, vk: F5, lang: de-DE}
      - {id: 102, vk: F6}
`
	m, err := manifest.Decode(strings.NewReader(src), manifest.FormatYAML)
	require.NoError(t, err)
	script := render(t, m)

	assert.Contains(t, script, "LANGUAGE 0x7, 0x1\n7 ACCELERATORS  2L\n{\n"+
		"\t79, 100, ASCII, CONTROL\n"+
		"\t116, 101, VIRTKEY\n"+
		"\t117, 102, VIRTKEY\n"+
		"}\n")
	assert.Contains(t, script, "LANGUAGE 0x9, 0x1\n7 ACCELERATORS  2L\n{\n"+
		"\t79, 100, ASCII, CONTROL\n"+
		"\t117, 102, VIRTKEY\n"+
		"}\n")
	assert.Contains(t, script, "LANGUAGE 0xc, 0x1\n7 ACCELERATORS  2L\n{\n"+
		"\t79, 100, ASCII, CONTROL\n"+
		"\t117, 102, VIRTKEY\n"+
		"}\n")
}

func TestShiftWithCharacterKeyIsRejected(t *testing.T) {
	src := `
languages: [en-US]
resources:
  - id: 1
    accelerators: [{id: 1, key: a, mods: [shift]}]
`
	m, err := manifest.Decode(strings.NewReader(src), manifest.FormatYAML)
	require.NoError(t, err)
	_, err = m.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shift cannot be combined")
}

func TestExtraInfoOnPathResourceIsRejected(t *testing.T) {
	src := `
languages: [en-US]
resources:
  - id: 1
    icon: app.ico
    characteristics: 3
  - id: 2
    rcdata: [{u16: 1}]
    version: 2
`
	m, err := manifest.Decode(strings.NewReader(src), manifest.FormatYAML)
	require.NoError(t, err)
	_, err = m.Build()
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "ICON resources take no characteristics or version")
}

func TestUnknownFieldsAreRejected(t *testing.T) {
	_, err := manifest.Decode(strings.NewReader("languages: [en-US]\nresorces: []\n"), manifest.FormatYAML)
	require.Error(t, err)
}

func TestCheckAssets(t *testing.T) {
	m, err := manifest.Load(filepath.Join("testdata", "demo.yaml"))
	require.NoError(t, err)
	assert.NoError(t, m.CheckAssets())

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.ico"), []byte("not an icon"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.ico"), []byte{0, 0, 1, 0, 0, 0}, 0o600))
	m = &manifest.Manifest{
		Languages: []string{"en-US"},
		Dir:       dir,
		Resources: []manifest.Resource{
			{ID: manifest.IdentInt(1), Icon: "bad.ico"},
			{ID: manifest.IdentInt(2), Icon: "empty.ico"},
			{ID: manifest.IdentInt(3), Bitmap: "missing.bmp"},
			{ID: manifest.IdentInt(4), User: &manifest.UserData{Type: manifest.IdentName("BLOB"), File: "missing.bin"}},
		},
	}
	errs := multierr.Errors(m.CheckAssets())
	require.Len(t, errs, 4)
	assert.Contains(t, errs[0].Error(), "bad magic number")
	assert.ErrorIs(t, errs[1], manifest.ErrEmptyIcon)
	assert.ErrorIs(t, errs[2], os.ErrNotExist)
	assert.ErrorIs(t, errs[3], os.ErrNotExist)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, manifest.FormatTOML, manifest.FormatFromPath("a/b.TOML"))
	assert.Equal(t, manifest.FormatYAML, manifest.FormatFromPath("a/b.yml"))
	assert.Equal(t, manifest.FormatYAML, manifest.FormatFromPath("a/b"))
}

func TestRepeatedLanguageIsDeclaredOnce(t *testing.T) {
	src := `
languages: [en-US, de-DE, en-US]
resources:
  - id: 0
    stringtable:
      strings: [{id: 1, text: {"*": OK, de-DE: Gut}}]
`
	m, err := manifest.Decode(strings.NewReader(src), manifest.FormatYAML)
	require.NoError(t, err)
	script := render(t, m)
	assert.Equal(t, 1, strings.Count(script, "\t1, \"OK\"\n"))
	assert.Equal(t, 1, strings.Count(script, "\t1, \"Gut\"\n"))
}
