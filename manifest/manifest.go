// Package manifest describes a resource script in YAML or TOML and turns the
// description into an *rcscript.Build.
package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

// Format selects the manifest syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatFromPath picks the format from the file extension. Unknown extensions
// are read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Manifest is the decoded description of a resource script.
type Manifest struct {
	// Languages are BCP 47 tags. The first one is the default language of the
	// message files.
	Languages []string `yaml:"languages" toml:"languages"`
	// Messages are go-i18n message files, relative to the manifest.
	Messages  []string   `yaml:"messages,omitempty" toml:"messages"`
	Resources []Resource `yaml:"resources" toml:"resources"`

	// Dir is the directory relative paths are resolved against.
	Dir string `yaml:"-" toml:"-"`
}

// Resource declares one resource. Exactly one of the kind fields is set.
type Resource struct {
	ID   Ident  `yaml:"id" toml:"id"`
	Lang string `yaml:"lang,omitempty" toml:"lang"`

	Characteristics *uint32 `yaml:"characteristics,omitempty" toml:"characteristics"`
	Version         *uint32 `yaml:"version,omitempty" toml:"version"`

	Bitmap       string `yaml:"bitmap,omitempty" toml:"bitmap"`
	Cursor       string `yaml:"cursor,omitempty" toml:"cursor"`
	Font         string `yaml:"font,omitempty" toml:"font"`
	HTML         string `yaml:"html,omitempty" toml:"html"`
	Icon         string `yaml:"icon,omitempty" toml:"icon"`
	MessageTable string `yaml:"messagetable,omitempty" toml:"messagetable"`

	StringTable  *StringTable  `yaml:"stringtable,omitempty" toml:"stringtable"`
	Accelerators []Accelerator `yaml:"accelerators,omitempty" toml:"accelerators"`
	Menu         []MenuItem    `yaml:"menu,omitempty" toml:"menu"`
	Dialog       *Dialog       `yaml:"dialog,omitempty" toml:"dialog"`
	VersionInfo  *VersionInfo  `yaml:"versioninfo,omitempty" toml:"versioninfo"`
	RCData       []DataItem    `yaml:"rcdata,omitempty" toml:"rcdata"`
	User         *UserData     `yaml:"user,omitempty" toml:"user"`
}

// StringEntry is one string of a string table.
type StringEntry struct {
	ID   int  `yaml:"id" toml:"id"`
	Text Text `yaml:"text" toml:"text"`
}

// StringTable lists universal strings and per-language replacement tables.
type StringTable struct {
	Strings []StringEntry            `yaml:"strings" toml:"strings"`
	Lang    map[string][]StringEntry `yaml:"lang,omitempty" toml:"lang"`
}

// Accelerator is one key binding. Key is a single printable character; VK
// is a virtual-key name (F5, RETURN, A) or number.
type Accelerator struct {
	ID   int      `yaml:"id" toml:"id"`
	Key  string   `yaml:"key,omitempty" toml:"key"`
	VK   Ident    `yaml:"vk,omitempty" toml:"vk"`
	Mods []string `yaml:"mods,omitempty" toml:"mods"`
	Lang string   `yaml:"lang,omitempty" toml:"lang"`
}

// MenuItem is a command, a separator or, when Popup is set, a submenu.
type MenuItem struct {
	ID        *int       `yaml:"id,omitempty" toml:"id"`
	Text      Text       `yaml:"text,omitempty" toml:"text"`
	Separator bool       `yaml:"separator,omitempty" toml:"separator"`
	Type      []string   `yaml:"type,omitempty" toml:"type"`
	State     []string   `yaml:"state,omitempty" toml:"state"`
	HelpID    *int32     `yaml:"help_id,omitempty" toml:"help_id"`
	Popup     []MenuItem `yaml:"popup,omitempty" toml:"popup"`
}

// FontSpec is the FONT statement of a dialog.
type FontSpec struct {
	Size    uint16 `yaml:"size" toml:"size"`
	Face    string `yaml:"face" toml:"face"`
	Weight  uint16 `yaml:"weight,omitempty" toml:"weight"`
	Italic  bool   `yaml:"italic,omitempty" toml:"italic"`
	Charset *uint8 `yaml:"charset,omitempty" toml:"charset"`
}

// Dialog declares a DIALOGEX resource.
type Dialog struct {
	Rect     []int               `yaml:"rect,omitempty" toml:"rect"`
	LangRect map[string][]int    `yaml:"lang_rect,omitempty" toml:"lang_rect"`
	HelpID   *int32              `yaml:"help_id,omitempty" toml:"help_id"`
	Caption  Text                `yaml:"caption,omitempty" toml:"caption"`
	Font     *FontSpec           `yaml:"font,omitempty" toml:"font"`
	LangFont map[string]FontSpec `yaml:"lang_font,omitempty" toml:"lang_font"`
	Class    Ident               `yaml:"class,omitempty" toml:"class"`
	Menu     Ident               `yaml:"menu,omitempty" toml:"menu"`
	Style    *uint32             `yaml:"style,omitempty" toml:"style"`
	ExStyle  *uint32             `yaml:"exstyle,omitempty" toml:"exstyle"`
	Controls []Control           `yaml:"controls,omitempty" toml:"controls"`
}

// Control is one dialog control. Type is the statement keyword (pushbutton,
// ltext, control, ...). Controls with Lang set only appear in that language.
type Control struct {
	Type    string  `yaml:"type" toml:"type"`
	ID      int     `yaml:"id" toml:"id"`
	Text    Text    `yaml:"text,omitempty" toml:"text"`
	Image   Ident   `yaml:"image,omitempty" toml:"image"`
	Rect    []int   `yaml:"rect,omitempty" toml:"rect"`
	Class   string  `yaml:"class,omitempty" toml:"class"`
	Style   *uint32 `yaml:"style,omitempty" toml:"style"`
	ExStyle *uint32 `yaml:"exstyle,omitempty" toml:"exstyle"`
	Lang    string  `yaml:"lang,omitempty" toml:"lang"`
}

// VersionInfo declares the VERSIONINFO resource. Strings are keyed by
// StringFileInfo value name (ProductName, CompanyName, ...).
type VersionInfo struct {
	FileVersion    []uint16        `yaml:"file_version,omitempty" toml:"file_version"`
	ProductVersion []uint16        `yaml:"product_version,omitempty" toml:"product_version"`
	FileFlagsMask  *uint32         `yaml:"file_flags_mask,omitempty" toml:"file_flags_mask"`
	FileFlags      *uint32         `yaml:"file_flags,omitempty" toml:"file_flags"`
	FileOS         *uint32         `yaml:"file_os,omitempty" toml:"file_os"`
	FileType       *uint32         `yaml:"file_type,omitempty" toml:"file_type"`
	FileSubtype    *uint32         `yaml:"file_subtype,omitempty" toml:"file_subtype"`
	Strings        map[string]Text `yaml:"strings,omitempty" toml:"strings"`
}

// DataItem is one RCDATA value. Exactly one field is set.
type DataItem struct {
	U16  *uint16 `yaml:"u16,omitempty" toml:"u16"`
	U32  *uint32 `yaml:"u32,omitempty" toml:"u32"`
	Str  *string `yaml:"str,omitempty" toml:"str"`
	WStr *string `yaml:"wstr,omitempty" toml:"wstr"`
}

// UserData declares a resource of a custom type, either from a file or
// inline data items.
type UserData struct {
	Type Ident      `yaml:"type" toml:"type"`
	File string     `yaml:"file,omitempty" toml:"file"`
	Data []DataItem `yaml:"data,omitempty" toml:"data"`
}

// Decode reads a manifest in the given format.
func Decode(r io.Reader, format Format) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m := &Manifest{}
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(m); err != nil {
			return nil, fmt.Errorf("decode toml manifest: %w", err)
		}
	default:
		if err := yaml.UnmarshalStrict(data, m); err != nil {
			return nil, fmt.Errorf("decode yaml manifest: %w", err)
		}
	}
	return m, nil
}

// Load reads the manifest at path. Relative paths inside it resolve against
// its directory.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	m, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Dir = filepath.Dir(path)
	return m, nil
}

// ResolvePath returns the absolute path of a file named in the manifest.
func (m *Manifest) ResolvePath(p string) (string, error) {
	if !filepath.IsAbs(p) && m.Dir != "" {
		p = filepath.Join(m.Dir, p)
	}
	return filepath.Abs(p)
}
