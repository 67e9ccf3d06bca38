package rcscript

import (
	"fmt"
	"strings"
)

// Version is a four-part binary version number.
type Version [4]uint16

func (v Version) String() string {
	return fmt.Sprintf("%d, %d, %d, %d", v[0], v[1], v[2], v[3])
}

// VS_FF_* flags.
const (
	FileFlagDebug        uint32 = 0x01
	FileFlagPrerelease   uint32 = 0x02
	FileFlagPatched      uint32 = 0x04
	FileFlagPrivateBuild uint32 = 0x08
	FileFlagInfoInferred uint32 = 0x10
	FileFlagSpecialBuild uint32 = 0x20
	FileFlagsMaskAll     uint32 = 0x3F
)

// VOS_* and VFT_* values.
const (
	FileOSUnknown   uint32 = 0x0
	FileOSNT        uint32 = 0x40000
	FileOSWindows32 uint32 = 0x4
	FileOSNTWin32   uint32 = 0x40004

	FileTypeUnknown   uint32 = 0x0
	FileTypeApp       uint32 = 0x1
	FileTypeDLL       uint32 = 0x2
	FileTypeDriver    uint32 = 0x3
	FileTypeFont      uint32 = 0x4
	FileTypeStaticLib uint32 = 0x7
)

// VersionField names a StringFileInfo value.
type VersionField uint8

const (
	FieldProductName VersionField = iota
	FieldProductVersion
	FieldFileDescription
	FieldFileVersion
	FieldInternalName
	FieldOriginalFilename
	FieldCompanyName
	FieldLegalCopyright
	FieldLegalTrademarks
	FieldPrivateBuild
	FieldSpecialBuild
	FieldComments
	numVersionFields
)

// Fields up to and including firstOptionalField-1 are always written.
const firstOptionalField = FieldLegalCopyright

var versionFieldNames = [numVersionFields]string{
	FieldProductName:      "ProductName",
	FieldProductVersion:   "ProductVersion",
	FieldFileDescription:  "FileDescription",
	FieldFileVersion:      "FileVersion",
	FieldInternalName:     "InternalName",
	FieldOriginalFilename: "OriginalFilename",
	FieldCompanyName:      "CompanyName",
	FieldLegalCopyright:   "LegalCopyright",
	FieldLegalTrademarks:  "LegalTrademarks",
	FieldPrivateBuild:     "PrivateBuild",
	FieldSpecialBuild:     "SpecialBuild",
	FieldComments:         "Comments",
}

func (f VersionField) String() string {
	if f < numVersionFields {
		return versionFieldNames[f]
	}
	return "Unknown"
}

// ParseVersionField maps a StringFileInfo value name to its field.
func ParseVersionField(name string) (VersionField, error) {
	for i, n := range versionFieldNames {
		if strings.EqualFold(n, name) {
			return VersionField(i), nil
		}
	}
	return 0, fmt.Errorf("unknown version info field %q", name)
}

type versionInfoData struct {
	fileVersion    *Version
	productVersion *Version
	fileFlagsMask  *uint32
	fileFlags      *uint32
	fileOS         *uint32
	fileType       *uint32
	fileSubtype    *uint32
	// A nil entry does not participate. Optional fields are written only when
	// they participate.
	fields [numVersionFields]*LangSpecific[string]
}

// VersionInfoBuilder collects a VERSIONINFO resource. The StringFileInfo block is
// always Unicode (code page 1200).
type VersionInfoBuilder struct {
	data *versionInfoData
}

// NewVersionInfo starts a version resource.
func NewVersionInfo() *VersionInfoBuilder {
	return &VersionInfoBuilder{data: &versionInfoData{}}
}

// FileVersion sets FILEVERSION.
func (b *VersionInfoBuilder) FileVersion(v Version) *VersionInfoBuilder {
	b.data.fileVersion = &v
	return b
}

// ProductVersion sets PRODUCTVERSION.
func (b *VersionInfoBuilder) ProductVersion(v Version) *VersionInfoBuilder {
	b.data.productVersion = &v
	return b
}

// FileFlagsMask sets FILEFLAGSMASK.
func (b *VersionInfoBuilder) FileFlagsMask(mask uint32) *VersionInfoBuilder {
	b.data.fileFlagsMask = &mask
	return b
}

// FileFlags sets FILEFLAGS.
func (b *VersionInfoBuilder) FileFlags(flags uint32) *VersionInfoBuilder {
	b.data.fileFlags = &flags
	return b
}

// FileOS sets FILEOS.
func (b *VersionInfoBuilder) FileOS(os uint32) *VersionInfoBuilder {
	b.data.fileOS = &os
	return b
}

// FileType sets FILETYPE.
func (b *VersionInfoBuilder) FileType(typ uint32) *VersionInfoBuilder {
	b.data.fileType = &typ
	return b
}

// FileSubtype sets FILESUBTYPE.
func (b *VersionInfoBuilder) FileSubtype(sub uint32) *VersionInfoBuilder {
	b.data.fileSubtype = &sub
	return b
}

// Field sets a StringFileInfo value. Text without a value for a language writes
// an empty string in that language.
func (b *VersionInfoBuilder) Field(f VersionField, t Text) *VersionInfoBuilder {
	if f >= numVersionFields {
		return b
	}
	c := t.clone()
	b.data.fields[f] = &c.values
	return b
}

// LangField sets a StringFileInfo value for lang, keeping the other languages.
func (b *VersionInfoBuilder) LangField(lang Lang, f VersionField, s string) *VersionInfoBuilder {
	if f >= numVersionFields {
		return b
	}
	if b.data.fields[f] == nil {
		b.data.fields[f] = &LangSpecific[string]{}
	}
	b.data.fields[f].Set(lang, s)
	return b
}

// ProductName sets FieldProductName.
func (b *VersionInfoBuilder) ProductName(t Text) *VersionInfoBuilder {
	return b.Field(FieldProductName, t)
}

// FileDescription sets FieldFileDescription.
func (b *VersionInfoBuilder) FileDescription(t Text) *VersionInfoBuilder {
	return b.Field(FieldFileDescription, t)
}

// CompanyName sets FieldCompanyName.
func (b *VersionInfoBuilder) CompanyName(t Text) *VersionInfoBuilder {
	return b.Field(FieldCompanyName, t)
}

// LegalCopyright sets FieldLegalCopyright.
func (b *VersionInfoBuilder) LegalCopyright(t Text) *VersionInfoBuilder {
	return b.Field(FieldLegalCopyright, t)
}

// Build returns the resource. The builder must not be used afterwards.
func (b *VersionInfoBuilder) Build() Resource {
	r := Resource{kind: KindVersionInfo, versionInfo: b.data}
	b.data = nil
	return r
}

func (d *versionInfoData) hasFixed() bool {
	return d.fileVersion != nil || d.productVersion != nil || d.fileFlagsMask != nil ||
		d.fileFlags != nil || d.fileOS != nil || d.fileType != nil || d.fileSubtype != nil
}

// Version info exists for a language when a fixed value is set or any string
// value resolves for it.
func (d *versionInfoData) missingFor(lang Lang) bool {
	if d.hasFixed() {
		return false
	}
	for _, f := range d.fields {
		if f != nil && f.Has(lang) {
			return false
		}
	}
	return true
}

func (d *versionInfoData) writeHeaderExtras(w *scriptWriter, _ Lang) {
	if d.fileVersion != nil {
		w.str("\nFILEVERSION ")
		w.str(d.fileVersion.String())
	}
	if d.productVersion != nil {
		w.str("\nPRODUCTVERSION ")
		w.str(d.productVersion.String())
	}
	fixed := []struct {
		keyword string
		value   *uint32
	}{
		{"FILEFLAGSMASK", d.fileFlagsMask},
		{"FILEFLAGS", d.fileFlags},
		{"FILEOS", d.fileOS},
		{"FILETYPE", d.fileType},
		{"FILESUBTYPE", d.fileSubtype},
	}
	for _, s := range fixed {
		if s.value == nil {
			continue
		}
		w.str("\n")
		w.str(s.keyword)
		w.str(" ")
		w.dword(*s.value)
	}
}

func (d *versionInfoData) writeBody(w *scriptWriter, lang Lang) {
	w.str("{\n")
	w.str("\tBLOCK \"StringFileInfo\"\n\t{\n")
	w.str(fmt.Sprintf("\t\tBLOCK \"%04x04b0\"\n\t\t{\n", lang.LangID()))
	for i, f := range d.fields {
		field := VersionField(i)
		if f == nil && field >= firstOptionalField {
			continue
		}
		var value string
		if f != nil {
			value, _ = f.Get(lang)
		}
		w.str("\t\t\tVALUE ")
		w.narrow(field.String())
		w.str(", ")
		w.narrow(value)
		w.str("\n")
	}
	w.str("\t\t}\n\t}\n")
	w.str("\tBLOCK \"VarFileInfo\"\n\t{\n")
	w.str(fmt.Sprintf("\t\tVALUE \"Translation\", 0x%x, 1200\n", lang.LangID()))
	w.str("\t}\n}\n")
}
