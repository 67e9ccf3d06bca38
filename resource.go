package rcscript

// Kind identifies a resource type.
type Kind uint8

const (
	KindBitmap Kind = iota
	KindCursor
	KindFont
	KindHTML
	KindIcon
	KindMessageTable
	KindStringTable
	KindAccelerators
	KindMenu
	KindDialog
	KindVersionInfo
	KindRCData
	KindUserDefined
)

var kindKeywords = [...]string{
	KindBitmap:       "BITMAP",
	KindCursor:       "CURSOR",
	KindFont:         "FONT",
	KindHTML:         "HTML",
	KindIcon:         "ICON",
	KindMessageTable: "MESSAGETABLE",
	KindStringTable:  "STRINGTABLE",
	KindAccelerators: "ACCELERATORS",
	KindMenu:         "MENUEX",
	KindDialog:       "DIALOGEX",
	KindVersionInfo:  "VERSIONINFO",
	KindRCData:       "RCDATA",
	KindUserDefined:  "USERDEFINED",
}

// String returns the script keyword for k. User-defined resources use their own
// type name in scripts; "USERDEFINED" only labels the kind.
func (k Kind) String() string {
	if int(k) < len(kindKeywords) {
		return kindKeywords[k]
	}
	return "UNKNOWN"
}

// Resource is one of the supported resource kinds. Values are produced by the
// *File constructors and by the builders' Build methods and are immutable.
type Resource struct {
	kind     Kind
	path     string
	userType IDOrName

	strings      *stringTableData
	accelerators *acceleratorsData
	menu         *menuData
	dialog       *dialogData
	versionInfo  *versionInfoData
	inline       *rcInlineData
}

// Kind returns the resource kind.
func (r Resource) Kind() Kind { return r.kind }

// Path returns the asset path of a file-backed resource.
func (r Resource) Path() string { return r.path }

func pathResource(kind Kind, path string) Resource {
	return Resource{kind: kind, path: path}
}

// BitmapFile references a .bmp asset.
func BitmapFile(path string) Resource { return pathResource(KindBitmap, path) }

// CursorFile references a .cur asset.
func CursorFile(path string) Resource { return pathResource(KindCursor, path) }

// FontFile references a font asset.
func FontFile(path string) Resource { return pathResource(KindFont, path) }

// HTMLFile references an HTML asset.
func HTMLFile(path string) Resource { return pathResource(KindHTML, path) }

// IconFile references a .ico asset.
func IconFile(path string) Resource { return pathResource(KindIcon, path) }

// MessageTableFile references a compiled message table.
func MessageTableFile(path string) Resource { return pathResource(KindMessageTable, path) }

// UserDefinedFile references an asset stored under a custom resource type.
func UserDefinedFile(typ IDOrName, path string) Resource {
	return Resource{kind: KindUserDefined, userType: typ, path: path}
}

// ExtraInfo carries the optional CHARACTERISTICS and VERSION values of a resource.
type ExtraInfo struct {
	Characteristics *uint32
	Version         *uint32
}

// Ptr returns a pointer to v, for the optional fields of ExtraInfo, Control and
// MenuItem.
func Ptr[T any](v T) *T {
	return &v
}
