package rcscript

import (
	"strconv"
	"strings"
)

// ID is a numeric resource or control identifier.
type ID uint16

// NotUsefulID marks an identifier the script does not need (-1 as unsigned).
const NotUsefulID ID = 0xFFFF

// IDFromInt converts v to an ID. Values outside [-1, 0xFFFF] are rejected; -1 maps
// to NotUsefulID.
func IDFromInt(v int) (ID, error) {
	if v < -1 || v > 0xFFFF {
		return 0, &IDRangeError{Value: v}
	}
	return ID(uint16(v)), nil
}

// MustID is like IDFromInt but panics when v is out of range.
func MustID(v int) ID {
	id, err := IDFromInt(v)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IDOrName references a resource by number or by name.
type IDOrName struct {
	id    ID
	name  string
	named bool
}

// Num returns a numeric identifier.
func Num(id ID) IDOrName {
	return IDOrName{id: id}
}

// Name returns a named identifier.
func Name(name string) IDOrName {
	return IDOrName{name: name, named: true}
}

// IsName reports whether x is a named identifier.
func (x IDOrName) IsName() bool { return x.named }

// ID returns the numeric value; ok is false for names.
func (x IDOrName) ID() (id ID, ok bool) {
	return x.id, !x.named
}

// NameValue returns the name; ok is false for numeric identifiers.
func (x IDOrName) NameValue() (name string, ok bool) {
	return x.name, x.named
}

// Compare orders numeric identifiers before names.
func (x IDOrName) Compare(y IDOrName) int {
	switch {
	case !x.named && !y.named:
		switch {
		case x.id < y.id:
			return -1
		case x.id > y.id:
			return 1
		}
		return 0
	case !x.named:
		return -1
	case !y.named:
		return 1
	default:
		return strings.Compare(x.name, y.name)
	}
}

func (x IDOrName) String() string {
	if x.named {
		return strconv.Quote(x.name)
	}
	return x.id.String()
}

// ignorable reports whether x is on the allow-list of identifiers that carry no
// meaning for resources whose identifier the script drops.
func (x IDOrName) ignorable() bool {
	if x.named {
		switch x.name {
		case "", " ", "_":
			return true
		}
		return false
	}
	return x.id == 0 || x.id == NotUsefulID
}
