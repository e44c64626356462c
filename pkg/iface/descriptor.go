package iface

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/simreg/pkg/errors"
)

// Tag identifies the kind of a declaration item
type Tag byte

const (
	TagGate  Tag = 'G'
	TagParam Tag = 'P'
	TagEnd   Tag = 'E'
)

// Direction of a gate
type Direction byte

const (
	Input  Direction = 'I'
	Output Direction = 'O'
)

// String returns "input" or "output"
func (d Direction) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return fmt.Sprintf("Direction(%q)", byte(d))
	}
}

// TypeMask is a set of allowed parameter type codes
type TypeMask string

const (
	Const   TypeMask = "#"
	Any     TypeMask = "*"
	Numeric TypeMask = "LDCXFTB"
	Bool    TypeMask = "LDCXFTB"
	String  TypeMask = "S"
	XML     TypeMask = "M"
)

const maskAlphabet = "#*LDCXFTBSM"

// Validate rejects codes outside the fixed vocabulary
func (m TypeMask) Validate() error {
	if m == "" {
		return errors.New(errors.ErrMalformedIface, "empty type mask")
	}
	for _, c := range m {
		if !strings.ContainsRune(maskAlphabet, c) {
			return errors.Newf(errors.ErrMalformedIface, "unknown type code %q in mask %q", c, string(m)).
				WithDetail("mask", string(m))
		}
	}
	return nil
}

// RequiresConst reports whether the mask carries the const flag
func (m TypeMask) RequiresConst() bool {
	return strings.Contains(string(m), string(Const))
}

// AllowsAny reports whether every value type is accepted
func (m TypeMask) AllowsAny() bool {
	return strings.Contains(string(m), string(Any))
}

// Allows reports whether values of type t pass the mask
func (m TypeMask) Allows(t ValueType) bool {
	if m.AllowsAny() {
		return true
	}
	codes := strings.ReplaceAll(string(m), string(Const), "")
	if codes == "" {
		// a bare "#" only constrains constness
		return true
	}
	return strings.IndexByte(codes, byte(t)) >= 0
}

// Item is one entry of a declaration list
type Item struct {
	Tag   Tag
	Name  string
	Types TypeMask
	Dir   Direction
}

// Gate declares a gate
func Gate(name string, dir Direction) Item {
	return Item{Tag: TagGate, Name: name, Dir: dir}
}

// Param declares a parameter
func Param(name string, types TypeMask) Item {
	return Item{Tag: TagParam, Name: name, Types: types}
}

// End terminates a declaration list
func End() Item {
	return Item{Tag: TagEnd}
}

func (it Item) String() string {
	switch it.Tag {
	case TagGate:
		return fmt.Sprintf("G %s %s", it.Name, it.Dir)
	case TagParam:
		return fmt.Sprintf("P %s %s", it.Name, it.Types)
	case TagEnd:
		return "E"
	default:
		return fmt.Sprintf("%q", byte(it.Tag))
	}
}

// Descriptor is the validated interface of one module type
type Descriptor struct {
	name  string
	decls []Item
}

// Name returns the class name the descriptor belongs to
func (d *Descriptor) Name() string { return d.name }

// Len returns the number of gate and parameter declarations
func (d *Descriptor) Len() int { return len(d.decls) }

// Decls returns the gate and parameter declarations in declaration order
func (d *Descriptor) Decls() []Item {
	out := make([]Item, len(d.decls))
	copy(out, d.decls)
	return out
}

// Items returns the declarations followed by exactly one End
func (d *Descriptor) Items() []Item {
	out := make([]Item, 0, len(d.decls)+1)
	out = append(out, d.decls...)
	return append(out, End())
}

// Gates returns the gate declarations in order
func (d *Descriptor) Gates() []Item { return d.filter(TagGate) }

// Params returns the parameter declarations in order
func (d *Descriptor) Params() []Item { return d.filter(TagParam) }

func (d *Descriptor) filter(tag Tag) []Item {
	var out []Item
	for _, it := range d.decls {
		if it.Tag == tag {
			out = append(out, it)
		}
	}
	return out
}

// Gate finds a gate declaration by name
func (d *Descriptor) Gate(name string) (Item, bool) { return d.find(TagGate, name) }

// Param finds a parameter declaration by name
func (d *Descriptor) Param(name string) (Item, bool) { return d.find(TagParam, name) }

func (d *Descriptor) find(tag Tag, name string) (Item, bool) {
	for _, it := range d.decls {
		if it.Tag == tag && it.Name == name {
			return it, true
		}
	}
	return Item{}, false
}

// FromItems builds a descriptor from a sentinel-terminated declaration list.
// Reading stops at the first End; anything after it is ignored.
func FromItems(name string, items []Item) (*Descriptor, error) {
	if name == "" {
		return nil, errors.New(errors.ErrMalformedIface, "interface name cannot be empty")
	}

	malformed := func(format string, args ...interface{}) error {
		return errors.Newf(errors.ErrMalformedIface, "interface %s: "+format, append([]interface{}{name}, args...)...).
			WithDetail("name", name)
	}

	d := &Descriptor{name: name}
	seen := map[Tag]map[string]bool{TagGate: {}, TagParam: {}}

	for i, it := range items {
		switch it.Tag {
		case TagEnd:
			return d, nil
		case TagGate:
			if it.Dir != Input && it.Dir != Output {
				return nil, malformed("gate %q has invalid direction %q", it.Name, byte(it.Dir))
			}
		case TagParam:
			if err := it.Types.Validate(); err != nil {
				return nil, malformed("parameter %q: %v", it.Name, err)
			}
		default:
			return nil, malformed("item %d has unrecognized tag %q", i, byte(it.Tag))
		}

		if it.Name == "" {
			return nil, malformed("item %d has no name", i)
		}
		if seen[it.Tag][it.Name] {
			return nil, malformed("%q declared twice", it.Name)
		}
		seen[it.Tag][it.Name] = true
		d.decls = append(d.decls, it)
	}

	return nil, malformed("declaration list has no End")
}

// Builder assembles a descriptor declaration by declaration
type Builder struct {
	name  string
	items []Item
}

// NewBuilder starts a descriptor for the named class
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Gate appends a gate declaration
func (b *Builder) Gate(name string, dir Direction) *Builder {
	b.items = append(b.items, Gate(name, dir))
	return b
}

// Param appends a parameter declaration
func (b *Builder) Param(name string, types TypeMask) *Builder {
	b.items = append(b.items, Param(name, types))
	return b
}

// Build terminates the list and validates it
func (b *Builder) Build() (*Descriptor, error) {
	items := make([]Item, 0, len(b.items)+1)
	items = append(items, b.items...)
	return FromItems(b.name, append(items, End()))
}
