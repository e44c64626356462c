package iface

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/arthur-debert/simreg/pkg/errors"
)

// ValueType is the one-character type code of a parameter value
type ValueType byte

const (
	TypeLong         ValueType = 'L'
	TypeDouble       ValueType = 'D'
	TypeBool         ValueType = 'B'
	TypeString       ValueType = 'S'
	TypeExpression   ValueType = 'X'
	TypeFunction     ValueType = 'F'
	TypeDistribution ValueType = 'T'
	TypeCompiled     ValueType = 'C'
	TypeXML          ValueType = 'M'
)

// Value is a parameter value as supplied by configuration
type Value struct {
	Type ValueType
	Text string
	Num  float64
	Flag bool
	Doc  *etree.Document
}

// LongValue wraps an integer
func LongValue(n int64) Value {
	return Value{Type: TypeLong, Num: float64(n), Text: strconv.FormatInt(n, 10)}
}

// DoubleValue wraps a float
func DoubleValue(f float64) Value {
	return Value{Type: TypeDouble, Num: f, Text: strconv.FormatFloat(f, 'g', -1, 64)}
}

// BoolValue wraps a bool
func BoolValue(b bool) Value {
	return Value{Type: TypeBool, Flag: b, Text: strconv.FormatBool(b)}
}

// StringValue wraps a string
func StringValue(s string) Value {
	return Value{Type: TypeString, Text: s}
}

// ExprValue wraps an expression evaluated at run time
func ExprValue(expr string) Value {
	return Value{Type: TypeExpression, Text: expr}
}

// XMLValue parses text as an XML document
func XMLValue(text string) (Value, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return Value{}, errors.Wrapf(err, errors.ErrTypeMismatch, "value is not well-formed XML")
	}
	if doc.Root() == nil {
		return Value{}, errors.New(errors.ErrTypeMismatch, "XML value has no root element")
	}
	return Value{Type: TypeXML, Text: text, Doc: doc}, nil
}

// Const reports whether the value is fixed at configuration time
func (v Value) Const() bool {
	switch v.Type {
	case TypeLong, TypeDouble, TypeBool, TypeString, TypeXML:
		return true
	default:
		return false
	}
}

func (v Value) String() string {
	return fmt.Sprintf("%c(%s)", v.Type, v.Text)
}

// ParseValue interprets a configuration string: true/false, integers,
// floats, double-quoted strings and inline XML are constants; anything else
// is kept as an expression.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "true" || s == "false":
		return BoolValue(s == "true"), nil
	case strings.HasPrefix(s, `"`):
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return Value{}, errors.Wrapf(err, errors.ErrTypeMismatch, "bad string literal %s", s)
		}
		return StringValue(unquoted), nil
	case strings.HasPrefix(s, "<"):
		return XMLValue(s)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return LongValue(n), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return DoubleValue(f), nil
	}
	return ExprValue(s), nil
}

// CheckValue verifies v against the mask of parameter p
func CheckValue(p Item, v Value) error {
	mismatch := func(format string, args ...interface{}) error {
		return errors.Newf(errors.ErrTypeMismatch, "parameter %s: "+format, append([]interface{}{p.Name}, args...)...).
			WithDetail("name", p.Name).
			WithDetail("mask", string(p.Types)).
			WithDetail("type", string(rune(v.Type)))
	}

	if p.Tag != TagParam {
		return errors.Newf(errors.ErrInvalidInput, "%q is not a parameter declaration", p.Name)
	}
	if p.Types.RequiresConst() && !v.Const() {
		return mismatch("requires a constant value, got %s", v)
	}
	if !p.Types.Allows(v.Type) {
		return mismatch("type %c not allowed by mask %q", v.Type, p.Types)
	}
	return nil
}
