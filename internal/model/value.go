package model

import "strconv"

// ValueType tags the variant held by a PropertyValue.
type ValueType int

// Value variants.
const (
	ValueOpaque ValueType = iota
	ValueBool
	ValueNumber
	ValueString
)

func (t ValueType) String() string {
	switch t {
	case ValueBool:
		return "bool"
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	default:
		return "opaque"
	}
}

// PropertyValue is a literal argument value. Non-literal expressions are
// Opaque: Raw holds their exact source text and they can only be replaced
// wholesale.
type PropertyValue struct {
	Type   ValueType
	Bool   bool
	Number float64
	Str    string
	Raw    string // source text as written
}

// BoolValue builds a boolean value.
func BoolValue(b bool) PropertyValue {
	return PropertyValue{Type: ValueBool, Bool: b, Raw: strconv.FormatBool(b)}
}

// NumberValue builds a numeric value.
func NumberValue(f float64) PropertyValue {
	return PropertyValue{Type: ValueNumber, Number: f, Raw: strconv.FormatFloat(f, 'f', -1, 64)}
}

// StringValue builds a string value. Raw is left empty; it is filled in when
// the value is formatted into source.
func StringValue(s string) PropertyValue {
	return PropertyValue{Type: ValueString, Str: s}
}

// OpaqueValue wraps an arbitrary expression.
func OpaqueValue(expr string) PropertyValue {
	return PropertyValue{Type: ValueOpaque, Raw: expr}
}

// IsLiteral reports whether the value can be edited in place.
func (v PropertyValue) IsLiteral() bool {
	return v.Type != ValueOpaque
}

// Equal compares the semantic content of two values. Number and string
// values ignore how they were spelled.
func (v PropertyValue) Equal(other PropertyValue) bool {
	if v.Type != other.Type {
		return false
	}

	switch v.Type {
	case ValueBool:
		return v.Bool == other.Bool
	case ValueNumber:
		return v.Number == other.Number
	case ValueString:
		return v.Str == other.Str
	default:
		return v.Raw == other.Raw
	}
}

// String renders the value for display.
func (v PropertyValue) String() string {
	switch v.Type {
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ValueString:
		return strconv.Quote(v.Str)
	default:
		return v.Raw
	}
}
