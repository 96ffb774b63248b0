package domain

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	m "github.com/mouse-blink/treesync/internal/model"
)

// Arg is one argument of a modifier call requested by the host. Name is
// empty for a positional argument.
type Arg struct {
	Name  string
	Value any
}

// FormatValue renders v as a source literal. Supported values are bools,
// integers, finite floats, strings and model.PropertyValue; an opaque
// PropertyValue is written verbatim.
func FormatValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", m.NewSyncError(m.ErrKindUnrepresentableValue, "nil value")
	case m.PropertyValue:
		return formatPropertyValue(val)
	case *m.PropertyValue:
		if val == nil {
			return "", m.NewSyncError(m.ErrKindUnrepresentableValue, "nil value")
		}

		return formatPropertyValue(*val)
	case bool:
		return strconv.FormatBool(val), nil
	case string:
		return QuoteString(val), nil
	case float32:
		return formatFloat(float64(val))
	case float64:
		return formatFloat(val)
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	default:
		return "", m.NewSyncError(m.ErrKindUnrepresentableValue, "unsupported type %T", v)
	}
}

func formatPropertyValue(v m.PropertyValue) (string, error) {
	switch v.Type {
	case m.ValueBool:
		return strconv.FormatBool(v.Bool), nil
	case m.ValueNumber:
		return formatFloat(v.Number)
	case m.ValueString:
		return QuoteString(v.Str), nil
	default:
		if strings.TrimSpace(v.Raw) == "" {
			return "", m.NewSyncError(m.ErrKindUnrepresentableValue, "empty expression")
		}

		return v.Raw, nil
	}
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", m.NewSyncError(m.ErrKindUnrepresentableValue, "non-finite number %v", f)
	}

	// whole numbers past the Long range only fit a Double literal
	if math.Abs(f) >= 1<<63 {
		return strconv.FormatFloat(f, 'e', -1, 64), nil
	}

	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// QuoteString renders s as a double-quoted string literal, escaping the
// template sigil too.
func QuoteString(s string) string {
	var sb strings.Builder

	sb.WriteByte('"')

	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '$':
			sb.WriteString(`\$`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		default:
			if r < 0x20 || r == utf8.RuneError {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}

	sb.WriteByte('"')

	return sb.String()
}

// ParseLiteral interprets a host-supplied string: true/false become
// booleans, numbers become numbers and anything else is a string.
func ParseLiteral(s string) m.PropertyValue {
	switch s {
	case "true":
		return m.BoolValue(true)
	case "false":
		return m.BoolValue(false)
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return m.NumberValue(f)
	}

	return m.StringValue(s)
}

func formatArgs(args []Arg) (string, error) {
	parts := make([]string, 0, len(args))

	for _, arg := range args {
		lit, err := FormatValue(arg.Value)
		if err != nil {
			return "", err
		}

		if arg.Name == "" {
			parts = append(parts, lit)
			continue
		}

		if !isIdentifier(arg.Name) {
			return "", m.NewSyncError(m.ErrKindUnrepresentableValue, "invalid argument name %q", arg.Name)
		}

		parts = append(parts, arg.Name+" = "+lit)
	}

	return strings.Join(parts, ", "), nil
}

var keywords = map[string]struct{}{
	"fun": {}, "val": {}, "var": {}, "if": {}, "else": {}, "when": {}, "for": {}, "while": {},
	"return": {}, "class": {}, "object": {}, "true": {}, "false": {}, "null": {}, "in": {}, "is": {},
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}

	if _, reserved := keywords[name]; reserved {
		return false
	}

	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}

		return false
	}

	return true
}

// DefaultSnippet is the source inserted when the palette adds an element of
// the given kind.
func DefaultSnippet(kind m.Kind) (string, bool) {
	switch kind {
	case m.KindText:
		return `Text(text = "Text")`, true
	case m.KindButton:
		return "Button(onClick = {}) {\n    Text(text = \"Button\")\n}", true
	case m.KindImage:
		return `Image(src = "")`, true
	case m.KindIcon:
		return `Icon(name = "star")`, true
	case m.KindSpacer:
		return "Spacer().height(8)", true
	case m.KindDivider:
		return "Divider()", true
	case m.KindTextField:
		return `TextField(value = "", onValueChange = {})`, true
	case m.KindCheckbox:
		return "Checkbox(checked = false, onCheckedChange = {})", true
	case m.KindSwitch:
		return "Switch(checked = false, onCheckedChange = {})", true
	case m.KindSlider:
		return "Slider(value = 0, onValueChange = {})", true
	case m.KindScaffold:
		return "Scaffold {\n}", true
	}

	if kind.IsContainer() {
		return string(kind) + " {\n}", true
	}

	return "", false
}
