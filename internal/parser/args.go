package parser

import (
	"strconv"
	"strings"

	m "github.com/mouse-blink/treesync/internal/model"
)

// arguments splits the tokens between from and to on top-level commas.
func (s *scanner) arguments(from, to int) []m.Argument {
	var (
		args  []m.Argument
		start = from
	)

	flush := func(end int) {
		if end > start {
			args = append(args, s.argument(start, end))
		}
	}

	for k := from; k < to; {
		tok := s.tokens[k]

		switch {
		case tok.Is("(") || tok.Is("{") || tok.Is("["):
			k = s.match[k] + 1
		case tok.Is(","):
			flush(k)
			k++
			start = k
		default:
			k++
		}
	}

	flush(to)

	return args
}

func (s *scanner) argument(from, to int) m.Argument {
	arg := m.Argument{Span: m.Span{Start: s.tokens[from].Start, End: s.tokens[to-1].End}}

	valueFrom := from
	if to-from >= 2 && s.tokens[from].Type == TokenIdent && s.tokens[from+1].Is("=") {
		arg.Name = s.tokens[from].Text
		valueFrom = from + 2
	}

	if valueFrom >= to {
		// `name =` with nothing after it
		arg.ValueSpan = m.Span{Start: arg.Span.End, End: arg.Span.End}
		arg.Value = m.OpaqueValue("")

		return arg
	}

	arg.ValueSpan = m.Span{Start: s.tokens[valueFrom].Start, End: s.tokens[to-1].End}
	arg.Value = literal(s.tokens[valueFrom:to], arg.ValueSpan.Text(s.text))

	return arg
}

// literal classifies a value expression. Only a bare string, number or
// boolean is a literal; anything else stays opaque.
func literal(tokens []Token, raw string) m.PropertyValue {
	switch len(tokens) {
	case 1:
		tok := tokens[0]

		switch {
		case tok.Type == TokenString && !tok.Template:
			return m.PropertyValue{Type: m.ValueString, Str: tok.Value, Raw: raw}
		case tok.Type == TokenNumber:
			if f, ok := ParseNumber(tok.Text); ok {
				return m.PropertyValue{Type: m.ValueNumber, Number: f, Raw: raw}
			}
		case tok.Type == TokenIdent && (tok.Text == "true" || tok.Text == "false"):
			return m.PropertyValue{Type: m.ValueBool, Bool: tok.Text == "true", Raw: raw}
		}
	case 2:
		sign, num := tokens[0], tokens[1]
		if (sign.Is("-") || sign.Is("+")) && num.Type == TokenNumber && sign.End == num.Start {
			if f, ok := ParseNumber(num.Text); ok {
				if sign.Is("-") {
					f = -f
				}

				return m.PropertyValue{Type: m.ValueNumber, Number: f, Raw: raw}
			}
		}
	}

	return m.OpaqueValue(raw)
}

// ParseNumber converts a numeric literal, including hex, digit separators
// and type suffixes, into a float64.
func ParseNumber(text string) (float64, bool) {
	clean := strings.ReplaceAll(text, "_", "")

	lower := strings.ToLower(clean)
	if strings.HasPrefix(lower, "0x") {
		clean = strings.TrimRight(clean, "uUL")

		v, err := strconv.ParseUint(clean[2:], 16, 64)
		if err != nil {
			return 0, false
		}

		return float64(v), true
	}

	clean = strings.TrimRight(clean, "fFuUL")

	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}
