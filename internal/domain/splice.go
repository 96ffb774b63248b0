package domain

import "strings"

// replaceRange returns text with [start, end) replaced. It reports false when
// the range does not fit the text.
func replaceRange(text string, start, end int, replacement string) (string, bool) {
	if start < 0 || end < start || end > len(text) {
		return text, false
	}

	var sb strings.Builder

	sb.Grow(len(text) - (end - start) + len(replacement))
	sb.WriteString(text[:start])
	sb.WriteString(replacement)
	sb.WriteString(text[end:])

	return sb.String(), true
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isSpace(c byte) bool {
	return isBlank(c) || c == '\n' || c == '\r'
}

// lineStart returns the offset of the first byte of the line holding pos.
func lineStart(text string, pos int) int {
	return strings.LastIndexByte(text[:pos], '\n') + 1
}

// lineIndent returns the leading blanks of the line holding pos.
func lineIndent(text string, pos int) string {
	start := lineStart(text, pos)
	end := start

	for end < len(text) && isBlank(text[end]) {
		end++
	}

	return text[start:end]
}

// beginsLine reports whether only blanks precede pos on its line.
func beginsLine(text string, pos int) bool {
	return strings.TrimLeft(text[lineStart(text, pos):pos], " \t") == ""
}

// skipBlanks advances from pos over spaces and tabs.
func skipBlanks(text string, pos int) int {
	for pos < len(text) && isBlank(text[pos]) {
		pos++
	}

	return pos
}

// trimSpaceBefore moves pos backwards over whitespace, never past limit.
func trimSpaceBefore(text string, pos, limit int) int {
	for pos > limit && isSpace(text[pos-1]) {
		pos--
	}

	return pos
}

// reindent prefixes every line after the first with indent.
func reindent(snippet, indent string) string {
	if !strings.Contains(snippet, "\n") {
		return snippet
	}

	lines := strings.Split(snippet, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			lines[i] = indent + lines[i]
		}
	}

	return strings.Join(lines, "\n")
}
