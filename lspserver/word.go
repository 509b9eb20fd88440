package lspserver

import "strings"

// wordAt expands left and right from offset across [A-Za-z0-9_] to find the
// maximal identifier containing or adjacent to the cursor. Returns "" if
// the cursor sits on no identifier character on either side.
func wordAt(line string, column int) string {
	isWordByte := func(c byte) bool {
		return c == '_' ||
			(c >= 'a' && c <= 'z') ||
			(c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9')
	}

	if column < 0 || column > len(line) {
		return ""
	}

	start := column
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	end := column
	for end < len(line) && isWordByte(line[end]) {
		end++
	}
	if start == end {
		return ""
	}
	return line[start:end]
}

// lineAt returns the content's 0-indexed line, or "" if out of range.
func lineAt(content string, lineNum int) string {
	lines := strings.Split(content, "\n")
	if lineNum < 0 || lineNum >= len(lines) {
		return ""
	}
	return strings.TrimRight(lines[lineNum], "\r")
}
