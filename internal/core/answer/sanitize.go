package answer

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops bytes the grader prompt and chat messages should never carry:
// NUL and other ASCII controls except tab and line breaks, DEL, C1 controls and invalid UTF-8.
// Returns s unchanged when it is already clean
func Sanitize(s string) string {
	first := firstDirty(s)
	if first < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:first])
	for i := first; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		if keep(r) {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// firstDirty returns the byte offset of the first rune Sanitize would drop, -1 if none
func firstDirty(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size == 1) || !keep(r) {
			return i
		}
		i += size
	}
	return -1
}

func keep(r rune) bool {
	switch {
	case r == '\n', r == '\r', r == '\t':
		return true
	case r < 0x20, r == 0x7F:
		return false
	case r >= 0x80 && r <= 0x9F:
		return false
	default:
		return true
	}
}
