// Package answer cleans free text homework answers before they reach the grader
// Pipeline order
// 1 strip control bytes and invalid UTF-8 (Sanitize)
// 2 Unicode NFC so composed and decomposed input grade the same
// 3 drop format runes (zero-width space, joiners, BOM)
// 4 width fold fullwidth forms to ASCII, learners paste SQL from IMEs
// 5 trim trailing blanks per line, collapse runs of blank lines, trim edges
//
// Case and indentation are kept: answers are often code
package answer

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// Clean returns the normalized answer, empty when nothing printable is left
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}

	return tidyLines(ns)
}

// IsBlank reports whether s has no content once cleaned
func IsBlank(s string) bool { return Clean(s) == "" }

// Preview shortens s to at most n runes, appending an ellipsis when cut
func Preview(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return strings.TrimRight(s[:pos], " \t\n") + "…"
		}
		i++
	}
	return s
}

// tidyLines trims trailing whitespace on each line and keeps at most one blank line in a row
func tidyLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, ln := range lines {
		ln = strings.TrimRightFunc(ln, unicode.IsSpace)
		if ln == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, ln)
	}
	return strings.TrimFunc(strings.Join(out, "\n"), unicode.IsSpace)
}
