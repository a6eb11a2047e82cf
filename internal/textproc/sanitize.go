// Package textproc cleans raw OCR output and assembles per-area
// fragments into the final recognition result.
package textproc

import "strings"

// Sanitize maps a raw OCR fragment to its cleaned form.
//
// Two passes run in sequence: a character whitelist keeping ASCII
// letters, digits, spaces, the punctuation set ", . ! ?" and isolated
// interior newlines, then a whitespace pass collapsing space runs and
// stripping leading and trailing spaces. Everything else is dropped,
// not replaced. The transform is pure and deterministic; the result
// may be empty.
func Sanitize(s string) string {
	return collapseSpaces(stripForbidden(s))
}

// stripForbidden keeps only whitelisted characters. A newline survives
// only when it is interior to the string and not adjacent to another
// newline, so it can serve as a single line-break marker.
func stripForbidden(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9',
			c == ' ', c == ',', c == '.', c == '!', c == '?':
			b.WriteByte(c)
		case c == '\n':
			if i != 0 && i != len(s)-1 && s[i-1] != '\n' && s[i+1] != '\n' {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}

// collapseSpaces reduces every run of spaces to a single space and
// removes spaces at either end of the string. Non-space characters
// pass through unchanged.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == ' ' && (b.Len() == 0 || s[i-1] == ' ') {
			continue
		}
		b.WriteByte(s[i])
	}
	return strings.TrimRight(b.String(), " ")
}

// Assemble concatenates sanitized fragments into the final result.
//
// Each non-empty fragment is followed by a single separating space,
// including the last one; callers relying on an exact string should
// account for the trailing separator. Empty fragments are skipped.
// An all-empty fragment set yields the empty string.
func Assemble(fragments []string) string {
	var b strings.Builder
	for _, f := range fragments {
		if f == "" {
			continue
		}
		b.WriteString(f)
		b.WriteByte(' ')
	}
	return b.String()
}

// NormalizeWords removes repeated identical words from a result
// string, keeping the first occurrence of each and joining the rest
// with single spaces. The result carries no trailing separator.
//
// This is an optional post-processing step for inputs where detection
// produced overlapping regions that recognized the same word twice.
func NormalizeWords(s string) string {
	seen := make(map[string]struct{})
	var words []string
	for _, w := range strings.Split(s, " ") {
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}
