package model

import "strings"

// placeholders are enrichment artifacts that mean "no data". The set is
// shared by every scorer and by upstream import code so nobody re-derives
// their own list.
var placeholders = map[string]struct{}{
	"":        {},
	"-":       {},
	"n/a":     {},
	"na":      {},
	"none":    {},
	"null":    {},
	"tbd":     {},
	"tba":     {},
	"unknown": {},
}

// CleanText trims s and returns "" when the remainder is a placeholder.
func CleanText(s string) string {
	t := strings.TrimSpace(s)
	if _, ok := placeholders[strings.ToLower(t)]; ok {
		return ""
	}
	return t
}

// TextOf dereferences an optional string through CleanText.
func TextOf(p *string) string {
	if p == nil {
		return ""
	}
	return CleanText(*p)
}

// HasText reports whether an optional string carries real content.
func HasText(p *string) bool {
	return TextOf(p) != ""
}

// CleanList drops placeholder entries and trims the rest, preserving order.
func CleanList(items []string) []string {
	var out []string
	for _, it := range items {
		if c := CleanText(it); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// JoinText concatenates the non-placeholder parts with a single space,
// for building keyword haystacks.
func JoinText(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if c := CleanText(p); c != "" {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(c)
		}
	}
	return b.String()
}
