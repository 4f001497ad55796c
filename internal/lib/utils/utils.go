// Package utils contains small helper functions used across the project.
package utils

import (
	"io"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars  = regexp.MustCompile(`[^\w\s-]`)
	slugSeparator = regexp.MustCompile(`[-\s]+`)
)

// Slugify lowercases s, drops accents and anything that is not a word
// character, space or hyphen, and collapses runs of spaces and hyphens
// into a single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if r > unicode.MaxASCII {
			continue
		}
		b.WriteRune(r)
	}

	slug := nonSlugChars.ReplaceAllString(strings.ToLower(b.String()), "")
	slug = slugSeparator.ReplaceAllString(strings.TrimSpace(slug), "-")
	return strings.Trim(slug, "-_")
}

// WriteQuotedCSV writes records with every field quoted. encoding/csv only
// quotes fields that need it, so the writer is done by hand.
func WriteQuotedCSV(w io.Writer, records [][]string) error {
	var b strings.Builder
	for _, record := range records {
		for i, field := range record {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteString("\r\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
