// Package format holds the pure text helpers used by the renderer and the
// dispatch pipeline: currency and date rendering for the fixed nl-NL locale,
// filename sanitization, HTML escaping and placeholder substitution.
//
// Every function here is total: any string input yields a string output and
// no error is ever returned.
package format

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Dutch)

// Currency renders an amount as Dutch euros: two decimals, comma decimal
// separator, dot grouping. Deterministic for a given input.
func Currency(amount float64) string {
	return printer.Sprintf("€ %v", number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Date converts an ISO calendar date (YYYY-MM-DD) to the Dutch short display
// form DD-MM-YYYY. Malformed input is returned unchanged.
func Date(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02-01-2006")
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// SanitizeFilename replaces every character outside [a-zA-Z0-9_.-] with an
// underscore. Empty input maps to "bestand".
func SanitizeFilename(name string) string {
	if name == "" {
		return "bestand"
	}
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// htmlEscaper replaces the five reserved characters with their named
// entities. A single pass over the original characters, so already inserted
// entities are never escaped twice.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes &, <, >, " and ' for safe interpolation into markup.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

var placeholderRe = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// Template replaces every {{ name }} placeholder with its mapped value.
// Names absent from vars substitute to the empty string. Substituted values
// are not rescanned (single pass).
func Template(s string, vars map[string]string) string {
	if s == "" {
		return ""
	}
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		return vars[name]
	})
}
