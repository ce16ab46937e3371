package format

import (
	"strings"
	"testing"
)

func TestCurrencyDutchConvention(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "€ 0,00"},
		{121, "€ 121,00"},
		{1234.5, "€ 1.234,50"},
		{0.05, "€ 0,05"},
	}
	for _, c := range cases {
		if got := Currency(c.in); got != c.want {
			t.Errorf("Currency(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCurrencyDeterministic(t *testing.T) {
	if Currency(99.9) != Currency(99.9) {
		t.Fatal("Currency is not deterministic")
	}
}

func TestDate(t *testing.T) {
	if got := Date("2025-08-09"); got != "09-08-2025" {
		t.Errorf("Date = %q, want 09-08-2025", got)
	}
	// malformed input comes back unchanged
	for _, bad := range []string{"niet-een-datum", "2025-13-45", "09/08/2025"} {
		if got := Date(bad); got != bad {
			t.Errorf("Date(%q) = %q, want input unchanged", bad, got)
		}
	}
	if got := Date(""); got != "" {
		t.Errorf("Date(\"\") = %q, want empty", got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := SanitizeFilename("a b/c?.jpg"); got != "a_b_c_.jpg" {
		t.Errorf("SanitizeFilename = %q, want a_b_c_.jpg", got)
	}
	if got := SanitizeFilename(""); got != "bestand" {
		t.Errorf("SanitizeFilename(\"\") = %q, want bestand", got)
	}
	if got := SanitizeFilename("rapport-2.pdf"); got != "rapport-2.pdf" {
		t.Errorf("SanitizeFilename left safe name %q", got)
	}
	// one underscore per disallowed character, adjacent ones included
	if got := SanitizeFilename("a  b??c"); got != "a__b__c" {
		t.Errorf("SanitizeFilename = %q, want a__b__c", got)
	}
}

func TestEscapeHTML(t *testing.T) {
	if got := EscapeHTML(`"&<>'`); got != "&quot;&amp;&lt;&gt;&#039;" {
		t.Errorf("EscapeHTML = %q", got)
	}
	// single pass: entities produced by escaping are not escaped again
	if got := EscapeHTML("&amp;"); got != "&amp;amp;" {
		t.Errorf("EscapeHTML(&amp;) = %q, want &amp;amp;", got)
	}
	if got := EscapeHTML(""); got != "" {
		t.Errorf("EscapeHTML(\"\") = %q", got)
	}
	if got := EscapeHTML("gewoon tekst"); got != "gewoon tekst" {
		t.Errorf("EscapeHTML changed plain text: %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if got := Template("Hallo {{naam}}", map[string]string{"naam": "Klaas"}); got != "Hallo Klaas" {
		t.Errorf("Template = %q, want Hallo Klaas", got)
	}
	if got := Template("Hallo {{naam}}", map[string]string{}); got != "Hallo " {
		t.Errorf("Template missing key = %q, want %q", got, "Hallo ")
	}
	if got := Template("Hallo {{ naam }}", map[string]string{"naam": "Klaas"}); got != "Hallo Klaas" {
		t.Errorf("Template with padded placeholder = %q", got)
	}
	if got := Template("", map[string]string{"naam": "Klaas"}); got != "" {
		t.Errorf("Template(\"\") = %q", got)
	}
	// substituted values are not rescanned
	got := Template("{{a}}", map[string]string{"a": "{{b}}", "b": "nee"})
	if got != "{{b}}" {
		t.Errorf("Template rescanned substituted value: %q", got)
	}
	// multiple placeholders in one string
	got = Template("{{a}} en {{b}}", map[string]string{"a": "PDF", "b": "foto"})
	if got != "PDF en foto" {
		t.Errorf("Template multi = %q", got)
	}
	if !strings.Contains(Template("x {{onbekend}} y", nil), "x  y") {
		t.Errorf("Template with nil vars should substitute empty string")
	}
}
