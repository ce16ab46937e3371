package models

import (
	"encoding/json"
	"regexp"
	"testing"
)

func TestNumCoercion(t *testing.T) {
	var it LineItem
	payload := `{"omschrijving":"x","aantal":"abc","prijs":null,"btw":"21"}`
	if err := json.Unmarshal([]byte(payload), &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if it.Aantal != 0 {
		t.Errorf("non-numeric aantal should coerce to 0, got %v", it.Aantal)
	}
	if it.Prijs != 0 {
		t.Errorf("null prijs should coerce to 0, got %v", it.Prijs)
	}
	if it.BTW != 21 {
		t.Errorf("quoted btw should parse, got %v", it.BTW)
	}
}

func TestParseNum(t *testing.T) {
	cases := map[string]Num{
		"2":    2,
		"2,5":  2.5,
		"2.5":  2.5,
		"":     0,
		"abc":  0,
		" 10 ": 10,
	}
	for in, want := range cases {
		if got := ParseNum(in); got != want {
			t.Errorf("ParseNum(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewDocumentDefaults(t *testing.T) {
	d := NewDocument()
	if len(d.Items) != 1 {
		t.Fatalf("expected one default item, got %d", len(d.Items))
	}
	it := d.Items[0]
	if it.Aantal != 1 || it.Prijs != 0 || it.BTW != 21 {
		t.Errorf("default item = %+v", it)
	}
	if !regexp.MustCompile(`^OFF-\d{4}-\d{4}$`).MatchString(d.Offerte.Nummer) {
		t.Errorf("quote number %q does not match OFF-<year>-<4 digits>", d.Offerte.Nummer)
	}
	if d.EmailCfg.Provider != ProviderEmailJS {
		t.Errorf("provider = %q", d.EmailCfg.Provider)
	}
	if d.EmailCfg.Onderwerp == "" || d.EmailCfg.BerichtIntro == "" {
		t.Error("message templates should have defaults")
	}
}

func TestNormalize(t *testing.T) {
	d := &Document{Fotos: []Photo{{Naam: "a.jpg", Data: []byte{1}}}}
	d.Normalize()
	if len(d.Items) != 1 {
		t.Fatal("empty item list must be replaced with one default item")
	}
	if d.Fotos[0].ID == "" {
		t.Error("photo should receive a display handle")
	}
	if d.Fotos[0].MimeType != "image/jpeg" {
		t.Errorf("photo mime fallback = %q", d.Fotos[0].MimeType)
	}
	if d.EmailCfg.Provider != ProviderEmailJS {
		t.Error("provider tag should default")
	}
}
