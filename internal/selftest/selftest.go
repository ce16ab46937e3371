// Package selftest runs a fixed battery of checks over the pure helpers at
// startup. Diagnostic only: results are logged and shown in the UI, nothing
// is gated on them.
package selftest

import (
	"fmt"

	"github.com/offerte-app/offerte/internal/format"
	"github.com/offerte-app/offerte/internal/models"
	"github.com/offerte-app/offerte/internal/services"
)

type Result struct {
	Name     string `json:"name"`
	Pass     bool   `json:"pass"`
	Expected string `json:"expected"`
	Got      string `json:"got"`
}

func check(name, expected, got string) Result {
	return Result{Name: name, Pass: expected == got, Expected: expected, Got: got}
}

// Run executes the battery and returns every result, pass or fail.
func Run() []Result {
	results := []Result{
		check("escapeHtml basis",
			"&quot;&amp;&lt;&gt;&#039;",
			format.EscapeHTML(`"&<>'`)),
		check("template bestaande key",
			"Hallo Klaas",
			format.Template("Hallo {{naam}}", map[string]string{"naam": "Klaas"})),
		check("template ontbrekende key",
			"Hallo ",
			format.Template("Hallo {{naam}}", map[string]string{})),
		check("sanitizeFilename",
			"a_b_c_.jpg",
			format.SanitizeFilename("a b/c?.jpg")),
		check("nl datum",
			"09-08-2025",
			format.Date("2025-08-09")),
	}

	totals := services.NewQuoteService().ComputeTotals([]models.LineItem{
		{Aantal: 2, Prijs: 10, BTW: 21},
	})
	results = append(results, check("totals voorbeeld",
		"24.2",
		fmt.Sprintf("%.1f", totals.Totaal)))
	return results
}

// AllPass reports whether the whole battery passed.
func AllPass(results []Result) bool {
	for _, r := range results {
		if !r.Pass {
			return false
		}
	}
	return true
}
