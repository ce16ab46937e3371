package models

// Totals is derived from the line items and never stored; it is recomputed
// on every edit.
type Totals struct {
	Subtotaal float64 `json:"subtotaal"`
	BTWTotaal float64 `json:"btwTotaal"`
	Totaal    float64 `json:"totaal"`
}
