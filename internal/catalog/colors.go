package catalog

// Color is a display color resolved from a RAL-style code.
type Color struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Hex   string `json:"hex"`
}

// ColorRegistry maps color codes to display colors. Lookup only.
type ColorRegistry struct {
	Colors  []Color
	Default Color
}

// Lookup returns the registered color and true, or the zero Color and false.
// Callers wanting the fallback behavior go through configurator.ResolveColor.
func (r *ColorRegistry) Lookup(code string) (Color, bool) {
	for _, c := range r.Colors {
		if c.Code == code {
			return c, true
		}
	}
	return Color{}, false
}
