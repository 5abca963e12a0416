package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ferrodesign/devis/internal/catalog"
)

// TauxTVA is the applicable VAT rate.
const TauxTVA = 0.20

// ProduitConfigure is one parametric product selection coming out of the 3D
// configurator, before it is priced and frozen onto a quote.
type ProduitConfigure struct {
	Famille  string   `json:"famille"`
	Style    string   `json:"style"`
	Largeur  float64  `json:"largeur"` // mm
	Hauteur  float64  `json:"hauteur"` // mm
	Materiau string   `json:"materiau"`
	Couleur  string   `json:"couleur"`
	Options  []string `json:"options"`
}

// NormalizeOptions sorts and deduplicates option codes: the selection is a
// set, insertion order and duplicates carry no meaning.
func NormalizeOptions(options []string) []string {
	seen := make(map[string]struct{}, len(options))
	out := make([]string, 0, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}

// Montants is the priced result of a configuration set.
type Montants struct {
	SousTotalHT float64 `json:"sous_total_ht"`
	TVA         float64 `json:"tva"`
	TotalTTC    float64 `json:"total_ttc"`
}

// prixItemHT computes the raw (unrounded) HT price of one configured item:
// base price per m² × surface × material multiplier + option surcharges.
func prixItemHT(c *catalog.Catalog, p ProduitConfigure) (float64, error) {
	fam := c.FamilyByCode(p.Famille)
	if fam == nil {
		return 0, fmt.Errorf("unknown_family: %s", p.Famille)
	}
	if p.Largeur <= 0 || p.Hauteur <= 0 {
		return 0, fmt.Errorf("invalid_dimensions: %gx%g", p.Largeur, p.Hauteur)
	}
	mat := c.MaterialByCode(p.Materiau)
	if mat == nil {
		return 0, fmt.Errorf("unknown_material: %s", p.Materiau)
	}
	surfaceM2 := (p.Largeur / 1000) * (p.Hauteur / 1000)
	prix := fam.BasePrice * surfaceM2 * mat.Multiplier
	for _, code := range NormalizeOptions(p.Options) {
		opt := c.OptionByCode(code)
		if opt == nil {
			return 0, fmt.Errorf("unknown_option: %s", code)
		}
		prix += opt.Surcharge
	}
	return prix, nil
}

// ComputePrice prices a configuration set. Line amounts are accumulated
// unrounded; HT, TVA and TTC are each rounded to the cent exactly once at the
// end so repeated per-line rounding cannot drift the total.
func ComputePrice(c *catalog.Catalog, produits []ProduitConfigure) (Montants, []float64, error) {
	if len(produits) == 0 {
		return Montants{}, nil, fmt.Errorf("empty_configuration")
	}
	lignes := make([]float64, 0, len(produits))
	sousTotal := decimal.Zero
	for _, p := range produits {
		prix, err := prixItemHT(c, p)
		if err != nil {
			return Montants{}, nil, err
		}
		lignes = append(lignes, roundCents(prix))
		sousTotal = sousTotal.Add(decimal.NewFromFloat(prix))
	}
	tva := sousTotal.Mul(decimal.NewFromFloat(TauxTVA))
	ttc := sousTotal.Add(tva)

	ht, _ := sousTotal.Round(2).Float64()
	tvaF, _ := tva.Round(2).Float64()
	ttcF, _ := ttc.Round(2).Float64()
	return Montants{SousTotalHT: ht, TVA: tvaF, TotalTTC: ttcF}, lignes, nil
}

// roundCents rounds a display amount to the nearest cent (half away from zero).
func roundCents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
