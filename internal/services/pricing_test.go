package services

import (
	"math"
	"reflect"
	"testing"

	"github.com/ferrodesign/devis/internal/catalog"
)

func pricingCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Families: []catalog.Family{
			{Code: "portails", Label: "Portails", BasePrice: 450, Styles: []catalog.Style{{Code: "contemporain", Label: "Contemporain"}}},
			{Code: "garde-corps", Label: "Garde-corps", BasePrice: 320, Styles: []catalog.Style{{Code: "barreaude", Label: "Barreaudé"}}},
		},
		Materials: []catalog.Material{
			{Code: "acier", Multiplier: 1.0},
			{Code: "inox", Multiplier: 1.6},
		},
		Options: []catalog.Option{
			{Code: "motorisation", Surcharge: 1200},
			{Code: "interphone", Surcharge: 450},
		},
	}
}

func TestComputePriceSingleItem(t *testing.T) {
	c := pricingCatalog()
	// 3000x1600mm portail acier = 450 * 4.8m² * 1.0 = 2160 HT
	m, lignes, err := ComputePrice(c, []ProduitConfigure{
		{Famille: "portails", Style: "contemporain", Largeur: 3000, Hauteur: 1600, Materiau: "acier"},
	})
	if err != nil {
		t.Fatalf("ComputePrice: %v", err)
	}
	if math.Abs(m.SousTotalHT-2160) > 1e-9 {
		t.Errorf("SousTotalHT = %f, want 2160", m.SousTotalHT)
	}
	if math.Abs(m.TVA-432) > 1e-9 {
		t.Errorf("TVA = %f, want 432", m.TVA)
	}
	if math.Abs(m.TotalTTC-2592) > 1e-9 {
		t.Errorf("TotalTTC = %f, want 2592", m.TotalTTC)
	}
	if len(lignes) != 1 || math.Abs(lignes[0]-2160) > 1e-9 {
		t.Errorf("lignes = %v", lignes)
	}
}

func TestComputePriceMaterialAndOptions(t *testing.T) {
	c := pricingCatalog()
	// 2000x1000 garde-corps inox = 320 * 2m² * 1.6 = 1024, + 450 interphone
	m, _, err := ComputePrice(c, []ProduitConfigure{
		{Famille: "garde-corps", Largeur: 2000, Hauteur: 1000, Materiau: "inox", Options: []string{"interphone", "interphone"}},
	})
	if err != nil {
		t.Fatalf("ComputePrice: %v", err)
	}
	// duplicate option collapses: surcharge counted once
	if math.Abs(m.SousTotalHT-1474) > 1e-9 {
		t.Errorf("SousTotalHT = %f, want 1474", m.SousTotalHT)
	}
	if m.TotalTTC <= m.SousTotalHT {
		t.Errorf("TTC must exceed HT: %+v", m)
	}
}

func TestComputePriceRoundsOnceAtEnd(t *testing.T) {
	c := &catalog.Catalog{
		Families:  []catalog.Family{{Code: "f", BasePrice: 0.333, Styles: []catalog.Style{{Code: "s"}}}},
		Materials: []catalog.Material{{Code: "m", Multiplier: 1}},
	}
	// each line is 0.333 * 1m² = 0.333 -> displayed 0.33, but the subtotal of
	// ten lines is 3.33, not 3.30
	produits := make([]ProduitConfigure, 10)
	for i := range produits {
		produits[i] = ProduitConfigure{Famille: "f", Largeur: 1000, Hauteur: 1000, Materiau: "m"}
	}
	m, lignes, err := ComputePrice(c, produits)
	if err != nil {
		t.Fatalf("ComputePrice: %v", err)
	}
	if math.Abs(lignes[0]-0.33) > 1e-9 {
		t.Errorf("ligne = %f, want 0.33", lignes[0])
	}
	if math.Abs(m.SousTotalHT-3.33) > 1e-9 {
		t.Errorf("SousTotalHT = %f, want 3.33 (no per-line rounding drift)", m.SousTotalHT)
	}
}

func TestComputePriceErrors(t *testing.T) {
	c := pricingCatalog()
	if _, _, err := ComputePrice(c, nil); err == nil {
		t.Error("empty configuration must error")
	}
	if _, _, err := ComputePrice(c, []ProduitConfigure{{Famille: "igloos", Largeur: 1, Hauteur: 1, Materiau: "acier"}}); err == nil {
		t.Error("unknown family must error")
	}
	if _, _, err := ComputePrice(c, []ProduitConfigure{{Famille: "portails", Largeur: 1000, Hauteur: 1000, Materiau: "carton"}}); err == nil {
		t.Error("unknown material must error")
	}
	if _, _, err := ComputePrice(c, []ProduitConfigure{{Famille: "portails", Largeur: 0, Hauteur: 1000, Materiau: "acier"}}); err == nil {
		t.Error("zero width must error")
	}
	if _, _, err := ComputePrice(c, []ProduitConfigure{{Famille: "portails", Largeur: 1000, Hauteur: 1000, Materiau: "acier", Options: []string{"jacuzzi"}}}); err == nil {
		t.Error("unknown option must error")
	}
}

func TestNormalizeOptions(t *testing.T) {
	got := NormalizeOptions([]string{"pose", "motorisation", "pose", " ", "interphone"})
	want := []string{"interphone", "motorisation", "pose"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeOptions = %v, want %v", got, want)
	}
}
