package configurator

import (
	"errors"
	"fmt"
	"log"

	"github.com/ferrodesign/devis/internal/catalog"
)

var ErrUnknownFamily = errors.New("unknown_family")

// Dimensions utilisateur, en millimètres.
type Dimensions struct {
	Width  float64 `json:"largeur"`
	Height float64 `json:"hauteur"`
}

// Service resolves (famille, style) pairs to geometric templates and derives
// the display transform for the 3D configurator. Unknown styles and colors
// degrade to a fallback rather than breaking the configurator; both cases are
// logged so the degradation stays observable.
type Service struct {
	Catalog *catalog.Catalog
}

func NewService(c *catalog.Catalog) *Service { return &Service{Catalog: c} }

// ResolveTemplate returns the geometric template for a (famille, style) pair.
// An unknown or empty style falls back to the family's first declared style;
// this is deliberate: the configurator must always have something to render.
// An unknown family has no possible fallback and is an error.
func (s *Service) ResolveTemplate(famille, style string) (catalog.ModelInfo, error) {
	fam := s.Catalog.FamilyByCode(famille)
	if fam == nil {
		return catalog.ModelInfo{}, fmt.Errorf("%w: %s", ErrUnknownFamily, famille)
	}
	if st := fam.StyleByCode(style); st != nil {
		return st.Model, nil
	}
	if len(fam.Styles) == 0 {
		return catalog.ModelInfo{}, fmt.Errorf("family %s has no styles", famille)
	}
	log.Printf("configurator: style %q inconnu pour famille %q, repli sur %q", style, famille, fam.Styles[0].Code)
	return fam.Styles[0].Model, nil
}

// ResolveColor returns the display color for a code. Unknown codes return the
// registry's single default color; callers must not treat the result as proof
// the code exists (use Catalog.Colors.Lookup for that).
func (s *Service) ResolveColor(code string) catalog.Color {
	if c, ok := s.Catalog.Colors.Lookup(code); ok {
		return c
	}
	log.Printf("configurator: couleur %q inconnue, repli sur %s", code, s.Catalog.Colors.Default.Code)
	return s.Catalog.Colors.Default
}

// ComputeScale derives the render scale from the ratio between current and
// base dimensions. Width and height scale linearly; depth follows
// 0.5 + 0.5*max(widthRatio, heightRatio) so that stretching a panel does not
// produce absurdly thick metal.
func ComputeScale(base, current Dimensions, baseScale [3]float64) ([3]float64, error) {
	if base.Width <= 0 || base.Height <= 0 {
		return [3]float64{}, fmt.Errorf("degenerate base dimensions %gx%g", base.Width, base.Height)
	}
	if current.Width <= 0 || current.Height <= 0 {
		return [3]float64{}, fmt.Errorf("degenerate current dimensions %gx%g", current.Width, current.Height)
	}
	wr := current.Width / base.Width
	hr := current.Height / base.Height
	maxRatio := wr
	if hr > maxRatio {
		maxRatio = hr
	}
	return [3]float64{
		baseScale[0] * wr,
		baseScale[1] * hr,
		baseScale[2] * (0.5 + 0.5*maxRatio),
	}, nil
}

// DerivedTransform bundles what the rendering layer needs for one configuration.
type DerivedTransform struct {
	BasePath string     `json:"base_path"`
	Scale    [3]float64 `json:"scale"`
	Position [3]float64 `json:"position"`
	Rotation [3]float64 `json:"rotation"`
	ColorHex string     `json:"couleur_hex"`
}

// ResolveTransform combines template resolution, scaling and color decoration.
func (s *Service) ResolveTransform(famille, style, couleur string, dims Dimensions) (DerivedTransform, error) {
	model, err := s.ResolveTemplate(famille, style)
	if err != nil {
		return DerivedTransform{}, err
	}
	scale, err := ComputeScale(Dimensions{Width: model.BaseWidth, Height: model.BaseHeight}, dims, model.BaseScale)
	if err != nil {
		return DerivedTransform{}, err
	}
	return DerivedTransform{
		BasePath: model.BasePath,
		Scale:    scale,
		Position: model.BasePosition,
		Rotation: model.BaseRotation,
		ColorHex: s.ResolveColor(couleur).Hex,
	}, nil
}
