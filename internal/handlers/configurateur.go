package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ferrodesign/devis/internal/configurator"
	"github.com/ferrodesign/devis/internal/httpx"
)

// ConfigurateurHandler exposes the model-resolution service to the 3D
// rendering layer.
type ConfigurateurHandler struct {
	Svc *configurator.Service
}

func NewConfigurateurHandler(svc *configurator.Service) *ConfigurateurHandler {
	return &ConfigurateurHandler{Svc: svc}
}

// Catalogue: GET /api/configurateur/catalogue
func (h *ConfigurateurHandler) Catalogue(w http.ResponseWriter, r *http.Request) {
	c := h.Svc.Catalog
	type styleOut struct {
		Code  string `json:"code"`
		Label string `json:"label"`
	}
	type familyOut struct {
		Code       string     `json:"code"`
		Label      string     `json:"label"`
		Styles     []styleOut `json:"styles"`
		MinLargeur float64    `json:"min_largeur"`
		MaxLargeur float64    `json:"max_largeur"`
		MinHauteur float64    `json:"min_hauteur"`
		MaxHauteur float64    `json:"max_hauteur"`
	}
	families := make([]familyOut, 0, len(c.Families))
	for _, f := range c.Families {
		styles := make([]styleOut, 0, len(f.Styles))
		for _, s := range f.Styles {
			styles = append(styles, styleOut{Code: s.Code, Label: s.Label})
		}
		families = append(families, familyOut{
			Code: f.Code, Label: f.Label, Styles: styles,
			MinLargeur: f.Dimensions.MinWidth, MaxLargeur: f.Dimensions.MaxWidth,
			MinHauteur: f.Dimensions.MinHeight, MaxHauteur: f.Dimensions.MaxHeight,
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"familles":  families,
		"materiaux": c.Materials,
		"options":   c.Options,
		"couleurs":  c.Colors.Colors,
	})
}

// Modele: GET /api/configurateur/modele?famille=&style=&largeur=&hauteur=&couleur=
// Returns the resolved template with the derived transform. Unknown style or
// color degrade to their documented fallbacks; unknown family is a 404.
func (h *ConfigurateurHandler) Modele(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	famille := q.Get("famille")
	if famille == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"famille": "required"})
		return
	}
	model, err := h.Svc.ResolveTemplate(famille, q.Get("style"))
	if err != nil {
		if errors.Is(err, configurator.ErrUnknownFamily) {
			httpx.JSONError(w, http.StatusNotFound, "unknown_family", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "resolution_failed", nil)
		return
	}
	dims := configurator.Dimensions{Width: model.BaseWidth, Height: model.BaseHeight}
	if v := q.Get("largeur"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			dims.Width = f
		}
	}
	if v := q.Get("hauteur"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			dims.Height = f
		}
	}
	transform, err := h.Svc.ResolveTransform(famille, q.Get("style"), q.Get("couleur"), dims)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_dimensions", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, transform)
}

// Couleur: GET /api/configurateur/couleur/{code}
// Always answers with a usable color; par_defaut tells the caller whether the
// code was actually registered.
func (h *ConfigurateurHandler) Couleur(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	_, known := h.Svc.Catalog.Colors.Lookup(code)
	c := h.Svc.ResolveColor(code)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"code":       c.Code,
		"label":      c.Label,
		"hex":        c.Hex,
		"par_defaut": !known,
	})
}
