package i18n

import (
	"context"
	"net/http"
	"strings"
)

type langKey struct{}

// WithLang returns a new context carrying an explicit language preference
// (lang cookie or ?lang= query, set by the server middleware).
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFrom reports the explicit language preference, if one was set.
func LangFrom(ctx context.Context) (string, bool) {
	lang, ok := ctx.Value(langKey{}).(string)
	return lang, ok && lang != ""
}

// RequestLang resolves the response language for a request: an explicit
// preference wins, the Accept-Language header is the fallback.
func RequestLang(r *http.Request) string {
	if lang, ok := LangFrom(r.Context()); ok {
		return lang
	}
	return DetectLanguage(r.Header.Get("Accept-Language"))
}

// DetectLanguage picks a supported language from an Accept-Language header.
// Anything that is not English falls back to French.
func DetectLanguage(acceptLang string) string {
	s := strings.ToLower(strings.TrimSpace(acceptLang))
	if strings.HasPrefix(s, "en") {
		return "en"
	}
	return "fr"
}

var translations = map[string]map[string]string{
	"fr": {
		"required":            "Requis",
		"invalid_email":       "Email invalide",
		"invalid_phone":       "Numéro de téléphone invalide",
		"invalid_postal_code": "Code postal invalide",
		"invalid_choice":      "Choix invalide",
		"too_long":            "Texte trop long",
		"out_of_range":        "Valeur hors limites",
		"unknown_family":      "Famille de produit inconnue",
		"unknown_style":       "Style inconnu",
		"unknown_color":       "Couleur inconnue",
		"siret_length":        "Le SIRET doit comporter 14 chiffres",
		"siret_digits":        "Le SIRET ne doit contenir que des chiffres",
		"statut_terminal":     "Le devis est dans un statut définitif",
		"deja_soumis":         "La demande a déjà été soumise",
	},
	"en": {
		"required":            "Required",
		"invalid_email":       "Invalid email",
		"invalid_phone":       "Invalid phone number",
		"invalid_postal_code": "Invalid postal code",
		"invalid_choice":      "Invalid choice",
		"too_long":            "Text too long",
		"out_of_range":        "Value out of range",
		"unknown_family":      "Unknown product family",
		"unknown_style":       "Unknown style",
		"unknown_color":       "Unknown color",
		"siret_length":        "SIRET must be 14 digits",
		"siret_digits":        "SIRET must contain digits only",
		"statut_terminal":     "Quote is in a terminal status",
		"deja_soumis":         "Request already submitted",
	},
}

// T translates an error/message code. Unknown languages fall back to French;
// unknown codes fall back to the code itself.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if lang != "fr" {
		if s, ok := translations["fr"][code]; ok {
			return s
		}
	}
	return code
}

// TranslateViolations maps field->code to field->human message.
func TranslateViolations(lang string, violations map[string]string) map[string]string {
	out := make(map[string]string, len(violations))
	for field, code := range violations {
		out[field] = T(lang, code)
	}
	return out
}
