package main

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/ferrodesign/devis/internal/catalog"
	"github.com/ferrodesign/devis/internal/configurator"
	"github.com/ferrodesign/devis/internal/handlers"
	"github.com/ferrodesign/devis/internal/i18n"
	"github.com/ferrodesign/devis/internal/mailer"
	"github.com/ferrodesign/devis/internal/services"
	"github.com/ferrodesign/devis/internal/workflow"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB
}

// NewApp wires the catalog, services and handlers onto a single mux.
func NewApp(db *gorm.DB, mail mailer.Transport, mailFrom, mailReplyTo string) *App {
	app := &App{
		mux: http.NewServeMux(),
		db:  db,
	}

	cat := catalog.Default()
	resolver := configurator.NewService(cat)
	devisSvc := services.NewDevisService(db, cat)
	wizard := workflow.NewManager(devisSvc)

	ch := handlers.NewConfigurateurHandler(resolver)
	dh := handlers.NewDemandeHandler(wizard, mail, mailFrom, mailReplyTo)
	vh := handlers.NewDevisHandler(devisSvc, mail, mailFrom, mailReplyTo)

	app.setupRoutes(ch, dh, vh)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	withPreferences(a.mux).ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes(ch *handlers.ConfigurateurHandler, dh *handlers.DemandeHandler, vh *handlers.DevisHandler) {
	// ─────────────────────────────────────────────────────────────────────────
	// Configurateur 3D (public, read-only)
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.HandleFunc("GET /api/configurateur/catalogue", ch.Catalogue)
	a.mux.HandleFunc("GET /api/configurateur/modele", ch.Modele)
	a.mux.HandleFunc("GET /api/configurateur/couleur/{code}", ch.Couleur)

	// ─────────────────────────────────────────────────────────────────────────
	// Demande de devis (public wizard)
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.HandleFunc("POST /api/demande", dh.Create)
	a.mux.HandleFunc("GET /api/demande/{id}", dh.Get)
	a.mux.HandleFunc("POST /api/demande/{id}/contact", dh.Contact)
	a.mux.HandleFunc("POST /api/demande/{id}/projet", dh.Projet)
	a.mux.HandleFunc("POST /api/demande/{id}/produit", dh.Produit)
	a.mux.HandleFunc("POST /api/demande/{id}/precedent", dh.Precedent)
	a.mux.HandleFunc("POST /api/demande/{id}/soumettre", dh.Soumettre)

	// ─────────────────────────────────────────────────────────────────────────
	// Devis (back-office)
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.HandleFunc("GET /api/devis", vh.List)
	a.mux.HandleFunc("GET /api/devis/{id}", vh.View)
	a.mux.HandleFunc("POST /api/devis/{id}/statut", vh.Transition)
	a.mux.HandleFunc("GET /api/devis/{id}/pdf", vh.PDF)
	a.mux.HandleFunc("POST /api/devis/{id}/envoyer", vh.Envoyer)
}

// withPreferences injects an explicit language preference (cookie or ?lang=)
// into the context. Without one, handlers fall back to Accept-Language via
// i18n.RequestLang.
func withPreferences(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := ""
		if c, err := r.Cookie("lang"); err == nil && c.Value != "" {
			lang = c.Value
		}
		if q := r.URL.Query().Get("lang"); q != "" {
			lang = q
			http.SetCookie(w, &http.Cookie{
				Name:     "lang",
				Value:    lang,
				Path:     "/",
				MaxAge:   86400 * 365,
				HttpOnly: true,
			})
		}
		if lang == "" {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}
