package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ferrodesign/devis/internal/httpx"
	"github.com/ferrodesign/devis/internal/i18n"
	"github.com/ferrodesign/devis/internal/mailer"
	"github.com/ferrodesign/devis/internal/models"
	"github.com/ferrodesign/devis/internal/services"
	"github.com/ferrodesign/devis/internal/validation"
	"github.com/ferrodesign/devis/internal/workflow"
)

// DemandeHandler drives the quote-request wizard over HTTP.
type DemandeHandler struct {
	Wizard      *workflow.Manager
	Mail        mailer.Transport
	MailFrom    string
	MailReplyTo string
}

func NewDemandeHandler(wizard *workflow.Manager, mail mailer.Transport, from, replyTo string) *DemandeHandler {
	return &DemandeHandler{Wizard: wizard, Mail: mail, MailFrom: from, MailReplyTo: replyTo}
}

// Create: POST /api/demande — opens a fresh draft.
func (h *DemandeHandler) Create(w http.ResponseWriter, r *http.Request) {
	d := h.Wizard.CreateDraft()
	httpx.JSON(w, http.StatusCreated, d)
}

// Get: GET /api/demande/{id}
func (h *DemandeHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.Wizard.Get(r.PathValue("id"))
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "draft_introuvable", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

// Contact: POST /api/demande/{id}/contact
func (h *DemandeHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var c models.ContactInfo
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	d, v, err := h.Wizard.SetContact(r.PathValue("id"), c)
	h.respondStep(w, r, d, v, err)
}

// Projet: POST /api/demande/{id}/projet
func (h *DemandeHandler) Projet(w http.ResponseWriter, r *http.Request) {
	var p models.ProjetInfo
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	d, v, err := h.Wizard.SetProjet(r.PathValue("id"), p)
	h.respondStep(w, r, d, v, err)
}

// Produit: POST /api/demande/{id}/produit — adds one configured item.
func (h *DemandeHandler) Produit(w http.ResponseWriter, r *http.Request) {
	var p services.ProduitConfigure
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	d, v, err := h.Wizard.AddProduit(r.PathValue("id"), p)
	h.respondStep(w, r, d, v, err)
}

// Precedent: POST /api/demande/{id}/precedent — steps back, keeping data.
func (h *DemandeHandler) Precedent(w http.ResponseWriter, r *http.Request) {
	d, err := h.Wizard.Back(r.PathValue("id"))
	h.respondStep(w, r, d, nil, err)
}

// Soumettre: POST /api/demande/{id}/soumettre — creates the quote and mails
// the confirmation. The confirmation email is best-effort: the quote exists
// once the store write succeeded, a mail failure only shows up in the
// response flag.
func (h *DemandeHandler) Soumettre(w http.ResponseWriter, r *http.Request) {
	devis, err := h.Wizard.Submit(r.PathValue("id"))
	if err != nil {
		d := workflow.Draft{}
		if errors.Is(err, workflow.ErrDejaSoumis) {
			// surface the numero of the already-created quote
			d, _ = h.Wizard.Get(r.PathValue("id"))
		}
		h.respondStep(w, r, d, nil, err)
		return
	}

	emailSent := false
	if h.Mail != nil {
		msg := mailer.RenderConfirmation(devis.Contact.DisplayName(), devis.Numero)
		msg.From = h.MailFrom
		msg.To = devis.Contact.Email
		msg.ReplyTo = h.MailReplyTo
		if err := mailer.SendWithRetry(h.Mail, msg, 3); err != nil {
			log.Printf("demande %s: email de confirmation non envoyé: %v", devis.Numero, err)
		} else {
			emailSent = true
		}
	}

	httpx.JSON(w, http.StatusCreated, map[string]any{
		"numero":          devis.Numero,
		"statut":          devis.Status,
		"total_ttc":       devis.TotalTTC,
		"date_expiration": devis.DateExpiration,
		"email_envoye":    emailSent,
	})
}

// respondStep maps workflow outcomes onto the HTTP surface: field violations
// are a 400 with translated messages, state violations a 409/404.
func (h *DemandeHandler) respondStep(w http.ResponseWriter, r *http.Request, d workflow.Draft, v validation.Violations, err error) {
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrDraftIntrouvable):
			httpx.JSONError(w, http.StatusNotFound, "draft_introuvable", nil)
		case errors.Is(err, workflow.ErrDejaSoumis):
			httpx.JSONError(w, http.StatusConflict, "deja_soumis", map[string]string{"numero": d.Numero})
		case errors.Is(err, workflow.ErrSoumissionEnCours):
			httpx.JSONError(w, http.StatusConflict, "soumission_en_cours", nil)
		case errors.Is(err, workflow.ErrEtapeInvalide):
			httpx.JSONError(w, http.StatusBadRequest, "etape_invalide", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "demande_failed", nil)
		}
		return
	}
	if v != nil && !v.Empty() {
		lang := i18n.RequestLang(r)
		httpx.ValidationFailed(w, v, i18n.TranslateViolations(lang, v))
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}
