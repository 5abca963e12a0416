package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/ferrodesign/devis/internal/httpx"
	"github.com/ferrodesign/devis/internal/mailer"
	"github.com/ferrodesign/devis/internal/models"
	"github.com/ferrodesign/devis/internal/pdf"
	"github.com/ferrodesign/devis/internal/services"
)

// DevisHandler serves the back-office quote operations: listing, status
// transitions, PDF download and formal send.
type DevisHandler struct {
	Svc         *services.DevisService
	Mail        mailer.Transport
	MailFrom    string
	MailReplyTo string
}

func NewDevisHandler(svc *services.DevisService, mail mailer.Transport, from, replyTo string) *DevisHandler {
	return &DevisHandler{Svc: svc, Mail: mail, MailFrom: from, MailReplyTo: replyTo}
}

// List: GET /api/devis?limit=&page=&statut=
func (h *DevisHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	entries, total, err := h.Svc.List(limit, offset, r.URL.Query().Get("statut"))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_devis", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": entries, "total": total, "limit": limit, "offset": offset})
}

// View: GET /api/devis/{id}
func (h *DevisHandler) View(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"devis":          d,
		"statut_affiche": d.DisplayStatus(h.Svc.Now()),
	})
}

// Transition: POST /api/devis/{id}/statut with {"statut": "..."}
func (h *DevisHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req struct {
		Statut string `json:"statut"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Statut == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	d, err := h.Svc.Transition(id, models.DevisStatus(req.Statut))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		case errors.Is(err, models.ErrStatutTerminal):
			httpx.JSONError(w, http.StatusConflict, "statut_terminal", nil)
		case errors.Is(err, services.ErrTransitionInvalide):
			httpx.JSONError(w, http.StatusConflict, "transition_invalide", nil)
		case errors.Is(err, services.ErrDevisVide):
			httpx.JSONError(w, http.StatusBadRequest, "devis_vide", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "transition_failed", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": d.ID, "statut": d.Status})
}

// PDF: GET /api/devis/{id}/pdf
func (h *DevisHandler) PDF(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	data, err := pdf.RenderDevis(d)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="devis-`+d.Numero+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Envoyer: POST /api/devis/{id}/envoyer
// Renders the PDF, mails it to the client, then records the envoye
// transition. The quote only moves to envoye once delivery was accepted;
// rendering and mailing never mutate it.
func (h *DevisHandler) Envoyer(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	// derived status first: a quote past its expiration date must never be
	// mailed to the client as a formal offer
	if d.IsTerminal() || d.DisplayStatus(h.Svc.Now()) == models.StatusExpire {
		httpx.JSONError(w, http.StatusConflict, "statut_terminal", nil)
		return
	}
	if !d.CanTransition(models.StatusEnvoye) {
		httpx.JSONError(w, http.StatusConflict, "transition_invalide", nil)
		return
	}
	if len(d.Items) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "devis_vide", nil)
		return
	}
	data, err := pdf.RenderDevis(d)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	msg := mailer.RenderDevisEnvoye(d.Contact.DisplayName(), d.Numero, data)
	msg.From = h.MailFrom
	msg.To = d.Contact.Email
	msg.ReplyTo = h.MailReplyTo
	if err := mailer.SendWithRetry(h.Mail, msg, 3); err != nil {
		log.Printf("devis %s: envoi email échoué: %v", d.Numero, err)
		httpx.JSONError(w, http.StatusBadGateway, "mail_delivery_failed", nil)
		return
	}
	d2, err := h.Svc.Transition(d.ID, models.StatusEnvoye)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrStatutTerminal):
			httpx.JSONError(w, http.StatusConflict, "statut_terminal", nil)
		case errors.Is(err, services.ErrTransitionInvalide):
			httpx.JSONError(w, http.StatusConflict, "transition_invalide", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "transition_failed", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": d2.ID, "numero": d2.Numero, "statut": d2.Status})
}

func (h *DevisHandler) load(w http.ResponseWriter, r *http.Request) (*models.Devis, bool) {
	id, ok := parseID(w, r)
	if !ok {
		return nil, false
	}
	d, err := h.Svc.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		} else {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_devis", nil)
		}
		return nil, false
	}
	return d, true
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return 0, false
	}
	return uint(id), true
}
