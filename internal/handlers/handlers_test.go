package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ferrodesign/devis/internal/catalog"
	"github.com/ferrodesign/devis/internal/configurator"
	"github.com/ferrodesign/devis/internal/mailer"
	"github.com/ferrodesign/devis/internal/models"
	"github.com/ferrodesign/devis/internal/services"
	"github.com/ferrodesign/devis/internal/workflow"
)

// recordingTransport captures outgoing messages; fail makes every send error.
type recordingTransport struct {
	sent []mailer.Message
	fail bool
}

func (rt *recordingTransport) Send(msg mailer.Message) error {
	if rt.fail {
		return errors.New("smtp down")
	}
	rt.sent = append(rt.sent, msg)
	return nil
}

type testEnv struct {
	mux    *http.ServeMux
	svc    *services.DevisService
	wizard *workflow.Manager
	mail   *recordingTransport
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Devis{}, &models.DevisItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	cat := catalog.Default()
	svc := services.NewDevisService(db, cat)
	wizard := workflow.NewManager(svc)
	mail := &recordingTransport{}

	ch := NewConfigurateurHandler(configurator.NewService(cat))
	dh := NewDemandeHandler(wizard, mail, "Ferro Design <devis@ferrodesign.fr>", "atelier@ferrodesign.fr")
	vh := NewDevisHandler(svc, mail, "Ferro Design <devis@ferrodesign.fr>", "atelier@ferrodesign.fr")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/configurateur/catalogue", ch.Catalogue)
	mux.HandleFunc("GET /api/configurateur/modele", ch.Modele)
	mux.HandleFunc("GET /api/configurateur/couleur/{code}", ch.Couleur)
	mux.HandleFunc("POST /api/demande", dh.Create)
	mux.HandleFunc("GET /api/demande/{id}", dh.Get)
	mux.HandleFunc("POST /api/demande/{id}/contact", dh.Contact)
	mux.HandleFunc("POST /api/demande/{id}/projet", dh.Projet)
	mux.HandleFunc("POST /api/demande/{id}/produit", dh.Produit)
	mux.HandleFunc("POST /api/demande/{id}/precedent", dh.Precedent)
	mux.HandleFunc("POST /api/demande/{id}/soumettre", dh.Soumettre)
	mux.HandleFunc("GET /api/devis", vh.List)
	mux.HandleFunc("GET /api/devis/{id}", vh.View)
	mux.HandleFunc("POST /api/devis/{id}/statut", vh.Transition)
	mux.HandleFunc("GET /api/devis/{id}/pdf", vh.PDF)
	mux.HandleFunc("POST /api/devis/{id}/envoyer", vh.Envoyer)

	return &testEnv{mux: mux, svc: svc, wizard: wizard, mail: mail}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// createQuote drives the wizard to a stored quote and returns its id.
func (e *testEnv) createQuote(t *testing.T) uint {
	t.Helper()
	d, err := e.svc.Create(
		models.ContactInfo{TypeClient: "particulier", Prenom: "Jean", Nom: "Dupont", Email: "jean.dupont@example.fr", Telephone: "0612345678"},
		models.ProjetInfo{Rue: "4 allée des Tilleuls", CodePostal: "95000", Ville: "Cergy", TypeProjet: "neuf", DelaiSouhaite: "1-3mois"},
		[]services.ProduitConfigure{{Famille: "portails", Style: "contemporain", Largeur: 3000, Hauteur: 1800, Materiau: "acier", Couleur: "ral7016"}},
	)
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	return d.ID
}

func TestCatalogueEndpoint(t *testing.T) {
	env := setupEnv(t)
	w := env.do(t, "GET", "/api/configurateur/catalogue", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	out := decode(t, w)
	familles, ok := out["familles"].([]any)
	if !ok || len(familles) != 6 {
		t.Errorf("familles = %v, want 6 entries", out["familles"])
	}
	if _, ok := out["couleurs"]; !ok {
		t.Error("couleurs missing from catalogue")
	}
}

func TestModeleEndpoint(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, "GET", "/api/configurateur/modele?famille=portails&style=contemporain&largeur=3000&hauteur=1600", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	w = env.do(t, "GET", "/api/configurateur/modele?famille=inexistante", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown family: status = %d, want 404", w.Code)
	}

	// unknown style degrades to the family default instead of erroring
	w = env.do(t, "GET", "/api/configurateur/modele?famille=portails&style=baroque", nil)
	if w.Code != http.StatusOK {
		t.Errorf("unknown style: status = %d, want 200", w.Code)
	}
}

func TestCouleurEndpointFallsBackToDefault(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, "GET", "/api/configurateur/couleur/ral9005", nil)
	out := decode(t, w)
	if out["code"] != "ral9005" || out["par_defaut"] != false {
		t.Errorf("known color: %v", out)
	}

	w = env.do(t, "GET", "/api/configurateur/couleur/ral9999", nil)
	out = decode(t, w)
	if out["code"] != "ral7016" {
		t.Errorf("unknown color resolved to %v, want ral7016", out["code"])
	}
	if out["par_defaut"] != true {
		t.Errorf("par_defaut = %v, want true", out["par_defaut"])
	}
}

func TestDemandeContactValidationTranslated(t *testing.T) {
	env := setupEnv(t)
	draft := decode(t, env.do(t, "POST", "/api/demande", nil))
	id := draft["id"].(string)

	req := httptest.NewRequest("POST", "/api/demande/"+id+"/contact",
		strings.NewReader(`{"type_client":"particulier","email":"pas-un-email"}`))
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	out := decode(t, w)
	if out["error"] != "validation_failed" {
		t.Errorf("error = %v", out["error"])
	}
	details := out["details"].(map[string]any)
	champs := details["champs"].(map[string]any)
	for _, field := range []string{"email", "telephone", "nom"} {
		if _, ok := champs[field]; !ok {
			t.Errorf("missing violation for %s: %v", field, champs)
		}
	}
	messages := details["messages"].(map[string]any)
	if msg, _ := messages["email"].(string); msg == "" || msg == "invalid_email" {
		t.Errorf("email message not translated: %q", msg)
	}
}

func TestDemandeStepOrderEnforced(t *testing.T) {
	env := setupEnv(t)
	draft := decode(t, env.do(t, "POST", "/api/demande", nil))
	id := draft["id"].(string)

	w := env.do(t, "POST", "/api/demande/"+id+"/projet", models.ProjetInfo{
		Rue: "4 allée des Tilleuls", CodePostal: "95000", Ville: "Cergy", TypeProjet: "neuf", DelaiSouhaite: "urgent",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("projet before contact: status = %d, want 400", w.Code)
	}
	if out := decode(t, w); out["error"] != "etape_invalide" {
		t.Errorf("error = %v", out["error"])
	}
}

func TestDevisViewAndTransition(t *testing.T) {
	env := setupEnv(t)
	id := env.createQuote(t)

	w := env.do(t, "GET", fmt.Sprintf("/api/devis/%d", id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("view: status = %d", w.Code)
	}
	out := decode(t, w)
	if out["statut_affiche"] != "en_attente" {
		t.Errorf("statut_affiche = %v", out["statut_affiche"])
	}

	// en_attente -> accepte is not a permitted edge
	w = env.do(t, "POST", fmt.Sprintf("/api/devis/%d/statut", id), map[string]string{"statut": "accepte"})
	if w.Code != http.StatusConflict {
		t.Errorf("invalid transition: status = %d, want 409", w.Code)
	}

	w = env.do(t, "POST", fmt.Sprintf("/api/devis/%d/statut", id), map[string]string{"statut": "envoye"})
	if w.Code != http.StatusOK {
		t.Fatalf("envoye: status = %d: %s", w.Code, w.Body.String())
	}
	w = env.do(t, "POST", fmt.Sprintf("/api/devis/%d/statut", id), map[string]string{"statut": "refuse"})
	if w.Code != http.StatusOK {
		t.Fatalf("refuse: status = %d", w.Code)
	}

	// refuse is terminal
	w = env.do(t, "POST", fmt.Sprintf("/api/devis/%d/statut", id), map[string]string{"statut": "accepte"})
	if w.Code != http.StatusConflict {
		t.Errorf("terminal transition: status = %d, want 409", w.Code)
	}

	w = env.do(t, "GET", "/api/devis/999999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing id: status = %d, want 404", w.Code)
	}
}

func TestDevisPDFEndpoint(t *testing.T) {
	env := setupEnv(t)
	id := env.createQuote(t)

	w := env.do(t, "GET", fmt.Sprintf("/api/devis/%d/pdf", id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %s", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF")
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "devis-DEV-") {
		t.Errorf("Content-Disposition = %s", cd)
	}
}

func TestDevisEnvoyer(t *testing.T) {
	env := setupEnv(t)
	id := env.createQuote(t)

	w := env.do(t, "POST", fmt.Sprintf("/api/devis/%d/envoyer", id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	out := decode(t, w)
	if out["statut"] != "envoye" {
		t.Errorf("statut = %v", out["statut"])
	}
	if len(env.mail.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(env.mail.sent))
	}
	msg := env.mail.sent[0]
	if msg.To != "jean.dupont@example.fr" {
		t.Errorf("To = %s", msg.To)
	}
	if len(msg.Attachment) == 0 || !strings.HasSuffix(msg.AttachmentName, ".pdf") {
		t.Errorf("attachment missing: name=%s len=%d", msg.AttachmentName, len(msg.Attachment))
	}

	// already envoye: a second send is an invalid transition
	w = env.do(t, "POST", fmt.Sprintf("/api/devis/%d/envoyer", id), nil)
	if w.Code != http.StatusConflict {
		t.Errorf("second envoyer: status = %d, want 409", w.Code)
	}
}

func TestDevisEnvoyerRefusesExpiredQuote(t *testing.T) {
	env := setupEnv(t)
	id := env.createQuote(t)
	d, err := env.svc.Get(id)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	env.svc.WithClock(func() time.Time { return d.DateExpiration.Add(time.Hour) })

	w := env.do(t, "POST", fmt.Sprintf("/api/devis/%d/envoyer", id), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	if out := decode(t, w); out["error"] != "statut_terminal" {
		t.Errorf("error = %v", out["error"])
	}
	// nothing left the building
	if len(env.mail.sent) != 0 {
		t.Errorf("sent %d messages, want 0", len(env.mail.sent))
	}
	d, err = env.svc.Get(id)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if d.Status != models.StatusEnAttente {
		t.Errorf("stored status = %s, want en_attente", d.Status)
	}
}

func TestDevisEnvoyerMailFailureLeavesStatus(t *testing.T) {
	env := setupEnv(t)
	id := env.createQuote(t)
	env.mail.fail = true

	w := env.do(t, "POST", fmt.Sprintf("/api/devis/%d/envoyer", id), nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	d, err := env.svc.Get(id)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if d.Status != models.StatusEnAttente {
		t.Errorf("status after failed mail = %s, want en_attente", d.Status)
	}
}

func TestDemandeDoubleSoumettre(t *testing.T) {
	env := setupEnv(t)
	draft := decode(t, env.do(t, "POST", "/api/demande", nil))
	id := draft["id"].(string)

	env.do(t, "POST", "/api/demande/"+id+"/contact", models.ContactInfo{
		TypeClient: "particulier", Prenom: "Jean", Nom: "Dupont",
		Email: "jean.dupont@example.fr", Telephone: "0612345678",
	})
	env.do(t, "POST", "/api/demande/"+id+"/projet", models.ProjetInfo{
		Rue: "4 allée des Tilleuls", CodePostal: "95000", Ville: "Cergy",
		TypeProjet: "neuf", DelaiSouhaite: "1-3mois",
	})
	env.do(t, "POST", "/api/demande/"+id+"/produit", services.ProduitConfigure{
		Famille: "portails", Style: "contemporain", Largeur: 3000, Hauteur: 1800,
		Materiau: "acier", Couleur: "ral7016",
	})

	w := env.do(t, "POST", "/api/demande/"+id+"/soumettre", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("first soumettre: status = %d: %s", w.Code, w.Body.String())
	}
	first := decode(t, w)
	numero := first["numero"].(string)

	w = env.do(t, "POST", "/api/demande/"+id+"/soumettre", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("second soumettre: status = %d, want 409", w.Code)
	}
	out := decode(t, w)
	if out["error"] != "deja_soumis" {
		t.Errorf("error = %v", out["error"])
	}
	details := out["details"].(map[string]any)
	if details["numero"] != numero {
		t.Errorf("numero in conflict = %v, want %s", details["numero"], numero)
	}
}
