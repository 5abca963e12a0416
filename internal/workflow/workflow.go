package workflow

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/ferrodesign/devis/internal/models"
	"github.com/ferrodesign/devis/internal/services"
	"github.com/ferrodesign/devis/internal/validation"
)

// Step identifies the wizard position.
type Step string

const (
	StepContact       Step = "contact"
	StepProjet        Step = "projet"
	StepConfiguration Step = "configuration"
	StepSoumis        Step = "soumis"
)

var (
	ErrDraftIntrouvable  = errors.New("draft_introuvable")
	ErrEtapeInvalide     = errors.New("etape_invalide")
	ErrSoumissionEnCours = errors.New("soumission_en_cours")
	ErrDejaSoumis        = errors.New("deja_soumis")
)

// Draft accumulates wizard input until submission. It is returned by value
// from the manager so callers never hold a reference into the store.
type Draft struct {
	ID          string                      `json:"id"`
	Step        Step                        `json:"etape"`
	Contact     models.ContactInfo          `json:"contact"`
	ContactDone bool                        `json:"contact_valide"`
	Projet      models.ProjetInfo           `json:"projet"`
	ProjetDone  bool                        `json:"projet_valide"`
	Produits    []services.ProduitConfigure `json:"produits"`
	Numero      string                      `json:"numero,omitempty"`
}

type draftState struct {
	draft      Draft
	submitting bool
}

// Manager owns the in-memory draft store. Drafts are single-user and
// session-scoped; the mutex only guards against a double-submit race from
// the same draft (double click, retried request).
type Manager struct {
	mu     sync.Mutex
	drafts map[string]*draftState
	devis  *services.DevisService
}

func NewManager(devis *services.DevisService) *Manager {
	return &Manager{drafts: make(map[string]*draftState), devis: devis}
}

// CreateDraft opens a new empty draft at the contact step.
func (m *Manager) CreateDraft() Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := Draft{ID: uuid.NewString(), Step: StepContact}
	m.drafts[d.ID] = &draftState{draft: d}
	return d
}

// Get returns a snapshot of the draft.
func (m *Manager) Get(id string) (Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.drafts[id]
	if !ok {
		return Draft{}, ErrDraftIntrouvable
	}
	return st.draft, nil
}

// SetContact validates and stores the contact step. Re-entering the step
// after navigating back overwrites the previous values without losing the
// later steps.
func (m *Manager) SetContact(id string, c models.ContactInfo) (Draft, validation.Violations, error) {
	v := ValidateContact(&c)
	return m.update(id, func(st *draftState) error {
		if st.draft.Step == StepSoumis {
			return ErrDejaSoumis
		}
		if !v.Empty() {
			return nil
		}
		st.draft.Contact = c
		st.draft.ContactDone = true
		if st.draft.Step == StepContact {
			st.draft.Step = StepProjet
		}
		return nil
	}, v)
}

// SetProjet validates and stores the project step; requires a validated
// contact step first.
func (m *Manager) SetProjet(id string, p models.ProjetInfo) (Draft, validation.Violations, error) {
	v := ValidateProjet(&p)
	return m.update(id, func(st *draftState) error {
		if st.draft.Step == StepSoumis {
			return ErrDejaSoumis
		}
		if !st.draft.ContactDone {
			return ErrEtapeInvalide
		}
		if !v.Empty() {
			return nil
		}
		st.draft.Projet = p
		st.draft.ProjetDone = true
		if st.draft.Step == StepProjet {
			st.draft.Step = StepConfiguration
		}
		return nil
	}, v)
}

// AddProduit appends one configured product to the draft. The workflow is
// the strict boundary: unknown families, styles, materials, colors and
// out-of-range dimensions are validation errors here, even though the
// resolution layer would degrade gracefully.
func (m *Manager) AddProduit(id string, p services.ProduitConfigure) (Draft, validation.Violations, error) {
	p.Options = services.NormalizeOptions(p.Options)
	v := ValidateProduit(m.devis.Catalog(), &p)
	return m.update(id, func(st *draftState) error {
		if st.draft.Step == StepSoumis {
			return ErrDejaSoumis
		}
		if !st.draft.ContactDone || !st.draft.ProjetDone {
			return ErrEtapeInvalide
		}
		if !v.Empty() {
			return nil
		}
		st.draft.Produits = append(st.draft.Produits, p)
		return nil
	}, v)
}

// Back steps the wizard backward one step. Accumulated data is preserved.
func (m *Manager) Back(id string) (Draft, error) {
	d, _, err := m.update(id, func(st *draftState) error {
		switch st.draft.Step {
		case StepProjet:
			st.draft.Step = StepContact
		case StepConfiguration:
			st.draft.Step = StepProjet
		case StepSoumis:
			return ErrDejaSoumis
		}
		return nil
	}, nil)
	return d, err
}

// Submit creates the quote from the accumulated draft. Submission is
// single-use: a second attempt while one is in flight is rejected, and a
// draft already submitted returns ErrDejaSoumis with the numero preserved
// on the draft.
func (m *Manager) Submit(id string) (*models.Devis, error) {
	m.mu.Lock()
	st, ok := m.drafts[id]
	if !ok {
		m.mu.Unlock()
		return nil, ErrDraftIntrouvable
	}
	if st.draft.Step == StepSoumis {
		m.mu.Unlock()
		return nil, ErrDejaSoumis
	}
	if st.submitting {
		m.mu.Unlock()
		return nil, ErrSoumissionEnCours
	}
	if !st.draft.ContactDone || !st.draft.ProjetDone || len(st.draft.Produits) == 0 {
		m.mu.Unlock()
		return nil, ErrEtapeInvalide
	}
	st.submitting = true
	contact, projet, produits := st.draft.Contact, st.draft.Projet, st.draft.Produits
	m.mu.Unlock()

	devis, err := m.devis.Create(contact, projet, produits)

	m.mu.Lock()
	defer m.mu.Unlock()
	st.submitting = false
	if err != nil {
		return nil, err
	}
	// terminal display state: keep only the numero, clear the accumulated data
	st.draft = Draft{ID: st.draft.ID, Step: StepSoumis, Numero: devis.Numero}
	return devis, nil
}

// update runs fn under the lock and returns the resulting snapshot.
func (m *Manager) update(id string, fn func(*draftState) error, v validation.Violations) (Draft, validation.Violations, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.drafts[id]
	if !ok {
		return Draft{}, v, ErrDraftIntrouvable
	}
	if err := fn(st); err != nil {
		return st.draft, v, err
	}
	return st.draft, v, nil
}
