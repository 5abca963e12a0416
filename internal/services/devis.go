package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ferrodesign/devis/internal/catalog"
	"github.com/ferrodesign/devis/internal/models"
)

var (
	ErrDevisVide          = errors.New("devis_vide")
	ErrTransitionInvalide = errors.New("transition_invalide")
)

// DevisService owns quote creation, pricing and status transitions.
type DevisService struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	// now is injectable so expiry behavior is testable without sleeping.
	now func() time.Time
}

func NewDevisService(db *gorm.DB, c *catalog.Catalog) *DevisService {
	return &DevisService{db: db, catalog: c, now: time.Now}
}

// WithClock overrides the service clock. Tests only.
func (s *DevisService) WithClock(now func() time.Time) *DevisService {
	s.now = now
	return s
}

// Now exposes the service clock so read paths derive display statuses with
// the same rule and the same source of time.
func (s *DevisService) Now() time.Time { return s.now() }

// DB exposes the underlying handle for read paths in handlers.
func (s *DevisService) DB() *gorm.DB { return s.db }

// Catalog returns the injected catalog.
func (s *DevisService) Catalog() *catalog.Catalog { return s.catalog }

// Create prices the configured products and persists a new quote en_attente.
// The numero unique index is the authority on uniqueness: a concurrent
// creator that wins the race forces a retry with a fresh suffix.
func (s *DevisService) Create(contact models.ContactInfo, projet models.ProjetInfo, produits []ProduitConfigure) (*models.Devis, error) {
	if len(produits) == 0 {
		return nil, ErrDevisVide
	}
	montants, lignes, err := ComputePrice(s.catalog, produits)
	if err != nil {
		return nil, fmt.Errorf("pricing: %w", err)
	}

	now := s.now()
	items := make([]models.DevisItem, 0, len(produits))
	for i, p := range produits {
		fam := s.catalog.FamilyByCode(p.Famille)
		style := p.Style
		designation := p.Famille
		if fam != nil {
			designation = fam.Label
			if st := fam.StyleByCode(p.Style); st != nil {
				designation += " " + st.Label
			}
		}
		items = append(items, models.DevisItem{
			Famille:     p.Famille,
			Style:       style,
			Largeur:     p.Largeur,
			Hauteur:     p.Hauteur,
			Materiau:    p.Materiau,
			Couleur:     p.Couleur,
			Options:     strings.Join(NormalizeOptions(p.Options), ","),
			Designation: designation,
			PrixHT:      lignes[i],
		})
	}

	var devis *models.Devis
	// Bounded retry: numero collisions between the pre-check and the insert
	// surface as unique-index violations.
	for attempt := 0; attempt < 3; attempt++ {
		numero, err := models.GenerateNumero(s.db, now.Year())
		if err != nil {
			return nil, fmt.Errorf("numero: %w", err)
		}
		candidate := &models.Devis{
			Numero:         numero,
			Status:         models.StatusEnAttente,
			DateDemande:    now,
			DateExpiration: now.AddDate(0, 0, models.ValiditeJours),
			Contact:        contact,
			Projet:         projet,
			Items:          items,
			TotalHT:        montants.SousTotalHT,
			TotalTVA:       montants.TVA,
			TotalTTC:       montants.TotalTTC,
		}
		err = s.db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(candidate).Error
		})
		if err == nil {
			devis = candidate
			break
		}
		if isDuplicateNumero(err) {
			log.Printf("devis: collision numero %s, nouvel essai (%d)", numero, attempt+1)
			continue
		}
		return nil, fmt.Errorf("create devis: %w", err)
	}
	if devis == nil {
		return nil, errors.New("numero_collision_retries_exhausted")
	}
	return devis, nil
}

func isDuplicateNumero(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key")
}

// Get loads a quote with its items.
func (s *DevisService) Get(id uint) (*models.Devis, error) {
	var d models.Devis
	if err := s.db.Preload("Items").First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByNumero loads a quote by its human-facing code.
func (s *DevisService) GetByNumero(numero string) (*models.Devis, error) {
	var d models.Devis
	if err := s.db.Preload("Items").Where("numero = ?", numero).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// Transition moves a quote to a new persisted status. Terminal quotes reject
// every attempt; en_attente -> envoye additionally requires at least one item.
// Time-based expiry is applied first so a stale en_attente cannot sneak into
// envoye after its expiration date.
func (s *DevisService) Transition(id uint, to models.DevisStatus) (*models.Devis, error) {
	d, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if d.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", models.ErrStatutTerminal, d.Status)
	}
	if d.DisplayStatus(s.now()) == models.StatusExpire {
		// lazily persist what every reader already derives
		if to != models.StatusExpire {
			return nil, fmt.Errorf("%w: expire", models.ErrStatutTerminal)
		}
	}
	if !d.CanTransition(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTransitionInvalide, d.Status, to)
	}
	if to == models.StatusEnvoye && len(d.Items) == 0 {
		return nil, ErrDevisVide
	}
	if err := s.db.Model(d).Update("status", to).Error; err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	d.Status = to
	return d, nil
}

// ListEntry pairs a quote with its read-time display status.
type ListEntry struct {
	models.Devis
	StatutAffiche models.DevisStatus `json:"statut_affiche"`
}

// List returns quotes newest first, with display statuses derived against a
// single read-time now so one page is internally consistent. The status
// filter runs in SQL against the same derivation rule as DisplayStatus, so
// pagination and the total reflect the filtered set.
func (s *DevisService) List(limit, offset int, statut string) ([]ListEntry, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	now := s.now()
	filtered := func(q *gorm.DB) *gorm.DB {
		switch models.DevisStatus(statut) {
		case "":
			return q
		case models.StatusExpire:
			// expire is stored explicitly or derived from a stale active quote
			return q.Where("status = ? OR (status IN ? AND date_expiration < ?)",
				models.StatusExpire, []models.DevisStatus{models.StatusEnAttente, models.StatusEnvoye}, now)
		case models.StatusEnAttente, models.StatusEnvoye:
			return q.Where("status = ? AND date_expiration >= ?", statut, now)
		default:
			return q.Where("status = ?", statut)
		}
	}
	var total int64
	if err := filtered(s.db.Model(&models.Devis{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var devis []models.Devis
	if err := filtered(s.db.Preload("Items")).Order("id desc").Limit(limit).Offset(offset).Find(&devis).Error; err != nil {
		return nil, 0, err
	}
	entries := make([]ListEntry, 0, len(devis))
	for _, d := range devis {
		entries = append(entries, ListEntry{Devis: d, StatutAffiche: d.DisplayStatus(now)})
	}
	return entries, total, nil
}
