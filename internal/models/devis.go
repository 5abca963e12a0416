package models

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DevisStatus represents the lifecycle status of a quote.
type DevisStatus string

const (
	StatusEnAttente DevisStatus = "en_attente"
	StatusEnvoye    DevisStatus = "envoye"
	StatusAccepte   DevisStatus = "accepte"
	StatusRefuse    DevisStatus = "refuse"
	StatusExpire    DevisStatus = "expire"
)

// ValiditeJours is the quote validity window: expiration = demande + 30 jours.
const ValiditeJours = 30

var ErrStatutTerminal = errors.New("statut_terminal")

// ContactInfo est figé sur le devis au moment de la soumission.
type ContactInfo struct {
	TypeClient    string `gorm:"size:20;not null" json:"type_client"` // "particulier" ou "professionnel"
	Prenom        string `gorm:"size:100" json:"prenom"`
	Nom           string `gorm:"size:100" json:"nom"`
	RaisonSociale string `gorm:"size:255" json:"raison_sociale"`
	SIRET         string `gorm:"size:14" json:"siret,omitempty"`
	Email         string `gorm:"size:255;not null" json:"email"`
	Telephone     string `gorm:"size:30;not null" json:"telephone"`
}

// DisplayName returns the name to address the client by.
func (c ContactInfo) DisplayName() string {
	if c.TypeClient == "professionnel" && c.RaisonSociale != "" {
		return c.RaisonSociale
	}
	return strings.TrimSpace(c.Prenom + " " + c.Nom)
}

// ProjetInfo décrit le chantier.
type ProjetInfo struct {
	Rue           string `gorm:"size:255;not null" json:"rue"`
	CodePostal    string `gorm:"size:10;not null" json:"code_postal"`
	Ville         string `gorm:"size:100;not null" json:"ville"`
	TypeProjet    string `gorm:"size:30;not null" json:"type_projet"`     // neuf, renovation, extension
	DelaiSouhaite string `gorm:"size:30;not null" json:"delai_souhaite"`  // urgent, 1-3mois, 3-6mois, 6mois+
	PoseDemandee  bool   `json:"pose_demandee"`
	Commentaire   string `gorm:"type:text" json:"commentaire,omitempty"`
}

// Devis is the persisted quote record.
type Devis struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Numero string      `gorm:"size:20;uniqueIndex;not null" json:"numero"`
	Status DevisStatus `gorm:"size:20;not null;default:'en_attente'" json:"statut"`

	DateDemande    time.Time `gorm:"not null" json:"date_demande"`
	DateExpiration time.Time `gorm:"not null" json:"date_expiration"`

	Contact ContactInfo `gorm:"embedded;embeddedPrefix:contact_" json:"contact"`
	Projet  ProjetInfo  `gorm:"embedded;embeddedPrefix:projet_" json:"projet"`

	Items []DevisItem `gorm:"foreignKey:DevisID;constraint:OnDelete:CASCADE" json:"items"`

	TotalHT  float64 `gorm:"not null" json:"total_ht"`
	TotalTVA float64 `gorm:"not null" json:"total_tva"`
	TotalTTC float64 `gorm:"not null" json:"total_ttc"`
}

// TableName pins the table: "devis" is invariant in French, the default
// pluralizer mangles it.
func (Devis) TableName() string { return "devis" }

// DevisItem is one configured product attached to a quote, with its price
// frozen at creation time.
type DevisItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	DevisID uint `gorm:"index;not null" json:"devis_id"`

	Famille     string  `gorm:"size:50;not null" json:"famille"`
	Style       string  `gorm:"size:50;not null" json:"style"`
	Largeur     float64 `gorm:"not null" json:"largeur"` // mm
	Hauteur     float64 `gorm:"not null" json:"hauteur"` // mm
	Materiau    string  `gorm:"size:50;not null" json:"materiau"`
	Couleur     string  `gorm:"size:20;not null" json:"couleur"`
	Options     string  `gorm:"size:500" json:"options"` // codes triés, séparés par des virgules
	Designation string  `gorm:"size:255" json:"designation"`
	PrixHT      float64 `gorm:"not null" json:"prix_ht"`
}

func (DevisItem) TableName() string { return "devis_items" }

// OptionCodes splits the stored option list back into codes.
func (it *DevisItem) OptionCodes() []string {
	if it.Options == "" {
		return nil
	}
	return strings.Split(it.Options, ",")
}

// IsTerminal reports whether no further persisted transition is permitted.
func (d *Devis) IsTerminal() bool {
	switch d.Status {
	case StatusAccepte, StatusRefuse, StatusExpire:
		return true
	}
	return false
}

// CanTransition reports whether the persisted status may move to `to`.
// It does not look at the clock; expiry-by-time is DisplayStatus's business.
func (d *Devis) CanTransition(to DevisStatus) bool {
	switch d.Status {
	case StatusEnAttente:
		return to == StatusEnvoye || to == StatusExpire
	case StatusEnvoye:
		return to == StatusAccepte || to == StatusRefuse || to == StatusExpire
	}
	return false
}

// DisplayStatus derives the status to show for a given read time. A quote
// still en_attente/envoye past its expiration date reads as expire without
// any background job; every reader must go through this method so listings,
// the wizard and the back-office agree for the same `now`.
func (d *Devis) DisplayStatus(now time.Time) DevisStatus {
	if (d.Status == StatusEnAttente || d.Status == StatusEnvoye) && now.After(d.DateExpiration) {
		return StatusExpire
	}
	return d.Status
}

// Suffix alphabet avoids ambiguous characters (0/O, 1/I).
const numeroAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NumeroSuffix returns a random 4-character suffix. Randomness alone is not a
// uniqueness guarantee; GenerateNumero checks the store and the numero column
// carries a unique index as the last line of defense.
func NumeroSuffix() string {
	b := make([]byte, 4)
	for i := range b {
		b[i] = numeroAlphabet[rand.Intn(len(numeroAlphabet))]
	}
	return string(b)
}

// GenerateNumero produces a quote number DEV-<year>-<suffix> not currently in
// use. It retries on collision; concurrent creators racing past the check are
// caught by the unique index and retried at the service layer.
func GenerateNumero(db *gorm.DB, year int) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		numero := fmt.Sprintf("DEV-%d-%s", year, NumeroSuffix())
		var count int64
		if err := db.Model(&Devis{}).Where("numero = ?", numero).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return numero, nil
		}
	}
	return "", errors.New("numero_generation_exhausted")
}
