package workflow

import (
	"strings"

	"github.com/ferrodesign/devis/internal/catalog"
	"github.com/ferrodesign/devis/internal/models"
	"github.com/ferrodesign/devis/internal/services"
	"github.com/ferrodesign/devis/internal/validation"
)

var (
	TypesClient    = []string{"particulier", "professionnel"}
	TypesProjet    = []string{"neuf", "renovation", "extension"}
	DelaisSouhaite = []string{"urgent", "1-3mois", "3-6mois", "6mois+"}
)

const commentaireMaxLen = 2000

// ValidateContact normalises and validates the contact step in place.
func ValidateContact(c *models.ContactInfo) validation.Violations {
	v := validation.Violations{}
	c.Prenom = strings.TrimSpace(c.Prenom)
	c.Nom = strings.TrimSpace(c.Nom)
	c.RaisonSociale = strings.TrimSpace(c.RaisonSociale)
	c.SIRET = strings.TrimSpace(c.SIRET)
	c.Email = strings.TrimSpace(c.Email)
	c.Telephone = strings.TrimSpace(c.Telephone)

	validation.OneOf("type_client", c.TypeClient, TypesClient, v)
	if c.TypeClient == "professionnel" {
		validation.Required("raison_sociale", c.RaisonSociale, v)
		// SIRET facultatif, mais contrôlé quand fourni
		if c.SIRET != "" {
			if len(c.SIRET) != 14 {
				v["siret"] = "siret_length"
			} else {
				for _, r := range c.SIRET {
					if r < '0' || r > '9' {
						v["siret"] = "siret_digits"
						break
					}
				}
			}
		}
	} else {
		validation.Required("prenom", c.Prenom, v)
		validation.Required("nom", c.Nom, v)
	}
	validation.Email("email", c.Email, v)
	validation.Phone("telephone", c.Telephone, v)
	return v
}

// ValidateProjet validates the project step in place.
func ValidateProjet(p *models.ProjetInfo) validation.Violations {
	v := validation.Violations{}
	p.Rue = strings.TrimSpace(p.Rue)
	p.Ville = strings.TrimSpace(p.Ville)
	p.Commentaire = strings.TrimSpace(p.Commentaire)

	validation.Required("rue", p.Rue, v)
	validation.PostalCode("code_postal", p.CodePostal, v)
	validation.Required("ville", p.Ville, v)
	validation.OneOf("type_projet", p.TypeProjet, TypesProjet, v)
	validation.OneOf("delai_souhaite", p.DelaiSouhaite, DelaisSouhaite, v)
	validation.MaxLen("commentaire", p.Commentaire, commentaireMaxLen, v)
	return v
}

// ValidateProduit checks one configuration against the catalog. Strict on
// purpose: the graceful fallbacks of the resolution layer stop at this
// boundary, a quote never freezes an unknown style or color.
func ValidateProduit(c *catalog.Catalog, p *services.ProduitConfigure) validation.Violations {
	v := validation.Violations{}
	fam := c.FamilyByCode(p.Famille)
	if fam == nil {
		v["famille"] = "unknown_family"
		return v
	}
	if fam.StyleByCode(p.Style) == nil {
		v["style"] = "unknown_style"
	}
	validation.RangeFloat("largeur", p.Largeur, fam.Dimensions.MinWidth, fam.Dimensions.MaxWidth, v)
	validation.RangeFloat("hauteur", p.Hauteur, fam.Dimensions.MinHeight, fam.Dimensions.MaxHeight, v)
	if c.MaterialByCode(p.Materiau) == nil {
		v["materiau"] = "invalid_choice"
	}
	if _, ok := c.Colors.Lookup(p.Couleur); !ok {
		v["couleur"] = "unknown_color"
	}
	for _, code := range p.Options {
		if c.OptionByCode(code) == nil {
			v["options"] = "invalid_choice"
			break
		}
	}
	return v
}
