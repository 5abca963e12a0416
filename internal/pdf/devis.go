package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ferrodesign/devis/internal/models"
)

// AcompteRate is the deposit share shown on the document (30% du TTC),
// consumed downstream by the payment collaborator.
const AcompteRate = 0.30

var grey = props.Color{Red: 90, Green: 90, Blue: 90}

// RenderDevis builds the PDF document for a quote. Pure transformation of
// the quote value: no store access, no mutation, safe to re-run on retry.
func RenderDevis(d *models.Devis) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(7, "FERRO DESIGN — Ferronnerie & Métallerie", props.Text{Size: 15, Style: fontstyle.Bold}),
		text.NewCol(5, "DEVIS "+d.Numero, props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(7, "12 rue des Forges, 95310 Saint-Ouen-l'Aumône", props.Text{Size: 9, Color: &grey}),
		text.NewCol(5, "Date : "+d.DateDemande.Format("02/01/2006"), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(7, "contact@ferrodesign.fr — 01 34 64 00 00", props.Text{Size: 9, Color: &grey}),
		text.NewCol(5, "Valable jusqu'au : "+d.DateExpiration.Format("02/01/2006"), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8, line.NewCol(12, props.Line{SizePercent: 100}))

	m.AddRow(6, text.NewCol(12, "Client", props.Text{Size: 10, Style: fontstyle.Bold}))
	m.AddRow(5, text.NewCol(12, d.Contact.DisplayName(), props.Text{Size: 9}))
	m.AddRow(5, text.NewCol(12, d.Contact.Email+" — "+d.Contact.Telephone, props.Text{Size: 9, Color: &grey}))

	m.AddRow(6, text.NewCol(12, "Chantier", props.Text{Size: 10, Style: fontstyle.Bold}))
	m.AddRow(5, text.NewCol(12, fmt.Sprintf("%s, %s %s", d.Projet.Rue, d.Projet.CodePostal, d.Projet.Ville), props.Text{Size: 9}))
	m.AddRow(5, text.NewCol(12, "Projet : "+d.Projet.TypeProjet+" — Délai souhaité : "+d.Projet.DelaiSouhaite, props.Text{Size: 9, Color: &grey}))

	m.AddRow(10, itemHeader()...)
	for _, it := range d.Items {
		m.AddRows(itemRows(&it)...)
	}

	m.AddRow(8, line.NewCol(12, props.Line{SizePercent: 100}))
	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "Total HT", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, euros(d.TotalHT), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "TVA 20 %", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, euros(d.TotalTVA), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, "Total TTC", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, euros(d.TotalTTC), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "Acompte 30 %", props.Text{Size: 9, Align: align.Right, Color: &grey}),
		text.NewCol(2, euros(d.TotalTTC*AcompteRate), props.Text{Size: 9, Align: align.Right, Color: &grey}),
	)

	m.AddRow(12, text.NewCol(12,
		"Devis valable 30 jours à compter de la date d'émission. Acompte de 30 % à la commande, solde à la pose.",
		props.Text{Size: 8, Top: 4, Color: &grey}))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func itemHeader() []core.Col {
	h := props.Text{Size: 9, Style: fontstyle.Bold, Top: 2}
	hr := h
	hr.Align = align.Right
	return []core.Col{
		text.NewCol(5, "Désignation", h),
		text.NewCol(3, "Dimensions", h),
		text.NewCol(2, "Finition", h),
		text.NewCol(2, "Prix HT", hr),
	}
}

func itemRows(it *models.DevisItem) []core.Row {
	rows := []core.Row{
		row.New(6).Add(
			text.NewCol(5, it.Designation, props.Text{Size: 9}),
			text.NewCol(3, fmt.Sprintf("%.0f × %.0f mm", it.Largeur, it.Hauteur), props.Text{Size: 9}),
			text.NewCol(2, it.Materiau+" / "+it.Couleur, props.Text{Size: 9}),
			text.NewCol(2, euros(it.PrixHT), props.Text{Size: 9, Align: align.Right}),
		),
	}
	if opts := it.OptionCodes(); len(opts) > 0 {
		optLine := "Options : "
		for i, o := range opts {
			if i > 0 {
				optLine += ", "
			}
			optLine += o
		}
		rows = append(rows, row.New(5).Add(
			text.NewCol(12, optLine, props.Text{Size: 8, Left: 2, Color: &grey}),
		))
	}
	return rows
}

func euros(v float64) string {
	return fmt.Sprintf("%.2f €", v)
}
