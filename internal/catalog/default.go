package catalog

// Default returns the production catalog. Dimensions in mm, prices in EUR HT.
func Default() *Catalog {
	return &Catalog{
		Families: []Family{
			{
				Code: "portails", Label: "Portails", BasePrice: 450,
				Dimensions: DimensionRange{MinWidth: 2000, MaxWidth: 5000, MinHeight: 1000, MaxHeight: 2200},
				Styles: []Style{
					{Code: "contemporain", Label: "Contemporain", Model: ModelInfo{
						BasePath: "models/portails/contemporain.glb", BaseScale: [3]float64{1, 1, 1},
						BasePosition: [3]float64{0, 0, 0}, BaseRotation: [3]float64{0, 0, 0},
						BaseWidth: 3000, BaseHeight: 1600,
					}},
					{Code: "traditionnel", Label: "Traditionnel", Model: ModelInfo{
						BasePath: "models/portails/traditionnel.glb", BaseScale: [3]float64{1, 1, 1},
						BasePosition: [3]float64{0, 0, 0}, BaseRotation: [3]float64{0, 0, 0},
						BaseWidth: 3000, BaseHeight: 1600,
					}},
					{Code: "ajoure", Label: "Ajouré", Model: ModelInfo{
						BasePath: "models/portails/ajoure.glb", BaseScale: [3]float64{1, 1, 1},
						BasePosition: [3]float64{0, 0, 0}, BaseRotation: [3]float64{0, 0, 0},
						BaseWidth: 3000, BaseHeight: 1600,
					}},
				},
			},
			{
				Code: "garde-corps", Label: "Garde-corps", BasePrice: 320,
				Dimensions: DimensionRange{MinWidth: 500, MaxWidth: 6000, MinHeight: 900, MaxHeight: 1200},
				Styles: []Style{
					{Code: "barreaude", Label: "Barreaudé", Model: ModelInfo{
						BasePath: "models/garde-corps/barreaude.glb", BaseScale: [3]float64{1, 1, 1},
						BasePosition: [3]float64{0, -0.5, 0}, BaseRotation: [3]float64{0, 0, 0},
						BaseWidth: 2000, BaseHeight: 1000,
					}},
					{Code: "vitre", Label: "Vitré", Model: ModelInfo{
						BasePath: "models/garde-corps/vitre.glb", BaseScale: [3]float64{1, 1, 1},
						BasePosition: [3]float64{0, -0.5, 0}, BaseRotation: [3]float64{0, 0, 0},
						BaseWidth: 2000, BaseHeight: 1000,
					}},
					{Code: "cables", Label: "Câbles", Model: ModelInfo{
						BasePath: "models/garde-corps/cables.glb", BaseScale: [3]float64{1, 1, 1},
						BasePosition: [3]float64{0, -0.5, 0}, BaseRotation: [3]float64{0, 0, 0},
						BaseWidth: 2000, BaseHeight: 1000,
					}},
				},
			},
			{
				Code: "escaliers", Label: "Escaliers", BasePrice: 780,
				Dimensions: DimensionRange{MinWidth: 700, MaxWidth: 1500, MinHeight: 2200, MaxHeight: 3500},
				Styles: []Style{
					{Code: "droit", Label: "Droit", Model: ModelInfo{
						BasePath: "models/escaliers/droit.glb", BaseScale: [3]float64{1, 1, 1},
						BasePosition: [3]float64{0, 0, 0}, BaseRotation: [3]float64{0, 0, 0},
						BaseWidth: 900, BaseHeight: 2700,
					}},
					{Code: "quart-tournant", Label: "Quart tournant", Model: ModelInfo{
						BasePath: "models/escaliers/quart-tournant.glb", BaseScale: [3]float64{1, 1, 1},
						BasePosition: [3]float64{0, 0, 0}, BaseRotation: [3]float64{0, 45, 0},
						BaseWidth: 900, BaseHeight: 2700,
					}},
					{Code: "helicoidal", Label: "Hélicoïdal", Model: ModelInfo{
						BasePath: "models/escaliers/helicoidal.glb", BaseScale: [3]float64{1, 1, 1},
						BasePosition: [3]float64{0, 0, 0}, BaseRotation: [3]float64{0, 0, 0},
						BaseWidth: 900, BaseHeight: 2700,
					}},
				},
			},
			{
				Code: "clotures", Label: "Clôtures", BasePrice: 180,
				Dimensions: DimensionRange{MinWidth: 1000, MaxWidth: 3000, MinHeight: 800, MaxHeight: 2000},
				Styles: []Style{
					{Code: "lames", Label: "Lames horizontales", Model: ModelInfo{
						BasePath: "models/clotures/lames.glb", BaseScale: [3]float64{1, 1, 1},
						BasePosition: [3]float64{0, 0, 0}, BaseRotation: [3]float64{0, 0, 0},
						BaseWidth: 2000, BaseHeight: 1500,
					}},
					{Code: "claustra", Label: "Claustra", Model: ModelInfo{
						BasePath: "models/clotures/claustra.glb", BaseScale: [3]float64{1, 1, 1},
						BasePosition: [3]float64{0, 0, 0}, BaseRotation: [3]float64{0, 0, 0},
						BaseWidth: 2000, BaseHeight: 1500,
					}},
				},
			},
			{
				Code: "pergolas", Label: "Pergolas", BasePrice: 520,
				Dimensions: DimensionRange{MinWidth: 2500, MaxWidth: 6000, MinHeight: 2200, MaxHeight: 3000},
				Styles: []Style{
					{Code: "bioclimatique", Label: "Bioclimatique", Model: ModelInfo{
						BasePath: "models/pergolas/bioclimatique.glb", BaseScale: [3]float64{1, 1, 1},
						BasePosition: [3]float64{0, 0, 0}, BaseRotation: [3]float64{0, 0, 0},
						BaseWidth: 3500, BaseHeight: 2500,
					}},
					{Code: "adossee", Label: "Adossée", Model: ModelInfo{
						BasePath: "models/pergolas/adossee.glb", BaseScale: [3]float64{1, 1, 1},
						BasePosition: [3]float64{0, 0, -0.5}, BaseRotation: [3]float64{0, 0, 0},
						BaseWidth: 3500, BaseHeight: 2500,
					}},
				},
			},
			{
				Code: "verrieres", Label: "Verrières", BasePrice: 640,
				Dimensions: DimensionRange{MinWidth: 800, MaxWidth: 4000, MinHeight: 800, MaxHeight: 2500},
				Styles: []Style{
					{Code: "atelier", Label: "Atelier", Model: ModelInfo{
						BasePath: "models/verrieres/atelier.glb", BaseScale: [3]float64{1, 1, 1},
						BasePosition: [3]float64{0, 0, 0}, BaseRotation: [3]float64{0, 0, 0},
						BaseWidth: 1800, BaseHeight: 1200,
					}},
					{Code: "cintree", Label: "Cintrée", Model: ModelInfo{
						BasePath: "models/verrieres/cintree.glb", BaseScale: [3]float64{1, 1, 1},
						BasePosition: [3]float64{0, 0, 0}, BaseRotation: [3]float64{0, 0, 0},
						BaseWidth: 1800, BaseHeight: 1200,
					}},
				},
			},
		},
		Materials: []Material{
			{Code: "acier", Label: "Acier thermolaqué", Multiplier: 1.0},
			{Code: "alu", Label: "Aluminium", Multiplier: 1.25},
			{Code: "inox", Label: "Inox 316", Multiplier: 1.6},
			{Code: "corten", Label: "Acier Corten", Multiplier: 1.4},
		},
		Options: []Option{
			{Code: "motorisation", Label: "Motorisation", Surcharge: 1200},
			{Code: "interphone", Label: "Interphone vidéo", Surcharge: 450},
			{Code: "eclairage-led", Label: "Éclairage LED intégré", Surcharge: 280},
			{Code: "main-courante-bois", Label: "Main courante bois", Surcharge: 190},
			{Code: "pose", Label: "Pose par nos équipes", Surcharge: 900},
		},
		Colors: ColorRegistry{
			Default: Color{Code: "ral7016", Label: "Gris anthracite", Hex: "#383e42"},
			Colors: []Color{
				{Code: "ral7016", Label: "Gris anthracite", Hex: "#383e42"},
				{Code: "ral9005", Label: "Noir foncé", Hex: "#0a0a0a"},
				{Code: "ral9010", Label: "Blanc pur", Hex: "#f1ece1"},
				{Code: "ral3004", Label: "Rouge pourpre", Hex: "#6b1c23"},
				{Code: "ral6005", Label: "Vert mousse", Hex: "#0f4336"},
				{Code: "ral5003", Label: "Bleu saphir", Hex: "#1f3855"},
				{Code: "ral1015", Label: "Ivoire clair", Hex: "#e6d2b5"},
			},
		},
	}
}
