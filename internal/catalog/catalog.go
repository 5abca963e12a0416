package catalog

// Catalog regroupe les données statiques du configurateur : familles de
// produits, styles, matériaux, options, tarifs et couleurs. Il est construit
// une fois au démarrage et injecté partout ; jamais muté ensuite, ce qui
// permet aux tests de substituer un catalogue réduit.
type Catalog struct {
	Families  []Family
	Materials []Material
	Options   []Option
	Colors    ColorRegistry
}

// Family is a closed product category (portails, garde-corps, ...).
type Family struct {
	Code       string
	Label      string
	Styles     []Style // declaration order matters: first style is the fallback
	Dimensions DimensionRange
	// BasePrice is the price per m² before material/option adjustments.
	BasePrice float64
}

// Style is a sub-variant within a family carrying its geometric template.
type Style struct {
	Code  string
	Label string
	Model ModelInfo
}

// DimensionRange bounds user-entered dimensions, in millimetres.
type DimensionRange struct {
	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64
}

// Material has a price multiplier applied to the family base price.
type Material struct {
	Code       string  `json:"code"`
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplicateur"`
}

// Option is a flat surcharge added per item.
type Option struct {
	Code      string  `json:"code"`
	Label     string  `json:"label"`
	Surcharge float64 `json:"supplement"`
}

// FamilyByCode returns the family or nil if unknown.
func (c *Catalog) FamilyByCode(code string) *Family {
	for i := range c.Families {
		if c.Families[i].Code == code {
			return &c.Families[i]
		}
	}
	return nil
}

// MaterialByCode returns the material or nil if unknown.
func (c *Catalog) MaterialByCode(code string) *Material {
	for i := range c.Materials {
		if c.Materials[i].Code == code {
			return &c.Materials[i]
		}
	}
	return nil
}

// OptionByCode returns the option or nil if unknown.
func (c *Catalog) OptionByCode(code string) *Option {
	for i := range c.Options {
		if c.Options[i].Code == code {
			return &c.Options[i]
		}
	}
	return nil
}

// StyleByCode looks up a style within a family. Returns nil if absent.
func (f *Family) StyleByCode(code string) *Style {
	for i := range f.Styles {
		if f.Styles[i].Code == code {
			return &f.Styles[i]
		}
	}
	return nil
}
