package catalog

// ModelInfo décrit le gabarit géométrique d'un style : l'asset 3D de
// référence et sa transformation neutre. Les dimensions de base servent de
// dénominateur au calcul d'échelle du configurateur.
type ModelInfo struct {
	BasePath     string
	BaseScale    [3]float64
	BasePosition [3]float64
	BaseRotation [3]float64
	// BaseWidth/BaseHeight are the dimensions (mm) at which the asset renders
	// with BaseScale unchanged.
	BaseWidth  float64
	BaseHeight float64
}
