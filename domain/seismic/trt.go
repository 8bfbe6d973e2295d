// Package seismic holds the rupture-level primitives of a hazard calculation:
// tectonic region types, ruptures, magnitude-frequency distributions and the
// ephemeral contexts handed to ground motion models.
package seismic

// TectonicRegionType tags a source or rupture with its tectonic regime. The
// tag selects which ground motion model applies.
type TectonicRegionType string

const (
	ActiveShallowCrust  TectonicRegionType = "Active Shallow Crust"
	StableContinental   TectonicRegionType = "Stable Shallow Crust"
	SubductionInterface TectonicRegionType = "Subduction Interface"
	SubductionIntraslab TectonicRegionType = "Subduction IntraSlab"
	Volcanic            TectonicRegionType = "Volcanic"
)

// String returns the region type tag
func (t TectonicRegionType) String() string {
	return string(t)
}
