// Package sweep turns decoded Level II radials into flat triangle geometry
// suitable for GPU rendering. One sweep's radials, together with a shared
// polar-to-Cartesian coordinate table, tessellate into a vertex buffer and a
// parallel raw sample buffer.
package sweep

const (
	// MaxRadials bounds radial indices; 720 covers a full rotation at half
	// degree spacing. Radial indices wrap modulo this.
	MaxRadials = 720

	// MaxDataMomentGates is the most 250m gates any moment carries.
	MaxDataMomentGates = 1840

	verticesPerBin  = 6
	valuesPerVertex = 2
)
