package geoproc

import (
	"fmt"
	"log/slog"
)

// ColorKind selects how per-vertex color reaches the fragment stage.
type ColorKind uint8

const (
	// ColorUniform is a single premultiplied color shared by every vertex.
	ColorUniform ColorKind = iota
	// ColorAttributePremul is a per-vertex premultiplied color attribute.
	// Any color-space conversion has already been applied by the caller.
	ColorAttributePremul
	// ColorAttributeStraight is a per-vertex straight-alpha color attribute,
	// optionally converted by a ColorSpaceXform before premultiplication.
	ColorAttributeStraight
)

// String returns the kind name.
func (k ColorKind) String() string {
	switch k {
	case ColorUniform:
		return "uniform"
	case ColorAttributePremul:
		return "attribute-premul"
	case ColorAttributeStraight:
		return "attribute-straight"
	default:
		return fmt.Sprintf("ColorKind(%d)", uint8(k))
	}
}

// ColorOption describes the caller's color source.
type ColorOption struct {
	kind  ColorKind
	color Color
	xform ColorSpaceXform
}

// UniformColor returns a ColorOption for a single premultiplied color.
func UniformColor(c Color) ColorOption {
	return ColorOption{kind: ColorUniform, color: c}
}

// AttributeColorPremultiplied returns a ColorOption for premultiplied
// per-vertex colors.
func AttributeColorPremultiplied() ColorOption {
	return ColorOption{kind: ColorAttributePremul, color: IllegalColor}
}

// AttributeColorStraight returns a ColorOption for straight-alpha per-vertex
// colors. xform may be nil, in which case colors are only premultiplied.
// The transform is borrowed, not copied.
func AttributeColorStraight(xform ColorSpaceXform) ColorOption {
	return ColorOption{kind: ColorAttributeStraight, color: IllegalColor, xform: xform}
}

// AttributeColor returns an attribute ColorOption of the given kind.
// ColorUniform is rejected: uniform colors need a value, see UniformColor.
func AttributeColor(kind ColorKind) (ColorOption, error) {
	switch kind {
	case ColorAttributePremul:
		return AttributeColorPremultiplied(), nil
	case ColorAttributeStraight:
		return AttributeColorStraight(nil), nil
	default:
		return ColorOption{}, fmt.Errorf("%w: %v is not an attribute color", ErrInvalidOption, kind)
	}
}

// Kind returns the variant tag.
func (o ColorOption) Kind() ColorKind { return o.kind }

// Color returns the uniform color, or IllegalColor for attribute variants.
func (o ColorOption) Color() Color { return o.color }

// Xform returns the color-space transform, nil unless the variant is
// ColorAttributeStraight with a transform.
func (o ColorOption) Xform() ColorSpaceXform { return o.xform }

// IsAttribute reports whether the option consumes a vertex attribute.
func (o ColorOption) IsAttribute() bool { return o.kind != ColorUniform }

// Equal compares variant tag and payload. Transforms compare by key.
func (o ColorOption) Equal(other ColorOption) bool {
	return o.kind == other.kind && o.color == other.color && xformKey(o.xform) == xformKey(other.xform)
}

func xformKey(x ColorSpaceXform) uint32 {
	if x == nil {
		return 0
	}
	return x.Key()
}

// CoverageKind selects how coverage reaches the fragment stage.
type CoverageKind uint8

const (
	// CoverageSolid is implicit full coverage with no attribute and no uniform.
	CoverageSolid CoverageKind = iota
	// CoverageUniform is a single byte of coverage shared by every vertex.
	CoverageUniform
	// CoverageAttribute is a per-vertex float coverage attribute.
	CoverageAttribute
)

// String returns the kind name.
func (k CoverageKind) String() string {
	switch k {
	case CoverageSolid:
		return "solid"
	case CoverageUniform:
		return "uniform"
	case CoverageAttribute:
		return "attribute"
	default:
		return fmt.Sprintf("CoverageKind(%d)", uint8(k))
	}
}

// CoverageOption describes the caller's coverage source.
type CoverageOption struct {
	kind     CoverageKind
	coverage uint8
}

// SolidCoverage returns the implicit full-coverage option.
func SolidCoverage() CoverageOption {
	return CoverageOption{kind: CoverageSolid, coverage: 0xFF}
}

// UniformCoverage returns a CoverageOption broadcasting c to every vertex.
func UniformCoverage(c uint8) CoverageOption {
	return CoverageOption{kind: CoverageUniform, coverage: c}
}

// AttributeCoverage returns a CoverageOption for per-vertex coverage.
func AttributeCoverage() CoverageOption {
	return CoverageOption{kind: CoverageAttribute, coverage: 0xFF}
}

// CoverageOf returns the non-uniform CoverageOption of the given kind.
// CoverageUniform is rejected: uniform coverage needs a value.
func CoverageOf(kind CoverageKind) (CoverageOption, error) {
	switch kind {
	case CoverageSolid:
		return SolidCoverage(), nil
	case CoverageAttribute:
		return AttributeCoverage(), nil
	default:
		return CoverageOption{}, fmt.Errorf("%w: %v coverage needs a value", ErrInvalidOption, kind)
	}
}

// Kind returns the variant tag.
func (o CoverageOption) Kind() CoverageKind { return o.kind }

// Coverage returns the uniform coverage byte, 0xFF for the other variants.
func (o CoverageOption) Coverage() uint8 { return o.coverage }

// IsAttribute reports whether the option consumes a vertex attribute.
func (o CoverageOption) IsAttribute() bool { return o.kind == CoverageAttribute }

// Equal compares variant tag and payload.
func (o CoverageOption) Equal(other CoverageOption) bool { return o == other }

// LocalCoordsKind selects where local coordinates come from.
type LocalCoordsKind uint8

const (
	// LocalCoordsUnused wires no local coordinates.
	LocalCoordsUnused LocalCoordsKind = iota
	// LocalCoordsUsePosition derives local coordinates from the input position.
	LocalCoordsUsePosition
	// LocalCoordsExplicit reads local coordinates from their own attribute.
	LocalCoordsExplicit
	// LocalCoordsTransformed reads the attribute and multiplies it by a matrix.
	LocalCoordsTransformed
)

// String returns the kind name.
func (k LocalCoordsKind) String() string {
	switch k {
	case LocalCoordsUnused:
		return "unused"
	case LocalCoordsUsePosition:
		return "position"
	case LocalCoordsExplicit:
		return "explicit"
	case LocalCoordsTransformed:
		return "transformed"
	default:
		return fmt.Sprintf("LocalCoordsKind(%d)", uint8(k))
	}
}

// LocalCoordsOption describes the caller's local-coordinate source.
// Matrices are copied at construction; the option never aliases caller memory.
type LocalCoordsOption struct {
	kind      LocalCoordsKind
	matrix    Matrix
	hasMatrix bool
}

// UnusedLocalCoords returns the option for draws that sample nothing.
func UnusedLocalCoords() LocalCoordsOption {
	return LocalCoordsOption{kind: LocalCoordsUnused}
}

// UsePositionLocalCoords returns the option deriving local coordinates from
// the input position.
func UsePositionLocalCoords() LocalCoordsOption {
	return LocalCoordsOption{kind: LocalCoordsUsePosition}
}

// UsePositionLocalCoordsWithMatrix derives local coordinates from the input
// position mapped through m.
func UsePositionLocalCoordsWithMatrix(m *Matrix) (LocalCoordsOption, error) {
	if m == nil {
		return LocalCoordsOption{}, fmt.Errorf("%w: position local coords with matrix", ErrNilMatrix)
	}
	return LocalCoordsOption{kind: LocalCoordsUsePosition, matrix: *m, hasMatrix: true}, nil
}

// ExplicitLocalCoords returns the option reading local coordinates from
// their own attribute.
func ExplicitLocalCoords() LocalCoordsOption {
	return LocalCoordsOption{kind: LocalCoordsExplicit}
}

// TransformedLocalCoords returns the option reading local coordinates from
// their own attribute, left-multiplied by m per vertex.
func TransformedLocalCoords(m *Matrix) (LocalCoordsOption, error) {
	if m == nil {
		return LocalCoordsOption{}, fmt.Errorf("%w: transformed local coords", ErrNilMatrix)
	}
	return LocalCoordsOption{kind: LocalCoordsTransformed, matrix: *m, hasMatrix: true}, nil
}

// Kind returns the variant tag.
func (o LocalCoordsOption) Kind() LocalCoordsKind { return o.kind }

// HasLocalMatrix reports whether a matrix is attached.
func (o LocalCoordsOption) HasLocalMatrix() bool { return o.hasMatrix }

// Matrix returns the attached matrix, or the identity if none.
func (o LocalCoordsOption) Matrix() Matrix {
	if !o.hasMatrix {
		return Identity()
	}
	return o.matrix
}

// IsAttribute reports whether the option consumes a vertex attribute.
func (o LocalCoordsOption) IsAttribute() bool {
	return o.kind == LocalCoordsExplicit || o.kind == LocalCoordsTransformed
}

// Equal compares variant tag and payload.
func (o LocalCoordsOption) Equal(other LocalCoordsOption) bool { return o == other }

// Option configures a single Build call.
//
// Example:
//
//	gp, err := geoproc.Build(caps, color, cov, lc, view,
//	    geoproc.WithLabel("text-quads"))
type Option func(*buildOptions)

// buildOptions holds optional configuration for a build.
type buildOptions struct {
	label  string
	logger *slog.Logger
}

// defaultBuildOptions returns the default build options.
func defaultBuildOptions() buildOptions {
	return buildOptions{label: "default-geoproc"}
}

// WithLabel sets the processor label reported by Label and in log records.
func WithLabel(label string) Option {
	return func(o *buildOptions) {
		o.label = label
	}
}

// WithLogger overrides the package logger for one build.
func WithLogger(l *slog.Logger) Option {
	return func(o *buildOptions) {
		o.logger = l
	}
}
