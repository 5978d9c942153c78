// Package color provides the color-space math behind geoproc's
// straight-alpha color transforms.
//
// Vertex colors reach the fragment stage premultiplied. Straight-alpha
// attribute colors may first be converted between color spaces; the
// conversion runs on unpremultiplied values so alpha never leaks into the
// transfer function.
package color

// ColorSpace identifies the encoding of RGB components.
type ColorSpace uint8

const (
	// ColorSpaceSRGB represents the standard sRGB color space.
	ColorSpaceSRGB ColorSpace = iota
	// ColorSpaceLinear represents the linear RGB color space.
	ColorSpaceLinear
)

// String returns the lowercase name used in configuration files.
func (cs ColorSpace) String() string {
	switch cs {
	case ColorSpaceSRGB:
		return "srgb"
	case ColorSpaceLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// ColorF32 represents a color with float32 components in [0,1].
// Alpha is always linear (never gamma-encoded).
type ColorF32 struct {
	R, G, B, A float32
}

// ColorU8 represents a color with uint8 components in [0,255].
type ColorU8 struct {
	R, G, B, A uint8
}

// U8ToF32 converts ColorU8 to ColorF32.
func U8ToF32(c ColorU8) ColorF32 {
	return ColorF32{
		R: float32(c.R) / 255.0,
		G: float32(c.G) / 255.0,
		B: float32(c.B) / 255.0,
		A: float32(c.A) / 255.0,
	}
}

// Premultiply scales RGB by alpha.
func Premultiply(c ColorF32) ColorF32 {
	return ColorF32{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}
