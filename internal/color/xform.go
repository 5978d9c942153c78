package color

// Xform converts straight-alpha colors from one color space to another.
// A nil *Xform is the identity.
type Xform struct {
	src, dst ColorSpace
}

// NewXform returns the transform from src to dst, or nil when the spaces match.
func NewXform(src, dst ColorSpace) *Xform {
	if src == dst {
		return nil
	}
	return &Xform{src: src, dst: dst}
}

// Src returns the source color space.
func (x *Xform) Src() ColorSpace { return x.src }

// Dst returns the destination color space.
func (x *Xform) Dst() ColorSpace { return x.dst }

// Apply converts an unpremultiplied color.
func (x *Xform) Apply(c ColorF32) ColorF32 {
	if x == nil {
		return c
	}
	switch {
	case x.src == ColorSpaceSRGB && x.dst == ColorSpaceLinear:
		return SRGBToLinearColor(c)
	case x.src == ColorSpaceLinear && x.dst == ColorSpaceSRGB:
		return LinearToSRGBColor(c)
	default:
		return c
	}
}

// ApplyU8 converts an unpremultiplied byte color, using the lookup table
// when decoding sRGB.
func (x *Xform) ApplyU8(c ColorU8) ColorF32 {
	if x != nil && x.src == ColorSpaceSRGB && x.dst == ColorSpaceLinear {
		return ColorF32{
			R: SRGBToLinearFast(c.R),
			G: SRGBToLinearFast(c.G),
			B: SRGBToLinearFast(c.B),
			A: float32(c.A) / 255.0,
		}
	}
	return x.Apply(U8ToF32(c))
}

// Key identifies the transform for shader-variant keys. It is never zero
// for a non-nil transform.
func (x *Xform) Key() uint32 {
	if x == nil {
		return 0
	}
	return 1<<8 | uint32(x.src)<<4 | uint32(x.dst)
}

// WGSL returns the WGSL source of `fn color_xform(c: vec4<f32>) -> vec4<f32>`
// implementing the transform on an unpremultiplied color.
func (x *Xform) WGSL() string {
	const identity = "fn color_xform(c: vec4<f32>) -> vec4<f32> {\n    return c;\n}\n"
	if x == nil {
		return identity
	}
	switch {
	case x.src == ColorSpaceSRGB && x.dst == ColorSpaceLinear:
		return `fn srgb_to_linear(v: f32) -> f32 {
    if (v <= 0.04045) {
        return v / 12.92;
    }
    return pow((v + 0.055) / 1.055, 2.4);
}

fn color_xform(c: vec4<f32>) -> vec4<f32> {
    return vec4<f32>(srgb_to_linear(c.r), srgb_to_linear(c.g), srgb_to_linear(c.b), c.a);
}
`
	case x.src == ColorSpaceLinear && x.dst == ColorSpaceSRGB:
		return `fn linear_to_srgb(v: f32) -> f32 {
    if (v <= 0.0031308) {
        return v * 12.92;
    }
    return 1.055 * pow(v, 1.0 / 2.4) - 0.055;
}

fn color_xform(c: vec4<f32>) -> vec4<f32> {
    return vec4<f32>(linear_to_srgb(c.r), linear_to_srgb(c.g), linear_to_srgb(c.b), c.a);
}
`
	default:
		return identity
	}
}
