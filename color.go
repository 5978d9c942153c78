package geoproc

import (
	"fmt"

	icolor "github.com/gogpu/geoproc/internal/color"
)

// Color is a packed 32-bit ARGB color, 8 bits per channel, alpha in the
// high byte. 0xFF00FF00 is opaque green.
//
// Uniform colors and premultiplied attribute colors hold premultiplied
// values; straight-alpha attribute colors hold unpremultiplied values.
type Color uint32

// IllegalColor is the placeholder color carried by attribute color options.
// It is never read.
const IllegalColor Color = 0xFFFFFFFF

// ARGB packs four channel bytes into a Color.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// RGBA8 returns the channels in vertex attribute byte order.
func (c Color) RGBA8() RGBA8 { return RGBA8{c.R(), c.G(), c.B(), c.A()} }

// RGBA8 is a color in the byte order of the inColor attribute: R, G, B, A.
// It is the color field of the typed vertex records.
type RGBA8 [4]uint8

// Color packs the bytes back into a Color.
func (c RGBA8) Color() Color { return ARGB(c[3], c[0], c[1], c[2]) }

// Float returns the channels as floats in [0,1] without changing the
// alpha encoding.
func (c Color) Float() ColorF {
	return ColorF{
		R: float32(c.R()) / 255,
		G: float32(c.G()) / 255,
		B: float32(c.B()) / 255,
		A: float32(c.A()) / 255,
	}
}

// String returns the color as 0xAARRGGBB.
func (c Color) String() string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// ColorF is a color with float32 channels in [0,1].
type ColorF struct {
	R, G, B, A float32
}

// Premultiply scales RGB by alpha.
func (c ColorF) Premultiply() ColorF {
	return ColorF(icolor.Premultiply(icolor.ColorF32(c)))
}

// ColorSpace identifies the encoding of RGB components.
type ColorSpace = icolor.ColorSpace

// Supported color spaces.
const (
	ColorSpaceSRGB   = icolor.ColorSpaceSRGB
	ColorSpaceLinear = icolor.ColorSpaceLinear
)

// ColorSpaceXform converts straight-alpha colors between color spaces.
//
// The builder treats it as opaque: it is stored by reference and evaluated
// per vertex on unpremultiplied values. Implementations must be immutable
// while any processor that references them is in use.
//
// Key occupies the high 16 bits of the processor key. It must be non-zero,
// fit in 16 bits and differ between transforms with different shader code;
// Build rejects keys outside that range with ErrInvalidCombination.
type ColorSpaceXform interface {
	Apply(ColorF) ColorF
	Key() uint32
}

// colorSpaceXform adapts the internal transform to ColorSpaceXform.
type colorSpaceXform struct {
	x *icolor.Xform
}

// NewColorSpaceXform returns the transform from src to dst, or nil when no
// conversion is needed.
func NewColorSpaceXform(src, dst ColorSpace) ColorSpaceXform {
	x := icolor.NewXform(src, dst)
	if x == nil {
		return nil
	}
	return colorSpaceXform{x: x}
}

func (c colorSpaceXform) Apply(in ColorF) ColorF {
	return ColorF(c.x.Apply(icolor.ColorF32(in)))
}

func (c colorSpaceXform) Key() uint32 { return c.x.Key() }

// WGSL returns the shader function implementing the transform.
func (c colorSpaceXform) WGSL() string { return c.x.WGSL() }

// applyBytes uses the byte lookup path when available.
func (c colorSpaceXform) applyBytes(in Color) ColorF {
	return ColorF(c.x.ApplyU8(icolor.ColorU8{R: in.R(), G: in.G(), B: in.B(), A: in.A()}))
}

// String names the source and destination spaces.
func (c colorSpaceXform) String() string {
	return c.x.Src().String() + "->" + c.x.Dst().String()
}
