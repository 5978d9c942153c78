package color

import (
	"math"
	"strings"
	"testing"
)

func TestSRGBToLinearEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{"black", 0.0, 0.0},
		{"white", 1.0, 1.0},
		{"threshold", 0.04045, 0.04045 / 12.92},
		{"mid gray", 0.5, float32(math.Pow((0.5+0.055)/1.055, 2.4))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SRGBToLinear(tt.input)
			if !floatNear(got, tt.want, 1e-6) {
				t.Errorf("SRGBToLinear(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLinearSRGBRoundTrip(t *testing.T) {
	for i := 0; i <= 100; i++ {
		v := float32(i) / 100
		got := SRGBToLinear(LinearToSRGB(v))
		if !floatNear(got, v, 1e-5) {
			t.Errorf("round trip %v -> %v", v, got)
		}
	}
}

func TestLUTMatchesFormula(t *testing.T) {
	for i := 0; i < 256; i++ {
		fast := SRGBToLinearFast(uint8(i))
		slow := SRGBToLinear(float32(i) / 255)
		if !floatNear(fast, slow, 1e-4) {
			t.Errorf("sRGB %d: lut=%f, formula=%f", i, fast, slow)
		}
	}
}

func TestNewXformSameSpaceIsNil(t *testing.T) {
	if x := NewXform(ColorSpaceSRGB, ColorSpaceSRGB); x != nil {
		t.Errorf("NewXform(srgb, srgb) = %+v, want nil", x)
	}
	var x *Xform
	c := ColorF32{R: 0.25, G: 0.5, B: 0.75, A: 0.5}
	if got := x.Apply(c); got != c {
		t.Errorf("nil Xform.Apply() = %+v, want %+v", got, c)
	}
	if x.Key() != 0 {
		t.Errorf("nil Xform.Key() = %d, want 0", x.Key())
	}
}

func TestXformApply(t *testing.T) {
	toLinear := NewXform(ColorSpaceSRGB, ColorSpaceLinear)
	toSRGB := NewXform(ColorSpaceLinear, ColorSpaceSRGB)

	c := ColorF32{R: 0.5, G: 0.2, B: 1, A: 0.4}
	lin := toLinear.Apply(c)
	if lin.A != c.A {
		t.Errorf("alpha changed: %v -> %v", c.A, lin.A)
	}
	if !floatNear(lin.R, SRGBToLinear(0.5), 1e-6) {
		t.Errorf("R = %v, want %v", lin.R, SRGBToLinear(0.5))
	}
	back := toSRGB.Apply(lin)
	if !colorF32Near(back, c, 1e-5) {
		t.Errorf("round trip = %+v, want %+v", back, c)
	}
	if toLinear.Key() == toSRGB.Key() || toLinear.Key() == 0 {
		t.Errorf("keys not distinct: %d %d", toLinear.Key(), toSRGB.Key())
	}
}

func TestXformApplyU8MatchesApply(t *testing.T) {
	x := NewXform(ColorSpaceSRGB, ColorSpaceLinear)
	for _, c := range []ColorU8{{0, 0, 0, 0}, {255, 128, 7, 200}, {12, 34, 56, 255}} {
		fast := x.ApplyU8(c)
		slow := x.Apply(U8ToF32(c))
		if !colorF32Near(fast, slow, 1e-4) {
			t.Errorf("ApplyU8(%v) = %+v, want %+v", c, fast, slow)
		}
	}
}

func TestXformWGSLDefinesEntry(t *testing.T) {
	for _, x := range []*Xform{nil, NewXform(ColorSpaceSRGB, ColorSpaceLinear), NewXform(ColorSpaceLinear, ColorSpaceSRGB)} {
		if src := x.WGSL(); !strings.Contains(src, "fn color_xform(c: vec4<f32>) -> vec4<f32>") {
			t.Errorf("WGSL() missing color_xform:\n%s", src)
		}
	}
}

func TestPremultiply(t *testing.T) {
	got := Premultiply(ColorF32{R: 1, G: 0.5, B: 0, A: 0.5})
	want := ColorF32{R: 0.5, G: 0.25, B: 0, A: 0.5}
	if !colorF32Near(got, want, 1e-6) {
		t.Errorf("Premultiply() = %+v, want %+v", got, want)
	}
}

// floatNear checks if two float32 values are within epsilon of each other.
func floatNear(a, b, epsilon float32) bool {
	return math.Abs(float64(a-b)) < float64(epsilon)
}

// colorF32Near checks if two ColorF32 values are within epsilon of each other.
func colorF32Near(a, b ColorF32, epsilon float32) bool {
	return floatNear(a.R, b.R, epsilon) &&
		floatNear(a.G, b.G, epsilon) &&
		floatNear(a.B, b.B, epsilon) &&
		floatNear(a.A, b.A, epsilon)
}
