package geoproc

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildUniformGreenScenario(t *testing.T) {
	gp, err := Build(DefaultCaps(), UniformColor(0xFF00FF00), SolidCoverage(), UsePositionLocalCoords(), Identity())
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	if gp.Layout().Kind != LayoutPosition {
		t.Errorf("layout = %v, want %v", gp.Layout().Kind, LayoutPosition)
	}
	if gp.PositionTransform() != PositionIdentity {
		t.Errorf("position = %v, want identity", gp.PositionTransform())
	}
	want := ColorSource{Kind: ColorUniform, Value: 0xFF00FF00}
	if diff := cmp.Diff(want, gp.Color()); diff != "" {
		t.Errorf("color mismatch (-want +got):\n%s", diff)
	}
	if cov := gp.Coverage(); cov.Kind != CoverageSolid || cov.Attribute || cov.Uniform {
		t.Errorf("coverage = %+v, want implicit full", cov)
	}
	lc := gp.LocalCoords()
	if lc.Attribute || lc.NeedsDivide || !lc.SharesPositionTransform || !lc.Matrix.IsIdentity() {
		t.Errorf("local = %+v, want position without divide", lc)
	}
	if _, ok := gp.InverseView(); ok {
		t.Error("world-space processor retained an inverse")
	}
}

func TestBuildUniformColorRoundTrip(t *testing.T) {
	for _, c := range []Color{0, 0xFF00FF00, 0x80402010, IllegalColor} {
		for _, cov := range allCoverageOptions() {
			for _, lc := range allLocalCoordsOptions(t) {
				gp, err := Build(Caps{}, UniformColor(c), cov, lc, Scale(2, 3))
				if err != nil {
					t.Fatalf("Build() = %v", err)
				}
				if gp.Color().Attribute || gp.Color().Value != c {
					t.Errorf("color = %+v, want uniform %v", gp.Color(), c)
				}
				if gp.Layout().Kind.HasColor() {
					t.Errorf("uniform color consumed an attribute: %v", gp.Layout().Kind)
				}
			}
		}
	}
}

func TestBuildAffineViewSharesPositionTransform(t *testing.T) {
	views := []Matrix{
		Identity(),
		Translate(5, 6),
		Scale(2, 3).Multiply(Rotate(0.3)),
		Shear(0.2, 0.1).Multiply(Translate(-1, 4)),
	}
	for _, view := range views {
		gp, err := Build(DefaultCaps(), AttributeColorPremultiplied(), AttributeCoverage(), UsePositionLocalCoords(), view)
		if err != nil {
			t.Fatalf("Build() = %v", err)
		}
		lc := gp.LocalCoords()
		if lc.NeedsDivide || !lc.SharesPositionTransform || lc.Components() != 2 {
			t.Errorf("view %+v: local = %+v, want shared transform without divide", view, lc)
		}
	}
}

func TestBuildPerspectiveViewAddsDivide(t *testing.T) {
	view := Translate(100, 50).Multiply(Perspective(0.001, 0.002))
	gp, err := Build(DefaultCaps(), UniformColor(0xFFFFFFFF), SolidCoverage(), UsePositionLocalCoords(), view)
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	if gp.PositionTransform() != PositionMultiplyByView {
		t.Errorf("position = %v, want view", gp.PositionTransform())
	}
	lc := gp.LocalCoords()
	if !lc.NeedsDivide || lc.SharesPositionTransform || !lc.LinearInterpolation || lc.Components() != 3 {
		t.Errorf("local = %+v, want separate divide stage", lc)
	}

	out := gp.ProcessVertex(VertexInput{Position: Pt(10, 20)})
	if got, want := out.LocalCoord.W, 1/out.Position.W; math.Abs(got-want) > 1e-12 {
		t.Errorf("local w = %v, want 1/clip w = %v", got, want)
	}
	if got := out.Local(); got.Distance(Pt(10, 20)) > 1e-9 {
		t.Errorf("divided local = %v, want (10, 20)", got)
	}
	if raw := (Point{X: out.LocalCoord.X, Y: out.LocalCoord.Y}); raw.Distance(Pt(10, 20)) < 1e-9 {
		t.Error("pre-divide local coordinate equals the raw position")
	}
}

func TestBuildPerspectiveRejectedWithoutLinearInterpolation(t *testing.T) {
	caps := DefaultCaps()
	caps.PerspectiveOnlyInterpolation = true
	_, err := Build(caps, UniformColor(0xFFFFFFFF), SolidCoverage(), UsePositionLocalCoords(), Perspective(0.01, 0))
	if !errors.Is(err, ErrCapabilityShortfall) {
		t.Errorf("error = %v, want ErrCapabilityShortfall", err)
	}
	// Explicit local coords interpolate perspective-correctly and stay legal.
	if _, err := Build(caps, UniformColor(0xFFFFFFFF), SolidCoverage(), ExplicitLocalCoords(), Perspective(0.01, 0)); err != nil {
		t.Errorf("explicit local coords: %v", err)
	}
}

func TestBuildForDeviceSpaceSingularAlwaysFails(t *testing.T) {
	singular := []Matrix{{}, Scale(0, 1), Affine(1, 2, 0, 2, 4, 0)}
	for _, view := range singular {
		for _, c := range allColorOptions() {
			for _, cov := range allCoverageOptions() {
				for _, lc := range allLocalCoordsOptions(t) {
					gp, err := BuildForDeviceSpace(DefaultCaps(), c, cov, lc, view)
					if gp != nil {
						t.Fatal("BuildForDeviceSpace returned a processor with a singular view")
					}
					var ce *ConstructionError
					if !errors.As(err, &ce) || ce.Kind != KindNonInvertible || !errors.Is(err, ErrNonInvertible) {
						t.Errorf("error = %v, want non-invertible", err)
					}
				}
			}
		}
	}
}

func TestBuildForDeviceSpaceSingularScenario(t *testing.T) {
	_, err := BuildForDeviceSpace(DefaultCaps(), AttributeColorPremultiplied(), AttributeCoverage(), ExplicitLocalCoords(), Scale(0, 0))
	if !errors.Is(err, ErrNonInvertible) {
		t.Errorf("error = %v, want ErrNonInvertible", err)
	}
}

func TestBuildForDeviceSpaceRetainsInverseCopy(t *testing.T) {
	view := Translate(10, 20).Multiply(Scale(2, 2))
	gp, err := BuildForDeviceSpace(DefaultCaps(), UniformColor(0xFF000000), SolidCoverage(), UsePositionLocalCoords(), view)
	if err != nil {
		t.Fatalf("BuildForDeviceSpace() = %v", err)
	}
	view.A = 99

	if gp.PositionTransform() != PositionIdentity {
		t.Errorf("position = %v, want identity", gp.PositionTransform())
	}
	inv, ok := gp.InverseView()
	if !ok {
		t.Fatal("no inverse retained")
	}
	if got := inv.TransformPoint(Pt(12, 24)); got.Distance(Pt(1, 2)) > 1e-12 {
		t.Errorf("inverse(12, 24) = %v, want (1, 2)", got)
	}
	if gp.ViewMatrix().A != 2 {
		t.Error("processor aliases the caller's view matrix")
	}

	out := gp.ProcessVertex(VertexInput{Position: Pt(12, 24)})
	if out.Position != (Point3{X: 12, Y: 24, W: 1}) {
		t.Errorf("device position = %+v, want passthrough", out.Position)
	}
	if got := out.Local(); got.Distance(Pt(1, 2)) > 1e-12 {
		t.Errorf("local = %v, want (1, 2)", got)
	}
}

func TestBuildTransformedLocalCoords(t *testing.T) {
	m := Scale(0.5, 0.5).Multiply(Translate(2, 2))
	lc, _ := TransformedLocalCoords(&m)
	gp, err := Build(DefaultCaps(), AttributeColorPremultiplied(), SolidCoverage(), lc, Scale(3, 3))
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	if gp.Layout().Kind != LayoutPositionColorLocalCoord {
		t.Errorf("layout = %v", gp.Layout().Kind)
	}
	src := gp.LocalCoords()
	if !src.Attribute || src.Matrix != m || src.NeedsDivide {
		t.Errorf("local = %+v", src)
	}
	for _, uv := range []Point{{0, 0}, {4, 6}} {
		out := gp.ProcessVertex(VertexInput{Position: Pt(100, 100), LocalCoord: uv})
		if got, want := out.Local(), m.TransformPoint(uv); got != want {
			t.Errorf("local(%v) = %v, want %v", uv, got, want)
		}
	}
}

func TestBuildColorSourcing(t *testing.T) {
	x := NewColorSpaceXform(ColorSpaceSRGB, ColorSpaceLinear)
	tests := []struct {
		name        string
		opt         ColorOption
		premultiply bool
		xform       bool
	}{
		{"premul", AttributeColorPremultiplied(), false, false},
		{"straight", AttributeColorStraight(nil), true, false},
		{"straight xform", AttributeColorStraight(x), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gp, err := Build(DefaultCaps(), tt.opt, SolidCoverage(), UnusedLocalCoords(), Identity())
			if err != nil {
				t.Fatal(err)
			}
			cs := gp.Color()
			if !cs.Attribute || cs.Premultiply != tt.premultiply || (cs.Xform != nil) != tt.xform {
				t.Errorf("color = %+v", cs)
			}
			if !gp.Layout().Kind.HasColor() {
				t.Error("attribute color has no color slot")
			}
		})
	}
}

func TestBuildCoverageSourcing(t *testing.T) {
	gp, err := Build(DefaultCaps(), UniformColor(0xFFFFFFFF), UniformCoverage(0x40), UnusedLocalCoords(), Identity())
	if err != nil {
		t.Fatal(err)
	}
	want := CoverageSource{Kind: CoverageUniform, Uniform: true, Value: 0x40}
	if diff := cmp.Diff(want, gp.Coverage()); diff != "" {
		t.Errorf("coverage mismatch (-want +got):\n%s", diff)
	}
	if gp.Layout().Kind.HasCoverage() {
		t.Error("uniform coverage consumed an attribute")
	}
}

func TestBuildCapabilityShortfall(t *testing.T) {
	tests := []struct {
		name string
		caps Caps
	}{
		{"attributes", Caps{MaxVertexAttributes: 3}},
		{"stride", Caps{MaxVertexStride: 16}},
		{"varyings", Caps{MaxInterStageComponents: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.caps, AttributeColorPremultiplied(), AttributeCoverage(), ExplicitLocalCoords(), Identity())
			var ce *ConstructionError
			if !errors.As(err, &ce) || ce.Kind != KindCapabilityShortfall {
				t.Errorf("error = %v, want capability shortfall", err)
			}
		})
	}
	if _, err := Build(Caps{}, AttributeColorPremultiplied(), AttributeCoverage(), ExplicitLocalCoords(), Identity()); err != nil {
		t.Errorf("zero Caps rejected a build: %v", err)
	}
}

func TestBuildKey(t *testing.T) {
	a, _ := Build(DefaultCaps(), UniformColor(0xFF0000FF), SolidCoverage(), UsePositionLocalCoords(), Scale(2, 2))
	b, _ := Build(DefaultCaps(), UniformColor(0xFFFF0000), SolidCoverage(), UsePositionLocalCoords(), Rotate(1))
	if a.Key() != b.Key() {
		t.Errorf("uniform values changed the key: 0x%08X vs 0x%08X", a.Key(), b.Key())
	}

	c, _ := Build(DefaultCaps(), AttributeColorPremultiplied(), SolidCoverage(), UsePositionLocalCoords(), Scale(2, 2))
	d, _ := Build(DefaultCaps(), UniformColor(0xFF0000FF), SolidCoverage(), UsePositionLocalCoords(), Perspective(0.1, 0))
	e, _ := BuildForDeviceSpace(DefaultCaps(), UniformColor(0xFF0000FF), SolidCoverage(), UsePositionLocalCoords(), Scale(2, 2))
	f, _ := Build(DefaultCaps(), AttributeColorStraight(NewColorSpaceXform(ColorSpaceSRGB, ColorSpaceLinear)), SolidCoverage(), UsePositionLocalCoords(), Scale(2, 2))
	keys := map[uint32]string{a.Key(): "a"}
	for name, gp := range map[string]*GeometryProcessor{"attr": c, "persp": d, "device": e, "xform": f} {
		if prev, dup := keys[gp.Key()]; dup {
			t.Errorf("%s shares key 0x%08X with %s", name, gp.Key(), prev)
		}
		keys[gp.Key()] = name
	}
}

type keyedXform uint32

func (keyedXform) Apply(c ColorF) ColorF { return c }
func (k keyedXform) Key() uint32         { return uint32(k) }

func TestBuildXformKeyRange(t *testing.T) {
	tests := []struct {
		name    string
		key     uint32
		wantErr bool
	}{
		{"zero", 0, true},
		{"wider than 16 bits", 0x10000, true},
		{"aliases after masking", 0x10007, true},
		{"smallest", 1, false},
		{"largest", 0xFFFF, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gp, err := Build(DefaultCaps(), AttributeColorStraight(keyedXform(tt.key)), SolidCoverage(), UnusedLocalCoords(), Identity())
			if tt.wantErr {
				if gp != nil || !errors.Is(err, ErrInvalidCombination) {
					t.Errorf("Build(key 0x%X) = %v, %v; want ErrInvalidCombination", tt.key, gp, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build(key 0x%X) = %v", tt.key, err)
			}
			if got := gp.Key() >> keyXformShift; got != tt.key {
				t.Errorf("key high bits = 0x%X, want 0x%X", got, tt.key)
			}
		})
	}
}

func TestConstructionErrorMessage(t *testing.T) {
	_, err := BuildForDeviceSpace(DefaultCaps(), UniformColor(0), SolidCoverage(), UnusedLocalCoords(), Matrix{})
	want := "geoproc: build for device space: non-invertible transform: device-space local coordinates need the inverse view matrix"
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v, want %q", err, want)
	}
}
