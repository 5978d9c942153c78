package geoproc

import "testing"

// BenchmarkBuild benchmarks processor construction for common draw families.
func BenchmarkBuild(b *testing.B) {
	x := NewColorSpaceXform(ColorSpaceSRGB, ColorSpaceLinear)
	families := []struct {
		name string
		c    ColorOption
		cov  CoverageOption
		lc   LocalCoordsOption
		view Matrix
	}{
		{"uniform-rect", UniformColor(0xFF00FF00), SolidCoverage(), UnusedLocalCoords(), Identity()},
		{"textured-quad", AttributeColorPremultiplied(), AttributeCoverage(), ExplicitLocalCoords(), Scale(2, 2)},
		{"straight-xform", AttributeColorStraight(x), SolidCoverage(), UsePositionLocalCoords(), Translate(10, 10)},
		{"perspective", UniformColor(0xFFFFFFFF), SolidCoverage(), UsePositionLocalCoords(), Perspective(0.001, 0)},
	}

	caps := DefaultCaps()
	for _, f := range families {
		b.Run(f.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Build(caps, f.c, f.cov, f.lc, f.view); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkProcessVertex benchmarks the CPU evaluation of one vertex.
func BenchmarkProcessVertex(b *testing.B) {
	bones, _ := NewBones([]Matrix{Identity(), Translate(1, 0), Rotate(0.3), Scale(2, 2)})
	x := NewColorSpaceXform(ColorSpaceSRGB, ColorSpaceLinear)
	straight, _ := Build(DefaultCaps(), AttributeColorStraight(x), AttributeCoverage(), UsePositionLocalCoords(), Perspective(0.001, 0))
	boned, _ := BuildWithBones(DefaultCaps(), AttributeColorPremultiplied(), SolidCoverage(), UsePositionLocalCoords(), bones, Translate(5, 5))

	in := VertexInput{
		Position:    Pt(10, 20),
		Color:       0x80FF8040,
		Coverage:    0.5,
		BoneIndices: [4]uint8{0, 1, 2, 3},
		BoneWeights: [4]float32{0.25, 0.25, 0.25, 0.25},
	}
	for _, gp := range []*GeometryProcessor{straight, boned} {
		b.Run(gp.Layout().Kind.String()+"/"+gp.PositionTransform().String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = gp.ProcessVertex(in)
			}
		})
	}
}

// BenchmarkAppendVertex benchmarks vertex packing into a reused buffer.
func BenchmarkAppendVertex(b *testing.B) {
	l, _ := LayoutFor(LayoutPositionColorLocalCoordCoverage)
	in := VertexInput{Position: Pt(1, 2), Color: 0xFFFFFFFF, LocalCoord: Pt(0.5, 0.5), Coverage: 1}
	buf := make([]byte, 0, l.Stride*1024)
	b.SetBytes(int64(l.Stride))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf = AppendVertex(buf[:0], l, in)
	}
}
