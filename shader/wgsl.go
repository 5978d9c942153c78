package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/geoproc"
)

var (
	// ErrNilProcessor is returned when VertexWGSL is given a nil processor.
	ErrNilProcessor = errors.New("shader: nil geometry processor")

	// ErrUnsupportedXform is returned when a color-space transform has no
	// WGSL implementation.
	ErrUnsupportedXform = errors.New("shader: color-space transform has no WGSL implementation")
)

// EntryPoint is the name of the generated vertex entry point.
const EntryPoint = "vs_main"

// wgslXform is implemented by color-space transforms that can emit
// `fn color_xform(c: vec4<f32>) -> vec4<f32>`.
type wgslXform interface {
	WGSL() string
}

const uniformsWGSL = `struct Uniforms {
    view: mat3x3<f32>,
    local_matrix: mat3x3<f32>,
    rt_adjust: vec4<f32>,
    color: vec4<f32>,
    coverage: f32,
    bone_count: u32,
}

@group(0) @binding(0) var<uniform> u: Uniforms;
`

// VertexWGSL returns the WGSL vertex stage for gp.
//
// Two processors with equal keys produce identical source.
func VertexWGSL(gp *geoproc.GeometryProcessor) (string, error) {
	if gp == nil {
		return "", ErrNilProcessor
	}
	color := gp.Color()
	local := gp.LocalCoords()

	var xform string
	if color.Xform != nil {
		x, ok := color.Xform.(wgslXform)
		if !ok {
			return "", fmt.Errorf("%w: %T", ErrUnsupportedXform, color.Xform)
		}
		xform = x.WGSL()
	}

	var b strings.Builder
	b.WriteString(uniformsWGSL)
	if gp.HasBones() {
		fmt.Fprintf(&b, "@group(0) @binding(1) var<uniform> bones: array<mat3x3<f32>, %d>;\n", geoproc.MaxBones)
	}
	if xform != "" {
		b.WriteString("\n")
		b.WriteString(xform)
	}

	// Inputs, in shader-location order across both streams.
	b.WriteString("\nstruct VertexInput {\n")
	loc := 0
	for _, a := range gp.Layout().Attributes {
		fmt.Fprintf(&b, "    @location(%d) %s: %s,\n", loc, a.Name, wgslType(a.Type))
		loc++
	}
	for _, a := range gp.BoneAttributes() {
		fmt.Fprintf(&b, "    @location(%d) %s: %s,\n", loc, a.Name, wgslType(a.Type))
		loc++
	}
	b.WriteString("}\n")

	b.WriteString("\nstruct VertexOutput {\n    @builtin(position) position: vec4<f32>,\n")
	loc = 0
	if color.Attribute {
		fmt.Fprintf(&b, "    @location(%d) color: vec4<f32>,\n", loc)
		loc++
	}
	if gp.Coverage().Attribute {
		fmt.Fprintf(&b, "    @location(%d) coverage: f32,\n", loc)
		loc++
	}
	switch {
	case !local.Used():
	case local.LinearInterpolation:
		fmt.Fprintf(&b, "    @location(%d) @interpolate(linear) local_coord: vec3<f32>,\n", loc)
	case local.NeedsDivide:
		fmt.Fprintf(&b, "    @location(%d) local_coord: vec3<f32>,\n", loc)
	default:
		fmt.Fprintf(&b, "    @location(%d) local_coord: vec2<f32>,\n", loc)
	}
	b.WriteString("}\n")

	fmt.Fprintf(&b, "\n@vertex\nfn %s(v: VertexInput) -> VertexOutput {\n", EntryPoint)
	b.WriteString("    var out: VertexOutput;\n")
	fmt.Fprintf(&b, "    var pos = v.%s;\n", geoproc.AttrPosition)
	if gp.HasBones() {
		writeBoneBlend(&b)
	}
	if gp.PositionTransform() == geoproc.PositionIdentity {
		b.WriteString("    let devpos = vec3<f32>(pos, 1.0);\n")
	} else {
		b.WriteString("    let devpos = vec3<f32>(pos, 1.0) * u.view;\n")
	}
	b.WriteString("    out.position = vec4<f32>(\n" +
		"        devpos.x * u.rt_adjust.x + devpos.z * u.rt_adjust.y,\n" +
		"        devpos.y * u.rt_adjust.z + devpos.z * u.rt_adjust.w,\n" +
		"        0.0,\n" +
		"        devpos.z);\n")

	if color.Attribute {
		fmt.Fprintf(&b, "    var c = v.%s;\n", geoproc.AttrColor)
		if color.Premultiply {
			if xform != "" {
				b.WriteString("    c = color_xform(c);\n")
			}
			b.WriteString("    c = vec4<f32>(c.rgb * c.a, c.a);\n")
		}
		b.WriteString("    out.color = c;\n")
	}
	if gp.Coverage().Attribute {
		fmt.Fprintf(&b, "    out.coverage = v.%s;\n", geoproc.AttrCoverage)
	}
	if local.Used() {
		writeLocalCoords(&b, local)
	}

	b.WriteString("    return out;\n}\n")
	return b.String(), nil
}

func writeBoneBlend(b *strings.Builder) {
	b.WriteString("    let bone_src = vec3<f32>(pos, 1.0);\n")
	b.WriteString("    var deformed = vec2<f32>(0.0, 0.0);\n")
	for _, c := range [geoproc.BonesPerVertex]string{"x", "y", "z", "w"} {
		fmt.Fprintf(b, "    if (v.%[1]s.%[3]s < u.bone_count) {\n"+
			"        deformed += v.%[2]s.%[3]s * (bone_src * bones[v.%[1]s.%[3]s]).xy;\n"+
			"    }\n", geoproc.AttrBoneIndices, geoproc.AttrBoneWeights, c)
	}
	b.WriteString("    pos = deformed;\n")
}

func writeLocalCoords(b *strings.Builder, local geoproc.LocalCoordSource) {
	src := "pos"
	switch {
	case local.Attribute:
		src = "v." + geoproc.AttrLocalCoord
	case !local.Deformed:
		src = "v." + geoproc.AttrPosition
	}
	if local.SharesPositionTransform {
		fmt.Fprintf(b, "    out.local_coord = %s;\n", src)
		return
	}
	fmt.Fprintf(b, "    let lc = vec3<f32>(%s, 1.0) * u.local_matrix;\n", src)
	switch {
	case local.LinearInterpolation:
		b.WriteString("    out.local_coord = lc / devpos.z;\n")
	case local.NeedsDivide:
		b.WriteString("    out.local_coord = lc;\n")
	default:
		b.WriteString("    out.local_coord = lc.xy;\n")
	}
}

func wgslType(t geoproc.AttribType) string {
	switch t {
	case geoproc.AttribFloat:
		return "f32"
	case geoproc.AttribFloat2:
		return "vec2<f32>"
	case geoproc.AttribFloat4, geoproc.AttribUByte4Norm:
		return "vec4<f32>"
	case geoproc.AttribUByte4:
		return "vec4<u32>"
	default:
		return "f32"
	}
}
