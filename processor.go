package geoproc

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"
)

// PositionTransform describes how the output position is produced.
type PositionTransform uint8

const (
	// PositionIdentity passes the input position through unchanged.
	PositionIdentity PositionTransform = iota
	// PositionMultiplyByView left-multiplies the input position by the view matrix.
	PositionMultiplyByView
	// PositionMultiplyByViewPreBoned blends the input position through the
	// bones, then multiplies by the view matrix.
	PositionMultiplyByViewPreBoned
)

// String returns the transform name.
func (t PositionTransform) String() string {
	switch t {
	case PositionIdentity:
		return "identity"
	case PositionMultiplyByView:
		return "view"
	case PositionMultiplyByViewPreBoned:
		return "bones+view"
	default:
		return fmt.Sprintf("PositionTransform(%d)", uint8(t))
	}
}

// ColorSource describes how color reaches the fragment stage.
// The fragment stage always receives premultiplied color.
type ColorSource struct {
	Kind ColorKind
	// Attribute is true when color is read from the AttrColor attribute.
	Attribute bool
	// Value is the uniform color. Only meaningful when Attribute is false.
	Value Color
	// Xform runs on the straight-alpha attribute before premultiplication.
	Xform ColorSpaceXform
	// Premultiply is true when the stage premultiplies the attribute.
	Premultiply bool
}

// CoverageSource describes how coverage reaches the fragment stage.
type CoverageSource struct {
	Kind CoverageKind
	// Attribute is true when coverage is read from the AttrCoverage attribute.
	Attribute bool
	// Uniform is true when Value is broadcast through a uniform slot.
	Uniform bool
	// Value is the uniform coverage byte; 0xFF for solid coverage.
	Value uint8
}

// LocalCoordSource describes how local coordinates are produced.
type LocalCoordSource struct {
	Kind LocalCoordsKind
	// Attribute is true when the source is the AttrLocalCoord attribute;
	// otherwise it is the input position.
	Attribute bool
	// Matrix maps the source to the local coordinate, evaluated per vertex.
	Matrix Matrix
	// NeedsDivide is true when the local coordinate is emitted as (x, y, w)
	// and the consumer divides after interpolation.
	NeedsDivide bool
	// LinearInterpolation is true when the homogeneous local coordinate is
	// divided by the clip w and must be interpolated linearly in screen
	// space. The per-fragment divide by its third component then yields the
	// perspective-correct local coordinate.
	LinearInterpolation bool
	// SharesPositionTransform is true when no separate local stage runs:
	// the local coordinate is the same input the position stage consumes.
	SharesPositionTransform bool
	// Deformed is true when the position-derived source passes through the
	// bone blend first.
	Deformed bool
}

// Used reports whether local coordinates are wired at all.
func (s LocalCoordSource) Used() bool { return s.Kind != LocalCoordsUnused }

// Components returns the number of scalar components of the varying.
func (s LocalCoordSource) Components() int {
	switch {
	case !s.Used():
		return 0
	case s.NeedsDivide:
		return 3
	default:
		return 2
	}
}

// GeometryProcessor is a fully resolved geometry-stage configuration for one
// draw-call family. It is immutable; accessors return copies.
type GeometryProcessor struct {
	label       string
	layout      VertexAttributeLayout
	position    PositionTransform
	deviceSpace bool
	color       ColorSource
	coverage    CoverageSource
	local       LocalCoordSource
	view        Matrix
	inverse     Matrix
	hasInverse  bool
	bones       []Matrix
	key         uint32
}

// Label returns the label given with WithLabel.
func (gp *GeometryProcessor) Label() string { return gp.label }

// Layout returns the vertex attribute layout.
func (gp *GeometryProcessor) Layout() VertexAttributeLayout { return gp.layout.clone() }

// PositionTransform returns the position-transform mode.
func (gp *GeometryProcessor) PositionTransform() PositionTransform { return gp.position }

// DeviceSpace reports whether input positions are already in device space.
func (gp *GeometryProcessor) DeviceSpace() bool { return gp.deviceSpace }

// Color returns the color-sourcing descriptor.
func (gp *GeometryProcessor) Color() ColorSource { return gp.color }

// Coverage returns the coverage-sourcing descriptor.
func (gp *GeometryProcessor) Coverage() CoverageSource { return gp.coverage }

// LocalCoords returns the local-coordinate descriptor.
func (gp *GeometryProcessor) LocalCoords() LocalCoordSource { return gp.local }

// ViewMatrix returns the view matrix the processor was built with.
func (gp *GeometryProcessor) ViewMatrix() Matrix { return gp.view }

// InverseView returns the retained inverse of the view matrix. It is only
// present for device-space processors.
func (gp *GeometryProcessor) InverseView() (Matrix, bool) { return gp.inverse, gp.hasInverse }

// Bones returns a copy of the bone matrices, nil when not boned.
func (gp *GeometryProcessor) Bones() []Matrix {
	if len(gp.bones) == 0 {
		return nil
	}
	return append([]Matrix(nil), gp.bones...)
}

// HasBones reports whether positions are deformed before the view stage.
func (gp *GeometryProcessor) HasBones() bool { return len(gp.bones) > 0 }

// BoneAttributes returns the per-vertex bone attributes of the second
// vertex stream, nil when not boned.
func (gp *GeometryProcessor) BoneAttributes() []Attribute {
	if !gp.HasBones() {
		return nil
	}
	return append([]Attribute(nil), boneAttributes...)
}

// BufferLayouts returns the WebGPU vertex buffer layouts: the vertex record,
// followed by the bone stream when boned. Shader locations are contiguous
// across streams.
func (gp *GeometryProcessor) BufferLayouts() []gputypes.VertexBufferLayout {
	out := []gputypes.VertexBufferLayout{gp.layout.BufferLayout()}
	if gp.HasBones() {
		out = append(out, bufferLayout(boneAttributes, boneStride, len(gp.layout.Attributes)))
	}
	return out
}

// AttributeCount returns the number of vertex attributes across all streams.
func (gp *GeometryProcessor) AttributeCount() int {
	n := len(gp.layout.Attributes)
	if gp.HasBones() {
		n += len(boneAttributes)
	}
	return n
}

// ViewUniform returns the view matrix as nine tightly packed floats, row
// major. A uniform buffer needs each row padded to 16 bytes; AppendUniforms
// writes that layout.
func (gp *GeometryProcessor) ViewUniform() f32.Mat3 { return gp.view.Mat3() }

// LocalMatrixUniform returns the local-coordinate matrix packed like
// ViewUniform.
func (gp *GeometryProcessor) LocalMatrixUniform() f32.Mat3 { return gp.local.Matrix.Mat3() }

// BoneUniforms returns the bone matrices packed like ViewUniform. Use
// AppendBoneUniforms for the padded uniform array.
func (gp *GeometryProcessor) BoneUniforms() []f32.Mat3 { return boneUniforms(gp.bones) }

// Key returns the processor key. Processors with equal keys generate the
// same shader code and differ only in uniform values.
func (gp *GeometryProcessor) Key() uint32 { return gp.key }

// Key bit layout.
const (
	keyColorShift     = 0 // 2 bits
	keyXformBit       = 1 << 2
	keyCoverageShift  = 3 // 2 bits
	keyLocalShift     = 5 // 2 bits
	keyLocalMatrixBit = 1 << 7
	keyDivideBit      = 1 << 8
	keyLinearBit      = 1 << 9
	keyPositionShift  = 10 // 2 bits
	keyDeviceBit      = 1 << 12
	keyXformShift     = 16
	xformKeyMask      = 0xFFFF
)

func computeKey(gp *GeometryProcessor) uint32 {
	key := uint32(gp.color.Kind)<<keyColorShift |
		uint32(gp.coverage.Kind)<<keyCoverageShift |
		uint32(gp.local.Kind)<<keyLocalShift |
		uint32(gp.position)<<keyPositionShift
	if gp.color.Xform != nil {
		key |= keyXformBit | (gp.color.Xform.Key()&xformKeyMask)<<keyXformShift
	}
	if gp.local.Used() && !gp.local.Matrix.IsIdentity() {
		key |= keyLocalMatrixBit
	}
	if gp.local.NeedsDivide {
		key |= keyDivideBit
	}
	if gp.local.LinearInterpolation {
		key |= keyLinearBit
	}
	if gp.deviceSpace {
		key |= keyDeviceBit
	}
	return key
}

// String returns a multi-line description of the resolved configuration.
func (gp *GeometryProcessor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "processor %q key=0x%08X\n", gp.label, gp.key)
	fmt.Fprintf(&b, "  layout:    %v stride=%d\n", gp.layout.Kind, gp.layout.Stride)
	for _, a := range gp.layout.Attributes {
		fmt.Fprintf(&b, "    %-14s %-12v offset=%d\n", a.Name, a.Type, a.Offset)
	}
	for _, a := range gp.BoneAttributes() {
		fmt.Fprintf(&b, "    %-14s %-12v offset=%d (bone stream)\n", a.Name, a.Type, a.Offset)
	}
	fmt.Fprintf(&b, "  position:  %v device=%t\n", gp.position, gp.deviceSpace)
	if gp.color.Attribute {
		fmt.Fprintf(&b, "  color:     %v premultiply=%t xform=%t\n", gp.color.Kind, gp.color.Premultiply, gp.color.Xform != nil)
	} else {
		fmt.Fprintf(&b, "  color:     uniform %v\n", gp.color.Value)
	}
	switch {
	case gp.coverage.Attribute:
		fmt.Fprintf(&b, "  coverage:  attribute\n")
	case gp.coverage.Uniform:
		fmt.Fprintf(&b, "  coverage:  uniform %d\n", gp.coverage.Value)
	default:
		fmt.Fprintf(&b, "  coverage:  solid\n")
	}
	if gp.local.Used() {
		fmt.Fprintf(&b, "  local:     %v attribute=%t divide=%t shared=%t deformed=%t\n",
			gp.local.Kind, gp.local.Attribute, gp.local.NeedsDivide, gp.local.SharesPositionTransform, gp.local.Deformed)
	} else {
		fmt.Fprintf(&b, "  local:     unused\n")
	}
	if gp.HasBones() {
		fmt.Fprintf(&b, "  bones:     %d\n", len(gp.bones))
	}
	return b.String()
}

// VertexInput is one vertex as the geometry stage sees it. Fields the
// processor's layout does not carry are ignored.
type VertexInput struct {
	Position    Point
	Color       Color
	LocalCoord  Point
	Coverage    float32
	BoneIndices [BonesPerVertex]uint8
	BoneWeights [BonesPerVertex]float32
}

// VertexOutput is what the geometry stage hands to the rasterizer.
type VertexOutput struct {
	// Position is the homogeneous device-space position.
	Position Point3
	// Color is premultiplied.
	Color ColorF
	// Coverage is in [0,1].
	Coverage float32
	// LocalCoord is homogeneous; W is 1 unless the source NeedsDivide.
	// With LinearInterpolation every component is divided by the clip w.
	LocalCoord Point3
}

// Local returns the local coordinate after the divide stage.
func (o VertexOutput) Local() Point { return o.LocalCoord.Project() }

// byteXform is implemented by transforms with a byte lookup path.
type byteXform interface {
	applyBytes(Color) ColorF
}

// ProcessVertex evaluates the geometry stage for one vertex on the CPU.
// It computes exactly what the generated vertex stage computes.
func (gp *GeometryProcessor) ProcessVertex(in VertexInput) VertexOutput {
	var out VertexOutput

	pos := in.Position
	if gp.HasBones() {
		pos = DeformPoint(gp.bones, pos, in.BoneIndices, in.BoneWeights)
	}
	switch gp.position {
	case PositionIdentity:
		out.Position = Point3{X: pos.X, Y: pos.Y, W: 1}
	default:
		out.Position = gp.view.MapHomogeneous(pos)
	}

	switch {
	case !gp.color.Attribute:
		out.Color = gp.color.Value.Float()
	case !gp.color.Premultiply:
		out.Color = in.Color.Float()
	default:
		var c ColorF
		switch x := gp.color.Xform.(type) {
		case nil:
			c = in.Color.Float()
		case byteXform:
			c = x.applyBytes(in.Color)
		default:
			c = x.Apply(in.Color.Float())
		}
		out.Color = c.Premultiply()
	}

	switch {
	case gp.coverage.Attribute:
		out.Coverage = in.Coverage
	default:
		out.Coverage = float32(gp.coverage.Value) / 255
	}

	if gp.local.Used() {
		src := pos
		if gp.local.Attribute {
			src = in.LocalCoord
		} else if !gp.local.Deformed {
			src = in.Position
		}
		lc := gp.local.Matrix.MapHomogeneous(src)
		if w := out.Position.W; gp.local.LinearInterpolation && w != 0 {
			lc = Point3{X: lc.X / w, Y: lc.Y / w, W: lc.W / w}
		}
		out.LocalCoord = lc
	}
	return out
}
