package geoproc

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"
)

// LayoutKind identifies one of the eight canonical vertex records.
// The value is a bit set: coverage (1), color (2), local coord (4).
type LayoutKind uint8

// The eight canonical vertex records.
const (
	LayoutPosition LayoutKind = iota
	LayoutPositionCoverage
	LayoutPositionColor
	LayoutPositionColorCoverage
	LayoutPositionLocalCoord
	LayoutPositionLocalCoordCoverage
	LayoutPositionColorLocalCoord
	LayoutPositionColorLocalCoordCoverage

	layoutCount
)

const (
	layoutHasCoverage LayoutKind = 1 << iota
	layoutHasColor
	layoutHasLocalCoord
)

var layoutNames = [layoutCount]string{
	"position",
	"position+coverage",
	"position+color",
	"position+color+coverage",
	"position+localcoord",
	"position+localcoord+coverage",
	"position+color+localcoord",
	"position+color+localcoord+coverage",
}

// String returns the record name, e.g. "position+color+coverage".
func (k LayoutKind) String() string {
	if k >= layoutCount {
		return fmt.Sprintf("LayoutKind(%d)", uint8(k))
	}
	return layoutNames[k]
}

// HasColor reports whether the record carries a color attribute.
func (k LayoutKind) HasColor() bool { return k&layoutHasColor != 0 }

// HasLocalCoord reports whether the record carries a local-coordinate attribute.
func (k LayoutKind) HasLocalCoord() bool { return k&layoutHasLocalCoord != 0 }

// HasCoverage reports whether the record carries a coverage attribute.
func (k LayoutKind) HasCoverage() bool { return k&layoutHasCoverage != 0 }

// AttribType is the semantic type of a vertex attribute.
type AttribType uint8

const (
	// AttribFloat is a single float32.
	AttribFloat AttribType = iota
	// AttribFloat2 is two float32 values.
	AttribFloat2
	// AttribFloat4 is four float32 values.
	AttribFloat4
	// AttribUByte4Norm is four normalized bytes in R, G, B, A order.
	AttribUByte4Norm
	// AttribUByte4 is four unsigned bytes read as integers.
	AttribUByte4
)

// Size returns the attribute size in bytes.
func (t AttribType) Size() int {
	switch t {
	case AttribFloat, AttribUByte4Norm, AttribUByte4:
		return 4
	case AttribFloat2:
		return 8
	case AttribFloat4:
		return 16
	default:
		return 0
	}
}

// Format returns the WebGPU vertex format.
func (t AttribType) Format() gputypes.VertexFormat {
	switch t {
	case AttribFloat:
		return gputypes.VertexFormatFloat32
	case AttribFloat2:
		return gputypes.VertexFormatFloat32x2
	case AttribFloat4:
		return gputypes.VertexFormatFloat32x4
	case AttribUByte4Norm:
		return gputypes.VertexFormatUnorm8x4
	case AttribUByte4:
		return gputypes.VertexFormatUint8x4
	default:
		return gputypes.VertexFormatFloat32
	}
}

// String returns the type name.
func (t AttribType) String() string {
	switch t {
	case AttribFloat:
		return "float"
	case AttribFloat2:
		return "float2"
	case AttribFloat4:
		return "float4"
	case AttribUByte4Norm:
		return "ubyte4_norm"
	case AttribUByte4:
		return "ubyte4"
	default:
		return fmt.Sprintf("AttribType(%d)", uint8(t))
	}
}

// Attribute names. The shader package uses the same names for its vertex
// input fields.
const (
	AttrPosition    = "inPosition"
	AttrColor       = "inColor"
	AttrLocalCoord  = "inLocalCoord"
	AttrCoverage    = "inCoverage"
	AttrBoneIndices = "inBoneIndices"
	AttrBoneWeights = "inBoneWeights"
)

// Attribute is one field of a vertex record.
type Attribute struct {
	Name   string
	Type   AttribType
	Offset int
}

// VertexAttributeLayout is a resolved vertex record: its kind, its ordered
// attributes and the byte stride between vertices.
type VertexAttributeLayout struct {
	Kind       LayoutKind
	Attributes []Attribute
	Stride     int
}

// layouts holds the eight records, built once.
var layouts = func() [layoutCount]VertexAttributeLayout {
	var out [layoutCount]VertexAttributeLayout
	for k := range layoutCount {
		out[k] = buildLayout(k)
	}
	return out
}()

func buildLayout(k LayoutKind) VertexAttributeLayout {
	l := VertexAttributeLayout{Kind: k}
	add := func(name string, t AttribType) {
		l.Attributes = append(l.Attributes, Attribute{Name: name, Type: t, Offset: l.Stride})
		l.Stride += t.Size()
	}
	add(AttrPosition, AttribFloat2)
	if k.HasColor() {
		add(AttrColor, AttribUByte4Norm)
	}
	if k.HasLocalCoord() {
		add(AttrLocalCoord, AttribFloat2)
	}
	if k.HasCoverage() {
		add(AttrCoverage, AttribFloat)
	}
	return l
}

// LayoutFor returns the canonical layout for kind.
func LayoutFor(kind LayoutKind) (VertexAttributeLayout, error) {
	if kind >= layoutCount {
		return VertexAttributeLayout{}, newError(KindInvalidCombination, "layout", kind.String()+" is not a canonical layout")
	}
	return layouts[kind].clone(), nil
}

// SelectLayout maps the three primary option descriptors to their vertex
// record. SolidCoverage, UniformCoverage, UnusedLocalCoords and
// UsePositionLocalCoords contribute no attribute.
func SelectLayout(c ColorOption, cov CoverageOption, lc LocalCoordsOption) (VertexAttributeLayout, error) {
	var kind LayoutKind
	switch c.Kind() {
	case ColorUniform:
	case ColorAttributePremul, ColorAttributeStraight:
		kind |= layoutHasColor
	default:
		return VertexAttributeLayout{}, newError(KindInvalidCombination, "layout", "unknown color kind "+c.Kind().String())
	}
	switch cov.Kind() {
	case CoverageSolid, CoverageUniform:
	case CoverageAttribute:
		kind |= layoutHasCoverage
	default:
		return VertexAttributeLayout{}, newError(KindInvalidCombination, "layout", "unknown coverage kind "+cov.Kind().String())
	}
	switch lc.Kind() {
	case LocalCoordsUnused, LocalCoordsUsePosition:
	case LocalCoordsExplicit, LocalCoordsTransformed:
		kind |= layoutHasLocalCoord
	default:
		return VertexAttributeLayout{}, newError(KindInvalidCombination, "layout", "unknown local coords kind "+lc.Kind().String())
	}
	return LayoutFor(kind)
}

func (l VertexAttributeLayout) clone() VertexAttributeLayout {
	l.Attributes = append([]Attribute(nil), l.Attributes...)
	return l
}

// Attribute returns the named attribute.
func (l VertexAttributeLayout) Attribute(name string) (Attribute, bool) {
	for _, a := range l.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// BufferLayout returns the WebGPU vertex buffer layout with shader
// locations assigned in attribute order starting at 0.
func (l VertexAttributeLayout) BufferLayout() gputypes.VertexBufferLayout {
	return bufferLayout(l.Attributes, l.Stride, 0)
}

func bufferLayout(attrs []Attribute, stride int, firstLocation int) gputypes.VertexBufferLayout {
	out := gputypes.VertexBufferLayout{
		ArrayStride: uint64(stride),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  make([]gputypes.VertexAttribute, len(attrs)),
	}
	for i, a := range attrs {
		out.Attributes[i] = gputypes.VertexAttribute{
			Format:         a.Type.Format(),
			Offset:         uint64(a.Offset),
			ShaderLocation: uint32(firstLocation + i),
		}
	}
	return out
}

// boneAttributes is the second vertex stream used by boned processors.
var boneAttributes = []Attribute{
	{Name: AttrBoneIndices, Type: AttribUByte4, Offset: 0},
	{Name: AttrBoneWeights, Type: AttribFloat4, Offset: 4},
}

// boneStride is the byte stride of the bone stream.
const boneStride = 20

// AppendVertex appends the bytes of one vertex in layout's record format,
// little-endian, and returns the extended slice. Exactly layout.Stride bytes
// are appended. Fields of v the layout does not carry are ignored.
func AppendVertex(dst []byte, layout VertexAttributeLayout, v VertexInput) []byte {
	for _, a := range layout.Attributes {
		switch a.Name {
		case AttrPosition:
			dst = appendVec2(dst, v.Position)
		case AttrColor:
			rgba := v.Color.RGBA8()
			dst = append(dst, rgba[:]...)
		case AttrLocalCoord:
			dst = appendVec2(dst, v.LocalCoord)
		case AttrCoverage:
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Coverage))
		}
	}
	return dst
}

// AppendBoneVertex appends the bone stream bytes of one vertex.
func AppendBoneVertex(dst []byte, v VertexInput) []byte {
	dst = append(dst, v.BoneIndices[:]...)
	for _, w := range v.BoneWeights {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(w))
	}
	return dst
}

func appendVec2(dst []byte, p Point) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(p.X)))
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(p.Y)))
}

// VertexRecord is implemented by the eight typed vertex records. Each
// record's memory layout matches its VertexAttributeLayout on little-endian
// hosts, so a slice of records can be uploaded as is.
type VertexRecord interface {
	LayoutKind() LayoutKind
	Input() VertexInput
}

// PositionAttr is the record for LayoutPosition.
type PositionAttr struct {
	Position f32.Vec2
}

// PositionCoverageAttr is the record for LayoutPositionCoverage.
type PositionCoverageAttr struct {
	Position f32.Vec2
	Coverage float32
}

// PositionColorAttr is the record for LayoutPositionColor.
type PositionColorAttr struct {
	Position f32.Vec2
	Color    RGBA8
}

// PositionColorCoverageAttr is the record for LayoutPositionColorCoverage.
type PositionColorCoverageAttr struct {
	Position f32.Vec2
	Color    RGBA8
	Coverage float32
}

// PositionLocalCoordAttr is the record for LayoutPositionLocalCoord.
type PositionLocalCoordAttr struct {
	Position   f32.Vec2
	LocalCoord f32.Vec2
}

// PositionLocalCoordCoverageAttr is the record for LayoutPositionLocalCoordCoverage.
type PositionLocalCoordCoverageAttr struct {
	Position   f32.Vec2
	LocalCoord f32.Vec2
	Coverage   float32
}

// PositionColorLocalCoordAttr is the record for LayoutPositionColorLocalCoord.
type PositionColorLocalCoordAttr struct {
	Position   f32.Vec2
	Color      RGBA8
	LocalCoord f32.Vec2
}

// PositionColorLocalCoordCoverageAttr is the record for LayoutPositionColorLocalCoordCoverage.
type PositionColorLocalCoordCoverageAttr struct {
	Position   f32.Vec2
	Color      RGBA8
	LocalCoord f32.Vec2
	Coverage   float32
}

func vec(v f32.Vec2) Point { return Point{X: float64(v[0]), Y: float64(v[1])} }

func (PositionAttr) LayoutKind() LayoutKind { return LayoutPosition }
func (r PositionAttr) Input() VertexInput {
	return VertexInput{Position: vec(r.Position), Coverage: 1}
}

func (PositionCoverageAttr) LayoutKind() LayoutKind { return LayoutPositionCoverage }
func (r PositionCoverageAttr) Input() VertexInput {
	return VertexInput{Position: vec(r.Position), Coverage: r.Coverage}
}

func (PositionColorAttr) LayoutKind() LayoutKind { return LayoutPositionColor }
func (r PositionColorAttr) Input() VertexInput {
	return VertexInput{Position: vec(r.Position), Color: r.Color.Color(), Coverage: 1}
}

func (PositionColorCoverageAttr) LayoutKind() LayoutKind { return LayoutPositionColorCoverage }
func (r PositionColorCoverageAttr) Input() VertexInput {
	return VertexInput{Position: vec(r.Position), Color: r.Color.Color(), Coverage: r.Coverage}
}

func (PositionLocalCoordAttr) LayoutKind() LayoutKind { return LayoutPositionLocalCoord }
func (r PositionLocalCoordAttr) Input() VertexInput {
	return VertexInput{Position: vec(r.Position), LocalCoord: vec(r.LocalCoord), Coverage: 1}
}

func (PositionLocalCoordCoverageAttr) LayoutKind() LayoutKind {
	return LayoutPositionLocalCoordCoverage
}
func (r PositionLocalCoordCoverageAttr) Input() VertexInput {
	return VertexInput{Position: vec(r.Position), LocalCoord: vec(r.LocalCoord), Coverage: r.Coverage}
}

func (PositionColorLocalCoordAttr) LayoutKind() LayoutKind { return LayoutPositionColorLocalCoord }
func (r PositionColorLocalCoordAttr) Input() VertexInput {
	return VertexInput{Position: vec(r.Position), Color: r.Color.Color(), LocalCoord: vec(r.LocalCoord), Coverage: 1}
}

func (PositionColorLocalCoordCoverageAttr) LayoutKind() LayoutKind {
	return LayoutPositionColorLocalCoordCoverage
}
func (r PositionColorLocalCoordCoverageAttr) Input() VertexInput {
	return VertexInput{Position: vec(r.Position), Color: r.Color.Color(), LocalCoord: vec(r.LocalCoord), Coverage: r.Coverage}
}
