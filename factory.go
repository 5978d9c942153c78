package geoproc

import (
	"fmt"
	"log/slog"
)

// Build returns a processor for world-space input positions: the output
// position is the input left-multiplied by view.
//
// The view matrix is copied; the caller may reuse it after Build returns.
func Build(caps Caps, c ColorOption, cov CoverageOption, lc LocalCoordsOption, view Matrix, opts ...Option) (*GeometryProcessor, error) {
	return build(buildRequest{
		op: "build", caps: caps, color: c, coverage: cov, local: lc, view: view,
	}, opts)
}

// BuildForDeviceSpace returns a processor for input positions that are
// already in device space. The position passes through unchanged; view is
// only used to derive the retained inverse, which maps device positions
// back to local coordinates. A singular view fails with ErrNonInvertible.
func BuildForDeviceSpace(caps Caps, c ColorOption, cov CoverageOption, lc LocalCoordsOption, view Matrix, opts ...Option) (*GeometryProcessor, error) {
	return build(buildRequest{
		op: "build for device space", caps: caps, color: c, coverage: cov, local: lc, view: view,
		deviceSpace: true,
	}, opts)
}

// BuildWithBones returns a world-space processor that deforms every input
// position by a per-vertex weighted blend of bones before the view
// multiply. Per-vertex bone indices and weights arrive in a second vertex
// stream, see GeometryProcessor.BoneAttributes.
//
// Bone deformation cannot be combined with a local matrix: both
// TransformedLocalCoords and UsePositionLocalCoordsWithMatrix fail with
// ErrInvalidCombination. A singular view fails with ErrNonInvertible.
// An empty BoneOption behaves like Build.
func BuildWithBones(caps Caps, c ColorOption, cov CoverageOption, lc LocalCoordsOption, bones BoneOption, view Matrix, opts ...Option) (*GeometryProcessor, error) {
	return build(buildRequest{
		op: "build with bones", caps: caps, color: c, coverage: cov, local: lc, view: view,
		bones: bones,
	}, opts)
}

type buildRequest struct {
	op          string
	caps        Caps
	color       ColorOption
	coverage    CoverageOption
	local       LocalCoordsOption
	bones       BoneOption
	view        Matrix
	deviceSpace bool
}

func build(req buildRequest, opts []Option) (*GeometryProcessor, error) {
	o := defaultBuildOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}

	gp, err := resolve(req, o.label)
	if err != nil {
		log.Debug("geoproc: construction rejected",
			slog.String("label", o.label),
			slog.String("op", req.op),
			slog.Any("error", err))
		return nil, err
	}
	log.Debug("geoproc: resolved geometry processor",
		slog.String("label", gp.label),
		slog.String("layout", gp.layout.Kind.String()),
		slog.String("position", gp.position.String()),
		slog.Int("bones", len(gp.bones)),
		slog.String("key", fmt.Sprintf("0x%08X", gp.key)))
	return gp, nil
}

// resolve runs every check before allocating the processor, so a failure
// never yields a partial result.
func resolve(req buildRequest, label string) (*GeometryProcessor, error) {
	layout, err := SelectLayout(req.color, req.coverage, req.local)
	if err != nil {
		if ce, ok := err.(*ConstructionError); ok {
			ce.Op = req.op
		}
		return nil, err
	}

	if x := req.color.Xform(); x != nil {
		if k := x.Key(); k == 0 || k > xformKeyMask {
			return nil, newError(KindInvalidCombination, req.op,
				fmt.Sprintf("color-space transform key 0x%X is not a non-zero 16-bit value", k))
		}
	}

	boned := !req.bones.Empty()
	if boned && req.local.HasLocalMatrix() {
		return nil, newError(KindInvalidCombination, req.op,
			"bone deformation conflicts with "+req.local.Kind().String()+" local coordinates carrying a matrix")
	}

	gp := &GeometryProcessor{
		label:       label,
		layout:      layout,
		deviceSpace: req.deviceSpace,
		view:        req.view,
		inverse:     Identity(),
	}

	switch {
	case req.deviceSpace:
		inv, ok := req.view.Invert()
		if !ok {
			return nil, newError(KindNonInvertible, req.op, "device-space local coordinates need the inverse view matrix")
		}
		gp.inverse, gp.hasInverse = inv, true
		gp.position = PositionIdentity
	case boned:
		if !req.view.IsInvertible() {
			return nil, newError(KindNonInvertible, req.op, "bone deformation needs an invertible view matrix")
		}
		gp.position = PositionMultiplyByViewPreBoned
		gp.bones = req.bones.Bones()
	case req.view.IsIdentity():
		gp.position = PositionIdentity
	default:
		gp.position = PositionMultiplyByView
	}

	gp.color = resolveColor(req.color)
	gp.coverage = resolveCoverage(req.coverage)
	gp.local = resolveLocal(req, gp.inverse, boned)

	if err := checkCaps(req.op, req.caps, gp); err != nil {
		return nil, err
	}
	gp.key = computeKey(gp)
	return gp, nil
}

func resolveColor(c ColorOption) ColorSource {
	switch c.Kind() {
	case ColorAttributePremul:
		return ColorSource{Kind: ColorAttributePremul, Attribute: true, Value: IllegalColor}
	case ColorAttributeStraight:
		return ColorSource{Kind: ColorAttributeStraight, Attribute: true, Value: IllegalColor, Xform: c.Xform(), Premultiply: true}
	default:
		return ColorSource{Kind: ColorUniform, Value: c.Color()}
	}
}

func resolveCoverage(cov CoverageOption) CoverageSource {
	switch cov.Kind() {
	case CoverageUniform:
		return CoverageSource{Kind: CoverageUniform, Uniform: true, Value: cov.Coverage()}
	case CoverageAttribute:
		return CoverageSource{Kind: CoverageAttribute, Attribute: true, Value: 0xFF}
	default:
		return CoverageSource{Kind: CoverageSolid, Value: 0xFF}
	}
}

func resolveLocal(req buildRequest, inverse Matrix, boned bool) LocalCoordSource {
	lc := req.local
	switch lc.Kind() {
	case LocalCoordsUsePosition:
		m := lc.Matrix()
		if req.deviceSpace {
			// Device positions map back through the inverse view first.
			m = m.Multiply(inverse)
		}
		viewPersp := !req.deviceSpace && req.view.HasPerspective()
		divide := viewPersp || m.HasPerspective()
		return LocalCoordSource{
			Kind:                    LocalCoordsUsePosition,
			Matrix:                  m,
			NeedsDivide:             divide,
			LinearInterpolation:     viewPersp,
			SharesPositionTransform: !divide && m.IsIdentity(),
			Deformed:                boned,
		}
	case LocalCoordsExplicit, LocalCoordsTransformed:
		m := lc.Matrix()
		return LocalCoordSource{
			Kind:        lc.Kind(),
			Attribute:   true,
			Matrix:      m,
			NeedsDivide: m.HasPerspective(),
		}
	default:
		return LocalCoordSource{Kind: LocalCoordsUnused, Matrix: Identity()}
	}
}

func checkCaps(op string, caps Caps, gp *GeometryProcessor) error {
	if n := gp.AttributeCount(); exceeds(n, caps.MaxVertexAttributes) {
		return newError(KindCapabilityShortfall, op,
			fmt.Sprintf("%d vertex attributes exceed the limit of %d", n, caps.MaxVertexAttributes))
	}
	if exceeds(gp.layout.Stride, caps.MaxVertexStride) {
		return newError(KindCapabilityShortfall, op,
			fmt.Sprintf("vertex stride %d exceeds the limit of %d", gp.layout.Stride, caps.MaxVertexStride))
	}
	if gp.HasBones() && exceeds(boneStride, caps.MaxVertexStride) {
		return newError(KindCapabilityShortfall, op,
			fmt.Sprintf("bone stride %d exceeds the limit of %d", boneStride, caps.MaxVertexStride))
	}
	varyings := gp.local.Components()
	if gp.color.Attribute {
		varyings += 4
	}
	if gp.coverage.Attribute {
		varyings++
	}
	if exceeds(varyings, caps.MaxInterStageComponents) {
		return newError(KindCapabilityShortfall, op,
			fmt.Sprintf("%d inter-stage components exceed the limit of %d", varyings, caps.MaxInterStageComponents))
	}
	if gp.local.LinearInterpolation && caps.PerspectiveOnlyInterpolation {
		return newError(KindCapabilityShortfall, op, "perspective local coordinates need linear interpolation")
	}
	if n := len(gp.bones); exceeds(n, caps.MaxBones) {
		return newError(KindCapabilityShortfall, op,
			fmt.Sprintf("%d bones exceed the limit of %d", n, caps.MaxBones))
	}
	return nil
}
