package geoproc

import "github.com/gogpu/gputypes"

// Caps describes the shading limits of the target. The builder only reads it.
// A zero limit means "unlimited", so Caps{} accepts every configuration.
type Caps struct {
	// MaxVertexAttributes bounds the number of vertex attributes across
	// all vertex streams.
	MaxVertexAttributes int

	// MaxVertexStride bounds the byte stride of a single vertex stream.
	MaxVertexStride int

	// MaxInterStageComponents bounds the scalar components passed from the
	// vertex stage to the fragment stage, excluding the position builtin.
	MaxInterStageComponents int

	// MaxBones bounds the number of bones. NewBones already rejects more
	// than the package-level MaxBones.
	MaxBones int

	// PerspectiveOnlyInterpolation reports that the target cannot
	// interpolate varyings linearly in screen space. Position-derived local
	// coordinates under a perspective view rely on it.
	PerspectiveOnlyInterpolation bool
}

// defaultInterStageComponents is the WebGPU baseline for inter-stage
// shader components.
const defaultInterStageComponents = 60

// DefaultCaps returns the caps of a baseline WebGPU device.
func DefaultCaps() Caps {
	return CapsFromLimits(gputypes.DefaultLimits())
}

// CapsFromLimits derives Caps from WebGPU device limits.
func CapsFromLimits(l gputypes.Limits) Caps {
	return Caps{
		MaxVertexAttributes:     int(l.MaxVertexAttributes),
		MaxVertexStride:         int(l.MaxVertexBufferArrayStride),
		MaxInterStageComponents: defaultInterStageComponents,
		MaxBones:                MaxBones,
	}
}

// exceeds reports whether n is over a limit, where zero is unlimited.
func exceeds(n, limit int) bool {
	return limit > 0 && n > limit
}
