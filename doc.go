// Package geoproc builds default geometry processors: the per-draw
// configuration of a rasterizer's vertex stage.
//
// # Overview
//
// A caller describes what it has per vertex with three small option
// descriptors, plus an optional bone array:
//
//   - [ColorOption]: a uniform color, premultiplied per-vertex colors, or
//     straight-alpha per-vertex colors with an optional [ColorSpaceXform]
//   - [CoverageOption]: solid, a uniform byte, or per-vertex coverage
//   - [LocalCoordsOption]: unused, derived from position, or an explicit
//     attribute, optionally multiplied by a matrix
//   - [BoneOption]: bone matrices for skeletal deformation
//
// The factory derives one of eight vertex records ([SelectLayout]), how the
// position reaches device space, and how color, coverage and local
// coordinates are sourced, and returns an immutable [GeometryProcessor].
//
// # Quick Start
//
//	gp, err := geoproc.Build(geoproc.DefaultCaps(),
//	    geoproc.UniformColor(0xFF00FF00),
//	    geoproc.SolidCoverage(),
//	    geoproc.UsePositionLocalCoords(),
//	    geoproc.Scale(2, 2))
//	if err != nil {
//	    return err
//	}
//	buffers := gp.BufferLayouts() // []gputypes.VertexBufferLayout
//
// # Entry Points
//
//   - [Build]: world-space positions, multiplied by the view matrix
//   - [BuildForDeviceSpace]: device-space positions; the view matrix is
//     inverted to relate device positions to local coordinates
//   - [BuildWithBones]: world-space positions blended through bones first
//
// # Errors
//
// Construction either returns a complete processor or a
// [*ConstructionError] that unwraps to [ErrInvalidCombination],
// [ErrNonInvertible] or [ErrCapabilityShortfall].
//
// # Ownership
//
// Matrices and bone arrays are copied during construction. The only
// reference a processor keeps is the color-space transform, which callers
// must not mutate while the processor is in use. Builds share no mutable
// state and may run concurrently.
package geoproc
