// Package shader generates WGSL vertex stages for geometry processors and
// compiles them to SPIR-V.
//
// The generated stage computes the same values as
// GeometryProcessor.ProcessVertex. Its resources are:
//
//	@group(0) @binding(0) var<uniform> u: Uniforms;
//	@group(0) @binding(1) var<uniform> bones: array<mat3x3<f32>, 80>; // boned only
//
// Matrices are uploaded row-major (Matrix.Mat3) and multiplied as row
// vectors in the shader, so no transpose is needed on upload. Each
// mat3x3 column occupies 16 bytes in the uniform buffer;
// GeometryProcessor.AppendUniforms and AppendBoneUniforms write both
// bindings in that layout.
//
// Vertex inputs use the shader locations of GeometryProcessor.BufferLayouts.
// Varyings are emitted only for values that change per vertex: attribute
// color, attribute coverage and local coordinates. Uniform color and
// coverage are read from the uniform block by the fragment stage.
package shader
