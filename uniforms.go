package geoproc

import (
	"encoding/binary"
	"math"

	"golang.org/x/image/math/f32"
)

// Uniform buffer sizes in bytes, in WGSL uniform address space layout.
const (
	// UniformsSize is the size of the Uniforms block at binding 0.
	UniformsSize = 144

	// BoneUniformsSize is the size of the bone array at binding 1.
	BoneUniformsSize = MaxBones * mat3UniformSize

	// A mat3x3<f32> stores three columns of vec3 padded to 16 bytes each.
	mat3UniformSize = 48
)

// RTAdjust returns the render-target adjustment that maps device pixels of
// a width x height target to clip space, y pointing down.
func RTAdjust(width, height float32) [4]float32 {
	return [4]float32{2 / width, -1, -2 / height, 1}
}

// AppendUniforms appends the Uniforms block read by the generated vertex
// stage and returns the extended slice. Exactly UniformsSize bytes are
// appended, little-endian:
//
//	offset   0  view          mat3x3<f32>
//	offset  48  local_matrix  mat3x3<f32>
//	offset  96  rt_adjust     vec4<f32>
//	offset 112  color         vec4<f32>
//	offset 128  coverage      f32
//	offset 132  bone_count    u32
func (gp *GeometryProcessor) AppendUniforms(dst []byte, rtAdjust [4]float32) []byte {
	dst = appendMat3(dst, gp.view.Mat3())
	dst = appendMat3(dst, gp.local.Matrix.Mat3())
	dst = appendFloats(dst, rtAdjust[:]...)
	c := gp.color.Value.Float()
	dst = appendFloats(dst, c.R, c.G, c.B, c.A)
	dst = appendFloats(dst, float32(gp.coverage.Value)/255)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(gp.bones)))
	return append(dst, make([]byte, 8)...)
}

// AppendBoneUniforms appends the bone array for binding 1, BoneUniformsSize
// bytes with unused slots zeroed. Processors without bones append nothing.
func (gp *GeometryProcessor) AppendBoneUniforms(dst []byte) []byte {
	if !gp.HasBones() {
		return dst
	}
	for _, m := range boneUniforms(gp.bones) {
		dst = appendMat3(dst, m)
	}
	return append(dst, make([]byte, (MaxBones-len(gp.bones))*mat3UniformSize)...)
}

// appendMat3 writes m with each column padded to 16 bytes. Rows of m
// become shader columns, which the stage multiplies as row vectors.
func appendMat3(dst []byte, m f32.Mat3) []byte {
	for i := 0; i < 9; i += 3 {
		dst = appendFloats(dst, m[i], m[i+1], m[i+2], 0)
	}
	return dst
}

func appendFloats(dst []byte, v ...float32) []byte {
	for _, f := range v {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}
