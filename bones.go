package geoproc

import (
	"fmt"

	"golang.org/x/image/math/f32"
)

// MaxBones is the size of the bone uniform array.
const MaxBones = 80

// BonesPerVertex is the number of (index, weight) pairs each vertex carries.
const BonesPerVertex = 4

// floatsPerBone is the flat affine bone format: a 3x2 column-major matrix
// (scaleX, skewY, skewX, scaleY, transX, transY).
const floatsPerBone = 6

// BoneOption is an optional array of bone matrices for skeletal
// deformation. The zero value carries no bones.
//
// By convention bone 0 is the identity so that unused index slots with a
// zero weight stay harmless, but the builder does not require it.
type BoneOption struct {
	bones []Matrix
}

// NoBones returns the empty BoneOption.
func NoBones() BoneOption { return BoneOption{} }

// NewBones copies bones into a BoneOption. Bones must be affine.
func NewBones(bones []Matrix) (BoneOption, error) {
	if len(bones) > MaxBones {
		return BoneOption{}, fmt.Errorf("%w: %d > %d", ErrTooManyBones, len(bones), MaxBones)
	}
	for i, m := range bones {
		if m.HasPerspective() {
			return BoneOption{}, fmt.Errorf("%w: bone %d has a perspective component", ErrInvalidOption, i)
		}
	}
	if len(bones) == 0 {
		return BoneOption{}, nil
	}
	return BoneOption{bones: append([]Matrix(nil), bones...)}, nil
}

// NewBonesFromFloats builds a BoneOption from count flat affine bones of six
// floats each, column-major: scaleX, skewY, skewX, scaleY, transX, transY.
func NewBonesFromFloats(values []float32, count int) (BoneOption, error) {
	if count < 0 || len(values) != count*floatsPerBone {
		return BoneOption{}, fmt.Errorf("%w: %d floats for %d bones", ErrInvalidOption, len(values), count)
	}
	if count > MaxBones {
		return BoneOption{}, fmt.Errorf("%w: %d > %d", ErrTooManyBones, count, MaxBones)
	}
	bones := make([]Matrix, count)
	for i := range bones {
		v := values[i*floatsPerBone : (i+1)*floatsPerBone]
		bones[i] = Affine(
			float64(v[0]), float64(v[2]), float64(v[4]),
			float64(v[1]), float64(v[3]), float64(v[5]),
		)
	}
	return BoneOption{bones: bones}, nil
}

// Count returns the number of bones.
func (o BoneOption) Count() int { return len(o.bones) }

// Empty reports whether the option carries no bones.
func (o BoneOption) Empty() bool { return len(o.bones) == 0 }

// Bones returns a copy of the bone matrices.
func (o BoneOption) Bones() []Matrix {
	return append([]Matrix(nil), o.bones...)
}

// DeformPoint blends p through the bones selected by idx, weighted by w:
//
//	p' = Σ w[i] * bones[idx[i]](p)
//
// Indices outside bones contribute nothing. Weights are not renormalized.
// Only the x and y rows of each bone are applied, as in the vertex stage.
func DeformPoint(bones []Matrix, p Point, idx [BonesPerVertex]uint8, w [BonesPerVertex]float32) Point {
	var out Point
	for i := range BonesPerVertex {
		if w[i] == 0 || int(idx[i]) >= len(bones) {
			continue
		}
		q := bones[idx[i]].MapHomogeneous(p)
		out = out.Add(Point{X: q.X, Y: q.Y}.Mul(float64(w[i])))
	}
	return out
}

// boneUniforms packs bones for upload.
func boneUniforms(bones []Matrix) []f32.Mat3 {
	if len(bones) == 0 {
		return nil
	}
	out := make([]f32.Mat3, len(bones))
	for i, b := range bones {
		out[i] = b.Mat3()
	}
	return out
}
