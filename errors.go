package geoproc

import "errors"

// Sentinel errors for construction failures. Every *ConstructionError
// unwraps to exactly one of the first three.
var (
	// ErrInvalidCombination is returned when the option descriptors do not
	// describe one of the supported configurations, for example bone
	// deformation together with a local-matrix transform.
	ErrInvalidCombination = errors.New("geoproc: invalid option combination")

	// ErrNonInvertible is returned when device-space construction is
	// requested with a singular view matrix.
	ErrNonInvertible = errors.New("geoproc: view matrix is not invertible")

	// ErrCapabilityShortfall is returned when the configuration needs more
	// than the target's Caps report as supported.
	ErrCapabilityShortfall = errors.New("geoproc: capability shortfall")
)

// Sentinel errors for option descriptor constructors.
var (
	// ErrNilMatrix is returned when a local-coordinate descriptor that
	// requires a matrix is given nil.
	ErrNilMatrix = errors.New("geoproc: local coordinates require a non-nil matrix")

	// ErrInvalidOption is returned when a descriptor constructor is given a
	// variant tag it cannot represent.
	ErrInvalidOption = errors.New("geoproc: invalid option")

	// ErrTooManyBones is returned when a bone array exceeds MaxBones.
	ErrTooManyBones = errors.New("geoproc: too many bones")
)

// ErrorKind classifies a ConstructionError.
type ErrorKind uint8

const (
	// KindInvalidCombination maps to ErrInvalidCombination.
	KindInvalidCombination ErrorKind = iota
	// KindNonInvertible maps to ErrNonInvertible.
	KindNonInvertible
	// KindCapabilityShortfall maps to ErrCapabilityShortfall.
	KindCapabilityShortfall
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidCombination:
		return "invalid combination"
	case KindNonInvertible:
		return "non-invertible transform"
	case KindCapabilityShortfall:
		return "capability shortfall"
	default:
		return "unknown"
	}
}

// ConstructionError is returned by Build, BuildForDeviceSpace and
// BuildWithBones. Use errors.Is with the Err* sentinels to test the kind.
type ConstructionError struct {
	Kind   ErrorKind
	Op     string
	Reason string
}

func (e *ConstructionError) Error() string {
	return "geoproc: " + e.Op + ": " + e.Kind.String() + ": " + e.Reason
}

// Unwrap returns the sentinel error for the kind.
func (e *ConstructionError) Unwrap() error {
	switch e.Kind {
	case KindNonInvertible:
		return ErrNonInvertible
	case KindCapabilityShortfall:
		return ErrCapabilityShortfall
	default:
		return ErrInvalidCombination
	}
}

func newError(kind ErrorKind, op, reason string) *ConstructionError {
	return &ConstructionError{Kind: kind, Op: op, Reason: reason}
}
