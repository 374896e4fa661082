package referenceframe

import (
	"github.com/pkg/errors"
)

// NewIncorrectDoFError returns an error indicating that the number of joint values given does not match the
// number of degrees of freedom of the arm.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("number of inputs does not match degrees of freedom. Expected %d, got %d", expected, actual)
}

// NewMismatchedLengthError returns an error indicating that one of the per-joint sequences of an arm config
// has a different length than the segment lengths.
func NewMismatchedLengthError(field string, actual, expected int) error {
	return errors.Errorf("%s has %d entries but the arm has %d segments", field, actual, expected)
}

// NewInvalidLimitError returns an error indicating that a joint limit has min > max.
func NewInvalidLimitError(joint int, limit Limit) error {
	return errors.Errorf("joint %d limit is invalid: min %v is greater than max %v", joint, limit.Min, limit.Max)
}

// NewNonPositiveSegmentError returns an error indicating that a segment length is not a positive number.
func NewNonPositiveSegmentError(segment int, length float64) error {
	return errors.Errorf("segment %d length must be positive, got %v", segment, length)
}
