package mesh

import (
	"errors"
	"fmt"
)

// Errors returned by NewView and Builder.Build.
var (
	ErrNilSource        = errors.New("mesh: nil source")
	ErrMissingPosition  = errors.New("mesh: position channel missing")
	ErrIncidenceLength  = errors.New("mesh: vertex_to_point length does not match face sizes")
	ErrNegativeFaceSize = errors.New("mesh: negative face size")
	ErrPointIndex       = errors.New("mesh: point index out of range")
	ErrChannelLength    = errors.New("mesh: channel length does not match its rate")
	ErrTupleSize        = errors.New("mesh: invalid tuple size")
	ErrFill             = errors.New("mesh: parallel fill failed")
)

// IntegrityError reports a topology inconsistency found while validating a source.
type IntegrityError struct {
	Field string // "face_sizes" or "vertex_to_point"
	Index int    // offending element, -1 when the whole array is at fault
	Want  int
	Got   int
	Err   error
}

func (e *IntegrityError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: %s want %d, got %d", e.Err, e.Field, e.Want, e.Got)
	}
	return fmt.Sprintf("%v: %s[%d] = %d (limit %d)", e.Err, e.Field, e.Index, e.Got, e.Want)
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// ChannelError reports a problem with one named attribute channel.
type ChannelError struct {
	Channel string
	Rate    Rate
	Err     error
	Detail  string
}

func (e *ChannelError) Error() string {
	msg := fmt.Sprintf("%v: %q (%s)", e.Err, e.Channel, e.Rate)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ChannelError) Unwrap() error { return e.Err }
