package boundary

import (
	stderrors "errors"
	"math"
	"unicode/utf8"

	"github.com/wippyai/feos-abi/errors"
)

// Status is the integer result code of a boundary call.
type Status int32

const (
	StatusOK              Status = 0
	StatusInvalidArgument Status = 1
	StatusInvalidHandle   Status = 2
	StatusUnimplemented   Status = 3
	StatusComputation     Status = 4
	StatusInternal        Status = 5
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidArgument:
		return "invalid argument"
	case StatusInvalidHandle:
		return "invalid handle"
	case StatusUnimplemented:
		return "unimplemented derivative order"
	case StatusComputation:
		return "computation failure"
	default:
		return "internal error"
	}
}

// StatusOf classifies an error.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return StatusComputation
	}
	switch e.Kind {
	case errors.KindInternal:
		return StatusInternal
	case errors.KindUnimplemented:
		return StatusUnimplemented
	case errors.KindNilPointer, errors.KindNotFound, errors.KindStaleHandle,
		errors.KindDoubleFree, errors.KindTypeMismatch:
		if e.Phase == errors.PhaseBoundary {
			return StatusInvalidHandle
		}
		return StatusInvalidArgument
	case errors.KindNoSolution:
		return StatusComputation
	default:
		return StatusInvalidArgument
	}
}

// WriteMessage copies msg into buf, truncated on a rune boundary and
// terminated by a null byte. An empty buf is left untouched.
func WriteMessage(buf []byte, msg string) {
	if len(buf) == 0 {
		return
	}
	n := len(msg)
	if n > len(buf)-1 {
		n = len(buf) - 1
		for n > 0 && !utf8.RuneStart(msg[n]) {
			n--
		}
	}
	copy(buf, msg[:n])
	buf[n] = 0
}

// Float returns v, or NaN when err is set.
func Float(v float64, err error) float64 {
	if err != nil {
		return math.NaN()
	}
	return v
}

// Flag maps a boolean result to 1 or 0, and any error to -1.
func Flag(ok bool, err error) int32 {
	switch {
	case err != nil:
		return -1
	case ok:
		return 1
	default:
		return 0
	}
}
