package etc2

import "errors"

// ErrorCode classifies decoder and container errors so callers can branch
// on the failure kind without matching message text.
type ErrorCode uint32

const (
	// Success is the zero code, reported for a nil error.
	Success ErrorCode = 0

	// ErrOutOfMem is returned when a decode would need a pixel buffer
	// whose size overflows, before any allocation is attempted.
	ErrOutOfMem ErrorCode = 1

	// ErrBadParam is returned for invalid arguments, and is the fallback
	// code for foreign errors.
	ErrBadParam ErrorCode = 2

	// ErrIOUnavailable is returned when the underlying reader fails
	// before a complete container could be read.
	ErrIOUnavailable ErrorCode = 3

	// ErrBadHeader is returned for containers whose header fails
	// validation: wrong magic, unsupported endianness, array or cubemap
	// textures, key/value metadata, or degenerate dimensions.
	ErrBadHeader ErrorCode = 4

	// ErrUnsupportedFormat is returned when the container's internal
	// format is not one this decoder handles, whether unknown or merely
	// recognized.
	ErrUnsupportedFormat ErrorCode = 5

	// ErrTruncatedStream is returned when the data ends before a header,
	// level size prefix, or level payload is complete.
	ErrTruncatedStream ErrorCode = 6

	// ErrBadLevelSize is returned when a level's stored byte size is not
	// word aligned or does not match its dimensions and format.
	ErrBadLevelSize ErrorCode = 7
)

// ErrorString returns the stable name for a code, or "" for unknown codes.
func ErrorString(code ErrorCode) string {
	switch code {
	case Success:
		return "SUCCESS"
	case ErrOutOfMem:
		return "ERR_OUT_OF_MEM"
	case ErrBadParam:
		return "ERR_BAD_PARAM"
	case ErrIOUnavailable:
		return "ERR_IO_UNAVAILABLE"
	case ErrBadHeader:
		return "ERR_BAD_HEADER"
	case ErrUnsupportedFormat:
		return "ERR_UNSUPPORTED_FORMAT"
	case ErrTruncatedStream:
		return "ERR_TRUNCATED_STREAM"
	case ErrBadLevelSize:
		return "ERR_BAD_LEVEL_SIZE"
	default:
		return ""
	}
}

// Error is a typed error that carries an ErrorCode.
type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	if s := ErrorString(e.Code); s != "" {
		return "etc2: " + s
	}
	return "etc2: error"
}

// ErrorCodeOf returns the error code carried by err, or Success for nil.
//
// For non-*Error errors it returns ErrBadParam as a conservative fallback.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrBadParam
}

func newError(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}
