package image

import "fmt"

// ErrorKind classifies the failures raised by this package.
type ErrorKind uint8

const (
	// InvalidArgument reports a violated constructor precondition.
	InvalidArgument ErrorKind = iota + 1

	// CorruptedImage reports an operation that is impossible for the
	// image's actual layout, or a broken structural invariant.
	CorruptedImage

	// NotImplemented reports an operation that is defined but not
	// supported for the image's layout.
	NotImplemented
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case CorruptedImage:
		return "corrupted image"
	case NotImplemented:
		return "not implemented"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by fallible operations of this package.
type Error struct {
	Kind ErrorKind
	// Op is the operation that failed, e.g. "NewRGB".
	Op string
	// Msg describes the failure.
	Msg string
}

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Msg == "":
		return "image: " + e.Kind.String()
	case e.Op == "":
		return "image: " + e.Kind.String() + ": " + e.Msg
	case e.Msg == "":
		return "image: " + e.Op + ": " + e.Kind.String()
	}
	return "image: " + e.Op + ": " + e.Kind.String() + ": " + e.Msg
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, ErrInvalidArgument) matches any invalid-argument error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for use with errors.Is.
var (
	ErrInvalidArgument = &Error{Kind: InvalidArgument}
	ErrCorruptedImage  = &Error{Kind: CorruptedImage}
	ErrNotImplemented  = &Error{Kind: NotImplemented}
)

func newError(kind ErrorKind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}
