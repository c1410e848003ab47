package errcode

// Code is a stable, operator-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Provisioning.
	HardwareConfig    Code = "hardware_config"     // pin-control utility absent or pin rejected
	ConfigFileMissing Code = "config_file_missing" // boot config file absent (never created here)
	PermissionDenied  Code = "permission_denied"   // boot config file unwritable

	// Pipeline collaborators.
	CameraUnavailable Code = "camera_unavailable"
	OCRModel          Code = "ocr_model"
	TTSVoice          Code = "tts_voice"

	InvalidParams Code = "invalid_params"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// New builds a wrapped error with a code, operation and cause.
func New(c Code, op string, err error) *E { return &E{C: c, Op: op, Err: err} }

// Newf builds a wrapped error with a code, operation and message.
func Newf(c Code, op, msg string) *E { return &E{C: c, Op: op, Msg: msg} }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		if inner := u.Unwrap(); inner != nil {
			if c := Of(inner); c != Error {
				return c
			}
		}
	}
	return Error
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, c Code) bool { return Of(err) == c }
