package errors

import "log/slog"

type WithCause interface{ Cause() error }

type WithHint interface{ Hint() string }

// Runtime is an error that occurred while running a command. The message is
// meant for the user, while the cause and hint are reported separately.
type Runtime struct {
	msg   string
	cause error
	hint  string
}

func NewRuntimeError(msg string, cause error, hint string) Runtime {
	return Runtime{msg: msg, cause: cause, hint: hint}
}

func (e Runtime) Error() string {
	return e.msg
}

func (e Runtime) Cause() error {
	return e.cause
}

func (e Runtime) Unwrap() error {
	return e.cause
}

func (e Runtime) Hint() string {
	return e.hint
}

// Attrs returns the cause and hint of err as logging attributes, if it has
// any.
func Attrs(err error) []any {
	var attrs []any
	if ec, ok := err.(WithCause); ok && ec.Cause() != nil {
		attrs = append(attrs, slog.String("cause", ec.Cause().Error()))
	}
	if eh, ok := err.(WithHint); ok && eh.Hint() != "" {
		attrs = append(attrs, slog.String("hint", eh.Hint()))
	}

	return attrs
}
