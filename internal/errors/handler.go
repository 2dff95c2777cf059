package apperrors

import (
	"errors"
	"fmt"
	"io"
)

// ColorProvider supplies the escape sequences used to highlight error output.
// A nil provider prints plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleRunError writes a description of err to out and maps it to an exit
// code. A nil error maps to ExitSuccess.
func HandleRunError(err error, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	var configErr ConfigError
	var mismatchErr MismatchError
	switch {
	case IsContextError(err):
		fmt.Fprintf(out, "%sStatus: Canceled%s (%v)\n", yellow, reset, err)
		return ExitErrorCanceled
	case errors.As(err, &configErr):
		fmt.Fprintf(out, "%sConfiguration error:%s %v\n", red, reset, err)
		return ExitErrorConfig
	case errors.As(err, &mismatchErr):
		fmt.Fprintf(out, "%sStatus: Mismatch.%s %v\n", red, reset, err)
		return ExitErrorMismatch
	default:
		fmt.Fprintf(out, "%sStatus: Failure.%s %v\n", red, reset, err)
		return ExitErrorGeneric
	}
}
