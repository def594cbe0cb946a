package usecase

import crerr "github.com/cockroachdb/errors"

var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")

	// Search failure kinds. Every kind resolves a search as failure.
	ErrNetwork = crerr.New("network error")
	ErrParse   = crerr.New("parse error")
	ErrDecode  = crerr.New("decode error")
)

// FailureKind names the marker carried by err, for logs and diagnostics.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case crerr.Is(err, ErrNetwork):
		return "network"
	case crerr.Is(err, ErrParse):
		return "parse"
	case crerr.Is(err, ErrDecode):
		return "decode"
	default:
		return "unknown"
	}
}
