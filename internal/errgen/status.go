package errgen

import (
	"go/token"
	"net/http"
)

// ValidateStatusCode reports whether code is a registered HTTP status known
// to net/http. It fails with an UnknownStatusCode diagnostic at pos.
func ValidateStatusCode(fset *token.FileSet, pos token.Pos, code uint16) error {
	if http.StatusText(int(code)) == "" {
		return diagf(fset, pos, UnknownStatusCode, "status_code must be well-known code")
	}
	return nil
}
