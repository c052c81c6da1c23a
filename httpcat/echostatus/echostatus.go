// Package echostatus converts labstack/echo HTTP errors into catalog entries.
// Importing it is what pulls echo into a build; the httpcat package itself
// does not depend on echo.
package echostatus

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adeilh/go-httpcat/httpcat"
)

var ErrNilError = errors.New("echostatus: nil error")

// FromHTTPError looks up he.Code in the catalog.
func FromHTTPError(he *echo.HTTPError) (httpcat.Status, error) {
	if he == nil {
		return 0, ErrNilError
	}
	return httpcat.FromInt(he.Code)
}

// FromError maps any handler error the way echo's default error handler
// would: an *echo.HTTPError anywhere in the chain contributes its code,
// everything else is a 500.
func FromError(err error) (httpcat.Status, error) {
	if err == nil {
		return 0, ErrNilError
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return FromHTTPError(he)
	}
	return httpcat.FromInt(http.StatusInternalServerError)
}
