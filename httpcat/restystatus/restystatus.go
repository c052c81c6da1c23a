// Package restystatus converts go-resty responses into catalog entries.
package restystatus

import (
	"errors"

	"github.com/go-resty/resty/v2"

	"github.com/adeilh/go-httpcat/httpcat"
)

var ErrNilResponse = errors.New("restystatus: nil response")

// FromResponse looks up the response's status code in the catalog. A
// response that never arrived (status 0) is reported as unknown code 0.
func FromResponse(resp *resty.Response) (httpcat.Status, error) {
	if resp == nil {
		return 0, ErrNilResponse
	}
	return httpcat.FromInt(resp.StatusCode())
}
