package httpx

import "net/http"

const (
	StatusOK             = http.StatusOK                  // Successful request
	StatusBadRequest     = http.StatusBadRequest          // Malformed path parameter
	StatusNotFound       = http.StatusNotFound            // No such catalog entry
	StatusInternalError  = http.StatusInternalServerError // Unexpected server error
	StatusBadGateway     = http.StatusBadGateway          // Upstream image host failed
	StatusGatewayTimeout = http.StatusGatewayTimeout      // Upstream image host too slow
)
