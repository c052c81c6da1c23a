// Package server exposes the catalog and its pictures over HTTP:
//
//	GET /statuses        every catalog entry
//	GET /statuses/:code  one entry
//	GET /cats/:code      the picture, re-encoded as JPEG
package server

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"strconv"

	"github.com/adeilh/go-httpcat/httpcat"
	"github.com/adeilh/go-httpcat/httpcat/echostatus"
	"github.com/adeilh/go-httpcat/httpx"
)

// CatHeader carries the http.cat URL matching an error response's status.
const CatHeader = "X-Http-Cat"

const statusKey = "httpcat.status"

// Entry is the JSON form of a catalog entry.
type Entry struct {
	Code uint16 `json:"code"`
	Name string `json:"name"`
}

func entry(s httpcat.Status) Entry { return Entry{Code: s.Code(), Name: s.String()} }

// New builds a server that fetches pictures through f. Options are applied
// after the server's own error handler and validators, so callers can
// replace them.
func New(f *httpcat.Fetcher, opts ...httpx.ServerOption) *httpx.Server {
	base := []httpx.ServerOption{
		httpx.WithErrorHandler(errorHandler),
		httpx.WithValidators(statusParam),
	}
	s := httpx.NewServer(append(base, opts...)...)
	s.RegisterRoutes(Routes(f))
	return s
}

// Routes registers the catalog and picture routes on an App.
func Routes(f *httpcat.Fetcher) httpx.RouteRegistrar {
	h := &handlers{fetcher: f}
	return func(a *httpx.App) {
		a.GET("/statuses", h.list)
		httpx.RegisterRoutes(a, httpx.Route{Method: "GET", Path: "/statuses/:code", Handler: h.get})
		httpx.NewRouter(a, "/cats").GET("/:code", h.cat)
	}
}

type handlers struct {
	fetcher *httpcat.Fetcher
}

func (h *handlers) list(c httpx.Context) error {
	all := httpcat.All()
	out := make([]Entry, 0, len(all))
	for _, s := range all {
		out = append(out, entry(s))
	}
	return c.JSON(httpx.StatusOK, out)
}

func (h *handlers) get(c httpx.Context) error {
	return c.JSON(httpx.StatusOK, entry(statusFrom(c)))
}

func (h *handlers) cat(c httpx.Context) error {
	s := statusFrom(c)
	img, err := h.fetcher.Fetch(c.Request().Context(), s)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		// The client hung up before the picture arrived.
		return httpx.HTTPError(int(httpcat.ClientClosedRequest.Code()), "client closed request").SetInternal(err)
	case errors.Is(err, context.DeadlineExceeded):
		return httpx.HTTPError(httpx.StatusGatewayTimeout, "image host timed out").SetInternal(err)
	case errors.Is(err, httpcat.ErrDecode):
		return httpx.HTTPError(httpx.StatusBadGateway, "image host sent an unreadable picture").SetInternal(err)
	default:
		return httpx.HTTPError(httpx.StatusBadGateway, "image host unavailable").SetInternal(err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpeg.DefaultQuality}); err != nil {
		return err
	}
	return c.Blob(httpx.StatusOK, "image/jpeg", buf.Bytes())
}

func statusFrom(c httpx.Context) httpcat.Status {
	s, _ := c.Get(statusKey).(httpcat.Status)
	return s
}

// statusParam resolves :code once for every route that has it.
func statusParam(c httpx.Context) error {
	raw := c.Param("code")
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return httpx.HTTPError(httpx.StatusBadRequest, "status code must be a number")
	}
	s, err := httpcat.FromCode(uint16(n))
	if err != nil {
		return httpx.HTTPError(httpx.StatusNotFound, err.Error())
	}
	c.Set(statusKey, s)
	return nil
}

func errorHandler(err error, c httpx.Context) {
	if s, lerr := echostatus.FromError(err); lerr == nil {
		c.Response().Header().Set(CatHeader, s.URL(httpcat.DefaultBaseURL))
		if s.Code() >= 500 {
			c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		}
	}
	httpx.DefaultHTTPErrorHandler(err, c)
}
