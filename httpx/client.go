package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ErrBodyTooLarge is returned by GetBytes when the response body exceeds the
// requested limit.
var ErrBodyTooLarge = errors.New("httpx: response body too large")

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.Code)
	}
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}

type Client struct {
	resty *resty.Client
}

func NewClient(opts ...ClientOption) *Client {
	cfg := defaultClientOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	rc := resty.New()
	if cfg.BaseURL != "" {
		rc.SetBaseURL(cfg.BaseURL)
	}
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	if len(cfg.Headers) > 0 {
		rc.SetHeaders(cfg.Headers)
	}

	return &Client{resty: rc}
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string { return c.resty.BaseURL }

// Get issues a GET and unmarshals a successful JSON body into result.
func (c *Client) Get(ctx context.Context, path string, result any) (*resty.Response, error) {
	req := c.resty.R().SetContext(ctx)
	if result != nil {
		req.SetResult(result)
	}
	resp, err := req.Execute(resty.MethodGet, path)
	if err != nil {
		return resp, err
	}
	if !resp.IsSuccess() {
		return resp, &StatusError{Code: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}
	return resp, nil
}

// GetBytes issues a GET and returns the raw body without any content-type
// handling. When limit > 0 at most limit bytes are accepted.
func (c *Client) GetBytes(ctx context.Context, path string, limit int64) ([]byte, *resty.Response, error) {
	resp, err := c.resty.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Execute(resty.MethodGet, path)
	if err != nil {
		closeRaw(resp)
		return nil, resp, err
	}
	body := resp.RawBody()
	if body == nil {
		return nil, resp, errors.New("httpx: response has no body")
	}
	defer body.Close()

	if !resp.IsSuccess() {
		return nil, resp, &StatusError{Code: resp.StatusCode()}
	}

	var r io.Reader = body
	if limit > 0 {
		r = io.LimitReader(body, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, resp, fmt.Errorf("httpx: read body: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, resp, ErrBodyTooLarge
	}
	return data, resp, nil
}

func closeRaw(resp *resty.Response) {
	if resp == nil || resp.RawResponse == nil || resp.RawResponse.Body == nil {
		return
	}
	_ = resp.RawResponse.Body.Close()
}
