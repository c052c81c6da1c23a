package httpcat

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"strconv"

	"github.com/adeilh/go-httpcat/httpx"
)

// Fetcher downloads and decodes cat images. It holds no per-request state, so
// one Fetcher may serve any number of concurrent calls.
type Fetcher struct {
	client  *httpx.Client
	maxBody int64
}

// DefaultFetcher talks to https://http.cat with no timeout and the default
// body cap. It backs Fetch and Status.Image.
var DefaultFetcher = NewFetcher()

func NewFetcher(opts ...FetchOption) *Fetcher {
	cfg := defaultFetchOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	clientOpts := []httpx.ClientOption{httpx.WithBaseURL(cfg.BaseURL)}
	if cfg.Timeout > 0 {
		clientOpts = append(clientOpts, httpx.WithClientTimeout(cfg.Timeout))
	}
	clientOpts = append(clientOpts, cfg.Client...)

	return &Fetcher{
		client:  httpx.NewClient(clientOpts...),
		maxBody: cfg.MaxBodySize,
	}
}

// BaseURL returns the image host the fetcher requests from.
func (f *Fetcher) BaseURL() string { return f.client.BaseURL() }

// Fetch issues GET <base>/<code> and decodes the body as JPEG, whatever
// Content-Type the host declares. Failures wrap ErrTransport or ErrDecode;
// values outside the catalog fail with *UnknownStatusCodeError before any
// request is made.
func (f *Fetcher) Fetch(ctx context.Context, s Status) (image.Image, error) {
	data, err := f.Bytes(ctx, s)
	if err != nil {
		return nil, err
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError(err)
	}
	return img, nil
}

// Bytes returns the undecoded response body for s.
func (f *Fetcher) Bytes(ctx context.Context, s Status) ([]byte, error) {
	if !s.Valid() {
		return nil, &UnknownStatusCodeError{Code: s.Code()}
	}
	data, _, err := f.client.GetBytes(ctx, "/"+strconv.Itoa(int(s)), f.maxBody)
	if err != nil {
		return nil, transportError(err)
	}
	return data, nil
}

// Fetch fetches s through DefaultFetcher.
func Fetch(ctx context.Context, s Status) (image.Image, error) {
	return DefaultFetcher.Fetch(ctx, s)
}

// Image fetches the cat picture for s from http.cat.
func (s Status) Image(ctx context.Context) (image.Image, error) {
	return DefaultFetcher.Fetch(ctx, s)
}
