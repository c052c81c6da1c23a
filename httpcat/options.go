package httpcat

import (
	"time"

	"github.com/adeilh/go-httpcat/httpx"
)

// DefaultBaseURL is the image host every catalog entry exists on.
const DefaultBaseURL = "https://http.cat"

// DefaultMaxBodySize caps how much of a response Fetch buffers before
// decoding. http.cat images are well below 1 MiB.
const DefaultMaxBodySize int64 = 10 << 20

// FetchOptions configures a Fetcher.
type FetchOptions struct {
	BaseURL     string
	Timeout     time.Duration
	MaxBodySize int64
	Client      []httpx.ClientOption
}

type FetchOption func(*FetchOptions)

func defaultFetchOptions() FetchOptions {
	return FetchOptions{
		BaseURL:     DefaultBaseURL,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// WithBaseURL points the fetcher at another image host, e.g. a test server.
func WithBaseURL(url string) FetchOption {
	return func(o *FetchOptions) {
		if url != "" {
			o.BaseURL = url
		}
	}
}

// WithTimeout bounds each request. Without it only the caller's context
// limits how long Fetch waits.
func WithTimeout(d time.Duration) FetchOption {
	return func(o *FetchOptions) {
		if d > 0 {
			o.Timeout = d
		}
	}
}

// WithMaxBodySize sets the response size cap; n <= 0 disables it.
func WithMaxBodySize(n int64) FetchOption {
	return func(o *FetchOptions) {
		o.MaxBodySize = n
	}
}

// WithClientOptions forwards options to the underlying httpx.Client. They are
// applied after the base URL and timeout.
func WithClientOptions(opts ...httpx.ClientOption) FetchOption {
	return func(o *FetchOptions) {
		o.Client = append(o.Client, opts...)
	}
}
