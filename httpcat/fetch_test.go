package httpcat

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"github.com/adeilh/go-httpcat/httpx"
	"github.com/adeilh/go-httpcat/internal/testutil/catserver"
)

const testTimeout = 5 * time.Second

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)
	return ctx
}

// referenceImage is the expected bitmap for code: catserver's fixture JPEG
// decoded independently of Fetcher.
func referenceImage(t *testing.T, code uint16) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(catserver.JPEG(code)))
	if err != nil {
		t.Fatalf("decode reference: %v", err)
	}
	return img
}

func TestFetchDecodesJPEGWhateverTheContentType(t *testing.T) {
	srv := catserver.New(catserver.WithContentType("text/html; charset=utf-8"))
	defer srv.Close()

	f := NewFetcher(WithBaseURL(srv.URL))
	img, err := f.Fetch(testContext(t), ImATeapot)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if diff := cmp.Diff(referenceImage(t, 418), img); diff != "" {
		t.Fatalf("decoded image mismatch (-want +got):\n%s", diff)
	}
	if b := img.Bounds(); b.Dx() != catserver.Width || b.Dy() != catserver.Height {
		t.Fatalf("unexpected bounds %v", b)
	}
}

func TestFetchIssuesOneRequestPerCall(t *testing.T) {
	srv := catserver.New()
	defer srv.Close()

	f := NewFetcher(WithBaseURL(srv.URL))
	for i := 0; i < 3; i++ {
		if _, err := f.Fetch(testContext(t), NotFound); err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
	}
	if hits := srv.Hits(404); hits != 3 {
		t.Fatalf("server saw %d requests, want 3", hits)
	}
}

func TestFetchUnknownStatusMakesNoRequest(t *testing.T) {
	srv := catserver.New()
	defer srv.Close()

	f := NewFetcher(WithBaseURL(srv.URL))
	_, err := f.Fetch(testContext(t), Status(999))
	var unknown *UnknownStatusCodeError
	if !errors.As(err, &unknown) || unknown.Code != 999 {
		t.Fatalf("Fetch(999) error = %v", err)
	}
	if srv.Hits(999) != 0 {
		t.Fatalf("unexpected request for unknown status")
	}
}

func TestFetchNonSuccessIsTransportError(t *testing.T) {
	srv := catserver.New(catserver.WithResponse(418, http.StatusInternalServerError, []byte("boom")))
	defer srv.Close()

	_, err := NewFetcher(WithBaseURL(srv.URL)).Fetch(testContext(t), ImATeapot)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	var se *httpx.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Fatalf("expected *httpx.StatusError with 500, got %v", err)
	}
	if errors.Is(err, ErrDecode) {
		t.Fatalf("transport failure reported as decode error")
	}
}

func TestFetchUnreachableHostIsTransportError(t *testing.T) {
	srv := catserver.New()
	url := srv.URL
	srv.Close()

	_, err := NewFetcher(WithBaseURL(url), WithTimeout(time.Second)).Fetch(testContext(t), ImATeapot)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestFetchCanceledContextIsTransportError(t *testing.T) {
	srv := catserver.New()
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFetcher(WithBaseURL(srv.URL)).Fetch(ctx, ImATeapot)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestFetchGarbageIsDecodeError(t *testing.T) {
	srv := catserver.New(catserver.WithResponse(418, http.StatusOK, []byte("<html>not a cat</html>")))
	defer srv.Close()

	_, err := NewFetcher(WithBaseURL(srv.URL)).Fetch(testContext(t), ImATeapot)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if errors.Is(err, ErrTransport) {
		t.Fatalf("decode failure reported as transport error")
	}
}

func TestFetchBodyCap(t *testing.T) {
	srv := catserver.New()
	defer srv.Close()

	size := int64(len(catserver.JPEG(418)))

	_, err := NewFetcher(WithBaseURL(srv.URL), WithMaxBodySize(size-1)).Fetch(testContext(t), ImATeapot)
	if !errors.Is(err, ErrTransport) || !errors.Is(err, httpx.ErrBodyTooLarge) {
		t.Fatalf("expected ErrBodyTooLarge transport error, got %v", err)
	}

	if _, err := NewFetcher(WithBaseURL(srv.URL), WithMaxBodySize(size)).Fetch(testContext(t), ImATeapot); err != nil {
		t.Fatalf("body of exactly the cap rejected: %v", err)
	}
	if _, err := NewFetcher(WithBaseURL(srv.URL), WithMaxBodySize(0)).Fetch(testContext(t), ImATeapot); err != nil {
		t.Fatalf("uncapped fetch failed: %v", err)
	}
}

func TestFetchConcurrentCallsAreIndependent(t *testing.T) {
	srv := catserver.New()
	defer srv.Close()

	f := NewFetcher(WithBaseURL(srv.URL))
	all := All()
	images := make([]image.Image, len(all))

	g, ctx := errgroup.WithContext(testContext(t))
	for i, s := range all {
		i, s := i, s
		g.Go(func() error {
			img, err := f.Fetch(ctx, s)
			images[i] = img
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent Fetch() error = %v", err)
	}

	for i, s := range all {
		if srv.Hits(s.Code()) != 1 {
			t.Fatalf("%v requested %d times", s, srv.Hits(s.Code()))
		}
		if diff := cmp.Diff(referenceImage(t, s.Code()), images[i]); diff != "" {
			t.Fatalf("%v decoded to the wrong image (-want +got):\n%s", s, diff)
		}
	}
}

func TestFetcherBaseURL(t *testing.T) {
	if got := DefaultFetcher.BaseURL(); got != DefaultBaseURL {
		t.Fatalf("DefaultFetcher.BaseURL() = %q", got)
	}
}

// Hits the real http.cat; opt in with HTTPCAT_LIVE=1. The pictures there
// change without notice, so only the shape is checked: pixel-exact decoding
// is covered against catserver's fixture in
// TestFetchDecodesJPEGWhateverTheContentType.
func TestLiveImATeapot(t *testing.T) {
	if os.Getenv("HTTPCAT_LIVE") != "1" {
		t.Skip("set HTTPCAT_LIVE=1 to fetch from http.cat")
	}
	img, err := ImATeapot.Image(testContext(t))
	if err != nil {
		t.Fatalf("Image() error = %v", err)
	}
	if img.Bounds().Empty() {
		t.Fatalf("empty image")
	}
}
