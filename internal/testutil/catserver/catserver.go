// Package catserver runs a loopback stand-in for http.cat so tests never
// touch the network.
package catserver

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// Width and Height are the dimensions of every generated picture.
const (
	Width  = 64
	Height = 48
)

type response struct {
	status int
	body   []byte
}

// Server answers GET /<code> with a generated JPEG unique to code.
type Server struct {
	*httptest.Server

	contentType string

	mu        sync.Mutex
	overrides map[string]response
	hits      map[string]int
}

type Option func(*Server)

// WithContentType sets the Content-Type header sent with images. It defaults
// to image/jpeg.
func WithContentType(ct string) Option {
	return func(s *Server) { s.contentType = ct }
}

// WithResponse makes GET /<code> answer with status and body instead of the
// generated image.
func WithResponse(code uint16, status int, body []byte) Option {
	return func(s *Server) {
		s.overrides[strconv.Itoa(int(code))] = response{status: status, body: body}
	}
}

// New starts the server; callers must Close it.
func New(opts ...Option) *Server {
	s := &Server{
		contentType: "image/jpeg",
		overrides:   make(map[string]response),
		hits:        make(map[string]int),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Hits reports how many requests reached /<code>.
func (s *Server) Hits(code uint16) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[strconv.Itoa(int(code))]
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/")

	s.mu.Lock()
	s.hits[key]++
	override, overridden := s.overrides[key]
	s.mu.Unlock()

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if overridden {
		w.WriteHeader(override.status)
		_, _ = w.Write(override.body)
		return
	}

	code, err := strconv.ParseUint(key, 10, 16)
	if err != nil || code < 100 || code > 599 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", s.contentType)
	_, _ = w.Write(JPEG(uint16(code)))
}

// Picture builds the reference image for code: a gradient tinted by the code
// so different codes never share pixels.
func Picture(code uint16) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	tint := uint8(code % 256)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			img.Set(x, y, color.RGBA{R: tint, G: uint8(x * 4), B: uint8(y * 5), A: 0xFF})
		}
	}
	return img
}

// JPEG encodes Picture(code). The output is deterministic for a given code.
func JPEG(code uint16) []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Picture(code), &jpeg.Options{Quality: 90}); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
