package echostatus

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/adeilh/go-httpcat/httpcat"
)

func TestFromHTTPError(t *testing.T) {
	s, err := FromHTTPError(echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if err != nil {
		t.Fatalf("FromHTTPError() error = %v", err)
	}
	if s != httpcat.ImATeapot {
		t.Fatalf("FromHTTPError() = %v, want ImATeapot", s)
	}
}

func TestFromHTTPErrorUnknownCode(t *testing.T) {
	_, err := FromHTTPError(echo.NewHTTPError(999))
	var unknown *httpcat.UnknownStatusCodeError
	if !errors.As(err, &unknown) || unknown.Code != 999 {
		t.Fatalf("expected UnknownStatusCodeError(999), got %v", err)
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want httpcat.Status
	}{
		{"echo sentinel", echo.ErrNotFound, httpcat.NotFound},
		{"wrapped", fmt.Errorf("handler: %w", echo.NewHTTPError(http.StatusTooManyRequests)), httpcat.TooManyRequests},
		{"plain error", errors.New("boom"), httpcat.InternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromError(tt.err)
			if err != nil {
				t.Fatalf("FromError() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("FromError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNil(t *testing.T) {
	if _, err := FromHTTPError(nil); !errors.Is(err, ErrNilError) {
		t.Fatalf("FromHTTPError(nil) error = %v", err)
	}
	if _, err := FromError(nil); !errors.Is(err, ErrNilError) {
		t.Fatalf("FromError(nil) error = %v", err)
	}
}
