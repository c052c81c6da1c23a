package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/adeilh/go-httpcat/httpcat"
	"github.com/adeilh/go-httpcat/httpx"
	"github.com/adeilh/go-httpcat/server"
)

const userAgent = "go-httpcat"

type globalFlags struct {
	baseURL string
	timeout time.Duration
	maxBody int64
	debug   bool
}

func (g *globalFlags) fetcher() *httpcat.Fetcher {
	return httpcat.NewFetcher(
		httpcat.WithBaseURL(g.baseURL),
		httpcat.WithTimeout(g.timeout),
		httpcat.WithMaxBodySize(g.maxBody),
		httpcat.WithClientOptions(httpx.WithHeaders(map[string]string{"User-Agent": userAgent})),
	)
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	l := log.New("httpcat")
	l.SetOutput(w)
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	l.SetLevel(log.INFO)
	if debug {
		l.SetLevel(log.DEBUG)
	}
	return l
}

// NewCommand returns the root httpcat command.
func NewCommand() *cobra.Command {
	g := &globalFlags{}
	var logger *log.Logger

	cmd := &cobra.Command{
		Use:          "httpcat",
		Short:        "HTTP status codes, as cats",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(cmd.ErrOrStderr(), g.debug)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&g.baseURL, "base-url", httpcat.DefaultBaseURL, "image host to fetch pictures from")
	flags.DurationVar(&g.timeout, "timeout", 0, "per-request timeout (0 waits indefinitely)")
	flags.Int64Var(&g.maxBody, "max-body", httpcat.DefaultMaxBodySize, "largest accepted image in bytes (0 disables the cap)")
	flags.BoolVar(&g.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newListCommand(),
		newLookupCommand(g),
		newFetchCommand(g, &logger),
		newServeCommand(g, &logger),
	)
	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every status in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, s := range httpcat.All() {
				fmt.Fprintf(out, "%d\t%s\n", s.Code(), s)
			}
			return nil
		},
	}
}

func newLookupCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "lookup <code|name>",
		Short:   "Resolve a status code or name",
		Example: "httpcat lookup 418\nhttpcat lookup ImATeapot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := parseStatus(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", s.Code(), s, s.URL(g.baseURL))
			return nil
		},
	}
}

func newFetchCommand(g *globalFlags, logger **log.Logger) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "fetch <code|name>...",
		Short: "Download and decode pictures, printing their dimensions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := make([]httpcat.Status, len(args))
			for i, arg := range args {
				s, err := parseStatus(arg)
				if err != nil {
					return err
				}
				statuses[i] = s
			}

			f := g.fetcher()
			images := make([]image.Image, len(statuses))
			errs := make([]error, len(statuses))

			var eg errgroup.Group
			eg.SetLimit(max(concurrency, 1))
			for i, s := range statuses {
				i, s := i, s
				eg.Go(func() error {
					(*logger).Debugf("fetching %s", s.URL(f.BaseURL()))
					images[i], errs[i] = f.Fetch(cmd.Context(), s)
					return nil
				})
			}
			_ = eg.Wait()

			out := cmd.OutOrStdout()
			failed := 0
			for i, s := range statuses {
				if errs[i] != nil {
					failed++
					(*logger).Errorf("%d %s: %v", s.Code(), s, errs[i])
					continue
				}
				b := images[i].Bounds()
				fmt.Fprintf(out, "%d\t%s\t%dx%d\t%s\n", s.Code(), s, b.Dx(), b.Dy(), modelName(images[i].ColorModel()))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d fetches failed", failed, len(statuses))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "maximum simultaneous downloads")
	return cmd
}

func newServeCommand(g *globalFlags, logger **log.Logger) *cobra.Command {
	var addr string
	var origins []string
	var shutdown time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and its pictures over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(g.fetcher(), serveOptions(addr, origins, *logger)...)
			(*logger).Infof("listening on %s, pictures from %s", srv.Address(), g.baseURL)
			err := srv.Start(cmd.Context(), httpx.WithShutdownTimeout(shutdown))
			if errors.Is(err, context.Canceled) {
				(*logger).Info("shut down")
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "origin allowed to call the API from a browser (repeatable)")
	cmd.Flags().DurationVar(&shutdown, "shutdown-timeout", 5*time.Second, "grace period for in-flight requests")
	return cmd
}

// serveOptions enables CORS only when at least one origin is given.
func serveOptions(addr string, origins []string, logger *log.Logger) []httpx.ServerOption {
	opts := []httpx.ServerOption{httpx.WithAddress(addr)}
	if logger != nil {
		opts = append(opts, httpx.WithLogger(logger))
	}
	if len(origins) > 0 {
		cfg := httpx.DefaultCORSConfig
		cfg.AllowOrigins = origins
		opts = append(opts, httpx.WithCORS(&cfg))
	}
	return opts
}

func parseStatus(arg string) (httpcat.Status, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		return httpcat.FromInt(n)
	}
	return httpcat.ParseName(arg)
}

func modelName(m color.Model) string {
	switch m {
	case color.YCbCrModel:
		return "YCbCr"
	case color.GrayModel:
		return "Gray"
	case color.CMYKModel:
		return "CMYK"
	case color.RGBAModel:
		return "RGBA"
	default:
		return fmt.Sprintf("%T", m)
	}
}
