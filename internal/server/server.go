package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/example/go-morphology/internal/config"
	"github.com/example/go-morphology/internal/image"
	"github.com/example/go-morphology/internal/kernel"
	"github.com/example/go-morphology/internal/morphology"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxImageBytes  int
	workers        int
	requestTimeout time.Duration
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		maxImageBytes:  16 << 20,
		workers:        2,
		requestTimeout: 60 * time.Second,
		logger:         slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxImageBytes sets the maximum accepted POST /v1/apply body size.
func WithMaxImageBytes(n int) Option {
	return func(o *options) { o.maxImageBytes = n }
}

// WithWorkers bounds how many apply requests run at once; n <= 0 disables
// the limit.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithRequestTimeout sets the per-request apply deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

// handler holds the dependencies needed to serve HTTP requests.
type handler struct {
	opts options
	sem  chan struct{} // semaphore for worker pool
	log  *slog.Logger
}

// NewHandler returns an http.Handler that serves /health and POST /v1/apply.
func NewHandler(optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		opts: opts,
		log:  opts.logger,
	}
	if opts.workers > 0 {
		h.sem = make(chan struct{}, opts.workers)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/v1/apply", h.handleApply)

	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

// applyRequest mirrors the CLI's apply flags, sent as query parameters
// alongside a raw image body.
type applyRequest struct {
	method  string
	kernels string
	mask    string
	compose string
	bias    float64
	n       int
	format  string
}

func parseApplyRequest(r *http.Request) (applyRequest, error) {
	q := r.URL.Query()

	req := applyRequest{
		method:  q.Get("method"),
		kernels: q.Get("kernel"),
		mask:    q.Get("mask"),
		compose: q.Get("compose"),
		n:       1,
	}
	if req.method == "" {
		return applyRequest{}, errors.New("missing method parameter")
	}
	if req.kernels == "" {
		return applyRequest{}, errors.New("missing kernel parameter")
	}

	if v := q.Get("bias"); v != "" {
		b, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return applyRequest{}, fmt.Errorf("invalid bias: %w", err)
		}
		req.bias = b
	}
	if v := q.Get("n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return applyRequest{}, fmt.Errorf("invalid n: %w", err)
		}
		req.n = n
	}
	req.format = strings.TrimPrefix(q.Get("format"), ".")
	if req.format == "" {
		req.format = "png"
	}
	return req, nil
}

func (h *handler) handleApply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, err := parseApplyRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	method, err := morphology.ParseMethodName(req.method)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	kernels, err := kernel.Parse(req.kernels)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid kernel: "+err.Error())
		return
	}
	mask, err := image.ParseMask(req.mask)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return
	}
	limited := io.LimitReader(r.Body, int64(h.opts.maxImageBytes)+1)
	raw, err := io.ReadAll(limited)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	if len(raw) > h.opts.maxImageBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("image exceeds maximum size of %d bytes", h.opts.maxImageBytes))
		return
	}

	src, err := image.Decode(strings.NewReader(string(raw)))
	if err != nil {
		writeError(w, http.StatusBadRequest, "decode image: "+err.Error())
		return
	}

	if !h.acquireWorker(r.Context(), w) {
		return
	}
	if h.sem != nil {
		defer func() { <-h.sem }()
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.requestTimeout)
	defer cancel()

	start := time.Now()
	out, changed, err := runApply(ctx, src, method, kernels, mask, req.bias, req.n)
	durationMS := time.Since(start).Milliseconds()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			h.log.WarnContext(r.Context(), "apply timed out",
				slog.String("method", req.method),
				slog.Int64("duration_ms", durationMS),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusGatewayTimeout, "apply timed out")
			return
		}

		h.log.ErrorContext(r.Context(), "apply failed",
			slog.String("method", req.method),
			slog.Int64("duration_ms", durationMS),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var buf strings.Builder
	if err := image.Encode(&buf, out, req.format); err != nil {
		writeError(w, http.StatusInternalServerError, "encode image: "+err.Error())
		return
	}

	h.log.InfoContext(r.Context(), "apply complete",
		slog.String("method", req.method),
		slog.Int("changed_pixels", changed),
		slog.Int64("duration_ms", durationMS),
	)

	w.Header().Set("Content-Type", contentTypeFor(req.format))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, buf.String())
}

func runApply(ctx context.Context, src *image.MemImage, method morphology.Method, kernels *kernel.Kernel, mask image.Mask, bias float64, n int) (*image.MemImage, int, error) {
	type result struct {
		out     *image.MemImage
		changed int
		err     error
	}
	done := make(chan result, 1)
	go func() {
		out, changed, err := morphology.Run(src, morphology.Options{
			Mask:    mask,
			Method:  method,
			N:       n,
			Kernels: kernels,
			Bias:    bias,
		})
		done <- result{out, changed, err}
	}()

	select {
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	case r := <-done:
		return r.out, r.changed, r.err
	}
}

func contentTypeFor(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}

// acquireWorker tries to acquire a worker slot from the semaphore.
// Returns true on success. On failure (context cancelled) it writes an HTTP
// error and returns false. When sem is nil (no throttling) it returns true
// immediately.
func (h *handler) acquireWorker(ctx context.Context, w http.ResponseWriter) bool {
	if h.sem == nil {
		return true
	}

	select {
	case h.sem <- struct{}{}:
		return true
	default:
		h.log.Info("request queued for worker slot")

		select {
		case h.sem <- struct{}{}:
			return true
		case <-ctx.Done():
			writeError(w, http.StatusServiceUnavailable, "request cancelled while waiting for worker")
			return false
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Warn("encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server — wires handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	shutdownTimeout time.Duration
}

func New(cfg config.Config) *Server {
	return &Server{
		cfg:             cfg,
		shutdownTimeout: time.Duration(cfg.Server.ShutdownTimeout) * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

func (s *Server) Start(ctx context.Context) error {
	morphology.SetWorkers(s.cfg.Runtime.Workers)

	h := NewHandler(
		WithWorkers(s.cfg.Runtime.Workers),
		WithMaxImageBytes(s.cfg.Server.MaxImageBytes),
		WithRequestTimeout(time.Duration(s.cfg.Server.RequestTimeout)*time.Second),
	)

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}
	return nil
}
