package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/realestate-calc/internal/batch"
	"github.com/iwvelando/realestate-calc/internal/cache"
	"github.com/iwvelando/realestate-calc/internal/config"
	"github.com/iwvelando/realestate-calc/internal/investment"
	"github.com/iwvelando/realestate-calc/internal/metrics"
	"github.com/iwvelando/realestate-calc/internal/netsheet"
	"github.com/iwvelando/realestate-calc/internal/prequal"
	"github.com/iwvelando/realestate-calc/pkg/constants"
	"github.com/iwvelando/realestate-calc/pkg/loans"
	"github.com/iwvelando/realestate-calc/pkg/output"
	"github.com/iwvelando/realestate-calc/pkg/validation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// errInvalidRequest marks request bodies that could not be decoded.
var errInvalidRequest = errors.New("invalid request")

// Options configures NewHandler. Nil fields disable the corresponding
// feature, except Metrics and Tracer which fall back to a private registry
// and the global tracer provider.
type Options struct {
	MaxUploadSize int64
	Version       string
	Cache         cache.Cache
	Metrics       *metrics.Metrics
	Tracer        trace.Tracer
	RateLimiter   *RateLimiter
}

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	cache         cache.Cache
	metrics       *metrics.Metrics
	tracer        trace.Tracer
	limiter       *RateLimiter
	runner        *batch.Runner
	schedules     *loans.AmortizationScheduleGenerator
	prequal       *prequal.Calculator
	analyzer      *investment.Analyzer
	netsheet      *netsheet.Calculator
}

// computeFunc turns a request body into a response payload.
type computeFunc func(ctx context.Context, r *http.Request, body []byte) (interface{}, error)

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer("realestate-calc")
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		cache:         opts.Cache,
		metrics:       m,
		tracer:        tracer,
		limiter:       opts.RateLimiter,
		runner:        batch.NewRunner(logger),
		schedules:     loans.NewAmortizationScheduleGenerator(logger),
		prequal:       prequal.NewCalculator(logger),
		analyzer:      investment.NewAnalyzer(logger),
		netsheet:      netsheet.NewCalculator(logger),
	}

	mux := http.NewServeMux()

	// Calculators
	mux.Handle("/api/mortgage", h.rateLimit(h.calculation("mortgage", h.computeMortgage)))
	mux.Handle("/api/prequalification", h.rateLimit(h.calculation("prequalification", h.computePrequalification)))
	mux.Handle("/api/investment", h.rateLimit(h.calculation("investment", h.computeInvestment)))
	mux.Handle("/api/investment/target-price", h.rateLimit(h.calculation("target_price", h.computeTargetPrice)))
	mux.Handle("/api/netsheet", h.rateLimit(h.calculation("netsheet", h.computeNetSheet)))

	// Batch configuration upload
	mux.Handle("/api/batch", h.rateLimit(http.HandlerFunc(h.handleBatch)))

	// Reference data and metadata
	mux.HandleFunc("/api/jurisdictions", h.handleJurisdictions)
	mux.HandleFunc("/api/programs", h.handlePrograms)
	mux.HandleFunc("/api/version", h.handleVersion)
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/metrics", h.metrics.Handler())

	return mux
}

// calculation wraps a computeFunc with method checks, body limits, caching,
// tracing and metrics.
func (h *handler) calculation(endpoint string, compute computeFunc) http.HandlerFunc {
	op := "server." + endpoint
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			h.observe(endpoint, http.StatusMethodNotAllowed, start)
			return
		}

		ctx, span := h.tracer.Start(r.Context(), op)
		defer span.End()

		status := h.serveCalculation(ctx, w, r, endpoint, op, compute)
		span.SetAttributes(attribute.Int("http.status_code", status))
		h.observe(endpoint, status, start)
	}
}

func (h *handler) serveCalculation(ctx context.Context, w http.ResponseWriter, r *http.Request, endpoint, op string, compute computeFunc) int {
	span := trace.SpanFromContext(ctx)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUploadSize))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return http.StatusRequestEntityTooLarge
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return http.StatusBadRequest
	}

	key := cache.Key(endpoint+"?"+r.URL.RawQuery, bytes.TrimSpace(body))
	if h.cache != nil {
		if cached, ok := h.cache.Get(ctx, key); ok {
			h.metrics.CacheLookups.WithLabelValues(endpoint, "hit").Inc()
			span.SetAttributes(attribute.Bool("cache.hit", true))
			w.Header().Set("X-Cache", "HIT")
			h.writeRaw(w, http.StatusOK, []byte(cached))
			return http.StatusOK
		}
		h.metrics.CacheLookups.WithLabelValues(endpoint, "miss").Inc()
		span.SetAttributes(attribute.Bool("cache.hit", false))
	}

	result, err := compute(ctx, r, body)
	if err != nil {
		status, errorType := classifyError(err)
		h.metrics.CalculationErrors.WithLabelValues(endpoint, errorType).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, errorType)
		h.respondErrorWithOp(w, status, err.Error(), op)
		return status
	}

	payload, err := json.Marshal(result)
	if err != nil {
		h.metrics.CalculationErrors.WithLabelValues(endpoint, "encoding").Inc()
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode response: %v", err), op)
		return http.StatusInternalServerError
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, string(payload)); err != nil {
			h.logger.Warn("failed to cache response",
				zap.String("op", op),
				zap.Error(err),
			)
		}
		w.Header().Set("X-Cache", "MISS")
	}

	h.logger.Debug("calculation served",
		zap.String("op", op),
		zap.Int("bytes", len(payload)),
	)
	h.writeRaw(w, http.StatusOK, payload)
	return http.StatusOK
}

// classifyError maps a calculation error onto an HTTP status and a metric label.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidRequest):
		return http.StatusBadRequest, "decode"
	case validation.IsInvalidInput(err), errors.Is(err, investment.ErrInvalidTargetCapRate):
		return http.StatusBadRequest, "validation"
	default:
		return http.StatusInternalServerError, "calculation"
	}
}

func (h *handler) observe(endpoint string, status int, start time.Time) {
	h.metrics.Requests.WithLabelValues(endpoint, strconv.Itoa(status/100)+"xx").Inc()
	h.metrics.Duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func decodeJSON(body []byte, dst interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode request: %v", errInvalidRequest, err)
	}
	return nil
}

func (h *handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	const endpoint, op = "batch", "server.handleBatch"
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	ctx, span := h.tracer.Start(r.Context(), op)
	defer span.End()

	status := h.serveBatch(w, r.WithContext(ctx), start)
	span.SetAttributes(attribute.Int("http.status_code", status))
	if status != http.StatusOK {
		span.SetStatus(codes.Error, http.StatusText(status))
	}
	h.observe(endpoint, status, start)
}

type batchResponse struct {
	Results  *batch.Results `json:"results"`
	CSV      string         `json:"csv"`
	Warnings []string       `json:"warnings,omitempty"`
	Duration string         `json:"duration"`
}

func (h *handler) serveBatch(w http.ResponseWriter, r *http.Request, start time.Time) int {
	const op = "server.handleBatch"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return http.StatusRequestEntityTooLarge
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return http.StatusBadRequest
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return http.StatusBadRequest
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return http.StatusInternalServerError
	}

	conf, err := config.LoadConfigurationFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return http.StatusBadRequest
	}

	results, err := h.runner.Run(conf)
	if err != nil {
		status, errorType := classifyError(err)
		h.metrics.CalculationErrors.WithLabelValues("batch", errorType).Inc()
		h.respondErrorWithOp(w, status, err.Error(), op)
		return status
	}

	elapsed := time.Since(start)
	h.logger.Info("batch computed",
		zap.String("op", op),
		zap.Int("warnings", len(results.Warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, batchResponse{
		Results:  results,
		CSV:      output.CsvString(results),
		Warnings: results.Warnings,
		Duration: elapsed.String(),
	})
	return http.StatusOK
}

func (h *handler) handleJurisdictions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if zip := strings.TrimSpace(r.URL.Query().Get("zip")); zip != "" {
		code := netsheet.ResolveJurisdiction(zip)
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"zip":     zip,
			"code":    code,
			"profile": netsheet.LookupProfile(code),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"jurisdictions": netsheet.Profiles(),
	})
}

func (h *handler) handlePrograms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"programs": prequal.Programs(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	} else {
		h.logger.Info("request rejected",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *handler) writeRaw(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(payload, '\n')); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
