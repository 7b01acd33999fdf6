package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

//go:embed openapi.yaml
var rawSpec []byte

// Engine defines what the HTTP surface needs from automata.Engine.
type Engine interface {
	Machines() []automata.MachineInfo
	Describe(name string) (automata.Description, error)
	Accepts(ctx context.Context, name, input string) (automata.Verdict, error)
	Trace(ctx context.Context, name, input string) ([]domain.TraceStep, error)
	Graph(ctx context.Context, name, input string) (string, error)
}

// Ensure automata.Engine satisfies Engine
var _ Engine = (*automata.Engine)(nil)

// Server serves the automata API.
type Server struct {
	Engine       Engine
	Streams      *StreamManager
	Logger       *slog.Logger
	QueryTimeout time.Duration
	metrics      http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithStreams publishes the events of sm on GET /events.
// Register sm.Hooks() with the engine for the stream to carry anything.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithLogger sets the logger used by handlers.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithQueryTimeout bounds every accepts and trace request.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.QueryTimeout = d
	}
}

// WithMetricsHandler mounts h on GET /metrics, outside request validation.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// GetSwagger parses the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) (http.Handler, error) {
	server := &Server{Engine: engine}
	for _, opt := range opts {
		opt(server)
	}
	if server.Logger == nil {
		server.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if server.Streams == nil {
		server.Streams = NewStreamManager(server.Logger)
	}

	swagger, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	validate, err := validator(swagger, server.Logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	if server.metrics != nil {
		r.Handle("/metrics", server.metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(validate)
		r.Get("/health", server.GetHealth)
		r.Get("/info", server.GetInfo(swagger))
		r.Get("/machines", server.ListMachines)
		r.Get("/machines/{name}", server.DescribeMachine)
		r.Get("/machines/{name}/graph", server.MachineGraph)
		r.Post("/machines/{name}/accepts", server.Accepts)
		r.Post("/machines/{name}/trace", server.Trace)
		r.Get("/events", server.SubscribeEvents)
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// query is the body of accepts and trace requests.
type query struct {
	Input string `json:"input"`
}

// traceStep is the wire form of domain.TraceStep, with state labels.
type traceStep struct {
	Position int      `json:"position"`
	Input    string   `json:"input"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Moved    bool     `json:"moved"`
	Stack    []string `json:"stack,omitempty"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(swagger *openapi3.T) http.HandlerFunc {
	apiVersion := "unknown"
	if swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.Logger, http.StatusOK, map[string]string{
			"app":         "automata-http",
			"version":     strings.TrimSpace(automata.Version),
			"api_version": apiVersion,
		})
	}
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, s.Engine.Machines())
}

// DescribeMachine handles the GET /machines/{name} request.
func (s *Server) DescribeMachine(w http.ResponseWriter, r *http.Request) {
	desc, err := s.Engine.Describe(chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "Describe", err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, desc)
}

// MachineGraph handles the GET /machines/{name}/graph request.
func (s *Server) MachineGraph(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.queryContext(r.Context())
	defer cancel()

	chart, err := s.Engine.Graph(ctx, chi.URLParam(r, "name"), r.URL.Query().Get("input"))
	if err != nil {
		s.fail(w, "Graph", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, chart)
}

// Accepts handles the POST /machines/{name}/accepts request.
func (s *Server) Accepts(w http.ResponseWriter, r *http.Request) {
	var body query
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, s.Logger, http.StatusBadRequest, "invalid request body")
		s.Logger.Warn("Accepts: Invalid request body", "err", err)
		return
	}

	ctx, cancel := s.queryContext(r.Context())
	defer cancel()

	verdict, err := s.Engine.Accepts(ctx, chi.URLParam(r, "name"), body.Input)
	if err != nil {
		s.fail(w, "Accepts", err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, verdict)
}

// Trace handles the POST /machines/{name}/trace request.
func (s *Server) Trace(w http.ResponseWriter, r *http.Request) {
	var body query
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, s.Logger, http.StatusBadRequest, "invalid request body")
		s.Logger.Warn("Trace: Invalid request body", "err", err)
		return
	}

	ctx, cancel := s.queryContext(r.Context())
	defer cancel()

	trace, err := s.Engine.Trace(ctx, chi.URLParam(r, "name"), body.Input)
	if err != nil {
		s.fail(w, "Trace", err)
		return
	}

	resp := make([]traceStep, len(trace))
	for i, step := range trace {
		resp[i] = traceStep{
			Position: step.Position,
			Input:    step.Input,
			From:     step.From.String(),
			To:       step.To.String(),
			Moved:    step.Moved,
			Stack:    step.Stack,
		}
	}
	writeJSON(w, s.Logger, http.StatusOK, resp)
}

func (s *Server) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.QueryTimeout)
}

// fail maps engine errors to status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrMachineNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSymbolNotInAlphabet):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrTraceUnsupported):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		// The client went away; nobody reads the status.
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "err", err)
	} else {
		s.Logger.Debug(op+" rejected", "err", err, "status", status)
	}
	writeError(w, s.Logger, status, err.Error())
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, map[string]string{"error": msg})
}
