package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/copyleftdev/zerofun/internal/config"
	"github.com/copyleftdev/zerofun/internal/dispatch"
	apperrors "github.com/copyleftdev/zerofun/internal/errors"
	"github.com/copyleftdev/zerofun/internal/expr"
	"github.com/copyleftdev/zerofun/internal/logging"
	"github.com/copyleftdev/zerofun/internal/rootfind"
)

// Logger defines the logging interface used by the server
// This allows us to be flexible with our logging implementation
type Logger interface {
	Debug(msg string, fields ...map[string]interface{})
	Info(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
	Error(msg string, fields ...map[string]interface{})
	Fatal(msg string, fields ...map[string]interface{})
	WithFields(fields map[string]interface{}) *logging.Logger
}

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeServerError    = -32000
)

// SolveRequest asks for one zero. Empty fields fall back to the server
// defaults; Parameters is merged key by key over the default parameters.
type SolveRequest struct {
	Method     string          `json:"method"`
	Expression string          `json:"expression"`
	Derivative string          `json:"derivative,omitempty"`
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

// Server implements the HTTP and JSON-RPC surface of the solver service.
// Every solve is recorded in a bounded run registry.
type Server struct {
	cfg      *config.Config
	defaults *config.Datafile
	logger   Logger

	runs    *runStore
	metrics *metrics
}

// NewServer creates a new server instance with the given config and logger.
// defaults supplies the method, expression and parameters used when a
// request leaves them out; nil means the built-in defaults.
func NewServer(cfg *config.Config, defaults *config.Datafile, logger Logger) *Server {
	if defaults == nil {
		defaults = config.NewDatafile()
		defaults.Method = cfg.Solver.DefaultMethod
	}
	return &Server{
		cfg:      cfg,
		defaults: defaults,
		logger:   logger,
		runs:     newRunStore(cfg.Solver.MaxRuns),
		metrics:  newMetrics(),
	}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/runs/{id}", s.handleRun)
		r.Get("/methods", s.handleMethods)
	})

	// JSON-RPC 2.0 endpoint
	r.Post("/rpc", s.handleJSONRPC)
}

// checkIterations keeps a request from asking for more steps than
// SOLVER_MAX_ITERATIONS, since solves run on the handler goroutine.
func (s *Server) checkIterations(p dispatch.Params) error {
	limit := uint(s.cfg.Solver.MaxIterations)
	if limit == 0 {
		return nil
	}
	for _, v := range []struct {
		name  string
		value uint
	}{{"maxIt", p.MaxIt}, {"maxIter", p.MaxIter}} {
		if v.value > limit {
			return apperrors.Wrapf(apperrors.ErrInvalidParameter, "%s must be at most %d, got %d", v.name, limit, v.value).
				WithOperation("solve").
				WithComponent("server")
		}
	}
	return nil
}

// MetricsHandler serves the solver collectors in the Prometheus text format.
func (s *Server) MetricsHandler() http.Handler {
	return s.metrics.handler()
}

// Solve runs one request and records it. Configuration problems are
// returned as errors; a solver failure is a successful call whose run has
// no root.
func (s *Server) Solve(req SolveRequest, reporter rootfind.Reporter) (*Run, error) {
	name := req.Method
	if name == "" {
		name = s.defaults.Method
	}
	method, err := dispatch.ParseMethod(name)
	if err != nil {
		return nil, err
	}

	src := req.Expression
	if src == "" {
		src = s.defaults.Expression
	}
	f, err := s.parseExpression(src)
	if err != nil {
		return nil, err
	}

	var df rootfind.Func
	deriv := req.Derivative
	if deriv == "" && req.Expression == "" {
		deriv = s.defaults.Derivative
	}
	if deriv != "" {
		d, err := s.parseExpression(deriv)
		if err != nil {
			return nil, err
		}
		df = d.Func()
	}

	params := s.defaults.Parameters
	if len(bytes.TrimSpace(req.Parameters)) > 0 {
		if err := json.Unmarshal(req.Parameters, &params); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInvalidParameter, err.Error()).
				WithOperation("solve").
				WithComponent("server")
		}
	}

	if err := s.checkIterations(params); err != nil {
		return nil, err
	}

	var trace rootfind.Trace
	solver, err := dispatch.Build(method, f.Func(), df, params, rootfind.WithReporter(reporter), rootfind.WithTrace(&trace))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	root, solveErr := solver.Root()
	run := &Run{
		ID:          newRunID(),
		Method:      string(method),
		Expression:  f.String(),
		Derivative:  deriv,
		Parameters:  params,
		Kind:        rootfind.KindName(solveErr),
		Iterations:  trace.Iterations,
		Evaluations: trace.Evaluations,
		Duration:    time.Since(start),
		CreatedAt:   start.UTC(),
	}
	if solveErr != nil {
		run.Error = solveErr.Error()
		reporter.Warn("could not find the zero", map[string]interface{}{
			"run_id": run.ID,
			"method": run.Method,
			"kind":   run.Kind,
			"error":  run.Error,
		})
	} else {
		run.Root = &root
		reporter.Debug("zero found", map[string]interface{}{
			"run_id": run.ID,
			"method": run.Method,
			"root":   root,
		})
	}

	s.runs.put(run)
	s.metrics.observe(run)
	return run, nil
}

// Run returns a recorded run.
func (s *Server) Run(id string) (*Run, bool) {
	return s.runs.get(id)
}

func (s *Server) parseExpression(src string) (*expr.Expression, error) {
	if limit := s.cfg.Solver.MaxExpressionLen; limit > 0 && len(src) > limit {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidExpression, "expression longer than %d bytes", limit).
			WithOperation("solve").
			WithComponent("server")
	}
	return expr.Parse(src)
}

// reporterFor returns the request-scoped logger when the middleware put one
// in the context.
func (s *Server) reporterFor(r *http.Request) rootfind.Reporter {
	if l, ok := logging.LookupContext(r.Context()); ok && l.Logger != nil {
		return l.Logger
	}
	return s.logger
}

// handleJSONRPC handles JSON-RPC 2.0 requests
func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	var request struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      interface{}     `json:"id"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.respondWithError(w, codeParseError, "Parse error", nil)
		return
	}

	// Validate JSON-RPC 2.0 request
	if request.JSONRPC != "2.0" {
		s.respondWithError(w, codeInvalidRequest, "Invalid Request", request.ID)
		return
	}

	// Route to appropriate handler
	var result interface{}
	var err error

	switch request.Method {
	case "solver.solve":
		var req SolveRequest
		if err = decodeParams(request.Params, &req); err == nil {
			result, err = s.Solve(req, s.reporterFor(r))
		}
	case "solver.methods":
		result = dispatch.Methods()
	case "solver.run":
		var req struct {
			ID string `json:"id"`
		}
		if err = decodeParams(request.Params, &req); err == nil {
			result, err = s.lookupRun(req.ID)
		}
	default:
		s.respondWithError(w, codeMethodNotFound, "Method not found", request.ID)
		return
	}

	if err != nil {
		code := codeServerError
		if apperrors.IsConfigError(err) {
			code = codeInvalidParams
		}
		s.respondWithError(w, code, err.Error(), request.ID)
		return
	}

	// Send successful response
	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      request.ID,
		"result":  result,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// decodeParams accepts params either as an object or as a one-element array
// holding the object.
func decodeParams(raw json.RawMessage, v interface{}) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	if raw[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidParameter, err.Error())
		}
		if len(list) == 0 {
			return nil
		}
		if len(list) > 1 {
			return apperrors.Wrapf(apperrors.ErrInvalidParameter, "expected one params object, got %d", len(list))
		}
		raw = list[0]
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidParameter, err.Error())
	}
	return nil
}

func (s *Server) lookupRun(id string) (*Run, error) {
	if id == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidParameter, "id is required")
	}
	run, ok := s.runs.get(id)
	if !ok {
		return nil, fmt.Errorf("run %s not found", id)
	}
	return run, nil
}

// respondWithError sends a JSON-RPC 2.0 error response
func (s *Server) respondWithError(w http.ResponseWriter, code int, message string, id interface{}) {
	s.logger.Warn("Request error", map[string]interface{}{
		"status":  code,
		"message": message,
	})

	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
		"id": id,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// Close drops the recorded runs.
func (s *Server) Close() error {
	s.logger.Debug("Dropping recorded runs", map[string]interface{}{
		"runs": s.runs.len(),
	})
	s.runs.reset()
	return nil
}

// handleSolve handles POST /api/v1/solve
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteJSON(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	run, err := s.Solve(req, s.reporterFor(r))
	if err != nil {
		apperrors.WriteJSON(w, apperrors.StatusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, run)
}

// handleRun handles GET /api/v1/runs/{id}
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.runs.get(chi.URLParam(r, "id"))
	if !ok {
		apperrors.WriteJSON(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// handleMethods handles GET /api/v1/methods
func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"methods": dispatch.Methods(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
