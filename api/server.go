// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration, output serialization.
// The API NEVER performs pricing logic.
package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"service-pricing/core/catalog"
	"service-pricing/core/formula"
	"service-pricing/core/generator"
	"service-pricing/core/pricing"
	"service-pricing/core/types"
	"service-pricing/internal/config"
	"service-pricing/internal/errors"
	"service-pricing/internal/logging"
)

// Server is the API server
type Server struct {
	mux      *http.ServeMux
	catalog  *catalog.Catalog
	engine   *generator.Engine
	version  string
	currency types.Currency
	log      *zap.Logger
}

// NewServer creates a new API server over a loaded catalog
func NewServer(version string, cat *catalog.Catalog) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		catalog:  cat,
		engine:   generator.NewEngine(formula.NewEvaluator()),
		version:  version,
		currency: config.Get().Pricing.DefaultCurrency,
		log:      logging.Named("api"),
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Method-prefixed ServeMux patterns require Go 1.22+; enforce the
	// method explicitly so routing works on Go 1.21.
	handle := func(method, pattern string, h http.HandlerFunc) {
		s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				w.Header().Set("Allow", method)
				http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
				return
			}
			h(w, r)
		})
	}

	// Core endpoints
	handle(http.MethodPost, "/price", s.handlePrice)
	handle(http.MethodPost, "/generator", s.handleGenerator)
	handle(http.MethodPost, "/validate-formula", s.handleValidateFormula)

	// Supporting endpoints
	handle(http.MethodGet, "/catalog/services", s.handleListServices)
	handle(http.MethodGet, "/catalog/generators", s.handleListGenerators)
	handle(http.MethodGet, "/health", s.handleHealth)
	handle(http.MethodGet, "/version", s.handleVersion)
}

// handlePrice handles POST /price
func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	schema := req.Schema
	if schema == nil {
		if req.ServiceID == "" {
			s.writeError(w, string(errors.TypeInput), "service_id or schema is required", http.StatusBadRequest)
			return
		}
		found, err := s.catalog.Service(req.ServiceID)
		if err != nil {
			s.writeError(w, string(errors.TypeNotFound), err.Error(), http.StatusNotFound)
			return
		}
		schema = found
	} else if errs := catalog.ValidateSchema(schema); len(errs) > 0 {
		s.writeError(w, string(errors.TypeSchema), errs[0].Error(), http.StatusBadRequest)
		return
	}

	total := pricing.ComputePrice(schema, req.Answers)

	s.writeJSON(w, PriceResponse{
		Total:    total,
		Currency: s.currency,
		Metadata: &ResponseMetadata{
			InputHash:     computeInputHash(&req),
			EngineVersion: s.version,
			DurationMs:    time.Since(start).Milliseconds(),
		},
	}, http.StatusOK)
}

// handleGenerator handles POST /generator
func (s *Server) handleGenerator(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req GeneratorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	gen := req.Generator
	if gen == nil {
		if req.GeneratorID == "" {
			s.writeError(w, string(errors.TypeInput), "generator_id or generator is required", http.StatusBadRequest)
			return
		}
		found, err := s.catalog.Generator(req.GeneratorID)
		if err != nil {
			s.writeError(w, string(errors.TypeNotFound), err.Error(), http.StatusNotFound)
			return
		}
		gen = found
	} else if errs := catalog.ValidateGenerator(gen); len(errs) > 0 {
		s.writeError(w, string(errors.TypeSchema), errs[0].Error(), http.StatusBadRequest)
		return
	}

	ctx := req.Context
	if ctx == nil {
		ctx = types.Context{}
	}
	if _, ok := ctx["price_unit"]; !ok {
		ctx["price_unit"] = config.Get().Pricing.PriceUnit
	}

	result := s.engine.ComputeResult(gen, req.Inputs, ctx)

	s.writeJSON(w, GeneratorResponse{
		Result:   result,
		Currency: s.currency,
		Metadata: &ResponseMetadata{
			InputHash:     computeInputHash(&req),
			EngineVersion: s.version,
			DurationMs:    time.Since(start).Milliseconds(),
		},
	}, http.StatusOK)
}

// handleValidateFormula handles POST /validate-formula.
// This is the endpoint admin tooling calls before persisting a
// formula; an unsafe formula must be refused here, at save time.
func (s *Server) handleValidateFormula(w http.ResponseWriter, r *http.Request) {
	var req ValidateFormulaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	resp := ValidateFormulaResponse{Valid: true}
	if err := formula.Check(req.Formula); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
		s.log.Info("formula rejected at save time", zap.String("reason", err.Error()))
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleListServices handles GET /catalog/services
func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	services := s.catalog.Services()
	out := make([]ServiceSummary, 0, len(services))
	for _, svc := range services {
		out = append(out, ServiceSummary{
			ID:        svc.ID,
			Name:      svc.Name,
			BasePrice: svc.BasePrice,
			Steps:     len(svc.Steps),
		})
	}
	s.writeJSON(w, map[string]interface{}{
		"services": out,
		"count":    len(out),
	}, http.StatusOK)
}

// handleListGenerators handles GET /catalog/generators
func (s *Server) handleListGenerators(w http.ResponseWriter, r *http.Request) {
	generators := s.catalog.Generators()
	out := make([]GeneratorSummary, 0, len(generators))
	for _, gen := range generators {
		out = append(out, GeneratorSummary{
			ID:      gen.ID,
			Name:    gen.Name,
			Inputs:  len(gen.Inputs),
			Derived: len(gen.Formulas.DerivedInputs),
		})
	}
	s.writeJSON(w, map[string]interface{}{
		"generators": out,
		"count":      len(out),
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "service-pricing",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("api server listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s)
}

// computeInputHash produces a deterministic hash of a request so two
// identical computations are provably identical.
func computeInputHash(req interface{}) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
