package chi

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recipedex/internal/domain"
	"github.com/kailas-cloud/recipedex/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/recipedex/internal/logger"
	healthuc "github.com/kailas-cloud/recipedex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/recipedex/internal/usecase/search"
)

// maxBodyBytes bounds the /search request body.
const maxBodyBytes = 1 << 20

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Options holds handler settings.
type Options struct {
	DefaultResults int
	MaxResults     int
	ImageDir       string
	ImagePrefix    string
}

// Server serves the recipe search page and API.
type Server struct {
	search searchuc.Searcher
	health *healthuc.Service
	opts   Options
	logger *zap.Logger
}

// NewServer creates an HTTP server.
func NewServer(search searchuc.Searcher, health *healthuc.Service, opts Options, logger *zap.Logger) *Server {
	if opts.DefaultResults <= 0 {
		opts.DefaultResults = searchuc.DefaultResults
	}
	if opts.MaxResults < opts.DefaultResults {
		opts.MaxResults = opts.DefaultResults
	}
	opts.ImagePrefix = strings.Trim(opts.ImagePrefix, "/")
	if opts.ImagePrefix == "" {
		opts.ImagePrefix = "images"
	}
	return &Server{search: search, health: health, opts: opts, logger: logger}
}

type searchRequest struct {
	Query    string `json:"query"`
	NResults *int   `json:"n_results"`
}

type searchResultItem struct {
	Title        string  `json:"title"`
	Tags         string  `json:"tags"`
	Ingredients  string  `json:"ingredients"`
	Instructions string  `json:"instructions"`
	ImagePath    *string `json:"image_path"`
	Confidence   float64 `json:"confidence"`
}

type searchResponse struct {
	Success bool               `json:"success"`
	Results []searchResultItem `json:"results"`
	Count   int                `json:"count"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type healthResponse struct {
	Status  healthuc.Status                 `json:"status"`
	Checks  map[string]healthuc.CheckResult `json:"checks"`
	Recipes int                             `json:"recipes"`
}

// Home handles GET /.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, map[string]any{
		"DefaultResults": s.opts.DefaultResults,
		"MaxResults":     s.opts.MaxResults,
	})
	if err != nil {
		logpkg.FromContext(r.Context(), s.logger).Error("Failed to render page", zap.Error(err))
	}
}

// Search handles POST /search. A failed search is logged and answered as an
// empty successful result; only a malformed request is a client error.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
		logpkg.FromContext(r.Context(), s.logger).Debug("Rejected search request", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var results []result.Result
	if n := s.resultCount(req.NResults); n > 0 {
		var err error
		results, err = s.search.Search(r.Context(), req.Query, n)
		if err != nil {
			logpkg.FromContext(r.Context(), s.logger).Warn("Search answered with no results", zap.Error(err))
			results = nil
		}
	}

	items := make([]searchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToJSON(&results[i])
	}
	writeJSON(w, http.StatusOK, searchResponse{Success: true, Results: items, Count: len(items)})
}

// resultCount applies the default and the upper bound to n_results.
// A non-positive count asks for nothing.
func (s *Server) resultCount(n *int) int {
	if n == nil {
		return s.opts.DefaultResults
	}
	return min(*n, s.opts.MaxResults)
}

// Image handles GET /images/{filename}.
func (s *Server) Image(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	if name == "" || name == "." || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(filepath.Join(s.opts.ImageDir, name))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, name, info.ModTime(), f)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:  report.Status,
		Checks:  report.Checks,
		Recipes: report.Recipes,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}

func searchResultToJSON(r *result.Result) searchResultItem {
	return searchResultItem{
		Title:        r.Title(),
		Tags:         r.Tags(),
		Ingredients:  r.Ingredients(),
		Instructions: r.Instructions(),
		ImagePath:    r.ImagePath(),
		Confidence:   r.Confidence(),
	}
}
