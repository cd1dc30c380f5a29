// Package server hosts the chart over HTTP: a client posts a dataset and
// its user configuration and receives the rendered svg or the view model.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/uyouii/percentile-chart/capabilities"
	"github.com/uyouii/percentile-chart/common"
	"github.com/uyouii/percentile-chart/config"
	"github.com/uyouii/percentile-chart/dataset"
	"github.com/uyouii/percentile-chart/model"
	"github.com/uyouii/percentile-chart/utils"
	"github.com/uyouii/percentile-chart/viewmodel"
	"github.com/uyouii/percentile-chart/visual"
	"go.uber.org/zap"
)

const maxBodyBytes = 32 << 20

var DefaultViewport = model.Viewport{Width: 640, Height: 400}

type Server struct {
	router   *chi.Mux
	builder  *viewmodel.Builder
	manifest capabilities.Manifest
}

func New(builder *viewmodel.Builder) *Server {
	if builder == nil {
		builder = viewmodel.NewBuilder()
	}
	s := &Server{
		router:   chi.NewRouter(),
		builder:  builder,
		manifest: capabilities.Default,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.router.Get("/capabilities", s.handleCapabilities)
	s.router.Get("/capabilities/schema", s.handleSchema)
	s.router.Get("/capabilities/objects/{name}", s.handleObjectInstances)
	s.router.Post("/render", s.handleRender)
	s.router.Post("/viewmodel", s.handleViewModel)
}

// chartRequest is the body of /render and /viewmodel.
type chartRequest struct {
	Dataset json.RawMessage `json:"dataset"`
	Config  map[string]any  `json:"config,omitempty"`
}

type viewModelResponse struct {
	*viewmodel.ViewModel
	Labels []string `json:"labels,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	utils.GetLogger(r.Context()).Warn("request failed", zap.String("path", r.URL.Path),
		zap.String("requestID", middleware.GetReqID(r.Context())), zap.Error(err))
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (visual.UpdateOptions, error) {
	opts := visual.UpdateOptions{Viewport: DefaultViewport}

	var req chartRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return opts, fmt.Errorf("decode request: %w", err)
	}
	if len(req.Dataset) > 0 {
		ds, err := dataset.ReadJSON(bytes.NewReader(req.Dataset))
		if err != nil {
			return opts, err
		}
		opts.Dataset = ds
	}
	cfg, err := config.FromMap(req.Config)
	if err != nil {
		return opts, err
	}
	opts.Config = cfg

	q := r.URL.Query()
	for name, target := range map[string]*float64{"width": &opts.Viewport.Width, "height": &opts.Viewport.Height} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 || !utils.IsFinite(v) {
			return opts, fmt.Errorf("%s %q: %w", name, raw, common.ErrorInvalidValue)
		}
		*target = v
	}
	return opts, nil
}

func statusFor(err error) int {
	if errors.Is(err, common.ErrorInvalidConfig) || errors.Is(err, common.ErrorInvalidValue) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decode(w, r)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	var buf bytes.Buffer
	v := visual.New(s.builder, s.manifest)
	v.Init(r.Context(), &buf)
	defer v.Destroy(r.Context())

	if _, err := v.Update(r.Context(), opts); err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleViewModel(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decode(w, r)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	v := visual.New(s.builder, s.manifest)
	v.Init(r.Context(), nil)
	defer v.Destroy(r.Context())

	vm, err := v.Update(r.Context(), opts)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	resp := viewModelResponse{ViewModel: vm}
	if !vm.IsDegraded() {
		resp.Labels = make([]string, len(vm.Points))
		for i, p := range vm.Points {
			resp.Labels[i] = vm.Formatter.Format(p.Value)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.manifest)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.manifest.JSONSchema())
}

func (s *Server) handleObjectInstances(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	instances := s.manifest.EnumerateObjectInstances(name, nil)
	if instances == nil {
		writeError(w, r, http.StatusNotFound, fmt.Errorf("object %q: %w", name, common.ErrorInvalidValue))
		return
	}
	writeJSON(w, http.StatusOK, instances)
}
