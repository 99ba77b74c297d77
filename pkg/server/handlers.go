package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/tagkit/pkg/cache"
	"github.com/matzehuels/tagkit/pkg/errors"
	"github.com/matzehuels/tagkit/pkg/heatmap"
	"github.com/matzehuels/tagkit/pkg/legend"
	"github.com/matzehuels/tagkit/pkg/pipeline"
	"github.com/matzehuels/tagkit/pkg/render"
)

// renderParams are the output fields shared by every render request.
type renderParams struct {
	Format  string  `json:"format"`
	Scale   float64 `json:"scale,omitempty"`
	Refresh bool    `json:"refresh,omitempty"`
}

// HeatmapRequest is the body of POST /v1/heatmaps.
type HeatmapRequest struct {
	heatmap.Heatmap
	Options heatmap.Options `json:"options"`
	renderParams
}

// LegendRequest is the body of POST /v1/legends. The legend options are
// inlined: direction, font, width and height.
type LegendRequest struct {
	Texts  []string `json:"texts"`
	Colors []string `json:"colors,omitempty"`
	legend.Options
	renderParams
}

// RenderResponse describes a published artifact.
type RenderResponse struct {
	ID     string `json:"id"`
	Format string `json:"format"`
	Cached bool   `json:"cached"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// blob is a published artifact as stored in the cache.
type blob struct {
	Format string `json:"format"`
	Data   []byte `json:"data"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	return nil
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) error {
	req := HeatmapRequest{Options: s.cfg.HeatmapOptions}
	if err := s.decode(w, r, &req); err != nil {
		return err
	}
	return s.publish(w, r, req.renderParams, pipeline.Options{
		Kind:           pipeline.KindHeatmap,
		Heatmap:        req.Heatmap,
		HeatmapOptions: req.Options,
	})
}

func (s *Server) handleLegend(w http.ResponseWriter, r *http.Request) error {
	req := LegendRequest{Options: s.cfg.LegendOptions}
	if err := s.decode(w, r, &req); err != nil {
		return err
	}
	return s.publish(w, r, req.renderParams, pipeline.Options{
		Kind:          pipeline.KindLegend,
		Texts:         req.Texts,
		Colors:        req.Colors,
		LegendOptions: req.Options,
	})
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid artifact id %q", id)
	}

	data, ok, err := s.blobCache().Get(r.Context(), s.blobKey(id))
	if err != nil {
		return errors.Wrap(errors.ErrCodeCache, err, "read artifact")
	}
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "artifact %s not found or expired", id)
	}
	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "decode artifact %s", id)
	}

	w.Header().Set("Content-Type", render.Format(b.Format).ContentType())
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Data)
	return nil
}

// publish renders opts in the requested format and stores the result under
// a new id.
func (s *Server) publish(w http.ResponseWriter, r *http.Request, p renderParams, opts pipeline.Options) error {
	format := p.Format
	if format == "" {
		format = pipeline.DefaultFormat
	}
	format = strings.ToLower(format)
	opts.Formats = []string{format}
	opts.Scale = p.Scale
	opts.Refresh = p.Refresh

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		return err
	}

	data, err := json.Marshal(blob{Format: format, Data: result.Artifacts[format]})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode artifact")
	}
	id := uuid.NewString()
	if err := s.blobCache().Set(r.Context(), s.blobKey(id), data, cache.TTLBlob); err != nil {
		return errors.Wrap(errors.ErrCodeCache, err, "store artifact")
	}

	s.logger.Info("published artifact",
		"id", id,
		"kind", opts.Kind,
		"format", format,
		"cached", result.CacheInfo.RenderHit,
		"request_id", middleware.GetReqID(r.Context()))

	writeJSON(w, http.StatusCreated, RenderResponse{
		ID:     id,
		Format: format,
		Cached: result.CacheInfo.RenderHit,
	})
	return nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, ErrorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// statusFor maps an error code onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	case errors.Is(err, errors.ErrCodeTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
