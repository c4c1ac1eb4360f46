package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/masterclass-labs/architect-advisor/internal/advisor"
	"github.com/masterclass-labs/architect-advisor/internal/curriculum"
	"github.com/masterclass-labs/architect-advisor/internal/diagram"
	"github.com/masterclass-labs/architect-advisor/internal/domain"
	"github.com/masterclass-labs/architect-advisor/internal/prompt"
	"github.com/masterclass-labs/architect-advisor/internal/report"
)

// Handler carries the portal's application services.
type Handler struct {
	session  *advisor.Session
	renderer *diagram.KrokiRenderer
	exporter *report.Exporter
	logger   *slog.Logger
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Curriculum

func (h *Handler) Sections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, curriculum.Sections())
}

func (h *Handler) Modules(w http.ResponseWriter, r *http.Request) {
	if s := r.URL.Query().Get("section"); s != "" {
		id, err := curriculum.ParseSectionID(s)
		if err != nil {
			writeError(w, h.logger, domain.ErrInvalidInput(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, curriculum.Modules(id))
		return
	}

	all := make(map[curriculum.SectionID][]curriculum.Module)
	for _, id := range curriculum.Sections() {
		if mods := curriculum.Modules(id); mods != nil {
			all[id] = mods
		}
	}
	writeJSON(w, http.StatusOK, all)
}

func (h *Handler) Roadmap(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, curriculum.Roadmap())
}

func (h *Handler) Labs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, curriculum.Labs())
}

// AI actions

type matchRequest struct {
	Prompt string        `json:"prompt,omitempty"`
	Brief  *prompt.Brief `json:"brief,omitempty"`
}

func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, domain.ErrInvalidInput("request body is not valid JSON"))
		return
	}

	var (
		result *domain.RecommendationResult
		err    error
	)
	if req.Brief != nil {
		result, err = h.session.MatchBrief(r.Context(), *req.Brief)
	} else {
		result, err = h.session.MatchFreeform(r.Context(), req.Prompt)
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type reviewRequest struct {
	Description string `json:"description"`
}

func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, domain.ErrInvalidInput("request body is not valid JSON"))
		return
	}

	result, err := h.session.Review(r.Context(), req.Description)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	var step domain.ImplementationStep
	if err := json.NewDecoder(r.Body).Decode(&step); err != nil {
		writeError(w, h.logger, domain.ErrInvalidInput("request body is not valid JSON"))
		return
	}

	result, err := h.session.Explain(r.Context(), step)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// History

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.History().Entries())
}

func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.session.History().Clear(); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ExportHistory(w http.ResponseWriter, r *http.Request) {
	key, err := h.session.History().ExportPortable()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key})
}

type importRequest struct {
	Key string `json:"key"`
}

func (h *Handler) ImportHistory(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, domain.ErrInvalidInput("request body is not valid JSON"))
		return
	}
	if err := h.session.History().ImportPortable(req.Key); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Diagram and report

type diagramRequest struct {
	Definition string `json:"definition"`
}

type diagramResponse struct {
	SVG string `json:"svg"`
}

func (h *Handler) Diagram(w http.ResponseWriter, r *http.Request) {
	var req diagramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, domain.ErrInvalidInput("request body is not valid JSON"))
		return
	}

	rendered, err := h.renderer.Render(r.Context(), req.Definition)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, diagramResponse{SVG: rendered.SVG})
}

type reportRequest struct {
	Result         domain.RecommendationResult `json:"result"`
	IncludeDiagram bool                        `json:"includeDiagram"`
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, domain.ErrInvalidInput("request body is not valid JSON"))
		return
	}

	// A diagram that cannot be captured degrades to a text embedding; it
	// never fails the export.
	var rendered *domain.RenderedDiagram
	if req.IncludeDiagram {
		png, err := h.renderer.RenderPNG(r.Context(), req.Result.DiagramDefinition)
		if err != nil {
			h.logger.Warn("report diagram not capturable, embedding text",
				slog.String("error", err.Error()))
		} else {
			rendered = &domain.RenderedDiagram{PNG: png}
		}
	}

	doc, err := h.exporter.Export(&req.Result, rendered)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Body)
}

// Response helpers

type errorBody struct {
	Kind       domain.ErrorKind `json:"kind"`
	Message    string           `json:"message"`
	Definition string           `json:"definition,omitempty"`
}

func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		logger.Error("unclassified error", slog.String("error", err.Error()))
		de = domain.NewError(domain.ErrorKindServer, "internal error")
	}

	// Malformed responses are user-equivalent to network failures but get
	// logged distinctly for diagnosis.
	if de.Kind == domain.ErrorKindMalformedResponse {
		logger.Error("generation response failed validation", slog.String("error", de.Error()))
	}

	writeJSON(w, de.HTTPStatusCode(), map[string]errorBody{"error": {
		Kind:       de.Kind,
		Message:    de.Message,
		Definition: de.Definition,
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
