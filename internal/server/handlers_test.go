package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/masterclass-labs/architect-advisor/internal/advisor"
	"github.com/masterclass-labs/architect-advisor/internal/api/kroki"
	"github.com/masterclass-labs/architect-advisor/internal/diagram"
	"github.com/masterclass-labs/architect-advisor/internal/domain"
	"github.com/masterclass-labs/architect-advisor/internal/history"
	"github.com/masterclass-labs/architect-advisor/internal/report"
	"github.com/masterclass-labs/architect-advisor/internal/storage/kv"
)

// stubGenerator returns canned results, or err when set.
type stubGenerator struct {
	err error
}

func (g *stubGenerator) MatchService(ctx context.Context, prompt string) (*domain.RecommendationResult, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &domain.RecommendationResult{
		RecommendedService:  "Amazon DynamoDB",
		Justification:       "answer to: " + prompt,
		ImplementationSteps: []domain.ImplementationStep{{Phase: "Phase 1", Details: "Model access patterns."}},
		DiagramDefinition:   "graph TD\n  A --> B",
	}, nil
}

func (g *stubGenerator) ReviewArchitecture(ctx context.Context, prompt string) (*domain.ArchitectureReviewResult, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &domain.ArchitectureReviewResult{
		PillarRatings:         []domain.PillarRating{{Pillar: "Security", Rating: 8, Feedback: "good baseline"}},
		CriticalFixes:         []string{"enable GuardDuty"},
		CostOptimizationScore: "7/10",
	}, nil
}

func (g *stubGenerator) ExplainStep(ctx context.Context, prompt string) (*domain.StepExplanation, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &domain.StepExplanation{Explanation: "explaining " + prompt}, nil
}

type testEnv struct {
	srv *Server
	gen *stubGenerator
}

func newTestEnv(t *testing.T, krokiURL string) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := kv.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	hist := history.New(store, logger)
	gen := &stubGenerator{}
	session := advisor.NewSession(gen, hist, logger)
	renderer := diagram.NewKrokiRenderer(kroki.NewClient(kroki.WithBaseURL(krokiURL)))

	return &testEnv{
		srv: New(0, logger, session, renderer, report.NewExporter()),
		gen: gen,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	w := httptest.NewRecorder()
	e.srv.Router.ServeHTTP(w, req)
	return w
}

func decodeErrorKind(t *testing.T, w *httptest.ResponseRecorder) domain.ErrorKind {
	t.Helper()
	var body struct {
		Error struct {
			Kind       domain.ErrorKind `json:"kind"`
			Message    string           `json:"message"`
			Definition string           `json:"definition"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body.Error.Kind
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, "http://kroki.invalid")
	w := env.do(t, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestCurriculumEndpoints(t *testing.T) {
	env := newTestEnv(t, "http://kroki.invalid")

	for _, path := range []string{
		"/v1/curriculum/sections",
		"/v1/curriculum/modules",
		"/v1/curriculum/modules?section=fundamentals",
		"/v1/curriculum/roadmap",
		"/v1/curriculum/labs",
	} {
		if w := env.do(t, http.MethodGet, path, nil); w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d", path, w.Code)
		}
	}

	w := env.do(t, http.MethodGet, "/v1/curriculum/modules?section=nope", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown section status = %d", w.Code)
	}
}

func TestMatchFreeform(t *testing.T) {
	env := newTestEnv(t, "http://kroki.invalid")

	const text = "I need a globally distributed key-value store with sub-10ms reads"
	w := env.do(t, http.MethodPost, "/v1/match", map[string]string{"prompt": text})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var result domain.RecommendationResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if result.RecommendedService != "Amazon DynamoDB" {
		t.Errorf("service = %q", result.RecommendedService)
	}

	// The request is recorded verbatim as the newest history entry.
	w = env.do(t, http.MethodGet, "/v1/history", nil)
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("history length = %d", len(entries))
	}
	if entries[0].OriginalPrompt != text {
		t.Errorf("history prompt = %q", entries[0].OriginalPrompt)
	}
}

func TestMatchBrief(t *testing.T) {
	env := newTestEnv(t, "http://kroki.invalid")

	w := env.do(t, http.MethodPost, "/v1/match", map[string]any{
		"brief": map[string]string{
			"workload":       "REST API for a mobile app",
			"trafficProfile": "spiky, 10x on weekends",
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
}

func TestMatchErrors(t *testing.T) {
	env := newTestEnv(t, "http://kroki.invalid")

	tests := []struct {
		name     string
		genErr   error
		body     string
		wantCode int
		wantKind domain.ErrorKind
	}{
		{"blank prompt", nil, `{"prompt":"  "}`, http.StatusBadRequest, domain.ErrorKindInvalidInput},
		{"invalid json", nil, `{nope`, http.StatusBadRequest, domain.ErrorKindInvalidInput},
		{"malformed response", domain.ErrMalformedResponse("missing required field justification"), `{"prompt":"hi"}`, http.StatusBadGateway, domain.ErrorKindMalformedResponse},
		{"network failure", domain.ErrNetworkFailure("connection refused"), `{"prompt":"hi"}`, http.StatusBadGateway, domain.ErrorKindNetworkFailure},
		{"empty response", domain.ErrEmptyResponse("model returned no candidates"), `{"prompt":"hi"}`, http.StatusBadGateway, domain.ErrorKindEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.gen.err = tt.genErr
			defer func() { env.gen.err = nil }()

			req := httptest.NewRequest(http.MethodPost, "/v1/match", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			env.srv.Router.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if kind := decodeErrorKind(t, w); kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", kind, tt.wantKind)
			}
		})
	}
}

func TestReviewAndExplain(t *testing.T) {
	env := newTestEnv(t, "http://kroki.invalid")

	w := env.do(t, http.MethodPost, "/v1/review", map[string]string{"description": "three tier app on EC2"})
	if w.Code != http.StatusOK {
		t.Fatalf("review status = %d", w.Code)
	}
	var review domain.ArchitectureReviewResult
	if err := json.Unmarshal(w.Body.Bytes(), &review); err != nil {
		t.Fatalf("failed to decode review: %v", err)
	}
	if len(review.PillarRatings) == 0 {
		t.Error("review missing pillar ratings")
	}

	w = env.do(t, http.MethodPost, "/v1/explain", domain.ImplementationStep{Phase: "Phase 1", Details: "Model access patterns."})
	if w.Code != http.StatusOK {
		t.Fatalf("explain status = %d", w.Code)
	}
	var expl domain.StepExplanation
	if err := json.Unmarshal(w.Body.Bytes(), &expl); err != nil {
		t.Fatalf("failed to decode explanation: %v", err)
	}
	if expl.Explanation == "" {
		t.Error("explanation empty")
	}
}

func TestHistoryLifecycle(t *testing.T) {
	env := newTestEnv(t, "http://kroki.invalid")

	for _, p := range []string{"first", "second"} {
		if w := env.do(t, http.MethodPost, "/v1/match", map[string]string{"prompt": p}); w.Code != http.StatusOK {
			t.Fatalf("match %q status = %d", p, w.Code)
		}
	}

	w := env.do(t, http.MethodGet, "/v1/history/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d", w.Code)
	}
	var exported struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &exported); err != nil {
		t.Fatalf("failed to decode export: %v", err)
	}
	if exported.Key == "" {
		t.Fatal("empty portability key")
	}

	if w := env.do(t, http.MethodDelete, "/v1/history", nil); w.Code != http.StatusNoContent {
		t.Fatalf("clear status = %d", w.Code)
	}
	w = env.do(t, http.MethodGet, "/v1/history", nil)
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("history length after clear = %d", len(entries))
	}

	if w := env.do(t, http.MethodPost, "/v1/history/import", map[string]string{"key": exported.Key}); w.Code != http.StatusNoContent {
		t.Fatalf("import status = %d", w.Code)
	}
	w = env.do(t, http.MethodGet, "/v1/history", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(entries) != 2 || entries[0].OriginalPrompt != "second" {
		t.Errorf("restored history = %+v", entries)
	}
}

func TestHistoryImportRejectsBadKey(t *testing.T) {
	env := newTestEnv(t, "http://kroki.invalid")

	if w := env.do(t, http.MethodPost, "/v1/match", map[string]string{"prompt": "keep me"}); w.Code != http.StatusOK {
		t.Fatalf("match status = %d", w.Code)
	}

	w := env.do(t, http.MethodPost, "/v1/history/import", map[string]string{"key": "not base64 at all!!"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
	if kind := decodeErrorKind(t, w); kind != domain.ErrorKindPortabilityDecode {
		t.Errorf("kind = %q", kind)
	}

	// The existing history survives a failed import untouched.
	w = env.do(t, http.MethodGet, "/v1/history", nil)
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(entries) != 1 || entries[0].OriginalPrompt != "keep me" {
		t.Errorf("history after failed import = %+v", entries)
	}
}

func TestDiagramRenderAndFailure(t *testing.T) {
	krokiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "svg") {
			w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`))
			return
		}
		http.Error(w, "bad graph", http.StatusBadRequest)
	}))
	defer krokiSrv.Close()
	env := newTestEnv(t, krokiSrv.URL)

	w := env.do(t, http.MethodPost, "/v1/diagram", map[string]string{"definition": "graph TD\n  A --> B"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		SVG string `json:"svg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.HasPrefix(resp.SVG, "<svg") {
		t.Errorf("svg = %q", resp.SVG)
	}
}

func TestDiagramFailureCarriesDefinition(t *testing.T) {
	krokiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unable to parse", http.StatusBadRequest)
	}))
	defer krokiSrv.Close()
	env := newTestEnv(t, krokiSrv.URL)

	const def = "graph TD\n  broken -->"
	w := env.do(t, http.MethodPost, "/v1/diagram", map[string]string{"definition": def})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		Error struct {
			Kind       domain.ErrorKind `json:"kind"`
			Definition string           `json:"definition"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Error.Kind != domain.ErrorKindRender {
		t.Errorf("kind = %q", body.Error.Kind)
	}
	if body.Error.Definition != def {
		t.Errorf("definition = %q, want the raw text back", body.Error.Definition)
	}
}

func TestReportDownload(t *testing.T) {
	env := newTestEnv(t, "http://kroki.invalid")

	result := domain.RecommendationResult{
		RecommendedService:  "Amazon S3",
		Justification:       "durable object storage",
		ImplementationSteps: []domain.ImplementationStep{{Phase: "Phase 1", Details: "Create the bucket."}},
		DiagramDefinition:   "graph TD\n  A --> S3",
	}

	w := env.do(t, http.MethodPost, "/v1/report", map[string]any{"result": result})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "amazon-s3.html") {
		t.Errorf("content disposition = %q", cd)
	}
	if !strings.Contains(w.Body.String(), "Amazon S3") {
		t.Error("report body missing recommendation")
	}
}

// A diagram service outage degrades the report to a text diagram instead of
// failing the download.
func TestReportDiagramOutageFallsBackToText(t *testing.T) {
	env := newTestEnv(t, "http://kroki.invalid")

	result := domain.RecommendationResult{
		RecommendedService:  "Amazon S3",
		Justification:       "durable object storage",
		ImplementationSteps: []domain.ImplementationStep{{Phase: "Phase 1", Details: "Create the bucket."}},
		DiagramDefinition:   "graph TD\n  A --> S3",
	}

	w := env.do(t, http.MethodPost, "/v1/report", map[string]any{"result": result, "includeDiagram": true})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "<pre>") {
		t.Error("expected text diagram fallback in report")
	}
}
