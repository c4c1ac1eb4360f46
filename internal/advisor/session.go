// Package advisor orchestrates the portal's AI actions: prompt assembly,
// generation calls, view state, and history recording.
//
// Session replaces the ad hoc per-component mutable state of a typical
// frontend with one explicit state machine, so transitions can be driven in
// tests without any rendering layer.
package advisor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/masterclass-labs/architect-advisor/internal/domain"
	"github.com/masterclass-labs/architect-advisor/internal/history"
	"github.com/masterclass-labs/architect-advisor/internal/prompt"
)

const defaultCallTimeout = 60 * time.Second

// SessionOption configures the session.
type SessionOption func(*Session)

// WithCallTimeout overrides the per-generation-call timeout.
func WithCallTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.timeout = d
	}
}

// Session owns the view state of one portal session. Each action kind
// carries a monotonically increasing request token; a response is applied to
// view state only while its token is still the latest, so a newer submission
// both replaces the previous result and supersedes a straggling older
// response (last request wins).
type Session struct {
	gen     domain.Generator
	history *history.Store
	timeout time.Duration
	logger  *slog.Logger

	mu                 sync.Mutex
	tokens             map[domain.PromptKind]uint64
	inflight           map[domain.PromptKind]uint64
	lastRecommendation *domain.RecommendationResult
	lastReview         *domain.ArchitectureReviewResult
}

// NewSession creates a session over the given generator and history store.
func NewSession(gen domain.Generator, hist *history.Store, logger *slog.Logger, opts ...SessionOption) *Session {
	s := &Session{
		gen:      gen,
		history:  hist,
		timeout:  defaultCallTimeout,
		logger:   logger,
		tokens:   make(map[domain.PromptKind]uint64),
		inflight: make(map[domain.PromptKind]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// begin issues the next request token for kind and marks it in flight.
func (s *Session) begin(kind domain.PromptKind) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[kind]++
	token := s.tokens[kind]
	s.inflight[kind] = token
	return token
}

// settle reports whether the token is still current for kind and clears the
// loading flag if so. A stale token leaves newer state untouched.
func (s *Session) settle(kind domain.PromptKind, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tokens[kind] != token {
		return false
	}
	delete(s.inflight, kind)
	return true
}

// Loading reports whether a request of the given kind is in flight. The
// frontend uses this to show the spinner and disable resubmission.
func (s *Session) Loading(kind domain.PromptKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[kind]
	return ok
}

// MatchFreeform runs the Service Matcher on user-authored text.
func (s *Session) MatchFreeform(ctx context.Context, text string) (*domain.RecommendationResult, error) {
	p, err := prompt.Freeform(text)
	if err != nil {
		return nil, err
	}
	return s.match(ctx, p)
}

// MatchBrief runs the Service Matcher on the structured five-field brief.
func (s *Session) MatchBrief(ctx context.Context, b prompt.Brief) (*domain.RecommendationResult, error) {
	p, err := prompt.FromBrief(b)
	if err != nil {
		return nil, err
	}
	return s.match(ctx, p)
}

func (s *Session) match(ctx context.Context, promptText string) (*domain.RecommendationResult, error) {
	token := s.begin(domain.PromptKindServiceMatch)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.gen.MatchService(ctx, promptText)
	fresh := s.settle(domain.PromptKindServiceMatch, token)
	if err != nil {
		return nil, s.mapTimeout(ctx, err)
	}

	// Every successful result is recorded, stale or not; only view state is
	// token-guarded.
	entry := domain.HistoryEntry{
		ID:             uuid.New().String(),
		CreatedAt:      time.Now().UTC(),
		OriginalPrompt: promptText,
		Result:         *result,
	}
	if herr := s.history.Append(entry); herr != nil {
		s.logger.Warn("failed to persist history entry", slog.String("error", herr.Error()))
	}

	if fresh {
		s.mu.Lock()
		s.lastRecommendation = result
		s.mu.Unlock()
	}
	return result, nil
}

// Review runs the Architecture Reviewer on an architecture description.
func (s *Session) Review(ctx context.Context, description string) (*domain.ArchitectureReviewResult, error) {
	p, err := prompt.Freeform(description)
	if err != nil {
		return nil, err
	}

	token := s.begin(domain.PromptKindArchitectureReview)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.gen.ReviewArchitecture(ctx, p)
	fresh := s.settle(domain.PromptKindArchitectureReview, token)
	if err != nil {
		return nil, s.mapTimeout(ctx, err)
	}

	if fresh {
		s.mu.Lock()
		s.lastReview = result
		s.mu.Unlock()
	}
	return result, nil
}

// Explain produces the on-demand deep dive for one implementation step. The
// result is transient: it is returned to the caller and cached nowhere.
func (s *Session) Explain(ctx context.Context, step domain.ImplementationStep) (*domain.StepExplanation, error) {
	if step.Phase == "" && step.Details == "" {
		return nil, domain.ErrInvalidInput("step must not be empty")
	}

	token := s.begin(domain.PromptKindStepExplanation)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.gen.ExplainStep(ctx, step.Phase+": "+step.Details)
	s.settle(domain.PromptKindStepExplanation, token)
	if err != nil {
		return nil, s.mapTimeout(ctx, err)
	}
	return result, nil
}

// Recommendation returns the last recommendation applied to view state.
func (s *Session) Recommendation() *domain.RecommendationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRecommendation
}

// LastReview returns the last architecture review applied to view state.
func (s *Session) LastReview() *domain.ArchitectureReviewResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReview
}

// History exposes the session's history store.
func (s *Session) History() *history.Store {
	return s.history
}

// mapTimeout classifies a deadline hit as a network failure so a hung
// generation call never leaves the caller in a loading state.
func (s *Session) mapTimeout(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.ErrNetworkFailure("generation call timed out").WithCause(err)
	}
	return err
}
