// Package answer orchestrates one question: validate input, resolve the
// credential, call the AI provider, and account for trial usage.
//
// All request-time failures come back as classified errors — the HTTP layer
// maps them to statuses with errors.Is and nothing propagates as a panic.
package answer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/BalasaitejaG/Pdf-AI/internal/services/trial"
)

// ErrEmptyInput means the document has no extractable text (e.g. a scanned
// PDF) or the question is blank. User-recoverable by fixing the input.
var ErrEmptyInput = errors.New("empty input")

// Asker is the AI collaborator. *gemini.Client implements it.
type Asker interface {
	Ask(ctx context.Context, apiKey, documentText, question string) (string, error)
	Model() string
}

// Request carries one question about one document.
type Request struct {
	SessionID    string
	DocumentID   string
	DocumentText string
	Question     string
	SuppliedKey  string // optional user key entered on this interaction
}

// Result is a successful answer.
type Result struct {
	Answer    string
	ModelUsed string
	FromCache bool
	UsedTrial bool
}

// Service answers questions about extracted documents.
type Service struct {
	resolver *trial.Resolver
	store    trial.Store
	ai       Asker
	cache    *Cache
}

// New creates the orchestrator.
func New(resolver *trial.Resolver, store trial.Store, ai Asker) *Service {
	return &Service{
		resolver: resolver,
		store:    store,
		ai:       ai,
		cache:    NewCache(time.Hour),
	}
}

// Ask runs one request end to end.
//
// Per-request lifecycle: validate → authorize → (cached | single provider
// call) → account. Trial usage is recorded exactly once, only after a
// successful provider answer; rejected and failed requests never touch the
// counter. There are no internal retries — the caller may re-submit.
func (s *Service) Ask(ctx context.Context, req Request) (*Result, error) {
	req.Question = strings.TrimSpace(req.Question)
	if req.DocumentText == "" {
		return nil, fmt.Errorf("%w: document has no extractable text", ErrEmptyInput)
	}
	if req.Question == "" {
		return nil, fmt.Errorf("%w: question cannot be empty", ErrEmptyInput)
	}

	res, err := s.resolver.Resolve(ctx, req.SessionID, req.SuppliedKey)
	if err != nil {
		return nil, err
	}

	cacheKey := Key(req.DocumentID, req.Question)
	if cached, model, ok := s.cache.Get(cacheKey); ok {
		return &Result{Answer: cached, ModelUsed: model, FromCache: true}, nil
	}

	answerText, err := s.ai.Ask(ctx, res.Credential.APIKey(), req.DocumentText, req.Question)
	if err != nil {
		return nil, err
	}

	if res.ConsumesTrial {
		if err := s.store.RecordTrialUsage(ctx, req.SessionID); err != nil {
			// The user already has their answer; don't take it away over a
			// bookkeeping failure.
			log.Printf("Failed to record trial usage for session %s: %v", req.SessionID, err)
		}
	}

	s.cache.Set(cacheKey, answerText, s.ai.Model())

	return &Result{
		Answer:    answerText,
		ModelUsed: s.ai.Model(),
		UsedTrial: res.ConsumesTrial,
	}, nil
}
