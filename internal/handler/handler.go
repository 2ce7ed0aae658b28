// Package handler provides the Lambda handler for the translation service.
package handler

import (
	"context"
	"fmt"
	"os"

	"github.com/katyfelkner/fairseq-server/internal/batch"
	"github.com/katyfelkner/fairseq-server/internal/domain"
	"github.com/katyfelkner/fairseq-server/internal/engine"
	"github.com/katyfelkner/fairseq-server/internal/vocab"
)

// Request is the event payload for a translation invocation.
type Request = domain.Request

// Response is the invocation result.
type Response = domain.Response

// Handle processes a translation request. User-level faults come back in
// the response envelope, never as a Go error; per-job failures are
// reported beside the jobs that succeeded.
func Handle(ctx context.Context, req Request) (*Response, error) {
	if req.Sources == nil {
		return &Response{Error: "source is required"}, nil
	}

	// Empty input - return immediately
	if len(req.Sources) == 0 {
		return &Response{Source: []string{}, Translation: []string{}}, nil
	}

	v, err := loadVocabulary()
	if err != nil {
		return &Response{Error: fmt.Sprintf("failed to load vocabulary: %v", err)}, nil
	}

	eng, err := engine.NewLambda(ctx, translatorFunction())
	if err != nil {
		return &Response{Error: fmt.Sprintf("failed to create engine: %v", err)}, nil
	}

	results, chunks := batch.New(eng, v).Run(ctx, req.Sources)
	return batch.Collect(results, chunks), nil
}

// loadVocabulary reads the vocabulary file named by VOCAB_PATH, or falls
// back to the compiled-in contract for the shipped checkpoint.
func loadVocabulary() (*vocab.Vocabulary, error) {
	if path := os.Getenv("VOCAB_PATH"); path != "" {
		return vocab.Load(path)
	}
	return vocab.Default(), nil
}

// translatorFunction resolves the translator Lambda's name from
// TRANSLATOR_FUNCTION, defaulting by environment.
func translatorFunction() string {
	if name := os.Getenv("TRANSLATOR_FUNCTION"); name != "" {
		return name
	}
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}
	return "fairseq-translator-" + env
}
