// Package engine abstracts the sequence-to-sequence translation model.
// Implementations only ever see canonical token strings; the remapping on
// either side belongs to the batch layer.
package engine

import "context"

// Engine translates a batch of space-joined canonical token sequences,
// returning one translated sequence per input in the same order. An
// Engine's internal state (loaded weights, clients) is read-only from the
// caller's perspective and safe to share across concurrent requests.
type Engine interface {
	Translate(ctx context.Context, sources []string) ([]string, error)
}

// Identity returns an engine that echoes its input unchanged. Used by
// tests and the CLI's dry-run mode to exercise the full canonicalization
// round trip without a model.
func Identity() Engine {
	return identityEngine{}
}

type identityEngine struct{}

func (identityEngine) Translate(_ context.Context, sources []string) ([]string, error) {
	out := make([]string, len(sources))
	copy(out, sources)
	return out, nil
}
