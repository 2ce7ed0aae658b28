package domain

import "fmt"

// EncodingError reports input rejected by validation before tokenization.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return "invalid encoding: " + e.Reason
}

// TokenizationError reports a broken tokenizer invariant. It indicates a
// bug in the pipeline, not bad user input, and fails only the job that hit
// it.
type TokenizationError struct {
	Detail string
}

func (e *TokenizationError) Error() string {
	return "tokenization error: " + e.Detail
}

// NamespaceError reports an expression with more distinct variables than
// the canonical namespace can hold. The model was never trained on
// placeholders past the namespace, so the job fails rather than inventing
// them.
type NamespaceError struct {
	Size int
}

func (e *NamespaceError) Error() string {
	return fmt.Sprintf("canonical namespace exhausted (%d placeholders)", e.Size)
}

// UnknownTokenError identifies a placeholder the engine produced that has
// no entry in the job's remap table. It is recoverable: the caller passes
// the token through unmodified and flags it.
type UnknownTokenError struct {
	Token string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("canonical token %q has no remap entry", e.Token)
}
