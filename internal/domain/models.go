// Package domain contains the core types shared across the translation pipeline.
package domain

// Request is the input to the translation service.
type Request struct {
	Sources []string `json:"source"`
}

// Response pairs the echoed sources with their translations, in input order.
// Errors, when present, is aligned with Source; an empty entry means the job
// succeeded. Error reports a request-level failure.
type Response struct {
	Source          []string `json:"source,omitempty"`
	Translation     []string `json:"translation,omitempty"`
	Errors          []string `json:"errors,omitempty"`
	ChunksProcessed int      `json:"chunksProcessed,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// JobResult is the outcome of one expression's run through the pipeline.
type JobResult struct {
	Index       int
	Source      string
	Translation string

	// Unknown lists placeholders the engine produced that had no entry in
	// this job's remap table and were passed through unmodified.
	Unknown []string

	Err error
}
