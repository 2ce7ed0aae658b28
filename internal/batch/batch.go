// Package batch orchestrates multi-expression translation requests. Each
// expression runs as an independent job with exclusively owned state; the
// only serialization point is reassembling results by input index.
package batch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/katyfelkner/fairseq-server/internal/chunker"
	"github.com/katyfelkner/fairseq-server/internal/domain"
	"github.com/katyfelkner/fairseq-server/internal/engine"
	"github.com/katyfelkner/fairseq-server/internal/remap"
	"github.com/katyfelkner/fairseq-server/internal/token"
	"github.com/katyfelkner/fairseq-server/internal/validate"
	"github.com/katyfelkner/fairseq-server/internal/vocab"
)

// Orchestrator fans a request out to per-expression jobs, submits the
// canonical sequences to the engine in chunks, and reassembles results in
// input order.
type Orchestrator struct {
	engine engine.Engine
	vocab  *vocab.Vocabulary

	// MaxChunkTokens caps tokens per engine invocation. Zero uses
	// chunker.DefaultMaxTokens.
	MaxChunkTokens int

	// MaxSourceBytes bounds individual source strings. Zero disables the
	// check; enforcement policy belongs to the caller.
	MaxSourceBytes int
}

// New returns an orchestrator running against the given engine and
// vocabulary. The engine handle is shared by reference; its lifecycle is
// owned by the process boundary, not here.
func New(e engine.Engine, v *vocab.Vocabulary) *Orchestrator {
	return &Orchestrator{engine: e, vocab: v}
}

// job is the state owned by exactly one expression.
type job struct {
	source    string
	canonical []string
	table     *remap.Table
	err       error
}

// Run processes sources and returns one result per input, in input order,
// plus the number of engine invocations made. A failure in one job never
// blocks or corrupts its siblings.
func (o *Orchestrator) Run(ctx context.Context, sources []string) ([]domain.JobResult, int) {
	jobs := make([]job, len(sources))

	// Prepare every job in parallel. Jobs share no mutable state, and
	// each goroutine writes only its own slot.
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src string) {
			defer wg.Done()
			jobs[i] = o.prepare(src)
		}(i, src)
	}
	wg.Wait()

	// Chunk the surviving jobs into engine invocations.
	var ready []int
	var lengths []int
	for i := range jobs {
		if jobs[i].err == nil {
			ready = append(ready, i)
			lengths = append(lengths, len(jobs[i].canonical))
		}
	}

	translated := make([]string, len(sources))
	chunks := chunker.ChunkBySize(lengths, o.MaxChunkTokens)
	for _, chunk := range chunks {
		batchIn := make([]string, len(chunk))
		for ci, li := range chunk {
			batchIn[ci] = strings.Join(jobs[ready[li]].canonical, " ")
		}
		out, err := o.engine.Translate(ctx, batchIn)
		if err != nil {
			// Scoped to this invocation; sibling chunks still complete.
			for _, li := range chunk {
				jobs[ready[li]].err = fmt.Errorf("translation failed: %w", err)
			}
			continue
		}
		for ci, li := range chunk {
			translated[ready[li]] = out[ci]
		}
	}

	// De-canonicalize each job with its own table.
	results := make([]domain.JobResult, len(sources))
	for i := range jobs {
		j := &jobs[i]
		res := domain.JobResult{Index: i, Source: j.source, Err: j.err}
		if j.err == nil {
			res.Translation, res.Unknown = remap.Decanonicalize(translated[i], j.table, o.vocab)
			for _, tok := range res.Unknown {
				log.Printf("job %d: engine produced placeholder %q outside the remap table, passing it through", i, tok)
			}
		}
		results[i] = res
	}
	return results, len(chunks)
}

// prepare runs the per-job half of the pipeline: validate, tokenize,
// canonicalize.
func (o *Orchestrator) prepare(src string) job {
	j := job{source: src}
	if err := validate.Check(src, o.MaxSourceBytes); err != nil {
		j.err = err
		return j
	}
	toks, err := token.Tokenize(src, o.vocab)
	if err != nil {
		j.err = err
		return j
	}
	j.canonical, j.table, err = remap.Canonicalize(toks, o.vocab)
	if err != nil {
		j.err = err
	}
	return j
}

// Collect folds per-job results into the wire response. Source and
// Translation stay aligned with the request; Errors is only present when
// at least one job failed.
func Collect(results []domain.JobResult, chunks int) *domain.Response {
	resp := &domain.Response{
		Source:          make([]string, len(results)),
		Translation:     make([]string, len(results)),
		ChunksProcessed: chunks,
	}
	errs := make([]string, len(results))
	failed := false
	for i, r := range results {
		resp.Source[i] = r.Source
		resp.Translation[i] = r.Translation
		if r.Err != nil {
			errs[i] = r.Err.Error()
			failed = true
		}
	}
	if failed {
		resp.Errors = errs
	}
	return resp
}
