// Package chunker groups canonical token sequences into translator
// payloads bounded by token count.
package chunker

// DefaultMaxTokens is the default cap on tokens per translator invocation.
// The model was exported with a 250-token source limit; four sources of
// that size per invocation keeps payloads well inside Lambda limits.
const DefaultMaxTokens = 1000

// ChunkBySize groups job indices into chunks whose summed token counts do
// not exceed maxTokens. Jobs are never split and never reordered. A job
// longer than maxTokens gets a chunk of its own.
func ChunkBySize(lengths []int, maxTokens int) [][]int {
	if len(lengths) == 0 {
		return nil
	}

	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	var chunks [][]int
	var current []int
	currentTokens := 0

	for i, n := range lengths {
		// An oversized job still has to reach the model; it travels alone.
		if n > maxTokens {
			if len(current) > 0 {
				chunks = append(chunks, current)
				current = nil
				currentTokens = 0
			}
			chunks = append(chunks, []int{i})
			continue
		}

		if currentTokens+n > maxTokens && len(current) > 0 {
			chunks = append(chunks, current)
			current = nil
			currentTokens = 0
		}

		current = append(current, i)
		currentTokens += n
	}

	if len(current) > 0 {
		chunks = append(chunks, current)
	}

	return chunks
}
