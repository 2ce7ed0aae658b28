// Package validate rejects malformed input before tokenization.
package validate

import (
	"fmt"

	"github.com/katyfelkner/fairseq-server/internal/domain"
)

// Predicate is an additional validation check. Predicates run in order
// after the built-in checks and short-circuit on the first failure.
type Predicate func(s string) error

// Check validates a raw expression string. Only printable ASCII plus the
// whitespace delimiters (tab, newline, carriage return) is accepted.
// maxLen bounds the input length in bytes; zero leaves it unbounded.
func Check(s string, maxLen int, extra ...Predicate) error {
	if maxLen > 0 && len(s) > maxLen {
		return &domain.EncodingError{
			Reason: fmt.Sprintf("input is %d bytes, limit is %d", len(s), maxLen),
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c <= 0x7e {
			continue
		}
		if c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		return &domain.EncodingError{
			Reason: fmt.Sprintf("byte 0x%02x at offset %d is outside printable ASCII", c, i),
		}
	}
	for _, p := range extra {
		if err := p(s); err != nil {
			return err
		}
	}
	return nil
}
