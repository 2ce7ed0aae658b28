// Package remap implements the per-expression bijection between variable
// names and canonical placeholder tokens. The model only ever sees
// placeholders it was trained on; the table is what makes every user
// identifier recoverable afterwards.
package remap

import (
	"strings"

	"github.com/katyfelkner/fairseq-server/internal/domain"
	"github.com/katyfelkner/fairseq-server/internal/token"
	"github.com/katyfelkner/fairseq-server/internal/vocab"
)

// Table is the remap table for exactly one expression. Placeholders are
// assigned in strict first-occurrence order starting at index 0, and both
// directions of the mapping stay injective. A Table is built during
// canonicalization, read during de-canonicalization, and discarded with
// its job; it is never shared between jobs.
type Table struct {
	forward map[string]string // variable name -> placeholder
	reverse map[string]string // placeholder -> variable name
	next    int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		forward: make(map[string]string),
		reverse: make(map[string]string),
	}
}

// Placeholder returns the placeholder for name, assigning the next free
// index on first encounter. Re-encounters of a known name always return
// the same placeholder.
func (t *Table) Placeholder(name string, v *vocab.Vocabulary) (string, error) {
	if p, ok := t.forward[name]; ok {
		return p, nil
	}
	if t.next >= v.NamespaceSize {
		return "", &domain.NamespaceError{Size: v.NamespaceSize}
	}
	p := v.Placeholder(t.next)
	t.next++
	t.forward[name] = p
	t.reverse[p] = name
	return p, nil
}

// Original returns the variable name a placeholder was assigned to.
func (t *Table) Original(tok string) (string, error) {
	if name, ok := t.reverse[tok]; ok {
		return name, nil
	}
	return "", &domain.UnknownTokenError{Token: tok}
}

// Len returns the number of distinct variables mapped so far.
func (t *Table) Len() int {
	return len(t.forward)
}

// Canonicalize replaces every Variable token with its placeholder and
// passes reserved symbols through unchanged. The returned sequence has the
// same length and order as toks. Assignment is deterministic: the same
// token sequence always yields the same output and table.
func Canonicalize(toks []token.Token, v *vocab.Vocabulary) ([]string, *Table, error) {
	t := NewTable()
	out := make([]string, len(toks))
	for i, tok := range toks {
		if tok.Kind != token.Variable {
			out[i] = tok.Text
			continue
		}
		p, err := t.Placeholder(tok.Text, v)
		if err != nil {
			return nil, nil, err
		}
		out[i] = p
	}
	return out, t, nil
}

// Decanonicalize restores original variable names in the engine's output
// and joins the result into the final space-delimited string. Placeholders
// absent from the table pass through unmodified and are reported in
// unknown so the caller can flag them; everything outside the placeholder
// shape passes through silently.
func Decanonicalize(translated string, t *Table, v *vocab.Vocabulary) (string, []string) {
	fields := strings.Fields(translated)
	restored := make([]string, len(fields))
	var unknown []string
	for i, f := range fields {
		if v.IsSymbol(f) || v.PlaceholderIndex(f) < 0 {
			restored[i] = f
			continue
		}
		name, err := t.Original(f)
		if err != nil {
			unknown = append(unknown, f)
			restored[i] = f
			continue
		}
		restored[i] = name
	}
	return strings.Join(restored, " "), unknown
}
