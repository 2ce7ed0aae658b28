package remap

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/katyfelkner/fairseq-server/internal/domain"
	"github.com/katyfelkner/fairseq-server/internal/token"
	"github.com/katyfelkner/fairseq-server/internal/vocab"
)

func mustTokenize(t *testing.T, s string, v *vocab.Vocabulary) []token.Token {
	t.Helper()
	toks, err := token.Tokenize(s, v)
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", s, err)
	}
	return toks
}

func TestCanonicalizeWorkedExample(t *testing.T) {
	v := vocab.Default()
	toks := mustTokenize(t, "x + y * ( x - 1 )", v)

	canonical, table, err := Canonicalize(toks, v)
	if err != nil {
		t.Fatalf("Canonicalize() error: %v", err)
	}

	// x is first seen, then y, then the bare "1" (a variable, not the -1
	// literal).
	want := []string{"a_0", "+", "a_1", "*", "(", "a_0", "-", "a_2", ")"}
	if !reflect.DeepEqual(canonical, want) {
		t.Errorf("canonical = %v, want %v", canonical, want)
	}
	if table.Len() != 3 {
		t.Errorf("table has %d entries, want 3", table.Len())
	}
}

func TestCanonicalizeBijection(t *testing.T) {
	v := vocab.Default()
	toks := mustTokenize(t, "u v u w v u", v)

	canonical, _, err := Canonicalize(toks, v)
	if err != nil {
		t.Fatal(err)
	}

	// Same name, same placeholder.
	if canonical[0] != canonical[2] || canonical[0] != canonical[5] {
		t.Errorf("occurrences of u map to %q/%q/%q, want identical", canonical[0], canonical[2], canonical[5])
	}
	if canonical[1] != canonical[4] {
		t.Errorf("occurrences of v map to %q/%q, want identical", canonical[1], canonical[4])
	}

	// Distinct names, distinct placeholders.
	seen := map[string]bool{}
	for _, p := range []string{canonical[0], canonical[1], canonical[3]} {
		if seen[p] {
			t.Errorf("placeholder %q assigned to two distinct names", p)
		}
		seen[p] = true
	}
}

func TestCanonicalizeDeterministic(t *testing.T) {
	v := vocab.Default()
	toks := mustTokenize(t, "p + q * r - p / q", v)

	first, firstTable, err := Canonicalize(toks, v)
	if err != nil {
		t.Fatal(err)
	}
	second, secondTable, err := Canonicalize(toks, v)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-running canonicalization changed the output: %v vs %v", first, second)
	}
	for _, name := range []string{"p", "q", "r"} {
		a, _ := firstTable.Placeholder(name, v)
		b, _ := secondTable.Placeholder(name, v)
		if a != b {
			t.Errorf("placeholder for %q differs between runs: %q vs %q", name, a, b)
		}
	}
}

func TestCanonicalizePassthrough(t *testing.T) {
	v := vocab.Default()
	toks := mustTokenize(t, "+ - * / -1 ( ) [ ] { }", v)

	canonical, table, err := Canonicalize(toks, v)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"+", "-", "*", "/", "-1", "(", ")", "[", "]", "{", "}"}
	if !reflect.DeepEqual(canonical, want) {
		t.Errorf("fixed alphabet changed under canonicalization: %v", canonical)
	}
	if table.Len() != 0 {
		t.Errorf("table has %d entries for a symbol-only expression, want 0", table.Len())
	}
}

func TestRoundTrip(t *testing.T) {
	v := vocab.Default()

	inputs := []string{
		"x + y * ( x - 1 )",
		"alpha / beta - gamma",
		"[ a + { b * c } ]",
		"lone_variable",
		"n - -1 * n",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			toks := mustTokenize(t, input, v)
			canonical, table, err := Canonicalize(toks, v)
			if err != nil {
				t.Fatal(err)
			}

			// Identity translation: the engine returns its input.
			restored, unknown := Decanonicalize(strings.Join(canonical, " "), table, v)
			if restored != input {
				t.Errorf("round trip = %q, want %q", restored, input)
			}
			if len(unknown) != 0 {
				t.Errorf("round trip flagged unknown tokens: %v", unknown)
			}
		})
	}
}

func TestDecanonicalizeUnknownPlaceholder(t *testing.T) {
	v := vocab.Default()
	toks := mustTokenize(t, "x + y", v)

	_, table, err := Canonicalize(toks, v)
	if err != nil {
		t.Fatal(err)
	}

	// The engine hallucinated a_7, which the input never contained.
	restored, unknown := Decanonicalize("a_0 + a_7 * a_1", table, v)

	if restored != "x + a_7 * y" {
		t.Errorf("restored = %q, want hallucinated token passed through", restored)
	}
	if len(unknown) != 1 || unknown[0] != "a_7" {
		t.Errorf("unknown = %v, want [a_7]", unknown)
	}
}

func TestTableOriginalUnknown(t *testing.T) {
	table := NewTable()

	_, err := table.Original("a_0")
	var unknownErr *domain.UnknownTokenError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("Original() error type = %T, want *domain.UnknownTokenError", err)
	}
	if unknownErr.Token != "a_0" {
		t.Errorf("error token = %q, want %q", unknownErr.Token, "a_0")
	}
}

func TestCanonicalizeNamespaceExhausted(t *testing.T) {
	v := vocab.Default()
	v.NamespaceSize = 2
	toks := mustTokenize(t, "a b c", v)

	_, _, err := Canonicalize(toks, v)
	var nsErr *domain.NamespaceError
	if !errors.As(err, &nsErr) {
		t.Fatalf("Canonicalize() error type = %T, want *domain.NamespaceError", err)
	}
	if nsErr.Size != 2 {
		t.Errorf("error size = %d, want 2", nsErr.Size)
	}
}

func TestVariableShadowingPlaceholderShape(t *testing.T) {
	v := vocab.Default()

	// A user variable that happens to look like a placeholder still round
	// trips: it gets its own canonical index and the table restores it.
	toks := mustTokenize(t, "a_5 + x", v)
	canonical, table, err := Canonicalize(toks, v)
	if err != nil {
		t.Fatal(err)
	}
	if canonical[0] != "a_0" {
		t.Errorf("canonical[0] = %q, want %q", canonical[0], "a_0")
	}

	restored, unknown := Decanonicalize(strings.Join(canonical, " "), table, v)
	if restored != "a_5 + x" {
		t.Errorf("round trip = %q, want %q", restored, "a_5 + x")
	}
	if len(unknown) != 0 {
		t.Errorf("unexpected unknown tokens: %v", unknown)
	}
}
