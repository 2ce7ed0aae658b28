package token

import (
	"fmt"
	"strings"

	"github.com/katyfelkner/fairseq-server/internal/domain"
	"github.com/katyfelkner/fairseq-server/internal/vocab"
)

// Tokenize splits a validated expression on whitespace and classifies each
// field against the vocabulary's reserved symbol set. A field matching a
// reserved symbol exactly becomes that symbol's token; every other field
// is a Variable. "-1" is a single MinusOne token only when written with no
// internal space; "- 1" is an Operator followed by the Variable "1".
//
// The returned sequence is finite and fully materialized; expressions are
// small enough that streaming buys nothing.
func Tokenize(s string, v *vocab.Vocabulary) ([]Token, error) {
	fields := strings.Fields(s)
	toks := make([]Token, 0, len(fields))
	for i, f := range fields {
		// strings.Fields never yields empty or whitespace-bearing fields;
		// either would break the round-trip guarantee.
		if f == "" || strings.ContainsAny(f, " \t\n\r") {
			return nil, &domain.TokenizationError{
				Detail: fmt.Sprintf("malformed field %q at position %d", f, i),
			}
		}
		toks = append(toks, Token{Kind: classify(f, v), Text: f})
	}
	return toks, nil
}

func classify(f string, v *vocab.Vocabulary) Kind {
	if !v.IsSymbol(f) {
		return Variable
	}
	switch f {
	case "+", "-", "*", "/":
		return Operator
	case "-1":
		return MinusOne
	case "(":
		return OpenParen
	case ")":
		return CloseParen
	case "[":
		return OpenBracket
	case "]":
		return CloseBracket
	case "{":
		return OpenBrace
	case "}":
		return CloseBrace
	}
	return Reserved
}

// Join renders a token sequence as a single space-delimited string.
func Join(toks []Token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}
