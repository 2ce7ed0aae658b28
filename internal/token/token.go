// Package token splits raw expressions into classified tokens.
package token

// Kind classifies a token.
type Kind int

const (
	// Variable is any token outside the reserved symbol set. Its content
	// is not validated further; unknown tokens are legal variables.
	Variable Kind = iota
	Operator      // + - * /
	MinusOne      // the literal -1, written with no internal space
	OpenParen     // (
	CloseParen    // )
	OpenBracket   // [
	CloseBracket  // ]
	OpenBrace     // {
	CloseBrace    // }
	// Reserved covers symbols added to the vocabulary beyond the fixed
	// alphabet. They pass through canonicalization like any other symbol.
	Reserved
)

// String returns a debug-friendly name for the kind.
func (k Kind) String() string {
	switch k {
	case Variable:
		return "VARIABLE"
	case Operator:
		return "OPERATOR"
	case MinusOne:
		return "MINUS_ONE"
	case OpenParen:
		return "LPAREN"
	case CloseParen:
		return "RPAREN"
	case OpenBracket:
		return "LBRACKET"
	case CloseBracket:
		return "RBRACKET"
	case OpenBrace:
		return "LBRACE"
	case CloseBrace:
		return "RBRACE"
	case Reserved:
		return "RESERVED"
	default:
		return "UNKNOWN"
	}
}

// Token is one unit of an expression. Immutable once created.
type Token struct {
	Kind Kind
	Text string
}
