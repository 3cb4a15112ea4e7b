package lexion

import "fmt"

// --- Token kinds ------------------------------------------------------------

// TokenKind is a category type for tokens. The grammar compiler assigns kinds
// 0…n-1 to the pattern definitions of a grammar, in declaration order.
// Negative values are reserved for the runtime contract.
type TokenKind int

// Reserved token kinds. A tokenizer for compiled lexion tables never fails;
// instead it marks unrecognized or truncated input with one of these kinds.
const (
	// KindNone signals the end of the token stream. No further tokens follow.
	KindNone TokenKind = -1
	// KindInvalid marks input that cannot begin any match in the active mode.
	KindInvalid TokenKind = -2
	// KindIncomplete marks a run of bytes at the end of input which could
	// have extended into a match, had there been more input.
	KindIncomplete TokenKind = -3
)

// KindStringer is a type to be provided by a grammar/tokenizer combination to
// be able to print out token kinds.
type KindStringer func(TokenKind) string

// ReservedKindName returns the name for a reserved kind, or "" for grammar kinds.
func ReservedKindName(k TokenKind) string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalid:
		return "invalid"
	case KindIncomplete:
		return "incomplete"
	}
	return ""
}

// --- Tokens -----------------------------------------------------------------

// Token is the value produced for each match by a tokenizer running over
// compiled lexion tables. Tokens carry byte offsets into the input, not
// lexeme copies; the input is owned by the caller.
type Token struct {
	Kind TokenKind
	Span Span
}

func (t Token) String() string {
	name := ReservedKindName(t.Kind)
	if name == "" {
		name = fmt.Sprintf("#%d", int(t.Kind))
	}
	return fmt.Sprintf("%s %s", name, t.Span)
}

// --- Spans ------------------------------------------------------------------

// Span is a small type for capturing a run of input bytes. A span denotes a
// start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
