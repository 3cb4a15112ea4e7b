package scan

import (
	"github.com/npillmayer/lexion"
	"github.com/npillmayer/lexion/automata"
)

// Tokenizer is an infallible scanner over a byte slice, driven by a
// compiled Automaton. Create one with New. A Tokenizer is not safe for
// concurrent use; run one per goroutine.
type Tokenizer struct {
	auto     *automata.Automaton
	input    []byte
	pos      uint64
	stack    []int // mode stack; stack[0] is the root mode
	stringer lexion.KindStringer
}

// Option is a configuration option for a Tokenizer.
type Option func(*Tokenizer)

// InMode starts the tokenizer in a named mode instead of the root mode.
// Unknown mode names are ignored.
func InMode(name string) Option {
	return func(t *Tokenizer) {
		if m := t.auto.ModeIndex(name); m >= 0 {
			t.stack[0] = m
		}
	}
}

// New creates a Tokenizer over the given input, starting in the
// automaton's root mode.
func New(auto *automata.Automaton, input []byte, opts ...Option) *Tokenizer {
	t := &Tokenizer{
		auto:     auto,
		input:    input,
		stack:    []int{0},
		stringer: auto.KindStringer(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Mode returns the name of the currently active mode.
func (t *Tokenizer) Mode() string {
	return t.auto.ModeName(t.stack[len(t.stack)-1])
}

// Depth returns the current mode-stack depth. It is 1 in the root mode.
func (t *Tokenizer) Depth() int {
	return len(t.stack)
}

// KindName returns the display name for a token kind of this tokenizer's
// automaton.
func (t *Tokenizer) KindName(k lexion.TokenKind) string {
	return t.stringer(k)
}

// NextToken returns the next token. It applies the longest-match rule:
// the token covers the longest prefix of the remaining input that any
// active pattern matches, with the earliest-declared pattern winning ties.
// If no pattern matches even a single byte, a token of kind Invalid
// covering exactly one byte is returned, so the tokenizer always makes
// progress. If the input ends while a longer match was still possible and
// no shorter match was found, the remaining bytes come back as a token of
// kind Incomplete. At the end of input NextToken returns a token of kind
// None with an empty span, and will do so forever after.
func (t *Tokenizer) NextToken() lexion.Token {
	start := t.pos
	if start >= uint64(len(t.input)) {
		return lexion.Token{Kind: lexion.KindNone, Span: lexion.Span{start, start}}
	}
	mode := t.stack[len(t.stack)-1]
	dfa := t.auto.ModeDFA(mode)
	state := automata.StartState
	var lastKind lexion.TokenKind
	lastEnd := start // exclusive end of the last accepting prefix
	for cursor := start; cursor < uint64(len(t.input)); cursor++ {
		state = dfa.Next(state, t.input[cursor])
		if state == automata.DeadState {
			break
		}
		if acc, ok := dfa.AcceptOf(state); ok {
			lastKind = acc.Kind
			lastEnd = cursor + 1
		}
	}
	if lastEnd == start { // no pattern matched a prefix
		if state != automata.DeadState {
			// ran off the end of input in a live state
			end := uint64(len(t.input))
			t.pos = end
			tracer().Debugf("incomplete token at %d in mode %q", start, t.Mode())
			return lexion.Token{Kind: lexion.KindIncomplete, Span: lexion.Span{start, end}}
		}
		t.pos = start + 1
		tracer().Debugf("invalid byte 0x%02x at %d in mode %q", t.input[start], start, t.Mode())
		return lexion.Token{Kind: lexion.KindInvalid, Span: lexion.Span{start, start + 1}}
	}
	t.pos = lastEnd
	t.shift(mode, lastKind)
	return lexion.Token{Kind: lastKind, Span: lexion.Span{start, lastEnd}}
}

// shift applies the mode-stack operation attached to a matched kind, if
// any. A pop in the root mode cannot occur in a statically checked
// automaton; should it occur with hand-built tables, it is ignored.
func (t *Tokenizer) shift(mode int, kind lexion.TokenKind) {
	op, target := t.auto.Transition(mode, kind)
	switch op {
	case automata.TransPush:
		t.stack = append(t.stack, int(target))
		tracer().Debugf("push mode %q, depth %d", t.Mode(), len(t.stack))
	case automata.TransPop:
		if len(t.stack) > 1 {
			t.stack = t.stack[:len(t.stack)-1]
			tracer().Debugf("pop to mode %q, depth %d", t.Mode(), len(t.stack))
		}
	}
}

// Tokens scans the complete remaining input and returns all tokens up to,
// and excluding, the final None token.
func (t *Tokenizer) Tokens() []lexion.Token {
	var tokens []lexion.Token
	for {
		tok := t.NextToken()
		if tok.Kind == lexion.KindNone {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Text returns the input bytes a token's span covers, as a string.
func (t *Tokenizer) Text(tok lexion.Token) string {
	return string(t.input[tok.Span.From():tok.Span.To()])
}
