package grammar

import (
	"fmt"
	"strings"
)

// Position locates a construct in a grammar source. Line and Col are 1-based.
type Position struct {
	File string
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// SyntaxError reports a malformed construct in a grammar source.
type SyntaxError struct {
	Pos Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.Pos, e.Msg)
}

func syntaxError(pos Position, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// UndefinedReferenceError reports a reference to an unknown pattern,
// character class, or mode.
type UndefinedReferenceError struct {
	Pos  Position
	What string // "pattern", "charset" or "mode"
	Name string
}

func (e *UndefinedReferenceError) Error() string {
	return fmt.Sprintf("%s: undefined %s: %q", e.Pos, e.What, e.Name)
}

// CyclicReferenceError reports a reference cycle between named patterns,
// which cannot be compiled into a finite automaton.
type CyclicReferenceError struct {
	Pos   Position
	Cycle []string // the names along the cycle, first == last
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("%s: cyclic pattern reference: %s", e.Pos, strings.Join(e.Cycle, " -> "))
}

// UnreachableModeError reports a mode which can never appear on the mode
// stack, or a pop transition which would underflow the root mode.
type UnreachableModeError struct {
	Pos  Position
	Mode string
	Msg  string
}

func (e *UnreachableModeError) Error() string {
	return fmt.Sprintf("%s: mode %q: %s", e.Pos, e.Mode, e.Msg)
}
