package grammar

import (
	"github.com/npillmayer/lexion"
	"github.com/npillmayer/lexion/charset"
)

// --- Pattern expressions ----------------------------------------------------

// Pattern is a parsed pattern expression. Patterns form an immutable tree;
// the variants are CharsetPattern, SeqPattern, ChoicePattern, StarPattern,
// PlusPattern, OptPattern, RefPattern and SetOpPattern.
type Pattern interface {
	// Precedence orders the pattern operators for printing and regex export:
	// choice < sequence < quantifier < atom.
	Precedence() int
	isPattern()
}

// Operator precedence levels.
const (
	PrecChoice = 1 + iota
	PrecSeq
	PrecQuantity
	PrecAtom
)

// CharsetPattern matches exactly one code point out of a set.
type CharsetPattern struct {
	Set charset.RangeSet
}

// SeqPattern matches its sub-patterns in sequence.
type SeqPattern struct {
	Subs []Pattern
}

// ChoicePattern matches any one of its sub-patterns.
type ChoicePattern struct {
	Subs []Pattern
}

// StarPattern matches zero or more repetitions of its sub-pattern.
type StarPattern struct {
	Sub Pattern
}

// PlusPattern matches one or more repetitions of its sub-pattern.
type PlusPattern struct {
	Sub Pattern
}

// OptPattern matches its sub-pattern or the empty string.
type OptPattern struct {
	Sub Pattern
}

// RefPattern is a `$Name` reference to a named pattern definition or to a
// named character class. References are resolved before compilation.
type RefPattern struct {
	Name string
	Pos  Position
}

// SetOp enumerates the binary character-set operators.
type SetOp int8

const (
	SetUnion SetOp = iota
	SetIntersect
	SetDifference
	SetSymmetricDifference
)

func (op SetOp) String() string {
	switch op {
	case SetUnion:
		return "union"
	case SetIntersect:
		return "intersect"
	case SetDifference:
		return "difference"
	case SetSymmetricDifference:
		return "symmetric-difference"
	}
	return "?"
}

// SetOpPattern is a set-algebra expression over character sets. Both
// operands must resolve to character sets; resolution folds the whole
// expression into a single CharsetPattern.
type SetOpPattern struct {
	Op          SetOp
	Left, Right Pattern
	Pos         Position
}

func (p *CharsetPattern) Precedence() int { return PrecAtom }
func (p *SeqPattern) Precedence() int     { return PrecSeq }
func (p *ChoicePattern) Precedence() int  { return PrecChoice }
func (p *StarPattern) Precedence() int    { return PrecQuantity }
func (p *PlusPattern) Precedence() int    { return PrecQuantity }
func (p *OptPattern) Precedence() int     { return PrecQuantity }
func (p *RefPattern) Precedence() int     { return PrecAtom }
func (p *SetOpPattern) Precedence() int   { return PrecAtom }

func (p *CharsetPattern) isPattern() {}
func (p *SeqPattern) isPattern()     {}
func (p *ChoicePattern) isPattern()  {}
func (p *StarPattern) isPattern()    {}
func (p *PlusPattern) isPattern()    {}
func (p *OptPattern) isPattern()     {}
func (p *RefPattern) isPattern()     {}
func (p *SetOpPattern) isPattern()   {}

// --- Definitions, modes, transitions -----------------------------------------

// PatternDef is a named pattern definition. The declaration index doubles as
// the rule priority (earlier wins) and as the token kind produced by matches.
type PatternDef struct {
	Name    string
	Pattern Pattern
	Index   int // declaration order, 0-based
	Pos     Position
}

// Kind returns the token kind assigned to matches of this definition.
func (d *PatternDef) Kind() lexion.TokenKind {
	return lexion.TokenKind(d.Index)
}

// Mode is a named group of active pattern definitions. The order of Rules
// follows the pattern declaration order and is the priority order for
// tie-breaking.
type Mode struct {
	Name  string
	Rules []*PatternDef
	Pos   Position
}

// StackOp is a mode-stack operation attached to a transition.
type StackOp int8

const (
	OpNone StackOp = iota
	OpPush
	OpPop
)

func (op StackOp) String() string {
	switch op {
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	}
	return "none"
}

// Transition maps a matched token kind within a mode to a mode-stack
// operation. Target is set for OpPush only.
type Transition struct {
	Mode   string
	Kind   string // pattern definition name
	Op     StackOp
	Target string
	Pos    Position
}

// --- Grammar ------------------------------------------------------------------

// Grammar is the parsed pattern model: pattern definitions, modes, and mode
// transitions. A Grammar is produced once by Parse and is immutable input to
// compilation.
type Grammar struct {
	Name        string
	License     string
	Defs        []*PatternDef
	Modes       []*Mode // Modes[0] is the root mode
	Transitions []*Transition

	defsByName  map[string]*PatternDef
	modesByName map[string]*Mode
}

// Def looks up a pattern definition by name.
func (g *Grammar) Def(name string) *PatternDef {
	return g.defsByName[name]
}

// ModeNamed looks up a mode by name.
func (g *Grammar) ModeNamed(name string) *Mode {
	return g.modesByName[name]
}

// Root returns the initial mode.
func (g *Grammar) Root() *Mode {
	return g.Modes[0]
}

// KindName returns the name for a token kind, including the reserved kinds.
func (g *Grammar) KindName(k lexion.TokenKind) string {
	if name := lexion.ReservedKindName(k); name != "" {
		return name
	}
	if int(k) < len(g.Defs) {
		return g.Defs[k].Name
	}
	return "?"
}

// KindStringer returns a stringer for this grammar's token kinds.
func (g *Grammar) KindStringer() lexion.KindStringer {
	return func(k lexion.TokenKind) string { return g.KindName(k) }
}
