package grammar

import (
	"unicode"

	"github.com/npillmayer/lexion/charset"
)

// exprParser parses one pattern expression out of a source line. It scans
// runes with an explicit position so that diagnostics can point at the
// offending column.
type exprParser struct {
	file  string
	line  int
	runes []rune
	pos   int
}

// escapeRunes maps escape letters and escapable punctuation to code points.
var escapeRunes = map[rune]rune{
	'n': '\n',
	't': '\t',
	's': ' ', // nonstandard space escape
}

func init() {
	for _, c := range `\#|$?*+()[]&-^:/` {
		escapeRunes[c] = c
	}
}

func (p *exprParser) position() Position {
	return Position{p.file, p.line, p.pos + 1}
}

// peek returns the rune at the cursor, or 0 at end of pattern. A `//`
// comment terminates the pattern like end of line does.
func (p *exprParser) peek() rune {
	if p.pos >= len(p.runes) {
		return 0
	}
	if p.runes[p.pos] == '/' && p.pos+1 < len(p.runes) && p.runes[p.pos+1] == '/' {
		return 0
	}
	return p.runes[p.pos]
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.runes) && (p.runes[p.pos] == ' ' || p.runes[p.pos] == '\t') {
		p.pos++
	}
}

// parsePattern parses a complete pattern expression and requires it to
// extend to the end of the line (or a trailing comment).
func (p *exprParser) parsePattern() (Pattern, error) {
	pattern, err := p.parseChoice()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if c := p.peek(); c != 0 {
		return nil, syntaxError(p.position(), "unexpected %q", c)
	}
	return pattern, nil
}

func (p *exprParser) parseChoice() (Pattern, error) {
	left, err := p.parseSeq()
	if err != nil {
		return nil, err
	}
	subs := []Pattern{left}
	for {
		p.skipSpaces()
		if p.peek() != '|' {
			break
		}
		p.pos++
		sub, err := p.parseSeq()
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if len(subs) == 1 {
		return left, nil
	}
	return &ChoicePattern{Subs: subs}, nil
}

func (p *exprParser) parseSeq() (Pattern, error) {
	var subs []Pattern
	for {
		p.skipSpaces()
		c := p.peek()
		if c == 0 || c == '|' || c == ')' {
			break
		}
		sub, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	switch len(subs) {
	case 0:
		return nil, syntaxError(p.position(), "empty pattern")
	case 1:
		return subs[0], nil
	}
	return &SeqPattern{Subs: subs}, nil
}

func (p *exprParser) parsePostfix() (Pattern, error) {
	pattern, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '*':
			p.pos++
			pattern = &StarPattern{Sub: pattern}
		case '+':
			p.pos++
			pattern = &PlusPattern{Sub: pattern}
		case '?':
			p.pos++
			pattern = &OptPattern{Sub: pattern}
		default:
			return pattern, nil
		}
	}
}

func (p *exprParser) parseAtom() (Pattern, error) {
	switch c := p.peek(); c {
	case '(':
		p.pos++
		sub, err := p.parseChoice()
		if err != nil {
			return nil, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return nil, syntaxError(p.position(), "expected `)`")
		}
		p.pos++
		return sub, nil
	case '[':
		return p.parseSet()
	case '$':
		return p.parseRef()
	case '\\':
		code, err := p.parseEscape()
		if err != nil {
			return nil, err
		}
		return &CharsetPattern{Set: charset.Single(code)}, nil
	case ')', ']', '|', '*', '+', '?':
		return nil, syntaxError(p.position(), "unexpected %q", c)
	case 0:
		return nil, syntaxError(p.position(), "unexpected end of pattern")
	default:
		if !unicode.IsPrint(c) {
			return nil, syntaxError(p.position(), "invalid non-printing character %q", c)
		}
		p.pos++
		return &CharsetPattern{Set: charset.Single(c)}, nil
	}
}

func (p *exprParser) parseRef() (*RefPattern, error) {
	pos := p.position()
	p.pos++ // consume `$`
	start := p.pos
	for p.pos < len(p.runes) && isWordRune(p.runes[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, syntaxError(pos, "expected a name after `$`")
	}
	return &RefPattern{Name: string(p.runes[start:p.pos]), Pos: pos}, nil
}

func (p *exprParser) parseEscape() (rune, error) {
	pos := p.position()
	p.pos++ // consume backslash
	if p.pos >= len(p.runes) {
		return 0, syntaxError(pos, "dangling escape")
	}
	c := p.runes[p.pos]
	code, ok := escapeRunes[c]
	if !ok {
		return 0, syntaxError(p.position(), "invalid escaped character %q", c)
	}
	p.pos++
	return code, nil
}

// --- Character-set expressions ------------------------------------------------

// parseSet parses a bracketed character-set expression. Adjacency unions
// operands; `&`, `-` and `^` are the binary intersection, difference and
// symmetric-difference operators. A `-` between two single code points
// denotes an inclusive range instead.
func (p *exprParser) parseSet() (Pattern, error) {
	open := p.position()
	p.pos++ // consume `[`
	left, err := p.parseSetItem()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpaces()
		switch c := p.peek(); c {
		case ']':
			p.pos++
			return left, nil
		case 0:
			return nil, syntaxError(open, "unterminated character set, expected `]`")
		case '&', '^':
			opPos := p.position()
			p.pos++
			op := SetIntersect
			if c == '^' {
				op = SetSymmetricDifference
			}
			right, err := p.parseSetItem()
			if err != nil {
				return nil, err
			}
			left = p.combineSets(op, left, right, opPos)
		default:
			right, err := p.parseSetItem()
			if err != nil {
				return nil, err
			}
			left = p.combineSets(SetUnion, left, right, p.position())
		}
	}
}

// parseSetItem parses an operand, optionally chained with `-`. The `-`
// binds tighter than adjacency, so that `[a-zA-Z]` unions two ranges.
func (p *exprParser) parseSetItem() (Pattern, error) {
	left, err := p.parseSetOperand()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpaces()
		if p.peek() != '-' {
			return left, nil
		}
		opPos := p.position()
		p.pos++
		right, err := p.parseSetOperand()
		if err != nil {
			return nil, err
		}
		if r, ok := p.charRange(left, right, opPos); ok {
			left = r
			continue
		}
		left = p.combineSets(SetDifference, left, right, opPos)
	}
}

// charRange folds `a-z` style constructs: a `-` between two single code
// points builds the inclusive range instead of a set difference.
func (p *exprParser) charRange(left, right Pattern, pos Position) (Pattern, bool) {
	lo, okl := singleCharset(left)
	hi, okr := singleCharset(right)
	if !okl || !okr {
		return nil, false
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return &CharsetPattern{Set: charset.New(charset.Range{Lo: lo, Hi: hi})}, true
}

// combineSets folds the operation eagerly when both operands are already
// resolved charsets; otherwise it defers to resolution.
func (p *exprParser) combineSets(op SetOp, left, right Pattern, pos Position) Pattern {
	l, okl := left.(*CharsetPattern)
	r, okr := right.(*CharsetPattern)
	if okl && okr {
		return &CharsetPattern{Set: applySetOp(op, l.Set, r.Set)}
	}
	return &SetOpPattern{Op: op, Left: left, Right: right, Pos: pos}
}

func applySetOp(op SetOp, l, r charset.RangeSet) charset.RangeSet {
	switch op {
	case SetIntersect:
		return l.Intersect(r)
	case SetDifference:
		return l.Difference(r)
	case SetSymmetricDifference:
		return l.SymmetricDifference(r)
	}
	return l.Union(r)
}

func (p *exprParser) parseSetOperand() (Pattern, error) {
	p.skipSpaces()
	switch c := p.peek(); c {
	case '[':
		return p.parseSet()
	case '$':
		return p.parseRef()
	case '\\':
		code, err := p.parseEscape()
		if err != nil {
			return nil, err
		}
		return &CharsetPattern{Set: charset.Single(code)}, nil
	case ']', 0, '&', '^', '-':
		return nil, syntaxError(p.position(), "expected a character-set operand")
	default:
		if !unicode.IsPrint(c) {
			return nil, syntaxError(p.position(), "invalid non-printing character %q", c)
		}
		p.pos++
		return &CharsetPattern{Set: charset.Single(c)}, nil
	}
}
