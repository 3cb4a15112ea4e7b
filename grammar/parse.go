package grammar

import (
	"strings"
	"unicode"
)

// Section markers of a grammar source.
const (
	sectionPatterns = iota
	sectionLicense
	sectionModes
	sectionTransitions
)

// Parse parses a grammar source into its pattern model. `name` identifies
// the source in diagnostics (usually a file name). All references are
// resolved and cycle-checked; the first malformed construct aborts parsing
// with a positional error.
func Parse(name, text string) (*Grammar, error) {
	g := &Grammar{
		Name:        name,
		defsByName:  make(map[string]*PatternDef),
		modesByName: make(map[string]*Mode),
	}
	p := &parser{file: name, g: g}
	if err := p.parseLines(text); err != nil {
		return nil, err
	}
	if err := g.resolve(); err != nil {
		return nil, err
	}
	tracer().Infof("parsed grammar %q: %d patterns, %d modes, %d transitions",
		name, len(g.Defs), len(g.Modes), len(g.Transitions))
	return g, nil
}

type parser struct {
	file    string
	g       *Grammar
	section int
	license []string
}

func (p *parser) parseLines(text string) error {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lineno := i + 1
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		if p.section != sectionLicense {
			if trimmed == "" || strings.HasPrefix(trimmed, "//") {
				continue
			}
		}
		if strings.HasPrefix(line, "#") {
			if err := p.parseSectionHeader(lineno, line); err != nil {
				return err
			}
			continue
		}
		var err error
		switch p.section {
		case sectionLicense:
			p.license = append(p.license, line)
		case sectionPatterns:
			err = p.parsePatternLine(lineno, line)
		case sectionModes:
			err = p.parseModeLine(lineno, line)
		case sectionTransitions:
			err = p.parseTransitionLine(lineno, line)
		}
		if err != nil {
			return err
		}
	}
	p.g.License = strings.TrimSpace(strings.Join(p.license, "\n"))
	return nil
}

func (p *parser) parseSectionHeader(lineno int, line string) error {
	label := strings.ToLower(strings.TrimSpace(line[1:]))
	switch label {
	case "license":
		p.section = sectionLicense
	case "patterns":
		p.section = sectionPatterns
	case "modes":
		p.section = sectionModes
	case "transitions":
		p.section = sectionTransitions
	default:
		return syntaxError(Position{p.file, lineno, 1}, "unknown section: %q", label)
	}
	return nil
}

// parsePatternLine handles `name : expr` and bare `expr` lines. Bare
// patterns derive their name from the pattern text, which is convenient for
// keyword tokens.
func (p *parser) parsePatternLine(lineno int, line string) error {
	runes := []rune(line)
	name, rest := splitDefName(runes)
	start := 0
	if rest >= 0 {
		start = rest
	}
	ep := &exprParser{file: p.file, line: lineno, runes: runes, pos: start}
	pattern, err := ep.parsePattern()
	if err != nil {
		return err
	}
	pos := Position{p.file, lineno, 1}
	if name == "" {
		name = deriveName(string(runes[start:ep.pos]))
		if name == "" {
			return syntaxError(pos, "cannot derive a name for unnamed pattern")
		}
	}
	if reserved := name == "invalid" || name == "incomplete" || name == "none"; reserved {
		return syntaxError(pos, "pattern name is reserved: %q", name)
	}
	if _, exists := p.g.defsByName[name]; exists {
		return syntaxError(pos, "pattern already defined: %q", name)
	}
	def := &PatternDef{Name: name, Pattern: pattern, Index: len(p.g.Defs), Pos: pos}
	p.g.Defs = append(p.g.Defs, def)
	p.g.defsByName[name] = def
	return nil
}

// splitDefName returns the definition name and the rune index just behind
// the separating colon, or ("", -1) for unnamed pattern lines.
func splitDefName(runes []rune) (string, int) {
	i := 0
	for i < len(runes) && runes[i] == ' ' {
		i++
	}
	j := i
	for j < len(runes) && isWordRune(runes[j]) {
		j++
	}
	k := j
	for k < len(runes) && runes[k] == ' ' {
		k++
	}
	if j > i && k < len(runes) && runes[k] == ':' {
		return string(runes[i:j]), k + 1
	}
	return "", -1
}

func isWordRune(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

// deriveName mimics the unnamed-rule convention: non-word characters are
// collapsed to underscores, and a leading digit gets an underscore prefix.
func deriveName(pattern string) string {
	var sb strings.Builder
	lastWasSep := true
	for _, c := range strings.TrimSpace(pattern) {
		if isWordRune(c) {
			sb.WriteRune(c)
			lastWasSep = false
		} else if !lastWasSep {
			sb.WriteByte('_')
			lastWasSep = true
		}
	}
	name := strings.Trim(sb.String(), "_")
	if name == "" {
		return ""
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}

// parseModeLine handles `mode : pat1 pat2 …`.
func (p *parser) parseModeLine(lineno int, line string) error {
	fields := newFieldScanner(p.file, lineno, line)
	name, err := fields.word("mode name")
	if err != nil {
		return err
	}
	if err := fields.expect(":"); err != nil {
		return err
	}
	pos := Position{p.file, lineno, 1}
	if _, exists := p.g.modesByName[name.text]; exists {
		return syntaxError(pos, "mode already defined: %q", name.text)
	}
	mode := &Mode{Name: name.text, Pos: pos}
	for !fields.atEnd() {
		sym, err := fields.word("pattern name")
		if err != nil {
			return err
		}
		def, ok := p.g.defsByName[sym.text]
		if !ok {
			return &UndefinedReferenceError{Pos: sym.pos, What: "pattern", Name: sym.text}
		}
		mode.Rules = append(mode.Rules, def)
	}
	sortRulesByPriority(mode.Rules)
	p.g.Modes = append(p.g.Modes, mode)
	p.g.modesByName[mode.Name] = mode
	return nil
}

func sortRulesByPriority(rules []*PatternDef) {
	for i := 1; i < len(rules); i++ {
		for j := i; j > 0 && rules[j].Index < rules[j-1].Index; j-- {
			rules[j], rules[j-1] = rules[j-1], rules[j]
		}
	}
}

// parseTransitionLine handles `mode : kind -> push target` and
// `mode : kind -> pop`.
func (p *parser) parseTransitionLine(lineno int, line string) error {
	fields := newFieldScanner(p.file, lineno, line)
	mode, err := fields.word("mode name")
	if err != nil {
		return err
	}
	if err := fields.expect(":"); err != nil {
		return err
	}
	kind, err := fields.word("token kind")
	if err != nil {
		return err
	}
	if err := fields.expect("->"); err != nil {
		return err
	}
	opword, err := fields.word("stack operation")
	if err != nil {
		return err
	}
	t := &Transition{Mode: mode.text, Kind: kind.text, Pos: mode.pos}
	switch opword.text {
	case "push":
		target, err := fields.word("target mode")
		if err != nil {
			return err
		}
		t.Op, t.Target = OpPush, target.text
	case "pop":
		t.Op = OpPop
	default:
		return syntaxError(opword.pos, "expected `push` or `pop`, found %q", opword.text)
	}
	if !fields.atEnd() {
		extra, _ := fields.word("")
		return syntaxError(extra.pos, "unexpected trailing input: %q", extra.text)
	}
	for _, prev := range p.g.Transitions {
		if prev.Mode == t.Mode && prev.Kind == t.Kind {
			return syntaxError(t.Pos, "duplicate transition for mode %q, kind %q", t.Mode, t.Kind)
		}
	}
	p.g.Transitions = append(p.g.Transitions, t)
	return nil
}

// --- Field scanning for mode/transition lines --------------------------------

type field struct {
	text string
	pos  Position
}

type fieldScanner struct {
	file  string
	line  int
	runes []rune
	pos   int
}

func newFieldScanner(file string, line int, text string) *fieldScanner {
	return &fieldScanner{file: file, line: line, runes: []rune(text)}
}

func (f *fieldScanner) skipSpaces() {
	for f.pos < len(f.runes) && (f.runes[f.pos] == ' ' || f.runes[f.pos] == '\t') {
		f.pos++
	}
}

func (f *fieldScanner) atEnd() bool {
	f.skipSpaces()
	if f.pos+1 < len(f.runes) && f.runes[f.pos] == '/' && f.runes[f.pos+1] == '/' {
		return true // trailing comment
	}
	return f.pos >= len(f.runes)
}

func (f *fieldScanner) position() Position {
	return Position{f.file, f.line, f.pos + 1}
}

func (f *fieldScanner) word(what string) (field, error) {
	f.skipSpaces()
	start := f.pos
	for f.pos < len(f.runes) && isWordRune(f.runes[f.pos]) {
		f.pos++
	}
	if f.pos == start {
		return field{}, syntaxError(f.position(), "expected %s", what)
	}
	return field{text: string(f.runes[start:f.pos]), pos: Position{f.file, f.line, start + 1}}, nil
}

func (f *fieldScanner) expect(token string) error {
	f.skipSpaces()
	for i, c := range token {
		if f.pos+i >= len(f.runes) || f.runes[f.pos+i] != c {
			return syntaxError(f.position(), "expected %q", token)
		}
	}
	f.pos += len(token)
	return nil
}

// singleCharset reports whether a pattern is a charset matching exactly one
// code point, and returns it.
func singleCharset(p Pattern) (rune, bool) {
	cp, ok := p.(*CharsetPattern)
	if !ok || cp.Set.Size() != 1 {
		return 0, false
	}
	return cp.Set[0].Lo, true
}
