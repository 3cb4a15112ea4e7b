package grammar

import (
	"github.com/npillmayer/lexion/charset"
)

// resolve finishes a freshly parsed grammar: character-class references and
// set-algebra expressions are folded into canonical charsets, pattern
// references are checked and cycle-tested, and a default root mode is
// supplied if the grammar declares none. Pattern references to other
// definitions survive resolution; the automata compiler inlines them, which
// the cycle check makes safe.
func (g *Grammar) resolve() error {
	if err := g.checkCycles(); err != nil {
		return err
	}
	for _, def := range g.Defs {
		resolved, err := g.resolvePattern(def.Pattern)
		if err != nil {
			return err
		}
		def.Pattern = resolved
	}
	if len(g.Modes) == 0 {
		root := &Mode{Name: "main", Rules: g.Defs}
		g.Modes = append(g.Modes, root)
		g.modesByName[root.Name] = root
	}
	return nil
}

func (g *Grammar) resolvePattern(p Pattern) (Pattern, error) {
	switch pat := p.(type) {
	case *CharsetPattern:
		if pat.Set.IsEmpty() {
			tracer().Infof("grammar %q: pattern contains an empty character set", g.Name)
		}
		return pat, nil
	case *SeqPattern:
		return g.resolveSubs(pat.Subs, func(subs []Pattern) Pattern { return &SeqPattern{Subs: subs} })
	case *ChoicePattern:
		return g.resolveSubs(pat.Subs, func(subs []Pattern) Pattern { return &ChoicePattern{Subs: subs} })
	case *StarPattern:
		sub, err := g.resolvePattern(pat.Sub)
		if err != nil {
			return nil, err
		}
		return &StarPattern{Sub: sub}, nil
	case *PlusPattern:
		sub, err := g.resolvePattern(pat.Sub)
		if err != nil {
			return nil, err
		}
		return &PlusPattern{Sub: sub}, nil
	case *OptPattern:
		sub, err := g.resolvePattern(pat.Sub)
		if err != nil {
			return nil, err
		}
		return &OptPattern{Sub: sub}, nil
	case *RefPattern:
		if _, ok := g.defsByName[pat.Name]; ok {
			return pat, nil // inlined by the compiler
		}
		if set, ok := ClassRanges(pat.Name); ok {
			return &CharsetPattern{Set: set}, nil
		}
		return nil, &UndefinedReferenceError{Pos: pat.Pos, What: "pattern or charset", Name: pat.Name}
	case *SetOpPattern:
		set, err := g.evalSet(p)
		if err != nil {
			return nil, err
		}
		if set.IsEmpty() {
			tracer().Infof("grammar %q: character-set expression is empty", g.Name)
		}
		return &CharsetPattern{Set: set}, nil
	}
	return p, nil
}

func (g *Grammar) resolveSubs(subs []Pattern, rebuild func([]Pattern) Pattern) (Pattern, error) {
	out := make([]Pattern, len(subs))
	for i, sub := range subs {
		resolved, err := g.resolvePattern(sub)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return rebuild(out), nil
}

// evalSet evaluates a set-algebra expression to a canonical range set.
// Operands may be charsets, class references, or references to definitions
// whose pattern is itself a plain charset.
func (g *Grammar) evalSet(p Pattern) (charset.RangeSet, error) {
	switch pat := p.(type) {
	case *CharsetPattern:
		return pat.Set, nil
	case *SetOpPattern:
		l, err := g.evalSet(pat.Left)
		if err != nil {
			return nil, err
		}
		r, err := g.evalSet(pat.Right)
		if err != nil {
			return nil, err
		}
		return applySetOp(pat.Op, l, r), nil
	case *RefPattern:
		if set, ok := ClassRanges(pat.Name); ok {
			return set, nil
		}
		if def, ok := g.defsByName[pat.Name]; ok {
			resolved, err := g.resolvePattern(def.Pattern)
			if err != nil {
				return nil, err
			}
			if cp, ok := resolved.(*CharsetPattern); ok {
				return cp.Set, nil
			}
			return nil, syntaxError(pat.Pos, "pattern %q is not a character set", pat.Name)
		}
		return nil, &UndefinedReferenceError{Pos: pat.Pos, What: "charset", Name: pat.Name}
	}
	return nil, syntaxError(Position{File: g.Name}, "operand is not a character set")
}

// --- Cycle detection ----------------------------------------------------------

// checkCycles fails fast on reference cycles between pattern definitions.
// The dependency graph is walked depth-first with the usual three colors.
func (g *Grammar) checkCycles() error {
	const (
		white = iota // unvisited
		grey         // on the current path
		black        // done
	)
	color := make(map[string]int, len(g.Defs))
	var path []string

	var visit func(def *PatternDef) error
	visit = func(def *PatternDef) error {
		color[def.Name] = grey
		path = append(path, def.Name)
		for _, ref := range collectRefs(def.Pattern, nil) {
			dep, ok := g.defsByName[ref.Name]
			if !ok {
				continue // a class reference or an undefined name; resolved later
			}
			switch color[dep.Name] {
			case grey:
				cycle := append(cycleSuffix(path, dep.Name), dep.Name)
				return &CyclicReferenceError{Pos: ref.Pos, Cycle: cycle}
			case white:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		path = path[:len(path)-1]
		color[def.Name] = black
		return nil
	}
	for _, def := range g.Defs {
		if color[def.Name] == white {
			if err := visit(def); err != nil {
				return err
			}
		}
	}
	return nil
}

func cycleSuffix(path []string, name string) []string {
	for i, n := range path {
		if n == name {
			return append([]string{}, path[i:]...)
		}
	}
	return append([]string{}, path...)
}

func collectRefs(p Pattern, refs []*RefPattern) []*RefPattern {
	switch pat := p.(type) {
	case *RefPattern:
		refs = append(refs, pat)
	case *SeqPattern:
		for _, sub := range pat.Subs {
			refs = collectRefs(sub, refs)
		}
	case *ChoicePattern:
		for _, sub := range pat.Subs {
			refs = collectRefs(sub, refs)
		}
	case *StarPattern:
		refs = collectRefs(pat.Sub, refs)
	case *PlusPattern:
		refs = collectRefs(pat.Sub, refs)
	case *OptPattern:
		refs = collectRefs(pat.Sub, refs)
	case *SetOpPattern:
		refs = collectRefs(pat.Left, refs)
		refs = collectRefs(pat.Right, refs)
	}
	return refs
}
