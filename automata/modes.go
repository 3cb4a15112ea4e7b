package automata

import (
	"fmt"
	"io"
	"sync"

	"github.com/npillmayer/lexion"
	"github.com/npillmayer/lexion/automata/sparse"
	"github.com/npillmayer/lexion/grammar"
)

// Config controls compilation. The zero value is usable; Default() enables
// DFA minimization.
type Config struct {
	Minimize bool
}

// Default returns the recommended configuration.
func Default() *Config {
	return &Config{Minimize: true}
}

// Stack operation codes as stored in the mode-transition table.
const (
	TransPush int32 = 1
	TransPop  int32 = 2
)

// Automaton is the compiled pushdown machine for a grammar: one DFA per
// scanner mode, plus a sparse table mapping (mode, token kind) to a
// mode-stack operation. Mode 0 is the root mode. An Automaton is immutable
// after compilation and safe for concurrent use.
type Automaton struct {
	Name      string
	dfas      []*DFA
	modeNames []string
	modeIndex map[string]int
	kindNames []string
	trans     *sparse.PairMatrix
}

// NumModes returns the number of scanner modes.
func (a *Automaton) NumModes() int {
	return len(a.dfas)
}

// ModeDFA returns the DFA for a mode.
func (a *Automaton) ModeDFA(mode int) *DFA {
	return a.dfas[mode]
}

// ModeName returns the name of a mode.
func (a *Automaton) ModeName(mode int) string {
	return a.modeNames[mode]
}

// ModeIndex returns the index of a named mode, or -1.
func (a *Automaton) ModeIndex(name string) int {
	if i, ok := a.modeIndex[name]; ok {
		return i
	}
	return -1
}

// Transition returns the mode-stack operation for a token kind matched in a
// mode. op is TransPush or TransPop, or the table's null value if the kind
// triggers no operation; target is the mode to push.
func (a *Automaton) Transition(mode int, kind lexion.TokenKind) (op, target int32) {
	if kind < 0 || int(kind) >= a.trans.N() {
		return a.trans.NullValue(), a.trans.NullValue()
	}
	return a.trans.Pair(mode, int(kind))
}

// KindName returns the name for a token kind.
func (a *Automaton) KindName(k lexion.TokenKind) string {
	if name := lexion.ReservedKindName(k); name != "" {
		return name
	}
	if int(k) < len(a.kindNames) {
		return a.kindNames[k]
	}
	return "?"
}

// KindStringer returns a stringer for this automaton's token kinds.
func (a *Automaton) KindStringer() lexion.KindStringer {
	return func(k lexion.TokenKind) string { return a.KindName(k) }
}

// Compile turns a grammar into an Automaton. Each mode's rules are compiled
// into an NFA and determinized; determinization of the modes runs
// concurrently, as modes are independent of each other. The mode-transition
// table is assembled and statically checked afterwards, so a compiled
// Automaton cannot get stuck at runtime.
func Compile(g *grammar.Grammar, cfg *Config) (*Automaton, error) {
	if cfg == nil {
		cfg = Default()
	}
	a := &Automaton{
		Name:      g.Name,
		dfas:      make([]*DFA, len(g.Modes)),
		modeNames: make([]string, len(g.Modes)),
		modeIndex: make(map[string]int, len(g.Modes)),
		kindNames: make([]string, len(g.Defs)),
	}
	for _, def := range g.Defs {
		a.kindNames[def.Index] = def.Name
	}
	nfas := make([]*NFA, len(g.Modes))
	for i, mode := range g.Modes {
		a.modeNames[i] = mode.Name
		a.modeIndex[mode.Name] = i
		nfa, err := BuildNFA(g, mode)
		if err != nil {
			return nil, err
		}
		nfas[i] = nfa
	}
	var wg sync.WaitGroup
	for i := range nfas {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dfa := Determinize(nfas[i])
			if cfg.Minimize {
				dfa = Minimize(dfa)
			}
			a.dfas[i] = dfa
		}(i)
	}
	wg.Wait()
	if err := a.assemble(g); err != nil {
		return nil, err
	}
	return a, nil
}

// assemble builds the mode-transition table and checks it: push targets
// must be defined modes, the root mode must not be popped, and every
// non-root mode must be reachable from the root through push transitions.
func (a *Automaton) assemble(g *grammar.Grammar) error {
	a.trans = sparse.NewPairMatrix(len(g.Modes), len(g.Defs), sparse.DefaultNullValue)
	for _, t := range g.Transitions {
		mode, ok := a.modeIndex[t.Mode]
		if !ok {
			return &grammar.UndefinedReferenceError{Pos: t.Pos, What: "mode", Name: t.Mode}
		}
		def := g.Def(t.Kind)
		if def == nil {
			return &grammar.UndefinedReferenceError{Pos: t.Pos, What: "pattern", Name: t.Kind}
		}
		switch t.Op {
		case grammar.OpPush:
			target, ok := a.modeIndex[t.Target]
			if !ok {
				return &grammar.UndefinedReferenceError{Pos: t.Pos, What: "mode", Name: t.Target}
			}
			a.trans.Set(mode, def.Index, TransPush, int32(target))
		case grammar.OpPop:
			if mode == 0 {
				return &grammar.UnreachableModeError{Pos: t.Pos, Mode: t.Mode,
					Msg: "cannot pop from the root mode"}
			}
			a.trans.Set(mode, def.Index, TransPop, a.trans.NullValue())
		}
	}
	return a.checkReachable(g)
}

// checkReachable walks push transitions from the root mode and rejects
// modes that no token sequence can ever enter.
func (a *Automaton) checkReachable(g *grammar.Grammar) error {
	reached := make([]bool, len(g.Modes))
	reached[0] = true
	frontier := []int{0}
	for len(frontier) > 0 {
		mode := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		a.trans.Each(func(i, j int, op, target int32) {
			if i == mode && op == TransPush && !reached[target] {
				reached[target] = true
				frontier = append(frontier, int(target))
			}
		})
	}
	for i, r := range reached {
		if !r {
			mode := g.Modes[i]
			return &grammar.UnreachableModeError{Pos: mode.Pos, Mode: mode.Name,
				Msg: "no transition pushes this mode"}
		}
	}
	return nil
}

// Describe writes a human-readable dump of the automaton: per-mode DFA
// sizes, accepting states, and the mode-transition table.
func (a *Automaton) Describe(w io.Writer) {
	fmt.Fprintf(w, "automaton %q: %d mode(s)\n", a.Name, len(a.dfas))
	for i, dfa := range a.dfas {
		fmt.Fprintf(w, "mode %d %q: %d states\n", i, a.modeNames[i], dfa.NumStates())
		for s := int32(0); s < int32(dfa.NumStates()); s++ {
			if acc, ok := dfa.AcceptOf(s); ok {
				fmt.Fprintf(w, "  state %d accepts %s\n", s, a.KindName(acc.Kind))
			}
		}
	}
	a.trans.Each(func(i, j int, op, target int32) {
		switch op {
		case TransPush:
			fmt.Fprintf(w, "transition %s : %s -> push %s\n",
				a.modeNames[i], a.kindNames[j], a.modeNames[target])
		case TransPop:
			fmt.Fprintf(w, "transition %s : %s -> pop\n", a.modeNames[i], a.kindNames[j])
		}
	})
}
