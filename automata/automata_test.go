package automata

import (
	"bytes"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/lexion"
	"github.com/npillmayer/lexion/grammar"
)

const tinyGrammar = `
# patterns
kwif  : if
ident : [a-zA-Z_] [a-zA-Z0-9_]*
num   : [0-9]+
ws    : [\s\t\n]+
`

func compileGrammar(t *testing.T, src string, cfg *Config) (*grammar.Grammar, *Automaton) {
	t.Helper()
	g, err := grammar.Parse(t.Name(), src)
	if err != nil {
		t.Fatal(err)
	}
	a, err := Compile(g, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return g, a
}

func TestDFAMatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.automata")
	defer teardown()
	//
	g, a := compileGrammar(t, tinyGrammar, nil)
	dfa := a.ModeDFA(0)
	samples := []struct {
		input string
		kind  string
	}{
		{"if", "kwif"},
		{"ifx", "ident"},
		{"x", "ident"},
		{"kitty42", "ident"},
		{"42", "num"},
		{" \t", "ws"},
	}
	for _, s := range samples {
		acc, ok := dfa.Match([]byte(s.input))
		if !ok {
			t.Errorf("%q should match", s.input)
			continue
		}
		if name := g.KindName(acc.Kind); name != s.kind {
			t.Errorf("%q should match as %s, matched as %s", s.input, s.kind, name)
		}
	}
	for _, input := range []string{"", "9x", "+", "if "} {
		if _, ok := dfa.Match([]byte(input)); ok {
			t.Errorf("%q should not match", input)
		}
	}
}

func TestPriorityTieBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.automata")
	defer teardown()
	//
	// kwif and ident both match "if"; the earlier declaration wins
	_, a := compileGrammar(t, tinyGrammar, nil)
	acc, ok := a.ModeDFA(0).Match([]byte("if"))
	if !ok || acc.Kind != lexion.TokenKind(0) {
		t.Errorf("expected the earliest declared pattern to win, got %v", acc)
	}
}

func TestNFAAndDFAAgree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.automata")
	defer teardown()
	//
	g, err := grammar.Parse(t.Name(), tinyGrammar)
	if err != nil {
		t.Fatal(err)
	}
	nfa, err := BuildNFA(g, g.Root())
	if err != nil {
		t.Fatal(err)
	}
	dfa := Determinize(nfa)
	min := Minimize(dfa)
	inputs := []string{"if", "iff", "ifx", "_", "x1y2", "007", "9", "", " ",
		"if x", "café", "\xff", "\xc3", "i\xc3\xa9"}
	for _, input := range inputs {
		na, nok := nfa.Match([]byte(input))
		da, dok := dfa.Match([]byte(input))
		ma, mok := min.Match([]byte(input))
		if nok != dok || (nok && na != da) {
			t.Errorf("NFA and DFA disagree on %q: (%v,%v) vs (%v,%v)", input, na, nok, da, dok)
		}
		if dok != mok || (dok && da != ma) {
			t.Errorf("minimization changed %q: (%v,%v) vs (%v,%v)", input, da, dok, ma, mok)
		}
	}
	if min.NumStates() > dfa.NumStates() {
		t.Errorf("minimization grew the DFA from %d to %d states", dfa.NumStates(), min.NumStates())
	}
}

func TestDFAIsTotal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.automata")
	defer teardown()
	//
	_, a := compileGrammar(t, tinyGrammar, Default())
	dfa := a.ModeDFA(0)
	for s := int32(0); s < int32(dfa.NumStates()); s++ {
		for b := 0; b < 256; b++ {
			succ := dfa.Next(s, byte(b))
			if succ < 0 || int(succ) >= dfa.NumStates() {
				t.Fatalf("state %d, byte 0x%02x: successor %d out of range", s, b, succ)
			}
		}
	}
	for b := 0; b < 256; b++ {
		if dfa.Next(DeadState, byte(b)) != DeadState {
			t.Fatalf("the dead state must be a sink")
		}
	}
}

func TestEmptyMatchRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.automata")
	defer teardown()
	//
	g, err := grammar.Parse(t.Name(), "anychars : [a-z]*\n")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Compile(g, nil); err == nil {
		t.Error("a pattern matching the empty string must be rejected")
	}
}

const modedGrammar = `
# patterns
text   : [a-z]+
dquote : "
chars  : [$Any - "]+

# modes
main   : text dquote
string : chars dquote

# transitions
main   : dquote -> push string
string : dquote -> pop
`

func TestModeAssembly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.automata")
	defer teardown()
	//
	g, a := compileGrammar(t, modedGrammar, nil)
	if a.NumModes() != 2 {
		t.Fatalf("expected 2 modes, got %d", a.NumModes())
	}
	op, target := a.Transition(0, g.Def("dquote").Kind())
	if op != TransPush || a.ModeName(int(target)) != "string" {
		t.Errorf("dquote in main should push the string mode")
	}
	op, _ = a.Transition(a.ModeIndex("string"), g.Def("dquote").Kind())
	if op != TransPop {
		t.Errorf("dquote in string mode should pop")
	}
	if op, _ := a.Transition(0, g.Def("text").Kind()); op == TransPush || op == TransPop {
		t.Errorf("text should not trigger a stack operation")
	}
}

func TestPopFromRootRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.automata")
	defer teardown()
	//
	g, err := grammar.Parse(t.Name(), `
# patterns
x : x
# transitions
main : x -> pop
`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Compile(g, nil)
	if _, ok := err.(*grammar.UnreachableModeError); !ok {
		t.Errorf("expected an UnreachableModeError, got %v", err)
	}
}

func TestUnreachableModeRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.automata")
	defer teardown()
	//
	g, err := grammar.Parse(t.Name(), `
# patterns
x : x
y : y
# modes
main   : x
island : y
`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Compile(g, nil)
	uerr, ok := err.(*grammar.UnreachableModeError)
	if !ok {
		t.Fatalf("expected an UnreachableModeError, got %v", err)
	}
	if uerr.Mode != "island" {
		t.Errorf("error should name the unreachable mode, names %q", uerr.Mode)
	}
}

func TestUndefinedPushTargetRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.automata")
	defer teardown()
	//
	g, err := grammar.Parse(t.Name(), `
# patterns
x : x
# transitions
main : x -> push nowhere
`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Compile(g, nil)
	if _, ok := err.(*grammar.UndefinedReferenceError); !ok {
		t.Errorf("expected an UndefinedReferenceError, got %v", err)
	}
}

func TestTablesRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.automata")
	defer teardown()
	//
	_, a := compileGrammar(t, modedGrammar, Default())
	data, err := a.Export().MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	var tables Tables
	if err := tables.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	b, err := FromTables(&tables)
	if err != nil {
		t.Fatal(err)
	}
	if b.NumModes() != a.NumModes() {
		t.Fatalf("mode count changed across serialization")
	}
	for _, input := range []string{"abc", "\"", "xyz\""} {
		accA, okA := a.ModeDFA(0).Match([]byte(input))
		accB, okB := b.ModeDFA(0).Match([]byte(input))
		if okA != okB || (okA && accA.Kind != accB.Kind) {
			t.Errorf("reloaded automaton disagrees on %q", input)
		}
	}
	op, target := b.Transition(0, lexion.TokenKind(1)) // dquote
	if op != TransPush || target != int32(b.ModeIndex("string")) {
		t.Errorf("mode transitions should survive serialization")
	}
}

func TestDescribe(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexion.automata")
	defer teardown()
	//
	_, a := compileGrammar(t, modedGrammar, nil)
	var buf bytes.Buffer
	a.Describe(&buf)
	dump := buf.String()
	for _, want := range []string{"mode 0 \"main\"", "push string", "pop"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("dump should mention %q:\n%s", want, dump)
		}
	}
}
