package automata

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/npillmayer/lexion"
	"github.com/npillmayer/lexion/grammar"
)

// epsilon is a reserved symbol value for nondeterministic jumps between NFA
// nodes; it is not part of the byte alphabet.
const epsilon = -1

// Accept tags an accepting node with the matched rule's identity. Priority
// is the rule's declaration index; lower wins ties.
type Accept struct {
	Priority int
	Kind     lexion.TokenKind
}

type nodeSet map[int]struct{}

// NFA is the nondeterministic finite automaton for one mode. Node 0 is the
// start node. Transitions map a source node and a symbol (byte value or
// epsilon) to a set of destination nodes.
type NFA struct {
	Mode        string
	transitions map[int]map[int]nodeSet
	accepts     map[int]Accept
	nodes       int
}

func newNFA(mode string) *NFA {
	return &NFA{
		Mode:        mode,
		transitions: make(map[int]map[int]nodeSet),
		accepts:     make(map[int]Accept),
		nodes:       1, // node 0 is the start
	}
}

// NumNodes returns the node count (for stats and tests).
func (n *NFA) NumNodes() int {
	return n.nodes
}

func (n *NFA) mkNode() int {
	id := n.nodes
	n.nodes++
	return id
}

func (n *NFA) addEdge(src, sym, dst int) {
	d, ok := n.transitions[src]
	if !ok {
		d = make(map[int]nodeSet)
		n.transitions[src] = d
	}
	s, ok := d[sym]
	if !ok {
		s = make(nodeSet)
		d[sym] = s
	}
	s[dst] = struct{}{}
}

func (n *NFA) addEpsilon(src, dst int) {
	n.addEdge(src, epsilon, dst)
}

// --- Construction ------------------------------------------------------------

// BuildNFA compiles all rules active in a mode into a single NFA. The
// fragment for each rule hangs off the shared start node via an epsilon
// transition, and each fragment's accepting node carries the rule's
// priority and token kind. A rule whose pattern matches the empty string is
// rejected, since it would break the tokenizer's forward-progress
// guarantee.
func BuildNFA(g *grammar.Grammar, mode *grammar.Mode) (*NFA, error) {
	nfa := newNFA(mode.Name)
	for _, def := range mode.Rules {
		head := nfa.mkNode()
		end := nfa.mkNode()
		nfa.addEpsilon(0, head)
		if err := nfa.compile(g, def.Pattern, head, end); err != nil {
			return nil, err
		}
		nfa.accepts[end] = Accept{Priority: def.Index, Kind: def.Kind()}
	}
	start := nfa.closure(0)
	it := start.Iterator()
	for it.Next() {
		if acc, ok := nfa.accepts[it.Value().(int)]; ok {
			def := mode.Rules[0]
			for _, d := range mode.Rules {
				if d.Index == acc.Priority {
					def = d
				}
			}
			return nil, &grammar.SyntaxError{Pos: def.Pos,
				Msg: fmt.Sprintf("pattern %q matches the empty string", def.Name)}
		}
	}
	tracer().Debugf("mode %q: NFA has %d nodes", mode.Name, nfa.nodes)
	return nfa, nil
}

// compile adds the fragment for one pattern between the given start and end
// nodes.
func (n *NFA) compile(g *grammar.Grammar, p grammar.Pattern, start, end int) error {
	switch pat := p.(type) {
	case *grammar.CharsetPattern:
		for _, r := range pat.Set {
			n.addRunes(r.Lo, r.Hi, start, end)
		}
	case *grammar.SeqPattern:
		src := start
		for i, sub := range pat.Subs {
			dst := end
			if i < len(pat.Subs)-1 {
				dst = n.mkNode()
			}
			if err := n.compile(g, sub, src, dst); err != nil {
				return err
			}
			src = dst
		}
	case *grammar.ChoicePattern:
		for _, sub := range pat.Subs {
			if err := n.compile(g, sub, start, end); err != nil {
				return err
			}
		}
	case *grammar.OptPattern:
		n.addEpsilon(start, end)
		return n.compile(g, pat.Sub, start, end)
	case *grammar.StarPattern:
		branch := n.mkNode()
		n.addEpsilon(start, branch)
		n.addEpsilon(branch, end)
		return n.compile(g, pat.Sub, branch, branch)
	case *grammar.PlusPattern:
		pre := n.mkNode()
		post := n.mkNode()
		n.addEpsilon(start, pre)
		n.addEpsilon(post, end)
		n.addEpsilon(post, pre)
		return n.compile(g, pat.Sub, pre, post)
	case *grammar.RefPattern:
		def := g.Def(pat.Name)
		if def == nil {
			return &grammar.UndefinedReferenceError{Pos: pat.Pos, What: "pattern", Name: pat.Name}
		}
		return n.compile(g, def.Pattern, start, end) // acyclic by the resolver's cycle check
	default:
		return fmt.Errorf("mode %q: unresolved pattern of type %T", n.Mode, p)
	}
	return nil
}

// --- Simulation ----------------------------------------------------------------

// closure returns the epsilon-closure over the given nodes as a sorted set.
func (n *NFA) closure(nodes ...int) *treeset.Set {
	expanded := treeset.NewWith(utils.IntComparator)
	remaining := append([]int{}, nodes...)
	for len(remaining) > 0 {
		node := remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
		if expanded.Contains(node) {
			continue
		}
		expanded.Add(node)
		for dst := range n.transitions[node][epsilon] {
			remaining = append(remaining, dst)
		}
	}
	return expanded
}

// advance computes the epsilon-closed successor state for one byte, or nil
// if no transition exists.
func (n *NFA) advance(state *treeset.Set, b int) *treeset.Set {
	var reach []int
	it := state.Iterator()
	for it.Next() {
		node := it.Value().(int)
		for dst := range n.transitions[node][b] {
			reach = append(reach, dst)
		}
	}
	if len(reach) == 0 {
		return nil
	}
	return n.closure(reach...)
}

// Match simulates the NFA over the complete input and returns the
// tie-broken accept, if any. It exists to cross-check the determinizer.
func (n *NFA) Match(input []byte) (Accept, bool) {
	state := n.closure(0)
	for _, b := range input {
		state = n.advance(state, int(b))
		if state == nil {
			return Accept{}, false
		}
	}
	return n.bestAccept(state)
}

// bestAccept returns the lowest-priority accept among the state's nodes.
func (n *NFA) bestAccept(state *treeset.Set) (Accept, bool) {
	best, found := Accept{}, false
	it := state.Iterator()
	for it.Next() {
		if acc, ok := n.accepts[it.Value().(int)]; ok {
			if !found || acc.Priority < best.Priority {
				best, found = acc, true
			}
		}
	}
	return best, found
}
