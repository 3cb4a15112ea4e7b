package automata

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
)

// DFA states by convention: state 0 is the dead state, state 1 the start
// state. The transition table is total over the byte alphabet.
const (
	DeadState  = int32(0)
	StartState = int32(1)
)

// DFA is the deterministic byte-level automaton for one mode. Row i of next
// holds the successor of state i for every byte value.
type DFA struct {
	Mode    string
	next    [][256]int32
	accepts map[int32]Accept
}

// NumStates returns the state count, dead state included.
func (d *DFA) NumStates() int {
	return len(d.next)
}

// Next returns the successor of state s on byte b. Every state has a
// successor; the dead state maps to itself.
func (d *DFA) Next(s int32, b byte) int32 {
	return d.next[s][b]
}

// AcceptOf reports the accept tagged onto state s, if any.
func (d *DFA) AcceptOf(s int32) (Accept, bool) {
	acc, ok := d.accepts[s]
	return acc, ok
}

// Live reports whether state s can still reach an accepting state. The dead
// state is the only non-live state, since determinization creates states
// for reachable NFA node sets only.
func (d *DFA) Live(s int32) bool {
	return s != DeadState
}

// Determinize runs the subset construction over the NFA. Every subset of
// NFA nodes reachable by some byte string becomes one DFA state; the
// remaining byte values of each state lead to the dead state, making the
// transition function total. When a subset contains several accepting
// nodes, the one with the lowest priority wins.
func Determinize(nfa *NFA) *DFA {
	dfa := &DFA{
		Mode:    nfa.Mode,
		next:    make([][256]int32, 2), // dead and start
		accepts: make(map[int32]Accept),
	}
	start := nfa.closure(0)
	states := map[string]int32{subsetKey(start): StartState}
	worklist := arraylist.New()
	worklist.Add(start)
	if acc, ok := nfa.bestAccept(start); ok {
		dfa.accepts[StartState] = acc
	}
	for !worklist.Empty() {
		v, _ := worklist.Get(0)
		worklist.Remove(0)
		subset := v.(*treeset.Set)
		state := states[subsetKey(subset)]
		for b := 0; b < 256; b++ {
			succ := nfa.advance(subset, b)
			if succ == nil {
				continue // row entries default to the dead state
			}
			key := subsetKey(succ)
			target, seen := states[key]
			if !seen {
				target = int32(len(dfa.next))
				dfa.next = append(dfa.next, [256]int32{})
				states[key] = target
				if acc, ok := nfa.bestAccept(succ); ok {
					dfa.accepts[target] = acc
				}
				worklist.Add(succ)
			}
			dfa.next[state][b] = target
		}
	}
	tracer().Debugf("mode %q: DFA has %d states, %d accepting", dfa.Mode,
		len(dfa.next), len(dfa.accepts))
	return dfa
}

// subsetKey produces a canonical hash key for a set of NFA nodes.
func subsetKey(subset *treeset.Set) string {
	nodes := make([]int, 0, subset.Size())
	it := subset.Iterator()
	for it.Next() {
		nodes = append(nodes, it.Value().(int))
	}
	return fmt.Sprintf("%x", structhash.Md5(nodes, 1))
}

// Match runs the DFA over the complete input and returns the accept of the
// final state, if any.
func (d *DFA) Match(input []byte) (Accept, bool) {
	s := StartState
	for _, b := range input {
		s = d.next[s][b]
		if s == DeadState {
			return Accept{}, false
		}
	}
	return d.AcceptOf(s)
}
