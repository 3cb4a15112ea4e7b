/*
Package automata compiles a pattern model into executable lexer tables.

Compilation proceeds in three stages, one NFA/DFA pair per mode:

▪ NFA construction: every pattern is compiled into a nondeterministic
fragment by structural recursion (Thompson-style), with codepoint ranges
expanded into UTF-8 byte-transition chains. The fragments of all rules
active in a mode are unioned under a single start node, and each accepting
node is tagged with the rule's declaration priority and token kind.

▪ Determinization: subset construction over the byte alphabet 0–255 turns
the per-mode NFA into a total DFA. State 0 is the explicit dead state,
state 1 the start state; every state has a transition for every byte. When
a DFA state covers several accepting NFA nodes, the tie is broken at
compile time in favor of the earliest declared rule. An optional
minimization pass merges equivalent states without changing observable
token-matching behavior.

▪ Assembly: the per-mode DFAs and the grammar's mode transitions are
combined into a single immutable Automaton, a pushdown automaton
description which any number of concurrently running tokenizers may share.

Terminology note: positions in the nondeterministic graph are "nodes",
positions of the determinized automaton are "states". A DFA state
corresponds to a set of NFA nodes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package automata

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexion.automata'.
func tracer() tracing.Trace {
	return tracing.Select("lexion.automata")
}
