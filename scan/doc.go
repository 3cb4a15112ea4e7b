/*
Package scan runs compiled lexical automata over input bytes.

A Tokenizer drives one mode DFA at a time and maintains the mode stack of
its automaton. It never fails: byte sequences no pattern matches come back
as tokens of kind Invalid, and a pattern cut short by the end of input
comes back as Incomplete. Token spans tile the input without gaps, so a
client can always reconstruct the exact source bytes of a token.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scan

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexion.scan'.
func tracer() tracing.Trace {
	return tracing.Select("lexion.scan")
}
