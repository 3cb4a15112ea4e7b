/*
Package grammar parses lexical grammar sources into a pattern model.

A grammar source is a line-oriented text with up to four sections, each
introduced by a `#` header: `# license`, `# patterns`, `# modes` and
`# transitions`. The patterns section defines named patterns over a small
regular-expression syntax with bracketed character-set expressions; the
modes section groups patterns into scanning modes; the transitions section
wires token kinds to mode-stack operations (push/pop).

Parsing is a pure function of the source text and fails fast: the first
malformed construct aborts with a positional error (1-based line and
column). The resulting Grammar is immutable input to the automata compiler.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexion.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("lexion.grammar")
}
