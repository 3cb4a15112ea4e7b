/*
Package lexion is a lexical-grammar compiler.

Lexion turns a declarative set of pattern, mode, and transition definitions
into a deterministic automaton which drives a streaming tokenizer over raw
byte input. The tokenizer never fails: unrecognized input is reported as
distinguished token kinds and the cursor always makes forward progress, so
generated lexers are safe to embed in IDE tooling, incremental editors and
recovering parsers. Package structure is as follows:

■ grammar: Package grammar parses lexical grammar sources into a pattern
model: named pattern definitions, modes, and mode transitions.

■ charset: Package charset implements canonical codepoint range sets and
their set algebra, used to resolve character classes.

■ automata: Package automata compiles the pattern model into per-mode NFAs,
determinizes them over the byte alphabet, and assembles the per-mode DFAs
plus the mode transitions into a single pushdown automaton description.

■ scan: Package scan executes compiled automata, producing a lazy token
stream under the maximal-munch policy.

The base package contains the small data types shared by all the other
packages: token kinds, tokens, and spans.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexion
