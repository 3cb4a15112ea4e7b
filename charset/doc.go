/*
Package charset implements canonical sets of Unicode code points.

A RangeSet is a sorted list of inclusive, non-overlapping, non-adjacent
codepoint ranges. The package provides the usual set algebra (union,
intersection, difference, symmetric difference) as sweeps over the ordered
range lists, always producing normalized results with a minimal range count.

RangeSets are the currency between the grammar's character-class syntax and
the automata compiler, which splits them along UTF-8 length boundaries into
byte transitions.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package charset
