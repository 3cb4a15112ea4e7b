package charset

import (
	"fmt"
	"strings"
	"unicode"
)

// Range is an inclusive range of Unicode code points.
type Range struct {
	Lo, Hi rune
}

func (r Range) String() string {
	if r.Lo == r.Hi {
		return fmt.Sprintf("%#02x", r.Lo)
	}
	return fmt.Sprintf("%#02x-%#02x", r.Lo, r.Hi)
}

// RangeSet is a canonical set of code points: a sorted list of inclusive,
// non-overlapping, non-adjacent ranges. The zero value is the empty set.
// All operations are non-destructive and return normalized sets.
type RangeSet []Range

// New creates a normalized RangeSet from arbitrary ranges. Ranges with
// Hi < Lo are dropped.
func New(ranges ...Range) RangeSet {
	rs := make(RangeSet, 0, len(ranges))
	for _, r := range ranges {
		if r.Hi < r.Lo {
			continue
		}
		rs = append(rs, r)
	}
	return rs.normalize()
}

// Single returns the set containing exactly one code point.
func Single(c rune) RangeSet {
	return RangeSet{{Lo: c, Hi: c}}
}

// FromRunes returns the set containing the given code points.
func FromRunes(runes ...rune) RangeSet {
	rs := make(RangeSet, 0, len(runes))
	for _, c := range runes {
		rs = append(rs, Range{Lo: c, Hi: c})
	}
	return rs.normalize()
}

// FromTable converts a unicode.RangeTable into a RangeSet. Strided table
// entries are expanded.
func FromTable(t *unicode.RangeTable) RangeSet {
	var rs RangeSet
	for _, r := range t.R16 {
		rs = appendStrided(rs, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range t.R32 {
		rs = appendStrided(rs, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	return rs.normalize()
}

func appendStrided(rs RangeSet, lo, hi, stride rune) RangeSet {
	if stride == 1 {
		return append(rs, Range{Lo: lo, Hi: hi})
	}
	for c := lo; c <= hi; c += stride {
		rs = append(rs, Range{Lo: c, Hi: c})
	}
	return rs
}

// normalize sorts the ranges and merges overlapping or adjacent ones,
// producing the canonical minimal representation.
func (s RangeSet) normalize() RangeSet {
	if len(s) < 2 {
		return s
	}
	sortRanges(s)
	out := s[:1]
	for _, r := range s[1:] {
		last := &out[len(out)-1]
		if r.Lo <= last.Hi+1 { // overlapping or adjacent
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
		} else {
			out = append(out, r)
		}
	}
	return out
}

func sortRanges(s RangeSet) {
	// insertion sort; class tables arrive nearly sorted.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j].Lo < s[j-1].Lo; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// IsEmpty reports whether the set contains no code points.
func (s RangeSet) IsEmpty() bool {
	return len(s) == 0
}

// Size returns the number of code points in the set.
func (s RangeSet) Size() int {
	n := 0
	for _, r := range s {
		n += int(r.Hi-r.Lo) + 1
	}
	return n
}

// Contains reports whether the set contains code point c.
func (s RangeSet) Contains(c rune) bool {
	lo, hi := 0, len(s)
	for lo < hi {
		m := (lo + hi) / 2
		if c < s[m].Lo {
			hi = m
		} else if c > s[m].Hi {
			lo = m + 1
		} else {
			return true
		}
	}
	return false
}

// Equal reports whether both sets contain exactly the same code points.
// Both operands must be canonical, which all constructors guarantee.
func (s RangeSet) Equal(t RangeSet) bool {
	if len(s) != len(t) {
		return false
	}
	for i, r := range s {
		if r != t[i] {
			return false
		}
	}
	return true
}

// Union returns the merge of both sets.
func (s RangeSet) Union(t RangeSet) RangeSet {
	out := make(RangeSet, 0, len(s)+len(t))
	out = append(out, s...)
	out = append(out, t...)
	return out.normalize()
}

// Intersect returns the set of code points contained in both sets.
func (s RangeSet) Intersect(t RangeSet) RangeSet {
	var out RangeSet
	i, j := 0, 0
	for i < len(s) && j < len(t) {
		a, b := s[i], t[j]
		lo, hi := maxRune(a.Lo, b.Lo), minRune(a.Hi, b.Hi)
		if lo <= hi {
			out = append(out, Range{Lo: lo, Hi: hi})
		}
		if a.Hi < b.Hi {
			i++
		} else {
			j++
		}
	}
	return out // sweep output is already canonical
}

// Difference returns the set of code points contained in s but not in t.
func (s RangeSet) Difference(t RangeSet) RangeSet {
	var out RangeSet
	j := 0
	for _, a := range s {
		lo := a.Lo
		for j < len(t) && t[j].Hi < lo {
			j++
		}
		k := j
		for k < len(t) && t[k].Lo <= a.Hi {
			b := t[k]
			if b.Lo > lo {
				out = append(out, Range{Lo: lo, Hi: b.Lo - 1})
			}
			if b.Hi+1 > lo {
				lo = b.Hi + 1
			}
			if lo > a.Hi {
				break
			}
			k++
		}
		if lo <= a.Hi {
			out = append(out, Range{Lo: lo, Hi: a.Hi})
		}
	}
	return out.normalize()
}

// SymmetricDifference returns the set of code points contained in exactly
// one of the two sets.
func (s RangeSet) SymmetricDifference(t RangeSet) RangeSet {
	return s.Difference(t).Union(t.Difference(s))
}

func (s RangeSet) String() string {
	if len(s) == 0 {
		return "Ø"
	}
	var sb strings.Builder
	for i, r := range s {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(r.String())
	}
	return sb.String()
}

func minRune(a, b rune) rune {
	if a < b {
		return a
	}
	return b
}

func maxRune(a, b rune) rune {
	if a > b {
		return a
	}
	return b
}
