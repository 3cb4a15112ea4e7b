package grammar

import (
	"sort"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	"github.com/npillmayer/lexion/charset"
)

// Named character classes referenced from patterns as `$Name`. The tables
// cover the Unicode general categories plus a handful of convenience
// classes. All tables are precomputed codepoint-range sets.

var (
	classOnce sync.Once
	classes   map[string]charset.RangeSet
)

func classTables() map[string]charset.RangeSet {
	classOnce.Do(func() {
		classes = make(map[string]charset.RangeSet, len(unicode.Categories)+16)
		for name, table := range unicode.Categories {
			classes[name] = charset.FromTable(table)
		}
		underscore := rangetable.New('_')
		word := rangetable.Merge(unicode.L, unicode.Nd, underscore)

		classes["Any"] = charset.New(
			charset.Range{Lo: 0, Hi: 0xD7FF},
			charset.Range{Lo: 0xE000, Hi: 0x10FFFF},
		)
		classes["Space"] = charset.FromTable(unicode.White_Space)
		classes["Word"] = charset.FromTable(word)
		classes["Ascii"] = charset.New(charset.Range{Lo: 0x00, Hi: 0x7F})
		classes["Ascii_Printable"] = charset.New(charset.Range{Lo: 0x20, Hi: 0x7E})
		classes["Ascii_Upper"] = charset.New(charset.Range{Lo: 'A', Hi: 'Z'})
		classes["Ascii_Lower"] = charset.New(charset.Range{Lo: 'a', Hi: 'z'})
		classes["Ascii_Letter"] = charset.New(
			charset.Range{Lo: 'A', Hi: 'Z'},
			charset.Range{Lo: 'a', Hi: 'z'},
		)
		classes["Digit"] = charset.New(charset.Range{Lo: '0', Hi: '9'})
		classes["Hex_Digit"] = charset.New(
			charset.Range{Lo: '0', Hi: '9'},
			charset.Range{Lo: 'A', Hi: 'F'},
			charset.Range{Lo: 'a', Hi: 'f'},
		)
	})
	return classes
}

// ClassRanges returns the codepoint ranges of a named character class.
func ClassRanges(name string) (charset.RangeSet, bool) {
	rs, ok := classTables()[name]
	return rs, ok
}

// ClassNames returns all defined class names, sorted.
func ClassNames() []string {
	tables := classTables()
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
