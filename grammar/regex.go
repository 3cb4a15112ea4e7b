package grammar

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lexion/charset"
)

// Regex renders a resolved pattern as a regular expression for backtracking
// engines, e.g. for exporting editor syntax definitions. Pattern references
// are inlined; ordering caveats of backtracking engines are the exporter's
// concern, not ours.
func (g *Grammar) Regex(p Pattern) string {
	switch pat := p.(type) {
	case *CharsetPattern:
		return regexForRanges(pat.Set)
	case *SeqPattern:
		var sb strings.Builder
		for _, sub := range pat.Subs {
			sb.WriteString(g.regexSub(sub, PrecSeq))
		}
		return sb.String()
	case *ChoicePattern:
		parts := make([]string, len(pat.Subs))
		for i, sub := range pat.Subs {
			parts[i] = g.regexSub(sub, PrecChoice)
		}
		return strings.Join(parts, "|")
	case *StarPattern:
		return g.regexSub(pat.Sub, PrecQuantity) + "*"
	case *PlusPattern:
		return g.regexSub(pat.Sub, PrecQuantity) + "+"
	case *OptPattern:
		return g.regexSub(pat.Sub, PrecQuantity) + "?"
	case *RefPattern:
		if def, ok := g.defsByName[pat.Name]; ok {
			return g.regexSub(def.Pattern, PrecAtom-1)
		}
	}
	return ""
}

func (g *Grammar) regexSub(p Pattern, prec int) string {
	s := g.Regex(p)
	if prec < p.Precedence() {
		return s
	}
	return "(?:" + s + ")"
}

func regexForRanges(set charset.RangeSet) string {
	if len(set) == 1 && set[0].Lo == set[0].Hi {
		return regexForCode(set[0].Lo)
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for _, r := range set {
		sb.WriteString(regexForCode(r.Lo))
		if r.Hi > r.Lo {
			if r.Hi > r.Lo+1 {
				sb.WriteByte('-')
			}
			sb.WriteString(regexForCode(r.Hi))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func regexForCode(code rune) string {
	switch {
	case code >= '0' && code <= '9', code >= 'A' && code <= 'Z',
		code >= 'a' && code <= 'z', code == '_':
		return string(code)
	case code == '\n':
		return `\n`
	case code == '\t':
		return `\t`
	case code >= 0x20 && code < 0x7F:
		return `\` + string(code)
	case code < 0x100:
		return fmt.Sprintf(`\x%02x`, code)
	case code < 0x10000:
		return fmt.Sprintf(`\u%04x`, code)
	}
	return fmt.Sprintf(`\U%08x`, code)
}
