package lexion

import "testing"

func TestSpan(t *testing.T) {
	s := Span{3, 7}
	if s.From() != 3 || s.To() != 7 || s.Len() != 4 {
		t.Errorf("span accessors are wrong for %v", s)
	}
	if s.String() != "(3…7)" {
		t.Errorf("unexpected span formatting: %s", s)
	}
}

func TestReservedKinds(t *testing.T) {
	if ReservedKindName(KindIncomplete) != "incomplete" {
		t.Errorf("reserved kinds should have stable names")
	}
	if ReservedKindName(TokenKind(0)) != "" {
		t.Errorf("grammar kinds have no reserved name")
	}
	tok := Token{Kind: KindInvalid, Span: Span{0, 1}}
	if tok.String() != "invalid (0…1)" {
		t.Errorf("unexpected token formatting: %s", tok)
	}
}
