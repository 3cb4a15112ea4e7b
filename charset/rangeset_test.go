package charset

import (
	"testing"
	"unicode"
)

func TestNormalize(t *testing.T) {
	s := New(Range{'m', 'z'}, Range{'a', 'f'}, Range{'g', 'k'})
	if len(s) != 2 {
		t.Fatalf("expected adjacent ranges to merge, got %v", s)
	}
	if s[0] != (Range{'a', 'k'}) || s[1] != (Range{'m', 'z'}) {
		t.Errorf("unexpected normalization result: %v", s)
	}
}

func TestContains(t *testing.T) {
	s := New(Range{'a', 'f'}, Range{'0', '9'})
	for _, c := range "abcdef0369" {
		if !s.Contains(c) {
			t.Errorf("expected set to contain %q", c)
		}
	}
	for _, c := range "gz/:" {
		if s.Contains(c) {
			t.Errorf("expected set to not contain %q", c)
		}
	}
}

func TestAlgebra(t *testing.T) {
	letters := New(Range{'a', 'z'})
	vowels := FromRunes('a', 'e', 'i', 'o', 'u')
	cons := letters.Difference(vowels)
	if cons.Contains('e') || !cons.Contains('b') {
		t.Errorf("difference is wrong: %v", cons)
	}
	if !letters.Intersect(vowels).Equal(vowels) {
		t.Errorf("intersection should be the vowels again")
	}
	back := cons.Union(vowels)
	if !back.Equal(letters) {
		t.Errorf("expected difference and union to round-trip, got %v", back)
	}
	sym := letters.SymmetricDifference(vowels)
	if !sym.Equal(cons) {
		t.Errorf("symmetric difference of a subset should equal the difference")
	}
}

func TestSizeAndEmpty(t *testing.T) {
	if !New().IsEmpty() {
		t.Errorf("expected empty set")
	}
	s := New(Range{'a', 'c'}, Range{'x', 'x'})
	if s.Size() != 4 {
		t.Errorf("expected size 4, got %d", s.Size())
	}
	d := s.Difference(s)
	if !d.IsEmpty() || d.String() != "Ø" {
		t.Errorf("expected self-difference to be empty, got %v", d)
	}
}

func TestFromTable(t *testing.T) {
	s := FromTable(unicode.Nd) // decimal digits, includes strided ranges
	if !s.Contains('7') || !s.Contains('٣') { // ARABIC-INDIC DIGIT THREE
		t.Errorf("expected digit table to contain decimal digits")
	}
	if s.Contains('x') {
		t.Errorf("expected digit table to not contain letters")
	}
}
