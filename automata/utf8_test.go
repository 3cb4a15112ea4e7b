package automata

import (
	"testing"
	"unicode/utf8"
)

// seqsMatch reports whether one of the byte-range sequences matches the
// complete byte string.
func seqsMatch(seqs [][]byteRange, bs []byte) bool {
outer:
	for _, seq := range seqs {
		if len(seq) != len(bs) {
			continue
		}
		for i, br := range seq {
			if bs[i] < br.lo || bs[i] > br.hi {
				continue outer
			}
		}
		return true
	}
	return false
}

func TestSplitAtOneByteBoundary(t *testing.T) {
	seqs := utf8Sequences(0x7F, 0x81)
	t.Logf("0x7F..0x81 splits into %d sequence(s): %v", len(seqs), seqs)
	if len(seqs) != 2 {
		t.Fatalf("expected 2 sequences for a range crossing the 1-byte boundary")
	}
	if len(seqs[0]) != 1 || len(seqs[1]) != 2 {
		t.Errorf("expected a 1-byte and a 2-byte sequence, got %v", seqs)
	}
	for r := rune(0x7F); r <= 0x81; r++ {
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], r)
		if !seqsMatch(seqs, buf[:n]) {
			t.Errorf("encoding of %U should match", r)
		}
	}
	for _, r := range []rune{0x7E, 0x82, 0x800} {
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], r)
		if seqsMatch(seqs, buf[:n]) {
			t.Errorf("encoding of %U should not match", r)
		}
	}
}

func TestSplitExcludesSurrogates(t *testing.T) {
	seqs := utf8Sequences(0x800, 0xFFFF)
	// 0xED 0xA0 0x80 would encode U+D800 if surrogates were encodable
	if seqsMatch(seqs, []byte{0xED, 0xA0, 0x80}) {
		t.Errorf("surrogate byte sequences must not match")
	}
	var buf [utf8.UTFMax]byte
	for _, r := range []rune{0x800, 0xD7FF, 0xE000, 0xFFFF, 0x20AC} {
		n := utf8.EncodeRune(buf[:], r)
		if !seqsMatch(seqs, buf[:n]) {
			t.Errorf("encoding of %U should match", r)
		}
	}
}

func TestSplitContinuationAlignment(t *testing.T) {
	// 0x900..0x10FF crosses continuation-byte alignment within 3-byte
	// encodings; exhaust the full range and its borders
	seqs := utf8Sequences(0x900, 0x10FF)
	var buf [utf8.UTFMax]byte
	for r := rune(0x880); r <= 0x117F; r++ {
		n := utf8.EncodeRune(buf[:], r)
		in := r >= 0x900 && r <= 0x10FF
		if seqsMatch(seqs, buf[:n]) != in {
			t.Fatalf("encoding of %U: match should be %v", r, in)
		}
	}
}

func TestSplitAstralPlane(t *testing.T) {
	seqs := utf8Sequences(0x1F600, 0x1F64F) // emoticons block
	var buf [utf8.UTFMax]byte
	for r := rune(0x1F5F0); r <= 0x1F660; r++ {
		n := utf8.EncodeRune(buf[:], r)
		in := r >= 0x1F600 && r <= 0x1F64F
		if seqsMatch(seqs, buf[:n]) != in {
			t.Fatalf("encoding of %U: match should be %v", r, in)
		}
	}
}
