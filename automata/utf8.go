package automata

import "unicode/utf8"

// A byteRange is an inclusive range of byte values at one position of a
// UTF-8 sequence.
type byteRange struct {
	lo, hi byte
}

// encodingBoundaries are the last codepoints encodable in 1, 2 and 3 bytes.
var encodingBoundaries = [...]rune{0x7F, 0x7FF, 0xFFFF}

// utf8Sequences splits an inclusive codepoint range into a list of byte
// range sequences such that a byte string matches one of the sequences iff
// it is the UTF-8 encoding of a codepoint in [lo, hi]. The surrogate gap
// D800–DFFF is excised, since it has no valid encoding.
func utf8Sequences(lo, hi rune) [][]byteRange {
	var seqs [][]byteRange
	splitOnBoundaries(&seqs, lo, hi)
	return seqs
}

// splitOnBoundaries cuts the range at encoding-length boundaries and around
// the surrogate gap, so that every sub-range has a uniform sequence length.
func splitOnBoundaries(seqs *[][]byteRange, lo, hi rune) {
	if lo > hi {
		return
	}
	for _, b := range encodingBoundaries {
		if lo <= b && b < hi {
			splitOnBoundaries(seqs, lo, b)
			splitOnBoundaries(seqs, b+1, hi)
			return
		}
	}
	if lo < 0xD800 && hi > 0xDFFF {
		splitOnBoundaries(seqs, lo, 0xD7FF)
		splitOnBoundaries(seqs, 0xE000, hi)
		return
	}
	if lo >= 0xD800 && hi <= 0xDFFF {
		return
	}
	splitOnAlignment(seqs, lo, hi)
}

// splitOnAlignment cuts a uniform-length range until the trailing
// continuation bytes of lo are all at their minimum and those of hi are all
// at their maximum. Then the byte ranges at each position are independent
// and a single sequence covers the range.
func splitOnAlignment(seqs *[][]byteRange, lo, hi rune) {
	if utf8.RuneLen(lo) == 1 {
		*seqs = append(*seqs, []byteRange{{byte(lo), byte(hi)}})
		return
	}
	// mask covers i trailing continuation payloads, 6 bits each
	for i := 1; i < utf8.RuneLen(lo); i++ {
		mask := rune(1)<<(6*i) - 1
		if lo&^mask == hi&^mask {
			continue // same prefix above this position
		}
		if lo&mask != 0 {
			splitOnAlignment(seqs, lo, lo|mask)
			splitOnAlignment(seqs, (lo|mask)+1, hi)
			return
		}
		if hi&mask != mask {
			splitOnAlignment(seqs, lo, hi&^mask-1)
			splitOnAlignment(seqs, hi&^mask, hi)
			return
		}
	}
	var blo, bhi [utf8.UTFMax]byte
	k := utf8.EncodeRune(blo[:], lo)
	utf8.EncodeRune(bhi[:], hi)
	seq := make([]byteRange, k)
	for i := 0; i < k; i++ {
		seq[i] = byteRange{blo[i], bhi[i]}
	}
	*seqs = append(*seqs, seq)
}

// addRunes adds byte-level transitions from start to end matching exactly
// the UTF-8 encodings of the codepoints in [lo, hi].
func (n *NFA) addRunes(lo, hi rune, start, end int) {
	for _, seq := range utf8Sequences(lo, hi) {
		src := start
		for i, br := range seq {
			dst := end
			if i < len(seq)-1 {
				dst = n.mkNode()
			}
			for b := int(br.lo); b <= int(br.hi); b++ {
				n.addEdge(src, b, dst)
			}
			src = dst
		}
	}
}
