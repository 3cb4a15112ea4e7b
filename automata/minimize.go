package automata

// Minimize collapses equivalent DFA states with Moore's partition
// refinement and returns a fresh DFA. Two states are equivalent when they
// carry the same accept tag and agree, block-wise, on every byte. Accept
// tags partition finer than a plain accepting/non-accepting split, which
// keeps token kinds and priorities apart.
func Minimize(d *DFA) *DFA {
	n := len(d.next)
	block := make([]int32, n)
	// initial partition: one block per distinct accept tag, plus block 0
	// for plain states
	tags := map[Accept]int32{}
	for s := int32(0); s < int32(n); s++ {
		if acc, ok := d.accepts[s]; ok {
			tag, seen := tags[acc]
			if !seen {
				tag = int32(len(tags)) + 1
				tags[acc] = tag
			}
			block[s] = tag
		}
	}
	blocks := int32(len(tags)) + 1
	for {
		split := false
		next := make([]int32, n)
		sigs := map[[257]int32]int32{}
		var count int32
		for s := 0; s < n; s++ {
			var sig [257]int32
			sig[0] = block[s]
			for b := 0; b < 256; b++ {
				sig[b+1] = block[d.next[s][b]]
			}
			id, seen := sigs[sig]
			if !seen {
				id = count
				count++
				sigs[sig] = id
			}
			next[s] = id
		}
		if count > blocks {
			split = true
		}
		block, blocks = next, count
		if !split {
			break
		}
	}
	if block[StartState] == block[DeadState] {
		// grammar with no usable pattern; keep the original shape
		return d
	}
	// renumber blocks so the dead state's block is 0 and the start
	// state's block is 1, preserving the DFA conventions
	renumber := make(map[int32]int32, blocks)
	renumber[block[DeadState]] = DeadState
	renumber[block[StartState]] = StartState
	var fresh int32 = 2
	for s := 0; s < n; s++ {
		if _, ok := renumber[block[s]]; !ok {
			renumber[block[s]] = fresh
			fresh++
		}
	}
	min := &DFA{
		Mode:    d.Mode,
		next:    make([][256]int32, blocks),
		accepts: make(map[int32]Accept, len(d.accepts)),
	}
	for s := 0; s < n; s++ {
		t := renumber[block[s]]
		for b := 0; b < 256; b++ {
			min.next[t][b] = renumber[block[d.next[s][b]]]
		}
		if acc, ok := d.accepts[int32(s)]; ok {
			min.accepts[t] = acc
		}
	}
	tracer().Debugf("mode %q: minimized %d states to %d", d.Mode, n, blocks)
	return min
}
