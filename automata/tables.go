package automata

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/npillmayer/lexion"
	"github.com/npillmayer/lexion/automata/sparse"
)

// Tables is the serializable form of a compiled Automaton, suitable for
// embedding pre-compiled scanners in other programs. Encoding is CBOR. The
// rule priority equals the token kind, so accepting states store the kind
// only.
type Tables struct {
	Name  string      `cbor:"name"`
	Kinds []string    `cbor:"kinds"`
	Modes []modeTable `cbor:"modes"`
	Trans []transRow  `cbor:"trans"`
}

type modeTable struct {
	Name    string          `cbor:"name"`
	Next    [][]int32       `cbor:"next"`
	Accepts map[int32]int32 `cbor:"accepts"`
}

type transRow struct {
	Mode   int32 `cbor:"mode"`
	Kind   int32 `cbor:"kind"`
	Op     int32 `cbor:"op"`
	Target int32 `cbor:"target"`
}

// Export flattens an Automaton into serializable tables.
func (a *Automaton) Export() *Tables {
	t := &Tables{
		Name:  a.Name,
		Kinds: append([]string{}, a.kindNames...),
	}
	for i, dfa := range a.dfas {
		mt := modeTable{
			Name:    a.modeNames[i],
			Next:    make([][]int32, dfa.NumStates()),
			Accepts: make(map[int32]int32, len(dfa.accepts)),
		}
		for s := range dfa.next {
			mt.Next[s] = append([]int32{}, dfa.next[s][:]...)
		}
		for s, acc := range dfa.accepts {
			mt.Accepts[s] = int32(acc.Kind)
		}
		t.Modes = append(t.Modes, mt)
	}
	a.trans.Each(func(i, j int, op, target int32) {
		t.Trans = append(t.Trans, transRow{
			Mode: int32(i), Kind: int32(j), Op: op, Target: target,
		})
	})
	return t
}

// FromTables reconstructs an Automaton from its serialized tables.
func FromTables(t *Tables) (*Automaton, error) {
	a := &Automaton{
		Name:      t.Name,
		kindNames: append([]string{}, t.Kinds...),
		modeIndex: make(map[string]int, len(t.Modes)),
	}
	for i, mt := range t.Modes {
		dfa := &DFA{
			Mode:    mt.Name,
			next:    make([][256]int32, len(mt.Next)),
			accepts: make(map[int32]Accept, len(mt.Accepts)),
		}
		for s, row := range mt.Next {
			if len(row) != 256 {
				return nil, fmt.Errorf("mode %q: state %d has %d transitions, expected 256",
					mt.Name, s, len(row))
			}
			copy(dfa.next[s][:], row)
		}
		for s, kind := range mt.Accepts {
			dfa.accepts[s] = Accept{Priority: int(kind), Kind: lexion.TokenKind(kind)}
		}
		a.dfas = append(a.dfas, dfa)
		a.modeNames = append(a.modeNames, mt.Name)
		a.modeIndex[mt.Name] = i
	}
	a.trans = sparse.NewPairMatrix(len(t.Modes), len(t.Kinds), sparse.DefaultNullValue)
	for _, tr := range t.Trans {
		a.trans.Set(int(tr.Mode), int(tr.Kind), tr.Op, tr.Target)
	}
	return a, nil
}

// tablesNoMethods keeps cbor from re-entering MarshalBinary/UnmarshalBinary
// through the encoding.BinaryMarshaler interface on Tables itself.
type tablesNoMethods Tables

// MarshalBinary encodes the tables as CBOR.
func (t *Tables) MarshalBinary() ([]byte, error) {
	return cbor.Marshal((*tablesNoMethods)(t))
}

// UnmarshalBinary decodes CBOR-encoded tables.
func (t *Tables) UnmarshalBinary(data []byte) error {
	return cbor.Unmarshal(data, (*tablesNoMethods)(t))
}
