/*
Package sparse implements a simple type for sparse integer matrices.
It is used for the mode-transition table of lexical automata, where
rows are scanner modes and columns are token kinds. Every entry in the
table is a pair (int32,int32), here an operation code and its argument.

This implementation uses the COO algorithm (a.k.a. triplet-encoding).

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
)

// PairMatrix is a type for a sparse matrix of int32 pairs. Construct with
//
//     M := NewPairMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711, 1)            // set a pair
//     a, b := M.Pair(2, 3)            // returns (4711, 1)
//     cnt := M.ValueCount()           // returns 1 (one position set)
//     a, b = M.Pair(10, 10)           // returns (-1, -1), the null-value
//
// Pairs cannot be deleted, but may be overwritten with null-values. Space
// for null-values is not re-claimed.
type PairMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

// Triplet values to store
type triplet struct {
	row, col int
	value    intPair
}

// NewPairMatrix creates a new matrix of int32 pairs, size m x n. The 3rd
// argument is a null-value, indicating empty entries (use DefaultNullValue
// if you haven't any specific requirements).
func NewPairMatrix(m, n int, nullValue int32) *PairMatrix {
	return &PairMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *PairMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *PairMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *PairMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of pairs in the matrix.
func (m *PairMatrix) ValueCount() int {
	return len(m.values)
}

// Pair returns the pair at position (i,j), or (NullValue, NullValue)
func (m *PairMatrix) Pair(i, j int) (int32, int32) {
	for _, t := range m.values {
		if !t.storedLeftOf(i, j) { // have skipped all lesser indices
			if t.storedAt(i, j) {
				return t.value.a, t.value.b
			}
			break
		}
	}
	return m.nullval, m.nullval
}

// Set a pair in the matrix at position (i,j).
func (m *PairMatrix) Set(i, j int, a, b int32) *PairMatrix {
	at := 0 // will be position of new pair
	for k, t := range m.values {
		if !t.storedLeftOf(i, j) { // have skipped all lesser indices
			if t.storedAt(i, j) { // pair already present
				m.values[k].value = intPair{a, b} // overwrite
				return m                          // and done
			}
			break // no old pair present
		}
		at++
	}
	tnew := triplet{row: i, col: j, value: intPair{a, b}}
	// the following 3 lines have to work for at being the right edge or not
	m.values = append(m.values, tnew)    // make room
	copy(m.values[at+1:], m.values[at:]) // copy remainder values one index to right
	m.values[at] = tnew                  // if not append-case: insert new triplet
	return m
}

// Each calls f for every stored pair, in row-major order.
func (m *PairMatrix) Each(f func(i, j int, a, b int32)) {
	for _, t := range m.values {
		f(t.row, t.col, t.value.a, t.value.b)
	}
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}

// we store 2 int32 in one position
type intPair struct {
	a int32
	b int32
}

func (pr intPair) String() string {
	return fmt.Sprintf("[%d,%d]", pr.a, pr.b)
}
