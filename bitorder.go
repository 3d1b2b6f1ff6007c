// bitorder.go
package qcircuit

import "fmt"

// This package indexes basis states big-endian: qubit 0 is the most
// significant bit. Shot-count backends and the alternate simulator report
// little-endian, with the first-declared qubit in the least significant
// position. Reconciliation happens in exactly one place, immediately after
// raw acquisition; no consumer downstream of this file ever sees a
// little-endian index.

// ReverseIndex mirrors the low n bits of i, mapping a little-endian basis
// index to its big-endian equivalent (and vice versa; the mapping is its own
// inverse).
func ReverseIndex(i, n int) int {
	out := 0
	for q := 0; q < n; q++ {
		if i&(1<<q) != 0 {
			out |= 1 << (n - 1 - q)
		}
	}
	return out
}

// bitStringIndex parses a little-endian measurement bit-string into the
// big-endian basis index. Reversing the string before interpreting it as a
// binary number is equivalent to ReverseIndex on the parsed value.
func bitStringIndex(s string) (int, error) {
	if len(s) != NumQubits {
		return 0, fmt.Errorf("bit-string %q has length %d, want %d", s, len(s), NumQubits)
	}
	idx := 0
	for pos := len(s) - 1; pos >= 0; pos-- {
		idx <<= 1
		switch s[pos] {
		case '0':
		case '1':
			idx |= 1
		default:
			return 0, fmt.Errorf("bit-string %q contains %q", s, s[pos])
		}
	}
	return idx, nil
}
