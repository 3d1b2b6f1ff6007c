// gates.go
package qcircuit

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Matrix is a dense row-major complex matrix. At 4 qubits the full-system
// dimension is 16, so dense construction is the right tool; nothing here
// needs sparse or accelerated linear algebra.
type Matrix [][]complex128

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]complex128, cols)
	}
	return m
}

// Identity returns the n x n identity matrix.
func Identity(n int) Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m[i][i] = 1
	}
	return m
}

// RX builds the single-qubit X-rotation unitary for angle theta.
func RX(theta float64) Matrix {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return Matrix{
		{c, js},
		{js, c},
	}
}

// RY builds the single-qubit Y-rotation unitary for angle theta.
func RY(theta float64) Matrix {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Matrix{
		{c, -s},
		{s, c},
	}
}

// RZ builds the single-qubit Z-rotation unitary for angle theta.
func RZ(theta float64) Matrix {
	return Matrix{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	}
}

// Kron returns the Kronecker product a ⊗ b.
func Kron(a, b Matrix) Matrix {
	ar, ac := len(a), len(a[0])
	br, bc := len(b), len(b[0])
	out := NewMatrix(ar*br, ac*bc)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			if a[i][j] == 0 {
				continue
			}
			for k := 0; k < br; k++ {
				for l := 0; l < bc; l++ {
					out[i*br+k][j*bc+l] = a[i][j] * b[k][l]
				}
			}
		}
	}
	return out
}

// SingleQubitGate expands gate to the full system unitary
// I ⊗ ... ⊗ gate ⊗ ... ⊗ I with gate at position target.
// Qubit 0 is the leftmost tensor factor; every index computation in this
// package assumes that ordering. An out-of-range target is a programming
// error, not a runtime condition.
func SingleQubitGate(gate Matrix, target, totalQubits int) Matrix {
	if target < 0 || target >= totalQubits {
		panic(fmt.Sprintf("qcircuit: qubit %d out of range for %d-qubit system", target, totalQubits))
	}
	var out Matrix
	for q := 0; q < totalQubits; q++ {
		factor := Identity(2)
		if q == target {
			factor = gate
		}
		if out == nil {
			out = factor
		} else {
			out = Kron(out, factor)
		}
	}
	return out
}

// ControlledNot builds the full-system CNOT unitary as a permutation matrix:
// basis states with the control bit clear map to themselves, states with it
// set map to the state with the target bit flipped. Bit positions follow the
// big-endian convention (qubit 0 is the most significant bit).
func ControlledNot(control, target, totalQubits int) Matrix {
	if control < 0 || control >= totalQubits || target < 0 || target >= totalQubits || control == target {
		panic(fmt.Sprintf("qcircuit: invalid CNOT pair (%d,%d) for %d-qubit system", control, target, totalQubits))
	}
	dim := 1 << totalQubits
	ctrlBit := 1 << (totalQubits - 1 - control)
	tgtBit := 1 << (totalQubits - 1 - target)
	out := NewMatrix(dim, dim)
	for i := 0; i < dim; i++ {
		if i&ctrlBit == 0 {
			out[i][i] = 1
		} else {
			out[i^tgtBit][i] = 1
		}
	}
	return out
}

// ringCNOTs holds the four full-system CNOT matrices of the fixed ring
// (0→1), (1→2), (2→3), (3→0). They never change, so they are built once at
// startup instead of per circuit evaluation.
var ringCNOTs = buildRingCNOTs()

func buildRingCNOTs() []Matrix {
	gates := make([]Matrix, NumQubits)
	for q := 0; q < NumQubits; q++ {
		gates[q] = ControlledNot(q, (q+1)%NumQubits, NumQubits)
	}
	return gates
}

// Apply left-multiplies the matrix onto the state vector.
func (m Matrix) Apply(state []complex128) []complex128 {
	out := make([]complex128, len(m))
	for i := range m {
		var sum complex128
		row := m[i]
		for j, amp := range state {
			if row[j] != 0 {
				sum += row[j] * amp
			}
		}
		out[i] = sum
	}
	return out
}
