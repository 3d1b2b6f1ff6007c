// simulator.go
package qcircuit

import (
	"fmt"
	"math"
)

// Fixed circuit topology. The whole package is specialized to this shape;
// supporting other sizes is out of scope.
const (
	NumQubits = 4
	NumLayers = 10
	NumStates = 1 << NumQubits
)

// normEpsilon bounds how far the pre-normalization probability mass may
// drift from 1 before the result is considered corrupt. The circuit is a
// fixed product of unitaries, so anything beyond rounding error means a bug.
const normEpsilon = 1e-6

// Params is the variational parameter tensor, indexed [layer][qubit][axis]
// with axis 0/1/2 = RX/RY/RZ angle in radians. It belongs to the caller (the
// trained model); the simulator only reads it.
type Params [NumLayers][NumQubits][3]float64

// Simulate evolves |0...0⟩ through the fixed circuit and returns the basis
// state probabilities under the big-endian qubit convention.
//
// The gate order is load-bearing: RY angle embedding per qubit, then per
// layer the RX, RY, RZ rotations qubit by qubit, then the four ring CNOTs
// (0→1), (1→2), (2→3), (3→0). Identical inputs always produce identical
// output; there is no branching on values anywhere in the sequence.
func Simulate(features []float64, params *Params) ([]float64, error) {
	if len(features) != NumQubits {
		return nil, fmt.Errorf("%w: feature vector has %d entries, want %d", ErrInvalidInput, len(features), NumQubits)
	}
	if params == nil {
		return nil, fmt.Errorf("%w: nil parameter tensor", ErrInvalidInput)
	}

	state := make([]complex128, NumStates)
	state[0] = 1

	// Angle embedding
	for q := 0; q < NumQubits; q++ {
		state = SingleQubitGate(RY(features[q]), q, NumQubits).Apply(state)
	}

	// Variational layers
	for layer := 0; layer < NumLayers; layer++ {
		for q := 0; q < NumQubits; q++ {
			state = SingleQubitGate(RX(params[layer][q][0]), q, NumQubits).Apply(state)
			state = SingleQubitGate(RY(params[layer][q][1]), q, NumQubits).Apply(state)
			state = SingleQubitGate(RZ(params[layer][q][2]), q, NumQubits).Apply(state)
		}
		for _, cnot := range ringCNOTs {
			state = cnot.Apply(state)
		}
	}

	probs := make([]float64, NumStates)
	var sum float64
	for i, amp := range state {
		p := real(amp)*real(amp) + imag(amp)*imag(amp)
		probs[i] = p
		sum += p
	}
	if math.Abs(sum-1) > normEpsilon {
		return nil, fmt.Errorf("qcircuit: state norm drifted to %v, non-unitary evolution", sum)
	}
	// Renormalize once to absorb accumulated rounding error.
	for i := range probs {
		probs[i] /= sum
	}
	return probs, nil
}
