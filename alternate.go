// alternate.go
package qcircuit

import (
	"fmt"
	"math"
	"math/cmplx"
)

// maskSim is an independent statevector implementation used to cross-check
// the dense-matrix simulator. It works the way most third-party simulators
// do: bit-mask pair updates instead of full-system matrices, and qubit q at
// bit position 1<<q (little-endian). Its raw indices therefore disagree with
// the rest of the package and must be bit-reversed on the way out.
type maskSim struct {
	amps []complex128
}

func newMaskSim() *maskSim {
	amps := make([]complex128, NumStates)
	amps[0] = 1
	return &maskSim{amps: amps}
}

func (s *maskSim) applyRX(q int, theta float64) {
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	next := make([]complex128, NumStates)
	for i := 0; i < NumStates; i++ {
		if i&bit == 0 {
			j := i | bit
			next[i] = c*s.amps[i] + js*s.amps[j]
			next[j] = js*s.amps[i] + c*s.amps[j]
		}
	}
	s.amps = next
}

func (s *maskSim) applyRY(q int, theta float64) {
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	next := make([]complex128, NumStates)
	for i := 0; i < NumStates; i++ {
		if i&bit == 0 {
			j := i | bit
			next[i] = c*s.amps[i] - sn*s.amps[j]
			next[j] = sn*s.amps[i] + c*s.amps[j]
		}
	}
	s.amps = next
}

func (s *maskSim) applyRZ(q int, theta float64) {
	bit := 1 << q
	ph := cmplx.Exp(complex(0, theta/2))
	for i := 0; i < NumStates; i++ {
		if i&bit != 0 {
			s.amps[i] *= ph
		} else {
			s.amps[i] *= cmplx.Conj(ph)
		}
	}
}

func (s *maskSim) applyCX(control, target int) {
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < NumStates; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

// probabilities converts the raw little-endian amplitudes into big-endian
// probabilities. This is the canonical reconciliation point for this
// backend; nothing else reorders its output.
func (s *maskSim) probabilities() []float64 {
	probs := make([]float64, NumStates)
	var sum float64
	for i, amp := range s.amps {
		p := real(amp)*real(amp) + imag(amp)*imag(amp)
		probs[ReverseIndex(i, NumQubits)] = p
		sum += p
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// SimulateAlternate runs the same fixed circuit on the mask-based simulator.
// It exists so the two implementations can validate each other; callers get
// the same big-endian distribution Simulate produces.
func SimulateAlternate(features []float64, params *Params) ([]float64, error) {
	if len(features) != NumQubits {
		return nil, fmt.Errorf("%w: feature vector has %d entries, want %d", ErrInvalidInput, len(features), NumQubits)
	}
	if params == nil {
		return nil, fmt.Errorf("%w: nil parameter tensor", ErrInvalidInput)
	}

	sim := newMaskSim()
	for q := 0; q < NumQubits; q++ {
		sim.applyRY(q, features[q])
	}
	for layer := 0; layer < NumLayers; layer++ {
		for q := 0; q < NumQubits; q++ {
			sim.applyRX(q, params[layer][q][0])
			sim.applyRY(q, params[layer][q][1])
			sim.applyRZ(q, params[layer][q][2])
		}
		for q := 0; q < NumQubits; q++ {
			sim.applyCX(q, (q+1)%NumQubits)
		}
	}
	return sim.probabilities(), nil
}

// ValidationReport summarizes how closely the two local simulators agree on
// one input.
type ValidationReport struct {
	MaxDiff  float64
	MeanDiff float64
	Passed   bool
}

// ValidateBackends runs both local strategies on the same input and compares
// the distributions entry by entry against the given tolerance.
func ValidateBackends(features []float64, params *Params, tolerance float64) (*ValidationReport, error) {
	exact, err := Simulate(features, params)
	if err != nil {
		return nil, err
	}
	alt, err := SimulateAlternate(features, params)
	if err != nil {
		return nil, err
	}
	var maxDiff, sumDiff float64
	for i := range exact {
		d := math.Abs(exact[i] - alt[i])
		if d > maxDiff {
			maxDiff = d
		}
		sumDiff += d
	}
	return &ValidationReport{
		MaxDiff:  maxDiff,
		MeanDiff: sumDiff / float64(NumStates),
		Passed:   maxDiff <= tolerance,
	}, nil
}
