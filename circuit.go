package qcircuit

import (
	"fmt"
	"strings"
)

// GateOp is one operation in a backend-neutral circuit description.
// Rotation gates use Target and Theta; CX uses Control and Target; the
// terminal measure-all op uses neither.
type GateOp struct {
	Name    string
	Target  int
	Control int
	Theta   float64
}

const (
	opRX      = "rx"
	opRY      = "ry"
	opRZ      = "rz"
	opCX      = "cx"
	opMeasure = "measure"
)

// CircuitSpec is the remote-compatible form of the fixed circuit: the same
// gate sequence the local simulators execute, expressed as a list a backend
// client can transpile or serialize.
type CircuitSpec struct {
	Qubits int
	Ops    []GateOp
}

// BuildCircuit lays out the embedding and variational stages in the exact
// order the statevector simulator applies them. No measurement is appended;
// use BuildMeasuredCircuit for sampled backends.
func BuildCircuit(features []float64, params *Params) (*CircuitSpec, error) {
	if len(features) != NumQubits {
		return nil, fmt.Errorf("%w: feature vector has %d entries, want %d", ErrInvalidInput, len(features), NumQubits)
	}
	if params == nil {
		return nil, fmt.Errorf("%w: nil parameter tensor", ErrInvalidInput)
	}

	spec := &CircuitSpec{Qubits: NumQubits}
	for q := 0; q < NumQubits; q++ {
		spec.Ops = append(spec.Ops, GateOp{Name: opRY, Target: q, Control: -1, Theta: features[q]})
	}
	for layer := 0; layer < NumLayers; layer++ {
		for q := 0; q < NumQubits; q++ {
			spec.Ops = append(spec.Ops,
				GateOp{Name: opRX, Target: q, Control: -1, Theta: params[layer][q][0]},
				GateOp{Name: opRY, Target: q, Control: -1, Theta: params[layer][q][1]},
				GateOp{Name: opRZ, Target: q, Control: -1, Theta: params[layer][q][2]},
			)
		}
		for q := 0; q < NumQubits; q++ {
			spec.Ops = append(spec.Ops, GateOp{Name: opCX, Target: (q + 1) % NumQubits, Control: q})
		}
	}
	return spec, nil
}

// BuildMeasuredCircuit is BuildCircuit plus terminal measurement of all
// qubits, the form hardware and sampler backends require.
func BuildMeasuredCircuit(features []float64, params *Params) (*CircuitSpec, error) {
	spec, err := BuildCircuit(features, params)
	if err != nil {
		return nil, err
	}
	spec.Ops = append(spec.Ops, GateOp{Name: opMeasure, Target: -1, Control: -1})
	return spec, nil
}

// QASM renders the circuit as OpenQASM 2.0, the interchange format remote
// backends accept.
func (c *CircuitSpec) QASM() string {
	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\n")
	b.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&b, "qreg q[%d];\n", c.Qubits)
	fmt.Fprintf(&b, "creg c[%d];\n", c.Qubits)
	for _, op := range c.Ops {
		switch op.Name {
		case opRX, opRY, opRZ:
			fmt.Fprintf(&b, "%s(%.17g) q[%d];\n", op.Name, op.Theta, op.Target)
		case opCX:
			fmt.Fprintf(&b, "cx q[%d],q[%d];\n", op.Control, op.Target)
		case opMeasure:
			for q := 0; q < c.Qubits; q++ {
				fmt.Fprintf(&b, "measure q[%d] -> c[%d];\n", q, q)
			}
		}
	}
	return b.String()
}

// Measured reports whether the circuit ends in a measure-all op.
func (c *CircuitSpec) Measured() bool {
	return len(c.Ops) > 0 && c.Ops[len(c.Ops)-1].Name == opMeasure
}
