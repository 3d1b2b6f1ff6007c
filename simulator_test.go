package qcircuit

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// denseParams fills the tensor with a fixed, layer/qubit/axis-dependent
// pattern so every gate in the circuit gets a non-trivial angle.
func denseParams() *Params {
	var p Params
	for layer := 0; layer < NumLayers; layer++ {
		for q := 0; q < NumQubits; q++ {
			for axis := 0; axis < 3; axis++ {
				p[layer][q][axis] = 0.1*float64(layer) - 0.25*float64(q) + 0.4*float64(axis) + 0.05
			}
		}
	}
	return &p
}

func TestSimulate(t *testing.T) {
	Convey("Given the dense-matrix simulator", t, func(c C) {
		Convey("All-zero input is the identity circuit", func(c C) {
			probs, err := Simulate([]float64{0, 0, 0, 0}, &Params{})
			c.So(err, ShouldBeNil)
			c.So(probs[0], ShouldAlmostEqual, 1, 1e-12)
			for i := 1; i < NumStates; i++ {
				c.So(probs[i], ShouldAlmostEqual, 0, 1e-12)
			}
		})

		Convey("The output is a probability distribution", func(c C) {
			probs, err := Simulate([]float64{0.3, -0.7, 1.1, 0.25}, denseParams())
			c.So(err, ShouldBeNil)
			c.So(probs, ShouldHaveLength, NumStates)

			sum := 0.0
			for _, p := range probs {
				c.So(p, ShouldBeGreaterThanOrEqualTo, 0)
				sum += p
			}
			c.So(sum, ShouldAlmostEqual, 1, 1e-6)
		})

		Convey("Identical inputs produce bit-identical outputs", func(c C) {
			features := []float64{0.3, -0.7, 1.1, 0.25}
			a, err := Simulate(features, denseParams())
			c.So(err, ShouldBeNil)
			b, err := Simulate(features, denseParams())
			c.So(err, ShouldBeNil)

			for i := range a {
				c.So(a[i], ShouldEqual, b[i])
			}
		})

		Convey("A lone RY(pi) embedding on qubit 0 lands on index N/2", func(c C) {
			// Checked on the embedding stage alone: the ring CNOTs of the
			// variational layers permute basis states, so the raw
			// convention is visible only before entanglement.
			state := make([]complex128, NumStates)
			state[0] = 1
			state = SingleQubitGate(RY(math.Pi), 0, NumQubits).Apply(state)

			p := real(state[NumStates/2])*real(state[NumStates/2]) + imag(state[NumStates/2])*imag(state[NumStates/2])
			c.So(p, ShouldAlmostEqual, 1, 1e-12)
		})

		Convey("A wrong-length feature vector is rejected", func(c C) {
			_, err := Simulate([]float64{1, 2, 3}, &Params{})
			c.So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})

		Convey("A nil parameter tensor is rejected", func(c C) {
			_, err := Simulate([]float64{0, 0, 0, 0}, nil)
			c.So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})
	})
}
