package score

import (
	"math/rand/v2"
	"sync"
)

// DefaultNoiseAmplitude bounds the uniform perturbation added to every score
const DefaultNoiseAmplitude = 0.1

// NoiseSource supplies the random perturbation added to a score
type NoiseSource interface {
	Noise() float64
}

// UniformNoise draws uniformly from [-amplitude, amplitude]
type UniformNoise struct {
	amplitude float64
	mu        sync.Mutex
	rng       *rand.Rand // nil uses the global generator
}

// NewUniformNoise creates a noise source. A zero seed draws from the global generator;
// any other seed gives a reproducible sequence.
func NewUniformNoise(amplitude float64, seed uint64) *UniformNoise {
	n := &UniformNoise{amplitude: amplitude}
	if seed != 0 {
		n.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return n
}

// Noise returns the next perturbation
func (n *UniformNoise) Noise() float64 {
	if n.amplitude == 0 {
		return 0
	}

	var f float64
	if n.rng == nil {
		f = rand.Float64()
	} else {
		n.mu.Lock()
		f = n.rng.Float64()
		n.mu.Unlock()
	}
	return (f*2 - 1) * n.amplitude
}

// FixedNoise always returns the same perturbation
type FixedNoise float64

// Noise returns the fixed value
func (f FixedNoise) Noise() float64 {
	return float64(f)
}

// ZeroNoise makes scores deterministic
var ZeroNoise NoiseSource = FixedNoise(0)
