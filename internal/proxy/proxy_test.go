package proxy

import (
	"math"
	"math/rand"
	"testing"

	"github.com/sandy-lab/zsigma-diag/internal/sample"
)

func batchOf(h, pRad, pIn, fELM, dW []float64) sample.Batch {
	b := make(sample.Batch, len(h))
	for i := range h {
		b[i] = sample.Sample{
			Time:      float64(i),
			H98Y2:     h[i],
			PRad:      pRad[i],
			PInput:    pIn[i],
			FELM:      fELM[i],
			DeltaWELM: dW[i],
		}
	}
	return b
}

func TestComputeLengthAndOrder(t *testing.T) {
	c := NewComputer(DefaultConfig())
	b := batchOf(
		[]float64{0.8, 1.2, 1.0},
		[]float64{2, 3, 4},
		[]float64{10, 10, 10},
		[]float64{0.1, 0.2, 0.3},
		[]float64{0.0, 0.1, 0.2},
	)

	s := c.Compute(b)
	if s.Len() != 3 || len(s.Sigma) != 3 || len(s.Time) != 3 {
		t.Fatalf("output length must match input, got %d", s.Len())
	}
	// H98y2 min is row 0, max is row 1: Z must peak at index 1, not be re-sorted.
	if !(s.Z[1] > s.Z[0] && s.Z[1] > s.Z[2]) {
		t.Fatalf("index order not preserved: Z=%v", s.Z)
	}
}

func TestComputeBoundsOnNonDegenerateBatches(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := NewComputer(DefaultConfig())

	for trial := 0; trial < 200; trial++ {
		n := 2 + rng.Intn(40)
		h := make([]float64, n)
		pRad := make([]float64, n)
		pIn := make([]float64, n)
		fELM := make([]float64, n)
		dW := make([]float64, n)
		for i := 0; i < n; i++ {
			h[i] = 0.5 + rng.Float64()
			pRad[i] = 1 + 5*rng.Float64()
			pIn[i] = 5 + 10*rng.Float64()
			fELM[i] = rng.Float64()
			dW[i] = rng.Float64()
		}
		// Force a nonzero range on both normalized columns.
		h[0], h[n-1] = 0.4, 1.6
		pRad[0], pRad[n-1] = 0.5, 6.0

		s := c.Compute(batchOf(h, pRad, pIn, fELM, dW))
		for i := 0; i < n; i++ {
			if s.Z[i] < 0 || s.Z[i] > 1 {
				t.Fatalf("trial %d: Z[%d]=%v out of [0,1]", trial, i, s.Z[i])
			}
			if s.Sigma[i] < 0 || s.Sigma[i] > 1 {
				t.Fatalf("trial %d: Sigma[%d]=%v out of [0,1]", trial, i, s.Sigma[i])
			}
		}
		if s.ZRangeDegenerate || s.SigmaRangeDegenerate {
			t.Fatalf("trial %d: degenerate flag on a spread batch", trial)
		}
	}
}

func TestComputeConstantColumnEpsilonGuard(t *testing.T) {
	c := NewComputer(DefaultConfig())
	b := batchOf(
		[]float64{1.0, 1.0, 1.0},
		[]float64{2, 3, 4},
		[]float64{10, 10, 10},
		[]float64{0.1, 0.2, 0.3},
		[]float64{0, 0, 0},
	)

	s := c.Compute(b)
	for i, z := range s.Z {
		if math.IsNaN(z) {
			t.Fatalf("Z[%d] is NaN; epsilon guard failed", i)
		}
		if z != 0 {
			t.Fatalf("Z[%d]=%v, want 0 for a constant column", i, z)
		}
	}
	if !s.ZRangeDegenerate {
		t.Fatal("constant H98y2 must set the degenerate-range flag")
	}
	if s.SigmaRangeDegenerate {
		t.Fatal("sigma range is not degenerate here")
	}
}

func TestComputeZeroInputPowerPropagates(t *testing.T) {
	c := NewComputer(DefaultConfig())
	b := batchOf(
		[]float64{0.9, 1.0, 1.1},
		[]float64{2, 3, 4},
		[]float64{10, 0, 10},
		[]float64{0.1, 0.2, 0.3},
		[]float64{0, 0, 0},
	)

	s := c.Compute(b)
	finite := 0
	for _, v := range s.Sigma {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite++
		}
	}
	if finite == len(s.Sigma) {
		t.Fatalf("P_input=0 must surface as non-finite Sigma values, got %v", s.Sigma)
	}
}

func TestComputeSigmaWeights(t *testing.T) {
	// Single spread pair so normalization is the identity on {0, span}.
	c := NewComputer(DefaultConfig())
	b := batchOf(
		[]float64{1.0, 2.0},
		[]float64{0, 8},
		[]float64{10, 10},
		[]float64{0, 1},
		[]float64{0, 1},
	)
	// sigma_raw[0] = 0, sigma_raw[1] = 0.5*0.8 + 0.4*1 - 0.3*1 = 0.5
	s := c.Compute(b)
	if s.Sigma[0] != 0 {
		t.Fatalf("Sigma[0]=%v, want 0", s.Sigma[0])
	}
	if math.Abs(s.Sigma[1]-1.0) > 1e-5 {
		t.Fatalf("Sigma[1]=%v, want ~1", s.Sigma[1])
	}
}
