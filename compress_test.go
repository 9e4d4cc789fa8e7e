package dilithium

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPower2Round(t *testing.T) {
	for bits := uint(1); bits < 16; bits++ {
		half := int32(1) << (bits - 1)
		for r := int32(0); r < q; r += 997 {
			r1, r0 := power2Round(r, bits)
			require.Equal(t, r, r1<<bits+r0, "r=%d bits=%d", r, bits)
			require.Greater(t, r0, -half, "r=%d bits=%d", r, bits)
			require.LessOrEqual(t, r0, half, "r=%d bits=%d", r, bits)
		}
	}

	// t1 fits in 10 bits for every r in [0, q)
	r1, _ := power2Round(q-1, d)
	require.Equal(t, int32(1023), r1)
	r1, r0 := power2Round(1<<(d-1), d)
	require.Equal(t, int32(0), r1)
	require.Equal(t, int32(1<<(d-1)), r0)
}

func TestDecompose(t *testing.T) {
	for _, gamma2 := range []int32{gamma2QMinus1Div88, gamma2QMinus1Div32} {
		m := (q - 1) / (2 * gamma2)
		for r := int32(0); r < q; r++ {
			r1, r0 := decompose(r, gamma2)
			if r1 < 0 || r1 >= m {
				t.Fatalf("decompose(%d, %d): r1 = %d out of range", r, gamma2, r1)
			}
			if r0 < -gamma2 || r0 > gamma2 {
				t.Fatalf("decompose(%d, %d): r0 = %d out of range", r, gamma2, r0)
			}
			if modQ(int64(r1)*2*int64(gamma2)+int64(r0)) != int64(r) {
				t.Fatalf("decompose(%d, %d) = (%d, %d) does not recompose", r, gamma2, r1, r0)
			}
			if r-r0 == q && r1 != 0 {
				t.Fatalf("decompose(%d, %d): wrap-around case gave r1 = %d", r, gamma2, r1)
			}
		}
	}
}

func TestDecomposeUnsupportedGamma2(t *testing.T) {
	require.Panics(t, func() { decompose(0, 1000) })
}

func TestHints(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	for _, gamma2 := range []int32{gamma2QMinus1Div88, gamma2QMinus1Div32} {
		for i := 0; i < 200000; i++ {
			r := rng.Int32N(q)
			z := rng.Int32N(2*gamma2+1) - gamma2
			h := makeHint(z, r, gamma2)
			require.Contains(t, []int32{0, 1}, h)
			want := highBits(freeze(r+z), gamma2)
			if got := useHint(h, r, gamma2); got != want {
				t.Fatalf("gamma2=%d r=%d z=%d: useHint = %d, want %d", gamma2, r, z, got, want)
			}
		}

		// boundaries of the high-bits intervals
		for r := int32(0); r < q; r += gamma2 {
			for _, z := range []int32{-gamma2, -1, 1, gamma2} {
				rr := freeze(r + 1)
				want := highBits(freeze(rr+z), gamma2)
				require.Equal(t, want, useHint(makeHint(z, rr, gamma2), rr, gamma2))
			}
		}
	}
}

func TestHintVector(t *testing.T) {
	p, err := ParamsForLevel(3)
	require.NoError(t, err)
	rng := rand.New(rand.NewPCG(15, 16))

	for i := 0; i < 100; i++ {
		r := newPolyVec(p.K)
		z := newPolyVec(p.K)
		for j := range r {
			for k := range r[j] {
				r[j][k] = rng.Int32N(q)
				if rng.IntN(50) == 0 {
					z[j][k] = rng.Int32N(2*p.Gamma2+1) - p.Gamma2
				}
			}
		}
		h, count := makeHints(z, r, p.Gamma2)
		w1 := useHints(h, r, p.Gamma2)
		require.Equal(t, vecFreeze(vecAdd(r, z)).highBits(p.Gamma2), w1)

		hv, ok := newHintVector(h, p.Omega)
		if count > p.Omega {
			require.False(t, ok)
			continue
		}
		require.True(t, ok)
		require.Equal(t, count, hv.count())
		require.Equal(t, h, hv.dense())
	}
}
