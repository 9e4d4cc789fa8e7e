package dilithium

import (
	"math/bits"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/lattigo/v4/ring"
)

func randomPoly(rng *rand.Rand, bound int32) poly {
	var f poly
	for i := range f {
		f[i] = rng.Int32N(2*bound-1) - bound + 1
	}
	return f
}

// schoolbookMul multiplies in Z_q[X]/(X^n+1) the slow way.
func schoolbookMul(a, b poly) poly {
	var acc [2 * n]int64
	for i := range a {
		for j := range b {
			acc[i+j] = modQ(acc[i+j] + int64(a[i])*int64(b[j]))
		}
	}
	var c poly
	for i := range c {
		c[i] = int32(modQ(acc[i] - acc[i+n]))
	}
	return c
}

func powMod(b, e int64) int64 {
	r := int64(1)
	b = modQ(b)
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			r = modQ(r * b)
		}
		b = modQ(b * b)
	}
	return r
}

func TestZetas(t *testing.T) {
	r := modQ(1 << 32)
	for k := 1; k < n; k++ {
		brv := int64(bits.Reverse8(uint8(k)))
		want := modQ(r * powMod(1753, brv))
		require.Equal(t, want, modQ(int64(zetas[k-1])), "k=%d", k)
	}
	// 1753 has order 512
	require.Equal(t, int64(q-1), powMod(1753, 256))
}

func TestNTTRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	r := modQ(1 << 32)
	for i := 0; i < 100; i++ {
		f := randomPoly(rng, q)
		g := invNTT(polyReduce(ntt(f)))
		for j := range f {
			require.Less(t, g[j], int32(q))
			require.Greater(t, g[j], int32(-q))
			require.Equal(t, modQ(int64(f[j])*r), modQ(int64(g[j])), "coefficient %d", j)
		}
	}
}

func TestPolyMul(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for i := 0; i < 20; i++ {
		a := randomPoly(rng, q)
		b := randomPoly(rng, q)
		require.Equal(t, schoolbookMul(a, b), polyFreeze(polyMul(a, b)))
	}

	// sparse challenge times a small secret, as in signing
	c := sampleChallenge(make([]byte, 32), 60)
	s := sampleBounded(make([]byte, 64), 0, 4)
	require.Equal(t, schoolbookMul(c, s), polyFreeze(polyMul(c, s)))
	require.LessOrEqual(t, polyInfinityNorm(polyMul(c, s)), int32(60*4))
}

func TestPolyMulAgainstLattigo(t *testing.T) {
	r, err := ring.NewRing(n, []uint64{q})
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(9, 10))
	for i := 0; i < 20; i++ {
		a := randomPoly(rng, q)
		b := randomPoly(rng, q)

		pa, pb := r.NewPoly(), r.NewPoly()
		for j := 0; j < n; j++ {
			pa.Coeffs[0][j] = uint64(modQ(int64(a[j])))
			pb.Coeffs[0][j] = uint64(modQ(int64(b[j])))
		}
		r.MForm(pa, pa)
		r.MForm(pb, pb)
		r.NTT(pa, pa)
		r.NTT(pb, pb)
		res := r.NewPoly()
		r.MulCoeffsMontgomery(pa, pb, res)
		r.InvNTT(res, res)
		r.InvMForm(res, res)

		got := polyFreeze(polyMul(a, b))
		for j := 0; j < n; j++ {
			require.Equal(t, res.Coeffs[0][j], uint64(got[j]), "coefficient %d", j)
		}
	}
}

func TestPointwiseAcc(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	a, b := make(polyVec, 7), make(polyVec, 7)
	var want poly
	for i := range a {
		a[i] = randomPoly(rng, q)
		b[i] = randomPoly(rng, 1<<19)
		prod := schoolbookMul(a[i], b[i])
		for j := range want {
			want[j] = int32(modQ(int64(want[j]) + int64(prod[j])))
		}
	}
	got := invNTT(pointwiseAcc(a.ntt(), b.ntt()))
	require.Equal(t, want, polyFreeze(got))
}
