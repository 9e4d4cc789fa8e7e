package dilithium

// polyVec is a vector over R_q in the coefficient domain, of length k or l.
type polyVec []poly

// nttVec is a vector over R_q in the NTT domain.
type nttVec []nttPoly

// matrix is the public matrix A in the NTT domain, k rows of l columns.
type matrix []nttVec

func newPolyVec(length int) polyVec { return make(polyVec, length) }

// vecAdd adds two vectors of equal length component-wise.
func vecAdd[V ~[]T, T ringElement](a, b V) V {
	c := make(V, len(a))
	for i := range a {
		c[i] = polyAdd(a[i], b[i])
	}
	return c
}

// vecSub subtracts two vectors of equal length component-wise.
func vecSub[V ~[]T, T ringElement](a, b V) V {
	c := make(V, len(a))
	for i := range a {
		c[i] = polySub(a[i], b[i])
	}
	return c
}

// vecNeg negates every component.
func vecNeg[V ~[]T, T ringElement](a V) V {
	c := make(V, len(a))
	for i := range a {
		c[i] = polyNeg(a[i])
	}
	return c
}

// vecCaddq maps every coefficient from (-q, q) onto [0, q).
func vecCaddq[V ~[]T, T ringElement](a V) V {
	c := make(V, len(a))
	for i := range a {
		c[i] = polyCaddq(a[i])
	}
	return c
}

// vecFreeze maps every coefficient onto [0, q).
func vecFreeze[V ~[]T, T ringElement](a V) V {
	c := make(V, len(a))
	for i := range a {
		c[i] = polyFreeze(a[i])
	}
	return c
}

func (v polyVec) ntt() nttVec {
	out := make(nttVec, len(v))
	for i := range v {
		out[i] = ntt(v[i])
	}
	return out
}

// invNTT transforms every component back; inputs must be reduced.
func (v nttVec) invNTT() polyVec {
	out := make(polyVec, len(v))
	for i := range v {
		out[i] = invNTT(v[i])
	}
	return out
}

// scale multiplies every component by the single NTT-domain polynomial c.
func (v nttVec) scale(c nttPoly) nttVec {
	out := make(nttVec, len(v))
	for i := range v {
		out[i] = nttMul(c, v[i])
	}
	return out
}

// pointwiseAcc computes Σ a_i ⊙ b_i over matching-length vectors. The sum
// is reduced so that it can be fed to invNTT directly.
func pointwiseAcc(a, b nttVec) nttPoly {
	var acc nttPoly
	for i := range a {
		p := nttMul(a[i], b[i])
		for j := range acc {
			acc[j] += p[j]
		}
	}
	return polyReduce(acc)
}

// mulVec computes the matrix-vector product A·v in the NTT domain, one
// pointwiseAcc per row.
func (m matrix) mulVec(v nttVec) nttVec {
	out := make(nttVec, len(m))
	for i := range m {
		out[i] = pointwiseAcc(m[i], v)
	}
	return out
}

// shiftL multiplies every coefficient by 2^d.
func (v polyVec) shiftL() polyVec {
	out := make(polyVec, len(v))
	for i := range v {
		out[i] = polyShiftL(v[i])
	}
	return out
}

// center maps every coefficient onto [-(q-1)/2, (q-1)/2].
func (v polyVec) center() polyVec {
	out := make(polyVec, len(v))
	for i := range v {
		out[i] = polyCenter(v[i])
	}
	return out
}

// infinityNorm returns the maximum per-polynomial infinity norm.
func (v polyVec) infinityNorm() int32 {
	var max int32
	for i := range v {
		if norm := polyInfinityNorm(v[i]); norm > max {
			max = norm
		}
	}
	return max
}

// power2Round splits every coefficient of a vector in [0, q) into
// (t1, t0) with t = t1*2^d + t0.
func (v polyVec) power2Round() (t1, t0 polyVec) {
	t1, t0 = newPolyVec(len(v)), newPolyVec(len(v))
	for i := range v {
		for j := range v[i] {
			t1[i][j], t0[i][j] = power2Round(v[i][j], d)
		}
	}
	return t1, t0
}

// highBits applies highBits to every coefficient of a vector in [0, q).
func (v polyVec) highBits(gamma2 int32) polyVec {
	out := newPolyVec(len(v))
	for i := range v {
		for j := range v[i] {
			out[i][j] = highBits(v[i][j], gamma2)
		}
	}
	return out
}

// lowBits applies lowBits to every coefficient of a vector in [0, q).
func (v polyVec) lowBits(gamma2 int32) polyVec {
	out := newPolyVec(len(v))
	for i := range v {
		for j := range v[i] {
			out[i][j] = lowBits(v[i][j], gamma2)
		}
	}
	return out
}

// makeHints computes the hint vector for adding z to r. It returns the
// hints and the number of set bits.
func makeHints(z, r polyVec, gamma2 int32) (polyVec, int) {
	h := newPolyVec(len(r))
	count := 0
	for i := range r {
		for j := range r[i] {
			h[i][j] = makeHint(z[i][j], r[i][j], gamma2)
			count += int(h[i][j])
		}
	}
	return h, count
}

// useHints recovers the high bits of r+z from r and the hint vector.
func useHints(h, r polyVec, gamma2 int32) polyVec {
	out := newPolyVec(len(r))
	for i := range r {
		for j := range r[i] {
			out[i][j] = useHint(h[i][j], r[i][j], gamma2)
		}
	}
	return out
}
