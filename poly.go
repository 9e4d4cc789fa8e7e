package dilithium

// poly is a ring element in the coefficient domain. Coefficients are signed
// residues mod q; each producing function documents its output range.
type poly [n]int32

// nttPoly is a ring element in the NTT domain. Only values of this type can
// be multiplied, so products across domains do not type-check.
type nttPoly [n]int32

// ringElement is satisfied by both domains. Coefficient-wise operations are
// generic over it but keep their operands in a single domain.
type ringElement interface {
	~[n]int32
}

// polyAdd adds two polynomials coefficient-wise. The result is reduced to
// the range of reduce32.
func polyAdd[T ringElement](a, b T) (c T) {
	for i := range c {
		c[i] = reduce32(a[i] + b[i])
	}
	return c
}

// polySub subtracts two polynomials coefficient-wise. The result is reduced
// to the range of reduce32.
func polySub[T ringElement](a, b T) (c T) {
	for i := range c {
		c[i] = reduce32(a[i] - b[i])
	}
	return c
}

// polyNeg negates every coefficient.
func polyNeg[T ringElement](a T) (c T) {
	for i := range c {
		c[i] = -a[i]
	}
	return c
}

// polyReduce maps every coefficient into the range of reduce32.
func polyReduce[T ringElement](a T) T {
	for i := range a {
		a[i] = reduce32(a[i])
	}
	return a
}

// polyCaddq maps every coefficient from (-q, q) onto [0, q).
func polyCaddq[T ringElement](a T) T {
	for i := range a {
		a[i] = caddq(a[i])
	}
	return a
}

// polyFreeze maps every coefficient onto [0, q).
func polyFreeze[T ringElement](a T) T {
	for i := range a {
		a[i] = freeze(a[i])
	}
	return a
}

// polyCenter maps every coefficient onto [-(q-1)/2, (q-1)/2].
func polyCenter(a poly) poly {
	for i := range a {
		a[i] = centered(a[i])
	}
	return a
}

// polyShiftL multiplies every coefficient by 2^d. Coefficients must be
// below 2^(31-d) in absolute value.
func polyShiftL(a poly) poly {
	for i := range a {
		a[i] <<= d
	}
	return a
}

// polyInfinityNorm returns the maximum centered absolute value of any
// coefficient.
func polyInfinityNorm(a poly) int32 {
	var max int32
	for i := range a {
		if v := infinityNorm(a[i]); v > max {
			max = v
		}
	}
	return max
}

// polyMul multiplies two coefficient-domain polynomials through the NTT.
// The result lies in (-q, q).
func polyMul(a, b poly) poly {
	return invNTT(nttMul(ntt(a), ntt(b)))
}
