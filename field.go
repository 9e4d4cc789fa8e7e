package dilithium

// Montgomery form constants, R = 2^32.
const (
	// qInv = q^(-1) mod 2^32
	qInv = 58728449
	// mont = R mod q in centered form
	mont = -4186625
	// montSqDivN = R^2 / n mod q, the trailing invNTT correction
	montSqDivN = 41978
)

// qInv*q ≡ 1 (mod 2^32); the array index is non-zero, and fails to compile,
// otherwise.
var _ = [1]struct{}{}[(qInv*q)%(1<<32)-1]

// montgomeryReduce returns a * R^(-1) mod q for |a| < q * 2^31.
// The result lies in (-q, q).
func montgomeryReduce(a int64) int32 {
	// m = (a mod 2^32) * qInv mod 2^32, interpreted as signed
	m := int32(a) * qInv
	return int32((a - int64(m)*q) >> 32)
}

// reduce32 returns r ≡ a (mod q) with -6283009 <= r <= 6283008 for
// a <= 2^31 - 2^22 - 1.
func reduce32(a int32) int32 {
	t := (a + (1 << 22)) >> 23
	return a - t*q
}

// caddq adds q if a is negative, mapping (-q, q) onto [0, q).
func caddq(a int32) int32 {
	return a + (a>>31)&q
}

// freeze returns the standard representative of a in [0, q).
func freeze(a int32) int32 {
	return caddq(reduce32(a))
}

// centered returns the representative of a in [-(q-1)/2, (q-1)/2].
func centered(a int32) int32 {
	a = freeze(a)
	if a > (q-1)/2 {
		a -= q
	}
	return a
}

// infinityNorm returns |a| using the centered representative of a mod q,
// that is min(a mod q, q - (a mod q)).
func infinityNorm(a int32) int32 {
	a = freeze(a)
	if a > (q-1)/2 {
		return q - a
	}
	return a
}
