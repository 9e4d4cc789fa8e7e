package dilithium

// power2Round decomposes r in [0, q) into (r1, r0) such that
// r = r1*2^bits + r0 with -2^(bits-1) < r0 <= 2^(bits-1).
// Ties round down so that r0 keeps the upper end of its range.
func power2Round(r int32, bits uint) (r1, r0 int32) {
	r1 = (r + (1 << (bits - 1)) - 1) >> bits
	r0 = r - r1<<bits
	return r1, r0
}

// decompose splits r in [0, q) into (r1, r0) where r = r1*2*gamma2 + r0
// mod q and -gamma2 < r0 <= gamma2. The single exception is
// r - r0 = q - 1, where r1 = 0 and r0 is decremented by one.
//
// The division by 2*gamma2 is done with a multiply-shift specific to each
// of the two supported gamma2 values; r1 then lies in [0, 16) for
// gamma2 = (q-1)/32 and in [0, 44) for gamma2 = (q-1)/88.
func decompose(r, gamma2 int32) (r1, r0 int32) {
	r1 = (r + 127) >> 7
	switch gamma2 {
	case gamma2QMinus1Div32:
		// 2*gamma2 = 128 * 4092, 2^22 / 1025 ≈ 4092
		r1 = (r1*1025 + (1 << 21)) >> 22
		r1 &= 15
	case gamma2QMinus1Div88:
		// 2*gamma2 = 128 * 1488, 2^24 / 11275 ≈ 1488
		r1 = (r1*11275 + (1 << 23)) >> 24
		// r1 = 44 wraps to 0
		r1 ^= ((43 - r1) >> 31) & r1
	default:
		panic("dilithium: unsupported gamma2")
	}
	r0 = r - r1*2*gamma2
	// r0 > (q-1)/2 only in the wrap-around case
	r0 -= (((q-1)/2 - r0) >> 31) & q
	return r1, r0
}

// highBits returns r1 of decompose(r, gamma2).
func highBits(r, gamma2 int32) int32 {
	r1, _ := decompose(r, gamma2)
	return r1
}

// lowBits returns r0 of decompose(r, gamma2).
func lowBits(r, gamma2 int32) int32 {
	_, r0 := decompose(r, gamma2)
	return r0
}

// makeHint returns 1 if adding z to r changes the high bits of r, 0
// otherwise. r may be any residue; it is frozen to [0, q) first.
func makeHint(z, r, gamma2 int32) int32 {
	r = freeze(r)
	if highBits(r, gamma2) != highBits(freeze(r+z), gamma2) {
		return 1
	}
	return 0
}

// useHint returns the high bits of r corrected by the hint h. For h = 1
// the adjacent high-bits value is returned, in the direction given by the
// sign of the low bits and wrapping at 16 or 44 depending on gamma2.
// When h = makeHint(z, r) and |z| <= gamma2 the result equals
// highBits(r + z).
func useHint(h, r, gamma2 int32) int32 {
	r1, r0 := decompose(freeze(r), gamma2)
	if h == 0 {
		return r1
	}

	if gamma2 == gamma2QMinus1Div32 {
		if r0 > 0 {
			return (r1 + 1) & 15
		}
		return (r1 - 1) & 15
	}
	if r0 > 0 {
		if r1 == 43 {
			return 0
		}
		return r1 + 1
	}
	if r1 == 0 {
		return 43
	}
	return r1 - 1
}
