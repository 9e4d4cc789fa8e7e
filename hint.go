package dilithium

import "fmt"

// hintVector is the sparse form of a hint vector h: the coefficient
// indices of the set bits, polynomial by polynomial, in a fixed-capacity
// array, and after each polynomial the running count of set bits.
type hintVector struct {
	pos  [maxOmega]uint8
	ends [maxK]uint8
	k    int
}

// newHintVector compresses a dense 0/1 vector. It reports false when more
// than omega bits are set.
func newHintVector(h polyVec, omega int) (hv hintVector, ok bool) {
	hv.k = len(h)
	idx := 0
	for i := range h {
		for j := range h[i] {
			if h[i][j] == 0 {
				continue
			}
			if idx == omega {
				return hintVector{}, false
			}
			hv.pos[idx] = uint8(j)
			idx++
		}
		hv.ends[i] = uint8(idx)
	}
	return hv, true
}

// count returns the total number of set bits.
func (hv *hintVector) count() int {
	if hv.k == 0 {
		return 0
	}
	return int(hv.ends[hv.k-1])
}

// dense expands the hint vector into k polynomials of 0/1 coefficients.
func (hv *hintVector) dense() polyVec {
	h := newPolyVec(hv.k)
	start := 0
	for i := 0; i < hv.k; i++ {
		end := int(hv.ends[i])
		for _, j := range hv.pos[start:end] {
			h[i][j] = 1
		}
		start = end
	}
	return h
}

// encode returns the omega position bytes, zero padded, followed by the k
// running counts.
func (hv *hintVector) encode(omega int) []byte {
	b := make([]byte, omega+hv.k)
	copy(b, hv.pos[:hv.count()])
	copy(b[omega:], hv.ends[:hv.k])
	return b
}

// decodeHintVector parses the wire form of h. Counts must be
// non-decreasing and at most omega, positions strictly increasing within
// each polynomial, and unused position bytes zero, so that every hint
// vector has exactly one encoding.
func decodeHintVector(b []byte, k, omega int) (hv hintVector, err error) {
	if len(b) != omega+k {
		return hintVector{}, fmt.Errorf("%w: hint length %d", ErrMalformedSignature, len(b))
	}
	hv.k = k
	start := 0
	for i := 0; i < k; i++ {
		end := int(b[omega+i])
		if end < start || end > omega {
			return hintVector{}, fmt.Errorf("%w: hint count %d out of order", ErrInvalidSignature, end)
		}
		for j := start; j < end; j++ {
			if j > start && b[j-1] >= b[j] {
				return hintVector{}, fmt.Errorf("%w: hint positions not increasing", ErrInvalidSignature)
			}
		}
		hv.ends[i] = uint8(end)
		start = end
	}
	for j := start; j < omega; j++ {
		if b[j] != 0 {
			return hintVector{}, fmt.Errorf("%w: non-zero hint padding", ErrInvalidSignature)
		}
	}
	copy(hv.pos[:], b[:start])
	return hv, nil
}
