package dilithium

import (
	"golang.org/x/crypto/sha3"
	"golang.org/x/sync/errgroup"
)

const (
	shake128Rate = 168
	shake256Rate = 136
)

// shake256 returns the first size bytes of SHAKE256 over the concatenation
// of parts.
func shake256(size int, parts ...[]byte) []byte {
	h := sha3.NewShake256()
	for _, p := range parts {
		h.Write(p)
	}
	out := make([]byte, size)
	h.Read(out)
	return out
}

// sampleUniform generates the entry (row, col) of A by rejection sampling
// from SHAKE128(rho ‖ col ‖ row): 3-byte chunks masked to 23 bits, values
// >= q rejected. The result is taken to be in the NTT domain.
func sampleUniform(rho []byte, row, col int) nttPoly {
	h := sha3.NewShake128()
	h.Write(rho)
	h.Write([]byte{byte(col), byte(row)})

	var buf [shake128Rate]byte
	var a nttPoly
	j := 0
	for j < n {
		h.Read(buf[:])
		for i := 0; i < len(buf) && j < n; i += 3 {
			t := uint32(buf[i]) | uint32(buf[i+1])<<8 | uint32(buf[i+2])<<16
			t &= 0x7FFFFF
			if t < q {
				a[j] = int32(t)
				j++
			}
		}
	}
	return a
}

// sampleBounded generates a polynomial with coefficients in [-eta, eta]
// from SHAKE256(seed ‖ nonce), low nibble first. For eta = 2 nibbles below
// 15 are accepted and mapped to 2 - (t mod 5); for eta = 4 nibbles below 9
// are mapped to 4 - t.
func sampleBounded(seed []byte, nonce uint16, eta int) poly {
	var bound uint8
	switch eta {
	case 2:
		bound = 15
	case 4:
		bound = 9
	default:
		panic("dilithium: unsupported eta")
	}

	h := sha3.NewShake256()
	h.Write(seed)
	h.Write([]byte{byte(nonce), byte(nonce >> 8)})

	var buf [shake256Rate]byte
	var a poly
	j := 0
	for j < n {
		h.Read(buf[:])
		for i := 0; i < len(buf) && j < n; i++ {
			for _, t := range [2]uint8{buf[i] & 0x0F, buf[i] >> 4} {
				if t >= bound || j == n {
					continue
				}
				if eta == 2 {
					t %= 5
				}
				a[j] = int32(eta) - int32(t)
				j++
			}
		}
	}
	return a
}

// expandMask generates a masking polynomial with coefficients in
// (-gamma1, gamma1] by unpacking exactly one z-sized block of
// SHAKE256(seed ‖ nonce). Every bit pattern is valid, so nothing is
// rejected.
func expandMask(seed []byte, nonce uint16, gamma1 int32) poly {
	h := sha3.NewShake256()
	h.Write(seed)
	h.Write([]byte{byte(nonce), byte(nonce >> 8)})

	buf := make([]byte, n*zBits(gamma1)/8)
	h.Read(buf)
	return unpackZ(buf, gamma1)
}

// sampleChallenge generates the challenge polynomial with exactly tau
// coefficients in {-1, 1} from SHAKE128(seed). The first 8 bytes hold the
// sign bits (0 for +1, 1 for -1); the rest feed a Fisher-Yates index
// stream where an index above the current position is rejected.
func sampleChallenge(seed []byte, tau int) poly {
	h := sha3.NewShake128()
	h.Write(seed)

	var buf [shake128Rate]byte
	h.Read(buf[:])

	var signs uint64
	for i := 0; i < 8; i++ {
		signs |= uint64(buf[i]) << (8 * i)
	}
	offset := 8

	var c poly
	for i := n - tau; i < n; i++ {
		var j int
		for {
			if offset == len(buf) {
				h.Read(buf[:])
				offset = 0
			}
			j = int(buf[offset])
			offset++
			if j <= i {
				break
			}
		}
		c[i] = c[j]
		c[j] = 1 - 2*int32(signs&1)
		signs >>= 1
	}
	return c
}

// expandMatrix generates A from rho. Rows are sampled concurrently by at
// most workers goroutines; every entry depends only on (rho, row, col), so
// the result does not depend on scheduling.
func expandMatrix(rho []byte, k, l, workers int) matrix {
	a := make(matrix, k)
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range a {
		g.Go(func() error {
			row := make(nttVec, l)
			for j := range row {
				row[j] = sampleUniform(rho, i, j)
			}
			a[i] = row
			return nil
		})
	}
	// row workers never fail
	_ = g.Wait()
	return a
}

// expandSecrets samples s1 with nonces 0..l-1 and s2 with nonces l..l+k-1.
func expandSecrets(rhoPrime []byte, p *Params) (s1, s2 polyVec) {
	s1, s2 = newPolyVec(p.L), newPolyVec(p.K)
	for i := range s1 {
		s1[i] = sampleBounded(rhoPrime, uint16(i), p.Eta)
	}
	for i := range s2 {
		s2[i] = sampleBounded(rhoPrime, uint16(p.L+i), p.Eta)
	}
	return s1, s2
}

// expandMaskVec samples y with nonces kappa..kappa+l-1.
func expandMaskVec(rhoPrime []byte, kappa uint16, p *Params) polyVec {
	y := newPolyVec(p.L)
	for i := range y {
		y[i] = expandMask(rhoPrime, kappa+uint16(i), p.Gamma1)
	}
	return y
}
