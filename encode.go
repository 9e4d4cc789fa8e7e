package dilithium

import "fmt"

// Every polynomial is encoded as a little-endian bitstream of fixed-width
// fields, coefficient 0 in the lowest bits. Signed quantities are biased
// (center - x) first so that only unsigned fields reach the wire:
//
//	object   width  bias        groups
//	t1       10     none        4 coeffs -> 5 bytes
//	t0       13     2^(d-1)     8 coeffs -> 13 bytes
//	eta=2    3      eta         8 coeffs -> 3 bytes
//	eta=4    4      eta         2 coeffs -> 1 byte
//	z, y     18     2^17        4 coeffs -> 9 bytes
//	z, y     20     2^19        2 coeffs -> 5 bytes
//	w1       6      none        4 coeffs -> 3 bytes
//	w1       4      none        2 coeffs -> 1 byte

// packBits writes the low bits of each value into b, which must hold
// n*bits/8 bytes.
func packBits(b []byte, v *[n]uint32, bits uint) {
	var acc uint64
	var accBits uint
	j := 0
	for _, x := range v {
		acc |= uint64(x) << accBits
		accBits += bits
		for accBits >= 8 {
			b[j] = byte(acc)
			j++
			acc >>= 8
			accBits -= 8
		}
	}
}

// unpackBits reads n fields of the given width from b.
func unpackBits(b []byte, bits uint) (v [n]uint32) {
	mask := uint64(1)<<bits - 1
	var acc uint64
	var accBits uint
	j := 0
	for i := range v {
		for accBits < bits {
			acc |= uint64(b[j]) << accBits
			j++
			accBits += 8
		}
		v[i] = uint32(acc & mask)
		acc >>= bits
		accBits -= bits
	}
	return v
}

// packBiased packs center - f[i] for every coefficient.
func packBiased(b []byte, f poly, center int32, bits uint) {
	var v [n]uint32
	for i := range f {
		v[i] = uint32(center - f[i])
	}
	packBits(b, &v, bits)
}

// unpackBiased inverts packBiased.
func unpackBiased(b []byte, center int32, bits uint) poly {
	v := unpackBits(b, bits)
	var f poly
	for i := range v {
		f[i] = center - int32(v[i])
	}
	return f
}

// packT1 packs a polynomial with coefficients in [0, 2^10).
func packT1(f poly) []byte {
	b := make([]byte, encodingSize10)
	var v [n]uint32
	for i := range f {
		v[i] = uint32(f[i])
	}
	packBits(b, &v, 10)
	return b
}

// unpackT1 unpacks a polynomial with 10-bit coefficients.
func unpackT1(b []byte) poly {
	v := unpackBits(b, 10)
	var f poly
	for i := range v {
		f[i] = int32(v[i])
	}
	return f
}

// packT0 packs a polynomial with coefficients in (-2^12, 2^12].
func packT0(f poly) []byte {
	b := make([]byte, encodingSize13)
	packBiased(b, f, 1<<(d-1), d)
	return b
}

// unpackT0 unpacks a polynomial with 13-bit biased coefficients. Every
// bit pattern decodes to a coefficient in (-2^12, 2^12].
func unpackT0(b []byte) poly {
	return unpackBiased(b, 1<<(d-1), d)
}

// packEta packs a polynomial with coefficients in [-eta, eta].
func packEta(f poly, eta int) []byte {
	switch eta {
	case 2:
		b := make([]byte, encodingSize3)
		packBiased(b, f, 2, 3)
		return b
	case 4:
		b := make([]byte, encodingSize4)
		packBiased(b, f, 4, 4)
		return b
	}
	panic("dilithium: unsupported eta")
}

// unpackEta unpacks a polynomial with coefficients in [-eta, eta]. Codes
// above 2*eta are rejected.
func unpackEta(b []byte, eta int) (poly, error) {
	var bits uint
	switch eta {
	case 2:
		bits = 3
	case 4:
		bits = 4
	default:
		return poly{}, fmt.Errorf("%w: %d", ErrUnsupportedEta, eta)
	}
	v := unpackBits(b, bits)
	var f poly
	for i := range v {
		if v[i] > uint32(2*eta) {
			return poly{}, fmt.Errorf("%w: eta code %d out of range", ErrMalformedPrivateKey, v[i])
		}
		f[i] = int32(eta) - int32(v[i])
	}
	return f, nil
}

// zBits returns the field width of y and z coefficients for gamma1.
func zBits(gamma1 int32) uint {
	switch gamma1 {
	case gamma1Pow17:
		return 18
	case gamma1Pow19:
		return 20
	}
	panic("dilithium: unsupported gamma1")
}

// packZ packs a polynomial with coefficients in (-gamma1, gamma1].
func packZ(f poly, gamma1 int32) []byte {
	bits := zBits(gamma1)
	b := make([]byte, n*bits/8)
	packBiased(b, f, gamma1, bits)
	return b
}

// unpackZ unpacks a polynomial packed by packZ. Every bit pattern decodes
// to a coefficient in (-gamma1, gamma1].
func unpackZ(b []byte, gamma1 int32) poly {
	return unpackBiased(b, gamma1, zBits(gamma1))
}

// packW1 packs the high bits of w: 6 bits for gamma2 = (q-1)/88,
// 4 bits for gamma2 = (q-1)/32.
func packW1(f poly, gamma2 int32) []byte {
	var bits uint
	switch gamma2 {
	case gamma2QMinus1Div88:
		bits = 6
	case gamma2QMinus1Div32:
		bits = 4
	default:
		panic("dilithium: unsupported gamma2")
	}
	b := make([]byte, n*bits/8)
	var v [n]uint32
	for i := range f {
		v[i] = uint32(f[i])
	}
	packBits(b, &v, bits)
	return b
}

// packW1Vec concatenates the packed high bits of every polynomial.
func packW1Vec(w1 polyVec, gamma2 int32) []byte {
	var b []byte
	for i := range w1 {
		b = append(b, packW1(w1[i], gamma2)...)
	}
	return b
}

// packPublicKey encodes rho ‖ t1.
func packPublicKey(p *Params, rho []byte, t1 polyVec) []byte {
	b := make([]byte, 0, p.PublicKeySize())
	b = append(b, rho[:rhoSize]...)
	for i := range t1 {
		b = append(b, packT1(t1[i])...)
	}
	return b
}

// unpackPublicKey decodes rho ‖ t1. The length must already be checked.
func unpackPublicKey(p *Params, b []byte) (rho [rhoSize]byte, t1 polyVec) {
	copy(rho[:], b[:rhoSize])
	b = b[rhoSize:]
	t1 = newPolyVec(p.K)
	for i := range t1 {
		t1[i] = unpackT1(b[:encodingSize10])
		b = b[encodingSize10:]
	}
	return rho, t1
}

// packPrivateKey encodes rho ‖ K ‖ tr ‖ s1 ‖ s2 ‖ t0.
func packPrivateKey(p *Params, rho, key, tr []byte, s1, s2, t0 polyVec) []byte {
	b := make([]byte, 0, p.PrivateKeySize())
	b = append(b, rho[:rhoSize]...)
	b = append(b, key[:keySize]...)
	b = append(b, tr[:trSize]...)
	for i := range s1 {
		b = append(b, packEta(s1[i], p.Eta)...)
	}
	for i := range s2 {
		b = append(b, packEta(s2[i], p.Eta)...)
	}
	for i := range t0 {
		b = append(b, packT0(t0[i])...)
	}
	return b
}

// unpackPrivateKey decodes a private key. The length must already be
// checked; out-of-range eta codes are reported as ErrMalformedPrivateKey.
func unpackPrivateKey(p *Params, b []byte) (sk *PrivateKey, err error) {
	sk = &PrivateKey{params: p}
	copy(sk.rho[:], b[:rhoSize])
	copy(sk.key[:], b[rhoSize:rhoSize+keySize])
	copy(sk.tr[:], b[rhoSize+keySize:rhoSize+keySize+trSize])
	b = b[rhoSize+keySize+trSize:]

	etaSize := p.polyEtaSize()
	sk.s1 = newPolyVec(p.L)
	for i := range sk.s1 {
		if sk.s1[i], err = unpackEta(b[:etaSize], p.Eta); err != nil {
			return nil, err
		}
		b = b[etaSize:]
	}
	sk.s2 = newPolyVec(p.K)
	for i := range sk.s2 {
		if sk.s2[i], err = unpackEta(b[:etaSize], p.Eta); err != nil {
			return nil, err
		}
		b = b[etaSize:]
	}
	sk.t0 = newPolyVec(p.K)
	for i := range sk.t0 {
		sk.t0[i] = unpackT0(b[:encodingSize13])
		b = b[encodingSize13:]
	}
	return sk, nil
}

// packSignature encodes c ‖ z ‖ h. z must be centered.
func packSignature(p *Params, cTilde []byte, z polyVec, h *hintVector) []byte {
	b := make([]byte, 0, p.SignatureSize())
	b = append(b, cTilde[:cTildeSize]...)
	for i := range z {
		b = append(b, packZ(z[i], p.Gamma1)...)
	}
	return append(b, h.encode(p.Omega)...)
}

// unpackSignature decodes c ‖ z ‖ h. The length must already be checked;
// an invalid hint encoding is reported as ErrInvalidSignature.
func unpackSignature(p *Params, b []byte) (cTilde []byte, z polyVec, h hintVector, err error) {
	cTilde = b[:cTildeSize]
	b = b[cTildeSize:]
	zSize := p.polyZSize()
	z = newPolyVec(p.L)
	for i := range z {
		z[i] = unpackZ(b[:zSize], p.Gamma1)
		b = b[zSize:]
	}
	h, err = decodeHintVector(b, p.K, p.Omega)
	return cTilde, z, h, err
}
