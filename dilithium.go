// Package dilithium implements the algebraic core of a Dilithium-family
// Fiat-Shamir-with-aborts lattice signature scheme over
// R_q = Z_q[X]/(X^256+1) with q = 8380417.
//
// Three security levels are supported:
//   - level 2: k=4, l=4, eta=2, gamma1=2^17, gamma2=(q-1)/88
//   - level 3: k=6, l=5, eta=4, gamma1=2^19, gamma2=(q-1)/32
//   - level 5: k=8, l=7, eta=2, gamma1=2^19, gamma2=(q-1)/32
//
// Key generation and signing are deterministic functions of their inputs:
// the same seed always yields byte-identical keys.
//
// Basic usage:
//
//	pk, sk, err := dilithium.KeyPair(seed, 2)
//	if err != nil {
//	    // handle error
//	}
//	sig, err := dilithium.Sign(sk, message)
//	if err != nil {
//	    // handle error
//	}
//	ok := dilithium.Verify(sig, pk, message)
package dilithium

import "fmt"

// Global constants.
const (
	// n is the number of coefficients in polynomials.
	n = 256

	// q is the modulus: q = 2^23 - 2^13 + 1 = 8380417
	q = 8380417

	// d is the number of dropped bits from t.
	d = 13

	// SeedSize is the size of the seed used for key generation.
	SeedSize = 32
)

// Sizes of the seeds and digests carried by keys and signatures.
const (
	rhoSize    = 32
	keySize    = 32
	trSize     = 32
	crhSize    = 64 // mu and rhoprime
	cTildeSize = 32
	rndSize    = 32 // hedged signing randomness
)

// Security level specific constants.
const (
	// gamma2 values
	gamma2QMinus1Div88 = (q - 1) / 88 // 95232, level 2
	gamma2QMinus1Div32 = (q - 1) / 32 // 261888, levels 3 and 5

	// gamma1 values (coefficient range of y)
	gamma1Pow17 = 1 << 17 // level 2
	gamma1Pow19 = 1 << 19 // levels 3 and 5

	// bounds of the fixed-capacity hint representation
	maxK     = 8
	maxOmega = 80
)

// Encoding size constants (bytes per polynomial).
const (
	encodingSize3  = n * 3 / 8  // eta=2 packed
	encodingSize4  = n * 4 / 8  // eta=4 packed or 4-bit w1
	encodingSize6  = n * 6 / 8  // 6-bit w1
	encodingSize10 = n * 10 / 8 // t1 packed
	encodingSize13 = n * 13 / 8 // t0 packed
	encodingSize18 = n * 18 / 8 // z for gamma1=2^17
	encodingSize20 = n * 20 / 8 // z for gamma1=2^19
)

// Params holds the parameters of one security level. Values returned by
// ParamsForLevel must be treated as read-only.
type Params struct {
	Level  int
	K      int   // rows of A, length of s2, t, w, h
	L      int   // columns of A, length of s1, y, z
	Eta    int   // secret coefficient bound
	Tau    int   // number of ±1 coefficients in the challenge
	Beta   int32 // tau * eta
	Gamma1 int32 // coefficient range of y
	Gamma2 int32 // low-order rounding range
	Omega  int   // maximum number of set hint bits
}

var levels = map[int]Params{
	2: {Level: 2, K: 4, L: 4, Eta: 2, Tau: 39, Beta: 78, Gamma1: gamma1Pow17, Gamma2: gamma2QMinus1Div88, Omega: 80},
	3: {Level: 3, K: 6, L: 5, Eta: 4, Tau: 49, Beta: 196, Gamma1: gamma1Pow19, Gamma2: gamma2QMinus1Div32, Omega: 55},
	5: {Level: 5, K: 8, L: 7, Eta: 2, Tau: 60, Beta: 120, Gamma1: gamma1Pow19, Gamma2: gamma2QMinus1Div32, Omega: 75},
}

// ParamsForLevel returns the parameters of a security level. Only levels
// 2, 3 and 5 are defined.
func ParamsForLevel(level int) (*Params, error) {
	p, ok := levels[level]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedLevel, level)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate reports whether every parameter lies in the supported domain.
func (p *Params) Validate() error {
	if _, ok := levels[p.Level]; !ok {
		return fmt.Errorf("%w: %d", ErrUnsupportedLevel, p.Level)
	}
	if p.Eta != 2 && p.Eta != 4 {
		return fmt.Errorf("%w: %d", ErrUnsupportedEta, p.Eta)
	}
	if p.Gamma1 != gamma1Pow17 && p.Gamma1 != gamma1Pow19 {
		return fmt.Errorf("%w: %d", ErrUnsupportedGamma1, p.Gamma1)
	}
	if p.Gamma2 != gamma2QMinus1Div88 && p.Gamma2 != gamma2QMinus1Div32 {
		return fmt.Errorf("%w: %d", ErrUnsupportedGamma2, p.Gamma2)
	}
	if p.K < 1 || p.K > maxK || p.L < 1 || p.L > maxK {
		return fmt.Errorf("%w: dimensions %dx%d", ErrUnsupportedLevel, p.K, p.L)
	}
	// the challenge draws its signs from a single 64-bit word
	if p.Tau < 1 || p.Tau > 64 || p.Beta != int32(p.Tau*p.Eta) {
		return fmt.Errorf("%w: tau=%d beta=%d", ErrUnsupportedLevel, p.Tau, p.Beta)
	}
	if p.Omega < 1 || p.Omega > maxOmega {
		return fmt.Errorf("%w: omega=%d", ErrUnsupportedLevel, p.Omega)
	}
	return nil
}

// polyEtaSize returns the packed size of one s1/s2 polynomial.
func (p *Params) polyEtaSize() int {
	if p.Eta == 2 {
		return encodingSize3
	}
	return encodingSize4
}

// polyZSize returns the packed size of one y/z polynomial.
func (p *Params) polyZSize() int {
	if p.Gamma1 == gamma1Pow17 {
		return encodingSize18
	}
	return encodingSize20
}

// polyW1Size returns the packed size of one w1 polynomial.
func (p *Params) polyW1Size() int {
	if p.Gamma2 == gamma2QMinus1Div88 {
		return encodingSize6
	}
	return encodingSize4
}

// PublicKeySize returns the size of an encoded public key: rho ‖ t1.
func (p *Params) PublicKeySize() int {
	return rhoSize + p.K*encodingSize10
}

// PrivateKeySize returns the size of an encoded private key:
// rho ‖ K ‖ tr ‖ s1 ‖ s2 ‖ t0.
func (p *Params) PrivateKeySize() int {
	return rhoSize + keySize + trSize + (p.L+p.K)*p.polyEtaSize() + p.K*encodingSize13
}

// SignatureSize returns the size of an encoded signature: c ‖ z ‖ h.
func (p *Params) SignatureSize() int {
	return cTildeSize + p.L*p.polyZSize() + p.Omega + p.K
}

// paramsBySize finds the level whose encoding of some object has the given
// length. Sizes are distinct across levels for every object.
func paramsBySize(length int, size func(*Params) int) (*Params, bool) {
	for level := range levels {
		p := levels[level]
		if size(&p) == length {
			return &p, true
		}
	}
	return nil, false
}
