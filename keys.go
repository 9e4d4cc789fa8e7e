package dilithium

import (
	"crypto"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

// PublicKey is a Dilithium public key of one security level.
type PublicKey struct {
	s     *Scheme
	rho   [rhoSize]byte
	t1    polyVec
	tr    [trSize]byte
	a     matrix // A in NTT form
	t1Hat nttVec // ntt(t1 * 2^d)
	enc   []byte
}

// PrivateKey is a Dilithium private key of one security level.
type PrivateKey struct {
	params *Params
	s      *Scheme
	rho    [rhoSize]byte
	key    [keySize]byte
	tr     [trSize]byte
	s1     polyVec
	s2     polyVec
	t0     polyVec

	a     matrix
	s1Hat nttVec
	s2Hat nttVec
	t0Hat nttVec
	pub   *PublicKey
}

var _ crypto.Signer = (*PrivateKey)(nil)

// newPublicKey builds a public key from rho, t1 and the already expanded
// matrix, and derives tr from its encoding.
func (s *Scheme) newPublicKey(rho [rhoSize]byte, t1 polyVec, a matrix) *PublicKey {
	pk := &PublicKey{s: s, rho: rho, t1: t1, a: a}
	pk.enc = packPublicKey(s.params, rho[:], t1)
	copy(pk.tr[:], shake256(trSize, pk.enc))
	pk.t1Hat = t1.shiftL().ntt()
	return pk
}

// newKeyFromSeed runs key generation. The seed length must already be
// checked.
func (s *Scheme) newKeyFromSeed(seed []byte) *PrivateKey {
	p := s.params
	expanded := shake256(rhoSize+crhSize+keySize, seed)

	sk := &PrivateKey{params: p, s: s}
	copy(sk.rho[:], expanded[:rhoSize])
	rhoPrime := expanded[rhoSize : rhoSize+crhSize]
	copy(sk.key[:], expanded[rhoSize+crhSize:])

	sk.s1, sk.s2 = expandSecrets(rhoPrime, p)
	sk.a = expandMatrix(sk.rho[:], p.K, p.L, s.cfg.parallelism)
	sk.s1Hat = sk.s1.ntt()

	var t1 polyVec
	t1, sk.t0 = sk.computeT().power2Round()
	sk.pub = s.newPublicKey(sk.rho, t1, sk.a)
	sk.tr = sk.pub.tr
	sk.s2Hat = sk.s2.ntt()
	sk.t0Hat = sk.t0.ntt()
	return sk
}

// computeT returns t = A*s1 + s2 with coefficients in [0, q).
func (sk *PrivateKey) computeT() polyVec {
	as1 := sk.a.mulVec(sk.s1Hat).invNTT()
	return vecCaddq(vecAdd(as1, sk.s2))
}

// parsePrivateKey decodes b and checks that t0 and tr are the ones
// determined by rho, s1 and s2.
func (s *Scheme) parsePrivateKey(b []byte) (*PrivateKey, error) {
	p := s.params
	if len(b) != p.PrivateKeySize() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for level %d",
			ErrMalformedPrivateKey, len(b), p.PrivateKeySize(), p.Level)
	}
	sk, err := unpackPrivateKey(p, b)
	if err != nil {
		return nil, err
	}
	sk.s = s
	sk.a = expandMatrix(sk.rho[:], p.K, p.L, s.cfg.parallelism)
	sk.s1Hat = sk.s1.ntt()

	t1, t0 := sk.computeT().power2Round()
	for i := range t0 {
		if t0[i] != sk.t0[i] {
			return nil, fmt.Errorf("%w: t0 does not match s1 and s2", ErrMalformedPrivateKey)
		}
	}
	sk.pub = s.newPublicKey(sk.rho, t1, sk.a)
	if !ctEqual(sk.pub.tr[:], sk.tr[:]) {
		return nil, fmt.Errorf("%w: tr does not match the public key", ErrMalformedPrivateKey)
	}
	sk.s2Hat = sk.s2.ntt()
	sk.t0Hat = sk.t0.ntt()
	return sk, nil
}

// parsePublicKey decodes b. Every bit pattern of the right length is a
// valid public key.
func (s *Scheme) parsePublicKey(b []byte) (*PublicKey, error) {
	p := s.params
	if len(b) != p.PublicKeySize() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for level %d",
			ErrMalformedPublicKey, len(b), p.PublicKeySize(), p.Level)
	}
	rho, t1 := unpackPublicKey(p, b)
	return s.newPublicKey(rho, t1, expandMatrix(rho[:], p.K, p.L, s.cfg.parallelism)), nil
}

// GenerateKey draws a fresh seed from rand and generates a key pair of the
// given level.
func GenerateKey(rand io.Reader, level int) (*PrivateKey, error) {
	s, err := NewScheme(level)
	if err != nil {
		return nil, err
	}
	var seed [SeedSize]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, err
	}
	return s.NewKeyFromSeed(seed[:])
}

// ParsePublicKey parses an encoded public key of the given level.
func ParsePublicKey(level int, b []byte) (*PublicKey, error) {
	s, err := NewScheme(level)
	if err != nil {
		return nil, err
	}
	return s.ParsePublicKey(b)
}

// ParsePrivateKey parses an encoded private key of the given level.
func ParsePrivateKey(level int, b []byte) (*PrivateKey, error) {
	s, err := NewScheme(level)
	if err != nil {
		return nil, err
	}
	return s.ParsePrivateKey(b)
}

// Params returns the parameters of the key's level.
func (pk *PublicKey) Params() *Params { return pk.s.params }

// Bytes returns the encoded public key rho ‖ t1.
func (pk *PublicKey) Bytes() []byte {
	return append([]byte(nil), pk.enc...)
}

// Fingerprint returns the BLAKE3-256 digest of the encoded public key.
func (pk *PublicKey) Fingerprint() [32]byte {
	return blake3.Sum256(pk.enc)
}

// Equal reports whether pk and other are the same public key.
func (pk *PublicKey) Equal(other crypto.PublicKey) bool {
	o, ok := other.(*PublicKey)
	if !ok || pk.s.params.Level != o.s.params.Level {
		return false
	}
	return ctEqual(pk.enc, o.enc)
}

// Verify reports whether sig is a valid signature of message by pk.
func (pk *PublicKey) Verify(sig, message []byte) bool {
	return pk.s.verify(pk, sig, message) == nil
}

// Params returns the parameters of the key's level.
func (sk *PrivateKey) Params() *Params { return sk.params }

// Bytes returns the encoded private key rho ‖ K ‖ tr ‖ s1 ‖ s2 ‖ t0.
func (sk *PrivateKey) Bytes() []byte {
	return packPrivateKey(sk.params, sk.rho[:], sk.key[:], sk.tr[:], sk.s1, sk.s2, sk.t0)
}

// Public returns the public key corresponding to sk.
func (sk *PrivateKey) Public() crypto.PublicKey {
	return sk.pub
}

// PublicKey returns the public key corresponding to sk.
func (sk *PrivateKey) PublicKey() *PublicKey {
	return sk.pub
}

// Equal reports whether sk and other are the same private key.
func (sk *PrivateKey) Equal(other crypto.PrivateKey) bool {
	o, ok := other.(*PrivateKey)
	if !ok || sk.params.Level != o.params.Level {
		return false
	}
	return ctEqual(sk.Bytes(), o.Bytes())
}

// Sign signs message. Dilithium signs messages directly, so opts, if not
// nil, must have HashFunc() == 0. A nil rand gives a deterministic
// signature; otherwise 32 bytes are read from rand and the signature is
// hedged.
func (sk *PrivateKey) Sign(rand io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	if opts != nil && opts.HashFunc() != 0 {
		return nil, fmt.Errorf("%w: pre-hashed messages are not supported", ErrInvalidOption)
	}
	var rnd []byte
	if rand != nil {
		rnd = make([]byte, rndSize)
		if _, err := io.ReadFull(rand, rnd); err != nil {
			return nil, err
		}
	}
	return sk.s.sign(sk, rnd, message)
}

// SignMessage is equivalent to Sign.
func (sk *PrivateKey) SignMessage(rand io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	return sk.Sign(rand, message, opts)
}

// ctEqual compares two byte strings in time independent of their content.
func ctEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
