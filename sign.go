package dilithium

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Scheme binds the parameters of one security level to a configuration.
// A Scheme is safe for concurrent use.
type Scheme struct {
	params *Params
	cfg    config
}

// NewScheme returns a Scheme for level 2, 3 or 5.
func NewScheme(level int, opts ...Option) (*Scheme, error) {
	p, err := ParamsForLevel(level)
	if err != nil {
		return nil, err
	}
	s := &Scheme{params: p, cfg: defaultConfig()}
	for _, opt := range opts {
		opt(&s.cfg)
	}
	if err := s.cfg.validate(p); err != nil {
		return nil, err
	}
	s.cfg.logger = s.cfg.logger.With("security_level", level)
	return s, nil
}

// Params returns the parameters of the scheme's level.
func (s *Scheme) Params() *Params { return s.params }

// NewKeyFromSeed deterministically generates a key pair from a 32-byte
// seed.
func (s *Scheme) NewKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSeed, len(seed), SeedSize)
	}
	sk := s.newKeyFromSeed(seed)
	if s.cfg.logger.Enabled(slog.LevelDebug) {
		fp := sk.pub.Fingerprint()
		s.cfg.logger.Debug("key pair generated", "fingerprint", hex.EncodeToString(fp[:8]))
	}
	return sk, nil
}

// KeyPair deterministically generates the encoded public and private keys
// for a 32-byte seed.
func (s *Scheme) KeyPair(seed []byte) (pk, sk []byte, err error) {
	key, err := s.NewKeyFromSeed(seed)
	if err != nil {
		return nil, nil, err
	}
	return key.pub.Bytes(), key.Bytes(), nil
}

// ParsePublicKey parses an encoded public key of the scheme's level.
func (s *Scheme) ParsePublicKey(b []byte) (*PublicKey, error) {
	return s.parsePublicKey(b)
}

// ParsePrivateKey parses an encoded private key of the scheme's level.
func (s *Scheme) ParsePrivateKey(b []byte) (*PrivateKey, error) {
	return s.parsePrivateKey(b)
}

// Sign signs message with the encoded private key sk. Signing is
// deterministic unless the scheme was created WithRandomness.
func (s *Scheme) Sign(sk, message []byte) ([]byte, error) {
	key, err := s.parsePrivateKey(sk)
	if err != nil {
		return nil, err
	}
	var rnd []byte
	if s.cfg.rand != nil {
		rnd = make([]byte, rndSize)
		if _, err := io.ReadFull(s.cfg.rand, rnd); err != nil {
			return nil, err
		}
	}
	return s.sign(key, rnd, message)
}

// Verify reports whether sig is a valid signature of message under the
// encoded public key pk. Malformed input of any kind yields false.
func (s *Scheme) Verify(sig, pk, message []byte) bool {
	return s.CheckSignature(sig, pk, message) == nil
}

// CheckSignature is like Verify but reports why a signature was rejected.
// Malformed keys and signatures wrap ErrMalformedPublicKey or
// ErrMalformedSignature; well-formed but wrong signatures wrap
// ErrInvalidSignature.
func (s *Scheme) CheckSignature(sig, pk, message []byte) error {
	// lengths first, so that malformed input costs no matrix expansion
	if err := s.checkSignatureSize(sig); err != nil {
		return err
	}
	key, err := s.parsePublicKey(pk)
	if err != nil {
		return err
	}
	return s.verify(key, sig, message)
}

// attemptOutcome is the result of one signing attempt.
type attemptOutcome int

const (
	attemptAccepted attemptOutcome = iota
	attemptRejectedZNorm
	attemptRejectedLowBits
	attemptRejectedCT0
	attemptRejectedHints
)

func (o attemptOutcome) String() string {
	switch o {
	case attemptAccepted:
		return "accepted"
	case attemptRejectedZNorm:
		return "z norm"
	case attemptRejectedLowBits:
		return "low bits"
	case attemptRejectedCT0:
		return "ct0 norm"
	case attemptRejectedHints:
		return "hint count"
	}
	return fmt.Sprintf("attemptOutcome(%d)", int(o))
}

// signer carries the per-message state shared by all attempts.
type signer struct {
	p        *Params
	sk       *PrivateKey
	mu       []byte
	rhoPrime []byte
}

// attempt runs signing attempt number n, which draws y from nonces
// n*l .. n*l+l-1. On acceptance it returns the encoded signature.
func (sg *signer) attempt(n int) (attemptOutcome, []byte) {
	p, sk := sg.p, sg.sk

	y := expandMaskVec(sg.rhoPrime, uint16(n*p.L), p)
	w := vecCaddq(sk.a.mulVec(y.ntt()).invNTT())
	w1 := w.highBits(p.Gamma2)

	cTilde := shake256(cTildeSize, sg.mu, packW1Vec(w1, p.Gamma2))
	cHat := ntt(sampleChallenge(cTilde, p.Tau))

	z := vecAdd(y, sk.s1Hat.scale(cHat).invNTT())
	if z.infinityNorm() >= p.Gamma1-p.Beta {
		return attemptRejectedZNorm, nil
	}

	r := vecSub(w, sk.s2Hat.scale(cHat).invNTT())
	if vecFreeze(r).lowBits(p.Gamma2).infinityNorm() >= p.Gamma2-p.Beta {
		return attemptRejectedLowBits, nil
	}

	ct0 := sk.t0Hat.scale(cHat).invNTT()
	if ct0.infinityNorm() >= p.Gamma2 {
		return attemptRejectedCT0, nil
	}

	h, count := makeHints(vecNeg(ct0), vecAdd(r, ct0), p.Gamma2)
	if count > p.Omega {
		return attemptRejectedHints, nil
	}
	hv, _ := newHintVector(h, p.Omega)

	return attemptAccepted, packSignature(p, cTilde, z.center(), &hv)
}

// sign runs the rejection loop. A nil rnd selects deterministic signing.
func (s *Scheme) sign(sk *PrivateKey, rnd, message []byte) ([]byte, error) {
	sg := &signer{p: s.params, sk: sk}
	sg.mu = shake256(crhSize, sk.tr[:], message)
	if rnd != nil {
		sg.rhoPrime = shake256(crhSize, sk.key[:], rnd, sg.mu)
	} else {
		sg.rhoPrime = shake256(crhSize, sk.key[:], sg.mu)
	}

	for n := 0; n < s.cfg.maxAttempts; n++ {
		outcome, sig := sg.attempt(n)
		if outcome == attemptAccepted {
			s.cfg.logger.Debug("message signed", "attempts", n+1, "hedged", rnd != nil)
			return sig, nil
		}
		s.cfg.logger.Debug("signing attempt rejected", "attempt", n+1, "reason", outcome.String())
	}
	s.cfg.logger.Warn("signing retries exhausted", "attempts", s.cfg.maxAttempts)
	return nil, fmt.Errorf("%w after %d attempts", ErrRetriesExhausted, s.cfg.maxAttempts)
}

// verify checks sig against message under pk.
func (s *Scheme) verify(pk *PublicKey, sig, message []byte) error {
	err := s.verifySignature(pk, sig, message)
	if err != nil {
		s.cfg.logger.Debug("signature rejected", "malformed", isMalformed(err), "err", err)
	}
	return err
}

func (s *Scheme) verifySignature(pk *PublicKey, sig, message []byte) error {
	p := s.params
	if pk.s.params.Level != p.Level {
		return fmt.Errorf("%w: level %d key used with level %d", ErrMalformedPublicKey, pk.s.params.Level, p.Level)
	}
	if err := s.checkSignatureSize(sig); err != nil {
		return err
	}

	cTilde, z, hv, err := unpackSignature(p, sig)
	if err != nil {
		return err
	}
	if z.infinityNorm() >= p.Gamma1-p.Beta {
		return fmt.Errorf("%w: z out of range", ErrInvalidSignature)
	}

	mu := shake256(crhSize, pk.tr[:], message)
	cHat := ntt(sampleChallenge(cTilde, p.Tau))

	az := pk.a.mulVec(z.ntt())
	w := vecFreeze(vecSub(az, pk.t1Hat.scale(cHat)).invNTT())
	w1 := useHints(hv.dense(), w, p.Gamma2)

	if !ctEqual(cTilde, shake256(cTildeSize, mu, packW1Vec(w1, p.Gamma2))) {
		return fmt.Errorf("%w: challenge mismatch", ErrInvalidSignature)
	}
	return nil
}

func (s *Scheme) checkSignatureSize(sig []byte) error {
	p := s.params
	if len(sig) != p.SignatureSize() {
		return fmt.Errorf("%w: got %d bytes, want %d for level %d",
			ErrMalformedSignature, len(sig), p.SignatureSize(), p.Level)
	}
	return nil
}

// KeyPair deterministically generates the encoded public and private keys
// of the given level from a 32-byte seed.
func KeyPair(seed []byte, level int) (pk, sk []byte, err error) {
	s, err := NewScheme(level)
	if err != nil {
		return nil, nil, err
	}
	return s.KeyPair(seed)
}

// Sign signs message with an encoded private key. The level is inferred
// from the key length. Signing is deterministic.
func Sign(sk, message []byte) ([]byte, error) {
	p, ok := paramsBySize(len(sk), (*Params).PrivateKeySize)
	if !ok {
		return nil, fmt.Errorf("%w: no level has %d-byte private keys", ErrMalformedPrivateKey, len(sk))
	}
	s, err := NewScheme(p.Level)
	if err != nil {
		return nil, err
	}
	return s.Sign(sk, message)
}

// Verify reports whether sig is a valid signature of message under the
// encoded public key pk. The level is inferred from the key length and
// must match the signature length.
func Verify(sig, pk, message []byte) bool {
	p, ok := paramsBySize(len(pk), (*Params).PublicKeySize)
	if !ok || len(sig) != p.SignatureSize() {
		return false
	}
	s, err := NewScheme(p.Level)
	if err != nil {
		return false
	}
	return s.Verify(sig, pk, message)
}

// isMalformed reports whether err was caused by input of the wrong shape
// rather than a wrong signature.
func isMalformed(err error) bool {
	return errors.Is(err, ErrMalformedPublicKey) ||
		errors.Is(err, ErrMalformedSignature) ||
		errors.Is(err, ErrMalformedPrivateKey)
}
