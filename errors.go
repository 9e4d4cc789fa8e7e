package dilithium

import "errors"

// Configuration errors.
var (
	ErrUnsupportedLevel  = errors.New("dilithium: unsupported security level")
	ErrUnsupportedEta    = errors.New("dilithium: unsupported eta")
	ErrUnsupportedGamma1 = errors.New("dilithium: unsupported gamma1")
	ErrUnsupportedGamma2 = errors.New("dilithium: unsupported gamma2")
	ErrInvalidOption     = errors.New("dilithium: invalid option")
)

// Input errors.
var (
	ErrInvalidSeed         = errors.New("dilithium: invalid seed length")
	ErrMalformedPublicKey  = errors.New("dilithium: malformed public key")
	ErrMalformedPrivateKey = errors.New("dilithium: malformed private key")
	ErrMalformedSignature  = errors.New("dilithium: malformed signature")
)

// Outcome errors.
var (
	ErrInvalidSignature = errors.New("dilithium: invalid signature")
	ErrRetriesExhausted = errors.New("dilithium: signing retries exhausted")
)
