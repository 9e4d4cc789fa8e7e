//go:build go1.25

package dilithium

import "crypto"

// Compile-time interface assertion for crypto.MessageSigner (Go 1.25+).
var _ crypto.MessageSigner = (*PrivateKey)(nil)
