package cryptox

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when no key material is configured.
	// It indicates a deployment problem and is never retried.
	ErrConfiguration = errors.New("encryption key is not configured")

	// ErrInvalidKey is returned when a raw key is not 32 bytes long.
	ErrInvalidKey = errors.New("invalid encryption key")

	// ErrDecryptionFailed is the common parent of every decrypt failure.
	// Callers outside the vault should only ever see this one.
	ErrDecryptionFailed = errors.New("failed to decrypt")

	// ErrFormat means the bundle is not iv:tag:ciphertext hex.
	ErrFormat = fmt.Errorf("%w: invalid encrypted data format", ErrDecryptionFailed)

	// ErrIntegrity means the authentication tag did not verify.
	ErrIntegrity = fmt.Errorf("%w: message authentication failed", ErrDecryptionFailed)
)
