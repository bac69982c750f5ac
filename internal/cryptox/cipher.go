// Package cryptox implements the authenticated encryption used to keep
// project secrets at rest.
//
// A bundle is three lowercase hex segments joined by colons:
//
//	hex(iv):hex(tag):hex(ciphertext)
//
// The IV is 16 random bytes drawn per call and the tag is the 16-byte
// AES-256-GCM authentication tag. There is no version byte; the algorithm
// is implicit.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/projectvault/internal/common"
)

const (
	IVSize  = 16
	TagSize = 16

	bundleSeparator = ":"
	bundleParts     = 3
)

// randReader is a test seam for the IV source.
var randReader io.Reader = rand.Reader

// Cipher encrypts and decrypts single secret values under one derived key.
// It is safe for concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher from a raw 32-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("error creating new cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, IVSize)
	if err != nil {
		return nil, fmt.Errorf("error creating GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// NewCipherFromMaterial derives the key from configured material (see
// DeriveKey) and builds a Cipher from it.
func NewCipherFromMaterial(material string) (*Cipher, error) {
	key, err := DeriveKey(material)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(key)

	return NewCipher(key)
}

// Encrypt seals cleartext under a fresh IV and returns the bundle.
func (c *Cipher) Encrypt(cleartext string) (string, error) {
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(randReader, iv); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}

	plaintext := []byte(cleartext)
	defer common.WipeByteArray(plaintext)

	sealed := c.aead.Seal(nil, iv, plaintext, nil)
	ct, tag := sealed[:len(sealed)-TagSize], sealed[len(sealed)-TagSize:]

	return strings.Join([]string{
		hex.EncodeToString(iv),
		hex.EncodeToString(tag),
		hex.EncodeToString(ct),
	}, bundleSeparator), nil
}

// Decrypt opens a bundle produced by Encrypt. Structural problems yield
// ErrFormat and a tag mismatch yields ErrIntegrity; in both cases no
// cleartext is returned.
func (c *Cipher) Decrypt(bundle string) (string, error) {
	iv, tag, ct, err := splitBundle(bundle)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(ct)+len(tag))
	sealed = append(sealed, ct...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", ErrIntegrity
	}
	defer common.WipeByteArray(plaintext)

	return string(plaintext), nil
}

func splitBundle(bundle string) (iv, tag, ct []byte, err error) {
	parts := strings.Split(bundle, bundleSeparator)
	if len(parts) != bundleParts {
		return nil, nil, nil, fmt.Errorf("%w: got %d segments", ErrFormat, len(parts))
	}

	if iv, err = hex.DecodeString(parts[0]); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: iv: %v", ErrFormat, err)
	}
	if tag, err = hex.DecodeString(parts[1]); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: tag: %v", ErrFormat, err)
	}
	if ct, err = hex.DecodeString(parts[2]); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: ciphertext: %v", ErrFormat, err)
	}

	if len(iv) != IVSize {
		return nil, nil, nil, fmt.Errorf("%w: iv is %d bytes", ErrFormat, len(iv))
	}
	if len(tag) != TagSize {
		return nil, nil, nil, fmt.Errorf("%w: tag is %d bytes", ErrFormat, len(tag))
	}

	return iv, tag, ct, nil
}
