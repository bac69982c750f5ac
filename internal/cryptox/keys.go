package cryptox

import (
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	rawKeyHexLen = KeySize * 2
)

// Parameters of the password-based stretch applied to key material that is
// not a raw hex key. Changing any of them makes every stored bundle
// undecryptable.
const (
	kdfN = 16384
	kdfR = 8
	kdfP = 1
)

var kdfSalt = []byte("salt")

// DeriveKey turns configured key material into a 32-byte AES key.
//
// Material of exactly 64 hex characters is decoded as the raw key. Anything
// else is stretched with scrypt under the fixed application salt. Empty
// material yields ErrConfiguration.
func DeriveKey(material string) ([]byte, error) {
	if material == "" {
		return nil, ErrConfiguration
	}

	if isRawHexKey(material) {
		key, err := hex.DecodeString(material)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return key, nil
	}

	key, err := scrypt.Key([]byte(material), kdfSalt, kdfN, kdfR, kdfP, KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}

// GenerateKey returns fresh random key material in the raw 64-hex form
// accepted by DeriveKey.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(randReader, key); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}
	return hex.EncodeToString(key), nil
}

func isRawHexKey(s string) bool {
	if len(s) != rawKeyHexLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
