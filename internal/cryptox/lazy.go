package cryptox

import "sync"

// LazyCipher defers key derivation until the first Encrypt or Decrypt, so a
// missing key only breaks secret operations and not process startup.
// The outcome of the first derivation, success or error, is kept for the
// life of the value.
type LazyCipher struct {
	material func() string

	once   sync.Once
	cipher *Cipher
	err    error
}

// NewLazyCipher returns a LazyCipher that reads key material from material
// on first use.
func NewLazyCipher(material func() string) *LazyCipher {
	return &LazyCipher{material: material}
}

func (l *LazyCipher) get() (*Cipher, error) {
	l.once.Do(func() {
		l.cipher, l.err = NewCipherFromMaterial(l.material())
	})
	return l.cipher, l.err
}

// Encrypt implements the same contract as Cipher.Encrypt.
func (l *LazyCipher) Encrypt(cleartext string) (string, error) {
	c, err := l.get()
	if err != nil {
		return "", err
	}
	return c.Encrypt(cleartext)
}

// Decrypt implements the same contract as Cipher.Decrypt.
func (l *LazyCipher) Decrypt(bundle string) (string, error) {
	c, err := l.get()
	if err != nil {
		return "", err
	}
	return c.Decrypt(bundle)
}
