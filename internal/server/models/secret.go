// Package models defines the server-side records persisted in PostgreSQL.
package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/projectvault/internal/common"
)

// SecretType classifies a secret. It has no effect on how the value is
// stored or revealed.
type SecretType string

const (
	SecretTypeAPIKey   SecretType = "api_key"
	SecretTypePassword SecretType = "password"
	SecretTypeToken    SecretType = "token"
	SecretTypeURL      SecretType = "url"
	SecretTypeOther    SecretType = "other"
)

// ParseSecretType validates s. The empty string maps to SecretTypeOther.
func ParseSecretType(s string) (SecretType, error) {
	switch t := SecretType(s); t {
	case "":
		return SecretTypeOther, nil
	case SecretTypeAPIKey, SecretTypePassword, SecretTypeToken, SecretTypeURL, SecretTypeOther:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown secret type %q", common.ErrorValidation, s)
	}
}

// Secret is a stored project credential. ValueEncrypted is an opaque
// cryptox bundle; the cleartext never appears on this type.
type Secret struct {
	ID             string
	ProjectID      string
	Name           string
	ValueEncrypted string
	Type           SecretType
	// Version starts at 1 and is bumped by every update.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks a record read back from the store.
func (s *Secret) Validate() error {
	switch {
	case s.ID == "":
		return fmt.Errorf("%w: secret without id", common.ErrorMalformedRecord)
	case s.ProjectID == "":
		return fmt.Errorf("%w: secret %s without project", common.ErrorMalformedRecord, s.ID)
	case s.Name == "":
		return fmt.Errorf("%w: secret %s without name", common.ErrorMalformedRecord, s.ID)
	case s.ValueEncrypted == "":
		return fmt.Errorf("%w: secret %s without value", common.ErrorMalformedRecord, s.ID)
	}
	if _, err := ParseSecretType(string(s.Type)); err != nil || s.Type == "" {
		return fmt.Errorf("%w: secret %s has type %q", common.ErrorMalformedRecord, s.ID, s.Type)
	}
	return nil
}

// RevealedSecret is a Secret together with its decrypted value. Only the
// vault's reveal path builds one.
type RevealedSecret struct {
	Secret
	Value string
}

// SecretUpdate describes a partial update. Nil fields are left unchanged.
// A non-zero ExpectedVersion must match the stored version.
type SecretUpdate struct {
	Name            *string
	Value           *string
	Type            *SecretType
	ExpectedVersion int64
}
