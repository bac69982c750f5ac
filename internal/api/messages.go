package api

import "time"

// Secret is the wire form of a stored secret. It carries metadata only;
// the value is sent solely in RevealSecretResponse.
type Secret struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type CreateSecretRequest struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Value     string `json:"value"`
	Type      string `json:"type,omitempty"`
}

type CreateSecretResponse struct {
	Secret *Secret `json:"secret"`
}

type ListSecretsRequest struct {
	ProjectID string `json:"project_id"`
}

type ListSecretsResponse struct {
	Secrets []*Secret `json:"secrets"`
}

type RevealSecretRequest struct {
	ID string `json:"id"`
}

type RevealSecretResponse struct {
	Secret *Secret `json:"secret"`
	Value  string  `json:"value"`
}

// UpdateSecretRequest changes only the fields that are set. A non-zero
// ExpectedVersion makes the update conditional on the stored version.
type UpdateSecretRequest struct {
	ID              string  `json:"id"`
	Name            *string `json:"name,omitempty"`
	Value           *string `json:"value,omitempty"`
	Type            *string `json:"type,omitempty"`
	ExpectedVersion int64   `json:"expected_version,omitempty"`
}

type UpdateSecretResponse struct {
	Secret *Secret `json:"secret"`
}

type DeleteSecretRequest struct {
	ID string `json:"id"`
}

type DeleteSecretResponse struct{}
