// internal/model/principal.go
package model

// APIKeyPrincipal is the identity attached to requests authenticated with the static key.
const APIKeyPrincipal = "api-key"

// Principal is an identity allowed to call the API.
type Principal struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Disabled     bool   `json:"disabled"`
}
