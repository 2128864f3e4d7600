package ports

import "context"

// Token is an access token issued by the identity provider
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int
}

// IdentityProvider is the managed auth backend. Credential storage, password
// hashing and session issuance all live behind this contract; the service
// only consumes it.
type IdentityProvider interface {
	// CreateUser registers credentials and returns the provider-issued user id
	CreateUser(ctx context.Context, email, password, name string) (string, error)
	// SignIn performs a password grant
	SignIn(ctx context.Context, email, password string) (Token, error)
}
