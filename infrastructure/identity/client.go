// Package identity is a thin client for the managed auth provider.
// Credential storage, password hashing and token issuance live entirely on
// the provider's side; this client only speaks its two REST endpoints.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"crcl-backend/application/ports"
	pkgerrors "crcl-backend/pkg/errors"
)

// Client talks to the identity provider's admin and token endpoints
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an identity provider client
func NewClient(baseURL, serviceKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

var _ ports.IdentityProvider = (*Client)(nil)

type createUserRequest struct {
	Email        string            `json:"email"`
	Password     string            `json:"password"`
	EmailConfirm bool              `json:"email_confirm"`
	UserMetadata map[string]string `json:"user_metadata,omitempty"`
}

type createUserResponse struct {
	ID string `json:"id"`
}

// CreateUser registers credentials with the provider and returns the
// provider-issued user id
func (c *Client) CreateUser(ctx context.Context, email, password, name string) (string, error) {
	body := createUserRequest{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
		UserMetadata: map[string]string{"name": name},
	}

	var resp createUserResponse
	status, err := c.post(ctx, "/admin/users", body, &resp)
	if err != nil {
		return "", err
	}

	switch {
	case status == http.StatusOK || status == http.StatusCreated:
		if resp.ID == "" {
			return "", pkgerrors.NewInternalError("identity provider returned no user id")
		}
		return resp.ID, nil
	case status == http.StatusUnprocessableEntity || status == http.StatusConflict:
		return "", pkgerrors.NewValidationError("email is already registered")
	case status >= 400 && status < 500:
		return "", pkgerrors.NewValidationError("identity provider rejected the signup")
	default:
		return "", pkgerrors.NewUnavailableError("identity provider", fmt.Errorf("status %d", status))
	}
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// SignIn performs a password grant against the provider
func (c *Client) SignIn(ctx context.Context, email, password string) (ports.Token, error) {
	var resp tokenResponse
	status, err := c.post(ctx, "/token?grant_type=password", tokenRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return ports.Token{}, err
	}

	switch {
	case status == http.StatusOK:
		return ports.Token{
			AccessToken: resp.AccessToken,
			TokenType:   resp.TokenType,
			ExpiresIn:   resp.ExpiresIn,
		}, nil
	case status == http.StatusBadRequest || status == http.StatusUnauthorized:
		return ports.Token{}, pkgerrors.NewUnauthorizedError("invalid email or password")
	default:
		return ports.Token{}, pkgerrors.NewUnavailableError("identity provider", fmt.Errorf("status %d", status))
	}
}

// post sends a JSON request and decodes the response body on success codes
func (c *Client) post(ctx context.Context, path string, body, out interface{}) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, pkgerrors.NewInternalError("failed to encode identity request").WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, pkgerrors.NewInternalError("failed to build identity request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("identity provider request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return 0, pkgerrors.NewUnavailableError("identity provider", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 300 && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, pkgerrors.NewInternalError("failed to decode identity response").WithCause(err)
		}
	}
	return resp.StatusCode, nil
}
