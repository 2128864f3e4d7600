package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crcl-backend/application/ports"
	"crcl-backend/application/services"
	domainconfig "crcl-backend/domain/config"
	"crcl-backend/infrastructure/config"
	"crcl-backend/infrastructure/di"
	"crcl-backend/infrastructure/persistence/memory"
	"crcl-backend/interfaces/http/rest"
	"crcl-backend/pkg/auth"
)

const testSecret = "router-test-secret"

// fakeIdentity stands in for the managed auth backend and issues real HS256
// tokens so the auth middleware can be exercised end to end
type fakeIdentity struct {
	generator *auth.JWTGenerator
	users     map[string]string // email -> user id
	nextID    int
}

func newFakeIdentity(t *testing.T) *fakeIdentity {
	t.Helper()

	gen, err := auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SecretKey:  testSecret,
		ExpiryTime: time.Hour,
	})
	require.NoError(t, err)
	return &fakeIdentity{generator: gen, users: map[string]string{}}
}

func (f *fakeIdentity) CreateUser(ctx context.Context, email, password, name string) (string, error) {
	f.nextID++
	id := fmt.Sprintf("user-%d", f.nextID)
	f.users[email] = id
	return id, nil
}

func (f *fakeIdentity) SignIn(ctx context.Context, email, password string) (ports.Token, error) {
	token, err := f.generator.GenerateToken(f.users[email], email, nil)
	if err != nil {
		return ports.Token{}, err
	}
	return ports.Token{AccessToken: token, TokenType: "bearer", ExpiresIn: 3600}, nil
}

var _ ports.IdentityProvider = (*fakeIdentity)(nil)

type testServer struct {
	srv      *httptest.Server
	identity *fakeIdentity
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zap.NewNop()
	store := memory.NewStore()
	dc := domainconfig.DefaultDomainConfig()
	identity := newFakeIdentity(t)

	graph := services.NewCircleGraph(store, store, logger)
	scorer := services.NewCredibilityScorer(store, store, store, graph, dc, logger)
	composer := services.NewFeedComposer(store, store, graph, scorer, dc, logger)

	container := &di.Container{
		Config:       &config.Config{Environment: "test", JWTSecret: testSecret},
		DomainConfig: dc,
		Logger:       logger,
		Repositories: &di.Repositories{Users: store, Circles: store, Content: store, Trust: store},
		Identity:     identity,
		CircleGraph:  graph,
		Scorer:       scorer,
		Composer:     composer,
	}

	validator, err := auth.NewJWTValidator(auth.JWTConfig{SecretKey: testSecret})
	require.NoError(t, err)

	srv := httptest.NewServer(rest.NewRouter(container, validator, logger).Setup())
	t.Cleanup(srv.Close)

	return &testServer{srv: srv, identity: identity}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

// signup registers a user and returns their id and a valid access token
func (s *testServer) signup(t *testing.T, email, name string) (string, string) {
	t.Helper()

	resp, raw := s.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]interface{}{
		"email":    email,
		"password": "long-enough-password",
		"name":     name,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var signup struct {
		UserID string `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(raw, &signup))

	resp, raw = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "long-enough-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var login struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(raw, &login))

	return signup.UserID, login.AccessToken
}

func TestRouter_HealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/health", "/ready"} {
		resp, _ := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestRouter_Signup_Validation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{name: "bad email", body: map[string]interface{}{"email": "nope", "password": "long-enough-password", "name": "Alice"}},
		{name: "short password", body: map[string]interface{}{"email": "a@example.com", "password": "short", "name": "Alice"}},
		{name: "missing name", body: map[string]interface{}{"email": "a@example.com", "password": "long-enough-password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := s.do(t, http.MethodPost, "/api/v1/auth/signup", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, http.MethodGet, "/api/v1/feed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/v1/feed", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_SignupLoginMe(t *testing.T) {
	s := newTestServer(t)
	userID, token := s.signup(t, "alice@example.com", "Alice")

	resp, raw := s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var me struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Credibility int    `json:"credibilityScore"`
	}
	require.NoError(t, json.Unmarshal(raw, &me))
	assert.Equal(t, userID, me.ID)
	assert.Equal(t, "Alice", me.Name)
	assert.Equal(t, 0, me.Credibility)
}

func TestRouter_CircleAndFeedFlow(t *testing.T) {
	s := newTestServer(t)
	aliceID, aliceToken := s.signup(t, "alice@example.com", "Alice")
	bobID, bobToken := s.signup(t, "bob@example.com", "Bob")

	// alice posts to her inner circle before bob is a member
	resp, raw := s.do(t, http.MethodPost, "/api/v1/recommendations", aliceToken, map[string]interface{}{
		"text":       "try the ramen place",
		"visibility": "inner",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))

	// bob sees nothing yet
	resp, raw = s.do(t, http.MethodGet, "/api/v1/feed", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var feed struct {
		Items []struct {
			ID          string `json:"id"`
			AuthorID    string `json:"authorId"`
			Credibility int    `json:"credibility"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(raw, &feed))
	assert.Empty(t, feed.Items)

	// feedback on the hidden item reads as missing
	resp, _ = s.do(t, http.MethodPost, "/api/v1/content/"+created.ID+"/like", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// alice adds bob to her inner circle
	resp, raw = s.do(t, http.MethodPut, "/api/v1/circles/inner/members/"+bobID, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	// now the item shows up and takes feedback
	resp, raw = s.do(t, http.MethodGet, "/api/v1/feed", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	require.NoError(t, json.Unmarshal(raw, &feed))
	require.Len(t, feed.Items, 1)
	assert.Equal(t, created.ID, feed.Items[0].ID)
	assert.Equal(t, aliceID, feed.Items[0].AuthorID)

	resp, _ = s.do(t, http.MethodPost, "/api/v1/content/"+created.ID+"/like", bobToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// self membership is rejected
	resp, _ = s.do(t, http.MethodPut, "/api/v1/circles/inner/members/"+aliceID, aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// trust assignment
	resp, _ = s.do(t, http.MethodPut, "/api/v1/trust/"+aliceID, bobToken, map[string]interface{}{"weight": 0.8})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPut, "/api/v1/trust/"+bobID, bobToken, map[string]interface{}{"weight": 0.8})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ProfileUpdate(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signup(t, "alice@example.com", "Alice")

	resp, _ := s.do(t, http.MethodPut, "/api/v1/profile", token, map[string]interface{}{
		"name":      "Alice B",
		"interests": []string{"hiking", "hiking", "ramen"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		Name      string   `json:"name"`
		Interests []string `json:"interests"`
	}
	require.NoError(t, json.Unmarshal(raw, &me))
	assert.Equal(t, "Alice B", me.Name)
	assert.Equal(t, []string{"hiking", "ramen"}, me.Interests)
}

func TestRouter_FeedQueryValidation(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signup(t, "alice@example.com", "Alice")

	tests := []struct {
		name string
		path string
	}{
		{name: "bad visibility", path: "/api/v1/feed?visibility=public"},
		{name: "bad kind", path: "/api/v1/feed?kinds=poll"},
		{name: "bad limit", path: "/api/v1/feed?limit=abc"},
		{name: "bad cursor", path: "/api/v1/feed?cursor=!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := s.do(t, http.MethodGet, tt.path, token, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
