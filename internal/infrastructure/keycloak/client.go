package keycloak

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/fiap-postech/auth-service/pkg/apperror"
)

// Config locates the identity provider and the credentials this façade
// holds against it.
type Config struct {
	BaseURL       string
	Realm         string
	ClientID      string
	ClientSecret  string
	AdminUsername string
	AdminPassword string
}

// TokenSet is the provider's token-endpoint response.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	TokenType    string
}

// UserRecord is the provider's admin-API user representation.
type UserRecord struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email,omitempty"`
	FirstName        string `json:"firstName,omitempty"`
	LastName         string `json:"lastName,omitempty"`
	CreatedTimestamp int64  `json:"createdTimestamp,omitempty"`
}

// Client talks to the provider's OAuth2 token endpoint and admin REST API.
// It is registered as a process-wide singleton and holds no mutable state:
// the admin principal re-authenticates before every administrative call
// instead of caching a session, trading round trips for freshness.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *logrus.Logger
	grants *oauth2.Config
	admin  *oauth2.Config
}

func NewClient(cfg Config, logger *logrus.Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 15 * time.Second},
		logger: logger,
		grants: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL: cfg.BaseURL + "/realms/" + cfg.Realm + "/protocol/openid-connect/token",
				// The provider expects client credentials in the form body.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		admin: &oauth2.Config{
			ClientID: "admin-cli",
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.BaseURL + "/realms/master/protocol/openid-connect/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

func (c *Client) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.http)
}

// Login performs the resource-owner password grant. A 401 from the token
// endpoint means the provider rejected the credentials.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenSet, error) {
	tok, err := c.grants.PasswordCredentialsToken(c.withHTTPClient(ctx), username, password)
	if err != nil {
		if retrieveStatus(err) == http.StatusUnauthorized {
			return nil, apperror.InvalidCredentials("invalid cpf or password")
		}
		return nil, apperror.Internal("login against identity provider failed", err)
	}
	return newTokenSet(tok), nil
}

// RefreshToken exchanges a refresh token for a fresh set. The provider
// answers 400 for invalid or expired refresh tokens.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenSet, error) {
	src := c.grants.TokenSource(c.withHTTPClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		if retrieveStatus(err) == http.StatusBadRequest {
			return nil, apperror.InvalidToken("refresh token is invalid or expired")
		}
		return nil, apperror.Internal("token refresh against identity provider failed", err)
	}
	return newTokenSet(tok), nil
}

// Logout asks the provider to revoke the session behind a refresh token.
// Callers decide whether a failed revoke matters; see the auth repository.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"refresh_token": {refreshToken},
	}
	endpoint := c.cfg.BaseURL + "/realms/" + c.cfg.Realm + "/protocol/openid-connect/logout"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("logout: identity provider answered %d", resp.StatusCode)
	}
	return nil
}

// adminToken authenticates the admin principal against the master realm.
// Runs before every administrative call; sessions are deliberately never
// cached to avoid stale-session bugs.
func (c *Client) adminToken(ctx context.Context) (string, error) {
	tok, err := c.admin.PasswordCredentialsToken(c.withHTTPClient(ctx), c.cfg.AdminUsername, c.cfg.AdminPassword)
	if err != nil {
		return "", apperror.Internal("failed to connect to authentication service", err)
	}
	return tok.AccessToken, nil
}

// CreateUser provisions an enabled user with a permanent password
// credential. The username slot carries the CPF.
func (c *Client) CreateUser(ctx context.Context, username, password, email, firstName, lastName string) (*UserRecord, error) {
	token, err := c.adminToken(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := c.searchUsers(ctx, token, username)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperror.UserAlreadyExists("user with this cpf already exists")
	}

	rep := map[string]any{
		"username":      username,
		"enabled":       true,
		"emailVerified": false,
		"credentials": []map[string]any{{
			"type":      "password",
			"value":     password,
			"temporary": false,
		}},
	}
	if email != "" {
		rep["email"] = email
	}
	if firstName != "" {
		rep["firstName"] = firstName
	}
	if lastName != "" {
		rep["lastName"] = lastName
	}

	body, err := json.Marshal(rep)
	if err != nil {
		return nil, apperror.Internal("failed to create user", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.usersURL(), bytes.NewReader(body))
	if err != nil {
		return nil, apperror.Internal("failed to create user", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperror.Internal("failed to create user", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// The search above can race a concurrent registration.
	if resp.StatusCode == http.StatusConflict {
		return nil, apperror.UserAlreadyExists("user with this cpf already exists")
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, apperror.Internal("failed to create user", fmt.Errorf("identity provider answered %d", resp.StatusCode))
	}

	id := lastPathSegment(resp.Header.Get("Location"))
	if id == "" {
		return nil, apperror.Internal("failed to create user", errors.New("provider response carried no user id"))
	}
	return c.getUser(ctx, token, id)
}

// FindUserByUsername looks a user up by exact username. Returns (nil, nil)
// when no user matches.
func (c *Client) FindUserByUsername(ctx context.Context, username string) (*UserRecord, error) {
	token, err := c.adminToken(ctx)
	if err != nil {
		return nil, err
	}
	users, err := c.searchUsers(ctx, token, username)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	rec := users[0]
	return &rec, nil
}

func (c *Client) usersURL() string {
	return c.cfg.BaseURL + "/admin/realms/" + c.cfg.Realm + "/users"
}

func (c *Client) searchUsers(ctx context.Context, token, username string) ([]UserRecord, error) {
	q := url.Values{"username": {username}, "exact": {"true"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.usersURL()+"?"+q.Encode(), nil)
	if err != nil {
		return nil, apperror.Internal("failed to search users", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperror.Internal("failed to search users", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, apperror.Internal("failed to search users", fmt.Errorf("identity provider answered %d", resp.StatusCode))
	}
	var users []UserRecord
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, apperror.Internal("failed to search users", err)
	}
	return users, nil
}

func (c *Client) getUser(ctx context.Context, token, id string) (*UserRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.usersURL()+"/"+id, nil)
	if err != nil {
		return nil, apperror.Internal("failed to fetch user", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperror.Internal("failed to fetch user", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, apperror.Internal("failed to fetch user", fmt.Errorf("identity provider answered %d", resp.StatusCode))
	}
	var rec UserRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, apperror.Internal("failed to fetch user", err)
	}
	return &rec, nil
}

func newTokenSet(tok *oauth2.Token) *TokenSet {
	return &TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresIn:    expiresIn(tok),
		TokenType:    tok.Type(),
	}
}

// expiresIn recovers the provider's expires_in field; the oauth2 package
// keeps it in the raw response map.
func expiresIn(tok *oauth2.Token) int {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return int(v)
	case int64:
		return int(v)
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	}
	if tok.Expiry.IsZero() {
		return 0
	}
	return int(time.Until(tok.Expiry).Seconds())
}

func retrieveStatus(err error) int {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) && rerr.Response != nil {
		return rerr.Response.StatusCode
	}
	return 0
}

func lastPathSegment(s string) string {
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}
