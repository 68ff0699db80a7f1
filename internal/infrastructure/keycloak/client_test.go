package keycloak

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/fiap-postech/auth-service/pkg/apperror"
)

const testRealm = "fiap-pos-tech"

// fakeProvider is an in-memory stand-in for the identity provider, covering
// the token, logout and admin user endpoints the client touches.
type fakeProvider struct {
	t *testing.T

	mu         sync.Mutex
	users      map[string]UserRecord
	byUsername map[string]string
	nextID     int

	rejectLogin   bool
	rejectAdmin   bool
	failLogout    bool
	forceConflict bool

	tokenCalls  int
	logoutCalls int

	lastCreateRep map[string]any

	srv *httptest.Server
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()
	p := &fakeProvider{
		t:          t,
		users:      make(map[string]UserRecord),
		byUsername: make(map[string]string),
	}
	p.srv = httptest.NewServer(http.HandlerFunc(p.handle))
	t.Cleanup(p.srv.Close)
	return p
}

func (p *fakeProvider) seedUser(rec UserRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users[rec.ID] = rec
	p.byUsername[rec.Username] = rec.ID
}

func (p *fakeProvider) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/realms/"+testRealm+"/protocol/openid-connect/token",
		r.URL.Path == "/realms/master/protocol/openid-connect/token":
		p.handleToken(w, r)
	case r.URL.Path == "/realms/"+testRealm+"/protocol/openid-connect/logout":
		p.handleLogout(w, r)
	case r.URL.Path == "/admin/realms/"+testRealm+"/users" && r.Method == http.MethodGet:
		p.handleSearch(w, r)
	case r.URL.Path == "/admin/realms/"+testRealm+"/users" && r.Method == http.MethodPost:
		p.handleCreate(w, r)
	default:
		p.handleGetUser(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (p *fakeProvider) handleToken(w http.ResponseWriter, r *http.Request) {
	require.NoError(p.t, r.ParseForm())
	p.mu.Lock()
	p.tokenCalls++
	rejectLogin, rejectAdmin := p.rejectLogin, p.rejectAdmin
	p.mu.Unlock()

	switch r.PostFormValue("grant_type") {
	case "password":
		if r.PostFormValue("client_id") == "admin-cli" {
			if rejectAdmin {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_grant"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"access_token": "admin-access",
				"token_type":   "Bearer",
				"expires_in":   60,
			})
			return
		}
		if rejectLogin {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":             "invalid_grant",
				"error_description": "Invalid user credentials",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  "access-abc",
			"refresh_token": "refresh-abc",
			"token_type":    "Bearer",
			"expires_in":    300,
		})
	case "refresh_token":
		if r.PostFormValue("refresh_token") != "refresh-abc" {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":             "invalid_grant",
				"error_description": "Invalid refresh token",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  "access-def",
			"refresh_token": "refresh-def",
			"token_type":    "Bearer",
			"expires_in":    300,
		})
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported_grant_type"})
	}
}

func (p *fakeProvider) handleLogout(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.logoutCalls++
	fail := p.failLogout
	p.mu.Unlock()
	if fail {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (p *fakeProvider) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer admin-access" {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	return true
}

func (p *fakeProvider) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !p.requireAdmin(w, r) {
		return
	}
	username := r.URL.Query().Get("username")
	p.mu.Lock()
	defer p.mu.Unlock()
	out := []UserRecord{}
	if id, ok := p.byUsername[username]; ok {
		out = append(out, p.users[id])
	}
	writeJSON(w, http.StatusOK, out)
}

func (p *fakeProvider) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !p.requireAdmin(w, r) {
		return
	}
	var rep map[string]any
	require.NoError(p.t, json.NewDecoder(r.Body).Decode(&rep))

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastCreateRep = rep

	username, _ := rep["username"].(string)
	if _, exists := p.byUsername[username]; exists || p.forceConflict {
		w.WriteHeader(http.StatusConflict)
		return
	}
	p.nextID++
	id := "kc-" + strconv.Itoa(p.nextID)
	rec := UserRecord{
		ID:               id,
		Username:         username,
		CreatedTimestamp: 1700000000000,
	}
	if v, ok := rep["email"].(string); ok {
		rec.Email = v
	}
	if v, ok := rep["firstName"].(string); ok {
		rec.FirstName = v
	}
	if v, ok := rep["lastName"].(string); ok {
		rec.LastName = v
	}
	p.users[id] = rec
	p.byUsername[username] = id

	w.Header().Set("Location", p.srv.URL+"/admin/realms/"+testRealm+"/users/"+id)
	w.WriteHeader(http.StatusCreated)
}

func (p *fakeProvider) handleGetUser(w http.ResponseWriter, r *http.Request) {
	if !p.requireAdmin(w, r) {
		return
	}
	id := lastPathSegment(r.URL.Path)
	p.mu.Lock()
	rec, ok := p.users[id]
	p.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestClient(p *fakeProvider) *Client {
	return NewClient(Config{
		BaseURL:       p.srv.URL,
		Realm:         testRealm,
		ClientID:      "pos-tech-api",
		ClientSecret:  "secret",
		AdminUsername: "admin",
		AdminPassword: "admin",
	}, quietLogger())
}

func TestClientLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p := newFakeProvider(t)
		c := newTestClient(p)

		set, err := c.Login(context.Background(), "12345678900", "Passw0rd")
		require.NoError(t, err)
		assert.Equal(t, "access-abc", set.AccessToken)
		assert.Equal(t, "refresh-abc", set.RefreshToken)
		assert.Equal(t, "Bearer", set.TokenType)
		assert.Equal(t, 300, set.ExpiresIn)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		p := newFakeProvider(t)
		p.rejectLogin = true
		c := newTestClient(p)

		_, err := c.Login(context.Background(), "12345678900", "wrong")
		require.Error(t, err)
		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindInvalidCredentials, appErr.Kind)
		assert.Equal(t, "invalid cpf or password", appErr.Message)
	})
}

func TestClientRefreshToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p := newFakeProvider(t)
		c := newTestClient(p)

		set, err := c.RefreshToken(context.Background(), "refresh-abc")
		require.NoError(t, err)
		assert.Equal(t, "access-def", set.AccessToken)
		assert.Equal(t, "refresh-def", set.RefreshToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		p := newFakeProvider(t)
		c := newTestClient(p)

		_, err := c.RefreshToken(context.Background(), "expired")
		require.Error(t, err)
		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindInvalidToken, appErr.Kind)
		assert.Equal(t, "refresh token is invalid or expired", appErr.Message)
	})
}

func TestClientCreateUser(t *testing.T) {
	t.Run("provisions enabled user with permanent password", func(t *testing.T) {
		p := newFakeProvider(t)
		c := newTestClient(p)

		rec, err := c.CreateUser(context.Background(), "12345678900", "Passw0rd", "ana@example.com", "Ana", "Silva")
		require.NoError(t, err)
		assert.Equal(t, "12345678900", rec.Username)
		assert.Equal(t, "ana@example.com", rec.Email)
		assert.Equal(t, "Ana", rec.FirstName)
		assert.Equal(t, "Silva", rec.LastName)
		assert.NotEmpty(t, rec.ID)

		rep := p.lastCreateRep
		require.NotNil(t, rep)
		assert.Equal(t, true, rep["enabled"])
		creds, ok := rep["credentials"].([]any)
		require.True(t, ok)
		require.Len(t, creds, 1)
		cred := creds[0].(map[string]any)
		assert.Equal(t, "password", cred["type"])
		assert.Equal(t, false, cred["temporary"])
	})

	t.Run("omits empty profile fields", func(t *testing.T) {
		p := newFakeProvider(t)
		c := newTestClient(p)

		_, err := c.CreateUser(context.Background(), "12345678900", "Passw0rd", "", "", "")
		require.NoError(t, err)
		_, hasEmail := p.lastCreateRep["email"]
		assert.False(t, hasEmail)
	})

	t.Run("duplicate caught by search", func(t *testing.T) {
		p := newFakeProvider(t)
		p.seedUser(UserRecord{ID: "kc-0", Username: "12345678900"})
		c := newTestClient(p)

		_, err := c.CreateUser(context.Background(), "12345678900", "Passw0rd", "", "", "")
		require.Error(t, err)
		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindUserAlreadyExists, appErr.Kind)
	})

	t.Run("duplicate caught by conflict", func(t *testing.T) {
		p := newFakeProvider(t)
		p.forceConflict = true
		c := newTestClient(p)

		_, err := c.CreateUser(context.Background(), "12345678900", "Passw0rd", "", "", "")
		require.Error(t, err)
		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindUserAlreadyExists, appErr.Kind)
	})

	t.Run("admin authentication failure", func(t *testing.T) {
		p := newFakeProvider(t)
		p.rejectAdmin = true
		c := newTestClient(p)

		_, err := c.CreateUser(context.Background(), "12345678900", "Passw0rd", "", "", "")
		require.Error(t, err)
		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindInternal, appErr.Kind)
		assert.Contains(t, appErr.Message, "failed to connect to authentication service")
	})
}

func TestClientFindUserByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		p := newFakeProvider(t)
		p.seedUser(UserRecord{ID: "kc-9", Username: "12345678900", Email: "ana@example.com"})
		c := newTestClient(p)

		rec, err := c.FindUserByUsername(context.Background(), "12345678900")
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "kc-9", rec.ID)
	})

	t.Run("absent yields nil nil", func(t *testing.T) {
		p := newFakeProvider(t)
		c := newTestClient(p)

		rec, err := c.FindUserByUsername(context.Background(), "00000000000")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})
}

func TestClientLogout(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p := newFakeProvider(t)
		c := newTestClient(p)

		require.NoError(t, c.Logout(context.Background(), "refresh-abc"))
		assert.Equal(t, 1, p.logoutCalls)
	})

	t.Run("provider failure surfaces", func(t *testing.T) {
		p := newFakeProvider(t)
		p.failLogout = true
		c := newTestClient(p)

		err := c.Logout(context.Background(), "refresh-abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})
}

func TestAuthRepositoryLogoutAbsorbsFailure(t *testing.T) {
	p := newFakeProvider(t)
	p.failLogout = true
	c := newTestClient(p)
	repo := NewAuthRepository(c, NewTokenInspector(), quietLogger())

	assert.NoError(t, repo.Logout(context.Background(), "whatever"))
	assert.Equal(t, 1, p.logoutCalls)
}

func TestExpiresInFallsBackToExpiry(t *testing.T) {
	// Raw responses carry expires_in; the fallback matters for tokens
	// built by hand.
	assert.Equal(t, 0, expiresIn(&oauth2.Token{}))

	got := expiresIn(&oauth2.Token{Expiry: time.Now().Add(90 * time.Second)})
	assert.InDelta(t, 90, got, 2)
}
