package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/twitter-clone-api/internal/constants"
	"github.com/yukikurage/twitter-clone-api/internal/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// managerAuth adapts a token manager plus revoked and deleted sets to Authenticator.
type managerAuth struct {
	manager *token.Manager
	revoked map[string]bool
	deleted map[uint64]bool
	err     error
}

func (a managerAuth) UserExists(_ context.Context, userID uint64) (bool, error) {
	if a.err != nil {
		return false, a.err
	}
	return !a.deleted[userID], nil
}

func (a managerAuth) Authenticate(_ context.Context, raw string) (*token.Claims, error) {
	claims, err := a.manager.Verify(raw)
	if err != nil {
		return nil, err
	}
	if a.revoked[claims.ID] {
		return nil, token.ErrInvalidToken
	}
	return claims, nil
}

func setupAuthRouter(auth Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))

	r.POST("/login/:id", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, uint64(7))
		_ = session.Save()
		c.Status(http.StatusNoContent)
	})

	r.GET("/me", RequireAuth(auth), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		tokenID, expiry, hasToken := GetToken(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id":   userID,
			"ok":        ok,
			"token_id":  tokenID,
			"has_token": hasToken,
			"expiry":    expiry,
		})
	})

	return r
}

func TestRequireAuth_Bearer(t *testing.T) {
	manager := token.NewManager("secret", time.Hour)
	r := setupAuthRouter(managerAuth{manager: manager})

	tok, err := manager.Generate(42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Value)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 42, body["user_id"])
	assert.Equal(t, tok.ID, body["token_id"])
	assert.Equal(t, true, body["has_token"])
}

func TestRequireAuth_RejectsBadTokens(t *testing.T) {
	manager := token.NewManager("secret", time.Hour)
	tok, err := manager.Generate(42)
	require.NoError(t, err)

	r := setupAuthRouter(managerAuth{manager: manager, revoked: map[string]bool{tok.ID: true}})

	for name, header := range map[string]string{
		"revoked": "Bearer " + tok.Value,
		"garbage": "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", header)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"status":"error"`)
		})
	}
}

func TestRequireAuth_Session(t *testing.T) {
	r := setupAuthRouter(managerAuth{manager: token.NewManager("secret", time.Hour)})

	login := httptest.NewRecorder()
	r.ServeHTTP(login, httptest.NewRequest(http.MethodPost, "/login/7", nil))
	cookies := login.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 7, body["user_id"])
	assert.Equal(t, false, body["has_token"])
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	manager := token.NewManager("secret", time.Hour)
	r := setupAuthRouter(managerAuth{manager: manager, deleted: map[uint64]bool{42: true, 7: true}})

	tok, err := manager.Generate(42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Value)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	login := httptest.NewRecorder()
	r.ServeHTTP(login, httptest.NewRequest(http.MethodPost, "/login/7", nil))

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_UserLookupFails(t *testing.T) {
	manager := token.NewManager("secret", time.Hour)
	r := setupAuthRouter(managerAuth{manager: manager, err: errors.New("db down")})

	tok, err := manager.Generate(42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Value)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireAuth_Anonymous(t *testing.T) {
	r := setupAuthRouter(managerAuth{manager: token.NewManager("secret", time.Hour)})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserID(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  uint64
		ok    bool
	}{
		{"uint64", uint64(5), 5, true},
		{"uint", uint(5), 5, true},
		{"int", 5, 5, true},
		{"negative int", -1, 0, false},
		{"string", "5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Set(constants.ContextKeyUserID, tt.value)

			got, ok := GetUserID(c)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetUserID(c)
	assert.False(t, ok)
}
