package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/twitter-clone-api/internal/constants"
	"github.com/yukikurage/twitter-clone-api/internal/database"
	"github.com/yukikurage/twitter-clone-api/internal/dto"
	apierrors "github.com/yukikurage/twitter-clone-api/internal/errors"
	"github.com/yukikurage/twitter-clone-api/internal/models"
	"github.com/yukikurage/twitter-clone-api/internal/repository"
	"github.com/yukikurage/twitter-clone-api/internal/services"
	"github.com/yukikurage/twitter-clone-api/internal/token"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.Models()...))

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, token.NewManager("test-secret", time.Hour), nil)
	handler := NewAuthHandler(authService)

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
	}
}

func newSessionRouter() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data interface{}) apierrors.Envelope {
	t.Helper()

	var raw struct {
		apierrors.Envelope
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.Envelope
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := newSessionRouter()
	r.POST("/users", env.handler.Signup)

	payload := map[string]string{
		"name":     "New User",
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "supersecret",
	}
	w := postJSON(t, r, "/users", payload)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.AuthDTO
	envelope := decodeEnvelope(t, w, &response)
	require.Equal(t, apierrors.StatusSuccess, envelope.Status)
	require.Equal(t, payload["username"], response.User.Username)
	require.Equal(t, "bearer", response.Token.Type)
	require.NotEmpty(t, response.Token.Token)
	require.NotEmpty(t, w.Result().Cookies())
}

func TestAuthHandler_SignupRejects(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := newSessionRouter()
	r.POST("/users", env.handler.Signup)

	valid := map[string]string{
		"name": "Alice", "username": "alice", "email": "alice@x.com", "password": "supersecret",
	}
	require.Equal(t, http.StatusCreated, postJSON(t, r, "/users", valid).Code)

	tests := []struct {
		name    string
		payload interface{}
		status  int
	}{
		{"duplicate username", map[string]string{"name": "Bob", "username": "alice", "email": "bob@x.com", "password": "supersecret"}, http.StatusConflict},
		{"duplicate email", map[string]string{"name": "Bob", "username": "bob", "email": "alice@x.com", "password": "supersecret"}, http.StatusConflict},
		{"missing name", map[string]string{"username": "carol", "email": "carol@x.com", "password": "supersecret"}, http.StatusBadRequest},
		{"invalid email", map[string]string{"name": "Carol", "username": "carol", "email": "carol", "password": "supersecret"}, http.StatusBadRequest},
		{"short password", map[string]string{"name": "Carol", "username": "carol", "email": "carol@x.com", "password": "123"}, http.StatusBadRequest},
		{"malformed body", []string{"not", "an", "object"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, r, "/users", tt.payload)
			require.Equal(t, tt.status, w.Code)
			require.Equal(t, apierrors.StatusError, decodeEnvelope(t, w, nil).Status)
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, _, err := env.authService.Signup(context.Background(), services.SignupInput{
		Name:     "Existing",
		Username: "existing",
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := newSessionRouter()
	r.POST("/login", env.handler.Login)

	w := postJSON(t, r, "/login", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthDTO
	decodeEnvelope(t, w, &response)
	require.Equal(t, "existing", response.User.Username)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")

	w = postJSON(t, r, "/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	envelope := decodeEnvelope(t, w, nil)
	require.Equal(t, apierrors.ErrCodeInvalidCredentials, envelope.Code)
	require.Empty(t, w.Result().Cookies())
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, _, err := env.authService.Signup(context.Background(), services.SignupInput{
		Name:     "Current",
		Username: "current",
		Email:    "current@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{
		"current_password": "supersecret",
		"new_password":     "evenmoresecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/account/change_password", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.ChangePassword(c)

	require.Equal(t, http.StatusOK, w.Code)

	_, _, err = env.authService.Login(context.Background(), services.LoginInput{
		Email:    "current@example.com",
		Password: "evenmoresecret",
	})
	require.NoError(t, err)
}

func TestAuthHandler_ChangePasswordRequiresUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/account/change_password", nil)

	env.handler.ChangePassword(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
