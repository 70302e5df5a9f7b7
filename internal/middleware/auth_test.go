package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabletop-manager/api/internal/config"
	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/pkg/apperr"
)

const testSecret = "test-secret"

func sign(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func setupAuthRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", UserAuth(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, c.MustGet(CtxUserID).(uuid.UUID).String())
	})
	return r
}

func TestUserAuth(t *testing.T) {
	userID := uuid.New()
	cfg := &config.Config{Auth: config.AuthCfg{JWTSecret: testSecret, Issuer: "tabletop"}}
	valid := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    "tabletop",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	tests := []struct {
		name           string
		header         func() string
		expectedStatus int
	}{
		{
			name:           "valid token",
			header:         func() string { return "Bearer " + sign(t, testSecret, valid) },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			header:         func() string { return "" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not a bearer token",
			header:         func() string { return "Basic abc" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong secret",
			header:         func() string { return "Bearer " + sign(t, "other", valid) },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "expired",
			header: func() string {
				c := valid
				c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
				return "Bearer " + sign(t, testSecret, c)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong issuer",
			header: func() string {
				c := valid
				c.Issuer = "someone-else"
				return "Bearer " + sign(t, testSecret, c)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "subject is not a uuid",
			header: func() string {
				c := valid
				c.Subject = "gm@example.com"
				return "Bearer " + sign(t, testSecret, c)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAuthRouter(cfg)
			req := httptest.NewRequest("GET", "/me", nil)
			if h := tt.header(); h != "" {
				req.Header.Set("Authorization", h)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, userID.String(), w.Body.String())
			}
		})
	}
}

func TestUserAuth_RejectsWhenSecretUnset(t *testing.T) {
	router := setupAuthRouter(&config.Config{})
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, "x", jwt.RegisteredClaims{Subject: uuid.NewString()}))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type stubRoles map[uuid.UUID]string

func (s stubRoles) RoleOf(_ context.Context, _ uuid.UUID, userID uuid.UUID) (string, error) {
	role, ok := s[userID]
	if !ok {
		return "", apperr.Permission("not a member of this game space")
	}
	return role, nil
}

func TestRequireMemberAndGM(t *testing.T) {
	gm, player, stranger := uuid.New(), uuid.New(), uuid.New()
	roles := stubRoles{gm: model.RoleGM, player: model.RolePlayer}

	tests := []struct {
		name        string
		user        uuid.UUID
		path        string
		readStatus  int
		writeStatus int
	}{
		{"gm", gm, uuid.NewString(), http.StatusOK, http.StatusOK},
		{"player", player, uuid.NewString(), http.StatusOK, http.StatusForbidden},
		{"stranger", stranger, uuid.NewString(), http.StatusForbidden, http.StatusForbidden},
		{"bad id", gm, "not-a-uuid", http.StatusBadRequest, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			g := r.Group("/game_spaces/:game_space_id", func(c *gin.Context) {
				c.Set(CtxUserID, tt.user)
			}, RequireMember(roles))
			g.GET("", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRole)) })
			g.POST("", RequireGM(), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest("GET", "/game_spaces/"+tt.path, nil))
			assert.Equal(t, tt.readStatus, w.Code)

			w = httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest("POST", "/game_spaces/"+tt.path, nil))
			assert.Equal(t, tt.writeStatus, w.Code)
		})
	}
}
