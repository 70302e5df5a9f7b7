package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tabletop-manager/api/internal/config"
	"github.com/tabletop-manager/api/internal/modules/serializer"
)

const (
	// CtxUserID holds the authenticated user's uuid.UUID.
	CtxUserID = "user_id"
	// CtxRole holds the caller's role in the game space of the route.
	CtxRole = "game_space_role"
)

// UserAuth returns a middleware that authenticates requests using HS256 bearer
// JWTs. The subject claim must be the user's UUID; it is stored under
// CtxUserID and set as the user_id attribute on the current span.
func UserAuth(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.Auth.JWTSecret)
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Auth.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Auth.Issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || len(secret) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		claims := &jwt.RegisteredClaims{}
		token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			span.SetAttributes(attribute.String("user_id", userID.String()))
		}

		c.Set(CtxUserID, userID)
		c.Next()
	}
}
