package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/modules/serializer"
)

// RoleResolver reports a user's role in a game space.
type RoleResolver interface {
	RoleOf(ctx context.Context, gameSpaceID, userID uuid.UUID) (string, error)
}

// RequireMember resolves the caller's role in the :game_space_id of the
// route and rejects callers that are neither owner nor member.
func RequireMember(roles RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameSpaceID, err := uuid.Parse(c.Param("game_space_id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return
		}
		v, _ := c.Get(CtxUserID)
		userID, ok := v.(uuid.UUID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		role, err := roles.RoleOf(c.Request.Context(), gameSpaceID, userID)
		if err != nil {
			status, res := serializer.FromError(err)
			c.AbortWithStatusJSON(status, res)
			return
		}

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			span.SetAttributes(attribute.String("game_space_id", gameSpaceID.String()))
		}

		c.Set(CtxRole, role)
		c.Next()
	}
}

// RequireGM must run after RequireMember.
func RequireGM() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != model.RoleGM {
			c.AbortWithStatusJSON(http.StatusForbidden, serializer.Err(http.StatusForbidden, "game master role required", nil))
			return
		}
		c.Next()
	}
}
