package serializer

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tabletop-manager/api/internal/pkg/apperr"
)

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", apperr.Validation("name is required"), http.StatusBadRequest, "name is required"},
		{"permission", apperr.Permission("game master role required"), http.StatusForbidden, "game master role required"},
		{"not found", apperr.NotFound("character: not found"), http.StatusNotFound, "character: not found"},
		{"transport", apperr.Transport("load skills", errors.New("conn refused")), http.StatusBadGateway, "load skills failed"},
		{"wrapped", errors.Join(apperr.NotFound("a"), apperr.NotFound("b")), http.StatusNotFound, "a\nb"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, res := FromError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.status, res.Code)
			assert.Equal(t, tt.msg, res.Msg)
		})
	}
}

func TestErr_HidesDetailInRelease(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	res := DBErr("", errors.New("secret dsn"))
	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "database error", res.Msg)
	assert.Empty(t, res.Error)
}
