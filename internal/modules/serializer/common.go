package serializer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tabletop-manager/api/internal/pkg/apperr"
	"go.uber.org/zap"
)

var log = zap.NewNop()

// SetLogger sets the logger used for unexpected errors.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// Response
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// Err
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	// development mode, show error detail
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error"
	}
	return Err(http.StatusInternalServerError, msg, err)
}

// ParamErr
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

// AuthErr
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication error"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}

// FromError maps an error kind to its HTTP status and response body.
func FromError(err error) (int, Response) {
	var e *apperr.Error
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest, Response{Code: http.StatusBadRequest, Msg: err.Error()}
	case apperr.KindPermission:
		return http.StatusForbidden, Response{Code: http.StatusForbidden, Msg: err.Error()}
	case apperr.KindNotFound:
		return http.StatusNotFound, Response{Code: http.StatusNotFound, Msg: err.Error()}
	case apperr.KindTransport:
		msg := "upstream error"
		if errors.As(err, &e) && e.Msg != "" {
			msg = e.Msg + " failed"
		}
		return http.StatusBadGateway, Err(http.StatusBadGateway, msg, err)
	}
	log.Sugar().Errorw("unclassified error", "err", err)
	return http.StatusInternalServerError, Err(http.StatusInternalServerError, "internal error", err)
}
