package httperr

import (
	"net/http"

	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// StatusOf maps an error kind (or repository error kind) onto an HTTP status.
func StatusOf(err error) int {
	if errs.Is(err, commands.ErrInvalidCredentials) || errs.Is(err, commands.ErrTokenValidation) {
		return http.StatusUnauthorized
	}
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindValidation, errs.KindBusinessRule:
		return http.StatusBadRequest
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindForbidden:
		return http.StatusForbidden
	}
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return http.StatusNotFound
	case infra.IsKind(err, infra.KindDuplicateKey):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Abort maps err and writes the envelope. Internal errors never leak their message.
func Abort(c *gin.Context, err error, msg string) {
	status := StatusOf(err)
	var detail any
	switch {
	case status == http.StatusInternalServerError:
		msg = "Internal server error"
	case errs.KindOf(err) != errs.KindUnknown:
		detail = gin.H{"kind": string(errs.KindOf(err)), "reason": err.Error()}
	default:
		detail = gin.H{"reason": err.Error()}
	}
	AbortWithError(c, status, err, msg, detail)
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
