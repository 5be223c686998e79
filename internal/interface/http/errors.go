package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubhouse/internal/application"
	"github.com/oksasatya/clubhouse/pkg/response"
)

// errorStatus maps application errors to an HTTP status and a client-safe message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrValidationFailed):
		return http.StatusBadRequest, "validation failed"
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, application.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, application.ErrForbidden):
		return http.StatusForbidden, "insufficient privileges"
	case errors.Is(err, application.ErrDuplicateEmail):
		return http.StatusConflict, "Email is already registered"
	case errors.Is(err, application.ErrMessageNotFound):
		return http.StatusNotFound, "message not found"
	case errors.Is(err, application.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// writeError renders err with the status errorStatus picks. Validation errors
// carry their field list; server-side failures are logged.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	status, msg := errorStatus(err)
	var details any
	var verr *application.ValidationError
	if errors.As(err, &verr) {
		details = verr.Fields
	}
	if status >= http.StatusInternalServerError && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("request failed")
	}
	response.Error[any](c, status, msg, details)
}
