// Package httputil holds the JSON error responses and pagination helpers
// shared by all handlers.
package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// BadRequest reports malformed or missing input (400).
func BadRequest(c *gin.Context, msg string) {
	abort(c, http.StatusBadRequest, msg)
}

// Unauthorized reports a missing, invalid or expired credential (401).
func Unauthorized(c *gin.Context, msg string) {
	abort(c, http.StatusUnauthorized, msg)
}

// Forbidden reports an authenticated caller whose role disallows the
// action (403).
func Forbidden(c *gin.Context, msg string) {
	abort(c, http.StatusForbidden, msg)
}

// NotFound reports a missing entity (404).
func NotFound(c *gin.Context, msg string) {
	abort(c, http.StatusNotFound, msg)
}

// Conflict reports a duplicate unique field (409).
func Conflict(c *gin.Context, msg string) {
	abort(c, http.StatusConflict, msg)
}

// Internal logs the cause and responds 500 without leaking detail.
func Internal(c *gin.Context, err error) {
	logrus.WithError(err).WithField("path", c.FullPath()).Error("internal error")
	abort(c, http.StatusInternalServerError, "internal server error")
}
