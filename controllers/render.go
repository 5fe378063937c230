package controllers

import (
	"errors"
	"net/http"

	"github.com/Laib363/E-Commerce-Project/apperrors"
	"github.com/Laib363/E-Commerce-Project/flash"
	"github.com/Laib363/E-Commerce-Project/middleware"
	"github.com/gin-gonic/gin"
)

// render draws a template with any pending flash messages and the current
// user injected, so every page can show both without per-handler plumbing.
func render(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	successes, errs := flash.Consume(c)
	data["Success"] = successes
	data["Error"] = errs
	if user, ok := middleware.UserFrom(c); ok {
		data["CurrentUser"] = user
	}
	c.HTML(http.StatusOK, name, data)
}

// userMessage extracts the user-facing message from an application error.
// Unclassified errors get a generic message; their detail stays in the logs.
func userMessage(err error) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return apperrors.ErrInternalServer.Message
}
