package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bricker/vivial-sub000/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a service error onto an HTTP response. Validation and
// auth failures keep their structure; everything else collapses to a
// generic message so internals never leak to the client.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var validationErr *utils.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         "The following fields are invalid: " + strings.Join(validationErr.Fields, ", "),
			"invalidFields": validationErr.Fields,
		})
		return
	}

	var unauthErr *utils.UnauthenticatedError
	if errors.As(err, &unauthErr) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "Insufficient authorization",
			"redirect": "/logout",
		})
		return
	}

	var domainErr *utils.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		if strings.HasSuffix(domainErr.Code, "NotFound") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": domainErr.Message, "code": domainErr.Code})
		return
	}

	logger.Error("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Something went wrong. Please try again later.",
	})
}
