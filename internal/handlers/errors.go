package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// respondError maps a service error to its HTTP status and JSON body.
// Ledger rejections (unbalanced, unknown or inactive account) are 422 and
// carry the offending totals or account number. fallback is the message
// returned for unexpected failures so internals are not leaked.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var unbalanced *apperrors.UnbalancedError
	var unknown *apperrors.UnknownAccountError
	var inactive *apperrors.InactiveAccountError

	switch {
	case errors.As(err, &unbalanced):
		logger.Warn("Rejected unbalanced journal entry", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        err.Error(),
			"totalDebits":  unbalanced.TotalDebits.StringFixed(2),
			"totalCredits": unbalanced.TotalCredits.StringFixed(2),
		})
	case errors.As(err, &unknown):
		logger.Warn("Rejected entry with unknown account", slog.String("account_number", unknown.AccountNumber))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "accountNumber": unknown.AccountNumber})
	case errors.As(err, &inactive):
		logger.Warn("Rejected entry with inactive account", slog.String("account_number", inactive.AccountNumber))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "accountNumber": inactive.AccountNumber})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// bindJSON binds the request body and writes a 400 on failure.
func bindJSON(c *gin.Context, dest any, operation string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for "+operation, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return false
	}
	return true
}

// bindQuery binds query parameters and writes a 400 on failure.
func bindQuery(c *gin.Context, dest any, operation string) bool {
	if err := c.ShouldBindQuery(dest); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind query params for "+operation, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return false
	}
	return true
}

// callerID returns the authenticated subject or writes a 401.
func callerID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
