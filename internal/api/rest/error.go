package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veritrace/veritrace/internal/domain"
	"github.com/veritrace/veritrace/internal/logger"
)

// errCodeInternal marks failures outside the stable client-facing taxonomy.
// Clients render a generic failure screen for it.
const errCodeInternal = 50000

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail carries the stable numeric code clients key their UI off
type errorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code int, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondValidationError sends a 400 Bad Request with the validation code
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, domain.ErrValidation.Code, "Validation failed", details)
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.Error(err, fields...)
	respondWithError(c, http.StatusInternalServerError, errCodeInternal, message)
}

// respondDomainError translates a coded rejection into its HTTP shape. The
// numeric code is the contract; the status is a courtesy for generic HTTP
// tooling. Non-coded errors fall through to a 500.
func respondDomainError(c *gin.Context, err error) {
	var coded *domain.CodedError
	if !errors.As(err, &coded) {
		respondInternalError(c, err, "Internal server error")
		return
	}

	respondWithError(c, statusForCode(coded.Code), coded.Code, coded.Message)
}

func statusForCode(code int) int {
	switch code {
	case domain.ErrValidation.Code,
		domain.ErrReceiverNotFound.Code,
		domain.ErrChildInvalid.Code:
		return http.StatusBadRequest
	case domain.ErrNotPermitted.Code:
		return http.StatusForbidden
	case domain.ErrCodeNotFound.Code,
		domain.ErrOrderNotFound.Code:
		return http.StatusNotFound
	case domain.ErrWrongState.Code,
		domain.ErrFinalized.Code,
		domain.ErrConflict.Code,
		domain.ErrOrderNotPaid.Code:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
