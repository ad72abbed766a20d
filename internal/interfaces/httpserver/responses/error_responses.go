package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/memberhub/media-api/internal/domain/media"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HandleError maps engine error codes onto HTTP statuses. Untyped errors are
// treated as internal.
func HandleError(c *gin.Context, err error, log zerolog.Logger) {
	code := media.CodeOf(err)
	status := codeToStatus(code)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:    string(code),
		Error:   http.StatusText(status),
		Message: err.Error(),
	})
}

// WriteNotFound reports an absent record on a read path.
func WriteNotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{
		Code:    string(media.CodeNotFound),
		Error:   http.StatusText(http.StatusNotFound),
		Message: message,
	})
}

// WriteValidationError reports a malformed request.
func WriteValidationError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error:   http.StatusText(http.StatusBadRequest),
		Message: message,
	})
}

func codeToStatus(code media.ErrorCode) int {
	switch code {
	case media.CodeNotFound:
		return http.StatusNotFound
	case media.CodeAccessDenied:
		return http.StatusForbidden
	case media.CodeSizeLimitExceeded:
		return http.StatusRequestEntityTooLarge
	case media.CodeUnsupportedMimeType:
		return http.StatusUnsupportedMediaType
	case media.CodeUnsupportedForType:
		return http.StatusUnprocessableEntity
	case media.CodeCorrupted, media.CodeTransferFailed:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
