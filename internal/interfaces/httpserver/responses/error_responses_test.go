package responses_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/memberhub/media-api/internal/domain/media"
	"github.com/memberhub/media-api/internal/interfaces/httpserver/responses"
)

func TestHandleErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        media.NewError(media.CodeNotFound, "media med_x not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "access denied",
			err:        media.NewError(media.CodeAccessDenied, "access denied"),
			wantStatus: http.StatusForbidden,
			wantCode:   "ACCESS_DENIED",
		},
		{
			name:       "size limit",
			err:        media.NewError(media.CodeSizeLimitExceeded, "too large"),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   "SIZE_LIMIT_EXCEEDED",
		},
		{
			name:       "unsupported mime type",
			err:        media.NewError(media.CodeUnsupportedMimeType, "bad mime"),
			wantStatus: http.StatusUnsupportedMediaType,
			wantCode:   "UNSUPPORTED_MIME_TYPE",
		},
		{
			name:       "unsupported for type",
			err:        media.NewError(media.CodeUnsupportedForType, "no thumbnails for audio"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "UNSUPPORTED_FOR_TYPE",
		},
		{
			name:       "transfer failed",
			err:        media.WrapError(media.CodeTransferFailed, "store blob", errors.New("timeout")),
			wantStatus: http.StatusBadGateway,
			wantCode:   "TRANSFER_FAILED",
		},
		{
			name:       "corrupted",
			err:        media.NewError(media.CodeCorrupted, "checksum mismatch"),
			wantStatus: http.StatusBadGateway,
			wantCode:   "CORRUPTED",
		},
		{
			name:       "untyped error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/v1/media/med_x", nil)

			responses.HandleError(c, tt.err, zerolog.Nop())

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body responses.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
		})
	}
}
