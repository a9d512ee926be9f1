package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/fast-note-link-service/internal/middleware"
	"github.com/haierkeys/fast-note-link-service/pkg/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{name: "not found", err: code.ErrorNoteNotFound, wantStatus: http.StatusNotFound, wantCode: code.ErrorNoteNotFound.Code()},
		{name: "wrapped validation", err: fmt.Errorf("create: %w", code.ErrorNoteTitleRequired), wantStatus: http.StatusBadRequest, wantCode: code.ErrorNoteTitleRequired.Code()},
		{name: "duplicate username", err: code.ErrorUserAlreadyExists, wantStatus: http.StatusConflict, wantCode: code.ErrorUserAlreadyExists.Code()},
		{name: "upstream", err: code.ErrorSummarizeFailed.WithDetails("timeout"), wantStatus: http.StatusBadGateway, wantCode: code.ErrorSummarizeFailed.Code()},
		{name: "app error", err: NewAppError(code.ErrorDBWrite, stderrors.New("disk full")), wantStatus: http.StatusInternalServerError, wantCode: code.ErrorDBWrite.Code()},
		{name: "unknown", err: stderrors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: code.ErrorServerInternal.Code()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set(middleware.TraceIDKey, "trace-1")

			ErrorResponse(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var body AppError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.False(t, body.Status)
			assert.Equal(t, "trace-1", body.TraceID)
		})
	}
}
