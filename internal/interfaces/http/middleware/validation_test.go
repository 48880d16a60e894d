package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innkeep/backend/internal/interfaces/http/dto"
)

type occupancyPayload struct {
	Adults   int    `json:"adults" binding:"required,min=1"`
	Children int    `json:"children" binding:"min=0"`
	Notes    string `json:"notes" binding:"max=10"`
	Email    string `json:"email" binding:"omitempty,email"`
}

func validationEngine() *gin.Engine {
	SetupValidator()
	engine := gin.New()
	engine.POST("/x", func(c *gin.Context) {
		var payload occupancyPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, body string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDKey, "req-1")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestHandleValidationError(t *testing.T) {
	engine := validationEngine()

	t.Run("reports missing required field by json name", func(t *testing.T) {
		w, resp := postJSON(t, engine, `{"children": 1}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "adults", resp.Error.Details[0].Field)
		assert.Equal(t, "This field is required", resp.Error.Details[0].Message)
		assert.Equal(t, "req-1", resp.Error.RequestID)
	})

	t.Run("reports multiple violations", func(t *testing.T) {
		_, resp := postJSON(t, engine, `{"adults": 1, "notes": "this is far too long", "email": "nope"}`)

		require.NotNil(t, resp.Error)
		fields := make(map[string]string)
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "Must be at most 10 characters", fields["notes"])
		assert.Equal(t, "Must be a valid email address", fields["email"])
	})

	t.Run("malformed json yields no field details", func(t *testing.T) {
		w, resp := postJSON(t, engine, `{"adults":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Empty(t, resp.Error.Details)
	})

	t.Run("valid payload passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(`{"adults": 2}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
