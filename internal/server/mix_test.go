package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMixRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := &Server{}
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())
	r.POST("/api/mix", s.Mix)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestMix_EchoesPourList(t *testing.T) {
	r := newMixRouter()

	w := postJSON(r, "/api/mix", `[{"id":"b1","quantity":10},{"id":"b2","quantity":50}]`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
	assert.Contains(t, w.Body.String(), `"id":"b1"`)
	assert.Contains(t, w.Body.String(), `"id":"b2"`)
}

func TestMix_EmptyListIsAccepted(t *testing.T) {
	r := newMixRouter()

	w := postJSON(r, "/api/mix", `[]`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMix_RejectsNonListPayload(t *testing.T) {
	r := newMixRouter()

	w := postJSON(r, "/api/mix", `{"id":"b1","quantity":10}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
