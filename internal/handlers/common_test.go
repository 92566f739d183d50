package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(h gin.HandlerFunc, target string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)
	r.GET("/items/:id", h)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	r.HandleContext(c)
	return w, c
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"not found", failure.NotFound("room not found"), http.StatusNotFound, "room not found"},
		{"bad request", failure.BadRequestFromString("guests must be at least 1"), http.StatusBadRequest, "guests must be at least 1"},
		{"internal", failure.InternalError(errors.New("connection reset")), http.StatusInternalServerError, "Internal server error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := serve(func(c *gin.Context) { respondError(c, tt.err) }, "/items/1")
			assert.Equal(t, tt.code, w.Code)

			var body helpers.ApiResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.msg, body.Error)
			if tt.code == http.StatusInternalServerError {
				assert.Len(t, c.Errors, 1)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	h := func(c *gin.Context) {
		id, valid := pathID(c, "id", "room id")
		if !valid {
			return
		}
		c.String(http.StatusOK, id.String())
	}

	w, _ := serve(h, "/items/3f1c2a7e-8d4b-4c1a-9a55-2f9d1b7e6c01")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3f1c2a7e-8d4b-4c1a-9a55-2f9d1b7e6c01", w.Body.String())

	w, _ = serve(h, "/items/42")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryInt(t *testing.T) {
	h := func(c *gin.Context) {
		n, valid := queryInt(c, "guests", 1)
		if !valid {
			return
		}
		c.JSON(http.StatusOK, n)
	}

	w, _ := serve(h, "/items/1")
	assert.Equal(t, "1", w.Body.String())
	w, _ = serve(h, "/items/1?guests=4")
	assert.Equal(t, "4", w.Body.String())
	w, _ = serve(h, "/items/1?guests=0")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = serve(h, "/items/1?guests=many")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
