package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/services"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"field errors", services.FieldErrors{"slug": "already exists"}, http.StatusBadRequest,
			`{"success":false,"result":null,"error":"validation failed","errors":{"slug":"already exists"}}`},
		{"not found", fmt.Errorf("get: %w", gorm.ErrRecordNotFound), http.StatusNotFound,
			`{"success":false,"result":null,"error":"not found"}`},
		// без имени поля дубликат не выдаётся за slug
		{"bare duplicate", gorm.ErrDuplicatedKey, http.StatusConflict,
			`{"success":false,"result":null,"error":"already exists"}`},
		{"internal", errors.New("pq: password authentication failed"), http.StatusInternalServerError,
			`{"success":false,"result":null,"error":"internal server error"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			handleError(c, tc.err, "test")
			assert.Equal(t, tc.code, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestCheckURLs(t *testing.T) {
	empty, good, relative := "", "https://24.kg/news/1", "/uploads/x.png"
	assert.NoError(t, checkURLs(map[string]*string{"image_url": &empty, "original_url": &good, "logo_url": nil}))
	assert.Equal(t, services.FieldErrors{"image_url": "must be an absolute http(s) URL"},
		checkURLs(map[string]*string{"image_url": &relative}))
}
