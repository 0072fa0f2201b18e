package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IbroIT/SU-back-back-sub001/testutil"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.GenerateJWT(7, role, secret)
	require.NoError(t, err)
	return tok
}

func serve(r *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	rdb, _ := testutil.NewRedis(t)
	r := gin.New()
	r.GET("/private", JWTAuthMiddleware(secret, rdb), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint(CtxUserID), "role": c.GetString(CtxRole)})
	})

	w := serve(r, http.MethodGet, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)

	w = serve(r, http.MethodGet, "/private", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other, err := utils.GenerateJWT(7, "admin", "other-secret")
	require.NoError(t, err)
	w = serve(r, http.MethodGet, "/private", other)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tok := token(t, "editor")
	w = serve(r, http.MethodGet, "/private", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"role":"editor"}`, w.Body.String())

	require.NoError(t, utils.Blacklist(context.Background(), rdb, tok, time.Hour))
	w = serve(r, http.MethodGet, "/private", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestRequireRole(t *testing.T) {
	rdb, _ := testutil.NewRedis(t)
	r := gin.New()
	r.DELETE("/thing", JWTAuthMiddleware(secret, rdb), RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodDelete, "/thing", token(t, "editor")).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodDelete, "/thing", token(t, "admin")).Code)
}

func TestOptionalJWTMiddleware(t *testing.T) {
	rdb, _ := testutil.NewRedis(t)
	r := gin.New()
	r.GET("/public", OptionalJWTMiddleware(secret, rdb), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"staff": IsStaff(c)})
	})

	w := serve(r, http.MethodGet, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"staff":false}`, w.Body.String())

	// битый токен не мешает публичному запросу
	w = serve(r, http.MethodGet, "/public", "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"staff":false}`, w.Body.String())

	w = serve(r, http.MethodGet, "/public", token(t, "editor"))
	assert.JSONEq(t, `{"staff":true}`, w.Body.String())
}

func TestRateLimit(t *testing.T) {
	rdb, mr := testutil.NewRedis(t)
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.POST("/apply", RateLimit(rdb, "apply", 2, time.Hour), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	post := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/apply", nil)
		req.RemoteAddr = ip + ":5000"
		// подставной заголовок не должен менять адрес клиента
		req.Header.Set("X-Forwarded-For", "203.0.113.77")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, post("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, post("10.0.0.1").Code)
	w := post("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3600", w.Header().Get("Retry-After"))

	// другой адрес считается отдельно
	assert.Equal(t, http.StatusOK, post("10.0.0.2").Code)

	mr.FastForward(time.Hour + time.Second)
	assert.Equal(t, http.StatusOK, post("10.0.0.1").Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	rdb, mr := testutil.NewRedis(t)
	mr.Close()
	r := gin.New()
	r.POST("/apply", RateLimit(rdb, "apply", 1, time.Hour), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/apply", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/apply", "").Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RecoveryMiddleware())
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := serve(r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"result":null,"error":"Internal server error"}`, w.Body.String())
}
