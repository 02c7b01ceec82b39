package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"robodesk/internal/consts"
	"robodesk/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func init() {
	gin.SetMode(gin.TestMode)
}

func token(t *testing.T, uid, role string) string {
	t.Helper()
	tok, err := jwt.GenToken(jwt.BuildClaims(time.Now().Add(time.Hour), uid, uid+"@robodesk.io", role), testSecret)
	require.NoError(t, err)
	return tok
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestId())
	auth := r.Group("/", AuthToken(testSecret, "admin"))
	auth.GET("/me", func(c *gin.Context) {
		s, _ := GetSession(c)
		c.String(http.StatusOK, s.UserId)
	})
	auth.GET("/admin", AdminOnly(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func do(r http.Handler, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthToken(t *testing.T) {
	r := newAuthRouter()

	w := do(r, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"request_id"`)

	w = do(r, http.MethodGet, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/me", token(t, "u-1", ""))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestAdminOnly(t *testing.T) {
	r := newAuthRouter()
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/admin", token(t, "u-1", "")).Code)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodGet, "/admin", token(t, "u-2", "admin")).Code)

	bare := gin.New()
	bare.GET("/admin", AdminOnly(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	assert.Equal(t, http.StatusUnauthorized, do(bare, http.MethodGet, "/admin", "").Code)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/solutions", RateLimit(1, 2), func(c *gin.Context) { c.Status(http.StatusCreated) })

	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/solutions", "").Code)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/solutions", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/solutions", "").Code)
}

func TestAntiDuplicate(t *testing.T) {
	r := gin.New()
	r.POST("/captcha-dup", AntiDuplicateMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/captcha-dup", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/captcha-dup", "").Code)
}

func TestOptionsAndRequestId(t *testing.T) {
	r := gin.New()
	r.Use(Options(), Secure(), RequestId(), Metrics())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(consts.RequestId)) })

	w := do(r, http.MethodOptions, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Allow"), "DELETE")

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "abc123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc123", w.Body.String())
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
