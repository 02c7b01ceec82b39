package solution

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"robodesk/internal/model"
	"robodesk/internal/service"
	"robodesk/pkg/errors/ecode"
	"robodesk/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSolutions struct {
	service.SolutionService
	submitted []model.SolutionSubmitReq
	updated   map[int64]model.SolutionUpdateReq
}

func (f *fakeSolutions) SolutionSubmit(_ context.Context, req model.SolutionSubmitReq) (model.SolutionSubmitRes, error) {
	f.submitted = append(f.submitted, req)
	return model.SolutionSubmitRes{Id: 1001, Status: "new"}, nil
}

func (f *fakeSolutions) SolutionUpdate(_ context.Context, id int64, req model.SolutionUpdateReq) error {
	f.updated[id] = req
	return nil
}

type envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
}

func newRouter(f *fakeSolutions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.LazyInitGinValidator("en")
	h := NewSolutionHandler(f)
	r := gin.New()
	r.POST("/solutions", h.SolutionSubmit())
	r.PUT("/admin/solutions/:id", h.SolutionUpdate())
	return r
}

func send(t *testing.T, r http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestSolutionSubmit(t *testing.T) {
	f := &fakeSolutions{}
	r := newRouter(f)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"ok", `{"name":"Ana","email":"ana@example.com","category":"robot","description":"a robot for mini index","captcha":"x1y2"}`, ecode.Success},
		{"bad email", `{"name":"Ana","email":"ana","category":"robot","description":"a robot for mini index","captcha":"x1y2"}`, ecode.ValidateErr},
		{"unknown category", `{"name":"Ana","email":"ana@example.com","category":"crypto","description":"a robot for mini index","captcha":"x1y2"}`, ecode.ValidateErr},
		{"short description", `{"name":"Ana","email":"ana@example.com","category":"robot","description":"short","captcha":"x1y2"}`, ecode.ValidateErr},
		{"no captcha", `{"name":"Ana","email":"ana@example.com","category":"robot","description":"a robot for mini index"}`, ecode.ValidateErr},
		{"negative budget", `{"name":"Ana","email":"ana@example.com","category":"robot","description":"a robot for mini index","budget":-1,"captcha":"x1y2"}`, ecode.ValidateErr},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, env := send(t, r, http.MethodPost, "/solutions", tc.body)
			assert.Equal(t, tc.code, env.Code)
		})
	}
	require.Len(t, f.submitted, 1)
	assert.Equal(t, "ana@example.com", f.submitted[0].Email)
}

func TestSolutionUpdate(t *testing.T) {
	f := &fakeSolutions{updated: map[int64]model.SolutionUpdateReq{}}
	r := newRouter(f)

	status, env := send(t, r, http.MethodPut, "/admin/solutions/77", `{"status":"quoted","priority":"urgent"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, ecode.Success, env.Code)
	require.Contains(t, f.updated, int64(77))
	assert.Equal(t, "urgent", *f.updated[77].Priority)
	assert.Nil(t, f.updated[77].AdminNotes)

	_, env = send(t, r, http.MethodPut, "/admin/solutions/77", `{"priority":"someday"}`)
	assert.Equal(t, ecode.ValidateErr, env.Code)

	_, env = send(t, r, http.MethodPut, "/admin/solutions/x", `{}`)
	assert.Equal(t, ecode.ValidateErr, env.Code)
}
