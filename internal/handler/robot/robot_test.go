package robot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"robodesk/internal/model"
	"robodesk/internal/model/entity"
	"robodesk/internal/service"
	"robodesk/pkg/errors"
	"robodesk/pkg/errors/ecode"
	"robodesk/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 只实现下载用到的方法
type fakeRobots struct {
	service.RobotService
	file    model.DownloadFile
	ticket  string
	created model.RobotCreateReq
}

func (f *fakeRobots) RobotOpen(_ context.Context, ticket, _ string) (model.DownloadFile, error) {
	if ticket != f.ticket {
		return model.DownloadFile{}, errors.WithCode(ecode.TicketErr, "download link is invalid or expired")
	}
	return f.file, nil
}

func (f *fakeRobots) RobotCreate(_ context.Context, req model.RobotCreateReq) (entity.Robot, error) {
	f.created = req
	return entity.Robot{Id: 99, Name: req.Name}, nil
}

func newRouter(f *fakeRobots) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.LazyInitGinValidator("en")
	h := NewRobotHandler(f)
	r := gin.New()
	r.GET("/download/:ticket", h.RobotDownload())
	r.POST("/admin/robots", h.RobotCreate())
	return r
}

func TestRobotDownload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scalper-v2.ex5")
	require.NoError(t, os.WriteFile(path, []byte("robot-binary"), 0o600))
	f := &fakeRobots{ticket: "good", file: model.DownloadFile{Path: path, Name: "scalper-v2.ex5"}}
	r := newRouter(f)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download/good", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "robot-binary", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "scalper-v2.ex5")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download/bad", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestRobotCreateValidation(t *testing.T) {
	f := &fakeRobots{}
	r := newRouter(f)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/robots", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"name":"Scalper","version":"2.0","platform":"MT5","min_plan":"gold","file_name":"s.ex5"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.created.Name)

	w = post(`{"name":"Scalper","version":"2.0","platform":"MT5","min_plan":"pro","file_name":"s.ex5"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Scalper", f.created.Name)
	assert.Contains(t, w.Body.String(), `"id":"99"`)
}
