package calculator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"robodesk/pkg/errors/ecode"
	"robodesk/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.LazyInitGinValidator("en")
	h := NewCalculatorHandler("R$")
	r := gin.New()
	r.POST("/calculator/position", h.Position())
	r.GET("/calculator/instruments", h.Instruments())
	return r
}

func post(t *testing.T, r http.Handler, body string) envelope {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/calculator/position", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestPosition(t *testing.T) {
	r := newRouter()
	env := post(t, r, `{"capital":"10000","instrument":"WIN","stop_distance":"100","target_distance":"200","max_loss_percent":"2"}`)
	require.Equal(t, ecode.Success, env.Code, env.Message)

	var res struct {
		Result struct {
			ContractCount int64 `json:"contract_count"`
		} `json:"result"`
		Display struct {
			ContractCount string `json:"contract_count"`
			TotalGain     string `json:"total_gain"`
			PayoffRatio   string `json:"payoff_ratio"`
		} `json:"display"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, int64(10), res.Result.ContractCount)
	assert.Equal(t, "10", res.Display.ContractCount)
	assert.Equal(t, "R$ 400.00", res.Display.TotalGain)
	assert.Equal(t, "2.0", res.Display.PayoffRatio)
}

func TestPosition_Incomplete(t *testing.T) {
	r := newRouter()
	for _, body := range []string{
		`{"capital":"","instrument":"WIN","stop_distance":"100","target_distance":"200","max_loss_percent":"2"}`,
		`{"capital":"10000","instrument":"","stop_distance":"100","target_distance":"200","max_loss_percent":"2"}`,
		`{"capital":"10000","instrument":"WDO","stop_distance":"0","target_distance":"200","max_loss_percent":"2"}`,
		`{"capital":"10000","instrument":"WDO","stop_distance":"10","target_distance":"200","max_loss_percent":"101"}`,
	} {
		env := post(t, r, body)
		assert.Equal(t, ecode.IncompleteInput, env.Code, body)
		assert.Equal(t, "null", string(env.Data), body)
	}

	env := post(t, r, `{"capital":"1","instrument":"XYZ","stop_distance":"1","target_distance":"1","max_loss_percent":"1"}`)
	assert.Equal(t, ecode.ValidateErr, env.Code)
	assert.Equal(t, "unknown instrument", env.Message)
	assert.Equal(t, "null", string(env.Data))
}

func TestPosition_NumericJSON(t *testing.T) {
	r := newRouter()
	env := post(t, r, `{"capital":10000,"instrument":"WIN","stop_distance":100,"target_distance":200,"max_loss_percent":2}`)
	require.Equal(t, ecode.Success, env.Code, env.Message)

	var res struct {
		Result struct {
			ContractCount int64 `json:"contract_count"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, int64(10), res.Result.ContractCount)

	env = post(t, r, `{"capital":10000,"instrument":"WIN","stop_distance":100,"target_distance":200,"max_loss_percent":null}`)
	assert.Equal(t, ecode.IncompleteInput, env.Code)
}

func TestPosition_UrlencodedForm(t *testing.T) {
	r := newRouter()
	req := httptest.NewRequest(http.MethodPost, "/calculator/position", strings.NewReader("capital=10000&instrument=wdo&stop_distance=10&target_distance=20&max_loss_percent=1,5"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.Equal(t, ecode.Success, env.Code, env.Message)
}

func TestInstruments(t *testing.T) {
	r := newRouter()
	req := httptest.NewRequest(http.MethodGet, "/calculator/instruments", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"WDO"`)
}
