package ez

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dogmatch/internal/domain"
	resp "dogmatch/internal/transport/http/response"
)

func newEngine() (*gin.Engine, EZ) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	return r, New(r.Group("/api"))
}

func do(t *testing.T, r *gin.Engine, method, path string) (int, resp.Resp) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)

	var body resp.Resp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

// 所有响应一律 HTTP 200，业务码在 envelope 里。
func TestEnvelopeAlwaysHTTP200(t *testing.T) {
	r, e := newEngine()
	e.GET("/ok", func(c *gin.Context) (any, error) { return gin.H{"x": 1}, nil })
	e.GET("/missing", func(c *gin.Context) (any, error) { return nil, domain.ErrNotFound })
	e.GET("/boom", func(c *gin.Context) (any, error) { return nil, errors.New("db down") })

	status, body := do(t, r, http.MethodGet, "/api/ok")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, resp.CodeOK, body.Code)

	status, body = do(t, r, http.MethodGet, "/api/missing")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, resp.CodeNotFound, body.Code)
	assert.Equal(t, "Error 404, page not found", body.Msg)

	status, body = do(t, r, http.MethodGet, "/api/boom")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, resp.CodeServerError, body.Code)
}

func TestErrRespMapping(t *testing.T) {
	r, e := newEngine()
	e.GET("/bad", func(c *gin.Context) (any, error) { return nil, BadRequest("pk must be an integer >= -1") })
	e.GET("/noauth", func(c *gin.Context) (any, error) { return nil, Unauthorized("missing token") })
	e.PUT("/prefs", func(c *gin.Context) (any, error) {
		return nil, domain.ValidatePrefs("z", "m", "s")
	})

	_, body := do(t, r, http.MethodGet, "/api/bad")
	assert.Equal(t, resp.CodeBadRequest, body.Code)
	assert.Equal(t, "pk must be an integer >= -1", body.Msg)

	_, body = do(t, r, http.MethodGet, "/api/noauth")
	assert.Equal(t, resp.CodeUnauthorized, body.Code)

	// 校验错误映射成 400，消息带字段名
	_, body = do(t, r, http.MethodPut, "/api/prefs")
	assert.Equal(t, resp.CodeBadRequest, body.Code)
	assert.Contains(t, body.Msg, "age")
	assert.Contains(t, body.Msg, "invalid character in ages")
}

func TestAErrFallbackMessage(t *testing.T) {
	wrapped := Internal("", errors.New("redis: connection refused"))
	assert.Equal(t, "redis: connection refused", wrapped.Error())

	bare := &AErr{Code: resp.CodeServerError}
	assert.Equal(t, "action error", bare.Error())
}
