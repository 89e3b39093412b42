package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/israelmw/QuickAudit/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoOperator() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(OperatorFrom(r.Context())))
	})
}

func TestRequiredWithoutAuth(t *testing.T) {
	assert := assert.New(t)
	assert.Nil(New(&config.AuthConfiguration{}))

	rec := httptest.NewRecorder()
	Required(nil)(echoOperator()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(http.StatusOK, rec.Code)
	assert.Equal(Anonymous, rec.Body.String())
}

func TestRequiredWithAuth(t *testing.T) {
	assert := assert.New(t)
	ja := New(&config.AuthConfiguration{JWTSecret: "secret", JWTAlg: "HS256"})
	require.NotNil(t, ja)
	handler := Required(ja)(echoOperator())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(http.StatusUnauthorized, rec.Code)

	_, token, err := ja.Encode(map[string]interface{}{"sub": "42", ClaimEmail: "ops@example.com"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(http.StatusOK, rec.Code)
	assert.Equal("ops@example.com", rec.Body.String())

	_, token, err = ja.Encode(map[string]interface{}{"sub": "42"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal("42", rec.Body.String())
}
