package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareObservesRoutePattern(t *testing.T) {
	assert := assert.New(t)
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/logs/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logs/12", nil))
	assert.Equal(http.StatusTeapot, rec.Code)
	assert.Equal(1, testutil.CollectAndCount(m.RequestDuration))

	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.True(strings.Contains(body, `route="/logs/{id}"`))
	assert.True(strings.Contains(body, `status="418"`))
}

func TestCounters(t *testing.T) {
	m := New()
	m.TableToggles.WithLabelValues("enabled").Inc()
	m.DiscoveredTables.Add(3)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.TableToggles.WithLabelValues("enabled")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.DiscoveredTables))
}
