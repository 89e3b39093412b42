package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/israelmw/QuickAudit/config"
	"github.com/israelmw/QuickAudit/events"
	"github.com/israelmw/QuickAudit/manage"
	"github.com/israelmw/QuickAudit/manage/mocks"
	"github.com/israelmw/QuickAudit/metrics"
	"github.com/steinfletcher/apitest"
	"go.uber.org/zap/zaptest"
)

type pinger struct {
	err error
}

func (p pinger) Ping(ctx context.Context) error {
	return p.err
}

func testConfig(manageEnabled bool) *config.Configuration {
	return &config.Configuration{
		Server: &config.ServerConfiguration{Port: 3000},
		Behaviour: &config.BehaviourConfiguration{
			Name:       "QuickAudit",
			PrimaryKey: "id",
			LogLimit:   100,
		},
		ManageEndpoint: &config.ManageEndpointConfiguration{
			Enable: manageEnabled,
			CORS:   &config.CORSConfiguration{AllowedOrigins: []string{"*"}},
		},
		Metrics: &config.MetricsConfiguration{Enable: true},
	}
}

func composeFor(t *testing.T, cfg *config.Configuration, p Pinger, m *metrics.Metrics) http.Handler {
	logger := zaptest.NewLogger(t)
	configs := mocks.NewConfigStorer(t)
	logs := mocks.NewLogStorer(t)
	dispatcher := events.NewDispatcher(logger)
	tables := manage.NewTableService(configs, logger, dispatcher)
	logService := manage.NewLogService(logs, logger, cfg, dispatcher)
	overview := manage.NewDashboardService(tables, logService, configs, logger, cfg)
	return compose(logger, cfg, p, tables, logService, overview, m, nil)
}

func TestHealthz(t *testing.T) {
	apitest.New().
		Handler(composeFor(t, testConfig(false), pinger{}, nil)).
		Get("/healthz").
		Expect(t).
		Status(http.StatusOK).
		Body("ok").
		End()
}

func TestHealthzDatabaseDown(t *testing.T) {
	apitest.New().
		Handler(composeFor(t, testConfig(false), pinger{err: errors.New("refused")}, nil)).
		Get("/healthz").
		Expect(t).
		Status(http.StatusServiceUnavailable).
		End()
}

func TestManageEndpointMountedWhenEnabled(t *testing.T) {
	apitest.New().
		Handler(composeFor(t, testConfig(true), pinger{}, nil)).
		Get("/manage/.ping").
		Expect(t).
		Status(http.StatusOK).
		Body("pong").
		End()
}

func TestManageEndpointHiddenWhenDisabled(t *testing.T) {
	apitest.New().
		Handler(composeFor(t, testConfig(false), pinger{}, nil)).
		Get("/manage/.ping").
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestMetricsEndpoint(t *testing.T) {
	h := composeFor(t, testConfig(false), pinger{}, metrics.New())
	apitest.New().
		Handler(h).
		Get("/healthz").
		Expect(t).
		Status(http.StatusOK).
		End()
	apitest.New().
		Handler(h).
		Get("/metrics").
		Expect(t).
		Status(http.StatusOK).
		Assert(func(res *http.Response, req *http.Request) error {
			if res.Header.Get("Content-Type") == "" {
				return errors.New("metrics carry no content type")
			}
			return nil
		}).
		End()
}
