package cmd

import (
	"context"
	"time"

	"github.com/israelmw/QuickAudit/db"
	"github.com/israelmw/QuickAudit/events"
	"github.com/israelmw/QuickAudit/mailing"
	"github.com/israelmw/QuickAudit/manage"
	"github.com/israelmw/QuickAudit/metrics"
	"github.com/israelmw/QuickAudit/notify"
	"go.uber.org/zap"
)

func mustResolveUsableDataStore() *db.DataStore {
	dataStore, err := db.NewStore(TopLevelLogger.Named("database"), LoadedConfig.Database)
	if err != nil {
		TopLevelLogger.Fatal("Failed to create datastore", zap.Error(err))
	}
	err = dataStore.EnsureUsable()
	if err != nil {
		TopLevelLogger.Fatal("Datastore is unusable", zap.Error(err))
	}
	return dataStore
}

func mustResolveMailer() *mailing.Mailer {
	mailer, err := mailing.NewMailer(TopLevelLogger.Named("mailer"), LoadedConfig)
	if err != nil {
		TopLevelLogger.Fatal("Failed to create mailer", zap.Error(err))
	}
	return mailer
}

// resolveLiveFeed returns nil when redis is disabled or unreachable
func resolveLiveFeed() *notify.LiveFeed {
	if LoadedConfig.Redis == nil || !LoadedConfig.Redis.Enable {
		return nil
	}
	feed := notify.NewLiveFeed(TopLevelLogger.Named("live_feed"), LoadedConfig.Redis)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := feed.Ping(ctx); err != nil {
		TopLevelLogger.Warn("Redis is unreachable, live feed disabled", zap.Error(err))
		_ = feed.Close()
		return nil
	}
	return feed
}

func resolveMetrics() *metrics.Metrics {
	if LoadedConfig.Metrics == nil || !LoadedConfig.Metrics.Enable {
		return nil
	}
	return metrics.New()
}

func bootstrapDispatcher(m *metrics.Metrics, feed *notify.LiveFeed, mailer *mailing.Mailer) *events.Dispatcher {
	dispatcher := events.NewDispatcher(TopLevelLogger.Named("event_dispatcher"))
	//bootstrap listeners
	if m != nil {
		dispatcher.Register(notify.MetricsListeners(m)...)
	}
	if feed != nil {
		dispatcher.Register(notify.FeedListeners(feed)...)
	}
	if mailer != nil && LoadedConfig.Notifications != nil {
		dispatcher.RegisterAsync(notify.MailListeners(
			TopLevelLogger.Named("event_listener"),
			mailer,
			LoadedConfig.Notifications.Recipients,
		)...)
	}
	return dispatcher
}

type services struct {
	events   *events.Dispatcher
	store    *db.DataStore
	tables   *manage.TableService
	logs     *manage.LogService
	overview *manage.DashboardService
}

func mustResolveServices(dispatcher *events.Dispatcher, dataStore *db.DataStore) *services {
	tables := manage.NewTableService(dataStore, TopLevelLogger.Named("table_service"), dispatcher)
	logs := manage.NewLogService(dataStore, TopLevelLogger.Named("log_service"), LoadedConfig, dispatcher)
	return &services{
		events: dispatcher,
		store:  dataStore,
		tables: tables,
		logs:   logs,
		overview: manage.NewDashboardService(
			tables,
			logs,
			dataStore,
			TopLevelLogger.Named("dashboard_service"),
			LoadedConfig,
		),
	}
}

// mustResolveCLIServices wires the services for one-shot commands, reverts still notify by mail
func mustResolveCLIServices() *services {
	dataStore := mustResolveUsableDataStore()
	dispatcher := bootstrapDispatcher(nil, nil, mustResolveMailer())
	return mustResolveServices(dispatcher, dataStore)
}
