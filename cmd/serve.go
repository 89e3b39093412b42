package cmd

import (
	"github.com/israelmw/QuickAudit/api"
	"github.com/israelmw/QuickAudit/scheduler"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCommand = cobra.Command{
	Use:   "serve",
	Short: "starts the http server",
	Long:  `Starts a http server and serves the dashboard and the manage endpoint`,
	Run: func(cmd *cobra.Command, args []string) {
		//this is our composite root

		//setup datastore
		dataStore := mustResolveUsableDataStore()
		defer dataStore.Close()

		m := resolveMetrics()
		feed := resolveLiveFeed()
		if feed != nil {
			defer feed.Close()
		}

		//events dispatcher
		dispatcher := bootstrapDispatcher(m, feed, mustResolveMailer())

		svc := mustResolveServices(dispatcher, dataStore)

		schedule := ""
		if LoadedConfig.Scheduler != nil {
			schedule = LoadedConfig.Scheduler.SyncSchedule
		}
		sched, err := scheduler.NewScheduler(TopLevelLogger.Named("scheduler"), schedule, svc.tables)
		if err != nil {
			TopLevelLogger.Fatal("Failed to create scheduler", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
		if sched.Enabled() {
			TopLevelLogger.Info("Schema sync scheduled", zap.Time("next", sched.Next()))
		}

		server := api.NewServer(LoadedConfig, TopLevelLogger.Named("server"),
			dataStore,
			svc.tables,
			svc.logs,
			svc.overview,
			m,
			feed,
		)
		if err := server.Start(cmd.Context()); err != nil {
			TopLevelLogger.Error("Server stopped with error", zap.Error(err))
		}
		dispatcher.Wait()
		TopLevelLogger.Info("Shutdown complete")
	},
}
