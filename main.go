package main

import (
	"log"
	"os"

	"github.com/israelmw/QuickAudit/cmd"
	"github.com/israelmw/QuickAudit/config"
	"github.com/israelmw/QuickAudit/scheduler"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	Version   = "?"
	BuildTime = "?"
	GitCommit = "-"
	GitRef    = "-"
)

func main() {
	cmd.Version, cmd.BuildTime, cmd.GitCommit, cmd.GitRef = Version, BuildTime, GitCommit, GitRef
	logger := bootstrap()
	defer func() {
		_ = logger.Sync()
	}()
	cmd.TopLevelLogger = logger
	cmd.Execute()
}

func bootstrap() *zap.Logger {
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Error loading .env file")
		}
	}
	cfg := zap.NewProductionConfig()
	if r := os.Getenv("DEBUG_LOG"); r == "true" {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		log.Fatal(err)
	}
	// version needs no configuration
	if len(os.Args) > 1 && os.Args[1] == "version" {
		return logger
	}
	cobra.OnInitialize(func() { initConfig(logger) })
	return logger
}

func setDefaults() {
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.address", "")
	viper.SetDefault("server.secure-cookies", false)
	viper.SetDefault("database.type", "sqlite")
	viper.SetDefault("database.dsn", "quickaudit.db")
	viper.SetDefault("database.use-procedures", false)
	viper.SetDefault("behaviour.name", "QuickAudit")
	viper.SetDefault("behaviour.primary-key", "id")
	viper.SetDefault("behaviour.log-limit", 100)
	viper.SetDefault("behaviour.retention-days", 30)
	viper.SetDefault("behaviour.recent-window", "24h")
	viper.SetDefault("auth.jwt-alg", "HS256")
	viper.SetDefault("manage-endpoint.enable", false)
	viper.SetDefault("redis.enable", false)
	viper.SetDefault("redis.channel", "quickaudit")
	viper.SetDefault("smtp.enable", false)
	viper.SetDefault("scheduler.sync-schedule", scheduler.DefaultSyncSchedule)
	viper.SetDefault("metrics.enable", true)
	viper.SetDefault("metrics.path", "/metrics")
}

func initConfig(logger *zap.Logger) {
	bind := func(from string, to string) {
		err := viper.BindEnv(to, from)
		if err != nil {
			logger.Error("unable to bindenv", zap.String("from", from), zap.String("to", to), zap.Error(err))
		}

	}
	setDefaults()
	bind("PORT", "server.port")
	bind("ADDRESS", "server.address")
	bind("DATABASE_URL", "database.dsn")

	bind("QA_PORT", "server.port")
	bind("QA_ADDRESS", "server.address")
	bind("QA_SERVER_CSRF_TOKEN", "server.csrf-token")
	bind("QA_SERVER_SECURE_COOKIES", "server.secure-cookies")

	bind("QA_DATABASE_TYPE", "database.type")
	bind("QA_DATABASE_DSN", "database.dsn")
	bind("QA_DATABASE_USE_PROCEDURES", "database.use-procedures")

	bind("QA_BEHAVIOUR_NAME", "behaviour.name")
	bind("QA_BEHAVIOUR_PRIMARY_KEY", "behaviour.primary-key")
	bind("QA_BEHAVIOUR_LOG_LIMIT", "behaviour.log-limit")
	bind("QA_BEHAVIOUR_RETENTION_DAYS", "behaviour.retention-days")
	bind("QA_BEHAVIOUR_RECENT_WINDOW", "behaviour.recent-window")

	bind("QA_AUTH_JWT_SECRET", "auth.jwt-secret")
	bind("QA_AUTH_JWT_ALG", "auth.jwt-alg")

	bind("QA_MANAGE_ENDPOINT_ENABLE", "manage-endpoint.enable")
	bind("QA_MANAGE_ENDPOINT_CORS_ALLOWED_ORIGINS", "manage-endpoint.cors.allowed-origins")
	bind("QA_MANAGE_ENDPOINT_CORS_ALLOWED_METHODS", "manage-endpoint.cors.allowed-methods")
	bind("QA_MANAGE_ENDPOINT_CORS_ALLOW_CREDENTIALS", "manage-endpoint.cors.allow-credentials")

	bind("QA_REDIS_ENABLE", "redis.enable")
	bind("QA_REDIS_ADDR", "redis.addr")
	bind("QA_REDIS_PASSWORD", "redis.password")
	bind("QA_REDIS_DB", "redis.db")
	bind("QA_REDIS_CHANNEL", "redis.channel")

	bind("QA_SMTP_ENABLE", "smtp.enable")
	bind("QA_SMTP_HOST", "smtp.host")
	bind("QA_SMTP_PORT", "smtp.port")
	bind("QA_SMTP_USERNAME", "smtp.username")
	bind("QA_SMTP_PASSWORD", "smtp.password")
	bind("QA_SMTP_DISPLAYNAME", "smtp.display-name")
	bind("QA_SMTP_ADDRESS", "smtp.address")
	bind("QA_NOTIFICATIONS_RECIPIENTS", "notifications.recipients")

	bind("QA_SCHEDULER_SYNC_SCHEDULE", "scheduler.sync-schedule")

	bind("QA_METRICS_ENABLE", "metrics.enable")
	bind("QA_METRICS_PATH", "metrics.path")

	if cmd.ConfigFileLocation != "" {
		logger.Debug("Using supplied config file", zap.String("file", cmd.ConfigFileLocation))
		viper.SetConfigFile(cmd.ConfigFileLocation)
	} else {
		path, err := os.Getwd()
		if err != nil {
			logger.Warn("Unable to get current working dir", zap.Error(err))
		}
		cobra.CheckErr(err)
		viper.AddConfigPath(path)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		logger.Debug("Looking for default config file")
	}
	//precedence: environment overwrites yml
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Debug("No config file loaded")
	} else {
		logger.Debug("Config file loaded", zap.String("file", viper.ConfigFileUsed()))
	}

	conf := &config.Configuration{}
	err := viper.Unmarshal(conf)
	if err != nil {
		logger.Fatal("Unable to unmarshall config", zap.Error(err))
	}
	logger.Debug("Config loaded", zap.Any("config", conf))
	logger.Debug("Validating final config")
	if err = conf.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	cmd.LoadedConfig = conf
}
