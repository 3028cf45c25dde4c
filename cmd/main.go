package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myblog/internal/handlers"
	"myblog/internal/logger"
	"myblog/internal/repository"
	"myblog/internal/repository/db"
	"myblog/internal/server"
	"myblog/internal/service"

	"github.com/spf13/viper"

	_ "myblog/docs"
)

const sessionReapTick = 10 * time.Minute

func main() {
	// load config.yml
	if err := loadConfig(); err != nil {
		logger.New(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.New(viper.GetString("log_level"))

	// open DB
	database, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// the upload middleware needs its target directory before the first request
	uploadDir := viper.GetString("uploads.dir")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatalw("failed to create upload dir", "dir", uploadDir, "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(database)
	services := service.NewService(repos, service.Config{
		SessionSecret: viper.GetString("session.secret"),
		SessionTTL:    viper.GetDuration("session.max_age"),
	}, log)
	apiHandler := handlers.NewHandler(services, handlerConfig(), log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// avatar cleanup worker and session reaper
	go services.Cleanup.Run(ctx)
	go services.Maintenance.Run(ctx, sessionReapTick)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "myblog.db")
		dbPath = "myblog.db"
	}
	return db.Open(dbPath)
}

func handlerConfig() handlers.Config {
	ttl := viper.GetDuration("session.max_age")
	return handlers.Config{
		CookieName:   viper.GetString("session.cookie"),
		CookieMaxAge: int(ttl.Seconds()),
		CookieSecure: viper.GetString("tls.cert_file") != "",
		UploadDir:    viper.GetString("uploads.dir"),
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		cfg := server.Config{
			Port:     viper.GetString("port"),
			CertFile: viper.GetString("tls.cert_file"),
			KeyFile:  viper.GetString("tls.key_file"),
		}
		if cfg.Port == "" {
			cfg.Port = "8080"
		}
		if err := srv.Run(cfg, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines; the cleanup worker makes a final drain
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
