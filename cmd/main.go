package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"signup_portal/internal/config"
	"signup_portal/internal/handlers"
	"signup_portal/internal/logger"
	"signup_portal/internal/repository"
	"signup_portal/internal/repository/db"
	"signup_portal/internal/server"
	"signup_portal/internal/service"
	"signup_portal/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "signup-portal",
		Short:        "User signup and login website",
		SilenceUsage: true,
	}
	addConfigFlag(root.PersistentFlags(), &configPath)

	root.AddCommand(newServeCmd(&configPath), newMigrateCmd(&configPath))
	return root
}

func addConfigFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVarP(target, "config", "c", "", "path to config file (default configs/config.yml)")
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("error reading config: %w", err)
			}
			return serve(cfg)
		},
	}
}

func newMigrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	run := func(apply func(*db.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("error reading config: %w", err)
			}
			conn, err := db.InitDB(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer conn.Close()

			mig, err := db.NewMigrator(conn, cfg.DB.Driver)
			if err != nil {
				return err
			}
			if err := apply(mig); err != nil {
				return err
			}
			version, dirty, err := mig.Version()
			if err != nil {
				return err
			}
			cmd.Printf("schema version %d (dirty=%t)\n", version, dirty)
			return nil
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply pending migrations", RunE: run((*db.Migrator).Up)},
		&cobra.Command{Use: "down", Short: "Roll back every migration", RunE: run((*db.Migrator).Down)},
		&cobra.Command{Use: "version", Short: "Print the schema version", RunE: run(func(*db.Migrator) error { return nil })},
	)
	return cmd
}

func serve(cfg *config.Config) error {
	log := logger.Get(logger.Options{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	defer func() { _ = log.Sync() }()

	conn, err := openDB(cfg, log)
	if err != nil {
		log.Errorw("failed to open database", "err", err, "driver", cfg.DB.Driver)
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn, cfg.DB.Driver)
	services := service.NewService(repos, service.Options{BcryptCost: cfg.Auth.BcryptCost})
	sessions := session.NewManager(session.Config{
		Name:   cfg.Session.Name,
		Secret: cfg.Session.Secret,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Session.Secure,
	})
	apiHandler := handlers.NewHandler(services, sessions, log)

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		handlers.RegisterMetrics(reg)
		apiHandler.ExposeMetrics(reg)
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := apiHandler.InitRoutes()
	if err != nil {
		return err
	}

	srv := &server.Server{}
	errCh := make(chan error, 1)
	go func() {
		log.Infow("http server listening", "port", cfg.Port)
		errCh <- srv.Run(cfg.Port, router)
	}()

	return waitForShutdown(srv, errCh, log)
}

// openDB opens the configured database and applies pending migrations.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening database", "driver", cfg.DB.Driver)
	return db.Open(cfg.DB.Driver, cfg.DB.DSN)
}

// waitForShutdown blocks until a termination signal or a server error, then
// drains in-flight requests.
func waitForShutdown(srv *server.Server, errCh <-chan error, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			log.Errorw("error starting server", "err", err)
		}
		return err
	case <-quit:
	}

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return <-errCh
}
