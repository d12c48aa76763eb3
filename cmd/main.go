package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkfeed/internal/handlers"
	"linkfeed/internal/logger"
	"linkfeed/internal/pubsub"
	"linkfeed/internal/repository"
	"linkfeed/internal/repository/db"
	"linkfeed/internal/server"
	"linkfeed/internal/service"

	"github.com/spf13/viper"

	_ "linkfeed/docs"
)

// @title           linkfeed API
// @version         1.0
// @description     Link-sharing service: post links, vote once per link, read the feed, subscribe to live events over /ws.

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization

func main() {
	// load config.yml first so the log level comes from it
	if err := loadConfig(); err != nil {
		panic("error reading config: " + err.Error())
	}

	log := logger.New(viper.GetString("log.level"))

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

	// wire dependencies
	repos := repository.NewRepository(database)
	bus := pubsub.New(log)
	services := service.NewService(repos, bus, service.Config{
		SigningKey: viper.GetString("auth.signing_key"),
	})
	apiHandler := handlers.NewHandler(services, bus, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
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
		log.Infow("db.path not set in config; using default file", "default", "linkfeed.db")
		dbPath = "linkfeed.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
