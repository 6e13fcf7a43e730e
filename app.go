package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/cors"

	"outtech105.com/busroute_server/config"
	"outtech105.com/busroute_server/controllers"
	"outtech105.com/busroute_server/database"
	"outtech105.com/busroute_server/handler"
	"outtech105.com/busroute_server/models"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml")
	flag.Parse()

	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	var provider models.TransitDataProvider = models.NewSQLProvider(db, cfg.Database.PeriodColumn)
	if cfg.Snapshot.TTL > 0 {
		log.Printf("Serving transit data from memory snapshot (ttl %s)", cfg.Snapshot.TTL)
		provider = models.NewCachedProvider(provider, cfg.Snapshot.TTL)
	}

	engine := handler.NewEngine(handler.Options{
		Provider:      provider,
		Periods:       controllers.PeriodTable(cfg.Search.Periods),
		SearchTimeout: cfg.Search.Timeout,
		DB:            db,
	})

	var h http.Handler = engine
	if len(cfg.Server.CORSOrigins) > 0 {
		h = cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{handler.RequestIDHeader},
		})(engine)
	}

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Server.Port),
		Handler: h,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
