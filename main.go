package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"attritionlens/adapters/excel"
	"attritionlens/adapters/postgres"
	"attritionlens/internal"
	"attritionlens/internal/config"
	"attritionlens/internal/dataset"
	apperrors "attritionlens/internal/errors"
	"attritionlens/internal/migration"
	"attritionlens/internal/ops"
	"attritionlens/internal/session"
	"attritionlens/ports"
	"attritionlens/ui"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase connects to PostgreSQL and makes sure the employees table exists
func initDatabase(ctx context.Context, appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to connect to database")
	}

	migrator := migration.NewRunner(appConfig.Database.Table)
	if err := migrator.Run(ctx, db); err != nil {
		db.Close()
		return nil, apperrors.Wrap(err, "database migration failed")
	}
	return db, nil
}

// openSource builds the configured dataset source
func openSource(ctx context.Context, appConfig *config.Config) (ports.DatasetSource, *sqlx.DB, error) {
	if appConfig.Data.Source == config.SourcePostgres {
		db, err := initDatabase(ctx, appConfig)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using PostgreSQL data source: table %s", appConfig.Database.Table)
		return postgres.NewEmployeeSource(db, appConfig.Database.Table), db, nil
	}
	log.Printf("Using file data source: %s", appConfig.Data.Path)
	return excel.NewDataReader(appConfig.Data.Path), nil, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.DefaultLogger = internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel))
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, db, err := openSource(ctx, appConfig)
	if err != nil {
		log.Fatalf("Failed to open dataset source: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	// The dashboard cannot run without its table; a missing or malformed
	// dataset stops startup.
	cache := dataset.NewCache()
	table, err := cache.Get(ctx, source)
	if err != nil {
		switch {
		case apperrors.IsNotFound(err):
			log.Fatalf("Dataset not found: %v", err)
		case apperrors.IsLoadError(err):
			log.Fatalf("Dataset could not be loaded: %v", err)
		default:
			log.Fatalf("Failed to load dataset: %v", err)
		}
	}
	log.Printf("Loaded %d employees from %s", table.Len(), table.Source)

	sessions := session.NewManager(appConfig.Session.TTL)
	go sessions.Run(ctx, time.Minute)

	if appConfig.Ops.Enabled {
		opsServer := ops.NewServer(ops.Config{Port: appConfig.Ops.Port, Profile: true}, healthFunc(source, cache, sessions))
		go func() {
			log.Printf("Ops server starting on :%s (healthz, debug/pprof)", appConfig.Ops.Port)
			if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("ops server failed: %v", err)
			}
		}()
		defer shutdown(opsServer)
	}

	server, err := ui.NewServer(source, cache, sessions)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	httpServer := server.HTTPServer(appConfig.Server.Port)

	go func() {
		log.Printf("Starting attrition dashboard on port %s", appConfig.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
	shutdown(httpServer)
}

// healthFunc reports whether the dataset can still be served
func healthFunc(source ports.DatasetSource, cache *dataset.Cache, sessions *session.Manager) ops.HealthFunc {
	return func(ctx context.Context) ops.Health {
		h := ops.Health{Source: source.Key(), Sessions: sessions.Len()}
		table, err := cache.Get(ctx, source)
		if err != nil {
			h.Error = err.Error()
			return h
		}
		h.Signature = table.Signature
		h.Rows = table.Len()
		h.LoadedAt = table.LoadedAt
		return h
	}
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown of %s failed: %v", srv.Addr, err)
	}
}
