package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	accesslogrepo "github.com/seapgd/docket-core/internal/accesslog/repo"
	assigneerepo "github.com/seapgd/docket-core/internal/assignee/repo"
	"github.com/seapgd/docket-core/internal/auth"
	typerepo "github.com/seapgd/docket-core/internal/doctype/repo"
	docrepo "github.com/seapgd/docket-core/internal/document/repo"
	"github.com/seapgd/docket-core/internal/router"
	userrepo "github.com/seapgd/docket-core/internal/user/repo"
	"github.com/seapgd/docket-core/pkg/database"
	"github.com/seapgd/docket-core/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.InitLogger(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting docket-core")

	// init db
	cfg := database.ConfigFromEnv()
	sqlDB, err := database.Connect(cfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	// wrap with sqlx for convenience in repos/services
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")
	defer sqlxDB.Close()

	// create tables on first run; users and assignees before documents so the
	// foreign keys resolve
	setupCtx, setupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer setupCancel()
	for _, ensure := range []func(context.Context) error{
		userrepo.NewUserRepo(sqlxDB).EnsureTable,
		assigneerepo.NewAssigneeRepo(sqlxDB).EnsureTable,
		typerepo.NewDocTypeRepo(sqlxDB).EnsureTable,
		docrepo.NewDocumentRepo(sqlxDB).EnsureTable,
		accesslogrepo.NewAccessLogRepo(sqlxDB).EnsureTable,
	} {
		if err := ensure(setupCtx); err != nil {
			sugar.Fatalf("schema setup: %v", err)
		}
	}

	sessions, err := auth.NewSessions("docket-core")
	if err != nil {
		sugar.Fatalf("session keys: %v", err)
	}

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8431"
	}

	// mount http server
	handler := router.RegisterRoutes(sugar, sqlxDB, sessions)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// run server in background
	go func() {
		sugar.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// ping db once more
	if err := sqlDB.PingContext(doneCtx); err != nil {
		sugar.Warnf("db ping on shutdown failed: %v", err)
	}

	// shutdown http server
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
