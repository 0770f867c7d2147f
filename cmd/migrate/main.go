package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"

	"github.com/murkotick/catalog-service/internal/config"
	"github.com/murkotick/catalog-service/internal/pkg/logger"
	"github.com/murkotick/catalog-service/internal/pkg/migrate"
	"github.com/murkotick/catalog-service/migrations"
)

// A small helper that applies the embedded DDL to the configured Spanner
// database, typically the emulator for local dev.
//
// Usage (emulator):
//
//	export SPANNER_EMULATOR_HOST=localhost:9010
//	export SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db
//	go run ./cmd/migrate -create
func main() {
	create := flag.Bool("create", false, "create the instance and database first (emulator only)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}
	base, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		stdlog.Fatalf("logger: %v", err)
	}
	log := base.WithField("cmd", "migrate")

	db := cfg.Store.SpannerDatabase
	if db == "" {
		log.Fatal("SPANNER_DATABASE is required (e.g. projects/test-project/instances/emulator-instance/databases/test-db)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	stmts, err := migrate.ReadStatements(migrations.FS)
	if err != nil {
		log.WithError(err).Fatal("read DDL")
	}

	if *create {
		if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
			log.Fatal("-create is only supported against the emulator")
		}
		if err := ensure(ctx, db); err != nil {
			log.WithError(err).Fatal("create database")
		}
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		log.WithError(err).Fatal("database admin client")
	}
	defer admin.Close()

	if err := migrate.Apply(ctx, admin, db, stmts); err != nil {
		log.WithError(err).Fatal("apply DDL")
	}
	log.WithField("statements", len(stmts)).WithField("database", db).Info("applied DDL")
}

func ensure(ctx context.Context, db string) error {
	project, inst, name, err := migrate.ParseDatabase(db)
	if err != nil {
		return err
	}

	instAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return err
	}
	defer instAdmin.Close()
	if err := migrate.EnsureInstance(ctx, instAdmin, project, inst); err != nil {
		return err
	}

	dbAdmin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return err
	}
	defer dbAdmin.Close()
	return migrate.EnsureDatabase(ctx, dbAdmin, "projects/"+project+"/instances/"+inst, name)
}
