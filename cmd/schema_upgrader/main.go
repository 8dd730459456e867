package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	kpg "github.com/khipulab/khipu/pkg/domain/khipu/db/postgres"
	"github.com/khipulab/khipu/pkg/utils/try"
)

// schema_upgrader applies pending schema versions and exits.
// Run it before (re)starting khipud when the schema repository
// carries a newer version than the database.
func main() {
	logger := log.Default()

	dburi := flag.String("dburi", os.Getenv("KHIPU_DBURI"), "connection string of the database")
	schema := flag.String("schema", os.Getenv("KHIPU_SCHEMA"), "path to the schema repository directory")
	flag.Parse()

	if *dburi == "" || *schema == "" {
		logger.Fatal("both -dburi and -schema are required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	db := try.To(kpg.New(
		ctx, *dburi, kpg.WithSchemaRepository(*schema),
	)).OrFatal(logger)
	defer db.Close()

	if err := db.Schema().Upgrade(ctx); err != nil {
		logger.Fatalf("can not upgrade database schema: %s", err)
	}

	version := try.To(db.Schema().Version(ctx)).OrFatal(logger)
	logger.Printf("database schema is up to date. version = %d", version)
}
