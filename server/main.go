package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowlua/scriptgraph/api"
	"github.com/flowlua/scriptgraph/config"
	"github.com/flowlua/scriptgraph/nodetype"
	"github.com/flowlua/scriptgraph/postgres"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	store := postgres.New(pool)
	if err := store.CreateSchema(context.Background()); err != nil {
		log.Fatalf("schema: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	app := api.New(store, nodetype.Builtin(), logger)

	logger.Info("listening", "addr", cfg.ListenAddr)
	log.Fatal(app.Listen(cfg.ListenAddr))
}
