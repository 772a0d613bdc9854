// Command seed loads the sample members, books and orders into the database
// named by POSTGRES_DSN (or SQLITE_DSN).
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Apurer/go-gin-shop-api/internal/app/api"
	"github.com/Apurer/go-gin-shop-api/internal/app/seed"
	"github.com/Apurer/go-gin-shop-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-shop-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	_ = godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: platformobservability.ParseLevel(os.Getenv("LOG_LEVEL")),
	}))
	instruments := platformobservability.NewInMemory(logger)

	db, closeDB, err := platformpostgres.ConnectFromEnv(ctx, platformpostgres.Options{Logger: logger})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer closeDB()
	if err := migrations.Run(db); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	app := api.Build(api.Dependencies{DB: db, Instruments: instruments})
	result, err := seed.Load(ctx, seed.Services{Members: app.Members, Items: app.Items, Orders: app.Orders}, logger)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	attrs := []any{slog.Int("orders", len(result.OrderIDs))}
	if rm, err := instruments.Collect(ctx); err == nil {
		placed, _ := platformobservability.Int64Sum(rm, "orders.service.orders_placed")
		joined, _ := platformobservability.Int64Sum(rm, "members.service.joined")
		attrs = append(attrs, slog.Int64("ordersPlaced", placed), slog.Int64("membersJoined", joined))
	}
	logger.Info("seed finished", attrs...)
}
