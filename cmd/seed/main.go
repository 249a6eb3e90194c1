// Command seed creates the demo user and the starter hotel catalog.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/database"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, database.DialectMySQL); err != nil {
		log.Fatal(err)
	}
	res, err := database.Seed(ctx, db, cfg.BcryptCost)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("seed data created: demo user created=%v, hotels created=%d", res.UserCreated, res.HotelsCreated)
}
