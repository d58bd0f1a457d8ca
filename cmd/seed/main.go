package main

import (
	"context"
	"log"
	"os"

	"github.com/groupsix/gymbook/config"
	"github.com/groupsix/gymbook/internal/database"
	"github.com/groupsix/gymbook/internal/service/seed"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	stores, err := database.NewStores(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("open stores: %v", err)
	}
	defer stores.Close()

	seeder := seed.NewSeedService(stores.Schedules, stores.Admins, cfg.Schedule.UpcomingDays)
	if err := seeder.EnsureAdmin(ctx); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	created, err := seeder.InitializeSampleData(ctx)
	if err != nil {
		log.Fatalf("seed schedule: %v", err)
	}
	if created == 0 {
		log.Println("schedule already populated, nothing to do")
		return
	}
	log.Printf("seeded %d sessions over the next %d days", created, cfg.Schedule.UpcomingDays)
}
