package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/groupsix/gymbook/config"
	"github.com/groupsix/gymbook/internal/bootstrap"
	"github.com/groupsix/gymbook/internal/cache"
	"github.com/groupsix/gymbook/internal/database"
	"github.com/groupsix/gymbook/internal/kafka"
	"github.com/groupsix/gymbook/internal/service/booking"
	"github.com/groupsix/gymbook/internal/service/schedule"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := database.NewStores(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("open stores: %v", err)
	}
	defer stores.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Schedule.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	scheduleService := schedule.NewScheduleService(stores.Schedules, redisCache, cfg.Schedule.UpcomingDays)
	bookingService := booking.NewBookingService(
		stores.Bookings,
		stores.Schedules,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	router := bootstrap.NewCustomerRouter(scheduleService, bookingService)

	log.Printf("customer interface listening on %s", cfg.CustomerHTTP.Address)
	if err := bootstrap.Run(ctx, cfg.CustomerHTTP.Address, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
