package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/allworkdone/skills-exchange/internal/api/handler"
	"github.com/allworkdone/skills-exchange/internal/chathub"
	"github.com/allworkdone/skills-exchange/internal/chats"
	"github.com/allworkdone/skills-exchange/internal/config"
	"github.com/allworkdone/skills-exchange/internal/exchange"
	"github.com/allworkdone/skills-exchange/internal/models"
	"github.com/allworkdone/skills-exchange/internal/storage"
)

func setupDependencies(cfg *config.Config, sugar *zap.SugaredLogger) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		sugar.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		sugar.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.Exchange{},
		&models.Chat{},
		&models.Message{},
	)
	if err != nil {
		sugar.Fatalf("Failed to run migrations: %v", err)
	}

	sugar.Info("Database and Redis connections established, migrations complete")
	return db, rdb
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap.NewProduction: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("Failed to load config: %v", err)
	}

	db, rdb := setupDependencies(cfg, sugar)
	store := storage.NewService(db, rdb, sugar)

	hub := chathub.NewManager(store, sugar)
	go hub.Run()
	go hub.RunPubSubListener(store.SubscribeChatRooms())

	exchangeSvc := exchange.NewService(store, sugar)
	chatSvc := chats.NewService(store, sugar)

	r := gin.Default()
	h := handler.NewHandler(exchangeSvc, chatSvc, hub, []byte(cfg.JWTSecret), sugar)
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	sugar.Infof("Starting skills-exchange backend on %s", cfg.HTTPAddr)
	sugar.Fatal(server.ListenAndServe())
}
