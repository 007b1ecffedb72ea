package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/expomeet/expomeet-server/internal/config"
	"github.com/expomeet/expomeet-server/internal/db"
	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/server"
	"github.com/expomeet/expomeet-server/internal/storage"
)

var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := conn.AutoMigrate(
		&model.User{},
		&model.BuyerCategory{},
		&model.Interest{},
		&model.PropertyType{},
		&model.BuyerProfile{},
		&model.SellerProfile{},
		&model.SellerAttendee{},
		&model.StallType{},
		&model.Stall{},
		&model.StallInventory{},
		&model.Meeting{},
		&model.TimeSlot{},
		&model.SystemSetting{},
		&model.TravelPlan{},
		&model.Transportation{},
		&model.Accommodation{},
		&model.GroundTransportation{},
		&model.HostProperty{},
		&model.InvitedBuyer{},
		&model.PendingBuyer{},
		&model.DomainRestriction{},
		&model.BuyerBankDetails{},
		&model.AccessLog{},
		&model.ChatConversation{},
		&model.ChatMessage{},
	); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	redisClient, err := storage.NewRedis(cfg)
	if err != nil {
		log.Fatalf("redis connect error: %v", err)
	}

	srv := server.New(conn, redisClient, cfg, gitSHA, buildTime)

	if cfg.ExpirySweepEvery > 0 {
		go func() {
			ticker := time.NewTicker(cfg.ExpirySweepEvery)
			defer ticker.Stop()
			for range ticker.C {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				n, err := srv.Quota().SweepAll(ctx)
				cancel()
				if err != nil {
					log.Printf("[sweep] stage=error err=%v", err)
					continue
				}
				if n > 0 {
					log.Printf("[sweep] stage=done expired=%d", n)
				}
			}
		}()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	addr := ":" + port

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
