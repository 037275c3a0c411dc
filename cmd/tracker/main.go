package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"CryptoTracker/internal/collector"
	"CryptoTracker/internal/config"
	"CryptoTracker/internal/fetcher"
	"CryptoTracker/internal/scheduler"
	"CryptoTracker/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] crypto price tracker starting...")

	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	f := fetcher.NewCoinGeckoFetcher(cfg.CoinGecko.APIKey, cfg.CoinGecko.Tier, cfg.CoinGecko.BaseURL, cfg.Proxy)
	log.Printf("[INFO] data source: %s (free endpoint %s)", f.Name(), f.FreeURL)

	// Init store
	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open store: %v", err)
	}
	defer st.Close()

	// Init collector and scheduler
	col := collector.NewCollector(f, st, cfg.CoinGecko.FetchLimit)
	sched := scheduler.NewScheduler(col)
	if err := sched.Register(cfg.Schedule.CollectCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing collection cycle now")
		go sched.RunNow()
	}

	log.Println("[INFO] tracker is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
}
