package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"CryptoTracker/internal/analytics"
	"CryptoTracker/internal/config"
	"CryptoTracker/internal/report"
	"CryptoTracker/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags)

	days := flag.Int("days", 0, "report window in days (overrides config)")
	flag.Parse()

	_ = godotenv.Load()

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
	if *days > 0 {
		cfg.Report.WindowDays = *days
	}

	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open store: %v", err)
	}
	defer st.Close()

	engine := analytics.NewEngine(st)
	out, err := report.Generate(engine, cfg.Report.WindowDays)
	if err != nil {
		log.Fatalf("[FATAL] generate report: %v", err)
	}
	fmt.Println(out)
}
