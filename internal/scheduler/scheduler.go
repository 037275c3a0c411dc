package scheduler

import (
	"fmt"
	"log"

	"CryptoTracker/internal/collector"

	"github.com/robfig/cron/v3"
)

// Scheduler runs collection cycles on a cron schedule. Cycles never
// overlap: cron invokes them sequentially and each cycle blocks until
// its fetch and append finish.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
}

// NewScheduler creates a new Scheduler.
func NewScheduler(col *collector.Collector) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
	}
}

// Register registers the collection task under the given cron spec.
func (s *Scheduler) Register(collectCron string) error {
	if _, err := s.Cron.AddFunc(collectCron, s.collectTask); err != nil {
		return fmt.Errorf("register collect task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes a collection cycle immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.collectTask()
}

func (s *Scheduler) collectTask() {
	log.Println("[INFO] running collection cycle")
	if err := s.Collector.Collect(); err != nil {
		log.Printf("[ERROR] collection cycle: %v", err)
		return
	}
	log.Println("[INFO] collection cycle completed")
}
