package collector

import (
	"fmt"
	"log"
)

// Collector runs one collection cycle: fetch a batch of market records
// and append it to the store.
type Collector struct {
	Fetcher Fetcher
	Store   Appender
	Limit   int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, store Appender, limit int) *Collector {
	return &Collector{Fetcher: fetcher, Store: store, Limit: limit}
}

// Collect fetches one batch and stores it. A failed fetch means this
// cycle yields no data; the error is for logging, not for aborting the
// process, and the next cycle starts clean.
func (c *Collector) Collect() error {
	res, err := c.Fetcher.Fetch(c.Limit)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	stored, err := c.Store.Append(res.Records)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	log.Printf("[INFO] stored %d of %d records (endpoint %s)", stored, len(res.Records), res.Endpoint)
	return nil
}
