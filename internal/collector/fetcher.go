package collector

import "CryptoTracker/internal/model"

// Fetcher defines the interface for obtaining a batch of market records.
type Fetcher interface {
	Fetch(limit int) (*model.FetchResult, error)
	Name() string
}

// Appender is the write side of the snapshot store.
type Appender interface {
	Append(records []model.MarketRecord) (int, error)
}
