package collector

import (
	"fmt"

	"CryptoTracker/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Result *model.FetchResult
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Fetch(limit int) (*model.FetchResult, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &model.FetchResult{Records: generateMockRecords(limit), Endpoint: "mock"}, nil
}

func generateMockRecords(count int) []model.MarketRecord {
	records := make([]model.MarketRecord, count)
	for i := 0; i < count; i++ {
		price := 100.0 / float64(i+1)
		cap := 1e9 / float64(i+1)
		change := float64(count/2-i) * 0.5
		rank := i + 1
		records[i] = model.MarketRecord{
			Symbol:        fmt.Sprintf("mock%d", i+1),
			Name:          fmt.Sprintf("Mock Coin %d", i+1),
			CurrentPrice:  &price,
			MarketCap:     &cap,
			PctChange24h:  &change,
			MarketCapRank: &rank,
		}
	}
	return records
}
