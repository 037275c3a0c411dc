package model

import "time"

// MarketRecord is one raw record from the markets endpoint. Pointer
// fields distinguish a missing or null value from a real zero.
type MarketRecord struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	CurrentPrice  *float64 `json:"current_price"`
	MarketCap     *float64 `json:"market_cap"`
	TotalVolume   *float64 `json:"total_volume"`
	PctChange24h  *float64 `json:"price_change_percentage_24h"`
	PctChange7d   *float64 `json:"price_change_percentage_7d"`
	MarketCapRank *int     `json:"market_cap_rank"`
}

// FetchResult is a successfully fetched batch plus the endpoint that
// served it.
type FetchResult struct {
	Records  []MarketRecord
	Endpoint string
}

// Snapshot is one stored observation of one asset. Rows are immutable
// once written; the timestamp is assigned by the store at append time.
type Snapshot struct {
	ID           int64
	Symbol       string
	Name         string
	PriceUSD     float64
	MarketCap    float64
	Volume24h    float64
	PctChange24h *float64
	PctChange7d  *float64
	Timestamp    time.Time
	RankPosition int
}
