package analytics

import (
	"fmt"

	"CryptoTracker/internal/model"
)

// Querier is the read side of the snapshot store the engine consumes.
type Querier interface {
	Window(symbol string, days int) ([]model.Snapshot, error)
	Latest() ([]model.Snapshot, error)
	TopByMarketCap(limit int) ([]model.Snapshot, error)
}

// Engine derives summary statistics from stored snapshots. Each method
// is a stateless reduction over one query's rows and is safe to re-run
// against the same data.
type Engine struct {
	Store Querier
}

// NewEngine creates a new Engine over the given store.
func NewEngine(store Querier) *Engine {
	return &Engine{Store: store}
}

// Volatility computes per-symbol volatility over the trailing window,
// most volatile first. Symbols with fewer than two observations carry
// no volatility and are left out entirely.
func (e *Engine) Volatility(days int) ([]model.VolatilityStat, error) {
	rows, err := e.Store.Window("", days)
	if err != nil {
		return nil, fmt.Errorf("volatility window: %w", err)
	}
	return VolatilityStats(rows), nil
}

// GainersLosers ranks the current snapshot of every asset by 24h change.
func (e *Engine) GainersLosers() (*model.Movers, error) {
	rows, err := e.Store.Latest()
	if err != nil {
		return nil, fmt.Errorf("latest snapshots: %w", err)
	}
	return SplitMovers(rows), nil
}

// MarketCapBreakdown reports market-cap concentration: the ten largest
// assets individually plus one rollup of the next ten.
func (e *Engine) MarketCapBreakdown() ([]model.CapSegment, error) {
	rows, err := e.Store.TopByMarketCap(20)
	if err != nil {
		return nil, fmt.Errorf("top market cap: %w", err)
	}
	return CapSegments(rows), nil
}
