package analytics

import (
	"math"
	"testing"
	"time"

	"CryptoTracker/internal/model"
)

var baseTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func snap(id int64, symbol string, price float64, at time.Time) model.Snapshot {
	return model.Snapshot{ID: id, Symbol: symbol, Name: symbol + " Coin", PriceUSD: price, Timestamp: at}
}

func snapChange(symbol string, pct float64) model.Snapshot {
	return model.Snapshot{Symbol: symbol, Name: symbol + " Coin", PctChange24h: &pct}
}

func snapCap(symbol string, cap float64) model.Snapshot {
	return model.Snapshot{Symbol: symbol, Name: symbol + " Coin", MarketCap: cap}
}

func TestVolatilityStats_ExcludesSingleObservation(t *testing.T) {
	rows := []model.Snapshot{
		snap(1, "BTC", 100, baseTime),
		snap(2, "ETH", 50, baseTime),
		snap(3, "BTC", 110, baseTime.Add(time.Hour)),
	}
	stats := VolatilityStats(rows)
	if len(stats) != 1 {
		t.Fatalf("stats = %d symbols, want 1 (ETH has one observation)", len(stats))
	}
	if stats[0].Symbol != "BTC" {
		t.Errorf("symbol = %q, want BTC", stats[0].Symbol)
	}
}

func TestVolatilityStats_TwoObservations(t *testing.T) {
	rows := []model.Snapshot{
		snap(1, "BTC", 100, baseTime),
		snap(2, "BTC", 110, baseTime.Add(time.Hour)),
	}
	stats := VolatilityStats(rows)
	if len(stats) != 1 {
		t.Fatalf("stats = %d, want 1", len(stats))
	}
	want := math.Abs(math.Log(110.0 / 100.0))
	if diff := math.Abs(stats[0].Volatility - want); diff > 1e-12 {
		t.Errorf("volatility = %v, want %v", stats[0].Volatility, want)
	}
	if stats[0].AvgPrice != 105 {
		t.Errorf("avg price = %v, want 105", stats[0].AvgPrice)
	}
	if stats[0].PriceRange != 10 {
		t.Errorf("price range = %v, want 10", stats[0].PriceRange)
	}
}

func TestVolatilityStats_ConstantReturnsScoreZero(t *testing.T) {
	// Three prices in constant ratio give identical log-returns, so the
	// deviation about their mean is zero.
	rows := []model.Snapshot{
		snap(1, "BTC", 100, baseTime),
		snap(2, "BTC", 110, baseTime.Add(time.Hour)),
		snap(3, "BTC", 121, baseTime.Add(2*time.Hour)),
	}
	stats := VolatilityStats(rows)
	if len(stats) != 1 {
		t.Fatalf("stats = %d, want 1", len(stats))
	}
	if stats[0].Volatility > 1e-12 {
		t.Errorf("volatility = %v, want 0 for constant returns", stats[0].Volatility)
	}
}

func TestVolatilityStats_OrdersDescending(t *testing.T) {
	rows := []model.Snapshot{
		snap(1, "STABLE", 100, baseTime),
		snap(2, "STABLE", 101, baseTime.Add(time.Hour)),
		snap(3, "WILD", 100, baseTime),
		snap(4, "WILD", 50, baseTime.Add(time.Hour)),
		snap(5, "WILD", 100, baseTime.Add(2*time.Hour)),
	}
	stats := VolatilityStats(rows)
	if len(stats) != 2 {
		t.Fatalf("stats = %d, want 2", len(stats))
	}
	if stats[0].Symbol != "WILD" {
		t.Errorf("most volatile = %q, want WILD", stats[0].Symbol)
	}
	// Returns are +-ln(2) around a zero mean: stddev ln(2), scaled by sqrt(2).
	want := math.Log(2) * math.Sqrt(2)
	if diff := math.Abs(stats[0].Volatility - want); diff > 1e-12 {
		t.Errorf("WILD volatility = %v, want %v", stats[0].Volatility, want)
	}
}

func TestVolatilityStats_UsesTimestampOrderNotInputOrder(t *testing.T) {
	rows := []model.Snapshot{
		snap(2, "BTC", 110, baseTime.Add(time.Hour)),
		snap(1, "BTC", 100, baseTime),
	}
	stats := VolatilityStats(rows)
	want := math.Abs(math.Log(110.0 / 100.0))
	if diff := math.Abs(stats[0].Volatility - want); diff > 1e-12 {
		t.Errorf("volatility = %v, want %v", stats[0].Volatility, want)
	}
}

func TestSplitMovers_FullRanking(t *testing.T) {
	var rows []model.Snapshot
	for i := 0; i < 25; i++ {
		rows = append(rows, snapChange("C"+string(rune('A'+i)), float64(24-i)))
	}

	m := SplitMovers(rows)
	if len(m.Gainers) != 10 {
		t.Errorf("gainers = %d, want 10", len(m.Gainers))
	}
	if len(m.Losers) != 10 {
		t.Errorf("losers = %d, want 10", len(m.Losers))
	}
	if m.Gainers[0].PctChange24h != 24 {
		t.Errorf("top gainer change = %v, want the maximum 24", m.Gainers[0].PctChange24h)
	}
	if m.Losers[0].PctChange24h != 0 {
		t.Errorf("top loser change = %v, want the minimum 0", m.Losers[0].PctChange24h)
	}
}

func TestSplitMovers_ShortInputNeverPads(t *testing.T) {
	rows := []model.Snapshot{
		snapChange("BTC", 5),
		snapChange("ETH", -3),
	}
	m := SplitMovers(rows)
	if len(m.Gainers) != 2 || len(m.Losers) != 2 {
		t.Fatalf("gainers/losers = %d/%d, want 2/2", len(m.Gainers), len(m.Losers))
	}
	if m.Gainers[0].Symbol != "BTC" {
		t.Errorf("top gainer = %q, want BTC", m.Gainers[0].Symbol)
	}
	if m.Losers[0].Symbol != "ETH" {
		t.Errorf("top loser = %q, want ETH", m.Losers[0].Symbol)
	}
}

func TestCapSegments_TopTenPlusOthers(t *testing.T) {
	var rows []model.Snapshot
	for i := 0; i < 20; i++ {
		rows = append(rows, snapCap("C"+string(rune('A'+i)), float64(20-i)*1e9))
	}

	segments := CapSegments(rows)
	if len(segments) != 11 {
		t.Fatalf("segments = %d, want 11", len(segments))
	}
	last := segments[len(segments)-1]
	if last.Label != "Others" {
		t.Errorf("last segment = %q, want Others", last.Label)
	}
	// Ranks 11-20 carry caps 10e9 down to 1e9.
	if want := 55e9; last.MarketCap != want {
		t.Errorf("Others cap = %v, want %v", last.MarketCap, want)
	}
}

func TestCapSegments_OthersOmittedWhenEmpty(t *testing.T) {
	var rows []model.Snapshot
	for i := 0; i < 10; i++ {
		rows = append(rows, snapCap("C"+string(rune('A'+i)), float64(10-i)*1e9))
	}

	segments := CapSegments(rows)
	if len(segments) != 10 {
		t.Fatalf("segments = %d, want 10 with no Others bucket", len(segments))
	}
	for _, seg := range segments {
		if seg.Label == "Others" {
			t.Error("unexpected Others segment")
		}
	}
}

type stubQuerier struct {
	window []model.Snapshot
	latest []model.Snapshot
	topCap []model.Snapshot
}

func (s *stubQuerier) Window(symbol string, days int) ([]model.Snapshot, error) { return s.window, nil }
func (s *stubQuerier) Latest() ([]model.Snapshot, error)                        { return s.latest, nil }
func (s *stubQuerier) TopByMarketCap(limit int) ([]model.Snapshot, error)       { return s.topCap, nil }

func TestEngine_EmptyStoreYieldsEmptyResults(t *testing.T) {
	e := NewEngine(&stubQuerier{})

	vol, err := e.Volatility(7)
	if err != nil {
		t.Fatalf("volatility: %v", err)
	}
	if len(vol) != 0 {
		t.Errorf("volatility stats = %d, want 0", len(vol))
	}

	m, err := e.GainersLosers()
	if err != nil {
		t.Fatalf("gainers/losers: %v", err)
	}
	if len(m.Gainers) != 0 || len(m.Losers) != 0 {
		t.Errorf("movers = %d/%d, want 0/0", len(m.Gainers), len(m.Losers))
	}

	segments, err := e.MarketCapBreakdown()
	if err != nil {
		t.Fatalf("market cap breakdown: %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("segments = %d, want 0", len(segments))
	}
}
