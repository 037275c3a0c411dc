package analytics

import "CryptoTracker/internal/model"

const moversLimit = 10

// SplitMovers cuts the latest-per-symbol view, already ordered by 24h
// change descending, into top gainers and top losers. Losers come back
// worst first. Short inputs yield short lists, never padding.
func SplitMovers(rows []model.Snapshot) *model.Movers {
	m := &model.Movers{}
	n := len(rows)

	for i := 0; i < n && i < moversLimit; i++ {
		m.Gainers = append(m.Gainers, toMover(rows[i]))
	}

	start := n - moversLimit
	if start < 0 {
		start = 0
	}
	for i := n - 1; i >= start; i-- {
		m.Losers = append(m.Losers, toMover(rows[i]))
	}
	return m
}

func toMover(s model.Snapshot) model.Mover {
	mv := model.Mover{
		Symbol:    s.Symbol,
		Name:      s.Name,
		PriceUSD:  s.PriceUSD,
		MarketCap: s.MarketCap,
	}
	if s.PctChange24h != nil {
		mv.PctChange24h = *s.PctChange24h
	}
	if s.PctChange7d != nil {
		mv.PctChange7d = *s.PctChange7d
	}
	return mv
}
