package analytics

import "CryptoTracker/internal/model"

const capLeaders = 10

// CapSegments turns top-by-market-cap rows into a concentration
// breakdown: the ten largest assets individually, then a single
// "Others" rollup of whatever follows, included only when its sum is
// positive. Never more than eleven segments.
func CapSegments(rows []model.Snapshot) []model.CapSegment {
	var segments []model.CapSegment
	for i, r := range rows {
		if i >= capLeaders {
			break
		}
		segments = append(segments, model.CapSegment{Label: r.Symbol, MarketCap: r.MarketCap})
	}

	var others float64
	for i := capLeaders; i < len(rows); i++ {
		others += rows[i].MarketCap
	}
	if others > 0 {
		segments = append(segments, model.CapSegment{Label: "Others", MarketCap: others})
	}
	return segments
}
