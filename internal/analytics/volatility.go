package analytics

import (
	"math"
	"sort"

	"CryptoTracker/internal/model"
)

// VolatilityStats groups window rows by symbol and computes each
// symbol's log-return volatility, sorted descending. Symbols with a
// single observation are excluded rather than reported as zero.
func VolatilityStats(rows []model.Snapshot) []model.VolatilityStat {
	bySymbol := make(map[string][]model.Snapshot)
	var order []string
	for _, r := range rows {
		if _, seen := bySymbol[r.Symbol]; !seen {
			order = append(order, r.Symbol)
		}
		bySymbol[r.Symbol] = append(bySymbol[r.Symbol], r)
	}

	var stats []model.VolatilityStat
	for _, sym := range order {
		obs := bySymbol[sym]
		if len(obs) < 2 {
			continue
		}
		sort.SliceStable(obs, func(i, j int) bool {
			if !obs[i].Timestamp.Equal(obs[j].Timestamp) {
				return obs[i].Timestamp.Before(obs[j].Timestamp)
			}
			return obs[i].ID < obs[j].ID
		})

		prices := make([]float64, len(obs))
		for i, o := range obs {
			prices[i] = o.PriceUSD
		}
		returns := logReturns(prices)

		stats = append(stats, model.VolatilityStat{
			Symbol:     sym,
			Name:       obs[0].Name,
			Volatility: volatility(returns),
			AvgPrice:   mean(prices),
			PriceRange: maxOf(prices) - minOf(prices),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Volatility > stats[j].Volatility })
	return stats
}

func logReturns(prices []float64) []float64 {
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns = append(returns, math.Log(prices[i])-math.Log(prices[i-1]))
	}
	return returns
}

// volatility scales the deviation of the returns by the square root of
// their count. A lone return has zero deviation about its own mean,
// which would make every two-point series score 0; its magnitude is
// reported instead.
func volatility(returns []float64) float64 {
	if len(returns) == 1 {
		return math.Abs(returns[0])
	}
	return stddev(returns) * math.Sqrt(float64(len(returns)))
}

func stddev(xs []float64) float64 {
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}
