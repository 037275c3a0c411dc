package report

import (
	"fmt"
	"strings"
	"time"

	"CryptoTracker/internal/analytics"
	"CryptoTracker/internal/model"

	"github.com/dustin/go-humanize"
)

// Generate runs the analytics over the trailing window and renders the
// full market report.
func Generate(engine *analytics.Engine, days int) (string, error) {
	movers, err := engine.GainersLosers()
	if err != nil {
		return "", fmt.Errorf("gainers/losers: %w", err)
	}
	vol, err := engine.Volatility(days)
	if err != nil {
		return "", fmt.Errorf("volatility: %w", err)
	}
	segments, err := engine.MarketCapBreakdown()
	if err != nil {
		return "", fmt.Errorf("market cap breakdown: %w", err)
	}
	return Format(days, movers, vol, segments), nil
}

// Format renders the analytics results as a plain-text report. Empty
// sections are skipped, so a freshly created store still produces a
// valid (if short) report.
func Format(days int, movers *model.Movers, vol []model.VolatilityStat, segments []model.CapSegment) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("CRYPTOCURRENCY MARKET REPORT - LAST %d DAYS | %s\n", days, time.Now().Format("2006-01-02")))
	b.WriteString(strings.Repeat("=", 60) + "\n")

	if len(movers.Gainers) > 0 {
		b.WriteString("\nTop Gainers (24h):\n")
		for i, mv := range top(movers.Gainers, 5) {
			b.WriteString(fmt.Sprintf("  %d. %s (%s): %+.2f%% at $%s\n",
				i+1, mv.Symbol, mv.Name, mv.PctChange24h, humanize.CommafWithDigits(mv.PriceUSD, 2)))
		}
	}

	if len(movers.Losers) > 0 {
		b.WriteString("\nTop Losers (24h):\n")
		for i, mv := range top(movers.Losers, 5) {
			b.WriteString(fmt.Sprintf("  %d. %s (%s): %+.2f%% at $%s\n",
				i+1, mv.Symbol, mv.Name, mv.PctChange24h, humanize.CommafWithDigits(mv.PriceUSD, 2)))
		}
	}

	if len(vol) > 0 {
		b.WriteString("\nMost Volatile:\n")
		for i, v := range vol[:minInt(3, len(vol))] {
			b.WriteString(fmt.Sprintf("  %d. %s: %.4f (avg $%s)\n",
				i+1, v.Symbol, v.Volatility, humanize.CommafWithDigits(v.AvgPrice, 2)))
		}
	}

	if len(segments) > 0 {
		var total float64
		for _, seg := range segments {
			total += seg.MarketCap
		}
		b.WriteString("\nMarket Cap Concentration:\n")
		for _, seg := range segments {
			b.WriteString(fmt.Sprintf("  %-8s $%s (%.1f%%)\n",
				seg.Label, humanize.CommafWithDigits(seg.MarketCap/1e9, 1)+"B", seg.MarketCap/total*100))
		}
	}

	b.WriteString("\n" + strings.Repeat("=", 60) + "\n")
	return b.String()
}

func top(movers []model.Mover, n int) []model.Mover {
	if len(movers) > n {
		return movers[:n]
	}
	return movers
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
