package model

// VolatilityStat holds one symbol's volatility over an observation
// window, paired with its average price for reporting.
type VolatilityStat struct {
	Symbol     string
	Name       string
	Volatility float64
	AvgPrice   float64
	PriceRange float64
}

// Mover is one entry in the 24h gainers/losers ranking.
type Mover struct {
	Symbol       string
	Name         string
	PriceUSD     float64
	PctChange24h float64
	PctChange7d  float64
	MarketCap    float64
}

// Movers holds the top gainers and losers, largest magnitude first.
type Movers struct {
	Gainers []Mover
	Losers  []Mover
}

// CapSegment is one slice of the market-cap concentration breakdown:
// a single asset, or the "Others" rollup.
type CapSegment struct {
	Label     string
	MarketCap float64
}
