package fetcher

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"CryptoTracker/internal/model"
)

// Default CoinGecko endpoints. The free endpoint is always the final
// fallback; the pro endpoint is tried first only when configured.
const (
	FreeBaseURL = "https://api.coingecko.com/api/v3"
	ProBaseURL  = "https://pro-api.coingecko.com/api/v3"
)

// CoinGeckoFetcher fetches market snapshots from the CoinGecko REST API.
type CoinGeckoFetcher struct {
	APIKey  string
	Tier    string // "pro" enables the paid endpoint as first attempt
	ProURL  string
	FreeURL string
	Client  *http.Client
}

// NewCoinGeckoFetcher creates a fetcher with optional credential, tier
// selector, base-URL override and proxy. All configuration is resolved
// here; the fetcher never mutates it afterwards.
func NewCoinGeckoFetcher(apiKey, tier, baseURL, proxyURL string) *CoinGeckoFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	f := &CoinGeckoFetcher{
		APIKey:  apiKey,
		Tier:    strings.ToLower(strings.TrimSpace(tier)),
		ProURL:  ProBaseURL,
		FreeURL: FreeBaseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
	if baseURL != "" {
		if strings.Contains(baseURL, "pro-api") {
			f.ProURL = baseURL
			f.Tier = "pro"
		} else {
			f.FreeURL = baseURL
		}
	}
	return f
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

type attempt struct {
	baseURL string
	pro     bool
}

func (f *CoinGeckoFetcher) attempts() []attempt {
	var out []attempt
	if f.Tier == "pro" {
		out = append(out, attempt{f.ProURL, true})
	}
	return append(out, attempt{f.FreeURL, false})
}

// Fetch requests up to limit records ordered by descending market cap,
// trying each configured endpoint once. It returns on the first
// endpoint whose response parses as a JSON array; if every attempt
// fails the last error is surfaced and the cycle simply has no data.
func (f *CoinGeckoFetcher) Fetch(limit int) (*model.FetchResult, error) {
	params := url.Values{}
	params.Set("vs_currency", "usd")
	params.Set("order", "market_cap_desc")
	params.Set("per_page", strconv.Itoa(limit))
	params.Set("page", "1")
	params.Set("sparkline", "false")
	params.Set("price_change_percentage", "24h,7d")

	tries := f.attempts()
	var lastErr error
	for _, a := range tries {
		records, err := f.tryFetch(a, params)
		if err != nil {
			lastErr = err
			continue
		}
		log.Printf("[INFO] fetched %d records from %s endpoint", len(records), tierLabel(a.pro))
		return &model.FetchResult{Records: records, Endpoint: a.baseURL}, nil
	}
	return nil, fmt.Errorf("all %d endpoint(s) failed: %w", len(tries), lastErr)
}

func (f *CoinGeckoFetcher) tryFetch(a attempt, params url.Values) ([]model.MarketRecord, error) {
	endpoint := a.baseURL + "/coins/markets?" + params.Encode()
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")
	// The paid and free tiers use different credential header names.
	if f.APIKey != "" {
		if a.pro {
			req.Header.Set("x-cg-pro-api-key", f.APIKey)
		} else {
			req.Header.Set("x-cg-demo-api-key", f.APIKey)
		}
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read markets body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch markets: status %d, body: %s", resp.StatusCode, truncate(body, 300))
	}

	var records []model.MarketRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode markets: %w", err)
	}
	return records, nil
}

func tierLabel(pro bool) string {
	if pro {
		return "PRO"
	}
	return "FREE"
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
