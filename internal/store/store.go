package store

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"CryptoTracker/internal/model"

	_ "modernc.org/sqlite"
)

const snapshotCols = `id, symbol, name, price_usd, market_cap, volume_24h,
	percent_change_24h, percent_change_7d, timestamp, rank_position`

// Store is an append-only SQLite log of price snapshots. Rows are never
// updated or deleted; the write timestamp is assigned here, not by the
// fetch layer.
type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (reports read while the collector writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] snapshot store opened: %s", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_data (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol             TEXT NOT NULL,
			name               TEXT NOT NULL,
			price_usd          REAL NOT NULL,
			market_cap         REAL,
			volume_24h         REAL,
			percent_change_24h REAL,
			percent_change_7d  REAL,
			timestamp          INTEGER NOT NULL,
			rank_position      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_symbol_timestamp ON price_data(symbol, timestamp)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Append inserts one row per record, all stamped with a single write
// time. Symbols are uppercased here; missing numeric fields become 0
// except the percent changes, which stay NULL so the latest view can
// filter on them. A row that fails to insert is logged and skipped,
// the rest of the batch still goes in. Returns the number of rows
// stored; an empty batch is a no-op.
func (s *Store) Append(records []model.MarketRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().Unix()
	stored := 0
	for _, rec := range records {
		_, err := s.db.Exec(`INSERT INTO price_data
			(symbol, name, price_usd, market_cap, volume_24h,
			 percent_change_24h, percent_change_7d, timestamp, rank_position)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			strings.ToUpper(rec.Symbol), rec.Name,
			orZero(rec.CurrentPrice), orZero(rec.MarketCap), orZero(rec.TotalVolume),
			nullable(rec.PctChange24h), nullable(rec.PctChange7d),
			ts, orZeroInt(rec.MarketCapRank),
		)
		if err != nil {
			log.Printf("[ERROR] store record %q: %v", rec.Name, err)
			continue
		}
		stored++
	}
	return stored, nil
}

// Window returns all rows observed within the trailing number of days,
// oldest first. A non-empty symbol filters case-insensitively to that
// asset; without a filter, rows sharing a timestamp come back in rank
// order.
func (s *Store) Window(symbol string, days int) ([]model.Snapshot, error) {
	cutoff := s.now().AddDate(0, 0, -days).Unix()

	var (
		rows *sql.Rows
		err  error
	)
	if symbol != "" {
		rows, err = s.db.Query(`SELECT `+snapshotCols+` FROM price_data
			WHERE symbol = ? AND timestamp >= ?
			ORDER BY timestamp`, strings.ToUpper(symbol), cutoff)
	} else {
		rows, err = s.db.Query(`SELECT `+snapshotCols+` FROM price_data
			WHERE timestamp >= ?
			ORDER BY timestamp, rank_position`, cutoff)
	}
	if err != nil {
		return nil, fmt.Errorf("query window: %w", err)
	}
	defer rows.Close()
	return scanSnapshots(rows)
}

// Latest returns the most recent snapshot for every distinct symbol,
// restricted to rows with a known 24h change and ordered best performer
// first. When two rows for a symbol share a timestamp, the higher row
// id (the later insert) wins.
func (s *Store) Latest() ([]model.Snapshot, error) {
	rows, err := s.db.Query(`SELECT ` + snapshotCols + ` FROM price_data p
		WHERE p.id = (
			SELECT p2.id FROM price_data p2
			WHERE p2.symbol = p.symbol
			ORDER BY p2.timestamp DESC, p2.id DESC
			LIMIT 1
		)
		AND p.percent_change_24h IS NOT NULL
		ORDER BY p.percent_change_24h DESC`)
	if err != nil {
		return nil, fmt.Errorf("query latest: %w", err)
	}
	defer rows.Close()
	return scanSnapshots(rows)
}

// TopByMarketCap returns the latest snapshot per symbol for the largest
// assets by market cap, biggest first. Rows without a positive market
// cap are excluded.
func (s *Store) TopByMarketCap(limit int) ([]model.Snapshot, error) {
	rows, err := s.db.Query(`SELECT `+snapshotCols+` FROM price_data p
		WHERE p.id = (
			SELECT p2.id FROM price_data p2
			WHERE p2.symbol = p.symbol
			ORDER BY p2.timestamp DESC, p2.id DESC
			LIMIT 1
		)
		AND p.market_cap > 0
		ORDER BY p.market_cap DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top market cap: %w", err)
	}
	defer rows.Close()
	return scanSnapshots(rows)
}

func (s *Store) Close() error {
	log.Println("[INFO] closing snapshot store")
	return s.db.Close()
}

func scanSnapshots(rows *sql.Rows) ([]model.Snapshot, error) {
	var out []model.Snapshot
	for rows.Next() {
		var (
			snap         model.Snapshot
			pct24, pct7  sql.NullFloat64
			ts           int64
		)
		if err := rows.Scan(&snap.ID, &snap.Symbol, &snap.Name, &snap.PriceUSD,
			&snap.MarketCap, &snap.Volume24h, &pct24, &pct7, &ts, &snap.RankPosition); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.Timestamp = time.Unix(ts, 0)
		if pct24.Valid {
			v := pct24.Float64
			snap.PctChange24h = &v
		}
		if pct7.Valid {
			v := pct7.Float64
			snap.PctChange7d = &v
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return out, nil
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func orZeroInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func nullable(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
