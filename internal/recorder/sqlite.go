package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"GoldSentinel/internal/model"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the monitor writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS observations (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL UNIQUE,
			price     REAL NOT NULL,
			aux       TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS decisions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id  TEXT NOT NULL,
			timestamp   INTEGER NOT NULL,
			price       REAL,
			regime      TEXT,
			ma_short    REAL,
			ma_long     REAL,
			ma20        REAL,
			rsi14       REAL,
			vol14       REAL,
			vol50       REAL,
			trend14     REAL,
			band_mid    REAL,
			band_upper  REAL,
			band_lower  REAL,
			stop        REAL,
			take_profit_1 REAL,
			take_profit_2 REAL,
			volatility  REAL,
			action      TEXT,
			sold_level  INTEGER,
			peak        REAL,
			pnl         REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_ts ON decisions(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_session ON decisions(session_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordObservation stores a price; a repeated timestamp is ignored.
func (r *SQLiteRecorder) RecordObservation(obs *model.PriceObservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT OR IGNORE INTO observations (timestamp, price, aux) VALUES (?,?,?)`,
		obs.Time.Unix(), obs.Price, obs.Aux)
	return err
}

func (r *SQLiteRecorder) RecordDecision(sessionID string, d *model.Decision) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := d.Snapshot
	var mid, upper, lower any
	if snap.Bands != nil {
		mid, upper, lower = snap.Bands.Mid, snap.Bands.Upper, snap.Bands.Lower
	}

	_, err := r.db.Exec(`INSERT INTO decisions
		(session_id, timestamp, price, regime,
		 ma_short, ma_long, ma20, rsi14, vol14, vol50, trend14,
		 band_mid, band_upper, band_lower,
		 stop, take_profit_1, take_profit_2, volatility,
		 action, sold_level, peak, pnl)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		sessionID, d.Time.Unix(), d.Price, string(d.Regime),
		nullable(snap.MAShort), nullable(snap.MALong), nullable(snap.MA20), nullable(snap.RSI14),
		nullable(snap.Vol14), nullable(snap.Vol50), nullable(snap.Trend14),
		mid, upper, lower,
		d.Levels.Stop, d.Levels.TakeProfit1, d.Levels.TakeProfit2, d.Levels.Volatility,
		string(d.Action), d.SoldLevel, nullable(d.Peak), nullable(d.PnL),
	)
	return err
}

// nullable maps an undefined value to SQL NULL.
func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
