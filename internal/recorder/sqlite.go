package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/guregu/null/v6"
	_ "modernc.org/sqlite"

	"StockDataset/internal/model"
)

// SQLiteRecorder mirrors builds into a SQLite database.
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

	// WAL so readers are not blocked while a build rewrites the tables.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id              TEXT PRIMARY KEY,
			started_at      INTEGER NOT NULL,
			finished_at     INTEGER NOT NULL,
			files           INTEGER,
			loaded          INTEGER,
			skipped         INTEGER,
			row_count       INTEGER,
			symbols         INTEGER,
			securities      INTEGER,
			fundamentals    INTEGER,
			adjusted_source TEXT,
			enriched        INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS prices (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT NOT NULL,
			symbol         TEXT,
			date           TEXT,
			open           TEXT,
			high           TEXT,
			low            TEXT,
			close          TEXT,
			volume         INTEGER,
			adjusted_close TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prices_symbol_date ON prices(symbol, date)`,

		`CREATE TABLE IF NOT EXISTS securities (
			symbol       TEXT PRIMARY KEY,
			run_id       TEXT NOT NULL,
			type         TEXT,
			source_file  TEXT,
			company_name TEXT,
			sector       TEXT,
			industry     TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS fundamentals (
			symbol                TEXT PRIMARY KEY,
			run_id                TEXT NOT NULL,
			mean_close            REAL,
			std_close             REAL,
			avg_daily_return      REAL,
			annualized_volatility REAL,
			max_drawdown          REAL,
			avg_volume            REAL
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *model.RunSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO runs
		(id, started_at, finished_at, files, loaded, skipped, row_count, symbols,
		 securities, fundamentals, adjusted_source, enriched)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.RunID, run.StartedAt.Unix(), run.FinishedAt.Unix(),
		run.Files, run.Loaded, len(run.Skipped), run.Rows, run.Symbols,
		run.Securities, run.Fundamentals, run.AdjustedSource, run.Enriched,
	)
	return err
}

func (r *SQLiteRecorder) RecordPrices(runID string, prices []model.PriceRecord) error {
	return r.replace("prices", `INSERT INTO prices
		(run_id, symbol, date, open, high, low, close, volume, adjusted_close)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		len(prices), func(stmt *sql.Stmt, i int) error {
			p := prices[i]
			_, err := stmt.Exec(runID, p.Symbol, formatDate(p.Date),
				p.Open, p.High, p.Low, p.Close, p.Volume, p.AdjustedClose)
			return err
		})
}

func (r *SQLiteRecorder) RecordSecurities(runID string, secs []model.Security) error {
	return r.replace("securities", `INSERT INTO securities
		(symbol, run_id, type, source_file, company_name, sector, industry)
		VALUES (?,?,?,?,?,?,?)`,
		len(secs), func(stmt *sql.Stmt, i int) error {
			s := secs[i]
			_, err := stmt.Exec(s.Symbol, runID, string(s.Type), s.SourceFile,
				s.CompanyName, s.Sector, s.Industry)
			return err
		})
}

func (r *SQLiteRecorder) RecordFundamentals(runID string, funds []model.Fundamentals) error {
	return r.replace("fundamentals", `INSERT INTO fundamentals
		(symbol, run_id, mean_close, std_close, avg_daily_return,
		 annualized_volatility, max_drawdown, avg_volume)
		VALUES (?,?,?,?,?,?,?,?)`,
		len(funds), func(stmt *sql.Stmt, i int) error {
			f := funds[i]
			_, err := stmt.Exec(f.Symbol, runID, finite(f.MeanClose), finite(f.StdClose),
				finite(f.AvgDailyReturn), finite(f.AnnualizedVolatility),
				finite(f.MaxDrawdown), finite(f.AvgVolume))
			return err
		})
}

// replace swaps the contents of table for n freshly inserted rows in one
// transaction.
func (r *SQLiteRecorder) replace(table, insert string, n int, exec func(*sql.Stmt, int) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	stmt, err := tx.Prepare(insert)
	if err != nil {
		return fmt.Errorf("prepare %s: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", table, err)
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func formatDate(d null.Time) null.String {
	if !d.Valid {
		return null.String{}
	}
	h, m, s := d.Time.Clock()
	if h == 0 && m == 0 && s == 0 {
		return null.StringFrom(d.Time.Format("2006-01-02"))
	}
	return null.StringFrom(d.Time.Format("2006-01-02 15:04:05"))
}

// finite drops infinities, which SQLite REAL columns cannot round-trip.
func finite(f null.Float) null.Float {
	if f.Valid && math.IsInf(f.Float64, 0) {
		return null.Float{}
	}
	return f
}
