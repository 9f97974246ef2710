// host/store/store.go
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"lostwheel-go/errcode"
)

const defaultDirPerm = 0o755

// Config controls where measurements land and how writes are batched.
type Config struct {
	DBPath       string
	BatchSize    int           // rows buffered before a flush
	BatchTimeout time.Duration // max time a row waits in the buffer
}

// Row is one stored measurement within a recording session.
type Row struct {
	Session    string
	RecordedAt time.Time
	Elapsed    float64 // device elapsed, in periods
	Count      uint32
}

// Repository batches rows into sqlite. Writes are buffered and flushed by
// size or by timer; Close drains the buffer.
type Repository struct {
	db            *sql.DB
	log           zerolog.Logger
	cfg           Config
	mu            sync.Mutex
	buffer        []Row
	flushTicker   *time.Ticker
	shutdownChan  chan struct{}
	flushDoneChan chan struct{}
}

func Open(cfg Config, log zerolog.Logger) (*Repository, error) {
	if cfg.DBPath == "" {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "store.Open", Msg: "empty db path"}
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, &errcode.E{C: errcode.Error, Op: "store.Open", Err: err}
	}

	// WAL keeps readers (live total queries) off the writer's back.
	dsn := cfg.DBPath + "?_journal=WAL&_auto_vacuum=2"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, &errcode.E{C: errcode.Error, Op: "store.Open", Err: err}
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, &errcode.E{C: errcode.Error, Op: "store.Open", Err: err}
	}

	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = 5 * time.Second
	}

	log.Info().
		Str("path", cfg.DBPath).
		Int("batch_size", cfg.BatchSize).
		Dur("batch_timeout", cfg.BatchTimeout).
		Msg("Measurement store initialized")

	r := &Repository{
		db:            db,
		log:           log,
		cfg:           cfg,
		buffer:        make([]Row, 0, cfg.BatchSize),
		flushTicker:   time.NewTicker(cfg.BatchTimeout),
		shutdownChan:  make(chan struct{}),
		flushDoneChan: make(chan struct{}),
	}
	go r.flusher()
	return r, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS wheel_measurements (
            id          INTEGER PRIMARY KEY AUTOINCREMENT,
            session     TEXT NOT NULL,
            recorded_at INTEGER NOT NULL,
            elapsed     REAL NOT NULL,
            count       INTEGER NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_wheel_session
            ON wheel_measurements(session);
    `)
	return err
}

// Record buffers a row and flushes when the batch is full.
func (r *Repository) Record(row Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buffer = append(r.buffer, row)
	if len(r.buffer) >= r.cfg.BatchSize {
		return r.flush()
	}
	return nil
}

// flush writes the buffer in one transaction. Caller holds r.mu.
func (r *Repository) flush() error {
	if len(r.buffer) == 0 {
		return nil
	}
	tx, err := r.db.Begin()
	if err != nil {
		return &errcode.E{C: errcode.Error, Op: "store.flush", Err: err}
	}
	stmt, err := tx.Prepare(`
        INSERT INTO wheel_measurements (session, recorded_at, elapsed, count)
        VALUES (?, ?, ?, ?)
    `)
	if err != nil {
		tx.Rollback()
		return &errcode.E{C: errcode.Error, Op: "store.flush", Err: err}
	}
	defer stmt.Close()

	for i := range r.buffer {
		row := &r.buffer[i]
		if _, err := stmt.Exec(row.Session, row.RecordedAt.UnixMilli(), row.Elapsed, row.Count); err != nil {
			tx.Rollback()
			return &errcode.E{C: errcode.Error, Op: "store.flush", Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &errcode.E{C: errcode.Error, Op: "store.flush", Err: err}
	}
	r.log.Debug().Int("rows", len(r.buffer)).Msg("flushed measurement batch")
	r.buffer = r.buffer[:0]
	return nil
}

func (r *Repository) flusher() {
	defer close(r.flushDoneChan)
	for {
		select {
		case <-r.flushTicker.C:
			r.mu.Lock()
			if err := r.flush(); err != nil {
				r.log.Error().Err(err).Msg("periodic flush failed")
			}
			r.mu.Unlock()
		case <-r.shutdownChan:
			r.mu.Lock()
			if err := r.flush(); err != nil {
				r.log.Error().Err(err).Msg("final flush failed")
			}
			r.mu.Unlock()
			return
		}
	}
}

// SessionTotal sums the counts recorded for a session, buffered rows
// included.
func (r *Repository) SessionTotal(ctx context.Context, session string) (uint64, error) {
	r.mu.Lock()
	if err := r.flush(); err != nil {
		r.mu.Unlock()
		return 0, err
	}
	r.mu.Unlock()

	var total sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
        SELECT SUM(count) FROM wheel_measurements WHERE session = ?
    `, session).Scan(&total)
	if err != nil {
		return 0, &errcode.E{C: errcode.Error, Op: "store.SessionTotal", Err: err}
	}
	return uint64(total.Int64), nil
}

// Sessions lists known session names, newest first.
func (r *Repository) Sessions(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT session FROM wheel_measurements
        GROUP BY session ORDER BY MAX(recorded_at) DESC
    `)
	if err != nil {
		return nil, &errcode.E{C: errcode.Error, Op: "store.Sessions", Err: err}
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, &errcode.E{C: errcode.Error, Op: "store.Sessions", Err: err}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close drains the buffer, checkpoints the WAL and closes the database.
func (r *Repository) Close() error {
	close(r.shutdownChan)
	r.flushTicker.Stop()
	<-r.flushDoneChan

	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		r.log.Warn().Err(err).Msg("WAL checkpoint failed")
	}
	return r.db.Close()
}
