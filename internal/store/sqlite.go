// apps/go-server/internal/store/sqlite.go
//
// SQLite helpers and the SQLite Results backend.
// Responsibilities:
//   - Opening SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Storing robot runs and word chain games.

package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open opens (and creates if missing) a SQLite database file.
//
//   - Ensures parent directory exists for relative DSNs (e.g. ./data/games.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Enforces foreign keys.
func Open(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded migrations in lexical order, each inside its
// own transaction, skipping files already recorded in _migrations.
func Migrate(db *sql.DB) error {
	return migrateFS(db, migrationsFS)
}

func migrateFS(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		name := filepath.Base(f)

		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("applied")
	}
	return nil
}

// SQLite is the Results backend on a migrated *sql.DB.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite wraps db. Migrate must have been run.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, now: time.Now}
}

// tsLayout is fixed width so created_at text sorts chronologically.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (s *SQLite) SaveRobotRun(ctx context.Context, r *RobotRun) error {
	prepareRun(r, s.now())
	history, err := json.Marshal(r.History)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	final, err := json.Marshal(r.Final)
	if err != nil {
		return fmt.Errorf("encode final: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO robot_runs (id, commands, history, final, anomalies, player, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Commands, string(history), string(final), r.Anomalies, nullString(r.Player),
		r.CreatedAt.UTC().Format(tsLayout),
	)
	if err != nil {
		return fmt.Errorf("insert robot run: %w", err)
	}
	return nil
}

func (s *SQLite) RecentRobotRuns(ctx context.Context, limit int) ([]RobotRun, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, commands, history, final, anomalies, COALESCE(player, ''), created_at
        FROM robot_runs
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?`, ClampLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RobotRun{}
	for rows.Next() {
		var (
			r                       RobotRun
			history, final, created string
		)
		if err := rows.Scan(&r.ID, &r.Commands, &history, &final, &r.Anomalies, &r.Player, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(history), &r.History); err != nil {
			return nil, fmt.Errorf("decode history %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(final), &r.Final); err != nil {
			return nil, fmt.Errorf("decode final %s: %w", r.ID, err)
		}
		r.CreatedAt = parseTS(created)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLite) SaveChainGame(ctx context.Context, g *ChainGame) error {
	prepareGame(g, s.now())
	ws, err := json.Marshal(g.Words)
	if err != nil {
		return fmt.Errorf("encode words: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO chain_games (id, words, score, player, created_at)
        VALUES (?, ?, ?, ?, ?)`,
		g.ID, string(ws), g.Score, nullString(g.Player), g.CreatedAt.UTC().Format(tsLayout),
	)
	if err != nil {
		return fmt.Errorf("insert chain game: %w", err)
	}
	return nil
}

func (s *SQLite) ChainRanking(ctx context.Context, limit int) ([]ChainGame, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, words, score, COALESCE(player, ''), created_at
        FROM chain_games
        ORDER BY score DESC, created_at ASC, rowid ASC
        LIMIT ?`, ClampLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ChainGame{}
	for rows.Next() {
		var (
			g           ChainGame
			ws, created string
		)
		if err := rows.Scan(&g.ID, &ws, &g.Score, &g.Player, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ws), &g.Words); err != nil {
			return nil, fmt.Errorf("decode words %s: %w", g.ID, err)
		}
		g.CreatedAt = parseTS(created)
		out = append(out, g)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// parseTS parses stored timestamps; on error returns zero time.
func parseTS(s string) time.Time {
	t, err := time.Parse(tsLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}
