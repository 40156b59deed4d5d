// Package storage provides SQLite-based persistence for play sessions and
// the recordings made during them.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a session or recording does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Session is one run of an application, local or over SSH.
type Session struct {
	ID        string
	AppID     string
	User      string
	StartedAt time.Time
	EndedAt   time.Time // Zero while the session is running
	Frames    uint64
	FinalMap  string
}

// Duration returns how long the session ran, or zero if it has not ended.
func (s Session) Duration() time.Duration {
	if s.EndedAt.IsZero() {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// Recording is a catalogued input recording file.
type Recording struct {
	ID        string
	SessionID string
	Path      string
	Frames    uint64
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Times are stored as Unix milliseconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			app_id TEXT NOT NULL,
			user TEXT NOT NULL DEFAULT '',
			started_at INTEGER NOT NULL,
			ended_at INTEGER,
			frames INTEGER NOT NULL DEFAULT 0,
			final_map TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_app_id ON sessions(app_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

		CREATE TABLE IF NOT EXISTS recordings (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			path TEXT NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_recordings_session ON recordings(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession opens a session row for a run of appID.
func (s *Store) StartSession(appID, user string) (Session, error) {
	sess := Session{
		ID:        uuid.NewString(),
		AppID:     appID,
		User:      user,
		StartedAt: s.now().Truncate(time.Millisecond),
	}
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, app_id, user, started_at) VALUES (?, ?, ?, ?)",
		sess.ID, sess.AppID, sess.User, sess.StartedAt.UnixMilli(),
	)
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot save session: %w", err)
	}
	return sess, nil
}

// FinishSession records the end of a session.
func (s *Store) FinishSession(id string, frames uint64, finalMap string) error {
	res, err := s.db.Exec(
		"UPDATE sessions SET ended_at = ?, frames = ?, final_map = ? WHERE id = ?",
		s.now().UnixMilli(), int64(frames), finalMap, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot finish session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: session %s: %w", id, ErrNotFound)
	}
	return nil
}

// SessionByID retrieves a session.
func (s *Store) SessionByID(id string) (Session, error) {
	row := s.db.QueryRow(
		`SELECT id, app_id, user, started_at, ended_at, frames, final_map
		 FROM sessions
		 WHERE id = ?`,
		id,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("storage: session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return sess, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, app_id, user, started_at, ended_at, frames, final_map
		 FROM sessions
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var (
		sess    Session
		started int64
		ended   sql.NullInt64
		frames  int64
	)
	if err := row.Scan(&sess.ID, &sess.AppID, &sess.User, &started, &ended, &frames, &sess.FinalMap); err != nil {
		return Session{}, err
	}
	sess.StartedAt = time.UnixMilli(started)
	if ended.Valid {
		sess.EndedAt = time.UnixMilli(ended.Int64)
	}
	sess.Frames = uint64(frames)
	return sess, nil
}

// SaveRecording catalogues a finished recording file.
func (s *Store) SaveRecording(sessionID, path string, frames uint64) (Recording, error) {
	rec := Recording{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Path:      path,
		Frames:    frames,
		CreatedAt: s.now().Truncate(time.Millisecond),
	}
	_, err := s.db.Exec(
		"INSERT INTO recordings (id, session_id, path, frames, created_at) VALUES (?, ?, ?, ?, ?)",
		rec.ID, rec.SessionID, rec.Path, int64(rec.Frames), rec.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return Recording{}, fmt.Errorf("storage: cannot save recording: %w", err)
	}
	return rec, nil
}

// Recordings retrieves the recordings made during a session, oldest first.
func (s *Store) Recordings(sessionID string) ([]Recording, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, path, frames, created_at
		 FROM recordings
		 WHERE session_id = ?
		 ORDER BY created_at, rowid`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var recs []Recording
	for rows.Next() {
		var (
			r       Recording
			frames  int64
			created int64
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Path, &frames, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Frames = uint64(frames)
		r.CreatedAt = time.UnixMilli(created)
		recs = append(recs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return recs, nil
}
