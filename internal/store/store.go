// Package store keeps a local sqlite history of verification results so
// runners can be ranked across submissions.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/planbiir/wingo/internal/verify"
)

var ErrNotFound = errors.New("store: report not found")

const anonymous = "anonymous"

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Record is one saved verification.
type Record struct {
	ID                string         `json:"id"`
	Runner            string         `json:"runner"`
	CourseName        string         `json:"course_name"`
	LoopCount         int            `json:"loop_count"`
	DistanceMeters    float64        `json:"distance_meters"`
	PlausibilityRatio float64        `json:"plausibility_ratio"`
	Status            verify.Status  `json:"status"`
	StartTime         time.Time      `json:"start_time,omitzero"`
	Duration          time.Duration  `json:"duration"`
	CreatedAt         time.Time      `json:"created_at"`
	Result            *verify.Result `json:"result,omitempty"`
}

// Standing is a runner's verified total.
type Standing struct {
	Runner       string `json:"runner"`
	VerifiedRuns int    `json:"verified_runs"`
	TotalLaps    int    `json:"total_laps"`
	BestLaps     int    `json:"best_laps"`
}

// Open opens (creating if needed) the sqlite file at path and migrates it to
// the latest schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save records r under runner. An empty runner is stored as "anonymous".
func (s *Store) Save(ctx context.Context, runner string, r *verify.Result) error {
	if r == nil {
		return errors.New("store: nil result")
	}
	runner = strings.TrimSpace(runner)
	if runner == "" {
		runner = anonymous
	}

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	var start sql.NullInt64
	if !r.StartTime.IsZero() {
		start = sql.NullInt64{Int64: r.StartTime.Unix(), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (
			report_id, runner, course_name, loop_count, distance_meters,
			plausibility_ratio, status, start_unix, duration_ns, payload, created_unix_nanos
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, runner, r.CourseName, r.LoopCount, r.TotalDistanceMeters,
		r.PlausibilityRatio, string(r.Status), start, int64(r.TotalDuration), string(payload),
		s.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert report %s: %w", r.ID, err)
	}
	return nil
}

const selectRecord = `
	SELECT report_id, runner, course_name, loop_count, distance_meters,
	       plausibility_ratio, status, start_unix, duration_ns, payload, created_unix_nanos
	FROM reports`

// List returns the newest limit records. limit <= 0 returns all of them.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := selectRecord + ` ORDER BY created_unix_nanos DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get loads one record with its full result.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+` WHERE report_id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

// Leaderboard ranks runners by verified laps, then by best single run.
func (s *Store) Leaderboard(ctx context.Context) ([]Standing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT runner, COUNT(*), SUM(loop_count), MAX(loop_count)
		FROM reports
		WHERE status = ?
		GROUP BY runner
		ORDER BY SUM(loop_count) DESC, MAX(loop_count) DESC, runner ASC`,
		string(verify.StatusVerified),
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var out []Standing
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.Runner, &st.VerifiedRuns, &st.TotalLaps, &st.BestLaps); err != nil {
			return nil, fmt.Errorf("scan standing: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec      Record
		status   string
		start    sql.NullInt64
		duration int64
		payload  string
		created  int64
	)
	err := sc.Scan(&rec.ID, &rec.Runner, &rec.CourseName, &rec.LoopCount, &rec.DistanceMeters,
		&rec.PlausibilityRatio, &status, &start, &duration, &payload, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("scan report: %w", err)
	}

	rec.Status = verify.Status(status)
	rec.Duration = time.Duration(duration)
	rec.CreatedAt = time.Unix(0, created).UTC()
	if start.Valid {
		rec.StartTime = time.Unix(start.Int64, 0).UTC()
	}

	var res verify.Result
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return Record{}, fmt.Errorf("decode report %s: %w", rec.ID, err)
	}
	rec.Result = &res
	return rec, nil
}
