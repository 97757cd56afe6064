package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DigestRecord is one stored digest snapshot.
type DigestRecord struct {
	ID        string   // content address of Payload
	SchemaVer string
	Format    string
	Subject   string   // birth name from metadata
	ChartIDs  []string // chart ids in payload order
	Payload   []byte   // canonical JSON bytes
	CreatedAt string   // RFC 3339 UTC
}

// RunRecord links one build invocation to the digest it produced.
type RunRecord struct {
	RunID     string
	DigestID  string
	Source    string
	CreatedAt string
}

// NotFoundError indicates a digest id with no stored row.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("digest %q not found", e.ID)
}

// SaveDigest stores a digest snapshot and records the run that produced it.
// Saving an identical payload again is idempotent on the digests table (the
// content address collides, ON CONFLICT DO NOTHING) but still appends a run
// row, so repeated builds stay auditable. Returns the run record.
func (s *Store) SaveDigest(ctx context.Context, rec DigestRecord, source string) (RunRecord, error) {
	if rec.ID == "" {
		return RunRecord{}, fmt.Errorf("save digest: empty id")
	}
	if len(rec.Payload) == 0 {
		return RunRecord{}, fmt.Errorf("save digest: empty payload")
	}

	createdAt := rec.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunRecord{}, fmt.Errorf("save digest: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO digests
		(id, schema_ver, format, subject, chart_ids, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.SchemaVer,
		rec.Format,
		rec.Subject,
		strings.Join(rec.ChartIDs, ","),
		rec.Payload,
		createdAt,
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("save digest: %w", err)
	}

	run := RunRecord{
		RunID:     uuid.NewString(),
		DigestID:  rec.ID,
		Source:    source,
		CreatedAt: createdAt,
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, digest_id, source, created_at)
		VALUES (?, ?, ?, ?)
	`, run.RunID, run.DigestID, run.Source, run.CreatedAt)
	if err != nil {
		return RunRecord{}, fmt.Errorf("save run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return RunRecord{}, fmt.Errorf("save digest: %w", err)
	}
	return run, nil
}

// GetDigest loads a digest snapshot by content address.
// Returns *NotFoundError if no row exists.
func (s *Store) GetDigest(ctx context.Context, id string) (DigestRecord, error) {
	var rec DigestRecord
	var chartIDs string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, schema_ver, format, subject, chart_ids, payload, created_at
		FROM digests
		WHERE id = ?
	`, id).Scan(&rec.ID, &rec.SchemaVer, &rec.Format, &rec.Subject,
		&chartIDs, &rec.Payload, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return DigestRecord{}, &NotFoundError{ID: id}
	}
	if err != nil {
		return DigestRecord{}, fmt.Errorf("get digest: %w", err)
	}

	if chartIDs != "" {
		rec.ChartIDs = strings.Split(chartIDs, ",")
	}
	return rec, nil
}

// ListDigests returns summaries of all stored digests, without payloads.
// Ordering is deterministic: created_at then id.
func (s *Store) ListDigests(ctx context.Context) ([]DigestRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, schema_ver, format, subject, chart_ids, created_at
		FROM digests
		ORDER BY created_at ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list digests: %w", err)
	}
	defer rows.Close()

	var out []DigestRecord
	for rows.Next() {
		var rec DigestRecord
		var chartIDs string
		if err := rows.Scan(&rec.ID, &rec.SchemaVer, &rec.Format,
			&rec.Subject, &chartIDs, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("list digests: %w", err)
		}
		if chartIDs != "" {
			rec.ChartIDs = strings.Split(chartIDs, ",")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list digests: %w", err)
	}
	return out, nil
}

// ListRuns returns the run history for one digest, oldest first.
func (s *Store) ListRuns(ctx context.Context, digestID string) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, digest_id, source, created_at
		FROM runs
		WHERE digest_id = ?
		ORDER BY created_at ASC, run_id COLLATE BINARY ASC
	`, digestID)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var run RunRecord
		if err := rows.Scan(&run.RunID, &run.DigestID, &run.Source, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return out, nil
}
