package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Kevin180791/tgacheck/internal/finding"
)

// ErrRunNotFound is returned when the requested run ID is not recorded.
var ErrRunNotFound = errors.New("run not found")

// ReadRun returns a recorded run and its findings in stored order.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, []finding.Finding, error) {
	run, err := s.scanRun(s.db.QueryRowContext(ctx, `
		SELECT id, projekt, projekt_typ, created_at, digest, anzahl_dokumente, anzahl_befunde
		FROM runs WHERE id = ?
	`, id))
	if err != nil {
		return Run{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT finding_id, kategorie, prioritaet, titel, beschreibung,
		       gewerk, norm_referenz, empfehlung, konfidenz, dokument_id, plan_referenz
		FROM findings WHERE run_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return Run{}, nil, fmt.Errorf("read findings: %w", err)
	}
	defer rows.Close()

	var findings []finding.Finding
	for rows.Next() {
		var f finding.Finding
		var category, priority, trade string
		if err := rows.Scan(
			&f.ID, &category, &priority, &f.Title, &f.Description,
			&trade, &f.NormRef, &f.Recommendation, &f.Confidence,
			&f.DocumentID, &f.PlanRef,
		); err != nil {
			return Run{}, nil, fmt.Errorf("read findings: %w", err)
		}
		f.Category = finding.Category(category)
		f.Priority = finding.Priority(priority)
		f.Trade = finding.Trade(trade)
		findings = append(findings, f)
	}
	if err := rows.Err(); err != nil {
		return Run{}, nil, fmt.Errorf("read findings: %w", err)
	}
	return run, findings, nil
}

// LatestRun returns the most recently recorded run.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	return s.scanRun(s.db.QueryRowContext(ctx, `
		SELECT id, projekt, projekt_typ, created_at, digest, anzahl_dokumente, anzahl_befunde
		FROM runs ORDER BY created_at DESC, id DESC LIMIT 1
	`))
}

// ListRuns returns all recorded runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, projekt, projekt_typ, created_at, digest, anzahl_dokumente, anzahl_befunde
		FROM runs ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := s.scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanRun(row rowScanner) (Run, error) {
	var run Run
	var createdAt string
	err := row.Scan(
		&run.ID, &run.Project, &run.ProjectType, &createdAt,
		&run.Digest, &run.Documents, &run.Findings,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}

	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("read run: invalid created_at %q: %w", createdAt, err)
	}
	return run, nil
}
