package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Kevin180791/tgacheck/internal/finding"
)

// Run is one recorded review run.
type Run struct {
	ID          string
	Project     string
	ProjectType string
	CreatedAt   time.Time
	Digest      string
	Documents   int
	Findings    int
}

// WriteRun records a run and its findings in one transaction. Writing the
// same run ID twice is a silent no-op, so a retried CLI invocation never
// duplicates findings.
func (s *Store) WriteRun(ctx context.Context, run Run, findings []finding.Finding) error {
	if run.ID == "" {
		return fmt.Errorf("write run: id must not be empty")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, projekt, projekt_typ, created_at, digest, anzahl_dokumente, anzahl_befunde)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Project,
		run.ProjectType,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.Digest,
		run.Documents,
		run.Findings,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	if inserted == 0 {
		// Run already recorded; keep the original findings.
		return nil
	}

	for i, f := range findings {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO findings
			(run_id, position, finding_id, kategorie, prioritaet, titel, beschreibung,
			 gewerk, norm_referenz, empfehlung, konfidenz, dokument_id, plan_referenz)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			run.ID,
			i,
			f.ID,
			string(f.Category),
			string(f.Priority),
			f.Title,
			f.Description,
			string(f.Trade),
			f.NormRef,
			f.Recommendation,
			f.Confidence,
			f.DocumentID,
			f.PlanRef,
		)
		if err != nil {
			return fmt.Errorf("write finding %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}
