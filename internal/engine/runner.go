package engine

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Kevin180791/tgacheck/internal/catalog"
	"github.com/Kevin180791/tgacheck/internal/coord"
	"github.com/Kevin180791/tgacheck/internal/facts"
	"github.com/Kevin180791/tgacheck/internal/finding"
	"github.com/Kevin180791/tgacheck/internal/formal"
	"github.com/Kevin180791/tgacheck/internal/rules"
)

// Summary counts findings per priority, the shape the review status report
// has always used.
type Summary struct {
	Documents int `json:"anzahl_dokumente"`
	Findings  int `json:"anzahl_befunde"`
	High      int `json:"hoch"`
	Medium    int `json:"mittel"`
	Low       int `json:"niedrig"`
}

// Result is one completed project review.
type Result struct {
	RunID    string            `json:"auftrag_id"`
	Project  string            `json:"projekt_name"`
	Findings []finding.Finding `json:"befunde"`
	Digest   string            `json:"digest"`
	Summary  Summary           `json:"zusammenfassung"`
}

// Runner executes whole-project reviews.
type Runner struct {
	engine *rules.Engine
	log    *slog.Logger
	runIDs TokenGenerator
}

// NewRunner builds a runner against the given parameter catalog. A nil
// catalog uses the built-in defaults, a nil logger the process default,
// and a nil generator produces UUIDv7 run IDs.
func NewRunner(cat *catalog.Catalog, log *slog.Logger, runIDs TokenGenerator) *Runner {
	if log == nil {
		log = slog.Default()
	}
	if runIDs == nil {
		runIDs = UUIDv7Generator{}
	}
	return &Runner{
		engine: rules.NewEngine(cat, log),
		log:    log,
		runIDs: runIDs,
	}
}

// Run reviews the project: the seven trade checks, the formal legend check,
// and the coordination checks run concurrently; their findings are merged
// in fixed branch order once every branch has finished, stamped with plan
// references, and sorted. Cancellation aborts the run without a partial
// result.
func (r *Runner) Run(ctx context.Context, project *facts.Project) (*Result, error) {
	if project == nil {
		return nil, fmt.Errorf("project must not be nil")
	}

	runID := r.runIDs.Generate()
	log := r.log.With("run_id", runID, "projekt", project.Name)
	log.Info("starting review", "dokumente", len(project.Documents))

	// One slot per branch: the seven trades, then formal, then coordination.
	slots := make([][]finding.Finding, len(finding.AllTrades)+2)
	g, gctx := errgroup.WithContext(ctx)

	for i, trade := range finding.AllTrades {
		i, trade := i, trade
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = r.engine.Run(trade, facts.BuildContext(project, trade))
			log.Debug("trade check finished", "trade", string(trade), "befunde", len(slots[i]))
			return nil
		})
	}
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		slots[len(finding.AllTrades)] = formal.CheckProject(project)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		slots[len(finding.AllTrades)+1] = coord.Evaluate(buildCoordInput(project))
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Warn("review aborted", "error", err)
		return nil, fmt.Errorf("review aborted: %w", err)
	}

	var findings []finding.Finding
	for _, slot := range slots {
		findings = append(findings, slot...)
	}
	stampPlanRefs(project, findings)
	finding.Sort(findings)

	result := &Result{
		RunID:    runID,
		Project:  project.Name,
		Findings: findings,
		Digest:   finding.Digest(findings),
		Summary:  summarize(project, findings),
	}
	log.Info("review finished",
		"befunde", result.Summary.Findings,
		"hoch", result.Summary.High,
		"digest", result.Digest)
	return result, nil
}

// stampPlanRefs fills the plan reference of document-scoped findings from
// the document's filename when the check left it empty.
func stampPlanRefs(project *facts.Project, findings []finding.Finding) {
	filenames := make(map[string]string, len(project.Documents))
	for _, doc := range project.Documents {
		filenames[doc.ID] = doc.Filename
	}
	for i := range findings {
		if findings[i].PlanRef == "" && findings[i].DocumentID != "" {
			findings[i].PlanRef = filenames[findings[i].DocumentID]
		}
	}
}

func summarize(project *facts.Project, findings []finding.Finding) Summary {
	tally := finding.Summarize(findings)
	return Summary{
		Documents: len(project.Documents),
		Findings:  tally.Total,
		High:      tally.High,
		Medium:    tally.Medium,
		Low:       tally.Low,
	}
}
