package rules

import (
	"log/slog"

	"github.com/Kevin180791/tgacheck/internal/catalog"
	"github.com/Kevin180791/tgacheck/internal/finding"
)

// Evaluator is the capability every trade rule module implements.
type Evaluator interface {
	Trade() finding.Trade
	Evaluate(ctx *Context) []finding.Finding
}

// Engine dispatches trade codes to their rule evaluators and isolates
// failures: a panicking evaluator degrades to zero findings for that trade
// instead of aborting the project run.
//
// The registry is built once at construction and never mutated afterwards,
// so Run is safe for concurrent use across trades.
type Engine struct {
	evaluators map[finding.Trade]Evaluator
	log        *slog.Logger
}

// NewEngine builds the evaluator registry for all seven trades against the
// given parameter catalog.
func NewEngine(cat *catalog.Catalog, log *slog.Logger) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	if log == nil {
		log = slog.Default()
	}

	e := &Engine{
		evaluators: make(map[finding.Trade]Evaluator, 7),
		log:        log,
	}
	for _, ev := range []Evaluator{
		&sanitaryRules{params: cat.Sanitary},
		&heatingRules{params: cat.Heating},
		&ventilationRules{params: cat.Ventilation},
		&electricalRules{params: cat.Electrical},
		&communicationRules{params: cat.Communication},
		&fireSuppressionRules{params: cat.FireSuppression},
		&automationRules{params: cat.Automation},
	} {
		e.evaluators[ev.Trade()] = ev
	}
	return e
}

// Run evaluates one trade's rules against its context.
//
// Unknown trade codes and nil contexts yield no findings. A panic inside
// the evaluator is logged and converted to zero findings; the caller's run
// continues with the other trades.
func (e *Engine) Run(trade finding.Trade, ctx *Context) (out []finding.Finding) {
	ev, ok := e.evaluators[trade]
	if !ok {
		e.log.Warn("no evaluator registered", "trade", string(trade))
		return nil
	}
	if ctx == nil {
		ctx = &Context{}
	}

	defer func() {
		if r := recover(); r != nil {
			e.log.Error("rule evaluation failed", "trade", string(trade), "panic", r)
			out = nil
		}
	}()
	return ev.Evaluate(ctx)
}
