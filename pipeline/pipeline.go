// Package pipeline runs one dashboard interaction end to end: load the
// source (through the table cache), resolve and check the filter criteria,
// filter, and build the requested view.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spektr-org/fomezero/dataset"
	"github.com/spektr-org/fomezero/engine"
	"github.com/spektr-org/fomezero/views"
)

// Pipeline is safe for concurrent use. Loaded tables are shared read-only.
type Pipeline struct {
	cache  *dataset.Cache
	logger *zap.SugaredLogger
}

// Result is the outcome of one Run.
type Result struct {
	RunID    string
	View     views.View
	Page     *views.Page
	Criteria engine.Criteria // as applied, after defaults and clamping
	Filtered engine.RecordView
	Table    *dataset.Table
}

// New creates a pipeline. A nil cache reloads the source on every run; a
// nil logger discards output.
func New(cache *dataset.Cache, logger *zap.SugaredLogger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Pipeline{cache: cache, logger: logger}
}

// Run builds the named view over the rows of source matching criteria.
//
// A nil Countries list selects every country in the table. Cities and
// Cuisines are dropped when the view does not offer those controls.
func (p *Pipeline) Run(ctx context.Context, source, viewName string, criteria engine.Criteria) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	view, err := views.Lookup(viewName)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := p.logger.With("run_id", runID, "view", view.Name)

	sel, err := p.selectRows(source, &view, criteria, log)
	if err != nil {
		return nil, err
	}

	page, err := view.Build(sel.filtered)
	if err != nil {
		return nil, fmt.Errorf("build view: %w", err)
	}
	log.Infow("view built",
		"rows_after_filter", sel.filtered.Len(),
		"metrics", len(page.Metrics),
		"charts", len(page.Charts),
		"tables", len(page.Tables),
	)

	return &Result{
		RunID:    runID,
		View:     view,
		Page:     page,
		Criteria: sel.criteria,
		Filtered: sel.filtered,
		Table:    sel.table,
	}, nil
}

// Export writes the rows of source matching criteria as CSV. Every filter
// control is honoured.
func (p *Pipeline) Export(ctx context.Context, source string, criteria engine.Criteria, w io.Writer) error {
	sel, err := p.exportRows(ctx, source, criteria)
	if err != nil {
		return err
	}
	if err := dataset.WriteCSV(w, sel.filtered); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// ExportSQLite writes the rows of source matching criteria into a new
// SQLite database at path.
func (p *Pipeline) ExportSQLite(ctx context.Context, source string, criteria engine.Criteria, path string) error {
	sel, err := p.exportRows(ctx, source, criteria)
	if err != nil {
		return err
	}
	return dataset.ExportSQLite(ctx, path, sel.filtered)
}

// MapPoints returns one marker per matching restaurant.
func (p *Pipeline) MapPoints(ctx context.Context, source string, criteria engine.Criteria) ([]engine.MapPoint, error) {
	sel, err := p.exportRows(ctx, source, criteria)
	if err != nil {
		return nil, err
	}
	return engine.BuildMapPoints(sel.filtered), nil
}

// Options lists the filter choices offered by source.
func (p *Pipeline) Options(ctx context.Context, source string) (dataset.Options, error) {
	if err := ctx.Err(); err != nil {
		return dataset.Options{}, err
	}
	table, err := p.load(source, p.logger)
	if err != nil {
		return dataset.Options{}, err
	}
	return table.Options(), nil
}

// ============================================================================
// INTERNALS
// ============================================================================

type selection struct {
	table    *dataset.Table
	criteria engine.Criteria
	filtered engine.RecordView
}

func (p *Pipeline) exportRows(ctx context.Context, source string, criteria engine.Criteria) (*selection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.selectRows(source, nil, criteria, p.logger.With("run_id", uuid.NewString()))
}

func (p *Pipeline) selectRows(source string, view *views.View, criteria engine.Criteria, log *zap.SugaredLogger) (*selection, error) {
	table, err := p.load(source, log)
	if err != nil {
		return nil, err
	}

	criteria, err = resolve(criteria, view, table)
	if err != nil {
		return nil, err
	}

	filtered := engine.Filter(table.View(), criteria)
	log.Debugw("rows filtered",
		"countries", len(criteria.Countries),
		"rating_low", criteria.Rating.Low,
		"rating_high", criteria.Rating.High,
		"rows_before", table.Len(),
		"rows_after", filtered.Len(),
	)
	return &selection{table: table, criteria: criteria, filtered: filtered}, nil
}

func (p *Pipeline) load(source string, log *zap.SugaredLogger) (*dataset.Table, error) {
	table, hit, err := p.cache.Load(source)
	if err != nil {
		log.Errorw("load failed", "source", source, "error", err)
		return nil, err
	}
	if hit {
		log.Debugw("table cache hit", "source", source)
	} else {
		log.Infow("table loaded",
			"source", source,
			"source_rows", table.SourceRows(),
			"rows", table.Len(),
			"dropped", table.DroppedRows(),
		)
	}
	return table, nil
}

// resolve applies defaults and view restrictions, then validates.
func resolve(c engine.Criteria, view *views.View, table *dataset.Table) (engine.Criteria, error) {
	if err := c.Validate(); err != nil {
		return engine.Criteria{}, err
	}
	if c.Countries == nil {
		c.Countries = table.Options().Countries
	}
	if view != nil {
		if !view.Accepts(views.FilterCities) {
			c.Cities = nil
		}
		if !view.Accepts(views.FilterCuisines) {
			c.Cuisines = nil
		}
	}
	c.Rating = c.Rating.Clamp()
	return c, nil
}
