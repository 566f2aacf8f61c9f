package ingest

import (
	"context"

	rackerr "github.com/braunma/rack-layout/pkg/errors"
	"github.com/braunma/rack-layout/pkg/state"
	"github.com/braunma/rack-layout/pkg/utils"
	"github.com/braunma/rack-layout/pkg/workbook"
)

// Opener produces the workbook for one ingestion
type Opener func(ctx context.Context) (workbook.Workbook, error)

// FileOpener opens a workbook from disk
func FileOpener(path string) Opener {
	return func(ctx context.Context) (workbook.Workbook, error) {
		return workbook.Open(path)
	}
}

// Runner performs ingestions against a store. Concurrent runs are allowed;
// only the most recently started one may replace the collection.
type Runner struct {
	builder *Builder
	store   *state.Store
	logger  *utils.Logger
}

// NewRunner creates a runner
func NewRunner(builder *Builder, store *state.Store, logger *utils.Logger) *Runner {
	if logger == nil {
		logger = utils.Discard()
	}
	return &Runner{builder: builder, store: store, logger: logger}
}

// Run opens, builds and commits one workbook. Any failure leaves the previous
// collection in place.
func (r *Runner) Run(ctx context.Context, open Opener) (*Result, error) {
	token := r.store.BeginIngestion()

	wb, err := open(ctx)
	if err != nil {
		r.store.AbortIngestion(token)
		if rackerr.GetCode(err) == "" {
			err = rackerr.Wrap(rackerr.ErrCodeIngestionFailure, err, "failed to open workbook")
		}
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		r.store.AbortIngestion(token)
		return nil, rackerr.Wrap(rackerr.ErrCodeIngestionFailure, err, "ingestion of %s cancelled", wb.Name())
	}

	result, err := r.builder.Build(wb)
	if err != nil {
		r.store.AbortIngestion(token)
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		r.store.AbortIngestion(token)
		return nil, rackerr.Wrap(rackerr.ErrCodeIngestionFailure, err, "ingestion of %s cancelled", wb.Name())
	}

	if err := r.store.CommitIngestion(token, result.Layout()); err != nil {
		return result, err
	}

	r.logger.Debug("Committed ingestion %s from %s", result.ID, result.Source)
	return result, nil
}
