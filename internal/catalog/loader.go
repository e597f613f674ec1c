package catalog

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/ec2-instance-browser/internal/dataset"
	"github.com/rshade/ec2-instance-browser/internal/iops"
)

// InstanceSource provides the raw rows the catalog is built from.
type InstanceSource interface {
	ListInstances(ctx context.Context) ([]dataset.InstanceRow, error)
	ListDisks(ctx context.Context) ([]dataset.DiskRow, error)
}

// Loader fetches instance and disk rows and aggregates them into records.
type Loader struct {
	source InstanceSource
	ref    iops.Reference
	logger zerolog.Logger
}

// NewLoader creates a Loader that enriches disks using ref.
func NewLoader(source InstanceSource, ref iops.Reference, logger zerolog.Logger) *Loader {
	return &Loader{source: source, ref: ref, logger: logger}
}

// LoadInstances issues the list and disk queries concurrently and waits for
// both. If either fails, aggregation does not run and the first failure is
// returned in a failed result.
func (l *Loader) LoadInstances(ctx context.Context) Result[[]InstanceRecord] {
	start := time.Now()

	var (
		rows  []dataset.InstanceRow
		disks []dataset.DiskRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = l.source.ListInstances(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		disks, err = l.source.ListDisks(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		l.logger.Error().Err(err).Msg("instance fetch failed")
		return Failed[[]InstanceRecord](err)
	}

	records := Aggregate(rows, disks, l.ref)

	l.logger.Debug().
		Int("instances", len(records)).
		Int("disks", len(disks)).
		Dur("elapsed", time.Since(start)).
		Msg("instances loaded")

	return Succeeded(records)
}
