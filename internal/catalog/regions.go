package catalog

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// RegionSource lists the locations that price a given instance type.
type RegionSource interface {
	ListRegions(ctx context.Context, instanceType string) ([]string, error)
}

// RegionResolver fetches the regions offering an instance type.
type RegionResolver struct {
	source RegionSource
	logger zerolog.Logger
}

// NewRegionResolver creates a RegionResolver backed by source.
func NewRegionResolver(source RegionSource, logger zerolog.Logger) *RegionResolver {
	return &RegionResolver{source: source, logger: logger}
}

// Resolve returns the sorted, de-duplicated regions for instanceType.
// A type without price samples yields an empty, non-nil slice. Errors from
// the source are returned unchanged.
func (r *RegionResolver) Resolve(ctx context.Context, instanceType string) ([]string, error) {
	start := time.Now()

	regions, err := r.source.ListRegions(ctx, instanceType)
	if err != nil {
		return nil, err
	}

	out := slices.Clone(regions)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []string{}
	}

	r.logger.Debug().
		Str("instance_type", instanceType).
		Int("regions", len(out)).
		Dur("elapsed", time.Since(start)).
		Msg("regions resolved")

	return out, nil
}
