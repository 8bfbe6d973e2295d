package calc

import (
	"context"

	"golang.org/x/sync/errgroup"

	"gohaz/domain/hazard"
	"gohaz/domain/tom"
	"gohaz/ports"
)

// HazardCurvesPoissonianParallel is the concurrent variant of
// HazardCurvesPoissonian. The per-rupture fold is associative and commutative
// per measure and per site, so sources are split across workers, each folding
// into its own ones-seeded partial accumulator. The final multiplicative
// merge of partials is the only synchronization point. The site collection
// and ground motion models are shared read-only; filters must not share
// mutable caches. The first failing worker cancels the rest and its error is
// returned with no partial curves.
func HazardCurvesPoissonianParallel(ctx context.Context, in Inputs, workers int) (hazard.CurveSet, error) {
	if workers <= 1 {
		return HazardCurvesPoissonian(ctx, in)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t, err := tom.NewPoissonTOM(in.TimeSpan)
	if err != nil {
		return nil, err
	}
	if workers > len(in.Sources) && len(in.Sources) > 0 {
		workers = len(in.Sources)
	}

	batches := splitSources(in.Sources, workers)
	partials := make([]*hazard.Accumulator, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	for w, batch := range batches {
		partials[w] = hazard.NewAccumulator(in.Sites.Len(), in.Levels)
		g.Go(func() error {
			return foldSources(gctx, &in, t, batch, partials[w])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := hazard.NewAccumulator(in.Sites.Len(), in.Levels)
	for _, partial := range partials {
		if err := total.Merge(partial); err != nil {
			return nil, err
		}
	}
	return total.Complement(), nil
}

// splitSources deals sources round-robin into n batches so uneven source
// sizes spread across workers.
func splitSources(sources []ports.Source, n int) [][]ports.Source {
	if n > len(sources) {
		n = len(sources)
	}
	if n == 0 {
		return nil
	}
	batches := make([][]ports.Source, n)
	for i, src := range sources {
		batches[i%n] = append(batches[i%n], src)
	}
	return batches
}
