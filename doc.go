// Package manifold builds exact k-nearest-neighbor graphs for point sets whose
// full distance matrix does not fit in memory, and turns them into sparse,
// kernel-weighted graphs for spectral and manifold learning.
//
// # Quick Start
//
//	points, _ := distance.NewPoints(data, dim, distance.MetricL2)
//
//	p, _ := manifold.New(points.Len(), 15,
//	    manifold.WithTileSize(2048),
//	    manifold.WithLogger(manifold.NewTextLogger(slog.LevelInfo)),
//	)
//	bufs := manifold.NewBuffers(points.Len(), 15)
//
//	res, err := p.Run(ctx, points, bufs, manifold.NewPlan().MutualSymmetric().Gaussian())
//	if err != nil {
//	    var rie *manifold.RowInconsistencyError
//	    if errors.As(err, &rie) {
//	        fmt.Print(rie.Dump())
//	    }
//	    return err
//	}
//	// res.Graph is CSR over bufs, res.Weights holds one weight per edge.
//
// # Flow
//
// A run streams square distance tiles from a distance.Producer into bounded
// per-row heaps (knn.Merger), finalizes every row range into ascending lists
// with the point itself first, and then shapes the lists as the Plan says:
//
//	stride -> mutual -> threshold -> CSR -> subset -> kernel
//
// The result does not depend on the tile size. All large arrays live in
// caller-owned Buffers; only transient scratch is allocated per run, and it
// can be capped with WithScratchLimit.
//
// # Configuration
//
// Options can be given directly or loaded from the environment:
//
//	cfg, _ := manifold.LoadConfig("")      // MANIFOLD_WORKERS, MANIFOLD_TILE_SIZE, ...
//	opts, _ := cfg.Options()
//	p, _ := manifold.New(n, k, opts...)
//
// # Errors
//
// Contract violations return typed errors before any buffer is touched. A
// failure during a run is sticky and wrapped with ErrAborted; the Pipeline
// refuses further work afterwards.
package manifold
