package manifold

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/manifold/codec"
	"github.com/hupe1980/manifold/csr"
	"github.com/hupe1980/manifold/distance"
	"github.com/hupe1980/manifold/internal/conv"
	"github.com/hupe1980/manifold/internal/mem"
	"github.com/hupe1980/manifold/kernel"
	"github.com/hupe1980/manifold/knn"
	"github.com/hupe1980/manifold/model"
	"github.com/hupe1980/manifold/parallel"
)

// Buffers are the caller-owned arrays a run writes into. A run never
// reallocates them; the Result's graph and weights are views into them.
type Buffers struct {
	// Data holds n*k distances (the neighbor lists, later the edge values).
	Data []float32
	// Cols holds n*k neighbor ids (later the CSR column indices).
	Cols []int32
	// Rows holds n*k row ids of the expanded edge list.
	Rows []int32
	// RowPtr holds n+1 CSR row pointers.
	RowPtr []int
	// Weights holds n*k kernel weights. Only needed when the plan has a kernel.
	Weights []float32
}

// NewBuffers allocates Buffers for n points and k neighbors.
func NewBuffers(n, k int) *Buffers {
	return &Buffers{
		Data:    make([]float32, n*k),
		Cols:    make([]int32, n*k),
		Rows:    make([]int32, n*k),
		RowPtr:  make([]int, n+1),
		Weights: make([]float32, n*k),
	}
}

func (b *Buffers) check(n, k int, kern Kernel) error {
	if err := model.CheckLen("run", "data", n*k, len(b.Data)); err != nil {
		return err
	}
	if err := model.CheckLen("run", "cols", n*k, len(b.Cols)); err != nil {
		return err
	}
	if err := model.CheckLen("run", "rows", n*k, len(b.Rows)); err != nil {
		return err
	}
	if err := model.CheckLen("run", "row_ptr", n+1, len(b.RowPtr)); err != nil {
		return err
	}
	if kern != KernelNone {
		return model.CheckLen("run", "weights", n*k, len(b.Weights))
	}
	return nil
}

// Result is the output of a run.
type Result struct {
	// Graph is the shaped CSR graph; its Data holds distances.
	Graph *csr.Graph
	// Weights holds one kernel weight per edge of Graph, or nil for KernelNone.
	Weights []float32
	// Tiles is the number of distance tiles merged.
	Tiles int
	// PeakScratch is the largest transient scratch the Pipeline has held at
	// once so far, in bytes.
	PeakScratch int64
}

// Weighted returns the graph with its values replaced by the kernel weights.
// Without a kernel it returns Graph itself.
func (r *Result) Weighted() *csr.Graph {
	if r.Weights == nil {
		return r.Graph
	}
	return &csr.Graph{RowPtr: r.Graph.RowPtr, ColInd: r.Graph.ColInd, Data: r.Weights}
}

// Encode serializes the weighted graph with the given compression.
func (r *Result) Encode(c codec.Compression) ([]byte, error) {
	return codec.Encode(r.Weighted(), c)
}

// Pipeline builds exact k-NN graphs over n points from streamed distance
// tiles and shapes them into weighted CSR graphs.
//
// A Pipeline is safe for concurrent use; runs are serialized. The first
// failure of a run is sticky: every later Run returns it, wrapped with
// ErrAborted. Contract errors detected before a run starts and context
// cancellation between tiles are not sticky.
type Pipeline struct {
	n, k int

	exec    *parallel.Executor
	merger  *knn.Merger
	opts    options
	logger  *Logger
	metrics MetricsCollector

	mu  sync.Mutex
	err error
}

// New creates a Pipeline for n points and k neighbors per point.
func New(n, k int, optFns ...Option) (*Pipeline, error) {
	if n <= 0 || !conv.FitsInt32(n) {
		return nil, fmt.Errorf("%w: point count %d", ErrInvalidArgument, n)
	}
	if k <= 0 || k > n {
		return nil, fmt.Errorf("%w: got k=%d for n=%d", ErrInvalidK, k, n)
	}

	o := applyOptions(optFns)
	if o.tileSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTileSize, o.tileSize)
	}

	exec := parallel.New(o.workers, parallel.WithMemoryLimit(o.scratchLimit))
	merger, err := knn.NewMerger(k, exec)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		n:       n,
		k:       k,
		exec:    exec,
		merger:  merger,
		opts:    o,
		logger:  o.logger.WithK(k).WithCount(n),
		metrics: o.metricsCollector,
	}, nil
}

// N returns the number of points.
func (p *Pipeline) N() int { return p.n }

// K returns the number of neighbors per point.
func (p *Pipeline) K() int { return p.k }

// Workers returns the number of workers of every parallel phase.
func (p *Pipeline) Workers() int { return p.exec.Workers() }

// Err returns the sticky failure, or nil while the Pipeline is usable.
func (p *Pipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Run builds the k-NN graph from producer into bufs and shapes it by plan.
//
// Row ranges of one tile are processed in turn: every column tile of the
// range is produced and merged, then the range is finalized. The
// finalized lists are then shaped and weighted as the plan describes.
// Cancellation is checked between tiles only.
func (p *Pipeline) Run(ctx context.Context, producer distance.Producer, bufs *Buffers, plan Plan) (*Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return nil, p.err
	}
	if producer.Len() != p.n {
		return nil, fmt.Errorf("%w: producer serves %d points, pipeline has %d", ErrProducerMismatch, producer.Len(), p.n)
	}
	if err := plan.validate(p.n, p.k); err != nil {
		return nil, err
	}
	if err := bufs.check(p.n, p.k, plan.kernel); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := p.run(ctx, producer, bufs, plan)
	if err != nil {
		if errors.Is(err, ErrAborted) {
			p.err = err
		}
		return nil, err
	}

	p.logger.LogRun(ctx, res, time.Since(start))
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, producer distance.Producer, bufs *Buffers, plan Plan) (*Result, error) {
	n, k := p.n, p.k
	list := knn.NeighborList{K: k, Data: bufs.Data[:n*k], Cols: bufs.Cols[:n*k]}

	tiles, err := p.build(ctx, producer, list)
	if err != nil {
		return nil, err
	}

	rows := bufs.Rows[:n*k]
	if _, err := p.phase(ctx, "rows", func() (int, error) {
		return len(rows), knn.FillRows(rows, k, 0)
	}); err != nil {
		return nil, err
	}
	edges := list.Edges(rows)
	width := k

	if plan.stride > 0 && plan.stride < k {
		cnt, err := p.phase(ctx, "stride", func() (int, error) {
			return knn.ReduceStride(edges, edges, k, plan.stride)
		})
		if err != nil {
			return nil, err
		}
		edges = edges.Head(cnt)
		width = plan.stride
	}

	if plan.mutual {
		mutualize := knn.Mutualize
		if plan.symmetric {
			mutualize = knn.MutualizeSymmetric
		}
		cnt, err := p.phase(ctx, "mutual", func() (int, error) {
			return mutualize(edges, width)
		})
		if err != nil {
			return nil, err
		}
		edges = edges.Head(cnt)
	}

	if plan.hasThreshold {
		cnt, err := p.phase(ctx, "threshold", func() (int, error) {
			return knn.ReduceThreshold(edges, edges, plan.threshold)
		})
		if err != nil {
			return nil, err
		}
		edges = edges.Head(cnt)
	}

	var g *csr.Graph
	if _, err := p.phase(ctx, "csr", func() (int, error) {
		var err error
		if g, err = csr.FromEdges(edges, n, bufs.RowPtr); err != nil {
			return 0, err
		}
		return g.NNZ(), nil
	}); err != nil {
		return nil, err
	}

	switch {
	case plan.subsetBitmap != nil:
		_, err = p.phase(ctx, "subset", func() (int, error) {
			return csr.SubsetBitmap(p.exec, g, plan.subsetBitmap)
		})
	case plan.subset != nil:
		_, err = p.phase(ctx, "subset", func() (int, error) {
			return csr.Subset(p.exec, g, plan.subset)
		})
	}
	if err != nil {
		return nil, err
	}

	var weights []float32
	if plan.kernel != KernelNone {
		weights = bufs.Weights[:g.NNZ()]
		weigh := kernel.SelfTuningGaussian
		if plan.kernel == KernelNormalize {
			weigh = kernel.Normalize
		}
		if _, err := p.phase(ctx, "kernel", func() (int, error) {
			return len(weights), weigh(p.exec, weights, g)
		}); err != nil {
			return nil, err
		}
	}

	return &Result{
		Graph:       g,
		Weights:     weights,
		Tiles:       tiles,
		PeakScratch: p.exec.PeakScratch(),
	}, nil
}

// build merges every tile of the distance matrix into list and finalizes it.
func (p *Pipeline) build(ctx context.Context, producer distance.Producer, list knn.NeighborList) (int, error) {
	n := p.n
	tile := min(p.opts.tileSize, n)

	blockBytes := int64(tile) * int64(tile) * 4
	if err := p.exec.Reserve(blockBytes); err != nil {
		return 0, abortError("tile buffer", err)
	}
	defer p.exec.Release(blockBytes)
	block := mem.AllocAligned[float32](tile * tile)

	tiles := 0
	for rowLo := 0; rowLo < n; rowLo += tile {
		rowHi := min(rowLo+tile, n)
		rows := list.Slice(rowLo, rowHi)

		p.merger.Reset()
		for colLo := 0; colLo < n; colLo += tile {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			colHi := min(colLo+tile, n)
			if err := p.mergeTile(ctx, producer, block, rows, rowLo, rowHi, colLo, colHi); err != nil {
				return 0, abortError("merge", err)
			}
			tiles++
		}

		start := time.Now()
		err := p.merger.Finalize(rows, rowLo)
		p.metrics.RecordFinalize(rowHi-rowLo, time.Since(start), err)
		p.logger.LogFinalize(ctx, rowLo, rowHi, err)
		if err != nil {
			return 0, abortError("finalize", err)
		}
	}
	return tiles, nil
}

func (p *Pipeline) mergeTile(ctx context.Context, producer distance.Producer, block []float32, rows knn.NeighborList, rowLo, rowHi, colLo, colHi int) error {
	start := time.Now()
	m, w := rowHi-rowLo, colHi-colLo
	buf := block[:m*w]

	err := producer.Block(buf, rowLo, rowHi, colLo, colHi)
	if err == nil {
		err = p.merger.Push(buf, w, rows, colLo)
	}

	p.metrics.RecordTile(m, w, time.Since(start), err)
	p.logger.LogTile(ctx, rowLo, rowHi, colLo, colHi, err)
	return err
}

// phase runs one shaping or weighting step with logging and metrics.
func (p *Pipeline) phase(ctx context.Context, name string, fn func() (int, error)) (int, error) {
	start := time.Now()
	edges, err := fn()
	p.metrics.RecordPhase(name, edges, time.Since(start), err)
	p.logger.LogPhase(ctx, name, edges, err)
	if err != nil {
		return 0, abortError(name, err)
	}
	return edges, nil
}
