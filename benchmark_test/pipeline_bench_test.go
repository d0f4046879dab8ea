package benchmark_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/manifold"
	"github.com/hupe1980/manifold/csr"
	"github.com/hupe1980/manifold/distance"
	"github.com/hupe1980/manifold/kernel"
	"github.com/hupe1980/manifold/knn"
	"github.com/hupe1980/manifold/parallel"
	"github.com/hupe1980/manifold/testutil"
)

const (
	benchPoints = 4096
	benchDim    = 32
	benchK      = 16
)

func benchProducer(b *testing.B) *distance.Points {
	b.Helper()

	rng := testutil.NewRNG(42)
	p, err := distance.NewPoints(rng.ClusteredPoints(benchPoints, benchDim, 16, 0.5), benchDim, distance.MetricL2)
	if err != nil {
		b.Fatalf("points: %v", err)
	}
	return p
}

// BenchmarkPipeline measures a full run per tile size.
func BenchmarkPipeline(b *testing.B) {
	producer := benchProducer(b)
	bufs := manifold.NewBuffers(benchPoints, benchK)
	plan := manifold.NewPlan().MutualSymmetric().Gaussian()

	for _, tile := range []int{256, 1024, 4096} {
		b.Run(fmt.Sprintf("tile=%d", tile), func(b *testing.B) {
			p, err := manifold.New(benchPoints, benchK, manifold.WithTileSize(tile))
			if err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := p.Run(context.Background(), producer, bufs, plan); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkMergerPush isolates the heap merge of one tile.
func BenchmarkMergerPush(b *testing.B) {
	const rows, cols = 512, 4096

	producer := benchProducer(b)
	block := make([]float32, rows*cols)
	if err := producer.Block(block, 0, rows, 0, cols); err != nil {
		b.Fatal(err)
	}

	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			m, err := knn.NewMerger(benchK, parallel.New(workers))
			if err != nil {
				b.Fatal(err)
			}
			list := knn.NeighborList{K: benchK, Data: make([]float32, rows*benchK), Cols: make([]int32, rows*benchK)}

			b.SetBytes(int64(len(block)) * 4)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m.Reset()
				if err := m.Push(block, cols, list, 0); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkKernel measures both weightings on a finished k-NN graph.
func BenchmarkKernel(b *testing.B) {
	producer := benchProducer(b)
	bufs := manifold.NewBuffers(benchPoints, benchK)

	p, err := manifold.New(benchPoints, benchK)
	if err != nil {
		b.Fatal(err)
	}
	res, err := p.Run(context.Background(), producer, bufs, manifold.NewPlan())
	if err != nil {
		b.Fatal(err)
	}
	dst := make([]float32, res.Graph.NNZ())
	exec := parallel.New(0)

	for name, weigh := range map[string]func(*parallel.Executor, []float32, *csr.Graph) error{
		"gaussian":  kernel.SelfTuningGaussian,
		"normalize": kernel.Normalize,
	} {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := weigh(exec, dst, res.Graph); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
