package similarity

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/samober/ober-ml/pkg/graph"
)

// Engine computes the top-n cosine similarity graph over a token vector
// matrix using blocked dense matrix multiplication. Rows are expected to be
// L2-normalized (see Matrix.Normalize) so that dot products are cosine
// similarities.
type Engine struct {
	matrix *Matrix
	config *Config
	logger zerolog.Logger
}

// NewEngine creates a similarity engine over matrix
func NewEngine(matrix *Matrix, config *Config) *Engine {
	return &Engine{
		matrix: matrix,
		config: config,
		logger: config.CreateLogger(),
	}
}

// BuildGraph computes the full edge set: for every token, its topn nearest
// neighbors under cosine similarity. Batches of rows are multiplied against
// the whole matrix in parallel; each worker owns its score and index
// buffers and writes its tokens' edges into a disjoint range of the shared
// output, so besides those non-overlapping output ranges the only shared
// state is the read-only matrix.
func (e *Engine) BuildGraph() []graph.Edge {
	numTokens := e.matrix.Rows
	if numTokens == 0 {
		return nil
	}

	topn := e.config.TopN()
	batchSize := e.config.BatchSize()
	numWorkers := e.config.NumWorkers()

	// One fewer neighbor than tokens exist; the self slot is skipped.
	perToken := topn
	if perToken > numTokens-1 {
		perToken = numTokens - 1
	}

	numBatches := (numTokens + batchSize - 1) / batchSize
	edges := make([]graph.Edge, numTokens*perToken)

	e.logger.Info().
		Int("tokens", numTokens).
		Int("dim", e.matrix.Cols).
		Int("topn", topn).
		Int("batch_size", batchSize).
		Int("num_workers", numWorkers).
		Msg("computing similarity graph")

	startTime := time.Now()

	batches := make(chan int, numBatches)
	for b := 0; b < numBatches; b++ {
		batches <- b
	}
	close(batches)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker := newBatchWorker(e.matrix, batchSize, perToken)
			for b := range batches {
				start := b * batchSize
				end := start + batchSize
				if end > numTokens {
					end = numTokens
				}
				worker.process(start, end, edges)
			}
		}()
	}
	wg.Wait()

	e.logger.Info().
		Int("edges", len(edges)).
		Dur("elapsed", time.Since(startTime)).
		Msg("similarity graph complete")

	return edges
}

// Export builds the edge set and streams it to path as little-endian
// (from, to, weight) triples.
func (e *Engine) Export(path string) error {
	edges := e.BuildGraph()

	e.logger.Info().Str("path", path).Msg("writing edge file")
	if err := graph.WriteEdges(path, edges); err != nil {
		return fmt.Errorf("failed to export similarity graph: %w", err)
	}
	return nil
}

// batchWorker holds the per-worker scratch buffers for one parallel batch
// consumer: the GEMM output block, the candidate index array and the
// negated score row fed to the partition.
type batchWorker struct {
	matrix   *Matrix
	perToken int
	scores   []float32
	idx      []int32
	negated  []float32
}

func newBatchWorker(matrix *Matrix, batchSize, perToken int) *batchWorker {
	return &batchWorker{
		matrix:   matrix,
		perToken: perToken,
		scores:   make([]float32, batchSize*matrix.Rows),
		idx:      make([]int32, matrix.Rows),
		negated:  make([]float32, matrix.Rows),
	}
}

// process computes similarities for rows [start, end) and writes each
// token's edges into its slice of the shared output array.
func (bw *batchWorker) process(start, end int, edges []graph.Edge) {
	numTokens := bw.matrix.Rows
	dim := bw.matrix.Cols
	rows := end - start
	scores := bw.scores[:rows*numTokens]

	// scores[rows×N] = batch[rows×D] · matrix[N×D]ᵀ
	blas32.Gemm(
		blas.NoTrans,
		blas.Trans,
		1,
		blas32.General{Rows: rows, Cols: dim, Stride: dim, Data: bw.matrix.Data[start*dim : end*dim]},
		blas32.General{Rows: numTokens, Cols: dim, Stride: dim, Data: bw.matrix.Data},
		0,
		blas32.General{Rows: rows, Cols: numTokens, Stride: numTokens, Data: scores},
	)

	for i := start; i < end; i++ {
		row := scores[(i-start)*numTokens : (i-start+1)*numTokens]

		// The partition selects smallest scores, so negate similarities.
		// One extra slot because the token itself scores 1.0.
		for j := 0; j < numTokens; j++ {
			bw.idx[j] = int32(j)
			bw.negated[j] = -row[j]
		}
		k := bw.perToken + 1
		if k > numTokens {
			k = numTokens
		}
		PartitionTopK(bw.idx, bw.negated, k)

		out := edges[i*bw.perToken : (i+1)*bw.perToken]
		emitted := 0
		for j := 0; j < k && emitted < bw.perToken; j++ {
			neighbor := bw.idx[j]
			if neighbor == int32(i) {
				continue
			}
			out[emitted] = graph.Edge{From: int32(i), To: neighbor, Weight: row[neighbor]}
			emitted++
		}
	}
}
