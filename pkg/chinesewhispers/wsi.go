package chinesewhispers

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/samober/ober-ml/pkg/graph"
)

// clusterQueueSize bounds the handoff between clustering workers and the
// writer; workers block when the writer falls behind.
const clusterQueueSize = 1024

// WSI induces word senses over a token similarity graph: for every token it
// builds an ego network, clusters it with Chinese Whispers and streams the
// surviving clusters to a binary output file.
type WSI struct {
	config *Config
	logger zerolog.Logger
	graph  *graph.Graph
}

// New creates a word-sense induction run with the given configuration
func New(config *Config) *WSI {
	return &WSI{
		config: config,
		logger: config.CreateLogger(),
	}
}

// Graph returns the loaded distributed graph, nil before LoadGraph
func (w *WSI) Graph() *graph.Graph {
	return w.graph
}

// LoadGraph reads the binary edge file into the shared distributed graph
// and sorts its adjacencies. The graph is read-only from here on, so the
// clustering workers share it without locks.
func (w *WSI) LoadGraph(path string) error {
	w.logger.Info().
		Int("max_edges", w.config.MaxEdges()).
		Int("max_connectivity", w.config.MaxConnectivity()).
		Int("max_iterations", w.config.MaxIterations()).
		Int("min_cluster", w.config.MinCluster()).
		Int("num_workers", w.config.NumWorkers()).
		Msg("chinese whispers")

	w.logger.Info().Str("path", path).Msg("loading graph")
	startTime := time.Now()
	g, err := graph.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}
	w.graph = g
	w.logger.Info().
		Int("nodes", g.Size()).
		Dur("elapsed", time.Since(startTime)).
		Msg("graph loaded and sorted")
	return nil
}

// CalculateSenses runs the clustering worker pool over every node of the
// loaded graph and writes the resulting clusters to outputPath. Returns the
// number of clusters written.
//
// Node ids are split into one contiguous range per worker, with the last
// worker taking the remainder. A single writer goroutine consumes the
// bounded queue; after all workers finish, a sentinel cluster unblocks it.
func (w *WSI) CalculateSenses(outputPath string) (int64, error) {
	if w.graph == nil {
		return 0, fmt.Errorf("graph not loaded")
	}

	numWorkers := w.config.NumWorkers()
	if numWorkers < 1 {
		numWorkers = 1
	}
	numNodes := w.graph.Size()
	batchSize := numNodes / numWorkers

	queue := make(chan Cluster, clusterQueueSize)
	var progress, totalClusters atomic.Int64

	writer := &clusterWriter{path: outputPath, queue: queue, total: &totalClusters}
	writerDone := make(chan error, 1)
	go func() {
		writerDone <- writer.run()
	}()

	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		batchStart := i * batchSize
		batchEnd := batchStart + batchSize
		if i == numWorkers-1 {
			batchEnd = numNodes
		}

		wg.Add(1)
		go func(id, start, end int) {
			defer wg.Done()
			w.logger.Debug().
				Int("worker", id).
				Int("start", start).
				Int("end", end).
				Msg("starting batch")

			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))
			for node := start; node < end; node++ {
				ego := egoNetwork(w.graph, int32(node), w.config.MaxEdges(), w.config.MaxConnectivity())
				propagate(ego, rng, w.config.MaxIterations())
				extractClusters(w.graph, int32(node), ego, w.config.MinCluster(), func(c Cluster) {
					queue <- c
				})
				progress.Add(1)
			}
		}(i+1, batchStart, batchEnd)
	}

	// progress monitor; sleeps between polls of the shared counter
	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		interval := time.Duration(w.config.ProgressIntervalMS()) * time.Millisecond
		for {
			done := progress.Load()
			if done >= int64(numNodes) {
				return
			}
			w.logger.Info().
				Int64("completed", done).
				Int("total", numNodes).
				Int64("clusters", totalClusters.Load()).
				Msg("progress")
			time.Sleep(interval)
		}
	}()

	wg.Wait()
	<-monitorDone

	// sentinel releases the writer once all workers are drained
	queue <- Cluster{Node: sentinelNode, Sense: sentinelNode}
	if err := <-writerDone; err != nil {
		return totalClusters.Load(), fmt.Errorf("cluster writer failed: %w", err)
	}

	w.logger.Info().
		Int64("clusters", totalClusters.Load()).
		Dur("elapsed", time.Since(startTime)).
		Msg("clustering complete")

	return totalClusters.Load(), nil
}
