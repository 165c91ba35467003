package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/samober/ober-ml/pkg/chinesewhispers"
)

func main() {
	graphPath := flag.String("graph", "", "input graph binary file (required)")
	output := flag.String("output", "", "path for output cluster file (required)")
	maxEdges := flag.Int("max_edges", 200, "maximum number of edges to consider for each node")
	maxConnectivity := flag.Int("max_connectivity", 200, "maximum number of edges each subnode can have in an ego network")
	maxIterations := flag.Int("max_iterations", 100, "maximum number of times to run chinese whispers")
	minCluster := flag.Int("min_cluster", 5, "minimum size for each cluster")
	numWorkers := flag.Int("num_workers", 4, "number of worker threads")
	logLevel := flag.String("log_level", "info", "logging level (trace, debug, info, warn, error)")
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if *graphPath == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "missing required -graph or -output")
		flag.Usage()
		os.Exit(1)
	}

	config := chinesewhispers.NewConfig()
	config.Set("clustering.max_edges", *maxEdges)
	config.Set("clustering.max_connectivity", *maxConnectivity)
	config.Set("clustering.max_iterations", *maxIterations)
	config.Set("clustering.min_cluster", *minCluster)
	config.Set("performance.num_workers", *numWorkers)
	config.Set("logging.level", *logLevel)

	logger := config.CreateLogger()

	wsi := chinesewhispers.New(config)
	if err := wsi.LoadGraph(*graphPath); err != nil {
		logger.Error().Err(err).Msg("failed to load graph")
		os.Exit(1)
	}
	if _, err := wsi.CalculateSenses(*output); err != nil {
		logger.Error().Err(err).Msg("failed to calculate senses")
		os.Exit(1)
	}
}
