package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/samober/ober-ml/pkg/similarity"
)

func main() {
	vectorsPath := flag.String("vectors", "", "input token vector matrix file (required)")
	graphPath := flag.String("graph", "", "path for output graph binary file (required)")
	topn := flag.Int("n", 200, "number of nearest neighbors to emit per token")
	batchSize := flag.Int("batch_size", 500, "number of rows per matrix multiplication block")
	numWorkers := flag.Int("num_workers", runtime.NumCPU(), "number of parallel batch workers")
	normalize := flag.Bool("normalize", true, "L2-normalize vector rows before computing similarities")
	logLevel := flag.String("log_level", "info", "logging level (trace, debug, info, warn, error)")
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if *vectorsPath == "" || *graphPath == "" {
		fmt.Fprintln(os.Stderr, "missing required -vectors or -graph")
		flag.Usage()
		os.Exit(1)
	}

	config := similarity.NewConfig()
	config.Set("similarity.topn", *topn)
	config.Set("similarity.batch_size", *batchSize)
	config.Set("performance.num_workers", *numWorkers)
	config.Set("logging.level", *logLevel)

	logger := config.CreateLogger()

	matrix, err := similarity.LoadMatrix(*vectorsPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load vectors")
		os.Exit(1)
	}
	if *normalize {
		matrix.Normalize()
	}

	engine := similarity.NewEngine(matrix, config)
	if err := engine.Export(*graphPath); err != nil {
		logger.Error().Err(err).Msg("failed to export similarity graph")
		os.Exit(1)
	}
}
