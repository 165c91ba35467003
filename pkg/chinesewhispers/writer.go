package chinesewhispers

import (
	"bufio"
	"fmt"
	"os"
	"sync/atomic"
)

// clusterWriter is the single consumer of the bounded cluster queue. It
// streams every record to the output file and stops at the sentinel, which
// is never written. On a write failure it keeps draining the queue until
// the sentinel so the producing workers can never block on a dead consumer,
// then reports the first error.
type clusterWriter struct {
	path  string
	queue <-chan Cluster
	total *atomic.Int64
}

func (cw *clusterWriter) run() error {
	file, err := os.Create(cw.path)
	if err != nil {
		cw.drain()
		return fmt.Errorf("failed to create cluster file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for cluster := range cw.queue {
		if cluster.Node == sentinelNode {
			break
		}
		if err := cluster.WriteTo(w); err != nil {
			cw.drain()
			return err
		}
		cw.total.Add(1)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush cluster file: %w", err)
	}
	return nil
}

func (cw *clusterWriter) drain() {
	for cluster := range cw.queue {
		if cluster.Node == sentinelNode {
			return
		}
	}
}
