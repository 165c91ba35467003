package graph

import (
	"fmt"
	"io"
	"os"

	"github.com/samober/ober-ml/pkg/binio"
)

// Edge is a single directed similarity record as stored on disk. The
// in-memory graph symmetrizes these on load.
type Edge struct {
	From   int32
	To     int32
	Weight float32
}

// Initial sizing for full-vocabulary similarity graphs. Load stays correct
// for any node count; capacity doubles past these.
const (
	loadInitialCapacity = 200000
	loadEdgeReserve     = 220
)

// WriteEdges streams edge triples to path as bare little-endian
// (from, to, weight) records with no header.
func WriteEdges(path string, edges []Edge) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create edge file: %w", err)
	}
	defer file.Close()

	w := binio.NewWriter(file)
	for _, edge := range edges {
		if err := w.WriteInt32(edge.From); err != nil {
			return fmt.Errorf("failed to write edge: %w", err)
		}
		if err := w.WriteInt32(edge.To); err != nil {
			return fmt.Errorf("failed to write edge: %w", err)
		}
		if err := w.WriteFloat32(edge.Weight); err != nil {
			return fmt.Errorf("failed to write edge: %w", err)
		}
	}
	return w.Flush()
}

// Load reads an edge file produced by WriteEdges into a symmetric graph and
// sorts every neighbor list by ascending weight. Each on-disk triple is
// directed; AddEdge inserts both directions, so a node's effective neighbor
// set is its outgoing top-n unioned with the incoming picks of other nodes.
func Load(path string) (*Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open edge file: %w", err)
	}
	defer file.Close()

	g := NewGraphWithCapacity(loadInitialCapacity, loadEdgeReserve)
	r := binio.NewReader(file)
	for {
		from, err := r.ReadInt32()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read edge file: %w", err)
		}
		to, err := r.ReadInt32()
		if err != nil {
			return nil, fmt.Errorf("failed to read edge file: %w", err)
		}
		weight, err := r.ReadFloat32()
		if err != nil {
			return nil, fmt.Errorf("failed to read edge file: %w", err)
		}
		g.AddEdge(from, to, weight)
	}

	g.SortEdges()
	return g, nil
}
