package graph

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.graph")

	edges := []Edge{
		{From: 0, To: 1, Weight: 0.9},
		{From: 0, To: 2, Weight: 0.7},
		{From: 1, To: 2, Weight: 0.4},
		{From: 3, To: 0, Weight: 0.2},
	}
	require.NoError(t, WriteEdges(path, edges))

	g, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, g.Size())
	for _, edge := range edges {
		assert.Equal(t, edge.Weight, g.EdgeWeight(edge.From, edge.To))
		assert.Equal(t, edge.Weight, g.EdgeWeight(edge.To, edge.From))
	}

	// loader symmetrizes: 3 picked 0, so 0 sees 3 as well
	assert.Contains(t, g.Neighbors(0), int32(3))
}

func TestLoadSortsAdjacency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.graph")

	edges := []Edge{
		{From: 0, To: 1, Weight: 0.9},
		{From: 0, To: 2, Weight: 0.1},
		{From: 0, To: 3, Weight: 0.5},
	}
	require.NoError(t, WriteEdges(path, edges))

	g, err := Load(path)
	require.NoError(t, err)

	_, weights := g.Edges(0)
	require.Len(t, weights, 3)
	for i := 1; i < len(weights); i++ {
		assert.LessOrEqual(t, weights[i-1], weights[i])
	}
}

func TestLoadDuplicateTriples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.graph")

	// the reverse triple of an existing edge must not change its weight
	edges := []Edge{
		{From: 0, To: 1, Weight: 0.9},
		{From: 1, To: 0, Weight: 0.4},
	}
	require.NoError(t, WriteEdges(path, edges))

	g, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, g.Neighbors(0), 1)
	assert.Len(t, g.Neighbors(1), 1)
	assert.Equal(t, float32(0.9), g.EdgeWeight(0, 1))
	assert.Equal(t, float32(0.9), g.EdgeWeight(1, 0))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.graph"))
	assert.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.graph")
	require.NoError(t, WriteEdges(path, nil))

	g, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Size())
}
