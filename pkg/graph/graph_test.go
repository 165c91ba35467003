package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEdgeSymmetry(t *testing.T) {
	g := NewGraph()
	g.AddEdge(1, 2, 0.5)
	g.AddEdge(2, 3, 0.8)

	assert.Equal(t, 3, g.Size())
	assert.Equal(t, []int32{2}, g.Neighbors(1))
	assert.Equal(t, []int32{1, 3}, g.Neighbors(2))
	assert.Equal(t, []int32{2}, g.Neighbors(3))

	assert.Equal(t, float32(0.5), g.EdgeWeight(1, 2))
	assert.Equal(t, float32(0.5), g.EdgeWeight(2, 1))
	assert.Equal(t, float32(0.8), g.EdgeWeight(3, 2))
}

func TestAddEdgeIgnoresSelfLoop(t *testing.T) {
	g := NewGraph()
	g.AddEdge(5, 5, 1.0)

	assert.Equal(t, 0, g.Size())
	assert.Empty(t, g.Neighbors(5))
}

func TestDuplicateEdgeFirstWriterWins(t *testing.T) {
	g := NewGraph()
	g.AddEdge(1, 2, 0.5)
	g.AddEdge(1, 2, 0.9)
	g.AddEdge(2, 1, 0.3)

	assert.Equal(t, float32(0.5), g.EdgeWeight(1, 2))
	assert.Equal(t, float32(0.5), g.EdgeWeight(2, 1))
	assert.Len(t, g.Neighbors(1), 1)
	assert.Len(t, g.Neighbors(2), 1)
}

func TestEdgeWeightMissing(t *testing.T) {
	g := NewGraph()
	g.AddEdge(1, 2, 0.5)

	assert.Equal(t, float32(0), g.EdgeWeight(1, 3))
	assert.Equal(t, float32(0), g.EdgeWeight(7, 1))
}

func TestAbsentNode(t *testing.T) {
	g := NewGraph()

	assert.False(t, g.HasNode(42))
	assert.Nil(t, g.Neighbors(42))
	neighbors, weights := g.Edges(42)
	assert.Nil(t, neighbors)
	assert.Nil(t, weights)
}

func TestCapacityGrowth(t *testing.T) {
	g := NewGraphWithCapacity(4, 2)
	g.AddEdge(1, 100000, 0.25)

	assert.Equal(t, 2, g.Size())
	assert.True(t, g.HasNode(100000))
	assert.Equal(t, float32(0.25), g.EdgeWeight(100000, 1))
}

func TestNodesAscending(t *testing.T) {
	g := NewGraph()
	g.AddEdge(9, 2, 1.0)
	g.AddEdge(5, 9, 1.0)

	assert.Equal(t, []int32{2, 5, 9}, g.Nodes())
}

func TestSortEdges(t *testing.T) {
	g := NewGraph()
	g.AddEdge(0, 1, 0.9)
	g.AddEdge(0, 2, 0.1)
	g.AddEdge(0, 3, 0.5)
	g.AddEdge(0, 4, 0.3)
	g.SortEdges()

	neighbors, weights := g.Edges(0)
	require.Len(t, neighbors, 4)
	for i := 1; i < len(weights); i++ {
		assert.LessOrEqual(t, weights[i-1], weights[i])
	}
	// neighbor list stays in tandem with weights
	assert.Equal(t, []int32{2, 4, 3, 1}, neighbors)

	// symmetry preserved
	for i, neighbor := range neighbors {
		assert.Equal(t, weights[i], g.EdgeWeight(neighbor, 0))
	}
}

func TestClasses(t *testing.T) {
	g := NewGraph()
	g.AddNode(3)

	assert.Equal(t, int32(0), g.Class(3))
	g.SetClass(3, 7)
	assert.Equal(t, int32(7), g.Class(3))

	// out of range is a no-op
	g.SetClass(1000, 1)
	assert.Equal(t, int32(0), g.Class(1000))
}
