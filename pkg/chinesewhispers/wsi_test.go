package chinesewhispers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samober/ober-ml/pkg/graph"
)

func testWSIConfig(minCluster, numWorkers int) *Config {
	config := NewConfig()
	config.Set("clustering.min_cluster", minCluster)
	config.Set("performance.num_workers", numWorkers)
	config.Set("logging.level", "error")
	return config
}

// communityEdges builds two dense 4-node communities (0-3 and 4-7) joined
// by a single weak edge, a structure Chinese Whispers separates reliably.
func communityEdges() []graph.Edge {
	var edges []graph.Edge
	for _, base := range []int32{0, 4} {
		for i := base; i < base+4; i++ {
			for j := i + 1; j < base+4; j++ {
				edges = append(edges, graph.Edge{From: i, To: j, Weight: 0.9})
			}
		}
	}
	edges = append(edges, graph.Edge{From: 3, To: 4, Weight: 0.05})
	return edges
}

func TestCalculateSensesEndToEnd(t *testing.T) {
	dir := t.TempDir()
	graphPath := filepath.Join(dir, "test.graph")
	clustersPath := filepath.Join(dir, "test.clusters")

	require.NoError(t, graph.WriteEdges(graphPath, communityEdges()))

	wsi := New(testWSIConfig(2, 3))
	require.NoError(t, wsi.LoadGraph(graphPath))
	require.Equal(t, 8, wsi.Graph().Size())

	total, err := wsi.CalculateSenses(clustersPath)
	require.NoError(t, err)

	clusters, err := ReadClusters(clustersPath)
	require.NoError(t, err)
	require.Equal(t, int(total), len(clusters))

	g := wsi.Graph()
	senses := make(map[int32]int32)
	for _, cluster := range clusters {
		// every emitted cluster meets the size threshold
		assert.GreaterOrEqual(t, len(cluster.Members), 2)

		// sense ids per base node are gapless starting from 1
		senses[cluster.Node]++
		assert.Equal(t, senses[cluster.Node], cluster.Sense)

		// members are neighbors of the base node with the base edge weight
		for _, member := range cluster.Members {
			assert.NotEqual(t, cluster.Node, member.Node)
			assert.Contains(t, g.Neighbors(cluster.Node), member.Node)
			assert.Equal(t, g.EdgeWeight(cluster.Node, member.Node), member.Weight)
		}
	}
}

func TestCalculateSensesWithoutGraph(t *testing.T) {
	wsi := New(testWSIConfig(2, 2))
	_, err := wsi.CalculateSenses(filepath.Join(t.TempDir(), "out.clusters"))
	assert.Error(t, err)
}

func TestCalculateSensesMoreWorkersThanNodes(t *testing.T) {
	dir := t.TempDir()
	graphPath := filepath.Join(dir, "test.graph")
	clustersPath := filepath.Join(dir, "test.clusters")

	require.NoError(t, graph.WriteEdges(graphPath, []graph.Edge{
		{From: 0, To: 1, Weight: 0.5},
		{From: 1, To: 2, Weight: 0.5},
	}))

	wsi := New(testWSIConfig(1, 16))
	require.NoError(t, wsi.LoadGraph(graphPath))

	_, err := wsi.CalculateSenses(clustersPath)
	require.NoError(t, err)

	// output parses even when most workers had empty ranges
	_, err = ReadClusters(clustersPath)
	assert.NoError(t, err)
}

func TestCalculateSensesUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	graphPath := filepath.Join(dir, "test.graph")

	require.NoError(t, graph.WriteEdges(graphPath, communityEdges()))

	wsi := New(testWSIConfig(2, 2))
	require.NoError(t, wsi.LoadGraph(graphPath))

	_, err := wsi.CalculateSenses(filepath.Join(dir, "missing", "out.clusters"))
	assert.Error(t, err)
}
