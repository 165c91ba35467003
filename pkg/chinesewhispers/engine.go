package chinesewhispers

import (
	"math/rand"

	"github.com/samober/ober-ml/pkg/graph"
)

// egoNetwork builds the private graph for one base node: edges among the
// node's neighbors, found through a bounded second-hop lookup. Only the
// first maxEdges neighbors are considered, and each contributes at most its
// first maxConnectivity edges. The base node itself never appears.
func egoNetwork(g *graph.Graph, node int32, maxEdges, maxConnectivity int) *graph.Graph {
	ego := graph.NewGraph()

	neighbors := g.Neighbors(node)
	limit := len(neighbors)
	if limit > maxEdges {
		limit = maxEdges
	}
	neighborSet := make(map[int32]struct{}, limit)
	for _, neighbor := range neighbors[:limit] {
		neighborSet[neighbor] = struct{}{}
	}

	for i := 0; i < limit; i++ {
		neighbor := neighbors[i]
		foreign, weights := g.Edges(neighbor)
		connectivity := len(foreign)
		if connectivity > maxConnectivity {
			connectivity = maxConnectivity
		}
		for j := 0; j < connectivity; j++ {
			foreignNeighbor := foreign[j]
			if foreignNeighbor == node {
				continue
			}
			// only keep edges that stay inside the ego network
			if _, ok := neighborSet[foreignNeighbor]; ok {
				ego.AddEdge(neighbor, foreignNeighbor, weights[j])
			}
		}
	}

	return ego
}

// propagate runs Chinese Whispers label propagation over an ego network.
// Every node starts in its own class (1-based; 0 is the unassigned
// sentinel). Each sweep visits the nodes in a fresh uniform shuffle and
// moves every node to the class with the largest incident weight sum,
// stopping early once a sweep changes nothing. Ties fall to whichever
// winning class the per-sweep sum map yields first; class ids are arbitrary
// so the choice does not affect the partition. Weight sums at or below
// -10000 cannot win a round, which is safe for cosine weights in [-1, 1].
func propagate(ego *graph.Graph, rng *rand.Rand, maxIterations int) {
	nodes := ego.Nodes()
	for i, node := range nodes {
		ego.SetClass(node, int32(i+1))
	}

	changed := true
	for sweep := 0; sweep < maxIterations && changed; sweep++ {
		changed = false
		rng.Shuffle(len(nodes), func(i, j int) {
			nodes[i], nodes[j] = nodes[j], nodes[i]
		})
		for _, node := range nodes {
			neighbors, weights := ego.Edges(node)
			classSums := make(map[int32]float32, len(neighbors))
			for i, neighbor := range neighbors {
				classSums[ego.Class(neighbor)] += weights[i]
			}

			max := float32(-10000)
			winner := int32(0)
			for class, sum := range classSums {
				if sum > max {
					max = sum
					winner = class
				}
			}

			if ego.Class(node) != winner {
				ego.SetClass(node, winner)
				changed = true
			}
		}
	}
}

// extractClusters partitions the settled ego network by class and emits
// every cluster of at least minCluster members. Member weights are the base
// node's edge weights in the distributed graph, not the ego network's.
// Sense ids advance only for emitted clusters, so the first published
// cluster of a base node carries sense id 1 and ids are gapless.
func extractClusters(g *graph.Graph, baseNode int32, ego *graph.Graph, minCluster int, emit func(Cluster)) {
	neighbors, neighborWeights := g.Edges(baseNode)
	weights := make(map[int32]float32, len(neighbors))
	for i, neighbor := range neighbors {
		weights[neighbor] = neighborWeights[i]
	}

	remaining := ego.Nodes()
	sense := int32(0)
	for len(remaining) > 0 {
		current := ego.Class(remaining[0])
		members := make([]Member, 0, len(remaining))
		rest := make([]int32, 0, len(remaining))
		for _, node := range remaining {
			if ego.Class(node) == current {
				members = append(members, Member{Node: node, Weight: weights[node]})
			} else {
				rest = append(rest, node)
			}
		}
		remaining = rest

		if len(members) >= minCluster {
			sense++
			emit(Cluster{Node: baseNode, Sense: sense, Members: members})
		}
	}
}
