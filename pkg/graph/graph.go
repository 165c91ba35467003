package graph

import (
	"sort"
)

// Graph represents a weighted undirected graph keyed by dense non-negative
// node ids. Adjacency is stored as flat primitive arrays (parallel neighbor
// and weight slices per node) with a per-node membership set for O(1) edge
// existence checks. A per-node integer class is used by the clustering
// engine for label propagation.
type Graph struct {
	present   []bool
	classes   []int32
	adjacency [][]int32
	weights   [][]float32
	edgeSet   []map[int32]struct{}

	numNodes    int
	edgeReserve int
}

// NewGraph creates an empty graph with default initial capacity
func NewGraph() *Graph {
	return NewGraphWithCapacity(10, 10)
}

// NewGraphWithCapacity creates an empty graph sized for initialCapacity
// nodes with edgeReserve slots pre-allocated per neighbor list. Capacity
// doubles whenever a node id exceeds it, so these are hints, not limits.
func NewGraphWithCapacity(initialCapacity, edgeReserve int) *Graph {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	return &Graph{
		present:     make([]bool, initialCapacity),
		classes:     make([]int32, initialCapacity),
		adjacency:   make([][]int32, initialCapacity),
		weights:     make([][]float32, initialCapacity),
		edgeSet:     make([]map[int32]struct{}, initialCapacity),
		edgeReserve: edgeReserve,
	}
}

// Size returns the number of present nodes
func (g *Graph) Size() int {
	return g.numNodes
}

func (g *Graph) ensureCapacity(minSize int) {
	if minSize <= len(g.present) {
		return
	}
	newSize := len(g.present) * 2
	if newSize < minSize {
		newSize = minSize
	}
	present := make([]bool, newSize)
	copy(present, g.present)
	g.present = present

	classes := make([]int32, newSize)
	copy(classes, g.classes)
	g.classes = classes

	adjacency := make([][]int32, newSize)
	copy(adjacency, g.adjacency)
	g.adjacency = adjacency

	weights := make([][]float32, newSize)
	copy(weights, g.weights)
	g.weights = weights

	edgeSet := make([]map[int32]struct{}, newSize)
	copy(edgeSet, g.edgeSet)
	g.edgeSet = edgeSet
}

// AddNode marks node as present with an empty neighbor list. Adding an
// existing node is a no-op.
func (g *Graph) AddNode(node int32) {
	g.ensureCapacity(int(node) + 1)
	if g.present[node] {
		return
	}
	g.present[node] = true
	g.numNodes++
	g.adjacency[node] = make([]int32, 0, g.edgeReserve)
	g.weights[node] = make([]float32, 0, g.edgeReserve)
	g.edgeSet[node] = make(map[int32]struct{}, g.edgeReserve)
}

// HasNode reports whether node is present
func (g *Graph) HasNode(node int32) bool {
	return int(node) < len(g.present) && g.present[node]
}

// Nodes returns all present node ids in ascending order
func (g *Graph) Nodes() []int32 {
	nodes := make([]int32, 0, g.numNodes)
	for i, ok := range g.present {
		if ok {
			nodes = append(nodes, int32(i))
		}
	}
	return nodes
}

// AddEdge inserts an undirected edge between from and to. Self-loops are
// ignored. Both endpoints are created as needed. Re-inserting an existing
// edge is a no-op: the first weight wins and the neighbor lists stay
// duplicate free.
func (g *Graph) AddEdge(from, to int32, weight float32) {
	if from == to {
		return
	}
	g.AddNode(from)
	g.AddNode(to)
	if _, ok := g.edgeSet[from][to]; !ok {
		g.edgeSet[from][to] = struct{}{}
		g.adjacency[from] = append(g.adjacency[from], to)
		g.weights[from] = append(g.weights[from], weight)
	}
	if _, ok := g.edgeSet[to][from]; !ok {
		g.edgeSet[to][from] = struct{}{}
		g.adjacency[to] = append(g.adjacency[to], from)
		g.weights[to] = append(g.weights[to], weight)
	}
}

// HasEdge reports whether an edge between from and to exists
func (g *Graph) HasEdge(from, to int32) bool {
	if !g.HasNode(from) {
		return false
	}
	_, ok := g.edgeSet[from][to]
	return ok
}

// Neighbors returns the neighbor ids of node in list order. The returned
// slice is the graph's own storage and must not be mutated.
func (g *Graph) Neighbors(node int32) []int32 {
	if !g.HasNode(node) {
		return nil
	}
	return g.adjacency[node]
}

// Edges returns the neighbor ids and edge weights of node as parallel
// slices in list order. Both slices are the graph's own storage.
func (g *Graph) Edges(node int32) ([]int32, []float32) {
	if !g.HasNode(node) {
		return nil, nil
	}
	return g.adjacency[node], g.weights[node]
}

// EdgeWeight returns the weight of the edge between from and to, or 0 if
// no such edge exists. Linear scan over the neighbor list.
func (g *Graph) EdgeWeight(from, to int32) float32 {
	if !g.HasNode(from) {
		return 0
	}
	for i, neighbor := range g.adjacency[from] {
		if neighbor == to {
			return g.weights[from][i]
		}
	}
	return 0
}

// Class returns the propagation class assigned to node, 0 if unassigned
func (g *Graph) Class(node int32) int32 {
	if int(node) >= len(g.classes) {
		return 0
	}
	return g.classes[node]
}

// SetClass assigns a propagation class to node
func (g *Graph) SetClass(node int32, class int32) {
	if int(node) < len(g.classes) {
		g.classes[node] = class
	}
}

// SortEdges reorders every neighbor list in tandem with its weight list by
// ascending edge weight.
func (g *Graph) SortEdges() {
	for node, ok := range g.present {
		if !ok {
			continue
		}
		sort.Sort(&edgeSorter{
			adjacency: g.adjacency[node],
			weights:   g.weights[node],
		})
	}
}

// edgeSorter sorts a neighbor list and its weight list together
type edgeSorter struct {
	adjacency []int32
	weights   []float32
}

func (s *edgeSorter) Len() int           { return len(s.adjacency) }
func (s *edgeSorter) Less(i, j int) bool { return s.weights[i] < s.weights[j] }
func (s *edgeSorter) Swap(i, j int) {
	s.adjacency[i], s.adjacency[j] = s.adjacency[j], s.adjacency[i]
	s.weights[i], s.weights[j] = s.weights[j], s.weights[i]
}
