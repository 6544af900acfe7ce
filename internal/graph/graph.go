// Package graph provides dependency graphs with cycle detection and
// topological ordering, used to analyze device connectivity in a netlist.
package graph

import (
	"cmp"
	"slices"
)

// Graph is a dependency graph with forward edges. Node iteration is
// always in sorted order so results are deterministic.
type Graph[N cmp.Ordered] struct {
	nodes map[N]struct{}
	edges map[N][]N
}

// New returns a graph with no nodes or edges.
func New[N cmp.Ordered]() *Graph[N] {
	return &Graph[N]{
		nodes: make(map[N]struct{}),
		edges: make(map[N][]N),
	}
}

// AddNode registers a node. Duplicate calls are no-ops.
func (g *Graph[N]) AddNode(n N) {
	g.nodes[n] = struct{}{}
}

// AddEdge records that "from" depends on "to". Missing nodes are created
// implicitly. Duplicate edges are ignored.
func (g *Graph[N]) AddEdge(from, to N) {
	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}

	if slices.Contains(g.edges[from], to) {
		return
	}
	g.edges[from] = append(g.edges[from], to)
}

// Dependencies returns the nodes that n depends on (forward edges).
func (g *Graph[N]) Dependencies(n N) []N {
	return g.edges[n]
}

// HasNode reports whether the node exists in the graph.
func (g *Graph[N]) HasNode(n N) bool {
	_, ok := g.nodes[n]
	return ok
}

// Len returns the number of nodes.
func (g *Graph[N]) Len() int {
	return len(g.nodes)
}

// sortedNodes returns every node in ascending order.
func (g *Graph[N]) sortedNodes() []N {
	nodes := make([]N, 0, len(g.nodes))
	for n := range g.nodes {
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)
	return nodes
}
