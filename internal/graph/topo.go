package graph

import "slices"

// TopologicalOrder returns nodes ordered so that dependents come before
// their dependencies (Kahn's algorithm). Nodes on or behind a cycle are
// returned separately, sorted.
func (g *Graph[N]) TopologicalOrder() (order []N, cyclic []N) {
	inDegree := make(map[N]int)
	for _, deps := range g.edges {
		for _, dep := range deps {
			inDegree[dep]++
		}
	}

	var queue []N
	for _, n := range g.sortedNodes() {
		if inDegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)

		for _, dep := range g.edges[n] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	for n, degree := range inDegree {
		if degree > 0 {
			cyclic = append(cyclic, n)
		}
	}
	slices.Sort(cyclic)

	return order, cyclic
}

// ResolutionOrder returns nodes with dependencies before dependents,
// the reverse of TopologicalOrder.
func (g *Graph[N]) ResolutionOrder() (order []N, cyclic []N) {
	order, cyclic = g.TopologicalOrder()
	slices.Reverse(order)
	return order, cyclic
}

// Depth returns the length of the longest dependency chain among the
// acyclic nodes, counting nodes. An empty graph has depth 0.
func (g *Graph[N]) Depth() int {
	order, _ := g.ResolutionOrder()
	level := make(map[N]int, len(order))
	deepest := 0
	for _, n := range order {
		l := 1
		for _, dep := range g.edges[n] {
			if dl, ok := level[dep]; ok {
				l = max(l, dl+1)
			}
		}
		level[n] = l
		deepest = max(deepest, l)
	}
	return deepest
}
