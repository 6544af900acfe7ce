package graph

import "slices"

// FindCycles returns all strongly connected components with more than one
// node, plus single nodes with a self-loop, found via Tarjan's algorithm.
// Each component is sorted, and components are ordered by their first node.
func (g *Graph[N]) FindCycles() [][]N {
	var (
		index    int
		stack    []N
		onStack  = make(map[N]bool)
		indices  = make(map[N]int)
		lowlinks = make(map[N]int)
		sccs     [][]N
	)

	var strongConnect func(n N)
	strongConnect = func(n N) {
		indices[n] = index
		lowlinks[n] = index
		index++
		stack = append(stack, n)
		onStack[n] = true

		for _, dep := range g.edges[n] {
			if _, visited := indices[dep]; !visited {
				strongConnect(dep)
				lowlinks[n] = min(lowlinks[n], lowlinks[dep])
			} else if onStack[dep] {
				lowlinks[n] = min(lowlinks[n], indices[dep])
			}
		}

		if lowlinks[n] == indices[n] {
			var scc []N
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == n {
					break
				}
			}
			if len(scc) > 1 || slices.Contains(g.edges[scc[0]], scc[0]) {
				slices.Sort(scc)
				sccs = append(sccs, scc)
			}
		}
	}

	for _, n := range g.sortedNodes() {
		if _, visited := indices[n]; !visited {
			strongConnect(n)
		}
	}

	slices.SortFunc(sccs, func(a, b []N) int {
		if a[0] < b[0] {
			return -1
		}
		if a[0] > b[0] {
			return 1
		}
		return 0
	})
	return sccs
}

// HasCycles reports whether the graph contains any cycles.
func (g *Graph[N]) HasCycles() bool {
	return len(g.FindCycles()) > 0
}
