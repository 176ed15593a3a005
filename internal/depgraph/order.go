package depgraph

import (
	"sort"
)

// Order returns the node names in emission order: for every edge
// target -> dependent, target comes first.
//
// The result is deterministic: when several nodes are ready, the one inserted
// first is emitted first. If a cycle among distinct nodes exists, a
// *TopologyError naming the nodes that could not be ordered is returned.
func (g *Graph) Order() ([]string, error) {
	n := len(g.names)
	if n == 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	for id := range n {
		indeg[id] = len(g.in[id])
	}

	var ready []nodeID

	for id := range n {
		if indeg[id] == 0 {
			ready = append(ready, nodeID(id))
		}
	}

	order := make([]string, 0, n)

	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]

		order = append(order, g.names[id])

		for _, dep := range g.out[id] {
			indeg[dep]--
			if indeg[dep] == 0 {
				// Insert while keeping ready sorted by insertion index.
				k := sort.Search(len(ready), func(i int) bool { return ready[i] >= dep })
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = dep
			}
		}
	}

	if len(order) == n {
		return order, nil
	}

	var unresolved []nodeID

	for id := range n {
		if indeg[id] > 0 {
			unresolved = append(unresolved, nodeID(id))
		}
	}

	return nil, &TopologyError{
		Unresolved: g.namesOf(unresolved),
		Cycle:      g.namesOf(g.findCycle(unresolved, indeg)),
	}
}

// findCycle returns one cycle among the unresolved nodes, starting and ending
// at the same node, where each node nests the next. Every unresolved node has
// an unresolved dependency, so following dependencies must revisit a node.
func (g *Graph) findCycle(unresolved []nodeID, indeg []int) []nodeID {
	if len(unresolved) == 0 {
		return nil
	}

	seen := make(map[nodeID]int)

	var path []nodeID

	cur := unresolved[0]
	for {
		if at, ok := seen[cur]; ok {
			cycle := append([]nodeID(nil), path[at:]...)

			return append(cycle, cycle[0])
		}

		seen[cur] = len(path)
		path = append(path, cur)

		next := nodeID(-1)

		for _, dep := range g.in[cur] {
			if indeg[dep] > 0 {
				next = dep
				break
			}
		}

		if next < 0 {
			return nil
		}

		cur = next
	}
}
