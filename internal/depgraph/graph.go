package depgraph

import (
	"fmt"

	"schema-generator/internal/resource"
)

// nodeID is an interned resource identifier: its first-insertion index.
type nodeID int

// Graph records "must be defined before" relationships between resources.
//
// An edge target -> resource means resource nests target, so target has to be
// emitted first. Nodes keep their first-insertion order, which is the tie
// breaker of Order.
type Graph struct {
	names []string
	ids   map[string]nodeID

	// out[t] lists the nodes depending on t, in edge insertion order.
	out [][]nodeID
	// in[r] lists the nodes r depends on, in edge insertion order.
	in [][]nodeID

	edges map[[2]nodeID]struct{}
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		ids:   make(map[string]nodeID),
		edges: make(map[[2]nodeID]struct{}),
	}
}

// Build creates the dependency graph of a normalized resource set. Every
// resource becomes a node; every field nesting another resource, directly or
// as a collection element, adds an edge. Self references add nothing.
func Build(set *resource.Set) (*Graph, error) {
	g := New()

	for _, r := range set.Resources() {
		g.AddNode(r.Name)
	}

	for _, r := range set.Resources() {
		for _, f := range r.Fields {
			if f.Type == nil {
				return nil, fmt.Errorf("field %s.%s is not normalized", r.Name, f.Name)
			}

			target, ok := f.Type.Target()
			if !ok {
				continue
			}

			if !g.HasNode(target) {
				return nil, fmt.Errorf("field %s.%s references unknown resource %q", r.Name, f.Name, target)
			}

			if err := g.AddEdge(target, r.Name); err != nil {
				return nil, fmt.Errorf("field %s.%s: %w", r.Name, f.Name, err)
			}
		}
	}

	return g, nil
}

// AddNode adds a node if it does not exist yet.
func (g *Graph) AddNode(name string) {
	if _, ok := g.ids[name]; ok {
		return
	}

	g.ids[name] = nodeID(len(g.names))
	g.names = append(g.names, name)
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
}

// HasNode reports whether name is a node of the graph.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.ids[name]
	return ok
}

// AddEdge records that target must be emitted before dependent. Both nodes
// must exist. Duplicate edges collapse; self-loops are rejected.
func (g *Graph) AddEdge(target, dependent string) error {
	t, ok := g.ids[target]
	if !ok {
		return fmt.Errorf("unknown node %q", target)
	}

	d, ok := g.ids[dependent]
	if !ok {
		return fmt.Errorf("unknown node %q", dependent)
	}

	if t == d {
		return fmt.Errorf("self-loop on %q", target)
	}

	key := [2]nodeID{t, d}
	if _, ok := g.edges[key]; ok {
		return nil
	}

	g.edges[key] = struct{}{}
	g.out[t] = append(g.out[t], d)
	g.in[d] = append(g.in[d], t)

	return nil
}

// Nodes returns the node names in insertion order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.names...)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Dependents returns the nodes that must be emitted after name.
func (g *Graph) Dependents(name string) []string {
	id, ok := g.ids[name]
	if !ok {
		return nil
	}

	return g.namesOf(g.out[id])
}

// Dependencies returns the nodes that must be emitted before name.
func (g *Graph) Dependencies(name string) []string {
	id, ok := g.ids[name]
	if !ok {
		return nil
	}

	return g.namesOf(g.in[id])
}

func (g *Graph) namesOf(ids []nodeID) []string {
	if len(ids) == 0 {
		return nil
	}

	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = g.names[id]
	}

	return out
}
