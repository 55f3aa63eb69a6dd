// Package graph holds the plain structured graph types downstream consumers
// build from an assembled model: an undirected weighted graph keyed by
// string node labels, and a collection that recasts labels to integer ids
// shared across all graphs in the collection.
package graph

import (
	"sort"

	gograph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Graph is an undirected weighted graph over string node labels, backed by
// a gonum simple.WeightedUndirectedGraph. Adding an edge twice overwrites
// its weight. Self loops are ignored.
type Graph struct {
	g      *simple.WeightedUndirectedGraph
	ids    map[string]int64
	labels map[int64]string
}

// Edge is one undirected edge; A < B lexicographically.
type Edge struct {
	A, B   string
	Weight float64
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		g:      simple.NewWeightedUndirectedGraph(0, 0),
		ids:    make(map[string]int64),
		labels: make(map[int64]string),
	}
}

func (g *Graph) node(label string) gograph.Node {
	if id, ok := g.ids[label]; ok {
		return simple.Node(id)
	}
	n := g.g.NewNode()
	g.g.AddNode(n)
	g.ids[label] = n.ID()
	g.labels[n.ID()] = label
	return n
}

// AddNode ensures a node exists.
func (g *Graph) AddNode(label string) {
	g.node(label)
}

// AddEdge sets the weight of the undirected edge a—b, creating both nodes.
func (g *Graph) AddEdge(a, b string, weight float64) {
	if a == b {
		return
	}
	na, nb := g.node(a), g.node(b)
	g.g.SetWeightedEdge(g.g.NewWeightedEdge(na, nb, weight))
}

// Weight returns the weight of the edge a—b.
func (g *Graph) Weight(a, b string) (float64, bool) {
	if a == b {
		return 0, false
	}
	ida, ok := g.ids[a]
	if !ok {
		return 0, false
	}
	idb, ok := g.ids[b]
	if !ok {
		return 0, false
	}
	e := g.g.WeightedEdge(ida, idb)
	if e == nil {
		return 0, false
	}
	return e.Weight(), true
}

// Nodes returns all node labels, sorted.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.ids))
	for label := range g.ids {
		nodes = append(nodes, label)
	}
	sort.Strings(nodes)
	return nodes
}

// Edges returns all edges with A < B, sorted by (A, B).
func (g *Graph) Edges() []Edge {
	var edges []Edge
	it := g.g.WeightedEdges()
	for it.Next() {
		e := it.WeightedEdge()
		a := g.labels[e.From().ID()]
		b := g.labels[e.To().ID()]
		if a > b {
			a, b = b, a
		}
		edges = append(edges, Edge{A: a, B: b, Weight: e.Weight()})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}
