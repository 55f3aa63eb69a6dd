package graph

import "sort"

// Collection is an indexed set of graphs, keyed by an integer slice key
// (typically a year). Node labels are recast to integer ids assigned by
// first appearance across the whole collection, so node identity stays
// consistent among all of the collection's graphs; the original labels are
// retained in the index.
type Collection struct {
	graphs map[int]*Graph
	index  map[string]int
	labels []string
}

// IndexedEdge is an edge between two collection-wide node ids.
type IndexedEdge struct {
	A, B   int
	Weight float64
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{
		graphs: make(map[int]*Graph),
		index:  make(map[string]int),
	}
}

// Add stores a graph under key and indexes any node labels not yet seen.
// Labels are indexed in sorted order within each added graph so id
// assignment is deterministic. A graph already stored under key is replaced.
func (c *Collection) Add(key int, g *Graph) {
	for _, label := range g.Nodes() {
		if _, ok := c.index[label]; !ok {
			c.index[label] = len(c.labels)
			c.labels = append(c.labels, label)
		}
	}
	c.graphs[key] = g
}

// Graph returns the graph stored under key.
func (c *Collection) Graph(key int) (*Graph, bool) {
	g, ok := c.graphs[key]
	return g, ok
}

// Keys returns the slice keys in ascending order.
func (c *Collection) Keys() []int {
	keys := make([]int, 0, len(c.graphs))
	for k := range c.graphs {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// NodeID returns the collection-wide id of a label.
func (c *Collection) NodeID(label string) (int, bool) {
	id, ok := c.index[label]
	return id, ok
}

// Label returns the label behind a collection-wide id.
func (c *Collection) Label(id int) (string, bool) {
	if id < 0 || id >= len(c.labels) {
		return "", false
	}
	return c.labels[id], true
}

// Nodes returns all indexed labels in id order.
func (c *Collection) Nodes() []string {
	nodes := make([]string, len(c.labels))
	copy(nodes, c.labels)
	return nodes
}

// EdgeList returns the union of all graphs' edges as id pairs with A < B.
// When several graphs hold the same edge, the weight comes from the graph
// under the highest key.
func (c *Collection) EdgeList() []IndexedEdge {
	type pair struct{ a, b int }
	weights := make(map[pair]float64)

	for _, key := range c.Keys() {
		for _, e := range c.graphs[key].Edges() {
			a := c.index[e.A]
			b := c.index[e.B]
			if a > b {
				a, b = b, a
			}
			weights[pair{a, b}] = e.Weight
		}
	}

	edges := make([]IndexedEdge, 0, len(weights))
	for p, w := range weights {
		edges = append(edges, IndexedEdge{A: p.a, B: p.b, Weight: w})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}
