package graph

import (
	"strconv"

	"github.com/digitalhps/tethne/pkg/tethne/model"
)

// TopicCoupling builds a topic co-dominance graph from an assembled model.
// Two topics are linked when at least one document assigns both a weight
// above threshold; the edge weight is the number of such documents. Node
// labels are the decimal topic indices.
func TopicCoupling(m *model.Model, threshold float64) *Graph {
	td := m.DocTopic()
	docs, topics := td.Dims()

	g := NewGraph()
	for t := 0; t < topics; t++ {
		g.AddNode(strconv.Itoa(t))
	}

	for d := 0; d < docs; d++ {
		var dominant []int
		for t := 0; t < topics; t++ {
			if td.At(d, t) > threshold {
				dominant = append(dominant, t)
			}
		}
		for i := 0; i < len(dominant); i++ {
			for j := i + 1; j < len(dominant); j++ {
				a := strconv.Itoa(dominant[i])
				b := strconv.Itoa(dominant[j])
				w, _ := g.Weight(a, b)
				g.AddEdge(a, b, w+1)
			}
		}
	}
	return g
}
