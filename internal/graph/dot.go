package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DOTOptions controls WriteDOT output.
type DOTOptions[T any] struct {
	// ShowWeights adds a weight label to every edge.
	ShowWeights bool
	// Label renders node data; nodes without data are left unlabelled.
	Label func(T) string
}

// WriteDOT writes the graph in Graphviz DOT form. A graph with any directed
// edge becomes a digraph in which undirected edges are drawn once with
// dir=none.
func (g *Graph[T]) WriteDOT(w io.Writer, opts DOTOptions[T]) error {
	directed := false
	for _, a := range g.adj {
		for _, e := range a {
			if e.Directed {
				directed = true
			}
		}
	}

	bw := bufio.NewWriter(w)
	if directed {
		bw.WriteString("digraph G {\n")
	} else {
		bw.WriteString("graph G {\n")
	}
	bw.WriteString("  node [shape=circle];\n")
	for u := range g.adj {
		fmt.Fprintf(bw, "  %d", u)
		if d, ok := g.data[u]; ok && opts.Label != nil {
			fmt.Fprintf(bw, " [label=%s]", strconv.Quote(opts.Label(d)))
		}
		bw.WriteString(";\n")
	}
	for u, edges := range g.adj {
		for _, e := range edges {
			if !e.Directed && u > e.To {
				continue
			}
			var attrs []string
			arrow := " -- "
			if directed {
				arrow = " -> "
				if !e.Directed {
					attrs = append(attrs, "dir=none")
				}
			}
			if opts.ShowWeights {
				attrs = append(attrs, "label="+strconv.Quote(formatWeight(e.Weight)))
			}
			fmt.Fprintf(bw, "  %d%s%d", u, arrow, e.To)
			if len(attrs) > 0 {
				fmt.Fprintf(bw, " [%s]", strings.Join(attrs, ","))
			}
			bw.WriteString(";\n")
		}
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}
