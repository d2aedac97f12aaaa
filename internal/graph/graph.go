// Package graph implements an adjacency-list graph with integer node ids,
// optional per-node data, and weighted edges that are either directed or
// stored in both directions.
package graph

import (
	"fmt"
	"math"
	"slices"
)

// Edge is one adjacency entry.
type Edge struct {
	To       int
	Weight   float64
	Directed bool
}

// NodeError reports an id outside the graph.
type NodeError struct {
	Node int
}

// Error returns the error string.
func (e NodeError) Error() string {
	return fmt.Sprintf("invalid node %d", e.Node)
}

// EdgeError reports a missing edge.
type EdgeError struct {
	From, To int
}

// Error returns the error string.
func (e EdgeError) Error() string {
	return fmt.Sprintf("edge %d -> %d not found", e.From, e.To)
}

// Graph holds nodes 0..NodeCount()-1.
type Graph[T any] struct {
	adj      [][]Edge
	data     map[int]T
	nonZero  int
	negative int
}

// New returns a graph with n nodes and no edges.
func New[T any](n int) *Graph[T] {
	return &Graph[T]{
		adj:  make([][]Edge, n),
		data: make(map[int]T),
	}
}

func (g *Graph[T]) valid(n int) bool {
	return n >= 0 && n < len(g.adj)
}

func (g *Graph[T]) check(nodes ...int) error {
	for _, n := range nodes {
		if !g.valid(n) {
			return NodeError{Node: n}
		}
	}
	return nil
}

// AddNode appends a node and returns its id.
func (g *Graph[T]) AddNode() int {
	g.adj = append(g.adj, nil)
	return len(g.adj) - 1
}

// AddNodeWith appends a node carrying data.
func (g *Graph[T]) AddNodeWith(data T) int {
	id := g.AddNode()
	g.data[id] = data
	return id
}

// NodeCount returns the number of nodes.
func (g *Graph[T]) NodeCount() int {
	return len(g.adj)
}

// EdgeCount returns the number of adjacency entries. An undirected edge
// counts twice.
func (g *Graph[T]) EdgeCount() int {
	n := 0
	for _, a := range g.adj {
		n += len(a)
	}
	return n
}

// Weighted reports whether any edge has a non-zero weight.
func (g *Graph[T]) Weighted() bool {
	return g.nonZero > 0
}

// HasNegativeWeight reports whether any edge has a negative weight.
func (g *Graph[T]) HasNegativeWeight() bool {
	return g.negative > 0
}

// SetNodeData attaches data to node n.
func (g *Graph[T]) SetNodeData(n int, data T) error {
	if err := g.check(n); err != nil {
		return err
	}
	g.data[n] = data
	return nil
}

// NodeData returns the data attached to n.
func (g *Graph[T]) NodeData(n int) (T, bool) {
	d, ok := g.data[n]
	return d, ok
}

// Neighbors returns the targets of n's adjacency entries in insertion order.
func (g *Graph[T]) Neighbors(n int) ([]int, error) {
	if err := g.check(n); err != nil {
		return nil, err
	}
	out := make([]int, len(g.adj[n]))
	for i, e := range g.adj[n] {
		out[i] = e.To
	}
	return out, nil
}

// Edges returns a copy of n's adjacency entries.
func (g *Graph[T]) Edges(n int) ([]Edge, error) {
	if err := g.check(n); err != nil {
		return nil, err
	}
	return slices.Clone(g.adj[n]), nil
}

func (g *Graph[T]) count(w float64, delta int) {
	if w == 0 {
		return
	}
	g.nonZero += delta
	if w < 0 {
		g.negative += delta
	}
}

// AddEdge adds u -> v with weight w. Unless directed, it also adds v -> u
// with weight reverse, or w when reverse is NaN.
func (g *Graph[T]) AddEdge(u, v int, w, reverse float64, directed bool) error {
	if err := g.check(u, v); err != nil {
		return err
	}
	g.adj[u] = append(g.adj[u], Edge{To: v, Weight: w, Directed: directed})
	g.count(w, 1)
	if !directed {
		if math.IsNaN(reverse) {
			reverse = w
		}
		g.adj[v] = append(g.adj[v], Edge{To: u, Weight: reverse})
		g.count(reverse, 1)
	}
	return nil
}

// RemoveEdge removes the first u -> v entry. For an undirected edge it also
// removes the matching v -> u entry when removeReverse is set.
func (g *Graph[T]) RemoveEdge(u, v int, removeReverse bool) bool {
	if !g.valid(u) || !g.valid(v) {
		return false
	}
	i := slices.IndexFunc(g.adj[u], func(e Edge) bool { return e.To == v })
	if i < 0 {
		return false
	}
	e := g.adj[u][i]
	g.count(e.Weight, -1)
	g.adj[u] = slices.Delete(g.adj[u], i, i+1)
	if removeReverse && !e.Directed {
		j := slices.IndexFunc(g.adj[v], func(r Edge) bool { return r.To == u && !r.Directed })
		if j >= 0 {
			g.count(g.adj[v][j].Weight, -1)
			g.adj[v] = slices.Delete(g.adj[v], j, j+1)
		}
	}
	return true
}

// HasEdge reports whether u -> v exists.
func (g *Graph[T]) HasEdge(u, v int) bool {
	_, ok := g.EdgeWeight(u, v)
	return ok
}

// EdgeWeight returns the weight of the first u -> v entry.
func (g *Graph[T]) EdgeWeight(u, v int) (float64, bool) {
	if !g.valid(u) || !g.valid(v) {
		return 0, false
	}
	for _, e := range g.adj[u] {
		if e.To == v {
			return e.Weight, true
		}
	}
	return 0, false
}

// SetEdgeWeight changes the weight of the first u -> v entry.
func (g *Graph[T]) SetEdgeWeight(u, v int, w float64) error {
	if err := g.check(u, v); err != nil {
		return err
	}
	for i := range g.adj[u] {
		e := &g.adj[u][i]
		if e.To == v {
			g.count(e.Weight, -1)
			e.Weight = w
			g.count(w, 1)
			return nil
		}
	}
	return EdgeError{From: u, To: v}
}

// OutDegree returns the number of entries leaving n.
func (g *Graph[T]) OutDegree(n int) (int, error) {
	if err := g.check(n); err != nil {
		return 0, err
	}
	return len(g.adj[n]), nil
}

// InDegree returns the number of entries arriving at n.
func (g *Graph[T]) InDegree(n int) (int, error) {
	if err := g.check(n); err != nil {
		return 0, err
	}
	count := 0
	for _, a := range g.adj {
		for _, e := range a {
			if e.To == n {
				count++
			}
		}
	}
	return count, nil
}

// Clone returns a deep copy with data passed through cp.
func (g *Graph[T]) Clone(cp func(T) T) *Graph[T] {
	out := &Graph[T]{
		adj:      make([][]Edge, len(g.adj)),
		data:     make(map[int]T, len(g.data)),
		nonZero:  g.nonZero,
		negative: g.negative,
	}
	for i, a := range g.adj {
		out.adj[i] = slices.Clone(a)
	}
	for k, v := range g.data {
		out.data[k] = cp(v)
	}
	return out
}
