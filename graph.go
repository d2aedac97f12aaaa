package pythonic

import (
	"errors"
	"fmt"
	"io"
	"sync"

	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/graph"
)

// Path is a route between two graph nodes. An unreachable target has no
// nodes and an infinite distance.
type Path = graph.Path

// SpanEdge is one edge of a minimum spanning tree.
type SpanEdge = graph.SpanEdge

// Graph is a weighted graph whose nodes may carry values. Graph payloads are
// shared between every Value holding them and are safe for concurrent use.
type Graph struct {
	mu sync.RWMutex
	g  *graph.Graph[Value]
}

// NewGraph returns a graph value with n nodes and no edges.
func NewGraph(n int) Value {
	return Value{tag: TagGraph, ref: &Graph{g: graph.New[Value](max(n, 0))}}
}

// LoadGraph reads a graph written by Save.
func LoadGraph(r io.Reader) (Value, error) {
	g, err := graph.Load[Value](r)
	if err != nil {
		if errors.Is(err, graph.ErrMalformed) {
			return Value{}, pyerrors.New(pyerrors.GraphError, "load", err.Error())
		}
		return Value{}, fmt.Errorf("load graph: %w", err)
	}
	return Value{tag: TagGraph, ref: &Graph{g: g}}, nil
}

func graphErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return pyerrors.New(pyerrors.GraphError, op, err.Error())
}

// Copy returns an independent graph value with the same structure and copies
// of the node data.
func (g *Graph) Copy() Value {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Value{tag: TagGraph, ref: &Graph{g: g.g.Clone(Value.Clone)}}
}

// AddNode appends a node and returns its id.
func (g *Graph) AddNode() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.g.AddNode()
}

// AddNodeWith appends a node carrying a copy of data.
func (g *Graph) AddNodeWith(data Value) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.g.AddNodeWith(data.Clone())
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.g.NodeCount()
}

// EdgeCount returns the number of adjacency entries; undirected edges count twice.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.g.EdgeCount()
}

// SetNodeData attaches a copy of data to node n.
func (g *Graph) SetNodeData(n int, data Value) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return graphErr("set_node_data", g.g.SetNodeData(n, data.Clone()))
}

// NodeData returns the data attached to node n, or None.
func (g *Graph) NodeData(n int) (Value, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if n < 0 || n >= g.g.NodeCount() {
		return Value{}, graphErr("node_data", graph.NodeError{Node: n})
	}
	if d, ok := g.g.NodeData(n); ok {
		return d, nil
	}
	return None(), nil
}

// AddEdge adds u -> v with weight w. Unless directed, it also adds v -> u
// with weight reverse, or w when reverse is NaN.
func (g *Graph) AddEdge(u, v int, w, reverse float64, directed bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return graphErr("add_edge", g.g.AddEdge(u, v, w, reverse, directed))
}

// RemoveEdge removes u -> v and, when removeReverse is set, the matching
// reverse entry of an undirected edge.
func (g *Graph) RemoveEdge(u, v int, removeReverse bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.g.RemoveEdge(u, v, removeReverse)
}

// HasEdge reports whether u -> v exists.
func (g *Graph) HasEdge(u, v int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.g.HasEdge(u, v)
}

// EdgeWeight returns the weight of u -> v.
func (g *Graph) EdgeWeight(u, v int) (float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	w, ok := g.g.EdgeWeight(u, v)
	if !ok {
		return 0, graphErr("edge_weight", graph.EdgeError{From: u, To: v})
	}
	return w, nil
}

// SetEdgeWeight changes the weight of u -> v.
func (g *Graph) SetEdgeWeight(u, v int, w float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return graphErr("set_edge_weight", g.g.SetEdgeWeight(u, v, w))
}

// Neighbors returns the targets of node n's edges.
func (g *Graph) Neighbors(n int) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out, err := g.g.Neighbors(n)
	return out, graphErr("neighbors", err)
}

// OutDegree returns the number of edges leaving n.
func (g *Graph) OutDegree(n int) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	d, err := g.g.OutDegree(n)
	return d, graphErr("out_degree", err)
}

// InDegree returns the number of edges arriving at n.
func (g *Graph) InDegree(n int) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	d, err := g.g.InDegree(n)
	return d, graphErr("in_degree", err)
}

// DFS returns the nodes reachable from start in depth-first order.
func (g *Graph) DFS(start int, recursive bool) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out, err := g.g.DFS(start, recursive)
	return out, graphErr("dfs", err)
}

// BFS returns the nodes reachable from start in breadth-first order.
func (g *Graph) BFS(start int) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out, err := g.g.BFS(start)
	return out, graphErr("bfs", err)
}

// ShortestPath returns a shortest route from src to dst. Unweighted graphs use
// breadth-first search, graphs with negative weights Bellman-Ford, and the
// rest Dijkstra.
func (g *Graph) ShortestPath(src, dst int) (Path, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, err := g.g.ShortestPath(src, dst)
	return p, graphErr("shortest_path", err)
}

// Dijkstra returns the distance from src to every node. Unreachable nodes
// are at +Inf.
func (g *Graph) Dijkstra(src int) ([]float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	dist, _, err := g.g.Dijkstra(src)
	return dist, graphErr("dijkstra", err)
}

// BellmanFord returns the distance from src to every node, failing with
// GraphError on a reachable negative cycle.
func (g *Graph) BellmanFord(src int) ([]float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	dist, _, err := g.g.BellmanFord(src)
	return dist, graphErr("bellman_ford", err)
}

// FloydWarshall returns the all-pairs distance matrix.
func (g *Graph) FloydWarshall() [][]float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.g.FloydWarshall()
}

// IsConnected reports whether every node is reachable from node 0.
func (g *Graph) IsConnected() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.g.IsConnected()
}

// HasCycle reports whether the graph contains a cycle.
func (g *Graph) HasCycle() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.g.HasCycle()
}

// TopologicalSort orders the nodes along directed edges, failing with
// GraphError when a cycle exists.
func (g *Graph) TopologicalSort() ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out, err := g.g.TopologicalSort()
	return out, graphErr("topological_sort", err)
}

// ConnectedComponents groups nodes by breadth-first reachability, in node order.
func (g *Graph) ConnectedComponents() [][]int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.g.ConnectedComponents()
}

// StronglyConnectedComponents groups nodes mutually reachable along edges.
func (g *Graph) StronglyConnectedComponents() [][]int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.g.StronglyConnectedComponents()
}

// MinimumSpanningTree returns the total weight and edges of a minimum
// spanning tree of the component containing node 0.
func (g *Graph) MinimumSpanningTree() (float64, []SpanEdge) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.g.MinimumSpanningTree()
}

// WriteDOT writes the graph in Graphviz DOT form, labelling nodes with the
// str of their data.
func (g *Graph) WriteDOT(w io.Writer, showWeights bool) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.g.WriteDOT(w, graph.DOTOptions[Value]{
		ShowWeights: showWeights,
		Label:       Value.String,
	})
}

// Save writes the graph structure in a line-oriented text form. Node data is
// not saved.
func (g *Graph) Save(w io.Writer) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if err := g.g.Save(w); err != nil {
		return fmt.Errorf("save graph: %w", err)
	}
	return nil
}
