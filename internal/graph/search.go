package graph

import (
	"container/heap"
	"errors"
	"math"
	"slices"
)

// ErrNegativeCycle reports a negative-weight cycle reachable from the source.
var ErrNegativeCycle = errors.New("graph contains a negative cycle")

// Path is a route between two nodes. An unreachable target has no nodes and
// an infinite distance.
type Path struct {
	Nodes []int
	Dist  float64
}

// DFS returns nodes in depth-first preorder from start. The iterative walk
// visits neighbours in reverse adjacency order, like a stack-based search.
func (g *Graph[T]) DFS(start int, recursive bool) ([]int, error) {
	if err := g.check(start); err != nil {
		return nil, err
	}
	visited := make([]bool, len(g.adj))
	var order []int
	if recursive {
		var visit func(u int)
		visit = func(u int) {
			visited[u] = true
			order = append(order, u)
			for _, e := range g.adj[u] {
				if !visited[e.To] {
					visit(e.To)
				}
			}
		}
		visit(start)
		return order, nil
	}

	stack := []int{start}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[u] {
			continue
		}
		visited[u] = true
		order = append(order, u)
		for _, e := range slices.Backward(g.adj[u]) {
			if !visited[e.To] {
				stack = append(stack, e.To)
			}
		}
	}
	return order, nil
}

// BFS returns nodes in breadth-first order from start.
func (g *Graph[T]) BFS(start int) ([]int, error) {
	if err := g.check(start); err != nil {
		return nil, err
	}
	visited := make([]bool, len(g.adj))
	visited[start] = true
	queue := []int{start}
	order := make([]int, 0, len(g.adj))
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		order = append(order, u)
		for _, e := range g.adj[u] {
			if !visited[e.To] {
				visited[e.To] = true
				queue = append(queue, e.To)
			}
		}
	}
	return order, nil
}

// ShortestPath picks breadth-first search for unweighted graphs, Bellman-Ford
// when any weight is negative, and Dijkstra otherwise.
func (g *Graph[T]) ShortestPath(src, dst int) (Path, error) {
	if err := g.check(src, dst); err != nil {
		return Path{}, err
	}
	if !g.Weighted() {
		return g.bfsPath(src, dst), nil
	}
	var (
		dist []float64
		prev []int
		err  error
	)
	if g.HasNegativeWeight() {
		dist, prev, err = g.BellmanFord(src)
	} else {
		dist, prev, err = g.Dijkstra(src)
	}
	if err != nil {
		return Path{}, err
	}
	if math.IsInf(dist[dst], 1) {
		return Path{Dist: math.Inf(1)}, nil
	}
	return Path{Nodes: reconstruct(src, dst, prev), Dist: dist[dst]}, nil
}

func (g *Graph[T]) bfsPath(src, dst int) Path {
	parent := make([]int, len(g.adj))
	for i := range parent {
		parent[i] = -1
	}
	visited := make([]bool, len(g.adj))
	visited[src] = true
	queue := []int{src}
	for len(queue) > 0 && !visited[dst] {
		u := queue[0]
		queue = queue[1:]
		for _, e := range g.adj[u] {
			if !visited[e.To] {
				visited[e.To] = true
				parent[e.To] = u
				queue = append(queue, e.To)
			}
		}
	}
	if !visited[dst] {
		return Path{Dist: math.Inf(1)}
	}
	nodes := reconstruct(src, dst, parent)
	return Path{Nodes: nodes, Dist: float64(len(nodes) - 1)}
}

func reconstruct(src, dst int, prev []int) []int {
	var path []int
	for v := dst; v != -1; v = prev[v] {
		path = append(path, v)
		if v == src {
			break
		}
	}
	slices.Reverse(path)
	if len(path) == 0 || path[0] != src {
		return nil
	}
	return path
}

type distNode struct {
	dist float64
	node int
}

type minHeap []distNode

func (h minHeap) Len() int { return len(h) }
func (h minHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].node < h[j].node
}
func (h minHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)   { *h = append(*h, x.(distNode)) }
func (h *minHeap) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

func (g *Graph[T]) initDist(src int) ([]float64, []int) {
	dist := make([]float64, len(g.adj))
	prev := make([]int, len(g.adj))
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[src] = 0
	return dist, prev
}

// Dijkstra returns single-source distances and predecessors. Weights are
// assumed non-negative.
func (g *Graph[T]) Dijkstra(src int) ([]float64, []int, error) {
	if err := g.check(src); err != nil {
		return nil, nil, err
	}
	dist, prev := g.initDist(src)
	pq := &minHeap{{dist: 0, node: src}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(distNode)
		if cur.dist > dist[cur.node] {
			continue
		}
		for _, e := range g.adj[cur.node] {
			nd := cur.dist + e.Weight
			if nd < dist[e.To] {
				dist[e.To] = nd
				prev[e.To] = cur.node
				heap.Push(pq, distNode{dist: nd, node: e.To})
			}
		}
	}
	return dist, prev, nil
}

// BellmanFord returns single-source distances and predecessors, or
// ErrNegativeCycle.
func (g *Graph[T]) BellmanFord(src int) ([]float64, []int, error) {
	if err := g.check(src); err != nil {
		return nil, nil, err
	}
	dist, prev := g.initDist(src)
	relax := func() bool {
		changed := false
		for u, edges := range g.adj {
			if math.IsInf(dist[u], 1) {
				continue
			}
			for _, e := range edges {
				if nd := dist[u] + e.Weight; nd < dist[e.To] {
					dist[e.To] = nd
					prev[e.To] = u
					changed = true
				}
			}
		}
		return changed
	}
	for range len(g.adj) - 1 {
		if !relax() {
			break
		}
	}
	for u, edges := range g.adj {
		if math.IsInf(dist[u], 1) {
			continue
		}
		for _, e := range edges {
			if dist[u]+e.Weight < dist[e.To] {
				return nil, nil, ErrNegativeCycle
			}
		}
	}
	return dist, prev, nil
}

// FloydWarshall returns the all-pairs distance matrix. Unreachable pairs hold
// +Inf.
func (g *Graph[T]) FloydWarshall() [][]float64 {
	n := len(g.adj)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			dist[i][j] = math.Inf(1)
		}
		dist[i][i] = 0
	}
	for u, edges := range g.adj {
		for _, e := range edges {
			dist[u][e.To] = min(dist[u][e.To], e.Weight)
		}
	}
	for k := range n {
		for i := range n {
			if math.IsInf(dist[i][k], 1) {
				continue
			}
			for j := range n {
				if math.IsInf(dist[k][j], 1) {
					continue
				}
				if through := dist[i][k] + dist[k][j]; through < dist[i][j] {
					dist[i][j] = through
				}
			}
		}
	}
	return dist
}

// ConnectedComponents groups nodes reachable from each other by following
// adjacency entries, discovering components in node order.
func (g *Graph[T]) ConnectedComponents() [][]int {
	visited := make([]bool, len(g.adj))
	var comps [][]int
	for i := range g.adj {
		if visited[i] {
			continue
		}
		visited[i] = true
		comp := []int{}
		queue := []int{i}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			comp = append(comp, u)
			for _, e := range g.adj[u] {
				if !visited[e.To] {
					visited[e.To] = true
					queue = append(queue, e.To)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// IsConnected reports whether every node is reachable from node 0.
func (g *Graph[T]) IsConnected() bool {
	if len(g.adj) == 0 {
		return true
	}
	order, _ := g.BFS(0)
	return len(order) == len(g.adj)
}

// StronglyConnectedComponents runs Kosaraju's algorithm.
func (g *Graph[T]) StronglyConnectedComponents() [][]int {
	n := len(g.adj)
	visited := make([]bool, n)
	finish := make([]int, 0, n)
	var dfs1 func(u int)
	dfs1 = func(u int) {
		visited[u] = true
		for _, e := range g.adj[u] {
			if !visited[e.To] {
				dfs1(e.To)
			}
		}
		finish = append(finish, u)
	}
	for i := range n {
		if !visited[i] {
			dfs1(i)
		}
	}

	transpose := make([][]int, n)
	for u, edges := range g.adj {
		for _, e := range edges {
			transpose[e.To] = append(transpose[e.To], u)
		}
	}

	clear(visited)
	var sccs [][]int
	var dfs2 func(u int, comp []int) []int
	dfs2 = func(u int, comp []int) []int {
		visited[u] = true
		comp = append(comp, u)
		for _, v := range transpose[u] {
			if !visited[v] {
				comp = dfs2(v, comp)
			}
		}
		return comp
	}
	for _, u := range slices.Backward(finish) {
		if !visited[u] {
			sccs = append(sccs, dfs2(u, nil))
		}
	}
	return sccs
}

// SpanEdge is one edge of a spanning tree.
type SpanEdge struct {
	From, To int
	Weight   float64
}

// MinimumSpanningTree runs Prim's algorithm from node 0 and returns the total
// weight and the tree edges. Nodes unreachable from 0 are left out.
func (g *Graph[T]) MinimumSpanningTree() (float64, []SpanEdge) {
	n := len(g.adj)
	if n == 0 {
		return 0, nil
	}
	inTree := make([]bool, n)
	key := make([]float64, n)
	parent := make([]int, n)
	for i := range key {
		key[i] = math.Inf(1)
		parent[i] = -1
	}
	key[0] = 0
	pq := &minHeap{{dist: 0, node: 0}}
	total := 0.0
	var edges []SpanEdge
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(distNode)
		u := cur.node
		if inTree[u] {
			continue
		}
		inTree[u] = true
		total += cur.dist
		if parent[u] >= 0 {
			edges = append(edges, SpanEdge{From: parent[u], To: u, Weight: cur.dist})
		}
		for _, e := range g.adj[u] {
			if !inTree[e.To] && e.Weight < key[e.To] {
				key[e.To] = e.Weight
				parent[e.To] = u
				heap.Push(pq, distNode{dist: e.Weight, node: e.To})
			}
		}
	}
	return total, edges
}
