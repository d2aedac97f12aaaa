package graph

import (
	"fmt"
	"strings"
)

type visitState uint8

const (
	stateVisiting visitState = iota + 1
	stateDone
)

// CycleError reports a directed cycle. Path starts and ends at the same node.
type CycleError[K comparable] struct {
	Path []K
}

// Error returns the error string.
func (e CycleError[K]) Error() string {
	if len(e.Path) == 0 {
		return "cycle detected"
	}
	parts := make([]string, len(e.Path))
	for i, k := range e.Path {
		parts[i] = fmt.Sprint(k)
	}
	return "cycle detected: " + strings.Join(parts, " -> ")
}

// Walk configures directed cycle detection.
type Walk[K comparable] struct {
	Next   func(K) []K
	Starts []K
}

// FindCycle walks directed edges from Starts and returns the first cycle it
// meets as a CycleError, or nil.
func FindCycle[K comparable](w Walk[K]) error {
	if w.Next == nil {
		return fmt.Errorf("cycle detect: next function is nil")
	}
	states := make(map[K]visitState, len(w.Starts))
	var stack []K

	var visit func(key K) error
	visit = func(key K) error {
		switch states[key] {
		case stateVisiting:
			start := len(stack) - 1
			for start > 0 && stack[start] != key {
				start--
			}
			path := append([]K(nil), stack[start:]...)
			return CycleError[K]{Path: append(path, key)}
		case stateDone:
			return nil
		}

		states[key] = stateVisiting
		stack = append(stack, key)
		for _, next := range w.Next(key) {
			if err := visit(next); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		states[key] = stateDone
		return nil
	}

	for _, start := range w.Starts {
		if err := visit(start); err != nil {
			return err
		}
	}
	return nil
}

// HasCycle reports whether the graph contains a cycle. Undirected edges do
// not form a cycle with their own reverse entry.
func (g *Graph[T]) HasCycle() bool {
	color := make([]visitState, len(g.adj))
	var dfs func(u, parent int) bool
	dfs = func(u, parent int) bool {
		color[u] = stateVisiting
		skippedParent := false
		for _, e := range g.adj[u] {
			switch color[e.To] {
			case stateVisiting:
				if !e.Directed && e.To == parent && !skippedParent {
					skippedParent = true
					continue
				}
				return true
			case 0:
				if dfs(e.To, u) {
					return true
				}
			}
		}
		color[u] = stateDone
		return false
	}
	for i := range g.adj {
		if color[i] == 0 && dfs(i, -1) {
			return true
		}
	}
	return false
}

// TopologicalSort orders nodes so that every directed edge points forward.
// Undirected edges impose no order. A directed cycle yields a CycleError.
func (g *Graph[T]) TopologicalSort() ([]int, error) {
	n := len(g.adj)
	inDegree := make([]int, n)
	for u := range g.adj {
		for _, e := range g.adj[u] {
			if e.Directed {
				inDegree[e.To]++
			}
		}
	}
	queue := make([]int, 0, n)
	for i, d := range inDegree {
		if d == 0 {
			queue = append(queue, i)
		}
	}
	order := make([]int, 0, n)
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		order = append(order, u)
		for _, e := range g.adj[u] {
			if !e.Directed {
				continue
			}
			inDegree[e.To]--
			if inDegree[e.To] == 0 {
				queue = append(queue, e.To)
			}
		}
	}
	if len(order) == n {
		return order, nil
	}

	starts := make([]int, 0, n-len(order))
	for i, d := range inDegree {
		if d > 0 {
			starts = append(starts, i)
		}
	}
	err := FindCycle(Walk[int]{Starts: starts, Next: g.directedNext})
	if err == nil {
		err = CycleError[int]{}
	}
	return nil, err
}

func (g *Graph[T]) directedNext(u int) []int {
	var out []int
	for _, e := range g.adj[u] {
		if e.Directed {
			out = append(out, e.To)
		}
	}
	return out
}
