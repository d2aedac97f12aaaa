package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Save writes the node count followed by one "from to weight directed" line
// per edge. Undirected edges are written once.
func (g *Graph[T]) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(g.adj))
	for u, edges := range g.adj {
		for _, e := range edges {
			if !e.Directed && u > e.To {
				continue
			}
			d := 0
			if e.Directed {
				d = 1
			}
			fmt.Fprintf(bw, "%d %d %s %d\n", u, e.To, formatWeight(e.Weight), d)
		}
	}
	return bw.Flush()
}

// ErrMalformed reports unreadable graph text.
var ErrMalformed = errors.New("malformed graph text")

// Load reads a graph written by Save. Node data is not persisted.
func Load[T any](r io.Reader) (*Graph[T], error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}

	tok, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read graph: %w", err)
		}
		return nil, fmt.Errorf("%w: missing node count", ErrMalformed)
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: node count %q", ErrMalformed, tok)
	}
	g := New[T](n)
	for {
		fields := make([]string, 0, 4)
		for range 4 {
			tok, ok := next()
			if !ok {
				break
			}
			fields = append(fields, tok)
		}
		if len(fields) == 0 {
			break
		}
		if len(fields) < 4 {
			return nil, fmt.Errorf("%w: truncated edge %v", ErrMalformed, fields)
		}
		from, err1 := strconv.Atoi(fields[0])
		to, err2 := strconv.Atoi(fields[1])
		weight, err3 := strconv.ParseFloat(fields[2], 64)
		if err := errors.Join(err1, err2, err3); err != nil {
			return nil, fmt.Errorf("%w: edge %v: %w", ErrMalformed, fields, err)
		}
		if err := g.AddEdge(from, to, weight, weight, fields[3] == "1"); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read graph: %w", err)
	}
	return g, nil
}
