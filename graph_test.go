package pythonic_test

import (
	"bytes"
	"math"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/jacoelho/pythonic"
	pyerrors "github.com/jacoelho/pythonic/errors"
)

func mustGraph(t *testing.T, v pythonic.Value) *pythonic.Graph {
	t.Helper()
	g, err := v.AsGraph()
	if err != nil {
		t.Fatalf("AsGraph() error = %v", err)
	}
	return g
}

func TestGraphPayloadIsShared(t *testing.T) {
	v := pythonic.NewGraph(2)
	alias := v.Clone()
	if err := mustGraph(t, alias).AddEdge(0, 1, 1, math.NaN(), true); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if !mustGraph(t, v).HasEdge(0, 1) {
		t.Fatalf("Clone() of a graph copied the payload")
	}
	if !pythonic.Equal(v, alias) {
		t.Fatalf("graph not equal to its alias")
	}

	cp := mustGraph(t, v).Copy()
	if err := mustGraph(t, cp).AddEdge(1, 0, 1, math.NaN(), true); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if mustGraph(t, v).HasEdge(1, 0) {
		t.Fatalf("Copy() shares the payload")
	}
	if pythonic.Equal(v, cp) {
		t.Fatalf("distinct graphs compare equal")
	}
}

func TestGraphNodeData(t *testing.T) {
	g := mustGraph(t, pythonic.NewGraph(1))
	data := mustLiteral(t, "{'name': 'a'}")
	id := g.AddNodeWith(data)
	if id != 1 {
		t.Fatalf("AddNodeWith() = %d, want 1", id)
	}
	if err := data.SetItem(pythonic.Str("name"), pythonic.Str("changed")); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	got, err := g.NodeData(1)
	if err != nil {
		t.Fatalf("NodeData() error = %v", err)
	}
	if want := mustLiteral(t, "{'name': 'a'}"); !pythonic.Equal(got, want) {
		t.Fatalf("NodeData() = %s, want %s", got.Repr(), want.Repr())
	}
	if got, _ := g.NodeData(0); !got.IsNone() {
		t.Fatalf("NodeData(0) = %s, want None", got.Repr())
	}
	if _, err := g.NodeData(5); !pyerrors.IsKind(err, pyerrors.GraphError) {
		t.Fatalf("NodeData(5) error = %v, want graph error", err)
	}
	if err := g.SetNodeData(-1, pythonic.None()); !pyerrors.IsKind(err, pyerrors.GraphError) {
		t.Fatalf("SetNodeData(-1) error = %v, want graph error", err)
	}
}

func TestGraphEdges(t *testing.T) {
	g := mustGraph(t, pythonic.NewGraph(3))
	if err := g.AddEdge(0, 1, 2, 5, false); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if w, err := g.EdgeWeight(1, 0); err != nil || w != 5 {
		t.Fatalf("EdgeWeight(1, 0) = %v, %v, want 5", w, err)
	}
	if g.EdgeCount() != 2 {
		t.Fatalf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if err := g.SetEdgeWeight(0, 1, 3); err != nil {
		t.Fatalf("SetEdgeWeight() error = %v", err)
	}
	if err := g.SetEdgeWeight(0, 2, 3); !pyerrors.IsKind(err, pyerrors.GraphError) {
		t.Fatalf("SetEdgeWeight(missing) error = %v, want graph error", err)
	}
	if _, err := g.EdgeWeight(2, 0); !pyerrors.IsKind(err, pyerrors.GraphError) {
		t.Fatalf("EdgeWeight(missing) error = %v, want graph error", err)
	}
	if err := g.AddEdge(0, 9, 1, 1, true); !pyerrors.IsKind(err, pyerrors.GraphError) {
		t.Fatalf("AddEdge(invalid) error = %v, want graph error", err)
	}
	if in, _ := g.InDegree(0); in != 1 {
		t.Fatalf("InDegree(0) = %d, want 1", in)
	}
	if !g.RemoveEdge(0, 1, true) || g.EdgeCount() != 0 {
		t.Fatalf("RemoveEdge() left %d entries", g.EdgeCount())
	}
	if g.RemoveEdge(0, 1, true) {
		t.Fatalf("RemoveEdge() of a missing edge = true")
	}
}

func TestGraphShortestPath(t *testing.T) {
	g := mustGraph(t, pythonic.NewGraph(4))
	for _, e := range []struct {
		u, v int
		w    float64
	}{{0, 1, 4}, {0, 2, 1}, {2, 1, 1}, {1, 3, 1}} {
		if err := g.AddEdge(e.u, e.v, e.w, math.NaN(), true); err != nil {
			t.Fatalf("AddEdge() error = %v", err)
		}
	}
	p, err := g.ShortestPath(0, 3)
	if err != nil {
		t.Fatalf("ShortestPath() error = %v", err)
	}
	if !slices.Equal(p.Nodes, []int{0, 2, 1, 3}) || p.Dist != 3 {
		t.Fatalf("ShortestPath() = %v, want [0 2 1 3] at 3", p)
	}
	back, _ := g.ShortestPath(3, 0)
	if len(back.Nodes) != 0 || !math.IsInf(back.Dist, 1) {
		t.Fatalf("ShortestPath(unreachable) = %v", back)
	}
	dist, err := g.Dijkstra(0)
	if err != nil || !slices.Equal(dist, []float64{0, 2, 1, 3}) {
		t.Fatalf("Dijkstra() = %v, %v", dist, err)
	}
	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("TopologicalSort() error = %v", err)
	}
	if order[0] != 0 || order[len(order)-1] != 3 {
		t.Fatalf("TopologicalSort() = %v", order)
	}

	if err := g.AddEdge(3, 0, 1, math.NaN(), true); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if !g.HasCycle() {
		t.Fatalf("HasCycle() = false after closing a cycle")
	}
	if _, err := g.TopologicalSort(); !pyerrors.IsKind(err, pyerrors.GraphError) {
		t.Fatalf("TopologicalSort(cycle) error = %v, want graph error", err)
	}
}

func TestGraphNegativeCycle(t *testing.T) {
	g := mustGraph(t, pythonic.NewGraph(2))
	if err := g.AddEdge(0, 1, 1, math.NaN(), true); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if err := g.AddEdge(1, 0, -3, math.NaN(), true); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if _, err := g.BellmanFord(0); !pyerrors.IsKind(err, pyerrors.GraphError) {
		t.Fatalf("BellmanFord() error = %v, want graph error", err)
	}
}

func TestGraphSaveLoad(t *testing.T) {
	g := mustGraph(t, pythonic.NewGraph(3))
	if err := g.AddEdge(0, 1, 2.5, math.NaN(), false); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if err := g.AddEdge(1, 2, 1, math.NaN(), true); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	var buf bytes.Buffer
	if err := g.Save(&buf); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := pythonic.LoadGraph(&buf)
	if err != nil {
		t.Fatalf("LoadGraph() error = %v", err)
	}
	lg := mustGraph(t, loaded)
	if lg.NodeCount() != 3 || lg.EdgeCount() != g.EdgeCount() {
		t.Fatalf("loaded graph has %d nodes and %d edges", lg.NodeCount(), lg.EdgeCount())
	}
	if w, _ := lg.EdgeWeight(1, 0); w != 2.5 {
		t.Fatalf("loaded reverse weight = %v, want 2.5", w)
	}
	if lg.HasEdge(2, 1) {
		t.Fatalf("directed edge loaded as undirected")
	}

	if _, err := pythonic.LoadGraph(strings.NewReader("2\n0 5 1 1\n")); !pyerrors.IsKind(err, pyerrors.GraphError) {
		t.Fatalf("LoadGraph(bad edge) error = %v, want graph error", err)
	}
}

func TestGraphWriteDOT(t *testing.T) {
	v := pythonic.NewGraph(0)
	g := mustGraph(t, v)
	a := g.AddNodeWith(pythonic.Str("start"))
	b := g.AddNode()
	if err := g.AddEdge(a, b, 1.5, math.NaN(), true); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	var buf bytes.Buffer
	if err := g.WriteDOT(&buf, true); err != nil {
		t.Fatalf("WriteDOT() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"digraph", "start", "1.5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("WriteDOT() = %q, missing %q", out, want)
		}
	}
}

func TestGraphConcurrentUse(t *testing.T) {
	v := pythonic.NewGraph(1)
	var wg sync.WaitGroup
	for range 8 {
		g := mustGraph(t, v.Clone())
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				n := g.AddNode()
				if err := g.AddEdge(0, n, 1, math.NaN(), true); err != nil {
					t.Errorf("AddEdge() error = %v", err)
					return
				}
				g.BFS(0)
			}
		}()
	}
	wg.Wait()
	if got := mustGraph(t, v).NodeCount(); got != 401 {
		t.Fatalf("NodeCount() = %d, want 401", got)
	}
}
