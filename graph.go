package embednet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/emirpasic/gods/sets/hashset"
	"golang.org/x/sync/errgroup"
)

// Edge connects the words with indices From and To.
type Edge struct {
	From int
	To   int
}

// GraphOptions configures BuildGraph.
type GraphOptions struct {
	Options

	// Undirected stores every pair once, as (min, max).
	Undirected bool

	// NoSelfLoops skips pairs of a word with itself.
	NoSelfLoops bool
}

// Graph is a similarity graph over the words of a table.
type Graph struct {
	words []string
	edges *hashset.Set
}

// BuildGraph connects every pair of words with a cosine distance at or
// above threshold. By default pairs are ordered, so that (i, j) and (j, i)
// are separate edges, and pairs of a word with itself are considered.
func BuildGraph(ctx context.Context, emb *Embeddings, threshold float64, opts GraphOptions) (*Graph, error) {
	if math.IsNaN(threshold) {
		return nil, fmt.Errorf("threshold is NaN")
	}

	space, err := newPairSpace(emb, opts.Order, opts.ZeroVectors)
	if err != nil {
		return nil, err
	}

	n := space.len()
	opts.Progress.Start(pairCount(n, opts.Undirected, opts.NoSelfLoops))

	rowEdges := make([][]Edge, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rowEdges[i] = space.edges(i, threshold, opts)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	graph := &Graph{
		words: space.words,
		edges: hashset.New(),
	}

	for _, edges := range rowEdges {
		for _, edge := range edges {
			if !graph.edges.Contains(edge) {
				graph.edges.Add(edge)
			}
		}
	}

	opts.Progress.Finish()

	return graph, nil
}

// edges evaluates the pairs of row i. In undirected mode, the pair (i, j)
// with j < i canonicalizes to (j, i), which row j evaluates, so only j >= i
// is visited.
func (s *pairSpace) edges(i int, threshold float64, opts GraphOptions) []Edge {
	var edges []Edge

	start := 0
	if opts.Undirected {
		start = i
	}

	for j := start; j < s.len(); j++ {
		if i == j && opts.NoSelfLoops {
			continue
		}

		if s.distance(i, j) >= threshold {
			edges = append(edges, Edge{From: i, To: j})
		}
	}

	evaluated := s.len() - start
	if opts.NoSelfLoops {
		evaluated--
	}
	opts.Progress.Add(int64(evaluated))

	return edges
}

func pairCount(n int, undirected, noSelfLoops bool) int64 {
	total := int64(n) * int64(n)
	if undirected {
		total = int64(n) * int64(n+1) / 2
	}

	if noSelfLoops {
		total -= int64(n)
	}

	return total
}

// Words returns the index-to-word mapping of the graph.
func (g *Graph) Words() []string {
	return g.words
}

// Len returns the number of edges.
func (g *Graph) Len() int {
	return g.edges.Size()
}

func (g *Graph) Contains(from, to int) bool {
	return g.edges.Contains(Edge{From: from, To: to})
}

// Edges returns the edges in unspecified order.
func (g *Graph) Edges() []Edge {
	values := g.edges.Values()

	edges := make([]Edge, len(values))
	for idx, val := range values {
		edges[idx] = val.(Edge)
	}

	return edges
}

// SortedEdges returns the edges ordered by (From, To).
func (g *Graph) SortedEdges() []Edge {
	edges := g.Edges()
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})

	return edges
}

// WriteGraph writes one edge per line as the tab-separated words of the
// edge. Edges are in unspecified order unless sorted is true.
func WriteGraph(w io.Writer, g *Graph, sorted bool) error {
	edges := g.Edges()
	if sorted {
		edges = g.SortedEdges()
	}

	bw := bufio.NewWriter(w)
	for _, edge := range edges {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", g.words[edge.From], g.words[edge.To]); err != nil {
			return fmt.Errorf("writing graph: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing graph: %w", err)
	}

	return nil
}
