package vectorindex

import (
	"fmt"
	"math"
	"sort"
)

// Index is a flat in-memory nearest-neighbor index over one request's segment
// pool. Position i maps vector i back to text i. Built from scratch per
// request and thrown away with it; there is deliberately no persistence and
// no incremental update.
type Index struct {
	dimension int
	vectors   [][]float32
	texts     []string
}

// Match is one retrieved segment with its Euclidean distance to the query.
type Match struct {
	Text     string
	Distance float32
}

// Build pairs segment texts with their embeddings. The dimension is inferred
// from the first vector; empty input builds an empty index.
func Build(texts []string, vectors [][]float32) (*Index, error) {
	if len(texts) != len(vectors) {
		return nil, fmt.Errorf("mismatch: got %d texts but %d vectors", len(texts), len(vectors))
	}

	ix := &Index{texts: texts, vectors: vectors}
	if len(vectors) > 0 {
		ix.dimension = len(vectors[0])
	}
	for i, v := range vectors {
		if len(v) != ix.dimension {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), ix.dimension)
		}
	}
	return ix, nil
}

func (ix *Index) Len() int { return len(ix.texts) }

func (ix *Index) Dimension() int { return ix.dimension }

// Search returns the k nearest segment texts by ascending L2 distance. Fewer
// than k entries returns everything; distance ties keep index order.
func (ix *Index) Search(query []float32, k int) []Match {
	matches := make([]Match, 0, len(ix.vectors))
	for i, v := range ix.vectors {
		matches = append(matches, Match{
			Text:     ix.texts[i],
			Distance: l2Distance(query, v),
		})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Distance < matches[b].Distance
	})

	if k > len(matches) {
		k = len(matches)
	}
	if k < 0 {
		k = 0
	}
	return matches[:k]
}

func l2Distance(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum))
}
