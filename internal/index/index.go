// Package index provides exact cosine nearest-neighbour search over the fitted
// recipe vectors. Row numbers are positions in the recipe table.
package index

import (
	"container/heap"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/recipedex/internal/textvec"
)

// DefaultNeighbors is the neighbour count used when a query does not set one.
const DefaultNeighbors = 5

// MetricCosine is the only supported distance metric.
const MetricCosine = "cosine"

// ErrEmptyIndex is returned when fitting over no vectors.
var ErrEmptyIndex = errors.New("index: no vectors to fit")

// Neighbor is a single nearest-neighbour hit.
type Neighbor struct {
	Row      int
	Distance float64
}

// Index is a brute-force cosine index. It is immutable after Fit and safe for concurrent use.
type Index struct {
	vectors   []textvec.Vector
	norms     []float64
	dim       int
	neighbors int
}

// Fit builds an index over vectors of dimensionality dim.
// neighbors <= 0 selects DefaultNeighbors.
func Fit(vectors []textvec.Vector, dim, neighbors int) (*Index, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyIndex
	}
	for row, v := range vectors {
		for _, i := range v.Indices {
			if i < 0 || i >= dim {
				return nil, fmt.Errorf("index: row %d has component %d outside dimension %d", row, i, dim)
			}
		}
	}
	if neighbors <= 0 {
		neighbors = DefaultNeighbors
	}
	norms := make([]float64, len(vectors))
	for i, v := range vectors {
		norms[i] = v.Norm()
	}
	return &Index{vectors: vectors, norms: norms, dim: dim, neighbors: neighbors}, nil
}

// Len returns the number of indexed rows.
func (idx *Index) Len() int { return len(idx.vectors) }

// Dim returns the vector dimensionality.
func (idx *Index) Dim() int { return idx.dim }

// Neighbors returns the default neighbour count.
func (idx *Index) Neighbors() int { return idx.neighbors }

// Search returns up to k nearest rows in ascending distance; ties keep row order.
// k <= 0 selects the default neighbour count; k larger than the index is clamped.
func (idx *Index) Search(query textvec.Vector, k int) []Neighbor {
	if k <= 0 {
		k = idx.neighbors
	}
	if k > len(idx.vectors) {
		k = len(idx.vectors)
	}

	qNorm := query.Norm()
	h := &neighborHeap{}
	for row, v := range idx.vectors {
		n := Neighbor{Row: row, Distance: cosineDistance(query, qNorm, v, idx.norms[row])}
		if h.Len() < k {
			heap.Push(h, n)
		} else if closer(n, (*h)[0]) {
			(*h)[0] = n
			heap.Fix(h, 0)
		}
	}

	out := make([]Neighbor, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(Neighbor)
	}
	return out
}

// cosineDistance is 1 - cosine similarity clipped to [0, 2].
// A zero vector on either side has similarity 0.
func cosineDistance(a textvec.Vector, aNorm float64, b textvec.Vector, bNorm float64) float64 {
	var sim float64
	if aNorm != 0 && bNorm != 0 {
		sim = a.Dot(b) / (aNorm * bNorm)
	}
	d := 1 - sim
	switch {
	case d < 0:
		return 0
	case d > 2:
		return 2
	}
	return d
}

// closer orders neighbours by distance, then by row.
func closer(a, b Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Row < b.Row
}

// neighborHeap is a max-heap: the root is the farthest kept neighbour.
type neighborHeap []Neighbor

func (h neighborHeap) Len() int           { return len(h) }
func (h neighborHeap) Less(i, j int) bool { return closer(h[j], h[i]) }
func (h neighborHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *neighborHeap) Push(x any) { *h = append(*h, x.(Neighbor)) }

func (h *neighborHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

type indexJSON struct {
	Metric    string           `json:"metric"`
	Dim       int              `json:"dim"`
	Neighbors int              `json:"n_neighbors"`
	Vectors   []textvec.Vector `json:"vectors"`
}

// MarshalJSON implements json.Marshaler.
func (idx *Index) MarshalJSON() ([]byte, error) {
	return json.Marshal(indexJSON{
		Metric:    MetricCosine,
		Dim:       idx.dim,
		Neighbors: idx.neighbors,
		Vectors:   idx.vectors,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (idx *Index) UnmarshalJSON(data []byte) error {
	var dto indexJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return fmt.Errorf("decode index: %w", err)
	}
	if dto.Metric != MetricCosine {
		return fmt.Errorf("decode index: unsupported metric %q", dto.Metric)
	}
	fitted, err := Fit(dto.Vectors, dto.Dim, dto.Neighbors)
	if err != nil {
		return fmt.Errorf("decode index: %w", err)
	}
	*idx = *fitted
	return nil
}
