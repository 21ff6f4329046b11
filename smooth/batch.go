package smooth

import (
	"sync"

	"github.com/soypat/hemesh"
)

// DefaultWorkers is the fork-join width used by parallel drivers when
// the caller does not pick one.
const DefaultWorkers = 8

// batchVertices partitions the interior (non-boundary) vertices of m
// into workers batches of near-equal contiguous runs. Boundary vertices
// belong to no batch; batches may be empty when workers exceeds the
// interior vertex count.
func batchVertices(m *hemesh.Manifold, workers int) [][]hemesh.VertexID {
	interior := 0
	m.ForEachVertex(func(v hemesh.VertexID) {
		if !m.IsBoundary(v) {
			interior++
		}
	})
	batchSize := interior / workers
	if batchSize < 1 {
		batchSize = 1
	}
	batches := make([][]hemesh.VertexID, workers)
	cnt := 0
	m.ForEachVertex(func(v hemesh.VertexID) {
		if m.IsBoundary(v) {
			return
		}
		i := (cnt / batchSize) % workers
		batches[i] = append(batches[i], v)
		cnt++
	})
	return batches
}

// forEachBatchParallel runs f once per batch, one goroutine each, and
// blocks until every batch completes. Writes must be disjoint across
// batches; the executor adds no synchronization of its own.
func forEachBatchParallel(batches [][]hemesh.VertexID, f func([]hemesh.VertexID)) {
	var wg sync.WaitGroup
	for _, batch := range batches {
		wg.Add(1)
		go func(vids []hemesh.VertexID) {
			defer wg.Done()
			f(vids)
		}(batch)
	}
	wg.Wait()
}
