package contact

import (
	"sort"
)

// CSRMatrix is a square sparse matrix in compressed-row form. Contact
// matrices built here are symmetric with a zero diagonal; the type
// itself only guarantees the storage layout.
type CSRMatrix struct {
	n      int
	rowPtr []int
	colIdx []int
	values []float64
}

type cooEntry struct {
	row, col int
	value    float64
}

// newCSRFromCOO assembles a CSR matrix from coordinate-form entries.
// Entries at the same (row, col) position are summed into one stored
// value, matching the usual sparse assembly convention.
func newCSRFromCOO(n int, entries []cooEntry) *CSRMatrix {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].row != entries[j].row {
			return entries[i].row < entries[j].row
		}
		return entries[i].col < entries[j].col
	})

	m := &CSRMatrix{
		n:      n,
		rowPtr: make([]int, n+1),
	}

	lastRow, lastCol := -1, -1
	for _, e := range entries {
		if e.row == lastRow && e.col == lastCol {
			m.values[len(m.values)-1] += e.value
			continue
		}
		m.colIdx = append(m.colIdx, e.col)
		m.values = append(m.values, e.value)
		m.rowPtr[e.row+1]++
		lastRow, lastCol = e.row, e.col
	}

	for i := 0; i < n; i++ {
		m.rowPtr[i+1] += m.rowPtr[i]
	}

	return m
}

// Dim returns the matrix dimension.
func (m *CSRMatrix) Dim() int {
	return m.n
}

// NNZ returns the number of stored entries.
func (m *CSRMatrix) NNZ() int {
	return len(m.values)
}

// Row returns the column indices and values of one row. The returned
// slices alias internal storage and must not be modified.
func (m *CSRMatrix) Row(i int) (cols []int, vals []float64) {
	start, end := m.rowPtr[i], m.rowPtr[i+1]
	return m.colIdx[start:end], m.values[start:end]
}

// At returns the value at (i, j), zero when no entry is stored.
func (m *CSRMatrix) At(i, j int) float64 {
	cols, vals := m.Row(i)
	for k, c := range cols {
		if c == j {
			return vals[k]
		}
	}
	return 0
}

// MulVec computes dst = M·x over the sparse structure, visiting only
// stored entries. dst and x must both have length Dim.
func (m *CSRMatrix) MulVec(x, dst []float64) {
	for i := 0; i < m.n; i++ {
		sum := 0.0
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			sum += m.values[k] * x[m.colIdx[k]]
		}
		dst[i] = sum
	}
}

// memoryBytes returns the size of the stored value and index arrays.
func (m *CSRMatrix) memoryBytes() int {
	const intSize = 8
	return len(m.values)*8 + len(m.colIdx)*intSize + len(m.rowPtr)*intSize
}

// SparseNetwork is one day's contact network: a bijection between
// student ids and dense matrix indices, plus the symmetric weighted
// adjacency in CSR form. Instances are immutable after construction
// and owned by the NetworkCache.
type SparseNetwork struct {
	nodeToIdx map[string]int
	idxToNode []string
	matrix    *CSRMatrix
}

// BuildSparseNetwork constructs a network from undirected weighted
// edges. Indices are assigned in sorted order of the unique node ids,
// and each undirected edge contributes two directed entries. An empty
// edge list yields a zero-node network, not an error.
func BuildSparseNetwork(edges []WeightedEdge) *SparseNetwork {
	if len(edges) == 0 {
		return &SparseNetwork{
			nodeToIdx: make(map[string]int),
			matrix:    newCSRFromCOO(0, nil),
		}
	}

	unique := make(map[string]struct{}, len(edges)*2)
	for _, e := range edges {
		unique[e.U] = struct{}{}
		unique[e.V] = struct{}{}
	}

	ids := make([]string, 0, len(unique))
	for id := range unique {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	net := &SparseNetwork{
		nodeToIdx: make(map[string]int, len(ids)),
		idxToNode: ids,
	}
	for idx, id := range ids {
		net.nodeToIdx[id] = idx
	}

	entries := make([]cooEntry, 0, len(edges)*2)
	for _, e := range edges {
		i := net.nodeToIdx[e.U]
		j := net.nodeToIdx[e.V]
		entries = append(entries,
			cooEntry{row: i, col: j, value: e.Weight},
			cooEntry{row: j, col: i, value: e.Weight},
		)
	}
	net.matrix = newCSRFromCOO(len(ids), entries)

	return net
}

// NodeCount returns the number of students present in this network.
func (n *SparseNetwork) NodeCount() int {
	return len(n.idxToNode)
}

// EdgeCount returns the number of undirected contact edges. The matrix
// is symmetric, so this is half the stored entry count.
func (n *SparseNetwork) EdgeCount() int {
	return n.matrix.NNZ() / 2
}

// Matrix returns the adjacency for matrix operations.
func (n *SparseNetwork) Matrix() *CSRMatrix {
	return n.matrix
}

// IndexOf translates a student id to its dense index.
func (n *SparseNetwork) IndexOf(id string) (int, bool) {
	idx, ok := n.nodeToIdx[id]
	return idx, ok
}

// IDOf translates a dense index back to the student id.
func (n *SparseNetwork) IDOf(idx int) string {
	return n.idxToNode[idx]
}

// MapIDsToIndices batch-translates ids to indices. Ids absent from this
// day's network are silently dropped: a student missing here simply
// did not attend that day.
func (n *SparseNetwork) MapIDsToIndices(ids []string) []int {
	indices := make([]int, 0, len(ids))
	for _, id := range ids {
		if idx, ok := n.nodeToIdx[id]; ok {
			indices = append(indices, idx)
		}
	}
	return indices
}

// MapIndicesToIDs batch-translates dense indices back to student ids.
func (n *SparseNetwork) MapIndicesToIDs(indices []int) []string {
	ids := make([]string, 0, len(indices))
	for _, idx := range indices {
		ids = append(ids, n.idxToNode[idx])
	}
	return ids
}

// MemoryUsage returns the bytes held by the value and index arrays.
func (n *SparseNetwork) MemoryUsage() int {
	return n.matrix.memoryBytes()
}
