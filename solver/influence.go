package solver

import (
	"github.com/metrix-opf/metrix/matrix"
	"github.com/metrix-opf/metrix/matrix/ops"
	"github.com/metrix-opf/metrix/network"
)

// InfluenceCoefficients caches the reduced nodal susceptance matrix's
// inverse for one synchronous zone, plus the zone's slack and node-index
// map, so repeated solves against the same topology reuse the O(n³)
// factorization (§4.6: "computed once after each topology change; cached
// until next change").
type InfluenceCoefficients struct {
	zone       int
	slack      int
	nodeIndex  map[int]int // network node index -> reduced-matrix row/col
	rowNode    []int       // reverse of nodeIndex
	bInverse   matrix.Matrix
	generation int
}

// Cache holds one InfluenceCoefficients set per zone, invalidated whenever
// the owning Network's topology generation counter advances.
type Cache struct {
	byZone map[int]*InfluenceCoefficients
}

// NewCache returns an empty influence-coefficient cache.
func NewCache() *Cache {
	return &Cache{byZone: make(map[int]*InfluenceCoefficients)}
}

// Get returns the cached coefficients for zone, rebuilding them if absent
// or stale with respect to n.Generation.
func (c *Cache) Get(n *network.Network, zone int) (*InfluenceCoefficients, error) {
	if ic, ok := c.byZone[zone]; ok && ic.generation == n.Generation {
		return ic, nil
	}
	ic, err := buildInfluenceCoefficients(n, zone)
	if err != nil {
		return nil, err
	}
	c.byZone[zone] = ic
	return ic, nil
}

// buildInfluenceCoefficients assembles B (the reduced nodal susceptance
// matrix, slack row/column removed) for zone and inverts it via LU
// decomposition (§4.6: "the influence-coefficient matrices... computed by
// assembling the reduced nodal susceptance matrix").
func buildInfluenceCoefficients(n *network.Network, zone int) (*InfluenceCoefficients, error) {
	var slack = -1
	nodeIndex := make(map[int]int)
	var rowNode []int
	for _, node := range n.Nodes {
		if node.Zone != zone {
			continue
		}
		if node.IsSlack {
			slack = node.Index
			continue
		}
		nodeIndex[node.Index] = len(rowNode)
		rowNode = append(rowNode, node.Index)
	}
	if slack < 0 {
		return nil, newSolverError(ErrKindSolverInternal, "zone %d has no slack node", zone)
	}
	dim := len(rowNode)
	if dim == 0 {
		return &InfluenceCoefficients{zone: zone, slack: slack, nodeIndex: nodeIndex, rowNode: rowNode, generation: n.Generation}, nil
	}

	b, err := matrix.NewDense(dim, dim)
	if err != nil {
		return nil, newSolverError(ErrKindSolverInternal, "allocating B: %v", err)
	}
	for _, br := range n.Branches {
		if !br.ClosedFrom || !br.ClosedTo {
			continue
		}
		fi, fok := nodeIndex[br.From]
		ti, tok := nodeIndex[br.To]
		y := br.UxY()
		if fok {
			v, _ := b.At(fi, fi)
			_ = b.Set(fi, fi, v+y)
		}
		if tok {
			v, _ := b.At(ti, ti)
			_ = b.Set(ti, ti, v+y)
		}
		if fok && tok {
			v, _ := b.At(fi, ti)
			_ = b.Set(fi, ti, v-y)
			v, _ = b.At(ti, fi)
			_ = b.Set(ti, fi, v-y)
		}
	}

	inv, err := ops.Inverse(b)
	if err != nil {
		return nil, newSolverError(ErrKindSolverInternal, "inverting reduced susceptance matrix for zone %d: %v", zone, err)
	}

	return &InfluenceCoefficients{
		zone: zone, slack: slack, nodeIndex: nodeIndex, rowNode: rowNode,
		bInverse: inv, generation: n.Generation,
	}, nil
}

// Angles solves B*theta = P for the zone's non-slack nodes given a net
// injection vector indexed by network node id, returning angles indexed
// the same way (slack and nodes outside the zone read back as 0).
func (ic *InfluenceCoefficients) Angles(n *network.Network, injection map[int]float64) map[int]float64 {
	theta := make(map[int]float64, len(ic.rowNode))
	if ic.bInverse == nil {
		return theta
	}
	p := make([]float64, len(ic.rowNode))
	for i, nodeIdx := range ic.rowNode {
		p[i] = injection[nodeIdx]
	}
	dense, ok := ic.bInverse.(interface {
		MulVec([]float64) ([]float64, error)
	})
	if !ok {
		return theta
	}
	x, err := dense.MulVec(p)
	if err != nil {
		return theta
	}
	for i, nodeIdx := range ic.rowNode {
		theta[nodeIdx] = x[i]
	}
	return theta
}
