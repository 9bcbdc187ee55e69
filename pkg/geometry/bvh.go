package geometry

import (
	"sort"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// BVHConfig holds the build heuristics of the acceleration structure
type BVHConfig struct {
	BranchingFactor  int     `yaml:"branching_factor"`  // children per interior node (2..16)
	CostSamples      int     `yaml:"cost_samples"`      // candidate split planes per axis
	IntersectionCost float64 `yaml:"intersection_cost"` // relative cost of one primitive test
	TraversalCost    float64 `yaml:"traversal_cost"`    // relative cost of visiting a node
	EmptyBonus       float64 `yaml:"empty_bonus"`       // [0,1) discount for splits that leave a gap between children
}

// DefaultBVHConfig returns sensible default values
func DefaultBVHConfig() BVHConfig {
	return BVHConfig{
		BranchingFactor:  4,
		CostSamples:      8,
		IntersectionCost: 80,
		TraversalCost:    10,
		EmptyBonus:       0.5,
	}
}

// Leaf threshold: groups larger than this are always split, even when the
// cost model says a leaf would be cheaper
const leafThreshold = 8

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Children    []*BVHNode  // nil for leaves
	Primitives  []Primitive // nil for interior nodes
}

// BVH is an n-ary bounding volume hierarchy that reports tagged primitive references
type BVH struct {
	Root   *BVHNode
	config BVHConfig
}

type buildItem struct {
	prim     Primitive
	bounds   core.AABB
	centroid core.Vec3
}

// NewBVH constructs a BVH from primitives. The input slice is not modified.
func NewBVH(prims []Primitive, config BVHConfig) *BVH {
	bvh := &BVH{config: config}
	if len(prims) == 0 {
		return bvh
	}

	items := make([]buildItem, len(prims))
	for i, p := range prims {
		bounds := p.Shape.BoundingBox()
		items[i] = buildItem{prim: p, bounds: bounds, centroid: bounds.Center()}
	}

	bvh.Root = bvh.build(items)
	return bvh
}

func (bvh *BVH) build(items []buildItem) *BVHNode {
	bounds := core.EmptyAABB()
	for _, it := range items {
		bounds = bounds.Union(it.bounds)
	}

	if len(items) == 1 {
		return newLeaf(bounds, items)
	}

	// Start with one group and keep splitting the largest splittable group
	// until the node has BranchingFactor children or nothing can be split.
	branching := max(2, bvh.config.BranchingFactor)
	groups := [][]buildItem{items}
	for len(groups) < branching {
		largest := -1
		for i, g := range groups {
			if len(g) > 1 && (largest < 0 || len(g) > len(groups[largest])) {
				largest = i
			}
		}
		if largest < 0 {
			break
		}

		// Only the first split has to beat the cost of a leaf
		left, right, ok := bvh.split(groups[largest], len(groups) == 1)
		if !ok {
			if len(groups) == 1 {
				return newLeaf(bounds, items)
			}
			break
		}

		groups[largest] = left
		groups = append(groups, right)
	}

	node := &BVHNode{BoundingBox: bounds, Children: make([]*BVHNode, 0, len(groups))}
	for _, g := range groups {
		node.Children = append(node.Children, bvh.build(g))
	}
	return node
}

func newLeaf(bounds core.AABB, items []buildItem) *BVHNode {
	prims := make([]Primitive, len(items))
	for i, it := range items {
		prims[i] = it.prim
	}
	return &BVHNode{BoundingBox: bounds, Primitives: prims}
}

// split partitions items in two with the surface area heuristic. When
// mustBeatLeaf is set the split is rejected if a leaf would be cheaper.
func (bvh *BVH) split(items []buildItem, mustBeatLeaf bool) ([]buildItem, []buildItem, bool) {
	n := len(items)
	bounds := core.EmptyAABB()
	centroids := core.EmptyAABB()
	for _, it := range items {
		bounds = bounds.Union(it.bounds)
		centroids = centroids.ExtendPoint(it.centroid)
	}

	axis := centroids.LongestAxis()
	lo := centroids.Min.Axis(axis)
	hi := centroids.Max.Axis(axis)

	// Coincident centroids: nothing for SAH to separate
	if hi <= lo {
		if mustBeatLeaf && n <= leafThreshold {
			return nil, nil, false
		}
		return items[:n/2], items[n/2:], true
	}

	samples := max(1, bvh.config.CostSamples)
	totalArea := bounds.SurfaceArea()
	bestCost := 0.0
	bestPos := 0.0
	found := false

	for s := 0; s < samples; s++ {
		pos := lo + (hi-lo)*float64(s+1)/float64(samples+1)

		below, above := core.EmptyAABB(), core.EmptyAABB()
		nBelow, nAbove := 0, 0
		for _, it := range items {
			if it.centroid.Axis(axis) < pos {
				below = below.Union(it.bounds)
				nBelow++
			} else {
				above = above.Union(it.bounds)
				nAbove++
			}
		}
		if nBelow == 0 || nAbove == 0 {
			continue
		}

		pBelow, pAbove := 1.0, 1.0
		if totalArea > 0 {
			pBelow = below.SurfaceArea() / totalArea
			pAbove = above.SurfaceArea() / totalArea
		}

		eb := 0.0
		if below.Max.Axis(axis) < above.Min.Axis(axis) {
			eb = bvh.config.EmptyBonus
		}

		cost := bvh.config.TraversalCost +
			bvh.config.IntersectionCost*(1-eb)*(pBelow*float64(nBelow)+pAbove*float64(nAbove))
		if !found || cost < bestCost {
			bestCost, bestPos, found = cost, pos, true
		}
	}

	if !found {
		return medianSplit(items, axis)
	}
	leafCost := bvh.config.IntersectionCost * float64(n)
	if mustBeatLeaf && n <= leafThreshold && bestCost >= leafCost {
		return nil, nil, false
	}

	left := make([]buildItem, 0, n)
	right := make([]buildItem, 0, n)
	for _, it := range items {
		if it.centroid.Axis(axis) < bestPos {
			left = append(left, it)
		} else {
			right = append(right, it)
		}
	}
	return left, right, true
}

// medianSplit sorts along axis and cuts the group in half
func medianSplit(items []buildItem, axis int) ([]buildItem, []buildItem, bool) {
	sorted := make([]buildItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].centroid.Axis(axis) < sorted[j].centroid.Axis(axis)
	})
	mid := len(sorted) / 2
	return sorted[:mid], sorted[mid:], true
}

// Intersect finds the closest primitive hit along the ray, lowering ray.MaxT to its distance
func (bvh *BVH) Intersect(ray *core.Ray) (PrimitiveRef, bool) {
	if bvh.Root == nil {
		return PrimitiveRef{}, false
	}
	return bvh.intersectNode(bvh.Root, ray)
}

func (bvh *BVH) intersectNode(node *BVHNode, ray *core.Ray) (PrimitiveRef, bool) {
	if !node.BoundingBox.Hit(ray) {
		return PrimitiveRef{}, false
	}

	var closest PrimitiveRef
	hitAnything := false

	if node.Children == nil {
		// Each successful test shrinks ray.MaxT, so later hits are always closer
		for _, prim := range node.Primitives {
			if prim.Shape.Intersect(ray) {
				closest = prim.Ref
				hitAnything = true
			}
		}
		return closest, hitAnything
	}

	for _, child := range node.Children {
		if ref, ok := bvh.intersectNode(child, ray); ok {
			closest = ref
			hitAnything = true
		}
	}
	return closest, hitAnything
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes  int
	LeafNodes   int
	MaxDepth    int
	TotalShapes int
}

// Stats walks the tree and summarises its shape
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	if bvh.Root != nil {
		collectStats(bvh.Root, 0, &stats)
	}
	return stats
}

func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	if node.Children == nil {
		stats.LeafNodes++
		stats.TotalShapes += len(node.Primitives)
		return
	}
	for _, child := range node.Children {
		collectStats(child, depth+1, stats)
	}
}
