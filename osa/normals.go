package osa

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"
)

// A NormalEstimator infers a consistently oriented unit normal
// for every point of a cloud.
type NormalEstimator interface {
	// EstimateNormals returns one normal per point, using k
	// neighbors to fit each tangent plane.
	EstimateNormals(points []model3d.Coord3D, k int) ([]model3d.Coord3D, error)
}

// InferKNN picks a neighborhood size for a cloud of n points.
//
// The size grows logarithmically with n and is clamped to
// [5, 30].
func InferKNN(n int) int {
	if n < 1 {
		return 5
	}
	k := int(math.Round(2 * math.Log(float64(n))))
	if k < 5 {
		k = 5
	} else if k > 30 {
		k = 30
	}
	return k
}

// NormalizeNormals scales every normal to unit length.
//
// The input slice is not modified.
func NormalizeNormals(normals []model3d.Coord3D) ([]model3d.Coord3D, error) {
	result := make([]model3d.Coord3D, len(normals))
	for i, n := range normals {
		norm := n.Norm()
		if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
			return nil, errors.Wrapf(ErrInvalidInput, "normal %d cannot be normalized", i)
		}
		result[i] = n.Scale(1 / norm)
	}
	return result, nil
}

// KNNNormals estimates normals by fitting a plane to the k
// nearest neighbors of every point, then orients them
// consistently by propagating along a minimum spanning tree of
// the neighborhood graph.
//
// Each connected component is oriented so that its highest
// point has a normal facing +Z.
type KNNNormals struct{}

// EstimateNormals estimates normals for points.
func (KNNNormals) EstimateNormals(points []model3d.Coord3D, k int) ([]model3d.Coord3D, error) {
	if k < 3 {
		return nil, errors.Wrapf(ErrInvalidInput, "neighborhood size %d is smaller than 3", k)
	}
	tree := model3d.NewCoordTree(points)
	indices := map[model3d.Coord3D]int{}
	for i := len(points) - 1; i >= 0; i-- {
		indices[points[i]] = i
	}

	normals := make([]model3d.Coord3D, len(points))
	neighborhoods := make([][]int, len(points))
	for i, p := range points {
		neighbors := tree.KNN(k, p)
		normals[i] = planeNormal(neighbors)
		for _, n := range neighbors {
			if j := indices[n]; j != i {
				neighborhoods[i] = append(neighborhoods[i], j)
			}
		}
	}
	orientNormals(points, normals, neighborhoods)
	return normals, nil
}

// planeNormal finds the direction of least variance of coords.
func planeNormal(coords []model3d.Coord3D) model3d.Coord3D {
	if len(coords) < 3 {
		return model3d.XYZ(0, 0, 1)
	}
	var mean model3d.Coord3D
	for _, c := range coords {
		mean = mean.Add(c)
	}
	mean = mean.Scale(1 / float64(len(coords)))

	var cov [9]float64
	for _, c := range coords {
		d := c.Sub(mean).Array()
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				cov[i*3+j] += d[i] * d[j]
			}
		}
	}

	var eigen mat.EigenSym
	if !eigen.Factorize(mat.NewSymDense(3, cov[:]), true) {
		return model3d.XYZ(0, 0, 1)
	}
	var vecs mat.Dense
	eigen.VectorsTo(&vecs)

	// Eigenvalues are ascending, so the first column is the normal.
	normal := model3d.XYZ(vecs.At(0, 0), vecs.At(1, 0), vecs.At(2, 0))
	if norm := normal.Norm(); norm > 0 {
		return normal.Scale(1 / norm)
	}
	return model3d.XYZ(0, 0, 1)
}

// orientNormals flips normals in place so that neighbors agree.
func orientNormals(points, normals []model3d.Coord3D, neighborhoods [][]int) {
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := range points {
		g.AddNode(simple.Node(i))
	}
	for i, edge := range rankedEdges(normals, neighborhoods) {
		// Distinct weights make the spanning forest unique, no
		// matter which order Prim visits the nodes in.
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(edge[0]), simple.Node(edge[1]), float64(i)))
	}

	forest := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	path.Prim(forest, g)

	roots := make([]int, len(points))
	for i := range roots {
		roots[i] = i
	}
	sort.SliceStable(roots, func(i, j int) bool {
		return points[roots[i]].Z > points[roots[j]].Z
	})

	visited := make([]bool, len(points))
	for _, root := range roots {
		if visited[root] {
			continue
		}
		visited[root] = true
		if normals[root].Z < 0 {
			normals[root] = normals[root].Scale(-1)
		}
		queue := []int{root}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			next := forest.From(int64(cur))
			for next.Next() {
				idx := int(next.Node().ID())
				if visited[idx] {
					continue
				}
				visited[idx] = true
				if normals[idx].Dot(normals[cur]) < 0 {
					normals[idx] = normals[idx].Scale(-1)
				}
				queue = append(queue, idx)
			}
		}
	}
}

// rankedEdges lists the undirected edges of the neighborhood
// graph, sorted by 1-|ni*nj| with ties broken by endpoint.
func rankedEdges(normals []model3d.Coord3D, neighborhoods [][]int) [][2]int {
	seen := map[[2]int]bool{}
	var edges [][2]int
	var weights []float64
	for i, neighbors := range neighborhoods {
		for _, j := range neighbors {
			key := edgeKey(i, j)
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, key)
			weights = append(weights, 1-math.Abs(normals[i].Dot(normals[j])))
		}
	}
	order := make([]int, len(edges))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if weights[i] != weights[j] {
			return weights[i] < weights[j]
		}
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	res := make([][2]int, len(edges))
	for i, idx := range order {
		res[i] = edges[idx]
	}
	return res
}
