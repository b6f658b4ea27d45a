// Package layout positions graph nodes for the tree and flowchart
// views: a hierarchical top-to-bottom pass for everything the user has
// not touched, while user-dragged nodes stay pinned exactly where they
// were dropped.
package layout

import (
	"sort"

	"github.com/ladzin/modula/internal/model"
)

// Nominal node footprint used by every view. Layout reports centers;
// Arrange converts them to top-left anchors with these dimensions.
const (
	NodeWidth  = 220
	NodeHeight = 80

	rankGap = 60
	nodeGap = 40
)

// Edge is a directed source→target pair
type Edge struct {
	Source string
	Target string
}

// Hierarchical computes center positions for every node id, layered
// top to bottom. Ranks come from the longest path below a root; nodes
// within a rank keep their input order. Nodes caught in a cycle fall
// back to rank zero.
func Hierarchical(ids []string, edges []Edge) map[string]model.Position {
	rank := make(map[string]int, len(ids))
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
		rank[id] = 0
	}

	out := make(map[string][]string)
	indegree := make(map[string]int)
	for _, e := range edges {
		if !known[e.Source] || !known[e.Target] {
			continue
		}
		out[e.Source] = append(out[e.Source], e.Target)
		indegree[e.Target]++
	}

	// Kahn walk; longest path determines the rank
	var queue []string
	for _, id := range ids {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range out[id] {
			if rank[id]+1 > rank[next] {
				rank[next] = rank[id] + 1
			}
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	// Group by rank, preserving input order inside each layer
	layers := make(map[int][]string)
	maxRank := 0
	for _, id := range ids {
		r := rank[id]
		layers[r] = append(layers[r], id)
		if r > maxRank {
			maxRank = r
		}
	}

	// Center each layer around a common axis
	widest := 0
	for r := 0; r <= maxRank; r++ {
		if len(layers[r]) > widest {
			widest = len(layers[r])
		}
	}
	axis := float64(widest) * (NodeWidth + nodeGap) / 2

	centers := make(map[string]model.Position, len(ids))
	for r := 0; r <= maxRank; r++ {
		layer := layers[r]
		width := float64(len(layer)) * (NodeWidth + nodeGap)
		left := axis - width/2
		for i, id := range layer {
			centers[id] = model.Position{
				X: left + float64(i)*(NodeWidth+nodeGap) + NodeWidth/2,
				Y: float64(r)*(NodeHeight+rankGap) + NodeHeight/2,
			}
		}
	}
	return centers
}

// Arrange recomputes positions for the given nodes. A node with the
// manual flag keeps its position verbatim; every other node gets the
// hierarchical center shifted to a top-left anchor so automatic and
// manual placements line up. Re-running Arrange never moves a manual
// node, no matter how the rest of the graph changed.
func Arrange(nodes []model.FlowNode, edges []model.FlowEdge) []model.FlowNode {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	les := make([]Edge, len(edges))
	for i, e := range edges {
		les[i] = Edge{Source: e.Source, Target: e.Target}
	}
	centers := Hierarchical(ids, les)

	out := make([]model.FlowNode, len(nodes))
	for i, n := range nodes {
		if n.Manual {
			out[i] = n
			continue
		}
		c := centers[n.ID]
		n.Position = model.Position{X: c.X - NodeWidth/2, Y: c.Y - NodeHeight/2}
		out[i] = n
	}
	return out
}

// Pin records a drag-end: the node takes the dropped coordinates and
// is excluded from automatic layout from now on
func Pin(nodes []model.FlowNode, id string, pos model.Position) []model.FlowNode {
	out := make([]model.FlowNode, len(nodes))
	for i, n := range nodes {
		if n.ID == id {
			n.Position = pos
			n.Manual = true
		}
		out[i] = n
	}
	return out
}

// Reset clears every position to the origin and drops all manual
// flags, so the next Arrange lays the whole graph out from scratch
func Reset(nodes []model.FlowNode) []model.FlowNode {
	out := make([]model.FlowNode, len(nodes))
	for i, n := range nodes {
		n.Position = model.Position{}
		n.Manual = false
		out[i] = n
	}
	return out
}

// Bounds returns the smallest rectangle covering all node footprints.
// Views use it to scale the canvas.
func Bounds(nodes []model.FlowNode) (min, max model.Position) {
	if len(nodes) == 0 {
		return model.Position{}, model.Position{}
	}
	xs := make([]float64, 0, len(nodes))
	ys := make([]float64, 0, len(nodes))
	for _, n := range nodes {
		xs = append(xs, n.Position.X)
		ys = append(ys, n.Position.Y)
	}
	sort.Float64s(xs)
	sort.Float64s(ys)
	min = model.Position{X: xs[0], Y: ys[0]}
	max = model.Position{X: xs[len(xs)-1] + NodeWidth, Y: ys[len(ys)-1] + NodeHeight}
	return min, max
}
