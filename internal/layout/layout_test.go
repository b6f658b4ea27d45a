package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladzin/modula/internal/model"
)

func chain(ids ...string) ([]model.FlowNode, []model.FlowEdge) {
	nodes := make([]model.FlowNode, len(ids))
	for i, id := range ids {
		nodes[i] = model.FlowNode{ID: id, Label: id}
	}
	var edges []model.FlowEdge
	for i := 1; i < len(ids); i++ {
		edges = append(edges, model.FlowEdge{
			ID:     ids[i-1] + "-" + ids[i],
			Source: ids[i-1],
			Target: ids[i],
		})
	}
	return nodes, edges
}

func TestHierarchicalRanksFollowEdges(t *testing.T) {
	centers := Hierarchical([]string{"root", "mid", "leaf"}, []Edge{
		{Source: "root", Target: "mid"},
		{Source: "mid", Target: "leaf"},
	})

	require.Len(t, centers, 3)
	assert.Less(t, centers["root"].Y, centers["mid"].Y)
	assert.Less(t, centers["mid"].Y, centers["leaf"].Y)
	assert.Equal(t, centers["root"].X, centers["mid"].X, "a chain stays on one axis")
}

func TestHierarchicalSiblingsShareRank(t *testing.T) {
	centers := Hierarchical([]string{"root", "a", "b"}, []Edge{
		{Source: "root", Target: "a"},
		{Source: "root", Target: "b"},
	})

	assert.Equal(t, centers["a"].Y, centers["b"].Y)
	assert.NotEqual(t, centers["a"].X, centers["b"].X)
}

func TestHierarchicalLongestPathWins(t *testing.T) {
	// root→a→b and root→b: b must sit below a, not beside it
	centers := Hierarchical([]string{"root", "a", "b"}, []Edge{
		{Source: "root", Target: "a"},
		{Source: "a", Target: "b"},
		{Source: "root", Target: "b"},
	})
	assert.Less(t, centers["a"].Y, centers["b"].Y)
}

func TestHierarchicalCycleFallsBack(t *testing.T) {
	centers := Hierarchical([]string{"a", "b"}, []Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "a"},
	})
	// no panic, every node still gets a position
	require.Len(t, centers, 2)
}

func TestArrangeConvertsCentersToAnchors(t *testing.T) {
	nodes, edges := chain("root", "leaf")
	placed := Arrange(nodes, edges)

	centers := Hierarchical([]string{"root", "leaf"}, []Edge{{Source: "root", Target: "leaf"}})
	assert.Equal(t, centers["root"].X-NodeWidth/2, placed[0].Position.X)
	assert.Equal(t, centers["root"].Y-NodeHeight/2, placed[0].Position.Y)
}

func TestArrangeKeepsManualNodesPut(t *testing.T) {
	nodes, edges := chain("root", "a", "b")
	placed := Arrange(nodes, edges)

	dropped := model.Position{X: 777, Y: -33}
	placed = Pin(placed, "a", dropped)

	// grow the graph and re-run layout a few times
	placed = append(placed, model.FlowNode{ID: "c"}, model.FlowNode{ID: "d"})
	edges = append(edges,
		model.FlowEdge{ID: "root-c", Source: "root", Target: "c"},
		model.FlowEdge{ID: "root-d", Source: "root", Target: "d"},
	)
	for i := 0; i < 3; i++ {
		placed = Arrange(placed, edges)
	}

	var a model.FlowNode
	for _, n := range placed {
		if n.ID == "a" {
			a = n
		}
	}
	assert.True(t, a.Manual)
	assert.Equal(t, dropped, a.Position, "pinned node never moves under recompute")
}

func TestResetClearsPins(t *testing.T) {
	nodes, edges := chain("root", "a")
	placed := Pin(Arrange(nodes, edges), "a", model.Position{X: 500, Y: 500})

	cleared := Reset(placed)
	for _, n := range cleared {
		assert.False(t, n.Manual)
		assert.Equal(t, model.Position{}, n.Position)
	}

	// after a reset, layout owns everything again
	placed = Arrange(cleared, edges)
	for _, n := range placed {
		if n.ID == "a" {
			assert.NotEqual(t, model.Position{X: 500, Y: 500}, n.Position)
		}
	}
}

func TestArrangeDoesNotMutateInput(t *testing.T) {
	nodes, edges := chain("root", "a")
	Arrange(nodes, edges)
	assert.Equal(t, model.Position{}, nodes[0].Position)
}

func TestBounds(t *testing.T) {
	nodes := []model.FlowNode{
		{ID: "a", Position: model.Position{X: -10, Y: 0}},
		{ID: "b", Position: model.Position{X: 300, Y: 150}},
	}
	min, max := Bounds(nodes)
	assert.Equal(t, model.Position{X: -10, Y: 0}, min)
	assert.Equal(t, model.Position{X: 300 + NodeWidth, Y: 150 + NodeHeight}, max)

	min, max = Bounds(nil)
	assert.Equal(t, model.Position{}, min)
	assert.Equal(t, model.Position{}, max)
}
