package model

// FlowNode is a node in a free-form flowchart. Besides its label it may
// carry a list of task-shaped subtasks edited through a per-node
// mini board. Manual marks a node as user-positioned: automatic layout
// leaves it alone.
type FlowNode struct {
	ID       string   `json:"id"`
	Type     string   `json:"type,omitempty"`
	Label    string   `json:"label"`
	Position Position `json:"position"`
	Manual   bool     `json:"manual,omitempty"`
	Subtasks []Task   `json:"subtasks,omitempty"`
}

// FlowEdge connects two flowchart nodes. Animated is a styling hint
// with no semantic weight.
type FlowEdge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Animated bool   `json:"animated,omitempty"`
}

// Flowchart is a node/edge diagram owned by a project
type Flowchart struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Nodes []FlowNode `json:"nodes"`
	Edges []FlowEdge `json:"edges"`
}

// FindNode returns the node with the given id, or nil
func (f *Flowchart) FindNode(id string) *FlowNode {
	for i := range f.Nodes {
		if f.Nodes[i].ID == id {
			return &f.Nodes[i]
		}
	}
	return nil
}
