package views

// RefreshMsg tells a view to re-read its slice of the store. The root
// model broadcasts it after anything that may have mutated state.
type RefreshMsg struct{}
