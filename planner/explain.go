package planner

import "strings"

// Format renders a plan as a tree, root first, one operator per line.
// Children hang off their parent with box-drawing connectors so nested
// joins read the way they execute.
func Format(root PlanNode) string {
	var b strings.Builder
	b.WriteString(root.String())
	b.WriteByte('\n')
	formatChildren(&b, root, "")
	return b.String()
}

func formatChildren(b *strings.Builder, node PlanNode, prefix string) {
	children := node.Children()
	for i, child := range children {
		connector, indent := "├── ", "│   "
		if i == len(children)-1 {
			connector, indent = "└── ", "    "
		}
		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(child.String())
		b.WriteByte('\n')
		formatChildren(b, child, prefix+indent)
	}
}
