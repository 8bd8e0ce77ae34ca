package highlight

// Colors are the highlight colors read by renderers. SecondHop is optional;
// when empty every member uses Primary.
type Colors struct {
	Primary   string
	SecondHop string
}

// NodeColor returns the color of a highlighted node. The second-hop color is
// used only for nodes that are not adjacent to a still existing hovered node.
func (c Colors) NodeColor(g Graph, hovered, node string) string {
	if c.SecondHop != "" &&
		hovered != "" &&
		hovered != node &&
		g.HasNode(hovered) &&
		g.HasNode(node) &&
		!g.AreNeighbors(hovered, node) {
		return c.SecondHop
	}
	return c.Primary
}

// EdgeColor returns the color of a highlighted edge. The second-hop color is
// used only for edges not incident to the hovered node.
func (c Colors) EdgeColor(g Graph, hovered, edge string) string {
	if c.SecondHop == "" || hovered == "" {
		return c.Primary
	}
	source, target, ok := g.Endpoints(edge)
	if ok && source != hovered && target != hovered {
		return c.SecondHop
	}
	return c.Primary
}
