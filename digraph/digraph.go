// Package digraph implements traversal over directed graphs with
// dense integer nodes.
//
package digraph // import "github.com/chalonverse/llvm/digraph"

// Digraph is a directed graph.
type Digraph []graphNode

type graphNode struct {
	Edges   []int
	Visited bool
}

// Make constructs a Digraph with n nodes and no edges.
func Make(n int) Digraph {
	return make(Digraph, n)
}

// AddEdge adds a directed edge from node i to j.
func (g Digraph) AddEdge(i, j int) {
	g[i].Edges = append(g[i].Edges, j)
}

// PostOrderFrom traverses the subgraph reachable from root and returns
// its post-order traversal numbers. Every edge target precedes its
// sources in the returned order.
func (g Digraph) PostOrderFrom(root int) []int {
	g.ClearVisited()
	return g.visit(root, nil)
}

func (g Digraph) visit(node int, postOrder []int) []int {
	if g[node].Visited {
		return postOrder
	}
	g[node].Visited = true
	for _, edge := range g[node].Edges {
		postOrder = g.visit(edge, postOrder)
	}
	return append(postOrder, node)
}

// ClearVisited resets the visited flags.
func (g Digraph) ClearVisited() {
	for i := range g {
		g[i].Visited = false
	}
}
