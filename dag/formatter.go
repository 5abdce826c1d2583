package dag

import (
	"fmt"
	"strings"
)

// Formatter pretty prints DAG nodes. Node numbering is assigned on
// first use and stable for the lifetime of the formatter.
type Formatter struct {
	ids    map[NodeID]int
	nextID int
}

// NewFormatter constructs a Formatter.
func NewFormatter() *Formatter {
	return &Formatter{
		ids:    make(map[NodeID]int),
		nextID: 0,
	}
}

// FormatGraph pretty prints the nodes reachable from the graph root in
// operand-before-user order.
func (f *Formatter) FormatGraph(g *Graph) string {
	var b strings.Builder
	for _, id := range g.PostOrder(g.Root) {
		b.WriteString(f.FormatNode(g, id))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatNode pretty prints a single node.
func (f *Formatter) FormatNode(g *Graph, id NodeID) string {
	var b strings.Builder
	n := g.NodeAt(id)
	if len(n.Types) != 0 {
		fmt.Fprintf(&b, "%%%d = ", f.id(id))
	}
	b.WriteString(n.Op.String())
	switch n.Op {
	case Constant, TargetConstant:
		fmt.Fprintf(&b, " %d", n.Imm)
	case FrameSlot, TargetFrameSlot:
		fmt.Fprintf(&b, " %d", n.Slot)
	case Symbol, TargetSymbol:
		b.WriteByte(' ')
		b.WriteString(n.Sym)
	case Register:
		fmt.Fprintf(&b, " %d", n.Reg)
	}
	for _, arg := range n.Args {
		b.WriteByte(' ')
		b.WriteString(f.FormatValue(arg))
	}
	return b.String()
}

// FormatValue pretty prints a value reference.
func (f *Formatter) FormatValue(v Value) string {
	if v.Index != 0 {
		return fmt.Sprintf("%%%d:%d", f.id(v.Node), v.Index)
	}
	return fmt.Sprintf("%%%d", f.id(v.Node))
}

func (f *Formatter) id(node NodeID) int {
	if id, ok := f.ids[node]; ok {
		return id
	}
	id := f.nextID
	f.ids[node] = id
	f.nextID++
	return id
}
