package dag

import (
	"fmt"

	"github.com/chalonverse/llvm/digraph"
	"github.com/chalonverse/llvm/internal/bitset"
)

// NodeID is the stable identifier of a node within a graph arena.
type NodeID int

// Value references one result of a node. Two values are equal when
// they reference the same result of the same node.
type Value struct {
	Node  NodeID
	Index int
}

// Node is a vertex of the operation DAG: an opcode, ordered operand
// references, declared result types, and an optional payload.
type Node struct {
	Op    Op
	Args  []Value
	Types []Type
	Imm   int64  // Constant and TargetConstant payload
	Slot  int    // FrameSlot and TargetFrameSlot payload
	Sym   string // Symbol and TargetSymbol payload
	Reg   int    // Register payload
}

// IsLeaf returns whether the node has no operands.
func (n Node) IsLeaf() bool { return len(n.Args) == 0 }

// Graph is an arena of nodes for one basic block, reachable from a
// distinguished root. Nodes may have multiple consumers; sharing is
// preserved by identity of NodeIDs.
type Graph struct {
	nodes  []Node
	consts map[constKey]NodeID
	Root   Value
}

type constKey struct {
	op  Op
	imm int64
}

// NewGraph constructs an empty Graph.
func NewGraph() *Graph {
	return &Graph{consts: make(map[constKey]NodeID)}
}

// NewNode constructs a node in the arena and returns its first result.
// A Flag-typed operand is accepted only as the trailing operand of a
// machine instruction; any other use of a side-channel value is a
// typing violation.
func (g *Graph) NewNode(op Op, types []Type, args ...Value) Value {
	for i, arg := range args {
		if int(arg.Node) < 0 || int(arg.Node) >= len(g.nodes) {
			panic(fmt.Sprintf("dag: operand %d references node %d outside the arena", i, arg.Node))
		}
		if g.TypeOf(arg) == Flag && (op.Class() != ClassMachine || i != len(args)-1) {
			panic(fmt.Sprintf("dag: flag result of node %d used as data", arg.Node))
		}
	}
	g.nodes = append(g.nodes, Node{Op: op, Args: args, Types: types})
	return Value{Node: NodeID(len(g.nodes) - 1)}
}

// Types is a convenience constructor for result type lists.
func Types(types ...Type) []Type { return types }

// Constant returns the value for an embedded integer constant, with
// matching constants sharing the same node.
func (g *Graph) Constant(imm int64) Value { return g.lookupConst(Constant, imm) }

// TargetConstant returns the value for a target-concrete constant,
// with matching constants sharing the same node.
func (g *Graph) TargetConstant(imm int64) Value { return g.lookupConst(TargetConstant, imm) }

func (g *Graph) lookupConst(op Op, imm int64) Value {
	key := constKey{op, imm}
	if id, ok := g.consts[key]; ok {
		return Value{Node: id}
	}
	v := g.NewNode(op, Types(I32))
	g.nodes[v.Node].Imm = imm
	g.consts[key] = v.Node
	return v
}

// FrameSlot returns the value for a frame-slot address.
func (g *Graph) FrameSlot(slot int) Value {
	v := g.NewNode(FrameSlot, Types(I32))
	g.nodes[v.Node].Slot = slot
	return v
}

// TargetFrameSlot returns the value for a target-concrete frame-slot
// address.
func (g *Graph) TargetFrameSlot(slot int) Value {
	v := g.NewNode(TargetFrameSlot, Types(I32))
	g.nodes[v.Node].Slot = slot
	return v
}

// Symbol returns the value for a symbolic address.
func (g *Graph) Symbol(name string) Value {
	v := g.NewNode(Symbol, Types(I32))
	g.nodes[v.Node].Sym = name
	return v
}

// TargetSymbol returns the value for a target-concrete symbolic
// address.
func (g *Graph) TargetSymbol(name string) Value {
	v := g.NewNode(TargetSymbol, Types(I32))
	g.nodes[v.Node].Sym = name
	return v
}

// Register returns the value for a virtual register input.
func (g *Graph) Register(reg int) Value {
	v := g.NewNode(Register, Types(I32))
	g.nodes[v.Node].Reg = reg
	return v
}

// NodeAt returns a copy of the node with the given ID. Nodes are
// immutable; building new nodes never invalidates the copy.
func (g *Graph) NodeAt(id NodeID) Node {
	return g.nodes[id]
}

// Len returns the number of nodes in the arena, dead nodes included.
func (g *Graph) Len() int { return len(g.nodes) }

// TypeOf returns the type of the referenced result.
func (g *Graph) TypeOf(v Value) Type {
	n := &g.nodes[v.Node]
	if v.Index >= len(n.Types) {
		panic(fmt.Sprintf("dag: node %d has no result %d", v.Node, v.Index))
	}
	return n.Types[v.Index]
}

// Digraph constructs a digraph with edges from each node to its
// operands.
func (g *Graph) Digraph() digraph.Digraph {
	d := digraph.Make(len(g.nodes))
	for id := range g.nodes {
		for _, arg := range g.nodes[id].Args {
			d.AddEdge(id, int(arg.Node))
		}
	}
	return d
}

// PostOrder returns the IDs of the nodes reachable from root in an
// order placing every operand before its users.
func (g *Graph) PostOrder(root Value) []NodeID {
	order := g.Digraph().PostOrderFrom(int(root.Node))
	ids := make([]NodeID, len(order))
	for i, id := range order {
		ids[i] = NodeID(id)
	}
	return ids
}

// RemoveDeadNodes discards nodes that are not reachable from the root
// and returns the number removed. Discarded IDs remain allocated but
// hold invalid tombstones.
func (g *Graph) RemoveDeadNodes() int {
	live := bitset.NewBitset(len(g.nodes))
	for _, id := range g.PostOrder(g.Root) {
		live.Set(int(id))
	}
	removed := 0
	for id := range g.nodes {
		if !live.Test(id) && g.nodes[id].Op != Invalid {
			delete(g.consts, constKey{g.nodes[id].Op, g.nodes[id].Imm})
			g.nodes[id] = Node{}
			removed++
		}
	}
	return removed
}

func (g *Graph) String() string {
	return NewFormatter().FormatGraph(g)
}
