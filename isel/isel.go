// Package isel implements target-independent instruction selection.
//
// Selection rewrites one basic block's legalized operation DAG into a
// DAG of machine instructions. Target-specific lowering is supplied
// through the Target interface: a hook for operations whose machine
// encoding does not map onto declarative rules, and an ordered rule
// table for everything else.
//
package isel // import "github.com/chalonverse/llvm/isel"

import (
	"fmt"
	"io"

	"github.com/chalonverse/llvm/dag"
)

// Queue registers values with the external legalization bookkeeping.
// Every operand consumed by a newly built instruction is enqueued
// before use.
type Queue interface {
	Enqueue(v dag.Value)
}

// Scheduler receives the selected graph for scheduling and emission.
type Scheduler interface {
	Schedule(g *dag.Graph, order []dag.NodeID)
}

// Rule pairs a structural predicate with a builder for the machine
// form it produces.
type Rule struct {
	When  func(g *dag.Graph, id dag.NodeID) bool
	Build func(s *Selector, id dag.NodeID) dag.Value
}

// Table is an ordered rule set evaluated most specific first.
type Table []Rule

// TryMatch applies the first matching rule to a node, reporting false
// when no rule matches.
func (t Table) TryMatch(s *Selector, id dag.NodeID) (dag.Value, bool) {
	for i := range t {
		if t[i].When(s.g, id) {
			return t[i].Build(s, id), true
		}
	}
	return dag.Value{}, false
}

// Target supplies the target-specific pieces of selection.
type Target interface {
	// Select lowers a node whose machine encoding does not map onto
	// the rule table, reporting false for all other nodes.
	Select(s *Selector, id dag.NodeID) (dag.Value, bool)

	// Rules returns the target rule table.
	Rules() Table
}

// Options configures a block selection.
type Options struct {
	Queue Queue     // legalization bookkeeping; nil disables
	Trace io.Writer // selection trace; nil disables
}

// Selector selects machine instructions for one block's DAG. Each
// node is selected at most once; all consumers of a shared node
// observe the same replacement.
type Selector struct {
	g        *dag.Graph
	target   Target
	rules    Table
	queue    Queue
	selected map[dag.NodeID]dag.NodeID
	trace    io.Writer
	f        *dag.Formatter
	indent   int
}

// SelectBlock rewrites the block's DAG into machine form, discards
// nodes unreachable from the new root, and hands the result to the
// scheduler in operand-before-user order.
func SelectBlock(g *dag.Graph, target Target, sched Scheduler, opts Options) dag.Value {
	s := &Selector{
		g:        g,
		target:   target,
		rules:    target.Rules(),
		queue:    opts.Queue,
		selected: make(map[dag.NodeID]dag.NodeID),
		trace:    opts.Trace,
		f:        dag.NewFormatter(),
	}
	if s.trace != nil {
		fmt.Fprint(s.trace, s.f.FormatGraph(g))
		fmt.Fprintln(s.trace, "===== Instruction selection begins:")
	}
	g.Root = s.Select(g.Root)
	if s.trace != nil {
		fmt.Fprintln(s.trace, "===== Instruction selection ends:")
	}
	g.RemoveDeadNodes()
	if sched != nil {
		sched.Schedule(g, g.PostOrder(g.Root))
	}
	return g.Root
}

// Select returns the replacement for a value, selecting its node at
// most once. Nodes already in custom target or machine form are
// returned unchanged, as are generic nodes no rule matches.
// Replacements are index-preserving: result i of the old node is
// result i of the replacement.
func (s *Selector) Select(v dag.Value) dag.Value {
	if repl, ok := s.selected[v.Node]; ok {
		return dag.Value{Node: repl, Index: v.Index}
	}
	s.tracef("Selecting: %s", s.f.FormatNode(s.g, v.Node))
	s.indent += 2

	repl := v.Node
	done := "=="
	if s.g.NodeAt(v.Node).Op.Class() == dag.ClassGeneric {
		done = "=>"
		if r, ok := s.target.Select(s, v.Node); ok {
			repl = r.Node
		} else if r, ok := s.rules.TryMatch(s, v.Node); ok {
			repl = r.Node
		}
	}
	s.selected[v.Node] = repl

	s.indent -= 2
	s.tracef("%s %s", done, s.f.FormatNode(s.g, repl))
	return dag.Value{Node: repl, Index: v.Index}
}

// Value queues a value with the legalizer, then selects it. Target
// lowering obtains every operand it consumes through Value or
// Operand.
func (s *Selector) Value(v dag.Value) dag.Value {
	if s.queue != nil {
		s.queue.Enqueue(v)
	}
	return s.Select(v)
}

// Operand queues and selects the i'th operand of a node.
func (s *Selector) Operand(id dag.NodeID, i int) dag.Value {
	return s.Value(s.g.NodeAt(id).Args[i])
}

// Graph returns the graph being selected.
func (s *Selector) Graph() *dag.Graph { return s.g }

func (s *Selector) tracef(format string, args ...interface{}) {
	if s.trace == nil {
		return
	}
	fmt.Fprintf(s.trace, "%*s", s.indent, "")
	fmt.Fprintf(s.trace, format, args...)
	fmt.Fprintln(s.trace)
}
