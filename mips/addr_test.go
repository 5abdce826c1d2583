package mips // import "github.com/chalonverse/llvm/mips"

import (
	"testing"

	"github.com/chalonverse/llvm/dag"
)

func TestSelectAddr(t *testing.T) {
	tgt := New()
	for i, test := range []struct {
		Build  func(g *dag.Graph) dag.Value
		BaseOp dag.Op // dag.Invalid means the whole address is the base
		Offset int64
	}{
		// A frame slot becomes its target-concrete form.
		{func(g *dag.Graph) dag.Value { return g.FrameSlot(2) }, dag.TargetFrameSlot, 0},
		// An in-range constant folds into the offset, promoting a
		// frame-slot base.
		{func(g *dag.Graph) dag.Value {
			return g.NewNode(dag.Add, dag.Types(dag.I32), g.FrameSlot(2), g.Constant(100))
		}, dag.TargetFrameSlot, 100},
		// A non-slot base is used verbatim.
		{func(g *dag.Graph) dag.Value {
			return g.NewNode(dag.Add, dag.Types(dag.I32), g.Register(1), g.Constant(100))
		}, dag.Register, 100},
		// Negative offsets fold when in range.
		{func(g *dag.Graph) dag.Value {
			return g.NewNode(dag.Add, dag.Types(dag.I32), g.FrameSlot(1), g.Constant(-4))
		}, dag.TargetFrameSlot, -4},
		// An out-of-range constant leaves the whole addition as the
		// base.
		{func(g *dag.Graph) dag.Value {
			return g.NewNode(dag.Add, dag.Types(dag.I32), g.Register(1), g.Constant(70000))
		}, dag.Invalid, 0},
		{func(g *dag.Graph) dag.Value {
			return g.NewNode(dag.Add, dag.Types(dag.I32), g.Register(1), g.Constant(-40000))
		}, dag.Invalid, 0},
		// An addition of two registers has no constant to fold.
		{func(g *dag.Graph) dag.Value {
			return g.NewNode(dag.Add, dag.Types(dag.I32), g.Register(1), g.Register(2))
		}, dag.Invalid, 0},
		// Any other expression is the base as-is.
		{func(g *dag.Graph) dag.Value { return g.Register(1) }, dag.Invalid, 0},
		// Decomposition is one level deep: a chained addition is not
		// recursed into.
		{func(g *dag.Graph) dag.Value {
			inner := g.NewNode(dag.Add, dag.Types(dag.I32), g.Register(1), g.Constant(4))
			return g.NewNode(dag.Add, dag.Types(dag.I32), inner, g.Register(2))
		}, dag.Invalid, 0},
	} {
		g := dag.NewGraph()
		addr := test.Build(g)
		base, offset, ok := tgt.SelectAddr(g, addr)
		if !ok {
			t.Errorf("test %d: got no match, want match", i)
			continue
		}
		if test.BaseOp == dag.Invalid {
			if base != addr {
				t.Errorf("test %d: got base %v, want the address itself %v", i, base, addr)
			}
		} else if op := g.NodeAt(base.Node).Op; op != test.BaseOp {
			t.Errorf("test %d: got base %v, want %v", i, op, test.BaseOp)
		}
		if n := g.NodeAt(offset.Node); n.Op != dag.TargetConstant || n.Imm != test.Offset {
			t.Errorf("test %d: got offset %v %d, want tconst %d", i, n.Op, n.Imm, test.Offset)
		}
	}
}

func TestSelectAddrSymbol(t *testing.T) {
	tgt := New()
	g := dag.NewGraph()
	addr := g.TargetSymbol("errno")
	if _, _, ok := tgt.SelectAddr(g, addr); ok {
		t.Errorf("got match for a target symbolic address, want no match")
	}
}

func TestSelectAddrOffsetWidth(t *testing.T) {
	tgt := &Target{OffsetBits: 8}
	for i, test := range []struct {
		Imm  int64
		Fold bool
	}{
		{100, true},
		{127, true},
		{-128, true},
		{128, false},
		{200, false},
		{-129, false},
	} {
		g := dag.NewGraph()
		addr := g.NewNode(dag.Add, dag.Types(dag.I32), g.Register(1), g.Constant(test.Imm))
		base, offset, ok := tgt.SelectAddr(g, addr)
		if !ok {
			t.Errorf("test %d: got no match, want match", i)
			continue
		}
		folded := base != addr
		if folded != test.Fold {
			t.Errorf("test %d: got folded %t for immediate %d, want %t", i, folded, test.Imm, test.Fold)
		}
		if test.Fold {
			if n := g.NodeAt(offset.Node); n.Imm != test.Imm {
				t.Errorf("test %d: got offset %d, want %d", i, n.Imm, test.Imm)
			}
		}
	}
}
