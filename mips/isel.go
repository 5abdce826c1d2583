package mips

import (
	"github.com/chalonverse/llvm/dag"
	"github.com/chalonverse/llvm/isel"
)

// Select lowers the multiply-high, divide, and remainder operations.
// MIPS computes a multiplication or division into the HI and LO
// accumulator halves with a single instruction; the register result is
// retrieved by a following move-from instruction. The pair is chained
// through a flag value so the two cannot be scheduled apart.
func (t *Target) Select(s *isel.Selector, id dag.NodeID) (dag.Value, bool) {
	g := s.Graph()
	var producer dag.Op
	var hi bool
	switch g.NodeAt(id).Op {
	case dag.MulHiS:
		producer, hi = MULT, true
	case dag.MulHiU:
		producer, hi = MULTu, true
	case dag.DivS:
		producer, hi = DIV, false
	case dag.DivU:
		producer, hi = DIVu, false
	case dag.RemS:
		producer, hi = DIV, true
	case dag.RemU:
		producer, hi = DIVu, true
	default:
		return dag.Value{}, false
	}

	a := s.Operand(id, 0)
	b := s.Operand(id, 1)
	prod := g.NewNode(producer, dag.Types(dag.Flag), a, b)
	from := MFLO
	if hi {
		from = MFHI
	}
	return g.NewNode(from, dag.Types(dag.I32), prod), true
}
