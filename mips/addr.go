package mips

import "github.com/chalonverse/llvm/dag"

// SelectAddr decomposes an address computation into the (base, offset)
// pair accepted by the MIPS load/store addressing mode. The offset is
// a target constant fitting the signed OffsetBits-wide immediate.
//
// A frame-slot address becomes its target-concrete form with a zero
// offset. A target-concrete symbolic address reports no match: such
// addresses are materialized into a register elsewhere and are never
// folded here. An addition of a base and an in-range constant folds
// the constant into the offset. Anything else becomes the base with a
// zero offset. Decomposition is one level deep; chains of additions
// are not recursed through.
func (t *Target) SelectAddr(g *dag.Graph, addr dag.Value) (base, offset dag.Value, ok bool) {
	n := g.NodeAt(addr.Node)
	switch n.Op {
	case dag.FrameSlot:
		return g.TargetFrameSlot(n.Slot), g.TargetConstant(0), true
	case dag.TargetSymbol:
		return dag.Value{}, dag.Value{}, false
	case dag.Add:
		if imm, isConst := constImm(g, n.Args[1]); isConst && fitsSigned(imm, t.OffsetBits) {
			base = n.Args[0]
			if bn := g.NodeAt(base.Node); bn.Op == dag.FrameSlot {
				base = g.TargetFrameSlot(bn.Slot)
			}
			return base, g.TargetConstant(imm), true
		}
	}
	return addr, g.TargetConstant(0), true
}

// constImm returns the payload of an embedded constant operand.
func constImm(g *dag.Graph, v dag.Value) (int64, bool) {
	if n := g.NodeAt(v.Node); n.Op == dag.Constant {
		return n.Imm, true
	}
	return 0, false
}

// fitsSigned reports whether imm fits in a signed bits-wide immediate.
func fitsSigned(imm int64, bits uint) bool {
	return imm>>(bits-1) == 0 || imm>>(bits-1) == -1
}

// fitsUnsigned reports whether imm fits in an unsigned bits-wide
// immediate.
func fitsUnsigned(imm int64, bits uint) bool {
	return imm >= 0 && imm>>bits == 0
}
