package mips

import (
	"github.com/chalonverse/llvm/dag"
	"github.com/chalonverse/llvm/isel"
)

// table builds the MIPS rule table, ordered most specific first to
// mirror the target description: memory operations, immediate forms,
// register forms, then constant materialization.
func (t *Target) table() isel.Table {
	return isel.Table{
		// Loads and stores decompose their address through the
		// addressing mode.
		{
			When:  func(g *dag.Graph, id dag.NodeID) bool { return t.matchMem(g, id, dag.Load) },
			Build: t.buildLoad,
		},
		{
			When:  func(g *dag.Graph, id dag.NodeID) bool { return t.matchMem(g, id, dag.Store) },
			Build: t.buildStore,
		},

		// Immediate forms.
		{When: binImm(dag.Add, immSigned16), Build: buildBinImm(ADDiu)},
		{When: binImm(dag.And, immUnsigned16), Build: buildBinImm(ANDi)},
		{When: binImm(dag.Or, immUnsigned16), Build: buildBinImm(ORi)},
		{When: binImm(dag.Xor, immUnsigned16), Build: buildBinImm(XORi)},
		{When: binImm(dag.Shl, immShamt), Build: buildBinImm(SLL)},
		{When: binImm(dag.LShr, immShamt), Build: buildBinImm(SRL)},
		{When: binImm(dag.AShr, immShamt), Build: buildBinImm(SRA)},

		// Register forms.
		{When: opIs(dag.Add), Build: buildBin(ADDu)},
		{When: opIs(dag.Sub), Build: buildBin(SUBu)},
		{When: opIs(dag.And), Build: buildBin(AND)},
		{When: opIs(dag.Or), Build: buildBin(OR)},
		{When: opIs(dag.Xor), Build: buildBin(XOR)},
		{When: opIs(dag.Shl), Build: buildBin(SLLV)},
		{When: opIs(dag.LShr), Build: buildBin(SRLV)},
		{When: opIs(dag.AShr), Build: buildBin(SRAV)},

		// Multiplication keeps the low accumulator half.
		{When: opIs(dag.Mul), Build: buildMulLo},

		// Constant materialization: small constants in one ADDiu off
		// the zero register, wide constants as LUi and ORi halves.
		{When: constImmWhere(immSigned16), Build: buildConstSmall},
		{When: opIs(dag.Constant), Build: buildConstWide},
	}
}

func (t *Target) matchMem(g *dag.Graph, id dag.NodeID, op dag.Op) bool {
	n := g.NodeAt(id)
	if n.Op != op {
		return false
	}
	_, _, ok := t.SelectAddr(g, n.Args[0])
	return ok
}

func (t *Target) buildLoad(s *isel.Selector, id dag.NodeID) dag.Value {
	g := s.Graph()
	base, offset, _ := t.SelectAddr(g, g.NodeAt(id).Args[0])
	base = s.Value(base)
	return g.NewNode(LW, dag.Types(dag.I32), base, offset)
}

func (t *Target) buildStore(s *isel.Selector, id dag.NodeID) dag.Value {
	g := s.Graph()
	val := s.Operand(id, 1)
	base, offset, _ := t.SelectAddr(g, g.NodeAt(id).Args[0])
	base = s.Value(base)
	return g.NewNode(SW, nil, val, base, offset)
}

func opIs(op dag.Op) func(*dag.Graph, dag.NodeID) bool {
	return func(g *dag.Graph, id dag.NodeID) bool { return g.NodeAt(id).Op == op }
}

func binImm(op dag.Op, fits func(int64) bool) func(*dag.Graph, dag.NodeID) bool {
	return func(g *dag.Graph, id dag.NodeID) bool {
		n := g.NodeAt(id)
		if n.Op != op {
			return false
		}
		imm, isConst := constImm(g, n.Args[1])
		return isConst && fits(imm)
	}
}

func constImmWhere(fits func(int64) bool) func(*dag.Graph, dag.NodeID) bool {
	return func(g *dag.Graph, id dag.NodeID) bool {
		n := g.NodeAt(id)
		return n.Op == dag.Constant && fits(n.Imm)
	}
}

func immSigned16(imm int64) bool   { return fitsSigned(imm, 16) }
func immUnsigned16(imm int64) bool { return fitsUnsigned(imm, 16) }
func immShamt(imm int64) bool      { return imm >= 0 && imm < 32 }

func buildBin(op dag.Op) func(*isel.Selector, dag.NodeID) dag.Value {
	return func(s *isel.Selector, id dag.NodeID) dag.Value {
		g := s.Graph()
		a := s.Operand(id, 0)
		b := s.Operand(id, 1)
		return g.NewNode(op, dag.Types(dag.I32), a, b)
	}
}

func buildBinImm(op dag.Op) func(*isel.Selector, dag.NodeID) dag.Value {
	return func(s *isel.Selector, id dag.NodeID) dag.Value {
		g := s.Graph()
		a := s.Operand(id, 0)
		imm := g.NodeAt(g.NodeAt(id).Args[1].Node).Imm
		return g.NewNode(op, dag.Types(dag.I32), a, g.TargetConstant(imm))
	}
}

func buildMulLo(s *isel.Selector, id dag.NodeID) dag.Value {
	g := s.Graph()
	a := s.Operand(id, 0)
	b := s.Operand(id, 1)
	prod := g.NewNode(MULT, dag.Types(dag.Flag), a, b)
	return g.NewNode(MFLO, dag.Types(dag.I32), prod)
}

func buildConstSmall(s *isel.Selector, id dag.NodeID) dag.Value {
	g := s.Graph()
	imm := g.NodeAt(id).Imm
	zero := g.Register(RegZero)
	return g.NewNode(ADDiu, dag.Types(dag.I32), zero, g.TargetConstant(imm))
}

func buildConstWide(s *isel.Selector, id dag.NodeID) dag.Value {
	g := s.Graph()
	imm := g.NodeAt(id).Imm
	hi := g.NewNode(LUi, dag.Types(dag.I32), g.TargetConstant(int64(uint32(imm)>>16)))
	lo := imm & 0xffff
	if lo == 0 {
		return hi
	}
	return g.NewNode(ORi, dag.Types(dag.I32), hi, g.TargetConstant(lo))
}
