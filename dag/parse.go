package dag

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var opByName = map[string]Op{
	"register":  Register,
	"const":     Constant,
	"frameslot": FrameSlot,
	"symbol":    Symbol,
	"add":       Add,
	"sub":       Sub,
	"mul":       Mul,
	"mulhs":     MulHiS,
	"mulhu":     MulHiU,
	"divs":      DivS,
	"divu":      DivU,
	"rems":      RemS,
	"remu":      RemU,
	"and":       And,
	"or":        Or,
	"xor":       Xor,
	"shl":       Shl,
	"lshr":      LShr,
	"ashr":      AShr,
	"load":      Load,
	"store":     Store,
}

var opArity = map[Op]int{
	Add: 2, Sub: 2, Mul: 2,
	MulHiS: 2, MulHiU: 2,
	DivS: 2, DivU: 2, RemS: 2, RemU: 2,
	And: 2, Or: 2, Xor: 2,
	Shl: 2, LShr: 2, AShr: 2,
	Load: 1, Store: 2,
}

// Parse reads the textual form of one block's pre-selection DAG.
//
// Each line defines a node: an optional "%name =" assignment, a
// generic opcode, then operands. Leaf opcodes take a literal payload;
// all others take previously defined %name references. The node on
// the final line becomes the graph root. Blank lines and ";" comments
// are skipped.
func Parse(r io.Reader) (*Graph, error) {
	g := NewGraph()
	defs := make(map[string]Value)
	s := bufio.NewScanner(r)
	line := 0
	var last Value
	any := false
	for s.Scan() {
		line++
		text := s.Text()
		if i := strings.IndexByte(text, ';'); i != -1 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		v, name, err := parseNode(g, defs, fields)
		if err != nil {
			return nil, fmt.Errorf("dag: line %d: %w", line, err)
		}
		if name != "" {
			defs[name] = v
		}
		last = v
		any = true
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if !any {
		return nil, fmt.Errorf("dag: empty graph")
	}
	g.Root = last
	return g, nil
}

func parseNode(g *Graph, defs map[string]Value, fields []string) (Value, string, error) {
	name := ""
	if strings.HasPrefix(fields[0], "%") {
		if len(fields) < 3 || fields[1] != "=" {
			return Value{}, "", fmt.Errorf("malformed assignment")
		}
		name = fields[0][1:]
		fields = fields[2:]
	}
	op, ok := opByName[fields[0]]
	if !ok {
		return Value{}, "", fmt.Errorf("unrecognized opcode: %s", fields[0])
	}
	args := fields[1:]

	switch op {
	case Register, Constant, FrameSlot, Symbol:
		if len(args) != 1 {
			return Value{}, "", fmt.Errorf("%v takes one payload", op)
		}
		if op == Symbol {
			return g.Symbol(args[0]), name, nil
		}
		imm, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return Value{}, "", fmt.Errorf("%v payload: %v", op, err)
		}
		switch op {
		case Register:
			return g.Register(int(imm)), name, nil
		case Constant:
			return g.Constant(imm), name, nil
		default:
			return g.FrameSlot(int(imm)), name, nil
		}
	}

	if len(args) != opArity[op] {
		return Value{}, "", fmt.Errorf("%v takes %d operands, got %d", op, opArity[op], len(args))
	}
	operands := make([]Value, len(args))
	for i, arg := range args {
		if !strings.HasPrefix(arg, "%") {
			return Value{}, "", fmt.Errorf("operand %d of %v is not a value reference: %s", i, op, arg)
		}
		def, ok := defs[arg[1:]]
		if !ok {
			return Value{}, "", fmt.Errorf("undefined value: %s", arg)
		}
		operands[i] = def
	}
	types := Types(I32)
	if op == Store {
		types = nil
	}
	return g.NewNode(op, types, operands...), name, nil
}
