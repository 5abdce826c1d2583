// Package dag implements the operation DAG for one basic block.
//
// Nodes are immutable once constructed and live in a per-graph arena
// addressed by stable IDs. Instruction selection never edits a node;
// it builds replacement nodes and redirects consumers.
//
package dag // import "github.com/chalonverse/llvm/dag"

import "fmt"

// Type is the type of one result value of a node.
type Type uint8

// Value types.
const (
	I32 Type = iota + 1

	// Flag is a side-channel pseudo-result. It carries no data; it
	// expresses a mandatory ordering dependency between the machine
	// instruction that defines it and the one that consumes it.
	Flag
)

func (t Type) String() string {
	switch t {
	case I32:
		return "i32"
	case Flag:
		return "flag"
	}
	return "typeerr"
}

// Op is the opcode tag of a node. Opcodes fall in three disjoint
// ranges: generic architecture-independent operations below
// CustomStart, custom target operations produced by an earlier
// lowering stage below MachineStart, and machine instructions above.
type Op uint16

// Generic operations.
const (
	Invalid Op = iota

	// Leaves.
	Register  // virtual register input
	Constant  // embedded integer constant
	FrameSlot // address of a slot in the function's frame
	Symbol    // global or external symbolic address

	// Integer arithmetic.
	Add
	Sub
	Mul
	MulHiS // high half of the signed double-width product
	MulHiU // high half of the unsigned double-width product
	DivS
	DivU
	RemS
	RemU

	// Bitwise operations.
	And
	Or
	Xor
	Shl
	LShr
	AShr

	// Memory operations.
	Load
	Store
)

// Opcode range boundaries.
const (
	// CustomStart is the first custom target opcode. Custom nodes are
	// created before selection and pass through it untouched.
	CustomStart Op = 0x100

	// MachineStart is the first machine opcode.
	MachineStart Op = 0x200

	// Target-concrete leaf forms shared by all targets.
	TargetConstant  = MachineStart
	TargetFrameSlot = MachineStart + 1
	TargetSymbol    = MachineStart + 2

	// MachineTableStart is the first opcode available to a target's
	// machine instruction set.
	MachineTableStart = MachineStart + 16
)

// Class is the opcode class of a node.
type Class uint8

// Opcode classes.
const (
	ClassGeneric Class = iota + 1
	ClassCustom
	ClassMachine
)

// Class returns the opcode class.
func (op Op) Class() Class {
	switch {
	case op < CustomStart:
		return ClassGeneric
	case op < MachineStart:
		return ClassCustom
	default:
		return ClassMachine
	}
}

// opNames maps target opcodes to names for printing. Targets register
// their machine and custom opcodes with RegisterOpNames.
var opNames = make(map[Op]string)

// RegisterOpNames registers printable names for target opcodes.
// Generic opcode names are fixed and cannot be overridden.
func RegisterOpNames(names map[Op]string) {
	for op, name := range names {
		if op.Class() == ClassGeneric {
			panic(fmt.Sprintf("dag: cannot rename generic opcode %v", op))
		}
		opNames[op] = name
	}
}

func (op Op) String() string {
	switch op {
	case Register:
		return "register"
	case Constant:
		return "const"
	case FrameSlot:
		return "frameslot"
	case Symbol:
		return "symbol"
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case MulHiS:
		return "mulhs"
	case MulHiU:
		return "mulhu"
	case DivS:
		return "divs"
	case DivU:
		return "divu"
	case RemS:
		return "rems"
	case RemU:
		return "remu"
	case And:
		return "and"
	case Or:
		return "or"
	case Xor:
		return "xor"
	case Shl:
		return "shl"
	case LShr:
		return "lshr"
	case AShr:
		return "ashr"
	case Load:
		return "load"
	case Store:
		return "store"
	case TargetConstant:
		return "tconst"
	case TargetFrameSlot:
		return "tframeslot"
	case TargetSymbol:
		return "tsymbol"
	}
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("op_%d", uint16(op))
}
