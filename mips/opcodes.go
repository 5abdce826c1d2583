// Package mips implements instruction selection for the MIPS target.
//
package mips // import "github.com/chalonverse/llvm/mips"

import "github.com/chalonverse/llvm/dag"

// Machine opcodes.
const (
	ADDu dag.Op = dag.MachineTableStart + iota
	ADDiu
	SUBu
	AND
	ANDi
	OR
	ORi
	XOR
	XORi
	SLL
	SRL
	SRA
	SLLV
	SRLV
	SRAV
	LUi
	MULT
	MULTu
	DIV
	DIVu
	MFHI
	MFLO
	LW
	SW
)

// RegZero is the hardwired zero register.
const RegZero = 0

func init() {
	dag.RegisterOpNames(map[dag.Op]string{
		ADDu:  "ADDu",
		ADDiu: "ADDiu",
		SUBu:  "SUBu",
		AND:   "AND",
		ANDi:  "ANDi",
		OR:    "OR",
		ORi:   "ORi",
		XOR:   "XOR",
		XORi:  "XORi",
		SLL:   "SLL",
		SRL:   "SRL",
		SRA:   "SRA",
		SLLV:  "SLLV",
		SRLV:  "SRLV",
		SRAV:  "SRAV",
		LUi:   "LUi",
		MULT:  "MULT",
		MULTu: "MULTu",
		DIV:   "DIV",
		DIVu:  "DIVu",
		MFHI:  "MFHI",
		MFLO:  "MFLO",
		LW:    "LW",
		SW:    "SW",
	})
}
