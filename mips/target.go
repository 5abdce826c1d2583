package mips

import "github.com/chalonverse/llvm/isel"

// DefaultOffsetBits is the signed width of the offset immediate in the
// MIPS I load/store encoding.
const DefaultOffsetBits = 16

// Target selects MIPS machine instructions for a legalized DAG.
type Target struct {
	// OffsetBits is the signed width of the offset immediate accepted
	// by the load/store addressing mode.
	OffsetBits uint

	rules isel.Table
}

// New constructs a Target with the MIPS I encoding parameters.
func New() *Target {
	t := &Target{OffsetBits: DefaultOffsetBits}
	t.rules = t.table()
	return t
}

// Rules returns the target rule table.
func (t *Target) Rules() isel.Table { return t.rules }
