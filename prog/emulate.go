package prog

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/go-air/boolsynth/op"
	"github.com/go-air/boolsynth/table"
)

// IsEquivalent reports whether p computes exactly the function required by
// t: for every row, if p's output is true the row must be in t.T
// (required-true-or-don't-care), and if false the row must not be in t.F
// (not required-true).
func (p *Program) IsEquivalent(t table.Table) bool {
	n := 1 << uint(p.Vars)
	for v := 0; v < n; v++ {
		res := p.evalRowFast(uint64(v))
		if res {
			if t.T>>uint(v)&1 == 0 {
				return false
			}
		} else {
			if t.F>>uint(v)&1 != 0 {
				return false
			}
		}
	}
	return true
}

// ComputeTable evaluates p on every row of its input space and returns the
// resulting fully-determined table (F == T, no don't-cares).
func (p *Program) ComputeTable() table.Table {
	n := 1 << uint(p.Vars)
	var result uint64
	for v := 0; v < n; v++ {
		if p.evalRowFast(uint64(v)) {
			result |= 1 << uint(v)
		}
	}
	return table.Table{F: result, T: result}
}

// evalRowFast runs the program once for input row v (bit i of v is input
// i's value) and returns the final instruction's output. Instruction i's
// result lives at register index MaxVars+i regardless of p.Vars, matching
// the addressing convention every Instruction.A/B operand already uses
// (see Program's doc comment), so the fast path applies when the highest
// register in play, MaxVars+len(p.ins), fits in 64 bits -- up to 58
// instructions, the same ceiling synth.CanonicalProgram relies on -- and
// falls back to a bitset.BitSet-backed register file for longer programs
// built by the compiler.
func (p *Program) evalRowFast(v uint64) bool {
	n := MaxVars + len(p.ins)
	if n <= 64 {
		regs := v
		var res bool
		for i, ins := range p.ins {
			a := regs>>ins.A&1 != 0
			b := regs>>ins.B&1 != 0
			res = op.Eval(ins.Op, a, b)
			if res {
				regs |= 1 << uint(MaxVars+i)
			}
		}
		return res
	}
	regs := bitset.New(uint(n))
	for i := 0; i < p.Vars; i++ {
		if v>>uint(i)&1 != 0 {
			regs.Set(uint(i))
		}
	}
	var res bool
	for i, ins := range p.ins {
		a := regs.Test(uint(ins.A))
		b := regs.Test(uint(ins.B))
		res = op.Eval(ins.Op, a, b)
		if res {
			regs.Set(uint(MaxVars + i))
		}
	}
	return res
}

// Eval64 evaluates p for all rows of a <=6-variable input space in
// parallel, one uint64 register per program value, bit v of which holds
// that value's output on input row v. This is the bit-slicing idiom a
// combinational-circuit emulator uses to amortize evaluation across every
// possible input assignment in a single pass over the instructions instead
// of looping per row. ComputeTable and the CLI do not call it; they
// evaluate row by row through evalRowFast.
func (p *Program) Eval64() uint64 {
	if p.Vars > 6 {
		panic("prog: Eval64 requires at most 6 variables")
	}
	var regs [MaxLen + MaxVars]uint64
	for i := 0; i < p.Vars; i++ {
		regs[i] = inputColumn(i)
	}
	var last uint64
	for i, ins := range p.ins {
		a := regs[ins.A]
		b := regs[ins.B]
		r := bitParallelEval(ins.Op, a, b)
		regs[MaxVars+i] = r
		last = r
	}
	return last
}

// inputColumn returns the 64-bit column of values variable i takes across
// rows 0..63: bit v of the result is bit i of v.
func inputColumn(i int) uint64 {
	var col uint64
	for v := uint(0); v < 64; v++ {
		if v>>uint(i)&1 != 0 {
			col |= 1 << v
		}
	}
	return col
}

// bitParallelEval applies o to every bit position of a, b simultaneously,
// using the op's four truth-table bits as a lookup selected by (a,b)'s bit
// pair at each position, implemented with plain bitwise ops so no branch
// is taken per row.
func bitParallelEval(o op.Op, a, b uint64) uint64 {
	var result uint64
	for bitIdx := uint(0); bitIdx < 4; bitIdx++ {
		if uint8(o)>>bitIdx&1 == 0 {
			continue
		}
		// bitIdx encodes (aVal<<1)|bVal; select rows where a,b match it.
		aVal := bitIdx >> 1 & 1
		bVal := bitIdx & 1
		var aMask, bMask uint64
		if aVal != 0 {
			aMask = a
		} else {
			aMask = ^a
		}
		if bVal != 0 {
			bMask = b
		} else {
			bMask = ^b
		}
		result |= aMask & bMask
	}
	return result
}
