// Package prog defines the straight-line Boolean program that the
// superoptimizer searches for: an ordered sequence of three-address
// instructions over a combined input/result operand namespace, along with
// the scalar and bit-parallel emulators used to test candidates against a
// table.Table and the printers used to render accepted programs.
package prog

import (
	"fmt"

	"github.com/go-air/boolsynth/op"
)

// MaxLen is the largest number of instructions a Program may hold. It is a
// defensive bound on programs built by the compiler (linear in expression
// length), not a semantic limit the superoptimizer is expected to reach:
// every function of up to table.MaxVars variables has a known minimum
// length far below this in the default instruction palette.
const MaxLen = 250

// MaxVars is the largest input arity a Program supports.
const MaxVars = 6

// Instruction is a three-address instruction: apply op.Op to two operands
// drawn from the combined namespace where values 0..V-1 name the program's
// inputs and values MaxVars.. name the results of earlier instructions,
// indexed MaxVars+i for the i'th instruction (0-based) -- the offset is
// always MaxVars (6), regardless of the program's actual input arity V, so
// that instruction-result operands never collide with a wider program's
// input range.
type Instruction struct {
	Op   op.Op
	A, B uint8
}

// Program is an ordered sequence of Instructions together with its input
// arity and, optionally, symbolic names for its inputs.
type Program struct {
	Vars    int
	Symbols [MaxVars]string
	ins     []Instruction
}

// New creates an empty Program over the given number of input variables.
func New(vars int) *Program {
	return &Program{Vars: vars, ins: make([]Instruction, 0, 16)}
}

// Len returns the number of instructions in p.
func (p *Program) Len() int { return len(p.ins) }

// At returns the i'th instruction.
func (p *Program) At(i int) Instruction { return p.ins[i] }

// Instructions returns the underlying instruction slice. Callers must not
// retain it past the next mutation of p.
func (p *Program) Instructions() []Instruction { return p.ins }

// Push appends an instruction. It panics if the program is already at
// MaxLen: a push beyond the bound indicates a caller bug (compile output
// growing unboundedly), not a user-input error.
func (p *Program) Push(ins Instruction) {
	if len(p.ins) >= MaxLen {
		panic("prog: push exceeds maximum program length")
	}
	p.ins = append(p.ins, ins)
}

// Pop removes the last instruction.
func (p *Program) Pop() {
	p.ins = p.ins[:len(p.ins)-1]
}

// Clear empties the program, keeping its Vars and Symbols.
func (p *Program) Clear() { p.ins = p.ins[:0] }

// Clone returns a deep copy of p.
func (p *Program) Clone() *Program {
	c := &Program{Vars: p.Vars, Symbols: p.Symbols}
	c.ins = append([]Instruction(nil), p.ins...)
	return c
}

// FromInstructions builds a Program of the given arity from a caller-owned
// instruction slice, copying it in.
func FromInstructions(vars int, ins []Instruction) *Program {
	p := New(vars)
	p.ins = append(p.ins, ins...)
	return p
}

// Symbol renders the display name of operand index i: an '@'-prefixed
// input name (or its own literal form without the '@' when
// inputPrefix is false) for i < MaxVars, or a %-prefixed destination name
// for a result operand.
func (p *Program) Symbol(i int, inputPrefix bool) string {
	if i < MaxVars {
		name := p.Symbols[i]
		if name == "" {
			name = string(rune('A' + i))
		}
		if inputPrefix {
			return "@" + name
		}
		return name
	}
	i -= MaxVars
	switch {
	case i < 10:
		return "%" + string(rune('0'+i))
	case i < 36:
		return "%" + string(rune('a'+i-10))
	case i < 62:
		return "%" + string(rune('A'+i-36))
	default:
		return fmt.Sprintf("%%t%d", i-62)
	}
}
