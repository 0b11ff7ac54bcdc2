package synth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-air/boolsynth/boolsynthlog"
	"github.com/go-air/boolsynth/op"
	"github.com/go-air/boolsynth/prog"
	"github.com/go-air/boolsynth/table"
)

// InstructionSet is a small bag of up to eight ops, packed as 4-bit
// opcodes in a uint32 and iterated by right-shifting -- the on-the-wire
// encoding doesn't matter, only the set of ops it names.
type InstructionSet uint32

// Pack builds an InstructionSet out of up to eight ops, packed as 4-bit
// opcodes from the low nibble up. Iteration stops at the first zero
// nibble, so op.False (itself encoded as 0) can never be packed --
// harmless, since the trivial ops are never part of a search palette,
// only emitted directly by the Finder's trivial-table shortcut.
func Pack(ops ...op.Op) InstructionSet {
	if len(ops) == 0 || len(ops) > 8 {
		panic("synth: instruction set must name 1 to 8 ops")
	}
	var s InstructionSet
	for i, o := range ops {
		if o == op.False {
			panic("synth: op.False cannot be packed into an instruction set")
		}
		s |= InstructionSet(o) << uint(4*i)
	}
	return s
}

// ops returns the packed opcodes in order.
func (s InstructionSet) ops() []op.Op {
	var out []op.Op
	for s != 0 {
		out = append(out, op.Op(s&0xf))
		s >>= 4
	}
	return out
}

// BasicSet is {NOT_A, AND, OR}, the simplest non-trivial palette.
var BasicSet = Pack(op.NotA, op.And, op.Or)

// CSet is {NOT_A, AND, OR, XOR}, the default palette used when not
// otherwise specified.
var CSet = Pack(op.NotA, op.And, op.Or, op.Xor)

// NandSet and NorSet are the single-gate-universal palettes.
var (
	NandSet = Pack(op.NotA, op.Nand)
	NorSet  = Pack(op.NotA, op.Nor)
)

// X64Set is {NOT_A, AND, OR, XOR, A_ANDN_B}, a wider palette that trades a
// larger per-step branching factor for access to the andn gate some
// targets implement as a single instruction.
var X64Set = Pack(op.NotA, op.And, op.Or, op.Xor, op.AAndNotB)

// ParseInstructionSet maps the --ops flag's names (nand, nor, basic, c,
// x64) to a predefined InstructionSet.
func ParseInstructionSet(s string) (InstructionSet, error) {
	switch s {
	case "nand":
		return NandSet, nil
	case "nor":
		return NorSet, nil
	case "basic":
		return BasicSet, nil
	case "c":
		return CSet, nil
	case "x64":
		return X64Set, nil
	default:
		return 0, fmt.Errorf("synth: invalid instruction set %q, must be nand, nor, basic, c, or x64", s)
	}
}

// Sink receives each matching program the Finder discovers, as a slice
// valid only until Sink returns.
type Sink func(ins []prog.Instruction)

// Finder performs the iterative-deepening search for the shortest
// canonical program realizing a table.Table.
type Finder struct {
	Vars      int
	Table     table.Table
	Ops       InstructionSet
	Greedy    bool
	Logger    *boolsynthlog.Logger
	canon     *CanonicalProgram
	opsCache  []op.Op
	sink      Sink
	found     bool
}

// NewFinder creates a Finder for the given table over vars variables with
// the given instruction palette.
func NewFinder(t table.Table, vars int, ops InstructionSet, greedy bool) *Finder {
	return &Finder{
		Vars:   vars,
		Table:  t,
		Ops:    ops,
		Greedy: greedy,
	}
}

// logger returns f.Logger, or the package default if unset.
func (f *Finder) logger() *boolsynthlog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return boolsynthlog.Default()
}

// Run searches for the shortest program(s) realizing f.Table and invokes
// sink for each one found, in canonical-enumeration order. ctx is
// consulted once per outer iterative-deepening step (between target
// lengths), not inside the recursive enumerator, so a caller-side
// deadline aborts promptly without perturbing search order.
func (f *Finder) Run(ctx context.Context, sink Sink) error {
	f.sink = sink
	f.found = false

	if f.tryTrivial() || f.tryIdentity() {
		return nil
	}

	f.opsCache = f.Ops.ops()
	f.canon = NewCanonicalProgram(f.Vars, 0, table.Relevancy(f.Table, f.Vars))

	log := f.logger()
	for length := 1; ; length++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		f.canon.Reset(length)
		matched := f.search()
		log.Debug("search completed target length", "length", length, "matched", matched, "elapsed", time.Since(start))
		if matched {
			return nil
		}
	}
}

// tryTrivial emits the single-instruction {False} or {True} program when
// the table requires no rows true, or requires every row true-or-
// don't-care, respectively.
func (f *Finder) tryTrivial() bool {
	if f.Table.F == 0 {
		f.emit([]prog.Instruction{{Op: op.False}})
		return true
	}
	mask := fullMask(f.Vars)
	if f.Table.T&mask == mask {
		f.emit([]prog.Instruction{{Op: op.True}})
		return true
	}
	return false
}

// tryIdentity emits the single-instruction {A i} program for the first
// input i whose value alone realizes the table.
func (f *Finder) tryIdentity() bool {
	for i := 0; i < f.Vars; i++ {
		ins := []prog.Instruction{{Op: op.A, A: uint8(i), B: uint8(i)}}
		p := prog.FromInstructions(f.Vars, ins)
		if p.IsEquivalent(f.Table) {
			f.emit(ins)
			return true
		}
	}
	return false
}

// fullMask returns the mask of all 2^vars rows, relying on Go's defined
// shift-overflow behavior (a shift count >= the operand's bit width yields
// 0) so that vars == table.MaxVars wraps 1<<64 to 0 and the subsequent -1
// still produces the all-ones 64-bit mask, with no special case needed.
func fullMask(vars int) uint64 {
	n := uint64(1) << uint(1<<uint(vars))
	return n - 1
}

// search drives the recursive enumerator over the current target length
// and reports whether any match was found (useful to the greedy caller,
// which keeps searching the same length after the first hit).
func (f *Finder) search() bool {
	matchedAny := false
	f.enumerate(&matchedAny)
	return matchedAny
}

// enumerate is the recursive canonical-candidate generator of §4.5: at
// size == target length it tests the completed program; otherwise it
// tries every admissible instruction extension in canonical order. It
// returns true if the caller should stop (a non-greedy match was found).
func (f *Finder) enumerate(matchedAny *bool) bool {
	c := f.canon
	if c.Size() == c.TargetLen {
		p := prog.FromInstructions(f.Vars, instructionsOf(c))
		if p.IsEquivalent(f.Table) {
			*matchedAny = true
			f.found = true
			f.emit(instructionsOf(c))
			return !f.Greedy
		}
		return false
	}

	size := c.Size()
	vars := f.Vars
	fix := func(o int) int {
		if o >= vars {
			return o + (prog.MaxVars - vars)
		}
		return o
	}

	for _, o := range f.opsCache {
		unary := op.IsUnary(o)
		commutative := op.IsCommutative(o)

		for a := 0; a < size+vars; a++ {
			aOp := fix(a)

			if unary {
				if c.TryPushUnary(o, aOp) {
					if f.enumerate(matchedAny) {
						c.Pop()
						return true
					}
					c.Pop()
				}
				continue
			}

			bStart := 0
			if commutative {
				bStart = a + 1
			}
			for b := bStart; b < size+vars; b++ {
				bOp := fix(b)
				if c.TryPushBinary(o, aOp, bOp) {
					if f.enumerate(matchedAny) {
						c.Pop()
						return true
					}
					c.Pop()
				}
			}
		}
	}
	return false
}

func instructionsOf(c *CanonicalProgram) []prog.Instruction {
	out := make([]prog.Instruction, c.Size())
	for i := 0; i < c.Size(); i++ {
		out[i] = c.At(i)
	}
	return out
}

func (f *Finder) emit(ins []prog.Instruction) {
	f.sink(ins)
}
