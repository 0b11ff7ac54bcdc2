package prog

import (
	"strings"

	"github.com/go-air/boolsynth/op"
)

// String renders p in the line-oriented assembly format: one
// "<dest> = <op> <operands>" line per instruction, in program order.
func (p *Program) String() string {
	var b strings.Builder
	for i, ins := range p.ins {
		b.WriteString(p.Symbol(MaxVars+i, false))
		b.WriteString(" = ")
		writeInstruction(&b, p, ins)
		b.WriteByte('\n')
	}
	return b.String()
}

func writeInstruction(b *strings.Builder, p *Program, ins Instruction) {
	o := ins.Op
	label := op.DisplayLabel(o)
	a, bOperand := int(ins.A), int(ins.B)
	if op.DisplayReversed(o) {
		a, bOperand = bOperand, a
	}

	switch {
	case op.IsTrivial(o):
		b.WriteString(label)
	case op.IsUnary(o):
		b.WriteString(label)
		if len(label) > 1 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Symbol(a, true))
	default:
		if op.IsComplement(o) {
			b.WriteString("~(")
		} else if op.DisplayOperandCompl(o) {
			b.WriteString("~")
		}
		b.WriteString(p.Symbol(a, true))
		b.WriteByte(' ')
		b.WriteString(label)
		b.WriteByte(' ')
		b.WriteString(p.Symbol(bOperand, true))
		if op.IsComplement(o) {
			b.WriteByte(')')
		}
	}
}

// Expr renders p's last instruction as a fully parenthesized expression,
// recursively inlining operands that name earlier instructions.
func (p *Program) Expr() string {
	var b strings.Builder
	p.writeExpr(&b, p.Len()-1)
	return b.String()
}

func (p *Program) writeExpr(b *strings.Builder, i int) {
	ins := p.ins[i]
	o := ins.Op
	if op.IsTrivial(o) {
		b.WriteString(op.DisplayLabel(o))
		return
	}

	writeOperand := func(j int) {
		if j < MaxVars {
			b.WriteString(p.Symbol(j, false))
			return
		}
		p.writeExpr(b, j-MaxVars)
	}

	a, bOperand := int(ins.A), int(ins.B)
	if op.DisplayReversed(o) {
		a, bOperand = bOperand, a
	}

	if op.IsComplement(o) {
		b.WriteString(op.DisplayLabel(op.NotA))
	}
	if !op.IsUnary(o) {
		b.WriteByte('(')
	}

	if op.DisplayOperandCompl(o) && !op.IsUnary(o) {
		b.WriteString(op.DisplayLabel(op.NotA))
		wrap := a >= MaxVars
		if wrap {
			b.WriteByte('(')
		}
		writeOperand(a)
		if wrap {
			b.WriteByte(')')
		}
	} else {
		writeOperand(a)
	}

	if !op.IsUnary(o) {
		b.WriteByte(' ')
		b.WriteString(op.DisplayLabel(o))
		b.WriteByte(' ')
		writeOperand(bOperand)
		b.WriteByte(')')
	}
}
