package prog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-air/boolsynth/op"
	"github.com/go-air/boolsynth/table"
)

func TestProgramPushPopClear(t *testing.T) {
	p := New(2)
	p.Push(Instruction{Op: op.And, A: 0, B: 1})
	require.Equal(t, 1, p.Len())
	p.Pop()
	require.Equal(t, 0, p.Len())
	p.Push(Instruction{Op: op.Or, A: 0, B: 1})
	p.Clear()
	require.Equal(t, 0, p.Len())
}

func TestProgramClone(t *testing.T) {
	p := New(2)
	p.Push(Instruction{Op: op.And, A: 0, B: 1})
	c := p.Clone()
	c.Push(Instruction{Op: op.NotA, A: MaxVars, B: MaxVars})
	require.Equal(t, 1, p.Len())
	require.Equal(t, 2, c.Len())
}

func TestSymbolInputDefaultNames(t *testing.T) {
	p := New(3)
	require.Equal(t, "A", p.Symbol(0, false))
	require.Equal(t, "@A", p.Symbol(0, true))
	require.Equal(t, "C", p.Symbol(2, false))
}

func TestSymbolNamedInputs(t *testing.T) {
	p := New(2)
	p.Symbols[0] = "x"
	p.Symbols[1] = "y"
	require.Equal(t, "@x", p.Symbol(0, true))
	require.Equal(t, "@y", p.Symbol(1, true))
}

func TestSymbolResultNames(t *testing.T) {
	p := New(2)
	require.Equal(t, "%0", p.Symbol(MaxVars, false))
	require.Equal(t, "%1", p.Symbol(MaxVars+1, false))
}

func TestAndProgramMatchesTable(t *testing.T) {
	p := New(2)
	p.Push(Instruction{Op: op.And, A: 0, B: 1})
	want, v, err := table.Parse("0001")
	require.NoError(t, err)
	require.Equal(t, 2, v)
	require.True(t, p.IsEquivalent(want))
	require.Equal(t, want, p.ComputeTable())
}

func TestXorProgramMatchesTable(t *testing.T) {
	p := New(2)
	p.Push(Instruction{Op: op.Xor, A: 0, B: 1})
	want, _, err := table.Parse("0110")
	require.NoError(t, err)
	require.True(t, p.IsEquivalent(want))
}

func TestNotAUnaryEncoding(t *testing.T) {
	p := New(1)
	p.Push(Instruction{Op: op.NotA, A: 0, B: 0})
	want, _, err := table.Parse("10")
	require.NoError(t, err)
	require.True(t, p.IsEquivalent(want))
}

func TestEval64MatchesComputeTable(t *testing.T) {
	p := New(3)
	p.Push(Instruction{Op: op.And, A: 0, B: 1})
	p.Push(Instruction{Op: op.Xor, A: MaxVars, B: 2})

	got := p.Eval64()
	want := p.ComputeTable()
	mask := uint64(1)<<8 - 1
	require.Equal(t, want.F, got&mask)
}

func TestIsEquivalentRespectsDontCare(t *testing.T) {
	p := New(2)
	p.Push(Instruction{Op: op.And, A: 0, B: 1})
	tab := table.Table{F: 0b1000, T: 0b1110} // row 1,2 don't-care
	require.True(t, p.IsEquivalent(tab))
}

func TestIsEquivalentRejectsMismatch(t *testing.T) {
	p := New(2)
	p.Push(Instruction{Op: op.Or, A: 0, B: 1})
	want, _, err := table.Parse("1000")
	require.NoError(t, err)
	require.False(t, p.IsEquivalent(want))
}

func TestStringRendersAssemblyLines(t *testing.T) {
	p := New(2)
	p.Push(Instruction{Op: op.And, A: 0, B: 1})
	s := p.String()
	require.Contains(t, s, "%0 = ")
	require.Contains(t, s, "and")
}

func TestExprRendersParenthesized(t *testing.T) {
	p := New(2)
	p.Push(Instruction{Op: op.And, A: 0, B: 1})
	require.Equal(t, "(A and B)", p.Expr())
}

func TestPushPastMaxLenPanics(t *testing.T) {
	p := New(1)
	for i := 0; i < MaxLen; i++ {
		p.Push(Instruction{Op: op.NotA, A: 0, B: 0})
	}
	require.Panics(t, func() {
		p.Push(Instruction{Op: op.NotA, A: 0, B: 0})
	})
}
