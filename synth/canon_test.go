package synth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-air/boolsynth/op"
	"github.com/go-air/boolsynth/prog"
)

func TestCanonicalProgramTryPushUnary(t *testing.T) {
	c := NewCanonicalProgram(2, 2, 0b11)
	require.True(t, c.TryPushUnary(op.NotA, 0))
	require.Equal(t, 1, c.Size())
	ins := c.At(0)
	require.Equal(t, op.NotA, ins.Op)
	require.Equal(t, uint8(0), ins.A)
	require.Equal(t, uint8(0), ins.B)
}

func TestCanonicalProgramRejectsDoubleNegation(t *testing.T) {
	c := NewCanonicalProgram(1, 3, 0b1)
	require.True(t, c.TryPushUnary(op.NotA, 0))
	require.False(t, c.TryPushUnary(op.NotA, prog.MaxVars))
}

func TestCanonicalProgramRejectsComplementOperandPair(t *testing.T) {
	c := NewCanonicalProgram(1, 3, 0b1)
	require.True(t, c.TryPushUnary(op.NotA, 0))
	require.False(t, c.TryPushBinary(op.And, 0, prog.MaxVars))
}

func TestCanonicalProgramRejectsDuplicateInstruction(t *testing.T) {
	c := NewCanonicalProgram(2, 3, 0b11)
	require.True(t, c.TryPushBinary(op.And, 0, 1))
	require.False(t, c.TryPushBinary(op.And, 0, 1))
}

func TestCanonicalProgramPopRestoresUsedMask(t *testing.T) {
	c := NewCanonicalProgram(3, 8, 0b111)
	require.True(t, c.TryPushBinary(op.And, 0, 1))
	require.True(t, c.TryPushBinary(op.Or, prog.MaxVars, 2))
	c.Pop()
	require.Equal(t, 1, c.Size())
	// Popped instruction's reference to result 0 should no longer be
	// counted as used, so pushing a different instruction over the same
	// operands is admissible again.
	require.True(t, c.TryPushBinary(op.Xor, prog.MaxVars, 2))
}

// TestCanonicalProgramRejectsNonCanonicalCommutativeTree exercises rule 5's
// reshape check: among three operands of equal distance from the inputs, a
// commutative op's right-hand subexpression may only be the same op if the
// outer op's left operand sorts below the inner op's left operand.
func TestCanonicalProgramRejectsNonCanonicalCommutativeTree(t *testing.T) {
	// Canonical shape: outer.a (0) < inner.a (1), admitted.
	ok := NewCanonicalProgram(3, 10, 0b1)
	require.True(t, ok.TryPushBinary(op.And, 1, 2))
	require.True(t, ok.TryPushBinary(op.And, 0, prog.MaxVars))

	// Non-canonical shape: outer.a (1) > inner.a (0), rejected.
	bad := NewCanonicalProgram(3, 10, 0b1)
	require.True(t, bad.TryPushBinary(op.And, 0, 2))
	require.False(t, bad.TryPushBinary(op.And, 1, prog.MaxVars))
}

// TestCanonicalProgramRejectsSuboptimalAndOr exercises rule 6: an AND/OR
// whose first operand is transitively used inside its second operand's
// subexpression is always reducible to the second operand alone, so it is
// never admitted.
func TestCanonicalProgramRejectsSuboptimalAndOr(t *testing.T) {
	c := NewCanonicalProgram(2, 10, 0b11)
	require.True(t, c.TryPushUnary(op.NotA, 1))                   // ~B
	require.True(t, c.TryPushBinary(op.And, 0, prog.MaxVars))     // A and ~B
	// A and (A and ~B) == A and ~B: A is already reachable inside the
	// second operand's subexpression.
	require.False(t, c.TryPushBinary(op.And, 0, prog.MaxVars+1))
}

func TestCanonicalProgramRejectsLowerDistanceAfterHigher(t *testing.T) {
	c := NewCanonicalProgram(3, 10, 0b1)
	require.True(t, c.TryPushBinary(op.And, 0, 1))
	require.True(t, c.TryPushBinary(op.Or, prog.MaxVars, 2))
	// Distance 1, pushed after a distance-2 instruction: violates the
	// ascending-distance ordering rule.
	require.False(t, c.TryPushBinary(op.Xor, 0, 1))
}

func TestCanonicalProgramDeadCodeHorizon(t *testing.T) {
	c := NewCanonicalProgram(2, 1, 0b11)
	require.True(t, c.TryPushBinary(op.And, 0, 1))
	// Target length is exhausted after one instruction; referencing its
	// result again would need one more slot than remains.
	require.False(t, c.TryPushUnary(op.NotA, prog.MaxVars))
}
