// Package table implements the truth-table representation that the
// superoptimizer searches against: a required-true mask, a required-true-
// or-don't-care mask, and the derived relevancy computation used to prune
// the search and to short-circuit trivial constant functions.
package table

import (
	"fmt"
	"strings"
)

// MaxVars is the largest number of input variables a Table can encode in a
// pair of uint64 masks (2^6 = 64 rows).
const MaxVars = 6

// Table encodes a Boolean function of up to MaxVars variables as two
// bitmasks of its 2^V rows. Bit i of F is set iff row i is required to be
// true. Bit i of T is set iff row i is required to be true or is a
// don't-care. The invariant F &^ T == 0 always holds: a row can't be
// required true without also being in "true-or-don't-care".
type Table struct {
	F uint64
	T uint64
}

// DontCare returns the mask of rows whose output is unconstrained.
func (t Table) DontCare() uint64 { return t.F ^ t.T }

// Mandatory returns F&T, the mask of rows required true. Since F&^T is
// always zero this equals F; don't-care rows, which are set only in T,
// are not included.
func (t Table) Mandatory() uint64 { return t.F & t.T }

// ErrMalformed is returned by Parse when the input isn't a valid truth
// table literal.
type ErrMalformed struct {
	Input  string
	Reason string
}

func (e *ErrMalformed) Error() string {
	return fmt.Sprintf("malformed truth table %q: %s", e.Input, e.Reason)
}

// Parse consumes a string of length 2^V, V in 0..MaxVars, over the
// alphabet {'0','1','x'}, with '.' treated as an ignored visual separator.
// Each position i (after stripping '.') yields row i's bits directly: '1'
// sets both F and T; '0' sets neither; 'x' sets only T.
func Parse(s string) (Table, int, error) {
	stripped := strings.ReplaceAll(s, ".", "")
	n := len(stripped)
	if n == 0 || n&(n-1) != 0 {
		return Table{}, 0, &ErrMalformed{s, "length must be a power of two"}
	}
	if n > 1<<MaxVars {
		return Table{}, 0, &ErrMalformed{s, "at most 64 rows are supported"}
	}
	var f, tt uint64
	for i := 0; i < n; i++ {
		switch stripped[i] {
		case '1':
			f |= 1 << uint(i)
			tt |= 1 << uint(i)
		case '0':
			// neither mask set
		case 'x':
			tt |= 1 << uint(i)
		default:
			return Table{}, 0, &ErrMalformed{s, fmt.Sprintf("invalid character %q, must be one of '0', '1', 'x', '.'", stripped[i])}
		}
	}
	v := log2Floor(uint64(n))
	return Table{F: f, T: tt}, v, nil
}

// String renders t back to truth table literal form for v variables,
// matching Parse's direct position-to-row mapping, grouping every four
// characters with a '.' separator the way the CLI does for readability.
func (t Table) String(v int) string {
	n := 1 << uint(v)
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i != 0 && i%4 == 0 {
			b.WriteByte('.')
		}
		row := uint(i)
		switch {
		case t.F>>row&1 != 0:
			b.WriteByte('1')
		case t.T>>row&1 != 0:
			b.WriteByte('x')
		default:
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Relevancy returns a v-bit mask with bit i set iff variable i is
// relevant: there exists some pair of rows differing only in bit i, neither
// of them a don't-care, whose required values differ. Don't-care rows can
// never prove relevancy, since pairs involving one are skipped.
func Relevancy(t Table, v int) uint64 {
	m := t.Mandatory()
	care := ^t.DontCare()
	var result uint64
	for i := 0; i < v; i++ {
		lo, hi := splitAlternating(m, uint(i))
		loCare, hiCare := splitAlternating(care, uint(i))
		if (lo^hi)&loCare&hiCare != 0 {
			result |= 1 << uint(i)
		}
	}
	return result
}

// splitAlternating partitions the low 64 bits of "bits" into two streams
// according to bit "magnitude" of each position's index: positions whose
// bit is 0 go to lo (in order), positions whose bit is 1 go to hi. Two
// rows that are identical except for bit `magnitude` of their index land
// at the same offset in lo and hi respectively, so lo == hi iff flipping
// that variable never changes the packed bit.
func splitAlternating(bits uint64, magnitude uint) (lo, hi uint64) {
	var idx [2]uint
	for i := uint(0); i < 64; i++ {
		bit := bits >> i & 1
		choice := i >> magnitude & 1
		if choice == 0 {
			lo |= bit << idx[0]
			idx[0]++
		} else {
			hi |= bit << idx[1]
			idx[1]++
		}
	}
	return lo, hi
}

func log2Floor(x uint64) int {
	n := 0
	for x > 1 {
		x >>= 1
		n++
	}
	return n
}
