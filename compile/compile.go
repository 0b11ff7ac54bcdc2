// Package compile resolves a token stream into variable indices, converts
// it to reverse Polish form via shunting-yard, and emits the resulting
// straight-line prog.Program -- the "naive" compiled form the superoptimizer
// then searches for a shorter equivalent of.
package compile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-air/boolsynth/lex"
	"github.com/go-air/boolsynth/op"
	"github.com/go-air/boolsynth/prog"
)

// SymbolOrder controls how distinct variable names in an expression are
// assigned to the 0..5 index table a prog.Program addresses.
type SymbolOrder int

const (
	// AppearanceAscending assigns indices in the order names first occur.
	AppearanceAscending SymbolOrder = iota
	// AppearanceDescending reverses AppearanceAscending's index assignment.
	AppearanceDescending
	// LexAscending assigns indices in alphabetical order.
	LexAscending
	// LexDescending assigns indices in reverse alphabetical order.
	LexDescending
)

// ParseSymbolOrder maps the -s/--symbol-order flag's short names (l, la,
// ld, a, aa, ad) to a SymbolOrder.
func ParseSymbolOrder(s string) (SymbolOrder, error) {
	switch strings.ToLower(s) {
	case "l", "la":
		return LexAscending, nil
	case "ld":
		return LexDescending, nil
	case "a", "aa":
		return AppearanceAscending, nil
	case "ad":
		return AppearanceDescending, nil
	default:
		return 0, fmt.Errorf("compile: invalid symbol order %q, must be l, la, ld, a, aa, or ad", s)
	}
}

// Error reports a compilation failure: too many distinct variables, no
// variables at all, mismatched parentheses, or an operator without enough
// operands (malformed expression).
type Error struct {
	Msg string
}

func (e *Error) Error() string { return "compile: " + e.Msg }

// Compile resolves toks' variable symbols per order, converts to reverse
// Polish notation via shunting-yard, and emits the equivalent prog.Program.
func Compile(toks []lex.Token, order SymbolOrder) (*prog.Program, error) {
	symbols, indexed, err := resolveSymbols(toks, order)
	if err != nil {
		return nil, err
	}

	rpn, err := shuntingYard(indexed)
	if err != nil {
		return nil, err
	}

	p := prog.New(len(symbols))
	for i, s := range symbols {
		p.Symbols[i] = s
	}
	if err := emit(p, rpn); err != nil {
		return nil, err
	}
	return p, nil
}

// indexedToken is a lex.Token with a literal's Value resolved to its 0..5
// operand index (unused for non-literal tokens).
type indexedToken struct {
	typ     lex.TokenType
	operand uint8
}

func resolveSymbols(toks []lex.Token, order SymbolOrder) ([]string, []indexedToken, error) {
	var appearance []string
	index := make(map[string]int)
	indexed := make([]indexedToken, len(toks))

	for i, t := range toks {
		if t.Type != lex.Literal {
			indexed[i] = indexedToken{typ: t.Type}
			continue
		}
		idx, ok := index[t.Value]
		if !ok {
			if len(appearance) == prog.MaxVars {
				return nil, nil, &Error{Msg: fmt.Sprintf("too many variables (at most %d allowed)", prog.MaxVars)}
			}
			idx = len(appearance)
			index[t.Value] = idx
			appearance = append(appearance, t.Value)
		}
		indexed[i] = indexedToken{typ: lex.Literal, operand: uint8(idx)}
	}

	if len(appearance) == 0 {
		return nil, nil, &Error{Msg: "expression does not contain any variables"}
	}

	symbols, remap := orderSymbols(appearance, order)
	for i := range indexed {
		if indexed[i].typ == lex.Literal {
			indexed[i].operand = uint8(remap[indexed[i].operand])
		}
	}
	return symbols, indexed, nil
}

// orderSymbols reorders names (currently in appearance order) per order,
// and returns, alongside the reordered names, a remap table from each
// name's original appearance index to its final index.
func orderSymbols(appearance []string, order SymbolOrder) ([]string, []int) {
	n := len(appearance)
	final := make([]string, n)
	remap := make([]int, n)

	switch order {
	case AppearanceAscending:
		copy(final, appearance)
		for i := range remap {
			remap[i] = i
		}
	case AppearanceDescending:
		for i, s := range appearance {
			final[n-1-i] = s
			remap[i] = n - 1 - i
		}
	case LexAscending, LexDescending:
		sorted := append([]string(nil), appearance...)
		sort.Strings(sorted)
		if order == LexDescending {
			for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
		final = sorted
		pos := make(map[string]int, n)
		for i, s := range sorted {
			pos[s] = i
		}
		for i, s := range appearance {
			remap[i] = pos[s]
		}
	}
	return final, remap
}

// precedence mirrors the shunting-yard table {NOT=1, NXOR=2, AND=3,
// NAND=4, ANDN=5, XOR=6, OR=7, NOR=8, CONS=9}; non-operator tokens have
// precedence 0 and never participate in a pop comparison.
func precedence(t lex.TokenType) int {
	switch t {
	case lex.Not:
		return 1
	case lex.Nxor:
		return 2
	case lex.And:
		return 3
	case lex.Nand:
		return 4
	case lex.Andn:
		return 5
	case lex.Xor:
		return 6
	case lex.Or:
		return 7
	case lex.Nor:
		return 8
	case lex.Cons:
		return 9
	default:
		return 0
	}
}

func tokenOp(t lex.TokenType) op.Op {
	switch t {
	case lex.Not:
		return op.NotA
	case lex.And:
		return op.And
	case lex.Nand:
		return op.Nand
	case lex.Or:
		return op.Or
	case lex.Nor:
		return op.Nor
	case lex.Xor:
		return op.Xor
	case lex.Nxor:
		return op.Nxor
	case lex.Cons:
		return op.AImpliesB
	case lex.Andn:
		return op.AAndNotB
	default:
		panic("compile: token type has no operation")
	}
}

// ToReversePolish converts an infix token stream to reverse Polish order
// without resolving literals to variable indices, for the CLI's -P display
// mode: the same shunting-yard algorithm shuntingYard runs during Compile,
// operating directly on lex.Token instead of the resolved indexedToken.
func ToReversePolish(toks []lex.Token) ([]lex.Token, error) {
	var output, stack []lex.Token

	pop := func() {
		output = append(output, stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}

	for _, t := range toks {
		switch t.Type {
		case lex.Literal:
			output = append(output, t)

		case lex.Not, lex.ParenOpen:
			stack = append(stack, t)

		case lex.ParenClose:
			for len(stack) > 0 && stack[len(stack)-1].Type != lex.ParenOpen {
				pop()
			}
			if len(stack) == 0 {
				return nil, &Error{Msg: "mismatched parentheses"}
			}
			stack = stack[:len(stack)-1]
			if len(stack) > 0 && stack[len(stack)-1].Type == lex.Not {
				pop()
			}

		default:
			for len(stack) > 0 {
				top := stack[len(stack)-1].Type
				p := precedence(top)
				if p >= 1 && p <= precedence(t.Type) {
					pop()
					continue
				}
				break
			}
			stack = append(stack, t)
		}
	}

	for len(stack) > 0 {
		if stack[len(stack)-1].Type == lex.ParenOpen {
			return nil, &Error{Msg: "mismatched parentheses"}
		}
		pop()
	}
	return output, nil
}

// shuntingYard converts indexed infix tokens to reverse Polish order.
func shuntingYard(toks []indexedToken) ([]indexedToken, error) {
	var output, stack []indexedToken

	pop := func() {
		output = append(output, stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}

	for _, t := range toks {
		switch t.typ {
		case lex.Literal:
			output = append(output, t)

		case lex.Not, lex.ParenOpen:
			stack = append(stack, t)

		case lex.ParenClose:
			for len(stack) > 0 && stack[len(stack)-1].typ != lex.ParenOpen {
				pop()
			}
			if len(stack) == 0 {
				return nil, &Error{Msg: "mismatched parentheses"}
			}
			stack = stack[:len(stack)-1] // discard '('
			if len(stack) > 0 && stack[len(stack)-1].typ == lex.Not {
				pop()
			}

		default:
			for len(stack) > 0 {
				top := stack[len(stack)-1].typ
				p := precedence(top)
				if p >= 1 && p <= precedence(t.typ) {
					pop()
					continue
				}
				break
			}
			stack = append(stack, t)
		}
	}

	for len(stack) > 0 {
		if stack[len(stack)-1].typ == lex.ParenOpen {
			return nil, &Error{Msg: "mismatched parentheses"}
		}
		pop()
	}
	return output, nil
}

// emit walks reverse-Polish tokens, pushing one instruction per operator
// onto p and threading an operand stack of compact-namespace indices.
func emit(p *prog.Program, rpn []indexedToken) error {
	var stack []uint8

	for _, t := range rpn {
		if t.typ == lex.Literal {
			stack = append(stack, t.operand)
			continue
		}

		o := tokenOp(t.typ)
		next := uint8(p.Len() + prog.MaxVars)

		if op.IsUnary(o) {
			if len(stack) < 1 {
				return &Error{Msg: "malformed expression"}
			}
			a := stack[len(stack)-1]
			stack[len(stack)-1] = next
			p.Push(prog.Instruction{Op: o, A: a, B: a})
			continue
		}

		if len(stack) < 2 {
			return &Error{Msg: "malformed expression"}
		}
		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]
		stack = append(stack, next)
		p.Push(prog.Instruction{Op: o, A: a, B: b})
	}

	if len(stack) != 1 {
		return &Error{Msg: "malformed expression"}
	}
	return nil
}
