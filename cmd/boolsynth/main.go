// Command boolsynth synthesizes the shortest straight-line Boolean program
// realizing a truth table or expression over up to six variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/go-air/boolsynth/boolsynthlog"
	"github.com/go-air/boolsynth/compile"
	"github.com/go-air/boolsynth/lex"
	"github.com/go-air/boolsynth/prog"
	"github.com/go-air/boolsynth/synth"
	"github.com/go-air/boolsynth/table"
)

// symbolOrderFlag adapts compile.SymbolOrder to flag.Value, the way
// cmd/gini defines a custom flag.Value for its assumption list instead of
// reaching for a third-party flags library.
type symbolOrderFlag struct {
	order compile.SymbolOrder
	set   bool
}

func (f *symbolOrderFlag) String() string {
	if !f.set {
		return "aa"
	}
	switch f.order {
	case compile.LexAscending:
		return "la"
	case compile.LexDescending:
		return "ld"
	case compile.AppearanceAscending:
		return "aa"
	case compile.AppearanceDescending:
		return "ad"
	default:
		return ""
	}
}

func (f *symbolOrderFlag) Set(s string) error {
	order, err := compile.ParseSymbolOrder(s)
	if err != nil {
		return err
	}
	f.order = order
	f.set = true
	return nil
}

// instructionSetFlag adapts synth.InstructionSet to flag.Value.
type instructionSetFlag struct {
	set synth.InstructionSet
	str string
}

func (f *instructionSetFlag) String() string {
	if f.str == "" {
		return "c"
	}
	return f.str
}

func (f *instructionSetFlag) Set(s string) error {
	set, err := synth.ParseInstructionSet(s)
	if err != nil {
		return err
	}
	f.set = set
	f.str = s
	return nil
}

var (
	exprFlag    = flag.String("expr", "", "input Boolean expression")
	tableFlag   = flag.String("table", "", "input truth table literal")
	greedyFlag  = flag.Bool("greedy", false, "emit every minimum-length program, not just the first")
	exprOutFlag = flag.Bool("print-expr", false, "render the result as an expression")
	progOutFlag = flag.Bool("print-program", false, "render the result as a program listing")
	tokenizeFlag = flag.Bool("tokenize", false, "print tokenizer output and exit")
	polishFlag  = flag.Bool("polish", false, "print reverse-Polish form and exit")
	compileFlag = flag.Bool("compile", false, "print the naive compiled program and exit")
	buildTableFlag = flag.Bool("build-table", false, "print the truth table of the input expression and exit")
	logLevelFlag = flag.String("log-level", "warn", "ambient logging verbosity: debug, info, warn, or error")

	symOrder = &symbolOrderFlag{}
	opsSet   = &instructionSetFlag{set: synth.CSet, str: "c"}
)

func init() {
	flag.StringVar(exprFlag, "e", "", "input Boolean expression (shorthand)")
	flag.StringVar(tableFlag, "t", "", "input truth table literal (shorthand)")
	flag.BoolVar(greedyFlag, "g", false, "emit every minimum-length program (shorthand)")
	flag.BoolVar(exprOutFlag, "x", false, "render the result as an expression (shorthand)")
	flag.BoolVar(progOutFlag, "p", false, "render the result as a program listing (shorthand)")
	flag.BoolVar(tokenizeFlag, "Z", false, "print tokenizer output and exit (shorthand)")
	flag.BoolVar(polishFlag, "P", false, "print reverse-Polish form and exit (shorthand)")
	flag.BoolVar(compileFlag, "C", false, "print the naive compiled program and exit (shorthand)")
	flag.BoolVar(buildTableFlag, "B", false, "print the truth table of the input expression and exit (shorthand)")

	flag.Var(symOrder, "symbol-order", "variable naming order: l/la/ld/a/aa/ad")
	flag.Var(symOrder, "s", "variable naming order (shorthand)")
	flag.Var(opsSet, "ops", "instruction palette: nand/nor/basic/c/x64")
}

const usage = `usage: %s [flags]

Synthesizes the shortest straight-line Boolean program realizing a truth
table (given directly, or derived from an expression).

Flags:
`

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	os.Exit(run())
}

func run() int {
	boolsynthlog.SetLevel(boolsynthlog.ParseLevel(*logLevelFlag))
	log := boolsynthlog.Default()

	if *exprFlag != "" && *tableFlag != "" {
		fmt.Fprintln(os.Stderr, "boolsynth: specify only one of -e/--expr or -t/--table")
		return 1
	}
	if *exprFlag == "" && *tableFlag == "" {
		fmt.Fprintln(os.Stderr, "boolsynth: one of -e/--expr or -t/--table is required")
		return 1
	}

	var (
		tab     table.Table
		vars    int
		symbols [prog.MaxVars]string
	)

	if *exprFlag != "" {
		toks, err := lex.Tokenize(*exprFlag)
		if err != nil {
			reportLexError(err)
			return 1
		}
		if *tokenizeFlag {
			printTokens(toks)
			return 0
		}
		if *polishFlag {
			rpn, err := compile.ToReversePolish(toks)
			if err != nil {
				fmt.Fprintln(os.Stderr, "boolsynth:", err)
				return 1
			}
			printTokens(rpn)
			return 0
		}

		p, err := compile.Compile(toks, symOrder.order)
		if err != nil {
			fmt.Fprintln(os.Stderr, "boolsynth:", err)
			return 1
		}
		if *compileFlag {
			fmt.Print(p.String())
			return 0
		}

		tab = p.ComputeTable()
		vars = p.Vars
		symbols = p.Symbols
		if *buildTableFlag {
			fmt.Println(tab.String(vars))
			printTruthTableGrid(p, tab, vars)
			return 0
		}
	} else {
		parsed, v, err := table.Parse(*tableFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, "boolsynth:", err)
			return 1
		}
		if v == 0 || v > table.MaxVars {
			fmt.Fprintln(os.Stderr, "boolsynth: table must encode between 1 and 6 variables")
			return 1
		}
		tab, vars = parsed, v
	}

	finder := synth.NewFinder(tab, vars, opsSet.set, *greedyFlag)
	finder.Logger = log

	any := false
	err := finder.Run(context.Background(), func(ins []prog.Instruction) {
		any = true
		p := prog.FromInstructions(vars, append([]prog.Instruction(nil), ins...))
		p.Symbols = symbols
		printResult(p)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "boolsynth:", err)
		return 1
	}
	if !any {
		fmt.Fprintln(os.Stderr, "boolsynth: no program found")
		return 1
	}
	return 0
}

func printResult(p *prog.Program) {
	showExpr := *exprOutFlag
	showProg := *progOutFlag
	if !showExpr && !showProg {
		showProg = true
	}
	if showExpr {
		fmt.Println(p.Expr())
	}
	if showProg {
		fmt.Print(p.String())
	}
}

// printTruthTableGrid renders one column per input symbol, one row per
// input combination, and a final "=" column holding the row's required
// value -- '1', '0', or 'x' for don't-care -- using tabwriter for column
// alignment instead of hand-computed padding.
func printTruthTableGrid(p *prog.Program, tab table.Table, vars int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 1, ' ', 0)
	for i := 0; i < vars; i++ {
		fmt.Fprintf(w, "%s\t", p.Symbol(i, false))
	}
	fmt.Fprintln(w, "=")

	for row := 0; row < 1<<uint(vars); row++ {
		for i := 0; i < vars; i++ {
			bit := row >> uint(i) & 1
			fmt.Fprintf(w, "%d\t", bit)
		}
		switch {
		case tab.F>>uint(row)&1 != 0:
			fmt.Fprintln(w, "1")
		case tab.T>>uint(row)&1 != 0:
			fmt.Fprintln(w, "x")
		default:
			fmt.Fprintln(w, "0")
		}
	}
	w.Flush()
}

func printTokens(toks []lex.Token) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 1, ' ', 0)
	for _, t := range toks {
		fmt.Fprintf(w, "%s\t%q\n", t.Type, t.Value)
	}
	w.Flush()
}

func reportLexError(err error) {
	var lexErr *lex.Error
	if ok := asLexError(err, &lexErr); ok {
		fmt.Fprintln(os.Stderr, "boolsynth:", lexErr.Error())
		fmt.Fprintln(os.Stderr, lexErr.Diagram())
		return
	}
	fmt.Fprintln(os.Stderr, "boolsynth:", err)
}

func asLexError(err error, target **lex.Error) bool {
	if le, ok := err.(*lex.Error); ok {
		*target = le
		return true
	}
	return false
}
