// Command eecalc is an interactive calculator over the eecalc engine. Each
// input line is one expression; a malformed expression reports its error
// and the session continues. With -s, variables and the results history
// persist between runs.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	"github.com/wverity/eecalc"
	"github.com/wverity/eecalc/session"
)

var (
	errColor    = color.New(color.FgRed)
	warnColor   = color.New(color.FgYellow)
	promptColor = color.New(color.FgCyan)
)

func main() {
	opts, optind, err := getopt.Getopts(os.Args, "p:s:qh")
	if err != nil {
		errColor.Fprintln(os.Stderr, err)
		usage(os.Stderr)
		os.Exit(1)
	}
	var (
		prec   uint = eecalc.DefaultPrec
		dbpath string
		quiet  bool
	)
	for _, opt := range opts {
		switch opt.Option {
		case 'p':
			n, err := strconv.Atoi(opt.Value)
			if err != nil || n <= 0 {
				errColor.Fprintf(os.Stderr, "invalid precision %q\n", opt.Value)
				os.Exit(1)
			}
			prec = uint(n)
		case 's':
			dbpath = opt.Value
		case 'q':
			quiet = true
		case 'h':
			usage(os.Stdout)
			return
		}
	}

	var history []eecalc.Operand
	lookup := func(n int) (eecalc.Operand, bool) {
		if n < 1 || n > len(history) {
			return eecalc.Operand{}, false
		}
		return history[n-1], true
	}
	ev := eecalc.NewEvaluator(eecalc.WithPrec(prec), eecalc.WithResults(lookup))

	var store *session.Store
	if dbpath != "" {
		store, err = session.Open(dbpath)
		if err != nil {
			errColor.Fprintln(os.Stderr, "open session:", err)
			os.Exit(1)
		}
		defer store.Close()
		if err := restore(ev, store, &history); err != nil {
			warnColor.Fprintln(os.Stderr, "restore session:", err)
		}
	}

	if args := os.Args[optind:]; len(args) > 0 {
		code := 0
		for _, a := range args {
			if !evalLine(ev, a, &history, store) {
				code = 1
			}
		}
		os.Exit(code)
	}

	sc := bufio.NewScanner(os.Stdin)
	for {
		if !quiet {
			promptColor.Fprint(os.Stdout, "> ")
		}
		if !sc.Scan() {
			break
		}
		line := sc.Text()
		switch line {
		case "":
			continue
		case "quit", "exit":
			return
		}
		evalLine(ev, line, &history, store)
	}
	if err := sc.Err(); err != nil {
		errColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// evalLine evaluates one expression, prints its result or error, and
// records the result in the history and, when a store is open, the session
// database. It reports whether the expression succeeded.
func evalLine(ev *eecalc.Evaluator, line string, history *[]eecalc.Operand, store *session.Store) bool {
	res, err := ev.EvalString(line)
	if err == nil {
		res, err = ev.Resolve(res)
	}
	if err != nil {
		errColor.Fprintln(os.Stderr, err)
		return false
	}
	fmt.Println(res)
	*history = append(*history, res)
	if store != nil {
		persist(ev, store, line, len(*history), res)
	}
	return true
}

func persist(ev *eecalc.Evaluator, store *session.Store, expr string, seq int, res eecalc.Operand) {
	if err := store.AppendResult(seq, expr, res.Kind().String(), res.String()); err != nil {
		warnColor.Fprintln(os.Stderr, "save result:", err)
	}
	ev.Symbols().Each(func(name string, v eecalc.Operand) {
		if err := store.SaveVariable(name, v.Kind().String(), v.String()); err != nil {
			warnColor.Fprintln(os.Stderr, "save variable:", err)
		}
	})
}

// restore loads persisted variables and the results history into the
// evaluator's session state.
func restore(ev *eecalc.Evaluator, store *session.Store, history *[]eecalc.Operand) error {
	vars, err := store.Variables()
	if err != nil {
		return err
	}
	for _, v := range vars {
		val, err := eecalc.ParseLiteral(v.Kind, v.Value, ev.Prec())
		if err != nil {
			return fmt.Errorf("variable %s: %v", v.Name, err)
		}
		ev.Symbols().Assign(ev.Symbols().Intern(v.Name), val)
	}
	results, err := store.Results()
	if err != nil {
		return err
	}
	for _, r := range results {
		val, err := eecalc.ParseLiteral(r.Kind, r.Value, ev.Prec())
		if err != nil {
			return fmt.Errorf("result %d: %v", r.Seq, err)
		}
		*history = append(*history, val)
	}
	return nil
}

func usage(w *os.File) {
	fmt.Fprintf(w, `usage: %s [-p bits] [-s file] [-q] [expression ...]

Evaluates expressions from the command line, or interactively from stdin.

  -p bits  precision of real computations (default %d)
  -s file  persist variables and results history in a SQLite session file
  -q       do not print the interactive prompt
  -h       show this help
`, os.Args[0], eecalc.DefaultPrec)
}
