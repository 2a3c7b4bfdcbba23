// diff is a small CLI to manually compare the token diffs of the libraries used for benchmarking.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/coconstruct/docdiff"
	"github.com/coconstruct/docdiff/internal/benchmarks"
	"github.com/coconstruct/docdiff/tokenize"
	"golang.org/x/tools/txtar"
)

type config struct {
	lib       string
	tokenizer string
	x, y      string
	txtar     string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.lib, "lib", "docdiff", "library to use for diffing")
	flag.StringVar(&cfg.tokenizer, "tokenizer", "uax29", "tokenizer for the inputs (uax29 or lines)")
	flag.StringVar(&cfg.txtar, "txtar", "", "use txtar file with sections x and y instead of two input files")
	flag.Parse()

	if cfg.txtar != "" {
		if flag.CommandLine.NArg() != 0 {
			fmt.Fprintf(os.Stderr, "error: usage: diff -txtar <file>\n")
			os.Exit(1)
		}
	} else {
		if flag.CommandLine.NArg() != 2 {
			fmt.Fprintf(os.Stderr, "error: usage: diff <x> <y>\n")
			os.Exit(1)
		}
		cfg.x = flag.CommandLine.Arg(0)
		cfg.y = flag.CommandLine.Arg(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	var lib *benchmarks.Impl
	for _, l := range benchmarks.Impls {
		if l.Name == cfg.lib {
			lib = &l
		}
	}
	if lib == nil {
		return fmt.Errorf("lib not found %q", cfg.lib)
	}
	tok, err := tokenize.New(cfg.tokenizer)
	if err != nil {
		return err
	}

	var x, y []byte
	if cfg.txtar != "" {
		ar, err := txtar.ParseFile(cfg.txtar)
		if err != nil {
			return err
		}
		for _, f := range ar.Files {
			switch f.Name {
			case "x":
				x = f.Data
			case "y":
				y = f.Data
			}
		}
	} else {
		x, err = os.ReadFile(cfg.x)
		if err != nil {
			return err
		}
		y, err = os.ReadFile(cfg.y)
		if err != nil {
			return err
		}
	}

	tx := docdiff.Flatten(tok.Tokenize(string(x)))
	ty := docdiff.Flatten(tok.Tokenize(string(y)))
	fmt.Printf("%s: %d source tokens, %d dest tokens, %d edits\n", lib.Name, len(tx), len(ty), lib.Diff(tx, ty))
	return nil
}
