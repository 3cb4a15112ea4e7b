package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/lexion/automata"
	"github.com/npillmayer/lexion/grammar"
	"github.com/npillmayer/lexion/scan"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// tracer traces with key 'lexion.repl'.
func tracer() tracing.Trace {
	return tracing.Select("lexion.repl")
}

// main() starts an interactive CLI where users load a lexical grammar,
// inspect the compiled automaton, and scan sample inputs. It is intended
// as a sandbox during the early phase of grammar development: type a line,
// see its tokens.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	gfile := flag.String("grammar", "", "Lexical grammar file to load")
	minimize := flag.Bool("minimize", true, "Minimize the mode DFAs")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to the lexion grammar workbench")
	//
	repl, err := readline.New("lexion> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{
		repl: repl,
		cfg:  &automata.Config{Minimize: *minimize},
	}
	if *gfile != "" {
		if err := intp.load(*gfile); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
	}
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl *readline.Instance
	cfg  *automata.Config
	g    *grammar.Grammar
	auto *automata.Automaton
}

func (intp *Intp) load(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	g, err := grammar.Parse(filename, string(data))
	if err != nil {
		return err
	}
	auto, err := automata.Compile(g, intp.cfg)
	if err != nil {
		return err
	}
	intp.g, intp.auto = g, auto
	pterm.Info.Printf("loaded grammar %q: %d pattern(s), %d mode(s)\n",
		g.Name, len(g.Defs), auto.NumModes())
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		args := strings.SplitN(line, " ", 2)
		cmd := args[0]
		rest := ""
		if len(args) > 1 {
			rest = args[1]
		}
		quit, err := intp.Execute(cmd, rest)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Execute runs a single REPL command.
//
//	load <file>     load and compile a grammar file
//	tokens <input>  scan an input line and print its tokens
//	dump            print the compiled automaton's tables
//	regex <name>    print a pattern as a regular expression
//	help            list commands
//	quit            exit
//
func (intp *Intp) Execute(cmd, rest string) (bool, error) {
	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		pterm.Info.Println("commands: load <file> | tokens <input> | dump | regex <name> | quit")
		return false, nil
	case "load":
		if rest == "" {
			return false, fmt.Errorf("usage: load <file>")
		}
		return false, intp.load(rest)
	case "tokens":
		return false, intp.tokens(rest)
	case "dump":
		if intp.auto == nil {
			return false, fmt.Errorf("no grammar loaded")
		}
		intp.auto.Describe(os.Stdout)
		return false, nil
	case "regex":
		return false, intp.regex(rest)
	}
	// unprefixed lines are scanned like 'tokens'
	return false, intp.tokens(strings.TrimSpace(cmd + " " + rest))
}

func (intp *Intp) tokens(input string) error {
	if intp.auto == nil {
		return fmt.Errorf("no grammar loaded")
	}
	t := scan.New(intp.auto, []byte(input))
	for _, tok := range t.Tokens() {
		kind := t.KindName(tok.Kind)
		if tok.Kind < 0 {
			pterm.Error.Printf("%-12s %s %q\n", kind, tok.Span, t.Text(tok))
			continue
		}
		pterm.Info.Printf("%-12s %s %q\n", kind, tok.Span, t.Text(tok))
	}
	if t.Depth() > 1 {
		pterm.Error.Printf("input ends inside mode %q\n", t.Mode())
	}
	return nil
}

func (intp *Intp) regex(name string) error {
	if intp.g == nil {
		return fmt.Errorf("no grammar loaded")
	}
	def := intp.g.Def(name)
	if def == nil {
		return fmt.Errorf("no pattern named %q", name)
	}
	pterm.Info.Println(intp.g.Regex(def.Pattern))
	return nil
}
