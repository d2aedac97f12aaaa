package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/peterh/liner"
	"gopkg.in/yaml.v3"

	"github.com/jacoelho/pythonic"
)

const historyFile = ".pycalc_history"

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pycalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	expr := fs.String("e", "", "evaluate the given statements and exit")
	format := fs.String("format", "repr", "result format: repr, str, pretty, json or yaml")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [-e statements] [-format repr|str|pretty|json|yaml] [script]\n\n", fs.Name()),
			writeln(stderr, "Evaluates Python-like expressions over dynamic values."),
			writeln(stderr, "Without -e or a script it starts an interactive session."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	printer, ok := printers[*format]
	if !ok {
		if err := writef(stderr, "error: unknown format %q\n", *format); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}
	out := &session{calc: newCalc(), print: printer, stdout: stdout, stderr: stderr}

	switch rest := fs.Args(); {
	case *expr != "":
		return out.script(strings.NewReader(*expr))
	case len(rest) == 1:
		f, err := os.Open(rest[0])
		if err != nil {
			if writeErr := writef(stderr, "error opening script: %v\n", err); writeErr != nil {
				return 1
			}
			return 1
		}
		defer f.Close()
		return out.script(f)
	case len(rest) > 1:
		if err := writeln(stderr, "error: at most one script argument is accepted"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	case stdin == os.Stdin:
		return out.repl()
	default:
		return out.script(stdin)
	}
}

var printers = map[string]func(pythonic.Value) (string, error){
	"repr": func(v pythonic.Value) (string, error) { return v.Repr(), nil },
	"str":  func(v pythonic.Value) (string, error) { return v.String(), nil },
	"pretty": func(v pythonic.Value) (string, error) {
		return v.PrettyString(0, 2), nil
	},
	"json": func(v pythonic.Value) (string, error) {
		b, err := v.MarshalJSON()
		return string(b), err
	},
	"yaml": func(v pythonic.Value) (string, error) {
		b, err := yaml.Marshal(v)
		return strings.TrimSuffix(string(b), "\n"), err
	},
}

type session struct {
	calc   *calc
	print  func(pythonic.Value) (string, error)
	stdout io.Writer
	stderr io.Writer
}

// eval runs one line and writes its results. It reports whether the line
// succeeded.
func (s *session) eval(line string) (bool, error) {
	vals, runErr := s.calc.run(line)
	for _, v := range vals {
		text, err := s.print(v)
		if err != nil {
			runErr = err
			break
		}
		if err := writeln(s.stdout, text); err != nil {
			return false, err
		}
	}
	if runErr != nil {
		if err := writef(s.stderr, "error: %v\n", runErr); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// script evaluates r line by line and stops at the first failing line.
func (s *session) script(r io.Reader) int {
	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		ok, err := s.eval(sc.Text())
		if err != nil {
			return 1
		}
		if !ok {
			if err := writef(s.stderr, "stopped at line %d\n", lineNo); err != nil {
				return 1
			}
			return 1
		}
	}
	if err := sc.Err(); err != nil {
		if writeErr := writef(s.stderr, "error reading input: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	return 0
}

func (s *session) repl() int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(s.complete)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(">>> ")
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			_ = writeln(s.stdout)
			return 0
		case err != nil:
			_ = writef(s.stderr, "error reading input: %v\n", err)
			return 1
		}
		switch cmd := strings.TrimSpace(line); cmd {
		case "":
			continue
		case ":quit":
			return 0
		case ":vars":
			for _, name := range s.calc.names() {
				if err := writef(s.stdout, "%s = %s\n", name, s.calc.vars[name].Repr()); err != nil {
					return 1
				}
			}
			continue
		}
		if _, err := s.eval(line); err != nil {
			return 1
		}
		ln.AppendHistory(line)
	}
}

// complete offers variable and builtin names matching the last word of line.
func (s *session) complete(line string) []string {
	i := strings.LastIndexFunc(line, func(r rune) bool {
		return r != '_' && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9')
	})
	prefix, word := line[:i+1], line[i+1:]
	if word == "" {
		return nil
	}
	var out []string
	for _, name := range s.calc.names() {
		if strings.HasPrefix(name, word) {
			out = append(out, prefix+name)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(builtins)) {
		if strings.HasPrefix(name, word) {
			out = append(out, prefix+name+"(")
		}
	}
	return out
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
