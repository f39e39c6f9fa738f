package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/zephyrtronium/calc"
)

type shell struct {
	calc   *calc.Calculator
	format string
	prompt string
	out    io.Writer
	// errc colors error messages.
	errc *color.Color
}

// eval evaluates one line and prints its value after prefix, if it has one.
// It reports whether evaluation succeeded.
func (sh *shell) eval(line, prefix string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return true
	case ":vars":
		for _, name := range sh.calc.Vars() {
			v, _ := sh.calc.Lookup(name)
			fmt.Fprintf(sh.out, "%s = "+sh.format+"\n", name, v)
		}
		return true
	}
	v, ok, err := sh.calc.Exec(line)
	if err != nil {
		sh.errc.Fprintln(sh.out, err)
		return false
	}
	if ok {
		fmt.Fprintf(sh.out, prefix+sh.format+"\n", v)
	}
	return true
}

// run reads and evaluates lines until in is exhausted. Errors in expressions
// are printed and do not stop the shell.
func (sh *shell) run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, sh.prompt)
		if !sc.Scan() {
			break
		}
		sh.eval(sc.Text(), "=> ")
	}
	return errors.Wrap(sc.Err(), "reading input")
}

// args evaluates each argument in order.
func (sh *shell) args(args []string) error {
	n := 0
	for _, a := range args {
		if !sh.eval(a, "") {
			n++
		}
	}
	if n != 0 {
		return errors.Errorf("%d of %d expressions failed", n, len(args))
	}
	return nil
}
