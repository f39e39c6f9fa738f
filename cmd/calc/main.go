// Command calc evaluates arithmetic expressions given as arguments, or runs an
// interactive shell reading one line at a time.
package main

import (
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/go-logr/stdr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc"
)

func main() {
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc [expression...]",
		Short: "Evaluate arithmetic expressions",
		Long: `calc evaluates each argument in order and prints its value. With no
arguments, it reads expressions from standard input one line at a time.
Variables assigned by one expression are visible to the ones after it.`,
		RunE:         run,
		SilenceUsage: true,
	}
	cmd.Flags().String("fmt", "", "result formatting verb (default %g)")
	cmd.Flags().StringArray("given", nil, "name=value variable definition (any number of times)")
	cmd.Flags().String("config", "", "YAML file with format, prompt, and vars")
	cmd.Flags().Bool("no-color", false, "do not color error messages")
	cmd.Flags().CountP("verbose", "v", "log assignments to stderr; repeat to log tokens and trees")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg := defaultConfig()
	if name, _ := cmd.Flags().GetString("config"); name != "" {
		var err error
		cfg, err = loadConfig(name)
		if err != nil {
			return err
		}
	}
	if v, _ := cmd.Flags().GetString("fmt"); v != "" {
		cfg.Format = v
	}

	v, _ := cmd.Flags().GetCount("verbose")
	stdr.SetVerbosity(v)
	logger := stdr.New(log.New(cmd.ErrOrStderr(), "", 0))
	c := calc.New(calc.Logger(logger))
	if err := cfg.define(c); err != nil {
		return err
	}
	givens, _ := cmd.Flags().GetStringArray("given")
	for _, g := range givens {
		if err := given(c, g); err != nil {
			return err
		}
	}

	sh := &shell{
		calc:   c,
		format: cfg.Format,
		prompt: cfg.Prompt,
		out:    cmd.OutOrStdout(),
		errc:   color.New(color.FgRed),
	}
	if nc, _ := cmd.Flags().GetBool("no-color"); nc {
		sh.errc.DisableColor()
	}
	if len(args) > 0 {
		return sh.args(args)
	}
	return sh.run(cmd.InOrStdin())
}

// given evaluates a name=value definition and defines the variable.
func given(c *calc.Calculator, s string) error {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 {
		return errors.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	name := strings.TrimSpace(d[0])
	v, err := c.Eval(strings.TrimSpace(d[1]))
	if err != nil {
		return errors.Wrapf(err, "setting %s", name)
	}
	c.Define(name, v)
	return nil
}
