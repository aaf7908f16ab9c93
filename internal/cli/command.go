package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command is one spk sub-command. Constructors build a fresh FlagSet on
// every call, so a Command is parsed at most once.
type Command struct {
	Flags *flag.FlagSet

	// Usage follows "spk " in help output; its first word is the name.
	Usage string

	// Aliases are alternative names accepted by the dispatcher and the shell.
	Aliases []string

	Short string

	// Long replaces Short in "spk <cmd> --help" when set.
	Long string

	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// Matches reports whether name selects c.
func (c *Command) Matches(name string) bool {
	return c.Name() == name || slices.Contains(c.Aliases, name)
}

// HelpLine formats c for the command listing.
func (c *Command) HelpLine() string {
	short := c.Short
	if len(c.Aliases) > 0 {
		short += " (alias: " + strings.Join(c.Aliases, ", ") + ")"
	}

	return fmt.Sprintf("  %-34s %s", c.Usage, short)
}

// PrintHelp writes the usage, description, aliases and flag defaults.
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: spk", c.Usage)
	o.Println()

	if c.Long != "" {
		o.Println(c.Long)
	} else {
		o.Println(c.Short)
	}

	if len(c.Aliases) > 0 {
		o.Println()
		o.Println("Aliases:", strings.Join(c.Aliases, ", "))
	}

	if c.Flags == nil || !c.Flags.HasFlags() {
		return
	}

	o.Println()
	o.Println("Flags:")
	o.Printf("%s", c.Flags.FlagUsages())
}

// Run parses args and executes c, returning the exit code. Flag errors
// are followed by the command help; execution errors are not.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{})

	err := c.Flags.Parse(args)

	switch {
	case errors.Is(err, flag.ErrHelp):
		c.PrintHelp(o)

		return 0
	case err != nil:
		o.Error(err)
		o.ErrPrintln()
		c.PrintHelp(o)

		return 1
	}

	if err := c.Exec(ctx, o, c.Flags.Args()); err != nil {
		o.Error(err)

		return 1
	}

	return 0
}
