package cli

import (
	"context"
	"fmt"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/chip"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/session"
)

// AddCmd returns the add command.
func AddCmd(a *app) *Command {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.Int("min", filter.MinLevel, "Minimum level (1-9)")
	fs.Int("max", filter.MaxLevel, "Maximum level (1-9)")

	return &Command{
		Flags: fs,
		Usage: "add <category> [factor] [flags]",
		Short: "Add a factor filter",
		Long: `Add a factor filter to a category. The factor may be a numeric id, its
display text, or "any" (the default) for a wildcard row.

Categories: blue, pink, green, white, main-blue, main-pink, main-green,
main-white, optional-white, optional-main-white.

A wildcard row in an optional category is a placeholder and does not
constrain the search until a factor is chosen with "spk set".`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execAdd(io, a, fs, args)
		},
	}
}

func execAdd(io *IO, a *app, fs *flag.FlagSet, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: category", errMissingArg)
	}

	if len(args) > 2 {
		return fmt.Errorf("%w: %v", errTooManyArgs, args[2:])
	}

	c, err := filter.ParseCategory(args[0])
	if err != nil {
		return err
	}

	input := ""
	if len(args) == 2 {
		input = args[1]
	}

	factorID, err := a.catalog.ResolveFactor(c, input)
	if err != nil {
		return err
	}

	lo, _ := fs.GetInt("min")
	hi, _ := fs.GetInt("max")

	if err := checkLevel("min", lo); err != nil {
		return err
	}

	if err := checkLevel("max", hi); err != nil {
		return err
	}

	var added filter.FactorFilter

	err = a.update(func(s *session.Session) error {
		if c.SingleValued() && s.Model().Len(c) > 0 {
			io.Println("Replaced previous", c.String(), "filter")
		}

		added = s.Add(c, factorID)

		if fs.Changed("min") || fs.Changed("max") {
			if err := s.SetRange(added.ID, lo, hi); err != nil {
				return err
			}

			added.Min, added.Max = lo, hi
		}

		return nil
	})
	if err != nil {
		return err
	}

	io.Println("Added", describeEntry(a, c, added))

	return nil
}

// SetCmd returns the set command.
func SetCmd(a *app) *Command {
	fs := flag.NewFlagSet("set", flag.ContinueOnError)
	fs.String("factor", "", `Factor id, text, or "any"`)
	fs.Int("min", filter.MinLevel, "Minimum level (1-9)")
	fs.Int("max", filter.MaxLevel, "Maximum level (1-9)")

	return &Command{
		Flags: fs,
		Usage: "set <entry> [flags]",
		Short: "Change a filter's factor or level range",
		Long: `Change the factor or the level range of an existing filter. The entry is
the id printed by "spk add" or "spk chips" (e.g. 3 or f3). Flags left unset
keep their current value.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execSet(io, a, fs, args)
		},
	}
}

func execSet(io *IO, a *app, fs *flag.FlagSet, args []string) error {
	if err := requireArgs(args, "entry"); err != nil {
		return err
	}

	id, err := parseEntryID(args[0])
	if err != nil {
		return err
	}

	var (
		cat     filter.Category
		updated filter.FactorFilter
	)

	err = a.update(func(s *session.Session) error {
		m := s.Model()

		c, idx, ok := m.Find(id)
		if !ok {
			return fmt.Errorf("%w: %d", filter.ErrEntryNotFound, id)
		}

		cat = c
		current := m.Entries(c)[idx]

		if fs.Changed("factor") {
			raw, _ := fs.GetString("factor")

			factorID, err := a.catalog.ResolveFactor(c, raw)
			if err != nil {
				return err
			}

			if err := s.SetFactor(id, factorID); err != nil {
				return err
			}

			current.FactorID = factorID
		}

		if fs.Changed("min") || fs.Changed("max") {
			lo, hi := current.Min, current.Max

			if fs.Changed("min") {
				lo, _ = fs.GetInt("min")
			}

			if fs.Changed("max") {
				hi, _ = fs.GetInt("max")
			}

			if err := checkLevel("min", lo); err != nil {
				return err
			}

			if err := checkLevel("max", hi); err != nil {
				return err
			}

			if err := s.SetRange(id, lo, hi); err != nil {
				return err
			}

			current.Min, current.Max = lo, hi
		}

		updated = current

		return nil
	})
	if err != nil {
		return err
	}

	io.Println("Updated", describeEntry(a, cat, updated))

	return nil
}

// RmCmd returns the rm command.
func RmCmd(a *app) *Command {
	return &Command{
		Flags:   flag.NewFlagSet("rm", flag.ContinueOnError),
		Usage:   "rm <category> <index>",
		Aliases: []string{"remove"},
		Short:   "Remove a filter by position",
		Long:    `Remove the filter at a zero-based position within a category. Later
entries shift down by one. Use "spk drop" to remove by chip id instead.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execRm(io, a, args)
		},
	}
}

func execRm(io *IO, a *app, args []string) error {
	if err := requireArgs(args, "category", "index"); err != nil {
		return err
	}

	c, err := filter.ParseCategory(args[0])
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: %q", errInvalidIndex, args[1])
	}

	var removed filter.FactorFilter

	err = a.update(func(s *session.Session) error {
		if n := s.Model().Len(c); index < 0 || index >= n {
			return fmt.Errorf("%w: %d (%s has %d entries)", errInvalidIndex, index, c, n)
		}

		removed = s.Remove(c, index)

		return nil
	})
	if err != nil {
		return err
	}

	io.Println("Removed", describeEntry(a, c, removed))

	return nil
}

// describeEntry renders an entry like its chip, prefixed with the chip id.
func describeEntry(a *app, c filter.Category, e filter.FactorFilter) string {
	label := "Any"

	if !e.IsWildcard() {
		label = "ID: " + strconv.Itoa(e.FactorID)

		for _, d := range a.catalog.Lookup(c) {
			if d.ID == e.FactorID {
				label = d.Text

				break
			}
		}
	}

	text := fmt.Sprintf("%s %s: %s", chip.FilterChipID(e.ID), c, label)

	if c.Scope() == filter.ScopeOptional {
		return text
	}

	return text + " " + chip.FormatRange(e.Min, e.Max, c.Cap())
}
