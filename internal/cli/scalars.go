package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/session"
)

// ScalarsCmd returns the scalars command.
func ScalarsCmd(a *app) *Command {
	fs := flag.NewFlagSet("scalars", flag.ContinueOnError)
	fs.Int("support", 0, "Support card id (0 clears)")
	fs.Int("limit-break", 0, "Minimum support card limit break (0-4)")
	fs.Int("min-wins", 0, "Minimum win count")
	fs.Int("min-white", 0, "Minimum number of white sparks")
	fs.Int("rank", filter.DefaultMinRank, "Minimum parent rank")
	fs.Int("max-followers", filter.DefaultMaxFollowers, "Maximum follower count")
	fs.String("search", "", "Trainer id search text")
	fs.StringSlice("reset", nil, "Reset a scalar to its default (support, min-wins, min-white, rank, max-followers, search)")

	return &Command{
		Flags: fs,
		Usage: "scalars [flags]",
		Short: "Show or change the scalar thresholds",
		Long: `Show the scalar thresholds, or change them with flags. Resets are applied
before new values. Without flags the current values are printed.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execScalars(io, a, fs, args)
		},
	}
}

var scalarFlags = []string{"support", "limit-break", "min-wins", "min-white", "rank", "max-followers", "search", "reset"}

func execScalars(io *IO, a *app, fs *flag.FlagSet, args []string) error {
	if err := requireArgs(args); err != nil {
		return err
	}

	changed := false

	for _, name := range scalarFlags {
		if fs.Changed(name) {
			changed = true

			break
		}
	}

	if !changed {
		return a.view(func(s *session.Session) error {
			printScalars(io, s.Model().Scalars())

			return nil
		})
	}

	names, _ := fs.GetStringSlice("reset")

	resets := make([]filter.Scalar, 0, len(names))

	for _, name := range names {
		sc, err := filter.ParseScalar(name)
		if err != nil {
			return err
		}

		resets = append(resets, sc)
	}

	if lb, _ := fs.GetInt("limit-break"); lb < 0 || lb > filter.MaxLimitBreak {
		return fmt.Errorf("--limit-break must be 0-%d (got %d)", filter.MaxLimitBreak, lb)
	}

	var result filter.Scalars

	err := a.update(func(s *session.Session) error {
		for _, sc := range resets {
			s.ResetScalar(sc)
		}

		s.UpdateScalars(func(m *filter.Model) {
			applyScalarFlags(m, fs)
		})

		result = s.Model().Scalars()

		return nil
	})
	if err != nil {
		return err
	}

	printScalars(io, result)

	return nil
}

func applyScalarFlags(m *filter.Model, fs *flag.FlagSet) {
	if fs.Changed("support") || fs.Changed("limit-break") {
		current := m.Scalars()
		card, lb := current.SupportCardID, current.LimitBreak

		if fs.Changed("support") {
			card, _ = fs.GetInt("support")
		}

		if fs.Changed("limit-break") {
			lb, _ = fs.GetInt("limit-break")
		}

		m.SetSupport(card, lb)
	}

	if fs.Changed("min-wins") {
		n, _ := fs.GetInt("min-wins")
		m.SetMinWins(n)
	}

	if fs.Changed("min-white") {
		n, _ := fs.GetInt("min-white")
		m.SetMinWhiteSparks(n)
	}

	if fs.Changed("rank") {
		n, _ := fs.GetInt("rank")
		m.SetMinRank(n)
	}

	if fs.Changed("max-followers") {
		n, _ := fs.GetInt("max-followers")
		m.SetMaxFollowers(n)
	}

	if fs.Changed("search") {
		text, _ := fs.GetString("search")
		m.SetSearchIDs(text)
	}
}

func printScalars(io *IO, sc filter.Scalars) {
	io.Printf("support=%d\n", sc.SupportCardID)
	io.Printf("limit_break=%d\n", sc.LimitBreak)
	io.Printf("min_wins=%d\n", sc.MinWins)
	io.Printf("min_white=%d\n", sc.MinWhiteSparks)
	io.Printf("rank=%d\n", sc.MinRank)
	io.Printf("max_followers=%d\n", sc.MaxFollowers)
	io.Printf("search=%s\n", sc.SearchIDs)
}
