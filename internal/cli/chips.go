package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/chip"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/session"
)

// ChipsCmd returns the chips command.
func ChipsCmd(a *app) *Command {
	return &Command{
		Flags:   flag.NewFlagSet("chips", flag.ContinueOnError),
		Usage:   "chips",
		Aliases: []string{"ls"},
		Short:   "List active filters",
		Long:    `List every active filter as "<chip-id>  <text>". Pass a chip id to
"spk drop" to remove it.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			if err := requireArgs(args); err != nil {
				return err
			}

			return a.view(func(s *session.Session) error {
				chips := s.Chips()
				if len(chips) == 0 {
					io.Println("No active filters")

					return nil
				}

				for _, c := range chips {
					io.Printf("%-20s %s\n", c.ID, c.Text())
				}

				return nil
			})
		},
	}
}

// DropCmd returns the drop command.
func DropCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("drop", flag.ContinueOnError),
		Usage: "drop <chip-id>",
		Short: "Remove an active filter by chip id",
		Exec: func(_ context.Context, io *IO, args []string) error {
			if err := requireArgs(args, "chip-id"); err != nil {
				return err
			}

			var dropped chip.Chip

			err := a.update(func(s *session.Session) error {
				var err error

				dropped, err = s.RemoveChip(args[0])

				return err
			})
			if err != nil {
				return err
			}

			io.Println("Dropped", dropped.Text())

			return nil
		},
	}
}
