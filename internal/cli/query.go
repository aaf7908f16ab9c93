package cli

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	flag "github.com/spf13/pflag"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/ancestry"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/session"
)

// QueryCmd returns the query command.
func QueryCmd(a *app) *Command {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.Bool("compact", false, "Print the query on one line")

	return &Command{
		Flags: fs,
		Usage: "query [flags]",
		Short: "Print the compiled search query",
		Long: `Compile the current filters into the backend search query and print it
as JSON. Absent fields mean "no constraint".`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			if err := requireArgs(args); err != nil {
				return err
			}

			compact, _ := fs.GetBool("compact")

			return a.view(func(s *session.Session) error {
				q := s.Query()

				var (
					data []byte
					err  error
				)

				if compact {
					data, err = json.Marshal(q)
				} else {
					data, err = json.MarshalIndent(q, "", "  ")
				}

				if err != nil {
					return fmt.Errorf("encode query: %w", err)
				}

				io.Println(string(data))

				return nil
			})
		},
	}
}

// EncodeCmd returns the encode command.
func EncodeCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("encode", flag.ContinueOnError),
		Usage: "encode",
		Short: "Print the share token for the current filters",
		Exec: func(_ context.Context, io *IO, args []string) error {
			if err := requireArgs(args); err != nil {
				return err
			}

			return a.view(func(s *session.Session) error {
				io.Println(s.Encode())

				return nil
			})
		},
	}
}

// RestoreCmd returns the restore command.
func RestoreCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("restore", flag.ContinueOnError),
		Usage: "restore <token>",
		Short: "Replace the filters with a share token",
		Long: `Replace the whole filter state with the one encoded in a share token.
On a malformed token the current filters are kept.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			if err := requireArgs(args, "token"); err != nil {
				return err
			}

			var unknown []string

			err := a.update(func(s *session.Session) error {
				if err := s.Restore(args[0]); err != nil {
					return err
				}

				tree := s.Model().Tree()

				for _, slot := range ancestry.Slots() {
					n := tree.Node(slot)
					if n.Empty() {
						continue
					}

					if _, ok := a.catalog.Character(n.Identity); !ok {
						unknown = append(unknown, fmt.Sprintf("%s=%d", slot, n.Identity))
					}
				}

				return nil
			})
			if err != nil {
				return err
			}

			for _, u := range unknown {
				io.Warn("unknown character "+u, "check the token source or load a catalog with --catalog")
			}

			io.Println("Restored")

			return nil
		},
	}
}

// ResetCmd returns the reset command.
func ResetCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("reset", flag.ContinueOnError),
		Usage: "reset",
		Short: "Clear every filter, slot and threshold",
		Exec: func(_ context.Context, io *IO, args []string) error {
			if err := requireArgs(args); err != nil {
				return err
			}

			err := a.update(func(s *session.Session) error {
				s.Reset()

				return nil
			})
			if err != nil {
				return err
			}

			io.Println("Reset")

			return nil
		},
	}
}
