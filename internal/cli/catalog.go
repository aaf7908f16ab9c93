package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
)

const charactersTopic = "characters"

// CatalogCmd returns the catalog command.
func CatalogCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("catalog", flag.ContinueOnError),
		Usage: "catalog <category|characters>",
		Short: "List the factors of a category or the known characters",
		Exec: func(_ context.Context, io *IO, args []string) error {
			if err := requireArgs(args, "category"); err != nil {
				return err
			}

			if strings.EqualFold(args[0], charactersTopic) {
				for _, p := range a.catalog.Characters() {
					io.Printf("%-8d %s\n", p.ID, p.Name)
				}

				return nil
			}

			c, err := filter.ParseCategory(args[0])
			if err != nil {
				return err
			}

			for _, d := range a.catalog.Lookup(c) {
				io.Printf("%-8d %s\n", d.ID, d.Text)
			}

			return nil
		},
	}
}
