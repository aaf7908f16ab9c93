package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long: `Print the effective configuration as key=value lines, the files it was
read from, and the size of the loaded master data.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			if err := requireArgs(args); err != nil {
				return err
			}

			return execPrintConfig(io, a)
		},
	}
}

func execPrintConfig(io *IO, a *app) error {
	cfg := a.cfg

	catalogPath := cfg.CatalogAbs
	if catalogPath == "" {
		catalogPath = "(embedded)"
	}

	io.Println("effective_cwd=" + cfg.EffectiveCwd)
	io.Println("session=" + cfg.SessionAbs)
	io.Println("catalog=" + catalogPath)

	if cfg.QueryFileAbs != "" {
		io.Println("query_file=" + cfg.QueryFileAbs)
	}

	io.Println("log=" + cfg.Log)

	io.Println()
	io.Println("# sources")

	switch {
	case cfg.Sources.Global == "" && cfg.Sources.Project == "":
		io.Println("(defaults only)")
	default:
		if cfg.Sources.Global != "" {
			io.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			io.Println("project_config=" + cfg.Sources.Project)
		}
	}

	io.Println()
	io.Println("# catalog")

	for _, c := range filter.Categories() {
		if c.Scope() != filter.ScopeGlobal {
			continue
		}

		io.Printf("%s_factors=%d\n", c.Color(), len(a.catalog.Lookup(c)))
	}

	io.Printf("characters=%d\n", len(a.catalog.Characters()))

	return nil
}
