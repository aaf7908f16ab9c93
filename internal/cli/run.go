// Package cli implements the spk command line: global flag handling,
// configuration loading and every sub-command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/catalog"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/config"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/fs"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/logging"
)

// Run is the main entry point. Returns exit code.
// sigCh may be nil; when it delivers, the running command's context is
// cancelled.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globals := flag.NewFlagSet("spk", flag.ContinueOnError)
	globals.SetInterspersed(false)
	globals.SetOutput(&strings.Builder{})

	flagCwd := globals.StringP("cwd", "C", "", "Run as if started in `dir`")
	flagConfig := globals.StringP("config", "c", "", "Use specified config `file`")
	flagSession := globals.String("session", "", "Override session file `path`")
	flagCatalog := globals.String("catalog", "", "Override master data `file` (YAML)")
	flagLog := globals.String("log", "", "Log `mode`: off, dev or prod")
	flagHelp := globals.BoolP("help", "h", false, "Show help")

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	if err := globals.Parse(rest); err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, globals, commandNames())

		return 1
	}

	if globals.Changed("session") && strings.TrimSpace(*flagSession) == "" {
		fprintln(errOut, "error:", config.ErrSessionEmpty)
		fprintln(errOut)
		printUsage(errOut, globals, commandNames())

		return 1
	}

	cmdArgs := globals.Args()

	if *flagHelp || len(cmdArgs) == 0 {
		printUsage(out, globals, commandNames())

		return 0
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: *flagCwd,
		ConfigPath:      *flagConfig,
		SessionOverride: *flagSession,
		CatalogOverride: *flagCatalog,
		LogOverride:     *flagLog,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	logger, err := logging.New(cfg.Log, errOut)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}
	defer logger.Sync()

	md, err := loadCatalog(cfg)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	a := &app{
		cfg:     &cfg,
		catalog: md,
		fs:      fs.NewReal(),
		log:     logger,
		in:      in,
		env:     env,
	}

	o := NewIO(out, errOut)

	code := a.dispatch(ctx, o, cmdArgs)
	if code != 0 {
		return code
	}

	return o.Finish()
}

func loadCatalog(cfg config.Config) (*catalog.MasterData, error) {
	if cfg.CatalogAbs == "" {
		return catalog.Default(), nil
	}

	return catalog.Load(cfg.CatalogAbs)
}

// commands returns every sub-command bound to a.
func (a *app) commands() []*Command {
	return []*Command{
		AddCmd(a),
		SetCmd(a),
		RmCmd(a),
		AssignCmd(a),
		ClearCmd(a),
		TreeCmd(a),
		ScalarsCmd(a),
		ChipsCmd(a),
		DropCmd(a),
		QueryCmd(a),
		EncodeCmd(a),
		RestoreCmd(a),
		ResetCmd(a),
		CatalogCmd(a),
		ShellCmd(a),
		PrintConfigCmd(a),
	}
}

func commandNames() []string {
	var a app

	cmds := a.commands()
	lines := make([]string, 0, len(cmds))

	for _, c := range cmds {
		lines = append(lines, c.HelpLine())
	}

	return lines
}

// dispatch runs the command named by args[0]. The shell reuses it for every
// line it reads.
func (a *app) dispatch(ctx context.Context, o *IO, args []string) int {
	name := args[0]

	for _, c := range a.commands() {
		if !c.Matches(name) {
			continue
		}

		return c.Run(ctx, o, args[1:])
	}

	o.Error(fmt.Errorf("%w: %s", errUnknownCommand, name))

	return 1
}

var errUnknownCommand = errors.New("unknown command")

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, globals *flag.FlagSet, helpLines []string) {
	fprintln(w, `spk - breeding search filter compiler

Usage: spk [global flags] <command> [args]`)
	fprintln(w)
	fprintln(w, "Global flags:")

	var buf strings.Builder
	globals.SetOutput(&buf)
	globals.PrintDefaults()
	globals.SetOutput(&strings.Builder{})
	_, _ = fmt.Fprint(w, buf.String())

	fprintln(w)
	fprintln(w, "Commands:")

	for _, line := range helpLines {
		fprintln(w, line)
	}
}
