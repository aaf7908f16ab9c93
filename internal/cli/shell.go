package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

const shellPrompt = "spk> "

var (
	errUnterminatedQuote = errors.New("unterminated quote")
	errNestedShell       = errors.New("already in the shell")
)

// ShellCmd returns the shell command.
func ShellCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("shell", flag.ContinueOnError),
		Usage: "shell",
		Short: "Interactive filter editing",
		Long: `Read commands interactively. Every spk command works without the "spk"
prefix; "help" lists them and "exit" leaves. Each command loads and saves
the session, so the query file updates after every change.`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			if err := requireArgs(args); err != nil {
				return err
			}

			return a.runShell(ctx, io)
		},
	}
}

// prompter reads one line of input.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

func (a *app) runShell(ctx context.Context, o *IO) error {
	p := a.newPrompter()
	defer p.Close()

	o.Println("spk shell - type 'help' for commands, 'exit' to leave")

	for ctx.Err() == nil {
		line, err := p.Prompt(shellPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p.AppendHistory(line)

		args, err := splitLine(line)
		if err != nil {
			o.Error(err)

			continue
		}

		switch args[0] {
		case "exit", "quit", "q":
			return nil
		case "help", "?":
			for _, c := range a.commands() {
				if c.Name() != "shell" {
					o.Println(c.HelpLine())
				}
			}

			continue
		case "shell":
			o.Error(errNestedShell)

			continue
		}

		a.dispatch(ctx, o, args)
	}

	return nil
}

// newPrompter uses a line editor with history on an interactive stdin and
// a plain line reader otherwise.
func (a *app) newPrompter() prompter {
	if f, ok := a.in.(*os.File); ok && f == os.Stdin {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		state.SetCompleter(a.complete)

		lp := &linerPrompter{State: state, history: a.historyFile()}
		if hf, err := os.Open(lp.history); err == nil {
			_, _ = state.ReadHistory(hf)
			_ = hf.Close()
		}

		return lp
	}

	in := a.in
	if in == nil {
		in = strings.NewReader("")
	}

	return &scanPrompter{scanner: bufio.NewScanner(in)}
}

func (a *app) historyFile() string {
	if home := a.env["HOME"]; home != "" {
		return filepath.Join(home, ".spk_history")
	}

	return ""
}

// complete offers command names for the first word.
func (a *app) complete(line string) []string {
	if strings.Contains(line, " ") {
		return nil
	}

	var out []string

	for _, c := range a.commands() {
		for _, name := range append([]string{c.Name()}, c.Aliases...) {
			if strings.HasPrefix(name, line) {
				out = append(out, name)
			}
		}
	}

	return out
}

type linerPrompter struct {
	*liner.State
	history string
}

func (p *linerPrompter) Close() error {
	if p.history != "" {
		if f, err := os.Create(p.history); err == nil {
			_, _ = p.WriteHistory(f)
			_ = f.Close()
		}
	}

	return p.State.Close()
}

type scanPrompter struct {
	scanner *bufio.Scanner
}

func (p *scanPrompter) Prompt(string) (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return p.scanner.Text(), nil
}

func (p *scanPrompter) AppendHistory(string) {}

func (p *scanPrompter) Close() error { return nil }

// splitLine splits on whitespace, keeping double- or single-quoted runs
// together.
func splitLine(line string) ([]string, error) {
	var (
		args  []string
		cur   strings.Builder
		quote rune
		inArg bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, errUnterminatedQuote
	}

	if inArg {
		args = append(args, cur.String())
	}

	return args, nil
}
