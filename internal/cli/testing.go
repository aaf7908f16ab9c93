package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CLI runs spk in-process against a private temp directory. HOME and
// XDG_CONFIG_HOME point inside it, so no user config leaks into a test.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI returns a CLI rooted at a fresh temp directory.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()

	return &CLI{
		t:   t,
		Dir: dir,
		Env: map[string]string{
			"HOME":            filepath.Join(dir, "home"),
			"XDG_CONFIG_HOME": filepath.Join(dir, "xdg"),
		},
	}
}

// Run executes "spk --cwd <Dir> args..." with empty stdin.
func (r *CLI) Run(args ...string) (stdout, stderr string, code int) {
	return r.RunWithInput("", args...)
}

// RunWithInput is Run with stdin, as used by the shell tests.
func (r *CLI) RunWithInput(stdin string, args ...string) (stdout, stderr string, code int) {
	var out, errOut bytes.Buffer

	argv := append([]string{"spk", "--cwd", r.Dir}, args...)
	code = Run(strings.NewReader(stdin), &out, &errOut, argv, r.Env, nil)

	return out.String(), errOut.String(), code
}

// MustRun requires exit code 0 and returns trimmed stdout.
func (r *CLI) MustRun(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code != 0 {
		r.t.Fatalf("spk %s: exit %d\nstderr: %s", strings.Join(args, " "), code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail requires a non-zero exit with nothing on stdout and returns
// trimmed stderr.
func (r *CLI) MustFail(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)

	switch {
	case code == 0:
		r.t.Fatalf("spk %s: want failure, got success\nstdout: %s", strings.Join(args, " "), stdout)
	case stdout != "":
		r.t.Fatalf("spk %s: failed but wrote stdout\nstdout: %s", strings.Join(args, " "), stdout)
	}

	return strings.TrimSpace(stderr)
}

// Query returns the compact compiled query of the current session.
func (r *CLI) Query() string {
	r.t.Helper()

	return r.MustRun("query", "--compact")
}

// Chips returns the active filter listing of the current session.
func (r *CLI) Chips() string {
	r.t.Helper()

	return r.MustRun("chips")
}

// ReadFile reads a file relative to the temp directory.
func (r *CLI) ReadFile(rel string) string {
	r.t.Helper()

	content, err := os.ReadFile(filepath.Join(r.Dir, rel))
	if err != nil {
		r.t.Fatalf("failed to read %s: %v", rel, err)
	}

	return string(content)
}

// WriteFile writes content to a file relative to the temp directory.
func (r *CLI) WriteFile(rel, content string) {
	r.t.Helper()

	path := filepath.Join(r.Dir, rel)

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		r.t.Fatalf("failed to create dir for %s: %v", rel, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		r.t.Fatalf("failed to write %s: %v", rel, err)
	}
}

// FileExists reports whether a file relative to the temp directory exists.
func (r *CLI) FileExists(rel string) bool {
	_, err := os.Stat(filepath.Join(r.Dir, rel))

	return err == nil
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
