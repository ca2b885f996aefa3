// Package typst runs the typst command line compiler.
package typst

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/faqbot"
)

// Compiler defaults.
const (
	DefaultExecutable = "typst"
	DefaultTimeout    = 30 * time.Second

	// ReplyFile is the name under which a quoted message is written.
	ReplyFile = "re.typ"
)

// Ensure Compiler implements faqbot.Compiler.
var _ faqbot.Compiler = (*Compiler)(nil)

// Compiler compiles documents with the typst binary in a fresh temporary
// directory, which also becomes the project root so the compiler cannot
// read anything else.
type Compiler struct {
	executable string
	timeout    time.Duration
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithExecutable sets the default typst binary.
func WithExecutable(path string) Option {
	return func(c *Compiler) {
		c.executable = path
	}
}

// WithTimeout bounds each invocation of the binary.
func WithTimeout(d time.Duration) Option {
	return func(c *Compiler) {
		c.timeout = d
	}
}

// NewCompiler creates a new Compiler.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		executable: DefaultExecutable,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile renders job.Document to PNG pages. A document that fails to
// compile yields a result with OK false and the diagnostics.
func (c *Compiler) Compile(ctx context.Context, job *faqbot.CompileJob) (*faqbot.CompileResult, error) {
	if job == nil || strings.TrimSpace(job.Document) == "" {
		return nil, faqbot.Errorf(faqbot.EINVALID, "empty document")
	}

	dir, err := os.MkdirTemp("", "typst-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if job.Reply != "" {
		if err := os.WriteFile(filepath.Join(dir, ReplyFile), []byte(job.Reply), 0o600); err != nil {
			return nil, err
		}
	}

	exe := job.Executable
	if exe == "" {
		exe = c.executable
	}

	input := job.Preamble + "\n" + job.Document
	_, stderr, ok, err := c.run(ctx, dir, input, exe, "compile", "-", "{0p}.png", "--root=.")
	if err != nil {
		return nil, err
	}

	// One extra line for the newline joining preamble and document.
	shift := strings.Count(job.Preamble, "\n") + 1
	result := &faqbot.CompileResult{
		OK:          ok,
		Diagnostics: ImproveDiagnostics(stderr, shift, filepath.ToSlash(dir)),
	}
	if !ok {
		return result, nil
	}

	result.Pages, err = readPages(dir)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Fonts lists all discovered fonts with their style variants.
func (c *Compiler) Fonts(ctx context.Context) (string, error) {
	return c.output(ctx, "fonts", "--variants")
}

// Version returns the output of typst --version.
func (c *Compiler) Version(ctx context.Context) (string, error) {
	return c.output(ctx, "--version")
}

func (c *Compiler) output(ctx context.Context, args ...string) (string, error) {
	stdout, stderr, ok, err := c.run(ctx, "", "", c.executable, args...)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", faqbot.Errorf(faqbot.EINTERNAL, "%s %s: %s", c.executable, strings.Join(args, " "), strings.TrimSpace(stderr))
	}
	return string(stdout), nil
}

// run executes exe in dir with input on stdin. ok reports a zero exit
// status. err is set only when the binary could not be run at all.
func (c *Compiler) run(ctx context.Context, dir, input, exe string, args ...string) (stdout []byte, stderr string, ok bool, err error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var out, errOut bytes.Buffer
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	err = cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, "", false, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out.Bytes(), errOut.String(), false, nil
	}
	if err != nil {
		return nil, "", false, err
	}
	return out.Bytes(), errOut.String(), true, nil
}

// readPages reads the PNG pages in dir. Pages are named with zero-padded
// numbers, so lexical order is page order.
func readPages(dir string) ([][]byte, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	pages := make([][]byte, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		pages = append(pages, data)
	}
	return pages, nil
}
