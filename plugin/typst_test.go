package plugin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/faqbot"
	"github.com/fwojciec/faqbot/mock"
	"github.com/fwojciec/faqbot/plugin"
	"github.com/fwojciec/faqbot/typst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typstCommand(t *testing.T, cmds []*faqbot.Command, name string) *faqbot.Command {
	t.Helper()

	for _, cmd := range cmds {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not found", name)
	return nil
}

func okCompiler(jobs *[]*faqbot.CompileJob) *mock.Compiler {
	return &mock.Compiler{
		CompileFn: func(ctx context.Context, job *faqbot.CompileJob) (*faqbot.CompileResult, error) {
			*jobs = append(*jobs, job)
			return &faqbot.CompileResult{OK: true, Pages: [][]byte{[]byte("page")}}, nil
		},
	}
}

var noRegistry = &mock.PackageRegistry{
	LatestVersionsFn: func(ctx context.Context) (map[string]string, error) {
		return nil, errors.New("registry must not be called")
	},
}

func TestTypst_Commands(t *testing.T) {
	t.Parallel()

	cmds := plugin.NewTypst(&mock.Compiler{}, noRegistry, "typst-dev", "").Commands()

	var names []string
	for _, cmd := range cmds {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"typtyp", "typ", "typdev"}, names)
}

func TestTypst_Compile(t *testing.T) {
	t.Parallel()

	t.Run("compiles with profile preamble", func(t *testing.T) {
		t.Parallel()

		var jobs []*faqbot.CompileJob
		cmds := plugin.NewTypst(okCompiler(&jobs), noRegistry, "typst-dev", "").Commands()

		reply, err := typstCommand(t, cmds, "typ").Handler.Handle(context.Background(), &faqbot.Message{Text: "$x$"})

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "$x$", jobs[0].Document)
		assert.Equal(t, typst.PreambleFitPage, jobs[0].Preamble)
		assert.Empty(t, jobs[0].Executable)
		assert.Equal(t, [][]byte{[]byte("page")}, reply.Images)
		assert.True(t, reply.Recallable)
	})

	t.Run("writes cleaned quote to reply file", func(t *testing.T) {
		t.Parallel()

		var jobs []*faqbot.CompileJob
		cmds := plugin.NewTypst(okCompiler(&jobs), noRegistry, "typst-dev", "").Commands()

		_, err := typstCommand(t, cmds, "typtyp").Handler.Handle(context.Background(), &faqbot.Message{
			Text:   `#include "re.typ"`,
			Quoted: "/typtyp = Hello",
		})

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, `#include "re.typ"`, jobs[0].Document)
		assert.Equal(t, "= Hello", jobs[0].Reply)
		assert.Equal(t, typst.PreambleBasic, jobs[0].Preamble)
	})

	t.Run("compiles quote when text is empty", func(t *testing.T) {
		t.Parallel()

		var jobs []*faqbot.CompileJob
		cmds := plugin.NewTypst(okCompiler(&jobs), noRegistry, "typst-dev", "").Commands()

		_, err := typstCommand(t, cmds, "typtyp").Handler.Handle(context.Background(), &faqbot.Message{Quoted: "typ = Hi"})

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "= Hi", jobs[0].Document)
		assert.Empty(t, jobs[0].Reply)
	})

	t.Run("dev profile uses dev executable", func(t *testing.T) {
		t.Parallel()

		var jobs []*faqbot.CompileJob
		cmds := plugin.NewTypst(okCompiler(&jobs), noRegistry, "typst-dev", "bcc71ddb9").Commands()

		reply, err := typstCommand(t, cmds, "typdev").Handler.Handle(context.Background(), &faqbot.Message{Text: "= Dev"})

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "typst-dev", jobs[0].Executable)
		assert.Equal(t, typst.PreambleMinimal, jobs[0].Preamble)
		assert.Equal(t, "typst version: bcc71ddb9.", reply.Text)
	})

	t.Run("expands magic imports", func(t *testing.T) {
		t.Parallel()

		var jobs []*faqbot.CompileJob
		registry := &mock.PackageRegistry{
			LatestVersionsFn: func(ctx context.Context) (map[string]string, error) {
				return map[string]string{"cetz": "0.3.4"}, nil
			},
		}
		cmds := plugin.NewTypst(okCompiler(&jobs), registry, "typst-dev", "").Commands()

		reply, err := typstCommand(t, cmds, "typ").Handler.Handle(context.Background(), &faqbot.Message{Text: "!!cetz\n#canvas({})"})

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "#import \"@preview/cetz:0.3.4\": *;\n#canvas({})", jobs[0].Document)
		assert.Equal(t, "Using cetz 0.3.4.", reply.Text)
	})

	t.Run("replies with diagnostics and hints", func(t *testing.T) {
		t.Parallel()

		compiler := &mock.Compiler{
			CompileFn: func(ctx context.Context, job *faqbot.CompileJob) (*faqbot.CompileResult, error) {
				return &faqbot.CompileResult{Diagnostics: "error: unknown variable: foo"}, nil
			},
		}
		registry := &mock.PackageRegistry{
			LatestVersionsFn: func(ctx context.Context) (map[string]string, error) {
				return map[string]string{}, nil
			},
		}
		cmds := plugin.NewTypst(compiler, registry, "typst-dev", "").Commands()

		reply, err := typstCommand(t, cmds, "typ").Handler.Handle(context.Background(), &faqbot.Message{Text: "!!nope\n#foo"})

		require.NoError(t, err)
		assert.Empty(t, reply.Images)
		assert.Equal(t, "error: unknown variable: foo\nIgnoring “!!nope” because nope is not in package registry.", reply.Text)
		assert.True(t, reply.Recallable)
	})

	t.Run("returns registry error", func(t *testing.T) {
		t.Parallel()

		var jobs []*faqbot.CompileJob
		cmds := plugin.NewTypst(okCompiler(&jobs), noRegistry, "typst-dev", "").Commands()

		_, err := typstCommand(t, cmds, "typ").Handler.Handle(context.Background(), &faqbot.Message{Text: "!!cetz"})

		require.Error(t, err)
		assert.Empty(t, jobs)
	})
}

func TestTypst_SimpleCommands(t *testing.T) {
	t.Parallel()

	t.Run("lists fonts", func(t *testing.T) {
		t.Parallel()

		compiler := &mock.Compiler{
			FontsFn: func(ctx context.Context) (string, error) { return "DejaVu Sans Mono", nil },
		}
		cmds := plugin.NewTypst(compiler, noRegistry, "typst-dev", "").Commands()

		reply, err := typstCommand(t, cmds, "typtyp").Handler.Handle(context.Background(), &faqbot.Message{Text: " fonts "})

		require.NoError(t, err)
		assert.Equal(t, "DejaVu Sans Mono", reply.Text)
		assert.True(t, reply.Recallable)
	})

	t.Run("shows usage on empty input", func(t *testing.T) {
		t.Parallel()

		cmds := plugin.NewTypst(&mock.Compiler{}, noRegistry, "typst-dev", "").Commands()
		cmd := typstCommand(t, cmds, "typ")

		reply, err := cmd.Handler.Handle(context.Background(), &faqbot.Message{Text: "  "})

		require.NoError(t, err)
		assert.Equal(t, cmd.Usage, reply.Text)
		assert.Contains(t, reply.Text, typst.PreambleUsage)
	})
}
