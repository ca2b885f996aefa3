package typst_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/faqbot"
	"github.com/fwojciec/faqbot/typst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTypst writes an executable shell script standing in for typst.
// Tests using it run sequentially: a parallel fork can hold the script
// open for writing and make exec fail with ETXTBSY.
func fakeTypst(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "typst")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755)
	require.NoError(t, err)
	return path
}

func TestCompiler_Compile(t *testing.T) {
	t.Run("returns pages in order", func(t *testing.T) {
			exe := fakeTypst(t, `cat > 1.png
printf two > 2.png
`)
		c := typst.NewCompiler(typst.WithExecutable(exe))

		result, err := c.Compile(context.Background(), &faqbot.CompileJob{
			Document: "= Hello",
			Preamble: "#set page(width: 1cm)",
		})

		require.NoError(t, err)
		assert.True(t, result.OK)
		require.Len(t, result.Pages, 2)
		assert.Equal(t, "#set page(width: 1cm)\n= Hello", string(result.Pages[0]))
		assert.Equal(t, "two", string(result.Pages[1]))
		assert.Empty(t, result.Diagnostics)
	})

	t.Run("passes compile arguments", func(t *testing.T) {
			exe := fakeTypst(t, `cat > /dev/null
printf '%s ' "$@" > 1.png
`)
		c := typst.NewCompiler(typst.WithExecutable(exe))

		result, err := c.Compile(context.Background(), &faqbot.CompileJob{Document: "x"})

		require.NoError(t, err)
		require.Len(t, result.Pages, 1)
		assert.Equal(t, "compile - {0p}.png --root=. ", string(result.Pages[0]))
	})

	t.Run("writes reply next to the document", func(t *testing.T) {
			exe := fakeTypst(t, `cat > /dev/null
cp re.typ 1.png
`)
		c := typst.NewCompiler(typst.WithExecutable(exe))

		result, err := c.Compile(context.Background(), &faqbot.CompileJob{
			Document: `#include "re.typ"`,
			Reply:    "quoted text",
		})

		require.NoError(t, err)
		require.Len(t, result.Pages, 1)
		assert.Equal(t, "quoted text", string(result.Pages[0]))
	})

	t.Run("uses job executable over default", func(t *testing.T) {
			dev := fakeTypst(t, `cat > /dev/null
printf dev > 1.png
`)
		c := typst.NewCompiler(typst.WithExecutable("/nonexistent/typst"))

		result, err := c.Compile(context.Background(), &faqbot.CompileJob{Document: "x", Executable: dev})

		require.NoError(t, err)
		assert.Equal(t, "dev", string(result.Pages[0]))
	})

	t.Run("returns shifted diagnostics on failure", func(t *testing.T) {
			exe := fakeTypst(t, `cat > /dev/null
cat >&2 <<'DIAG'
error: unknown variable: foo
  ┌─ <stdin>:3:2
  │
3 │ #foo
  │  ^^^
DIAG
exit 1
`)
		c := typst.NewCompiler(typst.WithExecutable(exe))

		result, err := c.Compile(context.Background(), &faqbot.CompileJob{
			Document: "#foo",
			Preamble: "#set text(1pt)\n#set par(2pt)",
		})

		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.Empty(t, result.Pages)
		assert.Contains(t, result.Diagnostics, "┌─ <stdin>:1:2")
		assert.Contains(t, result.Diagnostics, "1 │ #foo")
	})

	t.Run("returns error when executable is missing", func(t *testing.T) {
			c := typst.NewCompiler(typst.WithExecutable(filepath.Join(t.TempDir(), "missing")))

		_, err := c.Compile(context.Background(), &faqbot.CompileJob{Document: "x"})

		require.Error(t, err)
	})

	t.Run("rejects empty document", func(t *testing.T) {
			c := typst.NewCompiler()

		_, err := c.Compile(context.Background(), &faqbot.CompileJob{Document: "  "})

		assert.Equal(t, faqbot.EINVALID, faqbot.ErrorCode(err))
	})
}

func TestCompiler_FontsAndVersion(t *testing.T) {
	exe := fakeTypst(t, `case "$1" in
--version) echo "typst 0.13.1" ;;
fonts) echo "Noto Serif CJK SC" ;;
*) exit 2 ;;
esac
`)
	c := typst.NewCompiler(typst.WithExecutable(exe))

	version, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "typst 0.13.1\n", version)

	fonts, err := c.Fonts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Noto Serif CJK SC\n", fonts)
}

func TestCompiler_FontsFailure(t *testing.T) {
	exe := fakeTypst(t, "echo broken >&2\nexit 1\n")
	c := typst.NewCompiler(typst.WithExecutable(exe))

	_, err := c.Fonts(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
