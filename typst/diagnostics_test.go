package typst_test

import (
	"testing"

	"github.com/fwojciec/faqbot/typst"
	"github.com/stretchr/testify/assert"
)

func TestImproveDiagnostics(t *testing.T) {
	t.Parallel()

	t.Run("shifts location and gutter", func(t *testing.T) {
		t.Parallel()

		stderr := "error: unexpected end\n   ┌─ <stdin>:15:1\n   │\n15 │ #let x = (\n   │          ^\n"

		got := typst.ImproveDiagnostics(stderr, 12, "")

		assert.Equal(t, "error: unexpected end\n   ┌─ <stdin>:3:1\n   │\n 3 │ #let x = (\n   │          ^\n", got)
	})

	t.Run("removes working directory", func(t *testing.T) {
		t.Parallel()

		stderr := "error: file not found (searched at /tmp/typst-123/missing.typ)\n"

		got := typst.ImproveDiagnostics(stderr, 0, "/tmp/typst-123")

		assert.Equal(t, "error: file not found (searched at /missing.typ)\n", got)
	})

	t.Run("leaves other files alone", func(t *testing.T) {
		t.Parallel()

		stderr := "  ┌─ re.typ:4:1\n"

		assert.Equal(t, stderr, typst.ImproveDiagnostics(stderr, 10, ""))
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, typst.ImproveDiagnostics("", 3, "/tmp"))
	})
}
