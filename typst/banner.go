package typst

import (
	"context"
	_ "embed"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/faqbot"
)

// BannerFile is the template file name shown in diagnostics.
const BannerFile = "off-topic.typ"

//go:embed off-topic.typ
var bannerTemplate string

var (
	// The line of the template holding the headline as content.
	messageLineRe = regexp.MustCompile(`(?m)^  let message = \[.+\]$`)

	// Diagnostics point at the template's absolute path.
	bannerPathRe = regexp.MustCompile(`(  ┌─ ).+(` + regexp.QuoteMeta(BannerFile) + `:)`)
)

// Ensure BannerRenderer implements faqbot.BannerRenderer.
var _ faqbot.BannerRenderer = (*BannerRenderer)(nil)

// BannerRenderer renders the off-topic banner.
type BannerRenderer struct {
	compiler *Compiler
	template string
}

// NewBannerRenderer creates a BannerRenderer running the binary of compiler.
func NewBannerRenderer(compiler *Compiler) *BannerRenderer {
	return &BannerRenderer{
		compiler: compiler,
		template: bannerTemplate,
	}
}

// Template returns the banner template source.
func (r *BannerRenderer) Template() string {
	return r.template
}

// RenderBanner renders headline into a single PNG. A headline without "#"
// is passed as a string input; otherwise it is spliced into the template
// as markup.
func (r *BannerRenderer) RenderBanner(ctx context.Context, headline string) (*faqbot.CompileResult, error) {
	var (
		stdout []byte
		stderr string
		ok     bool
		err    error
	)

	if !strings.Contains(headline, "#") {
		stdout, stderr, ok, err = r.renderString(ctx, headline)
	} else {
		stdout, stderr, ok, err = r.compiler.run(ctx, "", SpliceHeadline(r.template, headline),
			r.compiler.executable, "compile", "-", "-", "--format=png")
	}
	if err != nil {
		return nil, err
	}

	if !ok {
		return &faqbot.CompileResult{
			Diagnostics: bannerPathRe.ReplaceAllString(stderr, "$1$2"),
		}, nil
	}
	return &faqbot.CompileResult{
		OK:          true,
		Pages:       [][]byte{stdout},
		Diagnostics: stderr,
	}, nil
}

func (r *BannerRenderer) renderString(ctx context.Context, headline string) ([]byte, string, bool, error) {
	dir, err := os.MkdirTemp("", "typst-banner-")
	if err != nil {
		return nil, "", false, err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, BannerFile)
	if err := os.WriteFile(path, []byte(r.template), 0o600); err != nil {
		return nil, "", false, err
	}

	return r.compiler.run(ctx, dir, "", r.compiler.executable,
		"compile", path, "-", "--format=png", "--input", "headline="+headline)
}

// SpliceHeadline replaces the first message line of template with headline
// as markup content.
func SpliceHeadline(template, headline string) string {
	loc := messageLineRe.FindStringIndex(template)
	if loc == nil {
		return template
	}
	return template[:loc[0]] + "  let message = [\n" + headline + "\n]" + template[loc[1]:]
}
