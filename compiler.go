package faqbot

import "context"

// CompileJob describes one typst compilation.
type CompileJob struct {
	// Document is the typst source typed by the user.
	Document string

	// Reply is the quoted message. If non-empty it is written next to the
	// document as re.typ so the document can import or read it.
	Reply string

	// Preamble is prepended to Document.
	Preamble string

	// Executable overrides the compiler binary.
	Executable string
}

// CompileResult is the outcome of a compilation.
// A failed compilation is a result, not an error.
type CompileResult struct {
	OK bool

	// Pages holds PNG images, one per page, in page order.
	Pages [][]byte

	// Diagnostics holds warnings on success and errors on failure,
	// with paths and line numbers rewritten for the user.
	Diagnostics string
}

// Compiler runs the typst compiler.
type Compiler interface {
	Compile(ctx context.Context, job *CompileJob) (*CompileResult, error)

	// Fonts lists discovered fonts with their style variants.
	Fonts(ctx context.Context) (string, error)

	// Version returns the compiler version string.
	Version(ctx context.Context) (string, error)
}

// BannerRenderer renders the off-topic banner template.
type BannerRenderer interface {
	// RenderBanner renders headline into the template. Headlines containing
	// "#" are treated as typst markup, others as plain strings.
	RenderBanner(ctx context.Context, headline string) (*CompileResult, error)

	// Template returns the template source.
	Template() string
}

// PackageRegistry lists packages published to the typst package registry.
type PackageRegistry interface {
	// LatestVersions maps each package name to its latest version.
	LatestVersions(ctx context.Context) (map[string]string, error)
}

// ExampleFinder finds example code on a typst Universe package page.
type ExampleFinder interface {
	// FindExample returns the first example on the page that imports a
	// package. ok is false if the page has none.
	FindExample(ctx context.Context, pageURL string) (example string, ok bool, err error)
}
