package typst

import "strings"

// Profile selects the preamble and executable of a compile command.
type Profile string

// Compile profiles.
const (
	// ProfileBasic uses a landscape A8 page.
	ProfileBasic Profile = "basic"

	// ProfileFitPage sizes the page to its content.
	ProfileFitPage Profile = "fit-page"

	// ProfileDev uses the development build of typst with a minimal
	// preamble, since its math font handling is still changing.
	ProfileDev Profile = "dev"
)

// PreambleMinimal sets a landscape A8 page, Chinese as the language, and
// CJK fonts for body text and raw text.
const PreambleMinimal = `
#set page(width: 74mm, height: 52mm)
#set text(lang: "zh", font: (
  (name: "Libertinus Serif", covers: "latin-in-cjk"),
  "Noto Serif CJK SC",
))
#show raw: set text(font: (
  (name: "DejaVu Sans Mono", covers: "latin-in-cjk"),
  "Noto Serif CJK SC",
))
`

// PreambleBasic adds CJK fallback to math fonts. A landscape A8 page is
// spelled out with width and height rather than paper and flipped, which
// would swap the meaning of width and height.
var PreambleBasic = strings.TrimSpace(`
` + PreambleMinimal + `
#show math.equation: set text(font: (
  // New Computer Modern breaks braces when it fixes quotes
  // https://github.com/typst-doc-cn/guide/issues/87
  "New Computer Modern Math",
  "Noto Serif CJK SC",
))
`)

// PreambleFitPage sizes the page to its content.
var PreambleFitPage = strings.TrimSpace(`
` + PreambleBasic + `
#set page(height: auto, width: auto, margin: 1em)
`)

// Preamble returns the preamble of the profile.
func (p Profile) Preamble() string {
	switch p {
	case ProfileFitPage:
		return PreambleFitPage
	case ProfileDev:
		return PreambleMinimal
	default:
		return PreambleBasic
	}
}

// PreambleUsage explains the preambles to users.
const PreambleUsage = `页面设置取决于命令，每种都支持多页。
- /typtyp 和 /typdev 默认为横向 A8，可用以下代码恢复 typst 默认。
    #set page("a4")
- /typ 默认根据内容自动伸缩，可用以下代码恢复 typst 默认。
    #set page("a4", margin: auto)

默认会设置中文字体为 Noto Serif CJK SC。
- /typtyp 和 /typ 会设置所有场合的中文字体，包括正文、代码、公式。
- /typdev 只会设置正文、代码的中文字体，并不设置公式，因为开发版 typst 改进了公式字体机制，尚不稳定，暂且保留 typst 默认。
可用字体还有 Noto Sans CJK SC、Noto Serif CJK JP 等，详见` + "`/typtyp fonts`" + `。

默认会设置语言为 zh，但不会设置地区。`
