package typst

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// "  ┌─ <stdin>:12:3" in the diagnostic header.
	locationRe = regexp.MustCompile(`(?m)^(\s{2,}┌─ .*<stdin>:)(\d+)(:)`)

	// "12 │ #foo" in the source excerpt.
	gutterRe = regexp.MustCompile(`(?m)^(\s*)(\d+)( │ )`)
)

// ImproveDiagnostics rewrites human-readable diagnostics of typst compile
// for the user: the working directory is removed and line numbers are
// shifted back by lineShift so they count from the user's first line.
func ImproveDiagnostics(stderr string, lineShift int, dir string) string {
	if dir != "" {
		stderr = strings.ReplaceAll(stderr, dir, "")
	}

	stderr = replaceLineNumbers(locationRe, stderr, lineShift, false)
	stderr = replaceLineNumbers(gutterRe, stderr, lineShift, true)
	return stderr
}

// replaceLineNumbers shifts the second group of every match of re. With pad,
// the number keeps its original width so the gutter stays aligned.
func replaceLineNumbers(re *regexp.Regexp, s string, shift int, pad bool) string {
	return re.ReplaceAllStringFunc(s, func(match string) string {
		m := re.FindStringSubmatch(match)
		line, err := strconv.Atoi(m[2])
		if err != nil {
			return match
		}

		n := strconv.Itoa(line - shift)
		if pad && len(m[2]) > len(n) {
			n = strings.Repeat(" ", len(m[2])-len(n)) + n
		}
		return m[1] + n + m[3]
	})
}
