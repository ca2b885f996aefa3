package typst

import (
	"fmt"
	"regexp"
	"strings"
)

// magicRe matches "!!package" at the start of a line. Full-width "！" is
// accepted too. The trailing group stands in for a lookahead.
var magicRe = regexp.MustCompile(`(?m)^\s*[!！]{2}\s*([-0-9a-z]+)(\s|$)`)

// ExpandMagic replaces every "!!package" line prefix with an import of the
// package's latest version from versions. Unknown packages are left as is.
// It returns the expanded document and one hint per expansion attempt.
func ExpandMagic(document string, versions map[string]string) (string, []string) {
	var (
		sb    strings.Builder
		hints []string
		last  int
	)

	for _, m := range magicRe.FindAllStringSubmatchIndex(document, -1) {
		matched := document[m[0]:m[4]]
		name := document[m[2]:m[3]]

		sb.WriteString(document[last:m[0]])
		if version, ok := versions[name]; ok {
			hints = append(hints, fmt.Sprintf("Using %s %s.", name, version))
			fmt.Fprintf(&sb, `#import "@preview/%s:%s": *;`, name, version)
		} else {
			hints = append(hints, fmt.Sprintf("Ignoring “%s” because %s is not in package registry.", matched, name))
			sb.WriteString(matched)
		}
		last = m[4]
	}
	sb.WriteString(document[last:])

	return sb.String(), hints
}

var replyPrefixes = []*regexp.Regexp{
	// This bot's compile commands.
	regexp.MustCompile(`^/typtyp\s+`),
	regexp.MustCompile(`^/typ\s+`),
	regexp.MustCompile(`^/typdev\s+`),
	// Another bot in the group compiles on "typ ".
	regexp.MustCompile(`^typ\s+`),
}

// CleanReply removes a leading compile command from quoted text so the
// quoted document can be compiled again.
func CleanReply(text string) string {
	for _, re := range replyPrefixes {
		if loc := re.FindStringIndex(text); loc != nil {
			text = text[loc[1]:]
		}
	}
	return text
}

// HasMagic reports whether document contains a "!!package" line.
func HasMagic(document string) bool {
	return magicRe.MatchString(document)
}
