package minisearch

import (
	"regexp"
	"strings"

	"github.com/fwojciec/faqbot"
)

var (
	searchBoxRe   = regexp.MustCompile(`"(assets/chunks/VPLocalSearchBox\.[-\w]+\.js)"`)
	searchIndexRe = regexp.MustCompile(`import\("\.(/@localSearchIndexroot\.\w+\.js)"\)`)
)

// FindThemeAsset returns the absolute path of the theme bundle linked from
// the home page, e.g. "/guide/assets/chunks/theme.Bx3k9.js". root is the
// path of the base URL without a trailing slash.
func FindThemeAsset(html, root string) (string, error) {
	re, err := regexp.Compile(`href="(` + regexp.QuoteMeta(root) + `/assets/chunks/theme\.\w+\.js)"`)
	if err != nil {
		return "", faqbot.Errorf(faqbot.EINVALID, "invalid root path %q: %v", root, err)
	}
	m := re.FindStringSubmatch(html)
	if m == nil {
		return "", faqbot.Errorf(faqbot.EFORMAT, "theme bundle not found in home page")
	}
	return m[1], nil
}

// FindSearchBoxAsset returns the path of the local search box bundle named
// in the theme bundle, relative to the base URL, e.g.
// "assets/chunks/VPLocalSearchBox.a1-b2.js".
func FindSearchBoxAsset(themeJS string) (string, error) {
	m := searchBoxRe.FindStringSubmatch(themeJS)
	if m == nil {
		return "", faqbot.Errorf(faqbot.EFORMAT, "local search box bundle not found in theme bundle")
	}
	return m[1], nil
}

// FindSearchIndexAsset returns the path of the index module imported by the
// search box, relative to the chunks directory, e.g.
// "/@localSearchIndexroot.c3d4.js".
func FindSearchIndexAsset(searchBoxJS string) (string, error) {
	m := searchIndexRe.FindStringSubmatch(searchBoxJS)
	if m == nil {
		return "", faqbot.Errorf(faqbot.EFORMAT, "search index import not found in search box bundle")
	}
	return m[1], nil
}

// UnwrapSearchIndexModule extracts the JSON string exported by the index
// module. The string literal may be quoted with backticks or single quotes.
func UnwrapSearchIndexModule(js string) string {
	s := strings.TrimSpace(js)
	s = strings.TrimPrefix(s, "const t=`")
	s = strings.TrimPrefix(s, "const t='")
	s = strings.TrimSuffix(s, "';export{t as default};")
	s = strings.TrimSuffix(s, "`;export{t as default};")
	return strings.ReplaceAll(s, "\\`", "`")
}
