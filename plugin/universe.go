package plugin

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/faqbot"
)

// UniverseURL is the prefix of package pages on typst Universe.
const UniverseURL = "https://typst.app/universe/package/"

const universeUsage = `用法：
/univ ⟨package⟩
/universe ⟨package⟩
/typst-universe ⟨package⟩

1. 在 typst.app/universe 上查阅包最新版的 README
2. 找到首个包含` + "`#import `" + `的 typst 代码
3. 利用群里的 Nana 机器人编译

使用示例：
/univ cheq
/univ cetz
/univ pointless-size`

// NewUniverse returns the /univ command previewing a package's README
// example. The reply starts with "typ " so another bot in the group
// compiles it.
func NewUniverse(finder faqbot.ExampleFinder) *faqbot.Command {
	return &faqbot.Command{
		Name:        "univ",
		Aliases:     []string{"universe", "typst-universe"},
		Description: "预览 Typst Universe 上的包",
		Usage:       universeUsage,
		Handler: faqbot.HandlerFunc(func(ctx context.Context, msg *faqbot.Message) (*faqbot.Reply, error) {
			pkg := strings.TrimSpace(msg.Text)
			if pkg == "" {
				return faqbot.TextReply(universeUsage), nil
			}

			url := UniverseURL + pkg
			example, ok, err := finder.FindExample(ctx, url)
			if err != nil {
				return nil, err
			}
			if !ok {
				return faqbot.TextReply(fmt.Sprintf("🙁 未在 %s 找到 %s 的示例代码。", url, pkg)), nil
			}
			return faqbot.TextReply(fmt.Sprintf("typ // %s\n%s", url, strings.TrimSpace(example))), nil
		}),
	}
}
