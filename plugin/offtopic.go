package plugin

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/faqbot"
)

const offTopicUsage = `提示已偏离 typst 主题，继续讨论应去隔壁群。

用法：
/ot ⟨名字⟩
/ot show-template
/off-topic ⟨名字⟩
/off-topic show-template

⟨名字⟩可直接写，可省略，也可引用别人。

若⟨名字⟩不含“#”，会作为字符串处理；若⟨名字⟩含“#”，会作为 typst markup 代码处理，但仅在容器 […] 内，不支持 #pagebreak() 等功能。`

// NewOffTopic returns the /ot command rendering the off-topic banner.
func NewOffTopic(renderer faqbot.BannerRenderer, compiler faqbot.Compiler) *faqbot.Command {
	return &faqbot.Command{
		Name:        "ot",
		Aliases:     []string{"off-topic"},
		Description: "提示已偏离 typst 主题",
		Usage:       offTopicUsage,
		Handler: faqbot.HandlerFunc(func(ctx context.Context, msg *faqbot.Message) (*faqbot.Reply, error) {
			switch strings.TrimSpace(msg.Text) {
			case "show-template":
				return faqbot.TextReply(renderer.Template()), nil
			case "debug":
				return debugInfo(ctx, compiler)
			}

			headline := msg.Text + msg.QuotedSender
			result, err := renderer.RenderBanner(ctx, headline)
			if err != nil {
				return nil, err
			}
			if !result.OK {
				return faqbot.TextReply(result.Diagnostics), nil
			}
			return &faqbot.Reply{Images: result.Pages}, nil
		}),
	}
}

func debugInfo(ctx context.Context, compiler faqbot.Compiler) (*faqbot.Reply, error) {
	version, err := compiler.Version(ctx)
	if err != nil {
		return nil, err
	}
	fonts, err := compiler.Fonts(ctx)
	if err != nil {
		return nil, err
	}
	return faqbot.TextReply(fmt.Sprintf("Version: %s\n\nFonts:\n%s", version, fonts)), nil
}
