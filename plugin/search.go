// Package plugin implements the chat commands of the bot on top of the
// services in the root package.
package plugin

import (
	"context"

	"github.com/fwojciec/faqbot"
)

// Sites searched by /tyd, in order.
const (
	GuideURL        = "https://typst-doc-cn.github.io/guide"
	OfficialDocsURL = "https://typst.app"
	ExamplesBookURL = "https://sitandr.github.io/typst-examples-book/book"
)

// TydFallback is the reply of /tyd when nothing is found.
const TydFallback = "未找到结果，建议手动搜索。\n详见`/help tyd`。"

const tydUsage = `用法：
/tyd ⟨关键词⟩…
/typdoc ⟨关键词⟩…
/typst-doc ⟨关键词⟩…

1. 先搜索 typst-doc-cn.github.io/guide 的各级标题和 URL。
2. 若无结果，再搜索 typst.app/docs 的标题和类型名。
3. 若无结果，继续搜索 sitandr.github.io/typst-examples-book/book 的各级标题。
目前不会搜索网页内容和标签。

关键词可直接写，也可引用之前的消息。
若提供多个关键词，则按照“或”理解。例如` + "`/tyd A B`" + `的结果是` + "`/tyd A`" + `与` + "`/tyd B`" + `之并。

只支持精确搜索；模糊搜索请直接使用网页上的搜索栏。

为避免刷屏，最多显示五条结果。

使用示例：
/tyd Word
/tyd 圆角表格
/tyd 三线表 table
/tyd hanging
/tyd zip
/tyd catch`

const faqUsage = `搜索 BIThesis 的常见问题。

用法：
/faq ⟨关键词⟩…
/repeat ⟨关键词⟩…
/重复 ⟨关键词⟩…

先搜索站点地图中的页面标题和 URL，若无结果，再搜索各级标题。
关键词可直接写，也可引用之前的消息。若提供多个关键词，则按照“或”理解。`

// NewTyd returns the /tyd command searching the Chinese community guide,
// the official documentation and the examples book, in that order.
func NewTyd(guide, official, examplesBook faqbot.SearchBackend, opts ...faqbot.SearchOption) (*faqbot.Command, error) {
	h, err := faqbot.NewSearchHandler(
		[]string{GuideURL, OfficialDocsURL, ExamplesBookURL},
		[]faqbot.SearchBackend{guide, official, examplesBook},
		TydFallback,
		opts...,
	)
	if err != nil {
		return nil, err
	}

	return &faqbot.Command{
		Name:        "tyd",
		Aliases:     []string{"typdoc", "typst-doc"},
		Description: "搜索 Typst 中文社区导航、官方文档和 Examples Book",
		Usage:       tydUsage,
		Handler:     searchHandler(h),
	}, nil
}

// FAQFallback returns the reply of /faq when nothing is found on baseURL.
func FAQFallback(baseURL string) string {
	return "未找到结果，建议手动搜索。\n" + baseURL + "/guide/ask-computer.html"
}

// NewFAQ returns the /faq command searching the VitePress site at baseURL,
// first by its sitemap and then by its local search index.
func NewFAQ(baseURL string, sitemap, index faqbot.SearchBackend, opts ...faqbot.SearchOption) (*faqbot.Command, error) {
	h, err := faqbot.NewSearchHandler(
		[]string{baseURL},
		[]faqbot.SearchBackend{sitemap, index},
		FAQFallback(baseURL),
		opts...,
	)
	if err != nil {
		return nil, err
	}

	return &faqbot.Command{
		Name:        "faq",
		Aliases:     []string{"repeat", "重复"},
		Description: "搜索 FAQ",
		Usage:       faqUsage,
		Handler:     searchHandler(h),
	}, nil
}

func searchHandler(h *faqbot.SearchHandler) faqbot.Handler {
	return faqbot.HandlerFunc(func(ctx context.Context, msg *faqbot.Message) (*faqbot.Reply, error) {
		text, err := h.Handle(ctx, faqbot.SearchQuery(msg))
		if err != nil {
			return nil, err
		}
		return faqbot.TextReply(text), nil
	})
}
