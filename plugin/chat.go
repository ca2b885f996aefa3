package plugin

import (
	"context"
	"strings"

	"github.com/fwojciec/faqbot"
)

const chatUsage = `与北京理工大学智能体广场（agent.bit.edu.cn）的“LaTeX-BIThesis帮助”机器人聊天。

用法：
/chat ⟨提问内容⟩
/聊天 ⟨提问内容⟩

提问内容可直接写，也可引用之前的消息。

只支持最基本的单轮文本对话；若需多轮对话、推荐问题、回答来源等功能，请直接使用学校的Web服务：
https://agent.bit.edu.cn/product/llm/chat/d05ee4rha6ps7396rueg

另外，Agent.BIT 并不万能，有些问题询问通用大语言模型更好更快。实例可参考：
https://bithesis.bitnp.net/guide/ask-computer.html

使用示例：
/chat 可参考哪些文档？
/chat 如何配置 VS Code？`

// NewChat returns the /chat command forwarding questions to asker.
func NewChat(asker faqbot.Asker) *faqbot.Command {
	return &faqbot.Command{
		Name:        "chat",
		Aliases:     []string{"聊天"},
		Description: "与 Agent.BIT 聊天",
		Usage:       chatUsage,
		Handler: faqbot.HandlerFunc(func(ctx context.Context, msg *faqbot.Message) (*faqbot.Reply, error) {
			question := ChatQuestion(msg)
			if question == "" {
				return faqbot.TextReply(chatUsage), nil
			}

			answer, err := asker.Ask(ctx, question)
			if err != nil {
				return nil, err
			}
			return faqbot.TextReply(answer), nil
		}),
	}
}

// ChatQuestion joins the message arguments and the quoted text, which is
// marked up as a quotation with "> " on every line.
func ChatQuestion(msg *faqbot.Message) string {
	var parts []string
	if s := strings.TrimSpace(msg.Text); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(msg.Quoted); s != "" {
		lines := strings.Split(s, "\n")
		for i, line := range lines {
			lines[i] = "> " + strings.TrimSuffix(line, "\r")
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}
