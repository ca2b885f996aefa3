package plugin_test

import (
	"context"
	"testing"

	"github.com/fwojciec/faqbot"
	"github.com/fwojciec/faqbot/mock"
	"github.com/fwojciec/faqbot/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatQuestion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  faqbot.Message
		want string
	}{
		{"text only", faqbot.Message{Text: " 如何配置 VS Code？ "}, "如何配置 VS Code？"},
		{"quote only", faqbot.Message{Quoted: "a\nb"}, "> a\n> b"},
		{"both", faqbot.Message{Text: "为什么？", Quoted: "编译失败\r\n找不到字体"}, "为什么？\n\n> 编译失败\n> 找不到字体"},
		{"empty", faqbot.Message{Text: "  ", Quoted: "\n"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, plugin.ChatQuestion(&tt.msg))
		})
	}
}

func TestNewChat(t *testing.T) {
	t.Parallel()

	t.Run("forwards question", func(t *testing.T) {
		t.Parallel()

		var asked string
		cmd := plugin.NewChat(&mock.Asker{
			AskFn: func(ctx context.Context, question string) (string, error) {
				asked = question
				return "答案", nil
			},
		})

		reply, err := cmd.Handler.Handle(context.Background(), &faqbot.Message{Text: "可参考哪些文档？"})

		require.NoError(t, err)
		assert.Equal(t, "可参考哪些文档？", asked)
		assert.Equal(t, "答案", reply.Text)
	})

	t.Run("shows usage without question", func(t *testing.T) {
		t.Parallel()

		cmd := plugin.NewChat(&mock.Asker{})

		reply, err := cmd.Handler.Handle(context.Background(), &faqbot.Message{})

		require.NoError(t, err)
		assert.Equal(t, cmd.Usage, reply.Text)
	})
}
